package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/worksheet"
	"github.com/teamstack/ems-backend-go/internal/handler/http/response"
)

type WorksheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetMyWorksheets(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type worksheetHandlerImpl struct {
	worksheetService worksheet.WorksheetService
}

func NewWorksheetHandler(worksheetService worksheet.WorksheetService) WorksheetHandler {
	return &worksheetHandlerImpl{
		worksheetService: worksheetService,
	}
}

// Create implements WorksheetHandler.
func (h *worksheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worksheet.CreateWorksheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create worksheet request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.worksheetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worksheet created", result)
}

// GetMyWorksheets implements WorksheetHandler.
func (h *worksheetHandlerImpl) GetMyWorksheets(w http.ResponseWriter, r *http.Request) {
	result, err := h.worksheetService.GetMyWorksheets(r.Context(), worksheetFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorksheetHandler.
func (h *worksheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := worksheetFilterFromQuery(r)
	filter.EmployeeID = queryParam(r, "employee_id")

	result, err := h.worksheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements WorksheetHandler.
func (h *worksheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.worksheetService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksheet deleted", nil)
}

func worksheetFilterFromQuery(r *http.Request) worksheet.WorksheetFilter {
	return worksheet.WorksheetFilter{
		DateFrom: queryParam(r, "date_from"),
		DateTo:   queryParam(r, "date_to"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
	}
}
