package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/announcement"
	"github.com/teamstack/ems-backend-go/internal/handler/http/response"
	"github.com/teamstack/ems-backend-go/internal/pkg/sse"
)

type AnnouncementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListForMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
	GetEngagement(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type announcementHandlerImpl struct {
	announcementService announcement.AnnouncementService
	hub                 *sse.Hub
}

func NewAnnouncementHandler(announcementService announcement.AnnouncementService, hub *sse.Hub) AnnouncementHandler {
	return &announcementHandlerImpl{
		announcementService: announcementService,
		hub:                 hub,
	}
}

// Create implements AnnouncementHandler.
func (h *announcementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req announcement.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create announcement request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.announcementService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Announcement created", result)
}

// ListForMe implements AnnouncementHandler.
func (h *announcementHandlerImpl) ListForMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.announcementService.ListForMe(r.Context(), announcementFilterFromQuery(r, true))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AnnouncementHandler.
func (h *announcementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.announcementService.List(r.Context(), announcementFilterFromQuery(r, false))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AnnouncementHandler.
func (h *announcementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.announcementService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkRead implements AnnouncementHandler.
func (h *announcementHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.announcementService.MarkRead(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement marked as read", nil)
}

// Acknowledge implements AnnouncementHandler.
func (h *announcementHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.announcementService.Acknowledge(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement acknowledged", nil)
}

// GetEngagement implements AnnouncementHandler.
func (h *announcementHandlerImpl) GetEngagement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.announcementService.GetEngagement(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AnnouncementHandler.
func (h *announcementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.announcementService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement deleted", nil)
}

// Events streams announcement notifications over SSE for the
// authenticated user until the client disconnects.
func (h *announcementHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, event.Payload)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func announcementFilterFromQuery(r *http.Request, activeOnly bool) announcement.AnnouncementFilter {
	return announcement.AnnouncementFilter{
		Type:       queryParam(r, "type"),
		Priority:   queryParam(r, "priority"),
		ActiveOnly: activeOnly,
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}
}
