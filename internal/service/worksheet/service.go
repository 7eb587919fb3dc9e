package worksheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/worksheet"
)

type WorksheetServiceImpl struct {
	worksheet.WorksheetRepository

	now func() time.Time
}

func NewWorksheetService(repo worksheet.WorksheetRepository) worksheet.WorksheetService {
	return &WorksheetServiceImpl{
		WorksheetRepository: repo,
		now:                 time.Now,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// Create implements worksheet.WorksheetService.
func (s *WorksheetServiceImpl) Create(ctx context.Context, req worksheet.CreateWorksheetRequest) (worksheet.WorksheetResponse, error) {
	if err := req.Validate(); err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return worksheet.WorksheetResponse{}, err
	}

	date := s.now()
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	created, err := s.WorksheetRepository.Create(ctx, worksheet.Worksheet{
		EmployeeID:  employeeID,
		Date:        date,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return worksheet.WorksheetResponse{}, fmt.Errorf("failed to create worksheet: %w", err)
	}

	return mapWorksheetToResponse(created), nil
}

// GetMyWorksheets implements worksheet.WorksheetService.
func (s *WorksheetServiceImpl) GetMyWorksheets(ctx context.Context, filter worksheet.WorksheetFilter) (worksheet.ListWorksheetResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return worksheet.ListWorksheetResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements worksheet.WorksheetService.
func (s *WorksheetServiceImpl) List(ctx context.Context, filter worksheet.WorksheetFilter) (worksheet.ListWorksheetResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	worksheets, total, err := s.WorksheetRepository.List(ctx, filter)
	if err != nil {
		return worksheet.ListWorksheetResponse{}, fmt.Errorf("failed to list worksheets: %w", err)
	}

	responses := make([]worksheet.WorksheetResponse, 0, len(worksheets))
	for _, w := range worksheets {
		responses = append(responses, mapWorksheetToResponse(w))
	}

	return worksheet.ListWorksheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Worksheets: responses,
	}, nil
}

// Delete implements worksheet.WorksheetService.
func (s *WorksheetServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.WorksheetRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, worksheet.ErrWorksheetNotFound) {
			return worksheet.ErrWorksheetNotFound
		}
		return fmt.Errorf("failed to delete worksheet: %w", err)
	}
	return nil
}

func mapWorksheetToResponse(w worksheet.Worksheet) worksheet.WorksheetResponse {
	return worksheet.WorksheetResponse{
		ID:           w.ID,
		EmployeeID:   w.EmployeeID,
		EmployeeName: w.EmployeeName,
		Date:         w.Date.Format("2006-01-02"),
		Title:        w.Title,
		Description:  w.Description,
		CreatedAt:    w.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
