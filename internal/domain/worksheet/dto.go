package worksheet

import (
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

type CreateWorksheetRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateWorksheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorksheetFilter struct {
	EmployeeID *string
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type WorksheetResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type ListWorksheetResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Worksheets []WorksheetResponse `json:"worksheets"`
}
