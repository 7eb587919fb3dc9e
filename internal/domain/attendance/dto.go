package attendance

import (
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	LocationType string   `json:"location_type"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Address      *string  `json:"address,omitempty"`
}

var locationTypes = []string{
	string(LocationOffice),
	string(LocationRemote),
	string(LocationField),
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.LocationType, locationTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_type",
			Message: "location_type must be one of: office, remote, field",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StartBreakRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Reason != nil && len(*r.Reason) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is the admin correction surface: wrong stamps are
// fixed here and absent/half_day overrides applied here, never via the
// employee lifecycle endpoints.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	Status       *string `json:"status,omitempty"`
}

var overrideStatuses = []string{
	string(StatusAbsent),
	string(StatusHalfDay),
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.ClockInTime != nil {
		if _, ok := validator.IsValidTimestamp(*r.ClockInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be a valid RFC3339 timestamp",
			})
		}
	}

	if r.ClockOutTime != nil {
		if _, ok := validator.IsValidTimestamp(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be a valid RFC3339 timestamp",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, overrideStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status override must be one of: absent, half_day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ClearRequest is the parameterized maintenance command that replaces ad hoc
// bulk-delete scripts.
type ClearRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (r *ClearRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}

	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}

	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *string
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type MyAttendanceFilter struct {
	DateFrom *string
	DateTo   *string
	Page     int
	Limit    int
}

type BreakResponse struct {
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

type AttendanceResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     *string         `json:"employee_name,omitempty"`
	Date             string          `json:"date"`
	ClockInTime      *string         `json:"clock_in_time,omitempty"`
	ClockOutTime     *string         `json:"clock_out_time,omitempty"`
	Breaks           []BreakResponse `json:"breaks"`
	TotalWorkedHours *float64        `json:"total_worked_hours,omitempty"`
	TotalBreakHours  *float64        `json:"total_break_hours,omitempty"`
	Status           string          `json:"status"`
	IsLate           bool            `json:"is_late"`
	LateByMinutes    int             `json:"late_by_minutes"`
	Location         Location        `json:"location"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
