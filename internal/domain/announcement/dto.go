package announcement

import (
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

// ========================================
// ANNOUNCEMENT DTOs
// ========================================

type CreateAnnouncementRequest struct {
	Title                  string   `json:"title"`
	Content                string   `json:"content"`
	Type                   string   `json:"type"`
	Priority               string   `json:"priority"`
	TargetType             string   `json:"target_type"`
	TargetRoles            []string `json:"target_roles,omitempty"`
	TargetDepartments      []string `json:"target_departments,omitempty"`
	TargetUsers            []string `json:"target_users,omitempty"`
	RequiresAcknowledgment bool     `json:"requires_acknowledgment"`
	SendEmail              bool     `json:"send_email"`
	ExpiresAt              *string  `json:"expires_at,omitempty"` // RFC3339
	Tags                   []string `json:"tags,omitempty"`
}

var (
	announcementTypes = []string{
		string(TypeGeneral), string(TypeUrgent), string(TypePolicy),
		string(TypeEvent), string(TypeSystem), string(TypeHoliday),
	}
	priorities = []string{
		string(PriorityLow), string(PriorityMedium),
		string(PriorityHigh), string(PriorityCritical),
	}
	targetTypes = []string{
		string(TargetAll), string(TargetRole),
		string(TargetDepartment), string(TargetSpecific),
	}
)

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}

	if !validator.IsInSlice(r.Type, announcementTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: general, urgent, policy, event, system, holiday",
		})
	}

	if !validator.IsInSlice(r.Priority, priorities) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high, critical",
		})
	}

	if !validator.IsInSlice(r.TargetType, targetTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_type",
			Message: "target_type must be one of: all, role, department, specific",
		})
	} else {
		errs = append(errs, r.validateTargeting()...)
	}

	if r.ExpiresAt != nil {
		if _, ok := validator.IsValidTimestamp(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateTargeting enforces the exactly-one-mode invariant: the list that
// matches target_type must be provided, the other two must stay empty.
func (r *CreateAnnouncementRequest) validateTargeting() validator.ValidationErrors {
	var errs validator.ValidationErrors

	required := map[string]struct {
		field string
		list  []string
	}{
		string(TargetRole):       {"target_roles", r.TargetRoles},
		string(TargetDepartment): {"target_departments", r.TargetDepartments},
		string(TargetSpecific):   {"target_users", r.TargetUsers},
	}

	if want, ok := required[r.TargetType]; ok && len(want.list) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   want.field,
			Message: want.field + " is required for target_type " + r.TargetType,
		})
	}

	for mode, other := range required {
		if mode != r.TargetType && len(other.list) > 0 {
			errs = append(errs, validator.ValidationError{
				Field:   other.field,
				Message: other.field + " must be empty for target_type " + r.TargetType,
			})
		}
	}

	return errs
}

type AnnouncementFilter struct {
	Type       *string
	Priority   *string
	ActiveOnly bool
	Page       int
	Limit      int
}

type ReceiptResponse struct {
	UserID string `json:"user_id"`
	At     string `json:"at"`
}

type AnnouncementResponse struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	Content                string   `json:"content"`
	Type                   string   `json:"type"`
	Priority               string   `json:"priority"`
	TargetType             string   `json:"target_type"`
	TargetRoles            []string `json:"target_roles,omitempty"`
	TargetDepartments      []string `json:"target_departments,omitempty"`
	TargetUsers            []string `json:"target_users,omitempty"`
	RequiresAcknowledgment bool     `json:"requires_acknowledgment"`
	SendEmail              bool     `json:"send_email"`
	ExpiresAt              *string  `json:"expires_at,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	CreatedBy              string   `json:"created_by"`
	CreatedAt              string   `json:"created_at"`

	// Per-requester engagement, filled on user-facing reads
	Status *string `json:"status,omitempty"`
}

type ListAnnouncementResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	Announcements []AnnouncementResponse `json:"announcements"`
}

// EngagementResponse is the admin reporting view: raw receipt cardinalities,
// recomputed on every read.
type EngagementResponse struct {
	AnnouncementID    string            `json:"announcement_id"`
	ReadCount         int               `json:"read_count"`
	AcknowledgedCount int               `json:"acknowledged_count"`
	ReadBy            []ReceiptResponse `json:"read_by"`
	AcknowledgedBy    []ReceiptResponse `json:"acknowledged_by"`
}
