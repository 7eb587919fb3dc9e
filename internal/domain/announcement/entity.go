package announcement

import (
	"time"
)

type Type string

const (
	TypeGeneral Type = "general"
	TypeUrgent  Type = "urgent"
	TypePolicy  Type = "policy"
	TypeEvent   Type = "event"
	TypeSystem  Type = "system"
	TypeHoliday Type = "holiday"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// TargetType selects the audience-resolution strategy. Exactly one mode is
// active per announcement; only the matching target list is consulted.
type TargetType string

const (
	TargetAll        TargetType = "all"
	TargetRole       TargetType = "role"
	TargetDepartment TargetType = "department"
	TargetSpecific   TargetType = "specific"
)

// Receipt records one user's read or acknowledge event. Receipts are
// append-only and unique per (announcement, user).
type Receipt struct {
	UserID string
	At     time.Time
}

type Announcement struct {
	ID                     string
	Title                  string
	Content                string
	Type                   Type
	Priority               Priority
	TargetType             TargetType
	TargetRoles            []string
	TargetDepartments      []string
	TargetUsers            []string
	RequiresAcknowledgment bool
	SendEmail              bool
	ExpiresAt              *time.Time
	Tags                   []string
	CreatedBy              string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	ReadBy         []Receipt
	AcknowledgedBy []Receipt
}

// IsActive reports whether the announcement has not expired as of now.
func (a *Announcement) IsActive(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

// HasRead reports whether userID appears in the read receipts.
func (a *Announcement) HasRead(userID string) bool {
	for _, r := range a.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// HasAcknowledged reports whether userID appears in the acknowledge receipts.
func (a *Announcement) HasAcknowledged(userID string) bool {
	for _, r := range a.AcknowledgedBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
