package announcement

import (
	"github.com/teamstack/ems-backend-go/internal/domain/user"
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

// EngagementStatus is a user's standing against one announcement.
type EngagementStatus string

const (
	StatusNeedsAcknowledgment EngagementStatus = "needs_acknowledgment"
	StatusUnread              EngagementStatus = "unread"
	StatusAcknowledged        EngagementStatus = "acknowledged"
	StatusRead                EngagementStatus = "read"
)

// ResolveAudience filters candidates down to the users the announcement is
// addressed to. Inactive users never receive anything regardless of mode,
// and an empty result is valid: the announcement simply delivers to no one.
func ResolveAudience(a Announcement, candidates []user.User) []user.User {
	audience := make([]user.User, 0, len(candidates))
	for _, u := range candidates {
		if !u.IsActive {
			continue
		}
		if Targets(a, u) {
			audience = append(audience, u)
		}
	}
	return audience
}

// Targets reports whether the announcement addresses the given user. Exactly
// one targeting branch is evaluated, selected by TargetType.
func Targets(a Announcement, u user.User) bool {
	switch a.TargetType {
	case TargetAll:
		return true
	case TargetRole:
		return validator.IsInSlice(string(u.Role), a.TargetRoles)
	case TargetDepartment:
		return validator.IsInSlice(u.Department, a.TargetDepartments)
	case TargetSpecific:
		return validator.IsInSlice(u.ID, a.TargetUsers)
	default:
		return false
	}
}

// StatusFor computes the per-user engagement status. Priority order:
// a pending required acknowledgment dominates, then unread, then
// acknowledged, then plain read.
func StatusFor(a Announcement, userID string) EngagementStatus {
	acked := a.HasAcknowledged(userID)
	switch {
	case a.RequiresAcknowledgment && !acked:
		return StatusNeedsAcknowledgment
	case !a.HasRead(userID):
		return StatusUnread
	case acked:
		return StatusAcknowledged
	default:
		return StatusRead
	}
}
