package announcement

import "errors"

// Announcement domain errors
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAnnouncementExpired  = errors.New("announcement has expired")
	ErrNotInAudience        = errors.New("announcement is not addressed to this user")
)
