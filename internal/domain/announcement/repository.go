package announcement

import (
	"context"
)

// AnnouncementRepository defines data access for announcements and their
// read/acknowledge receipts.
type AnnouncementRepository interface {
	// Create persists a new announcement
	Create(ctx context.Context, a Announcement) (Announcement, error)

	// GetByID retrieves an announcement with its receipts loaded
	GetByID(ctx context.Context, id string) (Announcement, error)

	// List retrieves announcements with filters and pagination
	List(ctx context.Context, filter AnnouncementFilter) ([]Announcement, int64, error)

	// MarkRead appends a read receipt. Idempotent: a duplicate
	// (announcement, user) pair is a silent no-op.
	MarkRead(ctx context.Context, announcementID string, r Receipt) error

	// Acknowledge appends an acknowledge receipt, idempotent like MarkRead.
	Acknowledge(ctx context.Context, announcementID string, r Receipt) error

	// Delete hard-deletes an announcement and its receipts
	Delete(ctx context.Context, id string) error
}
