package announcement

import (
	"context"
)

// AnnouncementService defines business logic for announcements
type AnnouncementService interface {
	// Create persists an announcement, then dispatches email and push
	// notifications to the resolved audience fire-and-forget
	Create(ctx context.Context, req CreateAnnouncementRequest) (AnnouncementResponse, error)

	// ListForMe retrieves active announcements addressed to the
	// authenticated user, with per-user engagement status
	ListForMe(ctx context.Context, filter AnnouncementFilter) (ListAnnouncementResponse, error)

	// List retrieves all announcements (admin/manager)
	List(ctx context.Context, filter AnnouncementFilter) (ListAnnouncementResponse, error)

	// Get retrieves a single announcement, with the requester's status
	Get(ctx context.Context, id string) (AnnouncementResponse, error)

	// MarkRead records that the authenticated user has read the announcement
	MarkRead(ctx context.Context, id string) error

	// Acknowledge records the authenticated user's explicit confirmation
	Acknowledge(ctx context.Context, id string) error

	// GetEngagement returns read/acknowledge receipts and counts (admin/manager)
	GetEngagement(ctx context.Context, id string) (EngagementResponse, error)

	// Delete hard-deletes an announcement (admin)
	Delete(ctx context.Context, id string) error
}
