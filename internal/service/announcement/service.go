package announcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/announcement"
	"github.com/teamstack/ems-backend-go/internal/domain/user"
	"github.com/teamstack/ems-backend-go/internal/pkg/email"
	"github.com/teamstack/ems-backend-go/internal/pkg/sse"
)

// listForMeCap bounds how many active announcements are scanned when
// resolving a user's feed. Audience membership is a per-user predicate, so
// the page is cut after filtering, not in SQL.
const listForMeCap = 500

type AnnouncementServiceImpl struct {
	announcement.AnnouncementRepository
	user.UserRepository

	emailService email.EmailService
	hub          *sse.Hub

	now func() time.Time
}

func NewAnnouncementService(
	repo announcement.AnnouncementRepository,
	userRepo user.UserRepository,
	emailService email.EmailService,
	hub *sse.Hub,
) announcement.AnnouncementService {
	return &AnnouncementServiceImpl{
		AnnouncementRepository: repo,
		UserRepository:         userRepo,
		emailService:           emailService,
		hub:                    hub,
		now:                    time.Now,
	}
}

// userIDFromContext extracts the authenticated user from JWT claims
func userIDFromContext(ctx context.Context) (string, error) {
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

// Create implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Create(ctx context.Context, req announcement.CreateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	creatorID, err := userIDFromContext(ctx)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, _ := time.Parse(time.RFC3339, *req.ExpiresAt)
		expiresAt = &t
	}

	entity := announcement.Announcement{
		Title:                  req.Title,
		Content:                req.Content,
		Type:                   announcement.Type(req.Type),
		Priority:               announcement.Priority(req.Priority),
		TargetType:             announcement.TargetType(req.TargetType),
		TargetRoles:            req.TargetRoles,
		TargetDepartments:      req.TargetDepartments,
		TargetUsers:            req.TargetUsers,
		RequiresAcknowledgment: req.RequiresAcknowledgment,
		SendEmail:              req.SendEmail,
		ExpiresAt:              expiresAt,
		Tags:                   req.Tags,
		CreatedBy:              creatorID,
	}

	created, err := s.AnnouncementRepository.Create(ctx, entity)
	if err != nil {
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	// Notification fan-out is fire-and-forget: the announcement is already
	// persisted, and a failing email or push must never roll it back.
	go s.notifyAudience(created)

	return mapAnnouncementToResponse(created, nil), nil
}

func (s *AnnouncementServiceImpl) notifyAudience(a announcement.Announcement) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	candidates, err := s.UserRepository.ListActive(ctx)
	if err != nil {
		slog.Error("Failed to resolve announcement audience", "announcement_id", a.ID, "error", err)
		return
	}
	audience := announcement.ResolveAudience(a, candidates)
	if len(audience) == 0 {
		return
	}

	userIDs := make([]string, 0, len(audience))
	emails := make([]string, 0, len(audience))
	for _, u := range audience {
		userIDs = append(userIDs, u.ID)
		emails = append(emails, u.Email)
	}

	event, err := sse.NewEvent("announcement", mapAnnouncementToResponse(a, nil))
	if err != nil {
		slog.Error("Failed to encode announcement event", "announcement_id", a.ID, "error", err)
	} else {
		s.hub.PublishToMany(userIDs, event)
	}

	if a.SendEmail {
		if err := s.emailService.SendAnnouncement(emails, a.Title, a.Content, string(a.Priority)); err != nil {
			slog.Error("Failed to send announcement email", "announcement_id", a.ID, "error", err)
		}
	}
}

// ListForMe implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) ListForMe(ctx context.Context, filter announcement.AnnouncementFilter) (announcement.ListAnnouncementResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !u.IsActive {
		return announcement.ListAnnouncementResponse{}, user.ErrUserInactive
	}

	page, limit := filter.Page, filter.Limit
	normalizePaging(&page, &limit)

	scan := filter
	scan.ActiveOnly = true
	scan.Page = 1
	scan.Limit = listForMeCap

	all, _, err := s.AnnouncementRepository.List(ctx, scan)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, fmt.Errorf("failed to list announcements: %w", err)
	}
	if len(all) >= listForMeCap {
		slog.Warn("Active announcement scan saturated, feed may be truncated",
			"cap", listForMeCap,
			"user_id", userID,
		)
	}

	mine := make([]announcement.AnnouncementResponse, 0)
	for _, a := range all {
		if !announcement.Targets(a, u) {
			continue
		}
		status := string(announcement.StatusFor(a, userID))
		mine = append(mine, mapAnnouncementToResponse(a, &status))
	}

	total := int64(len(mine))
	start := (page - 1) * limit
	if start > len(mine) {
		start = len(mine)
	}
	end := start + limit
	if end > len(mine) {
		end = len(mine)
	}

	return announcement.ListAnnouncementResponse{
		TotalCount:    total,
		Page:          page,
		Limit:         limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(limit))),
		Announcements: mine[start:end],
	}, nil
}

// List implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) List(ctx context.Context, filter announcement.AnnouncementFilter) (announcement.ListAnnouncementResponse, error) {
	normalizePaging(&filter.Page, &filter.Limit)

	all, total, err := s.AnnouncementRepository.List(ctx, filter)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, fmt.Errorf("failed to list announcements: %w", err)
	}

	responses := make([]announcement.AnnouncementResponse, 0, len(all))
	for _, a := range all {
		responses = append(responses, mapAnnouncementToResponse(a, nil))
	}

	return announcement.ListAnnouncementResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		Announcements: responses,
	}, nil
}

// Get implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Get(ctx context.Context, id string) (announcement.AnnouncementResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	a, err := s.AnnouncementRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return announcement.AnnouncementResponse{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to get announcement: %w", err)
	}

	status := string(announcement.StatusFor(a, userID))
	return mapAnnouncementToResponse(a, &status), nil
}

// receiptTarget loads the announcement and checks the requester may engage
// with it: it must exist, be active, and address the user.
func (s *AnnouncementServiceImpl) receiptTarget(ctx context.Context, id, userID string) error {
	a, err := s.AnnouncementRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return announcement.ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to get announcement: %w", err)
	}

	if !a.IsActive(s.now()) {
		return announcement.ErrAnnouncementExpired
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !announcement.Targets(a, u) {
		return announcement.ErrNotInAudience
	}
	return nil
}

// MarkRead implements announcement.AnnouncementService.
// Idempotent: re-reading is a silent no-op and the first timestamp wins.
func (s *AnnouncementServiceImpl) MarkRead(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.receiptTarget(ctx, id, userID); err != nil {
		return err
	}

	if err := s.AnnouncementRepository.MarkRead(ctx, id, announcement.Receipt{UserID: userID, At: s.now()}); err != nil {
		return fmt.Errorf("failed to mark announcement read: %w", err)
	}
	return nil
}

// Acknowledge implements announcement.AnnouncementService.
// Acknowledgment does not require a prior read; the UI sequences the two but
// the server intentionally does not enforce it.
func (s *AnnouncementServiceImpl) Acknowledge(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.receiptTarget(ctx, id, userID); err != nil {
		return err
	}

	if err := s.AnnouncementRepository.Acknowledge(ctx, id, announcement.Receipt{UserID: userID, At: s.now()}); err != nil {
		return fmt.Errorf("failed to acknowledge announcement: %w", err)
	}
	return nil
}

// GetEngagement implements announcement.AnnouncementService.
// Counts are plain receipt cardinalities, recomputed on every read.
func (s *AnnouncementServiceImpl) GetEngagement(ctx context.Context, id string) (announcement.EngagementResponse, error) {
	a, err := s.AnnouncementRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return announcement.EngagementResponse{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.EngagementResponse{}, fmt.Errorf("failed to get announcement: %w", err)
	}

	return announcement.EngagementResponse{
		AnnouncementID:    a.ID,
		ReadCount:         len(a.ReadBy),
		AcknowledgedCount: len(a.AcknowledgedBy),
		ReadBy:            mapReceipts(a.ReadBy),
		AcknowledgedBy:    mapReceipts(a.AcknowledgedBy),
	}, nil
}

// Delete implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.AnnouncementRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return announcement.ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}

func normalizePaging(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 || *limit > 100 {
		*limit = 20
	}
}

func mapReceipts(receipts []announcement.Receipt) []announcement.ReceiptResponse {
	out := make([]announcement.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, announcement.ReceiptResponse{
			UserID: r.UserID,
			At:     r.At.Format(time.RFC3339),
		})
	}
	return out
}

func mapAnnouncementToResponse(a announcement.Announcement, status *string) announcement.AnnouncementResponse {
	var expiresAt *string
	if a.ExpiresAt != nil {
		v := a.ExpiresAt.Format(time.RFC3339)
		expiresAt = &v
	}

	return announcement.AnnouncementResponse{
		ID:                     a.ID,
		Title:                  a.Title,
		Content:                a.Content,
		Type:                   string(a.Type),
		Priority:               string(a.Priority),
		TargetType:             string(a.TargetType),
		TargetRoles:            a.TargetRoles,
		TargetDepartments:      a.TargetDepartments,
		TargetUsers:            a.TargetUsers,
		RequiresAcknowledgment: a.RequiresAcknowledgment,
		SendEmail:              a.SendEmail,
		ExpiresAt:              expiresAt,
		Tags:                   a.Tags,
		CreatedBy:              a.CreatedBy,
		CreatedAt:              a.CreatedAt.Format(time.RFC3339),
		Status:                 status,
	}
}
