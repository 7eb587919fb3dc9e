package announcement

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamstack/ems-backend-go/internal/domain/announcement"
	"github.com/teamstack/ems-backend-go/internal/domain/user"
	"github.com/teamstack/ems-backend-go/internal/pkg/sse"
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

type fakeAnnouncementRepo struct {
	mu    sync.Mutex
	store map[string]*announcement.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{store: make(map[string]*announcement.Announcement)}
}

func (f *fakeAnnouncementRepo) Create(_ context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now()
	copied := a
	f.store[a.ID] = &copied
	return a, nil
}

func (f *fakeAnnouncementRepo) GetByID(_ context.Context, id string) (announcement.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.store[id]
	if !ok {
		return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
	}
	return *a, nil
}

func (f *fakeAnnouncementRepo) List(_ context.Context, filter announcement.AnnouncementFilter) ([]announcement.Announcement, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]announcement.Announcement, 0, len(f.store))
	now := time.Now()
	for _, a := range f.store {
		if filter.ActiveOnly && !a.IsActive(now) {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAnnouncementRepo) MarkRead(_ context.Context, announcementID string, r announcement.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.store[announcementID]
	if !ok {
		return announcement.ErrAnnouncementNotFound
	}
	if a.HasRead(r.UserID) {
		return nil
	}
	a.ReadBy = append(a.ReadBy, r)
	return nil
}

func (f *fakeAnnouncementRepo) Acknowledge(_ context.Context, announcementID string, r announcement.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.store[announcementID]
	if !ok {
		return announcement.ErrAnnouncementNotFound
	}
	if a.HasAcknowledged(r.UserID) {
		return nil
	}
	a.AcknowledgedBy = append(a.AcknowledgedBy, r)
	return nil
}

func (f *fakeAnnouncementRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.store[id]; !ok {
		return announcement.ErrAnnouncementNotFound
	}
	delete(f.store, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeEmailService struct {
	mu    sync.Mutex
	sends [][]string
}

func (f *fakeEmailService) SendAnnouncement(to []string, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, to)
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "admin",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeAnnouncementRepo, users *fakeUserRepo) *AnnouncementServiceImpl {
	return &AnnouncementServiceImpl{
		AnnouncementRepository: repo,
		UserRepository:         users,
		emailService:           &fakeEmailService{},
		hub:                    sse.NewHub(),
		now:                    time.Now,
	}
}

// defaultUsers covers the identities the tests authenticate as.
func defaultUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{
		"admin-1": {ID: "admin-1", Email: "admin@example.com", Role: user.RoleAdmin, Department: "Operations", IsActive: true},
		"u1":      {ID: "u1", Email: "u1@example.com", Role: user.RoleEmployee, Department: "Engineering", IsActive: true},
		"u2":      {ID: "u2", Email: "u2@example.com", Role: user.RoleEmployee, Department: "Sales", IsActive: true},
	}}
}

func validCreateRequest() announcement.CreateAnnouncementRequest {
	return announcement.CreateAnnouncementRequest{
		Title:      "Maintenance window",
		Content:    "Systems go down at midnight.",
		Type:       "system",
		Priority:   "high",
		TargetType: "all",
	}
}

func TestCreate_SetsCreator(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	users := &fakeUserRepo{users: map[string]user.User{}}
	svc := newTestService(repo, users)
	ctx := authedContext(t, "admin-1")

	resp, err := svc.Create(ctx, validCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "admin-1", resp.CreatedBy)
}

func TestCreate_RejectsMismatchedTargetLists(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	ctx := authedContext(t, "admin-1")

	req := validCreateRequest()
	req.TargetType = "department"
	req.TargetDepartments = []string{"Engineering"}
	req.TargetUsers = []string{"u1"}

	_, err := svc.Create(ctx, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestCreate_RejectsMissingTargetList(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	ctx := authedContext(t, "admin-1")

	req := validCreateRequest()
	req.TargetType = "role"

	_, err := svc.Create(ctx, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestMarkRead_Idempotent(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	ctx := authedContext(t, "u1")

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, created.ID))
	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, first.ReadBy, 1)
	firstAt := first.ReadBy[0].At

	require.NoError(t, svc.MarkRead(ctx, created.ID))
	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, second.ReadBy, 1)
	assert.Equal(t, firstAt, second.ReadBy[0].At)
}

func TestMarkRead_UnknownAnnouncement(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	ctx := authedContext(t, "u1")

	err := svc.MarkRead(ctx, "missing")

	assert.ErrorIs(t, err, announcement.ErrAnnouncementNotFound)
}

func TestAcknowledge_WithoutPriorRead(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	ctx := authedContext(t, "u1")

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Acknowledge(ctx, created.ID))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.AcknowledgedBy, 1)
	assert.Empty(t, stored.ReadBy)
}

func TestGetEngagement_Counts(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	creator := authedContext(t, "admin-1")

	created, err := svc.Create(creator, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(authedContext(t, "u1"), created.ID))
	require.NoError(t, svc.MarkRead(authedContext(t, "u2"), created.ID))
	require.NoError(t, svc.Acknowledge(authedContext(t, "u1"), created.ID))

	engagement, err := svc.GetEngagement(creator, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, engagement.ReadCount)
	assert.Equal(t, 1, engagement.AcknowledgedCount)
	assert.Len(t, engagement.ReadBy, 2)
	assert.Len(t, engagement.AcknowledgedBy, 1)
}

func TestListForMe_FiltersByAudienceAndStatus(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "u1@example.com", Role: user.RoleEmployee, Department: "Engineering", IsActive: true},
	}}
	svc := newTestService(repo, users)
	admin := authedContext(t, "admin-1")

	forEngineering := validCreateRequest()
	forEngineering.TargetType = "department"
	forEngineering.TargetDepartments = []string{"Engineering"}
	_, err := svc.Create(admin, forEngineering)
	require.NoError(t, err)

	forSales := validCreateRequest()
	forSales.TargetType = "department"
	forSales.TargetDepartments = []string{"Sales"}
	_, err = svc.Create(admin, forSales)
	require.NoError(t, err)

	resp, err := svc.ListForMe(authedContext(t, "u1"), announcement.AnnouncementFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Announcements, 1)
	require.NotNil(t, resp.Announcements[0].Status)
	assert.Equal(t, "unread", *resp.Announcements[0].Status)
}

func TestListForMe_InactiveUserRejected(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", IsActive: false},
	}}
	svc := newTestService(repo, users)

	_, err := svc.ListForMe(authedContext(t, "u1"), announcement.AnnouncementFilter{})

	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestListForMe_ExcludesExpired(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Role: user.RoleEmployee, Department: "Engineering", IsActive: true},
	}}
	svc := newTestService(repo, users)
	admin := authedContext(t, "admin-1")

	expired := validCreateRequest()
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	expired.ExpiresAt = &past
	_, err := svc.Create(admin, expired)
	require.NoError(t, err)

	resp, err := svc.ListForMe(authedContext(t, "u1"), announcement.AnnouncementFilter{})
	require.NoError(t, err)

	assert.Empty(t, resp.Announcements)
}

func TestListForMe_ScanSaturationLogged(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())

	for i := 0; i < listForMeCap; i++ {
		id := uuid.New().String()
		repo.store[id] = &announcement.Announcement{
			ID:         id,
			Title:      "Maintenance window",
			TargetType: announcement.TargetAll,
			Priority:   announcement.PriorityLow,
		}
	}

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	resp, err := svc.ListForMe(authedContext(t, "u1"), announcement.AnnouncementFilter{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(listForMeCap), resp.TotalCount)
	assert.Contains(t, buf.String(), "saturated")
}

func TestMarkRead_ExpiredAnnouncement(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())
	ctx := authedContext(t, "u1")

	req := validCreateRequest()
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	req.ExpiresAt = &past
	created, err := svc.Create(authedContext(t, "admin-1"), req)
	require.NoError(t, err)

	err = svc.MarkRead(ctx, created.ID)

	assert.ErrorIs(t, err, announcement.ErrAnnouncementExpired)
}

func TestAcknowledge_OutsideAudience(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())

	req := validCreateRequest()
	req.TargetType = "department"
	req.TargetDepartments = []string{"Engineering"}
	created, err := svc.Create(authedContext(t, "admin-1"), req)
	require.NoError(t, err)

	err = svc.Acknowledge(authedContext(t, "u2"), created.ID)

	assert.ErrorIs(t, err, announcement.ErrNotInAudience)
}

func TestDelete_UnknownAnnouncement(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestService(repo, defaultUsers())

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, announcement.ErrAnnouncementNotFound)
}
