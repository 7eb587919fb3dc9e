package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/announcement"
	"github.com/teamstack/ems-backend-go/internal/pkg/database"
)

type announcementRepository struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create implements announcement.AnnouncementRepository.
func (r *announcementRepository) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO announcements (
			id, title, content, type, priority,
			target_type, target_roles, target_departments, target_users,
			requires_acknowledgment, send_email, expires_at, tags, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID,
		a.Title,
		a.Content,
		a.Type,
		a.Priority,
		a.TargetType,
		a.TargetRoles,
		a.TargetDepartments,
		a.TargetUsers,
		a.RequiresAcknowledgment,
		a.SendEmail,
		a.ExpiresAt,
		a.Tags,
		a.CreatedBy,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	return a, nil
}

const announcementColumns = `
	id, title, content, type, priority,
	target_type, target_roles, target_departments, target_users,
	requires_acknowledgment, send_email, expires_at, tags, created_by,
	created_at, updated_at`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Type, &a.Priority,
		&a.TargetType, &a.TargetRoles, &a.TargetDepartments, &a.TargetUsers,
		&a.RequiresAcknowledgment, &a.SendEmail, &a.ExpiresAt, &a.Tags, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// GetByID implements announcement.AnnouncementRepository.
func (r *announcementRepository) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	a, err := scanAnnouncement(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, fmt.Errorf("failed to get announcement: %w", err)
	}

	if a.ReadBy, err = r.receipts(ctx, "announcement_reads", "read_at", id); err != nil {
		return announcement.Announcement{}, err
	}
	if a.AcknowledgedBy, err = r.receipts(ctx, "announcement_acks", "acknowledged_at", id); err != nil {
		return announcement.Announcement{}, err
	}

	return a, nil
}

func (r *announcementRepository) receipts(ctx context.Context, table, tsColumn, announcementID string) ([]announcement.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(
		`SELECT user_id, %s FROM %s WHERE announcement_id = $1 ORDER BY %s`,
		tsColumn, table, tsColumn,
	)
	rows, err := q.Query(ctx, query, announcementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts from %s: %w", table, err)
	}
	defer rows.Close()

	var receipts []announcement.Receipt
	for rows.Next() {
		var rec announcement.Receipt
		if err := rows.Scan(&rec.UserID, &rec.At); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}

// List implements announcement.AnnouncementRepository.
// Receipts are loaded per announcement; listings are small and paginated.
func (r *announcementRepository) List(ctx context.Context, filter announcement.AnnouncementFilter) ([]announcement.Announcement, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Priority != nil && *filter.Priority != "" {
		baseWhere += fmt.Sprintf(" AND priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}
	if filter.ActiveOnly {
		baseWhere += " AND (expires_at IS NULL OR expires_at > NOW())"
	}

	countQuery := `SELECT COUNT(*) FROM announcements WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM announcements
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, announcementColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range announcements {
		id := announcements[i].ID
		if announcements[i].ReadBy, err = r.receipts(ctx, "announcement_reads", "read_at", id); err != nil {
			return nil, 0, err
		}
		if announcements[i].AcknowledgedBy, err = r.receipts(ctx, "announcement_acks", "acknowledged_at", id); err != nil {
			return nil, 0, err
		}
	}

	return announcements, total, nil
}

// MarkRead implements announcement.AnnouncementRepository.
// ON CONFLICT DO NOTHING gives the append-only, at-most-once receipt
// semantics: re-reading never duplicates or updates the original timestamp.
func (r *announcementRepository) MarkRead(ctx context.Context, announcementID string, rec announcement.Receipt) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO announcement_reads (announcement_id, user_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (announcement_id, user_id) DO NOTHING
	`, announcementID, rec.UserID, rec.At)
	if err != nil {
		return fmt.Errorf("failed to mark announcement read: %w", err)
	}
	return nil
}

// Acknowledge implements announcement.AnnouncementRepository.
func (r *announcementRepository) Acknowledge(ctx context.Context, announcementID string, rec announcement.Receipt) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO announcement_acks (announcement_id, user_id, acknowledged_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (announcement_id, user_id) DO NOTHING
	`, announcementID, rec.UserID, rec.At)
	if err != nil {
		return fmt.Errorf("failed to acknowledge announcement: %w", err)
	}
	return nil
}

// Delete implements announcement.AnnouncementRepository.
// The announcement and its receipt rows go in one transaction.
func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM announcement_reads WHERE announcement_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete read receipts: %w", err)
		}
		if _, err := q.Exec(txCtx, `DELETE FROM announcement_acks WHERE announcement_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete acknowledge receipts: %w", err)
		}

		tag, err := q.Exec(txCtx, `DELETE FROM announcements WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete announcement: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return announcement.ErrAnnouncementNotFound
		}
		return nil
	})
}
