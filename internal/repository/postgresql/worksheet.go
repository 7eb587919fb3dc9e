package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/worksheet"
	"github.com/teamstack/ems-backend-go/internal/pkg/database"
)

type worksheetRepository struct {
	db *database.DB
}

func NewWorksheetRepository(db *database.DB) worksheet.WorksheetRepository {
	return &worksheetRepository{db: db}
}

// Create implements worksheet.WorksheetRepository.
func (r *worksheetRepository) Create(ctx context.Context, w worksheet.Worksheet) (worksheet.Worksheet, error) {
	q := GetQuerier(ctx, r.db)

	if w.ID == "" {
		w.ID = uuid.New().String()
	}

	query := `
		INSERT INTO worksheets (id, employee_id, date, title, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.ID, w.EmployeeID, w.Date, w.Title, w.Description,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return worksheet.Worksheet{}, fmt.Errorf("failed to create worksheet: %w", err)
	}

	return w, nil
}

const worksheetColumns = `
	w.id, w.employee_id, w.date, w.title, w.description,
	w.created_at, w.updated_at,
	u.full_name AS employee_name`

func scanWorksheet(row pgx.Row) (worksheet.Worksheet, error) {
	var w worksheet.Worksheet
	err := row.Scan(
		&w.ID, &w.EmployeeID, &w.Date, &w.Title, &w.Description,
		&w.CreatedAt, &w.UpdatedAt,
		&w.EmployeeName,
	)
	return w, err
}

// GetByID implements worksheet.WorksheetRepository.
func (r *worksheetRepository) GetByID(ctx context.Context, id string) (worksheet.Worksheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + worksheetColumns + `
		FROM worksheets w
		LEFT JOIN users u ON u.id = w.employee_id
		WHERE w.id = $1
	`

	w, err := scanWorksheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksheet.Worksheet{}, worksheet.ErrWorksheetNotFound
		}
		return worksheet.Worksheet{}, fmt.Errorf("failed to get worksheet: %w", err)
	}
	return w, nil
}

// List implements worksheet.WorksheetRepository.
func (r *worksheetRepository) List(ctx context.Context, filter worksheet.WorksheetFilter) ([]worksheet.Worksheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND w.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND w.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND w.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM worksheets w WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count worksheets: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM worksheets w
		LEFT JOIN users u ON u.id = w.employee_id
		WHERE %s
		ORDER BY w.date DESC, w.created_at DESC
		LIMIT $%d OFFSET $%d
	`, worksheetColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list worksheets: %w", err)
	}
	defer rows.Close()

	var worksheets []worksheet.Worksheet
	for rows.Next() {
		w, err := scanWorksheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan worksheet: %w", err)
		}
		worksheets = append(worksheets, w)
	}
	return worksheets, total, rows.Err()
}

// Delete implements worksheet.WorksheetRepository.
func (r *worksheetRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM worksheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worksheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksheet.ErrWorksheetNotFound
	}
	return nil
}
