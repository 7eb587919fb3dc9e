package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/attendance"
	"github.com/teamstack/ems-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// CreateIfAbsent implements attendance.AttendanceRepository.
// The UNIQUE(employee_id, date) constraint plus ON CONFLICT DO NOTHING makes
// the insert conditional and atomic, so two racing clock-ins cannot both
// create a session for the same day.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, clock_in, breaks,
			status, is_late, late_by_minutes, location
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.ClockIn,
		att.Breaks,
		att.Status,
		att.IsLate,
		att.LateByMinutes,
		att.Location,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict path: a record for (employee, date) already exists
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.breaks,
	a.total_worked_hours, a.total_break_hours, a.status,
	a.is_late, a.late_by_minutes, a.location,
	a.created_at, a.updated_at,
	u.full_name AS employee_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut, &att.Breaks,
		&att.TotalWorkedHours, &att.TotalBreakHours, &att.Status,
		&att.IsLate, &att.LateByMinutes, &att.Location,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	return att, err
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			clock_in = $2,
			clock_out = $3,
			breaks = $4,
			total_worked_hours = $5,
			total_break_hours = $6,
			status = $7,
			is_late = $8,
			late_by_minutes = $9,
			location = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.ClockIn,
		att.ClockOut,
		att.Breaks,
		att.TotalWorkedHours,
		att.TotalBreakHours,
		att.Status,
		att.IsLate,
		att.LateByMinutes,
		att.Location,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM attendance_records a WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, a.clock_in DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, total, rows.Err()
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	adminFilter := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		DateFrom:   filter.DateFrom,
		DateTo:     filter.DateTo,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	return a.List(ctx, adminFilter)
}

// DeleteByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM attendance_records WHERE date BETWEEN $1 AND $2`,
		from, to,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance records: %w", err)
	}
	return tag.RowsAffected(), nil
}
