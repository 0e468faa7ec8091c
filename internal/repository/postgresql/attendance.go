package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffloom/attendance-backend-go/internal/domain/attendance"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, status, location_id,
	is_exception, exception_reason, exception_description,
	marked_by, presence_days,
	is_deleted, deleted_at, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.LocationID,
		&rec.IsException, &rec.ExceptionReason, &rec.ExceptionDescription,
		&rec.MarkedBy, &rec.PresenceDays,
		&rec.IsDeleted, &rec.DeletedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, status, location_id,
			is_exception, exception_reason, exception_description,
			marked_by, presence_days
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Date,
		rec.Status,
		rec.LocationID,
		rec.IsException,
		rec.ExceptionReason,
		rec.ExceptionDescription,
		rec.MarkedBy,
		rec.PresenceDays,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// GetActiveByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2 AND is_deleted = FALSE
		LIMIT 1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// ListActiveByEmployeesAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListActiveByEmployeesAndDate(ctx context.Context, employeeIDs []string, date time.Time) (map[string]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = ANY($1) AND date = $2 AND is_deleted = FALSE
	`

	rows, err := q.Query(ctx, query, employeeIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employees and date: %w", err)
	}
	defer rows.Close()

	out := make(map[string]attendance.AttendanceRecord)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		out[rec.EmployeeID] = rec
	}
	return out, rows.Err()
}

// ListActiveByEmployeeMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListActiveByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
		  AND is_deleted = FALSE
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by month: %w", err)
	}
	defer rows.Close()

	var out []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET status = $2,
			is_exception = $3,
			exception_reason = $4,
			exception_description = $5,
			marked_by = $6,
			presence_days = $7,
			is_deleted = $8,
			deleted_at = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.Status,
		rec.IsException,
		rec.ExceptionReason,
		rec.ExceptionDescription,
		rec.MarkedBy,
		rec.PresenceDays,
		rec.IsDeleted,
		rec.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
