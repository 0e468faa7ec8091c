package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) leave.LedgerRepository {
	return &ledgerRepository{db: db}
}

const leaveRecordColumns = `
	id, employee_id, year, month,
	allocated, taken, carried_forward, unpaid,
	is_finalized, finalized_at, created_at, updated_at
`

func scanLeaveRecord(row pgx.Row) (leave.MonthlyLeaveRecord, error) {
	var rec leave.MonthlyLeaveRecord
	var month int
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Year, &month,
		&rec.Allocated, &rec.Taken, &rec.CarriedForward, &rec.Unpaid,
		&rec.IsFinalized, &rec.FinalizedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	rec.Month = time.Month(month)
	return rec, err
}

// Get implements leave.LedgerRepository.
func (r *ledgerRepository) Get(ctx context.Context, employeeID string, year int, month time.Month) (leave.MonthlyLeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRecordColumns + `
		FROM monthly_leave_records
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	rec, err := scanLeaveRecord(q.QueryRow(ctx, query, employeeID, year, int(month)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.MonthlyLeaveRecord{}, leave.ErrRecordNotFound
		}
		return leave.MonthlyLeaveRecord{}, fmt.Errorf("failed to get leave record: %w", err)
	}
	return rec, nil
}

// ListByEmployee implements leave.LedgerRepository.
func (r *ledgerRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.MonthlyLeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRecordColumns + `
		FROM monthly_leave_records
		WHERE employee_id = $1
		ORDER BY year, month
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var out []leave.MonthlyLeaveRecord
	for rows.Next() {
		rec, err := scanLeaveRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Save implements leave.LedgerRepository. The upsert keys on
// (employee_id, year, month) so EnsureMonth and reconciliation can both call
// it without racing on existence.
func (r *ledgerRepository) Save(ctx context.Context, rec leave.MonthlyLeaveRecord) (leave.MonthlyLeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_leave_records (
			employee_id, year, month,
			allocated, taken, carried_forward, unpaid,
			is_finalized, finalized_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			allocated = EXCLUDED.allocated,
			taken = EXCLUDED.taken,
			carried_forward = EXCLUDED.carried_forward,
			unpaid = EXCLUDED.unpaid,
			is_finalized = EXCLUDED.is_finalized,
			finalized_at = EXCLUDED.finalized_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Year,
		int(rec.Month),
		rec.Allocated,
		rec.Taken,
		rec.CarriedForward,
		rec.Unpaid,
		rec.IsFinalized,
		rec.FinalizedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return leave.MonthlyLeaveRecord{}, fmt.Errorf("failed to save leave record: %w", err)
	}
	return rec, nil
}
