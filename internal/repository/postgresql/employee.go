package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, full_name, employee_code, location_id, join_date,
	is_prorated, is_manual_quota, version,
	deleted_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.EmployeeCode, &emp.LocationID, &emp.JoinDate,
		&emp.IsProrated, &emp.IsManualQuota, &emp.Version,
		&emp.DeletedAt, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string) (map[string]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	out := make(map[string]employee.Employee, len(ids))
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out[emp.ID] = emp
	}
	return out, rows.Err()
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE deleted_at IS NULL ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

// SetProrated implements employee.EmployeeRepository.
func (r *employeeRepository) SetProrated(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET is_prorated = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to set prorated flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// CompareAndBumpVersion implements employee.EmployeeRepository. The WHERE
// clause makes the bump atomic: a concurrent writer that got there first
// leaves no matching row and the caller sees ErrVersionConflict.
func (r *employeeRepository) CompareAndBumpVersion(ctx context.Context, id string, expected int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	var version int64
	err := q.QueryRow(ctx, query, id, expected).Scan(&version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, employee.ErrVersionConflict
		}
		return 0, fmt.Errorf("failed to bump employee version: %w", err)
	}
	return version, nil
}
