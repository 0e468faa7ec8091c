// Package fixtures provides in-memory repository implementations and seed
// data for service-level tests. The repositories honor the same contracts as
// the PostgreSQL implementations, including soft-delete visibility and the
// employee version compare-and-swap.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffloom/attendance-backend-go/internal/domain/attendance"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/domain/location"
	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
)

// NoopTxRunner satisfies database.TxRunner without a database: the function
// runs directly against the caller's context.
type NoopTxRunner struct{}

func (NoopTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ==========================================
// EMPLOYEES
// ==========================================

type MemoryEmployeeRepo struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewMemoryEmployeeRepo() *MemoryEmployeeRepo {
	return &MemoryEmployeeRepo{employees: make(map[string]employee.Employee)}
}

// Put stores an employee, assigning an id when none is set, and returns it.
func (r *MemoryEmployeeRepo) Put(emp employee.Employee) employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	r.employees[emp.ID] = emp
	return emp
}

func (r *MemoryEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *MemoryEmployeeRepo) GetByIDs(_ context.Context, ids []string) (map[string]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]employee.Employee, len(ids))
	for _, id := range ids {
		if emp, ok := r.employees[id]; ok {
			out[id] = emp
		}
	}
	return out, nil
}

func (r *MemoryEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []employee.Employee
	for _, emp := range r.employees {
		if !emp.IsDeleted() {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryEmployeeRepo) SetProrated(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsProrated = true
	r.employees[id] = emp
	return nil
}

func (r *MemoryEmployeeRepo) CompareAndBumpVersion(_ context.Context, id string, expected int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return 0, employee.ErrEmployeeNotFound
	}
	if emp.Version != expected {
		return 0, employee.ErrVersionConflict
	}
	emp.Version++
	r.employees[id] = emp
	return emp.Version, nil
}

// ==========================================
// LOCATIONS
// ==========================================

type MemoryLocationRepo struct {
	mu        sync.RWMutex
	locations map[string]location.Location
}

func NewMemoryLocationRepo() *MemoryLocationRepo {
	return &MemoryLocationRepo{locations: make(map[string]location.Location)}
}

func (r *MemoryLocationRepo) Put(loc location.Location) location.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	r.locations[loc.ID] = loc
	return loc
}

func (r *MemoryLocationRepo) GetByIDs(_ context.Context, ids []string) (map[string]location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]location.Location, len(ids))
	for _, id := range ids {
		if loc, ok := r.locations[id]; ok {
			out[id] = loc
		}
	}
	return out, nil
}

// ==========================================
// SETTINGS, POLICIES AND HOLIDAYS
// ==========================================

type MemorySettingsRepo struct {
	mu       sync.RWMutex
	settings settings.Settings
	policies map[string]settings.WorkingDayPolicy
	holidays []settings.Holiday
}

func NewMemorySettingsRepo(cfg settings.Settings) *MemorySettingsRepo {
	return &MemorySettingsRepo{
		settings: cfg,
		policies: make(map[string]settings.WorkingDayPolicy),
	}
}

func (r *MemorySettingsRepo) SetSettings(cfg settings.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = cfg
}

func (r *MemorySettingsRepo) SetPolicy(policy settings.WorkingDayPolicy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[policy.LocationID] = policy
}

func (r *MemorySettingsRepo) AddHoliday(h settings.Holiday) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	r.holidays = append(r.holidays, h)
}

func (r *MemorySettingsRepo) Get(_ context.Context) (settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *MemorySettingsRepo) PolicyForLocation(_ context.Context, locationID string) (settings.WorkingDayPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if policy, ok := r.policies[locationID]; ok {
		return policy, nil
	}
	return settings.WorkingDayPolicy{LocationID: locationID, Kind: settings.PolicyAllDays}, nil
}

func (r *MemorySettingsRepo) HolidaysOn(_ context.Context, date time.Time) ([]settings.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []settings.Holiday
	for _, h := range r.holidays {
		if sameDay(h.Date, date) {
			out = append(out, h)
		}
	}
	return out, nil
}

// ==========================================
// ATTENDANCE RECORDS
// ==========================================

type MemoryAttendanceRepo struct {
	mu      sync.RWMutex
	records map[string]attendance.AttendanceRecord
}

func NewMemoryAttendanceRepo() *MemoryAttendanceRepo {
	return &MemoryAttendanceRepo{records: make(map[string]attendance.AttendanceRecord)}
}

func (r *MemoryAttendanceRepo) Create(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *MemoryAttendanceRepo) GetByID(_ context.Context, id string) (attendance.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *MemoryAttendanceRepo) GetActiveByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.IsDeleted && sameDay(rec.Date, date) {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryAttendanceRepo) ListActiveByEmployeesAndDate(_ context.Context, employeeIDs []string, date time.Time) (map[string]attendance.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	out := make(map[string]attendance.AttendanceRecord)
	for _, rec := range r.records {
		if wanted[rec.EmployeeID] && !rec.IsDeleted && sameDay(rec.Date, date) {
			out[rec.EmployeeID] = rec
		}
	}
	return out, nil
}

func (r *MemoryAttendanceRepo) ListActiveByEmployeeMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []attendance.AttendanceRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.IsDeleted &&
			rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *MemoryAttendanceRepo) Update(_ context.Context, rec attendance.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	rec.UpdatedAt = time.Now()
	r.records[rec.ID] = rec
	return nil
}

// ==========================================
// MONTHLY LEAVE RECORDS
// ==========================================

type MemoryLedgerRepo struct {
	mu      sync.RWMutex
	records map[string]leave.MonthlyLeaveRecord
}

func NewMemoryLedgerRepo() *MemoryLedgerRepo {
	return &MemoryLedgerRepo{records: make(map[string]leave.MonthlyLeaveRecord)}
}

func ledgerKey(employeeID string, year int, month time.Month) string {
	return employeeID + "/" + time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (r *MemoryLedgerRepo) Get(_ context.Context, employeeID string, year int, month time.Month) (leave.MonthlyLeaveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[ledgerKey(employeeID, year, month)]
	if !ok {
		return leave.MonthlyLeaveRecord{}, leave.ErrRecordNotFound
	}
	return rec, nil
}

func (r *MemoryLedgerRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.MonthlyLeaveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []leave.MonthlyLeaveRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j].Year, out[j].Month)
	})
	return out, nil
}

func (r *MemoryLedgerRepo) Save(_ context.Context, rec leave.MonthlyLeaveRecord) (leave.MonthlyLeaveRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	r.records[ledgerKey(rec.EmployeeID, rec.Year, rec.Month)] = rec
	return rec, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
