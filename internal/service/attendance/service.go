package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/config"
	"github.com/staffloom/attendance-backend-go/internal/domain/attendance"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/domain/location"
	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
	"github.com/staffloom/attendance-backend-go/internal/pkg/lock"
	"github.com/staffloom/attendance-backend-go/internal/pkg/validator"
	"github.com/staffloom/attendance-backend-go/internal/service/policy"
	"golang.org/x/sync/errgroup"
)

// ReconcileScheduler is the fire-and-forget hook called after a batch
// commits. The reconciliation worker pool implements it.
type ReconcileScheduler interface {
	Schedule(employeeID string, year int, month time.Month)
}

type AttendanceServiceImpl struct {
	tx             database.TxRunner
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	locationRepo   location.Repository
	settingsRepo   settings.Repository
	ledger         leave.LedgerService
	ledgerRepo     leave.LedgerRepository
	policy         *policy.Resolver
	locks          *lock.Manager
	reconciler     ReconcileScheduler
	cfg            config.AttendanceConfig

	now   func() time.Time
	sleep func(time.Duration)
}

func NewAttendanceService(
	tx database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.Repository,
	settingsRepo settings.Repository,
	ledger leave.LedgerService,
	ledgerRepo leave.LedgerRepository,
	policyResolver *policy.Resolver,
	locks *lock.Manager,
	reconciler ReconcileScheduler,
	cfg config.AttendanceConfig,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		locationRepo:   locationRepo,
		settingsRepo:   settingsRepo,
		ledger:         ledger,
		ledgerRepo:     ledgerRepo,
		policy:         policyResolver,
		locks:          locks,
		reconciler:     reconciler,
		cfg:            cfg,
		now:            time.Now,
		sleep:          time.Sleep,
	}
}

// BulkMark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, principal attendance.Principal, req attendance.BulkMarkRequest) (attendance.BulkMarkResponse, error) {
	if validator.IsEmpty(principal.UserID) {
		return attendance.BulkMarkResponse{}, validator.ValidationErrors{{
			Field: "principal", Message: "caller identity is required",
		}}
	}
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	// One tuple per employee per batch; the date is shared, so a second
	// tuple for the same employee could only contradict the first.
	seen := make(map[string]bool, len(req.Entries))
	var issues []attendance.Issue
	for _, entry := range req.Entries {
		if seen[entry.EmployeeID] {
			issues = append(issues, attendance.Issue{
				EmployeeID: entry.EmployeeID,
				Code:       attendance.IssueStructural,
				Message:    "duplicate entry for employee in batch",
			})
		}
		seen[entry.EmployeeID] = true
	}

	employees, locations, resolveIssues, err := s.resolveBatch(ctx, req.Entries, date)
	if err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	issues = append(issues, resolveIssues...)

	// Holiday gate: any holiday on a referenced location rejects the whole
	// batch unless the caller explicitly overwrites. No partial processing
	// of a holiday batch.
	if !req.Overwrite {
		holidayIssues, err := s.holidayGate(ctx, locations, date)
		if err != nil {
			return attendance.BulkMarkResponse{}, err
		}
		if len(holidayIssues) > 0 {
			return attendance.BulkMarkResponse{Errors: holidayIssues},
				attendance.ErrHolidayBlocked
		}
	}

	tupleIssues, err := s.validateTuples(ctx, principal, req.Entries, employees, date)
	if err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	issues = append(issues, tupleIssues...)

	// Hard validation is all-or-nothing: one bad tuple rejects the batch
	// with every collected error, so the caller fixes everything in one
	// round-trip. Duplicates below are deliberately not part of this.
	if len(issues) > 0 {
		return attendance.BulkMarkResponse{Errors: issues}, attendance.ErrBatchValidation
	}

	// Advisory duplicate pass: one batched read skips the bulk of the
	// already-marked employees before any lock is taken. The authoritative
	// re-check happens per employee under the lock below.
	empIDs := make([]string, 0, len(seen))
	for id := range seen {
		empIDs = append(empIDs, id)
	}
	existing, err := s.attendanceRepo.ListActiveByEmployeesAndDate(ctx, empIDs, date)
	if err != nil {
		return attendance.BulkMarkResponse{}, fmt.Errorf("failed to resolve existing attendance: %w", err)
	}

	resp := attendance.BulkMarkResponse{}
	var toApply []attendance.BulkEntry
	for _, entry := range req.Entries {
		if _, dup := existing[entry.EmployeeID]; dup && !req.Overwrite {
			resp.Skipped++
			resp.Warnings = append(resp.Warnings, attendance.Issue{
				EmployeeID: entry.EmployeeID,
				Code:       attendance.IssueStructural,
				Message:    "attendance already marked for this date, skipped",
			})
			continue
		}
		toApply = append(toApply, entry)
	}

	// Deterministic employee order keeps lock acquisition order stable
	// across racing batches.
	sort.Slice(toApply, func(i, j int) bool {
		return toApply[i].EmployeeID < toApply[j].EmployeeID
	})

	touched := make(map[string]bool)
	txErr := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, entry := range toApply {
			token, err := s.locks.Acquire(txCtx, entry.EmployeeID)
			if err != nil {
				return fmt.Errorf("failed to acquire employee lock: %w", err)
			}

			// The batched read above ran before the lock, so a racing
			// writer may have created a record since. Re-check under the
			// lock; it is the only read that can uphold one active record
			// per (employee, date).
			prevPtr, err := s.attendanceRepo.GetActiveByEmployeeAndDate(txCtx, entry.EmployeeID, date)
			if err != nil {
				s.locks.Release(token)
				return fmt.Errorf("failed to re-check existing attendance: %w", err)
			}
			overwriting := prevPtr != nil
			if overwriting && !req.Overwrite {
				s.locks.Release(token)
				resp.Skipped++
				resp.Warnings = append(resp.Warnings, attendance.Issue{
					EmployeeID: entry.EmployeeID,
					Code:       attendance.IssueStructural,
					Message:    "attendance already marked for this date, skipped",
				})
				continue
			}
			var prev attendance.AttendanceRecord
			if overwriting {
				prev = *prevPtr
			}

			_, warning, err := s.applyEntry(txCtx, principal, entry, date, overwriting, prev, leave.DeltaBulk)
			s.locks.Release(token)
			if err != nil {
				return err
			}

			if warning != nil {
				resp.Warnings = append(resp.Warnings, *warning)
			}
			if overwriting {
				resp.Updated++
			} else {
				resp.Created++
			}
			touched[entry.EmployeeID] = true
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, employee.ErrVersionConflict) {
			return attendance.BulkMarkResponse{}, fmt.Errorf("batch aborted after retries: %w", txErr)
		}
		return attendance.BulkMarkResponse{}, txErr
	}

	// Committed: hand the touched months (and each preceding month, to
	// propagate any newly corrected carry-forward) to the reconciler.
	for id := range touched {
		s.reconciler.Schedule(id, date.Year(), date.Month())
		py, pm := leave.PrevMonth(date.Year(), date.Month())
		s.reconciler.Schedule(id, py, pm)
	}

	resp.Success = true
	return resp, nil
}

// resolveBatch resolves every referenced employee and location in one read
// each, collecting structural issues for ids that do not resolve.
func (s *AttendanceServiceImpl) resolveBatch(ctx context.Context, entries []attendance.BulkEntry, date time.Time) (map[string]employee.Employee, map[string]location.Location, []attendance.Issue, error) {
	empIDSet := make(map[string]bool)
	locIDSet := make(map[string]bool)
	for _, e := range entries {
		empIDSet[e.EmployeeID] = true
		locIDSet[e.LocationID] = true
	}
	empIDs := make([]string, 0, len(empIDSet))
	for id := range empIDSet {
		empIDs = append(empIDs, id)
	}
	locIDs := make([]string, 0, len(locIDSet))
	for id := range locIDSet {
		locIDs = append(locIDs, id)
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, empIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve employees: %w", err)
	}
	locations, err := s.locationRepo.GetByIDs(ctx, locIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve locations: %w", err)
	}

	var issues []attendance.Issue
	for _, entry := range entries {
		emp, ok := employees[entry.EmployeeID]
		switch {
		case !ok:
			issues = append(issues, attendance.Issue{
				EmployeeID: entry.EmployeeID,
				Code:       attendance.IssueStructural,
				Message:    "employee does not exist",
			})
		case emp.IsDeleted():
			issues = append(issues, attendance.Issue{
				EmployeeID: entry.EmployeeID,
				Code:       attendance.IssueStructural,
				Message:    "employee has been deleted",
			})
		case emp.JoinedAfter(date):
			issues = append(issues, attendance.Issue{
				EmployeeID: entry.EmployeeID,
				Code:       attendance.IssueStructural,
				Message:    "employee joined after the attendance date",
			})
		}
		if _, ok := locations[entry.LocationID]; !ok {
			issues = append(issues, attendance.Issue{
				EmployeeID: entry.EmployeeID,
				Code:       attendance.IssueStructural,
				Message:    "location does not exist",
			})
		}
	}
	return employees, locations, issues, nil
}

// holidayGate checks every referenced location for a holiday on the date
// and names the holiday in the rejection.
func (s *AttendanceServiceImpl) holidayGate(ctx context.Context, locations map[string]location.Location, date time.Time) ([]attendance.Issue, error) {
	var issues []attendance.Issue
	for id := range locations {
		holiday, err := s.policy.HolidayOn(ctx, id, date)
		if err != nil {
			return nil, err
		}
		if holiday != nil {
			issues = append(issues, attendance.Issue{
				Code: attendance.IssuePolicy,
				Message: fmt.Sprintf("%s is the %q holiday for location %s",
					date.Format("2006-01-02"), holiday.Name, id),
			})
		}
	}
	return issues, nil
}

// validateTuples runs the per-tuple authorization and working-day checks in
// bounded-size parallel batches. Reads only; writes happen later inside the
// transaction.
func (s *AttendanceServiceImpl) validateTuples(ctx context.Context, principal attendance.Principal, entries []attendance.BulkEntry, employees map[string]employee.Employee, date time.Time) ([]attendance.Issue, error) {
	var (
		mu     sync.Mutex
		issues []attendance.Issue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.WorkerBatchSize)

	for _, entry := range entries {
		g.Go(func() error {
			var tupleIssues []attendance.Issue

			if !principal.CanActOn(entry.LocationID) {
				tupleIssues = append(tupleIssues, attendance.Issue{
					EmployeeID: entry.EmployeeID,
					Code:       attendance.IssueAuthorization,
					Message:    "caller is not authorized for this location",
				})
			}
			if emp, ok := employees[entry.EmployeeID]; ok && emp.LocationID != entry.LocationID {
				tupleIssues = append(tupleIssues, attendance.Issue{
					EmployeeID: entry.EmployeeID,
					Code:       attendance.IssueAuthorization,
					Message:    "employee does not belong to this location",
				})
			}

			working, err := s.policy.IsWorkingDay(gctx, entry.LocationID, date)
			if err != nil {
				return err
			}
			if !working && !entry.IsException {
				tupleIssues = append(tupleIssues, attendance.Issue{
					EmployeeID: entry.EmployeeID,
					Code:       attendance.IssuePolicy,
					Message:    "date is not a working day for this location; an exception with a reason is required",
				})
			}

			if len(tupleIssues) > 0 {
				mu.Lock()
				issues = append(issues, tupleIssues...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return issues, nil
}

// applyEntry mutates one employee's ledger and attendance row inside the
// caller's transaction, retrying version conflicts a bounded number of times
// with a fresh employee fetch each attempt. The caller holds the employee's
// lock.
func (s *AttendanceServiceImpl) applyEntry(ctx context.Context, principal attendance.Principal, entry attendance.BulkEntry, date time.Time, overwriting bool, prev attendance.AttendanceRecord, mode leave.DeltaMode) (attendance.AttendanceRecord, *attendance.Issue, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return attendance.AttendanceRecord{}, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	status := attendance.Status(entry.Status)
	newUnits := status.LeaveUnits(cfg.HalfDayDeductionWeight)
	delta := newUnits
	if overwriting {
		delta = newUnits.Sub(prev.Status.LeaveUnits(cfg.HalfDayDeductionWeight))
	}

	var warning *attendance.Issue
	for attempt := 0; attempt < s.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(s.cfg.RetryBackoff)
		}

		emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
		if err != nil {
			return attendance.AttendanceRecord{}, nil, err
		}

		if delta.IsZero() {
			if _, err := s.ledger.EnsureMonth(ctx, emp, date.Year(), date.Month()); err != nil {
				return attendance.AttendanceRecord{}, nil, err
			}
		} else {
			result, err := s.ledger.ApplyDelta(ctx, emp, date.Year(), date.Month(), delta, mode)
			if errors.Is(err, employee.ErrVersionConflict) {
				slog.Debug("version conflict applying ledger delta, retrying",
					"employee_id", entry.EmployeeID, "attempt", attempt+1)
				continue
			}
			if err != nil {
				return attendance.AttendanceRecord{}, nil, err
			}
			if result.UnpaidUnits.IsPositive() {
				warning = &attendance.Issue{
					EmployeeID: entry.EmployeeID,
					Code:       attendance.IssueBalance,
					Message: fmt.Sprintf("insufficient balance: %s day(s) recorded as unpaid",
						result.UnpaidUnits),
				}
			}
		}

		if overwriting {
			prev.Status = status
			prev.IsException = entry.IsException
			prev.ExceptionReason = optional(entry.ExceptionReason)
			prev.ExceptionDescription = optional(entry.ExceptionDescription)
			prev.MarkedBy = principal.UserID
			prev.PresenceDays = status.PresenceDays()
			if err := s.attendanceRepo.Update(ctx, prev); err != nil {
				return attendance.AttendanceRecord{}, nil, fmt.Errorf("failed to update attendance record: %w", err)
			}
			return prev, warning, nil
		}

		rec := attendance.AttendanceRecord{
			EmployeeID:           entry.EmployeeID,
			Date:                 date,
			Status:               status,
			LocationID:           entry.LocationID,
			IsException:          entry.IsException,
			ExceptionReason:      optional(entry.ExceptionReason),
			ExceptionDescription: optional(entry.ExceptionDescription),
			MarkedBy:             principal.UserID,
			PresenceDays:         status.PresenceDays(),
		}
		created, err := s.attendanceRepo.Create(ctx, rec)
		if err != nil {
			return attendance.AttendanceRecord{}, nil, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return created, warning, nil
	}

	return attendance.AttendanceRecord{}, nil, fmt.Errorf("employee %s: retries exhausted: %w",
		entry.EmployeeID, employee.ErrVersionConflict)
}

// Mark implements the single-record path. Unlike BulkMark, a leave mark
// exceeding the available balance is rejected outright rather than clamped.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, principal attendance.Principal, req attendance.MarkRequest) (attendance.AttendanceResponse, error) {
	if validator.IsEmpty(principal.UserID) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field: "principal", Message: "caller identity is required",
		}}
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	if !principal.CanActOn(req.LocationID) {
		return attendance.AttendanceResponse{}, attendance.ErrLocationNotPermitted
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if emp.IsDeleted() {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeDeleted
	}
	if emp.JoinedAfter(date) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field: "date", Message: "employee joined after the attendance date",
		}}
	}
	if emp.LocationID != req.LocationID {
		return attendance.AttendanceResponse{}, attendance.ErrLocationNotPermitted
	}
	locs, err := s.locationRepo.GetByIDs(ctx, []string{req.LocationID})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, ok := locs[req.LocationID]; !ok {
		return attendance.AttendanceResponse{}, location.ErrLocationNotFound
	}

	if !req.Overwrite {
		holiday, err := s.policy.HolidayOn(ctx, req.LocationID, date)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if holiday != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("%s is the %q holiday: %w",
				req.Date, holiday.Name, attendance.ErrHolidayBlocked)
		}
	}
	working, err := s.policy.IsWorkingDay(ctx, req.LocationID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !working && !req.IsException {
		return attendance.AttendanceResponse{}, attendance.ErrNonWorkingDay
	}

	entry := attendance.BulkEntry{
		EmployeeID:           req.EmployeeID,
		Status:               req.Status,
		LocationID:           req.LocationID,
		IsException:          req.IsException,
		ExceptionReason:      req.ExceptionReason,
		ExceptionDescription: req.ExceptionDescription,
	}

	var saved attendance.AttendanceRecord
	txErr := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		token, err := s.locks.Acquire(txCtx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to acquire employee lock: %w", err)
		}
		defer s.locks.Release(token)

		// Read under the lock so a racing mark for the same (employee,
		// date) cannot slip past the duplicate check.
		prevPtr, err := s.attendanceRepo.GetActiveByEmployeeAndDate(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if prevPtr != nil && !req.Overwrite {
			return attendance.ErrAlreadyMarked
		}
		var prev attendance.AttendanceRecord
		if prevPtr != nil {
			prev = *prevPtr
		}

		saved, _, err = s.applyEntry(txCtx, principal, entry, date, prevPtr != nil, prev, leave.DeltaSingle)
		return err
	})
	if txErr != nil {
		return attendance.AttendanceResponse{}, txErr
	}

	s.reconciler.Schedule(req.EmployeeID, date.Year(), date.Month())
	py, pm := leave.PrevMonth(date.Year(), date.Month())
	s.reconciler.Schedule(req.EmployeeID, py, pm)

	return toResponse(saved), nil
}

// Undo soft-deletes a record and reverses its ledger delta. The reversal
// drains unpaid usage before paid usage and un-finalizes the month if needed.
func (s *AttendanceServiceImpl) Undo(ctx context.Context, principal attendance.Principal, id string) error {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.IsDeleted {
		return attendance.ErrAttendanceDeleted
	}
	if !principal.CanActOn(rec.LocationID) {
		return attendance.ErrLocationNotPermitted
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	units := rec.Status.LeaveUnits(cfg.HalfDayDeductionWeight)

	txErr := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		token, err := s.locks.Acquire(txCtx, rec.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to acquire employee lock: %w", err)
		}
		defer s.locks.Release(token)

		if units.IsPositive() {
			for attempt := 0; ; attempt++ {
				if attempt > 0 {
					s.sleep(s.cfg.RetryBackoff)
				}
				emp, err := s.employeeRepo.GetByID(txCtx, rec.EmployeeID)
				if err != nil {
					return err
				}
				_, err = s.ledger.Reverse(txCtx, emp, rec.Date.Year(), rec.Date.Month(), units)
				if errors.Is(err, employee.ErrVersionConflict) && attempt+1 < s.cfg.RetryAttempts {
					continue
				}
				if err != nil {
					return err
				}
				break
			}
		}

		now := s.now()
		rec.IsDeleted = true
		rec.DeletedAt = &now
		if err := s.attendanceRepo.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to soft-delete attendance record: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.reconciler.Schedule(rec.EmployeeID, rec.Date.Year(), rec.Date.Month())
	py, pm := leave.PrevMonth(rec.Date.Year(), rec.Date.Month())
	s.reconciler.Schedule(rec.EmployeeID, py, pm)

	slog.Info("attendance undone",
		"attendance_id", rec.ID, "employee_id", rec.EmployeeID,
		"date", rec.Date.Format("2006-01-02"), "undone_by", principal.UserID)
	return nil
}

// MonthlySummary aggregates an employee's month for payroll: status counts
// from the attendance rows, balance figures straight from the ledger record.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthlySummary{}, err
	}

	records, err := s.attendanceRepo.ListActiveByEmployeeMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	summary := attendance.MonthlySummary{
		EmployeeID: employeeID,
		Year:       year,
		Month:      int(month),
	}
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusLeave:
			summary.LeaveDays++
		}
	}

	ledgerRec, err := s.ledgerRepo.Get(ctx, employeeID, year, month)
	if errors.Is(err, leave.ErrRecordNotFound) {
		// No marks this month yet: every balance figure is zero.
		summary.PaidLeaveUsed = decimal.Zero
		summary.UnpaidDays = decimal.Zero
		summary.Allocated = decimal.Zero
		summary.Available = decimal.Zero
		summary.CarriedForward = decimal.Zero
		return summary, nil
	}
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	summary.PaidLeaveUsed = ledgerRec.Taken
	summary.UnpaidDays = ledgerRec.Unpaid
	summary.Allocated = ledgerRec.Allocated
	summary.Available = ledgerRec.Available()
	summary.CarriedForward = ledgerRec.CarriedForward
	summary.IsFinalized = ledgerRec.IsFinalized
	return summary, nil
}

func toResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		Date:            rec.Date.Format("2006-01-02"),
		Status:          string(rec.Status),
		LocationID:      rec.LocationID,
		IsException:     rec.IsException,
		ExceptionReason: rec.ExceptionReason,
		PresenceDays:    rec.PresenceDays,
		MarkedBy:        rec.MarkedBy,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
