package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
	"github.com/staffloom/attendance-backend-go/internal/pkg/cache"
)

var twelve = decimal.NewFromInt(12)

type LedgerServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	ledgerRepo   leave.LedgerRepository
	settingsRepo settings.Repository
	memo         *cache.Cache

	now func() time.Time
}

func NewLedgerService(
	employeeRepo employee.EmployeeRepository,
	ledgerRepo leave.LedgerRepository,
	settingsRepo settings.Repository,
	memo *cache.Cache,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		employeeRepo: employeeRepo,
		ledgerRepo:   ledgerRepo,
		settingsRepo: settingsRepo,
		memo:         memo,
		now:          time.Now,
	}
}

// MonthlyAllocation implements leave.LedgerService.
// A full-year employee accrues yearlyAllocation/12 per month. A mid-year
// joiner accrues floor((monthsRemaining/12) × yearlyAllocation) over the
// months from the join month onward, and the proration flag sticks so the
// auto-recompute pass never overwrites the reduced figure.
func (s *LedgerServiceImpl) MonthlyAllocation(ctx context.Context, emp employee.Employee, year int) (decimal.Decimal, error) {
	if cached, ok := s.memo.Get(emp.ID, year, time.January, cache.KindAllocation); ok {
		if alloc, ok := cached.(decimal.Decimal); ok {
			return alloc, nil
		}
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load settings: %w", err)
	}
	yearly := decimal.NewFromInt(int64(cfg.PaidLeavesPerYear))

	monthly := yearly.Div(twelve)
	if emp.JoinDate.Year() == year && emp.JoinDate.Month() > time.January {
		monthsRemaining := int64(12 - int(emp.JoinDate.Month()) + 1)
		proratedYearly := yearly.
			Mul(decimal.NewFromInt(monthsRemaining)).
			Div(twelve).
			Floor()
		monthly = proratedYearly.Div(decimal.NewFromInt(monthsRemaining))

		if !emp.IsProrated {
			if err := s.employeeRepo.SetProrated(ctx, emp.ID); err != nil {
				return decimal.Zero, fmt.Errorf("failed to set proration flag: %w", err)
			}
		}
	}

	s.memo.Set(emp.ID, year, time.January, cache.KindAllocation, monthly)
	return monthly, nil
}

// EnsureMonth implements leave.LedgerService.
func (s *LedgerServiceImpl) EnsureMonth(ctx context.Context, emp employee.Employee, year int, month time.Month) (leave.MonthlyLeaveRecord, error) {
	rec, err := s.ledgerRepo.Get(ctx, emp.ID, year, month)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, leave.ErrRecordNotFound) {
		return leave.MonthlyLeaveRecord{}, fmt.Errorf("failed to get monthly leave record: %w", err)
	}

	alloc, err := s.MonthlyAllocation(ctx, emp, year)
	if err != nil {
		return leave.MonthlyLeaveRecord{}, err
	}

	carried := decimal.Zero
	if !emp.InJoinMonth(year, month) {
		carried, err = s.carryForwardInto(ctx, emp.ID, year, month)
		if err != nil {
			return leave.MonthlyLeaveRecord{}, err
		}
	}

	created, err := s.ledgerRepo.Save(ctx, leave.NewMonthlyLeaveRecord(emp.ID, year, month, alloc, carried))
	if err != nil {
		return leave.MonthlyLeaveRecord{}, fmt.Errorf("failed to create monthly leave record: %w", err)
	}
	return created, nil
}

// carryForwardInto derives the carry-forward for (year, month): the prior
// month's available balance if that month is finalized, else the balance of
// the most recent finalized month, else zero. Always clamped to the cap.
func (s *LedgerServiceImpl) carryForwardInto(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load settings: %w", err)
	}

	records, err := s.ledgerRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list monthly leave records: %w", err)
	}

	prevYear, prevMonth := leave.PrevMonth(year, month)
	var lastFinalized *leave.MonthlyLeaveRecord
	for i := range records {
		rec := records[i]
		if !rec.Before(year, month) {
			continue
		}
		if rec.Year == prevYear && rec.Month == prevMonth && rec.IsFinalized {
			return clampCarry(rec.Available(), cfg.MaxCarryForward), nil
		}
		if rec.IsFinalized {
			lastFinalized = &records[i]
		}
	}

	if lastFinalized != nil {
		return clampCarry(lastFinalized.Available(), cfg.MaxCarryForward), nil
	}
	return decimal.Zero, nil
}

// ApplyDelta implements leave.LedgerService.
// The version bump runs before the record write so a conflicting writer
// fails cleanly without touching balances; callers re-fetch and reapply.
func (s *LedgerServiceImpl) ApplyDelta(ctx context.Context, emp employee.Employee, year int, month time.Month, units decimal.Decimal, mode leave.DeltaMode) (leave.ApplyResult, error) {
	rec, err := s.EnsureMonth(ctx, emp, year, month)
	if err != nil {
		return leave.ApplyResult{}, err
	}
	if rec.IsFinalized {
		return leave.ApplyResult{}, leave.ErrRecordFinalized
	}

	result := leave.ApplyResult{UnpaidUnits: decimal.Zero}

	switch {
	case units.IsPositive():
		avail := rec.Available()
		if units.GreaterThan(avail) {
			if mode == leave.DeltaSingle {
				return leave.ApplyResult{}, leave.ErrInsufficientBalance
			}
			// Bulk path: clamp paid usage at the ceiling, push the
			// shortfall into unpaid so the batch is never blocked by one
			// employee's balance.
			excess := units.Sub(avail)
			rec.Taken = rec.Taken.Add(avail)
			rec.Unpaid = rec.Unpaid.Add(excess)
			result.UnpaidUnits = excess
		} else {
			rec.Taken = rec.Taken.Add(units)
		}
	case units.IsNegative():
		drainUsage(&rec, units.Neg())
	default:
		result.Record = rec
		return result, nil
	}

	if _, err := s.employeeRepo.CompareAndBumpVersion(ctx, emp.ID, emp.Version); err != nil {
		return leave.ApplyResult{}, err
	}

	saved, err := s.ledgerRepo.Save(ctx, rec)
	if err != nil {
		return leave.ApplyResult{}, fmt.Errorf("failed to save monthly leave record: %w", err)
	}
	result.Record = saved
	return result, nil
}

// drainUsage subtracts units of usage, consuming unpaid usage before paid.
func drainUsage(rec *leave.MonthlyLeaveRecord, units decimal.Decimal) {
	fromUnpaid := decimal.Min(units, rec.Unpaid)
	rec.Unpaid = rec.Unpaid.Sub(fromUnpaid)

	rest := units.Sub(fromUnpaid)
	rec.Taken = rec.Taken.Sub(rest)
	if rec.Taken.IsNegative() {
		rec.Taken = decimal.Zero
	}
}

// Finalize implements leave.LedgerService.
func (s *LedgerServiceImpl) Finalize(ctx context.Context, emp employee.Employee, year int, month time.Month) (leave.MonthlyLeaveRecord, error) {
	if cached, ok := s.memo.Get(emp.ID, year, month, cache.KindFinalization); ok {
		if rec, ok := cached.(leave.MonthlyLeaveRecord); ok && rec.IsFinalized {
			return rec, nil
		}
	}

	rec, err := s.EnsureMonth(ctx, emp, year, month)
	if err != nil {
		return leave.MonthlyLeaveRecord{}, err
	}
	if rec.IsFinalized {
		// Idempotent: FinalizedAt keeps its original stamp.
		s.memo.Set(emp.ID, year, month, cache.KindFinalization, rec)
		return rec, nil
	}

	if _, err := s.employeeRepo.CompareAndBumpVersion(ctx, emp.ID, emp.Version); err != nil {
		return leave.MonthlyLeaveRecord{}, err
	}

	finalizedAt := s.now()
	rec.IsFinalized = true
	rec.FinalizedAt = &finalizedAt

	saved, err := s.ledgerRepo.Save(ctx, rec)
	if err != nil {
		return leave.MonthlyLeaveRecord{}, fmt.Errorf("failed to finalize monthly leave record: %w", err)
	}

	if err := s.propagateCarryForward(ctx, saved); err != nil {
		return leave.MonthlyLeaveRecord{}, err
	}

	s.memo.Set(emp.ID, year, month, cache.KindFinalization, saved)
	slog.Info("monthly leave record finalized",
		"employee_id", emp.ID, "year", year, "month", int(month),
		"available", saved.Available())
	return saved, nil
}

// propagateCarryForward refreshes the following month's carry-forward after
// finalization. A next month that does not exist yet picks the value up
// through EnsureMonth when it is first created.
func (s *LedgerServiceImpl) propagateCarryForward(ctx context.Context, finalized leave.MonthlyLeaveRecord) error {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	nextYear, nextMonth := finalized.NextMonth()
	next, err := s.ledgerRepo.Get(ctx, finalized.EmployeeID, nextYear, nextMonth)
	if errors.Is(err, leave.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get next monthly leave record: %w", err)
	}
	if next.IsFinalized {
		return nil
	}

	next.CarriedForward = clampCarry(finalized.Available(), cfg.MaxCarryForward)
	if _, err := s.ledgerRepo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to propagate carry-forward: %w", err)
	}
	return nil
}

// Reverse implements leave.LedgerService.
func (s *LedgerServiceImpl) Reverse(ctx context.Context, emp employee.Employee, year int, month time.Month, units decimal.Decimal) (leave.MonthlyLeaveRecord, error) {
	rec, err := s.ledgerRepo.Get(ctx, emp.ID, year, month)
	if err != nil {
		return leave.MonthlyLeaveRecord{}, err
	}

	if _, err := s.employeeRepo.CompareAndBumpVersion(ctx, emp.ID, emp.Version); err != nil {
		return leave.MonthlyLeaveRecord{}, err
	}

	if rec.IsFinalized {
		slog.Warn("reversal un-finalizing monthly leave record",
			"employee_id", emp.ID, "year", year, "month", int(month),
			"finalized_at", rec.FinalizedAt)
		rec.IsFinalized = false
		rec.FinalizedAt = nil
		s.memo.Invalidate(emp.ID, year, month, cache.KindFinalization)
	}

	drainUsage(&rec, units)

	saved, err := s.ledgerRepo.Save(ctx, rec)
	if err != nil {
		return leave.MonthlyLeaveRecord{}, fmt.Errorf("failed to save reversed monthly leave record: %w", err)
	}
	return saved, nil
}

// Correct implements leave.LedgerService.
// Finalized months are frozen; only open months are recomputed. Prorated and
// manually adjusted employees are left untouched so a hand-set allocation is
// never clobbered by the automatic pass.
func (s *LedgerServiceImpl) Correct(ctx context.Context, emp employee.Employee) error {
	if emp.IsProrated || emp.IsManualQuota {
		return nil
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	monthly := decimal.NewFromInt(int64(cfg.PaidLeavesPerYear)).Div(twelve)

	records, err := s.ledgerRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return fmt.Errorf("failed to list monthly leave records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	if _, err := s.employeeRepo.CompareAndBumpVersion(ctx, emp.ID, emp.Version); err != nil {
		return err
	}

	lastFinalizedCarry := decimal.Zero
	for i := range records {
		rec := records[i]
		if rec.IsFinalized {
			lastFinalizedCarry = clampCarry(rec.Available(), cfg.MaxCarryForward)
			continue
		}

		carried := decimal.Zero
		switch {
		case emp.InJoinMonth(rec.Year, rec.Month):
			// Join month never carries anything in.
		case i > 0 && records[i-1].IsFinalized && prevOf(rec) == monthKey(records[i-1]):
			carried = clampCarry(records[i-1].Available(), cfg.MaxCarryForward)
		default:
			carried = lastFinalizedCarry
		}

		total := rec.Taken.Add(rec.Unpaid)
		avail := monthly.Add(carried)
		taken, unpaid := total, decimal.Zero
		if total.GreaterThan(avail) {
			taken = avail
			unpaid = total.Sub(avail)
		}

		if rec.Allocated.Equal(monthly) && rec.CarriedForward.Equal(carried) &&
			rec.Taken.Equal(taken) && rec.Unpaid.Equal(unpaid) {
			continue
		}

		rec.Allocated = monthly
		rec.CarriedForward = carried
		rec.Taken = taken
		rec.Unpaid = unpaid
		if _, err := s.ledgerRepo.Save(ctx, rec); err != nil {
			return fmt.Errorf("failed to save corrected monthly leave record: %w", err)
		}
	}
	return nil
}

type ym struct {
	year  int
	month time.Month
}

func monthKey(rec leave.MonthlyLeaveRecord) ym {
	return ym{rec.Year, rec.Month}
}

func prevOf(rec leave.MonthlyLeaveRecord) ym {
	y, m := leave.PrevMonth(rec.Year, rec.Month)
	return ym{y, m}
}

func clampCarry(avail, cap decimal.Decimal) decimal.Decimal {
	if avail.GreaterThan(cap) {
		return cap
	}
	return avail
}
