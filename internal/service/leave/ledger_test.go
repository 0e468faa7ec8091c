package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/fixtures"
	"github.com/staffloom/attendance-backend-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerEnv struct {
	svc      *LedgerServiceImpl
	emps     *fixtures.MemoryEmployeeRepo
	records  *fixtures.MemoryLedgerRepo
	settings *fixtures.MemorySettingsRepo
}

func newLedgerEnv() *ledgerEnv {
	emps := fixtures.NewMemoryEmployeeRepo()
	records := fixtures.NewMemoryLedgerRepo()
	settings := fixtures.NewMemorySettingsRepo(fixtures.DefaultSettings())
	memo := cache.New(time.Minute, time.Minute)
	return &ledgerEnv{
		svc:      NewLedgerService(emps, records, settings, memo),
		emps:     emps,
		records:  records,
		settings: settings,
	}
}

func (e *ledgerEnv) employee(t *testing.T, joinDate time.Time) employee.Employee {
	t.Helper()
	return e.emps.Put(fixtures.NewEmployee("Test Employee", "loc-1", joinDate))
}

func (e *ledgerEnv) refresh(t *testing.T, emp employee.Employee) employee.Employee {
	t.Helper()
	fresh, err := e.emps.GetByID(context.Background(), emp.ID)
	require.NoError(t, err)
	return fresh
}

func jan1(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyAllocationFullYear(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	alloc, err := env.svc.MonthlyAllocation(context.Background(), emp, 2024)
	require.NoError(t, err)
	assert.True(t, alloc.Equal(decimal.NewFromInt(1)), "12 per year accrues 1 per month, got %s", alloc)

	fresh := env.refresh(t, emp)
	assert.False(t, fresh.IsProrated)
}

func TestMonthlyAllocationProratedMidYearJoiner(t *testing.T) {
	env := newLedgerEnv()
	cfg := fixtures.DefaultSettings()
	cfg.PaidLeavesPerYear = 10
	env.settings.SetSettings(cfg)

	// Joined July: 6 months remain, floor(10 * 6/12) = 5 over 6 months.
	emp := env.employee(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC))

	alloc, err := env.svc.MonthlyAllocation(context.Background(), emp, 2024)
	require.NoError(t, err)

	want := decimal.NewFromInt(5).Div(decimal.NewFromInt(6))
	assert.True(t, alloc.Equal(want), "want %s, got %s", want, alloc)

	fresh := env.refresh(t, emp)
	assert.True(t, fresh.IsProrated, "proration flag must stick")
}

func TestEnsureMonthJoinMonthHasZeroCarry(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))

	rec, err := env.svc.EnsureMonth(context.Background(), emp, 2024, time.March)
	require.NoError(t, err)
	assert.True(t, rec.CarriedForward.IsZero())
	assert.False(t, rec.IsFinalized)
}

func TestEnsureMonthCarriesFromFinalizedPreviousMonth(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	// January finalized with 3 available.
	jan := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(4), decimal.Zero)
	jan.Taken = decimal.NewFromInt(1)
	jan.IsFinalized = true
	_, err := env.records.Save(context.Background(), jan)
	require.NoError(t, err)

	feb, err := env.svc.EnsureMonth(context.Background(), emp, 2024, time.February)
	require.NoError(t, err)
	assert.True(t, feb.CarriedForward.Equal(decimal.NewFromInt(3)), "got %s", feb.CarriedForward)
}

func TestEnsureMonthClampsCarryForwardToCap(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	// 10 available, cap is 6.
	jan := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(10), decimal.Zero)
	jan.IsFinalized = true
	_, err := env.records.Save(context.Background(), jan)
	require.NoError(t, err)

	feb, err := env.svc.EnsureMonth(context.Background(), emp, 2024, time.February)
	require.NoError(t, err)
	assert.True(t, feb.CarriedForward.Equal(decimal.NewFromInt(6)), "got %s", feb.CarriedForward)
}

func TestEnsureMonthFallsBackToLastFinalizedBalance(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	jan := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(2), decimal.Zero)
	jan.IsFinalized = true
	_, err := env.records.Save(context.Background(), jan)
	require.NoError(t, err)

	// February exists but is open, so March takes January's balance.
	feb := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.February, decimal.NewFromInt(1), decimal.Zero)
	_, err = env.records.Save(context.Background(), feb)
	require.NoError(t, err)

	march, err := env.svc.EnsureMonth(context.Background(), emp, 2024, time.March)
	require.NoError(t, err)
	assert.True(t, march.CarriedForward.Equal(decimal.NewFromInt(2)), "got %s", march.CarriedForward)
}

func TestApplyDeltaSingleRejectsInsufficientBalance(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	// Join month: 1 allocated, nothing carried.
	_, err := env.svc.ApplyDelta(context.Background(), emp, 2024, time.January,
		decimal.NewFromInt(2), leave.DeltaSingle)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApplyDeltaBulkClampsAndAccruesUnpaid(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	result, err := env.svc.ApplyDelta(context.Background(), emp, 2024, time.January,
		decimal.NewFromInt(2), leave.DeltaBulk)
	require.NoError(t, err)

	assert.True(t, result.Record.Taken.Equal(decimal.NewFromInt(1)), "taken clamps at available")
	assert.True(t, result.Record.Unpaid.Equal(decimal.NewFromInt(1)))
	assert.True(t, result.UnpaidUnits.Equal(decimal.NewFromInt(1)))
	assert.True(t, result.Record.Available().IsZero())
}

func TestApplyDeltaFinalizedMonthRejected(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	rec := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(1), decimal.Zero)
	rec.IsFinalized = true
	_, err := env.records.Save(context.Background(), rec)
	require.NoError(t, err)

	_, err = env.svc.ApplyDelta(context.Background(), emp, 2024, time.January,
		decimal.NewFromInt(1), leave.DeltaBulk)
	assert.ErrorIs(t, err, leave.ErrRecordFinalized)
}

func TestApplyDeltaStaleVersionConflicts(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	// Another writer bumps the version after our fetch.
	_, err := env.emps.CompareAndBumpVersion(context.Background(), emp.ID, emp.Version)
	require.NoError(t, err)

	_, err = env.svc.ApplyDelta(context.Background(), emp, 2024, time.January,
		decimal.NewFromInt(1), leave.DeltaBulk)
	assert.ErrorIs(t, err, employee.ErrVersionConflict)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	first, err := env.svc.Finalize(context.Background(), emp, 2024, time.January)
	require.NoError(t, err)
	require.True(t, first.IsFinalized)
	require.NotNil(t, first.FinalizedAt)

	second, err := env.svc.Finalize(context.Background(), env.refresh(t, emp), 2024, time.January)
	require.NoError(t, err)
	assert.True(t, second.IsFinalized)
	assert.Equal(t, first.FinalizedAt.Unix(), second.FinalizedAt.Unix(), "finalized-at keeps its original stamp")
}

func TestFinalizePropagatesCarryForwardToOpenNextMonth(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	_, err := env.svc.EnsureMonth(context.Background(), emp, 2024, time.January)
	require.NoError(t, err)

	// February already exists with a stale zero carry.
	feb := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.February, decimal.NewFromInt(1), decimal.Zero)
	_, err = env.records.Save(context.Background(), feb)
	require.NoError(t, err)

	_, err = env.svc.Finalize(context.Background(), env.refresh(t, emp), 2024, time.January)
	require.NoError(t, err)

	updated, err := env.records.Get(context.Background(), emp.ID, 2024, time.February)
	require.NoError(t, err)
	assert.True(t, updated.CarriedForward.Equal(decimal.NewFromInt(1)), "got %s", updated.CarriedForward)
}

func TestReverseUnfinalizesAndDrainsUnpaidFirst(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	finalizedAt := time.Now()
	rec := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(1), decimal.Zero)
	rec.Taken = decimal.NewFromInt(1)
	rec.Unpaid = decimal.NewFromFloat(0.5)
	rec.IsFinalized = true
	rec.FinalizedAt = &finalizedAt
	_, err := env.records.Save(context.Background(), rec)
	require.NoError(t, err)

	reversed, err := env.svc.Reverse(context.Background(), emp, 2024, time.January, decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.False(t, reversed.IsFinalized)
	assert.Nil(t, reversed.FinalizedAt)
	assert.True(t, reversed.Unpaid.IsZero(), "unpaid drains before paid, got %s", reversed.Unpaid)
	assert.True(t, reversed.Taken.Equal(decimal.NewFromFloat(0.5)), "got %s", reversed.Taken)
}

func TestCorrectRebalancesOpenMonths(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	// Open January with a drifted allocation and over-taken balance.
	rec := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(5), decimal.Zero)
	rec.Taken = decimal.NewFromInt(3)
	_, err := env.records.Save(context.Background(), rec)
	require.NoError(t, err)

	require.NoError(t, env.svc.Correct(context.Background(), emp))

	fixed, err := env.records.Get(context.Background(), emp.ID, 2024, time.January)
	require.NoError(t, err)
	assert.True(t, fixed.Allocated.Equal(decimal.NewFromInt(1)), "got %s", fixed.Allocated)
	assert.True(t, fixed.Taken.Equal(decimal.NewFromInt(1)), "taken clamps to the corrected ceiling")
	assert.True(t, fixed.Unpaid.Equal(decimal.NewFromInt(2)), "excess degrades to unpaid, got %s", fixed.Unpaid)
}

func TestCorrectSkipsProratedEmployees(t *testing.T) {
	env := newLedgerEnv()
	emp := env.emps.Put(employee.Employee{
		FullName:   "Prorated Joiner",
		LocationID: "loc-1",
		JoinDate:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		IsProrated: true,
	})

	rec := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.July, decimal.NewFromFloat(0.5), decimal.Zero)
	_, err := env.records.Save(context.Background(), rec)
	require.NoError(t, err)

	require.NoError(t, env.svc.Correct(context.Background(), emp))

	kept, err := env.records.Get(context.Background(), emp.ID, 2024, time.July)
	require.NoError(t, err)
	assert.True(t, kept.Allocated.Equal(decimal.NewFromFloat(0.5)), "prorated allocation must not be clobbered")
}

func TestCorrectSkipsFinalizedMonths(t *testing.T) {
	env := newLedgerEnv()
	emp := env.employee(t, jan1(2024))

	rec := leave.NewMonthlyLeaveRecord(emp.ID, 2024, time.January, decimal.NewFromInt(5), decimal.Zero)
	rec.IsFinalized = true
	_, err := env.records.Save(context.Background(), rec)
	require.NoError(t, err)

	require.NoError(t, env.svc.Correct(context.Background(), emp))

	kept, err := env.records.Get(context.Background(), emp.ID, 2024, time.January)
	require.NoError(t, err)
	assert.True(t, kept.Allocated.Equal(decimal.NewFromInt(5)), "finalized months are frozen")
}
