// Package reconcile runs the asynchronous ledger repair pass: after a batch
// commits, each touched (employee, month) pair is re-totaled, finalized when
// the month is fully in the past, and its carry-forward pushed forward.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/pkg/lock"
)

// Task identifies one employee-month to reconcile.
type Task struct {
	EmployeeID string
	Year       int
	Month      time.Month
}

// Reconciler is a bounded worker pool fed by an in-process queue. It is
// decoupled from the caller's response path: Schedule never blocks the
// caller beyond queue admission, and failures are logged, never propagated
// back to the committed write. Every run is idempotent, and the same
// per-employee lock used by foreground mutation guarantees the two never
// interleave for one employee.
type Reconciler struct {
	queue   chan Task
	workers int

	employeeRepo employee.EmployeeRepository
	ledger       leave.LedgerService
	locks        *lock.Manager

	pending sync.WaitGroup
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started bool
	mu      sync.Mutex

	now func() time.Time
}

func NewReconciler(
	employeeRepo employee.EmployeeRepository,
	ledger leave.LedgerService,
	locks *lock.Manager,
	workers int,
	queueSize int,
) *Reconciler {
	return &Reconciler{
		queue:        make(chan Task, queueSize),
		workers:      workers,
		employeeRepo: employeeRepo,
		ledger:       ledger,
		locks:        locks,
		now:          time.Now,
	}
}

// Start launches the worker pool.
func (r *Reconciler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.run(ctx)
	}
	slog.Info("reconciler started", "workers", r.workers, "queue_size", cap(r.queue))
}

// Stop drains in-flight tasks and stops the workers.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	r.mu.Unlock()

	close(r.queue)
	r.wg.Wait()
	r.cancel()
	slog.Info("reconciler stopped")
}

// Schedule enqueues one employee-month. Best-effort: when the queue is full
// or the pool is not running the task is dropped with a log line; the
// periodic sweep will catch it. The started check and the send share the
// mutex with Stop, so a late Schedule during shutdown cannot hit the closed
// queue.
func (r *Reconciler) Schedule(employeeID string, year int, month time.Month) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		slog.Warn("reconciler not running, dropping task",
			"employee_id", employeeID, "year", year, "month", int(month))
		return
	}
	r.pending.Add(1)
	select {
	case r.queue <- Task{EmployeeID: employeeID, Year: year, Month: month}:
	default:
		r.pending.Done()
		slog.Warn("reconcile queue full, dropping task",
			"employee_id", employeeID, "year", year, "month", int(month))
	}
}

// Flush blocks until every task enqueued so far has been processed.
// Intended for tests and shutdown.
func (r *Reconciler) Flush() {
	r.pending.Wait()
}

func (r *Reconciler) run(ctx context.Context) {
	defer r.wg.Done()
	for task := range r.queue {
		if err := r.Process(ctx, task); err != nil {
			slog.Error("reconcile task failed",
				"employee_id", task.EmployeeID,
				"year", task.Year, "month", int(task.Month),
				"error", err)
		}
		r.pending.Done()
	}
}

// Process reconciles a single employee-month: correct totals, finalize if
// the month is fully past, and propagate carry-forward. Safe to run
// redundantly. Exported so the cron sweep and tests can run tasks inline.
func (r *Reconciler) Process(ctx context.Context, task Task) error {
	token, err := r.locks.Acquire(ctx, task.EmployeeID)
	if err != nil {
		return err
	}
	defer r.locks.Release(token)

	emp, err := r.employeeRepo.GetByID(ctx, task.EmployeeID)
	if err != nil {
		return err
	}

	if err := r.ledger.Correct(ctx, emp); err != nil {
		return err
	}

	if !r.monthFullyPast(task.Year, task.Month) {
		return nil
	}

	// Correct may have bumped the version; re-fetch before finalizing.
	emp, err = r.employeeRepo.GetByID(ctx, task.EmployeeID)
	if err != nil {
		return err
	}
	_, err = r.ledger.Finalize(ctx, emp, task.Year, task.Month)
	if errors.Is(err, leave.ErrRecordNotFound) {
		return nil
	}
	return err
}

// monthFullyPast reports whether (year, month) ended before "now".
func (r *Reconciler) monthFullyPast(year int, month time.Month) bool {
	now := r.now()
	if year != now.Year() {
		return year < now.Year()
	}
	return month < now.Month()
}

// SweepPreviousMonth re-enqueues last month for every active employee so
// drift from dropped tasks or partial failures self-heals. Registered on
// the interval scheduler.
func (r *Reconciler) SweepPreviousMonth(ctx context.Context) error {
	employees, err := r.employeeRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	year, month := leave.PrevMonth(now.Year(), now.Month())
	for _, emp := range employees {
		if emp.JoinedAfter(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)) {
			continue
		}
		r.Schedule(emp.ID, year, month)
	}
	return nil
}
