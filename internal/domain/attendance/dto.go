package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/pkg/validator"
)

// Principal is the authorization context supplied by the caller: who is
// acting and which locations they may act on.
type Principal struct {
	UserID      string
	LocationIDs []string
}

func (p Principal) CanActOn(locationID string) bool {
	return validator.IsInSlice(locationID, p.LocationIDs)
}

// ========================================
// BULK MARK
// ========================================

type BulkEntry struct {
	EmployeeID           string `json:"employee_id"`
	Status               string `json:"status"`
	LocationID           string `json:"location_id"`
	IsException          bool   `json:"is_exception"`
	ExceptionReason      string `json:"exception_reason,omitempty"`
	ExceptionDescription string `json:"exception_description,omitempty"`
}

// BulkMarkRequest carries one calendar date and a batch of attendance
// tuples for it. Overwrite both bypasses the holiday gate and replaces
// pre-existing records instead of skipping them.
type BulkMarkRequest struct {
	Date      string      `json:"date"`
	Overwrite bool        `json:"overwrite"`
	Entries   []BulkEntry `json:"entries"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: "entries must not be empty",
		})
	}

	for i, entry := range r.Entries {
		errs = append(errs, entry.validate(fmt.Sprintf("entries[%d]", i))...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (e BulkEntry) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(e.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".employee_id",
			Message: "employee_id is required",
		})
	}

	if !Status(e.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".status",
			Message: "status must be one of: present, absent, half_day, leave",
		})
	}

	if validator.IsEmpty(e.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".location_id",
			Message: "location_id is required",
		})
	}

	if e.IsException {
		if validator.IsEmpty(e.ExceptionReason) {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".exception_reason",
				Message: "exception_reason is required when is_exception is set",
			})
		} else if e.ExceptionReason == ExceptionReasonOther && validator.IsEmpty(e.ExceptionDescription) {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".exception_description",
				Message: "exception_description is required when the reason is \"other\"",
			})
		}
	}

	return errs
}

// Issue is one per-tuple problem, keyed by employee so a caller can fix
// every reported problem in a single round-trip.
type Issue struct {
	EmployeeID string `json:"employee_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Issue codes, matching the error taxonomy.
const (
	IssueStructural    = "structural"
	IssueAuthorization = "authorization"
	IssuePolicy        = "policy"
	IssueBalance       = "balance"
	IssueConcurrency   = "concurrency"
)

type BulkMarkResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
	Skipped int  `json:"skipped"`

	// Warnings are informational (duplicates skipped, leave clamped to
	// unpaid); Errors are the hard validation failures that rejected the
	// batch. The two are reported separately so a partially-successful
	// resubmission is distinguishable from a rejected one.
	Warnings []Issue `json:"warnings,omitempty"`
	Errors   []Issue `json:"errors,omitempty"`
}

// ========================================
// SINGLE MARK / UNDO
// ========================================

type MarkRequest struct {
	Date                 string `json:"date"`
	EmployeeID           string `json:"employee_id"`
	Status               string `json:"status"`
	LocationID           string `json:"location_id"`
	IsException          bool   `json:"is_exception"`
	ExceptionReason      string `json:"exception_reason,omitempty"`
	ExceptionDescription string `json:"exception_description,omitempty"`
	Overwrite            bool   `json:"overwrite"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	entry := BulkEntry{
		EmployeeID:           r.EmployeeID,
		Status:               r.Status,
		LocationID:           r.LocationID,
		IsException:          r.IsException,
		ExceptionReason:      r.ExceptionReason,
		ExceptionDescription: r.ExceptionDescription,
	}
	errs = append(errs, entry.validate("")...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Date            string          `json:"date"`
	Status          string          `json:"status"`
	LocationID      string          `json:"location_id"`
	IsException     bool            `json:"is_exception"`
	ExceptionReason *string         `json:"exception_reason,omitempty"`
	PresenceDays    decimal.Decimal `json:"presence_days"`
	MarkedBy        string          `json:"marked_by"`
}

// ========================================
// MONTHLY SUMMARY (read API for payroll)
// ========================================

// MonthlySummary exposes everything a salary-computation collaborator needs
// without re-deriving ledger logic.
type MonthlySummary struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	PresentDays int `json:"present_days"`
	HalfDays    int `json:"half_days"`
	AbsentDays  int `json:"absent_days"`
	LeaveDays   int `json:"leave_days"`

	PaidLeaveUsed  decimal.Decimal `json:"paid_leave_used"`
	UnpaidDays     decimal.Decimal `json:"unpaid_days"`
	Allocated      decimal.Decimal `json:"allocated"`
	Available      decimal.Decimal `json:"available"`
	CarriedForward decimal.Decimal `json:"carried_forward"`
	IsFinalized    bool            `json:"is_finalized"`
}
