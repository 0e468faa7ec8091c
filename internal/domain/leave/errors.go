package leave

import "errors"

var (
	ErrRecordNotFound = errors.New("monthly leave record not found")

	// ErrInsufficientBalance rejects a single-mark leave that exceeds the
	// available balance. The bulk path never returns it; it clamps and
	// records the excess as unpaid instead.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	// ErrRecordFinalized rejects mutation of a finalized month outside the
	// explicit reversal path.
	ErrRecordFinalized = errors.New("monthly leave record is finalized")
)
