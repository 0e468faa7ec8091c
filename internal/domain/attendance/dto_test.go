package attendance

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func halfWeight() decimal.Decimal { return decimal.NewFromFloat(0.5) }
func one() decimal.Decimal        { return decimal.NewFromInt(1) }

func validEntry() BulkEntry {
	return BulkEntry{EmployeeID: "emp-1", Status: "present", LocationID: "loc-1"}
}

func TestBulkMarkRequestValidate(t *testing.T) {
	req := BulkMarkRequest{Date: "2024-03-15", Entries: []BulkEntry{validEntry()}}
	assert.NoError(t, req.Validate())
}

func TestBulkMarkRequestCollectsEveryError(t *testing.T) {
	req := BulkMarkRequest{
		Date: "15/03/2024",
		Entries: []BulkEntry{
			{Status: "presentish"},
			validEntry(),
		},
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))

	m := errs.ToMap()
	assert.Contains(t, m, "date")
	assert.Contains(t, m, "entries[0].employee_id")
	assert.Contains(t, m, "entries[0].status")
	assert.Contains(t, m, "entries[0].location_id")
}

func TestBulkMarkRequestEmptyEntries(t *testing.T) {
	req := BulkMarkRequest{Date: "2024-03-15"}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.ToMap(), "entries")
}

func TestExceptionRequiresReason(t *testing.T) {
	entry := validEntry()
	entry.IsException = true

	errs := entry.validate("entries[0]")
	require.Len(t, errs, 1)
	assert.Equal(t, "entries[0].exception_reason", errs[0].Field)

	entry.ExceptionReason = "overtime"
	assert.Empty(t, entry.validate("entries[0]"))
}

func TestExceptionReasonOtherRequiresDescription(t *testing.T) {
	entry := validEntry()
	entry.IsException = true
	entry.ExceptionReason = ExceptionReasonOther

	errs := entry.validate("entries[0]")
	require.Len(t, errs, 1)
	assert.Equal(t, "entries[0].exception_description", errs[0].Field)

	entry.ExceptionDescription = "covering the audit visit"
	assert.Empty(t, entry.validate("entries[0]"))
}

func TestStatusLeaveUnitsAndPresence(t *testing.T) {
	assert.True(t, StatusPresent.LeaveUnits(halfWeight()).IsZero())
	assert.True(t, StatusAbsent.LeaveUnits(halfWeight()).IsZero())
	assert.True(t, StatusLeave.LeaveUnits(halfWeight()).Equal(one()))
	assert.True(t, StatusHalfDay.LeaveUnits(halfWeight()).Equal(halfWeight()))

	assert.True(t, StatusPresent.PresenceDays().Equal(one()))
	assert.True(t, StatusLeave.PresenceDays().IsZero())
}
