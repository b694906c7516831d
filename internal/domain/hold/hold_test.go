package hold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("08:00-08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:00", start)
	assert.Equal(t, "08:30", end)

	start, _, err = ParseRange(" 23:30 - 24:00 ")
	require.NoError(t, err)
	assert.Equal(t, "23:30", start)

	for _, bad := range []string{"", "08:00", "08:30-08:00", "8:00-9:00", "08:00-09:00-10:00"} {
		_, _, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestDecide(t *testing.T) {
	r := &models.HoldRequest{Status: string(StatusPending)}
	require.NoError(t, Decide(r, StatusApproved))
	assert.Equal(t, "approved", r.Status)

	err := Decide(r, StatusRejected)
	assert.True(t, httperr.IsNotFound(err))

	r = &models.HoldRequest{Status: string(StatusPending)}
	_, isValidation := httperr.AsValidation(Decide(r, StatusPending))
	assert.True(t, isValidation)
}

func TestValidateSlots(t *testing.T) {
	ok := []models.HoldSlot{{Date: "2025-10-06", Time: "08:00-08:30"}}
	assert.NoError(t, ValidateSlots("2025-10-06", ok, "2025-10-01"))

	err := ValidateSlots("2025-10-06", nil, "2025-10-01")
	ve, isValidation := httperr.AsValidation(err)
	require.True(t, isValidation)
	assert.Contains(t, ve.Fields, "slots")

	bad := []models.HoldSlot{
		{Date: "2025-10-06", Time: "08:00"},
		{Date: "2025-09-30", Time: "08:00-08:30"},
	}
	ve, _ = httperr.AsValidation(ValidateSlots("2025-10-06", bad, "2025-10-01"))
	assert.Contains(t, ve.Fields, "slots.0.time")
	assert.Equal(t, "must be today or later", ve.Fields["slots.1.date"])
}
