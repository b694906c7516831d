package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func TestFieldsCollectsFirstMessage(t *testing.T) {
	f := Fields{}
	f.Date("date", "")
	f.Date("date", "2025-13-01")
	f.Clock("time", "8:00")
	f.MaxLen("location", string(make([]byte, 256)), 255)

	err := f.Err()
	require.Error(t, err)

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "is required", ve.Fields["date"])
	assert.Equal(t, "must be a time in HH:MM format", ve.Fields["time"])
	assert.Equal(t, "is too long", ve.Fields["location"])
}

func TestFieldsEmptyIsNil(t *testing.T) {
	f := Fields{}
	assert.True(t, f.Date("date", "2025-10-06"))
	assert.True(t, f.NotBefore("date", "2025-10-06", "2025-10-06"))
	assert.True(t, f.Clock("time", "23:59"))
	assert.NoError(t, f.Err())
}

func TestNotBefore(t *testing.T) {
	f := Fields{}
	assert.False(t, f.NotBefore("date", "2025-10-05", "2025-10-06"))
	assert.Equal(t, "must be today or later", f["date"])
}

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("00:00"))
	assert.True(t, IsClock("08:30"))
	assert.False(t, IsClock("24:00"))
	assert.False(t, IsClock("08:30:00"))
	assert.False(t, IsClock("8:30"))
}
