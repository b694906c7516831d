package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestFixedClock(t *testing.T) {
	c := Fixed(time.Date(2025, 10, 6, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-10-06", c.Today())
}
