package clockx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulated(t *testing.T) {
	c := NewSimulated(time.Date(2024, 1, 30, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), c.Now())

	got := c.AdvanceDays(3)
	assert.Equal(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, got, c.Now())

	c.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), c.Now())
}

func TestFunc(t *testing.T) {
	fixed := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	var c Clock = Func(func() time.Time { return fixed })
	assert.Equal(t, fixed, c.Now())
}
