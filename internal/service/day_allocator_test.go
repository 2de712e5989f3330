package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

func testWindow(first, last time.Time) *models.ApplicationWindow {
	return &models.ApplicationWindow{
		ID:           "VENT-2025-2-EV-P1",
		PeriodID:     "2025-2",
		EvaluationID: "EV-P1",
		FirstDate:    first,
		LastDate:     last,
	}
}

func TestDayAllocatorSkipsWeekendsAndHolidays(t *testing.T) {
	// Monday 2025-11-17 start, Tuesday 2025-11-18 is a holiday.
	start := day(2025, time.November, 17)
	window := testWindow(start, day(2025, time.December, 8))
	allocator := NewDayAllocator([]time.Time{day(2025, time.November, 18)})

	dates, err := allocator.Collect(start, window, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		day(2025, time.November, 17),
		day(2025, time.November, 19),
		day(2025, time.November, 20),
		day(2025, time.November, 21),
		day(2025, time.November, 24),
	}, dates)
}

func TestDayAllocatorClampsStartToWindow(t *testing.T) {
	window := testWindow(day(2025, time.November, 17), day(2025, time.November, 21))
	allocator := NewDayAllocator(nil)

	it := allocator.Iterate(day(2025, time.November, 10), window)
	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, day(2025, time.November, 17), first)
}

func TestDayAllocatorRestartsWhenStartPastWindow(t *testing.T) {
	window := testWindow(day(2025, time.November, 17), day(2025, time.November, 21))
	allocator := NewDayAllocator(nil)

	it := allocator.Iterate(day(2025, time.December, 1), window)
	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, day(2025, time.November, 17), first)
}

func TestDayAllocatorCollectExtendsWindow(t *testing.T) {
	// Two eligible days in the window; the third forces an extension.
	window := testWindow(day(2025, time.November, 20), day(2025, time.November, 21))
	allocator := NewDayAllocator(nil)

	var asked time.Time
	extend := func(needed time.Time) error {
		asked = needed
		window.LastDate = needed
		return nil
	}

	dates, err := allocator.Collect(window.FirstDate, window, 3, extend)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.November, 24), asked)
	assert.Equal(t, []time.Time{
		day(2025, time.November, 20),
		day(2025, time.November, 21),
		day(2025, time.November, 24),
	}, dates)
}

func TestDayAllocatorCollectStopsWhenExtensionRefused(t *testing.T) {
	window := testWindow(day(2025, time.November, 20), day(2025, time.November, 21))
	allocator := NewDayAllocator(nil)

	dates, err := allocator.Collect(window.FirstDate, window, 5, func(time.Time) error {
		return errors.New("window locked")
	})
	require.Error(t, err)
	assert.Len(t, dates, 2)
}

func TestDayAllocatorCollectWithoutExtender(t *testing.T) {
	window := testWindow(day(2025, time.November, 20), day(2025, time.November, 21))
	allocator := NewDayAllocator(nil)

	dates, err := allocator.Collect(window.FirstDate, window, 5, nil)
	require.NoError(t, err)
	assert.Len(t, dates, 2)
}
