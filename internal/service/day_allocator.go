package service

import (
	"time"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

const dayKeyLayout = "2006-01-02"

// DayAllocator walks eligible exam dates: weekdays inside the window
// that are not holidays, in strictly ascending order.
type DayAllocator struct {
	holidays map[string]struct{}
}

// NewDayAllocator indexes the non-working days.
func NewDayAllocator(holidays []time.Time) *DayAllocator {
	index := make(map[string]struct{}, len(holidays))
	for _, day := range holidays {
		index[day.Format(dayKeyLayout)] = struct{}{}
	}
	return &DayAllocator{holidays: index}
}

// Iterate returns a restartable cursor over eligible dates. The cursor
// re-reads window.LastDate on every step, so extending the window
// mid-walk lets the same iterator resume.
func (a *DayAllocator) Iterate(start time.Time, window *models.ApplicationWindow) *DateIterator {
	cursor := dateOnly(start)
	first := dateOnly(window.FirstDate)
	if cursor.Before(first) {
		cursor = first
	}
	if cursor.After(dateOnly(window.LastDate)) {
		cursor = first
	}
	return &DateIterator{cursor: cursor, window: window, holidays: a.holidays}
}

// Collect gathers at least minCount eligible dates. When the window
// runs out first, extend is asked to push lastDate to the next eligible
// candidate and the walk resumes; a nil extend stops at the boundary.
func (a *DayAllocator) Collect(start time.Time, window *models.ApplicationWindow, minCount int, extend func(needed time.Time) error) ([]time.Time, error) {
	it := a.Iterate(start, window)
	dates := make([]time.Time, 0, minCount)

	for len(dates) < minCount {
		day, ok := it.Next()
		if ok {
			dates = append(dates, day)
			continue
		}
		if extend == nil {
			break
		}
		needed := a.nextEligibleAfter(dateOnly(window.LastDate))
		if err := extend(needed); err != nil {
			return dates, err
		}
		if dateOnly(window.LastDate).Before(needed) {
			// Extension refused; nothing more to emit.
			break
		}
	}
	return dates, nil
}

// nextEligibleAfter finds the first weekday after d not on holiday.
func (a *DayAllocator) nextEligibleAfter(d time.Time) time.Time {
	cursor := d.AddDate(0, 0, 1)
	for !a.eligible(cursor) {
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor
}

func (a *DayAllocator) eligible(d time.Time) bool {
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return false
	}
	_, holiday := a.holidays[d.Format(dayKeyLayout)]
	return !holiday
}

// DateIterator is the lazy cursor produced by Iterate.
type DateIterator struct {
	cursor   time.Time
	window   *models.ApplicationWindow
	holidays map[string]struct{}
}

// Next emits the following eligible date, or false when the window is
// exhausted.
func (it *DateIterator) Next() (time.Time, bool) {
	last := dateOnly(it.window.LastDate)
	for !it.cursor.After(last) {
		day := it.cursor
		it.cursor = it.cursor.AddDate(0, 0, 1)

		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if _, holiday := it.holidays[day.Format(dayKeyLayout)]; holiday {
			continue
		}
		return day, true
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
