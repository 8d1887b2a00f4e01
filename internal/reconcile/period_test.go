package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange(t *testing.T) {
	p, err := ResolveRange("2026-03-01", "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, day("2026-03-01"), p.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC), p.End)

	assert.True(t, p.Contains(day("2026-03-01")))
	assert.True(t, p.Contains(day("2026-03-15")))
	assert.False(t, p.Contains(day("2026-03-16")))
}

func TestResolveRangeRequiresBothBounds(t *testing.T) {
	_, err := ResolveRange("2026-03-01", "")
	assert.ErrorIs(t, err, ErrIncompleteRange)

	_, err = ResolveRange("", "2026-03-15")
	assert.ErrorIs(t, err, ErrIncompleteRange)
}

func TestResolveRangeRejectsInvertedBounds(t *testing.T) {
	_, err := ResolveRange("2026-03-15", "2026-03-01")
	assert.Error(t, err)
}

func TestResolveMonth(t *testing.T) {
	tests := []struct {
		selector string
		lastDay  int
	}{
		{"2026-03", 31},
		{"2026-04", 30},
		{"2026-02", 28},
		{"2020-02", 29}, // leap year
		{"2026-12", 31},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			p, err := ResolveMonth(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, 1, p.Start.Day())
			assert.Equal(t, tt.lastDay, p.End.Day())
			assert.Equal(t, 23, p.End.Hour())
		})
	}

	_, err := ResolveMonth("marzo")
	assert.Error(t, err)
}

func TestResolveISOWeekThursdayRule(t *testing.T) {
	// January 4 is always in week 1; in 2021 it is itself the Monday
	p, err := ResolveISOWeek(2021, 1)
	require.NoError(t, err)
	assert.Equal(t, day("2021-01-04"), p.Start)

	// week 1 of 2026 starts in the final days of December 2025
	p, err = ResolveISOWeek(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, day("2025-12-29"), p.Start)
	assert.Equal(t, 4, p.End.Day())
	assert.Equal(t, time.January, p.End.Month())
}

func TestResolveWeekSelector(t *testing.T) {
	p, err := ResolveWeek("2026-W10")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, p.Start.Weekday())
	assert.Equal(t, time.Sunday, p.End.Weekday())

	_, err = ResolveWeek("garbage")
	assert.Error(t, err)
}

func TestLastISOWeek(t *testing.T) {
	assert.Equal(t, 53, LastISOWeek(2020))
	assert.Equal(t, 52, LastISOWeek(2025))
	assert.Equal(t, 53, LastISOWeek(2015))
	// Jan 1 2026 is a Thursday, so 2026 runs to week 53 as well
	assert.Equal(t, 53, LastISOWeek(2026))
}

func TestResolveISOWeekRejectsMissingWeek53(t *testing.T) {
	_, err := ResolveISOWeek(2025, 53)
	assert.Error(t, err)

	_, err = ResolveISOWeek(2020, 53)
	assert.NoError(t, err)

	_, err = ResolveISOWeek(2026, 0)
	assert.Error(t, err)
}

func TestWeekRoundTrip(t *testing.T) {
	// both directions use the same Thursday-anchored rule
	for _, year := range []int{2015, 2020, 2021, 2024, 2025, 2026} {
		last := LastISOWeek(year)
		for week := 1; week <= last; week++ {
			t.Run(fmt.Sprintf("%d-W%02d", year, week), func(t *testing.T) {
				p, err := ResolveISOWeek(year, week)
				require.NoError(t, err)

				gotYear, gotWeek := WeekOf(p.Start)
				assert.Equal(t, year, gotYear)
				assert.Equal(t, week, gotWeek)

				assert.Equal(t, time.Monday, p.Start.Weekday())
				assert.Equal(t, time.Sunday, p.End.Weekday())
				assert.Equal(t, p.Start.AddDate(0, 0, 6).Day(), p.End.Day())
			})
		}
	}
}
