package reconcile

import (
	"errors"
	"fmt"
	"time"
)

// Period is an inclusive date range in UTC: Start is the first instant of the
// first day, End the last second of the last day, matching the store's
// inclusive string filters.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period, inclusive.
func (p Period) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(p.Start) && !t.After(p.End)
}

var ErrIncompleteRange = errors.New("both range bounds are required")

const dayLayout = "2006-01-02"

func startOfDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

// ResolveRange resolves an explicit from/to selector. Supplying only one
// bound is a caller input error.
func ResolveRange(from, to string) (Period, error) {
	if from == "" || to == "" {
		return Period{}, ErrIncompleteRange
	}
	start, err := time.ParseInLocation(dayLayout, from, time.UTC)
	if err != nil {
		return Period{}, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	end, err := time.ParseInLocation(dayLayout, to, time.UTC)
	if err != nil {
		return Period{}, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("range end %s before start %s", to, from)
	}
	return Period{Start: start, End: endOfDay(end.Year(), end.Month(), end.Day())}, nil
}

// ResolveMonth resolves a "YYYY-MM" selector to the first-to-last day of the
// month in UTC. Month length comes from date normalization (day 0 of the
// following month), so leap years fall out correctly.
func ResolveMonth(selector string) (Period, error) {
	first, err := time.ParseInLocation("2006-01", selector, time.UTC)
	if err != nil {
		return Period{}, fmt.Errorf("invalid month selector %q: %w", selector, err)
	}
	last := time.Date(first.Year(), first.Month()+1, 0, 23, 59, 59, 0, time.UTC)
	return Period{Start: first, End: last}, nil
}

// ResolveWeek resolves a "YYYY-Www" selector to its ISO-8601 Monday–Sunday
// range.
func ResolveWeek(selector string) (Period, error) {
	var year, week int
	if _, err := fmt.Sscanf(selector, "%4d-W%2d", &year, &week); err != nil {
		return Period{}, fmt.Errorf("invalid week selector %q", selector)
	}
	return ResolveISOWeek(year, week)
}

// ResolveISOWeek computes the Monday–Sunday range of an ISO week. Week 1 is
// the week containing the year's first Thursday, so January 4 is always in
// week 1; weeks near year boundaries may spill into the neighboring year.
func ResolveISOWeek(year, week int) (Period, error) {
	if week < 1 || week > LastISOWeek(year) {
		return Period{}, fmt.Errorf("year %d has no ISO week %d", year, week)
	}
	jan4 := startOfDay(year, time.January, 4)
	monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4)).AddDate(0, 0, (week-1)*7)
	sunday := monday.AddDate(0, 0, 6)
	return Period{Start: monday, End: endOfDay(sunday.Year(), sunday.Month(), sunday.Day())}, nil
}

// WeekOf labels a date with its ISO week-numbering year and week. Inverse of
// ResolveISOWeek over that week's Monday.
func WeekOf(t time.Time) (year, week int) {
	return t.UTC().ISOWeek()
}

// LastISOWeek is 52 or 53 depending on where the Thursdays fall. December 28
// is always in the year's final ISO week.
func LastISOWeek(year int) int {
	_, week := startOfDay(year, time.December, 28).ISOWeek()
	return week
}

// isoWeekday is Monday=1..Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
