// Package core implements the habit progress and reminder engine: calendar
// identifiers, the pure habit collection transformations, streak math,
// weekly aggregation and reminder evaluation. It has no dependencies beyond
// the standard library so that every operation stays deterministic under test.
package core

import "time"

const dateLayout = "2006-01-02"

// DateKey normalizes a moment to its calendar date identifier (YYYY-MM-DD).
// The year/month/day are taken from the moment's local representation and
// rebuilt through a UTC date so that two moments on the same local calendar
// day always map to the same identifier regardless of offset.
func DateKey(t time.Time) string {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

// RecentDays returns the last n calendar days ending at asOf, oldest first.
// Consecutive entries always differ by exactly one calendar day.
func RecentDays(n int, asOf time.Time) []string {
	if n <= 0 {
		return nil
	}
	year, month, day := asOf.Date()
	end := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, end.AddDate(0, 0, -i).Format(dateLayout))
	}
	return days
}

// ParseClock parses a 24-hour "HH:MM" reminder time into seconds from
// midnight. Both the reminder evaluator and the next-reminder projection go
// through this single routine so the two cannot drift on accepted formats.
func ParseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*3600 + minute*60, true
}

// NextReminder returns the earliest reminder time strictly after now,
// wrapping to the earliest time of day when none remain. The second return
// is false when times holds no valid entry.
func NextReminder(times []string, now time.Time) (string, bool) {
	nowSec := now.Hour()*3600 + now.Minute()*60 + now.Second()
	nextTime, nextSec := "", -1
	firstTime, firstSec := "", -1
	for _, t := range times {
		sec, ok := ParseClock(t)
		if !ok {
			continue
		}
		if firstSec < 0 || sec < firstSec {
			firstTime, firstSec = t, sec
		}
		if sec > nowSec && (nextSec < 0 || sec < nextSec) {
			nextTime, nextSec = t, sec
		}
	}
	if nextSec >= 0 {
		return nextTime, true
	}
	if firstSec >= 0 {
		return firstTime, true
	}
	return "", false
}
