// Package stats aggregates one user's presence entries by weekday and by
// calendar month.
package stats

import (
	"time"

	"presence/internal/attendance"
)

// Weekdays holds interval lengths in seconds, indexed Monday (0) to Sunday (6).
type Weekdays [7][]int

// StartEnd is the mean arrival and departure time, in seconds since
// midnight, for one weekday.
type StartEnd struct {
	Weekday int
	Start   float64
	End     float64
}

// MonthHours is the average hours worked in one calendar month. Valid is
// false when the user has no entries in that month.
type MonthHours struct {
	Hours int
	Valid bool
}

// Interval returns the seconds between arrival and departure. It is negative
// when End is earlier than Start.
func Interval(e attendance.Entry) int {
	return e.End.Seconds() - e.Start.Seconds()
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

// Sum returns the sum of xs.
func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// GroupByWeekday buckets entry intervals by the weekday of their date.
func GroupByWeekday(days attendance.Days) Weekdays {
	var w Weekdays
	for i := range w {
		w[i] = []int{}
	}
	for date, e := range days {
		wd := date.Weekday()
		w[wd] = append(w[wd], Interval(e))
	}
	return w
}

// TotalByWeekday returns the summed presence per weekday.
func TotalByWeekday(days attendance.Days) [7]int {
	var out [7]int
	for i, intervals := range GroupByWeekday(days) {
		out[i] = Sum(intervals)
	}
	return out
}

// MeanByWeekday returns the mean presence per weekday.
func MeanByWeekday(days attendance.Days) [7]float64 {
	var out [7]float64
	for i, intervals := range GroupByWeekday(days) {
		out[i] = Mean(intervals)
	}
	return out
}

// AverageStartEnd returns the mean arrival and departure per weekday.
// Weekdays without entries report zero for both.
func AverageStartEnd(days attendance.Days) [7]StartEnd {
	var starts, ends [7][]int
	for date, e := range days {
		wd := date.Weekday()
		starts[wd] = append(starts[wd], e.Start.Seconds())
		ends[wd] = append(ends[wd], e.End.Seconds())
	}
	var out [7]StartEnd
	for wd := range out {
		out[wd] = StartEnd{Weekday: wd, Start: Mean(starts[wd]), End: Mean(ends[wd])}
	}
	return out
}

// AverageMonthlyHours returns, per calendar month, the whole hours worked in
// that month divided by the number of distinct years in which the month
// appears. Hours are truncated per entry and the division floors.
func AverageMonthlyHours(days attendance.Days) [12]MonthHours {
	var hours [12]int
	var seen [12]bool
	periods := make(map[time.Month]map[int]struct{})
	for date, e := range days {
		m := date.Month - 1
		hours[m] += floorDiv(floorDiv(Interval(e), 60), 60)
		seen[m] = true
		if periods[date.Month] == nil {
			periods[date.Month] = make(map[int]struct{})
		}
		periods[date.Month][date.Year] = struct{}{}
	}

	var out [12]MonthHours
	for m := range out {
		if !seen[m] {
			continue
		}
		out[m] = MonthHours{
			Hours: floorDiv(hours[m], len(periods[time.Month(m+1)])),
			Valid: true,
		}
	}
	return out
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// WeekdayAbbr returns the English short name of a Monday-indexed weekday.
func WeekdayAbbr(i int) string {
	return time.Weekday((i + 1) % 7).String()[:3]
}

// MonthAbbr returns the English short name of a zero-indexed month.
func MonthAbbr(i int) string {
	return time.Month(i + 1).String()[:3]
}
