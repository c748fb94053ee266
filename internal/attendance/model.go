package attendance

import (
	"errors"
	"fmt"
	"time"
)

// ErrDataSource is returned when the dataset cannot be opened or read.
var ErrDataSource = errors.New("attendance data source unavailable")

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// TimeOfDay is a wall-clock time stored as seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM:SS value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, err
	}
	return Clock(t.Hour(), t.Minute(), t.Second()), nil
}

// Clock builds a TimeOfDay from its components.
func Clock(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int { return int(t) }

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// Date is a calendar date without a time zone. It is comparable and safe to
// use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Weekday returns the day of week indexed from Monday (0) to Sunday (6).
func (d Date) Weekday() int {
	wd := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Entry is a single day of presence: when the user arrived and left.
// End may be earlier than Start; such entries are kept as recorded.
type Entry struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Days holds one user's entries keyed by date.
type Days map[Date]Entry

// Map holds every user's entries keyed by numeric user id.
type Map map[int]Days

// Put records an entry, replacing any earlier entry for the same user and date.
func (m Map) Put(userID int, date Date, e Entry) {
	days, ok := m[userID]
	if !ok {
		days = make(Days)
		m[userID] = days
	}
	days[date] = e
}

// UserIDs returns the ids present in the map in no particular order.
func (m Map) UserIDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
