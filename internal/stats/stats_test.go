package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presence/internal/attendance"
	"presence/internal/testutil"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		xs   []int
		want float64
	}{
		{"empty", nil, 0},
		{"single", []int{30047}, 30047},
		{"several", []int{24123, 16564, 25321, 22984, 6426, 0, 0}, 13631.142857142857},
		{"negative", []int{-100, 300}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mean(tt.xs))
		})
	}
}

func TestInterval(t *testing.T) {
	e := attendance.Entry{Start: attendance.Clock(7, 20, 21), End: attendance.Clock(16, 59, 21)}
	assert.Equal(t, 34740, Interval(e))
}

func TestInterval_EndBeforeStartIsNegative(t *testing.T) {
	e := attendance.Entry{Start: attendance.Clock(17, 0, 0), End: attendance.Clock(9, 0, 0)}
	assert.Equal(t, -28800, Interval(e))
}

func TestGroupByWeekday(t *testing.T) {
	got := GroupByWeekday(testutil.User10())

	assert.Equal(t, Weekdays{{}, {30047}, {24465}, {23705}, {}, {}, {}}, got)
}

func TestGroupByWeekday_BucketSizesMatchInput(t *testing.T) {
	days := attendance.Days{}
	for d := 1; d <= 30; d++ {
		days[attendance.Date{Year: 2013, Month: 9, Day: d}] = attendance.Entry{
			Start: attendance.Clock(9, 0, 0),
			End:   attendance.Clock(17, 0, 0),
		}
	}

	got := GroupByWeekday(days)

	require.Len(t, got, 7)
	total := 0
	for _, bucket := range got {
		total += len(bucket)
	}
	assert.Equal(t, len(days), total)
	// September 2013 started on a Sunday.
	assert.Len(t, got[6], 5)
	assert.Len(t, got[0], 5)
	assert.Len(t, got[1], 4)
}

func TestGroupByWeekday_KeepsNegativeIntervals(t *testing.T) {
	days := attendance.Days{
		{Year: 2013, Month: 9, Day: 9}: {Start: attendance.Clock(18, 0, 0), End: attendance.Clock(8, 0, 0)},
	}

	got := GroupByWeekday(days)

	assert.Equal(t, []int{-36000}, got[0])
}

func TestTotalAndMeanByWeekday(t *testing.T) {
	days := testutil.User10()

	assert.Equal(t, [7]int{0, 30047, 24465, 23705, 0, 0, 0}, TotalByWeekday(days))
	assert.Equal(t, [7]float64{0, 30047, 24465, 23705, 0, 0, 0}, MeanByWeekday(days))
}

func TestAverageStartEnd(t *testing.T) {
	got := AverageStartEnd(testutil.User10())

	want := [7]StartEnd{
		{Weekday: 0},
		{Weekday: 1, Start: 34745, End: 64792},
		{Weekday: 2, Start: 33592, End: 58057},
		{Weekday: 3, Start: 38926, End: 62631},
		{Weekday: 4},
		{Weekday: 5},
		{Weekday: 6},
	}
	assert.Equal(t, want, got)
}

func TestAverageStartEnd_AveragesSameWeekday(t *testing.T) {
	days := attendance.Days{
		{Year: 2013, Month: 9, Day: 10}: {Start: 34700, End: 64800},
		{Year: 2013, Month: 9, Day: 17}: {Start: 34790, End: 64784},
	}

	got := AverageStartEnd(days)

	assert.Equal(t, StartEnd{Weekday: 1, Start: 34745, End: 64792}, got[1])
}

func TestAverageMonthlyHours(t *testing.T) {
	got := AverageMonthlyHours(testutil.User10())

	for m, v := range got {
		if m == 8 {
			assert.Equal(t, MonthHours{Hours: 20, Valid: true}, v)
			continue
		}
		assert.False(t, v.Valid, "month %d", m+1)
	}
}

func TestAverageMonthlyHours_DividesByDistinctYearMonth(t *testing.T) {
	eightHours := attendance.Entry{Start: attendance.Clock(9, 0, 0), End: attendance.Clock(17, 0, 0)}
	days := attendance.Days{
		{Year: 2012, Month: 3, Day: 1}: eightHours,
		{Year: 2012, Month: 3, Day: 2}: eightHours,
		{Year: 2012, Month: 3, Day: 5}: eightHours,
		{Year: 2013, Month: 3, Day: 1}: eightHours,
		{Year: 2013, Month: 4, Day: 1}: eightHours,
	}

	got := AverageMonthlyHours(days)

	// Four March entries over two distinct years.
	assert.Equal(t, MonthHours{Hours: 16, Valid: true}, got[2])
	assert.Equal(t, MonthHours{Hours: 8, Valid: true}, got[3])
}

func TestAverageMonthlyHours_TruncatesEachEntry(t *testing.T) {
	days := attendance.Days{
		{Year: 2013, Month: 1, Day: 2}: {Start: attendance.Clock(9, 0, 0), End: attendance.Clock(16, 59, 59)},
		{Year: 2013, Month: 1, Day: 3}: {Start: attendance.Clock(9, 0, 0), End: attendance.Clock(16, 59, 59)},
	}

	got := AverageMonthlyHours(days)

	assert.Equal(t, 14, got[0].Hours)
}

func TestAverageMonthlyHours_NegativeIntervalFloors(t *testing.T) {
	days := attendance.Days{
		{Year: 2013, Month: 5, Day: 6}: {Start: attendance.Clock(10, 0, 0), End: attendance.Clock(9, 30, 0)},
	}

	got := AverageMonthlyHours(days)

	assert.Equal(t, MonthHours{Hours: -1, Valid: true}, got[4])
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-6, 2, -3},
		{0, 5, 0},
		{-1800, 60, -30},
		{-30, 60, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floorDiv(tt.a, tt.b), "%d // %d", tt.a, tt.b)
	}
}

func TestAbbreviations(t *testing.T) {
	var weekdays []string
	for i := 0; i < 7; i++ {
		weekdays = append(weekdays, WeekdayAbbr(i))
	}
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, weekdays)
	assert.Equal(t, "Jan", MonthAbbr(0))
	assert.Equal(t, "Sep", MonthAbbr(8))
	assert.Equal(t, "Dec", MonthAbbr(11))
}
