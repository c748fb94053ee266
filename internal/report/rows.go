package report

import "presence/internal/stats"

// Rows are the chart-ready tables served to the dashboard: a list of
// heterogeneous tuples such as ["Tue", 30047].
type Rows [][]any

// TotalRows renders weekday totals with a header row.
func TotalRows(totals [7]int) Rows {
	rows := Rows{{"Weekday", "Presence (s)"}}
	for i, v := range totals {
		rows = append(rows, []any{stats.WeekdayAbbr(i), v})
	}
	return rows
}

// MeanRows renders weekday means.
func MeanRows(means [7]float64) Rows {
	rows := make(Rows, 0, len(means))
	for i, v := range means {
		rows = append(rows, []any{stats.WeekdayAbbr(i), v})
	}
	return rows
}

// StartEndRows renders mean arrival and departure per weekday.
func StartEndRows(avg [7]stats.StartEnd) Rows {
	rows := make(Rows, 0, len(avg))
	for _, v := range avg {
		rows = append(rows, []any{stats.WeekdayAbbr(v.Weekday), v.Start, v.End})
	}
	return rows
}

// MonthRows renders monthly averages. Months without data render as 0.
func MonthRows(months [12]stats.MonthHours) Rows {
	rows := make(Rows, 0, len(months))
	for i, v := range months {
		hours := 0
		if v.Valid {
			hours = v.Hours
		}
		rows = append(rows, []any{stats.MonthAbbr(i), hours})
	}
	return rows
}
