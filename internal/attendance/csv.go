package attendance

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"presence/internal/metrics"
)

// fieldsPerRow is the number of columns in a data row. Rows of any other
// width are header or footer lines.
const fieldsPerRow = 4

// LoadCSV reads the dataset file at path.
func LoadCSV(path string, logger *slog.Logger) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer f.Close()
	return ParseCSV(f, logger)
}

// maxLine caps a single dataset line.
const maxLine = 1 << 20

// ParseCSV reads rows of user_id,date,start,end into a Map. Rows with the
// wrong number of fields are ignored; rows that fail to convert, including
// rows with broken quoting, are logged at debug level and dropped. Each line
// is parsed on its own so a bad quote cannot swallow the lines after it.
func ParseCSV(src io.Reader, logger *slog.Logger) (Map, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	data := make(Map)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cr := csv.NewReader(strings.NewReader(text))
		cr.FieldsPerRecord = -1
		row, err := cr.Read()
		if err != nil {
			skipRow(logger, line, err)
			continue
		}
		if len(row) != fieldsPerRow {
			continue
		}
		userID, date, entry, err := parseRow(row[0], row[1], row[2], row[3])
		if err != nil {
			skipRow(logger, line, err)
			continue
		}
		data.Put(userID, date, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrDataSource, line+1, err)
	}
	return data, nil
}

func parseRow(rawID, rawDate, rawStart, rawEnd string) (int, Date, Entry, error) {
	userID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return 0, Date{}, Entry{}, fmt.Errorf("user id: %w", err)
	}
	date, err := ParseDate(strings.TrimSpace(rawDate))
	if err != nil {
		return 0, Date{}, Entry{}, fmt.Errorf("date: %w", err)
	}
	start, err := ParseTimeOfDay(strings.TrimSpace(rawStart))
	if err != nil {
		return 0, Date{}, Entry{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimeOfDay(strings.TrimSpace(rawEnd))
	if err != nil {
		return 0, Date{}, Entry{}, fmt.Errorf("end: %w", err)
	}
	return userID, date, Entry{Start: start, End: end}, nil
}

func skipRow(logger *slog.Logger, line int, err error) {
	metrics.RowsSkipped.Inc()
	logger.Debug("skipping malformed row", "line", line, "error", err)
}
