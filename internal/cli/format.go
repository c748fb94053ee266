package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"presence/internal/report"
)

const colGap = 2

var (
	colorHeader = lipgloss.Color("#fe8019")
	colorDim    = lipgloss.Color("#928374")
)

// defaultFormat prints tables to a terminal and JSON into pipes.
func defaultFormat() string {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "table"
	}
	return "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable renders rows[0] as a header followed by a separator line and
// the remaining rows, with columns padded to their widest visible cell.
// Colors are only emitted when w is a terminal.
func writeTable(w io.Writer, rows report.Rows) error {
	if len(rows) == 0 {
		return nil
	}
	cells := make([][]string, len(rows))
	widths := make([]int, len(rows[0]))
	for i, row := range rows {
		cells[i] = make([]string, len(widths))
		for j := 0; j < len(widths) && j < len(row); j++ {
			cells[i][j] = formatCell(row[j])
			widths[j] = max(widths[j], lipgloss.Width(cells[i][j]))
		}
	}

	r := lipgloss.NewRenderer(w)
	var b strings.Builder
	writeRow(&b, cells[0], widths, r.NewStyle().Foreground(colorHeader).Bold(true))
	sep := make([]string, len(widths))
	for j, width := range widths {
		sep[j] = strings.Repeat("─", width)
	}
	writeRow(&b, sep, widths, r.NewStyle().Foreground(colorDim))
	for _, row := range cells[1:] {
		writeRow(&b, row, widths, r.NewStyle())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, row []string, widths []int, style lipgloss.Style) {
	for j, cell := range row {
		b.WriteString(style.Render(cell))
		if j < len(row)-1 {
			b.WriteString(strings.Repeat(" ", widths[j]-lipgloss.Width(cell)+colGap))
		}
	}
	b.WriteString("\n")
}

func formatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
