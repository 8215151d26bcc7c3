package spreadsheet

import "strings"

// parseCSV splits UTF-8 CSV text into rows of cells. Splitting is
// line-oriented with a quote-toggle scanner per line: quotes flip an
// in-quote state so commas inside quoted cells are not separators, and the
// quote characters themselves are dropped. Rows may have uneven cell counts;
// the caller aligns cells positionally against the header. Blank lines are
// skipped here so line numbering downstream counts only real rows.
func parseCSV(data []byte) [][]string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitCSVLine(line))
	}
	return rows
}

func splitCSVLine(line string) []string {
	var cells []string
	var cell strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}
