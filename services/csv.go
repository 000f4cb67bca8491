package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/methodshub/backend/models"
)

// CSVHeader is the fixed export column order. Import accepts the same layout.
const CSVHeader = "Date,Method,Category,Amount,Notes"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CsvRow is one parsed import line.
type CsvRow struct {
	Date     string
	Method   string
	Category string
	Amount   string
	Notes    string
}

// ImportResult reports per-row outcomes of a batch import. One row's failure
// never aborts the batch.
type ImportResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// EntriesToCSV serializes entries in the fixed export format: every field
// quote-wrapped, embedded quotes doubled, amounts with exactly two decimals.
func EntriesToCSV(entries []models.DailyEarning) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	for _, e := range entries {
		title := e.Method.Title
		if title == "" {
			title = "Unknown"
		}
		fields := []string{
			DayOf(e.EntryDate).Format("2006-01-02"),
			title,
			e.Method.Category,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Notes,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteField(f))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// splitCSVLine splits one line on commas outside quotes. A doubled quote
// inside a quoted field decodes to a literal quote, mirroring the export
// escaping so exported files re-import losslessly.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case ch == '"':
			inQuotes = true
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// ParseCSV parses import text into rows, skipping the header line. Lines with
// fewer than three fields are ignored; three-field lines are read as
// Date,Method,Amount for hand-written files without the category column.
func ParseCSV(text string) []CsvRow {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var rows []CsvRow

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(strings.TrimSuffix(lines[i], "\r"))
		if line == "" {
			continue
		}

		fields := splitCSVLine(line)
		switch {
		case len(fields) >= 5:
			rows = append(rows, CsvRow{fields[0], fields[1], fields[2], fields[3], fields[4]})
		case len(fields) == 4:
			rows = append(rows, CsvRow{Date: fields[0], Method: fields[1], Category: fields[2], Amount: fields[3]})
		case len(fields) == 3:
			rows = append(rows, CsvRow{Date: fields[0], Method: fields[1], Amount: fields[2]})
		}
	}

	return rows
}

// ValidateCSVRow checks one row and returns its human-readable errors,
// prefixed with the 1-based row number n. An empty result means the row is
// importable (method resolution still happens at import time).
func ValidateCSVRow(n int, row CsvRow) []string {
	var errs []string

	if row.Date == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Missing date", n))
	} else if !ValidDate(row.Date) {
		errs = append(errs, fmt.Sprintf("Row %d: Invalid date format (use YYYY-MM-DD)", n))
	}

	if row.Method == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Missing method", n))
	}

	if row.Amount == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Missing amount", n))
	} else if v, err := strconv.ParseFloat(row.Amount, 64); err != nil || v < 0 {
		errs = append(errs, fmt.Sprintf("Row %d: Invalid amount", n))
	}

	return errs
}

// ValidateCSVRows checks all rows and returns the combined errors in row
// order. One bad row never blocks the others; import skips only the rows
// reported here.
func ValidateCSVRows(rows []CsvRow) []string {
	var errs []string
	for i, row := range rows {
		errs = append(errs, ValidateCSVRow(i+1, row)...)
	}
	return errs
}

// RowError builds a per-row import failure message.
func RowError(n int, msg string) string {
	return fmt.Sprintf("Row %d: %s", n, msg)
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
// The parse step rejects impossible dates the shape check lets through.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
