package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/methodshub/backend/models"
)

func csvEntry(title, category string, dateStr string, amount float64, notes string) models.DailyEarning {
	d, _ := time.Parse("2006-01-02", dateStr)
	return models.DailyEarning{
		UserID:    1,
		MethodID:  1,
		EntryDate: d,
		Amount:    amount,
		Notes:     notes,
		Method:    models.Method{ID: 1, Title: title, Category: category},
	}
}

func TestEntriesToCSVFormat(t *testing.T) {
	out := EntriesToCSV([]models.DailyEarning{
		csvEntry("Daily Survey", "Survey", "2024-01-02", 12.5, `said "thanks", paid fast`),
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, CSVHeader, lines[0])
	require.Equal(t, `"2024-01-02","Daily Survey","Survey","12.50","said ""thanks"", paid fast"`, lines[1])
}

func TestEntriesToCSVUnknownMethod(t *testing.T) {
	e := csvEntry("", "", "2024-01-02", 3, "")
	e.Method = models.Method{}
	out := EntriesToCSV([]models.DailyEarning{e})
	require.Contains(t, out, `"Unknown"`)
}

func TestParseCSVQuotedFields(t *testing.T) {
	text := CSVHeader + "\n" +
		`"2024-01-02","Daily Survey","Survey","12.50","said ""thanks"", paid fast"` + "\n"

	rows := ParseCSV(text)
	require.Len(t, rows, 1)
	require.Equal(t, "2024-01-02", rows[0].Date)
	require.Equal(t, "Daily Survey", rows[0].Method)
	require.Equal(t, "Survey", rows[0].Category)
	require.Equal(t, "12.50", rows[0].Amount)
	require.Equal(t, `said "thanks", paid fast`, rows[0].Notes)
}

func TestParseCSVThreeColumnFallback(t *testing.T) {
	text := "Date,Method,Amount\n2024-01-02,Survey,5.00\n\n"
	rows := ParseCSV(text)
	require.Len(t, rows, 1)
	require.Equal(t, "Survey", rows[0].Method)
	require.Equal(t, "5.00", rows[0].Amount)
	require.Empty(t, rows[0].Category)
}

func TestCSVRoundTrip(t *testing.T) {
	entries := []models.DailyEarning{
		csvEntry("Daily Survey", "Survey", "2024-01-01", 10, "morning batch"),
		csvEntry("Cashback App", "Cashback", "2024-01-02", 3.456, `notes, with "everything"`),
		csvEntry("Referral", "Referral", "2024-01-03", 0, ""),
	}

	rows := ParseCSV(EntriesToCSV(entries))
	require.Len(t, rows, len(entries))
	for i, row := range rows {
		require.Equal(t, DayOf(entries[i].EntryDate).Format("2006-01-02"), row.Date)
		require.Equal(t, entries[i].Method.Title, row.Method)
		require.Equal(t, entries[i].Notes, row.Notes)
	}
	// Amounts survive at two-decimal precision.
	require.Equal(t, "10.00", rows[0].Amount)
	require.Equal(t, "3.46", rows[1].Amount)
	require.Equal(t, "0.00", rows[2].Amount)
}

func TestValidateCSVRows(t *testing.T) {
	rows := []CsvRow{
		{Date: "2024-01-01", Method: "Survey", Amount: "5.00"},
		{Date: "2025-13-40", Method: "Survey", Amount: "abc"},
		{Date: "", Method: "", Amount: ""},
	}

	errs := ValidateCSVRows(rows)
	require.Len(t, errs, 5)
	require.Contains(t, errs[0], "Row 2: Invalid date format")
	require.Contains(t, errs[1], "Row 2: Invalid amount")
	require.Contains(t, errs[2], "Row 3: Missing date")
	require.Contains(t, errs[3], "Row 3: Missing method")
	require.Contains(t, errs[4], "Row 3: Missing amount")
}

func TestValidateCSVRowsRejectsNegativeAmount(t *testing.T) {
	errs := ValidateCSVRows([]CsvRow{{Date: "2024-01-01", Method: "Survey", Amount: "-3"}})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "Invalid amount")
}

func TestValidDateChecksCalendar(t *testing.T) {
	require.True(t, ValidDate("2024-02-29"))
	require.True(t, ValidDate("2025-12-31"))

	require.False(t, ValidDate("2025-13-40"))
	require.False(t, ValidDate("2025-02-30"))
	require.False(t, ValidDate("2023-02-29"))
	require.False(t, ValidDate("2025-00-10"))
	require.False(t, ValidDate("2025-1-2"))
}

func TestValidateCSVRowRejectsImpossibleDate(t *testing.T) {
	errs := ValidateCSVRow(1, CsvRow{Date: "2025-13-40", Method: "Survey", Amount: "5"})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "Row 1: Invalid date format")
}

func TestValidateCSVRowKeepsRowsIndependent(t *testing.T) {
	rows := []CsvRow{
		{Date: "2024-01-01", Method: "Survey", Amount: "5.00"},
		{Date: "not-a-date", Method: "Survey", Amount: "5.00"},
		{Date: "2024-01-03", Method: "Survey", Amount: "5.00"},
	}

	// Only the bad row carries errors; its neighbors stay importable.
	for i, row := range rows {
		errs := ValidateCSVRow(i+1, row)
		if i == 1 {
			require.Len(t, errs, 1)
			require.Contains(t, errs[0], "Row 2")
		} else {
			require.Empty(t, errs)
		}
	}
}
