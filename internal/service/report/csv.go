package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

// The CSV contract: a fixed header, free-text fields always quoted with
// embedded quotes doubled and newlines flattened to spaces, numbers and
// timestamps unquoted. encoding/csv only quotes when forced to, so the
// rendering is done by hand.
const timeLayout = "2006-01-02 15:04"

func csvHeader() []string {
	return []string{
		"id", "date", "driver", "vehicle",
		"start time", "end time", "destination", "notes",
		"start odometer", "end odometer",
		"distance", "fuel used", "cost", "comments",
	}
}

func renderRows(trips []models.Trip, settings models.Settings) [][]string {
	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []string{
			t.ID.String(),
			t.DayKey.String(),
			quoteText(settings.Driver),
			quoteText(settings.Vehicle),
			t.StartedAt.Format(timeLayout),
			formatTimePtr(t.EndedAt),
			quoteText(t.Destination),
			quoteText(t.Notes),
			formatOdometer(t.StartOdometer),
			formatFloatPtr(t.EndOdometer, formatOdometer),
			formatFloatPtr(t.Distance, formatComputed),
			formatFloatPtr(t.FuelUsed, formatComputed),
			formatFloatPtr(t.Cost, formatComputed),
			quoteText(derefString(t.Comments)),
		})
	}
	return rows
}

// Render serializes the report with CRLF line endings.
func Render(report *models.Report) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(report.Header, ","))
	b.WriteString("\r\n")
	for _, row := range report.Rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

func quoteText(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatOdometer(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatComputed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatFloatPtr(v *float64, format func(float64) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
