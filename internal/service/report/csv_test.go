package report

import (
	"strings"
	"testing"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

func TestQuoteText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"warehouse", `"warehouse"`},
		{"", `""`},
		{`say "hi"`, `"say ""hi"""`},
		{"line one\nline two", `"line one line two"`},
		{"a\r\nb", `"a b"`},
		{"with, comma", `"with, comma"`},
	}

	for _, tt := range tests {
		if got := quoteText(tt.in); got != tt.want {
			t.Fatalf("quoteText(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatOdometer(t *testing.T) {
	if got := formatOdometer(1500); got != "1500" {
		t.Fatalf("whole readings must drop the decimal point, got %s", got)
	}
	if got := formatOdometer(1500.5); got != "1500.5" {
		t.Fatalf("fractional readings keep their precision, got %s", got)
	}
}

func TestFormatComputed(t *testing.T) {
	if got := formatComputed(125); got != "125.00" {
		t.Fatalf("computed values always use two decimals, got %s", got)
	}
	if got := formatComputed(31.25); got != "31.25" {
		t.Fatalf("got %s", got)
	}
}

func TestRenderRows_QuotesTextFields(t *testing.T) {
	trip := completedTrip(t, "2026-08-15", 500, 550)
	trip.Destination = `cliente "El Norte"`
	trip.Notes = "dos\nparadas"

	rows := renderRows([]models.Trip{trip}, models.Settings{
		Driver: "Maria Lopez", Vehicle: "Nissan NP300", FuelEconomy: 10, FuelPrice: 25,
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]

	if row[2] != `"Maria Lopez"` {
		t.Fatalf("driver must be quoted: %s", row[2])
	}
	if row[6] != `"cliente ""El Norte"""` {
		t.Fatalf("embedded quotes must be doubled: %s", row[6])
	}
	if row[7] != `"dos paradas"` {
		t.Fatalf("newlines must flatten to spaces: %s", row[7])
	}
	if row[8] != "500" || row[9] != "550" {
		t.Fatalf("odometers must be unquoted numbers: %s, %s", row[8], row[9])
	}
	if row[10] != "50.00" || row[11] != "5.00" || row[12] != "125.00" {
		t.Fatalf("computed fields use two decimals: %s %s %s", row[10], row[11], row[12])
	}
}

func TestRender(t *testing.T) {
	trip := completedTrip(t, "2026-08-15", 500, 550)
	settings := models.Settings{Driver: "M", Vehicle: "V", FuelEconomy: 10, FuelPrice: 25}

	rep := &models.Report{
		Header: csvHeader(),
		Rows:   renderRows([]models.Trip{trip}, settings),
	}

	out := string(Render(rep))
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,date,driver,vehicle") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasSuffix(out, "\r\n") {
		t.Fatalf("rows must end with CRLF")
	}
}
