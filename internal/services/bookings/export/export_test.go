package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	webi18n "github.com/louisbranch/facility-bookings/internal/services/bookings/web/i18n"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
)

func TestWriteProducesHeaderAndRows(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	bookings := []domain.Booking{
		{ID: 2, Name: "Bob", Date: domain.Date{Year: 2024, Month: time.March, Day: 5}, Time: "09:00", Facility: "Gym", Status: domain.StatusCancelled, CreatedAt: created, UpdatedAt: created},
		{ID: 1, Name: "Alice", Date: domain.Date{Year: 2024, Month: time.January, Day: 1}, Time: "10:00", Facility: "Room A", Status: domain.StatusApproved, CreatedAt: created, UpdatedAt: created},
	}

	var buf bytes.Buffer
	if err := Write(&buf, bookings, webi18n.Printer(webi18n.Default())); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Name" || rows[0][6] != "Created At" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "2" || rows[1][1] != "Bob" || rows[1][2] != "2024-03-05" {
		t.Fatalf("first row = %v", rows[1])
	}
	if rows[1][5] != "CANCELLED" {
		t.Fatalf("status cell = %q, want %q", rows[1][5], "CANCELLED")
	}
	if rows[2][1] != "Alice" || rows[2][7] != "2024-01-02T03:04:05Z" {
		t.Fatalf("second row = %v", rows[2])
	}
	if got := f.GetSheetList(); len(got) != 1 {
		t.Fatalf("sheets = %v, want one", got)
	}
	for _, cell := range []string{"A1", "H1"} {
		idx, err := f.GetCellStyle("Bookings", cell)
		if err != nil {
			t.Fatalf("get style %s: %v", cell, err)
		}
		style, err := f.GetStyle(idx)
		if err != nil {
			t.Fatalf("style %s: %v", cell, err)
		}
		if style.Font == nil || !style.Font.Bold {
			t.Fatalf("%s font = %+v, want bold", cell, style.Font)
		}
	}
}

func TestWorkbookLocalizesHeaders(t *testing.T) {
	t.Parallel()

	f, err := Workbook(nil, webi18n.Printer(language.MustParse("pt-BR")))
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Reservas" {
		t.Fatalf("sheets = %v, want [Reservas]", sheets)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "Nome" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestWorkbookWithoutLocalizerUsesKeys(t *testing.T) {
	t.Parallel()

	f, err := Workbook(nil, nil)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()
	value, err := f.GetCellValue("export.sheet", "A1")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if value != "export.id" {
		t.Fatalf("A1 = %q, want %q", value, "export.id")
	}
}
