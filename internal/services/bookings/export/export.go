// Package export renders bookings as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/message"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename is the suggested download name.
const Filename = "bookings.xlsx"

// Localizer translates header labels.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var headerKeys = []string{
	"export.id",
	"table.name",
	"table.date",
	"table.time",
	"table.facility",
	"table.status",
	"export.created_at",
	"export.updated_at",
}

// Workbook builds a single-sheet workbook with one header row and one row per
// booking, in the order given.
func Workbook(bookings []domain.Booking, loc Localizer) (*excelize.File, error) {
	sheet := translate(loc, "export.sheet")
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("drop default sheet: %w", err)
		}
	}

	header := make([]any, 0, len(headerKeys))
	for _, key := range headerKeys {
		header = append(header, translate(loc, key))
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headerKeys), 1)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, booking := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := []any{
			booking.ID,
			booking.Name,
			booking.Date.String(),
			booking.Time,
			booking.Facility,
			translate(loc, "status."+string(booking.Status)),
			booking.CreatedAt.UTC().Format(time.RFC3339),
			booking.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write booking %d: %w", booking.ID, err)
		}
	}
	return f, nil
}

// Write streams the workbook for bookings to w.
func Write(w io.Writer, bookings []domain.Booking, loc Localizer) error {
	f, err := Workbook(bookings, loc)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func translate(loc Localizer, key string) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key)
}
