package export

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"hotelops/internal/domains/report/model"
	"hotelops/shared/constant"
	"hotelops/shared/timezone"
)

const (
	SheetSummary    = "Summary"
	SheetRevenue    = "Revenue"
	SheetRoomStatus = "Room Status"
	SheetOccupancy  = "Occupancy"

	defaultSheet = "Sheet1"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// FileName names the workbook for a report so archived copies sort by generation time.
func FileName(report model.Report) string {
	return fmt.Sprintf("report-%s-%s.xlsx", report.Range, timezone.Format(report.GeneratedAt, "20060102-150405"))
}

// Workbook renders report as an xlsx file with one sheet for the summary and one per chart.
func Workbook(report model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close report workbook")
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets(report) {
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, err
		}

		if i == 0 {
			index, err := f.GetSheetIndex(s.name)
			if err != nil {
				return nil, fmt.Errorf("failed to find sheet %s: %w", s.name, err)
			}

			f.SetActiveSheet(index)
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func sheets(report model.Report) []sheet {
	summary := sheet{
		name:    SheetSummary,
		headers: []string{"Metric", "Value"},
		widths:  []float64{28, 20},
		rows: [][]any{
			{"Range", string(report.Range)},
			{"Start Date", timezone.Format(report.StartDate, constant.DayFormat)},
			{"Generated At", timezone.Format(report.GeneratedAt, constant.DateFormat)},
			{"Total Revenue", report.TotalRevenue.InexactFloat64()},
			{"Tax Collected", report.TotalTaxCollected.InexactFloat64()},
			{"Average Tax Rate (%)", report.AverageTaxRate.InexactFloat64()},
			{"Refunds", report.TotalRefunds.InexactFloat64()},
			{"Net Revenue", report.NetRevenue.InexactFloat64()},
			{"Occupancy Rate (%)", report.OccupancyRate},
			{"Average Daily Rate", report.AverageDailyRate.InexactFloat64()},
			{"Bookings", report.TotalBookings},
			{"Cancellation Rate (%)", report.CancellationRate},
			{"Outstanding Payments", report.OutstandingPayments},
			{"Partial Payments", report.PartialPayments},
		},
	}

	revenue := sheet{name: SheetRevenue, headers: []string{"Day", "Revenue"}, widths: []float64{14, 16}}
	for _, point := range report.Charts.Revenue {
		revenue.rows = append(revenue.rows, []any{point.Label, point.Value.InexactFloat64()})
	}

	rooms := sheet{name: SheetRoomStatus, headers: []string{"Status", "Rooms"}, widths: []float64{16, 10}}
	for _, count := range report.Charts.RoomStatus {
		rooms.rows = append(rooms.rows, []any{count.Status, count.Count})
	}

	occupancy := sheet{name: SheetOccupancy, headers: []string{"Day", "Occupancy (%)"}, widths: []float64{14, 16}}
	for _, point := range report.Charts.Occupancy {
		occupancy.rows = append(occupancy.rows, []any{point.Label, point.Rate})
	}

	return []sheet{summary, revenue, rooms, occupancy}
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if _, err := f.NewSheet(s.name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
	}

	for col, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}

		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}

		if err := f.SetCellStyle(s.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for col, width := range s.widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}

		if err := f.SetColWidth(s.name, name, name, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}

		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, s.name, err)
		}
	}

	return nil
}
