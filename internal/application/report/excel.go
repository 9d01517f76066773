package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportSheet = "Report"

// ExportExcel renders the event report as an .xlsx workbook with one
// sheet: the event header, buyer-grouped rows with subtotals, and the
// grand total
func (s *ReportService) ExportExcel(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	data, err := s.BuildData(ctx, eventID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	f.SetSheetName("Sheet1", reportSheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	title := data.EventName
	if data.HebrewDate != "" {
		title = fmt.Sprintf("%s (%s)", data.EventName, data.HebrewDate)
	}
	setCell(f, 1, "A", title)
	setCell(f, 2, "A", data.EventDate)
	if data.Details != "" {
		setCell(f, 3, "A", data.Details)
	}

	headerRow := 5
	for col, name := range []string{"Buyer", "Item", "Price", "Time"} {
		cell := fmt.Sprintf("%c%d", 'A'+col, headerRow)
		if err := f.SetCellValue(reportSheet, cell, name); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, bold); err != nil {
			return nil, err
		}
	}

	rowNum := headerRow + 1
	for _, group := range data.Groups {
		for _, row := range group.Rows {
			setCell(f, rowNum, "A", row.BuyerName)
			setCell(f, rowNum, "B", row.ItemName)
			setCell(f, rowNum, "C", row.Price.InexactFloat64())
			setCell(f, rowNum, "D", row.Timestamp.Format("2006-01-02 15:04"))
			rowNum++
		}
		setCell(f, rowNum, "B", "Subtotal")
		setCell(f, rowNum, "C", group.Subtotal.InexactFloat64())
		subtotalCells := fmt.Sprintf("B%d", rowNum)
		if err := f.SetCellStyle(reportSheet, subtotalCells, fmt.Sprintf("C%d", rowNum), bold); err != nil {
			return nil, err
		}
		rowNum++
	}

	rowNum++
	setCell(f, rowNum, "B", "Total")
	setCell(f, rowNum, "C", data.TotalPledged.InexactFloat64())
	if err := f.SetCellStyle(reportSheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("C%d", rowNum), bold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(reportSheet, "A", "B", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "C", "D", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, row int, col string, value interface{}) {
	// Cell coordinates are generated, not user input; errors here would
	// mean a programming mistake.
	_ = f.SetCellValue(reportSheet, fmt.Sprintf("%s%d", col, row), value)
}
