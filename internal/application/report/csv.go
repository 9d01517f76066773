package report

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/google/uuid"
)

// utf8BOM makes Excel open the CSV with the right encoding; gabbai
// reports carry Hebrew names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV renders the event report as a UTF-8 CSV file
func (s *ReportService) ExportCSV(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	data, err := s.BuildData(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Buyer", "Item", "Price", "Time"}); err != nil {
		return nil, err
	}

	for _, group := range data.Groups {
		for _, row := range group.Rows {
			record := []string{
				row.BuyerName,
				row.ItemName,
				row.Price.StringFixed(2),
				row.Timestamp.Format("2006-01-02 15:04"),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		subtotal := []string{group.BuyerName, "Subtotal", group.Subtotal.StringFixed(2), ""}
		if err := w.Write(subtotal); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{"", "Total", data.TotalPledged.StringFixed(2), ""}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
