package report

import (
	"bytes"
	"context"
	"html/template"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reportTemplate is the printable event report. dir="auto" lets Hebrew
// buyer and item names lay out right-to-left inside an English frame.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: "Noto Sans Hebrew", "David Libre", sans-serif; margin: 0; color: #1a1a1a; }
  h1 { font-size: 20px; margin: 0 0 2px 0; }
  .subtitle { font-size: 13px; color: #555; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th { text-align: left; border-bottom: 2px solid #333; padding: 4px 6px; }
  td { border-bottom: 1px solid #ddd; padding: 4px 6px; }
  td.price { text-align: right; white-space: nowrap; }
  tr.subtotal td { font-weight: bold; border-bottom: 2px solid #999; }
  .total { margin-top: 14px; font-size: 14px; font-weight: bold; text-align: right; }
  .empty { margin-top: 20px; color: #777; font-style: italic; }
</style>
</head>
<body>
<h1 dir="auto">{{.EventName}}</h1>
<div class="subtitle" dir="auto">
  {{.EventDate}}{{if .HebrewDate}} &middot; {{.HebrewDate}}{{end}}{{if .Details}} &middot; {{.Details}}{{end}}
</div>
{{if .Groups}}
<table>
  <tr><th>Buyer</th><th>Item</th><th style="text-align:right">Price</th></tr>
  {{range .Groups}}
    {{range .Rows}}
    <tr>
      <td dir="auto">{{.BuyerName}}</td>
      <td dir="auto">{{.ItemName}}</td>
      <td class="price">&#8362;{{.Price.StringFixed 2}}</td>
    </tr>
    {{end}}
    <tr class="subtotal">
      <td dir="auto">{{.BuyerName}}</td>
      <td>Subtotal</td>
      <td class="price">&#8362;{{.Subtotal.StringFixed 2}}</td>
    </tr>
  {{end}}
</table>
<div class="total">Total pledged: &#8362;{{.TotalPledged.StringFixed 2}} ({{.PurchaseCount}} purchases)</div>
{{else}}
<div class="empty">No purchases were recorded at this event.</div>
{{end}}
</body>
</html>`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// ExportPDF renders the event report as a printable A4 PDF
func (s *ReportService) ExportPDF(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	data, err := s.BuildData(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderPDF(ctx, buf.String())
	if err != nil {
		s.logger.Error("Report PDF rendering failed",
			zap.String("event_id", eventID.String()),
			zap.Error(err))
		return nil, err
	}
	return pdf, nil
}
