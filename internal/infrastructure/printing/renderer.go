package printing

import "context"

// PDFRenderer converts an HTML document to PDF bytes
type PDFRenderer interface {
	// RenderPDF renders the given HTML document to an A4 portrait PDF
	RenderPDF(ctx context.Context, html string) ([]byte, error)

	// Close releases resources held by the renderer
	Close() error
}
