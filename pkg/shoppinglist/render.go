package shoppinglist

import (
	"bytes"
	"fmt"
	"time"

	"foodgram/domain"

	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/text/encoding/charmap"
)

const (
	textFilename = "shopping_cart"
	pdfFilename  = "shopping_cart.pdf"

	textContentType = "text/plain; charset=utf-8"
	pdfContentType  = "application/pdf"

	defaultTitle = "Shopping list"
	utf8Family   = "ListFont"
)

// Renderer turns an aggregated list into a downloadable document. Rendering
// the same items twice yields identical bytes.
type Renderer interface {
	Render(items []domain.ShoppingListItem) (domain.Document, error)
}

// RenderOptions configure renderers that need more than the items.
type RenderOptions struct {
	Title string
	// FontPath points at a TTF font with full UTF-8 coverage. Without it the
	// PDF uses a core font and non cp1252 characters degrade.
	FontPath string
	// Date is stamped into PDF metadata.
	Date time.Time
}

// NewRenderer returns the renderer for format; an empty format means text.
func NewRenderer(format string, opts RenderOptions) (Renderer, error) {
	switch format {
	case "", domain.ListFormatText:
		return TextRenderer{}, nil
	case domain.ListFormatPDF:
		return PDFRenderer{Title: opts.Title, FontPath: opts.FontPath, Date: opts.Date}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownListFormat, format)
	}
}

func formatLine(i int, item domain.ShoppingListItem) string {
	return fmt.Sprintf("%d. %s: %d (%s)", i+1, item.Name, item.TotalAmount, item.MeasurementUnit)
}

// TextRenderer writes one "<n>. <name>: <total> (<unit>)" line per item.
type TextRenderer struct{}

func (TextRenderer) Render(items []domain.ShoppingListItem) (domain.Document, error) {
	var buf bytes.Buffer
	for i, item := range items {
		buf.WriteString(formatLine(i, item))
		buf.WriteByte('\n')
	}
	return domain.Document{
		Body:        buf.Bytes(),
		ContentType: textContentType,
		Filename:    textFilename,
	}, nil
}

// PDFRenderer lays the same numbered lines out on A4 pages under a title.
type PDFRenderer struct {
	Title    string
	FontPath string
	Date     time.Time
}

func (r PDFRenderer) Render(items []domain.ShoppingListItem) (domain.Document, error) {
	title := r.Title
	if title == "" {
		title = defaultTitle
	}
	date := r.Date
	if date.IsZero() {
		date = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(date)
	pdf.SetModificationDate(date)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(title, true)

	family := "Helvetica"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if r.FontPath == "" && needsUnicodeFont(items) {
		log.Warnw("shopping list has names outside cp1252; set PDF_FONT_PATH to a TTF font to render them", "items", len(items))
	}
	if r.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", r.FontPath)
		family = utf8Family
		translate = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "", 20)
	pdf.CellFormat(0, 12, translate(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 13)
	for i, item := range items {
		pdf.CellFormat(0, 8, translate(formatLine(i, item)), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return domain.Document{}, fmt.Errorf("render pdf: %w", err)
	}
	return domain.Document{
		Body:        buf.Bytes(),
		ContentType: pdfContentType,
		Filename:    pdfFilename,
	}, nil
}

// needsUnicodeFont reports whether any name or unit cannot be drawn with the
// built-in cp1252 fonts.
func needsUnicodeFont(items []domain.ShoppingListItem) bool {
	enc := charmap.Windows1252.NewEncoder()
	for _, item := range items {
		if _, err := enc.String(item.Name + item.MeasurementUnit); err != nil {
			return true
		}
	}
	return false
}
