package shoppinglist

import (
	"bytes"
	"testing"
	"time"

	"foodgram/domain"

	"github.com/ledongthuc/pdf"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flourEggMilk = []domain.ShoppingListItem{
	{Name: "egg", MeasurementUnit: "pc", TotalAmount: 2},
	{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
	{Name: "milk", MeasurementUnit: "ml", TotalAmount: 50},
}

func TestTextRendererGolden(t *testing.T) {
	doc, err := TextRenderer{}.Render(flourEggMilk)
	require.NoError(t, err)

	assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)
	assert.Equal(t, "shopping_cart", doc.Filename)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "flour_egg_milk", doc.Body)
}

func TestTextRendererEmpty(t *testing.T) {
	doc, err := TextRenderer{}.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Body)
}

func TestTextRendererIsIdempotent(t *testing.T) {
	first, err := TextRenderer{}.Render(flourEggMilk)
	require.NoError(t, err)
	second, err := TextRenderer{}.Render(flourEggMilk)
	require.NoError(t, err)

	assert.Equal(t, first.Body, second.Body)
}

func TestPDFRenderer(t *testing.T) {
	date := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	renderer := PDFRenderer{Date: date}

	doc, err := renderer.Render(flourEggMilk)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "shopping_cart.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))

	reader, err := pdf.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	assert.Equal(t, 1, reader.NumPage())

	again, err := renderer.Render(flourEggMilk)
	require.NoError(t, err)
	assert.Equal(t, doc.Body, again.Body)
}

func TestPDFRendererEmptyList(t *testing.T) {
	doc, err := PDFRenderer{}.Render(nil)
	require.NoError(t, err)

	reader, err := pdf.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	assert.Equal(t, 1, reader.NumPage())
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("", RenderOptions{})
	require.NoError(t, err)
	assert.IsType(t, TextRenderer{}, r)

	r, err = NewRenderer(domain.ListFormatPDF, RenderOptions{})
	require.NoError(t, err)
	assert.IsType(t, PDFRenderer{}, r)

	_, err = NewRenderer("docx", RenderOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownListFormat)
}

func TestNeedsUnicodeFont(t *testing.T) {
	assert.False(t, needsUnicodeFont(flourEggMilk))
	assert.False(t, needsUnicodeFont([]domain.ShoppingListItem{{Name: "crème fraîche", MeasurementUnit: "g"}}))
	assert.True(t, needsUnicodeFont([]domain.ShoppingListItem{{Name: "мука", MeasurementUnit: "г"}}))
	assert.True(t, needsUnicodeFont(append(flourEggMilk, domain.ShoppingListItem{Name: "sake", MeasurementUnit: "合"})))
	assert.False(t, needsUnicodeFont(nil))
}
