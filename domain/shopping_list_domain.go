package domain

const (
	ListFormatText = "txt"
	ListFormatPDF  = "pdf"
)

type (
	// ShoppingListItem is the total amount of one ingredient across every
	// recipe in a user's cart.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int64  `json:"total_amount"`
	}

	// Document is a rendered shopping list ready for download.
	Document struct {
		Body        []byte
		ContentType string
		Filename    string
	}
)
