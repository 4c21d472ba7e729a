package entity

import (
	"github.com/google/uuid"
)

// LineItem is one physical product unit on one order, assembled from an
// item chunk plus its enclosing order metadata.
type LineItem struct {
	OrderID              string            `json:"order_id"`
	OrderDate            string            `json:"order_date,omitempty"`
	ShippingService      string            `json:"shipping_service,omitempty"`
	BuyerName            string            `json:"buyer_name,omitempty"`
	SKU                  string            `json:"sku"`
	ProductType          string            `json:"product_type"`
	Color                string            `json:"color"`
	Font                 string            `json:"font,omitempty"`
	ThreadColorRaw       string            `json:"thread_color_raw,omitempty"`
	ThreadColorLocalized string            `json:"thread_color_localized,omitempty"`
	Quantity             int               `json:"quantity"`
	Customization        map[string]string `json:"customization,omitempty"`
	GiftMessage          string            `json:"gift_message,omitempty"`
	SourceDocument       string            `json:"source_document"`
}

// Page is one page of collaborator-extracted text, as an ordered sequence
// of raw lines. An extraction failure for a page yields an empty Page.
type Page struct {
	Lines []string `json:"lines"`
}

// Document is one uploaded order-confirmation document after the external
// text extractor has run. Name carries through to LineItem.SourceDocument.
type Document struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Pages []Page    `json:"pages"`
}
