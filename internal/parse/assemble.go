package parse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/towel-orders/internal/catalog"
	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

// Assembler turns item chunks into LineItem records using the field
// anchors and the catalog tables. It holds no per-document state.
type Assembler struct {
	cat    *catalog.Catalog
	logger *slog.Logger
}

func NewAssembler(cat *catalog.Catalog, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{cat: cat, logger: logger}
}

// orderContext is the order-level metadata shared by every item in a
// block. It is built once per block and passed by value into item
// assembly, so one order's fields can never leak into another block.
type orderContext struct {
	orderID         string
	orderDate       string
	shippingService string
	buyerName       string
	giftMessage     string
}

// ParseDocument runs the per-document pipeline: normalize pages, segment
// into order blocks and item chunks, and assemble one LineItem per chunk.
// Malformed blocks and chunks are dropped, never surfaced as errors.
func (a *Assembler) ParseDocument(doc entity.Document) []entity.LineItem {
	lines := NormalizeDocument(doc)
	blocks := SegmentOrders(lines)

	var items []entity.LineItem
	for _, block := range blocks {
		octx := a.orderContextFor(block)
		if !ValidOrderID(octx.orderID) {
			a.logger.Warn("parse.block.dropped",
				"source", doc.Name, "order_id", octx.orderID, "reason", "invalid order id")
			continue
		}
		for _, chunk := range SegmentItems(block) {
			item, ok := a.assembleItem(chunk, block, octx, doc.Name)
			if !ok {
				continue
			}
			items = append(items, item)
		}
	}
	return items
}

func (a *Assembler) orderContextFor(block OrderBlock) orderContext {
	octx := orderContext{orderID: block.OrderID}
	if v, ok := AnchorOrderDate.Extract(block.Lines); ok {
		octx.orderDate = v
	}
	if v, ok := AnchorShipping.Extract(block.Lines); ok {
		octx.shippingService = v
	}
	if v, ok := AnchorBuyer.Extract(block.Lines); ok {
		octx.buyerName = v
	}
	if v, ok := AnchorGift.Extract(block.Lines); ok {
		octx.giftMessage = v
	}
	return octx
}

var reHexSuffix = regexp.MustCompile(`\s*\(#?[0-9A-Fa-f]{3,8}\)`)

// value prefixes that mark money/summary lines masquerading as
// customization text
var customizationValueNoise = []string{
	"item subtotal", "promotion", "tax", "grand total",
}

func (a *Assembler) assembleItem(chunk ItemChunk, block OrderBlock, octx orderContext, source string) (entity.LineItem, bool) {
	if chunk.SKU == "" {
		return entity.LineItem{}, false
	}
	decoded := a.cat.Decode(chunk.SKU)

	item := entity.LineItem{
		OrderID:         octx.orderID,
		OrderDate:       octx.orderDate,
		ShippingService: octx.shippingService,
		BuyerName:       octx.buyerName,
		SKU:             decoded.SKU,
		ProductType:     decoded.ProductType,
		Color:           decoded.Color,
		Quantity:        ExtractQuantity(chunk.Lines, block.Lines[:chunk.Start]),
		SourceDocument:  source,
	}

	if v, ok := AnchorFont.Extract(chunk.Lines); ok {
		item.Font = v
	}
	if v, ok := AnchorThreadColor.Extract(chunk.Lines); ok {
		raw := strings.TrimSpace(reHexSuffix.ReplaceAllString(v, ""))
		item.ThreadColorRaw = raw
		item.ThreadColorLocalized = a.cat.Localize(raw)
	}
	if v, ok := AnchorGift.Extract(chunk.Lines); ok {
		item.GiftMessage = v
	} else {
		item.GiftMessage = octx.giftMessage
	}

	item.Customization = a.collectCustomization(chunk.Lines, decoded)
	return item, true
}

// collectCustomization captures piece-name values, restricted to the
// vocabulary the decoder expects for the product type (the broader fixed
// fallback vocabulary for unknown types). The last occurrence of a piece
// wins, correcting upstream duplication.
func (a *Assembler) collectCustomization(lines []string, decoded catalog.Decoded) map[string]string {
	pieces := decoded.Pieces
	if len(pieces) == 0 {
		pieces = a.cat.FallbackPieces()
	}
	out := make(map[string]string)
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		for _, piece := range pieces {
			v, ok := matchPiece(trimmed, piece)
			if !ok || v == "" {
				continue
			}
			if isCustomizationNoise(v) {
				continue
			}
			out[piece] = v
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// matchPiece is stricter than the generic anchor matcher: a piece line
// must carry an explicit colon, so product headers like "Hand Towel Set"
// never leak into the customization map.
func matchPiece(trimmed, piece string) (string, bool) {
	if len(trimmed) <= len(piece) || !strings.EqualFold(trimmed[:len(piece)], piece) {
		return "", false
	}
	rest := strings.TrimLeft(trimmed[len(piece):], " ")
	if rest == "" || rest[0] != ':' {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}

func isCustomizationNoise(v string) bool {
	lower := strings.ToLower(v)
	for _, prefix := range customizationValueNoise {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
