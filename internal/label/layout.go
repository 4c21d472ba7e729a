// Package label turns line items into layout descriptions for a fixed
// 4×6 inch label: which text goes where, at what size and emphasis. An
// external renderer owns the actual drawing.
package label

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/towel-orders/internal/catalog"
	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

// Orientation of the 4×6 canvas.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Alignment of a text field relative to its X coordinate.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// Style is the requested emphasis for one text field.
type Style struct {
	Font  string  `json:"font"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// TextField is one placed string: position in points from the bottom-left
// corner of the canvas.
type TextField struct {
	Name  string    `json:"name"`
	Text  string    `json:"text"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Style Style     `json:"style"`
	Align Alignment `json:"align"`
}

// Layout is the full placement request for one label page.
type Layout struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"orientation"`
	Fields      []TextField `json:"fields"`
}

// Geometry constants, in points.
const (
	inch = 72.0

	pageShort = 4 * inch
	pageLong  = 6 * inch

	leftMargin   = 0.35 * inch
	rightMargin  = 0.25 * inch
	bottomMargin = 0.25 * inch
)

// Font sizes.
const (
	fsHeadline = 20.0
	fsInfo     = 11.0
	fsBullet   = 11.0
	fsFooter   = 8.0
	fsGiftNote = 16.0
)

// Renderer builds layouts. It carries the catalog so customization lines
// come out in canonical piece order.
type Renderer struct {
	cat      *catalog.Catalog
	maxLines int
}

// NewRenderer returns a Renderer capping the customization block at
// maxLines visible lines (<=0 selects the default of 6).
func NewRenderer(cat *catalog.Catalog, maxLines int) *Renderer {
	if maxLines <= 0 {
		maxLines = 6
	}
	return &Renderer{cat: cat, maxLines: maxLines}
}

// Manufacturing builds the 4×6 landscape label for one line item: buyer
// headline, info block, localized thread-color line, bulleted
// customization capped at the configured line count, optional gift-note
// indicator and a de-emphasized source footer.
func (r *Renderer) Manufacturing(it entity.LineItem) Layout {
	const (
		w = pageLong
		h = pageShort
	)
	l := Layout{Width: w, Height: h, Orientation: Landscape}
	add := func(name, text string, x, y float64, style Style, align Alignment) {
		l.Fields = append(l.Fields, TextField{Name: name, Text: text, X: x, Y: y, Style: style, Align: align})
	}

	info := Style{Font: "Helvetica", Size: fsInfo, Color: "black"}
	bold := Style{Font: "Helvetica-Bold", Size: fsInfo, Color: "black"}

	add("buyer", truncate(it.BuyerName, 60), leftMargin, h-0.55*inch,
		Style{Font: "Helvetica-Bold", Size: fsHeadline, Color: "black"}, AlignLeft)

	add("order_id", "Order ID: "+it.OrderID, leftMargin, h-0.85*inch, info, AlignLeft)
	product := it.ProductType
	if it.Color != "" {
		product = fmt.Sprintf("%s – %s", it.ProductType, it.Color)
	}
	add("product", "Product: "+product, leftMargin, h-1.10*inch, bold, AlignLeft)

	y := h - 1.35*inch
	if it.ThreadColorLocalized != "" {
		add("thread_color", "Thread Color: "+it.ThreadColorLocalized, leftMargin, y, bold, AlignLeft)
		y -= 0.25 * inch
	}
	if it.Font != "" {
		add("font", "Font: "+it.Font, leftMargin, y, info, AlignLeft)
		y -= 0.25 * inch
	}
	add("quantity", fmt.Sprintf("Quantity: %d %s", it.Quantity, r.unitWord(it)), leftMargin, y, bold, AlignLeft)
	y -= 0.35 * inch

	bullet := Style{Font: "Helvetica", Size: fsBullet, Color: "black"}
	for i, line := range r.customizationLines(it) {
		if i >= r.maxLines || y < 0.40*inch {
			break
		}
		add(fmt.Sprintf("customization_%d", i), "• "+line, leftMargin, y, bullet, AlignLeft)
		y -= 0.22 * inch
	}

	if strings.TrimSpace(it.GiftMessage) != "" {
		y -= 0.08 * inch
		add("gift_note", "Gift Note: YES", leftMargin, y, info, AlignLeft)
	}

	add("source", "Source: "+it.SourceDocument, w-rightMargin, bottomMargin,
		Style{Font: "Helvetica", Size: fsFooter, Color: "grey"}, AlignRight)
	return l
}

// Gift builds the 4×6 portrait gift-note label. ok is false when the item
// carries no gift message and no label should be produced.
func (r *Renderer) Gift(it entity.LineItem) (Layout, bool) {
	msg := strings.TrimSpace(it.GiftMessage)
	if msg == "" {
		return Layout{}, false
	}
	const (
		w = pageShort
		h = pageLong
	)
	l := Layout{Width: w, Height: h, Orientation: Portrait}

	lines := wrapText(msg, 28)
	y := h/2 + float64(len(lines))*0.18*inch
	style := Style{Font: "Helvetica-Oblique", Size: fsGiftNote, Color: "black"}
	for i, ln := range lines {
		l.Fields = append(l.Fields, TextField{
			Name: fmt.Sprintf("message_%d", i), Text: ln,
			X: w / 2, Y: y, Style: style, Align: AlignCenter,
		})
		y -= 0.3 * inch
	}

	footer := strings.TrimSpace(fmt.Sprintf("%s — %s", it.BuyerName, it.OrderID))
	l.Fields = append(l.Fields, TextField{
		Name: "footer", Text: footer,
		X: w / 2, Y: 0.4 * inch,
		Style: Style{Font: "Helvetica", Size: 9, Color: "black"},
		Align: AlignCenter,
	})
	return l, true
}

// customizationLines returns display lines in canonical piece order, with
// the "First "/"Second " prefixes dropped for readability.
func (r *Renderer) customizationLines(it entity.LineItem) []string {
	pieces := r.cat.Decode(it.SKU).Pieces
	if len(pieces) == 0 {
		pieces = r.cat.FallbackPieces()
	}
	var out []string
	for _, piece := range pieces {
		v, ok := it.Customization[piece]
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		display := strings.TrimPrefix(strings.TrimPrefix(piece, "First "), "Second ")
		out = append(out, fmt.Sprintf("%s: %s", display, v))
	}
	return out
}

func (r *Renderer) unitWord(it entity.LineItem) string {
	if d := r.cat.Decode(it.SKU); d.Known && d.Unit != "" {
		return d.Unit
	}
	return "Qty"
}

// wrapText greedily wraps text into lines of at most maxChars characters,
// breaking on spaces only.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var current []string
	length := 0
	for _, w := range words {
		add := len(w)
		if len(current) > 0 {
			add++
		}
		if length+add <= maxChars || len(current) == 0 {
			current = append(current, w)
			length += add
		} else {
			lines = append(lines, strings.Join(current, " "))
			current = []string{w}
			length = len(w)
		}
	}
	lines = append(lines, strings.Join(current, " "))
	return lines
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
