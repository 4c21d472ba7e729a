package label

import (
	"reflect"
	"strings"
	"testing"

	"github.com/joseph-ayodele/towel-orders/internal/catalog"
	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error: %v", err)
	}
	return NewRenderer(cat, 6)
}

func fieldByName(t *testing.T, l Layout, name string) TextField {
	t.Helper()
	for _, f := range l.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("layout has no field %q; have %v", name, fieldNames(l))
	return TextField{}
}

func fieldNames(l Layout) []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

func sampleItem() entity.LineItem {
	return entity.LineItem{
		OrderID:              "123-4567890-1234567",
		BuyerName:            "Jane Doe",
		SKU:                  "Set-3Pcs-White",
		ProductType:          "3-Piece Towel Set",
		Color:                "White",
		Font:                 "Script",
		ThreadColorRaw:       "Navy",
		ThreadColorLocalized: "Azul Marino (Navy)",
		Quantity:             2,
		Customization: map[string]string{
			"Hand Towel": "Jojo",
			"Washcloth":  "JD",
			"Bath Towel": "Joanna",
		},
		SourceDocument: "slip-001.txt",
	}
}

func TestManufacturingGeometry(t *testing.T) {
	r := newRenderer(t)
	l := r.Manufacturing(sampleItem())

	if l.Orientation != Landscape {
		t.Errorf("orientation = %q, want landscape", l.Orientation)
	}
	if l.Width != 6*inch || l.Height != 4*inch {
		t.Errorf("canvas = %gx%g, want %gx%g", l.Width, l.Height, 6*inch, 4*inch)
	}
	for _, f := range l.Fields {
		if f.X < 0 || f.X > l.Width || f.Y < 0 || f.Y > l.Height {
			t.Errorf("field %q placed off-canvas at (%g, %g)", f.Name, f.X, f.Y)
		}
	}
}

func TestManufacturingFields(t *testing.T) {
	r := newRenderer(t)
	it := sampleItem()
	l := r.Manufacturing(it)

	buyer := fieldByName(t, l, "buyer")
	if buyer.Text != "Jane Doe" || buyer.Style.Size != fsHeadline || buyer.Style.Font != "Helvetica-Bold" {
		t.Errorf("buyer headline = %+v", buyer)
	}
	if got := fieldByName(t, l, "product").Text; got != "Product: 3-Piece Towel Set – White" {
		t.Errorf("product line = %q", got)
	}
	if got := fieldByName(t, l, "thread_color").Text; got != "Thread Color: Azul Marino (Navy)" {
		t.Errorf("thread color line = %q", got)
	}
	if got := fieldByName(t, l, "quantity").Text; got != "Quantity: 2 Sets" {
		t.Errorf("quantity line = %q", got)
	}
	src := fieldByName(t, l, "source")
	if src.Align != AlignRight || src.Style.Color != "grey" {
		t.Errorf("source footer = %+v", src)
	}
}

func TestManufacturingCustomizationCanonicalOrder(t *testing.T) {
	r := newRenderer(t)
	l := r.Manufacturing(sampleItem())

	var lines []string
	for _, f := range l.Fields {
		if strings.HasPrefix(f.Name, "customization_") {
			lines = append(lines, f.Text)
		}
	}
	want := []string{
		"• Washcloth: JD",
		"• Hand Towel: Jojo",
		"• Bath Towel: Joanna",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("customization lines = %v, want %v", lines, want)
	}
}

func TestManufacturingCapsCustomizationLines(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error: %v", err)
	}
	r := NewRenderer(cat, 2)

	it := sampleItem()
	it.SKU = "Set-6Pcs-White"
	it.Customization = map[string]string{
		"First Washcloth":   "A",
		"Second Washcloth":  "B",
		"First Hand Towel":  "C",
		"Second Hand Towel": "D",
		"First Bath Towel":  "E",
		"Second Bath Towel": "F",
	}
	l := r.Manufacturing(it)

	count := 0
	for _, f := range l.Fields {
		if strings.HasPrefix(f.Name, "customization_") {
			count++
			// ordinal prefixes are dropped on the label
			if strings.Contains(f.Text, "First") || strings.Contains(f.Text, "Second") {
				t.Errorf("label line keeps ordinal prefix: %q", f.Text)
			}
		}
	}
	if count != 2 {
		t.Errorf("got %d customization lines, want cap of 2", count)
	}
}

func TestManufacturingGiftIndicator(t *testing.T) {
	r := newRenderer(t)

	it := sampleItem()
	l := r.Manufacturing(it)
	for _, f := range l.Fields {
		if f.Name == "gift_note" {
			t.Fatal("gift indicator present on item with no gift message")
		}
	}

	it.GiftMessage = "Happy Birthday"
	l = r.Manufacturing(it)
	if got := fieldByName(t, l, "gift_note").Text; got != "Gift Note: YES" {
		t.Errorf("gift indicator = %q", got)
	}
}

func TestGiftLabel(t *testing.T) {
	r := newRenderer(t)

	it := sampleItem()
	if _, ok := r.Gift(it); ok {
		t.Fatal("Gift returned a layout for an item without a gift message")
	}

	it.GiftMessage = "Happy Birthday dear Anna, with much love from all of us"
	l, ok := r.Gift(it)
	if !ok {
		t.Fatal("Gift returned ok=false for an item with a message")
	}
	if l.Orientation != Portrait || l.Width != 4*inch || l.Height != 6*inch {
		t.Errorf("gift canvas = %+v", l)
	}

	var msgLines []string
	for _, f := range l.Fields {
		if strings.HasPrefix(f.Name, "message_") {
			if f.Align != AlignCenter || f.Style.Font != "Helvetica-Oblique" {
				t.Errorf("message field style = %+v", f)
			}
			if f.X != l.Width/2 {
				t.Errorf("message field not centered: x=%g", f.X)
			}
			msgLines = append(msgLines, f.Text)
		}
	}
	if got := strings.Join(msgLines, " "); got != it.GiftMessage {
		t.Errorf("wrapped message rejoins to %q, want original", got)
	}
	for _, ln := range msgLines {
		if len(ln) > 28 {
			t.Errorf("message line %q exceeds 28 chars", ln)
		}
	}

	footer := fieldByName(t, l, "footer")
	if footer.Text != "Jane Doe — 123-4567890-1234567" {
		t.Errorf("footer = %q", footer.Text)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"splits", "one two three four", 9, []string{"one two", "three", "four"}},
		{"long word kept whole", "extraordinarily ok", 5, []string{"extraordinarily", "ok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.in, tt.max); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %v, want %v", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
