package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Anchor declares one semantic field: the label prefixes that identify it
// (in priority order) and whether the value may sit on a following line.
// One generic matcher processes every anchor, so the accepted vocabulary
// stays data, not code.
type Anchor struct {
	Labels    []string
	Lookahead bool
	Window    int
}

// The field vocabulary. Label order is priority order: the first label
// that matches anywhere wins and later labels are never consulted.
var (
	AnchorOrderID     = Anchor{Labels: []string{"Order ID"}}
	AnchorOrderDate   = Anchor{Labels: []string{"Order Date"}, Lookahead: true, Window: 6}
	AnchorShipping    = Anchor{Labels: []string{"Shipping Service"}, Lookahead: true, Window: 6}
	AnchorBuyer       = Anchor{Labels: []string{"Buyer Name", "Ship To"}, Lookahead: true, Window: 6}
	AnchorSKU         = Anchor{Labels: []string{"SKU"}}
	AnchorFont        = Anchor{Labels: []string{"Choose Your Font", "Embroidery Font"}}
	AnchorThreadColor = Anchor{Labels: []string{"Font Color", "Thread Color"}}
	AnchorGift        = Anchor{Labels: []string{"Gift Message", "Gift Card", "Gift Bag"}}
)

// MatchLine reports whether the line carries this anchor (case-insensitive
// label prefix after leading whitespace) and returns the value after the
// first colon, trimmed. A label hit with no colon yields an empty value.
func (a Anchor) MatchLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, label := range a.Labels {
		if v, ok := matchLabel(trimmed, label); ok {
			return v, true
		}
	}
	return "", false
}

func matchLabel(trimmed, label string) (string, bool) {
	if len(trimmed) < len(label) || !strings.EqualFold(trimmed[:len(label)], label) {
		return "", false
	}
	rest := trimmed[len(label):]
	// the label must end at a word boundary: ":", "-", space or EOL
	if rest != "" && rest[0] != ':' && rest[0] != '-' && rest[0] != ' ' {
		return "", false
	}
	rest = strings.TrimLeft(rest, " ")
	if rest == "" {
		return "", true
	}
	if rest[0] == ':' || rest[0] == '-' {
		rest = rest[1:]
	}
	return strings.TrimSpace(rest), true
}

// Extract scans the window for the anchor, label by label in priority
// order. When Lookahead is set and the anchor line itself carries no
// value, the next non-empty line within Window supplies it.
func (a Anchor) Extract(lines []string) (string, bool) {
	for _, label := range a.Labels {
		for i, ln := range lines {
			v, ok := matchLabel(strings.TrimSpace(ln), label)
			if !ok {
				continue
			}
			if v != "" || !a.Lookahead {
				return v, true
			}
			window := a.Window
			if window <= 0 {
				window = 1
			}
			for j := i + 1; j < len(lines) && j <= i+window; j++ {
				if next := strings.TrimSpace(lines[j]); next != "" {
					return next, true
				}
			}
			return "", true
		}
	}
	return "", false
}

var (
	reQuantityLine = regexp.MustCompile(`(?i)\bQuantity\b[^0-9]*([0-9]+)\b`)
	reLeadingQty   = regexp.MustCompile(`^([0-9]+)\s+[A-Za-z]`)
)

// quantityScanWindow bounds the backward scan for a standalone quantity
// line above an item anchor.
const quantityScanWindow = 15

// ExtractQuantity resolves an item's quantity. Priority: an explicit
// "Quantity N" line inside the chunk, then a backward scan of up to
// quantityScanWindow lines preceding the chunk anchor (first a Quantity
// label, then a bare leading integer), then the default of 1. The result
// is always >= 1.
func ExtractQuantity(chunk []string, preceding []string) int {
	for _, ln := range chunk {
		if q, ok := quantityFromLine(ln); ok {
			return q
		}
	}

	start := len(preceding) - quantityScanWindow
	if start < 0 {
		start = 0
	}
	window := preceding[start:]
	for i := len(window) - 1; i >= 0; i-- {
		if q, ok := quantityFromLine(window[i]); ok {
			return q
		}
	}
	for i := len(window) - 1; i >= 0; i-- {
		if m := reLeadingQty.FindStringSubmatch(window[i]); m != nil {
			if q, err := strconv.Atoi(m[1]); err == nil && q >= 1 {
				return q
			}
		}
	}
	return 1
}

func quantityFromLine(ln string) (int, bool) {
	m := reQuantityLine.FindStringSubmatch(ln)
	if m == nil {
		return 0, false
	}
	q, err := strconv.Atoi(m[1])
	if err != nil || q < 1 {
		return 0, false
	}
	return q, true
}
