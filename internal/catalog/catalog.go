// Package catalog holds the static product and color tables: the SKU-prefix
// map driving product-type decoding, and the bilingual thread-color
// dictionary. Tables are loaded once at startup and passed by reference;
// nothing here mutates after Load.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed catalog.json
var embeddedTables []byte

// Product describes one known SKU prefix: its human label, the ordered
// customization piece names expected for it, and the unit word used when
// quantities are displayed ("Sets" vs "Qty").
type Product struct {
	Prefix string   `json:"prefix" yaml:"prefix"`
	Label  string   `json:"label" yaml:"label"`
	Pieces []string `json:"pieces" yaml:"pieces"`
	Unit   string   `json:"unit" yaml:"unit"`
}

// Catalog is the immutable configuration object shared by the SKU decoder,
// the record assembler and the exporters.
type Catalog struct {
	products       []Product          // ordered; first match wins
	byPrefix       map[string]int     // lowercased prefix -> products index
	threadColors   map[string]string  // English title-case -> Spanish
	fallbackPieces []string           // piece vocabulary for unknown prefixes
	colorFixups    map[string]string  // raw color token -> display form
}

type tables struct {
	Products       []Product         `json:"products"`
	FallbackPieces []string          `json:"fallback_pieces"`
	ThreadColors   map[string]string `json:"thread_colors"`
	ColorFixups    map[string]string `json:"color_fixups"`
}

// Load parses and validates the embedded tables.
func Load() (*Catalog, error) {
	if err := validateTables(embeddedTables); err != nil {
		return nil, fmt.Errorf("catalog tables: %w", err)
	}
	var t tables
	if err := json.Unmarshal(embeddedTables, &t); err != nil {
		return nil, fmt.Errorf("decode catalog tables: %w", err)
	}
	c := &Catalog{
		products:       t.Products,
		byPrefix:       make(map[string]int, len(t.Products)),
		threadColors:   t.ThreadColors,
		fallbackPieces: t.FallbackPieces,
		colorFixups:    t.ColorFixups,
	}
	for i, p := range t.Products {
		c.byPrefix[strings.ToLower(p.Prefix)] = i
	}
	return c, nil
}

// Products returns the ordered product table.
func (c *Catalog) Products() []Product {
	return c.products
}

// FallbackPieces is the broader piece-name vocabulary accepted for items
// whose SKU prefix is not in the product table.
func (c *Catalog) FallbackPieces() []string {
	return c.fallbackPieces
}

// Decoded is the SKU decoder output. Decoding is a pure function of the
// input string and the catalog tables.
type Decoded struct {
	SKU         string
	Prefix      string
	ProductType string
	Color       string
	Pieces      []string
	Unit        string
	Known       bool
}

var (
	skuSep     = regexp.MustCompile(`[-–]`)
	pcsVariant = regexp.MustCompile(`(?i)(\d)pcs`)
	// tokens that leak into the color substring when a chunk is mis-bounded
	colorNoise = map[string]struct{}{
		"item": {}, "tax": {}, "promotion": {}, "total": {},
		"subtotal": {}, "shipping": {},
	}
)

// Decode maps a raw SKU string to its product type, color and expected
// customization pieces. Unknown prefixes pass through as their own label
// with an empty piece list; Decode never fails.
func (c *Catalog) Decode(sku string) Decoded {
	s := strings.TrimSpace(sku)
	d := Decoded{SKU: s}
	if s == "" {
		return d
	}
	parts := skuSep.Split(s, -1)

	// Prefer a two-token prefix (Set-3Pcs), then a single token.
	for _, n := range []int{2, 1} {
		if len(parts) < n {
			continue
		}
		cand := pcsVariant.ReplaceAllString(strings.Join(parts[:n], "-"), "${1}Pcs")
		if i, ok := c.byPrefix[strings.ToLower(cand)]; ok {
			p := c.products[i]
			d.Prefix = p.Prefix
			d.ProductType = p.Label
			d.Pieces = p.Pieces
			d.Unit = p.Unit
			d.Known = true
			d.Color = c.cleanColor(strings.Join(parts[n:], " "))
			return d
		}
	}

	// Pass-through: keep a two-token prefix when the SKU has at least three
	// segments, otherwise the first segment alone is the label.
	n := 1
	if len(parts) >= 3 {
		n = 2
	}
	d.Prefix = strings.Join(parts[:min(n, len(parts))], "-")
	d.ProductType = d.Prefix
	if len(parts) > n {
		d.Color = c.cleanColor(strings.Join(parts[n:], " "))
	}
	return d
}

var titleCaser = cases.Title(language.English)

// cleanColor normalizes the SKU color substring: underscores to spaces,
// known token fixups, trailing order-total/tax noise trimmed, then
// title-cased word by word.
func (c *Catalog) cleanColor(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "_", " ")
	for from, to := range c.colorFixups {
		s = strings.ReplaceAll(s, from, to)
	}
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, noise := colorNoise[strings.ToLower(w)]; noise {
			break
		}
		kept = append(kept, w)
	}
	return titleCaser.String(strings.ToLower(strings.Join(kept, " ")))
}

// Localize returns the bilingual display form of an English thread-color
// name, e.g. "Azul Marino (Navy)". Unknown names pass through unchanged.
func (c *Catalog) Localize(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	key := titleCaser.String(strings.ToLower(trimmed))
	if es, ok := c.threadColors[key]; ok {
		return fmt.Sprintf("%s (%s)", es, key)
	}
	return trimmed
}
