package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overlay extends the built-in tables with site-specific entries. Products
// are appended (or replace an existing prefix); thread colors merge over
// the built-in dictionary.
type Overlay struct {
	Products     []Product         `yaml:"products"`
	ThreadColors map[string]string `yaml:"thread_colors"`
}

// LoadOverlay reads an overlay YAML file from disk.
func LoadOverlay(path string) (*Overlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}
	var o Overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}
	for _, p := range o.Products {
		if strings.TrimSpace(p.Prefix) == "" || strings.TrimSpace(p.Label) == "" {
			return nil, fmt.Errorf("overlay product missing prefix or label")
		}
	}
	return &o, nil
}

// Apply merges the overlay into the catalog, returning a new Catalog. The
// receiver is left untouched so already-running pipelines keep their view.
func (c *Catalog) Apply(o *Overlay) *Catalog {
	if o == nil {
		return c
	}
	merged := &Catalog{
		products:       make([]Product, len(c.products)),
		byPrefix:       make(map[string]int, len(c.byPrefix)+len(o.Products)),
		threadColors:   make(map[string]string, len(c.threadColors)+len(o.ThreadColors)),
		fallbackPieces: c.fallbackPieces,
		colorFixups:    c.colorFixups,
	}
	copy(merged.products, c.products)
	for i, p := range merged.products {
		merged.byPrefix[strings.ToLower(p.Prefix)] = i
	}
	for _, p := range o.Products {
		key := strings.ToLower(p.Prefix)
		if p.Unit == "" {
			p.Unit = "Qty"
		}
		if i, ok := merged.byPrefix[key]; ok {
			merged.products[i] = p
			continue
		}
		merged.products = append(merged.products, p)
		merged.byPrefix[key] = len(merged.products) - 1
	}
	for en, es := range c.threadColors {
		merged.threadColors[en] = es
	}
	for en, es := range o.ThreadColors {
		merged.threadColors[titleCaser.String(strings.ToLower(strings.TrimSpace(en)))] = es
	}
	return merged
}
