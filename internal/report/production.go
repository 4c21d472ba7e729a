package report

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

// ProductionRow is the sets-per-color view the embroidery floor works
// from: how many sets of each kind to pull in a given towel color.
type ProductionRow struct {
	Color         string
	TowelSets     int // 3-piece sets, with 6-piece sets counted double
	HandTowelSets int
	BathTowelSets int
	BathSheets    int
}

// ProductionSummary pivots line items into per-color set counts. Items
// whose SKU matches none of the known set families are left out.
func ProductionSummary(items []entity.LineItem) []ProductionRow {
	acc := make(map[string]*ProductionRow)
	row := func(color string) *ProductionRow {
		r, ok := acc[color]
		if !ok {
			r = &ProductionRow{Color: color}
			acc[color] = r
		}
		return r
	}

	for _, it := range items {
		sku := strings.ToLower(it.SKU)
		switch {
		case strings.Contains(sku, "set-6pcs"):
			row(it.Color).TowelSets += it.Quantity * 2
		case strings.Contains(sku, "set-3pcs"):
			row(it.Color).TowelSets += it.Quantity
		case strings.Contains(sku, "ht-2pcs"):
			row(it.Color).HandTowelSets += it.Quantity
		case strings.Contains(sku, "bt-2pcs"):
			row(it.Color).BathTowelSets += it.Quantity
		case strings.Contains(sku, "bs-1pcs"):
			row(it.Color).BathSheets += it.Quantity
		}
	}

	out := make([]ProductionRow, 0, len(acc))
	for _, r := range acc {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Color < out[j].Color })
	return out
}
