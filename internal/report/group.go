// Package report deduplicates parsed line items and computes the
// end-of-day production summaries.
package report

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

// dedupKey identifies duplicate line items: same order, SKU, font, raw
// thread color and customization. Customization compares as sorted pairs
// so discovery order never affects grouping.
func dedupKey(it entity.LineItem) string {
	pairs := make([]string, 0, len(it.Customization))
	for k, v := range it.Customization {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join([]string{
		it.OrderID, it.SKU, it.Font, it.ThreadColorRaw, strings.Join(pairs, ";"),
	}, "\x1f")
}

// Group merges duplicate line items by summing quantities. The first-seen
// item supplies every other field; merged records are new values and the
// originals are discarded. Grouping an already-grouped list is a no-op.
func Group(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		key := dedupKey(it)
		if i, ok := index[key]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[key] = len(out)
		out = append(out, it)
	}
	return out
}

// Total is one row of a quantity reduction keyed by a single field.
type Total struct {
	Key      string
	Quantity int
}

// ThreadColorTotal is a quantity reduction keyed by the raw/localized
// thread-color pair.
type ThreadColorTotal struct {
	Raw       string
	Localized string
	Quantity  int
}

// TotalsByProductType sums quantities per product type, sorted by type.
func TotalsByProductType(items []entity.LineItem) []Total {
	return totalsBy(items, func(it entity.LineItem) string { return it.ProductType })
}

// TotalsByColor sums quantities per towel color, sorted by color.
func TotalsByColor(items []entity.LineItem) []Total {
	return totalsBy(items, func(it entity.LineItem) string { return it.Color })
}

func totalsBy(items []entity.LineItem, key func(entity.LineItem) string) []Total {
	acc := make(map[string]int)
	for _, it := range items {
		acc[key(it)] += it.Quantity
	}
	out := make([]Total, 0, len(acc))
	for k, q := range acc {
		out = append(out, Total{Key: k, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TotalsByThreadColor sums quantities per (raw, localized) thread-color
// pair, sorted by the raw name.
func TotalsByThreadColor(items []entity.LineItem) []ThreadColorTotal {
	type pair struct{ raw, loc string }
	acc := make(map[pair]int)
	for _, it := range items {
		acc[pair{it.ThreadColorRaw, it.ThreadColorLocalized}] += it.Quantity
	}
	out := make([]ThreadColorTotal, 0, len(acc))
	for p, q := range acc {
		out = append(out, ThreadColorTotal{Raw: p.raw, Localized: p.loc, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Raw != out[j].Raw {
			return out[i].Raw < out[j].Raw
		}
		return out[i].Localized < out[j].Localized
	})
	return out
}
