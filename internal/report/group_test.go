package report

import (
	"reflect"
	"testing"

	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

func item(orderID, sku string, qty int, custom map[string]string) entity.LineItem {
	return entity.LineItem{
		OrderID:       orderID,
		SKU:           sku,
		ProductType:   "3-Piece Towel Set",
		Color:         "White",
		Quantity:      qty,
		Customization: custom,
	}
}

func sumQuantities(items []entity.LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func TestGroupMergesDuplicates(t *testing.T) {
	items := []entity.LineItem{
		item("111-2223334-5556667", "Set-3Pcs-White", 1, map[string]string{"Washcloth": "JD"}),
		item("111-2223334-5556667", "Set-3Pcs-White", 2, map[string]string{"Washcloth": "JD"}),
		item("111-2223334-5556667", "Set-3Pcs-White", 1, map[string]string{"Washcloth": "XX"}),
	}
	grouped := Group(items)
	if len(grouped) != 2 {
		t.Fatalf("got %d groups, want 2", len(grouped))
	}
	if grouped[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", grouped[0].Quantity)
	}
	if sumQuantities(grouped) != sumQuantities(items) {
		t.Error("grouping did not conserve total quantity")
	}
}

func TestGroupCustomizationOrderIrrelevant(t *testing.T) {
	a := item("111-2223334-5556667", "Set-3Pcs-White", 1,
		map[string]string{"Washcloth": "A", "Hand Towel": "B"})
	b := item("111-2223334-5556667", "Set-3Pcs-White", 1,
		map[string]string{"Hand Towel": "B", "Washcloth": "A"})
	grouped := Group([]entity.LineItem{a, b})
	if len(grouped) != 1 || grouped[0].Quantity != 2 {
		t.Errorf("grouped = %+v, want one merged item with quantity 2", grouped)
	}
}

func TestGroupDistinguishesThreadColorAndFont(t *testing.T) {
	a := item("111-2223334-5556667", "Set-3Pcs-White", 1, nil)
	b := a
	b.ThreadColorRaw = "Navy"
	c := a
	c.Font = "Script"
	grouped := Group([]entity.LineItem{a, b, c})
	if len(grouped) != 3 {
		t.Errorf("got %d groups, want 3", len(grouped))
	}
}

func TestGroupIsIdempotent(t *testing.T) {
	items := []entity.LineItem{
		item("111-2223334-5556667", "Set-3Pcs-White", 2, map[string]string{"Washcloth": "JD"}),
		item("111-2223334-5556667", "Set-3Pcs-White", 3, map[string]string{"Washcloth": "JD"}),
		item("222-3334445-6667778", "BT-2Pcs-Navy", 1, nil),
	}
	once := Group(items)
	twice := Group(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("grouping is not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}
	if sumQuantities(items) != sumQuantities(twice) {
		t.Error("quantity not conserved across repeated grouping")
	}
}

func TestTotals(t *testing.T) {
	items := []entity.LineItem{
		{ProductType: "3-Piece Towel Set", Color: "White", ThreadColorRaw: "Navy", ThreadColorLocalized: "Azul Marino (Navy)", Quantity: 2},
		{ProductType: "3-Piece Towel Set", Color: "Grey", ThreadColorRaw: "Navy", ThreadColorLocalized: "Azul Marino (Navy)", Quantity: 1},
		{ProductType: "Bath Towels (2)", Color: "White", ThreadColorRaw: "Gold", ThreadColorLocalized: "Dorado (Gold)", Quantity: 4},
	}

	byType := TotalsByProductType(items)
	wantTypes := []Total{
		{Key: "3-Piece Towel Set", Quantity: 3},
		{Key: "Bath Towels (2)", Quantity: 4},
	}
	if !reflect.DeepEqual(byType, wantTypes) {
		t.Errorf("TotalsByProductType = %+v, want %+v", byType, wantTypes)
	}

	byColor := TotalsByColor(items)
	wantColors := []Total{
		{Key: "Grey", Quantity: 1},
		{Key: "White", Quantity: 6},
	}
	if !reflect.DeepEqual(byColor, wantColors) {
		t.Errorf("TotalsByColor = %+v, want %+v", byColor, wantColors)
	}

	byThread := TotalsByThreadColor(items)
	wantThread := []ThreadColorTotal{
		{Raw: "Gold", Localized: "Dorado (Gold)", Quantity: 4},
		{Raw: "Navy", Localized: "Azul Marino (Navy)", Quantity: 3},
	}
	if !reflect.DeepEqual(byThread, wantThread) {
		t.Errorf("TotalsByThreadColor = %+v, want %+v", byThread, wantThread)
	}
}

func TestProductionSummary(t *testing.T) {
	items := []entity.LineItem{
		{SKU: "Set-6Pcs-White", Color: "White", Quantity: 1},  // counts double
		{SKU: "Set-3Pcs-White", Color: "White", Quantity: 2},
		{SKU: "HT-2PCS-White", Color: "White", Quantity: 1},
		{SKU: "BT-2Pcs-Navy", Color: "Navy", Quantity: 3},
		{SKU: "BS-1Pcs-Ivory", Color: "Ivory", Quantity: 1},
		{SKU: "XX-Unknown-Navy", Color: "Navy", Quantity: 9}, // not a set family
	}
	got := ProductionSummary(items)
	want := []ProductionRow{
		{Color: "Ivory", BathSheets: 1},
		{Color: "Navy", BathTowelSets: 3},
		{Color: "White", TowelSets: 4, HandTowelSets: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProductionSummary = %+v, want %+v", got, want)
	}
}
