// Package export renders parsed line items as tabular output: an XLSX
// workbook (line items plus summary totals) and a plain CSV stream.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/towel-orders/internal/catalog"
	"github.com/joseph-ayodele/towel-orders/internal/entity"
	"github.com/joseph-ayodele/towel-orders/internal/report"
)

// Columns is the documented export column order. Collaborators key on
// these header strings; changing them is a breaking change.
var Columns = []string{
	"Order ID",
	"Buyer Name",
	"SKU",
	"Product Type",
	"Color",
	"Font",
	"Thread Color",
	"Thread Color (Raw)",
	"Customization",
	"Quantity",
	"Gift Message",
	"Source Document",
}

// CustomizationSeparator joins flattened customization pairs.
const CustomizationSeparator = " | "

// Service is a tiny façade that turns line-item slices into export bytes.
type Service struct {
	cat    *catalog.Catalog
	logger *slog.Logger
}

func NewService(cat *catalog.Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cat: cat, logger: logger}
}

// FlattenCustomization joins an item's customization values into one
// delimited string, in the product type's canonical piece order.
func (s *Service) FlattenCustomization(it entity.LineItem) string {
	pieces := s.cat.Decode(it.SKU).Pieces
	if len(pieces) == 0 {
		pieces = s.cat.FallbackPieces()
	}
	var parts []string
	for _, piece := range pieces {
		if v, ok := it.Customization[piece]; ok && strings.TrimSpace(v) != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", piece, v))
		}
	}
	return strings.Join(parts, CustomizationSeparator)
}

func (s *Service) row(it entity.LineItem) []any {
	return []any{
		it.OrderID,
		it.BuyerName,
		it.SKU,
		it.ProductType,
		it.Color,
		it.Font,
		it.ThreadColorLocalized,
		it.ThreadColorRaw,
		s.FlattenCustomization(it),
		it.Quantity,
		it.GiftMessage,
		it.SourceDocument,
	}
}

// LineItemsXLSX returns an XLSX workbook with a "Line Items" sheet in the
// documented column order and a "Summary" sheet carrying the totals by
// product type, color and thread color plus the production pivot.
func (s *Service) LineItemsXLSX(items []entity.LineItem) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Line Items"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	write := func(sheetName string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}

	for i, h := range Columns {
		write(sheet, i+1, 1, h)
	}
	for r, it := range items {
		for c, v := range s.row(it) {
			write(sheet, c+1, r+2, v)
		}
	}

	// Widen the columns people actually read
	_ = f.SetColWidth(sheet, "A", "A", 22) // order id
	_ = f.SetColWidth(sheet, "B", "B", 24) // buyer
	_ = f.SetColWidth(sheet, "C", "D", 22) // sku, product type
	_ = f.SetColWidth(sheet, "G", "H", 20) // thread colors
	_ = f.SetColWidth(sheet, "I", "I", 48) // customization
	_ = f.SetColWidth(sheet, "K", "K", 30) // gift message
	_ = f.SetColWidth(sheet, "L", "L", 26) // source

	if err := s.writeSummarySheet(f, items); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeSummarySheet(f *excelize.File, items []entity.LineItem) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 1
	write(1, row, "By Product Type")
	row++
	for _, t := range report.TotalsByProductType(items) {
		write(1, row, t.Key)
		write(2, row, t.Quantity)
		row++
	}

	row++
	write(1, row, "By Towel Color")
	row++
	for _, t := range report.TotalsByColor(items) {
		write(1, row, t.Key)
		write(2, row, t.Quantity)
		row++
	}

	row++
	write(1, row, "By Thread Color")
	row++
	for _, t := range report.TotalsByThreadColor(items) {
		write(1, row, t.Raw)
		write(2, row, t.Localized)
		write(3, row, t.Quantity)
		row++
	}

	row++
	write(1, row, "Production (Sets by Color)")
	row++
	for i, h := range []string{"Color", "3/6-Pcs Sets", "Hand Towel Sets", "Bath Towel Sets", "Bath Sheets (1 Pc)"} {
		write(i+1, row, h)
	}
	row++
	for _, r := range report.ProductionSummary(items) {
		write(1, row, r.Color)
		write(2, row, r.TowelSets)
		write(3, row, r.HandTowelSets)
		write(4, row, r.BathTowelSets)
		write(5, row, r.BathSheets)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 26)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	return nil
}

// LineItemsCSV streams the line-item table to w in the documented column
// order, header row first.
func (s *Service) LineItemsCSV(w io.Writer, items []entity.LineItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, it := range items {
		record := make([]string, len(Columns))
		for i, v := range s.row(it) {
			record[i] = fmt.Sprintf("%v", v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	s.logger.Info("export.csv.ok", "rows", len(items))
	return nil
}
