package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/towel-orders/constants"
	"github.com/joseph-ayodele/towel-orders/internal/catalog"
	"github.com/joseph-ayodele/towel-orders/internal/common"
	"github.com/joseph-ayodele/towel-orders/internal/export"
	"github.com/joseph-ayodele/towel-orders/internal/ingest"
	"github.com/joseph-ayodele/towel-orders/internal/label"
	"github.com/joseph-ayodele/towel-orders/internal/parse"
	"github.com/joseph-ayodele/towel-orders/internal/pipeline"
	"github.com/joseph-ayodele/towel-orders/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir     = flag.String("dir", "", "directory to process packing slips from (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		csvOut  = flag.String("csv", "", "optional CSV output file path")
		labels  = flag.String("labels", "", "optional JSON output path for label layouts")
		group   = flag.Bool("group", true, "merge identical line items before export")
		workers = flag.Int("workers", 0, "documents parsed concurrently (overrides TOWEL_WORKERS)")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "towel_orders.xlsx")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Pipeline.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Load SKU catalog, with optional site-specific overlay
	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	if cfg.Label.CatalogOverlayPath != "" {
		overlay, err := catalog.LoadOverlay(cfg.Label.CatalogOverlayPath)
		if err != nil {
			logger.Error("failed to load catalog overlay",
				"path", cfg.Label.CatalogOverlayPath, "error", err)
			os.Exit(1)
		}
		cat = cat.Apply(overlay)
		logger.Info("catalog overlay applied", "path", cfg.Label.CatalogOverlayPath)
	}

	// Ingest directory
	ingestor := ingest.NewFSIngestor(constants.ParseExtList(cfg.Ingest.AllowedExts), logger)
	logger.Info("starting ingestion", "dir", *dir)
	results, stats, err := ingestor.IngestDirectory(ctx, *dir, cfg.Ingest.SkipHidden)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}
	docs := ingest.Documents(results)

	// Parse documents into line items
	processor := pipeline.NewProcessor(logger,
		parse.NewAssembler(cat, logger), cfg.Pipeline.Workers)
	res, err := processor.Process(ctx, docs)
	switch {
	case errors.Is(err, common.ErrNoInput):
		printError("No packing slip files found under %s\n", *dir)
		os.Exit(1)
	case errors.Is(err, common.ErrNoItems):
		printError("Packing slips found, but no recognizable order items in them\n")
		os.Exit(1)
	case err != nil:
		logger.Error("failed to parse documents", "error", err)
		os.Exit(1)
	}

	items := res.Items
	if *group {
		items = report.Group(items)
	}

	// Export XLSX
	exportService := export.NewService(cat, logger)
	xlsxBytes, err := exportService.LineItemsXLSX(items)
	if err != nil {
		logger.Error("failed to export workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	// Optional CSV export
	if *csvOut != "" {
		f, err := os.Create(*csvOut)
		if err != nil {
			logger.Error("failed to create csv file", "error", err)
			os.Exit(1)
		}
		if err := exportService.LineItemsCSV(f, items); err != nil {
			logger.Error("failed to write csv", "error", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			logger.Error("failed to close csv file", "error", err)
			os.Exit(1)
		}
	}

	// Optional label layouts
	giftLabels := 0
	if *labels != "" {
		renderer := label.NewRenderer(cat, cfg.Label.MaxCustomizationLines)
		var layouts []label.Layout
		for _, it := range items {
			layouts = append(layouts, renderer.Manufacturing(it))
			if gift, ok := renderer.Gift(it); ok {
				layouts = append(layouts, gift)
				giftLabels++
			}
		}
		data, err := json.MarshalIndent(layouts, "", "  ")
		if err != nil {
			logger.Error("failed to encode label layouts", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*labels, data, 0644); err != nil {
			logger.Error("failed to write label layouts", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch processing complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
		"documents_parsed", res.Parsed,
		"documents_skipped", res.Skipped,
		"line_items", len(items),
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files matched: %d (deduplicated: %d, failed: %d)\n",
		stats.Matched, stats.Deduplicated, stats.Failed)
	fmt.Printf("- Documents parsed: %d (skipped: %d)\n", res.Parsed, res.Skipped)
	fmt.Printf("- Line items: %d\n", len(items))
	if *labels != "" {
		fmt.Printf("- Label layouts: %s (gift notes: %d)\n", *labels, giftLabels)
	}
	fmt.Printf("- Output: %s\n", *out)
}
