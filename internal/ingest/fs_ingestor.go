package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/towel-orders/constants"
	"github.com/joseph-ayodele/towel-orders/internal/common"
	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> default set
	logger      *slog.Logger

	seen map[string]struct{} // content hashes loaded this batch
}

func NewFSIngestor(allowedExts map[string]struct{}, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{
		AllowedExts: allowedExts,
		logger:      logger,
		seen:        make(map[string]struct{}),
	}
}

// IngestPath loads one packing slip file. Page breaks are form feeds;
// a file without form feeds is a single page.
func (i *FSIngestor) IngestPath(ctx context.Context, path string) (Result, error) {
	var out Result

	if err := ctx.Err(); err != nil {
		return out, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, fmt.Errorf("abs path: %w", err)
	}
	out.SourcePath = abs

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !i.allowedExt(ext) {
		return out, common.WrapError(common.ErrInvalidInput,
			fmt.Sprintf("unsupported or missing extension %q", ext))
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", abs, err)
	}

	sum := sha256.Sum256(raw)
	out.HashHex = hex.EncodeToString(sum[:])
	if _, dup := i.seen[out.HashHex]; dup {
		out.Deduplicated = true
		i.logger.Debug("ingest.dedup", "path", abs, "hash", out.HashHex)
		return out, nil
	}
	i.seen[out.HashHex] = struct{}{}

	out.Document = entity.Document{
		ID:    uuid.New(),
		Name:  filepath.Base(abs),
		Pages: splitPages(string(raw)),
	}
	return out, nil
}

// IngestDirectory walks root, skips hidden entries if requested, and
// calls IngestPath for each matching file. Returns per-file results plus
// aggregate stats; individual file failures do not stop the walk.
func (i *FSIngestor) IngestDirectory(
	ctx context.Context,
	root string,
	skipHidden bool,
) ([]Result, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, common.WrapError(common.ErrInvalidInput, "root path is required")
	}

	var results []Result
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, Result{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !i.allowedExt(ext) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, path)
		if err != nil {
			i.logger.Warn("ingest.file.failed", "path", path, "error", err)
			results = append(results, Result{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	i.logger.Info("ingest.dir.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

func (i *FSIngestor) allowedExt(ext string) bool {
	exts := i.AllowedExts
	if exts == nil {
		exts = constants.AllowedExtensions
	}
	_, ok := exts[constants.NormalizeExt(ext)]
	return ok
}

// splitPages splits raw slip text on form feeds into pages of lines.
// Pages that contain nothing but whitespace are dropped.
func splitPages(raw string) []entity.Page {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var pages []entity.Page
	for _, chunk := range strings.Split(raw, "\f") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		pages = append(pages, entity.Page{Lines: strings.Split(chunk, "\n")})
	}
	return pages
}

// Documents extracts the successfully loaded, non-duplicate documents
// from a batch of results, in walk order.
func Documents(results []Result) []entity.Document {
	var docs []entity.Document
	for _, r := range results {
		if r.Err != "" || r.Deduplicated {
			continue
		}
		docs = append(docs, r.Document)
	}
	return docs
}
