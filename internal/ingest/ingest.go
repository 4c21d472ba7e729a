// Package ingest loads packing slip documents from the local filesystem
// into memory for the parse pipeline. Duplicate file contents within a
// batch are detected by hash and loaded once.
package ingest

import (
	"context"

	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

// Result is the per-file ingest outcome. Err is set (and Document left
// zero) when the file could not be read.
type Result struct {
	SourcePath   string
	Document     entity.Document
	Deduplicated bool
	HashHex      string
	Err          string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor is the behavior the pipeline depends on.
type Ingestor interface {
	// IngestPath loads a single file.
	IngestPath(ctx context.Context, path string) (Result, error)
	// IngestDirectory loads all matching files under root.
	IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]Result, DirStats, error)
}
