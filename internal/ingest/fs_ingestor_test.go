package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/towel-orders/internal/common"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestIngestPathSplitsPages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slip.txt", "Order ID: 111-2223334-5556667\nSKU\fPage two line\n")

	ing := NewFSIngestor(nil, nil)
	r, err := ing.IngestPath(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestPath error: %v", err)
	}
	if r.Document.Name != "slip.txt" {
		t.Errorf("document name = %q", r.Document.Name)
	}
	if len(r.Document.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(r.Document.Pages))
	}
	if r.Document.Pages[0].Lines[0] != "Order ID: 111-2223334-5556667" {
		t.Errorf("page 1 line 1 = %q", r.Document.Pages[0].Lines[0])
	}
	if r.HashHex == "" {
		t.Error("missing content hash")
	}
}

func TestIngestPathRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slip.pdf", "not text")

	ing := NewFSIngestor(nil, nil)
	_, err := ing.IngestPath(context.Background(), path)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestIngestPathCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slip.log", "Order ID: 111-2223334-5556667")

	ing := NewFSIngestor(map[string]struct{}{"log": {}}, nil)
	if _, err := ing.IngestPath(context.Background(), path); err != nil {
		t.Errorf("IngestPath(.log) with custom set error: %v", err)
	}
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Order ID: 111-2223334-5556667\n")
	writeFile(t, dir, "b.txt", "Order ID: 222-3334445-6667778\n")
	writeFile(t, dir, "copy-of-a.txt", "Order ID: 111-2223334-5556667\n") // same bytes as a.txt
	writeFile(t, dir, "notes.md", "ignore me")
	writeFile(t, dir, ".hidden.txt", "skip me")

	ing := NewFSIngestor(nil, nil)
	results, stats, err := ing.IngestDirectory(context.Background(), dir, true)
	if err != nil {
		t.Fatalf("IngestDirectory error: %v", err)
	}
	if stats.Matched != 3 || stats.Succeeded != 3 || stats.Deduplicated != 1 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	docs := Documents(results)
	if len(docs) != 2 {
		t.Fatalf("got %d unique documents, want 2", len(docs))
	}
	if docs[0].ID == docs[1].ID {
		t.Error("documents share an ID")
	}
}

func TestIngestDirectoryEmptyRoot(t *testing.T) {
	ing := NewFSIngestor(nil, nil)
	if _, _, err := ing.IngestDirectory(context.Background(), "  ", false); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
