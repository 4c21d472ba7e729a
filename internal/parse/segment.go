package parse

import (
	"regexp"
	"strings"
)

var (
	// reOrderAnchor recognizes a line that opens a new order block.
	reOrderAnchor = regexp.MustCompile(`(?i)\bOrder ID\b\s*[:#]?\s*(\d{3}-\d{7}-\d{7})`)
	// reOrderID validates a fully-assembled order identifier.
	reOrderID = regexp.MustCompile(`^\d{3}-\d{7}-\d{7}$`)
)

// MatchOrderAnchor reports whether a line is an order-identifier anchor
// and returns the captured identifier.
func MatchOrderAnchor(line string) (string, bool) {
	m := reOrderAnchor.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidOrderID reports whether s matches the canonical identifier pattern.
func ValidOrderID(s string) bool {
	return reOrderID.MatchString(s)
}

// OrderBlock is the span of lines belonging to one order, from its
// identifier anchor (inclusive) to just before the next anchor.
type OrderBlock struct {
	OrderID string
	Lines   []string
	Start   int // index of the anchor line in the document sequence
}

// ItemChunk is the span of lines within an order block belonging to one
// product line item, anchored on its SKU line.
type ItemChunk struct {
	SKU   string
	Lines []string
	Start int // index of the anchor line within the order block
}

// SegmentOrders splits a normalized line sequence into order blocks. Every
// order anchor starts a new block and closes the previous one; lines
// before the first anchor cannot belong to an order and are discarded.
func SegmentOrders(lines []string) []OrderBlock {
	var anchors []int
	var ids []string
	for i, ln := range lines {
		if id, ok := MatchOrderAnchor(ln); ok {
			anchors = append(anchors, i)
			ids = append(ids, id)
		}
	}
	blocks := make([]OrderBlock, 0, len(anchors))
	for k, start := range anchors {
		end := len(lines)
		if k+1 < len(anchors) {
			end = anchors[k+1]
		}
		blocks = append(blocks, OrderBlock{
			OrderID: ids[k],
			Lines:   lines[start:end],
			Start:   start,
		})
	}
	return blocks
}

// SegmentItems splits an order block into item chunks. Every SKU anchor
// with a non-empty value starts a new chunk and closes the previous one;
// a chunk runs until the next SKU anchor or the end of the block. Anchors
// with an empty captured value are skipped.
func SegmentItems(block OrderBlock) []ItemChunk {
	var anchors []int
	var skus []string
	for i, ln := range block.Lines {
		v, ok := AnchorSKU.MatchLine(ln)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		anchors = append(anchors, i)
		skus = append(skus, strings.TrimSpace(v))
	}
	chunks := make([]ItemChunk, 0, len(anchors))
	for k, start := range anchors {
		end := len(block.Lines)
		if k+1 < len(anchors) {
			end = anchors[k+1]
		}
		chunks = append(chunks, ItemChunk{
			SKU:   skus[k],
			Lines: block.Lines[start:end],
			Start: start,
		})
	}
	return chunks
}
