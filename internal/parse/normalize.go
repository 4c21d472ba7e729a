// Package parse implements the document-to-record extraction pipeline:
// line normalization, anchor-based field extraction, order/item
// segmentation and line-item assembly.
package parse

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/towel-orders/internal/entity"
)

var (
	reCRLF = regexp.MustCompile(`\r\n?`)
	reWS   = regexp.MustCompile(`\s+`)
)

// CleanLine collapses any run of whitespace (including internal) to a
// single space and trims the ends.
func CleanLine(s string) string {
	return strings.TrimSpace(reWS.ReplaceAllString(s, " "))
}

// NormalizeText splits a raw text blob into cleaned, non-empty lines.
// Line boundaries are preserved; only whitespace inside a line collapses.
func NormalizeText(s string) []string {
	if s == "" {
		return nil
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if cleaned := CleanLine(ln); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// NormalizeDocument flattens a document's pages into one ordered sequence
// of non-empty, whitespace-collapsed lines, preserving page order. Pages
// whose extraction failed arrive empty and contribute nothing.
func NormalizeDocument(doc entity.Document) []string {
	var out []string
	for _, page := range doc.Pages {
		for _, ln := range page.Lines {
			if cleaned := CleanLine(ln); cleaned != "" {
				out = append(out, cleaned)
			}
		}
	}
	return out
}
