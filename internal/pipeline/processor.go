// Package pipeline coordinates parsing a batch of packing slip
// documents into line items, optionally across a bounded worker pool.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/towel-orders/internal/common"
	"github.com/joseph-ayodele/towel-orders/internal/entity"
	"github.com/joseph-ayodele/towel-orders/internal/parse"
)

// Result aggregates one batch run. Items are in document order; within
// a document, in order of appearance.
type Result struct {
	BatchID uuid.UUID
	Items   []entity.LineItem
	Parsed  int // documents that yielded at least one item
	Skipped int // documents that yielded none
}

// Processor fans documents out to assemblers.
type Processor struct {
	logger    *slog.Logger
	assembler *parse.Assembler
	workers   int
}

// NewProcessor returns a Processor running up to workers documents
// concurrently (<=0 selects 1).
func NewProcessor(logger *slog.Logger, assembler *parse.Assembler, workers int) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Processor{logger: logger, assembler: assembler, workers: workers}
}

// Process parses every document in the batch. Input order is preserved
// in the output regardless of worker count. An empty batch is
// ErrNoInput; a batch that parses to zero items is ErrNoItems.
func (p *Processor) Process(ctx context.Context, docs []entity.Document) (Result, error) {
	res := Result{BatchID: uuid.New()}
	if len(docs) == 0 {
		return res, common.ErrNoInput
	}

	perDoc := make([][]entity.LineItem, len(docs))
	if p.workers == 1 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			perDoc[i] = p.assembler.ParseDocument(doc)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, p.workers)
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				break
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, doc entity.Document) {
				defer wg.Done()
				defer func() { <-sem }()
				perDoc[i] = p.assembler.ParseDocument(doc)
			}(i, doc)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	for i, items := range perDoc {
		if len(items) == 0 {
			p.logger.Warn("pipeline.doc.empty", "document", docs[i].Name)
			res.Skipped++
			continue
		}
		res.Parsed++
		res.Items = append(res.Items, items...)
	}

	if len(res.Items) == 0 {
		return res, common.ErrNoItems
	}
	p.logger.Info("pipeline.batch.ok",
		"batch_id", res.BatchID,
		"documents", len(docs),
		"parsed", res.Parsed,
		"skipped", res.Skipped,
		"items", len(res.Items),
	)
	return res, nil
}
