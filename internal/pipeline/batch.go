package pipeline

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the result of one batch entry. Exactly one of Outcome and
// Error is set. Index is the entry's position in the request slice.
type BatchItem struct {
	Index    int      `json:"index"`
	ResumeID string   `json:"resume_id,omitempty"`
	Outcome  *Outcome `json:"outcome,omitempty"`
	Error    string   `json:"error,omitempty"`
	Err      error    `json:"-"`
}

// EvaluateBatch evaluates every request independently, at most concurrency at a
// time. The result is positionally aligned with reqs; a failing entry records
// its error and never affects its siblings. Cancelling ctx marks entries that
// have not started yet as failed.
func (s *Service) EvaluateBatch(ctx context.Context, reqs []Request, concurrency int) []BatchItem {
	if concurrency < 1 {
		concurrency = 1
	}

	items := make([]BatchItem, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range reqs {
		i := i
		items[i] = BatchItem{Index: i, ResumeID: reqs[i].label()}
		g.Go(func() error {
			s.evaluateItem(gCtx, reqs[i], &items[i])
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	log.Printf("[BATCH] evaluated %d entries (%d failed)", len(items), failed)
	return items
}

func (s *Service) evaluateItem(ctx context.Context, req Request, item *BatchItem) {
	defer func() {
		if r := recover(); r != nil {
			item.Outcome = nil
			item.Err = fmt.Errorf("internal error: %v", r)
			item.Error = item.Err.Error()
			log.Printf("[BATCH] entry %d panicked: %v", item.Index, r)
		}
	}()

	out, err := s.Evaluate(ctx, req)
	if err != nil {
		item.Err = err
		item.Error = err.Error()
		log.Printf("[BATCH] entry %d (%s) failed: %v", item.Index, item.ResumeID, err)
		return
	}
	item.Outcome = out
}
