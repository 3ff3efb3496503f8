// Package app wires the engine into application-level services.
package app

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"tablelens/adapters/stats/engine"
	"tablelens/domain/analysis"
)

// BatchItem pairs one request with its outcome. Each item carries exactly
// one of Result or Err.
type BatchItem struct {
	Request analysis.Request `json:"request"`
	Result  *analysis.Result `json:"result,omitempty"`
	Err     string           `json:"error,omitempty"`
}

// BatchRunner executes independent analysis requests concurrently while
// keeping each engine call single-threaded. The weighted semaphore caps
// how many analyses run at once; cancellation is caller-side only, so a
// cancelled context stops queued items but lets in-flight computations
// finish.
type BatchRunner struct {
	engine *engine.Engine
	sem    *semaphore.Weighted
}

// NewBatchRunner creates a runner with the given concurrency cap
func NewBatchRunner(e *engine.Engine, maxConcurrent int64) *BatchRunner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BatchRunner{
		engine: e,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Run executes all requests and returns items in request order
func (r *BatchRunner) Run(ctx context.Context, requests []analysis.Request) []BatchItem {
	items := make([]BatchItem, len(requests))
	var wg sync.WaitGroup

	for i, req := range requests {
		items[i].Request = req

		if err := r.sem.Acquire(ctx, 1); err != nil {
			items[i].Err = err.Error()
			continue
		}

		wg.Add(1)
		go func(idx int, req analysis.Request) {
			defer wg.Done()
			defer r.sem.Release(1)

			result, err := r.engine.Run(ctx, req)
			if err != nil {
				log.Printf("[BatchRunner] %s on %s failed: %v", req.Type, req.Table, err)
				items[idx].Err = err.Error()
				return
			}
			items[idx].Result = result
		}(i, req)
	}

	wg.Wait()
	return items
}
