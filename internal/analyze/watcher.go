package analyze

import (
	"context"
	"log"
	"sync"

	"github.com/jonathan/job-autofill/internal/dom"
)

// Watcher keeps a page's analyses current. Each structural mutation of the
// page triggers a full re-analysis whose result replaces the previous one
// wholesale; stale analyses are never merged with fresh ones.
type Watcher struct {
	doc  dom.Document
	opts Options

	mu     sync.RWMutex
	latest []FormAnalysis

	// OnUpdate, when set, is called with each fresh analysis set.
	OnUpdate func([]FormAnalysis)
}

// NewWatcher analyzes the page once so Latest is usable before Run starts.
func NewWatcher(ctx context.Context, doc dom.Document, opts Options) (*Watcher, error) {
	analyses, err := DetectForms(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	return &Watcher{doc: doc, opts: opts, latest: analyses}, nil
}

// Latest returns the most recent analysis set.
func (w *Watcher) Latest() []FormAnalysis {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

// Run blocks, re-analyzing the page after every observed mutation, until the
// context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := w.doc.WaitMutation(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		analyses, err := DetectForms(ctx, w.doc, w.opts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[Analyzer] Re-analysis after mutation failed: %v", err)
			continue
		}

		w.mu.Lock()
		w.latest = analyses
		w.mu.Unlock()

		if w.OnUpdate != nil {
			w.OnUpdate(analyses)
		}
	}
}
