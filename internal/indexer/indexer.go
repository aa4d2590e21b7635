// Package indexer runs the in-process background queue that extracts and
// indexes document text. Producers enqueue without blocking; when the
// queue is full the job is dropped and logged, and the caller can retry
// via the manual reindex endpoint.
package indexer

import (
	"context"
	"sync"
	"time"

	"github.com/andreslomelig/NovaFolio/internal/shared/metrics"
	"github.com/andreslomelig/NovaFolio/internal/shared/telemetry"
)

const (
	jobTimeout     = 60 * time.Second
	queuePerWorker = 8
)

// Job operations.
const (
	OpIndex       = "index"
	OpRemoveFiles = "remove_files"
)

// Job is one unit of background work.
type Job struct {
	Op       string
	DocID    string
	Locators []string
}

// Reindexer re-extracts and re-indexes one document.
type Reindexer interface {
	Reindex(ctx context.Context, docID string) error
}

// FileRemover deletes one stored blob by locator.
type FileRemover interface {
	Remove(locator string) error
}

// Service is a fixed-size worker pool fed by a bounded channel.
type Service struct {
	reindexer Reindexer
	remover   FileRemover
	workers   int
	queue     chan Job
	quit      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// New constructs a Service with the given worker count.
func New(reindexer Reindexer, remover FileRemover, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		reindexer: reindexer,
		remover:   remover,
		workers:   workers,
		queue:     make(chan Job, workers*queuePerWorker),
		quit:      make(chan struct{}),
	}
}

// Start launches the workers. Safe to call once.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		for i := 0; i < s.workers; i++ {
			s.wg.Add(1)
			go s.worker(ctx)
		}
		telemetry.Info("indexer.started", map[string]any{"workers": s.workers})
	})
}

// Stop drains nothing: workers finish their current job and exit. Queued
// jobs that were not picked up are abandoned.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
		telemetry.Info("indexer.stopped", nil)
	})
}

// EnqueueIndex schedules extraction and indexing for a document. Never
// blocks; drops the job when the queue is full.
func (s *Service) EnqueueIndex(docID string) {
	s.enqueue(Job{Op: OpIndex, DocID: docID})
}

// EnqueueRemoveFiles schedules removal of stored blobs. Never blocks.
func (s *Service) EnqueueRemoveFiles(locators ...string) {
	if len(locators) == 0 {
		return
	}
	s.enqueue(Job{Op: OpRemoveFiles, Locators: locators})
}

func (s *Service) enqueue(job Job) {
	select {
	case s.queue <- job:
		metrics.IncrementJobsInQueue()
	default:
		metrics.IncrementJobsDropped()
		telemetry.Warn("indexer.job_dropped", map[string]any{
			"op":     job.Op,
			"doc_id": job.DocID,
		})
	}
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case job := <-s.queue:
			metrics.DecrementJobsInQueue()
			s.process(ctx, job)
		}
	}
}

func (s *Service) process(ctx context.Context, job Job) {
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	switch job.Op {
	case OpIndex:
		if err := s.reindexer.Reindex(jobCtx, job.DocID); err != nil {
			metrics.CaptureJobOutcome("failed", time.Since(start).Seconds())
			telemetry.Error("indexer.index_failed", map[string]any{
				"doc_id": job.DocID,
				"error":  err.Error(),
			})
			return
		}
		metrics.CaptureJobOutcome("ok", time.Since(start).Seconds())
		telemetry.Info("indexer.index_complete", map[string]any{
			"doc_id":      job.DocID,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	case OpRemoveFiles:
		for _, locator := range job.Locators {
			if err := s.remover.Remove(locator); err != nil {
				telemetry.Warn("indexer.file_remove_failed", map[string]any{
					"locator": locator,
					"error":   err.Error(),
				})
			}
		}
		metrics.CaptureJobOutcome("ok", time.Since(start).Seconds())
	default:
		telemetry.Warn("indexer.unknown_op", map[string]any{"op": job.Op})
	}
}
