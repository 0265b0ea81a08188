// Package pipeline runs image-localization jobs on a bounded worker pool.
// Numbering, stripping, and validation are cheap enough to answer inline;
// downloading a document's images is not, so those requests queue here and
// callers poll for the outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tkaine/mdstruct/internal/config"
	"github.com/tkaine/mdstruct/internal/localize"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/render"
)

// Orchestrator manages the localization job queue and workers.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewOrchestrator(cfg config.Config, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines and the job store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Safe to call more than once;
// submits arriving after Stop are rejected rather than sent on the
// closed queue.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// Submit queues a job; it fails fast when the queue is full or the
// pipeline is shutting down.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("pipeline is shutting down")
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// process runs one job: parse, download and rewrite, re-render.
func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID)

	job.SetStatus(StatusParsing, "parsing")
	doc := parse.Build(job.Content())

	assetDir := job.AssetDir
	if assetDir == "" {
		assetDir = o.cfg.AssetDir
	}
	pattern := job.NamePattern
	if pattern == "" {
		pattern = o.cfg.AssetNamePattern
	}

	job.SetStatus(StatusDownloading, "downloading")
	loc := localize.New(localize.Config{
		Dir:           assetDir,
		Pattern:       pattern,
		Timeout:       o.cfg.DownloadTimeout,
		MaxConcurrent: o.cfg.MaxConcurrentDownloads,
	}, log)

	results, err := loc.Run(ctx, doc.Root)
	if err != nil {
		log.Error("localization failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "downloading")
		return
	}
	job.SetImages(results)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	job.SetStatus(StatusRendering, "rendering")
	job.SetResult(render.Markdown(doc.Root, false))

	switch {
	case failed == 0:
		job.SetStatus(StatusCompleted, "done")
	case failed < len(results):
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "downloading")
	}
	log.Info("localization finished", "images", len(results), "failed", failed)
}
