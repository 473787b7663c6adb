package worker

import (
	"context"
	"time"

	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/candidate/candidatesrv"
)

const (
	dequeueTimeout  = 5 * time.Second
	promoteInterval = 30 * time.Second
)

// IndexWorker drains the profile-index queue with a pool of goroutines.
type IndexWorker struct {
	service *candidatesrv.Service
	queue   candidate.IndexQueue
	workers int
}

func NewIndexWorker(service *candidatesrv.Service, queue candidate.IndexQueue, workers int) *IndexWorker {
	if workers < 1 {
		workers = 1
	}
	return &IndexWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

// Start launches the worker pool and the delayed-job promoter. All
// goroutines stop when ctx is cancelled.
func (w *IndexWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d profile index workers", w.workers)

	go w.promoteDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *IndexWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Index worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Index worker %d stopping", workerID)
			return
		default:
			job, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				logx.Errorf("Index worker %d dequeue error: %v", workerID, err)
				continue
			}
			if job == nil {
				// Timeout with an empty queue
				continue
			}

			if err := w.service.ProcessIndexJob(ctx, job); err != nil {
				logx.Errorf("Index worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *IndexWorker) promoteDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(promoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to promote delayed index jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Promoted %d delayed index jobs", count)
			}
		}
	}
}
