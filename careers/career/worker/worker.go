package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

// Processor handles one dequeued ingestion chunk
type Processor interface {
	Process(ctx context.Context, job career.IngestJob) error
}

// IngestWorker runs a pool of goroutines draining the ingestion queue
type IngestWorker struct {
	processor   Processor
	queue       career.IngestQueue
	workers     int
	pollTimeout time.Duration
	wg          sync.WaitGroup
}

func NewIngestWorker(processor Processor, queue career.IngestQueue, workers int) *IngestWorker {
	return &IngestWorker{
		processor:   processor,
		queue:       queue,
		workers:     workers,
		pollTimeout: 5 * time.Second,
	}
}

// Start launches the pool. Workers exit when ctx is cancelled.
func (w *IngestWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d ingest workers", w.workers)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processJobs(ctx, id)
		}(i)
	}
}

// Wait blocks until every worker has returned
func (w *IngestWorker) Wait() {
	w.wg.Wait()
}

func (w *IngestWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
		}

		data, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logx.Errorf("Worker %d dequeue error: %v", workerID, err)
			// back off so a dead Redis does not spin the loop
			sleep(ctx, time.Second)
			continue
		}
		if len(data) == 0 {
			continue
		}

		var job career.IngestJob
		if err := json.Unmarshal(data, &job); err != nil {
			logx.Errorf("Worker %d unmarshal error: %v (data: %.200s)", workerID, err, string(data))
			continue
		}

		logx.Infof("Worker %d processing ingest job %s (%d records)", workerID, job.ID, len(job.Records))
		if err := w.processor.Process(ctx, job); err != nil {
			logx.Errorf("Worker %d ingest job %s failed: %v", workerID, job.ID, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
