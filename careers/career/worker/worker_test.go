package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanQueue is an in-memory IngestQueue
type chanQueue struct {
	items chan []byte
}

func (q *chanQueue) Name() string { return "test" }

func (q *chanQueue) Enqueue(_ context.Context, job career.IngestJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	q.items <- data
	return nil
}

func (q *chanQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	select {
	case data := <-q.items:
		return data, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *chanQueue) Size(context.Context) (int64, error) { return int64(len(q.items)), nil }

type recordingProcessor struct {
	mu   sync.Mutex
	seen []kernel.IngestJobID
	done chan struct{}
	fail bool
}

func (p *recordingProcessor) Process(_ context.Context, job career.IngestJob) error {
	p.mu.Lock()
	p.seen = append(p.seen, job.ID)
	p.mu.Unlock()
	p.done <- struct{}{}
	if p.fail {
		return errors.New("embedding provider down")
	}
	return nil
}

func TestWorkerDrainsQueue(t *testing.T) {
	queue := &chanQueue{items: make(chan []byte, 10)}
	proc := &recordingProcessor{done: make(chan struct{}, 10), fail: true}

	ctx, cancel := context.WithCancel(context.Background())
	w := NewIngestWorker(proc, queue, 2)
	w.pollTimeout = 10 * time.Millisecond
	w.Start(ctx)

	queue.items <- []byte("not json")
	for _, id := range []kernel.IngestJobID{"a", "b", "c"} {
		require.NoError(t, queue.Enqueue(ctx, career.IngestJob{ID: id}))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-proc.done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not process queued jobs")
		}
	}

	cancel()
	w.Wait()

	assert.ElementsMatch(t, []kernel.IngestJobID{"a", "b", "c"}, proc.seen)
}

func TestWorkerStopsOnCancel(t *testing.T) {
	queue := &chanQueue{items: make(chan []byte)}
	ctx, cancel := context.WithCancel(context.Background())
	w := NewIngestWorker(&recordingProcessor{done: make(chan struct{}, 1)}, queue, 3)
	w.pollTimeout = 10 * time.Millisecond
	w.Start(ctx)

	cancel()
	stopped := make(chan struct{})
	go func() {
		w.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
	}
}
