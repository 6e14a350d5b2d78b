package narrative

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/llm"
)

// Task is one in-flight verdict stream.
type Task struct {
	ID     string
	Key    string
	Chunks <-chan llm.Chunk

	cancel   context.CancelFunc
	canceled atomic.Bool
}

// Cancel stops the stream. Chunks is closed shortly after.
func (t *Task) Cancel() {
	t.canceled.Store(true)
	t.cancel()
}

// Canceled reports whether the stream was cancelled, either directly or by a newer request
// for the same key, rather than running to completion.
func (t *Task) Canceled() bool { return t.canceled.Load() }

// Streamer allows one verdict stream per key (typically one per calculator view). Starting a
// new stream for a key cancels the previous one; requests are never queued.
type Streamer struct {
	svc *Service

	mu       sync.Mutex
	inflight map[string]*Task
}

func NewStreamer(svc *Service) *Streamer {
	return &Streamer{svc: svc, inflight: make(map[string]*Task)}
}

// Start cancels any stream running under key and starts a new one for p.
func (s *Streamer) Start(ctx context.Context, key string, p calculator.Payload) (*Task, error) {
	ctx, cancel := context.WithCancel(ctx)
	task := &Task{ID: uuid.NewString(), Key: key, cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.inflight[key]; ok {
		prev.Cancel()
	}
	s.inflight[key] = task
	s.mu.Unlock()

	src, err := s.svc.Stream(ctx, p)
	if err != nil {
		s.finish(task)
		return nil, err
	}

	out := make(chan llm.Chunk)
	task.Chunks = out
	go func() {
		defer close(out)
		defer s.finish(task)
		for c := range src {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return task, nil
}

// Cancel stops the stream running under key, if any.
func (s *Streamer) Cancel(key string) {
	s.mu.Lock()
	task, ok := s.inflight[key]
	s.mu.Unlock()
	if ok {
		task.Cancel()
	}
}

// Active returns the ID of the stream running under key.
func (s *Streamer) Active(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.inflight[key]
	if !ok {
		return "", false
	}
	return task.ID, true
}

func (s *Streamer) finish(task *Task) {
	task.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.inflight[task.Key]; ok && cur == task {
		delete(s.inflight, task.Key)
	}
}
