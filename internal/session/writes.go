package session

import (
	"context"
	"sync"

	"github.com/abhisek/quizladder/internal/quiz"
)

// writeTracker keeps deferred writes ordered and accounted for. Progress
// snapshots are numbered as they are taken; a snapshot older than the last
// one saved is skipped, so writes racing in separate commands cannot roll
// progress back.
type writeTracker struct {
	pending sync.WaitGroup

	mu     sync.Mutex
	issued uint64 // owned by the session goroutine
	saved  uint64 // guarded by mu
}

// track counts w as in flight until it has run once.
func (t *writeTracker) track(w Write) Write {
	t.pending.Add(1)
	var once sync.Once
	return func(ctx context.Context) {
		once.Do(func() {
			defer t.pending.Done()
			w(ctx)
		})
	}
}

func (t *writeTracker) saveProgress(ps ProgressStore, userKey string, p quiz.Progress) Write {
	t.issued++
	gen := t.issued
	return func(ctx context.Context) {
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen <= t.saved {
			return
		}
		if err := ps.Save(ctx, userKey, p); err != nil {
			warnf("failed to save progress for %s: %v", userKey, err)
			return
		}
		t.saved = gen
	}
}

// Drain waits for every write handed out by the session to finish, or for
// ctx to be done. Writes that were never run count as pending.
func (s *Session) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.writes.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
