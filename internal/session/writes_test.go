package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizladder/internal/quiz"
)

func passSet(t *testing.T, s *Session, setID string) Write {
	t.Helper()
	_, start, err := s.Start(setID)
	require.NoError(t, err)
	start(context.Background())
	answerAll(t, s, 5)
	_, w, err := s.Finish(t0.Add(time.Minute))
	require.NoError(t, err)
	return w
}

func TestStaleProgressWriteIsSkipped(t *testing.T) {
	s, ps, _ := testSession(t, quiz.Progress{})

	first := passSet(t, s, "java-1")
	second := passSet(t, s, "java-2")

	// Newer snapshot lands first; the older one must not overwrite it.
	second(context.Background())
	first(context.Background())

	require.Len(t, ps.saved, 1)
	assert.Equal(t, []string{"java-1", "java-2"}, ps.saved[0].CompletedSets)
	assert.Equal(t, 80, ps.saved[0].TotalPoints)
}

func TestProgressWritesInOrder(t *testing.T) {
	s, ps, _ := testSession(t, quiz.Progress{})

	passSet(t, s, "java-1")(context.Background())
	passSet(t, s, "java-2")(context.Background())

	require.Len(t, ps.saved, 2)
	assert.Equal(t, []string{"java-1"}, ps.saved[0].CompletedSets)
	assert.Equal(t, []string{"java-1", "java-2"}, ps.saved[1].CompletedSets)
}

func TestWriteRunsOnce(t *testing.T) {
	s, ps, ev := testSession(t, quiz.Progress{})

	w := passSet(t, s, "java-1")
	w(context.Background())
	w(context.Background())

	assert.Len(t, ps.saved, 1)
	assert.Len(t, ev.events, 2) // start + finish
}

func TestDrainWaitsForWrites(t *testing.T) {
	s, ps, _ := testSession(t, quiz.Progress{})
	w := passSet(t, s, "java-1")

	done := make(chan struct{})
	go func() {
		w(context.Background())
		close(done)
	}()

	require.NoError(t, s.Drain(context.Background()))
	<-done
	assert.Len(t, ps.saved, 1)
}

func TestDrainTimesOutOnUnrunWrite(t *testing.T) {
	s, _, _ := testSession(t, quiz.Progress{})
	_, _, err := s.Start("java-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Drain(ctx), context.DeadlineExceeded)
}

func TestDrainWithNoWrites(t *testing.T) {
	s, _, _ := testSession(t, quiz.Progress{})
	assert.NoError(t, s.Drain(context.Background()))
}
