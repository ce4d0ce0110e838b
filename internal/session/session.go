package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/store"
)

// ProgressStore loads and saves per-user progress.
type ProgressStore interface {
	Load(ctx context.Context, userKey string) (quiz.Progress, error)
	Save(ctx context.Context, userKey string, p quiz.Progress) error
}

// EventRecorder appends attempt lifecycle events.
type EventRecorder interface {
	AppendAttemptEvent(ctx context.Context, data store.AttemptEventData) error
}

// Write is a deferred persistence step. Callers run it off the UI loop;
// failures are reported as warnings and never retried.
type Write func(ctx context.Context)

// Deps holds the collaborators a Session needs.
type Deps struct {
	Engine   *quiz.Engine
	Progress ProgressStore
	Events   EventRecorder // optional
	UserKey  string
}

// Session is the explicit state of one user: their progress, the topic
// being worked on and at most one active attempt. A Session is owned by a
// single goroutine.
type Session struct {
	deps     Deps
	progress quiz.Progress

	topicID string
	bundle  *quiz.TopicBundle

	attempt   *quiz.Attempt
	attemptID string

	writes writeTracker
}

// Open loads the user's progress and returns a session with no topic selected.
func Open(ctx context.Context, deps Deps) (*Session, error) {
	progress, err := deps.Progress.Load(ctx, deps.UserKey)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return New(deps, progress), nil
}

// New creates a session over already loaded progress.
func New(deps Deps, progress quiz.Progress) *Session {
	return &Session{deps: deps, progress: progress}
}

// Fetch loads and validates the bundle for topicID without touching the
// session, so it is safe to call off the owning goroutine. A missing topic
// yields an error matching quiz.ErrNotFound.
func (s *Session) Fetch(ctx context.Context, content quiz.ContentStore, topicID string) (*quiz.TopicBundle, error) {
	return s.deps.Engine.LoadTopic(ctx, content, topicID)
}

// SetTopic makes bundle the current topic and drops any active attempt.
func (s *Session) SetTopic(topicID string, bundle *quiz.TopicBundle) {
	s.Abandon()
	s.topicID = topicID
	s.bundle = bundle
}

// OpenTopic fetches topicID and makes it current.
func (s *Session) OpenTopic(ctx context.Context, content quiz.ContentStore, topicID string) error {
	bundle, err := s.Fetch(ctx, content, topicID)
	if err != nil {
		return err
	}
	s.SetTopic(topicID, bundle)
	return nil
}

// UserKey returns the key progress is stored under.
func (s *Session) UserKey() string { return s.deps.UserKey }

// TopicID returns the current topic, or "" when none is selected.
func (s *Session) TopicID() string { return s.topicID }

// Bundle returns the current topic content, or nil.
func (s *Session) Bundle() *quiz.TopicBundle { return s.bundle }

// Progress returns the in-memory progress, which is authoritative for the
// lifetime of the session.
func (s *Session) Progress() quiz.Progress { return s.progress }

// Config returns the engine rules in effect.
func (s *Session) Config() quiz.Config { return s.deps.Engine.Config() }

// Sets returns the current topic's sets with their unlock states.
func (s *Session) Sets() []quiz.SetStatus {
	if s.bundle == nil {
		return nil
	}
	return s.deps.Engine.ListSets(s.bundle, s.progress)
}

// Attempt returns the active attempt, if any.
func (s *Session) Attempt() (quiz.Attempt, bool) {
	if s.attempt == nil {
		return quiz.Attempt{}, false
	}
	return *s.attempt, true
}

// Start begins an attempt on setID. Locked sets are refused with
// quiz.ErrSetLocked. Any attempt already in progress is dropped.
func (s *Session) Start(setID string) (quiz.Attempt, Write, error) {
	if s.bundle == nil {
		return quiz.Attempt{}, nil, ErrNoTopic
	}
	set, pos, ok := s.bundle.FindSet(setID)
	if !ok {
		return quiz.Attempt{}, nil, fmt.Errorf("%w: no set %q in topic %q", quiz.ErrInvalidSet, setID, s.topicID)
	}
	if status := s.Sets()[pos]; !status.State.Selectable() {
		return quiz.Attempt{}, nil, fmt.Errorf("%w: %q", quiz.ErrSetLocked, setID)
	}

	attempt, err := s.deps.Engine.StartAttempt(set)
	if err != nil {
		return quiz.Attempt{}, nil, err
	}

	s.attempt = &attempt
	s.attemptID = uuid.New().String()

	ev := s.event(store.ActionStart)
	ev.Total = len(set.Questions)
	return attempt, s.writes.track(s.recordEvent(ev)), nil
}

// Select records option as the answer to the current question.
func (s *Session) Select(option int) (quiz.Attempt, error) {
	if s.attempt == nil {
		return quiz.Attempt{}, ErrNoAttempt
	}
	return s.RecordAnswer(s.attempt.Current().ID, option)
}

// RecordAnswer records option for questionID in the active attempt.
func (s *Session) RecordAnswer(questionID quiz.ID, option int) (quiz.Attempt, error) {
	if s.attempt == nil {
		return quiz.Attempt{}, ErrNoAttempt
	}
	next, err := s.deps.Engine.RecordAnswer(*s.attempt, questionID, option)
	if err != nil {
		return *s.attempt, err
	}
	s.attempt = &next
	return next, nil
}

// Navigate moves the active attempt to the next or previous question.
func (s *Session) Navigate(dir quiz.Direction) (quiz.Attempt, error) {
	if s.attempt == nil {
		return quiz.Attempt{}, ErrNoAttempt
	}
	next := s.deps.Engine.Advance(*s.attempt, dir)
	s.attempt = &next
	return next, nil
}

// Tick checks the countdown. When the active attempt's budget is exhausted
// at now, it is finished with the answers recorded so far and expired is true.
func (s *Session) Tick(now time.Time) (out Outcome, w Write, expired bool) {
	if s.attempt == nil || !s.attempt.Expired(now) {
		return Outcome{}, nil, false
	}
	out, w = s.finish(now, true)
	return out, w, true
}

// Finish scores the active attempt, applies completion to the progress and
// returns the outcome. The returned Write persists progress and the event.
func (s *Session) Finish(now time.Time) (Outcome, Write, error) {
	if s.attempt == nil {
		return Outcome{}, nil, ErrNoAttempt
	}
	out, w := s.finish(now, false)
	return out, w, nil
}

func (s *Session) finish(now time.Time, expired bool) (Outcome, Write) {
	attempt := *s.attempt
	engine := s.deps.Engine

	result := engine.Finish(attempt)
	before := s.progress
	after := engine.ApplyCompletion(before, attempt.Set.ID, result)
	newly := !before.IsCompleted(attempt.Set.ID) && after.IsCompleted(attempt.Set.ID)

	elapsed := now.Sub(attempt.StartedAt)
	if elapsed > attempt.Budget {
		elapsed = attempt.Budget
	}
	if elapsed < 0 {
		elapsed = 0
	}

	out := Outcome{
		SetID:          attempt.Set.ID,
		SetTitle:       attempt.Set.Title,
		Result:         result,
		PointsAwarded:  after.TotalPoints - before.TotalPoints,
		NewlyCompleted: newly,
		Expired:        expired,
		Elapsed:        elapsed,
		Threshold:      engine.Config().PassThreshold,
		Progress:       after,
	}
	if _, pos, ok := s.bundle.FindSet(attempt.Set.ID); ok && pos+1 < len(s.bundle.Sets) {
		out.NextSet = &s.bundle.Sets[pos+1]
	}

	action := store.ActionFinish
	if expired {
		action = store.ActionExpire
	}
	ev := s.event(action)
	ev.CorrectCount = result.CorrectCount
	ev.Total = result.Total
	ev.Percentage = result.Percentage
	ev.Passed = result.Passed
	ev.PointsAwarded = out.PointsAwarded
	ev.DurationMs = elapsed.Milliseconds()

	s.progress = after
	s.attempt = nil
	s.attemptID = ""

	writes := []Write{s.recordEvent(ev)}
	if newly {
		writes = append(writes, s.saveProgress(after))
	}
	return out, s.writes.track(sequence(writes...))
}

// Abandon drops the active attempt without scoring it.
func (s *Session) Abandon() {
	s.attempt = nil
	s.attemptID = ""
}

func (s *Session) event(action string) store.AttemptEventData {
	setID := ""
	if s.attempt != nil {
		setID = s.attempt.Set.ID
	}
	return store.AttemptEventData{
		AttemptID: s.attemptID,
		UserKey:   s.deps.UserKey,
		Topic:     s.topicID,
		SetID:     setID,
		Action:    action,
	}
}

func (s *Session) recordEvent(ev store.AttemptEventData) Write {
	events := s.deps.Events
	return func(ctx context.Context) {
		if events == nil {
			return
		}
		if err := events.AppendAttemptEvent(ctx, ev); err != nil {
			warnf("failed to record %s event for set %s: %v", ev.Action, ev.SetID, err)
		}
	}
}

func (s *Session) saveProgress(p quiz.Progress) Write {
	return s.writes.saveProgress(s.deps.Progress, s.deps.UserKey, p)
}

func sequence(writes ...Write) Write {
	return func(ctx context.Context) {
		for _, w := range writes {
			if w != nil {
				w(ctx)
			}
		}
	}
}
