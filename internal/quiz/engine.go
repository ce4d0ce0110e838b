package quiz

import (
	"context"
	"fmt"
	"maps"
	"time"
)

// ContentStore provides topic bundles.
type ContentStore interface {
	// Get returns the bundle for topicID, or an error matching ErrNotFound
	// when no content exists for it.
	Get(ctx context.Context, topicID string) (*TopicBundle, error)
}

// Engine implements quiz progression: unlock gating, attempts, scoring and
// completion. All operations except LoadTopic are pure transformations.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine creates an engine with the given rules.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

// Config returns the engine's rules.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetClock overrides the clock used to stamp new attempts.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Now returns the current time according to the engine's clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// LoadTopic fetches and validates the bundle for topicID.
func (e *Engine) LoadTopic(ctx context.Context, store ContentStore, topicID string) (*TopicBundle, error) {
	bundle, err := store.Get(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("load topic %q: %w", topicID, err)
	}
	if err := ValidateBundle(bundle); err != nil {
		return nil, fmt.Errorf("load topic %q: %w", topicID, err)
	}
	return bundle, nil
}

// ListSets returns every set of the bundle with its unlock state. Set 0 is
// always unlocked; set i > 0 is unlocked only when set i-1 is completed.
func (e *Engine) ListSets(bundle *TopicBundle, progress Progress) []SetStatus {
	statuses := make([]SetStatus, len(bundle.Sets))
	for i := range bundle.Sets {
		set := &bundle.Sets[i]
		state := Locked
		switch {
		case progress.IsCompleted(set.ID):
			state = Completed
		case i == 0 || progress.IsCompleted(bundle.Sets[i-1].ID):
			state = Unlocked
		}
		statuses[i] = SetStatus{Set: set, Position: i, State: state}
	}
	return statuses
}

// StartAttempt begins a fresh attempt on set.
func (e *Engine) StartAttempt(set *QuestionSet) (Attempt, error) {
	if set == nil || len(set.Questions) == 0 {
		return Attempt{}, fmt.Errorf("start attempt: %w: set has no questions", ErrInvalidSet)
	}
	return Attempt{
		Set:       set,
		Index:     0,
		Answers:   make(map[ID]int),
		StartedAt: e.now(),
		Budget:    e.cfg.TimeBudget,
	}, nil
}

// RecordAnswer stores option as the answer to questionID, replacing any
// earlier answer. The given attempt is left untouched.
func (e *Engine) RecordAnswer(attempt Attempt, questionID ID, option int) (Attempt, error) {
	q, ok := attempt.Set.Question(questionID)
	if !ok {
		return attempt, fmt.Errorf("record answer: %w: %q not in set %q", ErrUnknownQuestion, questionID, attempt.Set.ID)
	}
	if option < 0 || option >= len(q.Options) {
		return attempt, fmt.Errorf("record answer: %w: %d not in [0, %d)", ErrInvalidOption, option, len(q.Options))
	}

	next := attempt
	next.Answers = maps.Clone(attempt.Answers)
	if next.Answers == nil {
		next.Answers = make(map[ID]int)
	}
	next.Answers[questionID] = option
	return next, nil
}

// Advance moves one question forward or back, clamped to the set bounds.
func (e *Engine) Advance(attempt Attempt, dir Direction) Attempt {
	switch dir {
	case Next:
		if attempt.Index < len(attempt.Set.Questions)-1 {
			attempt.Index++
		}
	case Previous:
		if attempt.Index > 0 {
			attempt.Index--
		}
	}
	return attempt
}

// Finish scores the attempt. Unanswered questions count as incorrect.
func (e *Engine) Finish(attempt Attempt) ScoreResult {
	total := len(attempt.Set.Questions)
	correct := 0
	for _, q := range attempt.Set.Questions {
		if opt, ok := attempt.Answers[q.ID]; ok && opt == q.Correct {
			correct++
		}
	}

	var pct float64
	if total > 0 {
		pct = float64(correct) * 100 / float64(total)
	}
	return ScoreResult{
		CorrectCount: correct,
		Total:        total,
		Percentage:   pct,
		Passed:       total > 0 && pct >= e.cfg.PassThreshold,
	}
}

// ApplyCompletion returns progress updated for a finished attempt on setID.
// Failed attempts and sets that were already completed leave it unchanged, so
// points are only ever awarded once per set.
func (e *Engine) ApplyCompletion(progress Progress, setID string, result ScoreResult) Progress {
	if !result.Passed || progress.IsCompleted(setID) {
		return progress
	}
	next := progress.clone()
	next.CompletedSets = append(next.CompletedSets, setID)
	next.TotalPoints += result.CorrectCount * e.cfg.PointsPerQuestion
	return next
}

// PointsFor returns the points a first completion with result would award.
func (e *Engine) PointsFor(result ScoreResult) int {
	if !result.Passed {
		return 0
	}
	return result.CorrectCount * e.cfg.PointsPerQuestion
}
