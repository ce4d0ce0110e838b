package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizladder/internal/quiz"
)

var (
	// ErrNoAttempt is returned by attempt operations when nothing is in progress.
	ErrNoAttempt = errors.New("no attempt in progress")

	// ErrNoTopic is returned by Start before a topic is selected.
	ErrNoTopic = errors.New("no topic selected")
)

// Outcome is what the user sees after an attempt ends.
type Outcome struct {
	SetID    string
	SetTitle string
	Result   quiz.ScoreResult

	// PointsAwarded is zero unless this attempt completed the set for the first time.
	PointsAwarded  int
	NewlyCompleted bool

	// Expired is true when the countdown ended the attempt.
	Expired bool
	Elapsed time.Duration

	Threshold float64
	Progress  quiz.Progress

	// NextSet is the set following this one in the chain, nil for the last set.
	NextSet *quiz.QuestionSet
}

// Headline is the result title.
func (o Outcome) Headline() string {
	if o.Result.Passed {
		return "🎉 Set Completed!"
	}
	return "Try again"
}

// Score renders "You scored X / Y".
func (o Outcome) Score() string {
	return fmt.Sprintf("You scored %d / %d", o.Result.CorrectCount, o.Result.Total)
}

// Message explains what the result means for progression.
func (o Outcome) Message() string {
	switch {
	case !o.Result.Passed:
		return fmt.Sprintf("You need %s%% to unlock the next set.", formatPercent(o.Threshold))
	case o.NextSet == nil:
		return "You have completed every set in this topic!"
	default:
		return "You have unlocked the next set!"
	}
}

func formatPercent(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
