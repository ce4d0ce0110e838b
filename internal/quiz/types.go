package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"
)

// ID identifies a question or set. Content files use either JSON strings or
// integers for question IDs; both decode to the same string form.
type ID string

// UnmarshalJSON accepts a JSON string or an integral number. Numbers are
// normalised, so 1, 1.0 and 1e0 are the same ID.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return fmt.Errorf("numeric id %s is not an integer", n)
	}
	*id = ID(strconv.FormatInt(int64(f), 10))
	return nil
}

// Question is a single multiple-choice question.
type Question struct {
	ID      ID       `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// QuestionSet is an ordered group of questions gated behind the previous set.
type QuestionSet struct {
	ID        string     `json:"setId"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question returns the question with the given ID.
func (s *QuestionSet) Question(id ID) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// TopicBundle is the read-only content for one topic. Sets are ordered; the
// order defines the unlock chain.
type TopicBundle struct {
	Topic string        `json:"topic"`
	Sets  []QuestionSet `json:"sets"`
}

// FindSet returns the set with the given ID and its position in the chain.
func (b *TopicBundle) FindSet(setID string) (*QuestionSet, int, bool) {
	for i := range b.Sets {
		if b.Sets[i].ID == setID {
			return &b.Sets[i], i, true
		}
	}
	return nil, -1, false
}

// Progress is the persisted per-user completion state.
type Progress struct {
	TotalPoints int `json:"totalPoints"`

	// CompletedSets lists completed set IDs in completion order.
	CompletedSets []string `json:"completedSets"`
}

// IsCompleted reports whether setID has been completed.
func (p Progress) IsCompleted(setID string) bool {
	return slices.Contains(p.CompletedSets, setID)
}

// clone returns a deep copy so callers never share the backing slice.
func (p Progress) clone() Progress {
	return Progress{
		TotalPoints:   p.TotalPoints,
		CompletedSets: slices.Clone(p.CompletedSets),
	}
}

// UnlockState is the availability of a set for a given progress.
type UnlockState int

const (
	Locked UnlockState = iota
	Unlocked
	Completed
)

func (s UnlockState) String() string {
	switch s {
	case Unlocked:
		return "unlocked"
	case Completed:
		return "completed"
	default:
		return "locked"
	}
}

// Icon returns the status icon shown on set cards.
func (s UnlockState) Icon() string {
	switch s {
	case Unlocked:
		return "🔓"
	case Completed:
		return "✅"
	default:
		return "🔒"
	}
}

// Selectable reports whether a set in this state can be started.
func (s UnlockState) Selectable() bool {
	return s != Locked
}

// SetStatus pairs a set with its unlock state.
type SetStatus struct {
	Set      *QuestionSet
	Position int
	State    UnlockState
}

// Direction is a navigation direction within an attempt.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Attempt is the transient state of one quiz-taking run over a single set.
type Attempt struct {
	Set       *QuestionSet
	Index     int
	Answers   map[ID]int
	StartedAt time.Time
	Budget    time.Duration
}

// Current returns the question at the attempt's current index.
func (a Attempt) Current() Question {
	return a.Set.Questions[a.Index]
}

// Answer returns the recorded option for a question, if any.
func (a Attempt) Answer(id ID) (int, bool) {
	opt, ok := a.Answers[id]
	return opt, ok
}

// AnsweredCount returns the number of questions with a recorded answer.
func (a Attempt) AnsweredCount() int {
	return len(a.Answers)
}

// IsFirst reports whether the attempt is on its first question.
func (a Attempt) IsFirst() bool {
	return a.Index == 0
}

// IsLast reports whether the attempt is on its last question.
func (a Attempt) IsLast() bool {
	return a.Index == len(a.Set.Questions)-1
}

// Deadline is the instant the time budget runs out.
func (a Attempt) Deadline() time.Time {
	return a.StartedAt.Add(a.Budget)
}

// Remaining returns the time left at now, never negative.
func (a Attempt) Remaining(now time.Time) time.Duration {
	left := a.Deadline().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the time budget is exhausted at now.
func (a Attempt) Expired(now time.Time) bool {
	return a.Remaining(now) <= 0
}

// ScoreResult is the outcome of finishing an attempt.
type ScoreResult struct {
	CorrectCount int
	Total        int
	Percentage   float64
	Passed       bool
}

// FormatClock renders a duration as m:ss, the way the countdown is shown.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
