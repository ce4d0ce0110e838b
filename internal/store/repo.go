package store

import (
	"context"
	"time"

	"github.com/abhisek/quizladder/internal/quiz"
)

const (
	tableProgress      = "progress"
	tableAttemptEvents = "attempt_events"
)

// Attempt lifecycle actions recorded in the event log.
const (
	ActionStart  = "start"
	ActionFinish = "finish"
	ActionExpire = "expire"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	UserKey string    // only events for this user ("" = all)
	Actions []string  // only these actions (empty = all)
}

// ProgressRepo persists per-user quiz progress.
type ProgressRepo interface {
	// Load returns the progress for userKey; a user with no row gets zero progress.
	Load(ctx context.Context, userKey string) (quiz.Progress, error)

	// Save replaces the stored progress for userKey.
	Save(ctx context.Context, userKey string, p quiz.Progress) error

	// Reset deletes the stored progress for userKey.
	Reset(ctx context.Context, userKey string) error

	// Users lists every user key with stored progress.
	Users(ctx context.Context) ([]string, error)
}

// AttemptEventData captures one attempt lifecycle event.
type AttemptEventData struct {
	AttemptID     string
	UserKey       string
	Topic         string
	SetID         string
	Action        string
	CorrectCount  int
	Total         int
	Percentage    float64
	Passed        bool
	PointsAwarded int
	DurationMs    int64
}

// AttemptEventRecord is a stored attempt event.
type AttemptEventRecord struct {
	AttemptEventData
	Sequence  int64
	Timestamp time.Time
}

// AttemptStats aggregates finished attempts for one user.
type AttemptStats struct {
	Attempts     int
	Passed       int
	Expired      int
	BestBySet    map[string]float64 // set ID → best percentage
	TotalTimeSec int
}

// EventRepo provides append and query access to attempt events.
type EventRepo interface {
	// AppendAttemptEvent records an attempt lifecycle event.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// QueryAttemptEvents returns events newest first.
	QueryAttemptEvents(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)

	// AttemptStats aggregates finished and expired attempts for userKey.
	AttemptStats(ctx context.Context, userKey string) (AttemptStats, error)
}
