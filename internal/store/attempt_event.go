package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by SQLite and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var attemptEventColumns = []string{
	"sequence", "timestamp", "attempt_id", "user_key", "topic", "set_id", "action",
	"correct_count", "total", "percentage", "passed", "points_awarded", "duration_ms",
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(tableAttemptEvents).
		Columns(attemptEventColumns...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.AttemptID,
			data.UserKey,
			data.Topic,
			data.SetID,
			data.Action,
			data.CorrectCount,
			data.Total,
			data.Percentage,
			data.Passed,
			data.PointsAwarded,
			data.DurationMs,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttemptEvents(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error) {
	sel := builder().
		Select(attemptEventColumns...).
		From(entsql.Table(tableAttemptEvents)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.UserKey != "" {
		sel = sel.Where(entsql.EQ("user_key", opts.UserKey))
	}
	if len(opts.Actions) > 0 {
		actions := make([]any, len(opts.Actions))
		for i, a := range opts.Actions {
			actions[i] = a
		}
		sel = sel.Where(entsql.In("action", actions...))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var records []AttemptEventRecord
	for rows.Next() {
		var (
			rec AttemptEventRecord
			ts  int64
		)
		err := rows.Scan(
			&rec.Sequence,
			&ts,
			&rec.AttemptID,
			&rec.UserKey,
			&rec.Topic,
			&rec.SetID,
			&rec.Action,
			&rec.CorrectCount,
			&rec.Total,
			&rec.Percentage,
			&rec.Passed,
			&rec.PointsAwarded,
			&rec.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AttemptStats(ctx context.Context, userKey string) (AttemptStats, error) {
	events, err := r.QueryAttemptEvents(ctx, QueryOpts{
		UserKey: userKey,
		Actions: []string{ActionFinish, ActionExpire},
	})
	if err != nil {
		return AttemptStats{}, fmt.Errorf("query attempt stats: %w", err)
	}

	stats := AttemptStats{BestBySet: make(map[string]float64)}
	var totalMs int64
	for _, e := range events {
		stats.Attempts++
		if e.Passed {
			stats.Passed++
		}
		if e.Action == ActionExpire {
			stats.Expired++
		}
		if best, ok := stats.BestBySet[e.SetID]; !ok || e.Percentage > best {
			stats.BestBySet[e.SetID] = e.Percentage
		}
		totalMs += e.DurationMs
	}
	stats.TotalTimeSec = int(totalMs / 1000)
	return stats, nil
}
