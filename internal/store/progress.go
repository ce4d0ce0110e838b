package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizladder/internal/quiz"
)

// progressRepo implements ProgressRepo with one row per user key.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Load(ctx context.Context, userKey string) (quiz.Progress, error) {
	query, args := builder().
		Select("total_points", "completed_sets").
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ("user_key", userKey)).
		Query()

	var (
		points    int
		completed string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&points, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Progress{}, nil
	}
	if err != nil {
		return quiz.Progress{}, fmt.Errorf("query progress: %w", err)
	}

	p := quiz.Progress{TotalPoints: points}
	if err := json.Unmarshal([]byte(completed), &p.CompletedSets); err != nil {
		return quiz.Progress{}, fmt.Errorf("decode completed sets: %w", err)
	}
	return p, nil
}

func (r *progressRepo) Save(ctx context.Context, userKey string, p quiz.Progress) error {
	completed := p.CompletedSets
	if completed == nil {
		completed = []string{}
	}
	data, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encode completed sets: %w", err)
	}

	query, args := builder().
		Insert(tableProgress).
		Columns("user_key", "total_points", "completed_sets", "updated_at").
		Values(userKey, p.TotalPoints, string(data), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("user_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context, userKey string) error {
	query, args := builder().
		Delete(tableProgress).
		Where(entsql.EQ("user_key", userKey)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Users(ctx context.Context) ([]string, error) {
	query, args := builder().
		Select("user_key").
		From(entsql.Table(tableProgress)).
		OrderBy("user_key").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
