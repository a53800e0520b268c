package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
)

// SQLiteLearningRepo stores the analytics signals the allocator consumes.
// Replace* methods delete then insert, so callers wanting an atomic swap
// should run them inside a UnitOfWork.
type SQLiteLearningRepo struct {
	db db.DBTX
}

func NewSQLiteLearningRepo(conn db.DBTX) *SQLiteLearningRepo {
	return &SQLiteLearningRepo{db: conn}
}

func (r *SQLiteLearningRepo) ListConcentration(ctx context.Context) ([]domain.ConcentrationScore, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT hour, score FROM concentration_scores ORDER BY hour`)
	if err != nil {
		return nil, fmt.Errorf("listing concentration scores: %w", err)
	}
	defer rows.Close()

	var scores []domain.ConcentrationScore
	for rows.Next() {
		var s domain.ConcentrationScore
		if err := rows.Scan(&s.Hour, &s.Score); err != nil {
			return nil, fmt.Errorf("scanning concentration score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating concentration scores: %w", err)
	}
	return scores, nil
}

func (r *SQLiteLearningRepo) ListDurations(ctx context.Context) ([]domain.TaskDurationLearning, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_name, average_duration, sample_size, accuracy
		FROM duration_learnings ORDER BY task_name`)
	if err != nil {
		return nil, fmt.Errorf("listing duration learnings: %w", err)
	}
	defer rows.Close()

	var ls []domain.TaskDurationLearning
	for rows.Next() {
		var l domain.TaskDurationLearning
		if err := rows.Scan(&l.TaskName, &l.AverageDuration, &l.SampleSize, &l.Accuracy); err != nil {
			return nil, fmt.Errorf("scanning duration learning: %w", err)
		}
		ls = append(ls, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duration learnings: %w", err)
	}
	return ls, nil
}

func (r *SQLiteLearningRepo) ReplaceConcentration(ctx context.Context, scores []domain.ConcentrationScore) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM concentration_scores`); err != nil {
		return fmt.Errorf("clearing concentration scores: %w", err)
	}
	for _, s := range scores {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO concentration_scores (hour, score) VALUES (?, ?)`, s.Hour, s.Score); err != nil {
			return fmt.Errorf("inserting concentration score for hour %d: %w", s.Hour, err)
		}
	}
	return nil
}

func (r *SQLiteLearningRepo) ReplaceDurations(ctx context.Context, ls []domain.TaskDurationLearning) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM duration_learnings`); err != nil {
		return fmt.Errorf("clearing duration learnings: %w", err)
	}
	for _, l := range ls {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO duration_learnings (task_name, average_duration, sample_size, accuracy)
			VALUES (?, ?, ?, ?)`, l.TaskName, l.AverageDuration, l.SampleSize, l.Accuracy); err != nil {
			return fmt.Errorf("inserting duration learning for %q: %w", l.TaskName, err)
		}
	}
	return nil
}
