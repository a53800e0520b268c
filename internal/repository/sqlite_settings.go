package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo over the singleton settings row.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT chronotype, work_session_min, break_min, wake_time, sleep_time
		FROM settings WHERE id = 'default'`)

	var s domain.Settings
	var chronotype, wake, sleep string
	if err := row.Scan(&chronotype, &s.WorkSessionMin, &s.BreakMin, &wake, &sleep); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	s.Chronotype = domain.Chronotype(chronotype)

	var err error
	if s.WakeTime, err = domain.ParseWallClock(wake); err != nil {
		return nil, fmt.Errorf("settings wake time: %w", err)
	}
	if s.SleepTime, err = domain.ParseWallClock(sleep); err != nil {
		return nil, fmt.Errorf("settings sleep time: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	query := `INSERT OR REPLACE INTO settings (id, chronotype, work_session_min, break_min, wake_time, sleep_time)
		VALUES ('default', ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		string(s.Chronotype),
		s.WorkSessionMin,
		s.BreakMin,
		s.WakeTime.String(),
		s.SleepTime.String(),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
