package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

const eventColumns = `id, title, description, location, start_at, end_at, all_day,
	recur_type, weekly_days, monthly_day, fixed, category, priority, color,
	notifications, source_template_id, created_at, updated_at`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	typ, weekly, monthly := encodeRule(e.Recurrence)
	query := `INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		e.Location,
		formatWall(e.Start),
		formatWall(e.End),
		boolToInt(e.AllDay),
		typ,
		weekly,
		monthly,
		boolToInt(e.Fixed),
		e.Category,
		priorityOrDefault(e.Priority),
		e.Color,
		boolToInt(e.NotificationsEnabled),
		nullableString(e.SourceTemplateID),
		formatStamp(e.CreatedAt),
		formatStamp(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	for _, day := range e.ExcludedDates {
		if err := r.AddExclusion(ctx, e.ID, day); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.attachExclusions(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	return r.query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_at, id`)
}

func (r *SQLiteEventRepo) ListForRange(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	fromStr := formatWall(domain.StartOfDay(from))
	toStr := formatWall(domain.StartOfDay(to).AddDate(0, 0, 1))
	return r.query(ctx, `SELECT `+eventColumns+` FROM events
		WHERE start_at < ? AND (recur_type != 'none' OR start_at >= ?)
		ORDER BY start_at, id`, toStr, fromStr)
}

func (r *SQLiteEventRepo) ListGeneratedOn(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	from, to := dayBounds(day)
	return r.query(ctx, `SELECT `+eventColumns+` FROM events
		WHERE source_template_id IS NOT NULL AND start_at >= ? AND start_at < ?
		ORDER BY start_at, id`, from, to)
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.Event) error {
	typ, weekly, monthly := encodeRule(e.Recurrence)
	query := `UPDATE events SET title = ?, description = ?, location = ?, start_at = ?, end_at = ?,
		all_day = ?, recur_type = ?, weekly_days = ?, monthly_day = ?, fixed = ?, category = ?,
		priority = ?, color = ?, notifications = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		e.Location,
		formatWall(e.Start),
		formatWall(e.End),
		boolToInt(e.AllDay),
		typ,
		weekly,
		monthly,
		boolToInt(e.Fixed),
		e.Category,
		priorityOrDefault(e.Priority),
		e.Color,
		boolToInt(e.NotificationsEnabled),
		formatStamp(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireAffected(res, "event "+e.ID)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireAffected(res, "event "+id)
}

func (r *SQLiteEventRepo) DeleteGeneratedOn(ctx context.Context, day time.Time) (int, error) {
	from, to := dayBounds(day)
	res, err := r.db.ExecContext(ctx, `DELETE FROM events
		WHERE source_template_id IS NOT NULL AND start_at >= ? AND start_at < ?`, from, to)
	if err != nil {
		return 0, fmt.Errorf("deleting generated events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted events: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteEventRepo) AddExclusion(ctx context.Context, eventID string, day time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO event_exclusions (event_id, day) VALUES (?, ?)`,
		eventID, formatDay(day))
	if err != nil {
		return fmt.Errorf("excluding %s from event %s: %w", formatDay(day), eventID, err)
	}
	return nil
}

func (r *SQLiteEventRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	rows.Close()

	if err := r.attachExclusions(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// attachExclusions loads excluded days for events in one query. It runs
// after the event rows are closed so it works on a single connection.
func (r *SQLiteEventRepo) attachExclusions(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Event, len(events))
	args := make([]any, 0, len(events))
	for _, e := range events {
		byID[e.ID] = e
		args = append(args, e.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT event_id, day FROM event_exclusions WHERE event_id IN (`+placeholders(len(args))+`) ORDER BY day`,
		args...)
	if err != nil {
		return fmt.Errorf("loading event exclusions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, dayStr string
		if err := rows.Scan(&id, &dayStr); err != nil {
			return fmt.Errorf("scanning event exclusion: %w", err)
		}
		day, err := parseDay(dayStr)
		if err != nil {
			return err
		}
		if e := byID[id]; e != nil {
			e.ExcludedDates = append(e.ExcludedDates, day)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating event exclusions: %w", err)
	}
	return nil
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	var (
		e                                     domain.Event
		startStr, endStr, typ, weekly, prio   string
		createdStr, updatedStr                string
		allDay, fixed, notifications, monthly int
		sourceTemplateID                      sql.NullString
	)
	err := s.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&startStr,
		&endStr,
		&allDay,
		&typ,
		&weekly,
		&monthly,
		&fixed,
		&e.Category,
		&prio,
		&e.Color,
		&notifications,
		&sourceTemplateID,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	if e.Start, err = parseWall(startStr); err != nil {
		return nil, err
	}
	if e.End, err = parseWall(endStr); err != nil {
		return nil, err
	}
	if e.Recurrence, err = decodeRule(typ, weekly, monthly); err != nil {
		return nil, fmt.Errorf("event %s: %w", e.ID, err)
	}
	e.AllDay = intToBool(allDay)
	e.Fixed = intToBool(fixed)
	e.NotificationsEnabled = intToBool(notifications)
	e.Priority = domain.Priority(prio)
	if sourceTemplateID.Valid {
		id := sourceTemplateID.String
		e.SourceTemplateID = &id
	}
	e.CreatedAt = parseStamp(createdStr)
	e.UpdatedAt = parseStamp(updatedStr)
	return &e, nil
}

// dayBounds returns [day 00:00, next day 00:00) in storage format.
func dayBounds(day time.Time) (string, string) {
	start := domain.StartOfDay(day)
	return formatWall(start), formatWall(start.AddDate(0, 0, 1))
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
