package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
)

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
type SQLiteTodoRepo struct {
	db db.DBTX
}

func NewSQLiteTodoRepo(conn db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: conn}
}

const todoColumns = `id, title, due_at, recur_type, weekly_days, monthly_day,
	priority, category, completed_at, created_at, updated_at`

func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	typ, weekly, monthly := encodeRule(t.Recurrence)
	query := `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		formatWall(t.Due),
		typ,
		weekly,
		monthly,
		priorityOrDefault(t.Priority),
		t.Category,
		nullableTimeToString(t.CompletedAt),
		formatStamp(t.CreatedAt),
		formatStamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTodoRepo) List(ctx context.Context, includeDone bool) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE completed_at IS NULL ORDER BY due_at, id`
	if includeDone {
		query = `SELECT ` + todoColumns + ` FROM todos ORDER BY due_at, id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	typ, weekly, monthly := encodeRule(t.Recurrence)
	query := `UPDATE todos SET title = ?, due_at = ?, recur_type = ?, weekly_days = ?, monthly_day = ?,
		priority = ?, category = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		formatWall(t.Due),
		typ,
		weekly,
		monthly,
		priorityOrDefault(t.Priority),
		t.Category,
		nullableTimeToString(t.CompletedAt),
		formatStamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	return requireAffected(res, "todo "+t.ID)
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return requireAffected(res, "todo "+id)
}

func scanTodo(s rowScanner) (*domain.Todo, error) {
	var (
		t                         domain.Todo
		dueStr, typ, weekly, prio string
		createdStr, updatedStr    string
		monthly                   int
		completedAt               sql.NullString
	)
	err := s.Scan(
		&t.ID,
		&t.Title,
		&dueStr,
		&typ,
		&weekly,
		&monthly,
		&prio,
		&t.Category,
		&completedAt,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}
	if t.Due, err = parseWall(dueStr); err != nil {
		return nil, err
	}
	if t.Recurrence, err = decodeRule(typ, weekly, monthly); err != nil {
		return nil, fmt.Errorf("todo %s: %w", t.ID, err)
	}
	t.Priority = domain.Priority(prio)
	t.CompletedAt = parseNullableTime(completedAt)
	t.CreatedAt = parseStamp(createdStr)
	t.UpdatedAt = parseStamp(updatedStr)
	return &t, nil
}
