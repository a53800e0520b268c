package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

const templateColumns = `id, name, duration_min, category, priority, color, is_default, created_at`

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.DurationMin,
		t.Category,
		priorityOrDefault(t.Priority),
		t.Color,
		boolToInt(t.IsDefault),
		formatStamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

// List returns templates in creation order, which is the order the
// scheduler considers them within a priority tier.
func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return requireAffected(res, "template "+id)
}

func scanTemplate(s rowScanner) (*domain.Template, error) {
	var t domain.Template
	var prio, createdStr string
	var isDefault int
	err := s.Scan(&t.ID, &t.Name, &t.DurationMin, &t.Category, &prio, &t.Color, &isDefault, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	t.Priority = domain.Priority(prio)
	t.IsDefault = intToBool(isDefault)
	t.CreatedAt = parseStamp(createdStr)
	return &t, nil
}
