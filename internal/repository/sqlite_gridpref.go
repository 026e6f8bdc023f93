package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/domain"
)

// SQLiteGridPrefRepo implements GridPrefRepo using a SQLite database.
// Column lists are stored as a single comma-joined TEXT value.
type SQLiteGridPrefRepo struct {
	db db.DBTX
}

// NewSQLiteGridPrefRepo creates a new SQLiteGridPrefRepo.
func NewSQLiteGridPrefRepo(conn db.DBTX) *SQLiteGridPrefRepo {
	return &SQLiteGridPrefRepo{db: conn}
}

func (r *SQLiteGridPrefRepo) Get(ctx context.Context, view string) (*domain.GridPreference, error) {
	query := `SELECT view, columns, updated_at FROM grid_prefs WHERE view = ?`
	row := r.db.QueryRowContext(ctx, query, view)

	var p domain.GridPreference
	var columnsStr, updatedAtStr string
	err := row.Scan(&p.View, &columnsStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("grid preference %s: %w", view, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning grid preference: %w", err)
	}

	if columnsStr != "" {
		p.Columns = strings.Split(columnsStr, ",")
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteGridPrefRepo) Upsert(ctx context.Context, p *domain.GridPreference) error {
	query := `INSERT OR REPLACE INTO grid_prefs (view, columns, updated_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.View, strings.Join(p.Columns, ","), nowUTC())
	if err != nil {
		return fmt.Errorf("saving grid preference: %w", err)
	}
	return nil
}
