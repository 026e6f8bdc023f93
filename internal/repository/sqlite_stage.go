package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/domain"
)

const stageColumns = `id, name, display_name, order_index, is_default, is_final`

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

// NewSQLiteStageRepo creates a new SQLiteStageRepo.
func NewSQLiteStageRepo(conn db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: conn}
}

func (r *SQLiteStageRepo) Create(ctx context.Context, s *domain.Stage) error {
	query := `INSERT INTO stages (name, display_name, order_index, is_default, is_final)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.DisplayName,
		s.OrderIndex,
		boolToInt(s.IsDefault),
		boolToInt(s.IsFinal),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("stage %q: %w", s.Name, ErrDuplicate)
		}
		return fmt.Errorf("inserting stage: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading stage id: %w", err)
	}
	s.ID = id

	if len(s.TargetColumns) > 0 {
		if err := r.insertTargetColumns(ctx, s.ID, s.TargetColumns); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteStageRepo) GetByID(ctx context.Context, id int64) (*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanStage(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stage %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.attachTargetColumns(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStageRepo) GetByName(ctx context.Context, name string) (*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE name = ?`
	row := r.db.QueryRowContext(ctx, query, name)

	s, err := scanStage(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stage %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	if err := r.attachTargetColumns(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStageRepo) List(ctx context.Context) ([]*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	var stages []*domain.Stage
	byID := make(map[int64]*domain.Stage)
	for rows.Next() {
		s, err := scanStage(rows.Scan)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}

	// One query for every stage's target columns instead of one per stage.
	colRows, err := r.db.QueryContext(ctx,
		`SELECT stage_id, column_name, color FROM stage_target_columns ORDER BY stage_id, column_name`)
	if err != nil {
		return nil, fmt.Errorf("listing target columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var stageID int64
		var colName, color string
		if err := colRows.Scan(&stageID, &colName, &color); err != nil {
			return nil, fmt.Errorf("scanning target column: %w", err)
		}
		if s, ok := byID[stageID]; ok {
			s.TargetColumns = append(s.TargetColumns, domain.TargetColumn{
				Column: domain.DateColumn(colName),
				Color:  color,
			})
		}
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating target columns: %w", err)
	}

	return stages, nil
}

func (r *SQLiteStageRepo) Update(ctx context.Context, s *domain.Stage) error {
	query := `UPDATE stages SET name = ?, display_name = ?, order_index = ?, is_default = ?, is_final = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.DisplayName,
		s.OrderIndex,
		boolToInt(s.IsDefault),
		boolToInt(s.IsFinal),
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("stage %q: %w", s.Name, ErrDuplicate)
		}
		return fmt.Errorf("updating stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) ReplaceTargetColumns(ctx context.Context, stageID int64, cols []domain.TargetColumn) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM stage_target_columns WHERE stage_id = ?`, stageID); err != nil {
		return fmt.Errorf("clearing target columns: %w", err)
	}
	return r.insertTargetColumns(ctx, stageID, cols)
}

func (r *SQLiteStageRepo) CountJobs(ctx context.Context, stageID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE stage_id = ?`, stageID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting jobs on stage: %w", err)
	}
	return count, nil
}

func (r *SQLiteStageRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) insertTargetColumns(ctx context.Context, stageID int64, cols []domain.TargetColumn) error {
	for _, col := range cols {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO stage_target_columns (stage_id, column_name, color) VALUES (?, ?, ?)`,
			stageID, string(col.Column), col.Color)
		if err != nil {
			return fmt.Errorf("inserting target column %s: %w", col.Column, err)
		}
	}
	return nil
}

func (r *SQLiteStageRepo) attachTargetColumns(ctx context.Context, s *domain.Stage) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT column_name, color FROM stage_target_columns WHERE stage_id = ? ORDER BY column_name`, s.ID)
	if err != nil {
		return fmt.Errorf("loading target columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var colName, color string
		if err := rows.Scan(&colName, &color); err != nil {
			return fmt.Errorf("scanning target column: %w", err)
		}
		s.TargetColumns = append(s.TargetColumns, domain.TargetColumn{
			Column: domain.DateColumn(colName),
			Color:  color,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating target columns: %w", err)
	}
	return nil
}

func scanStage(scan func(dest ...any) error) (*domain.Stage, error) {
	var s domain.Stage
	var isDefaultInt, isFinalInt int

	err := scan(&s.ID, &s.Name, &s.DisplayName, &s.OrderIndex, &isDefaultInt, &isFinalInt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning stage: %w", err)
	}

	s.IsDefault = intToBool(isDefaultInt)
	s.IsFinal = intToBool(isFinalInt)
	return &s, nil
}
