package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/domain"
)

const ruleColumns = `id, from_stage_id, to_stage_id, days, direction, is_active`

// SQLiteLeadTimeRepo implements LeadTimeRepo using a SQLite database.
type SQLiteLeadTimeRepo struct {
	db db.DBTX
}

// NewSQLiteLeadTimeRepo creates a new SQLiteLeadTimeRepo.
func NewSQLiteLeadTimeRepo(conn db.DBTX) *SQLiteLeadTimeRepo {
	return &SQLiteLeadTimeRepo{db: conn}
}

func (r *SQLiteLeadTimeRepo) List(ctx context.Context) ([]*domain.LeadTimeRule, error) {
	// id order is insertion order; duplicate pairs resolve first-wins on it.
	query := `SELECT ` + ruleColumns + ` FROM lead_time_rules ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing lead-time rules: %w", err)
	}
	defer rows.Close()

	var rules []*domain.LeadTimeRule
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead-time rules: %w", err)
	}
	return rules, nil
}

func (r *SQLiteLeadTimeRepo) GetByPair(ctx context.Context, fromStageID, toStageID int64) (*domain.LeadTimeRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM lead_time_rules
		WHERE from_stage_id = ? AND to_stage_id = ? ORDER BY id LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, fromStageID, toStageID)

	rule, err := scanRule(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("rule %d->%d: %w", fromStageID, toStageID, ErrNotFound)
		}
		return nil, err
	}
	return rule, nil
}

func (r *SQLiteLeadTimeRepo) Upsert(ctx context.Context, rule *domain.LeadTimeRule) error {
	existing, err := r.GetByPair(ctx, rule.FromStageID, rule.ToStageID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if existing != nil {
		query := `UPDATE lead_time_rules SET days = ?, direction = ?, is_active = ? WHERE id = ?`
		_, err := r.db.ExecContext(ctx, query,
			rule.Days, string(rule.Direction), boolToInt(rule.IsActive), existing.ID)
		if err != nil {
			return fmt.Errorf("updating lead-time rule: %w", err)
		}
		rule.ID = existing.ID
		return nil
	}

	query := `INSERT INTO lead_time_rules (from_stage_id, to_stage_id, days, direction, is_active)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rule.FromStageID, rule.ToStageID, rule.Days, string(rule.Direction), boolToInt(rule.IsActive))
	if err != nil {
		return fmt.Errorf("inserting lead-time rule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading lead-time rule id: %w", err)
	}
	rule.ID = id
	return nil
}

func (r *SQLiteLeadTimeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE lead_time_rules SET is_active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("toggling lead-time rule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLeadTimeRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lead_time_rules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting lead-time rule: %w", err)
	}
	return nil
}

func scanRule(scan func(dest ...any) error) (*domain.LeadTimeRule, error) {
	var rule domain.LeadTimeRule
	var directionStr string
	var isActiveInt int

	err := scan(&rule.ID, &rule.FromStageID, &rule.ToStageID, &rule.Days, &directionStr, &isActiveInt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning lead-time rule: %w", err)
	}

	rule.Direction = domain.Direction(directionStr)
	rule.IsActive = intToBool(isActiveInt)
	return &rule, nil
}
