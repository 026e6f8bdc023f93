package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/domain"
)

const holidayColumns = `id, date, name, is_public`

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]*domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays ORDER BY date`
	return r.queryHolidays(ctx, query)
}

func (r *SQLiteHolidayRepo) ListYear(ctx context.Context, year int) ([]*domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays
		WHERE date >= ? AND date < ? ORDER BY date`
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-01-01", year+1)
	return r.queryHolidays(ctx, query, from, to)
}

func (r *SQLiteHolidayRepo) queryHolidays(ctx context.Context, query string, args ...any) ([]*domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*domain.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows.Scan)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}

func (r *SQLiteHolidayRepo) Add(ctx context.Context, h *domain.Holiday) error {
	query := `INSERT INTO holidays (date, name, is_public) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		h.Date.Format(dateLayout), h.Name, boolToInt(h.IsPublic))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("holiday on %s: %w", h.Date.Format(dateLayout), ErrDuplicate)
		}
		return fmt.Errorf("inserting holiday: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading holiday id: %w", err)
	}
	h.ID = id
	return nil
}

func (r *SQLiteHolidayRepo) Remove(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("removing holiday: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holiday %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteHolidayRepo) RemoveByDate(ctx context.Context, date time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM holidays WHERE date = ?`, date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("removing holiday by date: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holiday on %s: %w", date.Format(dateLayout), ErrNotFound)
	}
	return nil
}

func scanHoliday(scan func(dest ...any) error) (*domain.Holiday, error) {
	var h domain.Holiday
	var dateStr string
	var isPublicInt int

	err := scan(&h.ID, &dateStr, &h.Name, &isPublicInt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning holiday: %w", err)
	}

	var parseErr error
	h.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing holiday date: %w", parseErr)
	}
	h.IsPublic = intToBool(isPublicInt)
	return &h, nil
}
