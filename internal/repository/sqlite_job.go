package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/domain"
)

// jobColumns is the canonical SELECT column list for jobs.
const jobColumns = `id, project_id, name, drawing_number, quantity, stage_id,
		nesting_date, machining_date, assembly_date, delivery_date,
		notes, archived_at, created_at, updated_at`

// jobColumnsAliased is the same column list prefixed with "j." for join queries.
const jobColumnsAliased = `j.id, j.project_id, j.name, j.drawing_number, j.quantity, j.stage_id,
		j.nesting_date, j.machining_date, j.assembly_date, j.delivery_date,
		j.notes, j.archived_at, j.created_at, j.updated_at`

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID,
		j.ProjectID,
		j.Name,
		j.DrawingNumber,
		j.Quantity,
		j.StageID,
		nullableTimeToString(j.NestingDate, dateLayout),
		nullableTimeToString(j.MachiningDate, dateLayout),
		nullableTimeToString(j.AssemblyDate, dateLayout),
		nullableTimeToString(j.DeliveryDate, dateLayout),
		j.Notes,
		nullableTimeToString(j.ArchivedAt, time.RFC3339),
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return j, nil
}

func (r *SQLiteJobRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE project_id = ? AND archived_at IS NULL ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

// ListActive returns the board rows: every unarchived job on an unarchived
// project, joined with project, client and stage context, in delivery date
// order with undated jobs last.
func (r *SQLiteJobRepo) ListActive(ctx context.Context) ([]JobRow, error) {
	query := `SELECT ` + jobColumnsAliased + `,
			p.name, p.short_id, c.name,
			s.name, COALESCE(NULLIF(s.display_name, ''), s.name)
		FROM jobs j
		JOIN projects p ON j.project_id = p.id
		JOIN clients c ON p.client_id = c.id
		JOIN stages s ON j.stage_id = s.id
		WHERE j.archived_at IS NULL AND p.archived_at IS NULL AND c.archived_at IS NULL
		ORDER BY j.delivery_date IS NULL, j.delivery_date, j.created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active jobs: %w", err)
	}
	defer rows.Close()

	var result []JobRow
	for rows.Next() {
		var jr JobRow
		j := &jr.Job
		var nestingStr, machiningStr, assemblyStr, deliveryStr, archivedAtStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&j.ID, &j.ProjectID, &j.Name, &j.DrawingNumber, &j.Quantity, &j.StageID,
			&nestingStr, &machiningStr, &assemblyStr, &deliveryStr,
			&j.Notes, &archivedAtStr, &createdAtStr, &updatedAtStr,
			&jr.ProjectName, &jr.ProjectShortID, &jr.ClientName,
			&jr.StageName, &jr.StageLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}

		j.NestingDate = parseNullableTime(nestingStr, dateLayout)
		j.MachiningDate = parseNullableTime(machiningStr, dateLayout)
		j.AssemblyDate = parseNullableTime(assemblyStr, dateLayout)
		j.DeliveryDate = parseNullableTime(deliveryStr, dateLayout)
		j.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

		var parseErr error
		j.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		j.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
		}

		result = append(result, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteJobRepo) Update(ctx context.Context, j *domain.Job) error {
	query := `UPDATE jobs SET name = ?, drawing_number = ?, quantity = ?, stage_id = ?,
		nesting_date = ?, machining_date = ?, assembly_date = ?, delivery_date = ?,
		notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		j.Name,
		j.DrawingNumber,
		j.Quantity,
		j.StageID,
		nullableTimeToString(j.NestingDate, dateLayout),
		nullableTimeToString(j.MachiningDate, dateLayout),
		nullableTimeToString(j.AssemblyDate, dateLayout),
		nullableTimeToString(j.DeliveryDate, dateLayout),
		j.Notes,
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) UpdateStage(ctx context.Context, id string, stageID int64) error {
	query := `UPDATE jobs SET stage_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, stageID, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating job stage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateDates writes only the date columns present in the map; a nil value
// clears the column. Columns absent from the map keep their stored value.
func (r *SQLiteJobRepo) UpdateDates(ctx context.Context, id string, dates map[domain.DateColumn]*time.Time) error {
	var setClause string
	var args []any
	for _, col := range domain.DateColumns {
		d, ok := dates[col]
		if !ok {
			continue
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += string(col) + " = ?"
		args = append(args, nullableTimeToString(d, dateLayout))
	}
	if setClause == "" {
		return nil
	}

	args = append(args, nowUTC(), id)
	query := `UPDATE jobs SET ` + setClause + `, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating job dates: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteJobRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE jobs SET archived_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("archiving job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}

func scanJob(scan func(dest ...any) error) (*domain.Job, error) {
	var j domain.Job
	var nestingStr, machiningStr, assemblyStr, deliveryStr, archivedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(
		&j.ID, &j.ProjectID, &j.Name, &j.DrawingNumber, &j.Quantity, &j.StageID,
		&nestingStr, &machiningStr, &assemblyStr, &deliveryStr,
		&j.Notes, &archivedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}

	j.NestingDate = parseNullableTime(nestingStr, dateLayout)
	j.MachiningDate = parseNullableTime(machiningStr, dateLayout)
	j.AssemblyDate = parseNullableTime(assemblyStr, dateLayout)
	j.DeliveryDate = parseNullableTime(deliveryStr, dateLayout)
	j.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	var parseErr error
	j.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	j.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &j, nil
}
