package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
)

// JobRow is a joined view of a job with its project, client and stage
// context: one board grid row.
type JobRow struct {
	Job            domain.Job
	ProjectName    string
	ProjectShortID string
	ClientName     string
	StageName      string
	StageLabel     string
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Job, error)
	ListActive(ctx context.Context) ([]JobRow, error)
	Update(ctx context.Context, j *domain.Job) error
	UpdateStage(ctx context.Context, id string, stageID int64) error
	UpdateDates(ctx context.Context, id string, dates map[domain.DateColumn]*time.Time) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type StageRepo interface {
	// Create inserts the stage and its target columns, backfilling s.ID.
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, id int64) (*domain.Stage, error)
	GetByName(ctx context.Context, name string) (*domain.Stage, error)
	// List returns stages in order_index order with target columns attached.
	List(ctx context.Context) ([]*domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	ReplaceTargetColumns(ctx context.Context, stageID int64, cols []domain.TargetColumn) error
	CountJobs(ctx context.Context, stageID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type LeadTimeRepo interface {
	// List returns rules in insertion (id) order, which is the order
	// duplicate pairs resolve in.
	List(ctx context.Context) ([]*domain.LeadTimeRule, error)
	GetByPair(ctx context.Context, fromStageID, toStageID int64) (*domain.LeadTimeRule, error)
	// Upsert inserts the rule, or updates days/direction/active in place
	// when a rule for the same pair already exists. r.ID is backfilled.
	Upsert(ctx context.Context, r *domain.LeadTimeRule) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type HolidayRepo interface {
	List(ctx context.Context) ([]*domain.Holiday, error)
	ListYear(ctx context.Context, year int) ([]*domain.Holiday, error)
	// Add inserts the holiday, backfilling h.ID. A second holiday on the
	// same date fails with ErrDuplicate.
	Add(ctx context.Context, h *domain.Holiday) error
	Remove(ctx context.Context, id int64) error
	RemoveByDate(ctx context.Context, date time.Time) error
}

type GridPrefRepo interface {
	Get(ctx context.Context, view string) (*domain.GridPreference, error)
	Upsert(ctx context.Context, p *domain.GridPreference) error
}
