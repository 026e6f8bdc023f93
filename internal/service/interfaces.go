package service

import (
	"context"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/scheduler"
)

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type JobService interface {
	// Create validates the wire-format delivery date (empty means none) and
	// places the job at the pipeline's default stage when no stage is set.
	Create(ctx context.Context, j *domain.Job, deliveryDate string) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Job, error)
	ListActive(ctx context.Context) ([]repository.JobRow, error)
	Update(ctx context.Context, j *domain.Job) error
	SetDeliveryDate(ctx context.Context, id string, deliveryDate string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type PipelineService interface {
	ListStages(ctx context.Context) ([]*domain.Stage, error)
	GetStage(ctx context.Context, name string) (*domain.Stage, error)
	CreateStage(ctx context.Context, s *domain.Stage) error
	UpdateStage(ctx context.Context, s *domain.Stage) error
	// DeleteStage refuses while jobs still reference the stage.
	DeleteStage(ctx context.Context, id int64) error
	SetTargetColumns(ctx context.Context, stageID int64, cols []domain.TargetColumn) error
	// Snapshot builds a validated pipeline from the persisted stages,
	// failing fast on any configuration violation.
	Snapshot(ctx context.Context) (*scheduler.Pipeline, error)
}

// LeadTimeInitResult reports what InitDefaults did: how many canonical
// rules it created and which pairs it left alone because a rule already
// existed.
type LeadTimeInitResult struct {
	Created int
	Skipped []string
}

type LeadTimeService interface {
	List(ctx context.Context) ([]*domain.LeadTimeRule, error)
	// Set upserts the rule for the named stage pair.
	Set(ctx context.Context, fromStage, toStage string, days int) (*domain.LeadTimeRule, error)
	SetActive(ctx context.Context, id int64, active bool) error
	// InitDefaults seeds the canonical chain (assembly 3 working days
	// before delivery, machining 2 before assembly, nesting 2 before
	// machining), creating only pairs that do not exist yet. Existing
	// pairs are reported, never overwritten, and never abort the batch.
	InitDefaults(ctx context.Context) (*LeadTimeInitResult, error)
	// Warnings reports configured ambiguities: stage pairs covered by more
	// than one active rule, of which only the first ever applies.
	Warnings(ctx context.Context) ([]string, error)
}

type HolidayService interface {
	ListYear(ctx context.Context, year int) ([]*domain.Holiday, error)
	// Add records a non-working date. Adding a date that is already a
	// holiday reports added=false instead of failing.
	Add(ctx context.Context, h *domain.Holiday) (added bool, err error)
	Remove(ctx context.Context, date time.Time) error
}

type ScheduleService interface {
	// ComputeDates derives the upstream production dates implied by the
	// requested delivery date without touching any job.
	ComputeDates(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error)
	// ScheduleJob runs the same computation anchored at the job's stored
	// delivery date and persists every date it resolves.
	ScheduleJob(ctx context.Context, jobID string) (*contract.ScheduleResponse, error)
}

type StatusService interface {
	// Advance names the stage after the given one in pipeline order,
	// wrapping past the final stage back to the first.
	Advance(ctx context.Context, req contract.AdvanceRequest) (*contract.AdvanceResponse, error)
	// AdvanceJob advances the job's stored stage and persists the move.
	AdvanceJob(ctx context.Context, jobID string) (*contract.AdvanceResponse, error)
}

type GridService interface {
	// Columns returns the saved layout for the view, or the default layout
	// when none is saved.
	Columns(ctx context.Context, view string) ([]string, error)
	SaveColumns(ctx context.Context, view string, cols []string) error
}
