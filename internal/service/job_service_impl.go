package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/google/uuid"
)

type jobService struct {
	jobs   repository.JobRepo
	stages repository.StageRepo
}

func NewJobService(jobs repository.JobRepo, stages repository.StageRepo) JobService {
	return &jobService{jobs: jobs, stages: stages}
}

func (s *jobService) Create(ctx context.Context, j *domain.Job, deliveryDate string) error {
	if j.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if j.ProjectID == "" {
		return fmt.Errorf("job must belong to a project")
	}
	if j.Quantity < 0 {
		return fmt.Errorf("quantity must be positive, got %d", j.Quantity)
	}
	if deliveryDate != "" {
		d, err := contract.ParseDate(deliveryDate)
		if err != nil {
			return err
		}
		j.DeliveryDate = &d
	}
	if j.StageID == 0 {
		pipeline, err := loadPipeline(ctx, s.stages)
		if err != nil {
			return fmt.Errorf("placing job at default stage: %w", err)
		}
		j.StageID = pipeline.DefaultStage().ID
	}
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	if j.Quantity == 0 {
		j.Quantity = 1
	}
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	return s.jobs.Create(ctx, j)
}

func (s *jobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *jobService) ListByProject(ctx context.Context, projectID string) ([]*domain.Job, error) {
	return s.jobs.ListByProject(ctx, projectID)
}

func (s *jobService) ListActive(ctx context.Context) ([]repository.JobRow, error) {
	return s.jobs.ListActive(ctx)
}

func (s *jobService) Update(ctx context.Context, j *domain.Job) error {
	j.UpdatedAt = time.Now().UTC()
	return s.jobs.Update(ctx, j)
}

func (s *jobService) SetDeliveryDate(ctx context.Context, id string, deliveryDate string) error {
	d, err := contract.ParseDate(deliveryDate)
	if err != nil {
		return err
	}
	return s.jobs.UpdateDates(ctx, id, map[domain.DateColumn]*time.Time{
		domain.ColumnDelivery: &d,
	})
}

func (s *jobService) Archive(ctx context.Context, id string) error {
	return s.jobs.Archive(ctx, id)
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}
