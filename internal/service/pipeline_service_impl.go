package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/scheduler"
)

type pipelineService struct {
	stages repository.StageRepo
}

func NewPipelineService(stages repository.StageRepo) PipelineService {
	return &pipelineService{stages: stages}
}

func (s *pipelineService) ListStages(ctx context.Context) ([]*domain.Stage, error) {
	return s.stages.List(ctx)
}

func (s *pipelineService) GetStage(ctx context.Context, name string) (*domain.Stage, error) {
	return s.stages.GetByName(ctx, name)
}

func (s *pipelineService) CreateStage(ctx context.Context, st *domain.Stage) error {
	if st.Name == "" {
		return fmt.Errorf("stage name is required")
	}
	if st.OrderIndex < 0 {
		return fmt.Errorf("stage order must not be negative, got %d", st.OrderIndex)
	}
	if err := validateTargetColumns(st.TargetColumns); err != nil {
		return err
	}
	return s.stages.Create(ctx, st)
}

func (s *pipelineService) UpdateStage(ctx context.Context, st *domain.Stage) error {
	if st.Name == "" {
		return fmt.Errorf("stage name is required")
	}
	if st.OrderIndex < 0 {
		return fmt.Errorf("stage order must not be negative, got %d", st.OrderIndex)
	}
	if err := validateTargetColumns(st.TargetColumns); err != nil {
		return err
	}
	return s.stages.Update(ctx, st)
}

func (s *pipelineService) DeleteStage(ctx context.Context, id int64) error {
	st, err := s.stages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.stages.CountJobs(ctx, id)
	if err != nil {
		return fmt.Errorf("counting jobs in stage %q: %w", st.Name, err)
	}
	if n > 0 {
		return fmt.Errorf("stage %q still has %d job(s); move them to another stage first", st.Name, n)
	}
	return s.stages.Delete(ctx, id)
}

func (s *pipelineService) SetTargetColumns(ctx context.Context, stageID int64, cols []domain.TargetColumn) error {
	if err := validateTargetColumns(cols); err != nil {
		return err
	}
	return s.stages.ReplaceTargetColumns(ctx, stageID, cols)
}

func (s *pipelineService) Snapshot(ctx context.Context) (*scheduler.Pipeline, error) {
	return loadPipeline(ctx, s.stages)
}

func validateTargetColumns(cols []domain.TargetColumn) error {
	seen := make(map[domain.DateColumn]bool, len(cols))
	for _, c := range cols {
		if !domain.ValidDateColumns[string(c.Column)] {
			return fmt.Errorf("unknown date column %q", c.Column)
		}
		if seen[c.Column] {
			return fmt.Errorf("duplicate target column %q", c.Column)
		}
		seen[c.Column] = true
	}
	return nil
}
