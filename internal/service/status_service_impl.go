package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/scheduler"
)

type statusService struct {
	jobs     repository.JobRepo
	stages   repository.StageRepo
	observer UseCaseObserver
}

func NewStatusService(jobs repository.JobRepo, stages repository.StageRepo, observers ...UseCaseObserver) StatusService {
	return &statusService{
		jobs:     jobs,
		stages:   stages,
		observer: observerOrNoop(observers),
	}
}

func (s *statusService) Advance(ctx context.Context, req contract.AdvanceRequest) (*contract.AdvanceResponse, error) {
	pipeline, err := loadPipeline(ctx, s.stages)
	if err != nil {
		return nil, asAdvanceError(err)
	}
	return advanceWithin(pipeline, req.CurrentStageID)
}

func (s *statusService) AdvanceJob(ctx context.Context, jobID string) (resp *contract.AdvanceResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"job_id": jobID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "advance-job",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.AdvanceError{Code: contract.AdvanceErrUnknownJob, Message: err.Error()}
		}
		return nil, asAdvanceError(err)
	}

	pipeline, err := loadPipeline(ctx, s.stages)
	if err != nil {
		return nil, asAdvanceError(err)
	}

	// A job pointing at a stage that is no longer configured is reported,
	// never silently reset to the default stage.
	resp, err = advanceWithin(pipeline, job.StageID)
	if err != nil {
		return nil, err
	}

	if err = s.jobs.UpdateStage(ctx, jobID, resp.NextStageID); err != nil {
		return nil, asAdvanceError(err)
	}

	fields["from_stage_id"] = job.StageID
	fields["to_stage"] = resp.NextStage
	fields["wrapped"] = resp.Wrapped
	return resp, nil
}

func advanceWithin(p *scheduler.Pipeline, currentStageID int64) (*contract.AdvanceResponse, error) {
	next, err := scheduler.Advance(p, currentStageID)
	if err != nil {
		return nil, &contract.AdvanceError{Code: contract.AdvanceErrUnknownStage, Message: err.Error()}
	}
	idx, _ := p.IndexOf(currentStageID)
	return &contract.AdvanceResponse{
		NextStageID: next.ID,
		NextStage:   next.Name,
		NextLabel:   next.Label(),
		Wrapped:     idx == p.Len()-1,
	}, nil
}

func asAdvanceError(err error) *contract.AdvanceError {
	var cfg *scheduler.ConfigError
	if errors.As(err, &cfg) {
		return &contract.AdvanceError{Code: contract.AdvanceErrInvalidConfig, Message: cfg.Error()}
	}
	return &contract.AdvanceError{Code: contract.AdvanceErrInternal, Message: err.Error()}
}
