package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/scheduler"
)

type scheduleService struct {
	jobs     repository.JobRepo
	stages   repository.StageRepo
	rules    repository.LeadTimeRepo
	holidays repository.HolidayRepo
	observer UseCaseObserver
}

func NewScheduleService(
	jobs repository.JobRepo,
	stages repository.StageRepo,
	rules repository.LeadTimeRepo,
	holidays repository.HolidayRepo,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		jobs:     jobs,
		stages:   stages,
		rules:    rules,
		holidays: holidays,
		observer: observerOrNoop(observers),
	}
}

func (s *scheduleService) ComputeDates(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error) {
	delivery, err := contract.ParseDate(req.DeliveryDate)
	if err != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrInvalidDate, Message: err.Error()}
	}
	resp, _, err := s.computeForAnchor(ctx, delivery, nowOrDefault(req.Now))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *scheduleService) ScheduleJob(ctx context.Context, jobID string) (resp *contract.ScheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"job_id": jobID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule-job",
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
			return nil, &contract.ScheduleError{Code: contract.ScheduleErrUnknownJob, Message: err.Error()}
		}
		return nil, asScheduleError(err)
	}
	if job.DeliveryDate == nil {
		return nil, &contract.ScheduleError{
			Code:    contract.ScheduleErrNoDeliveryDate,
			Message: fmt.Sprintf("job %q has no delivery date to schedule from", job.Name),
		}
	}

	resp, resolved, err := s.computeForAnchor(ctx, *job.DeliveryDate, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// Only resolved stages are written back; a stage the lead-time chain
	// cannot reach keeps whatever date it already had.
	if len(resolved) > 0 {
		if err = s.jobs.UpdateDates(ctx, jobID, resolved); err != nil {
			return nil, asScheduleError(fmt.Errorf("storing computed dates: %w", err))
		}
	}

	fields["resolved"] = len(resolved)
	fields["warnings"] = len(resp.Warnings)
	return resp, nil
}

// computeForAnchor runs one backward scheduling pass against a fresh
// configuration snapshot. It returns both the wire response and the
// resolved dates keyed by job date column, so callers that persist reuse
// the exact dates they reported.
func (s *scheduleService) computeForAnchor(
	ctx context.Context,
	delivery time.Time,
	now time.Time,
) (*contract.ScheduleResponse, map[domain.DateColumn]*time.Time, error) {
	snap, err := loadConfigSnapshot(ctx, s.stages, s.rules, s.holidays)
	if err != nil {
		return nil, nil, asScheduleError(err)
	}

	anchor, ok := snap.pipeline.Find(domain.StageDelivery)
	if !ok {
		return nil, nil, &contract.ScheduleError{
			Code:    contract.ScheduleErrInvalidConfig,
			Message: fmt.Sprintf("pipeline has no %s stage to anchor on", domain.StageDelivery),
		}
	}

	targets := scheduler.UpstreamTargets(snap.pipeline, anchor.ID)
	dates, err := scheduler.ComputeUpstreamDates(snap.pipeline, snap.rules, snap.calendar, anchor.ID, delivery, targets)
	if err != nil {
		return nil, nil, asScheduleError(err)
	}

	resp := &contract.ScheduleResponse{
		DeliveryDate: contract.FormatDate(delivery),
		Warnings:     append([]string(nil), snap.warnings...),
	}
	if !snap.calendar.IsWorkingDay(delivery) {
		resp.Warnings = append(resp.Warnings,
			fmt.Sprintf("delivery date %s is not a working day", contract.FormatDate(delivery)))
	}

	resolved := make(map[domain.DateColumn]*time.Time, len(dates))
	today := now.Truncate(24 * time.Hour)

	for _, st := range snap.pipeline.Stages() {
		col, dated := domain.StageDateColumns[st.Name]
		if !dated || st.ID == anchor.ID {
			continue
		}
		date, ok := dates[st.ID]
		if !ok {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("no lead-time path to %s; its date is left unset", st.Name))
			continue
		}

		d := date
		resolved[col] = &d
		wire := contract.FormatDate(date)
		switch col {
		case domain.ColumnNesting:
			resp.NestingDate = &wire
		case domain.ColumnMachining:
			resp.MachiningDate = &wire
		case domain.ColumnAssembly:
			resp.AssemblyDate = &wire
		}
		if date.Before(today) {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("%s date %s is already in the past", st.Name, wire))
		}
	}

	return resp, resolved, nil
}

func asScheduleError(err error) *contract.ScheduleError {
	var cfg *scheduler.ConfigError
	if errors.As(err, &cfg) {
		return &contract.ScheduleError{Code: contract.ScheduleErrInvalidConfig, Message: cfg.Error()}
	}
	return &contract.ScheduleError{Code: contract.ScheduleErrInternal, Message: err.Error()}
}

func nowOrDefault(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now().UTC()
}
