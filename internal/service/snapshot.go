package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/scheduler"
)

// configSnapshot is one consistent read of the scheduling configuration:
// pipeline, lead-time registry and working calendar built from a single
// round of repository reads. A computation runs entirely against its
// snapshot and never re-reads configuration mid-flight.
type configSnapshot struct {
	pipeline *scheduler.Pipeline
	rules    *scheduler.Registry
	calendar *scheduler.Calendar
	warnings []string
}

func loadConfigSnapshot(
	ctx context.Context,
	stages repository.StageRepo,
	rules repository.LeadTimeRepo,
	holidays repository.HolidayRepo,
) (*configSnapshot, error) {
	pipeline, err := loadPipeline(ctx, stages)
	if err != nil {
		return nil, err
	}

	ruleRows, err := rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lead-time rules: %w", err)
	}
	ruleVals := make([]domain.LeadTimeRule, len(ruleRows))
	for i, r := range ruleRows {
		ruleVals[i] = *r
	}
	registry := scheduler.NewRegistry(ruleVals)
	if err := registry.Validate(pipeline); err != nil {
		return nil, err
	}

	holidayRows, err := holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	holidayVals := make([]domain.Holiday, len(holidayRows))
	for i, h := range holidayRows {
		holidayVals[i] = *h
	}

	return &configSnapshot{
		pipeline: pipeline,
		rules:    registry,
		calendar: scheduler.NewCalendar(holidayVals),
		warnings: ambiguityWarnings(registry, pipeline),
	}, nil
}

func loadPipeline(ctx context.Context, stages repository.StageRepo) (*scheduler.Pipeline, error) {
	rows, err := stages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stages: %w", err)
	}
	vals := make([]domain.Stage, len(rows))
	for i, s := range rows {
		vals[i] = *s
	}
	return scheduler.NewPipeline(vals)
}

func ambiguityWarnings(reg *scheduler.Registry, p *scheduler.Pipeline) []string {
	pairs := reg.Ambiguities()
	if len(pairs) == 0 {
		return nil
	}
	warnings := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		warnings = append(warnings, formatAmbiguity(stageRef(p, pair.FromStageID), stageRef(p, pair.ToStageID)))
	}
	return warnings
}

func formatAmbiguity(from, to string) string {
	return fmt.Sprintf("multiple active rules for %s -> %s; only the first configured applies", from, to)
}

func stageRef(p *scheduler.Pipeline, id int64) string {
	if s, ok := p.ByID(id); ok {
		return s.Name
	}
	return fmt.Sprintf("stage %d", id)
}
