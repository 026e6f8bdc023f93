package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/scheduler"
)

// defaultLeadTimes is the canonical chain seeded into a fresh
// installation: assembly three working days before delivery, machining two
// before assembly, nesting two before machining.
var defaultLeadTimes = []struct {
	from string
	to   string
	days int
}{
	{domain.StageAssembly, domain.StageDelivery, 3},
	{domain.StageMachining, domain.StageAssembly, 2},
	{domain.StageNesting, domain.StageMachining, 2},
}

type leadTimeService struct {
	rules    repository.LeadTimeRepo
	stages   repository.StageRepo
	observer UseCaseObserver
}

func NewLeadTimeService(rules repository.LeadTimeRepo, stages repository.StageRepo, observers ...UseCaseObserver) LeadTimeService {
	return &leadTimeService{
		rules:    rules,
		stages:   stages,
		observer: observerOrNoop(observers),
	}
}

func (s *leadTimeService) List(ctx context.Context) ([]*domain.LeadTimeRule, error) {
	return s.rules.List(ctx)
}

func (s *leadTimeService) Set(ctx context.Context, fromStage, toStage string, days int) (*domain.LeadTimeRule, error) {
	if days < 0 {
		return nil, fmt.Errorf("lead time must not be negative, got %d", days)
	}
	if fromStage == toStage {
		return nil, fmt.Errorf("from and to stages must differ")
	}

	from, err := s.stages.GetByName(ctx, fromStage)
	if err != nil {
		return nil, err
	}
	to, err := s.stages.GetByName(ctx, toStage)
	if err != nil {
		return nil, err
	}

	rule := &domain.LeadTimeRule{
		FromStageID: from.ID,
		ToStageID:   to.ID,
		Days:        days,
		Direction:   domain.DirectionBefore,
		IsActive:    true,
	}
	if err := s.rules.Upsert(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *leadTimeService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.rules.SetActive(ctx, id, active)
}

func (s *leadTimeService) InitDefaults(ctx context.Context) (result *LeadTimeInitResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "init-lead-times",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	result = &LeadTimeInitResult{}
	for _, d := range defaultLeadTimes {
		var from, to *domain.Stage
		from, err = s.stages.GetByName(ctx, d.from)
		if err != nil {
			return nil, fmt.Errorf("initializing lead times: %w", err)
		}
		to, err = s.stages.GetByName(ctx, d.to)
		if err != nil {
			return nil, fmt.Errorf("initializing lead times: %w", err)
		}

		// An existing rule for the pair wins over the default, whatever
		// its days; re-running init never clobbers tuning.
		_, err = s.rules.GetByPair(ctx, from.ID, to.ID)
		if err == nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%s -> %s", d.from, d.to))
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("initializing lead times: %w", err)
		}

		rule := &domain.LeadTimeRule{
			FromStageID: from.ID,
			ToStageID:   to.ID,
			Days:        d.days,
			Direction:   domain.DirectionBefore,
			IsActive:    true,
		}
		if err = s.rules.Upsert(ctx, rule); err != nil {
			return nil, fmt.Errorf("initializing lead times: %w", err)
		}
		result.Created++
	}

	fields["created"] = result.Created
	fields["skipped"] = len(result.Skipped)
	return result, nil
}

func (s *leadTimeService) Warnings(ctx context.Context) ([]string, error) {
	ruleRows, err := s.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lead-time rules: %w", err)
	}
	ruleVals := make([]domain.LeadTimeRule, len(ruleRows))
	for i, r := range ruleRows {
		ruleVals[i] = *r
	}

	pairs := scheduler.NewRegistry(ruleVals).Ambiguities()
	if len(pairs) == 0 {
		return nil, nil
	}

	// Label by raw stage list, not a validated pipeline: ambiguity
	// diagnostics must stay available while the pipeline itself is broken.
	stageRows, err := s.stages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stages: %w", err)
	}
	names := make(map[int64]string, len(stageRows))
	for _, st := range stageRows {
		names[st.ID] = st.Name
	}
	label := func(id int64) string {
		if name, ok := names[id]; ok {
			return name
		}
		return fmt.Sprintf("stage %d", id)
	}

	warnings := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		warnings = append(warnings, formatAmbiguity(label(pair.FromStageID), label(pair.ToStageID)))
	}
	return warnings, nil
}
