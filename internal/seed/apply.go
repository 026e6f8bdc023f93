package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
)

// Result summarizes what Apply changed.
type Result struct {
	StagesCreated   int
	StagesUpdated   int
	RulesCreated    int
	RulesUpdated    int
	HolidaysAdded   int
	HolidaysSkipped int
}

// Apply writes the seed file into the database inside a single transaction.
// Stages are matched by name and rules by stage pair, so applying the same
// file twice converges instead of duplicating. Holidays already present on
// their date are skipped and counted in HolidaysSkipped.
func Apply(ctx context.Context, uow db.UnitOfWork, f *File) (*Result, error) {
	res := &Result{}

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stageRepo := repository.NewSQLiteStageRepo(tx)
		ruleRepo := repository.NewSQLiteLeadTimeRepo(tx)
		holidayRepo := repository.NewSQLiteHolidayRepo(tx)

		if err := applyStages(ctx, stageRepo, f.Stages, res); err != nil {
			return err
		}

		ids, err := stageIDsByName(ctx, stageRepo)
		if err != nil {
			return err
		}

		if err := applyRules(ctx, ruleRepo, f.Rules, ids, res); err != nil {
			return err
		}
		return applyHolidays(ctx, holidayRepo, f.Holidays, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func applyStages(ctx context.Context, repo repository.StageRepo, stages []StageSeed, res *Result) error {
	for i, s := range stages {
		existing, err := repo.GetByName(ctx, s.Name)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("looking up stage %q: %w", s.Name, err)
		}

		cols := make([]domain.TargetColumn, 0, len(s.TargetColumns))
		for _, tc := range s.TargetColumns {
			cols = append(cols, domain.TargetColumn{
				Column: domain.DateColumn(tc.Column),
				Color:  tc.Color,
			})
		}

		// Stage order in the pipeline is list order in the file.
		if existing == nil {
			stage := &domain.Stage{
				Name:          s.Name,
				DisplayName:   s.DisplayName,
				OrderIndex:    i,
				IsDefault:     s.Default,
				IsFinal:       s.Final,
				TargetColumns: cols,
			}
			if err := repo.Create(ctx, stage); err != nil {
				return fmt.Errorf("creating stage %q: %w", s.Name, err)
			}
			res.StagesCreated++
			continue
		}

		existing.DisplayName = s.DisplayName
		existing.OrderIndex = i
		existing.IsDefault = s.Default
		existing.IsFinal = s.Final
		if err := repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("updating stage %q: %w", s.Name, err)
		}
		if len(cols) > 0 {
			if err := repo.ReplaceTargetColumns(ctx, existing.ID, cols); err != nil {
				return fmt.Errorf("replacing target columns for %q: %w", s.Name, err)
			}
		}
		res.StagesUpdated++
	}
	return nil
}

func stageIDsByName(ctx context.Context, repo repository.StageRepo) (map[string]int64, error) {
	stages, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	ids := make(map[string]int64, len(stages))
	for _, s := range stages {
		ids[s.Name] = s.ID
	}
	return ids, nil
}

func applyRules(ctx context.Context, repo repository.LeadTimeRepo, rules []RuleSeed, ids map[string]int64, res *Result) error {
	for i, r := range rules {
		fromID, ok := ids[r.From]
		if !ok {
			return fmt.Errorf("lead_times[%d].from: unknown stage %q", i, r.From)
		}
		toID, ok := ids[r.To]
		if !ok {
			return fmt.Errorf("lead_times[%d].to: unknown stage %q", i, r.To)
		}

		direction := domain.DirectionBefore
		if r.Direction != "" {
			direction = domain.Direction(r.Direction)
		}
		active := domain.BoolFromPtrWithDefault(true, r.Active)

		_, err := repo.GetByPair(ctx, fromID, toID)
		created := errors.Is(err, repository.ErrNotFound)
		if err != nil && !created {
			return fmt.Errorf("looking up rule %s->%s: %w", r.From, r.To, err)
		}

		rule := &domain.LeadTimeRule{
			FromStageID: fromID,
			ToStageID:   toID,
			Days:        r.Days,
			Direction:   direction,
			IsActive:    active,
		}
		if err := repo.Upsert(ctx, rule); err != nil {
			return fmt.Errorf("applying rule %s->%s: %w", r.From, r.To, err)
		}
		if created {
			res.RulesCreated++
		} else {
			res.RulesUpdated++
		}
	}
	return nil
}

func applyHolidays(ctx context.Context, repo repository.HolidayRepo, holidays []HolidaySeed, res *Result) error {
	for i, h := range holidays {
		date, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return fmt.Errorf("holidays[%d].date: %w", i, err)
		}
		public := domain.BoolFromPtrWithDefault(true, h.Public)
		holiday := &domain.Holiday{Date: date, Name: h.Name, IsPublic: public}
		if err := repo.Add(ctx, holiday); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				res.HolidaysSkipped++
				continue
			}
			return fmt.Errorf("adding holiday %s: %w", h.Date, err)
		}
		res.HolidaysAdded++
	}
	return nil
}
