package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
)

// ComputeUpstreamDates walks the target stages backward from an anchor date
// (normally the delivery date) and returns a date for every stage it can
// resolve through the lead-time registry.
//
// Targets are processed in descending pipeline order (the stage closest to
// the anchor first) with a moving reference that starts at the anchor.
// Each stage first tries its rule against the current reference, then
// against the original anchor; a resolved stage becomes the reference for
// the next, further-upstream stage. This chaining is the defining property:
// nesting is computed relative to machining when machining resolved, not
// independently against delivery.
//
// Stages with no applicable rule are simply absent from the result, a
// best-effort outcome rather than an error. Unknown anchor or target stage
// IDs are rejected with ErrUnknownStage before any computation.
//
// The anchor date is taken as given even when it is not a working day; only
// computed dates are constrained to land on working days.
func ComputeUpstreamDates(
	p *Pipeline,
	reg *Registry,
	cal *Calendar,
	anchorStageID int64,
	anchorDate time.Time,
	targetStageIDs []int64,
) (map[int64]time.Time, error) {
	if _, ok := p.IndexOf(anchorStageID); !ok {
		return nil, fmt.Errorf("anchor stage %d: %w", anchorStageID, ErrUnknownStage)
	}

	targets := make([]int64, 0, len(targetStageIDs))
	for _, id := range targetStageIDs {
		if _, ok := p.IndexOf(id); !ok {
			return nil, fmt.Errorf("target stage %d: %w", id, ErrUnknownStage)
		}
		if id == anchorStageID {
			// The anchor's own date is the input; nothing to compute.
			continue
		}
		targets = append(targets, id)
	}

	sort.SliceStable(targets, func(i, j int) bool {
		a, _ := p.IndexOf(targets[i])
		b, _ := p.IndexOf(targets[j])
		return a > b
	})

	result := make(map[int64]time.Time, len(targets))
	refID, refDate := anchorStageID, anchorDate

	for _, id := range targets {
		date, ok := resolveStageDate(reg, cal, id, refID, refDate, anchorStageID, anchorDate)
		if !ok {
			continue
		}
		result[id] = date
		refID, refDate = id, date
	}

	return result, nil
}

// resolveStageDate resolves one stage against the moving reference, falling
// back to the original anchor when the reference pair has no usable rule.
// A rule resolves only when Days > 0; zero-day rules never produce a date.
func resolveStageDate(
	reg *Registry,
	cal *Calendar,
	stageID, refID int64,
	refDate time.Time,
	anchorID int64,
	anchorDate time.Time,
) (time.Time, bool) {
	if rule, ok := reg.Rule(stageID, refID); ok && rule.Days > 0 {
		return cal.SubtractWorkingDays(refDate, rule.Days), true
	}
	if refID != anchorID {
		if rule, ok := reg.Rule(stageID, anchorID); ok && rule.Days > 0 {
			return cal.SubtractWorkingDays(anchorDate, rule.Days), true
		}
	}
	return time.Time{}, false
}

// UpstreamTargets returns the IDs of every stage strictly before the anchor
// in pipeline order that owns a job date column. This is the target set the
// surrounding services schedule when a delivery date is known.
func UpstreamTargets(p *Pipeline, anchorStageID int64) []int64 {
	anchorIdx, ok := p.IndexOf(anchorStageID)
	if !ok {
		return nil
	}
	var ids []int64
	for i, s := range p.Stages() {
		if i >= anchorIdx {
			break
		}
		if _, dated := domain.StageDateColumns[s.Name]; dated {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
