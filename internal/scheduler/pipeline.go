package scheduler

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/fabline/internal/domain"
)

// Pipeline is a validated, immutable snapshot of the stage configuration,
// held in ascending OrderIndex order. Build one per request from the
// persisted stages; never share a mutable instance across edits.
type Pipeline struct {
	stages []domain.Stage
	byID   map[int64]int
	byName map[string]int
	defIdx int
	finIdx int
}

// NewPipeline sorts the stages by OrderIndex and validates the
// configuration: at least one stage, unique order indexes, unique names and
// IDs, exactly one default stage and exactly one final stage. Any violation
// is a *ConfigError; the pipeline fails fast instead of silently picking a
// candidate.
func NewPipeline(stages []domain.Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, &ConfigError{Reason: "pipeline has no stages"}
	}

	ordered := make([]domain.Stage, len(stages))
	copy(ordered, stages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	p := &Pipeline{
		stages: ordered,
		byID:   make(map[int64]int, len(ordered)),
		byName: make(map[string]int, len(ordered)),
		defIdx: -1,
		finIdx: -1,
	}

	orderSeen := make(map[int]string, len(ordered))
	for i, s := range ordered {
		if prev, dup := orderSeen[s.OrderIndex]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("stages %q and %q share order index %d", prev, s.Name, s.OrderIndex)}
		}
		orderSeen[s.OrderIndex] = s.Name

		if _, dup := p.byID[s.ID]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate stage ID %d", s.ID)}
		}
		p.byID[s.ID] = i

		if _, dup := p.byName[s.Name]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate stage name %q", s.Name)}
		}
		p.byName[s.Name] = i

		if s.IsDefault {
			if p.defIdx >= 0 {
				return nil, &ConfigError{Reason: fmt.Sprintf("stages %q and %q are both marked default", p.stages[p.defIdx].Name, s.Name)}
			}
			p.defIdx = i
		}
		if s.IsFinal {
			if p.finIdx >= 0 {
				return nil, &ConfigError{Reason: fmt.Sprintf("stages %q and %q are both marked final", p.stages[p.finIdx].Name, s.Name)}
			}
			p.finIdx = i
		}
	}

	if p.defIdx < 0 {
		return nil, &ConfigError{Reason: "pipeline has no default stage"}
	}
	if p.finIdx < 0 {
		return nil, &ConfigError{Reason: "pipeline has no final stage"}
	}

	return p, nil
}

// Stages returns the stages in ascending OrderIndex order.
// The returned slice is shared; callers must not modify it.
func (p *Pipeline) Stages() []domain.Stage {
	return p.stages
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Find looks a stage up by its stable name.
func (p *Pipeline) Find(name string) (domain.Stage, bool) {
	i, ok := p.byName[name]
	if !ok {
		return domain.Stage{}, false
	}
	return p.stages[i], true
}

// ByID looks a stage up by ID.
func (p *Pipeline) ByID(id int64) (domain.Stage, bool) {
	i, ok := p.byID[id]
	if !ok {
		return domain.Stage{}, false
	}
	return p.stages[i], true
}

// IndexOf returns the position of the stage with the given ID in pipeline
// order.
func (p *Pipeline) IndexOf(id int64) (int, bool) {
	i, ok := p.byID[id]
	return i, ok
}

// DefaultStage returns the stage new jobs start in.
func (p *Pipeline) DefaultStage() domain.Stage {
	return p.stages[p.defIdx]
}

// FinalStage returns the terminal stage of the pipeline.
func (p *Pipeline) FinalStage() domain.Stage {
	return p.stages[p.finIdx]
}
