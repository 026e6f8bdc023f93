package scheduler

import (
	"fmt"

	"github.com/alexanderramin/fabline/internal/domain"
)

// Advance returns the stage after current in pipeline order. Advancing past
// the final stage wraps back to the first: the pipeline is cyclic, with no
// absorbing terminal state, so a delivered job can be reset and reworked by
// advancing once more. An unknown currentStageID is an input error and is
// never mapped to the default stage.
func Advance(p *Pipeline, currentStageID int64) (domain.Stage, error) {
	idx, ok := p.IndexOf(currentStageID)
	if !ok {
		return domain.Stage{}, fmt.Errorf("current stage %d: %w", currentStageID, ErrUnknownStage)
	}
	return p.stages[(idx+1)%p.Len()], nil
}
