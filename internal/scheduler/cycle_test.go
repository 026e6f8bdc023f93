package scheduler

import (
	"testing"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_MovesToNextStage(t *testing.T) {
	p := mustPipeline(t, canonicalStages())

	next, err := Advance(p, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StageMachining, next.Name)

	next, err = Advance(p, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.StageAssembly, next.Name)
}

func TestAdvance_WrapsFromFinalToFirst(t *testing.T) {
	p := mustPipeline(t, canonicalStages())

	next, err := Advance(p, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.StageNesting, next.Name, "advancing a delivered job starts it over")
	assert.True(t, next.IsDefault)
}

func TestAdvance_FullCycleReturnsToStart(t *testing.T) {
	p := mustPipeline(t, canonicalStages())

	for _, start := range p.Stages() {
		current := start
		for i := 0; i < p.Len(); i++ {
			next, err := Advance(p, current.ID)
			require.NoError(t, err)
			current = next
		}
		assert.Equal(t, start.ID, current.ID, "advancing %d times from %q must close the cycle", p.Len(), start.Name)
	}
}

func TestAdvance_SingleStagePipeline(t *testing.T) {
	p := mustPipeline(t, []domain.Stage{
		makeStage(1, domain.StageDelivery, 0, true, true),
	})

	next, err := Advance(p, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.ID, "a one-stage pipeline advances onto itself")
}

func TestAdvance_UnknownStage(t *testing.T) {
	p := mustPipeline(t, canonicalStages())

	_, err := Advance(p, 99)
	require.ErrorIs(t, err, ErrUnknownStage)
	assert.ErrorContains(t, err, "current stage 99")
}
