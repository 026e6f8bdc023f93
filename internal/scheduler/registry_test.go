package scheduler

import (
	"testing"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRule(id, from, to int64, days int, dir domain.Direction, active bool) domain.LeadTimeRule {
	return domain.LeadTimeRule{
		ID:          id,
		FromStageID: from,
		ToStageID:   to,
		Days:        days,
		Direction:   dir,
		IsActive:    active,
	}
}

func beforeRule(id, from, to int64, days int) domain.LeadTimeRule {
	return makeRule(id, from, to, days, domain.DirectionBefore, true)
}

// chainRules is the canonical rule set over canonicalStages: assembly three
// working days before delivery, machining two before assembly, nesting two
// before machining.
func chainRules() []domain.LeadTimeRule {
	return []domain.LeadTimeRule{
		beforeRule(1, 3, 4, 3),
		beforeRule(2, 2, 3, 2),
		beforeRule(3, 1, 2, 2),
	}
}

func TestRegistry_RuleLookup(t *testing.T) {
	reg := NewRegistry(chainRules())

	rule, ok := reg.Rule(3, 4)
	require.True(t, ok)
	assert.Equal(t, 3, rule.Days)

	_, ok = reg.Rule(4, 3)
	assert.False(t, ok, "lookup is directed; the reverse pair must not match")

	_, ok = reg.Rule(1, 4)
	assert.False(t, ok, "no rule registered for this pair")
}

func TestRegistry_FirstInsertedRuleWins(t *testing.T) {
	reg := NewRegistry([]domain.LeadTimeRule{
		beforeRule(1, 3, 4, 3),
		beforeRule(2, 3, 4, 7),
	})

	rule, ok := reg.Rule(3, 4)
	require.True(t, ok)
	assert.Equal(t, int64(1), rule.ID, "duplicate pairs resolve to the first rule in insertion order")
	assert.Equal(t, 3, rule.Days)
}

func TestRegistry_SkipsInactiveRules(t *testing.T) {
	reg := NewRegistry([]domain.LeadTimeRule{
		makeRule(1, 3, 4, 3, domain.DirectionBefore, false),
		beforeRule(2, 3, 4, 7),
	})

	rule, ok := reg.Rule(3, 4)
	require.True(t, ok)
	assert.Equal(t, int64(2), rule.ID, "inactive rules are invisible to lookups")
}

func TestRegistry_SkipsAfterDirection(t *testing.T) {
	reg := NewRegistry([]domain.LeadTimeRule{
		makeRule(1, 3, 4, 3, domain.DirectionAfter, true),
	})

	_, ok := reg.Rule(3, 4)
	assert.False(t, ok, "only before-rules participate in backward scheduling")
}

func TestRegistry_Ambiguities(t *testing.T) {
	reg := NewRegistry([]domain.LeadTimeRule{
		beforeRule(1, 3, 4, 3),
		beforeRule(2, 2, 3, 2),
		beforeRule(3, 3, 4, 7),
		beforeRule(4, 1, 2, 2),
		beforeRule(5, 1, 2, 4),
	})

	got := reg.Ambiguities()
	assert.Equal(t, []RulePair{
		{FromStageID: 3, ToStageID: 4},
		{FromStageID: 1, ToStageID: 2},
	}, got, "only duplicated pairs reported, in first-seen order")
}

func TestRegistry_Ambiguities_IgnoresInactiveAndAfter(t *testing.T) {
	reg := NewRegistry([]domain.LeadTimeRule{
		beforeRule(1, 3, 4, 3),
		makeRule(2, 3, 4, 7, domain.DirectionBefore, false),
		makeRule(3, 3, 4, 5, domain.DirectionAfter, true),
	})

	assert.Empty(t, reg.Ambiguities(), "a single active before-rule per pair is unambiguous")
}

func TestRegistry_Validate(t *testing.T) {
	pipeline := mustPipeline(t, canonicalStages())

	tests := []struct {
		name       string
		rules      []domain.LeadTimeRule
		wantReason string
	}{
		{
			name:  "valid chain",
			rules: chainRules(),
		},
		{
			name:  "zero days allowed",
			rules: []domain.LeadTimeRule{beforeRule(1, 3, 4, 0)},
		},
		{
			name:       "same stage on both sides",
			rules:      []domain.LeadTimeRule{beforeRule(1, 3, 3, 2)},
			wantReason: "on both sides",
		},
		{
			name:       "unknown from stage",
			rules:      []domain.LeadTimeRule{beforeRule(1, 99, 4, 2)},
			wantReason: "unknown from-stage",
		},
		{
			name:       "unknown to stage",
			rules:      []domain.LeadTimeRule{beforeRule(1, 3, 99, 2)},
			wantReason: "unknown to-stage",
		},
		{
			name:       "negative days",
			rules:      []domain.LeadTimeRule{beforeRule(1, 3, 4, -1)},
			wantReason: "negative days",
		},
		{
			name:       "inactive rules validated too",
			rules:      []domain.LeadTimeRule{makeRule(1, 99, 4, 2, domain.DirectionBefore, false)},
			wantReason: "unknown from-stage",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewRegistry(tc.rules).Validate(pipeline)
			if tc.wantReason == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, cfgErr.Reason, tc.wantReason)
		})
	}
}

func TestRegistry_DoesNotAliasInput(t *testing.T) {
	rules := chainRules()
	reg := NewRegistry(rules)

	rules[0].Days = 99

	rule, ok := reg.Rule(3, 4)
	require.True(t, ok)
	assert.Equal(t, 3, rule.Days, "registry snapshot must not share the caller's slice")
}
