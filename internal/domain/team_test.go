package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamSideOpponent(t *testing.T) {
	assert.Equal(t, TeamB, TeamA.Opponent())
	assert.Equal(t, TeamA, TeamB.Opponent())
}

func TestTeamSideValid(t *testing.T) {
	assert.True(t, TeamA.Valid())
	assert.True(t, TeamB.Valid())
	assert.False(t, TeamSide("").Valid())
	assert.False(t, TeamSide("C").Valid())
}

func TestRoundVariantForcesPool(t *testing.T) {
	assert.False(t, VariantSmashA.ForcesPool())
	assert.True(t, VariantSmashB.ForcesPool())
}

func TestPhaseValid(t *testing.T) {
	for _, p := range []Phase{
		PhaseTurnStart, PhaseConcertation, PhaseQuestion,
		PhaseValidate, PhaseAnswer, PhaseResult,
	} {
		assert.True(t, p.Valid(), "phase %s", p)
	}
	assert.False(t, Phase("LOBBY").Valid())
}
