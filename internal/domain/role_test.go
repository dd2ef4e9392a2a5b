package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowsAttackerActions(t *testing.T) {
	attacker, defender := TeamA, TeamB

	tests := []struct {
		name   string
		action Action
		phase  Phase
	}{
		{"press top in concertation", ActionPressTop, PhaseConcertation},
		{"submit question in question phase", ActionSubmitQuestion, PhaseQuestion},
		{"submit result in result phase", ActionSubmitResult, PhaseResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Allows(attacker, tt.phase, attacker, defender, tt.action))
			assert.False(t, Allows(defender, tt.phase, attacker, defender, tt.action),
				"defender must not perform attacker action %s", tt.action)
		})
	}
}

func TestAllowsDefenderActions(t *testing.T) {
	attacker, defender := TeamB, TeamA

	tests := []struct {
		name   string
		action Action
		phase  Phase
	}{
		{"validate in validate phase", ActionSubmitValidation, PhaseValidate},
		{"answer in answer phase", ActionSubmitAnswer, PhaseAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Allows(defender, tt.phase, attacker, defender, tt.action))
			assert.False(t, Allows(attacker, tt.phase, attacker, defender, tt.action),
				"attacker must not perform defender action %s", tt.action)
		})
	}
}

func TestAllowsRejectsWrongPhase(t *testing.T) {
	attacker, defender := TeamA, TeamB
	allPhases := []Phase{
		PhaseTurnStart, PhaseConcertation, PhaseQuestion,
		PhaseValidate, PhaseAnswer, PhaseResult,
	}
	allActions := []Action{
		ActionPressTop, ActionSubmitQuestion, ActionSubmitValidation,
		ActionSubmitAnswer, ActionSubmitResult,
	}

	// Every action has exactly one phase in which anyone at all may act.
	for _, action := range allActions {
		allowed, ok := AllowedPhase(action)
		require.True(t, ok, "action %s has no phase", action)

		for _, phase := range allPhases {
			anyAllowed := Allows(attacker, phase, attacker, defender, action) ||
				Allows(defender, phase, attacker, defender, action)
			if phase == allowed {
				assert.True(t, anyAllowed, "action %s must be allowed in %s", action, phase)
			} else {
				assert.False(t, anyAllowed, "action %s leaked into phase %s", action, phase)
			}
		}
	}
}

func TestAllowsUnknownAction(t *testing.T) {
	assert.False(t, Allows(TeamA, PhaseQuestion, TeamA, TeamB, Action("DANCE")))

	_, ok := AllowedPhase(Action("DANCE"))
	assert.False(t, ok)
}

func TestAllowsFollowsRoleAssignment(t *testing.T) {
	// Same side, opposite assignments: authorization tracks the role, not
	// the team identity.
	assert.True(t, Allows(TeamA, PhaseQuestion, TeamA, TeamB, ActionSubmitQuestion))
	assert.False(t, Allows(TeamA, PhaseQuestion, TeamB, TeamA, ActionSubmitQuestion))
	assert.True(t, Allows(TeamA, PhaseAnswer, TeamB, TeamA, ActionSubmitAnswer))
	assert.False(t, Allows(TeamA, PhaseAnswer, TeamA, TeamB, ActionSubmitAnswer))
}
