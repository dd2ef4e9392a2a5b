package domain

// Action is a player intent the local client may try to send
type Action string

const (
	ActionPressTop         Action = "PRESS_TOP"
	ActionSubmitQuestion   Action = "SUBMIT_QUESTION"
	ActionSubmitValidation Action = "SUBMIT_VALIDATION"
	ActionSubmitAnswer     Action = "SUBMIT_ANSWER"
	ActionSubmitResult     Action = "SUBMIT_RESULT"
)

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// authRule names the phase an action belongs to and whether it is an
// attacker action (otherwise it is a defender action).
type authRule struct {
	phase    Phase
	attacker bool
}

// authTable is the single source of truth for which (phase, role) pair is
// allowed to perform each action. Authorization checks must go through
// Allows rather than re-encoding this mapping elsewhere.
var authTable = map[Action]authRule{
	ActionPressTop:         {phase: PhaseConcertation, attacker: true},
	ActionSubmitQuestion:   {phase: PhaseQuestion, attacker: true},
	ActionSubmitValidation: {phase: PhaseValidate, attacker: false},
	ActionSubmitAnswer:     {phase: PhaseAnswer, attacker: false},
	ActionSubmitResult:     {phase: PhaseResult, attacker: true},
}

// Allows returns true if the participant on mySide may perform the action
// in the given phase, with the given attacker/defender assignment.
func Allows(mySide TeamSide, phase Phase, attacker, defender TeamSide, action Action) bool {
	rule, ok := authTable[action]
	if !ok {
		return false
	}
	if rule.phase != phase {
		return false
	}
	if rule.attacker {
		return mySide == attacker
	}
	return mySide == defender
}

// AllowedPhase returns the phase in which the action is authorized.
// The second return is false for unknown actions.
func AllowedPhase(action Action) (Phase, bool) {
	rule, ok := authTable[action]
	if !ok {
		return "", false
	}
	return rule.phase, true
}
