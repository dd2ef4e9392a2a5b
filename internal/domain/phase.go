package domain

// Phase represents the current phase of a SMASH turn
type Phase string

const (
	PhaseTurnStart    Phase = "TURN_START"   // New turn announced, roles assigned
	PhaseConcertation Phase = "CONCERTATION" // Attacking team deliberates (SMASH_A only)
	PhaseQuestion     Phase = "QUESTION"     // Attacker writes or picks a question
	PhaseValidate     Phase = "VALIDATE"     // Defender validates the question
	PhaseAnswer       Phase = "ANSWER"       // Defender answers
	PhaseResult       Phase = "RESULT"       // Attacker judges the answer
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// Valid returns true if p is one of the known turn phases
func (p Phase) Valid() bool {
	switch p {
	case PhaseTurnStart, PhaseConcertation, PhaseQuestion, PhaseValidate, PhaseAnswer, PhaseResult:
		return true
	}
	return false
}
