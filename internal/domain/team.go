package domain

// TeamSide identifies one of the two teams in a match
type TeamSide string

const (
	TeamA TeamSide = "A"
	TeamB TeamSide = "B"
)

// String returns the string representation of the side
func (t TeamSide) String() string {
	return string(t)
}

// Valid returns true if t is one of the two known sides
func (t TeamSide) Valid() bool {
	return t == TeamA || t == TeamB
}

// Opponent returns the other side
func (t TeamSide) Opponent() TeamSide {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// RoundVariant distinguishes the two SMASH round flavours
type RoundVariant string

const (
	// VariantSmashA allows a concertation step and lets the attacker choose
	// between a custom question and the candidate pool.
	VariantSmashA RoundVariant = "SMASH_A"

	// VariantSmashB has no concertation and always uses the candidate pool.
	VariantSmashB RoundVariant = "SMASH_B"
)

// String returns the string representation of the variant
func (v RoundVariant) String() string {
	return string(v)
}

// ForcesPool returns true if the variant pins question sourcing to the
// candidate pool for every turn
func (v RoundVariant) ForcesPool() bool {
	return v == VariantSmashB
}

// QuestionMode is how the attacker sources the question for a turn.
// The zero value means the mode has not been chosen yet.
type QuestionMode string

const (
	ModeUnset      QuestionMode = ""
	ModeCustom     QuestionMode = "CUSTOM"
	ModePredefined QuestionMode = "PREDEFINED"
)

// String returns the string representation of the mode
func (m QuestionMode) String() string {
	return string(m)
}
