package domain

// Turn describes one attacker/defender exchange within a SMASH round.
// A turn is replaced wholesale by the next TurnStart event, never mutated.
// Role assignment always comes from the server; successive turns usually
// invert attacker and defender but the client must not assume alternation.
type Turn struct {
	Number           int          `json:"turnNumber"`
	Attacker         TeamSide     `json:"attackerTeam"`
	Defender         TeamSide     `json:"defenderTeam"`
	Variant          RoundVariant `json:"roundType"`
	HasConcertation  bool         `json:"hasConcertation"`
}

// Difficulty grades a candidate question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// CandidateQuestion is one entry of the server-provided question pool.
// Immutable once fetched. The expected answer is only ever shown to the
// attacker who selected the candidate.
type CandidateQuestion struct {
	ID             string     `json:"id"`
	Text           string     `json:"text"`
	ExpectedAnswer string     `json:"answer"`
	Difficulty     Difficulty `json:"difficulty"`
}
