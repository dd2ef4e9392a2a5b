package domain

// OutcomeKind classifies how a turn was decided
type OutcomeKind string

const (
	OutcomeCorrect   OutcomeKind = "CORRECT"
	OutcomeIncorrect OutcomeKind = "INCORRECT"
	OutcomeTimeout   OutcomeKind = "TIMEOUT"
	OutcomeInvalid   OutcomeKind = "INVALID"
)

// Outcome describes the most recent decided result for display.
// Winner is nil when no side was awarded the turn.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
	Points  int         `json:"pointsAwarded"`
	Winner  *TeamSide   `json:"winner,omitempty"`
}

// ScoreState holds the authoritative running scores and the last outcome.
// Scores are always replaced wholesale from server events; the client
// never applies deltas locally.
type ScoreState struct {
	ScoreA     int      `json:"scoreA"`
	ScoreB     int      `json:"scoreB"`
	LastResult *Outcome `json:"lastResult,omitempty"`
}
