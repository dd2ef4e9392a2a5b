package domain

// EventType represents the wire type of an inbound match event
type EventType string

const (
	EventTurnStart       EventType = "SMASH_TURN_START"
	EventConcertation    EventType = "SMASH_CONCERTATION"
	EventTopPressed      EventType = "SMASH_TOP"
	EventQuestionSubmit  EventType = "SMASH_QUESTION_SUBMIT"
	EventValidatePrompt  EventType = "SMASH_VALIDATE_PROMPT"
	EventQuestionValid   EventType = "SMASH_QUESTION_VALID"
	EventQuestionInvalid EventType = "SMASH_QUESTION_INVALID"
	EventAnswerPrompt    EventType = "SMASH_ANSWER_PROMPT"
	EventAnswerSubmit    EventType = "SMASH_ANSWER_SUBMIT"
	EventResultPrompt    EventType = "SMASH_RESULT_PROMPT"
	EventAnswerCorrect   EventType = "SMASH_ANSWER_CORRECT"
	EventAnswerIncorrect EventType = "SMASH_ANSWER_INCORRECT"
	EventTimeout         EventType = "SMASH_TIMEOUT"
	EventScoreUpdated    EventType = "SCORE_UPDATED"
	EventRoundEnded      EventType = "ROUND_ENDED"
	EventMatchEnded      EventType = "MATCH_ENDED"
)

// Event is the closed set of inbound protocol events the engine consumes.
// Each concrete type below corresponds to exactly one EventType; the
// coordinator dispatches over them with an exhaustive type switch, so
// adding or renaming an event is a compile-time-checked change.
type Event interface {
	Type() EventType
	Match() string
}

// TurnStart announces a new turn and its role assignment
type TurnStart struct {
	MatchID         string       `json:"matchId"`
	TurnNumber      int          `json:"turnNumber"`
	Attacker        TeamSide     `json:"attackerTeam"`
	Defender        TeamSide     `json:"defenderTeam"`
	Variant         RoundVariant `json:"roundType"`
	HasConcertation bool         `json:"hasConcertation"`
}

func (e TurnStart) Type() EventType { return EventTurnStart }
func (e TurnStart) Match() string   { return e.MatchID }

// Concertation opens the deliberation step for the attacking team
type Concertation struct {
	MatchID  string   `json:"matchId"`
	Attacker TeamSide `json:"attackerTeam"`
}

func (e Concertation) Type() EventType { return EventConcertation }
func (e Concertation) Match() string   { return e.MatchID }

// TopPressed signals the attacker is ready; the question countdown starts
type TopPressed struct {
	MatchID   string `json:"matchId"`
	TimeoutMs int    `json:"timeoutMs"`
}

func (e TopPressed) Type() EventType { return EventTopPressed }
func (e TopPressed) Match() string   { return e.MatchID }

// QuestionSubmitted carries the question the attacker committed to
type QuestionSubmitted struct {
	MatchID      string `json:"matchId"`
	QuestionText string `json:"questionText"`
	TimeoutMs    int    `json:"timeoutMs"`
}

func (e QuestionSubmitted) Type() EventType { return EventQuestionSubmit }
func (e QuestionSubmitted) Match() string   { return e.MatchID }

// ValidatePrompt is an alternative entry into the VALIDATE phase carrying
// the same material as QuestionSubmitted. Some backend revisions emit one,
// some the other; both are honored.
type ValidatePrompt struct {
	MatchID      string `json:"matchId"`
	QuestionText string `json:"questionText"`
	TimeoutMs    int    `json:"timeoutMs"`
}

func (e ValidatePrompt) Type() EventType { return EventValidatePrompt }
func (e ValidatePrompt) Match() string   { return e.MatchID }

// QuestionValid confirms the defender accepted the question
type QuestionValid struct {
	MatchID string `json:"matchId"`
}

func (e QuestionValid) Type() EventType { return EventQuestionValid }
func (e QuestionValid) Match() string   { return e.MatchID }

// QuestionInvalid ends the turn with an invalid-question ruling
type QuestionInvalid struct {
	MatchID   string   `json:"matchId"`
	Reason    string   `json:"reason,omitempty"`
	Validator TeamSide `json:"validatorTeam"`
	Points    int      `json:"pointsAwarded"`
}

func (e QuestionInvalid) Type() EventType { return EventQuestionInvalid }
func (e QuestionInvalid) Match() string   { return e.MatchID }

// AnswerPrompt is an alternative entry into the ANSWER phase that also
// (re)arms the answer countdown
type AnswerPrompt struct {
	MatchID   string `json:"matchId"`
	TimeoutMs int    `json:"timeoutMs"`
}

func (e AnswerPrompt) Type() EventType { return EventAnswerPrompt }
func (e AnswerPrompt) Match() string   { return e.MatchID }

// AnswerSubmitted carries the defender's answer
type AnswerSubmitted struct {
	MatchID    string `json:"matchId"`
	AnswerText string `json:"answerText"`
}

func (e AnswerSubmitted) Type() EventType { return EventAnswerSubmit }
func (e AnswerSubmitted) Match() string   { return e.MatchID }

// ResultPrompt is an alternative entry into the RESULT phase
type ResultPrompt struct {
	MatchID    string `json:"matchId"`
	AnswerText string `json:"answerText"`
}

func (e ResultPrompt) Type() EventType { return EventResultPrompt }
func (e ResultPrompt) Match() string   { return e.MatchID }

// AnswerCorrect decides the turn for the attacker's question being answered
// correctly, carrying the authoritative scores
type AnswerCorrect struct {
	MatchID string    `json:"matchId"`
	Points  int       `json:"pointsAwarded"`
	Winner  *TeamSide `json:"winnerTeam,omitempty"`
	ScoreA  int       `json:"scoreTeamA"`
	ScoreB  int       `json:"scoreTeamB"`
}

func (e AnswerCorrect) Type() EventType { return EventAnswerCorrect }
func (e AnswerCorrect) Match() string   { return e.MatchID }

// AnswerIncorrect decides the turn against the defender, carrying the
// authoritative scores
type AnswerIncorrect struct {
	MatchID string `json:"matchId"`
	ScoreA  int    `json:"scoreTeamA"`
	ScoreB  int    `json:"scoreTeamB"`
}

func (e AnswerIncorrect) Type() EventType { return EventAnswerIncorrect }
func (e AnswerIncorrect) Match() string   { return e.MatchID }

// PhaseTimedOut reports a server-decided timeout for the named phase
type PhaseTimedOut struct {
	MatchID   string    `json:"matchId"`
	Phase     Phase     `json:"phase"`
	FaultTeam TeamSide  `json:"faultTeam"`
	Winner    *TeamSide `json:"winnerTeam,omitempty"`
	Points    int       `json:"pointsAwarded"`
	ScoreA    int       `json:"scoreTeamA"`
	ScoreB    int       `json:"scoreTeamB"`
}

func (e PhaseTimedOut) Type() EventType { return EventTimeout }
func (e PhaseTimedOut) Match() string   { return e.MatchID }

// ScoreUpdated is an out-of-band score correction independent of a turn
// outcome
type ScoreUpdated struct {
	MatchID string `json:"matchId"`
	ScoreA  int    `json:"scoreA"`
	ScoreB  int    `json:"scoreB"`
}

func (e ScoreUpdated) Type() EventType { return EventScoreUpdated }
func (e ScoreUpdated) Match() string   { return e.MatchID }

// RoundEnded is the server-driven end of the SMASH round
type RoundEnded struct {
	MatchID string `json:"matchId"`
}

func (e RoundEnded) Type() EventType { return EventRoundEnded }
func (e RoundEnded) Match() string   { return e.MatchID }

// MatchEnded is the server-driven end of the whole match
type MatchEnded struct {
	MatchID string `json:"matchId"`
}

func (e MatchEnded) Type() EventType { return EventMatchEnded }
func (e MatchEnded) Match() string   { return e.MatchID }
