package engine

import (
	"smashduel/internal/domain"
)

// Snapshot is a read-only, consistent view of the engine state for
// rendering. The presentation layer always renders from one snapshot;
// it never reaches into the coordinator's mutable state.
type Snapshot struct {
	MatchID string
	MySide  domain.TeamSide
	Active  bool

	Turn  domain.Turn
	Phase domain.Phase

	// Detail carries only the fields meaningful in the current phase.
	// Its concrete type always corresponds to Phase.
	Detail PhaseDetail

	Scores domain.ScoreState

	RemainingMs int64
	DurationMs  int64
}

// PhaseDetail is the closed set of phase-scoped snapshot payloads. Code
// that needs phase-specific material type-switches over it, so a field
// that does not apply to the current phase simply does not exist.
type PhaseDetail interface {
	isPhaseDetail()
}

// TurnStartDetail is the payload between a turn announcement and the
// first phase event
type TurnStartDetail struct{}

// ConcertationDetail is the payload while the attacking team deliberates
type ConcertationDetail struct{}

// QuestionDetail is the attacker's question sourcing material. For the
// defender every field is zero: the pool and any selection are not
// theirs to see.
type QuestionDetail struct {
	Mode      domain.QuestionMode
	PoolState PoolState
	Pool      []domain.CandidateQuestion
	Selected  *domain.CandidateQuestion
}

// ValidateDetail carries the question under validation
type ValidateDetail struct {
	Question string
}

// AnswerDetail carries the validated question being answered
type AnswerDetail struct {
	Question string
}

// ResultDetail carries the full exchange for judgement. ExpectedAnswer
// is populated only for the attacker, and only when a pool candidate
// with a model answer was selected.
type ResultDetail struct {
	Question       string
	Answer         string
	ExpectedAnswer string
}

func (TurnStartDetail) isPhaseDetail() {}
func (ConcertationDetail) isPhaseDetail() {}
func (QuestionDetail) isPhaseDetail() {}
func (ValidateDetail) isPhaseDetail() {}
func (AnswerDetail) isPhaseDetail() {}
func (ResultDetail) isPhaseDetail() {}

// IsAttacker returns true if the local side is attacking this turn
func (s Snapshot) IsAttacker() bool {
	return s.Active && s.MySide == s.Turn.Attacker
}

// IsDefender returns true if the local side is defending this turn
func (s Snapshot) IsDefender() bool {
	return s.Active && s.MySide == s.Turn.Defender
}

// May returns true if the local side may perform the action right now.
// It defers to the authority table, never re-encodes it.
func (s Snapshot) May(action domain.Action) bool {
	if !s.Active {
		return false
	}
	return domain.Allows(s.MySide, s.Phase, s.Turn.Attacker, s.Turn.Defender, action)
}
