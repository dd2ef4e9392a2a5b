package engine

import (
	"sync"

	"smashduel/internal/domain"
)

// ScoreLedger holds the two running team scores and the most recent turn
// outcome. There is deliberately no increment API: scores are only ever
// replaced wholesale with the authoritative values carried by server
// events, so local state can never drift from the server's truth.
type ScoreLedger struct {
	mu    sync.Mutex
	state domain.ScoreState
}

// NewScoreLedger creates an empty ledger
func NewScoreLedger() *ScoreLedger {
	return &ScoreLedger{}
}

// Replace overwrites both scores and the last outcome
func (l *ScoreLedger) Replace(scoreA, scoreB int, outcome *domain.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.ScoreA = scoreA
	l.state.ScoreB = scoreB
	l.state.LastResult = outcome
}

// ReplaceScores overwrites the scores only, keeping the last outcome.
// Used for out-of-band SCORE_UPDATED corrections.
func (l *ScoreLedger) ReplaceScores(scoreA, scoreB int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.ScoreA = scoreA
	l.state.ScoreB = scoreB
}

// SetOutcome records an outcome without touching the scores. Used for
// invalid-question rulings, which carry no score payload.
func (l *ScoreLedger) SetOutcome(outcome *domain.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.LastResult = outcome
}

// ClearOutcome drops the last outcome, typically at turn start
func (l *ScoreLedger) ClearOutcome() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.LastResult = nil
}

// Reset clears scores and outcome back to the initial state
func (l *ScoreLedger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = domain.ScoreState{}
}

// State returns a copy of the current score state
func (l *ScoreLedger) State() domain.ScoreState {
	l.mu.Lock()
	defer l.mu.Unlock()
	state := l.state
	if l.state.LastResult != nil {
		outcome := *l.state.LastResult
		state.LastResult = &outcome
	}
	return state
}
