package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smashduel/internal/domain"
)

func TestScoreLedgerReplace(t *testing.T) {
	ledger := NewScoreLedger()
	winner := domain.TeamA

	ledger.Replace(10, 5, &domain.Outcome{
		Kind:    domain.OutcomeCorrect,
		Message: "Bonne reponse !",
		Points:  10,
		Winner:  &winner,
	})

	state := ledger.State()
	assert.Equal(t, 10, state.ScoreA)
	assert.Equal(t, 5, state.ScoreB)
	require.NotNil(t, state.LastResult)
	assert.Equal(t, domain.OutcomeCorrect, state.LastResult.Kind)
}

func TestScoreLedgerReplaceScoresKeepsOutcome(t *testing.T) {
	ledger := NewScoreLedger()
	ledger.Replace(10, 0, &domain.Outcome{Kind: domain.OutcomeCorrect, Points: 10})

	ledger.ReplaceScores(15, 5)

	state := ledger.State()
	assert.Equal(t, 15, state.ScoreA)
	assert.Equal(t, 5, state.ScoreB)
	require.NotNil(t, state.LastResult)
	assert.Equal(t, domain.OutcomeCorrect, state.LastResult.Kind)
}

func TestScoreLedgerSetOutcomeKeepsScores(t *testing.T) {
	ledger := NewScoreLedger()
	ledger.ReplaceScores(3, 7)

	ledger.SetOutcome(&domain.Outcome{Kind: domain.OutcomeInvalid, Message: "Question invalide: hors sujet"})

	state := ledger.State()
	assert.Equal(t, 3, state.ScoreA)
	assert.Equal(t, 7, state.ScoreB)
	require.NotNil(t, state.LastResult)
	assert.Equal(t, domain.OutcomeInvalid, state.LastResult.Kind)
}

func TestScoreLedgerClearOutcome(t *testing.T) {
	ledger := NewScoreLedger()
	ledger.Replace(10, 0, &domain.Outcome{Kind: domain.OutcomeTimeout})

	ledger.ClearOutcome()

	state := ledger.State()
	assert.Equal(t, 10, state.ScoreA)
	assert.Nil(t, state.LastResult)
}

func TestScoreLedgerStateIsACopy(t *testing.T) {
	ledger := NewScoreLedger()
	ledger.Replace(1, 2, &domain.Outcome{Kind: domain.OutcomeIncorrect})

	state := ledger.State()
	state.LastResult.Kind = domain.OutcomeCorrect
	state.ScoreA = 99

	fresh := ledger.State()
	assert.Equal(t, 1, fresh.ScoreA)
	assert.Equal(t, domain.OutcomeIncorrect, fresh.LastResult.Kind)
}

func TestScoreLedgerReset(t *testing.T) {
	ledger := NewScoreLedger()
	ledger.Replace(10, 5, &domain.Outcome{Kind: domain.OutcomeCorrect})

	ledger.Reset()

	state := ledger.State()
	assert.Zero(t, state.ScoreA)
	assert.Zero(t, state.ScoreB)
	assert.Nil(t, state.LastResult)
}
