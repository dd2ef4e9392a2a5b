package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"smashduel/internal/domain"
)

// EventStream delivers inbound match events in server-emission order.
// Implemented by the websocket transport; faked in tests.
type EventStream interface {
	Subscribe(matchID string, sink func(domain.Event)) error
	Unsubscribe(matchID string)
}

// IntentSender forwards outbound player intents to the server.
// Sends are fire-and-forget: state only ever advances through a
// subsequent inbound event.
type IntentSender interface {
	SendIntent(matchID string, intent domain.Intent) error
}

// Coordinator is the authoritative in-memory projection of the current
// SMASH turn. It is built purely from inbound protocol events; local
// intents are gated by the role authority table and never mutate state.
// One coordinator is bound to at most one match at a time.
type Coordinator struct {
	stream EventStream
	sender IntentSender
	source *QuestionSource
	ledger *ScoreLedger
	logger zerolog.Logger

	mu      sync.Mutex
	matchID string
	mySide  domain.TeamSide
	active  bool
	turn    domain.Turn
	phase   domain.Phase

	question string
	answer   string

	timer *Countdown

	onUpdate func(Snapshot)
}

// NewCoordinator creates a coordinator with its collaborators injected
func NewCoordinator(stream EventStream, sender IntentSender, source *QuestionSource, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		stream: stream,
		sender: sender,
		source: source,
		ledger: NewScoreLedger(),
		logger: logger.With().Str("component", "coordinator").Logger(),
	}
}

// SetUpdateHook registers a callback invoked with a fresh snapshot after
// every state change and countdown tick. Set it before Start.
func (c *Coordinator) SetUpdateHook(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Questions exposes the question source for attacker-side UI interaction
func (c *Coordinator) Questions() *QuestionSource {
	return c.source
}

// Scores exposes the score ledger state
func (c *Coordinator) Scores() domain.ScoreState {
	return c.ledger.State()
}

// Start begins a session for the given match and local side. Calling it
// again with the same match is a no-op; with a different match the prior
// session is torn down first.
func (c *Coordinator) Start(matchID string, mySide domain.TeamSide) error {
	if !mySide.Valid() {
		return fmt.Errorf("invalid team side %q", mySide)
	}

	c.mu.Lock()
	if c.active && c.matchID == matchID {
		c.mu.Unlock()
		return nil
	}
	if c.active {
		prior := c.matchID
		c.teardownLocked()
		c.mu.Unlock()
		c.stream.Unsubscribe(prior)
		c.mu.Lock()
	}

	c.matchID = matchID
	c.mySide = mySide
	c.active = true
	c.phase = domain.PhaseTurnStart
	c.turn = domain.Turn{}
	c.question = ""
	c.answer = ""
	c.ledger.Reset()
	c.source.Reset()
	c.mu.Unlock()

	if err := c.stream.Subscribe(matchID, c.HandleEvent); err != nil {
		c.mu.Lock()
		c.teardownLocked()
		c.mu.Unlock()
		return fmt.Errorf("subscribe to match %s: %w", matchID, err)
	}

	c.logger.Info().Str("matchID", matchID).Str("side", mySide.String()).Msg("smash session started")
	return nil
}

// End tears down the session locally: cancels the countdown, unsubscribes
// and clears all state. Safe to call multiple times, and a no-op when no
// session is active.
func (c *Coordinator) End() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	matchID := c.matchID
	c.teardownLocked()
	c.matchID = ""
	c.mu.Unlock()

	c.stream.Unsubscribe(matchID)
	c.logger.Info().Str("matchID", matchID).Msg("smash session ended")
}

// teardownLocked cancels the countdown and resets state. Caller holds mu.
func (c *Coordinator) teardownLocked() {
	c.cancelTimerLocked()
	c.active = false
	c.turn = domain.Turn{}
	c.phase = domain.PhaseTurnStart
	c.question = ""
	c.answer = ""
	c.ledger.Reset()
	c.source.Reset()
}

// HandleEvent applies one inbound protocol event. Events are treated as
// idempotent forcers: each one sets the phase its transition implies,
// regardless of the prior phase, because the server is authoritative.
// Events for an ended session or another match are silently ignored.
func (c *Coordinator) HandleEvent(ev domain.Event) {
	c.mu.Lock()

	if !c.active {
		c.mu.Unlock()
		c.logger.Debug().Str("type", string(ev.Type())).Msg("event for inactive session ignored")
		return
	}
	if m := ev.Match(); m != "" && m != c.matchID {
		c.mu.Unlock()
		c.logger.Debug().Str("type", string(ev.Type())).Str("matchID", m).Msg("event for other match ignored")
		return
	}

	switch ev := ev.(type) {
	case domain.TurnStart:
		c.cancelTimerLocked()
		c.turn = domain.Turn{
			Number:          ev.TurnNumber,
			Attacker:        ev.Attacker,
			Defender:        ev.Defender,
			Variant:         ev.Variant,
			HasConcertation: ev.HasConcertation,
		}
		c.phase = domain.PhaseTurnStart
		c.question = ""
		c.answer = ""
		c.ledger.ClearOutcome()
		c.source.BeginTurn(ev.Variant)

	case domain.Concertation:
		if !c.turn.HasConcertation {
			c.logger.Warn().Int("turn", c.turn.Number).Msg("concertation event for turn without concertation")
		}
		c.phase = domain.PhaseConcertation

	case domain.TopPressed:
		c.phase = domain.PhaseQuestion
		c.armTimerLocked(ev.TimeoutMs)

	case domain.QuestionSubmitted:
		c.question = ev.QuestionText
		c.phase = domain.PhaseValidate
		c.armTimerLocked(ev.TimeoutMs)

	case domain.ValidatePrompt:
		c.question = ev.QuestionText
		c.phase = domain.PhaseValidate
		c.armTimerLocked(ev.TimeoutMs)

	case domain.QuestionValid:
		c.cancelTimerLocked()
		c.phase = domain.PhaseAnswer

	case domain.QuestionInvalid:
		c.cancelTimerLocked()
		reason := ev.Reason
		if reason == "" {
			reason = "non specifie"
		}
		validator := ev.Validator
		c.ledger.SetOutcome(&domain.Outcome{
			Kind:    domain.OutcomeInvalid,
			Message: fmt.Sprintf("Question invalide: %s", reason),
			Points:  ev.Points,
			Winner:  &validator,
		})
		// Turn is over; no further phase advance until the next TurnStart.

	case domain.AnswerPrompt:
		c.phase = domain.PhaseAnswer
		c.armTimerLocked(ev.TimeoutMs)

	case domain.AnswerSubmitted:
		c.cancelTimerLocked()
		c.answer = ev.AnswerText
		c.phase = domain.PhaseResult

	case domain.ResultPrompt:
		c.answer = ev.AnswerText
		c.phase = domain.PhaseResult

	case domain.AnswerCorrect:
		c.cancelTimerLocked()
		c.ledger.Replace(ev.ScoreA, ev.ScoreB, &domain.Outcome{
			Kind:    domain.OutcomeCorrect,
			Message: "Bonne reponse !",
			Points:  ev.Points,
			Winner:  ev.Winner,
		})

	case domain.AnswerIncorrect:
		c.cancelTimerLocked()
		c.ledger.Replace(ev.ScoreA, ev.ScoreB, &domain.Outcome{
			Kind:    domain.OutcomeIncorrect,
			Message: "Mauvaise reponse",
			Points:  0,
		})

	case domain.PhaseTimedOut:
		c.cancelTimerLocked()
		c.ledger.Replace(ev.ScoreA, ev.ScoreB, &domain.Outcome{
			Kind:    domain.OutcomeTimeout,
			Message: fmt.Sprintf("Temps ecoule (%s)", ev.Phase),
			Points:  ev.Points,
			Winner:  ev.Winner,
		})
		// Phase stays where the timeout struck; the next TurnStart moves on.

	case domain.ScoreUpdated:
		c.ledger.ReplaceScores(ev.ScoreA, ev.ScoreB)

	case domain.RoundEnded, domain.MatchEnded:
		c.cancelTimerLocked()
		c.active = false

	default:
		c.logger.Warn().Str("type", string(ev.Type())).Msg("unhandled event type")
	}

	snap := c.snapshotLocked()
	hook := c.onUpdate
	c.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}

// Outbound intents. Each is checked against the role authority table for
// the current phase and role assignment; unauthorized intents are dropped
// locally with a log line, never sent and never surfaced as an error.

// PressTop signals readiness to leave concertation
func (c *Coordinator) PressTop() {
	c.submit(domain.PressTop{})
}

// SubmitQuestion sends freely authored question text
func (c *Coordinator) SubmitQuestion(text string) {
	if text == "" {
		c.logger.Debug().Msg("empty question text dropped")
		return
	}
	c.submit(domain.SubmitQuestion{Text: text})
}

// SubmitSelectedQuestion sends the selected pool candidate's text verbatim
func (c *Coordinator) SubmitSelectedQuestion() {
	candidate, ok := c.source.Selected()
	if !ok {
		c.logger.Debug().Msg("no candidate selected, submit dropped")
		return
	}
	c.submit(domain.SubmitQuestion{Text: candidate.Text})
}

// SubmitValidation accepts or rejects the attacker's question
func (c *Coordinator) SubmitValidation(valid bool, reason string) {
	c.submit(domain.SubmitValidation{Valid: valid, Reason: reason})
}

// SubmitAnswer sends the defender's answer
func (c *Coordinator) SubmitAnswer(text string) {
	if text == "" {
		c.logger.Debug().Msg("empty answer text dropped")
		return
	}
	c.submit(domain.SubmitAnswer{Text: text})
}

// SubmitResult sends the attacker's judgement of the answer
func (c *Coordinator) SubmitResult(correct bool) {
	c.submit(domain.SubmitResult{Correct: correct})
}

// submit gates an intent through the authority table and hands it to the
// transport. No local state is mutated on send.
func (c *Coordinator) submit(intent domain.Intent) {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		c.logger.Debug().Str("action", string(intent.Action())).Msg("intent without active session dropped")
		return
	}
	if !domain.Allows(c.mySide, c.phase, c.turn.Attacker, c.turn.Defender, intent.Action()) {
		phase, side := c.phase, c.mySide
		c.mu.Unlock()
		c.logger.Info().
			Str("action", string(intent.Action())).
			Str("phase", phase.String()).
			Str("side", side.String()).
			Msg("unauthorized intent dropped")
		return
	}
	matchID := c.matchID
	c.mu.Unlock()

	if err := c.sender.SendIntent(matchID, intent); err != nil {
		c.logger.Warn().Err(err).Str("action", string(intent.Action())).Msg("intent send failed")
	}
}

// Snapshot returns a consistent read-only view of the current state
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked builds a snapshot. Caller holds mu.
func (c *Coordinator) snapshotLocked() Snapshot {
	snap := Snapshot{
		MatchID: c.matchID,
		MySide:  c.mySide,
		Active:  c.active,
		Turn:    c.turn,
		Phase:   c.phase,
		Scores:  c.ledger.State(),
	}

	if c.timer != nil {
		snap.RemainingMs = c.timer.Remaining().Milliseconds()
		snap.DurationMs = c.timer.Duration().Milliseconds()
	}

	snap.Detail = c.detailLocked()
	return snap
}

// detailLocked builds the phase-scoped snapshot payload. Pool material
// and the model answer are attacker-only: the defender must never see
// the expected answer, and has no use for the pool at all. Caller
// holds mu.
func (c *Coordinator) detailLocked() PhaseDetail {
	attacker := c.active && c.mySide == c.turn.Attacker

	switch c.phase {
	case domain.PhaseConcertation:
		return ConcertationDetail{}
	case domain.PhaseQuestion:
		detail := QuestionDetail{}
		if attacker {
			detail.Mode = c.source.Mode()
			detail.PoolState = c.source.State()
			detail.Pool = c.source.Pool()
			if candidate, ok := c.source.Selected(); ok {
				detail.Selected = &candidate
			}
		}
		return detail
	case domain.PhaseValidate:
		return ValidateDetail{Question: c.question}
	case domain.PhaseAnswer:
		return AnswerDetail{Question: c.question}
	case domain.PhaseResult:
		detail := ResultDetail{Question: c.question, Answer: c.answer}
		if attacker {
			if candidate, ok := c.source.Selected(); ok {
				detail.ExpectedAnswer = candidate.ExpectedAnswer
			}
		}
		return detail
	default:
		return TurnStartDetail{}
	}
}

// armTimerLocked replaces the active countdown with a fresh one. The old
// countdown is always cancelled first so no two are ever ticking for the
// same coordinator. Caller holds mu.
func (c *Coordinator) armTimerLocked(timeoutMs int) {
	c.cancelTimerLocked()
	if timeoutMs <= 0 {
		return
	}
	c.timer = newCountdown(time.Duration(timeoutMs)*time.Millisecond, c.tick)
}

// cancelTimerLocked stops and drops the active countdown. Caller holds mu.
func (c *Coordinator) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Cancel()
		c.timer = nil
	}
}

// tick relays countdown progress to the update hook
func (c *Coordinator) tick(time.Duration) {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	hook := c.onUpdate
	c.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}
