package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"smashduel/internal/domain"
)

// Envelope is the wire frame for every server → client message
type Envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// intentEnvelope is the wire frame for every client → server intent
type intentEnvelope struct {
	Type      string      `json:"type"`
	MatchID   string      `json:"matchId"`
	ClientID  string      `json:"clientId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// DecodeEvent maps an envelope onto its concrete domain event. Unknown
// types are reported, not fatal: the caller logs and drops them so newer
// backend revisions cannot crash the client.
func DecodeEvent(env Envelope) (domain.Event, error) {
	switch domain.EventType(env.Type) {
	case domain.EventTurnStart:
		return unmarshalEvent[domain.TurnStart](env)
	case domain.EventConcertation:
		return unmarshalEvent[domain.Concertation](env)
	case domain.EventTopPressed:
		return unmarshalEvent[domain.TopPressed](env)
	case domain.EventQuestionSubmit:
		return unmarshalEvent[domain.QuestionSubmitted](env)
	case domain.EventValidatePrompt:
		return unmarshalEvent[domain.ValidatePrompt](env)
	case domain.EventQuestionValid:
		return unmarshalEvent[domain.QuestionValid](env)
	case domain.EventQuestionInvalid:
		return unmarshalEvent[domain.QuestionInvalid](env)
	case domain.EventAnswerPrompt:
		return unmarshalEvent[domain.AnswerPrompt](env)
	case domain.EventAnswerSubmit:
		return unmarshalEvent[domain.AnswerSubmitted](env)
	case domain.EventResultPrompt:
		return unmarshalEvent[domain.ResultPrompt](env)
	case domain.EventAnswerCorrect:
		return unmarshalEvent[domain.AnswerCorrect](env)
	case domain.EventAnswerIncorrect:
		return unmarshalEvent[domain.AnswerIncorrect](env)
	case domain.EventTimeout:
		return unmarshalEvent[domain.PhaseTimedOut](env)
	case domain.EventScoreUpdated:
		return unmarshalEvent[domain.ScoreUpdated](env)
	case domain.EventRoundEnded:
		return unmarshalEvent[domain.RoundEnded](env)
	case domain.EventMatchEnded:
		return unmarshalEvent[domain.MatchEnded](env)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, env.Type)
	}
}

// unmarshalEvent decodes the payload into the event struct. A nil payload
// is valid for events that carry none.
func unmarshalEvent[E domain.Event](env Envelope) (domain.Event, error) {
	var ev E
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
	}
	return ev, nil
}

// EncodeIntent frames an outbound intent for the wire
func EncodeIntent(matchID, clientID string, intent domain.Intent) ([]byte, error) {
	env := intentEnvelope{
		Type:      string(intent.Type()),
		MatchID:   matchID,
		ClientID:  clientID,
		Payload:   intent,
		Timestamp: time.Now().UnixMilli(),
	}
	return json.Marshal(env)
}
