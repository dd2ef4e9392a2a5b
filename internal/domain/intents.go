package domain

// IntentType represents the wire type of an outbound player intent
type IntentType string

// Client → server intent types
const (
	IntentTop      IntentType = "smash_top"
	IntentQuestion IntentType = "smash_question"
	IntentValidate IntentType = "smash_validate"
	IntentAnswer   IntentType = "smash_answer"
	IntentResult   IntentType = "smash_result"
)

// Intent is the closed set of outbound player intents. Intents are
// fire-and-forget: the engine never mutates state when sending one, it
// waits for the resulting inbound event instead.
type Intent interface {
	Type() IntentType
	Action() Action
}

// PressTop signals the attacker is done deliberating
type PressTop struct{}

func (PressTop) Type() IntentType { return IntentTop }
func (PressTop) Action() Action   { return ActionPressTop }

// SubmitQuestion commits the attacker's question text
type SubmitQuestion struct {
	Text string `json:"questionText"`
}

func (SubmitQuestion) Type() IntentType { return IntentQuestion }
func (SubmitQuestion) Action() Action   { return ActionSubmitQuestion }

// SubmitValidation accepts or rejects the question
type SubmitValidation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (SubmitValidation) Type() IntentType { return IntentValidate }
func (SubmitValidation) Action() Action   { return ActionSubmitValidation }

// SubmitAnswer commits the defender's answer text
type SubmitAnswer struct {
	Text string `json:"answerText"`
}

func (SubmitAnswer) Type() IntentType { return IntentAnswer }
func (SubmitAnswer) Action() Action   { return ActionSubmitAnswer }

// SubmitResult is the attacker's judgement of the defender's answer
type SubmitResult struct {
	Correct bool `json:"correct"`
}

func (SubmitResult) Type() IntentType { return IntentResult }
func (SubmitResult) Action() Action   { return ActionSubmitResult }
