package board

import "go.uber.org/zap"

type Outcome int

const (
	Incomplete Outcome = iota
	Correct
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Incomplete:
		return "incomplete"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Marker is the success/error class on the slot container.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerSuccess
	MarkerError
)

func (m Marker) String() string {
	switch m {
	case MarkerSuccess:
		return "success"
	case MarkerError:
		return "error"
	default:
		return ""
	}
}

// Validator compares the placement with the target ordering.
type Validator struct {
	store   *Store
	target  []Token
	msgs    Messages
	ann     Announcer
	log     *zap.Logger
	outcome Outcome
	marker  Marker
}

func newValidator(store *Store, target []Token, msgs Messages, ann Announcer, log *zap.Logger) *Validator {
	return &Validator{
		store:  store,
		target: append([]Token(nil), target...),
		msgs:   msgs,
		ann:    ann,
		log:    log,
	}
}

// Evaluate computes the outcome without side effects.
func (v *Validator) Evaluate() Outcome {
	correct := true
	for i, id := range v.store.slots {
		tok, ok := v.store.Occupant(id)
		if !ok {
			return Incomplete
		}
		if tok != v.target[i] {
			correct = false
		}
	}
	if correct {
		return Correct
	}
	return Incorrect
}

// CheckAll re-evaluates, updates the marker and announces a complete
// arrangement on both the live region and the status line.
func (v *Validator) CheckAll() Outcome {
	v.outcome = v.Evaluate()
	switch v.outcome {
	case Correct:
		v.marker = MarkerSuccess
		v.ann.Announce(v.msgs.Correct, true)
	case Incorrect:
		v.marker = MarkerError
		v.ann.Announce(v.msgs.Incorrect, true)
	default:
		v.marker = MarkerNone
	}
	v.log.Debug("checked", zap.Stringer("outcome", v.outcome), zap.Int("filled", v.store.Filled()))
	return v.outcome
}

func (v *Validator) Outcome() Outcome { return v.outcome }

func (v *Validator) Marker() Marker { return v.marker }

// Target returns the expected label per slot position.
func (v *Validator) Target() []Token {
	return append([]Token(nil), v.target...)
}
