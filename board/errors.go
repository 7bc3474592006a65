package board

import "errors"

var (
	// ErrNoSelection is returned by operations that need a selected token.
	ErrNoSelection = errors.New("no token selected")
	// ErrAlreadySelected is returned by Select when another token is
	// selected; callers delegate to a swap instead.
	ErrAlreadySelected = errors.New("another token is already selected")
	// ErrNotPlaced is returned by Swap when neither token is in a slot.
	ErrNotPlaced = errors.New("token is not placed in a slot")
	// ErrSameToken is returned by Swap when both sides are one token.
	ErrSameToken = errors.New("cannot swap a token with itself")

	// ErrNotFound is returned when a token is not where a request expected
	// it, typically a stale menu entry.
	ErrNotFound = errors.New("token not found in the word bank")

	ErrUnknownSlot   = errors.New("unknown slot")
	ErrUnknownToken  = errors.New("unknown token")
	ErrInvalidConfig = errors.New("invalid board configuration")
)

// ErrorClass is how the session treats an error.
type ErrorClass int

const (
	ClassNone ErrorClass = iota
	// ClassInvalidOperation errors are ignored silently.
	ClassInvalidOperation
	// ClassLookupMiss errors are announced and abort the operation.
	ClassLookupMiss
	// ClassStructural errors are programming defects.
	ClassStructural
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassInvalidOperation:
		return "invalid_operation"
	case ClassLookupMiss:
		return "lookup_miss"
	case ClassStructural:
		return "structural"
	default:
		return "unknown"
	}
}

func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrNotFound):
		return ClassLookupMiss
	case errors.Is(err, ErrUnknownSlot), errors.Is(err, ErrUnknownToken), errors.Is(err, ErrInvalidConfig):
		return ClassStructural
	default:
		return ClassInvalidOperation
	}
}
