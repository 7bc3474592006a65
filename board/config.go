package board

import (
	"fmt"
	"time"

	"github.com/agnivade/levenshtein"
)

// Config describes one exercise. Tokens lists every token in its initial
// word-bank order; Initial optionally pre-places some of them.
type Config struct {
	Slots    []SlotID
	Tokens   []Token
	Target   []Token
	Initial  map[SlotID]Token
	Messages Messages

	AnnounceDelay time.Duration
	FlashDelay    time.Duration
	FocusDelay    time.Duration
}

// Messages are the fixed outcome texts.
type Messages struct {
	Correct   string
	Incorrect string
}

const (
	DefaultFlashDelay = 100 * time.Millisecond
	// DefaultFocusDelay is roughly one frame.
	DefaultFocusDelay = time.Second / 60
)

func DefaultMessages() Messages {
	return Messages{
		Correct:   "All states are in the correct order. Well done!",
		Incorrect: "Not all states are in the correct order. Try again!",
	}
}

// DefaultConfig is the four-state size ordering exercise.
func DefaultConfig() Config {
	return Config{
		Slots:    []SlotID{"dz-1", "dz-2", "dz-3", "dz-4"},
		Tokens:   []Token{"Wyoming", "California", "Alaska", "Rhode Island"},
		Target:   []Token{"Alaska", "Rhode Island", "California", "Wyoming"},
		Messages: DefaultMessages(),
	}
}

func (c Config) withDefaults() Config {
	if c.Messages.Correct == "" {
		c.Messages.Correct = DefaultMessages().Correct
	}
	if c.Messages.Incorrect == "" {
		c.Messages.Incorrect = DefaultMessages().Incorrect
	}
	if c.FlashDelay <= 0 {
		c.FlashDelay = DefaultFlashDelay
	}
	if c.FocusDelay <= 0 {
		c.FocusDelay = DefaultFocusDelay
	}
	return c
}

// Validate rejects configurations that would break the placement
// invariant: duplicate or empty IDs, a target that does not line up with
// the slots, or references to tokens that do not exist.
func (c Config) Validate() error {
	if len(c.Slots) == 0 {
		return fmt.Errorf("%w: no slots", ErrInvalidConfig)
	}
	slots := make(map[SlotID]bool, len(c.Slots))
	for _, id := range c.Slots {
		if id == "" {
			return fmt.Errorf("%w: empty slot id", ErrInvalidConfig)
		}
		if slots[id] {
			return fmt.Errorf("%w: duplicate slot %q", ErrInvalidConfig, id)
		}
		slots[id] = true
	}

	tokens := make(map[Token]bool, len(c.Tokens))
	for _, tok := range c.Tokens {
		if tok == "" {
			return fmt.Errorf("%w: empty token label", ErrInvalidConfig)
		}
		if tokens[tok] {
			return fmt.Errorf("%w: duplicate token %q", ErrInvalidConfig, tok)
		}
		tokens[tok] = true
	}

	if len(c.Target) != len(c.Slots) {
		return fmt.Errorf("%w: target has %d labels for %d slots", ErrInvalidConfig, len(c.Target), len(c.Slots))
	}
	for i, tok := range c.Target {
		if !tokens[tok] {
			return fmt.Errorf("%w: target %d: %w", ErrInvalidConfig, i+1, unknownToken(tok, c.Tokens))
		}
	}

	seen := make(map[Token]SlotID, len(c.Initial))
	for id, tok := range c.Initial {
		if !slots[id] {
			return fmt.Errorf("%w: initial placement: %w %q", ErrInvalidConfig, ErrUnknownSlot, id)
		}
		if !tokens[tok] {
			return fmt.Errorf("%w: initial placement in %s: %w", ErrInvalidConfig, id, unknownToken(tok, c.Tokens))
		}
		if other, dup := seen[tok]; dup {
			return fmt.Errorf("%w: %q placed in both %s and %s", ErrInvalidConfig, tok, other, id)
		}
		seen[tok] = id
	}
	return nil
}

func unknownToken(tok Token, known []Token) error {
	if guess, ok := closestToken(tok, known); ok {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownToken, tok, guess)
	}
	return fmt.Errorf("%w %q", ErrUnknownToken, tok)
}

// closestToken suggests the known label within a third of tok's length in
// edit distance.
func closestToken(tok Token, known []Token) (Token, bool) {
	best, bestDist := Token(""), -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(string(tok), string(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	limit := len(tok)/3 + 1
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
