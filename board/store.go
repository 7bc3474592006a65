package board

import (
	"fmt"
)

type SlotID string

// Token is a placeable word. Its label is its identity.
type Token string

func (t Token) Label() string { return string(t) }

// Location is where a token sits: a slot, or the word bank when Slot is
// empty.
type Location struct {
	Slot SlotID
}

// Pool is the word-bank location.
var Pool = Location{}

func InSlot(id SlotID) Location { return Location{Slot: id} }

func (l Location) InPool() bool { return l.Slot == "" }

func (l Location) String() string {
	if l.InPool() {
		return "word bank"
	}
	return string(l.Slot)
}

type ChangeKind int

const (
	ChangePlaced ChangeKind = iota
	ChangeReturned
	ChangeSwapped
)

func (k ChangeKind) String() string {
	switch k {
	case ChangePlaced:
		return "placed"
	case ChangeReturned:
		return "returned"
	case ChangeSwapped:
		return "swapped"
	default:
		return "unknown"
	}
}

// Change describes one completed mutation.
type Change struct {
	Kind   ChangeKind
	Tokens []Token
	Slots  []SlotID
}

// Store is the single source of truth for token locations. Only the Engine
// mutates it; everything else reads.
type Store struct {
	slots      []SlotID
	slotIndex  map[SlotID]int
	tokens     []Token
	known      map[Token]bool
	placements map[SlotID]Token
	where      map[Token]SlotID
	pool       []Token
	listeners  []func(Change)
}

func newStore(cfg Config) *Store {
	s := &Store{
		slots:      append([]SlotID(nil), cfg.Slots...),
		slotIndex:  make(map[SlotID]int, len(cfg.Slots)),
		tokens:     append([]Token(nil), cfg.Tokens...),
		known:      make(map[Token]bool, len(cfg.Tokens)),
		placements: make(map[SlotID]Token, len(cfg.Slots)),
		where:      make(map[Token]SlotID, len(cfg.Tokens)),
	}
	for i, id := range s.slots {
		s.slotIndex[id] = i
	}
	for _, tok := range s.tokens {
		s.known[tok] = true
	}
	for id, tok := range cfg.Initial {
		s.placements[id] = tok
		s.where[tok] = id
	}
	for _, tok := range s.tokens {
		if _, placed := s.where[tok]; !placed {
			s.pool = append(s.pool, tok)
		}
	}
	return s
}

// Slots returns the slot IDs in their fixed order.
func (s *Store) Slots() []SlotID {
	return append([]SlotID(nil), s.slots...)
}

func (s *Store) HasSlot(id SlotID) bool {
	_, ok := s.slotIndex[id]
	return ok
}

// SlotIndex is the zero-based position of id, or -1.
func (s *Store) SlotIndex(id SlotID) int {
	if i, ok := s.slotIndex[id]; ok {
		return i
	}
	return -1
}

// Tokens returns every token in initial order.
func (s *Store) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}

func (s *Store) HasToken(tok Token) bool {
	return s.known[tok]
}

func (s *Store) Occupant(id SlotID) (Token, bool) {
	tok, ok := s.placements[id]
	return tok, ok
}

// Pool returns the unplaced tokens in word-bank order.
func (s *Store) Pool() []Token {
	return append([]Token(nil), s.pool...)
}

func (s *Store) InPool(tok Token) bool {
	if !s.known[tok] {
		return false
	}
	_, placed := s.where[tok]
	return !placed
}

func (s *Store) Location(tok Token) (Location, bool) {
	if !s.known[tok] {
		return Location{}, false
	}
	if id, ok := s.where[tok]; ok {
		return InSlot(id), true
	}
	return Pool, true
}

// Placements returns a copy of the slot to token mapping.
func (s *Store) Placements() map[SlotID]Token {
	out := make(map[SlotID]Token, len(s.placements))
	for id, tok := range s.placements {
		out[id] = tok
	}
	return out
}

func (s *Store) Filled() int { return len(s.placements) }

func (s *Store) Full() bool { return len(s.placements) == len(s.slots) }

// Subscribe registers fn to run after every completed mutation.
func (s *Store) Subscribe(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

// Verify checks that every token is in exactly one of the word bank or a
// single slot.
func (s *Store) Verify() error {
	count := make(map[Token]int, len(s.tokens))
	for id, tok := range s.placements {
		if !s.known[tok] {
			return fmt.Errorf("slot %s holds %w %q", id, ErrUnknownToken, tok)
		}
		if _, ok := s.slotIndex[id]; !ok {
			return fmt.Errorf("%w %q holds %q", ErrUnknownSlot, id, tok)
		}
		if s.where[tok] != id {
			return fmt.Errorf("index for %q points at %q, slot %s holds it", tok, s.where[tok], id)
		}
		count[tok]++
	}
	for tok, id := range s.where {
		if s.placements[id] != tok {
			return fmt.Errorf("index says %q is in %s, slot holds %q", tok, id, s.placements[id])
		}
	}
	for _, tok := range s.pool {
		if !s.known[tok] {
			return fmt.Errorf("word bank holds %w %q", ErrUnknownToken, tok)
		}
		count[tok]++
	}
	for _, tok := range s.tokens {
		switch n := count[tok]; {
		case n == 0:
			return fmt.Errorf("token %q is lost", tok)
		case n > 1:
			return fmt.Errorf("token %q appears %d times", tok, n)
		}
	}
	return nil
}

// detach removes tok from wherever it is. The store is inconsistent until
// the token is attached again.
func (s *Store) detach(tok Token) {
	if id, ok := s.where[tok]; ok {
		delete(s.placements, id)
		delete(s.where, tok)
		return
	}
	for i, p := range s.pool {
		if p == tok {
			s.pool = append(s.pool[:i], s.pool[i+1:]...)
			return
		}
	}
}

func (s *Store) attachSlot(tok Token, id SlotID) {
	s.placements[id] = tok
	s.where[tok] = id
}

func (s *Store) attachPool(tok Token) {
	s.pool = append(s.pool, tok)
}

func (s *Store) publish(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}
