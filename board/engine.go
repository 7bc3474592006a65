package board

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"wordslot/schedule"
)

// Engine performs every store mutation. Each operation attaches and
// detaches tokens privately, verifies the invariant and only then notifies
// store listeners and the validator.
type Engine struct {
	store *Store
	sel   *SelectionController
	val   *Validator
	ann   Announcer
	sched *schedule.Scheduler
	log   *zap.Logger

	flashDelay   time.Duration
	flashing     map[Token]bool
	requestFocus func(FocusRequest)
}

// Placement reports what a place operation did.
type Placement struct {
	Token     Token
	Slot      SlotID
	From      Location
	Displaced Token
	// Moved is false for a drop onto the token's own slot.
	Moved bool
}

func (p Placement) HasDisplaced() bool { return p.Displaced != "" }

// SwapResult reports what Swap did.
type SwapResult struct {
	A, B Token
	// Degraded is set when one side was in the word bank and the call
	// became a displacement.
	Degraded  bool
	Placement Placement
}

// PlaceInSlot drops the selected token into id, first returning any other
// occupant to the word bank.
func (e *Engine) PlaceInSlot(id SlotID) (Placement, error) {
	if !e.store.HasSlot(id) {
		return Placement{}, fmt.Errorf("place: %w %q", ErrUnknownSlot, id)
	}
	tok, ok := e.sel.Selected()
	if !ok {
		return Placement{}, ErrNoSelection
	}
	e.sel.clear()
	if cur, occupied := e.store.Occupant(id); occupied && cur == tok {
		e.ann.Announce(droppedMessage(tok), false)
		return Placement{Token: tok, Slot: id, From: InSlot(id)}, nil
	}
	p := e.move(tok, id)
	e.ann.Announce(droppedMessage(tok), false)
	e.val.CheckAll()
	return p, nil
}

// PlaceFromPool moves tok from the word bank into id and ends any
// selection. It fails with ErrNotFound, leaving the selection alone, when
// tok is no longer in the word bank.
func (e *Engine) PlaceFromPool(tok Token, id SlotID) (Placement, error) {
	if !e.store.HasSlot(id) {
		return Placement{}, fmt.Errorf("place: %w %q", ErrUnknownSlot, id)
	}
	if !e.store.InPool(tok) {
		e.ann.Announce(notFoundMessage(tok), false)
		return Placement{}, fmt.Errorf("place %q: %w", tok, ErrNotFound)
	}
	e.sel.clear()
	p := e.move(tok, id)
	e.ann.Announce(placedMessage(tok), false)
	e.val.CheckAll()
	return p, nil
}

// ReturnToPool sends tok back to the word bank. It reports false when tok
// was not in a slot.
func (e *Engine) ReturnToPool(tok Token) (bool, error) {
	loc, ok := e.store.Location(tok)
	if !ok {
		return false, fmt.Errorf("return: %w %q", ErrUnknownToken, tok)
	}
	if loc.InPool() {
		return false, nil
	}
	if e.sel.IsSelected(tok) {
		e.sel.clear()
	}
	e.store.detach(tok)
	e.store.attachPool(tok)
	e.commit(Change{Kind: ChangeReturned, Tokens: []Token{tok}, Slots: []SlotID{loc.Slot}})
	e.ann.Announce(returnedMessage(tok), false)
	e.val.CheckAll()
	return true, nil
}

// Swap exchanges the slots of a and b. When exactly one of them is in the
// word bank, that one is placed into the other's slot and the other is
// displaced instead. Both in the word bank is ErrNotPlaced.
func (e *Engine) Swap(a, b Token) (SwapResult, error) {
	la, ok := e.store.Location(a)
	if !ok {
		return SwapResult{}, fmt.Errorf("swap: %w %q", ErrUnknownToken, a)
	}
	lb, ok := e.store.Location(b)
	if !ok {
		return SwapResult{}, fmt.Errorf("swap: %w %q", ErrUnknownToken, b)
	}
	if a == b {
		return SwapResult{}, ErrSameToken
	}
	res := SwapResult{A: a, B: b}
	switch {
	case la.InPool() && lb.InPool():
		return SwapResult{}, fmt.Errorf("swap %q and %q: %w", a, b, ErrNotPlaced)
	case la.InPool() || lb.InPool():
		pooled, slot := a, lb.Slot
		if lb.InPool() {
			pooled, slot = b, la.Slot
		}
		e.sel.clear()
		res.Degraded = true
		res.Placement = e.move(pooled, slot)
		e.ann.Announce(droppedMessage(pooled), false)
	default:
		e.sel.clear()
		e.store.attachSlot(a, lb.Slot)
		e.store.attachSlot(b, la.Slot)
		e.commit(Change{Kind: ChangeSwapped, Tokens: []Token{a, b}, Slots: []SlotID{la.Slot, lb.Slot}})
		e.flash(a, b)
		e.ann.Announce(swappedMessage(a, b), false)
	}
	e.val.CheckAll()
	return res, nil
}

// move places tok in id, displacing a different occupant to the word bank.
func (e *Engine) move(tok Token, id SlotID) Placement {
	from, _ := e.store.Location(tok)
	p := Placement{Token: tok, Slot: id, From: from, Moved: true}
	if cur, occupied := e.store.Occupant(id); occupied && cur != tok {
		e.store.detach(cur)
		e.store.attachPool(cur)
		p.Displaced = cur
	}
	e.store.detach(tok)
	e.store.attachSlot(tok, id)

	c := Change{Kind: ChangePlaced, Tokens: []Token{tok}, Slots: []SlotID{id}}
	if p.HasDisplaced() {
		c.Tokens = append(c.Tokens, p.Displaced)
	}
	if !from.InPool() {
		c.Slots = append(c.Slots, from.Slot)
	}
	e.commit(c)
	return p
}

func (e *Engine) commit(c Change) {
	if err := e.store.Verify(); err != nil {
		e.log.Error("placement invariant broken", zap.Stringer("change", c.Kind), zap.Error(err))
	}
	e.log.Debug("store changed",
		zap.Stringer("change", c.Kind),
		zap.Strings("tokens", tokenLabels(c.Tokens)),
		zap.Int("filled", e.store.Filled()))
	e.store.publish(c)
}

// flash shows both swapped tokens as grabbed for a moment, then moves
// focus to the first one.
func (e *Engine) flash(a, b Token) {
	e.flashing = map[Token]bool{a: true, b: true}
	e.sched.After(schedule.Ungrab, e.flashDelay, func() {
		e.flashing = nil
		if e.requestFocus != nil {
			e.requestFocus(FocusRequest{Kind: FocusToken, Token: a})
		}
	})
}

func (e *Engine) Flashing(tok Token) bool {
	return e.flashing[tok]
}

func tokenLabels(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Label()
	}
	return out
}
