package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wordslot/board"
)

// focusRing lists the focus stops in tab order: word-bank tokens, then for
// each slot the slot itself, its occupant and its menu button.
func (m *model) focusRing() []focusItem {
	st := m.session.Store()
	ring := make([]focusItem, 0, len(st.Tokens())+2*len(st.Slots()))
	for _, tok := range st.Pool() {
		ring = append(ring, focusItem{kind: focusToken, token: tok})
	}
	for _, id := range st.Slots() {
		ring = append(ring, focusItem{kind: focusSlot, slot: id})
		if occ, ok := st.Occupant(id); ok {
			ring = append(ring, focusItem{kind: focusToken, token: occ, slot: id})
		}
		ring = append(ring, focusItem{kind: focusMenuButton, slot: id})
	}
	return ring
}

func (m *model) focusIndex(ring []focusItem) int {
	for i, it := range ring {
		if it.kind != m.focus.kind {
			continue
		}
		if it.kind == focusToken && it.token == m.focus.token {
			return i
		}
		if it.kind != focusToken && it.slot == m.focus.slot {
			return i
		}
	}
	return -1
}

func (m *model) moveFocus(delta int) {
	ring := m.focusRing()
	if len(ring) == 0 {
		return
	}
	i := m.focusIndex(ring)
	if i < 0 {
		m.focus = ring[0]
		return
	}
	i = (i + delta + len(ring)) % len(ring)
	m.focus = ring[i]
}

// syncFocus keeps focus on the same token after it moves, and falls back
// to the first stop when the focused element no longer exists.
func (m *model) syncFocus() {
	ring := m.focusRing()
	if i := m.focusIndex(ring); i >= 0 {
		m.focus = ring[i]
		return
	}
	if len(ring) > 0 {
		m.focus = ring[0]
	}
}

func (m *model) applyFocusRequest(req board.FocusRequest) {
	switch req.Kind {
	case board.FocusToken:
		m.focus = focusItem{kind: focusToken, token: req.Token}
	case board.FocusMenuButton:
		m.focus = focusItem{kind: focusMenuButton, slot: req.Slot}
	default:
		return
	}
	m.syncFocus()
}

func (m *model) setFocusFromHit(h Hit) {
	switch h.Kind {
	case HitToken:
		m.focus = focusItem{kind: focusToken, token: h.Token}
	case HitSlot:
		m.focus = focusItem{kind: focusSlot, slot: h.Slot}
	case HitMenuButton:
		m.focus = focusItem{kind: focusMenuButton, slot: h.Slot}
	default:
		return
	}
	m.syncFocus()
}

// focusedSlot is the slot the focused element belongs to.
func (m *model) focusedSlot() (board.SlotID, bool) {
	switch m.focus.kind {
	case focusSlot, focusMenuButton:
		return m.focus.slot, true
	case focusToken:
		loc, ok := m.session.Store().Location(m.focus.token)
		if !ok || loc.InPool() {
			return "", false
		}
		return loc.Slot, true
	}
	return "", false
}

func (m *model) handleNavigation(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.First):
		m.focus = focusItem{}
		m.moveFocus(0)
	case key.Matches(msg, m.keys.Last):
		ring := m.focusRing()
		if len(ring) > 0 {
			m.focus = ring[len(ring)-1]
		}
	}
}
