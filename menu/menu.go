// Package menu is the per-slot picker: the non-spatial way to fill or
// clear a slot.
package menu

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

type Action int

const (
	// ActionPlace puts Item.Token into the menu's slot.
	ActionPlace Action = iota
	// ActionRemove returns the slot's occupant to the word bank.
	ActionRemove
)

type Item struct {
	Action Action
	Token  string
	// Text is what the menu shows; Label is the accessible name.
	Text  string
	Label string
}

// Build lists one place entry per pooled token followed by a remove entry
// when the slot is occupied.
func Build(pool []string, occupant string, occupied bool) []Item {
	items := make([]Item, 0, len(pool)+1)
	for _, tok := range pool {
		items = append(items, Item{Action: ActionPlace, Token: tok, Text: tok, Label: tok})
	}
	if occupied {
		items = append(items, Item{
			Action: ActionRemove,
			Token:  occupant,
			Text:   "Remove " + occupant,
			Label:  "Remove " + occupant + " and return it to word bank",
		})
	}
	return items
}

type Event int

const (
	EventNone Event = iota
	EventMoved
	EventChosen
	// EventClosed closes this menu and returns focus to its trigger.
	EventClosed
	// EventCloseAll closes every menu without moving focus.
	EventCloseAll
)

type Result struct {
	Event Event
	Item  Item
}

// Menu is one slot's picker. Cursor is -1 while no item has focus.
type Menu struct {
	trigger string
	items   []Item
	cursor  int
	open    bool
}

func New(trigger string) *Menu {
	return &Menu{trigger: trigger, cursor: -1}
}

func (m *Menu) Trigger() string {
	if m == nil {
		return ""
	}
	return m.trigger
}

func (m *Menu) IsOpen() bool {
	return m != nil && m.open
}

func (m *Menu) Cursor() int {
	if m == nil {
		return -1
	}
	return m.cursor
}

func (m *Menu) Items() []Item {
	if m == nil {
		return nil
	}
	return append([]Item(nil), m.items...)
}

// Open shows the menu with a fresh item list. focusFirst puts the cursor
// on the first item, as when the menu is opened from the keyboard.
func (m *Menu) Open(items []Item, focusFirst bool) {
	if m == nil {
		return
	}
	m.items = append([]Item(nil), items...)
	m.open = true
	m.cursor = -1
	if focusFirst && len(m.items) > 0 {
		m.cursor = 0
	}
}

func (m *Menu) Close() {
	if m == nil {
		return
	}
	m.open = false
	m.cursor = -1
}

// SetItems swaps in a rebuilt list, keeping the cursor on the same entry
// when it still exists.
func (m *Menu) SetItems(items []Item) {
	if m == nil {
		return
	}
	current, hadCurrent := m.Current()
	m.items = append([]Item(nil), items...)
	if !hadCurrent {
		m.cursor = -1
		return
	}
	for i, it := range m.items {
		if it == current {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
}

func (m *Menu) Current() (Item, bool) {
	if m == nil || m.cursor < 0 || m.cursor >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.cursor], true
}

// Select moves the cursor to idx, as a pointer hover or click does.
func (m *Menu) Select(idx int) (Item, bool) {
	if m == nil || idx < 0 || idx >= len(m.items) {
		return Item{}, false
	}
	m.cursor = idx
	return m.items[idx], true
}

func (m *Menu) HandleKey(key string) Result {
	if m == nil || !m.open {
		return Result{Event: EventNone}
	}
	switch key {
	case "down":
		if len(m.items) == 0 {
			return Result{Event: EventNone}
		}
		if m.cursor < len(m.items)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
		return Result{Event: EventMoved}
	case "up":
		if m.cursor > 0 {
			m.cursor--
			return Result{Event: EventMoved}
		}
		return Result{Event: EventClosed}
	case "home":
		if len(m.items) == 0 {
			return Result{Event: EventNone}
		}
		m.cursor = 0
		return Result{Event: EventMoved}
	case "end":
		if len(m.items) == 0 {
			return Result{Event: EventNone}
		}
		m.cursor = len(m.items) - 1
		return Result{Event: EventMoved}
	case "esc":
		return Result{Event: EventClosed}
	case "tab", "shift+tab":
		return Result{Event: EventCloseAll}
	case "enter", " ", "space":
		item, ok := m.Current()
		if !ok {
			return Result{Event: EventNone}
		}
		return Result{Event: EventChosen, Item: item}
	default:
		if m.typeahead(key) {
			return Result{Event: EventMoved}
		}
		return Result{Event: EventNone}
	}
}

// typeahead jumps to the next item after the cursor whose text starts with
// key, wrapping to the first match.
func (m *Menu) typeahead(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return false
	}
	fold := cases.Fold()
	want := fold.String(key)
	first := -1
	for i, it := range m.items {
		if !startsWithFolded(fold, it.Text, want) {
			continue
		}
		if first < 0 {
			first = i
		}
		if i > m.cursor {
			m.cursor = i
			return true
		}
	}
	if first < 0 {
		return false
	}
	m.cursor = first
	return true
}

func startsWithFolded(fold cases.Caser, text, prefix string) bool {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError && size == 0 {
		return false
	}
	return fold.String(text[:size]) == prefix
}
