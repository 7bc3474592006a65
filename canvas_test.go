package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordslot/board"
)

func newTestSession(t *testing.T) *board.Session {
	t.Helper()
	s, err := board.New(board.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestBuildLayout(t *testing.T) {
	s := newTestSession(t)
	l := buildLayout(s, 80)

	w, ok := l.TokenBox("Wyoming")
	require.True(t, ok)
	assert.Equal(t, Box{X: marginX, Y: 3, Width: 11, Height: tokenHeight, Lines: []string{"Wyoming"}}, w)

	c, _ := l.TokenBox("California")
	assert.Equal(t, w.X+w.Width+tokenGap, c.X)
	assert.Equal(t, w.Y, c.Y)

	first, ok := l.SlotBox("dz-1")
	require.True(t, ok)
	second, _ := l.SlotBox("dz-2")
	assert.Equal(t, first.Y+slotHeight, second.Y)
	assert.Equal(t, len("Rhode Island")+4+2, first.Width, "slots fit the widest word")
	assert.Greater(t, first.Y, l.HeaderLine())

	btn, ok := l.ButtonBox("dz-1")
	require.True(t, ok)
	assert.Equal(t, first.X+first.Width+1, btn.X)
	assert.Nil(t, l.menu)
}

func TestBuildLayoutWrapsWordBank(t *testing.T) {
	s := newTestSession(t)
	l := buildLayout(s, 30)

	w, _ := l.TokenBox("Wyoming")
	a, _ := l.TokenBox("Alaska")
	assert.Greater(t, a.Y, w.Y)
	for _, tok := range s.Store().Pool() {
		b, _ := l.TokenBox(tok)
		assert.LessOrEqual(t, b.X+b.Width, 30, "%s overflows", tok)
	}
}

func TestHitTest(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.PlaceFromPool("Alaska", "dz-1"))
	l := buildLayout(s, 80)

	a, _ := l.TokenBox("Alaska")
	sb, _ := l.SlotBox("dz-1")
	bb, _ := l.ButtonBox("dz-1")
	empty, _ := l.SlotBox("dz-2")

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"placed token wins over its slot", a.X + 1, a.Y + 1, Hit{Kind: HitToken, Token: "Alaska", Item: -1}},
		{"slot border", sb.X, sb.Y, Hit{Kind: HitSlot, Slot: "dz-1", Item: -1}},
		{"empty slot", empty.X + 3, empty.Y + 2, Hit{Kind: HitSlot, Slot: "dz-2", Item: -1}},
		{"menu button", bb.X + 2, bb.Y, Hit{Kind: HitMenuButton, Slot: "dz-1", Item: -1}},
		{"prompt", 0, 0, Hit{Kind: HitNone, Item: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.HitTest(tt.x, tt.y))
		})
	}
}

func TestHitTestOpenMenu(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ShowMenu("dz-2", false))
	l := buildLayout(s, 80)
	require.NotNil(t, l.menu)
	mb := l.menu.box

	assert.Equal(t, 4, l.menu.items)
	assert.Equal(t, Hit{Kind: HitMenuItem, Slot: "dz-2", Item: 0}, l.HitTest(mb.X+1, mb.Y+1))
	assert.Equal(t, Hit{Kind: HitMenuItem, Slot: "dz-2", Item: 3}, l.HitTest(mb.X+3, mb.Y+4))
	assert.Equal(t, Hit{Kind: HitMenu, Slot: "dz-2", Item: -1}, l.HitTest(mb.X, mb.Y+1))
	assert.Equal(t, Hit{Kind: HitMenu, Slot: "dz-2", Item: -1}, l.HitTest(mb.X+1, mb.Y))
}

func TestHitDropTarget(t *testing.T) {
	assert.Equal(t, board.TokenTarget("Alaska"), Hit{Kind: HitToken, Token: "Alaska"}.DropTarget())
	assert.Equal(t, board.SlotTarget("dz-1"), Hit{Kind: HitSlot, Slot: "dz-1"}.DropTarget())
	assert.Equal(t, board.SlotTarget("dz-3"), Hit{Kind: HitMenuButton, Slot: "dz-3"}.DropTarget())
	assert.Equal(t, board.NoTarget(), Hit{Kind: HitMenuItem, Slot: "dz-3", Item: 1}.DropTarget())
	assert.Equal(t, board.NoTarget(), Hit{Kind: HitNone}.DropTarget())
}

func renderText(t *testing.T, s *board.Session, opts renderOptions) string {
	t.Helper()
	return strings.Join(buildLayout(s, 80).Render(s, opts), "\n")
}

func TestRenderBoard(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.PlaceFromPool("California", "dz-3"))

	out := renderText(t, s, renderOptions{prompt: "Order them", interactive: true})
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Order them", lines[0])
	assert.Contains(t, out, "Word bank")
	assert.Contains(t, out, "Dropzones")
	assert.Contains(t, out, "| Wyoming |")
	assert.Contains(t, out, "| California")
	assert.Contains(t, out, "3.")
	assert.Equal(t, 4, strings.Count(out, menuButtonClosed))
	for _, line := range lines {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestRenderGrabbedAndFocused(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ActivateToken("Alaska"))

	focus := focusItem{kind: focusToken, token: "Wyoming"}
	out := renderText(t, s, renderOptions{focus: &focus, interactive: true})
	assert.Contains(t, out, "# Alaska #")
	assert.Contains(t, out, "*=========*")

	out = renderText(t, s, renderOptions{})
	assert.NotContains(t, out, "#", "exports never show the grab state")
	assert.NotContains(t, out, menuButtonClosed)

	focus = focusItem{kind: focusMenuButton, slot: "dz-2"}
	out = renderText(t, s, renderOptions{focus: &focus, interactive: true})
	assert.Equal(t, 1, strings.Count(out, menuButtonFocused))
}

func TestRenderMenu(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.PlaceFromPool("Alaska", "dz-1"))
	require.NoError(t, s.ShowMenu("dz-1", true))

	out := renderText(t, s, renderOptions{interactive: true})
	assert.Contains(t, out, "> Wyoming")
	assert.Contains(t, out, "  Rhode Island")
	assert.Contains(t, out, "  Remove Alaska")
	assert.Contains(t, out, menuButtonOpen)
}

func TestRenderEmptyWordBank(t *testing.T) {
	s := newTestSession(t)
	for i, tok := range s.Validator().Target() {
		require.NoError(t, s.PlaceFromPool(tok, s.Store().Slots()[i]))
	}
	require.NoError(t, s.ShowMenu("dz-4", false))
	// the remove entry keeps an occupied slot's menu non-empty
	require.Len(t, s.Menu("dz-4").Items(), 1)

	out := renderText(t, s, renderOptions{interactive: true})
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "Remove Wyoming")
}

func TestFocusRing(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.session.PlaceFromPool("Alaska", "dz-1"))

	ring := m.focusRing()
	want := []focusItem{
		{kind: focusToken, token: "Wyoming"},
		{kind: focusToken, token: "California"},
		{kind: focusToken, token: "Rhode Island"},
		{kind: focusSlot, slot: "dz-1"},
		{kind: focusToken, token: "Alaska", slot: "dz-1"},
		{kind: focusMenuButton, slot: "dz-1"},
		{kind: focusSlot, slot: "dz-2"},
		{kind: focusMenuButton, slot: "dz-2"},
	}
	assert.Equal(t, want, ring[:len(want)])
	assert.Len(t, ring, 3+4*2+1)
}

func TestNavigationWraps(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "shift+tab")
	assert.Equal(t, focusItem{kind: focusMenuButton, slot: "dz-4"}, m.focus)
	m = press(t, m, "tab")
	assert.Equal(t, focusItem{kind: focusToken, token: "Wyoming"}, m.focus)

	m = press(t, m, "end")
	assert.Equal(t, focusItem{kind: focusMenuButton, slot: "dz-4"}, m.focus)
	m = press(t, m, "home")
	assert.Equal(t, focusItem{kind: focusToken, token: "Wyoming"}, m.focus)
}

func TestNavigationFollowsKeyBindings(t *testing.T) {
	m := newTestModel(t)
	m.keys.Next = key.NewBinding(key.WithKeys("n"))
	m.keys.Prev = key.NewBinding(key.WithKeys("p"))

	m = press(t, m, "tab")
	assert.Equal(t, focusItem{kind: focusToken, token: "Wyoming"}, m.focus)
	m = press(t, m, "n", "n")
	assert.Equal(t, focusItem{kind: focusToken, token: "Alaska"}, m.focus)
	m = press(t, m, "p")
	assert.Equal(t, focusItem{kind: focusToken, token: "California"}, m.focus)
}

func TestFocusFollowsPlacedToken(t *testing.T) {
	m := newTestModel(t)
	m.focus = focusItem{kind: focusToken, token: "Rhode Island"}

	require.NoError(t, m.session.PlaceFromPool("Rhode Island", "dz-2"))
	m = update(t, m, nil)

	assert.Equal(t, focusItem{kind: focusToken, token: "Rhode Island", slot: "dz-2"}, m.focus)
	id, ok := m.focusedSlot()
	assert.True(t, ok)
	assert.Equal(t, board.SlotID("dz-2"), id)
}

func TestFileNameEditing(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "T")
	for range len(".txt") {
		m = press(t, m, "backspace")
	}
	m = press(t, m, "-", "2", ".", "t", "x", "t")
	assert.Equal(t, "wordslot-2.txt", m.filename)
	assert.Contains(t, m.View(), "Export text filename: wordslot-2.txt")

	m = press(t, m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
}
