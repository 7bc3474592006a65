package main

import (
	"fmt"
	"unicode/utf8"

	"wordslot/board"
)

// Box is a rectangle on the character grid.
type Box struct {
	X, Y          int
	Width, Height int
	Lines         []string
}

func (b Box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

type HitKind int

const (
	HitNone HitKind = iota
	HitToken
	HitSlot
	HitMenuButton
	HitMenuItem
	// HitMenu is the popup frame or an empty row inside it.
	HitMenu
)

// Hit is what sits under a screen cell.
type Hit struct {
	Kind  HitKind
	Token board.Token
	Slot  board.SlotID
	Item  int
}

// DropTarget resolves a hit into the target a drag ends on. A menu button
// belongs to its slot; menus are never drop targets.
func (h Hit) DropTarget() board.DropTarget {
	switch h.Kind {
	case HitToken:
		return board.TokenTarget(h.Token)
	case HitSlot, HitMenuButton:
		return board.SlotTarget(h.Slot)
	default:
		return board.NoTarget()
	}
}

type menuBox struct {
	slot  board.SlotID
	box   Box
	items int
}

// Layout places every element of the board on the character grid. It is
// rebuilt after each update so hit tests match what is on screen.
type Layout struct {
	width   int
	height  int
	promptY int
	bankY   int
	headerY int
	tokens  map[board.Token]Box
	slots   map[board.SlotID]Box
	buttons map[board.SlotID]Box
	order   []board.SlotID
	menu    *menuBox
}

func textWidth(s string) int { return utf8.RuneCountInString(s) }

func tokenWidth(tok board.Token) int { return textWidth(tok.Label()) + 4 }

func buildLayout(s *board.Session, width int) *Layout {
	st := s.Store()
	l := &Layout{
		width:   width,
		tokens:  make(map[board.Token]Box),
		slots:   make(map[board.SlotID]Box),
		buttons: make(map[board.SlotID]Box),
		order:   st.Slots(),
	}

	y := 0
	l.promptY = y
	y += 2
	l.bankY = y
	y++

	x := marginX
	for _, tok := range st.Pool() {
		w := tokenWidth(tok)
		if x > marginX && x+w > width {
			x = marginX
			y += tokenHeight
		}
		l.tokens[tok] = Box{X: x, Y: y, Width: w, Height: tokenHeight, Lines: []string{tok.Label()}}
		l.grow(x+w, y+tokenHeight)
		x += w + tokenGap
	}
	y += tokenHeight + 1

	l.headerY = y
	y++

	inner := 0
	for _, tok := range st.Tokens() {
		inner = max(inner, tokenWidth(tok))
	}
	slotW := inner + 2
	for _, id := range l.order {
		sb := Box{X: marginX + slotLabelW, Y: y, Width: slotW, Height: slotHeight}
		l.slots[id] = sb
		if occ, ok := st.Occupant(id); ok {
			l.tokens[occ] = Box{X: sb.X + 1, Y: sb.Y + 1, Width: inner, Height: tokenHeight, Lines: []string{occ.Label()}}
		}
		bb := Box{X: sb.X + sb.Width + 1, Y: sb.Y + slotHeight/2, Width: textWidth(menuButtonClosed), Height: 1}
		l.buttons[id] = bb
		l.grow(bb.X+bb.Width, sb.Y+sb.Height)
		y += slotHeight
	}

	if id, ok := s.OpenMenu(); ok {
		items := s.Menu(id).Items()
		w := minMenuW
		for _, it := range items {
			w = max(w, textWidth(it.Text)+6)
		}
		bb := l.buttons[id]
		mb := Box{X: bb.X + bb.Width + 1, Y: l.slots[id].Y, Width: w, Height: max(len(items), 1) + 2}
		l.menu = &menuBox{slot: id, box: mb, items: len(items)}
		l.grow(mb.X+mb.Width, mb.Y+mb.Height)
	}
	return l
}

func (l *Layout) grow(right, bottom int) {
	l.width = max(l.width, right)
	l.height = max(l.height, bottom)
}

// HitTest reports the topmost element at (x, y): the open menu, then
// tokens, then menu buttons, then slots.
func (l *Layout) HitTest(x, y int) Hit {
	if l.menu != nil && l.menu.box.contains(x, y) {
		row := y - l.menu.box.Y - 1
		inside := x > l.menu.box.X && x < l.menu.box.X+l.menu.box.Width-1
		if inside && row >= 0 && row < l.menu.items {
			return Hit{Kind: HitMenuItem, Slot: l.menu.slot, Item: row}
		}
		return Hit{Kind: HitMenu, Slot: l.menu.slot, Item: -1}
	}
	for tok, b := range l.tokens {
		if b.contains(x, y) {
			return Hit{Kind: HitToken, Token: tok, Item: -1}
		}
	}
	for id, b := range l.buttons {
		if b.contains(x, y) {
			return Hit{Kind: HitMenuButton, Slot: id, Item: -1}
		}
	}
	for id, b := range l.slots {
		if b.contains(x, y) {
			return Hit{Kind: HitSlot, Slot: id, Item: -1}
		}
	}
	return Hit{Kind: HitNone, Item: -1}
}

// TokenBox returns where tok is drawn.
func (l *Layout) TokenBox(tok board.Token) (Box, bool) {
	b, ok := l.tokens[tok]
	return b, ok
}

func (l *Layout) SlotBox(id board.SlotID) (Box, bool) {
	b, ok := l.slots[id]
	return b, ok
}

func (l *Layout) ButtonBox(id board.SlotID) (Box, bool) {
	b, ok := l.buttons[id]
	return b, ok
}

// HeaderLine is the row of the dropzone header, which carries the outcome
// marker.
func (l *Layout) HeaderLine() int { return l.headerY }

type borderStyle int

const (
	borderPlain borderStyle = iota
	borderFocus
	borderGrab
)

// renderOptions selects what is drawn. Exports leave interactive off so
// only the arrangement itself appears.
type renderOptions struct {
	prompt      string
	focus       *focusItem
	interactive bool
}

// Render draws the board onto a character grid and returns its rows.
func (l *Layout) Render(s *board.Session, opts renderOptions) []string {
	grid := make([][]rune, l.height)
	for y := range grid {
		grid[y] = make([]rune, l.width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	writeAt(grid, 0, l.promptY, opts.prompt)
	writeAt(grid, 0, l.bankY, "Word bank")
	if len(s.Store().Pool()) == 0 {
		writeAt(grid, marginX, l.bankY+1, "(empty)")
	}
	writeAt(grid, 0, l.headerY, "Dropzones")

	for i, id := range l.order {
		sb := l.slots[id]
		writeAt(grid, marginX, sb.Y+slotHeight/2, fmt.Sprintf("%d.", i+1))
		style := borderPlain
		if opts.focus.is(focusSlot, "", id) {
			style = borderFocus
		}
		drawBoxAt(grid, sb, style)

		label := menuButtonClosed
		switch {
		case l.menu != nil && l.menu.slot == id:
			label = menuButtonOpen
		case opts.focus.is(focusMenuButton, "", id):
			label = menuButtonFocused
		}
		if opts.interactive {
			bb := l.buttons[id]
			writeAt(grid, bb.X, bb.Y, label)
		}
	}

	for tok, b := range l.tokens {
		style := borderPlain
		switch {
		case opts.interactive && s.Grabbed(tok):
			style = borderGrab
		case opts.focus.is(focusToken, tok, ""):
			style = borderFocus
		}
		drawBoxAt(grid, b, style)
	}

	if opts.interactive && l.menu != nil {
		m := s.Menu(l.menu.slot)
		lines := make([]string, 0, l.menu.items)
		for i, it := range m.Items() {
			prefix := "  "
			if i == m.Cursor() {
				prefix = "> "
			}
			lines = append(lines, prefix+it.Text)
		}
		if len(lines) == 0 {
			lines = append(lines, "  (no words)")
		}
		b := l.menu.box
		b.Lines = lines
		clearBox(grid, b)
		drawBoxAt(grid, b, borderPlain)
	}

	out := make([]string, len(grid))
	for y, row := range grid {
		out[y] = trimRight(string(row))
	}
	return out
}

func (f *focusItem) is(kind focusKind, tok board.Token, id board.SlotID) bool {
	if f == nil || f.kind != kind {
		return false
	}
	if kind == focusToken {
		return f.token == tok
	}
	return f.slot == id
}

func drawBoxAt(grid [][]rune, box Box, style borderStyle) {
	var corner, horizontal, vertical rune
	switch style {
	case borderGrab:
		corner, horizontal, vertical = '#', '#', '#'
	case borderFocus:
		corner, horizontal, vertical = '*', '=', '|'
	default:
		corner, horizontal, vertical = '+', '-', '|'
	}

	for y := box.Y; y < box.Y+box.Height; y++ {
		for x := box.X; x < box.X+box.Width; x++ {
			if !inGrid(grid, x, y) {
				continue
			}
			edgeY := y == box.Y || y == box.Y+box.Height-1
			edgeX := x == box.X || x == box.X+box.Width-1
			switch {
			case edgeY && edgeX:
				grid[y][x] = corner
			case edgeY:
				grid[y][x] = horizontal
			case edgeX:
				grid[y][x] = vertical
			}
		}
	}

	maxWidth := box.Width - 4
	for i, line := range box.Lines {
		ty := box.Y + 1 + i
		if ty >= box.Y+box.Height-1 {
			break
		}
		r := []rune(line)
		if maxWidth >= 0 && len(r) > maxWidth {
			r = r[:maxWidth]
		}
		writeAt(grid, box.X+2, ty, string(r))
	}
}

func clearBox(grid [][]rune, box Box) {
	for y := box.Y; y < box.Y+box.Height; y++ {
		for x := box.X; x < box.X+box.Width; x++ {
			if inGrid(grid, x, y) {
				grid[y][x] = ' '
			}
		}
	}
}

func writeAt(grid [][]rune, x, y int, s string) {
	for i, r := range []rune(s) {
		if inGrid(grid, x+i, y) {
			grid[y][x+i] = r
		}
	}
}

func inGrid(grid [][]rune, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

func trimRight(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}
