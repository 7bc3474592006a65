package main

import (
	"github.com/charmbracelet/bubbles/help"
	"go.uber.org/zap"

	"wordslot/board"
	"wordslot/schedule"
)

type model struct {
	width          int
	height         int
	session        *board.Session
	config         *Config
	log            *zap.Logger
	layout         *Layout
	focus          focusItem
	drag           *dragState
	mode           Mode
	help           bool
	helpModel      help.Model
	keys           keyMap
	filename       string
	exportPath     string
	fileOp         FileOperation
	confirmAction  ConfirmAction
	errorMessage   string
	successMessage string
}

type focusKind int

const (
	focusToken focusKind = iota
	focusSlot
	focusMenuButton
)

// focusItem is one stop in the keyboard focus ring.
type focusItem struct {
	kind  focusKind
	token board.Token
	slot  board.SlotID
}

// dragState tracks a left-button press on a token. It becomes a drag once
// the pointer moves off the press cell; a release before that is a click.
type dragState struct {
	token          board.Token
	startX, startY int
	active         bool
}

// timerMsg carries a scheduler timer back into Update once it elapses.
type timerMsg struct {
	timer schedule.Timer
}
