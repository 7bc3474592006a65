package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wordslot/board"
)

var (
	promptStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	liveStyle    = lipgloss.NewStyle().Faint(true)
	modeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m model) markerStyle() lipgloss.Style {
	switch m.session.Marker() {
	case board.MarkerSuccess:
		return successStyle
	case board.MarkerError:
		return errorStyle
	default:
		return headerStyle
	}
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	lines := m.layout.Render(m.session, renderOptions{
		prompt:      m.config.Puzzle.Prompt,
		focus:       &m.focus,
		interactive: true,
	})
	if len(lines) > 0 {
		lines[0] = promptStyle.Render(lines[0])
	}
	if h := m.layout.HeaderLine(); h < len(lines) {
		lines[h] = m.markerStyle().Render(lines[h])
	}

	// status, mode line and live region stay visible on short terminals
	if avail := m.height - 3; avail > 0 && len(lines) > avail {
		lines = lines[:avail]
	}

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.markerStyle().Render(m.session.Status()))
	result.WriteString("\n")
	result.WriteString(modeStyle.Render(m.statusLine()))
	result.WriteString("\n")
	result.WriteString(liveStyle.Render("Live: " + m.session.Live()))
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		opStr := "Export text"
		if m.fileOp == FileOpSavePNG {
			opStr = "Export PNG"
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | ERROR: %s | %s filename: %s | Enter=retry, Esc=cancel", m.errorMessage, opStr, m.filename)
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", opStr, m.filename)
	case ModeConfirm:
		message := "Quit wordslot? (y/n)"
		if m.confirmAction == ConfirmOverwriteFile {
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.exportPath)
		}
		return "Mode: CONFIRM | " + message
	}

	status := fmt.Sprintf("Mode: %s | Focus: %s", m.modeString(), m.focusDescription())
	if sel, ok := m.session.Selection().Current(); ok {
		status += fmt.Sprintf(" | Grabbed: %s from %s", sel.Token, sel.Origin)
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" {
		status += " | " + m.helpModel.ShortHelpView(m.keys.ShortHelp())
	}
	return status
}

// focusDescription names the focused element the way a screen reader
// would announce it.
func (m model) focusDescription() string {
	switch m.focus.kind {
	case focusToken:
		return fmt.Sprintf("%s (%s)", m.focus.token, m.session.DescribedBy(m.focus.token))
	case focusSlot:
		idx := m.session.Store().SlotIndex(m.focus.slot)
		if occ, ok := m.session.Store().Occupant(m.focus.slot); ok {
			return fmt.Sprintf("dropzone %d, holds %s", idx+1, occ)
		}
		return fmt.Sprintf("dropzone %d, empty", idx+1)
	case focusMenuButton:
		idx := m.session.Store().SlotIndex(m.focus.slot)
		return fmt.Sprintf("menu for dropzone %d", idx+1)
	}
	return "none"
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "BOARD"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"wordslot Help",
		"=============",
		"",
		"Keyboard:",
		"---------",
		"  Enter/Space on a word      Grab it; again on the same word to let go",
		"  Enter/Space on a dropzone  Drop the grabbed word there",
		"  Enter/Space on a word      With another word grabbed: swap them",
		"  Down on [v]                Open the dropzone menu",
		"  x/Delete/Backspace         Send the focused word back to the word bank",
		"",
		"Menu:",
		"-----",
		"  Up/Down/Home/End           Move between entries",
		"  Letter                     Jump to the next entry starting with it",
		"  Enter/Space                Place the entry, or remove the current word",
		"  Esc                        Close and return to the menu button",
		"",
		"Mouse:",
		"------",
		"  Drag a word                Drop it on a dropzone or on a placed word",
		"  Click a word               Same as Enter",
		"  Click [v]                  Toggle the dropzone menu",
		"",
	}
	body := strings.Join(helpLines, "\n") + "\n" + m.helpModel.FullHelpView(m.keys.FullHelp())
	return body + "\n\n" + modeStyle.Render("Help | Esc, q or ? to close")
}
