package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"wordslot/board"
)

// arrangementText lists each slot with its word, then the word bank.
func arrangementText(s *board.Session) string {
	st := s.Store()
	var b strings.Builder
	for i, id := range st.Slots() {
		word := "(empty)"
		if occ, ok := st.Occupant(id); ok {
			word = occ.Label()
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, word)
	}
	pool := st.Pool()
	labels := make([]string, len(pool))
	for i, tok := range pool {
		labels[i] = tok.Label()
	}
	fmt.Fprintf(&b, "Word bank: %s\n", strings.Join(labels, ", "))
	if out := s.Outcome(); out != board.Incomplete {
		fmt.Fprintf(&b, "Result: %s\n", out)
	}
	return b.String()
}

var writeClipboard = func(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available")
	}
	return clipboard.WriteAll(text)
}

func (m *model) copyArrangement() error {
	return writeClipboard(arrangementText(m.session))
}

// logSink records live-region deliveries in the session log.
type logSink struct {
	log *zap.Logger
}

func (l logSink) Live(message string) {
	l.log.Info("live", zap.String("message", message))
}

func (l logSink) Status(message string) {
	l.log.Info("status", zap.String("message", message))
}
