package board

import (
	"fmt"

	"go.uber.org/zap"
)

// Announcer receives narration. announce.Channel implements it.
type Announcer interface {
	Announce(message string, visible bool)
}

type Modality int

const (
	ModalityKeyboard Modality = iota
	// ModalityPointer is a native drag start.
	ModalityPointer
)

func (m Modality) String() string {
	switch m {
	case ModalityKeyboard:
		return "keyboard"
	case ModalityPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Selection is the grabbed token and where it was grabbed from.
type Selection struct {
	Token    Token
	Origin   Location
	Modality Modality
}

// SelectionController tracks at most one selected token.
type SelectionController struct {
	store  *Store
	ann    Announcer
	log    *zap.Logger
	cur    Selection
	active bool
}

func newSelectionController(store *Store, ann Announcer, log *zap.Logger) *SelectionController {
	return &SelectionController{store: store, ann: ann, log: log}
}

func (c *SelectionController) Selected() (Token, bool) {
	return c.cur.Token, c.active
}

func (c *SelectionController) Current() (Selection, bool) {
	return c.cur, c.active
}

func (c *SelectionController) IsSelected(tok Token) bool {
	return c.active && c.cur.Token == tok
}

// Select grabs tok. A pointer drag start replaces any earlier selection;
// other modalities get ErrAlreadySelected when a different token is held
// so the caller can turn the request into a swap.
func (c *SelectionController) Select(tok Token, modality Modality) error {
	loc, ok := c.store.Location(tok)
	if !ok {
		return fmt.Errorf("select: %w %q", ErrUnknownToken, tok)
	}
	if c.active {
		if c.cur.Token == tok && modality != ModalityPointer {
			return nil
		}
		if c.cur.Token != tok && modality != ModalityPointer {
			return ErrAlreadySelected
		}
		c.log.Debug("selection replaced", zap.String("previous", c.cur.Token.Label()), zap.String("token", tok.Label()))
	}
	c.cur = Selection{Token: tok, Origin: loc, Modality: modality}
	c.active = true
	c.ann.Announce(grabbedMessage(tok), false)
	c.log.Debug("selected", zap.String("token", tok.Label()), zap.Stringer("origin", loc), zap.Stringer("modality", modality))
	return nil
}

// Replace drops the current selection without narration and grabs tok.
func (c *SelectionController) Replace(tok Token, modality Modality) error {
	c.clear()
	return c.Select(tok, modality)
}

// Cancel releases the selection in place. It reports whether anything was
// selected.
func (c *SelectionController) Cancel() bool {
	if !c.active {
		return false
	}
	tok := c.cur.Token
	c.clear()
	c.ann.Announce(canceledMessage(tok), false)
	c.log.Debug("selection canceled", zap.String("token", tok.Label()))
	return true
}

// Deselect is a second keyboard activation of the selected token.
func (c *SelectionController) Deselect() bool {
	return c.Cancel()
}

func (c *SelectionController) clear() {
	c.cur = Selection{}
	c.active = false
}

// DescribedBy is the accessible description of tok's drag state.
func (c *SelectionController) DescribedBy(tok Token) string {
	if c.IsSelected(tok) {
		return "drag grab"
	}
	return "drag"
}
