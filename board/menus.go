package board

import (
	"fmt"

	"go.uber.org/zap"

	"wordslot/menu"
	"wordslot/schedule"
)

// menuSet holds one picker per slot. At most one is open.
type menuSet struct {
	bySlot map[SlotID]*menu.Menu
	open   SlotID
}

func newMenuSet(slots []SlotID) *menuSet {
	ms := &menuSet{bySlot: make(map[SlotID]*menu.Menu, len(slots))}
	for _, id := range slots {
		ms.bySlot[id] = menu.New(string(id))
	}
	return ms
}

func (ms *menuSet) current() (SlotID, *menu.Menu, bool) {
	if ms.open == "" {
		return "", nil, false
	}
	return ms.open, ms.bySlot[ms.open], true
}

// menuItems builds the picker entries for id from the live store.
func (s *Session) menuItems(id SlotID) []menu.Item {
	pool := s.store.Pool()
	labels := make([]string, len(pool))
	for i, tok := range pool {
		labels[i] = tok.Label()
	}
	occ, occupied := s.store.Occupant(id)
	return menu.Build(labels, occ.Label(), occupied)
}

// refreshMenus rebuilds the open menu after a store change.
func (s *Session) refreshMenus() {
	id, m, ok := s.menus.current()
	if !ok {
		return
	}
	m.SetItems(s.menuItems(id))
}

// Menu returns the picker for id.
func (s *Session) Menu(id SlotID) *menu.Menu {
	return s.menus.bySlot[id]
}

// OpenMenu reports the slot whose menu is open.
func (s *Session) OpenMenu() (SlotID, bool) {
	id, _, ok := s.menus.current()
	return id, ok
}

// ShowMenu opens id's menu, closing any other. Opening from the keyboard
// puts focus on the first entry.
func (s *Session) ShowMenu(id SlotID, focusFirst bool) error {
	m, ok := s.menus.bySlot[id]
	if !ok {
		return s.structural(fmt.Errorf("menu: %w %q", ErrUnknownSlot, id))
	}
	s.CloseMenus(false)
	m.Open(s.menuItems(id), focusFirst)
	s.menus.open = id
	s.log.Debug("menu opened", zap.String("slot", string(id)), zap.Int("items", len(m.Items())))
	return nil
}

// ToggleMenu is a click on id's menu button.
func (s *Session) ToggleMenu(id SlotID, focusFirst bool) error {
	if open, ok := s.OpenMenu(); ok && open == id {
		s.CloseMenus(false)
		return nil
	}
	return s.ShowMenu(id, focusFirst)
}

// CloseMenus closes the open menu. With restoreFocus the trigger button
// gets focus back one frame later.
func (s *Session) CloseMenus(restoreFocus bool) {
	id, m, ok := s.menus.current()
	if !ok {
		return
	}
	m.Close()
	s.menus.open = ""
	if restoreFocus {
		s.sched.After(schedule.Focus, s.cfg.FocusDelay, func() {
			s.requestFocus(FocusRequest{Kind: FocusMenuButton, Slot: id})
		})
	}
}

// MenuKey routes a key press to the open menu. It reports whether the
// menu consumed the key.
func (s *Session) MenuKey(key string) (bool, error) {
	id, m, ok := s.menus.current()
	if !ok {
		return false, nil
	}
	res := m.HandleKey(key)
	switch res.Event {
	case menu.EventMoved:
		return true, nil
	case menu.EventChosen:
		return true, s.chooseMenuItem(id, res.Item)
	case menu.EventClosed:
		s.CloseMenus(true)
		return true, nil
	case menu.EventCloseAll:
		s.CloseMenus(false)
		return false, nil
	default:
		return false, nil
	}
}

// ChooseMenuItem is a click on entry idx of id's open menu.
func (s *Session) ChooseMenuItem(id SlotID, idx int) error {
	open, ok := s.OpenMenu()
	if !ok || open != id {
		return nil
	}
	item, ok := s.menus.bySlot[id].Select(idx)
	if !ok {
		return nil
	}
	return s.chooseMenuItem(id, item)
}

func (s *Session) chooseMenuItem(id SlotID, item menu.Item) error {
	s.CloseMenus(true)
	switch item.Action {
	case menu.ActionRemove:
		occ, ok := s.store.Occupant(id)
		if !ok || occ != Token(item.Token) {
			s.log.Debug("stale remove entry", zap.String("slot", string(id)), zap.String("token", item.Token))
			return nil
		}
		s.sel.clear()
		return s.ReturnToPool(occ)
	default:
		return s.PlaceFromPool(Token(item.Token), id)
	}
}
