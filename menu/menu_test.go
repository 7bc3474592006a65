package menu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func texts(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func TestBuildListsPoolThenRemove(t *testing.T) {
	items := Build([]string{"Wyoming", "California"}, "Alaska", true)

	want := []Item{
		{Action: ActionPlace, Token: "Wyoming", Text: "Wyoming", Label: "Wyoming"},
		{Action: ActionPlace, Token: "California", Text: "California", Label: "California"},
		{Action: ActionRemove, Token: "Alaska", Text: "Remove Alaska", Label: "Remove Alaska and return it to word bank"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmptySlotHasNoRemove(t *testing.T) {
	items := Build([]string{"Alaska"}, "", false)
	if diff := cmp.Diff([]string{"Alaska"}, texts(items)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func openMenu(focusFirst bool) *Menu {
	m := New("dz-1")
	m.Open(Build([]string{"Alaska", "Rhode Island", "California", "Wyoming"}, "Arizona", true), focusFirst)
	return m
}

func TestKeyboardOpenFocusesFirstItem(t *testing.T) {
	m := openMenu(true)
	if m.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", m.Cursor())
	}
	if !m.IsOpen() || m.Trigger() != "dz-1" {
		t.Fatalf("unexpected menu state open=%v trigger=%q", m.IsOpen(), m.Trigger())
	}
}

func TestDownWrapsToFirst(t *testing.T) {
	m := openMenu(true)
	_ = m.HandleKey("end")
	if m.Cursor() != 4 {
		t.Fatalf("cursor after end = %d, want 4", m.Cursor())
	}
	res := m.HandleKey("down")
	if res.Event != EventMoved || m.Cursor() != 0 {
		t.Fatalf("down from last: event=%v cursor=%d", res.Event, m.Cursor())
	}
}

func TestUpFromFirstCloses(t *testing.T) {
	m := openMenu(true)
	_ = m.HandleKey("down")
	if res := m.HandleKey("up"); res.Event != EventMoved || m.Cursor() != 0 {
		t.Fatalf("up to first: event=%v cursor=%d", res.Event, m.Cursor())
	}
	if res := m.HandleKey("up"); res.Event != EventClosed {
		t.Fatalf("up from first: event=%v, want EventClosed", res.Event)
	}
}

func TestPointerOpenStartsWithoutFocus(t *testing.T) {
	m := openMenu(false)
	if m.Cursor() != -1 {
		t.Fatalf("cursor = %d, want -1", m.Cursor())
	}
	if res := m.HandleKey("enter"); res.Event != EventNone {
		t.Fatalf("enter without focus: event=%v", res.Event)
	}
	_ = m.HandleKey("down")
	if m.Cursor() != 0 {
		t.Fatalf("down from no focus: cursor=%d, want 0", m.Cursor())
	}
}

func TestHomeEndEscapeTab(t *testing.T) {
	m := openMenu(true)
	_ = m.HandleKey("end")
	_ = m.HandleKey("home")
	if m.Cursor() != 0 {
		t.Fatalf("home: cursor=%d", m.Cursor())
	}
	if res := m.HandleKey("esc"); res.Event != EventClosed {
		t.Fatalf("esc: event=%v", res.Event)
	}
	if res := m.HandleKey("tab"); res.Event != EventCloseAll {
		t.Fatalf("tab: event=%v", res.Event)
	}
}

func TestEnterChoosesCurrent(t *testing.T) {
	m := openMenu(true)
	_ = m.HandleKey("down")
	res := m.HandleKey("enter")
	if res.Event != EventChosen || res.Item.Token != "Rhode Island" {
		t.Fatalf("enter: %+v", res)
	}
	res = m.HandleKey(" ")
	if res.Event != EventChosen || res.Item.Token != "Rhode Island" {
		t.Fatalf("space: %+v", res)
	}
}

func TestTypeaheadAdvancesAndWraps(t *testing.T) {
	m := openMenu(true)
	// Items: Alaska, Rhode Island, California, Wyoming, Remove Arizona.
	_ = m.HandleKey("r")
	if m.Cursor() != 1 {
		t.Fatalf("first r: cursor=%d, want 1", m.Cursor())
	}
	_ = m.HandleKey("R")
	if m.Cursor() != 4 {
		t.Fatalf("second r: cursor=%d, want 4", m.Cursor())
	}
	_ = m.HandleKey("r")
	if m.Cursor() != 1 {
		t.Fatalf("third r wraps: cursor=%d, want 1", m.Cursor())
	}
	if res := m.HandleKey("z"); res.Event != EventNone || m.Cursor() != 1 {
		t.Fatalf("no match: event=%v cursor=%d", res.Event, m.Cursor())
	}
}

func TestEmptyMenuIgnoresNavigation(t *testing.T) {
	m := New("dz-2")
	m.Open(nil, true)
	for _, key := range []string{"down", "home", "end", "enter", "a"} {
		if res := m.HandleKey(key); res.Event != EventNone {
			t.Fatalf("%s on empty menu: event=%v", key, res.Event)
		}
	}
}

func TestClosedMenuIgnoresKeys(t *testing.T) {
	m := openMenu(true)
	m.Close()
	if res := m.HandleKey("down"); res.Event != EventNone {
		t.Fatalf("closed menu: event=%v", res.Event)
	}
}

func TestSetItemsKeepsCursorOnSameEntry(t *testing.T) {
	m := openMenu(true)
	_ = m.HandleKey("end") // Remove Arizona
	m.SetItems(Build([]string{"Wyoming", "Utah"}, "Arizona", true))
	cur, ok := m.Current()
	if !ok || cur.Action != ActionRemove {
		t.Fatalf("cursor moved off remove entry: %+v ok=%v", cur, ok)
	}

	m.SetItems(Build([]string{"Wyoming"}, "", false))
	if m.Cursor() != 0 {
		t.Fatalf("cursor after losing entry = %d, want clamp to 0", m.Cursor())
	}

	m.SetItems(nil)
	if m.Cursor() != -1 {
		t.Fatalf("cursor on empty list = %d, want -1", m.Cursor())
	}
}

func TestSelectByIndex(t *testing.T) {
	m := openMenu(false)
	item, ok := m.Select(2)
	if !ok || item.Token != "California" || m.Cursor() != 2 {
		t.Fatalf("select: %+v ok=%v cursor=%d", item, ok, m.Cursor())
	}
	if _, ok := m.Select(9); ok {
		t.Fatalf("out of range select succeeded")
	}
}

func TestNilMenuIsInert(t *testing.T) {
	var m *Menu
	if m.IsOpen() || m.Cursor() != -1 || m.Items() != nil || m.Trigger() != "" {
		t.Fatalf("nil menu not inert")
	}
	if res := m.HandleKey("down"); res.Event != EventNone {
		t.Fatalf("nil menu handled key")
	}
}
