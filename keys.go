package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	First    key.Binding
	Last     key.Binding
	Activate key.Binding
	Cancel   key.Binding
	Return   key.Binding
	Menu     key.Binding
	PNG      key.Binding
	Text     key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab", "right", "l", "down", "j"), key.WithHelp("tab/→/↓", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "left", "h", "up", "k"), key.WithHelp("S-tab/←/↑", "previous")),
		First:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		Last:     key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "grab/drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Return:   key.NewBinding(key.WithKeys("backspace", "delete", "x"), key.WithHelp("x/del", "back to word bank")),
		Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "slot menu")),
		PNG:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "export PNG")),
		Text:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "export text")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy arrangement")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Next, k.Menu, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Activate, k.Cancel},
		{k.Return, k.Menu},
		{k.PNG, k.Text, k.Copy},
		{k.Help, k.Quit},
	}
}
