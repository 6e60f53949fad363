package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	week    key.Binding
	month   key.Binding
	quarter key.Binding
	refresh key.Binding
	sync    key.Binding
	videos  key.Binding
	back    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		week:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "7 days")),
		month:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "30 days")),
		quarter: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "90 days")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		sync:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync")),
		videos:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "videos")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.week, k.month, k.quarter, k.sync, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.week, k.month, k.quarter},
		{k.refresh, k.sync, k.videos},
		{k.back, k.quit},
	}
}
