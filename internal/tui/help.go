package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.screenBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen:   string(m.Screen()),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) screenBindings() []KeyBinding {
	switch m.Screen() {
	case navigation.DestinationSaveReminder:
		return []KeyBinding{
			{Key: "tab", Action: "switch field"},
			{Key: "ctrl+l", Action: "select location"},
			{Key: "ctrl+s", Action: "save reminder"},
			{Key: "esc", Action: "back"},
		}
	case navigation.DestinationSelectLocation:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "enter", Action: "confirm location"},
			{Key: "esc", Action: "back"},
		}
	case navigation.DestinationReminderDetail:
		return []KeyBinding{
			{Key: "d", Action: "delete reminder"},
			{Key: "esc", Action: "back"},
			{Key: "/", Action: "open command palette"},
		}
	default:
		return []KeyBinding{
			{Key: "a", Action: "add reminder"},
			{Key: "enter", Action: "open reminder"},
			{Key: "r", Action: "reload"},
			{Key: "j/k", Action: "move selection"},
			{Key: "/", Action: "open command palette"},
			{Key: "?", Action: "toggle help"},
			{Key: "q", Action: "quit"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	kbs := m.screenBindings()
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
