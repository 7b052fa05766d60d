package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/viewmodel"
)

// consumeBase drains the one-shot events of a view-model into the status bar
// and the screen stack.
func (m *Model) consumeBase(b *viewmodel.Base) tea.Cmd {
	if msg, ok := b.ShowErrorMessage.Consume(); ok {
		m.Status = StatusBar{Text: msg, IsError: true}
	}
	if msg, ok := b.ShowSnackBar.Consume(); ok {
		m.Status = StatusBar{Text: msg, IsError: true}
		m.notify("Reminders", msg, "error")
	}
	if key, ok := b.ShowSnackBarInt.Consume(); ok {
		m.Status = StatusBar{Text: key.Text(), IsError: true}
	}
	if msg, ok := b.ShowToast.Consume(); ok {
		m.Status = StatusBar{Text: msg}
		m.notify("Reminders", msg, "info")
	}
	if cmd, ok := b.NavigationCommand.Consume(); ok {
		return m.navigate(cmd)
	}
	return nil
}

func (m *Model) navigate(cmd navigation.Command) tea.Cmd {
	m.logger.Debug("navigate", "command", cmd.String())
	switch c := cmd.(type) {
	case navigation.To:
		m.Stack = append(m.Stack, c.Destination)
		return m.enter(c.Destination, c.ReminderID)
	case navigation.BackTo:
		for i := len(m.Stack) - 1; i >= 0; i-- {
			if m.Stack[i] == c.Destination {
				m.Stack = m.Stack[:i+1]
				return m.resume()
			}
		}
		m.Stack = []navigation.Destination{c.Destination}
		return m.resume()
	default:
		if len(m.Stack) > 1 {
			m.Stack = m.Stack[:len(m.Stack)-1]
		}
		return m.resume()
	}
}

// enter prepares a screen that was just pushed.
func (m *Model) enter(dest navigation.Destination, reminderID string) tea.Cmd {
	switch dest {
	case navigation.DestinationSaveReminder:
		m.SaveVM.OnClear()
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.formFocus = 0
		m.saving = false
		m.focusForm()
	case navigation.DestinationSelectLocation:
		m.nameInput.SetValue(m.SaveVM.ReminderSelectedLocationStr.Get())
		m.latInput.SetValue("")
		m.lngInput.SetValue("")
		m.pickerFocus = 0
		m.pickerErr = ""
		m.focusPicker()
	case navigation.DestinationReminderDetail:
		return loadDetailCmd(m.ctx, m.DetailVM, reminderID)
	case navigation.DestinationReminderList:
		return m.startLoad()
	}
	return nil
}

// resume refreshes the screen that became visible after a pop.
func (m *Model) resume() tea.Cmd {
	switch m.Screen() {
	case navigation.DestinationReminderList:
		return m.startLoad()
	case navigation.DestinationReminderDetail:
		if id := m.DetailVM.Reminder.Get().ID; id != "" {
			return loadDetailCmd(m.ctx, m.DetailVM, id)
		}
	case navigation.DestinationSaveReminder:
		m.focusForm()
	case navigation.DestinationSelectLocation:
		m.focusPicker()
	}
	return nil
}

func (m *Model) focusForm() {
	m.titleInput.Blur()
	m.descInput.Blur()
	if m.formFocus == 0 {
		m.titleInput.Focus()
	} else {
		m.descInput.Focus()
	}
}

func (m *Model) focusPicker() {
	inputs := []*textinput.Model{&m.nameInput, &m.latInput, &m.lngInput}
	for i, in := range inputs {
		if i == m.pickerFocus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}
