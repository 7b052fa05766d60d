package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/commands"
	"github.com/sandeepkv93/locrem/internal/geofence"
	"github.com/sandeepkv93/locrem/internal/navigation"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.Screen() != navigation.DestinationSaveReminder {
				follow = m.navigate(navigation.To{Destination: navigation.DestinationSaveReminder})
			}
			m.titleInput.SetValue(a.Title)
			m.titleInput.CursorEnd()
			m.syncFormFields()
			return commands.Result{Message: fmt.Sprintf("new reminder: %s (ctrl+l to pick a location)", a.Title)}, nil
		},
		At: func(a commands.AtArgs) (commands.Result, error) {
			if m.Monitor == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "geofence monitor not running"}
			}
			fix := geofence.Fix{Latitude: a.Latitude, Longitude: a.Longitude, At: time.Now().UTC()}
			if err := m.Monitor.Report(fix); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("location reported: %.6f, %.6f", a.Latitude, a.Longitude)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			m.ListVM.OpenReminder(s.ID)
			follow = m.consumeBase(&m.ListVM.Base)
			return commands.Result{Message: fmt.Sprintf("showing reminder: %s", s.ID)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			follow = m.deleteReminderCmd(d.ID)
			return commands.Result{Message: fmt.Sprintf("deleting reminder: %s", d.ID)}, nil
		},
		Clear: func() (commands.Result, error) {
			follow = m.clearRemindersCmd()
			return commands.Result{Message: "clearing reminders"}, nil
		},
		Reload: func() (commands.Result, error) {
			follow = m.startLoad()
			return commands.Result{Message: "reloading reminders"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}
