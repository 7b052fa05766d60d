package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/geofence"
	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/viewmodel"
)

type RemindersLoadedMsg struct{}

type ReminderSavedMsg struct {
	Reminder model.Reminder
	Saved    bool
}

type DetailLoadedMsg struct {
	ID string
	OK bool
}

type ReminderDeletedMsg struct {
	ID string
}

type RemindersClearedMsg struct{}

type GeofenceEventMsg struct {
	Event geofence.Event
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

func loadRemindersCmd(ctx context.Context, vm *viewmodel.RemindersListViewModel) tea.Cmd {
	return func() tea.Msg {
		vm.LoadReminders(ctx)
		return RemindersLoadedMsg{}
	}
}

func saveReminderCmd(ctx context.Context, vm *viewmodel.SaveReminderViewModel, item viewmodel.ReminderDataItem) tea.Cmd {
	return func() tea.Msg {
		saved, ok := vm.SaveReminder(ctx, item)
		return ReminderSavedMsg{Reminder: saved, Saved: ok}
	}
}

func loadDetailCmd(ctx context.Context, vm *viewmodel.ReminderDetailViewModel, id string) tea.Cmd {
	return func() tea.Msg {
		return DetailLoadedMsg{ID: id, OK: vm.Load(ctx, id)}
	}
}

func deleteDetailCmd(ctx context.Context, vm *viewmodel.ReminderDetailViewModel) tea.Cmd {
	id := vm.Reminder.Get().ID
	return func() tea.Msg {
		vm.Delete(ctx)
		return ReminderDeletedMsg{ID: id}
	}
}

func (m Model) deleteReminderCmd(id string) tea.Cmd {
	ctx, ds := m.ctx, m.dataSource
	return func() tea.Msg {
		ds.DeleteReminder(ctx, id)
		return ReminderDeletedMsg{ID: id}
	}
}

func (m Model) clearRemindersCmd() tea.Cmd {
	ctx, ds := m.ctx, m.dataSource
	return func() tea.Msg {
		ds.DeleteAllReminders(ctx)
		return RemindersClearedMsg{}
	}
}

func waitForGeofenceCmd(ch <-chan geofence.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return GeofenceEventMsg{Event: ev}
	}
}

// startLoad marks the list as loading and starts the fetch with the spinner.
func (m *Model) startLoad() tea.Cmd {
	m.loading = true
	return tea.Batch(loadRemindersCmd(m.ctx, m.ListVM), m.loadSpinner.Tick)
}

// registerGeofence watches a saved reminder that carries coordinates.
func (m *Model) registerGeofence(r model.Reminder) {
	if m.Monitor == nil || !r.HasCoordinates() {
		return
	}
	region, err := geofence.RegionForReminder(r, 0)
	if err == nil {
		err = m.Monitor.Register(region)
	}
	if err != nil {
		m.logger.Warn("geofence register failed", "id", r.ID, "err", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}
