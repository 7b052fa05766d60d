package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/geofence"
	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/views"
)

func (m Model) Init() tea.Cmd {
	load := loadRemindersCmd(m.ctx, m.ListVM)
	if m.Monitor != nil {
		return tea.Batch(load, m.loadSpinner.Tick, waitForGeofenceCmd(m.Monitor.C()))
	}
	return tea.Batch(load, m.loadSpinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch m.Screen() {
		case navigation.DestinationSaveReminder:
			return m.handleSaveKey(typed)
		case navigation.DestinationSelectLocation:
			return m.handlePickerKey(typed)
		case navigation.DestinationReminderDetail:
			return m.handleDetailKey(typed)
		default:
			return m.handleListKey(typed)
		}
	case tea.WindowSizeMsg:
		if w, h := typed.Width-8, typed.Height-12; w > 20 && h > 4 {
			m.remindersList.SetSize(w, h)
		}
		return m, nil
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case RemindersLoadedMsg:
		m.loading = m.ListVM.ShowLoading.Get()
		syncCmd := m.syncReminderItems()
		navCmd := m.consumeBase(&m.ListVM.Base)
		return m, tea.Batch(syncCmd, navCmd)
	case ReminderSavedMsg:
		m.saving = false
		if typed.Saved {
			m.registerGeofence(typed.Reminder)
		}
		return m, m.consumeBase(&m.SaveVM.Base)
	case DetailLoadedMsg:
		cmd := m.consumeBase(&m.DetailVM.Base)
		if !typed.OK && m.Screen() == navigation.DestinationReminderDetail {
			return m, tea.Batch(cmd, m.navigate(navigation.Back))
		}
		return m, cmd
	case ReminderDeletedMsg:
		if m.Monitor != nil {
			m.Monitor.Remove(typed.ID)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleted reminder: %s", typed.ID)}
		if cmd := m.consumeBase(&m.DetailVM.Base); cmd != nil {
			return m, cmd
		}
		if m.Screen() == navigation.DestinationReminderDetail && m.DetailVM.Reminder.Get().ID == typed.ID {
			return m, m.navigate(navigation.BackTo{Destination: navigation.DestinationReminderList})
		}
		return m, m.startLoad()
	case RemindersClearedMsg:
		if m.Monitor != nil {
			m.Monitor.RemoveAll()
		}
		m.Status = StatusBar{Text: "all reminders cleared"}
		if m.Screen() == navigation.DestinationReminderDetail {
			return m, m.navigate(navigation.BackTo{Destination: navigation.DestinationReminderList})
		}
		return m, m.startLoad()
	case GeofenceEventMsg:
		m.onGeofenceEvent(typed.Event)
		if m.Monitor != nil {
			return m, waitForGeofenceCmd(m.Monitor.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards cursor blinks and other input messages to the
// text field that currently has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.Palette.Active:
		m.commandInput, cmd = m.commandInput.Update(msg)
	case m.Screen() == navigation.DestinationSaveReminder && m.formFocus == 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.Screen() == navigation.DestinationSaveReminder:
		m.descInput, cmd = m.descInput.Update(msg)
	case m.Screen() == navigation.DestinationSelectLocation && m.pickerFocus == 0:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case m.Screen() == navigation.DestinationSelectLocation && m.pickerFocus == 1:
		m.latInput, cmd = m.latInput.Update(msg)
	case m.Screen() == navigation.DestinationSelectLocation:
		m.lngInput, cmd = m.lngInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "/":
		return m.openPalette(), nil
	case "?":
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "a":
		m.ListVM.NavigateToAddReminder()
		return m, m.consumeBase(&m.ListVM.Base)
	case "r":
		return m, m.startLoad()
	case "enter":
		id, ok := m.selectedReminderID()
		if !ok {
			return m, nil
		}
		m.ListVM.OpenReminder(id)
		return m, m.consumeBase(&m.ListVM.Base)
	}
	var cmd tea.Cmd
	m.remindersList, cmd = m.remindersList.Update(msg)
	return m, cmd
}

func (m Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.navigate(navigation.Back)
	case "tab", "shift+tab":
		m.formFocus = (m.formFocus + 1) % 2
		m.focusForm()
		return m, nil
	case "ctrl+l":
		m.SaveVM.NavigationCommand.Emit(navigation.To{Destination: navigation.DestinationSelectLocation})
		return m, m.consumeBase(&m.SaveVM.Base)
	case "ctrl+s", "enter":
		if m.saving {
			return m, nil
		}
		m.syncFormFields()
		item := m.SaveVM.CurrentItem()
		if !m.SaveVM.ValidateEnteredData(item) {
			return m, m.consumeBase(&m.SaveVM.Base)
		}
		m.saving = true
		return m, saveReminderCmd(m.ctx, m.SaveVM, item)
	}
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	m.syncFormFields()
	return m, cmd
}

func (m *Model) syncFormFields() {
	m.SaveVM.ReminderTitle.Set(strings.TrimSpace(m.titleInput.Value()))
	m.SaveVM.ReminderDescription.Set(strings.TrimSpace(m.descInput.Value()))
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.navigate(navigation.Back)
	case "tab":
		m.pickerFocus = (m.pickerFocus + 1) % 3
		m.focusPicker()
		return m, nil
	case "shift+tab":
		m.pickerFocus = (m.pickerFocus + 2) % 3
		m.focusPicker()
		return m, nil
	case "enter":
		poi, err := m.pickedPOI()
		if err != nil {
			m.pickerErr = err.Error()
			return m, nil
		}
		if err := m.SaveVM.SelectPOI(poi); err != nil {
			m.pickerErr = err.Error()
			m.SaveVM.ShowErrorMessage.Consume()
			return m, nil
		}
		m.pickerErr = ""
		m.Status = StatusBar{Text: fmt.Sprintf("location selected: %s", poi.Name)}
		return m, m.consumeBase(&m.SaveVM.Base)
	}
	var cmd tea.Cmd
	switch m.pickerFocus {
	case 0:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case 1:
		m.latInput, cmd = m.latInput.Update(msg)
	default:
		m.lngInput, cmd = m.lngInput.Update(msg)
	}
	return m, cmd
}

func (m Model) pickedPOI() (model.PointOfInterest, error) {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return model.PointOfInterest{}, fmt.Errorf("place name is required")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(m.latInput.Value()), 64)
	if err != nil {
		return model.PointOfInterest{}, fmt.Errorf("invalid latitude: %q", m.latInput.Value())
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(m.lngInput.Value()), 64)
	if err != nil {
		return model.PointOfInterest{}, fmt.Errorf("invalid longitude: %q", m.lngInput.Value())
	}
	return model.PointOfInterest{Name: name, Latitude: lat, Longitude: lng}, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "/":
		return m.openPalette(), nil
	case "?":
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "esc", "backspace":
		return m, m.navigate(navigation.Back)
	case "d":
		if m.DetailVM.Reminder.Get().ID == "" {
			return m, nil
		}
		return m, deleteDetailCmd(m.ctx, m.DetailVM)
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := ""
	switch m.Screen() {
	case navigation.DestinationSaveReminder:
		body = views.RenderSaveReminderPanel(views.SaveReminderPanelData{
			TitleView:       m.titleInput.View(),
			DescriptionView: m.descInput.View(),
			Location:        m.SaveVM.ReminderSelectedLocationStr.Get(),
			Latitude:        m.SaveVM.Latitude.Get(),
			Longitude:       m.SaveVM.Longitude.Get(),
			Focused:         m.formFocus,
			Saving:          m.saving,
		})
	case navigation.DestinationSelectLocation:
		body = views.RenderSelectLocationPanel(views.SelectLocationPanelData{
			NameView:      m.nameInput.View(),
			LatitudeView:  m.latInput.View(),
			LongitudeView: m.lngInput.View(),
			Focused:       m.pickerFocus,
			ErrorText:     m.pickerErr,
		})
	case navigation.DestinationReminderDetail:
		item := m.DetailVM.Reminder.Get()
		body = views.RenderReminderDetailPanel(views.ReminderDetailData{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Location:    item.Location,
			Latitude:    item.Latitude,
			Longitude:   item.Longitude,
			ArrivedAt:   m.arrivedAt(item.ID),
		})
	default:
		body = views.RenderRemindersPanel(views.RemindersPanelData{
			ListView: m.remindersList.View(),
			Loading:  m.loading,
			Spinner:  m.loadSpinner.View(),
			NoData:   !m.loading && m.ListVM.ShowNoData.Get(),
		})
	}

	side := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("locrem | screen: %s | geofences: %d", m.Screen(), m.geofenceCount()),
		Body:         body,
		Side:         side,
		StatusLine:   status,
		IsError:      m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       "keys: / cmd | ? help | esc back | ctrl+c quit",
	})
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) arrivedAt(id string) string {
	for i := len(m.Arrivals) - 1; i >= 0; i-- {
		ev := m.Arrivals[i]
		if ev.RegionID == id && ev.Transition == geofence.TransitionEnter {
			return ev.Fix.At.Local().Format("2006-01-02 15:04:05")
		}
	}
	return ""
}

func (m Model) geofenceCount() int {
	if m.Monitor == nil {
		return 0
	}
	return len(m.Monitor.Regions())
}
