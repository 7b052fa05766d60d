package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/geofence"
	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/testutil"
)

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func newTestModel(t *testing.T, reminders ...model.Reminder) (Model, *testutil.FakeDataSource) {
	t.Helper()
	ds := testutil.NewFakeDataSource(reminders...)
	return NewModel(context.Background(), Options{DataSource: ds}), ds
}

// run executes cmd and feeds every resulting message back into the model.
// Spinner ticks are skipped so the loop terminates.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		switch typed := msg.(type) {
		case nil, spinner.TickMsg:
			continue
		case tea.BatchMsg:
			queue = append(queue, typed...)
			continue
		}
		updated, follow := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, follow)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = run(t, updated.(Model), cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func reminderAt(id, title, location string, lat, lng float64) model.Reminder {
	return model.NewReminder(id, title, title+" desc", location, model.Float64(lat), model.Float64(lng))
}

func TestNewModelStartsOnReminderList(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected reminder list, got %q", m.Screen())
	}
	if len(m.Stack) != 1 {
		t.Fatalf("expected single screen on stack, got %v", m.Stack)
	}
}

func TestNewModelShowsSpinnerUntilFirstLoad(t *testing.T) {
	m, _ := newTestModel(t)
	if !m.loading || !strings.Contains(m.View(), "loading reminders") {
		t.Fatalf("expected loading state before the first load completes")
	}
	m = run(t, m, m.Init())
	if m.loading {
		t.Fatalf("expected loading to finish")
	}
}

func TestInitLoadsReminders(t *testing.T) {
	m, _ := newTestModel(t,
		reminderAt("r1", "golden_gate_bridge title", "golden_gate_bridge", 37.819927, -122.478256),
		reminderAt("r2", "pier_39 title", "pier_39", 37.808674, -122.409821),
	)
	m = run(t, m, m.Init())
	if m.loading {
		t.Fatalf("expected loading to finish")
	}
	if got := len(m.remindersList.Items()); got != 2 {
		t.Fatalf("expected 2 list items, got %d", got)
	}
	view := m.View()
	if !strings.Contains(view, "golden_gate_bridge title") {
		t.Fatalf("expected reminder in view: %q", view)
	}
}

func TestEmptyListShowsNoData(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, m.Init())
	if !strings.Contains(m.View(), "No Data") {
		t.Fatalf("expected no data view: %q", m.View())
	}
}

func TestLoadErrorShowsSnackBar(t *testing.T) {
	m, ds := newTestModel(t)
	ds.SetReturnError(true)
	m = run(t, m, m.Init())
	if !m.Status.IsError || m.Status.Text != testutil.ErrorMessage {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if !strings.Contains(m.View(), "No Data") {
		t.Fatalf("expected no data after error")
	}
}

func TestSaveFlowValidatesThenSaves(t *testing.T) {
	m, ds := newTestModel(t)
	m = run(t, m, m.Init())

	m = press(t, m, "a")
	if m.Screen() != navigation.DestinationSaveReminder {
		t.Fatalf("expected save screen, got %q", m.Screen())
	}

	m = press(t, m, "ctrl+s")
	if m.Status.Text != "Please enter title" {
		t.Fatalf("expected title validation, got %+v", m.Status)
	}

	m = typeText(t, m, "golden_gate_bridge title")
	m = press(t, m, "ctrl+s")
	if m.Status.Text != "Please select location" {
		t.Fatalf("expected location validation, got %+v", m.Status)
	}
	if ds.Saves != 0 {
		t.Fatalf("expected no saves before validation passes, got %d", ds.Saves)
	}

	m = press(t, m, "ctrl+l")
	if m.Screen() != navigation.DestinationSelectLocation {
		t.Fatalf("expected select location screen, got %q", m.Screen())
	}
	m = typeText(t, m, "golden_gate_bridge")
	m = press(t, m, "tab")
	m = typeText(t, m, "37.819927")
	m = press(t, m, "tab")
	m = typeText(t, m, "-122.478256")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationSaveReminder {
		t.Fatalf("expected back on save screen, got %q", m.Screen())
	}
	if got := m.SaveVM.ReminderSelectedLocationStr.Get(); got != "golden_gate_bridge" {
		t.Fatalf("expected selected location, got %q", got)
	}
	if m.titleInput.Value() != "golden_gate_bridge title" {
		t.Fatalf("expected title kept across picker, got %q", m.titleInput.Value())
	}

	m = press(t, m, "ctrl+s")
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected list after save, got %q", m.Screen())
	}
	if m.Status.Text != "Reminder Saved !" && !strings.Contains(m.renderNotificationsView(), "Reminder Saved !") {
		t.Fatalf("expected save toast, status %+v", m.Status)
	}
	saved := ds.Reminders()
	if len(saved) != 1 || saved[0].Location != "golden_gate_bridge" {
		t.Fatalf("unexpected saved reminders: %+v", saved)
	}
	if got := len(m.remindersList.Items()); got != 1 {
		t.Fatalf("expected list reloaded with 1 item, got %d", got)
	}
}

func TestPickerRejectsBadCoordinates(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "ctrl+l")
	m = typeText(t, m, "nowhere")
	m = press(t, m, "tab")
	m = typeText(t, m, "north")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationSelectLocation {
		t.Fatalf("expected to stay on picker, got %q", m.Screen())
	}
	if !strings.Contains(m.pickerErr, "invalid latitude") {
		t.Fatalf("expected latitude error, got %q", m.pickerErr)
	}

	m = press(t, m, "tab", "tab", "tab")
	m.latInput.SetValue("95")
	m.lngInput.SetValue("10")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationSelectLocation || m.pickerErr == "" {
		t.Fatalf("expected out of range latitude to be rejected")
	}
}

func TestSaveRegistersGeofence(t *testing.T) {
	ds := testutil.NewFakeDataSource()
	monitor := geofence.NewMonitor(4)
	m := NewModel(context.Background(), Options{DataSource: ds, Monitor: monitor})

	m = press(t, m, "a")
	m = typeText(t, m, "pier_39 title")
	m.SaveVM.ReminderSelectedLocationStr.Set("pier_39")
	m.SaveVM.Latitude.Set(model.Float64(37.808674))
	m.SaveVM.Longitude.Set(model.Float64(-122.409821))
	m = press(t, m, "ctrl+s")

	regions := monitor.Regions()
	if len(regions) != 1 {
		t.Fatalf("expected one geofence, got %d", len(regions))
	}
	if regions[0].RadiusMeters != geofence.DefaultRadiusMeters {
		t.Fatalf("expected default radius, got %v", regions[0].RadiusMeters)
	}
	saved := ds.Reminders()
	if len(saved) != 1 || saved[0].ID != regions[0].ID {
		t.Fatalf("expected region id to match saved reminder")
	}
}

func TestEscFromSaveReturnsToList(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "esc")
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected list, got %q", m.Screen())
	}
}

func TestOpenDetailAndDelete(t *testing.T) {
	m, ds := newTestModel(t, reminderAt("r1", "pier_39 title", "pier_39", 37.808674, -122.409821))
	m = run(t, m, m.Init())

	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationReminderDetail {
		t.Fatalf("expected detail screen, got %q", m.Screen())
	}
	if m.DetailVM.Reminder.Get().ID != "r1" {
		t.Fatalf("expected r1 loaded, got %+v", m.DetailVM.Reminder.Get())
	}
	if !strings.Contains(m.View(), "[d]delete") {
		t.Fatalf("expected detail actions in view")
	}

	m = press(t, m, "d")
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected list after delete, got %q", m.Screen())
	}
	if len(ds.Reminders()) != 0 {
		t.Fatalf("expected reminder deleted")
	}
	if len(m.remindersList.Items()) != 0 {
		t.Fatalf("expected empty list after reload")
	}
}

func TestPaletteDeleteOfShownReminderReturnsToList(t *testing.T) {
	m, ds := newTestModel(t,
		reminderAt("r1", "pier_39 title", "pier_39", 37.808674, -122.409821),
		reminderAt("r2", "ferry_building title", "ferry_building", 37.795490, -122.394276),
	)
	m = run(t, m, m.Init())
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationReminderDetail {
		t.Fatalf("expected detail screen, got %q", m.Screen())
	}

	m = press(t, m, "/")
	m = typeText(t, m, "delete r2")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationReminderDetail {
		t.Fatalf("expected to stay on r1 detail when another reminder is deleted, got %q", m.Screen())
	}

	m = press(t, m, "/")
	m = typeText(t, m, "delete r1")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected list after deleting the shown reminder, got %q", m.Screen())
	}
	if len(ds.Reminders()) != 0 || len(m.remindersList.Items()) != 0 {
		t.Fatalf("expected every reminder gone")
	}
}

func TestPaletteClearLeavesDetail(t *testing.T) {
	m, _ := newTestModel(t, reminderAt("r1", "pier_39 title", "pier_39", 37.808674, -122.409821))
	m = run(t, m, m.Init())
	m = press(t, m, "enter")

	m = press(t, m, "/")
	m = typeText(t, m, "clear")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected list after clear, got %q", m.Screen())
	}
	if len(m.Stack) != 1 {
		t.Fatalf("expected single screen on stack, got %v", m.Stack)
	}
}

func TestShowUnknownReminderStaysOnList(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = typeText(t, m, "show missing")
	m = press(t, m, "enter")
	if m.Screen() != navigation.DestinationReminderList {
		t.Fatalf("expected list after failed show, got %q", m.Screen())
	}
	if !m.Status.IsError || m.Status.Text != "Reminder not found!" {
		t.Fatalf("expected not found status, got %+v", m.Status)
	}
}

func TestPaletteAddPrefillsForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatalf("expected palette active")
	}
	m = typeText(t, m, "add buy milk")
	m = press(t, m, "enter")
	if m.Palette.Active {
		t.Fatalf("expected palette closed")
	}
	if m.Screen() != navigation.DestinationSaveReminder {
		t.Fatalf("expected save screen, got %q", m.Screen())
	}
	if m.SaveVM.ReminderTitle.Get() != "buy milk" {
		t.Fatalf("expected title prefilled, got %q", m.SaveVM.ReminderTitle.Get())
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = typeText(t, m, "teleport")
	m = press(t, m, "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}

	m = press(t, m, "/")
	m = typeText(t, m, "at 37.8 -122.4")
	m = press(t, m, "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "monitor not running") {
		t.Fatalf("expected missing monitor error, got %+v", m.Status)
	}
}

func TestPaletteClear(t *testing.T) {
	ds := testutil.NewFakeDataSource(reminderAt("r1", "a", "pier_39", 37.8, -122.4))
	monitor := geofence.NewMonitor(4)
	if err := monitor.Register(geofence.Region{ID: "r1", Latitude: 37.8, Longitude: -122.4}); err != nil {
		t.Fatalf("register: %v", err)
	}
	m := NewModel(context.Background(), Options{DataSource: ds, Monitor: monitor})
	m = press(t, m, "/")
	m = typeText(t, m, "clear")
	m = press(t, m, "enter")
	if len(ds.Reminders()) != 0 {
		t.Fatalf("expected reminders cleared")
	}
	if len(monitor.Regions()) != 0 {
		t.Fatalf("expected geofences cleared")
	}
	if m.Status.Text != "all reminders cleared" {
		t.Fatalf("unexpected status %+v", m.Status)
	}
}

func TestGeofenceEnterNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	ds := testutil.NewFakeDataSource(reminderAt("r1", "pier_39 title", "pier_39", 37.808674, -122.409821))
	m := NewModel(context.Background(), Options{DataSource: ds, Notifier: notifier, DesktopNotifications: true})
	m = run(t, m, m.Init())

	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	updated, _ := m.Update(GeofenceEventMsg{Event: geofence.Event{
		RegionID:   "r1",
		Transition: geofence.TransitionEnter,
		Fix:        geofence.Fix{Latitude: 37.8087, Longitude: -122.4098, At: at},
	}})
	m = updated.(Model)
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one desktop notification, got %d", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].Body, "pier_39 title @ pier_39") {
		t.Fatalf("unexpected notification body %q", notifier.sent[0].Body)
	}
	if m.arrivedAt("r1") == "" {
		t.Fatalf("expected arrival recorded")
	}

	updated, _ = m.Update(GeofenceEventMsg{Event: geofence.Event{RegionID: "r1", Transition: geofence.TransitionExit}})
	m = updated.(Model)
	if len(notifier.sent) != 1 {
		t.Fatalf("expected exit not to notify")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "add reminder") {
		t.Fatalf("expected help visible")
	}
	m = press(t, m, "?")
	if m.HelpVisible {
		t.Fatalf("expected help hidden")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(keyMsg("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatalf("expected quit")
	}
	m = press(t, m, "a")
	updated, _ = m.Update(keyMsg("q"))
	if updated.(Model).Quitting {
		t.Fatalf("expected q to be typed into the form, not quit")
	}
	updated, _ = m.Update(keyMsg("ctrl+c"))
	if !updated.(Model).Quitting {
		t.Fatalf("expected ctrl+c to quit")
	}
}
