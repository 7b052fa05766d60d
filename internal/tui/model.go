package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/geofence"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/observability"
	"github.com/sandeepkv93/locrem/internal/viewmodel"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Options carries what the shell needs from the process that runs it.
type Options struct {
	DataSource           data.ReminderDataSource
	Monitor              *geofence.Monitor
	Notifier             DesktopNotifier
	DesktopNotifications bool
	Logger               *slog.Logger
}

type Model struct {
	Stack         []navigation.Destination
	ListVM        *viewmodel.RemindersListViewModel
	SaveVM        *viewmodel.SaveReminderViewModel
	DetailVM      *viewmodel.ReminderDetailViewModel
	Monitor       *geofence.Monitor
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Arrivals      []geofence.Event
	Status        StatusBar
	Quitting      bool

	ctx            context.Context
	dataSource     data.ReminderDataSource
	desktopEnabled bool
	notifier       DesktopNotifier
	logger         *slog.Logger

	remindersList list.Model
	titleInput    textinput.Model
	descInput     textinput.Model
	nameInput     textinput.Model
	latInput      textinput.Model
	lngInput      textinput.Model
	commandInput  textinput.Model
	loadSpinner   spinner.Model
	helpModel     help.Model
	formFocus     int
	pickerFocus   int
	pickerErr     string
	loading       bool
	saving        bool
}

type listItem struct {
	id          string
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := observability.OrDiscard(opts.Logger)
	m := Model{
		Stack:          []navigation.Destination{navigation.DestinationReminderList},
		ListVM:         viewmodel.NewRemindersListViewModel(opts.DataSource, logger),
		SaveVM:         viewmodel.NewSaveReminderViewModel(opts.DataSource, logger),
		DetailVM:       viewmodel.NewReminderDetailViewModel(opts.DataSource, logger),
		Monitor:        opts.Monitor,
		ctx:            ctx,
		dataSource:     opts.DataSource,
		desktopEnabled: opts.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		logger:         logger,
		loading:        true,
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.remindersList = list.New([]list.Item{}, list.NewDefaultDelegate(), 68, 14)
	m.remindersList.Title = "Reminders"
	m.remindersList.SetShowHelp(false)
	m.remindersList.SetFilteringEnabled(false)

	m.titleInput = newInput("Title", 120)
	m.descInput = newInput("Description", 400)
	m.nameInput = newInput("Place name", 120)
	m.latInput = newInput("Latitude", 24)
	m.lngInput = newInput("Longitude", 24)
	m.commandInput = newInput("add <title> | at <lat> <lng> | show <id> | delete <id> | clear | reload", 200)

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot
	m.helpModel = help.New()
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	return in
}

// Screen is the destination on top of the stack.
func (m Model) Screen() navigation.Destination {
	if len(m.Stack) == 0 {
		return navigation.DestinationReminderList
	}
	return m.Stack[len(m.Stack)-1]
}

func (m *Model) syncReminderItems() tea.Cmd {
	items := m.ListVM.RemindersList.Get()
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		desc := it.Location
		if it.Description != "" {
			desc = it.Location + " | " + it.Description
		}
		out = append(out, listItem{id: it.ID, title: it.Title, description: desc})
	}
	return m.remindersList.SetItems(out)
}

func (m Model) selectedReminderID() (string, bool) {
	item, ok := m.remindersList.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return item.id, true
}

func (m *Model) reminderTitle(id string) string {
	for _, it := range m.ListVM.RemindersList.Get() {
		if it.ID == id {
			return it.Title + " @ " + it.Location
		}
	}
	return id
}
