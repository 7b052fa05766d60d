package navigation

import "fmt"

type Destination string

const (
	DestinationReminderList   Destination = "reminder_list"
	DestinationSaveReminder   Destination = "save_reminder"
	DestinationSelectLocation Destination = "select_location"
	DestinationReminderDetail Destination = "reminder_detail"
)

// Command tells the shell where to go next. It is one of Back, To or BackTo.
type Command interface {
	fmt.Stringer
	isCommand()
}

type back struct{}

func (back) isCommand()     {}
func (back) String() string { return "Back" }

// Back pops the current screen.
var Back Command = back{}

// To pushes a destination. ReminderID is set for screens showing one reminder.
type To struct {
	Destination Destination
	ReminderID  string
}

func (To) isCommand() {}

func (t To) String() string {
	if t.ReminderID != "" {
		return fmt.Sprintf("To(%s, %s)", t.Destination, t.ReminderID)
	}
	return fmt.Sprintf("To(%s)", t.Destination)
}

// BackTo pops screens until Destination is on top.
type BackTo struct {
	Destination Destination
}

func (BackTo) isCommand() {}

func (b BackTo) String() string {
	return fmt.Sprintf("BackTo(%s)", b.Destination)
}
