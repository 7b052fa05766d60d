package viewmodel

import "github.com/sandeepkv93/locrem/internal/model"

// ReminderDataItem is the UI projection of a reminder.
type ReminderDataItem struct {
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	ID          string
}

func ItemFromReminder(r model.Reminder) ReminderDataItem {
	return ReminderDataItem{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		ID:          r.ID,
	}
}

// Reminder converts the item back, generating an id if it has none.
func (i ReminderDataItem) Reminder() model.Reminder {
	return model.NewReminder(i.ID, i.Title, i.Description, i.Location, i.Latitude, i.Longitude)
}
