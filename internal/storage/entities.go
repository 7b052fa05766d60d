package storage

import "time"

type Reminder struct {
	ID          string
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ReminderListFilter struct {
	Location string
	Limit    int
	Offset   int
}
