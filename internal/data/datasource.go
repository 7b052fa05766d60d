package data

import (
	"context"

	"github.com/sandeepkv93/locrem/internal/model"
)

const MessageReminderNotFound = "Reminder not found!"

// ReminderDataSource is the repository contract the view-models depend on.
// Failures come back as Error results; nothing panics through to the caller.
type ReminderDataSource interface {
	GetReminders(ctx context.Context) Result[[]model.Reminder]
	// SaveReminder upserts by id. Write failures are not reported to the caller.
	SaveReminder(ctx context.Context, reminder model.Reminder)
	GetReminder(ctx context.Context, id string) Result[model.Reminder]
	DeleteReminder(ctx context.Context, id string)
	DeleteAllReminders(ctx context.Context)
}
