// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/model"
)

// ErrorMessage is the message returned while error injection is on.
const ErrorMessage = "Could not get reminders"

// FakeDataSource is an in-memory data.ReminderDataSource for tests.
type FakeDataSource struct {
	mu          sync.Mutex
	reminders   []model.Reminder
	returnError bool

	// Gate, when set, is received from before GetReminders reads, so tests
	// can observe in-flight state.
	Gate chan struct{}
	// Saves counts SaveReminder calls.
	Saves int
}

// NewFakeDataSource creates a fake seeded with reminders.
func NewFakeDataSource(reminders ...model.Reminder) *FakeDataSource {
	return &FakeDataSource{reminders: append([]model.Reminder(nil), reminders...)}
}

// SetReturnError toggles error injection for reads.
func (f *FakeDataSource) SetReturnError(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.returnError = v
}

func (f *FakeDataSource) GetReminders(ctx context.Context) data.Result[[]model.Reminder] {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return data.Error[[]model.Reminder](ctx.Err().Error())
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.returnError {
		return data.Error[[]model.Reminder](ErrorMessage)
	}
	return data.Success(append([]model.Reminder{}, f.reminders...))
}

func (f *FakeDataSource) SaveReminder(_ context.Context, reminder model.Reminder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	for i := range f.reminders {
		if f.reminders[i].ID == reminder.ID {
			f.reminders[i] = reminder
			return
		}
	}
	f.reminders = append(f.reminders, reminder)
}

func (f *FakeDataSource) GetReminder(_ context.Context, id string) data.Result[model.Reminder] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.returnError {
		return data.Error[model.Reminder](ErrorMessage)
	}
	for _, r := range f.reminders {
		if r.ID == id {
			return data.Success(r)
		}
	}
	return data.Error[model.Reminder](data.MessageReminderNotFound)
}

func (f *FakeDataSource) DeleteReminder(_ context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return
		}
	}
}

func (f *FakeDataSource) DeleteAllReminders(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders = nil
}

// Reminders returns a copy of the stored reminders.
func (f *FakeDataSource) Reminders() []model.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Reminder(nil), f.reminders...)
}

var _ data.ReminderDataSource = (*FakeDataSource)(nil)
