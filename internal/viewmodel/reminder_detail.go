package viewmodel

import (
	"context"
	"log/slog"

	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/livedata"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/observability"
)

// ReminderDetailViewModel backs the screen opened from an arrival notification.
type ReminderDetailViewModel struct {
	Base
	Reminder *livedata.Value[ReminderDataItem]

	dataSource data.ReminderDataSource
	logger     *slog.Logger
}

func NewReminderDetailViewModel(dataSource data.ReminderDataSource, logger *slog.Logger) *ReminderDetailViewModel {
	return &ReminderDetailViewModel{
		Base:       newBase(),
		Reminder:   &livedata.Value[ReminderDataItem]{},
		dataSource: dataSource,
		logger:     observability.OrDiscard(logger),
	}
}

func (vm *ReminderDetailViewModel) Load(ctx context.Context, id string) bool {
	vm.ShowLoading.Set(true)
	result := vm.dataSource.GetReminder(ctx, id)
	vm.ShowLoading.Set(false)

	reminder, ok := result.Data()
	if !ok {
		vm.logger.Warn("load reminder failed", "id", id, "message", result.Message())
		vm.ShowErrorMessage.Emit(result.Message())
		vm.ShowNoData.Set(true)
		return false
	}
	vm.Reminder.Set(ItemFromReminder(reminder))
	vm.ShowNoData.Set(false)
	return true
}

// Delete removes the shown reminder and returns to the list.
func (vm *ReminderDetailViewModel) Delete(ctx context.Context) {
	item := vm.Reminder.Get()
	if item.ID == "" {
		return
	}
	vm.dataSource.DeleteReminder(ctx, item.ID)
	vm.logger.Info("reminder deleted", "id", item.ID)
	vm.NavigationCommand.Emit(navigation.BackTo{Destination: navigation.DestinationReminderList})
}
