package viewmodel

import (
	"context"
	"log/slog"

	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/livedata"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/observability"
)

type RemindersListViewModel struct {
	Base
	RemindersList *livedata.Value[[]ReminderDataItem]

	dataSource data.ReminderDataSource
	logger     *slog.Logger
}

func NewRemindersListViewModel(dataSource data.ReminderDataSource, logger *slog.Logger) *RemindersListViewModel {
	return &RemindersListViewModel{
		Base:          newBase(),
		RemindersList: &livedata.Value[[]ReminderDataItem]{},
		dataSource:    dataSource,
		logger:        observability.OrDiscard(logger),
	}
}

// LoadReminders fetches every reminder and replaces the list state. It blocks
// on the data source; shells call it off their render loop.
func (vm *RemindersListViewModel) LoadReminders(ctx context.Context) {
	vm.ShowNoData.Set(false)
	vm.ShowLoading.Set(true)
	result := vm.dataSource.GetReminders(ctx)

	reminders, ok := result.Data()
	if !ok {
		vm.logger.Warn("load reminders failed", "message", result.Message())
		vm.ShowSnackBar.Emit(result.Message())
		vm.ShowLoading.Set(false)
		// the previous list is kept on screen but flagged as no data
		vm.ShowNoData.Set(true)
		return
	}

	items := make([]ReminderDataItem, 0, len(reminders))
	for _, r := range reminders {
		items = append(items, ItemFromReminder(r))
	}
	vm.RemindersList.Set(items)
	vm.ShowLoading.Set(false)
	vm.ShowNoData.Set(len(items) == 0)
	vm.logger.Debug("reminders loaded", "count", len(items))
}

func (vm *RemindersListViewModel) NavigateToAddReminder() {
	vm.NavigationCommand.Emit(navigation.To{Destination: navigation.DestinationSaveReminder})
}

func (vm *RemindersListViewModel) OpenReminder(id string) {
	vm.NavigationCommand.Emit(navigation.To{Destination: navigation.DestinationReminderDetail, ReminderID: id})
}
