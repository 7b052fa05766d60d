package viewmodel

import (
	"context"
	"log/slog"

	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/livedata"
	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/observability"
)

const MessageReminderSaved = "Reminder Saved !"

// SaveReminderViewModel holds the in-progress reminder form. The location
// picker writes the location fields; the form writes title and description.
type SaveReminderViewModel struct {
	Base
	ReminderTitle               *livedata.Value[string]
	ReminderDescription         *livedata.Value[string]
	ReminderSelectedLocationStr *livedata.Value[string]
	SelectedPOI                 *livedata.Value[*model.PointOfInterest]
	Latitude                    *livedata.Value[*float64]
	Longitude                   *livedata.Value[*float64]

	dataSource data.ReminderDataSource
	logger     *slog.Logger
}

func NewSaveReminderViewModel(dataSource data.ReminderDataSource, logger *slog.Logger) *SaveReminderViewModel {
	return &SaveReminderViewModel{
		Base:                        newBase(),
		ReminderTitle:               &livedata.Value[string]{},
		ReminderDescription:         &livedata.Value[string]{},
		ReminderSelectedLocationStr: &livedata.Value[string]{},
		SelectedPOI:                 &livedata.Value[*model.PointOfInterest]{},
		Latitude:                    &livedata.Value[*float64]{},
		Longitude:                   &livedata.Value[*float64]{},
		dataSource:                  dataSource,
		logger:                      observability.OrDiscard(logger),
	}
}

// OnClear resets the form when the screen is entered again.
func (vm *SaveReminderViewModel) OnClear() {
	vm.ReminderTitle.Set("")
	vm.ReminderDescription.Set("")
	vm.ReminderSelectedLocationStr.Set("")
	vm.SelectedPOI.Set(nil)
	vm.Latitude.Set(nil)
	vm.Longitude.Set(nil)
}

// ValidateEnteredData checks title then location and raises a snack bar for
// the first missing one only.
func (vm *SaveReminderViewModel) ValidateEnteredData(item ReminderDataItem) bool {
	if item.Title == "" {
		vm.ShowSnackBarInt.Emit(MessageEnterTitle)
		return false
	}
	if item.Location == "" {
		vm.ShowSnackBarInt.Emit(MessageSelectLocation)
		return false
	}
	return true
}

// SaveReminder validates and persists item, then toasts and navigates back.
// The data source has no failure channel for writes, so once validation
// passes the confirmation always fires. The returned reminder carries the
// id that was stored.
func (vm *SaveReminderViewModel) SaveReminder(ctx context.Context, item ReminderDataItem) (model.Reminder, bool) {
	if !vm.ValidateEnteredData(item) {
		return model.Reminder{}, false
	}
	reminder := item.Reminder()

	vm.ShowLoading.Set(true)
	vm.dataSource.SaveReminder(ctx, reminder)
	vm.ShowLoading.Set(false)

	vm.logger.Info("reminder saved", "id", reminder.ID, "location", reminder.Location)
	vm.ShowToast.Emit(MessageReminderSaved)
	vm.NavigationCommand.Emit(navigation.Back)
	return reminder, true
}

// SelectPOI records a picked point of interest as the reminder location and
// returns to the form.
func (vm *SaveReminderViewModel) SelectPOI(poi model.PointOfInterest) error {
	if err := poi.Validate(); err != nil {
		vm.ShowErrorMessage.Emit(err.Error())
		return err
	}
	picked := poi
	vm.SelectedPOI.Set(&picked)
	vm.Latitude.Set(model.Float64(poi.Latitude))
	vm.Longitude.Set(model.Float64(poi.Longitude))
	vm.ReminderSelectedLocationStr.Set(poi.Name)
	vm.NavigationCommand.Emit(navigation.Back)
	return nil
}

// CurrentItem builds an item from the form fields. The id is left empty so a
// fresh one is generated on save.
func (vm *SaveReminderViewModel) CurrentItem() ReminderDataItem {
	return ReminderDataItem{
		Title:       vm.ReminderTitle.Get(),
		Description: vm.ReminderDescription.Get(),
		Location:    vm.ReminderSelectedLocationStr.Get(),
		Latitude:    vm.Latitude.Get(),
		Longitude:   vm.Longitude.Get(),
	}
}
