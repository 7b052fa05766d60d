package viewmodel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReminders() []model.Reminder {
	return []model.Reminder{
		model.NewReminder("", "golden_gate_bridge title", "golden_gate_bridge desc", "golden_gate_bridge", model.Float64(37.819927), model.Float64(-122.478256)),
		model.NewReminder("", "ferry_building title", "ferry_building desc", "ferry_building", model.Float64(37.795490), model.Float64(-122.394276)),
		model.NewReminder("", "pier_39 title", "pier_39 desc", "pier_39", model.Float64(37.808674), model.Float64(-122.409821)),
	}
}

func TestLoadRemindersSetsRemindersList(t *testing.T) {
	reminders := seedReminders()
	vm := NewRemindersListViewModel(testutil.NewFakeDataSource(reminders...), nil)

	vm.LoadReminders(context.Background())

	want := make([]ReminderDataItem, 0, len(reminders))
	for _, r := range reminders {
		want = append(want, ReminderDataItem{
			Title:       r.Title,
			Description: r.Description,
			Location:    r.Location,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			ID:          r.ID,
		})
	}
	assert.Equal(t, want, vm.RemindersList.Get())
	assert.False(t, vm.ShowNoData.Get())
	assert.False(t, vm.ShowLoading.Get())
}

func TestLoadRemindersLoadingTransitions(t *testing.T) {
	fake := testutil.NewFakeDataSource(seedReminders()...)
	fake.Gate = make(chan struct{})
	vm := NewRemindersListViewModel(fake, nil)

	var mu sync.Mutex
	var transitions []bool
	vm.ShowLoading.Observe(func(v bool) {
		mu.Lock()
		transitions = append(transitions, v)
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		vm.LoadReminders(context.Background())
	}()

	require.Eventually(t, vm.ShowLoading.Get, time.Second, 5*time.Millisecond)
	close(fake.Gate)
	<-done

	assert.False(t, vm.ShowLoading.Get())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, transitions)
}

func TestLoadRemindersClearsNoDataWhileLoading(t *testing.T) {
	fake := testutil.NewFakeDataSource()
	vm := NewRemindersListViewModel(fake, nil)
	vm.LoadReminders(context.Background())
	require.True(t, vm.ShowNoData.Get())

	var mu sync.Mutex
	var noDataWhileLoading []bool
	vm.ShowLoading.Observe(func(loading bool) {
		if loading {
			mu.Lock()
			noDataWhileLoading = append(noDataWhileLoading, vm.ShowNoData.Get())
			mu.Unlock()
		}
	})

	fake.Gate = make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		vm.LoadReminders(context.Background())
	}()

	require.Eventually(t, vm.ShowLoading.Get, time.Second, 5*time.Millisecond)
	assert.False(t, vm.ShowNoData.Get())
	close(fake.Gate)
	<-done

	assert.False(t, vm.ShowLoading.Get())
	assert.True(t, vm.ShowNoData.Get())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false}, noDataWhileLoading)
}

func TestLoadRemindersEmptyStoreShowsNoData(t *testing.T) {
	vm := NewRemindersListViewModel(testutil.NewFakeDataSource(), nil)
	vm.LoadReminders(context.Background())

	assert.Empty(t, vm.RemindersList.Get())
	assert.NotNil(t, vm.RemindersList.Get())
	assert.True(t, vm.ShowNoData.Get())
	assert.False(t, vm.ShowLoading.Get())
}

func TestLoadRemindersErrorShowsSnackBarAndNoData(t *testing.T) {
	fake := testutil.NewFakeDataSource(seedReminders()...)
	vm := NewRemindersListViewModel(fake, nil)

	vm.LoadReminders(context.Background())
	require.Len(t, vm.RemindersList.Get(), 3)

	fake.SetReturnError(true)
	vm.LoadReminders(context.Background())

	msg, ok := vm.ShowSnackBar.Consume()
	require.True(t, ok)
	assert.Equal(t, testutil.ErrorMessage, msg)
	assert.True(t, vm.ShowNoData.Get())
	assert.False(t, vm.ShowLoading.Get())
	// stale items stay in place
	assert.Len(t, vm.RemindersList.Get(), 3)
}

func TestLoadRemindersReplacesState(t *testing.T) {
	fake := testutil.NewFakeDataSource(seedReminders()...)
	vm := NewRemindersListViewModel(fake, nil)
	ctx := context.Background()

	vm.LoadReminders(ctx)
	require.Len(t, vm.RemindersList.Get(), 3)

	fake.DeleteAllReminders(ctx)
	vm.LoadReminders(ctx)
	assert.Empty(t, vm.RemindersList.Get())
	assert.True(t, vm.ShowNoData.Get())
}

func TestListNavigation(t *testing.T) {
	vm := NewRemindersListViewModel(testutil.NewFakeDataSource(), nil)

	vm.NavigateToAddReminder()
	cmd, ok := vm.NavigationCommand.Consume()
	require.True(t, ok)
	assert.Equal(t, navigation.To{Destination: navigation.DestinationSaveReminder}, cmd)

	vm.OpenReminder("rem-1")
	cmd, ok = vm.NavigationCommand.Consume()
	require.True(t, ok)
	assert.Equal(t, navigation.To{Destination: navigation.DestinationReminderDetail, ReminderID: "rem-1"}, cmd)
}
