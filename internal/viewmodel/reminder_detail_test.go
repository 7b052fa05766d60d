package viewmodel

import (
	"context"
	"testing"

	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/navigation"
	"github.com/sandeepkv93/locrem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderDetailLoadAndDelete(t *testing.T) {
	reminders := seedReminders()
	fake := testutil.NewFakeDataSource(reminders...)
	vm := NewReminderDetailViewModel(fake, nil)
	ctx := context.Background()

	require.True(t, vm.Load(ctx, reminders[1].ID))
	assert.Equal(t, "ferry_building title", vm.Reminder.Get().Title)
	assert.False(t, vm.ShowNoData.Get())

	vm.Delete(ctx)
	cmd, ok := vm.NavigationCommand.Consume()
	require.True(t, ok)
	assert.Equal(t, navigation.BackTo{Destination: navigation.DestinationReminderList}, cmd)
	assert.Len(t, fake.Reminders(), 2)
}

func TestReminderDetailNotFound(t *testing.T) {
	vm := NewReminderDetailViewModel(testutil.NewFakeDataSource(), nil)
	assert.False(t, vm.Load(context.Background(), "missing"))

	msg, ok := vm.ShowErrorMessage.Consume()
	require.True(t, ok)
	assert.Equal(t, data.MessageReminderNotFound, msg)
	assert.True(t, vm.ShowNoData.Get())
}
