package state

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_dateparse/reminder"
)

var now = time.Date(2017, 6, 27, 13, 4, 0, 0, time.UTC)

func TestRemindersRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	done := &reminder.Reminder{ID: reminder.NewID("a.md", 1, "x"), DateTime: now, Status: reminder.Acknowledged}
	snoozed := &reminder.Reminder{ID: reminder.NewID("a.md", 2, "y"), DateTime: now.Add(time.Hour), Status: reminder.Pending}
	require.NoError(t, store.SaveReminders([]*reminder.Reminder{done, snoozed}))

	fresh := []*reminder.Reminder{
		{ID: done.ID, DateTime: now, Status: reminder.Pending},
		{ID: snoozed.ID, DateTime: now, Status: reminder.Triggered},
		{ID: reminder.NewID("a.md", 3, "z"), DateTime: now, Status: reminder.Pending},
	}
	require.NoError(t, store.RestoreStatus(fresh))

	assert.Equal(t, reminder.Acknowledged, fresh[0].Status)
	assert.Equal(t, reminder.Pending, fresh[1].Status)
	assert.True(t, fresh[1].DateTime.Equal(now.Add(time.Hour)))
	assert.Equal(t, reminder.Pending, fresh[2].Status)
}

func TestMissingFileIsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	history, err := store.History()
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NoError(t, store.RestoreStatus(nil))
}

func TestCorruptFile(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))
	_, err := store.History()
	assert.Error(t, err)
}

func TestHistoryIsBounded(t *testing.T) {
	store := NewStore(t.TempDir())
	for i := 0; i < maxHistory+5; i++ {
		require.NoError(t, store.AddHistory(HistoryEntry{Text: fmt.Sprintf("in %d days", i), Lang: "en", At: now}))
	}
	history, err := store.History()
	require.NoError(t, err)
	require.Len(t, history, maxHistory)
	assert.Equal(t, "in 5 days", history[0].Text)
	assert.Equal(t, fmt.Sprintf("in %d days", maxHistory+4), history[len(history)-1].Text)
}

func TestHistorySurvivesReminderSave(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.AddHistory(HistoryEntry{Text: "tomorrow", Lang: "en", At: now}))
	require.NoError(t, store.SaveReminders(nil))

	history, err := store.History()
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
