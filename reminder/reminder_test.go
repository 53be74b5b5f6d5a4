package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2017, 6, 27, 13, 4, 0, 0, time.UTC)

func TestNewIDIsStable(t *testing.T) {
	a := NewID("notes.md", 3, "tomorrow call mom")
	b := NewID("notes.md", 3, "tomorrow call mom")
	assert.Equal(t, a, b)
	assert.Equal(t, 5, int(a.Version()))

	assert.NotEqual(t, a, NewID("notes.md", 4, "tomorrow call mom"))
	assert.NotEqual(t, a, NewID("todo.md", 3, "tomorrow call mom"))
	assert.NotEqual(t, a, NewID("notes.md", 3, "tomorrow call dad"))
}

func TestSortByDateTime(t *testing.T) {
	rs := []*Reminder{
		{Description: "c", DateTime: now.Add(2 * time.Hour)},
		{Description: "a", DateTime: now},
		{Description: "b", DateTime: now.Add(time.Hour)},
		{Description: "a2", DateTime: now},
	}
	SortByDateTime(rs)

	var got []string
	for _, r := range rs {
		got = append(got, r.Description)
	}
	assert.Equal(t, []string{"a", "a2", "b", "c"}, got)
}

func TestMergeFromFile(t *testing.T) {
	keep := &Reminder{ID: NewID("a.md", 1, "x"), SourceFile: "a.md", Status: Pending}
	done := &Reminder{ID: NewID("b.md", 1, "y"), SourceFile: "b.md", Status: Acknowledged}
	gone := &Reminder{ID: NewID("b.md", 2, "z"), SourceFile: "b.md", Status: Triggered}

	fresh := []*Reminder{
		{ID: NewID("b.md", 1, "y"), SourceFile: "b.md", Status: Pending},
		{ID: NewID("b.md", 5, "new"), SourceFile: "b.md", Status: Pending},
	}

	merged := MergeFromFile([]*Reminder{keep, done, gone}, "b.md", fresh)
	require.Len(t, merged, 3)
	assert.Same(t, keep, merged[0])
	assert.Equal(t, Acknowledged, merged[1].Status)
	assert.Equal(t, Pending, merged[2].Status)
}

func TestTriggerAndSnooze(t *testing.T) {
	due := &Reminder{DateTime: now.Add(-time.Minute), Status: Pending}
	later := &Reminder{DateTime: now.Add(time.Hour), Status: Pending}
	done := &Reminder{DateTime: now.Add(-time.Hour), Status: Acknowledged}

	assert.True(t, Trigger([]*Reminder{due, later, done}, now))
	assert.Equal(t, Triggered, due.Status)
	assert.Equal(t, Pending, later.Status)
	assert.Equal(t, Acknowledged, done.Status)
	assert.False(t, Trigger([]*Reminder{due, later, done}, now))

	due.Snooze(now, 5*time.Minute)
	assert.Equal(t, Pending, due.Status)
	assert.Equal(t, now.Add(5*time.Minute), due.DateTime)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "TRIGGERED", Triggered.String())
	assert.Equal(t, "done", Acknowledged.String())
	assert.Equal(t, "unknown", Status(42).String())
}
