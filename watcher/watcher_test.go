package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_dateparse/extract"
	"go_dateparse/lexicon"
	"go_dateparse/observability"
	"go_dateparse/parser"
)

var baseTime = time.Date(2017, 6, 27, 13, 4, 0, 0, time.UTC)

func newTestWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	logger := observability.Discard()
	registry := extract.NewDefaultRegistry(lexicon.NewRepository(), logger)
	p := parser.New(registry, parser.WithLogger(logger))

	opts = append([]Option{WithClock(func() time.Time { return baseTime }), WithLogger(logger)}, opts...)
	w, err := New(p, opts...)
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w
}

// waitForReminders drains events until path reports want reminders. Editors
// and os.WriteFile can produce a Create before the content is written.
func waitForReminders(t *testing.T, w *Watcher, path string, want int) FileEvent {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case event := <-w.Events:
			require.NoError(t, event.Err)
			if event.FilePath == path && len(event.Reminders) == want {
				return event
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %d reminders in %s", want, path)
			return FileEvent{}
		}
	}
}

func TestWatcherFileUpdates(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{
			name:     "single reminder",
			content:  "# Test\nThis has [remind_me in 1 hour test reminder] in it.",
			expected: 1,
		},
		{
			name:     "multiple reminders same line",
			content:  "Multiple [remind_me +1h first] and [remind_me +2h second] reminders.",
			expected: 2,
		},
		{
			name: "natural language formats",
			content: `# Test
Relative: [remind_me +30m relative time]
Natural: [remind_me tomorrow 9am natural language]
Specific: [remind_me 2017-07-15T14:30 specific datetime]
Time only: [remind_me at 3pm time only today]
German: [remind_me:de übermorgen um 8 Uhr Zahnarzt]`,
			expected: 5,
		},
		{
			name: "markers without a date are ignored",
			content: `[remind_me buy milk]

[remind_me in 5 minutes after empty line]`,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			w := newTestWatcher(t)
			w.Start()
			require.NoError(t, w.WatchDirectory(tempDir))

			testFile := filepath.Join(tempDir, "test.md")
			require.NoError(t, os.WriteFile(testFile, []byte(tt.content), 0o644))

			event := waitForReminders(t, w, testFile, tt.expected)
			for _, r := range event.Reminders {
				assert.Equal(t, testFile, r.SourceFile)
			}
		})
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	tempDir := t.TempDir()
	w := newTestWatcher(t, WithExtensions("md"))
	w.Start()
	require.NoError(t, w.WatchDirectory(tempDir))

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "ignored.txt"), []byte("[remind_me +1h nope]"), 0o644))
	mdFile := filepath.Join(tempDir, "notes.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("[remind_me +1h yes]"), 0o644))

	event := waitForReminders(t, w, mdFile, 1)
	assert.Equal(t, "yes", event.Reminders[0].Description)
}

func TestWatcherNewSubdirectory(t *testing.T) {
	tempDir := t.TempDir()
	w := newTestWatcher(t)
	w.Start()
	require.NoError(t, w.WatchDirectory(tempDir))

	sub := filepath.Join(tempDir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// give the watcher time to pick up the new directory
	time.Sleep(100 * time.Millisecond)

	nested := filepath.Join(sub, "nested.md")
	require.NoError(t, os.WriteFile(nested, []byte("[remind_me next friday team lunch]"), 0o644))

	event := waitForReminders(t, w, nested, 1)
	assert.Equal(t, time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC), event.Reminders[0].DateTime)
}

func TestWatcherFileModification(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "notes.md")
	require.NoError(t, os.WriteFile(testFile, []byte("[remind_me +1h first]"), 0o644))

	w := newTestWatcher(t)
	w.Start()
	require.NoError(t, w.WatchFile(testFile))

	require.NoError(t, os.WriteFile(testFile, []byte("[remind_me +1h first]\n[remind_me +2h second]"), 0o644))
	waitForReminders(t, w, testFile, 2)
}

func TestParseInitial(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.md"), []byte("[remind_me tomorrow a]\n[remind_me +1h b]"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "deep", "er"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "deep", "er", "c.txt"), []byte("[remind_me in 3 days c]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "skip.go"), []byte("// [remind_me +1h d]"), 0o644))

	w := newTestWatcher(t)

	all, isDir, err := w.ParseInitial(tempDir)
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Len(t, all, 3)

	single, isDir, err := w.ParseInitial(filepath.Join(tempDir, "a.md"))
	require.NoError(t, err)
	assert.False(t, isDir)
	assert.Len(t, single, 2)

	_, _, err = w.ParseInitial(filepath.Join(tempDir, "missing"))
	assert.Error(t, err)
}

func TestStopIsIdempotent(t *testing.T) {
	w := newTestWatcher(t)
	w.Start()
	w.Stop()
	w.Stop()
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Equal(t, []string{".md", ".txt"}, normalizeExtensions([]string{"MD", " .txt ", ""}))
}
