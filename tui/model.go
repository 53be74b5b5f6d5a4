// Package tui is the interactive playground: type an utterance, see what the
// extractor makes of it, and keep the reminders found in watched files.
package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go_dateparse/datetime"
	"go_dateparse/duration"
	"go_dateparse/extract"
	"go_dateparse/lexicon"
	"go_dateparse/reminder"
	"go_dateparse/state"
)

// Input modes
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeTry
)

// playgroundSource is the SourceFile of reminders typed into the TUI.
const playgroundSource = "playground"

// TickMsg is sent every second to check for triggered reminders
type TickMsg time.Time

// FileUpdateMsg is sent when a watched file is updated
type FileUpdateMsg struct {
	FilePath  string
	Reminders []*reminder.Reminder
}

// preview is what the extractor found in the utterance being typed.
type preview struct {
	dateTime    *datetime.Result
	duration    *duration.Result
	err         error
	hasDateTime bool
	hasDuration bool
}

// Config wires the model to the extraction engine and its surroundings.
type Config struct {
	Registry      *extract.Registry
	Language      string
	DefaultTime   *lexicon.Clock
	Reminders     []*reminder.Reminder
	WatcherEvents <-chan FileUpdateMsg
	Store         *state.Store
	Now           func() time.Time
}

// Model is the Bubble Tea model for the playground
type Model struct {
	registry      *extract.Registry
	langs         []string
	langIndex     int
	defaultTime   *lexicon.Clock
	now           func() time.Time
	watcherEvents <-chan FileUpdateMsg
	store         *state.Store

	list          list.Model
	reminders     []*reminder.Reminder
	pendingDelete bool
	width         int
	height        int

	mode        inputMode
	filterInput textinput.Model
	tryInput    textinput.Model
	preview     preview

	help help.Model
	keys keyMap

	statusMessage string
}

// New creates a new TUI model
func New(cfg Config) Model {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	l := list.New(remindersToItems(cfg.Reminders), itemDelegate{}, 80, 12)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false) // We'll handle filtering ourselves
	l.SetShowHelp(false)

	fi := textinput.New()
	fi.Placeholder = "type to filter, #tag for tags..."
	fi.CharLimit = 100
	fi.Width = 40

	ti := textinput.New()
	ti.Placeholder = "remind me to call mom next friday at 3pm"
	ti.CharLimit = 200
	ti.Width = 60

	m := Model{
		registry:      cfg.Registry,
		langs:         cfg.Registry.Languages(),
		defaultTime:   cfg.DefaultTime,
		now:           now,
		watcherEvents: cfg.WatcherEvents,
		store:         cfg.Store,
		list:          l,
		reminders:     cfg.Reminders,
		mode:          modeNormal,
		filterInput:   fi,
		tryInput:      ti,
		help:          help.New(),
		keys:          keys,
	}
	m.selectLanguage(cfg.Language)
	return m
}

// selectLanguage picks the registered language that lang resolves to.
func (m *Model) selectLanguage(lang string) {
	key, err := extract.Canonical(lang)
	if err != nil {
		return
	}
	for key != "" {
		if i := slices.Index(m.langs, key); i >= 0 {
			m.langIndex = i
			return
		}
		i := strings.LastIndex(key, "-")
		if i < 0 {
			return
		}
		key = key[:i]
	}
}

// Language returns the language used by the playground.
func (m Model) Language() string {
	if len(m.langs) == 0 {
		return ""
	}
	return m.langs[m.langIndex]
}

// Init starts the tick timer and listens for watcher updates
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
	}
	if m.watcherEvents != nil {
		cmds = append(cmds, m.waitForFileUpdate())
	}
	return tea.Batch(cmds...)
}

// tickCmd returns a command that sends a TickMsg after 1 second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForFileUpdate waits for a file update event from the watcher
func (m Model) waitForFileUpdate() tea.Cmd {
	return func() tea.Msg {
		if m.watcherEvents == nil {
			return nil
		}
		event, ok := <-m.watcherEvents
		if !ok {
			return nil
		}
		return event
	}
}
