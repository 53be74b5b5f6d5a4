package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go_dateparse/extract"
	"go_dateparse/reminder"
	"go_dateparse/state"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilterMode(msg)
		case modeTry:
			return m.updateTryMode(msg)
		default:
			return m.updateNormalMode(msg)
		}

	case TickMsg:
		if reminder.Trigger(m.reminders, m.now()) {
			m.refreshList()
			m.saveState()
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 16
		if listHeight < 5 {
			listHeight = 5
		}
		m.list.SetSize(msg.Width-4, listHeight)

	case FileUpdateMsg:
		m.reminders = reminder.MergeFromFile(m.reminders, msg.FilePath, msg.Reminders)
		reminder.SortByDateTime(m.reminders)
		m.refreshList()
		m.saveState()
		return m, m.waitForFileUpdate()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle 'dd' for delete (vim-style)
	if msg.String() == "d" {
		if m.pendingDelete {
			m.deleteCurrentReminder()
			m.pendingDelete = false
		} else {
			m.pendingDelete = true
		}
		return m, nil
	}
	m.pendingDelete = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Try):
		m.mode = modeTry
		m.tryInput.Reset()
		m.tryInput.Focus()
		m.preview = preview{}
		m.statusMessage = ""
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Language):
		m.cycleLanguage()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Acknowledge):
		r := m.selectedReminder()
		if r != nil && (r.Status == reminder.Pending || r.Status == reminder.Triggered) {
			r.Status = reminder.Acknowledged
			m.refreshList()
			m.saveState()
		}
		return m, nil

	case key.Matches(msg, m.keys.Unacknowledge):
		r := m.selectedReminder()
		if r != nil && r.Status == reminder.Acknowledged {
			if r.IsDue(m.now()) {
				r.Status = reminder.Triggered
			} else {
				r.Status = reminder.Pending
			}
			m.refreshList()
			m.saveState()
		}
		return m, nil

	case key.Matches(msg, m.keys.Snooze5m):
		m.snooze(5 * time.Minute)
		return m, nil

	case key.Matches(msg, m.keys.Snooze1h):
		m.snooze(time.Hour)
		return m, nil

	case key.Matches(msg, m.keys.Snooze1d):
		m.snooze(24 * time.Hour)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.filterInput.Blur()
		m.filterInput.Reset()
		m.refreshList()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeNormal
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.refreshList()
	return m, cmd
}

func (m Model) updateTryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.tryInput.Blur()
		m.tryInput.Reset()
		m.preview = preview{}
		return m, nil
	case tea.KeyTab:
		m.cycleLanguage()
		m.runPreview()
		return m, nil
	case tea.KeyEnter:
		if m.addFromPreview() {
			m.mode = modeNormal
			m.tryInput.Blur()
			m.tryInput.Reset()
			m.preview = preview{}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tryInput, cmd = m.tryInput.Update(msg)
	m.runPreview()
	return m, cmd
}

// runPreview extracts a date/time and a duration from the utterance being
// typed.
func (m *Model) runPreview() {
	text := strings.TrimSpace(m.tryInput.Value())
	m.preview = preview{}
	if text == "" {
		return
	}

	opts := []extract.Option{extract.WithAnchor(m.now())}
	if m.defaultTime != nil {
		opts = append(opts, extract.WithDefaultTime(m.defaultTime.Hour, m.defaultTime.Minute))
	}
	dt, ok, err := m.registry.DateTime(text, m.Language(), opts...)
	if err != nil {
		m.preview.err = err
		return
	}
	if ok {
		m.preview.dateTime, m.preview.hasDateTime = &dt, true
	}
	dur, ok, err := m.registry.Duration(text, m.Language())
	if err == nil && ok {
		m.preview.duration, m.preview.hasDuration = &dur, true
	}
}

// addFromPreview turns the previewed utterance into a reminder. It reports
// false when there is nothing to add.
func (m *Model) addFromPreview() bool {
	if !m.preview.hasDateTime {
		m.statusMessage = "no date or time found"
		return false
	}
	text := strings.TrimSpace(m.tryInput.Value())
	res := m.preview.dateTime
	r := &reminder.Reminder{
		ID:          reminder.NewID(playgroundSource, len(m.reminders), text),
		DateTime:    res.Time,
		Description: res.Leftover,
		Lang:        m.Language(),
		Utterance:   text,
		SourceFile:  playgroundSource,
		Status:      reminder.Pending,
	}
	m.reminders = append(m.reminders, r)
	reminder.SortByDateTime(m.reminders)
	m.refreshList()
	m.saveState()
	m.recordHistory(text)
	m.statusMessage = "added reminder for " + res.Time.Format("Mon Jan 2 15:04")
	return true
}

func (m *Model) cycleLanguage() {
	if len(m.langs) == 0 {
		return
	}
	m.langIndex = (m.langIndex + 1) % len(m.langs)
}

// snooze postpones the selected triggered reminder by d
func (m *Model) snooze(d time.Duration) {
	r := m.selectedReminder()
	if r == nil || r.Status != reminder.Triggered {
		return
	}
	r.Snooze(m.now(), d)
	reminder.SortByDateTime(m.reminders)
	m.refreshList()
	m.saveState()
}

// filteredReminders applies the filter input: plain text matches the
// description, #prefix matches tags.
func (m *Model) filteredReminders() []*reminder.Reminder {
	filter := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if filter == "" {
		return m.reminders
	}
	var out []*reminder.Reminder
	for _, r := range m.reminders {
		if tag, ok := strings.CutPrefix(filter, "#"); ok {
			for _, t := range r.Tags {
				if strings.HasPrefix(strings.ToLower(t), tag) {
					out = append(out, r)
					break
				}
			}
			continue
		}
		if strings.Contains(strings.ToLower(r.Description), filter) {
			out = append(out, r)
		}
	}
	return out
}

// refreshList updates the list items from the current reminders
func (m *Model) refreshList() {
	m.list.SetItems(remindersToItems(m.filteredReminders()))
}

// selectedReminder returns the currently selected reminder, or nil if none
func (m *Model) selectedReminder() *reminder.Reminder {
	item, ok := m.list.SelectedItem().(reminderItem)
	if !ok {
		return nil
	}
	return item.reminder
}

// deleteCurrentReminder removes the selected reminder from tracking
func (m *Model) deleteCurrentReminder() {
	r := m.selectedReminder()
	if r == nil {
		return
	}
	for i, other := range m.reminders {
		if other == r {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			break
		}
	}
	m.refreshList()
	m.saveState()
}

// saveState persists the current reminders to disk
func (m *Model) saveState() {
	if m.store == nil {
		return
	}
	snapshot := make([]*reminder.Reminder, len(m.reminders))
	for i, r := range m.reminders {
		c := *r
		snapshot[i] = &c
	}
	go func() {
		_ = m.store.SaveReminders(snapshot)
	}()
}

func (m *Model) recordHistory(text string) {
	if m.store == nil {
		return
	}
	entry := state.HistoryEntry{Text: text, Lang: m.Language(), At: m.now()}
	go func() {
		_ = m.store.AddHistory(entry)
	}()
}
