package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go_dateparse/reminder"
)

// reminderItem wraps a Reminder to implement list.Item
type reminderItem struct {
	reminder *reminder.Reminder
}

func (i reminderItem) Title() string {
	return i.reminder.Description
}

func (i reminderItem) Description() string {
	return i.reminder.DateTime.Format("Mon Jan 2 15:04")
}

func (i reminderItem) FilterValue() string {
	return i.reminder.Description
}

// itemDelegate handles rendering of list items
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(reminderItem)
	if !ok {
		return
	}
	r := i.reminder

	var statusIcon string
	var style lipgloss.Style
	switch r.Status {
	case reminder.Triggered:
		statusIcon = "🔔"
		style = triggeredStyle
	case reminder.Acknowledged:
		statusIcon = "✓"
		style = acknowledgedStyle
	default:
		statusIcon = "○"
		style = normalStyle
	}

	if index == m.Index() {
		statusIcon = "▸"
		if r.Status == reminder.Pending {
			style = selectedItemStyle
		}
	}

	desc := r.Description
	if desc == "" {
		desc = r.Utterance
	}
	line := fmt.Sprintf("%s %-16s %-10s %s", statusIcon, r.DateTime.Format("Mon Jan 2 15:04"), r.Status.String(), desc)

	var extra []string
	if len(r.Tags) > 0 {
		extra = append(extra, tagStyle.Render("#"+strings.Join(r.Tags, " #")))
	}
	source := filepath.Base(r.SourceFile)
	if r.LineNumber > 0 {
		source = fmt.Sprintf("%s:%d", source, r.LineNumber)
	}
	extra = append(extra, sourceStyle.Render(source))

	fmt.Fprintf(w, "%s  %s", style.Render(line), strings.Join(extra, " "))
}

func remindersToItems(reminders []*reminder.Reminder) []list.Item {
	items := make([]list.Item, len(reminders))
	for i, r := range reminders {
		items[i] = reminderItem{reminder: r}
	}
	return items
}
