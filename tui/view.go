package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("go_dateparse"))
	b.WriteString(sourceStyle.Render("  language: " + m.Language()))
	b.WriteString("\n\n")

	if len(m.reminders) == 0 {
		b.WriteString(m.emptyView())
	} else {
		b.WriteString(m.list.View())
	}

	switch m.mode {
	case modeTry:
		label := inputLabelStyle.Render("✎ Utterance: ")
		b.WriteString("\n")
		b.WriteString(inputBoxStyle.Render(label + m.tryInput.View()))
		b.WriteString("\n")
		b.WriteString(m.previewView())
		b.WriteString("\n")
		b.WriteString(inputHintStyle.Render("  enter: add reminder  tab: next language  esc: cancel"))

	case modeFilter:
		label := inputLabelStyle.Render("🔍 Filter: ")
		hint := inputHintStyle.Render("  (enter to apply, esc to cancel)")
		b.WriteString("\n")
		b.WriteString(inputBoxStyle.Render(label + m.filterInput.View() + hint))

	default:
		if m.filterInput.Value() != "" {
			b.WriteString("\n")
			b.WriteString(inputLabelStyle.Render(fmt.Sprintf("🔍 Filtered: %q", m.filterInput.Value())))
		}
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	if m.statusMessage != "" {
		b.WriteString("\n")
		b.WriteString(inputHintStyle.Render("  " + m.statusMessage))
	}

	return appStyle.Render(b.String())
}

func (m Model) emptyView() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	lines := []string{
		normalStyle.Render("No reminders yet."),
		"",
		normalStyle.Render("Press ") + selectedItemStyle.Render("n") + normalStyle.Render(" and type something like"),
		inputHintStyle.Render("remind me to call mom next friday at 3pm"),
		inputHintStyle.Render("in 2 hours and 30 minutes check the oven"),
		"",
		normalStyle.Render("Or watch a file containing"),
		inputHintStyle.Render("[remind_me tomorrow at noon lunch with sam]"),
	}
	var centered []string
	for _, line := range lines {
		centered = append(centered, lipgloss.PlaceHorizontal(width-4, lipgloss.Center, line))
	}
	return strings.Join(centered, "\n")
}

// previewView shows what the extractor found in the utterance being typed.
func (m Model) previewView() string {
	p := m.preview
	row := func(k, v string) string {
		return previewKeyStyle.Render(k) + previewValueStyle.Render(v)
	}

	var rows []string
	switch {
	case p.err != nil:
		rows = append(rows, errorStyle.Render("  ⚠ "+p.err.Error()))
	case !p.hasDateTime && !p.hasDuration:
		if strings.TrimSpace(m.tryInput.Value()) != "" {
			rows = append(rows, sourceStyle.Render("  nothing recognised yet"))
		}
	default:
		if p.hasDateTime {
			rows = append(rows, row("  when", p.dateTime.Time.Format("Mon Jan 2 2006 15:04:05")))
			rows = append(rows, row("  rest", fmt.Sprintf("%q", p.dateTime.Leftover)))
			var rules []string
			for _, match := range p.dateTime.Matches {
				rules = append(rules, match.Rule)
			}
			rows = append(rows, row("  rules", strings.Join(rules, ", ")))
		}
		if p.hasDuration {
			rows = append(rows, row("  lasts", p.duration.Length.String()))
		}
	}
	return strings.Join(rows, "\n")
}
