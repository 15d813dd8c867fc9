// ABOUTME: Leave confirmation view for TUI
// ABOUTME: Prunes the viewer from a stored match roster after confirmation
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/roster"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmLeaveView() string {
	row, ok := m.selected()
	if !ok {
		return "No match selected"
	}

	name := row.view.Title
	if name == "" {
		name = row.key
	}

	title := warningStyle.Render("LEAVE MATCH")
	message := fmt.Sprintf("Remove %s from %s?", m.viewer.Name, name)
	note := "\nThe stored roster is updated; refresh the feed upstream to confirm."

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Leave (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", message, note, "", buttons)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, confirmBoxStyle.Render(content))
}

func (m Model) handleConfirmLeaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		row, ok := m.selected()
		if !ok {
			m.viewMode = ViewList
			return m, nil
		}
		return m, m.leave(row.key)
	case "n", "N", "esc", "q":
		m.viewMode = ViewDetail
	}
	return m, nil
}

// leave prunes the viewer from the stored match identified by key.
func (m Model) leave(key string) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := db.GetMatchSnapshot(m.db, key)
		if err != nil {
			return leftMatchMsg{key: key, err: err}
		}

		pruned, err := roster.PruneDepartedMember(gjson.Parse(snapshot.Payload), m.ids)
		if err != nil {
			return leftMatchMsg{key: key, err: err}
		}
		if string(pruned) == snapshot.Payload {
			return leftMatchMsg{key: key}
		}

		snapshot.Payload = string(pruned)
		if err := db.SaveMatchSnapshot(m.db, snapshot); err != nil {
			return leftMatchMsg{key: key, err: err}
		}
		return leftMatchMsg{key: key, removed: true}
	}
}
