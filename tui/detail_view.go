package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/roster"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	youStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

func (m Model) renderDetailView() string {
	row, ok := m.selected()
	if !ok {
		return "No match selected"
	}

	var s strings.Builder

	title := row.view.Title
	if title == "" {
		title = "Match " + row.key
	}
	s.WriteString(titleStyle.Render(strings.ToUpper(title)))
	s.WriteString("\n\n")

	v := row.view
	s.WriteString(m.renderField("Key", row.key))
	s.WriteString(m.renderField("Type", string(v.Type)))
	if v.StartsAt != nil {
		s.WriteString(m.renderField("Starts", v.StartsAt.Local().Format("Mon Jan 2 2006 15:04")))
	}
	s.WriteString(m.renderField("Players", fmt.Sprintf("%d of %d (%d open)", v.Occupied, v.PlayerLimit, v.SpotsRemaining)))
	s.WriteString(m.renderField("Host", m.hostLabel(row)))
	s.WriteString(m.renderField("Private", yesNo(v.IsPrivate)))
	s.WriteString(m.renderField("Invited", yesNo(v.IsInvited)))
	if v.LowRoster {
		s.WriteString(m.renderField("Alert", "starts soon and still needs players"))
	}

	s.WriteString("\n")
	s.WriteString(fieldLabelStyle.Render("Roster"))
	s.WriteString("\n")
	s.WriteString(m.renderRoster(row))

	s.WriteString("\n")
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) hostLabel(row feedRow) string {
	host := identity.HostID(row.record)
	if host == "" {
		host = "-"
	}
	if row.view.IsHost {
		return host + " " + youStyle.Render("(you)")
	}
	return host
}

func (m Model) renderRoster(row feedRow) string {
	var s strings.Builder

	active := roster.FilterActiveParticipants(roster.ParticipantsOf(row.record))
	for _, e := range active {
		s.WriteString(m.renderEntry("player", e))
	}
	for _, e := range roster.FilterRelevantInvitees(roster.InviteesOf(row.record)) {
		s.WriteString(m.renderEntry("invitee", e))
	}

	if s.Len() == 0 {
		return "  (empty)\n"
	}
	return s.String()
}

func (m Model) renderEntry(kind string, e roster.Entry) string {
	line := fmt.Sprintf("  %-8s %s", kind, e.Identity)
	if e.Status != "" {
		line += " · " + e.Status
	}
	if identity.Overlaps(m.ids, e.Identity) {
		line += " " + youStyle.Render("(you)")
	}
	return line + "\n"
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (m Model) renderDetailHelp() string {
	help := []string{"Esc: Back", "l: Leave match", "q: Back"}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.viewMode = ViewList
	case "l":
		if row, ok := m.selected(); ok && (row.view.IsJoined || row.view.IsInvited) {
			m.viewMode = ViewConfirmLeave
		} else {
			m.status = "You are not on this roster"
		}
	}

	return m, nil
}
