package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gafferdev/gaffer/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		models.StatusClaimed:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.StatusReview:     lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
		models.StatusMerged:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}
)

// sectionOrder fixes the board's column order.
var sectionOrder = []models.Status{
	models.StatusPending,
	models.StatusClaimed,
	models.StatusInProgress,
	models.StatusReview,
	models.StatusMerged,
}

// View renders the board.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("gaffer board"))
	if m.reg.Goal != "" {
		b.WriteString(metaStyle.Render(" " + m.reg.Goal))
	}
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("! %v", m.loadErr)))
		b.WriteString("\n\n")
	}

	tasks := m.visibleTasks()
	byStatus := make(map[models.Status][]*models.Task)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	for _, status := range sectionOrder {
		group := byStatus[status]
		if len(group) == 0 {
			continue
		}
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", status, len(group))))
		b.WriteString("\n")
		style := statusStyles[status]
		for _, t := range group {
			line := fmt.Sprintf("  %s: %s", t.ID, t.Description)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
			if t.ClaimedBy != "" {
				b.WriteString(metaStyle.Render(fmt.Sprintf("      by %s on %s", t.ClaimedBy, t.Branch)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(tasks) == 0 {
		b.WriteString(metaStyle.Render("  no tasks match"))
		b.WriteString("\n\n")
	}

	if m.filtering {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("/ filter · esc clear · q quit"))
	b.WriteString("\n")

	return b.String()
}
