// ABOUTME: Dashboard view rendering
// ABOUTME: Scores, streak, today's actions and tasks with warmth colors
package tui

import (
	"fmt"
	"strings"

	"github.com/kindling-crm/kindling/insights"
	"github.com/kindling-crm/kindling/models"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔥 Kindling"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("Something went wrong loading the dashboard"))
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render("r to retry, q to quit"))
		return b.String()
	}

	if m.data == nil {
		if m.loading {
			b.WriteString(m.spinner.View())
			b.WriteString(" Loading your network...")
		}
		return b.String()
	}

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" refreshing\n")
	}

	b.WriteString(m.renderScores())
	b.WriteString(m.renderActions())
	b.WriteString(m.renderTasks())

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("j/k move · enter complete · g generate tasks · r refresh · q quit"))
	return b.String()
}

func (m Model) renderScores() string {
	var b strings.Builder
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Network %d", m.data.NetworkStrength)))
	b.WriteString("  ")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Momentum %d", m.data.OfferMomentum)))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("🔥 %d day streak", m.data.Streak.CurrentStreak))
	if m.data.Weekly.NetworkStrengthDelta != 0 {
		b.WriteString(fmt.Sprintf("  (%+d this week)", m.data.Weekly.NetworkStrengthDelta))
	}
	b.WriteString("\n")

	warm, cooling, cold := warmthCounts(m.data.Contacts)
	b.WriteString(warmStyle.Render(fmt.Sprintf("%d warm", warm)))
	b.WriteString(" · ")
	b.WriteString(coolingStyle.Render(fmt.Sprintf("%d cooling", cooling)))
	b.WriteString(" · ")
	b.WriteString(coldStyle.Render(fmt.Sprintf("%d cold", cold)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderActions() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recommended"))
	b.WriteString("\n")
	if len(m.data.Actions) == 0 {
		b.WriteString("  Nothing urgent today\n")
		return b.String()
	}
	for i, action := range m.data.Actions {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, describeAction(action)))
	}
	return b.String()
}

func (m Model) renderTasks() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Today's tasks"))
	b.WriteString("\n")
	if len(m.data.Tasks) == 0 {
		b.WriteString("  No tasks yet — press g to generate\n")
		return b.String()
	}
	for i, task := range m.data.Tasks {
		line := fmt.Sprintf("[ ] %s", task.Description)
		if task.Completed {
			line = doneStyle.Render(fmt.Sprintf("[✓] %s", task.Description))
		}
		if i == m.cursor {
			line = selectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func describeAction(action insights.Action) string {
	switch action.Type {
	case insights.ActionFollowUp:
		return fmt.Sprintf("Follow up with %s", action.Contact.Name)
	case insights.ActionCompanyOverlap:
		return fmt.Sprintf("Ask %s for an intro at %s", action.Contact.Name, action.Metadata)
	default:
		if action.Metadata != "" {
			return fmt.Sprintf("Reach out to %s at %s", action.Contact.Name, action.Metadata)
		}
		return fmt.Sprintf("Reach out to %s", action.Contact.Name)
	}
}

func streakLine(streak *models.Streak) string {
	return fmt.Sprintf("✓ Done — %d day streak, %d tasks total",
		streak.CurrentStreak, streak.TotalTasksCompleted)
}

func warmthCounts(contacts []models.Contact) (warm, cooling, cold int) {
	for _, c := range contacts {
		switch c.WarmthLevel {
		case models.WarmthWarm:
			warm++
		case models.WarmthCooling:
			cooling++
		default:
			cold++
		}
	}
	return warm, cooling, cold
}
