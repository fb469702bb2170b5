package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) View() string {
	switch a.state {
	case stateLogin, stateRegister:
		return a.authView()
	case stateDashboard:
		return a.dashboardView()
	case stateBoard:
		return a.boardView()
	}
	return ""
}

func (a *App) authView() string {
	var b strings.Builder

	title := "⬡ projectdesk — Log in"
	hint := "enter: log in · ctrl+r: switch to register · esc: quit"
	if a.state == stateRegister {
		title = "⬡ projectdesk — Register"
		hint = "enter: register · ctrl+r: switch to log in · esc: quit"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i := range a.inputs {
		b.WriteString("  " + a.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	if a.loading {
		b.WriteString("  working...\n")
	}
	if a.statusMsg != "" {
		b.WriteString("  " + statusStyle.Render(a.statusMsg) + "\n")
	}
	if a.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(a.errMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  "+hint) + "\n")
	return b.String()
}

func (a *App) dashboardView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("⬡ projectdesk — Dashboard") + "\n\n")

	projects := a.board.Projects()
	if a.loading {
		b.WriteString("  loading projects...\n")
	} else if len(projects) == 0 {
		b.WriteString("  No projects yet.\n")
	}

	for i, p := range projects {
		cursor := "  "
		if i == a.projectCursor {
			cursor = "> "
		}
		start, end := a.board.DateRange(p.ID)
		progress := a.board.Progress(p.ID)
		line := fmt.Sprintf("%s%-24s %s  %3d%%  %s → %s  [%s]",
			cursor, truncate(p.Name, 24), progressBar(progress, 20), progress,
			fmtDate(start), fmtDate(end), p.Status)
		if i == a.projectCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if a.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(a.errMsg) + "\n")
	} else if a.statusMsg != "" {
		b.WriteString("\n  " + statusStyle.Render(a.statusMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  enter: open board · r: refresh · ctrl+l: log out · q: quit") + "\n")
	return b.String()
}

func (a *App) boardView() string {
	var b strings.Builder
	name := ""
	if a.selected != nil {
		name = a.selected.Name
	}
	b.WriteString(titleStyle.Render("⬡ "+name) + "\n\n")

	columns := make([]string, 0, len(taskColumns))
	for col, status := range taskColumns {
		var cb strings.Builder
		header := strings.ToUpper(status)
		if status == "overdue" {
			header = overdueStyle.Render(header)
		}
		cb.WriteString(header + "\n\n")

		for i, t := range a.columnTasks(col) {
			line := truncate(t.Title, 22)
			if t.AssignTo != "" {
				line += "\n" + helpStyle.Render("@"+truncate(t.AssignTo, 20))
			}
			line += "\n" + helpStyle.Render("due "+fmtDate(t.EndDate))
			if col == a.columnIndex && i == a.taskCursor {
				cb.WriteString(selectedStyle.Render(line) + "\n\n")
			} else {
				cb.WriteString(cardStyle.Render(line) + "\n\n")
			}
		}
		columns = append(columns, columnStyle.Render(cb.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	if a.loading {
		b.WriteString("\n  working...\n")
	}
	if a.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(a.errMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  h/l: column · j/k: task · H/L: move task · r: refresh · esc: back") + "\n")
	return b.String()
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return doneBarStyle.Render(strings.Repeat("█", filled)) +
		restBarStyle.Render(strings.Repeat("░", width-filled))
}
