package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/query"
)

const (
	dateLayout     = "Jan 02, 2006"
	longDateLayout = "January 2, 2006"
	maxTitle       = 80
)

// PanelRenderer prints every View it gets as a framed list.
type PanelRenderer struct {
	Out   io.Writer
	Theme Theme
	// Group lists pending todos before done ones.
	Group bool
}

func (r PanelRenderer) Render(v app.View) {
	fmt.Fprintln(r.Out, r.Theme.Panel(r.Theme.ViewLines(v, r.Group)))
}

// ViewLines lays out a View: header, progress, todos and filter counts.
// Todos are numbered by their Index, falling back to their position in
// v.Todos.
func (t Theme) ViewLines(v app.View, group bool) []string {
	pending := v.Total - v.Done
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(v.Title),
		t.Success.Render(t.SymDone), v.Done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), v.Total,
	)

	lines := []string{header, t.Muted.Render(ProgressBar(v.Done, v.Total, 28)), ""}
	if group {
		lines = append(lines, t.groupLines(v.Todos)...)
	} else {
		lines = append(lines, t.flatLines(v.Todos, nil)...)
	}
	lines = append(lines, "", t.Muted.Render(fmt.Sprintf("All %d · Today %d · This Week %d",
		v.Counts.All, v.Counts.Today, v.Counts.Week)))
	return lines
}

func (t Theme) flatLines(items []app.TodoItem, numbers []int) []string {
	if len(items) == 0 {
		return []string{t.Muted.Render("no todos")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		n := it.Index
		if n == 0 {
			n = i + 1
			if numbers != nil {
				n = numbers[i]
			}
		}
		out = append(out, t.TodoLine(n, it))
	}
	return out
}

func (t Theme) groupLines(items []app.TodoItem) []string {
	var pend, done []app.TodoItem
	var pendN, doneN []int
	for i, it := range items {
		if it.Completed {
			done, doneN = append(done, it), append(doneN, i+1)
		} else {
			pend, pendN = append(pend, it), append(pendN, i+1)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, t.flatLines(pend, pendN)...)
	}
	lines = append(lines, "", t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, t.flatLines(done, doneN)...)
	}
	return lines
}

// TodoLine renders one numbered todo: box, title, due date, priority, project.
func (t Theme) TodoLine(n int, it app.TodoItem) string {
	box := t.Muted.Render(t.BoxUnchecked)
	title := truncate(it.Title, maxTitle)
	if it.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}
	parts := []string{t.Muted.Render(fmt.Sprintf("%2d.", n)), box, title}
	if due := t.DueBadge(it); due != "" {
		parts = append(parts, due)
	}
	if it.Priority != "" {
		parts = append(parts, t.PriorityBadge(it.Priority))
	}
	if it.Project != model.DefaultProject {
		parts = append(parts, t.Accent.Render("#"+it.ProjectName))
	}
	return strings.Join(parts, " ")
}

func (t Theme) DueBadge(it app.TodoItem) string {
	if it.DueDate.IsZero() {
		return ""
	}
	date := it.DueDate.Format(dateLayout)
	switch it.Status {
	case query.Overdue:
		return t.Error.Render(t.SymOverdue + " " + date + " (overdue)")
	case query.DueToday:
		return t.Pending.Render(t.SymDue + " today")
	case query.DueThisWeek:
		return t.Accent.Render(t.SymDue + " " + date)
	}
	return t.Muted.Render(t.SymDue + " " + date)
}

func (t Theme) PriorityBadge(p model.Priority) string {
	label := strings.ToUpper(string(p))
	switch p {
	case model.PriorityHigh:
		return t.High.Render(label)
	case model.PriorityMedium:
		return t.Medium.Render(label)
	case model.PriorityLow:
		return t.Low.Render(label)
	}
	return t.Muted.Render(label)
}

// DetailLines describes one todo in full.
func (t Theme) DetailLines(it app.TodoItem) []string {
	desc := it.Description
	if desc == "" {
		desc = t.Muted.Render("No description provided")
	}
	due := t.Muted.Render("No due date")
	if !it.DueDate.IsZero() {
		due = it.DueDate.Format(longDateLayout) + "  " + t.Muted.Render(it.Status.String())
	}
	status := t.Pending.Render("In progress")
	if it.Completed {
		status = t.Success.Render(t.SymDone + " Completed")
	}
	priority := t.Muted.Render("none")
	if it.Priority != "" {
		priority = t.PriorityBadge(it.Priority)
	}
	return []string{
		t.Title.Render(it.Title),
		"",
		t.Accent.Render("Description ") + desc,
		t.Accent.Render("Due         ") + due,
		t.Accent.Render("Priority    ") + priority,
		t.Accent.Render("Status      ") + status,
		t.Accent.Render("Project     ") + it.ProjectName,
		t.Accent.Render("Created     ") + it.CreatedAt.Local().Format("2006-01-02 15:04"),
		t.Muted.Render("id " + it.ID),
	}
}

// ProjectLines lists projects with their pending counts.
func (t Theme) ProjectLines(projects []app.ProjectItem) []string {
	if len(projects) == 0 {
		return []string{t.Muted.Render("no projects")}
	}
	out := make([]string, 0, len(projects)+1)
	out = append(out, t.Title.Render("Projects"))
	for i, p := range projects {
		out = append(out, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			t.Accent.Render("#"+p.Name),
			t.Pending.Render(fmt.Sprintf("%d pending", p.Pending)),
			t.Muted.Render(shortID(p.ID)),
		))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
