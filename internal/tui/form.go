package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldProject
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Due (YYYY-MM-DD)", "Priority", "Project"}

// todoForm collects the fields of a new todo. The project is picked from a
// fixed list with left/right rather than typed.
type todoForm struct {
	inputs  [fieldProject]textinput.Model
	options []app.ProjectOption
	project int
	focus   int
	err     string
}

func newTodoForm(options []app.ProjectOption, projectID string) todoForm {
	f := todoForm{options: options}
	placeholders := [fieldProject]string{"What needs doing?", "optional", "optional", "low, medium or high"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldPriority].SetValue(string(model.PriorityMedium))
	for i, o := range options {
		if o.ID == projectID {
			f.project = i
		}
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *todoForm) setFocus(i int) tea.Cmd {
	if i < 0 || i >= fieldCount {
		return nil
	}
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// fields validates the input. Blank priority means medium.
func (f *todoForm) fields() (model.TodoFields, error) {
	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	if title == "" {
		return model.TodoFields{}, fmt.Errorf("Title cannot be empty")
	}
	due, err := model.ParseDate(f.inputs[fieldDue].Value())
	if err != nil {
		return model.TodoFields{}, fmt.Errorf("Due date must look like 2024-11-30")
	}
	prio := model.PriorityMedium
	if v := strings.TrimSpace(f.inputs[fieldPriority].Value()); v != "" {
		if prio, err = model.ParsePriority(v); err != nil {
			return model.TodoFields{}, fmt.Errorf("Priority must be low, medium or high")
		}
	}
	project := model.DefaultProject
	if f.project < len(f.options) {
		project = f.options[f.project].ID
	}
	return model.TodoFields{
		Title:       title,
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		DueDate:     due,
		Priority:    prio,
		Project:     project,
	}, nil
}

// update handles one key. ok is true once the form is complete and valid,
// and fields then holds what was entered.
func (f *todoForm) update(msg tea.Msg) (cmd tea.Cmd, fields model.TodoFields, ok bool) {
	if k, isKey := msg.(tea.KeyMsg); isKey {
		switch k.String() {
		case "tab", "down":
			return f.setFocus((f.focus + 1) % fieldCount), fields, false
		case "shift+tab", "up":
			return f.setFocus((f.focus + fieldCount - 1) % fieldCount), fields, false
		case "enter":
			if f.focus < fieldProject {
				return f.setFocus(f.focus + 1), fields, false
			}
			got, err := f.fields()
			if err != nil {
				f.err = err.Error()
				return nil, fields, false
			}
			return nil, got, true
		case "left":
			if f.focus == fieldProject && len(f.options) > 0 {
				f.project = (f.project + len(f.options) - 1) % len(f.options)
				return nil, fields, false
			}
		case "right":
			if f.focus == fieldProject && len(f.options) > 0 {
				f.project = (f.project + 1) % len(f.options)
				return nil, fields, false
			}
		}
	}
	if f.focus < fieldProject {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return cmd, fields, false
}

func (f *todoForm) view(t ui.Theme) string {
	var b strings.Builder
	title := "Add new todo"
	if f.err != "" {
		title += "  " + t.Error.Render(f.err)
	}
	b.WriteString(t.Title.Render(title) + "\n")
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == f.focus {
			label = t.Selected.Render(label)
		} else {
			label = t.Muted.Render(label)
		}
		b.WriteString(label + "\n")
		if i < fieldProject {
			b.WriteString(f.inputs[i].View() + "\n")
			continue
		}
		name := app.DefaultProjectName
		if f.project < len(f.options) {
			name = f.options[f.project].Name
		}
		b.WriteString("  < " + t.Accent.Render(name) + " >")
	}
	return b.String()
}
