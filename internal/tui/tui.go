// Package tui is the interactive terminal front end. It turns key presses
// into App intents and redraws from the View the App renders after each one.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/query"
	"github.com/idilsaglam/todolist/internal/ui"
)

type mode int

const (
	modeList mode = iota
	modeAddTodo
	modeAddProject
	modeConfirm
	modeDetail
)

// frame receives the App's renders. The bubbletea model is copied on every
// update, so it is shared by pointer.
type frame struct {
	view  app.View
	dirty bool
}

func (f *frame) Render(v app.View) {
	f.view = v
	f.dirty = true
}

// listItem adapts a TodoItem to list.Item.
type listItem struct {
	todo app.TodoItem
}

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return i.todo.Description }
func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate draws each todo on a single line.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render(">") + " "
	}
	n := it.todo.Index
	if n == 0 {
		n = index + 1
	}
	fmt.Fprintln(w, prefix+d.theme.TodoLine(n, it.todo))
}

type confirmation struct {
	prompt string
	yes    func(m *Model)
}

// Model is the bubbletea model for the todo screen.
type Model struct {
	ctx   context.Context
	app   *app.App
	theme ui.Theme
	frame *frame

	list    list.Model
	mode    mode
	form    todoForm
	ti      textinput.Model
	confirm confirmation
	detail  app.TodoItem
	status  string

	width, height int
}

var (
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	projectBind = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	filterBind  = key.NewBinding(key.WithKeys("1", "2", "3", "tab"), key.WithHelp("1/2/3/tab", "filter"))
	detailBind  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
)

// New builds a model around a, which becomes the model's renderer. a should
// already be loaded.
func New(ctx context.Context, a *app.App, theme ui.Theme) Model {
	f := &frame{}
	a.SetRenderer(f)
	f.Render(a.View())

	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{toggleBind, addBind, deleteBind, filterBind}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{toggleBind, addBind, projectBind, deleteBind, filterBind, detailBind}
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Project name..."
	ti.CharLimit = 100

	m := Model{ctx: ctx, app: a, theme: theme, frame: f, list: l, ti: ti, width: 80, height: 24}
	m.sync()
	return m
}

// Run drives a until the user quits.
func Run(ctx context.Context, a *app.App, theme ui.Theme) error {
	p := tea.NewProgram(New(ctx, a, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// sync copies the latest rendered View into the list, keeping the cursor
// where it was when possible.
func (m *Model) sync() {
	if !m.frame.dirty {
		return
	}
	m.frame.dirty = false
	v := m.frame.view

	idx := m.list.Index()
	items := make([]list.Item, 0, len(v.Todos))
	for _, t := range v.Todos {
		items = append(items, listItem{t})
	}
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.theme.Title.Render(v.Title),
		m.theme.Success.Render(m.theme.SymDone), v.Done,
		m.theme.Pending.Render(m.theme.SymPending), v.Total-v.Done,
		m.theme.Accent.Render("Total"), v.Total,
	)
}

func (m Model) selected() (app.TodoItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.todo, ok
}

// nextProjectFilter cycles All -> each project -> All.
func (m Model) nextProjectFilter() query.Filter {
	projects := m.frame.view.Projects
	if len(projects) == 0 {
		return query.AllFilter()
	}
	cur := m.app.Filter()
	if cur.Kind != query.Project {
		return query.ProjectFilter(projects[0].ID)
	}
	for i, p := range projects {
		if p.ID == cur.ProjectID && i+1 < len(projects) {
			return query.ProjectFilter(projects[i+1].ID)
		}
	}
	return query.AllFilter()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	switch m.mode {
	case modeAddTodo:
		cmd = m.updateForm(msg)
	case modeAddProject:
		cmd = m.updateProjectInput(msg)
	case modeConfirm:
		m.updateConfirm(msg)
	case modeDetail:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "esc", "enter", "q":
				m.mode = modeList
			}
		}
	default:
		return m.updateList(msg)
	}
	m.sync()
	return m, cmd
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.mode = modeList
		return nil
	}
	cmd, f, ok := m.form.update(msg)
	if !ok {
		return cmd
	}
	it := m.app.AddTodo(m.ctx, f)
	m.status = "added " + it.Title
	m.mode = modeList
	return nil
}

func (m *Model) updateProjectInput(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.ti.Blur()
			m.mode = modeList
			return nil
		case "enter":
			name := strings.TrimSpace(m.ti.Value())
			if name == "" {
				m.status = "Project name cannot be empty"
				return nil
			}
			p := m.app.AddProject(m.ctx, name)
			m.ti.Blur()
			m.status = "added project " + p.Name
			m.mode = modeList
			return nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return cmd
}

func (m *Model) updateConfirm(msg tea.Msg) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch strings.ToLower(k.String()) {
	case "y":
		m.mode = modeList
		m.confirm.yes(m)
	case "n", "esc", "q":
		m.mode = modeList
		m.status = "cancelled"
	}
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		m.status = ""
		switch k.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			if it, ok := m.selected(); ok {
				m.app.ToggleTodo(m.ctx, it.ID)
			}
		case "enter":
			if it, ok := m.selected(); ok {
				if d, found := m.app.Detail(it.ID); found {
					m.detail = d
					m.mode = modeDetail
				}
			}
		case "a":
			projectID := model.DefaultProject
			if f := m.app.Filter(); f.Kind == query.Project {
				projectID = f.ProjectID
			}
			m.form = newTodoForm(m.frame.view.Options, projectID)
			m.mode = modeAddTodo
			return m, textinput.Blink
		case "p":
			m.ti.SetValue("")
			m.mode = modeAddProject
			return m, m.ti.Focus()
		case "d":
			if it, ok := m.selected(); ok {
				id := it.ID
				m.confirm = confirmation{
					prompt: fmt.Sprintf("Delete %q?", it.Title),
					yes: func(m *Model) {
						if m.app.DeleteTodo(m.ctx, id) {
							m.status = "deleted"
						}
					},
				}
				m.mode = modeConfirm
			}
		case "D":
			f := m.app.Filter()
			if f.Kind != query.Project || f.ProjectID == model.DefaultProject {
				m.status = "select a project with tab first"
				break
			}
			id, name := f.ProjectID, m.app.FilterLabel()
			m.confirm = confirmation{
				prompt: fmt.Sprintf("Delete project %q? Its todos move to %s.", name, app.DefaultProjectName),
				yes: func(m *Model) {
					if m.app.DeleteProject(m.ctx, id) {
						m.status = "deleted project " + name
					}
				},
			}
			m.mode = modeConfirm
		case "1":
			m.app.SetFilter(query.AllFilter())
		case "2":
			m.app.SetFilter(query.TodayFilter())
		case "3":
			m.app.SetFilter(query.WeekFilter())
		case "tab":
			m.app.SetFilter(m.nextProjectFilter())
		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		m.sync()
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	bottom := ""
	switch m.mode {
	case modeAddTodo:
		bottom = m.form.view(m.theme)
	case modeAddProject:
		bottom = m.theme.Title.Render("Add new project") + "\n" + m.ti.View()
	case modeConfirm:
		bottom = m.theme.Error.Render(m.confirm.prompt) + "  " + m.theme.Muted.Render("(y/n)")
	case modeDetail:
		bottom = strings.Join(m.theme.DetailLines(m.detail), "\n")
	}

	c := m.frame.view.Counts
	footer := m.theme.Muted.Render(fmt.Sprintf("All %d · Today %d · This Week %d", c.All, c.Today, c.Week))
	if m.status != "" {
		footer += "  " + m.theme.Accent.Render(m.status)
	}

	reserved := 4 + lipgloss.Height(footer)
	if bottom != "" {
		reserved += lipgloss.Height(bottom) + 2
	}
	m.list.SetSize(m.width-4, max(m.height-reserved, 3))

	content := m.list.View()
	if bottom != "" {
		bar := lipgloss.NewStyle().Border(m.theme.Border).BorderForeground(m.theme.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render(bottom)
	}
	content += "\n" + footer
	return lipgloss.NewStyle().
		Border(m.theme.Border).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 1).
		Render(content)
}
