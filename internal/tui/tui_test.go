package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/query"
	"github.com/idilsaglam/todolist/internal/storage"
	"github.com/idilsaglam/todolist/internal/store/memstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

var now = time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)

func newModel(t *testing.T) (Model, *app.App) {
	t.Helper()
	a := app.New(storage.New(memstore.New(), nil), nil, app.WithClock(func() time.Time { return now }))
	a.Load(context.Background())
	return New(context.Background(), a, ui.ThemeNamed("mono")), a
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func titles(items []app.TodoItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestNew_ShowsSeededTodos(t *testing.T) {
	m, _ := newModel(t)
	assert.Len(t, m.list.Items(), 3)

	out := m.View()
	assert.Contains(t, out, "Welcome to Todo App")
	assert.Contains(t, out, "All 3 · Today 1 · This Week 2")
}

func TestSpace_TogglesSelected(t *testing.T) {
	m, a := newModel(t)
	m = press(t, m, space)

	assert.True(t, a.VisibleTodos()[0].Completed)
	it, ok := m.selected()
	require.True(t, ok)
	assert.True(t, it.Completed)

	press(t, m, space)
	assert.False(t, a.VisibleTodos()[0].Completed)
}

func TestDelete_AsksFirst(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, keys("d"))
	assert.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), `Delete "Welcome to Todo App"?`)

	m = press(t, m, keys("n"))
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, a.VisibleTodos(), 3)

	m = press(t, m, keys("d"), keys("y"))
	assert.Equal(t, []string{"Create your first task", "Mark tasks as complete"}, titles(a.VisibleTodos()))
	assert.Len(t, m.list.Items(), 2)
}

func TestAddForm_CreatesTodo(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, keys("a"))
	require.Equal(t, modeAddTodo, m.mode)
	m = press(t, m,
		keys("Buy milk"), enter,
		keys("two litres"), enter,
		keys("2024-11-12"), enter,
		enter, // keep medium
		enter, // default project
	)
	assert.Equal(t, modeList, m.mode)

	todos := a.VisibleTodos()
	require.Len(t, todos, 4)
	got := todos[3]
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "two litres", got.Description)
	assert.Equal(t, model.Date{Year: 2024, Month: time.November, Day: 12}, got.DueDate)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, model.DefaultProject, got.Project)
	assert.Len(t, m.list.Items(), 4)
}

func TestAddForm_RejectsBadInput(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, keys("a"), enter, enter, enter, enter, enter)
	assert.Equal(t, modeAddTodo, m.mode)
	assert.Equal(t, "Title cannot be empty", m.form.err)

	m = press(t, m, esc, keys("a"), keys("x"), enter, enter, keys("tomorrow"), enter, enter, enter)
	assert.Equal(t, modeAddTodo, m.mode)
	assert.Contains(t, m.form.err, "Due date")

	m = press(t, m, esc)
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, a.VisibleTodos(), 3)
}

func TestAddForm_PicksProject(t *testing.T) {
	m, a := newModel(t)
	personal := a.Projects()[0]

	m = press(t, m, keys("a"), keys("Call mum"), enter, enter, enter, enter,
		tea.KeyMsg{Type: tea.KeyRight}, enter)
	require.Equal(t, modeList, m.mode)

	todos := a.VisibleTodos()
	assert.Equal(t, personal.ID, todos[len(todos)-1].Project)
}

func TestAddProject(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, keys("p"), enter)
	assert.Equal(t, modeAddProject, m.mode)
	assert.Equal(t, "Project name cannot be empty", m.status)

	m = press(t, m, keys("Work"), enter)
	assert.Equal(t, modeList, m.mode)
	projects := a.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "Work", projects[1].Name)
}

func TestFilterKeys(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, keys("2"))
	assert.Equal(t, query.TodayFilter(), a.Filter())
	assert.Equal(t, []string{"Welcome to Todo App"}, titles(a.VisibleTodos()))
	assert.Len(t, m.list.Items(), 1)

	m = press(t, m, keys("3"))
	assert.Equal(t, []string{"Create your first task"}, titles(a.VisibleTodos()))

	m = press(t, m, tab)
	assert.Equal(t, query.ProjectFilter(a.Projects()[0].ID), a.Filter())
	assert.Empty(t, m.list.Items())

	m = press(t, m, tab)
	assert.Equal(t, query.AllFilter(), a.Filter())

	press(t, m, keys("2"), keys("1"))
	assert.Equal(t, query.AllFilter(), a.Filter())
}

func TestDeleteProject_NeedsProjectFilter(t *testing.T) {
	m, a := newModel(t)
	old := a.Projects()[0].ID

	m = press(t, m, keys("D"))
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "select a project with tab first", m.status)

	m = press(t, m, tab, keys("D"))
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.confirm.prompt, "Personal")

	m = press(t, m, keys("y"))
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, query.AllFilter(), a.Filter())
	projects := a.Projects()
	require.Len(t, projects, 1)
	assert.NotEqual(t, old, projects[0].ID)
	assert.Len(t, m.list.Items(), 3)
}

func TestDetail(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, enter)
	require.Equal(t, modeDetail, m.mode)
	assert.Contains(t, m.View(), "Open me to see details!")

	m = press(t, m, esc)
	assert.Equal(t, modeList, m.mode)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTodoForm_SubmitReturnsFields(t *testing.T) {
	f := newTodoForm([]app.ProjectOption{{ID: model.DefaultProject, Name: app.DefaultProjectName}}, model.DefaultProject)

	var (
		got model.TodoFields
		ok  bool
	)
	for _, msg := range []tea.Msg{keys("Walk dog"), enter, enter, enter, keys("x"), tab, enter} {
		_, got, ok = f.update(msg)
	}
	assert.False(t, ok)
	assert.Equal(t, "Priority must be low, medium or high", f.err)

	f.inputs[fieldPriority].SetValue("low")
	_, got, ok = f.update(enter)
	require.True(t, ok)
	assert.Equal(t, model.TodoFields{
		Title:    "Walk dog",
		Priority: model.PriorityLow,
		Project:  model.DefaultProject,
	}, got)
}
