// Package app owns the todo and project collections and turns user intents
// into mutations. Each mutation persists the collections it touched and
// then asks the renderer to redraw everything.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/query"
)

// Persistence is the snapshot store the App writes through. Saves report
// success but the App carries on either way.
type Persistence interface {
	LoadTodos(ctx context.Context) []*model.Todo
	SaveTodos(ctx context.Context, todos []*model.Todo) bool
	LoadProjects(ctx context.Context) []*model.Project
	SaveProjects(ctx context.Context, projects []*model.Project) bool
}

// Renderer draws a View. It is called after every mutation.
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

type Option func(*App)

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.log = l }
}

type App struct {
	store    Persistence
	renderer Renderer
	now      func() time.Time
	log      *zap.Logger

	todos    []*model.Todo
	projects []*model.Project
	filter   query.Filter
}

// New returns an empty App; call Load before handling intents.
// A nil renderer is allowed.
func New(p Persistence, r Renderer, opts ...Option) *App {
	a := &App{
		store:    p,
		renderer: r,
		now:      time.Now,
		log:      zap.NewNop(),
		filter:   query.AllFilter(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.Named("app")
	return a
}

// SetRenderer swaps the renderer, for front ends that only exist after Load.
func (a *App) SetRenderer(r Renderer) { a.renderer = r }

// Load replaces the in-memory state with the stored collections. A store
// holding no projects is treated as a first run: the default project and,
// if there are no todos either, the example todos are created and saved.
func (a *App) Load(ctx context.Context) {
	a.todos = a.store.LoadTodos(ctx)
	a.projects = a.store.LoadProjects(ctx)
	a.filter = query.AllFilter()

	if len(a.projects) == 0 {
		a.projects = append(a.projects, model.NewProject(model.SeedProjectName, a.now()))
		a.store.SaveProjects(ctx, a.projects)

		if len(a.todos) == 0 {
			a.todos = exampleTodos(a.now())
			a.store.SaveTodos(ctx, a.todos)
		}
		a.log.Info("seeded", zap.Int("projects", len(a.projects)), zap.Int("todos", len(a.todos)))
	}

	if n := a.repairReferences(); n > 0 {
		a.log.Warn("reassigned todos of missing projects", zap.Int("count", n))
		a.store.SaveTodos(ctx, a.todos)
	}
	a.render()
}

// AddTodo creates a todo from f. A project that does not exist is replaced
// by the default project.
func (a *App) AddTodo(ctx context.Context, f model.TodoFields) TodoItem {
	if f.Project != "" && f.Project != model.DefaultProject && a.findProject(f.Project) == nil {
		a.log.Debug("unknown project, using default", zap.String("project", f.Project))
		f.Project = model.DefaultProject
	}
	now := a.now()
	t := model.NewTodo(f, now)
	a.todos = append(a.todos, t)
	a.log.Debug("todo added", zap.String("id", t.ID))

	a.store.SaveTodos(ctx, a.todos)
	a.render()
	return a.item(t, now)
}

// ToggleTodo flips completion. An unknown id is a no-op and returns false.
func (a *App) ToggleTodo(ctx context.Context, id string) bool {
	t := a.findTodo(id)
	if t == nil {
		a.log.Debug("toggle: no such todo", zap.String("id", id))
		return false
	}
	t.Toggle()

	a.store.SaveTodos(ctx, a.todos)
	a.render()
	return true
}

// DeleteTodo removes a todo. Asking the user is the caller's job.
func (a *App) DeleteTodo(ctx context.Context, id string) bool {
	i := a.todoIndex(id)
	if i < 0 {
		a.log.Debug("delete: no such todo", zap.String("id", id))
		return false
	}
	a.todos = append(a.todos[:i:i], a.todos[i+1:]...)

	a.store.SaveTodos(ctx, a.todos)
	a.render()
	return true
}

func (a *App) AddProject(ctx context.Context, name string) ProjectItem {
	p := model.NewProject(name, a.now())
	a.projects = append(a.projects, p)
	a.log.Debug("project added", zap.String("id", p.ID))

	a.store.SaveProjects(ctx, a.projects)
	a.render()
	return ProjectItem{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

// DeleteProject removes a project and moves its todos to the default
// project. Both collections are written, and the filter goes back to all.
// Removing the last project recreates the default one.
func (a *App) DeleteProject(ctx context.Context, id string) bool {
	i := a.projectIndex(id)
	if i < 0 {
		a.log.Debug("delete: no such project", zap.String("id", id))
		return false
	}
	a.projects = append(a.projects[:i:i], a.projects[i+1:]...)
	moved := a.repairReferences()
	if len(a.projects) == 0 {
		a.projects = append(a.projects, model.NewProject(model.SeedProjectName, a.now()))
	}
	a.filter = query.AllFilter()
	a.log.Debug("project deleted", zap.String("id", id), zap.Int("reassigned", moved))

	a.store.SaveProjects(ctx, a.projects)
	a.store.SaveTodos(ctx, a.todos)
	a.render()
	return true
}

// SetFilter changes which todos are visible.
func (a *App) SetFilter(f query.Filter) {
	a.filter = f
	a.render()
}

func (a *App) Filter() query.Filter { return a.filter }

// FilterLabel names the current filter for a heading.
func (a *App) FilterLabel() string {
	switch a.filter.Kind {
	case query.Today:
		return "Today"
	case query.Week:
		return "This Week"
	case query.Project:
		if a.filter.ProjectID != model.DefaultProject && a.findProject(a.filter.ProjectID) == nil {
			return "Unknown project"
		}
		return a.projectName(a.filter.ProjectID)
	}
	return "All"
}

// VisibleTodos lists the todos the current filter lets through.
func (a *App) VisibleTodos() []TodoItem {
	now := a.now()
	visible := query.SelectVisible(a.todos, a.filter, now)
	out := make([]TodoItem, 0, len(visible))
	for _, t := range visible {
		out = append(out, a.item(t, now))
	}
	return out
}

func (a *App) Projects() []ProjectItem {
	pending := make(map[string]int)
	for _, t := range a.todos {
		if !t.Completed {
			pending[t.Project]++
		}
	}
	out := make([]ProjectItem, 0, len(a.projects))
	for _, p := range a.projects {
		out = append(out, ProjectItem{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, Pending: pending[p.ID]})
	}
	return out
}

// ProjectOptions lists the default project first, then every project.
func (a *App) ProjectOptions() []ProjectOption {
	out := make([]ProjectOption, 0, len(a.projects)+1)
	out = append(out, ProjectOption{ID: model.DefaultProject, Name: DefaultProjectName})
	for _, p := range a.projects {
		out = append(out, ProjectOption{ID: p.ID, Name: p.Name})
	}
	return out
}

// Detail returns one todo by id.
func (a *App) Detail(id string) (TodoItem, bool) {
	t := a.findTodo(id)
	if t == nil {
		return TodoItem{}, false
	}
	return a.item(t, a.now()), true
}

func (a *App) Counts() query.Counts {
	return query.CountPending(a.todos, a.now())
}

func (a *App) View() View {
	done := 0
	for _, t := range a.todos {
		if t.Completed {
			done++
		}
	}
	return View{
		Title:    a.FilterLabel(),
		Filter:   a.filter,
		Todos:    a.VisibleTodos(),
		Projects: a.Projects(),
		Options:  a.ProjectOptions(),
		Counts:   a.Counts(),
		Done:     done,
		Total:    len(a.todos),
	}
}

func (a *App) render() {
	if a.renderer != nil {
		a.renderer.Render(a.View())
	}
}

// repairReferences points todos of missing projects at the default project
// and returns how many moved.
func (a *App) repairReferences() int {
	live := make(map[string]bool, len(a.projects))
	for _, p := range a.projects {
		live[p.ID] = true
	}
	n := 0
	for _, t := range a.todos {
		if t.Project != model.DefaultProject && !live[t.Project] {
			t.Project = model.DefaultProject
			n++
		}
	}
	return n
}

func (a *App) todoIndex(id string) int {
	for i, t := range a.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) findTodo(id string) *model.Todo {
	if i := a.todoIndex(id); i >= 0 {
		return a.todos[i]
	}
	return nil
}

func (a *App) projectIndex(id string) int {
	for i, p := range a.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) findProject(id string) *model.Project {
	if i := a.projectIndex(id); i >= 0 {
		return a.projects[i]
	}
	return nil
}
