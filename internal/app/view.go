package app

import (
	"time"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/query"
)

// DefaultProjectName is how the DefaultProject sentinel is shown.
const DefaultProjectName = "Default"

// View is everything a presentation needs to draw one frame.
type View struct {
	Title    string
	Filter   query.Filter
	Todos    []TodoItem
	Projects []ProjectItem
	Options  []ProjectOption
	Counts   query.Counts

	// Done and Total cover every todo, not just the visible ones.
	Done  int
	Total int
}

// TodoItem is a read-only copy of a todo with display data resolved.
type TodoItem struct {
	ID          string
	Title       string
	Description string
	DueDate     model.Date
	Priority    model.Priority
	Project     string
	ProjectName string
	Completed   bool
	CreatedAt   time.Time
	Status      query.DueStatus
	// Index is the 1-based position in the full collection. Listings
	// number rows by it so a number means the same todo under any filter.
	Index int
}

type ProjectItem struct {
	ID        string
	Name      string
	CreatedAt time.Time
	// Pending counts the project's todos that are not completed.
	Pending int
}

// ProjectOption is one choice in a project picker.
type ProjectOption struct {
	ID   string
	Name string
}

func (a *App) item(t *model.Todo, now time.Time) TodoItem {
	return TodoItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Project:     t.Project,
		ProjectName: a.projectName(t.Project),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		Status:      query.Status(t, now),
		Index:       a.todoIndex(t.ID) + 1,
	}
}

func (a *App) projectName(id string) string {
	if id == model.DefaultProject {
		return DefaultProjectName
	}
	if p := a.findProject(id); p != nil {
		return p.Name
	}
	return id
}
