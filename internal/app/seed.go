package app

import (
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

// exampleTodos are shown on first run.
func exampleTodos(now time.Time) []*model.Todo {
	today := model.DateOf(now)
	return []*model.Todo{
		model.NewTodo(model.TodoFields{
			Title:       "Welcome to Todo App",
			Description: "Open me to see details!",
			DueDate:     today,
			Priority:    model.PriorityHigh,
			Project:     model.DefaultProject,
		}, now),
		model.NewTodo(model.TodoFields{
			Title:       "Create your first task",
			Description: `Press "a" in the UI or run "todo add"`,
			DueDate:     today.AddDays(5),
			Priority:    model.PriorityMedium,
			Project:     model.DefaultProject,
		}, now),
		model.NewTodo(model.TodoFields{
			Title:       "Mark tasks as complete",
			Description: `Press space in the UI or run "todo done"`,
			DueDate:     today.AddDays(10),
			Priority:    model.PriorityLow,
			Project:     model.DefaultProject,
		}, now),
	}
}
