// Package query derives the visible subset of todos from the full
// collection. Every function here is pure.
package query

import (
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

type Kind int

const (
	All Kind = iota
	Today
	Week
	Project
)

// Filter selects which todos are visible. ProjectID is set only for the
// Project kind.
type Filter struct {
	Kind      Kind
	ProjectID string
}

const week = 7 * 24 * time.Hour

func AllFilter() Filter              { return Filter{Kind: All} }
func TodayFilter() Filter            { return Filter{Kind: Today} }
func WeekFilter() Filter             { return Filter{Kind: Week} }
func ProjectFilter(id string) Filter { return Filter{Kind: Project, ProjectID: id} }

// ParseFilter maps "all", "today" and "week" to their kinds. Any other key
// names a project; the empty key means all.
func ParseFilter(key string) Filter {
	switch key {
	case "", "all":
		return AllFilter()
	case "today":
		return TodayFilter()
	case "week":
		return WeekFilter()
	}
	return ProjectFilter(key)
}

// Key is the inverse of ParseFilter.
func (f Filter) Key() string {
	switch f.Kind {
	case Today:
		return "today"
	case Week:
		return "week"
	case Project:
		return f.ProjectID
	}
	return "all"
}

// Match reports whether t is visible under f at time now.
func (f Filter) Match(t *model.Todo, now time.Time) bool {
	switch f.Kind {
	case All:
		return true
	case Today:
		return !t.DueDate.IsZero() && t.DueDate == model.DateOf(now)
	case Week:
		// The due date is taken as midnight and compared with the full
		// timestamp, so a todo due today drops out once the day has begun.
		if t.DueDate.IsZero() {
			return false
		}
		due := t.DueDate.In(now.Location())
		return !due.Before(now) && !due.After(now.Add(week))
	case Project:
		return t.Project == f.ProjectID
	}
	return false
}

// SelectVisible returns the todos f lets through, in their original order.
// The input slice is not modified.
func SelectVisible(todos []*model.Todo, f Filter, now time.Time) []*model.Todo {
	out := make([]*model.Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t, now) {
			out = append(out, t)
		}
	}
	return out
}
