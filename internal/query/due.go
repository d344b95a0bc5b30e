package query

import (
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

// DueStatus classifies a todo's due date relative to today.
type DueStatus int

const (
	NoDueDate DueStatus = iota
	Overdue
	DueToday
	DueThisWeek
	Scheduled
	// Past is a due date before today on a completed todo.
	Past
)

func (s DueStatus) String() string {
	switch s {
	case Overdue:
		return "overdue"
	case DueToday:
		return "due today"
	case DueThisWeek:
		return "due this week"
	case Scheduled:
		return "scheduled"
	case Past:
		return "past"
	}
	return "no due date"
}

// Status places t on the calendar. Only pending todos are ever Overdue.
// "This week" is the calendar week, Sunday through Saturday, holding now.
func Status(t *model.Todo, now time.Time) DueStatus {
	if t.DueDate.IsZero() {
		return NoDueDate
	}
	today := model.DateOf(now)
	due := t.DueDate
	switch {
	case due.Before(today):
		if t.Completed {
			return Past
		}
		return Overdue
	case due == today:
		return DueToday
	case inCalendarWeek(due, now):
		return DueThisWeek
	}
	return Scheduled
}

func inCalendarWeek(d model.Date, now time.Time) bool {
	start := model.DateOf(now).AddDays(-int(now.Weekday()))
	end := start.AddDays(6)
	return !d.Before(start) && !end.Before(d)
}

// Counts are the numbers of pending todos per built-in filter.
type Counts struct {
	All   int
	Today int
	Week  int
}

func CountPending(todos []*model.Todo, now time.Time) Counts {
	var c Counts
	today := model.DateOf(now)
	for _, t := range todos {
		if t.Completed {
			continue
		}
		c.All++
		if t.DueDate.IsZero() {
			continue
		}
		if t.DueDate == today {
			c.Today++
		}
		if inCalendarWeek(t.DueDate, now) {
			c.Week++
		}
	}
	return c
}
