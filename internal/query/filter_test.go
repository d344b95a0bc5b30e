package query

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/idilsaglam/todolist/internal/model"
)

// Sunday.
var now = time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)

func todo(title, due, project string) *model.Todo {
	d, err := model.ParseDate(due)
	if err != nil {
		panic(err)
	}
	return model.NewTodo(model.TodoFields{Title: title, DueDate: d, Project: project}, now)
}

func titles(todos []*model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Title)
	}
	return out
}

func fixture() []*model.Todo {
	return []*model.Todo{
		todo("yesterday", "2024-11-09", "default"),
		todo("today", "2024-11-10", "p1"),
		todo("in six days", "2024-11-16", "p1"),
		todo("in seven days", "2024-11-17", "default"),
		todo("in eight days", "2024-11-18", "p2"),
		todo("undated", "", "p2"),
	}
}

func TestSelectVisible_All(t *testing.T) {
	g := NewWithT(t)
	todos := fixture()
	g.Expect(SelectVisible(todos, AllFilter(), now)).To(Equal(todos))
	g.Expect(SelectVisible(nil, AllFilter(), now)).To(BeEmpty())
}

func TestSelectVisible_Today(t *testing.T) {
	g := NewWithT(t)
	g.Expect(titles(SelectVisible(fixture(), TodayFilter(), now))).To(Equal([]string{"today"}))
}

func TestSelectVisible_Week(t *testing.T) {
	g := NewWithT(t)
	got := titles(SelectVisible(fixture(), WeekFilter(), now))

	g.Expect(got).To(Equal([]string{"in six days", "in seven days"}))
	g.Expect(got).NotTo(ContainElement("yesterday"))
	g.Expect(got).NotTo(ContainElement("in eight days"))
	// Midnight of today is already behind now.
	g.Expect(got).NotTo(ContainElement("today"))
}

func TestSelectVisible_WeekAtMidnight(t *testing.T) {
	g := NewWithT(t)
	midnight := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)
	g.Expect(titles(SelectVisible(fixture(), WeekFilter(), midnight))).
		To(Equal([]string{"today", "in six days", "in seven days"}))
}

func TestSelectVisible_Project(t *testing.T) {
	g := NewWithT(t)
	g.Expect(titles(SelectVisible(fixture(), ProjectFilter("p2"), now))).
		To(Equal([]string{"in eight days", "undated"}))
	g.Expect(titles(SelectVisible(fixture(), ProjectFilter(model.DefaultProject), now))).
		To(Equal([]string{"yesterday", "in seven days"}))
	g.Expect(SelectVisible(fixture(), ProjectFilter("missing"), now)).To(BeEmpty())
}

func TestSelectVisible_Pure(t *testing.T) {
	g := NewWithT(t)
	todos := fixture()
	before := append([]*model.Todo(nil), todos...)

	for _, f := range []Filter{AllFilter(), TodayFilter(), WeekFilter(), ProjectFilter("p1")} {
		first := SelectVisible(todos, f, now)
		second := SelectVisible(todos, f, now)
		g.Expect(second).To(Equal(first), f.Key())
	}
	g.Expect(todos).To(Equal(before))
}

func TestParseFilter(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ParseFilter("")).To(Equal(AllFilter()))
	g.Expect(ParseFilter("all")).To(Equal(AllFilter()))
	g.Expect(ParseFilter("today")).To(Equal(TodayFilter()))
	g.Expect(ParseFilter("week")).To(Equal(WeekFilter()))
	g.Expect(ParseFilter("p1")).To(Equal(ProjectFilter("p1")))

	for _, f := range []Filter{AllFilter(), TodayFilter(), WeekFilter(), ProjectFilter("abc")} {
		g.Expect(ParseFilter(f.Key())).To(Equal(f))
	}
}
