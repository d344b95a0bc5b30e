package cli

import (
	"strconv"
	"strings"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/model"
)

// matchRef finds ref among ids: a 1-based index, a full id or a unique id
// prefix. It returns -1 with a nil error when nothing matches.
func matchRef(ref string, ids []string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, usagef("empty reference")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return -1, usagef("index out of range: have %d, got %d (run `todo ls` to see valid indexes)", len(ids), n)
		}
		return n - 1, nil
	}

	found := -1
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
		if strings.HasPrefix(id, ref) {
			if found >= 0 {
				return -1, usagef("ambiguous id prefix %q", ref)
			}
			found = i
		}
	}
	return found, nil
}

// resolveTodo looks ref up in the unfiltered listing.
func resolveTodo(a *app.App, ref string) (app.TodoItem, error) {
	todos := a.VisibleTodos()
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	i, err := matchRef(ref, ids)
	if err != nil {
		return app.TodoItem{}, err
	}
	if i < 0 {
		return app.TodoItem{}, notFound("todo", ref)
	}
	return todos[i], nil
}

// resolveProject also accepts an exact project name.
func resolveProject(a *app.App, ref string) (app.ProjectItem, error) {
	projects := a.Projects()
	for _, p := range projects {
		if p.Name == ref {
			return p, nil
		}
	}
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	i, err := matchRef(ref, ids)
	if err != nil {
		return app.ProjectItem{}, err
	}
	if i < 0 {
		return app.ProjectItem{}, notFound("project", ref)
	}
	return projects[i], nil
}

// projectID resolves a --project or --filter value, where the default
// project may also be named.
func projectID(a *app.App, ref string) (string, error) {
	if ref == model.DefaultProject || strings.EqualFold(ref, app.DefaultProjectName) {
		return model.DefaultProject, nil
	}
	p, err := resolveProject(a, ref)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}
