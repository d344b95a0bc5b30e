// Package storage snapshots the todo and project collections into a
// key-value store as JSON, and reads them back.
//
// Nothing here fails loudly: a store that cannot be written or holds
// garbage is logged and treated as empty, and the caller's in-memory state
// stays authoritative.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

const (
	TodosKey    = "todos"
	ProjectsKey = "projects"
)

type Repository struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time
}

func New(s store.Store, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{store: s, log: log.Named("storage"), now: time.Now}
}

// SaveTodos overwrites the stored todo collection. It reports whether the
// write reached the store; failures are already logged.
func (r *Repository) SaveTodos(ctx context.Context, todos []*model.Todo) bool {
	if todos == nil {
		todos = []*model.Todo{}
	}
	return r.save(ctx, TodosKey, todos, len(todos))
}

func (r *Repository) SaveProjects(ctx context.Context, projects []*model.Project) bool {
	if projects == nil {
		projects = []*model.Project{}
	}
	return r.save(ctx, ProjectsKey, projects, len(projects))
}

// LoadTodos never fails: a missing key or a malformed value yields an empty
// collection.
func (r *Repository) LoadTodos(ctx context.Context) []*model.Todo {
	return load(ctx, r, TodosKey, r.decodeTodo)
}

func (r *Repository) LoadProjects(ctx context.Context) []*model.Project {
	return load(ctx, r, ProjectsKey, r.decodeProject)
}

func (r *Repository) save(ctx context.Context, key string, v any, n int) bool {
	b, err := json.Marshal(v)
	if err != nil {
		r.log.Warn("save failed", zap.String("key", key), zap.Error(fmt.Errorf("json marshal: %w", err)))
		return false
	}
	if err := r.store.Set(ctx, key, string(b)); err != nil {
		r.log.Warn("save failed", zap.String("key", key), zap.Error(err))
		return false
	}
	r.log.Debug("saved", zap.String("key", key), zap.Int("count", n))
	return true
}

type record = map[string]json.RawMessage

func load[T any](ctx context.Context, r *Repository, key string, decode func(record) (T, error)) []T {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.log.Warn("load failed, starting empty", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if !ok {
		r.log.Info("nothing stored", zap.String("key", key))
		return []T{}
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.log.Warn("stored value is malformed, starting empty", zap.String("key", key), zap.Error(err))
		return []T{}
	}

	out := make([]T, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			r.log.Warn("stored value is malformed, starting empty", zap.String("key", key), zap.Int("index", i), zap.Error(fmt.Errorf("null record")))
			return []T{}
		}
		v, err := decode(rec)
		if err != nil {
			r.log.Warn("stored value is malformed, starting empty", zap.String("key", key), zap.Int("index", i), zap.Error(err))
			return []T{}
		}
		out = append(out, v)
	}
	r.log.Debug("loaded", zap.String("key", key), zap.Int("count", len(out)))
	return out
}

// decodeTodo rebuilds a todo through the constructor from the fields it
// covers, then lays the remaining stored fields over the result.
func (r *Repository) decodeTodo(rec record) (*model.Todo, error) {
	var f model.TodoFields
	if err := field(rec, "title", &f.Title); err != nil {
		return nil, err
	}
	if err := field(rec, "description", &f.Description); err != nil {
		return nil, err
	}
	if err := field(rec, "dueDate", &f.DueDate); err != nil {
		return nil, err
	}
	if err := field(rec, "priority", &f.Priority); err != nil {
		return nil, err
	}
	if err := field(rec, "project", &f.Project); err != nil {
		return nil, err
	}

	t := model.NewTodo(f, r.now())

	var id string
	if err := field(rec, "id", &id); err != nil {
		return nil, err
	}
	if id != "" {
		t.ID = id
	}
	if err := field(rec, "completed", &t.Completed); err != nil {
		return nil, err
	}
	if err := field(rec, "createdAt", &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Extra = extra(rec, model.IsTodoField)
	return t, nil
}

func (r *Repository) decodeProject(rec record) (*model.Project, error) {
	var name string
	if err := field(rec, "name", &name); err != nil {
		return nil, err
	}

	p := model.NewProject(name, r.now())

	var id string
	if err := field(rec, "id", &id); err != nil {
		return nil, err
	}
	if id != "" {
		p.ID = id
	}
	if err := field(rec, "createdAt", &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Extra = extra(rec, model.IsProjectField)
	return p, nil
}

// field decodes rec[key] into dst. Absent and null values leave dst alone.
func field(rec record, key string, dst any) error {
	raw, ok := rec[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

func extra(rec record, known func(string) bool) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for k, v := range rec {
		if known(k) {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[k] = v
	}
	return out
}
