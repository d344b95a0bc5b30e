package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultProject is the project reference of a todo that belongs to no project.
const DefaultProject = "default"

// Todo is the domain model for a todo entry.
type Todo struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// DueDate is the zero Date when the todo has no due date.
	DueDate  Date     `json:"dueDate"`
	Priority Priority `json:"priority"`

	// Project is a Project.ID or DefaultProject.
	Project string `json:"project"`

	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`

	// Extra holds stored attributes this version does not know about.
	// They are written back untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

// TodoFields are the values a user supplies when creating a todo.
type TodoFields struct {
	Title       string
	Description string
	DueDate     Date
	Priority    Priority
	Project     string
}

var todoKeys = map[string]bool{
	"id": true, "title": true, "description": true, "dueDate": true,
	"priority": true, "project": true, "completed": true, "createdAt": true,
}

// IsTodoField reports whether key is one of the JSON keys Todo encodes itself.
func IsTodoField(key string) bool { return todoKeys[key] }

// NewTodo builds a pending todo with a fresh id. Fields are not validated.
func NewTodo(f TodoFields, now time.Time) *Todo {
	project := f.Project
	if project == "" {
		project = DefaultProject
	}
	return &Todo{
		ID:          uuid.NewString(),
		Title:       f.Title,
		Description: f.Description,
		DueDate:     f.DueDate,
		Priority:    f.Priority,
		Project:     project,
		CreatedAt:   now,
	}
}

// Fields returns the constructor-covered values of t.
func (t *Todo) Fields() TodoFields {
	return TodoFields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Project:     t.Project,
	}
}

func (t *Todo) Toggle() { t.Completed = !t.Completed }

func (t *Todo) MarshalJSON() ([]byte, error) {
	type plain Todo
	b, err := json.Marshal((*plain)(t))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, t.Extra, IsTodoField)
}

// appendExtra splices extra members into the encoded object b, skipping keys
// the object already owns. Keys are written in sorted order.
func appendExtra(b []byte, extra map[string]json.RawMessage, known func(string) bool) ([]byte, error) {
	if len(extra) == 0 {
		return b, nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !known(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return b, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1])
	for _, k := range keys {
		raw := extra[k]
		if !json.Valid(raw) {
			return nil, fmt.Errorf("extra field %q: invalid JSON", k)
		}
		name, _ := json.Marshal(k)
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
