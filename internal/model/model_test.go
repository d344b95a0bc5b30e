package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)

func TestNewTodo(t *testing.T) {
	due := Date{2024, time.November, 16}
	todo := NewTodo(TodoFields{Title: "Buy milk", DueDate: due, Priority: PriorityHigh}, created)

	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, due, todo.DueDate)
	assert.Equal(t, DefaultProject, todo.Project)
	assert.False(t, todo.Completed)
	assert.Equal(t, created, todo.CreatedAt)
}

func TestNewTodo_AcceptsBlankFields(t *testing.T) {
	todo := NewTodo(TodoFields{}, created)
	assert.Equal(t, "", todo.Title)
	assert.True(t, todo.DueDate.IsZero())
	assert.Equal(t, Priority(""), todo.Priority)
}

func TestNewTodo_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		id := NewTodo(TodoFields{}, created).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestToggle(t *testing.T) {
	todo := NewTodo(TodoFields{Title: "x"}, created)
	todo.Toggle()
	assert.True(t, todo.Completed)
	todo.Toggle()
	assert.False(t, todo.Completed)
}

func TestTodoMarshalJSON(t *testing.T) {
	todo := NewTodo(TodoFields{
		Title:    "Welcome",
		DueDate:  Date{2024, time.November, 10},
		Priority: PriorityMedium,
	}, created)
	todo.ID = "t1"

	b, err := json.Marshal(todo)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "t1",
		"title": "Welcome",
		"description": "",
		"dueDate": "2024-11-10",
		"priority": "medium",
		"project": "default",
		"completed": false,
		"createdAt": "2024-11-10T08:00:00Z"
	}`, string(b))
}

func TestTodoMarshalJSON_Extra(t *testing.T) {
	todo := NewTodo(TodoFields{Title: "x"}, created)
	todo.Extra = map[string]json.RawMessage{
		"tags":  json.RawMessage(`["a","b"]`),
		"title": json.RawMessage(`"shadowed"`),
	}

	b, err := json.Marshal(todo)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, []any{"a", "b"}, m["tags"])
	assert.Equal(t, "x", m["title"])
}

func TestTodoMarshalJSON_InvalidExtra(t *testing.T) {
	todo := NewTodo(TodoFields{Title: "x"}, created)
	todo.Extra = map[string]json.RawMessage{"bad": json.RawMessage(`{`)}

	_, err := json.Marshal(todo)
	assert.Error(t, err)
}

func TestProjectMarshalJSON(t *testing.T) {
	p := NewProject("Work", created)
	p.ID = "p1"
	p.Extra = map[string]json.RawMessage{"color": json.RawMessage(`"red"`)}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Work","createdAt":"2024-11-10T08:00:00Z","color":"red"}`, string(b))
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]Priority{"low": PriorityLow, " Medium ": PriorityMedium, "HIGH": PriorityHigh} {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}
