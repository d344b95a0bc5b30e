package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SeedProjectName is the project created when none exist.
const SeedProjectName = "Personal"

// Project groups todos under a name.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

var projectKeys = map[string]bool{"id": true, "name": true, "createdAt": true}

// IsProjectField reports whether key is one of the JSON keys Project encodes itself.
func IsProjectField(key string) bool { return projectKeys[key] }

func NewProject(name string, now time.Time) *Project {
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
	}
}

func (p *Project) MarshalJSON() ([]byte, error) {
	type plain Project
	b, err := json.Marshal((*plain)(p))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, p.Extra, IsProjectField)
}
