package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-11-16")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.November, 16}, d)
	assert.Equal(t, "2024-11-16", d.String())

	d, err = ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())

	_, err = ParseDate("16/11/2024")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := Date{2024, time.December, 30}
	assert.Equal(t, Date{2025, time.January, 2}, d.AddDays(3))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.False(t, d.AddDays(1).Before(d))
}

func TestDateIn(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	got := Date{2024, time.November, 10}.In(loc)
	assert.Equal(t, time.Date(2024, time.November, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, Date{2024, time.November, 10}, DateOf(got))
}

func TestDateJSON(t *testing.T) {
	var v struct {
		Due Date `json:"due"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-02-29"}`), &v))
	assert.Equal(t, Date{2024, time.February, 29}, v.Due)

	require.NoError(t, json.Unmarshal([]byte(`{"due":""}`), &v))
	assert.True(t, v.Due.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"due":"tomorrow"}`), &v))

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":""}`, string(b))
}
