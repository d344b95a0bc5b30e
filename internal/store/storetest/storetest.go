// Package storetest has store wrappers for tests.
package storetest

import (
	"context"
	"errors"

	"github.com/idilsaglam/todolist/internal/store/memstore"
)

var ErrUnavailable = errors.New("store unavailable")

// Recorder is an in-memory store that counts writes per key and can be
// switched to fail.
type Recorder struct {
	*memstore.Store

	Sets    map[string]int
	FailGet bool
	FailSet bool
}

func NewRecorder() *Recorder {
	return &Recorder{Store: memstore.New(), Sets: map[string]int{}}
}

// Seed writes directly, bypassing counters and failure switches.
func (r *Recorder) Seed(key, value string) {
	_ = r.Store.Set(context.Background(), key, value)
}

// Value returns the raw stored text, "" when absent.
func (r *Recorder) Value(key string) string {
	v, _, _ := r.Store.Get(context.Background(), key)
	return v
}

func (r *Recorder) Get(ctx context.Context, key string) (string, bool, error) {
	if r.FailGet {
		return "", false, ErrUnavailable
	}
	return r.Store.Get(ctx, key)
}

func (r *Recorder) Set(ctx context.Context, key, value string) error {
	r.Sets[key]++
	if r.FailSet {
		return ErrUnavailable
	}
	return r.Store.Set(ctx, key, value)
}
