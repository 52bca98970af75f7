// Package portstest provides in-memory implementations of the repository
// ports for use in tests.
package portstest

import (
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns an identifier shaped like the ones issued by the database.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// collection is a goroutine-safe keyed table preserving insertion order.
type collection[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{rows: make(map[string]T)}
}

func (c *collection[T]) insert(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = append(c.order, id)
	c.rows[id] = v
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.rows[id]
	return v, ok
}

// update applies fn to the stored row and returns the result.
func (c *collection[T]) update(id string, fn func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.rows[id]
	if !ok {
		return v, false
	}
	fn(&v)
	c.rows[id] = v
	return v, true
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		return false
	}
	delete(c.rows, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return true
}

// newest returns the rows matching keep, sorted by ts descending. Rows with
// equal timestamps are returned most recently inserted first.
func (c *collection[T]) newest(keep func(T) bool, ts func(T) time.Time) []T {
	c.mu.RLock()
	out := make([]T, 0, len(c.order))
	for i := len(c.order) - 1; i >= 0; i-- {
		v := c.rows[c.order[i]]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return ts(out[i]).After(ts(out[j])) })
	return out
}

func (c *collection[T]) count(keep func(T) bool) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, v := range c.rows {
		if keep == nil || keep(v) {
			n++
		}
	}
	return n
}

func pointers[T any](vs []T) []*T {
	out := make([]*T, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

func limit[T any](vs []T, n int) []T {
	if n > 0 && len(vs) > n {
		return vs[:n]
	}
	return vs
}
