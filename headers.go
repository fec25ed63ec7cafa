package fetch

import (
	"strings"
	"sync"
)

// Scope partitions the default header table: ScopeCommon applies to every
// request, the verb scopes only to requests of that method.
type Scope string

const (
	ScopeCommon  Scope = "common"
	ScopeGet     Scope = "get"
	ScopePost    Scope = "post"
	ScopePut     Scope = "put"
	ScopeDelete  Scope = "delete"
	ScopePatch   Scope = "patch"
	ScopeHead    Scope = "head"
	ScopeOptions Scope = "options"
)

var allScopes = []Scope{
	ScopeCommon, ScopeGet, ScopePost, ScopePut,
	ScopeDelete, ScopePatch, ScopeHead, ScopeOptions,
}

// Headers maps header names to values. A nil value is the deletion
// sentinel: the header is removed from the scope if present.
type Headers map[string]*string

// ScopedHeaders maps scopes to header updates.
type ScopedHeaders map[Scope]Headers

// String returns a pointer to s, for use as a Headers value.
func String(s string) *string { return &s }

// headerTable is the client's persistent default header state. All eight
// scopes exist from construction and are never removed; clear empties them
// but leaves them present.
type headerTable struct {
	mu     sync.RWMutex
	scopes map[Scope]map[string]string
}

func newHeaderTable() *headerTable {
	t := &headerTable{scopes: make(map[Scope]map[string]string, len(allScopes))}
	for _, s := range allScopes {
		t.scopes[s] = make(map[string]string)
	}
	return t
}

func (t *headerTable) merge(scope Scope, h Headers) {
	t.mu.Lock()
	defer t.mu.Unlock()

	set, ok := t.scopes[scope]
	if !ok {
		// Unknown scopes are ignored
		return
	}
	for name, value := range h {
		if value == nil {
			delete(set, name)
			continue
		}
		set[name] = *value
	}
}

func (t *headerTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for s := range t.scopes {
		t.scopes[s] = make(map[string]string)
	}
}

func (t *headerTable) snapshot(scope Scope) map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]string, len(t.scopes[scope]))
	for k, v := range t.scopes[scope] {
		out[k] = v
	}
	return out
}

// forMethod merges the common scope with the verb's scope; the verb scope
// wins on conflicts.
func (t *headerTable) forMethod(method string) map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]string, len(t.scopes[ScopeCommon]))
	for k, v := range t.scopes[ScopeCommon] {
		out[k] = v
	}
	if verb, ok := t.scopes[Scope(strings.ToLower(method))]; ok {
		for k, v := range verb {
			out[k] = v
		}
	}
	return out
}

// SetGlobalHeaders applies h to the common scope. Nil values delete.
func (c *Client) SetGlobalHeaders(h Headers) {
	c.headers.merge(ScopeCommon, h)
}

// SetScopedHeaders applies each scope's updates to that scope only.
// Unknown scopes are ignored; nil values delete.
func (c *Client) SetScopedHeaders(s ScopedHeaders) {
	for scope, h := range s {
		c.headers.merge(scope, h)
	}
}

// ClearGlobalHeaders removes every header from every scope. The scopes
// themselves remain.
func (c *Client) ClearGlobalHeaders() {
	c.headers.clear()
}

// GlobalHeaders returns a copy of one scope's current headers.
func (c *Client) GlobalHeaders(scope Scope) map[string]string {
	return c.headers.snapshot(scope)
}
