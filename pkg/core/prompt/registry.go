package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"
	"text/template"
)

// ErrPromptNotFound is returned for IDs nothing registered.
var ErrPromptNotFound = errors.New("prompt not found")

// entry pairs a template with its parsed user prompt so a broken override is caught when
// it is registered, not on the first request that needs it.
type entry struct {
	pt   *PromptTemplate
	user *template.Template
}

// Registry is a concurrency-safe prompt library keyed by prompt ID.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

var (
	global     *Registry
	globalOnce sync.Once
)

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Get returns the process-wide registry.
func Get() *Registry {
	globalOnce.Do(func() { global = NewRegistry() })
	return global
}

// Register stores pt, replacing any prompt with the same ID.
func (r *Registry) Register(pt *PromptTemplate) error {
	e, err := compile(pt)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.entries[pt.ID] = e
	r.mu.Unlock()
	return nil
}

// RegisterIfAbsent stores pt unless its ID is taken and reports whether it was stored.
func (r *Registry) RegisterIfAbsent(pt *PromptTemplate) (bool, error) {
	e, err := compile(pt)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.entries[pt.ID]; taken {
		return false, nil
	}
	r.entries[pt.ID] = e
	return true, nil
}

func (r *Registry) GetPrompt(id string) (*PromptTemplate, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPromptNotFound, id)
	}
	return e.pt, nil
}

// Render looks up id and executes its user template with ctx. It returns the template with
// the rendered user prompt.
func (r *Registry) Render(id string, ctx *PromptExecutionContext) (*PromptTemplate, string, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrPromptNotFound, id)
	}
	if e.user == nil {
		return e.pt, "", nil
	}
	var buf bytes.Buffer
	if err := e.user.Execute(&buf, ctx.Variables); err != nil {
		return nil, "", fmt.Errorf("render %s: %w", id, err)
	}
	return e.pt, buf.String(), nil
}

// IDs lists registered prompt IDs, optionally limited to one category, sorted.
func (r *Registry) IDs(category string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id, e := range r.entries {
		if category == "" || e.pt.Category == category {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func compile(pt *PromptTemplate) (entry, error) {
	if pt == nil || pt.ID == "" {
		return entry{}, errors.New("prompt ID cannot be empty")
	}
	e := entry{pt: pt}
	if pt.UserPromptTmpl == "" {
		return e, nil
	}
	tmpl, err := parseUserTemplate(pt)
	if err != nil {
		return entry{}, err
	}
	e.user = tmpl
	return e, nil
}
