package wizard

import (
	"fmt"
	"strings"
	"sync"
)

// FormState accumulates every value entered across the steps of a flow.
// Values live either at the top level ("email") or one level down inside a
// group ("location.country").
type FormState struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewFormState creates a form seeded with a copy of defaults.
func NewFormState(defaults map[string]any) *FormState {
	return &FormState{values: copyValues(defaults)}
}

// Set replaces the single leaf addressed by path. Sibling values inside the
// same group are preserved.
func (f *FormState) Set(path string, value any) error {
	if f == nil {
		return InvalidPathError{Path: path, Reason: "form is nil"}
	}
	parent, child, nested, err := splitPath(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if !nested {
		if _, isGroup := f.values[parent].(map[string]any); isGroup {
			return InvalidPathError{Path: path, Reason: "cannot overwrite a field group"}
		}
		f.values[parent] = value
		return nil
	}

	group := make(map[string]any)
	if existing, ok := f.values[parent]; ok && existing != nil {
		current, isGroup := existing.(map[string]any)
		if !isGroup {
			return InvalidPathError{Path: path, Reason: fmt.Sprintf("%s is not a field group", parent)}
		}
		for k, v := range current {
			group[k] = v
		}
	}
	group[child] = value
	f.values[parent] = group
	return nil
}

// Get returns the value stored under path.
func (f *FormState) Get(path string) (any, bool) {
	if f == nil {
		return nil, false
	}
	parent, child, nested, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	val, ok := f.values[parent]
	if !ok || !nested {
		return val, ok
	}
	group, ok := val.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok = group[child]
	return val, ok
}

// String returns the value under path formatted as text, or "" when unset.
func (f *FormState) String(path string) string {
	val, ok := f.Get(path)
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

// Snapshot returns a deep copy of the current values.
func (f *FormState) Snapshot() map[string]any {
	if f == nil {
		return map[string]any{}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return copyValues(f.values)
}

// Clone returns an independent FormState holding the same values.
func (f *FormState) Clone() *FormState {
	return &FormState{values: f.Snapshot()}
}

func splitPath(path string) (parent, child string, nested bool, err error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", "", false, InvalidPathError{Path: path, Reason: "path must not be empty"}
	}
	parts := strings.Split(path, ".")
	switch len(parts) {
	case 1:
		return parts[0], "", false, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", false, InvalidPathError{Path: path, Reason: "empty path segment"}
		}
		return parts[0], parts[1], true, nil
	default:
		return "", "", false, InvalidPathError{Path: path, Reason: "only one level of nesting is supported"}
	}
}

func copyValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if group, ok := v.(map[string]any); ok {
			inner := make(map[string]any, len(group))
			for gk, gv := range group {
				inner[gk] = gv
			}
			out[k] = inner
			continue
		}
		out[k] = v
	}
	return out
}
