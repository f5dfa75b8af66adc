package core

import (
	"fmt"
	"sort"
	"sync"
)

// Template is a named, reusable field schema a deployment ships with.
// Imports reference templates by key instead of posting a full schema.
type Template struct {
	Key    string // Unique identifier: "contacts"
	Group  string // Data source grouping: "CRM", "Catalog"
	Label  string // Display name: "Contacts"
	Fields Fields
}

var (
	registry   = make(map[string]Template)
	registryMu sync.RWMutex
)

// Register adds a schema template to the registry.
// Panics if a template with the same key is already registered.
func Register(t Template) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[t.Key]; exists {
		panic(fmt.Sprintf("template already registered: %s", t.Key))
	}

	registry[t.Key] = t
}

// GetTemplate returns a schema template by key.
// Returns false if not found.
func GetTemplate(key string) (Template, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[key]
	return t, ok
}

// Templates returns all registered schema templates.
// Sorted by group then by key for consistent ordering.
func Templates() []Template {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Template, 0, len(registry))
	for _, t := range registry {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Group != result[j].Group {
			return result[i].Group < result[j].Group
		}
		return result[i].Key < result[j].Key
	})

	return result
}
