package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]TableDefinition)
	registryMu sync.RWMutex
)

// Register adds a table definition to the registry.
// Panics if a table with the same key is already registered, or if the
// definition does not promote exactly one id and one thickness column.
func Register(def TableDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}
	if err := checkDefinition(def); err != nil {
		panic(fmt.Sprintf("table %s: %v", def.Info.Key, err))
	}

	// Populate Columns from FieldSpecs if not set
	if len(def.Info.Columns) == 0 && len(def.FieldSpecs) > 0 {
		def.Info.Columns = make([]string, len(def.FieldSpecs))
		for i, spec := range def.FieldSpecs {
			def.Info.Columns[i] = spec.Name
		}
	}

	registry[def.Info.Key] = def
}

func checkDefinition(def TableDefinition) error {
	counts := make(map[Target]int)
	for _, spec := range def.FieldSpecs {
		if spec.Target != TargetExtra {
			counts[spec.Target]++
		}
	}
	for target, n := range counts {
		if n > 1 {
			return fmt.Errorf("target %d promoted by %d columns", target, n)
		}
	}
	if counts[TargetID] != 1 || counts[TargetThickness] != 1 {
		return fmt.Errorf("id and thickness columns are required")
	}
	return nil
}

// Get returns a table definition by key.
// Returns false if not found.
func Get(key string) (TableDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// ByKind returns the table definition registered for a kind.
// When several tables share a kind the one with the lowest key wins.
func ByKind(kind TableKind) (TableDefinition, bool) {
	for _, def := range All() {
		if def.Info.Kind == kind {
			return def, true
		}
	}
	return TableDefinition{}, false
}

// All returns all registered table definitions.
// Sorted by kind then by key for consistent ordering.
func All() []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Kind != result[j].Info.Kind {
			return result[i].Info.Kind < result[j].Info.Kind
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered tables.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]TableDefinition)
}
