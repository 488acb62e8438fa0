package tabular

import (
	"sort"
	"sync"
)

var (
	registryLock sync.RWMutex
	registry     = map[string]ColumnType{
		"String":  &StringColumnType{},
		"Integer": &IntegerColumnType{},
		"Float":   &FloatColumnType{},
		"Decimal": &DecimalColumnType{},
	}
)

// RegisterColumnType associates a ColumnType with a name, for use in Schema headers.
// The last registration for a name wins. Custom types should be registered at startup,
// before any Schema which refers to them is parsed.
func RegisterColumnType(name string, colType ColumnType) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[name] = colType
}

// LookupColumnType returns the ColumnType registered under the given name, if any
func LookupColumnType(name string) (colType ColumnType, ok bool) {
	registryLock.RLock()
	defer registryLock.RUnlock()
	colType, ok = registry[name]
	return
}

// ColumnTypeNames returns the registered type names, sorted
func ColumnTypeNames() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
