package xa

import (
	"sort"
	"strings"
	"sync"
)

// Adapter describes an application with a typed adapter package.
type Adapter struct {
	Name     string   `json:"name" yaml:"name"`
	BundleID string   `json:"bundle_id" yaml:"bundle_id"`
	Package  string   `json:"package" yaml:"package"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Adapter{}
)

// Register records an adapter. Adapter packages call it from init; import
// github.com/tmc/xa/apps/all to register every adapter.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(a.Name)] = a
}

// Lookup finds a registered adapter by name, alias or bundle identifier.
func Lookup(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if a, ok := registry[strings.ToLower(name)]; ok {
		return a, true
	}
	for _, a := range registry {
		if strings.EqualFold(a.BundleID, name) {
			return a, true
		}
		for _, alias := range a.Aliases {
			if strings.EqualFold(alias, name) {
				return a, true
			}
		}
	}
	return Adapter{}, false
}

// Adapters returns the registered adapters sorted by name.
func Adapters() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Adapter, 0, len(registry))
	for _, a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
