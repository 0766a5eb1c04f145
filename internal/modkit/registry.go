package modkit

import (
	"sort"
	"sync"
)

// Mounted describes a module registered with the process
type Mounted struct {
	Name   string `json:"name"   example:"catalog"`
	Prefix string `json:"prefix" example:"/jsonapi"`
}

var (
	regMu sync.RWMutex
	reg   = map[string]Module{}
)

// Register records m so other modules can find its ports
func Register(m Module) {
	regMu.Lock()
	reg[m.Name()] = m
	regMu.Unlock()
}

// PortsAs returns the ports of the module registered under name as T
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	m, ok := reg[name]
	regMu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	p, ok := m.Ports().(T)
	return p, ok
}

// Modules lists the registered modules ordered by name
func Modules() []Mounted {
	regMu.RLock()
	out := make([]Mounted, 0, len(reg))
	for _, m := range reg {
		out = append(out, Mounted{Name: m.Name(), Prefix: m.Prefix()})
	}
	regMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset clears the registry
func Reset() {
	regMu.Lock()
	reg = map[string]Module{}
	regMu.Unlock()
}
