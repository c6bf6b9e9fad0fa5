package model

import (
	"fmt"
	"sort"
)

const DefaultModel = "titan"

// Registry maps model short names to their adapters. Build one at startup
// and pass it down; there is no package-level registration.
type Registry map[string]Adapter

func NewRegistry() Registry {
	return Registry{
		"titan": &Titan{},
		"sdxl":  &SDXL{},
		"sd35":  &SD35{},
	}
}

func (r Registry) Adapter(name string) (Adapter, error) {
	adapter, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %v", ErrUnknownModel, name, r.Names())
	}
	return adapter, nil
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
