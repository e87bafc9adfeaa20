package wordlist

import (
	cmap "github.com/orcaman/concurrent-map"
)

// Registry keeps every library it has loaded, keyed by path, so repeated
// requests for the same list share one copy.
type Registry struct {
	libs             cmap.ConcurrentMap
	maxMemoryPercent uint32
}

func NewRegistry(maxMemoryPercent uint32) *Registry {
	return &Registry{
		libs:             cmap.New(),
		maxMemoryPercent: maxMemoryPercent,
	}
}

// Load returns the library at path, reading it on first use. Failed loads
// are not remembered, so a later call retries.
func (r *Registry) Load(path string) (*Library, error) {
	if lib, ok := r.Get(path); ok {
		return lib, nil
	}
	lib, err := Load(path, r.maxMemoryPercent)
	if err != nil {
		return nil, err
	}
	// another caller may have loaded it meanwhile; keep the first
	r.libs.SetIfAbsent(path, lib)
	lib, _ = r.Get(path)
	return lib, nil
}

func (r *Registry) Get(path string) (*Library, bool) {
	v, ok := r.libs.Get(path)
	if !ok {
		return nil, false
	}
	return v.(*Library), true
}

func (r *Registry) Paths() []string {
	return r.libs.Keys()
}

func (r *Registry) Count() int {
	return r.libs.Count()
}
