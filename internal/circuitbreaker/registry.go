package circuitbreaker

import (
	"sort"
	"sync"
)

// Registry holds the breakers guarding a service, keyed by breaker name.
// It only stores and lists breakers; combining their decisions into a single
// admission verdict is the caller's business.
type Registry struct {
	mutex    sync.RWMutex
	breakers map[string]CircuitBreaker
}

func NewRegistry() *Registry {
	return &Registry{
		breakers: make(map[string]CircuitBreaker),
	}
}

func (r *Registry) Register(cb CircuitBreaker) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.breakers[cb.Name()] = cb
}

func (r *Registry) Get(name string) (CircuitBreaker, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	cb, ok := r.breakers[name]
	return cb, ok
}

// GetOrCreate returns the breaker registered under name, building and
// registering it first if absent.
func (r *Registry) GetOrCreate(name string, build func() CircuitBreaker) CircuitBreaker {
	r.mutex.RLock()
	cb, exists := r.breakers[name]
	r.mutex.RUnlock()

	if exists {
		return cb
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Double-check: another goroutine may have created it
	if cb, exists = r.breakers[name]; exists {
		return cb
	}

	cb = build()
	r.breakers[name] = cb
	return cb
}

// All returns the registered breakers in name order.
func (r *Registry) All() []CircuitBreaker {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.breakers))
	for name := range r.breakers {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]CircuitBreaker, 0, len(names))
	for _, name := range names {
		all = append(all, r.breakers[name])
	}
	return all
}

func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.breakers = make(map[string]CircuitBreaker)
}

// Stats reports the service-level enabled switch per breaker.
func (r *Registry) Stats() map[string]bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stats := make(map[string]bool, len(r.breakers))
	for name, cb := range r.breakers {
		stats[name] = cb.IsEnabled()
	}
	return stats
}
