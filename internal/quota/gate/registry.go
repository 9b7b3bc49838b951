package gate

import (
	"sync"

	"github.com/tanomu-app/tanomu/internal/quota/domain"
	"go.uber.org/zap"
)

// GlobalName addresses the deployment-wide gate instance. There is exactly
// one; the name is passed explicitly so the singleton is an addressed object,
// not package state.
const GlobalName = "global"

// StoreFactory builds the durable store scoped to one gate instance.
type StoreFactory func(name string) domain.Store

// Registry hands out gate instances by name, creating each at most once.
type Registry struct {
	mu     sync.Mutex
	gates  map[string]*Gate
	stores StoreFactory
	log    *zap.Logger
}

func NewRegistry(stores StoreFactory, log *zap.Logger) *Registry {
	return &Registry{
		gates:  make(map[string]*Gate),
		stores: stores,
		log:    log,
	}
}

// Get returns the gate registered under name, creating it on first use.
func (r *Registry) Get(name string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gates[name]; ok {
		return g
	}
	g := New(name, r.stores(name), r.log)
	r.gates[name] = g
	return g
}
