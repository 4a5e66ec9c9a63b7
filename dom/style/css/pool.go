package css

import (
	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style/cssom"
)

// DeclarationMap maps attributes to their winning declaration.
type DeclarationMap map[attr.ID]*cssom.Declaration

// DeclarationPool recycles declaration maps between cascade passes.
// It is not safe for concurrent use.
type DeclarationPool struct {
	maps     []DeclarationMap
	capacity int // initial capacity of new maps
	size     int // max number of maps retained
}

// Default sizing of declaration pools.
const (
	DefaultMapCapacity = 10
	DefaultPoolSize    = 16
)

// NewDeclarationPool creates a pool handing out maps pre-sized to capacity
// and retaining at most size maps. Values < 1 select the defaults.
func NewDeclarationPool(capacity, size int) *DeclarationPool {
	if capacity < 1 {
		capacity = DefaultMapCapacity
	}
	if size < 1 {
		size = DefaultPoolSize
	}
	return &DeclarationPool{capacity: capacity, size: size}
}

// Get returns an empty map. A nil pool allocates a fresh map.
func (p *DeclarationPool) Get() DeclarationMap {
	if p == nil {
		return make(DeclarationMap, DefaultMapCapacity)
	}
	if n := len(p.maps); n > 0 {
		m := p.maps[n-1]
		p.maps[n-1] = nil
		p.maps = p.maps[:n-1]
		return m
	}
	return make(DeclarationMap, p.capacity)
}

// Put returns a map to the pool. The map is cleared; callers must not use
// it afterwards.
func (p *DeclarationPool) Put(m DeclarationMap) {
	if p == nil || m == nil || len(p.maps) >= p.size {
		return
	}
	for k := range m {
		delete(m, k)
	}
	p.maps = append(p.maps, m)
}

// Len returns the number of maps currently pooled.
func (p *DeclarationPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.maps)
}
