/*
Package stylecache interns inline styles.

Inline styles arrive as raw attribute maps. The cache turns every distinct
map into a single cssom.Bundle, so elements with equal inline styles share
one bundle, and bundles may be compared by identity. Bundles are addressed
by a small integer index, handed out in order of first appearance.

The cache never evicts. Reset drops all bundles at once, e.g. when a
resource bundle is unloaded.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stylecache

import (
	"hash/fnv"
	"sync"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.stylecache'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.stylecache")
}

// DefaultCapacity is the initial capacity of a cache if none is given.
const DefaultCapacity = 64

type entry struct {
	raw   []style.KeyValue // sorted by key
	index int
}

// Cache interns raw style maps. It is safe for concurrent use.
type Cache struct {
	sync.Mutex
	ids      *attr.IDs
	capacity int
	byHash   map[uint64][]entry
	bundles  []*cssom.Bundle
}

// New creates a cache interning attribute names with ids.
func New(ids *attr.IDs, capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	c := &Cache{ids: ids, capacity: capacity}
	c.init()
	return c
}

func (c *Cache) init() {
	c.byHash = make(map[uint64][]entry, c.capacity)
	c.bundles = make([]*cssom.Bundle, 0, c.capacity)
}

func hashOf(kvs []style.KeyValue) uint64 {
	h := fnv.New64a()
	for _, kv := range kvs {
		h.Write([]byte(kv.Key))
		h.Write([]byte{0})
		h.Write([]byte(kv.Value))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

func equal(a, b []style.KeyValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ResolveIndex returns the index of the bundle for a raw style map,
// creating the bundle on first use. Content-equal maps yield the same
// index. Declarations are ordered by attribute name and have priority 0.
func (c *Cache) ResolveIndex(raw map[string]style.Property) int {
	kvs := style.SortedKeyValues(raw)
	c.Lock()
	defer c.Unlock()
	return c.intern(kvs)
}

// Resolve returns the bundle for a raw style map, interning it if needed.
func (c *Cache) Resolve(raw map[string]style.Property) *cssom.Bundle {
	kvs := style.SortedKeyValues(raw)
	c.Lock()
	defer c.Unlock()
	return c.bundles[c.intern(kvs)]
}

// intern returns the index of the bundle for kvs. c must be locked.
func (c *Cache) intern(kvs []style.KeyValue) int {
	h := hashOf(kvs)
	for _, e := range c.byHash[h] {
		if equal(e.raw, kvs) {
			return e.index
		}
	}
	decls := make([]cssom.Declaration, len(kvs))
	for i, kv := range kvs {
		decls[i] = cssom.Declaration{
			Attribute: c.ids.Intern(kv.Key),
			Value:     kv.Value,
			Order:     i,
		}
	}
	index := len(c.bundles)
	c.bundles = append(c.bundles, cssom.NewBundle(decls))
	c.byHash[h] = append(c.byHash[h], entry{raw: kvs, index: index})
	tracer().Debugf("interned style #%d with %d declarations", index, len(decls))
	return index
}

// BundleForIndex returns the bundle for an index, or nil if out of range.
func (c *Cache) BundleForIndex(index int) *cssom.Bundle {
	c.Lock()
	defer c.Unlock()
	if index < 0 || index >= len(c.bundles) {
		return nil
	}
	return c.bundles[index]
}

// Len returns the number of bundles.
func (c *Cache) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.bundles)
}

// Reset drops all bundles. Indexes handed out before are invalid afterwards.
func (c *Cache) Reset() {
	c.Lock()
	defer c.Unlock()
	tracer().Infof("dropping %d styles", len(c.bundles))
	c.init()
}
