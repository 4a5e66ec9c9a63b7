package attr

import (
	"fmt"
	"sync"
)

// ID is an interned attribute name. IDs are small integers, handed out
// in order of first use by a registry.
type ID uint32

// IDs interns attribute names. It is safe for concurrent use, as a single
// registry is usually shared by all element trees of a process.
type IDs struct {
	sync.RWMutex
	byName map[string]ID
	names  []string
}

// NewIDs creates an empty attribute id registry.
func NewIDs() *IDs {
	return &IDs{byName: make(map[string]ID)}
}

// Intern returns the id for an attribute name, allocating a new id on first use.
func (ids *IDs) Intern(name string) ID {
	ids.RLock()
	id, ok := ids.byName[name]
	ids.RUnlock()
	if ok {
		return id
	}
	ids.Lock()
	defer ids.Unlock()
	if id, ok = ids.byName[name]; ok { // lost a race
		return id
	}
	id = ID(len(ids.names))
	ids.names = append(ids.names, name)
	ids.byName[name] = id
	tracer().Debugf("interned attribute '%s' as #%d", name, id)
	return id
}

// Lookup returns the id for a name without interning it.
func (ids *IDs) Lookup(name string) (ID, bool) {
	ids.RLock()
	defer ids.RUnlock()
	id, ok := ids.byName[name]
	return id, ok
}

// Name returns the attribute name for an id. Unknown ids are rendered
// as "#<n>".
func (ids *IDs) Name(id ID) string {
	ids.RLock()
	defer ids.RUnlock()
	if int(id) < len(ids.names) {
		return ids.names[id]
	}
	return fmt.Sprintf("#%d", id)
}

// Len returns the number of interned names.
func (ids *IDs) Len() int {
	ids.RLock()
	defer ids.RUnlock()
	return len(ids.names)
}
