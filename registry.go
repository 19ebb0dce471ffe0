package hfrm

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// entry is one registered listener or pending connect.
type entry struct {
	handle   uint32
	role     Role
	category category

	// server side id: events/data handler id for control and data entries
	stackID uint32

	// pending connects only
	addr   BDAddr
	done   chan ConnectionStatus
	status ConnectionStatus

	eventCB   EventCallback
	connectCB ConnectCallback
	param     interface{}
}

// list holds entries in registration order.
type list struct {
	m *orderedmap.OrderedMap[uint32, *entry]
}

func newList() *list {
	return &list{m: orderedmap.New[uint32, *entry]()}
}

// Add appends e. Handle 0 and handles already present are rejected.
func (l *list) Add(e *entry) bool {
	if e == nil || e.handle == 0 {
		return false
	}
	if _, ok := l.m.Get(e.handle); ok {
		return false
	}
	l.m.Set(e.handle, e)
	return true
}

func (l *list) Find(handle uint32) *entry {
	if handle == 0 {
		return nil
	}
	e, _ := l.m.Get(handle)
	return e
}

// Remove unlinks and returns the entry; the caller disposes of it.
func (l *list) Remove(handle uint32) *entry {
	if handle == 0 {
		return nil
	}
	e, ok := l.m.Delete(handle)
	if !ok {
		return nil
	}
	return e
}

// Clear empties the list, closing every wait channel. Waiters observe the
// close as a power-off.
func (l *list) Clear() {
	for pair := l.m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.done != nil {
			close(pair.Value.done)
		}
	}
	l.m = orderedmap.New[uint32, *entry]()
}

func (l *list) Len() int {
	return l.m.Len()
}

// First returns the oldest entry, used for per-role singletons.
func (l *list) First() *entry {
	if pair := l.m.Oldest(); pair != nil {
		return pair.Value
	}
	return nil
}

// Each calls f for each entry in order until f returns false. f must not
// modify the list.
func (l *list) Each(f func(e *entry) bool) {
	for pair := l.m.Oldest(); pair != nil; pair = pair.Next() {
		if !f(pair.Value) {
			return
		}
	}
}

// registry is the set of lists of one manager. All access is under the
// manager lock.
type registry struct {
	lists      [len(roles)][categoryConnect + 1]*list
	nextHandle uint32
}

func newRegistry() *registry {
	r := &registry{nextHandle: 1}
	for i := range r.lists {
		for j := range r.lists[i] {
			r.lists[i][j] = newList()
		}
	}
	return r
}

func (r *registry) list(role Role, c category) *list {
	return r.lists[role][c]
}

// allocHandle returns the next handle. Handles never have bit 31 set so
// they can't be mistaken for negative status codes, and are never 0.
func (r *registry) allocHandle() uint32 {
	h := r.nextHandle
	if h == 0 || h&0x80000000 != 0 {
		h = 1
	}
	r.nextHandle = h + 1
	if r.nextHandle&0x80000000 != 0 {
		r.nextHandle = 1
	}
	return h
}

// find searches the given categories of both roles.
func (r *registry) find(handle uint32, cats ...category) *entry {
	for _, role := range roles {
		for _, c := range cats {
			if e := r.list(role, c).Find(handle); e != nil {
				return e
			}
		}
	}
	return nil
}

func (r *registry) clear() {
	for i := range r.lists {
		for j := range r.lists[i] {
			r.lists[i][j].Clear()
		}
	}
}
