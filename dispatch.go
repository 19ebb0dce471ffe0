package hfrm

import (
	"fmt"
)

// listeners beyond this spill the snapshot to the heap
const snapshotSize = 16

type listener struct {
	handle uint32
	cb     EventCallback
	param  interface{}
}

// dispatch delivers e to the eligible listeners of role. General and data
// listeners are skipped when controlOnly is set. The listener set is copied
// under the lock and invoked after it is released, so listeners may call
// back into the manager; registrations made while the event is in flight
// don't see it.
func (m *Manager) dispatch(controlOnly bool, role Role, e Event) {
	var buf [snapshotSize]listener

	m.mu.Lock()
	if m.state != initialized || !role.Valid() {
		m.mu.Unlock()
		return
	}
	ls := m.collect(buf[:0], controlOnly, role)
	m.mu.Unlock()

	for _, l := range ls {
		m.invoke(l, e)
	}
}

// collect appends the listeners in delivery order: general, control, data.
func (m *Manager) collect(ls []listener, controlOnly bool, role Role) []listener {
	add := func(en *entry) bool {
		if en.eventCB != nil {
			ls = append(ls, listener{en.handle, en.eventCB, en.param})
		}
		return true
	}
	if !controlOnly {
		m.reg.list(role, categoryGeneral).Each(add)
	}
	m.reg.list(role, categoryControl).Each(add)
	if !controlOnly {
		m.reg.list(role, categoryData).Each(add)
	}
	return ls
}

// dispatchData delivers audio only to the data listener registered under
// the server side id carried by the event.
func (m *Manager) dispatchData(e *AudioDataEvent) {
	m.mu.Lock()
	if m.state != initialized || !e.ConnectionType.Valid() {
		m.mu.Unlock()
		return
	}
	var l *listener
	if en := m.reg.list(e.ConnectionType, categoryData).First(); en != nil && en.stackID == e.DataID && en.eventCB != nil {
		l = &listener{en.handle, en.eventCB, en.param}
	}
	m.mu.Unlock()

	if l != nil {
		m.invoke(*l, e)
	}
}

// invoke runs one listener. A panic is logged and swallowed so the
// remaining listeners still run.
func (m *Manager) invoke(l listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ChildLogger(map[string]interface{}{
				"handle": l.handle,
				"event":  e.Type().String(),
			}).Error(fmt.Sprintf("listener panic: %v", r))
		}
	}()
	l.cb(e, l.param)
}

// invokeConnect runs an asynchronous connect callback.
func (m *Manager) invokeConnect(en *entry) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ChildLogger(map[string]interface{}{
				"handle": en.handle,
				"addr":   en.addr.String(),
			}).Error(fmt.Sprintf("connect callback panic: %v", r))
		}
	}()
	en.connectCB(en.role, en.addr, en.status, en.param)
}
