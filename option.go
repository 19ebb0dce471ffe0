package hfrm

// ManagerOption is implemented by the manager to allow configuration options.
type ManagerOption interface {
	SetLogger(Logger) error
	SetPowered(bool) error
	SetRoles(...Role) error
}

// An Option is a configuration function, which configures the manager.
type Option func(ManagerOption) error

// OptLogger sets the logger used by the manager and its components.
func OptLogger(l Logger) Option {
	return func(opt ManagerOption) error {
		return opt.SetLogger(l)
	}
}

// OptPowered sets the power state assumed until the first PowerChanged.
func OptPowered(on bool) Option {
	return func(opt ManagerOption) error {
		return opt.SetPowered(on)
	}
}

// OptRoles limits the roles registered with the server at Init.
func OptRoles(rr ...Role) Option {
	return func(opt ManagerOption) error {
		return opt.SetRoles(rr...)
	}
}

// SetLogger ...
func (m *Manager) SetLogger(l Logger) error {
	if l == nil {
		return ErrInvalidParameter
	}
	m.logger = l.ChildLogger(map[string]interface{}{"component": "hfrm"})
	return nil
}

// SetPowered ...
func (m *Manager) SetPowered(on bool) error {
	m.powered = on
	return nil
}

// SetRoles ...
func (m *Manager) SetRoles(rr ...Role) error {
	if len(rr) == 0 {
		return ErrInvalidParameter
	}
	for _, r := range rr {
		if !r.Valid() {
			return ErrInvalidParameter
		}
	}
	m.roles = append([]Role(nil), rr...)
	return nil
}
