// Package power follows the Powered property of a BlueZ adapter so the
// manager can fail pending connects when the radio goes down.
package power

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"

	"github.com/rigado/hfrm"
)

const (
	bluezService     = "org.bluez"
	adapterInterface = "org.bluez.Adapter1"
	propsInterface   = "org.freedesktop.DBus.Properties"
	propsChanged     = propsInterface + ".PropertiesChanged"

	signalChanSize = 16
)

// Observer receives power transitions. *hfrm.Manager implements it.
type Observer interface {
	PowerChanged(on bool)
}

// Watcher reports the power state of one adapter.
type Watcher struct {
	conn   *dbus.Conn
	path   dbus.ObjectPath
	logger hfrm.Logger
}

// AdapterPath returns the object path of adapter name, e.g. "hci0".
func AdapterPath(name string) dbus.ObjectPath {
	return dbus.ObjectPath("/org/bluez/" + name)
}

// NewWatcher connects to the system bus and watches adapter name.
func NewWatcher(name string, l hfrm.Logger) (*Watcher, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "can't connect to system bus")
	}
	if l == nil {
		l = hfrm.GetLogger()
	}
	return &Watcher{
		conn:   conn,
		path:   AdapterPath(name),
		logger: l.ChildLogger(map[string]interface{}{"component": "power", "adapter": name}),
	}, nil
}

// Powered reads the current state.
func (w *Watcher) Powered() (bool, error) {
	v, err := w.conn.Object(bluezService, w.path).GetProperty(adapterInterface + ".Powered")
	if err != nil {
		return false, errors.Wrapf(err, "can't read %s Powered", w.path)
	}
	on, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected Powered value %v", v)
	}
	return on, nil
}

// Watch reports the current state to o, then every change until ctx is
// done.
func (w *Watcher) Watch(ctx context.Context, o Observer) error {
	err := w.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(w.path),
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	)
	if err != nil {
		return errors.Wrap(err, "can't add match rule")
	}

	ch := make(chan *dbus.Signal, signalChanSize)
	w.conn.Signal(ch)
	defer w.conn.RemoveSignal(ch)

	on, err := w.Powered()
	if err != nil {
		return err
	}
	o.PowerChanged(on)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-ch:
			if !ok {
				return errors.New("system bus closed")
			}
			if sig.Path != w.path {
				continue
			}
			if on, ok := PoweredChange(sig); ok {
				w.logger.Infof("powered %v", on)
				o.PowerChanged(on)
			}
		}
	}
}

// Close releases the system bus connection.
func (w *Watcher) Close() error {
	return w.conn.Close()
}

// PoweredChange extracts the new Powered value from an adapter
// PropertiesChanged signal.
func PoweredChange(sig *dbus.Signal) (on bool, ok bool) {
	if sig == nil || sig.Name != propsChanged || len(sig.Body) < 2 {
		return false, false
	}
	if iface, _ := sig.Body[0].(string); iface != adapterInterface {
		return false, false
	}
	props, _ := sig.Body[1].(map[string]dbus.Variant)
	v, found := props["Powered"]
	if !found {
		return false, false
	}
	on, ok = v.Value().(bool)
	return on, ok
}
