// Package config loads the settings of a manager client from YAML or JSON
// and turns them into manager and bus options.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/linux/bus"
)

// json decodes config files. Durations may be written as "5s"; the
// extension is registered on this instance only.
var json = func() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&durationExtension{})
	return api
}()

var durationType = reflect.TypeOf(time.Duration(0))

type durationExtension struct {
	jsoniter.DummyExtension
}

func (e *durationExtension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	for _, b := range sd.Fields {
		if b.Field.Type().Type1() == durationType {
			b.Decoder = durationDecoder{}
		}
	}
}

type durationDecoder struct{}

func (durationDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.NumberValue:
		*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
	case jsoniter.StringValue:
		d, err := time.ParseDuration(iter.ReadString())
		if err != nil {
			iter.ReportError("time.Duration", err.Error())
			return
		}
		*(*time.Duration)(ptr) = d
	default:
		iter.ReportError("time.Duration", "expected number or string")
	}
}

// Config holds the client configuration. Exactly one of Socket, TCP and
// UART selects the transport; UART wins over TCP, TCP over Socket.
type Config struct {
	LogLevel string `yaml:"log_level" json:"log_level" default:"info"`

	Socket         string        `yaml:"socket" json:"socket" default:"/tmp/SS1BTPM"`
	TCP            string        `yaml:"tcp" json:"tcp"`
	UART           string        `yaml:"uart" json:"uart"`
	BaudRate       uint          `yaml:"baud_rate" json:"baud_rate" default:"115200"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout" default:"2s"`

	Timeout         time.Duration `yaml:"timeout" json:"timeout" default:"5s"`
	ServerAddressID uint32        `yaml:"server_address_id" json:"server_address_id"`

	// Roles registered at Init; empty means both.
	Roles   []string `yaml:"roles" json:"roles"`
	Adapter string   `yaml:"adapter" json:"adapter" default:"hci0"`
	BlueZ   bool     `yaml:"bluez" json:"bluez"`
}

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{}
	defaults.SetDefaults(c)
	return c
}

// Load reads path over the defaults. The format follows the extension:
// .yaml, .yml or .json.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't read config")
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	case ".json":
		err = json.Unmarshal(b, c)
	default:
		return nil, errors.Errorf("unknown config format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "can't parse %s", path)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

// Validate checks the values that can't be checked by type alone.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Socket == "" && c.TCP == "" && c.UART == "" {
		return errors.New("no transport configured")
	}
	if c.Timeout <= 0 {
		return errors.Errorf("invalid timeout %v", c.Timeout)
	}
	if _, err := c.roles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) roles() ([]hfrm.Role, error) {
	var rr []hfrm.Role
	for _, s := range c.Roles {
		r, err := hfrm.ParseRole(s)
		if err != nil {
			return nil, err
		}
		rr = append(rr, r)
	}
	return rr, nil
}

// NewLogger builds the logrus logger for LogLevel.
func (c *Config) NewLogger() hfrm.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}
	return hfrm.NewLogger(l)
}

// Options returns the manager options.
func (c *Config) Options(l hfrm.Logger) ([]hfrm.Option, error) {
	opts := []hfrm.Option{hfrm.OptLogger(l)}
	rr, err := c.roles()
	if err != nil {
		return nil, err
	}
	if len(rr) > 0 {
		opts = append(opts, hfrm.OptRoles(rr...))
	}
	return opts, nil
}

// BusOptions returns the bus options, transport first.
func (c *Config) BusOptions(l hfrm.Logger) []bus.Option {
	var t bus.Option
	switch {
	case c.UART != "":
		t = bus.OptTransportUart(c.UART, c.BaudRate)
	case c.TCP != "":
		t = bus.OptTransportTCP(c.TCP, c.ConnectTimeout)
	default:
		t = bus.OptTransportUnixSocket(c.Socket, c.ConnectTimeout)
	}
	return []bus.Option{
		t,
		bus.OptTimeout(c.Timeout),
		bus.OptServerAddressID(c.ServerAddressID),
		bus.OptLogger(l),
	}
}
