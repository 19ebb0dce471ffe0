package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/rigado/hfrm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	nameColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	roleColor = color.New(color.FgYellow).SprintFunc()
	okColor   = color.New(color.FgGreen).SprintFunc()
	failColor = color.New(color.FgRed).SprintFunc()
)

// record is the JSON form of everything the printer writes.
type record struct {
	Time   time.Time   `json:"time"`
	Kind   string      `json:"kind"`
	Role   string      `json:"role,omitempty"`
	Addr   string      `json:"addr,omitempty"`
	Status string      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// printer writes results as colored text or JSON lines, and optionally
// mirrors events to a trace file.
type printer struct {
	mu    sync.Mutex
	w     io.Writer
	json  bool
	trace io.WriteCloser
	now   func() time.Time
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, json: asJSON, now: time.Now}
}

// Trace appends every event to path.
func (p *printer) Trace(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "can't open trace file")
	}
	p.mu.Lock()
	p.trace = f
	p.mu.Unlock()
	return nil
}

func (p *printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.trace == nil {
		return nil
	}
	err := p.trace.Close()
	p.trace = nil
	return err
}

func (p *printer) Info(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.json {
		fmt.Fprintln(p.w, s)
	}
}

// Event prints one listener event.
func (p *printer) Event(e hfrm.Event) error {
	r := record{
		Time: p.now(),
		Kind: e.Type().String(),
		Role: e.Role().String(),
		Addr: e.Addr().String(),
		Data: e,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.trace != nil {
		if err := p.writeJSON(p.trace, r); err != nil {
			return err
		}
	}
	if p.json {
		return p.writeJSON(p.w, r)
	}
	_, err := fmt.Fprintf(p.w, "%s %s %s %+v\n", nameColor(r.Kind), roleColor(r.Role), r.Addr, e)
	return err
}

// Status prints the outcome of a connect.
func (p *printer) Status(role hfrm.Role, addr hfrm.BDAddr, st hfrm.ConnectionStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return p.writeJSON(p.w, record{Time: p.now(), Kind: "connect", Role: role.String(), Addr: addr.String(), Status: st.String()})
	}
	c := okColor
	if st != hfrm.StatusSuccess {
		c = failColor
	}
	_, err := fmt.Fprintf(p.w, "%s %s %s\n", roleColor(role), addr, c(st))
	return err
}

func (p *printer) Devices(role hfrm.Role, devs []hfrm.BDAddr) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		if devs == nil {
			devs = []hfrm.BDAddr{}
		}
		return p.writeJSON(p.w, record{Time: p.now(), Kind: "devices", Role: role.String(), Data: devs})
	}
	if len(devs) == 0 {
		_, err := fmt.Fprintf(p.w, "%s no devices\n", roleColor(role))
		return err
	}
	for _, d := range devs {
		if _, err := fmt.Fprintf(p.w, "%s %s\n", roleColor(role), d); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) Configuration(role hfrm.Role, cfg *hfrm.Configuration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return p.writeJSON(p.w, record{Time: p.now(), Kind: "configuration", Role: role.String(), Data: cfg})
	}
	fmt.Fprintf(p.w, "%s incoming flags 0x%x features 0x%x call holding 0x%x network %d\n",
		roleColor(role), cfg.IncomingConnectionFlags, cfg.SupportedFeatures, cfg.CallHoldingSupport, cfg.NetworkType)
	for _, ind := range cfg.Indicators {
		if _, err := fmt.Fprintf(p.w, "  %+v\n", ind); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) writeJSON(w io.Writer, r record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "can't encode record")
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
