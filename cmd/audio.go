package cmd

import "github.com/rigado/hfrm/msg"

// SendAudioData writes SCO audio to a device. DataID is the server side
// data events id.
type SendAudioData struct {
	DataID         uint32
	ConnectionType uint32
	Addr           Addr
	Data           []byte
}

func (c *SendAudioData) Function() uint32       { return msg.FunctionSendAudioData }
func (c *SendAudioData) Len() int               { return length(c) }
func (c *SendAudioData) Marshal(b []byte) error { return marshal(c, b) }
func (c *SendAudioData) encode(w *msg.Writer) {
	w.U32(c.DataID).U32(c.ConnectionType).Addr(c.Addr).Blob(c.Data)
}

// QuerySCOConnectionHandle asks for the HCI handle of an open SCO link.
type QuerySCOConnectionHandle struct {
	EventsHandlerID uint32
	Addr            Addr
	ConnectionType  uint32
}

func (c *QuerySCOConnectionHandle) Function() uint32       { return msg.FunctionQuerySCOConnectionHandle }
func (c *QuerySCOConnectionHandle) Len() int               { return length(c) }
func (c *QuerySCOConnectionHandle) Marshal(b []byte) error { return marshal(c, b) }
func (c *QuerySCOConnectionHandle) encode(w *msg.Writer) {
	w.U32(c.EventsHandlerID).Addr(c.Addr).U32(c.ConnectionType)
}

// QuerySCOConnectionHandleRP ...
type QuerySCOConnectionHandleRP struct {
	Status    int32
	SCOHandle uint16
}

func (c *QuerySCOConnectionHandleRP) Unmarshal(b []byte) error {
	r := msg.NewReader(b)
	c.Status = r.I32()
	c.SCOHandle = r.U16()
	return r.Err()
}

// RegisterEvents subscribes to the events of one role. A control
// registration also receives the role specific confirmations.
type RegisterEvents struct {
	ConnectionType uint32
	Control        bool
}

func (c *RegisterEvents) Function() uint32       { return msg.FunctionRegisterEvents }
func (c *RegisterEvents) Len() int               { return length(c) }
func (c *RegisterEvents) Marshal(b []byte) error { return marshal(c, b) }
func (c *RegisterEvents) encode(w *msg.Writer)   { w.U32(c.ConnectionType).Bool(c.Control) }

// RegisterEventsRP ...
type RegisterEventsRP struct {
	Status          int32
	EventsHandlerID uint32
}

func (c *RegisterEventsRP) Unmarshal(b []byte) error {
	r := msg.NewReader(b)
	c.Status = r.I32()
	c.EventsHandlerID = r.U32()
	return r.Err()
}

// UnregisterEvents ...
type UnregisterEvents struct {
	EventsHandlerID uint32
}

func (c *UnregisterEvents) Function() uint32       { return msg.FunctionUnregisterEvents }
func (c *UnregisterEvents) Len() int               { return length(c) }
func (c *UnregisterEvents) Marshal(b []byte) error { return marshal(c, b) }
func (c *UnregisterEvents) encode(w *msg.Writer)   { w.U32(c.EventsHandlerID) }

// RegisterDataEvents ...
type RegisterDataEvents struct {
	ConnectionType uint32
}

func (c *RegisterDataEvents) Function() uint32       { return msg.FunctionRegisterDataEvents }
func (c *RegisterDataEvents) Len() int               { return length(c) }
func (c *RegisterDataEvents) Marshal(b []byte) error { return marshal(c, b) }
func (c *RegisterDataEvents) encode(w *msg.Writer)   { w.U32(c.ConnectionType) }

// RegisterDataEventsRP ...
type RegisterDataEventsRP struct {
	Status              int32
	DataEventsHandlerID uint32
}

func (c *RegisterDataEventsRP) Unmarshal(b []byte) error {
	r := msg.NewReader(b)
	c.Status = r.I32()
	c.DataEventsHandlerID = r.U32()
	return r.Err()
}

// UnregisterDataEvents ...
type UnregisterDataEvents struct {
	DataEventsHandlerID uint32
}

func (c *UnregisterDataEvents) Function() uint32       { return msg.FunctionUnregisterDataEvents }
func (c *UnregisterDataEvents) Len() int               { return length(c) }
func (c *UnregisterDataEvents) Marshal(b []byte) error { return marshal(c, b) }
func (c *UnregisterDataEvents) encode(w *msg.Writer)   { w.U32(c.DataEventsHandlerID) }
