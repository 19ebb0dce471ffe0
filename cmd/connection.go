package cmd

import "github.com/rigado/hfrm/msg"

// ConnectionRequestResponse accepts or rejects an incoming connection.
type ConnectionRequestResponse struct {
	ConnectionType uint32
	Addr           Addr
	Accept         bool
}

func (c *ConnectionRequestResponse) Function() uint32 {
	return msg.FunctionConnectionRequestResponse
}
func (c *ConnectionRequestResponse) Len() int               { return length(c) }
func (c *ConnectionRequestResponse) Marshal(b []byte) error { return marshal(c, b) }
func (c *ConnectionRequestResponse) encode(w *msg.Writer) {
	w.U32(c.ConnectionType).Addr(c.Addr).Bool(c.Accept)
}

// ConnectRemoteDevice opens a connection to a remote device.
type ConnectRemoteDevice struct {
	ConnectionType   uint32
	RemoteServerPort uint32
	Addr             Addr
	ConnectionFlags  uint32
}

func (c *ConnectRemoteDevice) Function() uint32       { return msg.FunctionConnectRemoteDevice }
func (c *ConnectRemoteDevice) Len() int               { return length(c) }
func (c *ConnectRemoteDevice) Marshal(b []byte) error { return marshal(c, b) }
func (c *ConnectRemoteDevice) encode(w *msg.Writer) {
	w.U32(c.ConnectionType).U32(c.RemoteServerPort).Addr(c.Addr).U32(c.ConnectionFlags)
}

// DisconnectDevice closes a connection.
type DisconnectDevice struct {
	ConnectionType uint32
	Addr           Addr
}

func (c *DisconnectDevice) Function() uint32       { return msg.FunctionDisconnectDevice }
func (c *DisconnectDevice) Len() int               { return length(c) }
func (c *DisconnectDevice) Marshal(b []byte) error { return marshal(c, b) }
func (c *DisconnectDevice) encode(w *msg.Writer)   { w.U32(c.ConnectionType).Addr(c.Addr) }

// QueryConnectedDevices lists the devices connected in one role.
type QueryConnectedDevices struct {
	ConnectionType uint32
}

func (c *QueryConnectedDevices) Function() uint32       { return msg.FunctionQueryConnectedDevices }
func (c *QueryConnectedDevices) Len() int               { return length(c) }
func (c *QueryConnectedDevices) Marshal(b []byte) error { return marshal(c, b) }
func (c *QueryConnectedDevices) encode(w *msg.Writer)   { w.U32(c.ConnectionType) }

// QueryConnectedDevicesRP ...
type QueryConnectedDevicesRP struct {
	Status  int32
	Devices []Addr
}

func (c *QueryConnectedDevicesRP) Unmarshal(b []byte) error {
	r := msg.NewReader(b)
	c.Status = r.I32()
	n := r.U32()
	if n > msg.ConnectedDevicesMax {
		n = msg.ConnectedDevicesMax
	}
	c.Devices = make([]Addr, 0, n)
	for i := uint32(0); i < n; i++ {
		c.Devices = append(c.Devices, r.Addr())
	}
	return r.Err()
}

// QueryCurrentConfiguration reads the local configuration of one role.
type QueryCurrentConfiguration struct {
	ConnectionType uint32
}

func (c *QueryCurrentConfiguration) Function() uint32       { return msg.FunctionQueryCurrentConfiguration }
func (c *QueryCurrentConfiguration) Len() int               { return length(c) }
func (c *QueryCurrentConfiguration) Marshal(b []byte) error { return marshal(c, b) }
func (c *QueryCurrentConfiguration) encode(w *msg.Writer)   { w.U32(c.ConnectionType) }

// IndicatorEntry is one additional indicator of the local configuration.
// Range indicators use all three values (start, end, current); boolean
// indicators only Value1.
type IndicatorEntry struct {
	Type        uint32
	Value1      uint32
	Value2      uint32
	Value3      uint32
	Description string
}

// QueryCurrentConfigurationRP ...
type QueryCurrentConfigurationRP struct {
	Status                  int32
	IncomingConnectionFlags uint32
	SupportedFeaturesMask   uint32
	CallHoldingSupportMask  uint32
	NetworkType             uint32
	Indicators              []IndicatorEntry
}

func (c *QueryCurrentConfigurationRP) Unmarshal(b []byte) error {
	r := msg.NewReader(b)
	c.Status = r.I32()
	c.IncomingConnectionFlags = r.U32()
	c.SupportedFeaturesMask = r.U32()
	c.CallHoldingSupportMask = r.U32()
	c.NetworkType = r.U32()
	n := r.U32()
	if n > msg.AdditionalIndicatorsMax {
		n = msg.AdditionalIndicatorsMax
	}
	c.Indicators = make([]IndicatorEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		e := IndicatorEntry{
			Type:   r.U32(),
			Value1: r.U32(),
			Value2: r.U32(),
			Value3: r.U32(),
		}
		e.Description = cstring(r.Bytes(msg.IndicatorDescriptionMax))
		c.Indicators = append(c.Indicators, e)
	}
	return r.Err()
}

// ChangeIncomingConnectionFlags sets the security required of incoming
// connections.
type ChangeIncomingConnectionFlags struct {
	ConnectionType  uint32
	ConnectionFlags uint32
}

func (c *ChangeIncomingConnectionFlags) Function() uint32 {
	return msg.FunctionChangeIncomingConnectionFlags
}
func (c *ChangeIncomingConnectionFlags) Len() int               { return length(c) }
func (c *ChangeIncomingConnectionFlags) Marshal(b []byte) error { return marshal(c, b) }
func (c *ChangeIncomingConnectionFlags) encode(w *msg.Writer) {
	w.U32(c.ConnectionType).U32(c.ConnectionFlags)
}

// StatusRP is the response of every command without a dedicated one.
type StatusRP struct {
	Status int32
}

func (c *StatusRP) Unmarshal(b []byte) error {
	r := msg.NewReader(b)
	c.Status = r.I32()
	return r.Err()
}

func cstring(b []byte) string {
	for i, v := range b {
		if v == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
