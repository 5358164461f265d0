// Package jdxi implements the Roland JD-Xi SysEx protocol: address
// arithmetic, DT1/RQ1 framing, the parameter tables of every tone and
// program section, and a dispatcher that decodes incoming data into named
// parameters.
package jdxi

import (
	"bytes"
	"fmt"
)

const (
	sysExStart     = 0xF0
	sysExEnd       = 0xF7
	manufacturerID = 0x41 // Roland
	universalNonRT = 0x7E
	allCall        = 0x7F

	// DefaultDeviceID is the JD-Xi's factory device ID.
	DefaultDeviceID byte = 0x10

	headerSize  = 7
	addressSize = 4
	minFrame    = headerSize + 1 + addressSize + 1
	minChecked  = minFrame + 1
)

// Command is the command byte of a JD-Xi message.
type Command byte

const (
	CmdRQ1             Command = 0x11
	CmdDT1             Command = 0x12
	CmdIdentityRequest Command = 0x01
	CmdIdentityReply   Command = 0x02
)

func (c Command) String() string {
	switch c {
	case CmdRQ1:
		return "RQ1"
	case CmdDT1:
		return "DT1"
	case CmdIdentityRequest:
		return "identity-request"
	case CmdIdentityReply:
		return "identity-reply"
	}
	return fmt.Sprintf("cmd-0x%02X", byte(c))
}

// modelID is the 3 extension bytes plus product code that follow the
// device ID in every JD-Xi DT1/RQ1 header.
var modelID = []byte{0x00, 0x00, 0x00, 0x0E}

// Identity of a JD-Xi as carried by an identity reply.
var (
	identityFamily = []byte{0x0E, 0x03}
	identityModel  = []byte{0x00, 0x00}
)

// Frame is a parsed JD-Xi message.
type Frame struct {
	Command  Command `json:"command"`
	DeviceID byte    `json:"device_id"`
	Address  Address `json:"address"`
	// Data is the DT1 payload, or the 4 size bytes of an RQ1.
	Data []byte `json:"data,omitempty"`
	// Version is the software revision reported by an identity reply.
	Version []byte `json:"version,omitempty"`
}

// Size returns the number of bytes requested by an RQ1 frame.
func (f *Frame) Size() int {
	if f.Command != CmdRQ1 {
		return len(f.Data)
	}
	return SizeFromBytes(f.Data)
}

// Codec builds and parses JD-Xi SysEx messages for one device ID. The zero
// value is not useful; use NewCodec or DefaultCodec.
type Codec struct {
	DeviceID byte
}

// DefaultCodec talks to a JD-Xi on the factory device ID.
var DefaultCodec = Codec{DeviceID: DefaultDeviceID}

func NewCodec(deviceID byte) Codec {
	return Codec{DeviceID: deviceID}
}

func (c Codec) header(cmd Command) []byte {
	h := make([]byte, 0, headerSize+1)
	h = append(h, sysExStart, manufacturerID, c.DeviceID)
	h = append(h, modelID...)
	return append(h, byte(cmd))
}

func checkDataBytes(what string, b []byte) error {
	for i, v := range b {
		if v > 0x7F {
			return fmt.Errorf("%w: %s byte %d is 0x%02X", ErrValueOutOfRange, what, i, v)
		}
	}
	return nil
}

// BuildDT1 returns a DT1 (data set) message writing data at addr. Bytes
// outside 0..127 are rejected rather than masked.
func (c Codec) BuildDT1(addr Address, data []byte) ([]byte, error) {
	if err := checkDataBytes("address", addr[:]); err != nil {
		return nil, err
	}
	if err := checkDataBytes("data", data); err != nil {
		return nil, err
	}
	msg := c.header(CmdDT1)
	msg = append(msg, addr[:]...)
	msg = append(msg, data...)
	msg = append(msg, Checksum(addr[:], data), sysExEnd)
	return msg, nil
}

// BuildRQ1 returns an RQ1 (data request) message asking for size bytes
// starting at addr.
func (c Codec) BuildRQ1(addr Address, size int) ([]byte, error) {
	if err := checkDataBytes("address", addr[:]); err != nil {
		return nil, err
	}
	sz, err := sizeBytes(size)
	if err != nil {
		return nil, err
	}
	msg := c.header(CmdRQ1)
	msg = append(msg, addr[:]...)
	msg = append(msg, sz...)
	msg = append(msg, Checksum(addr[:], sz), sysExEnd)
	return msg, nil
}

// IdentityRequest returns the universal identity request, sent to all
// devices.
func IdentityRequest() []byte {
	return []byte{sysExStart, universalNonRT, allCall, 0x06, byte(CmdIdentityRequest), sysExEnd}
}

// IdentityReply returns the reply a JD-Xi sends to an identity request.
func (c Codec) IdentityReply(version []byte) []byte {
	msg := []byte{sysExStart, universalNonRT, c.DeviceID, 0x06, byte(CmdIdentityReply), manufacturerID}
	msg = append(msg, identityFamily...)
	msg = append(msg, identityModel...)
	msg = append(msg, version...)
	return append(msg, sysExEnd)
}

// Parse validates a single, complete SysEx message and returns its content.
// Foreign messages yield ErrBadHeader, which callers should ignore.
func (c Codec) Parse(msg []byte) (*Frame, error) {
	if len(msg) >= 2 && msg[0] == sysExStart && msg[1] == universalNonRT {
		return parseIdentity(msg)
	}
	if len(msg) < minFrame {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooShort, len(msg))
	}
	if msg[0] != sysExStart || msg[1] != manufacturerID || msg[2] != c.DeviceID || !bytes.Equal(msg[3:headerSize], modelID) {
		return nil, fmt.Errorf("%w: % X", ErrBadHeader, msg[:headerSize])
	}

	cmd := Command(msg[headerSize])
	if cmd != CmdDT1 && cmd != CmdRQ1 {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownCommand, byte(cmd))
	}
	if msg[len(msg)-1] != sysExEnd {
		return nil, fmt.Errorf("%w: last byte 0x%02X", ErrBadTerminator, msg[len(msg)-1])
	}
	if len(msg) < minChecked {
		return nil, fmt.Errorf("%w: %s needs a checksum", ErrTooShort, cmd)
	}

	body := msg[headerSize+1 : len(msg)-2]
	if err := checkDataBytes("body", body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataByte, err)
	}
	want := Checksum(body)
	got := msg[len(msg)-2]
	if want != got {
		return nil, fmt.Errorf("%w: calculated 0x%02X, got 0x%02X", ErrChecksumMismatch, want, got)
	}

	f := &Frame{Command: cmd, DeviceID: msg[2]}
	copy(f.Address[:], body[:addressSize])
	f.Data = append([]byte(nil), body[addressSize:]...)
	if cmd == CmdRQ1 && len(f.Data) != 4 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBadSizeField, len(f.Data))
	}
	return f, nil
}

func parseIdentity(msg []byte) (*Frame, error) {
	switch {
	case len(msg) < 6:
		return nil, fmt.Errorf("%w: identity message of %d bytes", ErrTooShort, len(msg))
	case msg[3] != 0x06:
		return nil, fmt.Errorf("%w: universal sub-id 0x%02X", ErrUnknownCommand, msg[3])
	case msg[len(msg)-1] != sysExEnd:
		return nil, fmt.Errorf("%w: last byte 0x%02X", ErrBadTerminator, msg[len(msg)-1])
	}

	f := &Frame{Command: Command(msg[4]), DeviceID: msg[2]}
	switch f.Command {
	case CmdIdentityRequest:
		return f, nil
	case CmdIdentityReply:
		// F0 7E dev 06 02 41 fam fam mod mod v v v v F7
		if len(msg) < 15 {
			return nil, fmt.Errorf("%w: identity reply of %d bytes", ErrTooShort, len(msg))
		}
		if msg[5] != manufacturerID || !bytes.Equal(msg[6:8], identityFamily) || !bytes.Equal(msg[8:10], identityModel) {
			return nil, fmt.Errorf("%w: identity % X", ErrBadHeader, msg[5:10])
		}
		f.Version = append([]byte(nil), msg[10:len(msg)-1]...)
		return f, nil
	}
	return nil, fmt.Errorf("%w: identity 0x%02X", ErrUnknownCommand, msg[4])
}

// BuildDT1 builds a DT1 message for the default device ID.
func BuildDT1(addr Address, data []byte) ([]byte, error) {
	return DefaultCodec.BuildDT1(addr, data)
}

// BuildRQ1 builds an RQ1 message for the default device ID.
func BuildRQ1(addr Address, size int) ([]byte, error) {
	return DefaultCodec.BuildRQ1(addr, size)
}

// Parse parses a message addressed to the default device ID.
func Parse(msg []byte) (*Frame, error) {
	return DefaultCodec.Parse(msg)
}
