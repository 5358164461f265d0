package jdxi

import (
	"fmt"
	"log"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Decoded is the structured content of one DT1 message.
type Decoded struct {
	Frame    *Frame                                `json:"-" yaml:"-"`
	Address  Address                               `json:"address" yaml:"address"`
	Location Location                              `json:"location" yaml:"location"`
	Schema   string                                `json:"schema,omitempty" yaml:"schema,omitempty"`
	Fallback bool                                  `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Fields   *orderedmap.OrderedMap[string, Field] `json:"fields" yaml:"fields"`
	Warnings []string                              `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Field returns the decoded field called name.
func (d *Decoded) Field(name string) (Field, bool) {
	return d.Fields.Get(name)
}

// Dispatcher turns raw SysEx into decoded parameters and parameter edits
// into DT1 messages. It holds no mutable state and is safe for concurrent
// use.
type Dispatcher struct {
	reg    *Registry
	codec  Codec
	logger *log.Logger
}

func NewDispatcher(reg *Registry, codec Codec, logger *log.Logger) *Dispatcher {
	if reg == nil {
		reg = Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{reg: reg, codec: codec, logger: logger}
}

func (d *Dispatcher) Registry() *Registry { return d.reg }

func (d *Dispatcher) Codec() Codec { return d.codec }

// Dispatch parses raw and, for DT1 messages, decodes the payload. Identity
// and RQ1 messages come back with an empty field map.
func (d *Dispatcher) Dispatch(raw []byte) (*Decoded, error) {
	f, err := d.codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	if f.Command != CmdDT1 {
		return &Decoded{Frame: f, Address: f.Address, Fields: orderedmap.New[string, Field]()}, nil
	}
	return d.Decode(f), nil
}

// Decode maps the payload of a DT1 frame onto the schema its address
// resolves to. Parameters only partly covered by the payload are skipped
// with a warning; values out of range are kept and flagged.
func (d *Dispatcher) Decode(f *Frame) *Decoded {
	loc := Resolve(f.Address)
	schema, exact := d.reg.SchemaFor(loc.Area, loc.Tone)
	out := &Decoded{
		Frame:    f,
		Address:  f.Address,
		Location: loc,
		Schema:   schema.Name,
		Fallback: !exact,
		Fields:   orderedmap.New[string, Field](),
	}

	start, end := loc.Offset, loc.Offset+len(f.Data)
	for _, p := range schema.Params {
		if p.End() <= start || p.Offset >= end {
			continue
		}
		if p.Offset < start || p.End() > end {
			out.warn(d.logger, fmt.Sprintf("%s: payload covers only part of %s", f.Address, p.Name))
			continue
		}
		field := p.Decode(f.Data[p.Offset-start:])
		if field.Error != nil {
			out.warn(d.logger, field.Error.Error())
		}
		out.Fields.Set(p.Name, field)
	}
	if out.Fields.Len() == 0 && len(f.Data) > 0 {
		out.warn(d.logger, fmt.Sprintf("%s: no %s parameter at offset 0x%02X", f.Address, schema.Name, loc.Offset))
	}
	return out
}

func (d *Decoded) warn(l *log.Logger, msg string) {
	l.Printf("[jdxi] warning: %s", msg)
	d.Warnings = append(d.Warnings, msg)
}

// param finds the descriptor for a write. Writes never use the fallback.
func (d *Dispatcher) param(loc Location, name string) (Descriptor, Address, error) {
	schema, ok := d.reg.Lookup(loc.Area, loc.Tone)
	if !ok {
		return Descriptor{}, Address{}, fmt.Errorf("%w: no schema for %s", ErrUnknownParameter, loc)
	}
	p, ok := schema.Param(name)
	if !ok {
		return Descriptor{}, Address{}, fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParameter, schema.Name, name)
	}
	base, err := loc.Base()
	if err != nil {
		return Descriptor{}, Address{}, err
	}
	addr, err := base.Add(p.Offset)
	if err != nil {
		return Descriptor{}, Address{}, err
	}
	return p, addr, nil
}

// EncodeWrite validates value and returns the DT1 that sets parameter name
// at loc. Invalid values produce no message.
func (d *Dispatcher) EncodeWrite(loc Location, name string, value int) ([]byte, error) {
	p, addr, err := d.param(loc, name)
	if err != nil {
		return nil, err
	}
	data, err := p.Encode(value)
	if err != nil {
		return nil, err
	}
	return d.codec.BuildDT1(addr, data)
}

// EncodeText is EncodeWrite for text parameters such as tone names.
func (d *Dispatcher) EncodeText(loc Location, name, value string) ([]byte, error) {
	p, addr, err := d.param(loc, name)
	if err != nil {
		return nil, err
	}
	data, err := p.EncodeText(value)
	if err != nil {
		return nil, err
	}
	return d.codec.BuildDT1(addr, data)
}

// EncodeRequest returns the RQ1 that reads the whole section at loc, and the
// number of bytes the device will answer with.
func (d *Dispatcher) EncodeRequest(loc Location) ([]byte, int, error) {
	schema, ok := d.reg.Lookup(loc.Area, loc.Tone)
	if !ok {
		return nil, 0, fmt.Errorf("%w: no schema for %s", ErrUnknownParameter, loc)
	}
	base, err := loc.Base()
	if err != nil {
		return nil, 0, err
	}
	msg, err := d.codec.BuildRQ1(base, schema.Size)
	return msg, schema.Size, err
}

// Describe lists every registered schema with its descriptors.
func (d *Dispatcher) Describe() []Entry {
	return d.reg.Entries()
}
