package jdxi

import (
	"fmt"
	"strings"
)

// Descriptor describes one parameter inside a Schema. Offsets are linear
// (7 bits per address byte) from the start of the schema's section.
//
// Multi-byte parameters are nibble packed: each byte carries 4 bits, most
// significant first. Text parameters hold one ASCII character per byte.
type Descriptor struct {
	Name   string   `json:"name" yaml:"name"`
	Offset int      `json:"offset" yaml:"offset"`
	Size   int      `json:"size" yaml:"size"`
	Min    int      `json:"min" yaml:"min"`
	Max    int      `json:"max" yaml:"max"`
	Zero   int      `json:"zero,omitempty" yaml:"zero,omitempty"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Text   bool     `json:"text,omitempty" yaml:"text,omitempty"`
}

// Field is a decoded parameter value. Value is in display units (the stored
// value minus the descriptor's zero point). Error is set when the stored
// value falls outside the documented range, or when a nibble byte of a
// multi-byte parameter exceeds 0x0F; Value and Raw are still filled.
type Field struct {
	Value int         `json:"value" yaml:"value"`
	Raw   int         `json:"raw" yaml:"raw"`
	Label string      `json:"label,omitempty" yaml:"label,omitempty"`
	Text  string      `json:"text,omitempty" yaml:"text,omitempty"`
	Error *RangeError `json:"error,omitempty" yaml:"error,omitempty"`
}

func (d Descriptor) width() int {
	if d.Size < 1 {
		return 1
	}
	return d.Size
}

// End is the linear offset just past the parameter.
func (d Descriptor) End() int {
	return d.Offset + d.width()
}

// storedMax is the largest value the parameter's bytes can carry.
func (d Descriptor) storedMax() int {
	if d.Text || d.width() == 1 {
		return 0x7F
	}
	return 1<<(4*d.width()) - 1
}

// Label returns the display label of value, or "" if the parameter has none.
func (d Descriptor) Label(value int) string {
	i := value - d.Min
	if i < 0 || i >= len(d.Labels) {
		return ""
	}
	return d.Labels[i]
}

// Validate converts a stored value to display units and checks it against
// the descriptor's range. On failure the converted value is still returned
// alongside a *RangeError.
func Validate(d Descriptor, raw int) (int, error) {
	v := raw - d.Zero
	if v < d.Min || v > d.Max {
		return v, &RangeError{Param: d.Name, Raw: raw, Value: v, Min: d.Min, Max: d.Max}
	}
	return v, nil
}

// raw reads the stored value from the parameter's bytes.
func (d Descriptor) raw(b []byte) int {
	if d.width() == 1 {
		return int(b[0])
	}
	v := 0
	for _, n := range b[:d.width()] {
		v = v<<4 | int(n&0x0F)
	}
	return v
}

// Decode reads the parameter from b, which must start at the parameter's
// offset and hold at least Size bytes. Range failures are reported on the
// returned Field, never as a panic.
func (d Descriptor) Decode(b []byte) Field {
	if d.Text {
		var sb strings.Builder
		var bad *RangeError
		for _, c := range b[:d.width()] {
			if c < byte(d.Min) || c > byte(d.Max) {
				if bad == nil {
					bad = &RangeError{Param: d.Name, Raw: int(c), Value: int(c), Min: d.Min, Max: d.Max}
				}
				sb.WriteByte(' ')
				continue
			}
			sb.WriteByte(c)
		}
		return Field{Text: strings.TrimRight(sb.String(), " "), Error: bad}
	}

	raw := d.raw(b)
	v, err := Validate(d, raw)
	f := Field{Value: v, Raw: raw, Label: d.Label(v)}
	if re, ok := err.(*RangeError); ok {
		f.Error = re
	}
	if re := d.checkNibbles(b); re != nil {
		f.Error = re
	}
	return f
}

// checkNibbles reports the first byte of a nibble-packed parameter that
// carries more than 4 bits. Such a byte is corrupt even when the masked
// value is in range.
func (d Descriptor) checkNibbles(b []byte) *RangeError {
	if d.width() == 1 {
		return nil
	}
	for _, n := range b[:d.width()] {
		if n > 0x0F {
			return &RangeError{Param: d.Name, Raw: int(n), Value: int(n), Min: 0, Max: 0x0F}
		}
	}
	return nil
}

// Encode converts a display value to the parameter's stored bytes. Values
// outside the documented range are rejected.
func (d Descriptor) Encode(value int) ([]byte, error) {
	if d.Text {
		return nil, fmt.Errorf("%w: %s is a text parameter", ErrValueOutOfRange, d.Name)
	}
	if value < d.Min || value > d.Max {
		return nil, &RangeError{Param: d.Name, Raw: value + d.Zero, Value: value, Min: d.Min, Max: d.Max}
	}
	raw := value + d.Zero
	if d.width() == 1 {
		return []byte{byte(raw)}, nil
	}
	out := make([]byte, d.width())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(raw & 0x0F)
		raw >>= 4
	}
	return out, nil
}

// EncodeText pads or rejects s to fill a text parameter.
func (d Descriptor) EncodeText(s string) ([]byte, error) {
	if !d.Text {
		return nil, fmt.Errorf("%w: %s is not a text parameter", ErrValueOutOfRange, d.Name)
	}
	if len(s) > d.width() {
		return nil, fmt.Errorf("%w: %s holds %d characters, got %d", ErrValueOutOfRange, d.Name, d.width(), len(s))
	}
	out := make([]byte, d.width())
	for i := range out {
		c := byte(' ')
		if i < len(s) {
			c = s[i]
		}
		if int(c) < d.Min || int(c) > d.Max {
			return nil, &RangeError{Param: d.Name, Raw: int(c), Value: int(c), Min: d.Min, Max: d.Max}
		}
		out[i] = c
	}
	return out, nil
}

// check panics on descriptors whose range cannot be stored in their bytes.
func (d Descriptor) check() {
	if d.Name == "" {
		panic(fmt.Sprintf("jdxi: unnamed parameter at offset 0x%02X", d.Offset))
	}
	if d.Min > d.Max || d.Min+d.Zero < 0 || d.Max+d.Zero > d.storedMax() {
		panic(fmt.Sprintf("jdxi: parameter %s range %d..%d (zero %d) does not fit its storage", d.Name, d.Min, d.Max, d.Zero))
	}
	if len(d.Labels) > 0 && len(d.Labels) != d.Max-d.Min+1 {
		panic(fmt.Sprintf("jdxi: parameter %s has %d labels for %d values", d.Name, len(d.Labels), d.Max-d.Min+1))
	}
}

// Table constructors, used by the params_*.go files.

func param(name string, off, min, max int) Descriptor {
	return Descriptor{Name: name, Offset: off, Size: 1, Min: min, Max: max}
}

// centered is a parameter stored with a zero point of 64.
func centered(name string, off, min, max int) Descriptor {
	return Descriptor{Name: name, Offset: off, Size: 1, Min: min, Max: max, Zero: 64}
}

func level(name string, off int) Descriptor {
	return param(name, off, 0, 127)
}

// sens is the common 1..127 stored, -63..+63 displayed depth/sensitivity.
func sens(name string, off int) Descriptor {
	return centered(name, off, -63, 63)
}

func pan(name string, off int) Descriptor {
	return centered(name, off, -64, 63)
}

func choice(name string, off int, labels ...string) Descriptor {
	return Descriptor{Name: name, Offset: off, Size: 1, Min: 0, Max: len(labels) - 1, Labels: labels}
}

func toggle(name string, off int) Descriptor {
	return choice(name, off, "OFF", "ON")
}

func nibbles(name string, off, size, min, max, zero int) Descriptor {
	return Descriptor{Name: name, Offset: off, Size: size, Min: min, Max: max, Zero: zero}
}

func text(name string, off, size int) Descriptor {
	return Descriptor{Name: name, Offset: off, Size: size, Min: 32, Max: 127, Text: true}
}
