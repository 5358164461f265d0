package jdxi

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a 4-byte JD-Xi memory address: area, group, section and
// parameter offset. Every byte is a 7-bit MIDI data byte.
type Address [4]byte

// Offset is a delta applied to the last three bytes of an Address.
type Offset [3]byte

// Base addresses of the JD-Xi memory map.
var (
	Setup          = Address{0x01, 0x00, 0x00, 0x00}
	System         = Address{0x02, 0x00, 0x00, 0x00}
	TempProgram    = Address{0x18, 0x00, 0x00, 0x00}
	TempToneBase   = Address{0x19, 0x00, 0x00, 0x00}
	TempTonePart1  = Address{0x19, 0x00, 0x00, 0x00}
	TempTonePart2  = Address{0x19, 0x20, 0x00, 0x00}
	TempToneAnalog = Address{0x19, 0x40, 0x00, 0x00}
	TempToneDrums  = Address{0x19, 0x60, 0x00, 0x00}
)

// Offsets from the temporary tone part bases to the tone data the device
// actually serves (19 01, 19 21, 19 42, 19 70).
var (
	digitalToneOffset = Offset{0x01, 0x00, 0x00}
	analogToneOffset  = Offset{0x02, 0x00, 0x00}
	drumKitOffset     = Offset{0x10, 0x00, 0x00}
)

// Offset returns a new address with d added to bytes 1..3. Each byte holds 7
// bits, so sums above 0x7F carry into the byte to the left. A carry out of
// byte 1 would change the area byte and yields ErrInvalidAddress; the
// returned address is then the masked, wrapped value.
func (a Address) Offset(d Offset) (Address, error) {
	out := a
	carry := 0
	for i := 2; i >= 0; i-- {
		v := int(a[i+1]) + int(d[i]) + carry
		out[i+1] = byte(v & 0x7F)
		carry = v >> 7
	}
	if carry != 0 {
		return out, fmt.Errorf("%w: %s + %02X %02X %02X carries into the area byte", ErrInvalidAddress, a, d[0], d[1], d[2])
	}
	return out, nil
}

// MustOffset is like Offset but panics on a carry into the area byte. It is
// meant for static address tables only.
func (a Address) MustOffset(d Offset) Address {
	out, err := a.Offset(d)
	if err != nil {
		panic(err)
	}
	return out
}

// Add returns the address n bytes (in 7-bit address space) after a.
func (a Address) Add(n int) (Address, error) {
	if n < 0 || n >= 1<<21 {
		return a, fmt.Errorf("%w: offset %d", ErrInvalidAddress, n)
	}
	return a.Offset(Offset{byte(n>>14&0x7F), byte(n>>7&0x7F), byte(n&0x7F)})
}

// Linear packs the address into a single integer, 7 bits per byte.
func (a Address) Linear() int {
	return int(a[0])<<21 | int(a[1])<<14 | int(a[2])<<7 | int(a[3])
}

// Valid reports whether every byte is a MIDI data byte.
func (a Address) Valid() bool {
	for _, b := range a {
		if b > 0x7F {
			return false
		}
	}
	return true
}

func (a Address) String() string {
	return fmt.Sprintf("%02X %02X %02X %02X", a[0], a[1], a[2], a[3])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(b []byte) error {
	v, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAddress accepts "19 01 20 00", "19012000" or "0x19 0x01 0x20 0x00".
func ParseAddress(s string) (Address, error) {
	var a Address
	fields := strings.Fields(s)
	if len(fields) == 1 {
		h := strings.TrimPrefix(strings.ToLower(fields[0]), "0x")
		if len(h) != 8 {
			return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		fields = []string{h[0:2], h[2:4], h[4:6], h[6:8]}
	}
	if len(fields) != 4 {
		return a, fmt.Errorf("%w: %q needs 4 bytes", ErrInvalidAddress, s)
	}
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(f), "0x"), 16, 8)
		if err != nil || v > 0x7F {
			return a, fmt.Errorf("%w: byte %q", ErrInvalidAddress, f)
		}
		a[i] = byte(v)
	}
	return a, nil
}

// sizeBytes encodes n as the 4-byte Roland size field, 7 bits per byte.
func sizeBytes(n int) ([]byte, error) {
	if n < 0 || n >= 1<<28 {
		return nil, fmt.Errorf("%w: size %d", ErrValueOutOfRange, n)
	}
	return []byte{byte(n>>21&0x7F), byte(n>>14&0x7F), byte(n>>7&0x7F), byte(n&0x7F)}, nil
}

// SizeFromBytes decodes a 4-byte Roland size field.
func SizeFromBytes(b []byte) int {
	if len(b) != 4 {
		return 0
	}
	return int(b[0])<<21 | int(b[1])<<14 | int(b[2])<<7 | int(b[3])
}
