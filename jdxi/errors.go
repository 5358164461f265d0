package jdxi

import (
	"errors"
	"fmt"
)

var (
	ErrTooShort         = errors.New("sysex message too short")
	ErrBadHeader        = errors.New("not a JD-Xi sysex message")
	ErrUnknownCommand   = errors.New("unknown sysex command")
	ErrBadTerminator    = errors.New("sysex message not terminated by 0xF7")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrBadDataByte      = errors.New("data byte has bit 7 set")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrBadSizeField     = errors.New("RQ1 size field is not 4 bytes")
)

// RangeError reports a parameter value outside its documented range. Raw is
// the stored value, Min and Max are in display units.
type RangeError struct {
	Param string `json:"param"`
	Raw   int    `json:"raw"`
	Value int    `json:"value"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %d (raw 0x%02X) outside %d..%d", e.Param, e.Value, e.Raw, e.Min, e.Max)
}

// Is lets errors.Is(err, ErrValueOutOfRange) match range failures.
func (e *RangeError) Is(target error) bool {
	return target == ErrValueOutOfRange
}

// IsIgnorable reports whether err only means the message was not meant for
// this codec (foreign manufacturer, or a command we do not handle).
func IsIgnorable(err error) bool {
	return errors.Is(err, ErrBadHeader) || errors.Is(err, ErrUnknownCommand)
}

// IsTransient reports whether err indicates a transmission problem that a
// retry may fix.
func IsTransient(err error) bool {
	return errors.Is(err, ErrChecksumMismatch) || errors.Is(err, ErrBadTerminator) || errors.Is(err, ErrBadDataByte)
}
