package jdxi

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

const (
	// ProgramBankMSB is the bank select MSB value that addresses JD-Xi
	// programs; it is not 0 as on most GM devices.
	ProgramBankMSB = 85

	ccBankSelectLSB = 32
)

// BankSelect is the controller number that carries the bank select MSB.
type BankSelect uint8

const (
	// BankSelectCC85 is the JD-Xi's bank select MSB controller, and the default.
	BankSelectCC85 BankSelect = 85
	// BankSelectCC0 is the General MIDI bank select MSB controller, for
	// setups that remap the JD-Xi to standard bank select.
	BankSelectCC0 BankSelect = 0
)

// ParseBankSelect accepts the controller numbers 85 and 0.
func ParseBankSelect(cc int) (BankSelect, error) {
	switch cc {
	case int(BankSelectCC85), int(BankSelectCC0):
		return BankSelect(cc), nil
	}
	return BankSelectCC85, fmt.Errorf("%w: bank select MSB controller must be 85 or 0, got %d", ErrValueOutOfRange, cc)
}

// Bank is a program bank, selected by its bank select LSB.
type Bank struct {
	Name string
	LSB  byte
}

// Banks lists the program banks: user memory, ROM presets and the extra
// (expansion) banks.
var Banks = []Bank{
	{"user1", 0x00},
	{"user2", 0x01},
	{"preset1", 0x40},
	{"preset2", 0x41},
	{"extra1", 0x60},
	{"extra2", 0x61},
	{"extra3", 0x62},
	{"extra4", 0x63},
	{"extra5", 0x64},
	{"extra6", 0x65},
	{"extra7", 0x66},
	{"extra8", 0x67},
}

func ParseBank(name string) (Bank, error) {
	for _, b := range Banks {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Bank{}, fmt.Errorf("unknown bank %q", name)
}

// BankForLSB returns the bank selected by a bank select LSB value.
func BankForLSB(lsb byte) (Bank, bool) {
	for _, b := range Banks {
		if b.LSB == lsb {
			return b, true
		}
	}
	return Bank{}, false
}

// ProgramSelect returns the bank select and program change messages that
// load program (1-128) of bank on channel (0-15), with the bank MSB on CC#85.
func ProgramSelect(channel uint8, bank Bank, program int) ([]midi.Message, error) {
	return BankSelectCC85.ProgramSelect(channel, bank, program)
}

// ProgramSelect is the package-level ProgramSelect with the bank MSB sent on
// controller b.
func (b BankSelect) ProgramSelect(channel uint8, bank Bank, program int) ([]midi.Message, error) {
	if channel > 15 {
		return nil, fmt.Errorf("%w: channel %d", ErrValueOutOfRange, channel)
	}
	if program < 1 || program > 128 {
		return nil, fmt.Errorf("%w: program must be in range 1-128, got %d", ErrValueOutOfRange, program)
	}
	return []midi.Message{
		midi.ControlChange(channel, uint8(b), ProgramBankMSB),
		midi.ControlChange(channel, ccBankSelectLSB, bank.LSB),
		midi.ProgramChange(channel, uint8(program-1)),
	}, nil
}
