package jdxi

import (
	"fmt"
	"strings"
)

// AreaTag names the temporary memory area an address belongs to.
type AreaTag int

const (
	AreaUnknown AreaTag = iota
	AreaSetup
	AreaSystem
	AreaProgram
	AreaDigital1
	AreaDigital2
	AreaAnalog
	AreaDrumKit
)

var areaNames = []string{"unknown", "setup", "system", "program", "digital1", "digital2", "analog", "drums"}

func (a AreaTag) String() string {
	if a < 0 || int(a) >= len(areaNames) {
		return areaNames[0]
	}
	return areaNames[a]
}

func (a AreaTag) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// ParseArea is the inverse of AreaTag.String.
func ParseArea(s string) (AreaTag, error) {
	for i, n := range areaNames {
		if strings.EqualFold(s, n) {
			return AreaTag(i), nil
		}
	}
	return AreaUnknown, fmt.Errorf("unknown area %q", s)
}

// ToneTag names the section within an area.
type ToneTag int

const (
	ToneUnknown ToneTag = iota
	ToneCommon
	TonePartial1
	TonePartial2
	TonePartial3
	ToneModify
	ToneDrumPartial
	ToneVocalEffect
	ToneEffect1
	ToneEffect2
	ToneDelay
	ToneReverb
	TonePart
	ToneZone
	ToneController
)

var toneNames = []string{
	"unknown", "common", "partial1", "partial2", "partial3", "modify", "pad",
	"vocal-fx", "effect1", "effect2", "delay", "reverb", "part", "zone", "controller",
}

func (t ToneTag) String() string {
	if t < 0 || int(t) >= len(toneNames) {
		return toneNames[0]
	}
	return toneNames[t]
}

func (t ToneTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func ParseTone(s string) (ToneTag, error) {
	for i, n := range toneNames {
		if strings.EqualFold(s, n) {
			return ToneTag(i), nil
		}
	}
	return ToneUnknown, fmt.Errorf("unknown section %q", s)
}

// Location is the resolved meaning of an address.
//
// Index is the program part (0 digital 1, 1 digital 2, 2 analog, 3 drums)
// for part and zone sections, and the MIDI note for drum pads. Offset is the
// linear offset of the address within its section.
type Location struct {
	Area   AreaTag `json:"area" yaml:"area"`
	Tone   ToneTag `json:"section" yaml:"section"`
	Index  int     `json:"index,omitempty" yaml:"index,omitempty"`
	Offset int     `json:"offset" yaml:"offset"`
}

func (l Location) String() string {
	switch l.Tone {
	case ToneDrumPartial:
		return fmt.Sprintf("%s/%s:%d", l.Area, l.Tone, l.Index)
	case TonePart, ToneZone:
		return fmt.Sprintf("%s/%s:%d", l.Area, l.Tone, l.Index+1)
	}
	return fmt.Sprintf("%s/%s", l.Area, l.Tone)
}

// ParseLocation reads the String form, e.g. "digital1/partial1",
// "drums/pad:36" or "program/part:2".
func ParseLocation(s string) (Location, error) {
	var l Location
	area, rest, ok := strings.Cut(s, "/")
	if !ok {
		return l, fmt.Errorf("location %q: want area/section", s)
	}
	a, err := ParseArea(area)
	if err != nil {
		return l, err
	}
	tone, idx, hasIdx := strings.Cut(rest, ":")
	t, err := ParseTone(tone)
	if err != nil {
		return l, err
	}
	l.Area, l.Tone = a, t
	if hasIdx {
		n := 0
		if _, err := fmt.Sscanf(idx, "%d", &n); err != nil {
			return l, fmt.Errorf("location %q: bad index: %w", s, err)
		}
		l.Index = n
		if t == TonePart || t == ToneZone {
			l.Index = n - 1
		}
	}
	if _, err := l.Base(); err != nil {
		return l, err
	}
	return l, nil
}

const (
	firstPadNote   = 36
	lastPadNote    = 72
	firstPadSector = 0x2E
)

// DrumPadSection returns the section byte of the drum pad played by note.
func DrumPadSection(note int) (byte, bool) {
	if note < firstPadNote || note > lastPadNote {
		return 0, false
	}
	return byte(firstPadSector + 2*(note-firstPadNote)), true
}

var partialSections = map[byte]ToneTag{
	0x00: ToneCommon,
	0x20: TonePartial1,
	0x21: TonePartial2,
	0x22: TonePartial3,
	0x50: ToneModify,
}

// programSection is one section of the temporary program area. Sections
// larger than 128 bytes span more than one section byte.
type programSection struct {
	tone  ToneTag
	first byte
	pages byte
	parts byte
}

var programSections = []programSection{
	{ToneCommon, 0x00, 1, 0},
	{ToneVocalEffect, 0x01, 1, 0},
	{ToneEffect1, 0x02, 2, 0},
	{ToneEffect2, 0x04, 2, 0},
	{ToneDelay, 0x06, 1, 0},
	{ToneReverb, 0x08, 1, 0},
	{TonePart, 0x20, 1, 4},
	{ToneZone, 0x30, 1, 4},
	{ToneController, 0x40, 1, 0},
}

// Resolve works out which area and section an address belongs to. It never
// fails: addresses it cannot place resolve to AreaUnknown or ToneUnknown.
func Resolve(addr Address) Location {
	sect, off := addr[2], int(addr[3])
	switch addr[0] {
	case Setup[0]:
		if addr[1] == 0 && sect == 0 {
			return Location{Area: AreaSetup, Tone: ToneCommon, Offset: off}
		}
		return Location{Area: AreaSetup}
	case System[0]:
		if addr[1] == 0 {
			switch sect {
			case 0x00:
				return Location{Area: AreaSystem, Tone: ToneCommon, Offset: off}
			case 0x03:
				return Location{Area: AreaSystem, Tone: ToneController, Offset: off}
			}
		}
		return Location{Area: AreaSystem}
	case TempProgram[0]:
		return resolveProgram(addr)
	case TempToneBase[0]:
		return resolveTone(addr)
	}
	return Location{}
}

func resolveProgram(addr Address) Location {
	sect, off := addr[2], int(addr[3])
	if addr[1] != 0 {
		return Location{Area: AreaProgram}
	}
	for _, ps := range programSections {
		if ps.parts > 0 {
			if sect >= ps.first && sect < ps.first+ps.parts {
				return Location{Area: AreaProgram, Tone: ps.tone, Index: int(sect - ps.first), Offset: off}
			}
			continue
		}
		if sect >= ps.first && sect < ps.first+ps.pages {
			return Location{Area: AreaProgram, Tone: ps.tone, Offset: int(sect-ps.first)<<7 | off}
		}
	}
	return Location{Area: AreaProgram}
}

func resolveTone(addr Address) Location {
	sect, off := addr[2], int(addr[3])
	var area AreaTag
	switch {
	case addr[1] < TempTonePart2[1]:
		area = AreaDigital1
	case addr[1] < TempToneAnalog[1]:
		area = AreaDigital2
	case addr[1] < TempToneDrums[1]:
		area = AreaAnalog
	case addr[1] <= 0x7F:
		area = AreaDrumKit
	default:
		return Location{}
	}

	switch area {
	case AreaDrumKit:
		// Each pad spans two section bytes; last+1 is pad 72's second page.
		last, _ := DrumPadSection(lastPadNote)
		if sect >= firstPadSector && sect <= last+1 {
			rel := int(sect - firstPadSector)
			return Location{Area: area, Tone: ToneDrumPartial, Index: firstPadNote + rel/2, Offset: (rel%2)<<7 | off}
		}
		return Location{Area: area, Tone: ToneCommon, Offset: int(sect)<<7 | off}
	case AreaAnalog:
		if sect == 0 {
			return Location{Area: area, Tone: ToneCommon, Offset: off}
		}
		return Location{Area: area}
	}

	if t, ok := partialSections[sect]; ok {
		return Location{Area: area, Tone: t, Offset: off}
	}
	return Location{Area: area}
}

// toneArea is the address of the tone data of a temporary tone part.
func toneArea(area AreaTag) (Address, bool) {
	switch area {
	case AreaDigital1:
		return TempTonePart1.MustOffset(digitalToneOffset), true
	case AreaDigital2:
		return TempTonePart2.MustOffset(digitalToneOffset), true
	case AreaAnalog:
		return TempToneAnalog.MustOffset(analogToneOffset), true
	case AreaDrumKit:
		return TempToneDrums.MustOffset(drumKitOffset), true
	}
	return Address{}, false
}

// Base returns the start address of the location's section, the inverse of
// Resolve with a zero offset.
func (l Location) Base() (Address, error) {
	bad := fmt.Errorf("%w: no section %s", ErrInvalidAddress, l)
	switch l.Area {
	case AreaSetup:
		if l.Tone == ToneCommon {
			return Setup, nil
		}
	case AreaSystem:
		switch l.Tone {
		case ToneCommon:
			return System, nil
		case ToneController:
			return System.Offset(Offset{0, 0x03, 0})
		}
	case AreaProgram:
		for _, ps := range programSections {
			if ps.tone != l.Tone {
				continue
			}
			sect := ps.first
			if ps.parts > 0 {
				if l.Index < 0 || l.Index >= int(ps.parts) {
					return Address{}, bad
				}
				sect += byte(l.Index)
			}
			return TempProgram.Offset(Offset{0, sect, 0})
		}
	case AreaDigital1, AreaDigital2:
		base, _ := toneArea(l.Area)
		for sect, t := range partialSections {
			if t == l.Tone {
				return base.Offset(Offset{0, sect, 0})
			}
		}
	case AreaAnalog:
		if l.Tone == ToneCommon {
			base, _ := toneArea(l.Area)
			return base, nil
		}
	case AreaDrumKit:
		base, _ := toneArea(l.Area)
		switch l.Tone {
		case ToneCommon:
			return base, nil
		case ToneDrumPartial:
			if sect, ok := DrumPadSection(l.Index); ok {
				return base.Offset(Offset{0, sect, 0})
			}
		}
	}
	return Address{}, bad
}

// Address returns the address of the location, its section base plus Offset.
func (l Location) Address() (Address, error) {
	base, err := l.Base()
	if err != nil {
		return base, err
	}
	return base.Add(l.Offset)
}
