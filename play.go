package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gitlab.com/gomidi/midi/v2"

	"jdxieditor/jdxi"
)

// sender is the part of Device used for channel messages.
type sender interface {
	Send(msg midi.Message) error
}

func playTestNotes(dev sender, channel uint8) error {
	notes := []uint8{midi.C(4), midi.E(4), midi.G(4)}
	for _, n := range notes {
		if err := dev.Send(midi.NoteOn(channel, n, 100)); err != nil {
			return fmt.Errorf("note on failed for %d: %w", n, err)
		}
		time.Sleep(200 * time.Millisecond)
		if err := dev.Send(midi.NoteOff(channel, n)); err != nil {
			return fmt.Errorf("note off failed for %d: %w", n, err)
		}
	}
	return nil
}

// playDrumNotes hits each pad of the kit, low to high.
func playDrumNotes(dev sender, channel uint8, pads []int) error {
	for _, n := range pads {
		if err := dev.Send(midi.NoteOn(channel, uint8(n), 100)); err != nil {
			return fmt.Errorf("note on failed for %d: %w", n, err)
		}
		time.Sleep(120 * time.Millisecond)
		if err := dev.Send(midi.NoteOff(channel, uint8(n))); err != nil {
			return fmt.Errorf("note off failed for %d: %w", n, err)
		}
	}
	return nil
}

// selectProgram loads program (1-128) of bank on channel, sending the bank
// MSB on controller msb.
func selectProgram(dev sender, msb jdxi.BankSelect, channel uint8, bankName string, program int) error {
	bank, err := jdxi.ParseBank(bankName)
	if err != nil {
		return err
	}
	msgs, err := msb.ProgramSelect(channel, bank, program)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := dev.Send(m); err != nil {
			return fmt.Errorf("program select failed: %w", err)
		}
	}
	return nil
}

func playNotesFromText(dev sender, channel uint8, notesText string) error {
	tokens := strings.FieldsFunc(notesText, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	if len(tokens) == 0 {
		return fmt.Errorf("no notes provided")
	}

	for _, tok := range tokens {
		n, isRest, err := parseNoteToken(tok)
		if err != nil {
			return fmt.Errorf("invalid note %q: %w", tok, err)
		}

		if isRest {
			time.Sleep(360 * time.Millisecond)
			continue
		}

		if err := dev.Send(midi.NoteOn(channel, n, 100)); err != nil {
			return fmt.Errorf("note on failed for %d: %w", n, err)
		}
		time.Sleep(300 * time.Millisecond)
		if err := dev.Send(midi.NoteOff(channel, n)); err != nil {
			return fmt.Errorf("note off failed for %d: %w", n, err)
		}
		time.Sleep(60 * time.Millisecond)
	}

	return nil
}

func parseNoteToken(tok string) (uint8, bool, error) {
	t := strings.TrimSpace(tok)
	if t == "" {
		return 0, false, fmt.Errorf("empty token")
	}

	if strings.EqualFold(t, "r") || strings.EqualFold(t, "rest") {
		return 0, true, nil
	}

	if len(t) < 2 {
		return 0, false, fmt.Errorf("too short")
	}

	base := strings.ToUpper(string(t[0]))
	accidental := 0
	rest := t[1:]

	if len(rest) > 0 {
		switch rest[0] {
		case '#':
			accidental = 1
			rest = rest[1:]
		case 'b', 'B':
			accidental = -1
			rest = rest[1:]
		}
	}

	if rest == "" {
		return 0, false, fmt.Errorf("missing octave")
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false, fmt.Errorf("invalid octave: %w", err)
	}

	var semitone int
	switch base {
	case "C":
		semitone = 0
	case "D":
		semitone = 2
	case "E":
		semitone = 4
	case "F":
		semitone = 5
	case "G":
		semitone = 7
	case "A":
		semitone = 9
	case "B":
		semitone = 11
	default:
		return 0, false, fmt.Errorf("invalid note letter %q", base)
	}

	semitone += accidental
	n := 12*(octave+1) + semitone

	if n < 0 || n > 127 {
		return 0, false, fmt.Errorf("MIDI note out of range: %d", n)
	}

	return uint8(n), false, nil
}

// playPart plays notes on the channel of part, or a test pattern when notes
// is empty.
func playPart(dev sender, cfg *Config, part, notes string) error {
	ch, err := cfg.channel(part)
	if err != nil {
		return err
	}
	if notes != "" {
		return playNotesFromText(dev, ch, notes)
	}
	if area, _ := partArea(part); area == jdxi.AreaDrumKit {
		return playDrumNotes(dev, ch, []int{36, 38, 42, 46, 49})
	}
	return playTestNotes(dev, ch)
}
