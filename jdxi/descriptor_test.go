package jdxi

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	p := pan("amp_pan", 0x1B)
	for raw, want := range map[int]int{0: -64, 64: 0, 127: 63} {
		got, err := Validate(p, raw)
		if err != nil || got != want {
			t.Errorf("Validate(pan, %d) = %d, %v; want %d", raw, got, err, want)
		}
	}

	kf := keyfollow("filter_cutoff_keyfollow", 0x0D)
	got, err := Validate(kf, 0)
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if got != -64 || re.Param != "filter_cutoff_keyfollow" || re.Raw != 0 || re.Min != -10 || re.Max != 10 {
		t.Errorf("unexpected result %d %+v", got, re)
	}
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("RangeError should match ErrValueOutOfRange")
	}
}

func TestDescriptorEncode(t *testing.T) {
	cases := []struct {
		d     Descriptor
		value int
		want  []byte
	}{
		{level("tone_level", 0x0C), 100, []byte{100}},
		{coarseTune("osc_pitch", 0x03), -24, []byte{40}},
		{nibbles("wave_number", 0x35, 4, 0, 16384, 0), 0x1234, []byte{0x01, 0x02, 0x03, 0x04}},
		{nibbles("master_tune", 0x00, 4, -1000, 1000, 1024), 0, []byte{0x00, 0x04, 0x00, 0x00}},
		{nibbles("parameter1", 0x11, 4, -20000, 20000, 32768), -20000, []byte{0x03, 0x01, 0x0E, 0x00}},
	}
	for _, c := range cases {
		got, err := c.d.Encode(c.value)
		if err != nil {
			t.Errorf("%s.Encode(%d): %v", c.d.Name, c.value, err)
			continue
		}
		if string(got) != string(c.want) {
			t.Errorf("%s.Encode(%d) = % X, want % X", c.d.Name, c.value, got, c.want)
		}
		if f := c.d.Decode(got); f.Value != c.value || f.Error != nil {
			t.Errorf("%s.Decode(% X) = %+v", c.d.Name, got, f)
		}
	}
}

func TestDescriptorEncodeRejects(t *testing.T) {
	for _, c := range []struct {
		d     Descriptor
		value int
	}{
		{pan("amp_pan", 0x1B), 64},
		{pan("amp_pan", 0x1B), -65},
		{level("tone_level", 0x0C), 128},
		{toggle("mono_switch", 0x14), 2},
		{nibbles("wave_number", 0x35, 4, 0, 16384, 0), 16385},
	} {
		b, err := c.d.Encode(c.value)
		if !errors.Is(err, ErrValueOutOfRange) || b != nil {
			t.Errorf("%s.Encode(%d) = % X, %v; want ErrValueOutOfRange", c.d.Name, c.value, b, err)
		}
	}
}

func TestDescriptorDecodeFlagsWideNibbles(t *testing.T) {
	tempo, ok := programCommon.Param("program_tempo")
	if !ok {
		t.Fatal("program_tempo missing")
	}
	f := tempo.Decode([]byte{0x00, 0x7F, 0x7F, 0x7F})
	if f.Error == nil || f.Error.Raw != 0x7F || f.Error.Max != 0x0F {
		t.Errorf("corrupt nibble not flagged: %+v", f)
	}
	if !errors.Is(f.Error, ErrValueOutOfRange) {
		t.Errorf("nibble error should match ErrValueOutOfRange")
	}

	if f := tempo.Decode([]byte{0x00, 0x04, 0x0B, 0x00}); f.Error != nil || f.Value != 1200 {
		t.Errorf("120.0 BPM decoded as %+v", f)
	}
	if f := level("tone_level", 0x0C).Decode([]byte{0x7F}); f.Error != nil || f.Value != 127 {
		t.Errorf("single byte parameter flagged: %+v", f)
	}
}

func TestDescriptorText(t *testing.T) {
	d := text("tone_name", 0x00, 12)
	b, err := d.EncodeText("JP8 Strings")
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 12 || b[11] != ' ' {
		t.Errorf("got %q", b)
	}
	if f := d.Decode(b); f.Text != "JP8 Strings" || f.Error != nil {
		t.Errorf("decoded %+v", f)
	}

	if _, err := d.EncodeText("a name that is too long"); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("long name: %v", err)
	}
	if _, err := d.EncodeText("tab\there"); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("control character: %v", err)
	}

	f := d.Decode([]byte{'K', 'i', 't', 0x00, ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '})
	if f.Error == nil || f.Text != "Kit" {
		t.Errorf("NUL in name: %+v", f)
	}
}

func TestLabels(t *testing.T) {
	d := digitalPartial
	p, ok := d.Param("osc_wave")
	if !ok {
		t.Fatal("osc_wave missing")
	}
	if got := p.Label(2); got != "PW-SQR" {
		t.Errorf("label = %q", got)
	}
	if got := p.Label(99); got != "" {
		t.Errorf("label out of range = %q", got)
	}

	c, _ := systemController.Param("keyboard_velocity_curve")
	if got := c.Label(1); got != "LIGHT" {
		t.Errorf("curve label = %q", got)
	}
}

func TestSchemaConstructionPanics(t *testing.T) {
	bad := map[string]func(){
		"overlap":   func() { newSchema("x", 4, level("a", 0), nibbles("b", 1, 2, 0, 255, 0), level("c", 2)) },
		"past end":  func() { newSchema("x", 2, nibbles("a", 0, 4, 0, 1, 0)) },
		"duplicate": func() { newSchema("x", 4, level("a", 0), level("a", 1)) },
		"range":     func() { newSchema("x", 4, param("a", 0, 0, 200)) },
		"labels":    func() { newSchema("x", 4, Descriptor{Name: "a", Size: 1, Max: 2, Labels: []string{"x"}}) },
	}
	for name, fn := range bad {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestSchemaAt(t *testing.T) {
	p, ok := drumPartial.At(1<<7 | 0x15)
	if !ok || p.Name != "pitch_env_depth" {
		t.Errorf("At(01 15) = %+v, %v", p, ok)
	}
	if _, ok := drumPartial.At(0x17); ok {
		t.Errorf("reserved offset 0x17 should have no parameter")
	}
	w, _ := drumPartial.Param("wmt4_velocity_fade_width_upper")
	if w.End() != 1<<7|0x15 {
		t.Errorf("wmt4 ends at 0x%X", w.End())
	}
}
