package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"jdxieditor/jdxi"
)

func TestEncodeSetting(t *testing.T) {
	disp := quietDispatcher()
	partial1 := jdxi.Location{Area: jdxi.AreaDigital1, Tone: jdxi.TonePartial1}

	cases := []struct {
		loc  jdxi.Location
		name string
		arg  any
		want []byte // address and data
	}{
		{partial1, "osc_wave", "pw-sqr", []byte{0x19, 0x01, 0x20, 0x00, 0x02}},
		{partial1, "osc_wave", 2, []byte{0x19, 0x01, 0x20, 0x00, 0x02}},
		{partial1, "amp_pan", "-64", []byte{0x19, 0x01, 0x20, 0x1B, 0x00}},
		{partial1, "filter_cutoff", "0x40", []byte{0x19, 0x01, 0x20, 0x0C, 0x40}},
		{partial1, "filter_cutoff", float64(100), []byte{0x19, 0x01, 0x20, 0x0C, 0x64}},
		{jdxi.Location{Area: jdxi.AreaAnalog, Tone: jdxi.ToneCommon}, "tone_name", "Bass",
			[]byte{0x19, 0x42, 0x00, 0x00, 'B', 'a', 's', 's', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}},
	}
	for _, c := range cases {
		msg, err := encodeSetting(disp, c.loc, c.name, c.arg)
		if err != nil {
			t.Errorf("%s %s=%v: %v", c.loc, c.name, c.arg, err)
			continue
		}
		if got := msg[8 : len(msg)-2]; !bytes.Equal(got, c.want) {
			t.Errorf("%s %s=%v: % X, want % X", c.loc, c.name, c.arg, got, c.want)
		}
	}
}

func TestEncodeSettingRejects(t *testing.T) {
	disp := quietDispatcher()
	partial1 := jdxi.Location{Area: jdxi.AreaDigital1, Tone: jdxi.TonePartial1}

	if _, err := encodeSetting(disp, partial1, "amp_pan", 64); !errors.Is(err, jdxi.ErrValueOutOfRange) {
		t.Errorf("amp_pan 64: %v", err)
	}
	if _, err := encodeSetting(disp, partial1, "osc_wave", "WOBBLE"); err == nil {
		t.Errorf("unknown label accepted")
	}
	if _, err := encodeSetting(disp, partial1, "osc_colour", 1); !errors.Is(err, jdxi.ErrUnknownParameter) {
		t.Errorf("unknown parameter: %v", err)
	}
	if _, err := encodeSetting(disp, jdxi.Location{Area: jdxi.AreaAnalog, Tone: jdxi.TonePartial2}, "amp_level", 1); !errors.Is(err, jdxi.ErrUnknownParameter) {
		t.Errorf("analog partial: %v", err)
	}
}

func TestSplitSysEx(t *testing.T) {
	got := splitSysEx("F0 41 10 F7\nf0 7e 7f 06 01 f7, F0 43")
	want := []string{"F0 41 10 F7", "F0 7E 7F 06 01 F7", "F0 43"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitSysEx = %q", got)
	}
}

func TestWriteOutput(t *testing.T) {
	disp := quietDispatcher()
	msg, _ := jdxi.BuildDT1(jdxi.Address{0x19, 0x01, 0x20, 0x00}, []byte{0x02})
	dec, err := disp.Dispatch(msg)
	if err != nil {
		t.Fatal(err)
	}

	var js, ym bytes.Buffer
	if err := writeOutput(&js, dec, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"label": "PW-SQR"`) {
		t.Errorf("json output %s", js.String())
	}
	if err := writeOutput(&ym, dec, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ym.String(), "label: PW-SQR") || !strings.Contains(ym.String(), "area: digital1") {
		t.Errorf("yaml output %s", ym.String())
	}
}
