package jdxi

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestBuildDT1OscWave(t *testing.T) {
	msg, err := BuildDT1(Address{0x19, 0x01, 0x20, 0x00}, []byte{0x02})
	if err != nil {
		t.Fatalf("BuildDT1: %v", err)
	}
	want := []byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x12, 0x19, 0x01, 0x20, 0x00, 0x02, 0x44, 0xF7}
	if !bytes.Equal(msg, want) {
		t.Fatalf("got % X, want % X", msg, want)
	}
}

func TestParseRejectsBadChecksum(t *testing.T) {
	msg := []byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x12, 0x19, 0x70, 0x00, 0x00, 0x05, 0xF7}
	f, err := Parse(msg)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got frame %+v err %v", f, err)
	}
	if f != nil {
		t.Errorf("expected no frame on checksum mismatch")
	}
}

func TestBuildDT1RejectsHighBytes(t *testing.T) {
	if _, err := BuildDT1(Address{0x19, 0x01, 0x20, 0x00}, []byte{0x10, 0x80}); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("data byte 0x80: expected ErrValueOutOfRange, got %v", err)
	}
	if _, err := BuildDT1(Address{0x99, 0x01, 0x20, 0x00}, []byte{0x10}); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("address byte 0x99: expected ErrValueOutOfRange, got %v", err)
	}
}

func TestParseBuildInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		var addr Address
		for j := range addr {
			addr[j] = byte(rng.Intn(128))
		}
		data := make([]byte, rng.Intn(200))
		for j := range data {
			data[j] = byte(rng.Intn(128))
		}

		msg, err := BuildDT1(addr, data)
		if err != nil {
			t.Fatalf("BuildDT1(%s): %v", addr, err)
		}
		f, err := Parse(msg)
		if err != nil {
			t.Fatalf("Parse(% X): %v", msg, err)
		}
		if f.Command != CmdDT1 || f.Address != addr || !bytes.Equal(f.Data, data) {
			t.Fatalf("round trip mismatch: got %s %s % X, want %s % X", f.Command, f.Address, f.Data, addr, data)
		}
	}
}

func TestBuildRQ1(t *testing.T) {
	msg, err := BuildRQ1(Address{0x19, 0x70, 0x2E, 0x00}, 1<<7|0x43)
	if err != nil {
		t.Fatalf("BuildRQ1: %v", err)
	}
	body := []byte{0x19, 0x70, 0x2E, 0x00, 0x00, 0x00, 0x01, 0x43}
	want := append([]byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x11}, body...)
	want = append(want, Checksum(body), 0xF7)
	if !bytes.Equal(msg, want) {
		t.Fatalf("got % X, want % X", msg, want)
	}

	f, err := Parse(msg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Command != CmdRQ1 || f.Size() != 195 {
		t.Errorf("got %s size %d, want RQ1 size 195", f.Command, f.Size())
	}

	if _, err := BuildRQ1(Setup, 1<<28); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("oversized request: expected ErrValueOutOfRange, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	good, _ := BuildDT1(Address{0x18, 0x00, 0x00, 0x10}, []byte{0x64})

	withByte := func(i int, b byte) []byte {
		m := append([]byte(nil), good...)
		m[i] = b
		return m
	}

	cases := []struct {
		name string
		msg  []byte
		want error
	}{
		{"empty", nil, ErrTooShort},
		{"truncated", good[:10], ErrTooShort},
		{"other manufacturer", withByte(1, 0x43), ErrBadHeader},
		{"other device id", withByte(2, 0x11), ErrBadHeader},
		{"other model", withByte(6, 0x0F), ErrBadHeader},
		{"unknown command", withByte(7, 0x13), ErrUnknownCommand},
		{"bad terminator", withByte(len(good)-1, 0x00), ErrBadTerminator},
		{"no checksum", []byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x12, 0x18, 0x00, 0x00, 0x10, 0xF7}, ErrTooShort},
		{"bad checksum", withByte(len(good)-2, 0x00), ErrChecksumMismatch},
		{"rq1 without size", []byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x11, 0x18, 0x00, 0x00, 0x10, Checksum([]byte{0x18, 0x00, 0x00, 0x10}), 0xF7}, ErrBadSizeField},
		{"rq1 with 5 size bytes", rq1Body(0x18, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01, 0x00), ErrBadSizeField},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.msg)
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}

// rq1Body frames body as an RQ1 with a valid checksum.
func rq1Body(body ...byte) []byte {
	msg := []byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x11}
	msg = append(msg, body...)
	return append(msg, Checksum(body), 0xF7)
}

func TestIgnorableErrors(t *testing.T) {
	_, err := Parse([]byte{0xF0, 0x43, 0x10, 0x4C, 0x00, 0x00, 0x7E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF7})
	if !IsIgnorable(err) {
		t.Errorf("foreign message should be ignorable, got %v", err)
	}
	_, err = Parse([]byte{0xF0, 0x41, 0x10, 0x00, 0x00, 0x00, 0x0E, 0x12, 0x19, 0x70, 0x00, 0x00, 0x05, 0xF7})
	if IsIgnorable(err) || !IsTransient(err) {
		t.Errorf("checksum mismatch must be surfaced as transient, got %v", err)
	}
}

func TestSingleBitFlipsAreDetected(t *testing.T) {
	frames := []struct {
		addr Address
		data []byte
	}{
		{Address{0x19, 0x01, 0x20, 0x00}, []byte{0x02}},
		{Address{0x19, 0x70, 0x00, 0x00}, []byte("Techno Kit  ")},
		{Address{0x18, 0x00, 0x00, 0x10}, []byte{0x64, 0x00, 0x07, 0x0D, 0x00}},
		{Address{0x02, 0x00, 0x00, 0x00}, []byte{0x00, 0x04, 0x00, 0x00, 0x40, 0x7F}},
	}

	for _, fr := range frames {
		msg, err := BuildDT1(fr.addr, fr.data)
		if err != nil {
			t.Fatalf("BuildDT1: %v", err)
		}
		for i := headerSize + 1; i < len(msg)-2; i++ {
			for bit := 0; bit < 8; bit++ {
				flipped := append([]byte(nil), msg...)
				flipped[i] ^= 1 << bit

				_, err := Parse(flipped)
				want := ErrChecksumMismatch
				if bit == 7 {
					want = ErrBadDataByte
				}
				if !errors.Is(err, want) {
					t.Errorf("%s: flipping bit %d of byte %d: got %v, want %v", fr.addr, bit, i, err, want)
				}
			}
		}
	}
}

func TestChecksum(t *testing.T) {
	if got := Checksum(); got != 0 {
		t.Errorf("checksum of nothing = 0x%02X, want 0", got)
	}
	if got := Checksum([]byte{0x19, 0x01, 0x20, 0x00, 0x02}); got != 0x44 {
		t.Errorf("got 0x%02X, want 0x44", got)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		b := make([]byte, rng.Intn(64))
		for j := range b {
			b[j] = byte(rng.Intn(128))
		}
		c := Checksum(b)
		if c > 0x7F {
			t.Fatalf("checksum 0x%02X is not a data byte", c)
		}
		sum := int(c)
		for _, v := range b {
			sum += int(v)
		}
		if sum%128 != 0 {
			t.Fatalf("sum of % X and checksum 0x%02X is %d, not a multiple of 128", b, c, sum)
		}
	}
}

func TestIdentity(t *testing.T) {
	req := IdentityRequest()
	if !bytes.Equal(req, []byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}) {
		t.Fatalf("identity request % X", req)
	}
	f, err := Parse(req)
	if err != nil || f.Command != CmdIdentityRequest {
		t.Fatalf("parse identity request: %+v %v", f, err)
	}

	reply := DefaultCodec.IdentityReply([]byte{0x00, 0x03, 0x00, 0x00})
	f, err = Parse(reply)
	if err != nil {
		t.Fatalf("parse identity reply: %v", err)
	}
	if f.Command != CmdIdentityReply || f.DeviceID != 0x10 || !bytes.Equal(f.Version, []byte{0x00, 0x03, 0x00, 0x00}) {
		t.Errorf("unexpected identity reply %+v", f)
	}

	other := append([]byte(nil), reply...)
	other[6] = 0x10
	if _, err := Parse(other); !errors.Is(err, ErrBadHeader) {
		t.Errorf("identity reply from another model: got %v", err)
	}
}

func TestCodecDeviceID(t *testing.T) {
	c := NewCodec(0x11)
	msg, err := c.BuildDT1(Setup, []byte{0x00})
	if err != nil {
		t.Fatal(err)
	}
	if msg[2] != 0x11 {
		t.Errorf("device id byte 0x%02X", msg[2])
	}
	if _, err := Parse(msg); !errors.Is(err, ErrBadHeader) {
		t.Errorf("default codec should ignore device 0x11, got %v", err)
	}
	if _, err := c.Parse(msg); err != nil {
		t.Errorf("codec 0x11 rejected its own message: %v", err)
	}
}
