package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"jdxieditor/jdxi"
)

// Device is a JD-Xi reachable through a pair of MIDI ports.
type Device struct {
	disp    *jdxi.Dispatcher
	out     drivers.Out
	in      drivers.In
	timeout time.Duration
}

// OpenDevice opens the output port at outIdx. The input port is opened by
// gomidi when a request starts listening on it.
func OpenDevice(cfg *Config, disp *jdxi.Dispatcher, outIdx, inIdx int) (*Device, func(), error) {
	outs, err := drivers.Outs()
	if err != nil {
		return nil, nil, err
	}
	if outIdx < 0 || outIdx >= len(outs) {
		return nil, nil, fmt.Errorf("output port index %d out of range", outIdx)
	}
	ins, err := drivers.Ins()
	if err != nil {
		return nil, nil, err
	}
	if inIdx < 0 || inIdx >= len(ins) {
		return nil, nil, fmt.Errorf("input port index %d out of range", inIdx)
	}

	out := outs[outIdx]
	if err := out.Open(); err != nil {
		return nil, nil, err
	}

	closer := func() {
		_ = out.Close()
		drivers.Close()
	}
	log.Printf("Opened JD-Xi ports %q / %q (device 0x%02X)", out.String(), ins[inIdx].String(), cfg.DeviceID)
	return &Device{
		disp:    disp,
		out:     out,
		in:      ins[inIdx],
		timeout: cfg.timeout(),
	}, closer, nil
}

// Send transmits a MIDI message to the JD-Xi output port.
func (d *Device) Send(msg midi.Message) error {
	if !d.out.IsOpen() {
		if err := d.out.Open(); err != nil {
			return err
		}
	}
	return d.out.Send(msg.Bytes())
}

// SendSysEx transmits a raw SysEx message.
func (d *Device) SendSysEx(data []byte) error {
	return d.Send(midi.Message(data))
}

// Write sends the DT1 for msg, which must already be encoded.
func (d *Device) Write(msg []byte) error {
	if err := d.SendSysEx(msg); err != nil {
		return fmt.Errorf("failed to send DT1: %w", err)
	}
	return nil
}

// listen forwards every SysEx message from the input port to the returned
// channel until stop is called. Messages are dropped when the channel is full.
func (d *Device) listen() (<-chan []byte, func(), error) {
	ch := make(chan []byte, 64)
	stop, err := midi.ListenTo(d.in, func(msg midi.Message, _ int32) {
		if len(msg) > 0 && msg[0] == 0xF0 {
			select {
			case ch <- append([]byte(nil), msg...):
			default:
			}
		}
	}, midi.UseSysEx(), midi.SysExBufferSize(4096))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", d.in, err)
	}
	return ch, stop, nil
}

// Request reads the whole section at loc with an RQ1 and decodes the DT1
// replies. The device may split its answer over several messages.
func (d *Device) Request(ctx context.Context, loc jdxi.Location) (*jdxi.Decoded, error) {
	req, size, err := d.disp.EncodeRequest(loc)
	if err != nil {
		return nil, err
	}
	base, err := loc.Base()
	if err != nil {
		return nil, err
	}

	msgs, stop, err := d.listen()
	if err != nil {
		return nil, err
	}
	defer stop()

	log.Printf("Requesting %s (%d bytes at %s)", loc, size, base)
	if err := d.SendSysEx(req); err != nil {
		return nil, fmt.Errorf("failed to send RQ1: %w", err)
	}

	col := newReplyCollector(base, size)
	timeout := time.After(d.timeout)
	for {
		select {
		case raw := <-msgs:
			f, err := d.disp.Codec().Parse(raw)
			if err != nil {
				if !jdxi.IsIgnorable(err) {
					log.Printf("[jdxi] dropping reply: %v", err)
				}
				continue
			}
			if col.add(f) {
				return d.disp.Decode(col.frame()), nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			if col.covered == 0 {
				return nil, fmt.Errorf("timed out waiting for %s", loc)
			}
			log.Printf("Timed out with %d of %d bytes of %s", col.covered, size, loc)
			return d.disp.Decode(col.frame()), nil
		}
	}
}

// Identify sends an identity request and waits for the reply.
func (d *Device) Identify(ctx context.Context) (*jdxi.Frame, error) {
	msgs, stop, err := d.listen()
	if err != nil {
		return nil, err
	}
	defer stop()

	if err := d.SendSysEx(jdxi.IdentityRequest()); err != nil {
		return nil, fmt.Errorf("failed to send identity request: %w", err)
	}

	timeout := time.After(d.timeout)
	for {
		select {
		case raw := <-msgs:
			f, err := d.disp.Codec().Parse(raw)
			if err == nil && f.Command == jdxi.CmdIdentityReply {
				return f, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, errors.New("timed out waiting for identity reply")
		}
	}
}

// replyCollector assembles the DT1 replies to one RQ1.
type replyCollector struct {
	base    jdxi.Address
	data    []byte
	seen    []bool
	covered int
}

func newReplyCollector(base jdxi.Address, size int) *replyCollector {
	return &replyCollector{base: base, data: make([]byte, size), seen: make([]bool, size)}
}

// add copies the part of f that falls inside the requested span and reports
// whether the span is now complete.
func (c *replyCollector) add(f *jdxi.Frame) bool {
	if f.Command != jdxi.CmdDT1 {
		return false
	}
	start := f.Address.Linear() - c.base.Linear()
	for i, b := range f.Data {
		off := start + i
		if off < 0 || off >= len(c.data) {
			continue
		}
		c.data[off] = b
		if !c.seen[off] {
			c.seen[off] = true
			c.covered++
		}
	}
	return c.covered == len(c.data)
}

// frame returns the collected bytes as one DT1 frame, trimmed to the bytes
// received in order from the start.
func (c *replyCollector) frame() *jdxi.Frame {
	n := 0
	for n < len(c.seen) && c.seen[n] {
		n++
	}
	return &jdxi.Frame{Command: jdxi.CmdDT1, Address: c.base, Data: c.data[:n]}
}
