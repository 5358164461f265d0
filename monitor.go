package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"jdxieditor/jdxi"
)

// Capture is one SysEx message seen on the input port.
type Capture struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	Raw      string        `json:"raw"`
	Decoded  *jdxi.Decoded `json:"decoded,omitempty"`
	Error    string        `json:"error,omitempty"`
	Location string        `json:"location,omitempty"`
}

// captureLog keeps the most recent captures. It is written by the MIDI
// listener goroutine and read by command handlers.
type captureLog struct {
	mu      sync.Mutex
	entries []Capture
	max     int
	disp    *jdxi.Dispatcher
}

func newCaptureLog(disp *jdxi.Dispatcher, max int) *captureLog {
	if max <= 0 {
		max = 1
	}
	return &captureLog{disp: disp, max: max}
}

// add decodes raw and stores the result. Messages from other devices are
// stored undecoded.
func (c *captureLog) add(raw []byte) Capture {
	e := Capture{
		ID:   uuid.NewString(),
		Time: time.Now(),
		Raw:  hexString(raw),
	}
	dec, err := c.disp.Dispatch(raw)
	switch {
	case err != nil:
		e.Error = err.Error()
	default:
		e.Decoded = dec
		if dec.Frame.Command == jdxi.CmdDT1 {
			e.Location = dec.Location.String()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == c.max {
		copy(c.entries, c.entries[1:])
		c.entries = c.entries[:c.max-1]
	}
	c.entries = append(c.entries, e)
	return e
}

// recent returns up to n captures, oldest first.
func (c *captureLog) recent(n int) []Capture {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n > len(c.entries) {
		n = len(c.entries)
	}
	return append([]Capture(nil), c.entries[len(c.entries)-n:]...)
}

// capture feeds every SysEx message from the device into the log until stop
// is called. Each capture is also passed to onCapture when it is not nil.
func (d *Device) capture(cl *captureLog, onCapture func(Capture)) (func(), error) {
	msgs, stop, err := d.listen()
	if err != nil {
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case raw := <-msgs:
				e := cl.add(raw)
				if onCapture != nil {
					onCapture(e)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		stop()
		close(done)
	}, nil
}

// runMonitor prints every message received from the device as a JSON line
// until interrupted.
func runMonitor(dev *Device, cl *captureLog, w io.Writer) {
	enc := json.NewEncoder(w)
	var mu sync.Mutex
	stop, err := dev.capture(cl, func(e Capture) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(e); err != nil {
			log.Printf("[monitor] %v", err)
		}
	})
	if err != nil {
		log.Fatalf("failed to start monitor: %v", err)
	}
	defer stop()

	log.Println("[monitor] listening, press Ctrl-C to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}

func hexString(b []byte) string {
	return strings.ToUpper(strings.TrimSpace(fmt.Sprintf("% x", b)))
}

// parseHex reads bytes written as "F0 41 10", "F04110" or "0xF0, 0x41".
func parseHex(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	var out []byte
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", f, err)
		}
		out = append(out, b...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no bytes given")
	}
	return out, nil
}
