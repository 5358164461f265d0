package main

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"jdxieditor/jdxi"
)

func offlineTools() *tools {
	disp := quietDispatcher()
	return &tools{cfg: defaultConfig(), disp: disp, capture: newCaptureLog(disp, 10)}
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("empty result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result is %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestToolDecode(t *testing.T) {
	tl := offlineTools()
	out, isErr := call(t, tl.decode, map[string]any{"hex": "F0 41 10 00 00 00 0E 12 19 01 20 00 02 44 F7"})
	if isErr || !strings.Contains(out, `"osc_wave"`) || !strings.Contains(out, "PW-SQR") {
		t.Errorf("decode: %s", out)
	}

	out, isErr = call(t, tl.decode, map[string]any{"hex": "F0 41 10 00 00 00 0E 12 19 70 00 00 05 F7"})
	if !isErr || !strings.Contains(out, "checksum") {
		t.Errorf("bad checksum: %s", out)
	}
}

func TestToolEncodeWrite(t *testing.T) {
	tl := offlineTools()
	out, isErr := call(t, tl.encodeWrite, map[string]any{
		"location":  "digital1/partial1",
		"parameter": "osc_wave",
		"value":     "PW-SQR",
	})
	if isErr || out != "F0 41 10 00 00 00 0E 12 19 01 20 00 02 44 F7" {
		t.Errorf("encode: %s", out)
	}

	out, isErr = call(t, tl.encodeWrite, map[string]any{
		"location":  "drums/pad:36",
		"parameter": "partial_pan",
		"value":     99,
	})
	if !isErr || !strings.Contains(out, "partial_pan") {
		t.Errorf("out of range pan: %s", out)
	}

	if _, isErr := call(t, tl.encodeWrite, map[string]any{"location": "drums/pad:36", "parameter": "partial_pan"}); !isErr {
		t.Errorf("missing value accepted")
	}
}

func TestToolDescribe(t *testing.T) {
	tl := offlineTools()
	out, isErr := call(t, tl.describe, map[string]any{"location": "system/controller"})
	if isErr || !strings.Contains(out, "keyboard_velocity_curve") || strings.Contains(out, "osc_wave") {
		t.Errorf("describe system/controller: %.200s", out)
	}

	all, _ := call(t, tl.describe, map[string]any{})
	if !strings.Contains(all, "Drum Kit Partial") || !strings.Contains(all, "Program Zone") {
		t.Errorf("describe all is missing schemas")
	}

	if _, isErr := call(t, tl.describe, map[string]any{"location": "nowhere/common"}); !isErr {
		t.Errorf("bad location accepted")
	}
}

func TestToolsNeedDevice(t *testing.T) {
	tl := offlineTools()
	args := map[string]any{"location": "analog/common", "parameter": "amp_level", "value": 100, "part": "analog", "bank": "user1", "program": 1}
	for name, h := range map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"read":    tl.readSection,
		"write":   tl.writeParameter,
		"program": tl.selectProgram,
		"play":    tl.playNotes,
	} {
		if out, isErr := call(t, h, args); !isErr || out != errNoDevice.Error() {
			t.Errorf("%s without a device: %s", name, out)
		}
	}
}

func TestToolRecentMessages(t *testing.T) {
	tl := offlineTools()
	for v := 0; v < 3; v++ {
		msg, _ := jdxi.BuildDT1(jdxi.Address{0x19, 0x70, 0x00, 0x0C}, []byte{byte(v)})
		tl.capture.add(msg)
	}
	out, isErr := call(t, tl.recentMessages, map[string]any{"count": 2})
	if isErr || strings.Count(out, `"kit_level"`) != 2 {
		t.Errorf("recent: %s", out)
	}
}
