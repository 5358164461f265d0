package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"jdxieditor/jdxi"
)

// tools holds what the MCP handlers need. dev is nil when no JD-Xi is
// connected; the offline tools still work.
type tools struct {
	cfg     *Config
	disp    *jdxi.Dispatcher
	dev     *Device
	capture *captureLog
}

var errNoDevice = errors.New("no JD-Xi connected")

func runMCP(t *tools) {
	s := server.NewMCPServer(
		"JD-Xi MCP",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	const locHelp = "Section location as area/section, e.g. digital1/partial1, analog/common, drums/pad:36, program/part:2."

	s.AddTool(mcp.NewTool("jdxi_describe-schemas",
		mcp.WithDescription("Lists the JD-Xi parameter tables: every section with its parameters, ranges and labels."),
		mcp.WithString("location", mcp.Description("Only describe this section. "+locHelp)),
	), t.describe)

	s.AddTool(mcp.NewTool("jdxi_decode-sysex",
		mcp.WithDescription("Decodes a JD-Xi SysEx message given as hex bytes into named parameter values."),
		mcp.WithString("hex", mcp.Required(), mcp.Description("The message, e.g. F0 41 10 00 00 00 0E 12 19 01 20 00 02 44 F7.")),
	), t.decode)

	s.AddTool(mcp.NewTool("jdxi_encode-write",
		mcp.WithDescription("Builds the DT1 message that sets one parameter, without sending it."),
		mcp.WithString("location", mcp.Required(), mcp.Description(locHelp)),
		mcp.WithString("parameter", mcp.Required(), mcp.Description("Parameter name as listed by jdxi_describe-schemas.")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Display value, label, or text for name parameters.")),
	), t.encodeWrite)

	s.AddTool(mcp.NewTool("jdxi_read-section",
		mcp.WithDescription("Reads one section from the connected JD-Xi and returns its decoded parameters."),
		mcp.WithString("location", mcp.Required(), mcp.Description(locHelp)),
	), t.readSection)

	s.AddTool(mcp.NewTool("jdxi_write-parameter",
		mcp.WithDescription("Sets one parameter on the connected JD-Xi."),
		mcp.WithString("location", mcp.Required(), mcp.Description(locHelp)),
		mcp.WithString("parameter", mcp.Required(), mcp.Description("Parameter name as listed by jdxi_describe-schemas.")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Display value, label, or text for name parameters.")),
	), t.writeParameter)

	s.AddTool(mcp.NewTool("jdxi_recent-messages",
		mcp.WithDescription("Returns the most recent SysEx messages received from the JD-Xi, decoded."),
		mcp.WithNumber("count", mcp.Description("How many messages to return (default 20).")),
	), t.recentMessages)

	s.AddTool(mcp.NewTool("jdxi_select-program",
		mcp.WithDescription("Loads a program on one part of the JD-Xi with bank select and program change."),
		mcp.WithString("part", mcp.Required(), mcp.Description("digital1, digital2, analog or drums.")),
		mcp.WithString("bank", mcp.Required(), mcp.Description("user1, user2, preset1, preset2 or extra1..extra8.")),
		mcp.WithNumber("program", mcp.Required(), mcp.Description("Program number (1-128).")),
	), t.selectProgram)

	s.AddTool(mcp.NewTool("jdxi_play-notes",
		mcp.WithDescription("Plays notes on one part of the JD-Xi."),
		mcp.WithString("part", mcp.Required(), mcp.Description("digital1, digital2, analog or drums.")),
		mcp.WithString("notes", mcp.Description("Notes like \"C4 E4 G4 r C5\"; a test arpeggio when empty.")),
	), t.playNotes)

	if t.dev != nil {
		stop, err := t.dev.capture(t.capture, nil)
		if err != nil {
			log.Printf("[mcp] not capturing incoming messages: %v", err)
		} else {
			defer stop()
		}
	}

	log.Println("Starting JD-Xi MCP server...")

	if err := server.ServeStdio(s); err != nil {
		fmt.Printf("Server error: %v\n", err)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func requireLocation(req mcp.CallToolRequest) (jdxi.Location, error) {
	s, err := req.RequireString("location")
	if err != nil {
		return jdxi.Location{}, err
	}
	return jdxi.ParseLocation(s)
}

// encodeArgs builds the DT1 described by the location, parameter and value
// arguments.
func (t *tools) encodeArgs(req mcp.CallToolRequest) ([]byte, error) {
	loc, err := requireLocation(req)
	if err != nil {
		return nil, err
	}
	name, err := req.RequireString("parameter")
	if err != nil {
		return nil, err
	}
	value, ok := req.GetArguments()["value"]
	if !ok {
		return nil, errors.New("required argument \"value\" not found")
	}
	return encodeSetting(t.disp, loc, name, value)
}

func (t *tools) describe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("[mcp] Handling describe request.")

	entries := t.disp.Describe()
	if s := req.GetString("location", ""); s != "" {
		loc, err := jdxi.ParseLocation(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var match []jdxi.Entry
		for _, e := range entries {
			if e.Area == loc.Area && e.Tone == loc.Tone {
				match = append(match, e)
			}
		}
		entries = match
	}
	return jsonResult(entries)
}

func (t *tools) decode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := req.RequireString("hex")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := parseHex(s)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dec, err := t.disp.Dispatch(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(dec)
}

func (t *tools) encodeWrite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg, err := t.encodeArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(hexString(msg)), nil
}

func (t *tools) readSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dev == nil {
		return mcp.NewToolResultError(errNoDevice.Error()), nil
	}
	loc, err := requireLocation(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Println("[mcp] Reading", loc)
	dec, err := t.dev.Request(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}
	return jsonResult(dec)
}

func (t *tools) writeParameter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dev == nil {
		return mcp.NewToolResultError(errNoDevice.Error()), nil
	}
	msg, err := t.encodeArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Println("[mcp] Sending", hexString(msg))
	if err := t.dev.Write(msg); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText("Sent " + hexString(msg)), nil
}

func (t *tools) recentMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := req.GetInt("count", 20)
	return jsonResult(t.capture.recent(n))
}

func (t *tools) selectProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dev == nil {
		return mcp.NewToolResultError(errNoDevice.Error()), nil
	}
	part, err := req.RequireString("part")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bank, err := req.RequireString("bank")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	program, err := cast.ToIntE(req.GetArguments()["program"])
	if err != nil {
		return mcp.NewToolResultError("program: " + err.Error()), nil
	}
	ch, err := t.cfg.channel(part)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := selectProgram(t.dev, t.cfg.bankSelect(), ch, bank, program); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Selected %s %d on %s.", bank, program, part)), nil
}

func (t *tools) playNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dev == nil {
		return mcp.NewToolResultError(errNoDevice.Error()), nil
	}
	part, err := req.RequireString("part")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := playPart(t.dev, t.cfg, part, req.GetString("notes", "")); err != nil {
		return nil, fmt.Errorf("failed to play notes: %w", err)
	}
	return mcp.NewToolResultText("Notes played successfully."), nil
}
