package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"jdxieditor/jdxi"
)

// writeOutput prints v as indented JSON, or YAML when asYAML is set.
func writeOutput(w io.Writer, v any, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// encodeSetting builds the DT1 that sets name at loc. arg may be a number,
// a numeric string ("-12", "0x40"), one of the parameter's labels, or the
// text of a name parameter.
func encodeSetting(disp *jdxi.Dispatcher, loc jdxi.Location, name string, arg any) ([]byte, error) {
	schema, ok := disp.Registry().Lookup(loc.Area, loc.Tone)
	if !ok {
		return nil, fmt.Errorf("%w: no schema for %s", jdxi.ErrUnknownParameter, loc)
	}
	p, ok := schema.Param(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no parameter %q", jdxi.ErrUnknownParameter, schema.Name, name)
	}
	if p.Text {
		return disp.EncodeText(loc, name, cast.ToString(arg))
	}
	if s, ok := arg.(string); ok {
		for i, l := range p.Labels {
			if l != "" && strings.EqualFold(l, strings.TrimSpace(s)) {
				return disp.EncodeWrite(loc, name, p.Min+i)
			}
		}
	}
	v, err := cast.ToIntE(arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return disp.EncodeWrite(loc, name, v)
}

func cmdIdentity(dev *Device) {
	f, err := dev.Identify(context.Background())
	if err != nil {
		log.Fatalf("identity request failed: %v", err)
	}
	fmt.Printf("JD-Xi device 0x%02X, version % X\n", f.DeviceID, f.Version)
}

func cmdGet(dev *Device, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "print YAML instead of JSON")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatalf("usage: get [-yaml] <area/section>")
	}

	loc, err := jdxi.ParseLocation(fs.Arg(0))
	if err != nil {
		log.Fatalf("bad location: %v", err)
	}
	dec, err := dev.Request(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to read %s: %v", loc, err)
	}
	if err := writeOutput(os.Stdout, dec, *asYAML); err != nil {
		log.Fatalf("failed to print %s: %v", loc, err)
	}
}

func cmdSet(dev *Device, disp *jdxi.Dispatcher, args []string) {
	if len(args) != 3 {
		log.Fatalf("usage: set <area/section> <parameter> <value>")
	}
	loc, err := jdxi.ParseLocation(args[0])
	if err != nil {
		log.Fatalf("bad location: %v", err)
	}
	msg, err := encodeSetting(disp, loc, args[1], args[2])
	if err != nil {
		log.Fatalf("not sent: %v", err)
	}
	if err := dev.Write(msg); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Sent %s", hexString(msg))
}

// cmdDecode decodes SysEx given on the command line, or on stdin when no
// bytes are given. It needs no device.
func cmdDecode(disp *jdxi.Dispatcher, args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "print YAML instead of JSON")
	_ = fs.Parse(args)

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("failed to read stdin: %v", err)
		}
		text = string(in)
	}

	var decoded []*jdxi.Decoded
	for _, msg := range splitSysEx(text) {
		raw, err := parseHex(msg)
		if err != nil {
			log.Fatalf("%v", err)
		}
		dec, err := disp.Dispatch(raw)
		if err != nil {
			log.Printf("skipping %s: %v", hexString(raw), err)
			continue
		}
		decoded = append(decoded, dec)
	}
	if err := writeOutput(os.Stdout, decoded, *asYAML); err != nil {
		log.Fatalf("%v", err)
	}
}

// splitSysEx splits hex text holding several messages at each F7.
func splitSysEx(text string) []string {
	var out []string
	fields := strings.Fields(strings.ToUpper(strings.ReplaceAll(text, ",", " ")))
	var cur []string
	for _, f := range fields {
		cur = append(cur, f)
		if f == "F7" || f == "0XF7" {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}
