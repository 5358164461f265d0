package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"jdxieditor/jdxi"
)

const usage = `usage: jdxi <command> [args]

  identity                              ask the JD-Xi for its identity
  get [-yaml] <area/section>            read and decode a section
  set <area/section> <param> <value>    write one parameter
  decode [-yaml] [hex bytes]            decode SysEx offline (stdin when no bytes)
  monitor                               print incoming SysEx, decoded
  program <part> <bank> <number>        load a program on a part
  play <part> [notes]                   play notes on a part
  mcp                                   serve the MCP tools on stdio

Set JDXI_CONFIG to use a config file other than the default.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	cfg, err := loadConfig(os.Getenv("JDXI_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	disp := jdxi.NewDispatcher(jdxi.Default(), cfg.codec(), log.Default())

	if cmd == "decode" {
		cmdDecode(disp, args)
		return
	}

	dev, closer, err := openJDXi(cfg, disp)
	if err != nil {
		if cmd != "mcp" {
			log.Fatalf("could not open JD-Xi: %v", err)
		}
		log.Printf("no JD-Xi, serving offline tools only: %v", err)
	} else {
		defer closer()
	}

	switch cmd {
	case "identity":
		cmdIdentity(dev)
	case "get":
		cmdGet(dev, args)
	case "set":
		cmdSet(dev, disp, args)
	case "monitor":
		runMonitor(dev, newCaptureLog(disp, cfg.CaptureSize), os.Stdout)
	case "program":
		if len(args) != 3 {
			log.Fatalf("usage: program <part> <bank> <number>")
		}
		ch, err := cfg.channel(args[0])
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := selectProgram(dev, cfg.bankSelect(), ch, args[1], cast.ToInt(args[2])); err != nil {
			log.Fatalf("failed to select program: %v", err)
		}
	case "play":
		if len(args) < 1 {
			log.Fatalf("usage: play <part> [notes]")
		}
		if err := playPart(dev, cfg, args[0], strings.Join(args[1:], " ")); err != nil {
			log.Fatalf("failed to play notes: %v", err)
		}
	case "mcp":
		runMCP(&tools{cfg: cfg, disp: disp, dev: dev, capture: newCaptureLog(disp, cfg.CaptureSize)})
	default:
		log.Fatalf("unknown command %q\n%s", cmd, usage)
	}
}

// openJDXi finds the ports whose names contain the configured hint.
func openJDXi(cfg *Config, disp *jdxi.Dispatcher) (*Device, func(), error) {
	log.Println("Available MIDI outputs:")
	log.Print(midi.GetOutPorts().String())

	outIdx, err := findOutPort(cfg.PortHint)
	if err != nil {
		return nil, nil, err
	}
	inIdx, err := findInPort(cfg.PortHint)
	if err != nil {
		return nil, nil, err
	}
	return OpenDevice(cfg, disp, outIdx, inIdx)
}

func findOutPort(nameFragment string) (int, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return -1, fmt.Errorf("no MIDI outputs available")
	}

	lower := strings.ToLower(nameFragment)
	for _, out := range outs {
		if strings.Contains(strings.ToLower(out.String()), lower) {
			return out.Number(), nil
		}
	}

	return -1, fmt.Errorf("no MIDI output contains %q", nameFragment)
}

func findInPort(nameFragment string) (int, error) {
	ins := midi.GetInPorts()
	if len(ins) == 0 {
		return -1, fmt.Errorf("no MIDI inputs available")
	}

	lower := strings.ToLower(nameFragment)
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), lower) {
			return in.Number(), nil
		}
	}

	return -1, fmt.Errorf("no MIDI input contains %q", nameFragment)
}
