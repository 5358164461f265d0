package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jdxieditor/jdxi"
)

// Config holds the editor's device settings.
type Config struct {
	DeviceID byte   `json:"device_id"`
	PortHint string `json:"port_hint"` // matched case-insensitively against MIDI port names

	// Channels maps each part (digital1, digital2, analog, drums) to its
	// MIDI channel, 1-16.
	Channels map[string]int `json:"channels"`

	// BankSelectCC is the controller carrying the bank select MSB: 85, the
	// JD-Xi's own, or 0 for standard MIDI bank select.
	BankSelectCC int `json:"bank_select_cc"`

	RequestTimeoutMS int `json:"request_timeout_ms"`
	CaptureSize      int `json:"capture_size"` // entries kept by the monitor
}

// defaultConfig matches a JD-Xi with factory settings.
func defaultConfig() *Config {
	return &Config{
		DeviceID: jdxi.DefaultDeviceID,
		PortHint: "jd-xi",
		Channels: map[string]int{
			"digital1": 1,
			"digital2": 2,
			"analog":   3,
			"drums":    10,
		},
		BankSelectCC:     int(jdxi.BankSelectCC85),
		RequestTimeoutMS: 2000,
		CaptureSize:      256,
	}
}

func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "jdxi-editor"), nil
}

// configPath returns the full path to the config file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// loadConfig reads the config at path, or the default location when path is
// empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) check() error {
	if c.DeviceID > 0x7F {
		return fmt.Errorf("device_id 0x%02X is not a 7-bit value", c.DeviceID)
	}
	for part, ch := range c.Channels {
		if _, err := partArea(part); err != nil {
			return fmt.Errorf("channels: %w", err)
		}
		if ch < 1 || ch > 16 {
			return fmt.Errorf("channels: %s uses channel %d, want 1-16", part, ch)
		}
	}
	if _, err := jdxi.ParseBankSelect(c.BankSelectCC); err != nil {
		return err
	}
	if c.RequestTimeoutMS <= 0 {
		return fmt.Errorf("request_timeout_ms must be positive, got %d", c.RequestTimeoutMS)
	}
	return nil
}

// save writes the config to path, or the default location when path is empty.
func (c *Config) save(path string) error {
	if path == "" {
		p, err := configPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// channel returns the 0-based MIDI channel of a part.
func (c *Config) channel(part string) (uint8, error) {
	area, err := partArea(part)
	if err != nil {
		return 0, err
	}
	ch, ok := c.Channels[area.String()]
	if !ok {
		return 0, fmt.Errorf("no MIDI channel configured for %s", area)
	}
	return uint8(ch - 1), nil
}

// partArea parses the name of one of the four tone parts.
func partArea(part string) (jdxi.AreaTag, error) {
	area, err := jdxi.ParseArea(part)
	if err != nil {
		return area, err
	}
	if area < jdxi.AreaDigital1 {
		return area, fmt.Errorf("%s is not a tone part", area)
	}
	return area, nil
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func (c *Config) bankSelect() jdxi.BankSelect {
	b, _ := jdxi.ParseBankSelect(c.BankSelectCC)
	return b
}

func (c *Config) codec() jdxi.Codec {
	return jdxi.NewCodec(c.DeviceID)
}
