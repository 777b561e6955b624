package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewConfig(t *testing.T) {
	path := writeConfig(t, `
Segments: ["17", "27", "22", "5", "6", "13", "19", ""]
Commons: ["23", "24"]
Strobe: 3ms
Mode: text
Text: "42"
`)
	c, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if c.Backend != "periph" {
		t.Errorf("Backend = %q, want periph", c.Backend)
	}
	if c.Tick != time.Millisecond {
		t.Errorf("Tick = %v, want 1ms", c.Tick)
	}
	if c.Strobe != 3*time.Millisecond {
		t.Errorf("Strobe = %v, want 3ms", c.Strobe)
	}
	if len(c.Segments) != 8 || c.Segments[7] != "" {
		t.Errorf("Segments = %q", c.Segments)
	}
	if c.Mode != "text" || c.Text != "42" {
		t.Errorf("Mode, Text = %q, %q, want text, 42", c.Mode, c.Text)
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"unknown field", "Segments: [a]\nCommons: [b]\nColour: red\n"},
		{"no segments", "Commons: [b]\n"},
		{"no commons", "Segments: [a]\n"},
		{"bad backend", "Backend: wiringpi\nSegments: [a]\nCommons: [b]\n"},
		{"bad mode", "Mode: disco\nSegments: [a]\nCommons: [b]\n"},
		{"bad tick", "Tick: 0s\nSegments: [a]\nCommons: [b]\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewConfig(writeConfig(t, test.body)); err == nil {
				t.Error("NewConfig() error = nil, want error")
			}
		})
	}
	if _, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("NewConfig(missing) error = nil, want error")
	}
}

func TestResolvePins(t *testing.T) {
	known := map[string]*gpiotest.Pin{}
	lookup := func(name string) (gpio.PinOut, error) {
		p, ok := known[name]
		if !ok {
			p = &gpiotest.Pin{N: name}
			known[name] = p
		}
		return p, nil
	}
	c := &Config{
		Segments: []string{"a", "b", "c", "d", "e", "f", "g", ""},
		Commons:  []string{"x", "y", "z"},
	}
	pins, err := resolvePins(c, lookup)
	if err != nil {
		t.Fatalf("resolvePins() error = %v", err)
	}
	if pins.Segments[7] != nil {
		t.Errorf("dp = %v, want nil", pins.Segments[7])
	}
	if pins.Segments[0] != known["a"] {
		t.Errorf("segment a = %v, want %v", pins.Segments[0], known["a"])
	}
	if len(pins.Commons) != 3 || pins.Commons[2] != known["z"] {
		t.Errorf("commons = %v", pins.Commons)
	}
}
