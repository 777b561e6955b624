// Command segmux multiplexes a seven-segment LED display wired directly to
// GPIO pins, showing the time, a fixed string, or a hex test pattern.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrJosh9000/segmux"
	"github.com/sirupsen/logrus"
	"github.com/stianeikeland/go-rpio/v4"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	cf    = kingpin.Flag("config", "Path to yaml config file.").Default("config.yaml").Short('c').String()
	debug = kingpin.Flag("debug", "Log every state transition.").Bool()
)

func main() {
	kingpin.Parse()
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	config, err := NewConfig(*cf)
	if err != nil {
		logrus.Fatalln("error parsing config file:", err)
	}

	lookup, closeFn, err := openBackend(config.Backend)
	if err != nil {
		logrus.Fatalln("unable to open GPIO:", err)
	}
	defer closeFn()

	pins, err := resolvePins(config, lookup)
	if err != nil {
		logrus.Fatalln(err)
	}
	m, err := segmux.New(pins, segmux.Config{
		Digits:      len(config.Commons),
		StrobeTicks: segmux.StrobeTicks(config.Strobe, config.Tick),
	})
	if err != nil {
		logrus.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch config.Mode {
	case "text":
		m.Display(config.Text)
	case "cycle":
		go m.CycleDigits(ctx)
	case "clock":
		go runClock(ctx, m)
	}

	logrus.WithFields(logrus.Fields{
		"digits": m.Digits(),
		"tick":   config.Tick,
		"strobe": config.Strobe,
		"mode":   config.Mode,
	}).Info("segmux: running")
	m.Run(ctx, config.Tick)
	logrus.Info("segmux: stopped")
}

// openBackend returns a pin lookup for the named backend and a function that
// releases it.
func openBackend(backend string) (func(string) (gpio.PinOut, error), func(), error) {
	switch backend {
	case "rpio":
		if err := rpio.Open(); err != nil {
			return nil, nil, err
		}
		lookup := func(name string) (gpio.PinOut, error) {
			return newRPIOPin(name)
		}
		closeFn := func() {
			if err := rpio.Close(); err != nil {
				logrus.WithError(err).Warn("segmux: closing rpio")
			}
		}
		return lookup, closeFn, nil
	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}
		lookup := func(name string) (gpio.PinOut, error) {
			p := gpioreg.ByName(name)
			if p == nil {
				return nil, fmt.Errorf("no pin named %q", name)
			}
			return p, nil
		}
		return lookup, func() {}, nil
	}
}

func resolvePins(config *Config, lookup func(string) (gpio.PinOut, error)) (segmux.Pins, error) {
	var pins segmux.Pins
	for i, name := range config.Segments {
		if name == "" {
			continue
		}
		p, err := lookup(name)
		if err != nil {
			return pins, fmt.Errorf("segment %d: %w", i, err)
		}
		pins.Segments[i] = p
	}
	for i, name := range config.Commons {
		p, err := lookup(name)
		if err != nil {
			return pins, fmt.Errorf("common %d: %w", i, err)
		}
		pins.Commons = append(pins.Commons, p)
	}
	return pins, nil
}

// runClock shows the time as HHMM, right-aligned, until ctx is done.
func runClock(ctx context.Context, m *segmux.Multiplexer) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		m.Display(clockText(time.Now(), m.Digits()))
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}
}

// clockText formats t as HHMM, right-aligned in a field of the given number
// of digits. Leading hour digits are dropped if the field is too narrow.
func clockText(t time.Time, digits int) string {
	s := t.Format("1504")
	if len(s) > digits {
		s = s[len(s)-digits:]
	}
	return fmt.Sprintf("%*s", digits, s)
}
