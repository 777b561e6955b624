package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// maxBCMPin is the highest GPIO number on the BCM2835 family.
const maxBCMPin = 53

// rpioPin adapts a go-rpio pin, addressed by BCM number, to gpio.PinOut.
type rpioPin struct {
	pin rpio.Pin
}

func newRPIOPin(name string) (*rpioPin, error) {
	n, err := strconv.Atoi(name)
	if err != nil {
		return nil, fmt.Errorf("rpio pin %q is not a BCM number: %w", name, err)
	}
	if n < 0 || n > maxBCMPin {
		return nil, fmt.Errorf("rpio pin %q out of range 0-%d", name, maxBCMPin)
	}
	p := rpio.Pin(n)
	p.Output()
	return &rpioPin{pin: p}, nil
}

func (p *rpioPin) Name() string {
	return fmt.Sprintf("GPIO%d", int(p.pin))
}

func (p *rpioPin) Number() int {
	return int(p.pin)
}

func (p *rpioPin) String() string {
	return "rpio " + p.Name()
}

func (p *rpioPin) Halt() error {
	return nil
}

func (p *rpioPin) Function() string {
	return "Out"
}

func (p *rpioPin) Out(l gpio.Level) error {
	if l {
		p.pin.High()
	} else {
		p.pin.Low()
	}
	return nil
}

func (p *rpioPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("not implemented")
}

var _ gpio.PinOut = &rpioPin{}
