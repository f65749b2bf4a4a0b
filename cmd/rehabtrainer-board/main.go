//go:build tinygo

// Package main is the firmware build: two buttons on pin interrupts, a WS2812
// pixel as the indicator and the command console on the default serial port.
// Pin map is for an RP2040-Zero.
package main

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ws2812"

	"github.com/kpatel528/rehabtrainer/internal/model"
	"github.com/kpatel528/rehabtrainer/internal/trainer"
)

const (
	syncPin  = machine.GPIO2
	abortPin = machine.GPIO3
	pixelPin = machine.GPIO16

	debounceMS = 20
	brightness = 0x40
)

type button int

const (
	syncButton button = iota
	abortButton
)

var presses = make(chan button, 8)

type pixel struct {
	dev ws2812.Device
	buf [1]color.RGBA
}

func (p *pixel) Set(c model.Color) {
	r, g, b := c.RGB()
	p.buf[0] = color.RGBA{R: level(r), G: level(g), B: level(b), A: 0xff}
	if err := p.dev.WriteColors(p.buf[:]); err != nil {
		// Best-effort pixel update.
		_ = err
	}
}

func level(on bool) uint8 {
	if on {
		return brightness
	}
	return 0
}

// uartOutput hands lines to a writer goroutine so the tick loop never waits
// on the UART.
type uartOutput struct {
	lines chan string
}

func (u *uartOutput) Emit(line string) {
	select {
	case u.lines <- line:
	default:
	}
}

func (u *uartOutput) run(w machine.Serialer) {
	for line := range u.lines {
		if _, err := w.Write([]byte(line + "\r\n")); err != nil {
			// Best-effort console write.
			_ = err
		}
	}
}

func main() {
	pixelPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ind := &pixel{dev: ws2812.New(pixelPin)}
	ind.Set(model.Off)

	out := &uartOutput{lines: make(chan string, 64)}
	go out.run(machine.Serial)

	for pin, btn := range map[machine.Pin]button{syncPin: syncButton, abortPin: abortButton} {
		btn := btn
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
			select {
			case presses <- btn:
			default:
			}
		})
		if err != nil {
			out.Emit("button interrupt unavailable: " + err.Error())
		}
	}

	tr := trainer.New(model.DefaultBPM, ind, out, nil)
	tr.Greet()

	var lastPress [2]uint32
	var now uint32
	ticker := time.NewTicker(time.Millisecond)
	for {
		select {
		case <-ticker.C:
			now++
			tr.Tick()
			for machine.Serial.Buffered() > 0 {
				ch, err := machine.Serial.ReadByte()
				if err != nil {
					break
				}
				tr.HandleCommand(rune(ch))
			}
		case btn := <-presses:
			if lastPress[btn] != 0 && now-lastPress[btn] < debounceMS {
				continue
			}
			lastPress[btn] = now
			if btn == syncButton {
				tr.SyncPressed()
			} else {
				tr.AbortPressed()
			}
		}
	}
}
