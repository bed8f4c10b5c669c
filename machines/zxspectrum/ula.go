// This file is part of Emu8.
//
// Emu8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Emu8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Emu8.  If not, see <https://www.gnu.org/licenses/>.

package zxspectrum

import (
	"fmt"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/hardware/keyboard"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// Dimensions of the ScreenMemory.
const (
	ScreenWidth  = 320
	ScreenHeight = 256

	// the position of the display in the ScreenMemory
	displayLeft   = 32
	displayTop    = 32
	displayWidth  = 256
	displayHeight = 192
)

// the offset of the attributes in the display memory
const attributes = 0x1800

// the number of T-states the interrupt is held for at the start of a frame
const intLength = 32

// the number of frames between changes of the flash state
const flashFrames = 16

// Bits of the value written to the ULA port.
const (
	borderMask = 0x07
	micBit     = 0x08
	earBit     = 0x10
)

// output levels of the beeper
const (
	earLevel = 8192
	micLevel = 1024
)

// the number of samples in the SoundMemory
const bufferSize = 8192

// ULA is the Spectrum's video, keyboard and beeper chip. It answers on every
// even port. Changes to the interrupt output are raised as
// notifications.EventIRQ events with a boolean Data field.
type ULA struct {
	id    int
	label string

	mem  *memory.Memory
	view memory.ViewID

	notifier notifications.Notifier
	elapsed  chip.Elapsed

	Screen   *chip.ScreenMemory
	Sound    *chip.SoundMemory
	Keyboard *keyboard.Matrix

	frameCycles int
	cycle       int
	irq         bool

	// the last value written to the port
	out uint8

	cyclesPerSample float64
	acc             float64
	pending         int
}

// NewULA is the preferred method of initialisation for the ULA type. The
// view is the 16K of memory that holds the display.
func NewULA(mem *memory.Memory, id int, view memory.ViewID, frameCycles int, clock float64, sampleRate int) (*ULA, error) {
	ula := &ULA{
		id:              id,
		label:           "ULA",
		mem:             mem,
		view:            view,
		Sound:           chip.NewSoundMemory(bufferSize, sampleRate),
		Keyboard:        keyboard.NewMatrix("spectrum keyboard", 8, 5),
		frameCycles:     frameCycles,
		cyclesPerSample: clocks.CyclesPerSample(clock, sampleRate),
	}

	var err error
	ula.Screen, err = chip.NewScreenMemory(ScreenWidth, ScreenHeight)
	if err != nil {
		return nil, err
	}

	return ula, nil
}

func (ula *ULA) String() string {
	return fmt.Sprintf("%s: cycle=%d/%d border=%d out=%02x int=%v",
		ula.label, ula.cycle, ula.frameCycles, ula.Border(), ula.out, ula.irq)
}

// ID implements the chip.Simulatable interface.
func (ula *ULA) ID() int {
	return ula.id
}

// Label implements the chip.Simulatable interface.
func (ula *ULA) Label() string {
	return ula.label
}

// Notifier implements the chip.EventSource interface.
func (ula *ULA) Notifier() *notifications.Notifier {
	return &ula.notifier
}

// Initialise implements the chip.Simulatable interface.
func (ula *ULA) Initialise() error {
	ula.cycle = 0
	ula.out = 0
	ula.acc = 0
	ula.pending = 0
	ula.elapsed = chip.Elapsed{}
	ula.Screen.Frame = 0
	ula.Screen.Fill(0)
	ula.Sound.Reset()
	if ula.irq {
		ula.irq = false
		ula.notify(notifications.EventIRQ, false)
	}
	return nil
}

func (ula *ULA) notify(id notifications.EventID, data any) {
	ula.notifier.Notify(notifications.Event{
		Source: notifications.SourceVideo,
		ID:     id,
		Data:   data,
	})
}

// Border returns the palette index of the border.
func (ula *ULA) Border() uint8 {
	return ula.out & borderMask
}

// Beeper returns the state of the EAR output.
func (ula *ULA) Beeper() bool {
	return ula.out&earBit == earBit
}

// Cycle returns the position in the frame in T-states.
func (ula *ULA) Cycle() int {
	return ula.cycle
}

// InterruptLine returns true if the ULA is requesting an interrupt.
func (ula *ULA) InterruptLine() bool {
	return ula.irq
}

// Port returns the ULA's device on the I/O bus. The ULA decodes every even
// port.
func (ula *ULA) Port() Port {
	return Port{
		Label: ula.label,
		Mask:  0x0001,
		Match: 0x0000,
		In:    ula.in,
		Out:   ula.output,
	}
}

// the high byte of the port drives the keyboard lines. bit 6 is the EAR
// input, which follows the EAR output on issue 3 machines
func (ula *ULA) in(port uint16) uint8 {
	v := ula.Keyboard.Scan(uint8(port>>8))&0x1f | 0xa0
	if ula.out&earBit == earBit {
		v |= 0x40
	}
	return v
}

func (ula *ULA) output(_ uint16, data uint8) {
	ula.out = data
}

// Simulate implements the chip.Simulatable interface.
func (ula *ULA) Simulate(c chip.Clock) error {
	cycles := ula.elapsed.Update(c)

	ula.acc += float64(cycles)
	for ula.acc >= ula.cyclesPerSample {
		ula.acc -= ula.cyclesPerSample
		ula.Sound.Write(ula.sample())
		ula.pending++
	}
	if ula.pending >= ula.Sound.SampleRate/50 {
		ula.pending = 0
		ula.notify(notifications.EventSoundReady, ula.Sound.Len())
	}

	ula.cycle += int(cycles)
	for ula.cycle >= ula.frameCycles {
		ula.cycle -= ula.frameCycles
		if err := ula.render(); err != nil {
			return err
		}
	}

	irq := ula.cycle < intLength
	if irq != ula.irq {
		ula.irq = irq
		ula.notify(notifications.EventIRQ, irq)
	}

	return nil
}

func (ula *ULA) sample() int16 {
	var v int16
	if ula.out&earBit == earBit {
		v += earLevel
	}
	if ula.out&micBit == micBit {
		v += micLevel
	}
	return v
}

// the address of the pixel byte for the column on the display line
func pixelAddress(line int, col int) uint16 {
	return uint16(line&0xc0)<<5 | uint16(line&0x07)<<8 | uint16(line&0x38)<<2 | uint16(col)
}

// render the frame into the screen memory. the palette has eight colours
// and their bright versions in the upper eight entries
func (ula *ULA) render() error {
	ula.Screen.Fill(ula.Border())

	flash := (ula.Screen.Frame/flashFrames)%2 == 1

	for line := 0; line < displayHeight; line++ {
		for col := 0; col < displayWidth/8; col++ {
			bits, err := ula.mem.ReadView(ula.view, pixelAddress(line, col))
			if err != nil {
				return err
			}
			attr, err := ula.mem.ReadView(ula.view, attributes+uint16(line/8)*32+uint16(col))
			if err != nil {
				return err
			}

			ink := attr & 0x07
			paper := (attr >> 3) & 0x07
			if attr&0x40 == 0x40 {
				ink += 8
				paper += 8
			}
			if attr&0x80 == 0x80 && flash {
				ink, paper = paper, ink
			}

			for i := 0; i < 8; i++ {
				c := paper
				if bits&(0x80>>i) != 0 {
					c = ink
				}
				ula.Screen.SetPixel(displayLeft+col*8+i, displayTop+line, c)
			}
		}
	}

	ula.Screen.Frame++
	ula.notify(notifications.EventGraphicsReady, ula.Screen.Frame)

	return nil
}
