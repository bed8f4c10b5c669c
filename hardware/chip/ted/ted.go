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

// Package ted implements the register contract of the MOS 7360/8360 TED,
// the video, sound and timer chip of the Commodore 264 family.
//
// The TED registers are mapped from $FF00. Registers $FF3E and $FF3F
// switch between ROM and RAM and are owned by the machine, not by this
// package.
//
// Three timers count CPU cycles. Timer 1 reloads from the value last
// written to it. Timers 2 and 3 are free running and continue from $FFFF
// after reaching zero. Writing the low byte of a timer stops it and writing
// the high byte starts it.
//
// The video output is a simple text mode rendered once per frame. Sound is
// two square wave voices, the second of which can produce noise.
package ted

import (
	"fmt"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/chip/timer"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// List of registers.
const (
	T1LO      = 0x00
	T1HI      = 0x01
	T2LO      = 0x02
	T2HI      = 0x03
	T3LO      = 0x04
	T3HI      = 0x05
	CR1       = 0x06
	CR2       = 0x07
	KEYBOARD  = 0x08
	IRR       = 0x09
	IMR       = 0x0a
	RASTERCMP = 0x0b
	VOICE1LO  = 0x0e
	VOICE2LO  = 0x0f
	VOICE2HI  = 0x10
	SOUND     = 0x11
	BITMAP    = 0x12
	CHARBASE  = 0x13
	VIDEOBASE = 0x14
	BGCOLOR0  = 0x15
	BORDER    = 0x19
	RASTERHI  = 0x1c
	RASTERLO  = 0x1d

	// the number of registers owned by the TED
	NumRegisters = 0x3e
)

// Interrupt bits of the IRR and IMR registers.
const (
	IntRaster = 0x02
	IntTimer1 = 0x08
	IntTimer2 = 0x10
	IntTimer3 = 0x40
	IntAny    = 0x80
)

// bits of the IRR that read high
const irrUnused = 0x25

// bit of the IMR that is bit 8 of the raster compare value
const imrCompareHi = 0x01

// bit of the BITMAP register that selects the character ROM
const bitmapROM = 0x04

// Spec is the geometry of a video standard.
type Spec struct {
	ID            string
	Lines         int
	CyclesPerLine int
	Clock         float64
}

// List of video standards.
var (
	PAL  = Spec{ID: "PAL", Lines: 312, CyclesPerLine: 57, Clock: clocks.C264_PAL}
	NTSC = Spec{ID: "NTSC", Lines: 262, CyclesPerLine: 57, Clock: clocks.C264_NTSC}
)

// Dimensions of the ScreenMemory.
const (
	ScreenWidth  = 384
	ScreenHeight = 288

	displayLeft = 32
	displayTop  = 44
)

// SampleRate of the sound output.
const SampleRate = 44100

// Memory describes how the TED sees memory.
type Memory struct {
	// the view used for fetching the video matrix, the attributes and
	// characters from RAM
	View memory.ViewID

	// the ROM containing the character set. used when the character ROM
	// bit of the BITMAP register is set. can be nil
	CharROM memory.Subset
}

// TED is the chip.
type TED struct {
	id   int
	spec Spec

	mem    *memory.Memory
	vmem   Memory
	regs   *memory.ChipRegisters
	regsID memory.SubsetID

	notifier notifications.Notifier
	elapsed  chip.Elapsed

	Timers [3]*timer.Timer

	Screen *chip.ScreenMemory
	Sound  *chip.SoundMemory

	// KeyboardPort is called when the keyboard register is written. The
	// argument is the value written. The result is latched and returned by
	// reads of the register. A nil value reads $ff
	KeyboardPort func(v uint8) uint8
	kbLatch      uint8

	raster int
	cycle  int

	irr uint8
	irq bool

	voices       [2]voice
	noise        uint8
	soundAcc     float64
	soundPending int
	soundClock   float64
}

// NewTED is the preferred method of initialisation for the TED type. The
// registers are created in the memory at origin. The caller adds the
// registers to the CPU view.
func NewTED(mem *memory.Memory, id int, spec Spec, origin uint16, vmem Memory) (*TED, error) {
	ted := &TED{
		id:         id,
		spec:       spec,
		mem:        mem,
		vmem:       vmem,
		Sound:      chip.NewSoundMemory(8192, SampleRate),
		soundClock: spec.Clock * 1000000 / 8,
	}

	for i := range ted.Timers {
		ted.Timers[i] = timer.NewTimer(fmt.Sprintf("TED timer %d", i+1))
	}

	var err error
	ted.Screen, err = chip.NewScreenMemory(ScreenWidth, ScreenHeight)
	if err != nil {
		return nil, err
	}

	storage := mem.AddStorage("ted", memory.RAM, NumRegisters)
	ted.regs, err = memory.NewChipRegisters("ted", storage, 0, NumRegisters, origin, 0)
	if err != nil {
		return nil, err
	}
	ted.regs.OnWrite = ted.write
	ted.regs.OnRead = ted.read

	ted.regsID, err = mem.AddSubset(ted.regs)
	if err != nil {
		return nil, err
	}

	return ted, nil
}

func (ted *TED) String() string {
	return fmt.Sprintf("TED: %s raster=%d irr=%02x imr=%02x t1=%04x t2=%04x t3=%04x",
		ted.spec.ID, ted.raster, ted.irr, ted.regs.Register(IMR),
		ted.Timers[0].Counter, ted.Timers[1].Counter, ted.Timers[2].Counter)
}

// ID implements the chip.Simulatable interface.
func (ted *TED) ID() int {
	return ted.id
}

// Label implements the chip.Simulatable interface.
func (ted *TED) Label() string {
	return "TED"
}

// Registers implements the chip.MemoryMapped interface.
func (ted *TED) Registers() memory.SubsetID {
	return ted.regsID
}

// Notifier implements the chip.EventSource interface.
func (ted *TED) Notifier() *notifications.Notifier {
	return &ted.notifier
}

// Initialise implements the chip.Simulatable interface.
func (ted *TED) Initialise() error {
	for i := 0; i < NumRegisters; i++ {
		ted.regs.SetRegister(i, 0)
	}
	for _, t := range ted.Timers {
		t.Reset()
	}
	ted.kbLatch = 0xff
	ted.raster = 0
	ted.cycle = 0
	ted.irr = 0
	ted.voices = [2]voice{}
	ted.noise = 0xff
	ted.soundAcc = 0
	ted.soundPending = 0
	ted.elapsed = chip.Elapsed{}
	ted.Screen.Frame = 0
	ted.Screen.Fill(0)
	ted.Sound.Reset()

	if ted.irq {
		ted.irq = false
		ted.notify(notifications.EventIRQ, false)
	}

	return nil
}

func (ted *TED) notify(id notifications.EventID, data any) {
	ted.notifier.Notify(notifications.Event{
		Source: notifications.SourceVideo,
		ID:     id,
		Data:   data,
	})
}

// Raster returns the current raster line.
func (ted *TED) Raster() int {
	return ted.raster
}

// InterruptLine returns true if the TED is requesting an interrupt.
func (ted *TED) InterruptLine() bool {
	return ted.irq
}

func (ted *TED) compare() int {
	return int(ted.regs.Register(IMR)&imrCompareHi)<<8 | int(ted.regs.Register(RASTERCMP))
}

func (ted *TED) read(pos int, v uint8) uint8 {
	switch pos {
	case T1LO, T2LO, T3LO:
		return uint8(ted.Timers[pos/2].Counter)
	case T1HI, T2HI, T3HI:
		return uint8(ted.Timers[pos/2].Counter >> 8)
	case KEYBOARD:
		return ted.kbLatch
	case IRR:
		v := ted.irr | irrUnused
		if ted.irq {
			v |= IntAny
		}
		return v
	case RASTERHI:
		return 0xfe | uint8(ted.raster>>8)
	case RASTERLO:
		return uint8(ted.raster)
	}
	return v
}

func (ted *TED) write(pos int, v uint8) {
	switch pos {
	case T1LO, T2LO, T3LO:
		t := ted.Timers[pos/2]
		t.Running = false
		t.Counter = t.Counter&0xff00 | uint16(v)
		if pos == T1LO {
			t.SetLatchLo(v)
		}
	case T1HI, T2HI, T3HI:
		t := ted.Timers[pos/2]
		t.Counter = t.Counter&0x00ff | uint16(v)<<8
		if pos == T1HI {
			t.Latch = t.Counter
		} else {
			t.Latch = 0xffff
		}
		t.Running = true
	case KEYBOARD:
		if ted.KeyboardPort == nil {
			ted.kbLatch = 0xff
		} else {
			ted.kbLatch = ted.KeyboardPort(v)
		}
	case IRR:
		// writing a one acknowledges the interrupt
		ted.irr &^= v & (IntRaster | IntTimer1 | IntTimer2 | IntTimer3)
	case VOICE1LO, BITMAP:
		ted.voices[0].reg = int(ted.regs.Register(BITMAP)&0x03)<<8 | int(ted.regs.Register(VOICE1LO))
	case VOICE2LO, VOICE2HI:
		ted.voices[1].reg = int(ted.regs.Register(VOICE2HI)&0x03)<<8 | int(ted.regs.Register(VOICE2LO))
	case RASTERHI:
		ted.raster = ted.raster&0xff | int(v&0x01)<<8
	case RASTERLO:
		ted.raster = ted.raster&0x100 | int(v)
	}
}

// Simulate implements the chip.Simulatable interface.
func (ted *TED) Simulate(c chip.Clock) error {
	cycles := ted.elapsed.Update(c)

	for i, t := range ted.Timers {
		if t.CountDown(cycles) > 0 {
			ted.irr |= []uint8{IntTimer1, IntTimer2, IntTimer3}[i]
			ted.notifier.Notify(notifications.Event{
				Source:   notifications.SourceTimer,
				ID:       notifications.EventTimerUnderflow,
				Instance: i + 1,
			})
		}
	}

	ted.cycle += int(cycles)
	for ted.cycle >= ted.spec.CyclesPerLine {
		ted.cycle -= ted.spec.CyclesPerLine
		ted.raster++
		if ted.raster >= ted.spec.Lines {
			ted.raster = 0
			if err := ted.render(); err != nil {
				return err
			}
		}
		if ted.raster == ted.compare() {
			ted.irr |= IntRaster
		}
	}

	ted.sound(float64(cycles))

	irq := ted.irr&ted.regs.Register(IMR)&^imrCompareHi != 0
	if irq != ted.irq {
		ted.irq = irq
		ted.notify(notifications.EventIRQ, irq)
	}

	return nil
}
