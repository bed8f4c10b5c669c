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

package ted_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/chip/ted"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
	"github.com/emu8/emu8/test"
)

const origin = 0xff00

type clock struct {
	cycles uint64
}

func (c *clock) ClockCycles() uint64 {
	return c.cycles
}

type fixture struct {
	ted *ted.TED
	mem *memory.Memory
	ram *memory.PhysicalStorage
	rom *memory.PhysicalStorage
	clk clock
}

func newTED(t *testing.T) *fixture {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	f := &fixture{mem: memory.NewMemory(env)}

	cpuView, err := f.mem.AddView("cpu", 0x10000)
	test.DemandSuccess(t, err)
	tedView, err := f.mem.AddView("ted", 0x10000)
	test.DemandSuccess(t, err)

	f.ram = f.mem.AddStorage("ram", memory.RAM, 0x10000)
	sub, err := memory.NewBaseSubset("ram", f.ram, 0, 0x10000, 0x0000, 0)
	test.DemandSuccess(t, err)
	id, err := f.mem.AddSubset(sub)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.mem.AddToView(tedView, id, true))

	f.rom = f.mem.AddStorage("kernal", memory.ROM, 0x4000)
	charROM, err := memory.NewBaseSubset("kernal", f.rom, 0, 0x4000, 0xc000, 0)
	test.DemandSuccess(t, err)
	_, err = f.mem.AddSubset(charROM)
	test.DemandSuccess(t, err)

	f.ted, err = ted.NewTED(f.mem, 1, ted.PAL, origin, ted.Memory{View: tedView, CharROM: charROM})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.mem.AddToView(cpuView, f.ted.Registers(), true))
	test.DemandSuccess(t, f.ted.Initialise())

	return f
}

func (f *fixture) write(t *testing.T, reg uint16, v uint8) {
	t.Helper()
	test.DemandSuccess(t, f.mem.Write(origin+reg, v))
}

func (f *fixture) read(t *testing.T, reg uint16) uint8 {
	t.Helper()
	v, err := f.mem.Read(origin + reg)
	test.DemandSuccess(t, err)
	return v
}

func (f *fixture) run(t *testing.T, cycles uint64) {
	t.Helper()
	f.clk.cycles += cycles
	test.DemandSuccess(t, f.ted.Simulate(&f.clk))
}

func TestTimers(t *testing.T) {
	f := newTED(t)

	var irq []bool
	f.ted.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventIRQ {
			irq = append(irq, ev.Data.(bool))
		}
	}))

	f.write(t, ted.IMR, ted.IntTimer1)

	// timer 1 reloads from the value written
	f.write(t, ted.T1LO, 0x10)
	f.write(t, ted.T1HI, 0x00)
	test.ExpectEquality(t, f.ted.Timers[0].Running, true)

	f.run(t, 16)
	test.ExpectEquality(t, f.read(t, ted.T1LO), uint8(0x00))
	test.ExpectEquality(t, len(irq), 0)

	f.run(t, 1)
	test.ExpectEquality(t, f.read(t, ted.T1LO), uint8(0x10))
	test.ExpectEquality(t, len(irq), 1)
	test.ExpectEquality(t, f.read(t, ted.IRR), uint8(0xad))

	// acknowledge
	f.write(t, ted.IRR, ted.IntTimer1)
	f.run(t, 1)
	test.ExpectEquality(t, len(irq), 2)
	test.ExpectEquality(t, irq[1], false)

	// writing the low byte stops the timer
	f.write(t, ted.T1LO, 0x20)
	test.ExpectEquality(t, f.ted.Timers[0].Running, false)

	// timer 2 continues from $ffff
	f.write(t, ted.T2LO, 0x05)
	f.write(t, ted.T2HI, 0x00)
	f.run(t, 6)
	test.ExpectEquality(t, f.read(t, ted.T2LO), uint8(0xff))
	test.ExpectEquality(t, f.read(t, ted.T2HI), uint8(0xff))

	// timer 2 is not enabled in the IMR
	test.ExpectEquality(t, f.read(t, ted.IRR)&ted.IntTimer2, uint8(ted.IntTimer2))
	test.ExpectEquality(t, f.ted.InterruptLine(), false)
}

func TestRaster(t *testing.T) {
	f := newTED(t)

	f.write(t, ted.RASTERCMP, 20)
	f.write(t, ted.IMR, ted.IntRaster)

	f.run(t, 57*10)
	test.ExpectEquality(t, f.read(t, ted.RASTERLO), uint8(10))
	test.ExpectEquality(t, f.read(t, ted.RASTERHI), uint8(0xfe))
	test.ExpectEquality(t, f.ted.InterruptLine(), false)

	f.run(t, 57*10)
	test.ExpectEquality(t, f.ted.Raster(), 20)
	test.ExpectEquality(t, f.ted.InterruptLine(), true)

	// bit 0 of the IMR is bit 8 of the compare value
	f.write(t, ted.IRR, ted.IntRaster)
	f.write(t, ted.IMR, ted.IntRaster|0x01)
	f.run(t, 57*200)
	test.ExpectEquality(t, f.ted.Raster(), 220)
	test.ExpectEquality(t, f.ted.InterruptLine(), false)

	f.run(t, 57*80)
	test.ExpectEquality(t, f.ted.Raster(), 300)
	test.ExpectEquality(t, f.read(t, ted.RASTERHI), uint8(0xff))
	test.ExpectEquality(t, f.read(t, ted.RASTERLO), uint8(44))
	test.ExpectEquality(t, f.ted.InterruptLine(), true)
}

func TestRasterCompareWrite(t *testing.T) {
	f := newTED(t)

	// raster and compare value are both zero after reset. the raster bit is
	// only set when the raster moves onto the compare line
	f.write(t, ted.IMR, ted.IntRaster)
	f.write(t, ted.RASTERCMP, 0)
	test.ExpectEquality(t, f.read(t, ted.IRR)&ted.IntRaster, uint8(0))
	test.ExpectEquality(t, f.ted.InterruptLine(), false)

	f.run(t, 57)
	f.write(t, ted.RASTERCMP, 1)
	test.ExpectEquality(t, f.read(t, ted.IRR)&ted.IntRaster, uint8(0))

	f.write(t, ted.RASTERCMP, 2)
	f.run(t, 57)
	test.ExpectEquality(t, f.read(t, ted.IRR)&ted.IntRaster, uint8(ted.IntRaster))
	test.ExpectEquality(t, f.ted.InterruptLine(), true)
}

func TestKeyboard(t *testing.T) {
	f := newTED(t)

	test.ExpectEquality(t, f.read(t, ted.KEYBOARD), uint8(0xff))

	var selected uint8
	f.ted.KeyboardPort = func(v uint8) uint8 {
		selected = v
		return 0xfb
	}

	f.write(t, ted.KEYBOARD, 0xfa)
	test.ExpectEquality(t, selected, uint8(0xfa))
	test.ExpectEquality(t, f.read(t, ted.KEYBOARD), uint8(0xfb))
}

func TestFrame(t *testing.T) {
	f := newTED(t)

	var frames int
	f.ted.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventGraphicsReady {
			frames++
		}
	}))

	f.ram.Fill(func(idx int) uint8 {
		switch idx {
		case 0x0800:
			// attribute
			return 0x71
		case 0x0c00:
			// character code
			return 0x01
		case 0x1008:
			// first line of character one
			return 0x80
		}
		return 0
	})

	f.write(t, ted.VIDEOBASE, 0x08)
	f.write(t, ted.CHARBASE, 0x10)
	f.write(t, ted.BGCOLOR0, 0x12)
	f.write(t, ted.BORDER, 0x33)
	f.write(t, ted.CR1, 0x1b)

	f.run(t, 312*57)
	test.ExpectEquality(t, frames, 1)
	test.ExpectEquality(t, f.ted.Screen.Pixel(0, 0), uint8(0x33))
	test.ExpectEquality(t, f.ted.Screen.Pixel(32, 44), uint8(0x71))
	test.ExpectEquality(t, f.ted.Screen.Pixel(33, 44), uint8(0x12))

	// character set from ROM
	f.rom.Fill(func(idx int) uint8 {
		if idx == 0x1008 {
			return 0x40
		}
		return 0
	})
	f.write(t, ted.CHARBASE, 0xd0)
	f.write(t, ted.BITMAP, 0x04)

	f.run(t, 312*57)
	test.ExpectEquality(t, frames, 2)
	test.ExpectEquality(t, f.ted.Screen.Pixel(32, 44), uint8(0x12))
	test.ExpectEquality(t, f.ted.Screen.Pixel(33, 44), uint8(0x71))
}

func TestSound(t *testing.T) {
	f := newTED(t)

	var ready int
	f.ted.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventSoundReady {
			ready++
		}
	}))

	f.write(t, ted.VOICE1LO, 0x00)
	f.write(t, ted.SOUND, 0x18)

	f.run(t, 20000)
	test.ExpectEquality(t, ready, 1)

	p := make([]int16, f.ted.Sound.Len())
	f.ted.Sound.Read(p)

	lo, hi := p[0], p[0]
	for _, v := range p {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	test.ExpectEquality(t, lo, int16(-8192))
	test.ExpectEquality(t, hi, int16(8192))
}
