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

package sid_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/chip/sid"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
	"github.com/emu8/emu8/test"
)

const origin = 0xd400

type clock struct {
	cycles uint64
}

func (c *clock) ClockCycles() uint64 {
	return c.cycles
}

func newSID(t *testing.T) (*sid.SID, *memory.Memory) {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	mem := memory.NewMemory(env)
	view, err := mem.AddView("cpu", 0x10000)
	test.DemandSuccess(t, err)

	s, err := sid.NewSID(mem, 6, origin, 0x400, clocks.C64_PAL, 44100)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mem.AddToView(view, s.Registers(), true))
	test.DemandSuccess(t, s.Initialise())

	return s, mem
}

func TestRegisters(t *testing.T) {
	_, mem := newSID(t)

	write := func(address uint16, v uint8) {
		t.Helper()
		test.DemandSuccess(t, mem.Write(address, v))
	}
	read := func(address uint16) uint8 {
		t.Helper()
		v, err := mem.Read(address)
		test.DemandSuccess(t, err)
		return v
	}

	// write-only registers read back the last value written to the chip
	write(origin+sid.FRELO, 0x34)
	test.ExpectEquality(t, read(origin+sid.FRELO), 0x34)
	write(origin+sid.FREHI, 0x12)
	test.ExpectEquality(t, read(origin+sid.FRELO), 0x12)

	// no paddles
	test.ExpectEquality(t, read(origin+sid.POTX), 0xff)
	test.ExpectEquality(t, read(origin+sid.POTY), 0xff)

	// voice 3 is silent
	test.ExpectEquality(t, read(origin+sid.ENV3), 0x00)

	// the registers are mirrored every 32 bytes
	test.ExpectEquality(t, read(origin+0x20+sid.POTX), 0xff)
	test.ExpectEquality(t, read(0xd7e0+sid.POTY), 0xff)

	// peek is the stored value
	v, err := mem.Peek(origin + sid.FRELO)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, 0x34)
}

func TestSound(t *testing.T) {
	s, mem := newSID(t)

	var ready int
	s.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventSoundReady {
			ready++
		}
	}))

	var clk clock

	// silence with the volume at zero
	clk.cycles = 1000
	test.DemandSuccess(t, s.Simulate(&clk))
	test.ExpectEquality(t, s.Sound.Len() > 0, true)

	p := make([]int16, s.Sound.Len())
	s.Sound.Read(p)
	for _, v := range p {
		test.ExpectEquality(t, v, 0)
	}

	// sawtooth on voice 1 at full volume
	test.DemandSuccess(t, mem.Write(origin+sid.FREHI, 0x10))
	test.DemandSuccess(t, mem.Write(origin+sid.AD, 0x00))
	test.DemandSuccess(t, mem.Write(origin+sid.SR, 0xf0))
	test.DemandSuccess(t, mem.Write(origin+sid.VOLUME, 0x0f))
	test.DemandSuccess(t, mem.Write(origin+sid.CR, 0x21))

	clk.cycles += 20000
	test.DemandSuccess(t, s.Simulate(&clk))

	// 20000 cycles is about 895 samples at 44.1kHz
	test.ExpectApproximate(t, float64(s.Sound.Len()), 895, 0.01)
	test.ExpectEquality(t, ready, 1)

	p = make([]int16, s.Sound.Len())
	s.Sound.Read(p)

	lo, hi := p[0], p[0]
	for _, v := range p {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	test.ExpectEquality(t, lo < 0, true)
	test.ExpectEquality(t, hi > 0, true)
}
