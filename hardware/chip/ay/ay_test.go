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

package ay_test

import (
	"testing"

	"github.com/emu8/emu8/hardware/chip/ay"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/notifications"
	"github.com/emu8/emu8/test"
)

type clock struct {
	cycles uint64
}

func (c *clock) ClockCycles() uint64 {
	return c.cycles
}

func newAY(t *testing.T) *ay.AY {
	t.Helper()
	a := ay.NewAY(1, clocks.Spectrum128, 2, 44100)
	test.DemandSuccess(t, a.Initialise())
	return a
}

func write(a *ay.AY, reg uint8, v uint8) {
	a.SelectRegister(reg)
	a.WriteRegister(v)
}

// run the chip for the number of cycles and return the samples produced
func run(t *testing.T, a *ay.AY, clk *clock, cycles uint64) []int16 {
	t.Helper()
	clk.cycles += cycles
	test.DemandSuccess(t, a.Simulate(clk))
	s := make([]int16, a.Sound.Len())
	a.Sound.Read(s)
	return s
}

func TestRegisters(t *testing.T) {
	a := newAY(t)

	write(a, ay.TONEAHI, 0xff)
	test.ExpectEquality(t, a.ReadRegister(), uint8(0x0f))

	write(a, ay.NOISE, 0xff)
	test.ExpectEquality(t, a.ReadRegister(), uint8(0x1f))

	write(a, ay.TONEALO, 0xff)
	test.ExpectEquality(t, a.ReadRegister(), uint8(0xff))
	test.ExpectEquality(t, a.Register(ay.TONEAHI), uint8(0x0f))

	// deselected
	a.SelectRegister(0x10)
	test.ExpectEquality(t, a.Selected(), -1)
	test.ExpectEquality(t, a.ReadRegister(), uint8(0xff))
	a.WriteRegister(0x00)
	test.ExpectEquality(t, a.Register(ay.TONEALO), uint8(0xff))

	// port A is an input until the mixer says otherwise
	write(a, ay.PORTA, 0x12)
	test.ExpectEquality(t, a.ReadRegister(), uint8(0xff))
	write(a, ay.MIXER, 0x40)
	a.SelectRegister(ay.PORTA)
	test.ExpectEquality(t, a.ReadRegister(), uint8(0x12))

	test.DemandSuccess(t, a.Initialise())
	test.ExpectEquality(t, a.Register(ay.TONEALO), uint8(0x00))
}

func TestTone(t *testing.T) {
	a := newAY(t)
	var clk clock

	var ready int
	a.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventSoundReady {
			ready++
		}
	}))

	// silence
	s := run(t, a, &clk, 8000)
	test.DemandSuccess(t, len(s) > 0)
	for _, v := range s {
		test.ExpectEquality(t, v, int16(0))
	}

	// tone A only
	write(a, ay.TONEALO, 0x40)
	write(a, ay.MIXER, 0x3e)
	write(a, ay.AMPA, 0x0f)

	s = run(t, a, &clk, 80430)
	var high, low int
	for _, v := range s {
		switch v {
		case 8000:
			high++
		case 0:
			low++
		default:
			t.Errorf("unexpected sample value %d", v)
		}
	}
	test.ExpectApproximate(t, float64(high), float64(len(s))/2, 0.1)
	test.ExpectApproximate(t, float64(low), float64(len(s))/2, 0.1)
	test.ExpectInequality(t, ready, 0)
}

func TestEnvelope(t *testing.T) {
	a := newAY(t)
	var clk clock

	// all generators disabled. the channel output follows the amplitude
	write(a, ay.MIXER, 0x3f)
	write(a, ay.AMPA, 0x10)
	write(a, ay.ENVLO, 0x01)

	// attack then hold
	write(a, ay.ENVSHAPE, 0x0d)
	s := run(t, a, &clk, 8000)
	test.ExpectEquality(t, s[0] < 8000, true)
	test.ExpectEquality(t, s[len(s)-1], int16(8000))

	// decay then silence
	write(a, ay.ENVSHAPE, 0x00)
	s = run(t, a, &clk, 8000)
	test.ExpectEquality(t, s[0] > 0, true)
	test.ExpectEquality(t, s[len(s)-1], int16(0))

	// attack then hold at the alternate level
	write(a, ay.ENVSHAPE, 0x0f)
	s = run(t, a, &clk, 8000)
	test.ExpectEquality(t, s[len(s)-1], int16(0))

	// continuous triangle
	write(a, ay.ENVSHAPE, 0x0e)
	s = run(t, a, &clk, 8000)
	var rising, falling bool
	for i := 1; i < len(s); i++ {
		rising = rising || s[i] > s[i-1]
		falling = falling || s[i] < s[i-1]
	}
	test.ExpectSuccess(t, rising)
	test.ExpectSuccess(t, falling)
}
