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

package timer_test

import (
	"testing"

	"github.com/emu8/emu8/hardware/chip/timer"
	"github.com/emu8/emu8/test"
)

func TestLatch(t *testing.T) {
	tmr := timer.NewTimer("A")
	test.ExpectEquality(t, tmr.Counter, uint16(0xffff))

	tmr.SetLatchLo(0x34)
	test.ExpectEquality(t, tmr.Latch, uint16(0xff34))
	test.ExpectEquality(t, tmr.Counter, uint16(0xffff))

	// a stopped timer is loaded when the high byte is written
	tmr.SetLatchHi(0x12)
	test.ExpectEquality(t, tmr.Latch, uint16(0x1234))
	test.ExpectEquality(t, tmr.Counter, uint16(0x1234))

	tmr.Running = true
	tmr.SetLatchHi(0x00)
	test.ExpectEquality(t, tmr.Counter, uint16(0x1234))
}

func TestContinuous(t *testing.T) {
	tmr := timer.NewTimer("A")
	tmr.SetLatchLo(9)
	tmr.SetLatchHi(0)
	tmr.Running = true

	test.ExpectEquality(t, tmr.CountDown(5), 0)
	test.ExpectEquality(t, tmr.Counter, uint16(4))

	// the counter passes zero after five more cycles
	test.ExpectEquality(t, tmr.CountDown(5), 1)
	test.ExpectEquality(t, tmr.Counter, uint16(9))
	test.ExpectSuccess(t, tmr.Output)
	test.ExpectSuccess(t, tmr.Running)

	// pulse output lasts for one call
	test.ExpectEquality(t, tmr.CountDown(1), 0)
	test.ExpectFailure(t, tmr.Output)

	// the period is the latch value plus one
	test.ExpectEquality(t, tmr.CountDown(29), 3)
	test.ExpectEquality(t, tmr.Counter, uint16(9))
	test.ExpectEquality(t, tmr.Underflows, 4)
}

func TestOneShot(t *testing.T) {
	tmr := timer.NewTimer("B")
	tmr.SetLatchLo(3)
	tmr.SetLatchHi(0)
	tmr.RunMode = timer.OneShot
	tmr.Running = true

	test.ExpectEquality(t, tmr.CountDown(100), 1)
	test.ExpectFailure(t, tmr.Running)
	test.ExpectEquality(t, tmr.Counter, uint16(3))

	test.ExpectEquality(t, tmr.CountDown(100), 0)
}

func TestToggle(t *testing.T) {
	tmr := timer.NewTimer("A")
	tmr.SetLatchLo(1)
	tmr.SetLatchHi(0)
	tmr.OutputMode = timer.Toggle
	tmr.Running = true

	test.ExpectEquality(t, tmr.CountDown(2), 1)
	test.ExpectSuccess(t, tmr.Output)

	// the output is unchanged by an even number of underflows
	test.ExpectEquality(t, tmr.CountDown(4), 2)
	test.ExpectSuccess(t, tmr.Output)

	test.ExpectEquality(t, tmr.CountDown(2), 1)
	test.ExpectFailure(t, tmr.Output)
}

func TestCountModes(t *testing.T) {
	a := timer.NewTimer("A")
	a.SetLatchLo(0)
	a.SetLatchHi(0)
	a.Running = true

	b := timer.NewTimer("B")
	b.SetLatchLo(2)
	b.SetLatchHi(0)
	b.CountMode = timer.Cascade
	b.Running = true

	// timer A underflows every cycle. timer B counts the underflows
	u := a.Advance(3, 0, 0)
	test.ExpectEquality(t, u, 3)
	test.ExpectEquality(t, b.Advance(3, u, 0), 1)

	b.CountMode = timer.External
	test.ExpectEquality(t, b.Advance(100, 100, 0), 0)
	test.ExpectEquality(t, b.Advance(0, 0, 3), 1)
}
