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

package chip_test

import (
	"testing"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/test"
)

type clock uint64

func (c clock) ClockCycles() uint64 {
	return uint64(c)
}

func TestLatch(t *testing.T) {
	var l chip.Latch
	test.ExpectFailure(t, l.Peek())
	test.ExpectFailure(t, l.Consume())

	l.Mark()

	// peeking any number of times does not affect the next consume
	test.ExpectSuccess(t, l.Peek())
	test.ExpectSuccess(t, l.Peek())
	test.ExpectSuccess(t, l.Consume())
	test.ExpectFailure(t, l.Consume())
	test.ExpectFailure(t, l.Peek())

	l.Mark()
	l.Mark()
	test.ExpectSuccess(t, l.Consume())
	test.ExpectFailure(t, l.Consume())

	l.Mark()
	l.Clear()
	test.ExpectFailure(t, l.Consume())
}

func TestElapsed(t *testing.T) {
	var e chip.Elapsed
	test.ExpectEquality(t, e.Update(clock(10)), uint64(10))
	test.ExpectEquality(t, e.Update(clock(17)), uint64(7))
	test.ExpectEquality(t, e.Update(clock(17)), uint64(0))

	e.Reset(clock(100))
	test.ExpectEquality(t, e.Update(clock(104)), uint64(4))
}

func TestScreenMemory(t *testing.T) {
	_, err := chip.NewScreenMemory(0, 10)
	test.ExpectFailure(t, err)

	scr, err := chip.NewScreenMemory(4, 3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(scr.Pixels), 12)

	scr.Fill(6)
	test.ExpectEquality(t, scr.Pixel(3, 2), uint8(6))

	scr.SetPixel(1, 1, 14)
	test.ExpectEquality(t, scr.Pixel(1, 1), uint8(14))
	test.ExpectEquality(t, scr.Pixels[5], uint8(14))

	// out of range
	scr.SetPixel(4, 0, 1)
	test.ExpectEquality(t, scr.Pixel(4, 0), uint8(0))
	test.ExpectEquality(t, scr.Pixel(0, 1), uint8(6))

	scr.FillRect(2, 1, 10, 10, 2)
	test.ExpectEquality(t, scr.Pixel(2, 1), uint8(2))
	test.ExpectEquality(t, scr.Pixel(3, 2), uint8(2))
	test.ExpectEquality(t, scr.Pixel(1, 1), uint8(14))
	test.ExpectEquality(t, scr.Pixel(3, 0), uint8(6))
}

func TestSoundMemory(t *testing.T) {
	snd := chip.NewSoundMemory(4, 44100)
	test.ExpectEquality(t, snd.Cap(), 4)

	snd.Write(1)
	snd.Write(2)
	snd.Write(3)
	test.ExpectEquality(t, snd.Len(), 3)

	p := make([]int16, 2)
	test.ExpectEquality(t, snd.Read(p), 2)
	test.ExpectEquality(t, p[0], int16(1))
	test.ExpectEquality(t, p[1], int16(2))

	// overwrite the oldest sample
	snd.Write(4)
	snd.Write(5)
	snd.Write(6)
	snd.Write(7)
	test.ExpectEquality(t, snd.Len(), 4)
	test.ExpectEquality(t, snd.Overwritten, 1)

	p = make([]int16, 10)
	test.ExpectEquality(t, snd.Read(p), 4)
	test.ExpectEquality(t, p[0], int16(4))
	test.ExpectEquality(t, p[3], int16(7))
	test.ExpectEquality(t, snd.Len(), 0)
}
