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

package signal_test

import (
	"testing"

	"github.com/emu8/emu8/hardware/signal"
	"github.com/emu8/emu8/test"
)

func TestWire(t *testing.T) {
	w := signal.NewWire("cnt", false)

	var calls []bool
	w.Connect(func(level bool) { calls = append(calls, level) })

	w.Set(true)
	test.ExpectSuccess(t, w.PositiveEdge())
	test.ExpectFailure(t, w.NegativeEdge())
	test.ExpectEquality(t, w.String(), "cnt=high")

	// no change. no edge
	w.Set(true)
	test.ExpectFailure(t, w.PositiveEdge())
	test.ExpectFailure(t, w.NegativeEdge())

	w.Set(false)
	test.ExpectSuccess(t, w.NegativeEdge())

	test.DemandEquality(t, len(calls), 2)
	test.ExpectSuccess(t, calls[0])
	test.ExpectFailure(t, calls[1])
}

func TestBus(t *testing.T) {
	b := signal.NewBus[uint8]("pa", 0xf0)

	var got []uint8
	b.Connect(func(v uint8) { got = append(got, v) })
	b.Connect(func(v uint8) { got = append(got, v^0xff) })

	b.Set(0x3c)
	test.ExpectEquality(t, b.Value(), uint8(0x3c))
	test.ExpectEquality(t, b.Changed(), uint8(0xcc))
	test.ExpectEquality(t, b.PositiveEdges(), uint8(0x0c))
	test.ExpectEquality(t, b.NegativeEdges(), uint8(0xc0))

	// listeners are called in the order they were connected
	test.DemandEquality(t, len(got), 2)
	test.ExpectEquality(t, got[0], uint8(0x3c))
	test.ExpectEquality(t, got[1], uint8(0xc3))

	b.SetMasked(0xff, 0x03)
	test.ExpectEquality(t, b.Value(), uint8(0x3f))

	b.Set(0x3f)
	test.ExpectEquality(t, b.Changed(), uint8(0x00))
	test.ExpectEquality(t, len(got), 4)
}

func TestMicroprocessorBus(t *testing.T) {
	mb := signal.NewMicroprocessorBus()
	test.ExpectSuccess(t, mb.IRQ.Level())

	mb.Address.Set(0xd020)
	mb.Data.Set(0x41)
	mb.RW.Set(false)
	test.ExpectEquality(t, mb.String(), "address=0xd020 data=0x41 rw=low irq=high nmi=high reset=high")
}
