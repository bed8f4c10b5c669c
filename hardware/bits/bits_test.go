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

package bits_test

import (
	"testing"

	"github.com/emu8/emu8/hardware/bits"
	"github.com/emu8/emu8/test"
)

func TestUByte(t *testing.T) {
	b := bits.UByte(0x81)
	test.ExpectSuccess(t, b.Bit(0))
	test.ExpectSuccess(t, b.Bit(7))
	test.ExpectFailure(t, b.Bit(1))
	test.ExpectEquality(t, b.SetBit(1, true), bits.UByte(0x83))
	test.ExpectEquality(t, b.SetBit(7, false), bits.UByte(0x01))

	v, c := b.ShiftLeftC(false)
	test.ExpectEquality(t, v, bits.UByte(0x02))
	test.ExpectSuccess(t, c)

	v, c = b.ShiftRightC(true)
	test.ExpectEquality(t, v, bits.UByte(0xc0))
	test.ExpectSuccess(t, c)

	v, c = bits.UByte(0x80).RotateLeftC()
	test.ExpectEquality(t, v, bits.UByte(0x01))
	test.ExpectSuccess(t, c)

	v, c = bits.UByte(0x02).RotateRightC()
	test.ExpectEquality(t, v, bits.UByte(0x01))
	test.ExpectFailure(t, c)

	test.ExpectSuccess(t, bits.UByte(0x03).Parity())
	test.ExpectFailure(t, bits.UByte(0x07).Parity())
}

func TestUBytesBitIndex(t *testing.T) {
	b := bits.UBytesFromValue(0x0100, 2)

	// bit 8 is the least significant bit of the first (most significant) byte
	test.ExpectSuccess(t, b.Bit(8))
	test.ExpectEquality(t, b[0], bits.UByte(0x01))

	b.SetBit(0, true)
	test.ExpectEquality(t, b.Value(), uint64(0x0101))

	b.SetBit(15, true)
	test.ExpectSuccess(t, b.Negative())
	test.ExpectEquality(t, b.String(), "8101")

	// out of range bits are ignored
	b.SetBit(16, true)
	test.ExpectFailure(t, b.Bit(16))
	test.ExpectEquality(t, b.Size(), 2)
}

func TestUBytesShift(t *testing.T) {
	b := bits.UBytesFromValue(0x80ff, 2)

	c := b.ShiftLeftC(false)
	test.ExpectSuccess(t, c)
	test.ExpectEquality(t, b.Value(), uint64(0x01fe))

	c = b.ShiftRightC(true)
	test.ExpectFailure(t, c)
	test.ExpectEquality(t, b.Value(), uint64(0x80ff))

	c = b.RotateRightC()
	test.ExpectSuccess(t, c)
	test.ExpectEquality(t, b.Value(), uint64(0xc07f))

	c = b.RotateLeftC()
	test.ExpectSuccess(t, c)
	test.ExpectEquality(t, b.Value(), uint64(0x80ff))
}

func TestUBytesResize(t *testing.T) {
	b := bits.UBytesFromValue(0x1234, 2)

	r := b.Resize(1)
	test.ExpectEquality(t, r.Size(), 1)
	test.ExpectEquality(t, r.Value(), uint64(0x34))

	r = b.Resize(3)
	test.ExpectEquality(t, r.Size(), 3)
	test.ExpectEquality(t, r.Value(), uint64(0x1234))

	// original is unchanged
	test.ExpectEquality(t, b.Size(), 2)
}

func TestUInt(t *testing.T) {
	u := bits.NewUInt(bits.UBytes{0xfe}, bits.Signed)
	test.ExpectEquality(t, u.Value(), int64(-2))
	test.ExpectEquality(t, u.Unsigned(), uint64(0xfe))

	u = bits.NewUInt(bits.UBytes{0x7f}, bits.Signed)
	test.ExpectEquality(t, u.Value(), int64(127))

	u = bits.NewUInt(bits.UBytes{0x12, 0x34}, bits.PackedBCD)
	test.ExpectEquality(t, u.Value(), int64(1234))

	u = bits.UIntFromValue(99, 1, bits.PackedBCD)
	test.ExpectEquality(t, u.Unsigned(), uint64(0x99))

	u = bits.UIntFromValue(-128, 1, bits.Signed)
	test.ExpectEquality(t, u.Unsigned(), uint64(0x80))

	// conversion preserves the numeric value
	u = bits.NewUInt(bits.UBytes{0x00, 0x2a}, bits.Unsigned).Convert(bits.PackedBCD)
	test.ExpectEquality(t, u.Unsigned(), uint64(0x42))
	test.ExpectEquality(t, u.Value(), int64(42))
}

func TestEndiannessRoundTrip(t *testing.T) {
	for hi := 0; hi <= 0xff; hi++ {
		for lo := 0; lo <= 0xff; lo++ {
			b := bits.NewAddressBigEndian([]uint8{uint8(hi), uint8(lo)})
			l := bits.NewAddressLittleEndian([]uint8{uint8(lo), uint8(hi)})
			test.DemandEquality(t, b.AsUInt().Value(), l.AsUInt().Value())
			test.DemandEquality(t, b.Uint16(), uint16(hi<<8|lo))
		}
	}

	a := bits.Address16(0x1234)
	test.ExpectEquality(t, a.LittleEndian()[0], uint8(0x34))
	test.ExpectEquality(t, a.BigEndian()[0], uint8(0x12))
}

func TestAddressWrap(t *testing.T) {
	a := bits.Address16(0xffff)
	test.ExpectEquality(t, a.Next().Uint16(), uint16(0x0000))
	test.ExpectEquality(t, a.Next().Previous().Uint16(), uint16(0xffff))
	test.ExpectEquality(t, bits.Address16(0x0000).Previous().Uint16(), uint16(0xffff))
	test.ExpectEquality(t, bits.Address16(0xfff0).Add(0x20).Uint16(), uint16(0x0010))
	test.ExpectEquality(t, bits.Address16(0x0010).Add(-0x20).Uint16(), uint16(0xfff0))

	// a one byte address space
	b := bits.AddressFromValue(0xff, 1)
	test.ExpectEquality(t, b.Next().Value(), uint64(0))
	test.ExpectEquality(t, b.String(), "$ff")

	test.ExpectSuccess(t, bits.Address16(0xc000).InRange(bits.Address16(0xa000), bits.Address16(0xffff)))
}
