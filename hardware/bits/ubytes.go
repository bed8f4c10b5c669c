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

package bits

import (
	"fmt"
	"strings"
)

// UBytes is a sequence of bytes, most significant byte first.
type UBytes []UByte

// NewUBytes returns a zeroed UBytes value of the specified size.
func NewUBytes(size int) UBytes {
	return make(UBytes, size)
}

// UBytesFromValue returns a UBytes value of the specified size holding the
// least significant bytes of v.
func UBytesFromValue(v uint64, size int) UBytes {
	b := make(UBytes, size)
	for i := size - 1; i >= 0; i-- {
		b[i] = UByte(v)
		v >>= 8
	}
	return b
}

// UBytesFromBytes returns a copy of data as a UBytes value. The first byte in
// data is the most significant.
func UBytesFromBytes(data []uint8) UBytes {
	b := make(UBytes, len(data))
	for i := range data {
		b[i] = UByte(data[i])
	}
	return b
}

func (b UBytes) String() string {
	s := strings.Builder{}
	for _, v := range b {
		s.WriteString(fmt.Sprintf("%02x", uint8(v)))
	}
	return s.String()
}

// Size returns the number of bytes.
func (b UBytes) Size() int {
	return len(b)
}

// Bits returns the number of bits.
func (b UBytes) Bits() int {
	return len(b) * 8
}

// Copy returns a new UBytes value with the same contents.
func (b UBytes) Copy() UBytes {
	c := make(UBytes, len(b))
	copy(c, b)
	return c
}

// Equal returns true if both values are the same size and have the same
// contents.
func (b UBytes) Equal(c UBytes) bool {
	if len(b) != len(c) {
		return false
	}
	for i := range b {
		if b[i] != c[i] {
			return false
		}
	}
	return true
}

// Resize returns a new UBytes value of the specified size. The least
// significant bytes are preserved; bytes are added or removed at the most
// significant end.
func (b UBytes) Resize(size int) UBytes {
	c := make(UBytes, size)
	for i := 1; i <= size && i <= len(b); i++ {
		c[size-i] = b[len(b)-i]
	}
	return c
}

// Value returns the unsigned value of the bytes. Values wider than 64 bits are
// truncated.
func (b UBytes) Value() uint64 {
	var v uint64
	for _, x := range b {
		v = (v << 8) | uint64(x)
	}
	return v
}

// SetValue sets the contents to the least significant bytes of v.
func (b UBytes) SetValue(v uint64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = UByte(v)
		v >>= 8
	}
}

// Bytes returns the contents as a slice of uint8, most significant first.
func (b UBytes) Bytes() []uint8 {
	c := make([]uint8, len(b))
	for i := range b {
		c[i] = uint8(b[i])
	}
	return c
}

// position of bit p. bit zero is the least significant bit of the last byte
func (b UBytes) position(p int) (int, int) {
	return len(b) - 1 - (p / 8), p % 8
}

// Bit returns the state of bit p. Bit zero is the least significant bit of
// the value. Returns false if p is out of range.
func (b UBytes) Bit(p int) bool {
	if p < 0 || p >= b.Bits() {
		return false
	}
	i, o := b.position(p)
	return b[i].Bit(o)
}

// SetBit sets bit p to v. Does nothing if p is out of range.
func (b UBytes) SetBit(p int, v bool) {
	if p < 0 || p >= b.Bits() {
		return
	}
	i, o := b.position(p)
	b[i] = b[i].SetBit(o, v)
}

// Negative returns the state of the most significant bit.
func (b UBytes) Negative() bool {
	return b.Bit(b.Bits() - 1)
}

// Zero returns true if all bits are clear.
func (b UBytes) Zero() bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// ShiftLeftC shifts the entire value left by one bit, in place. The carry
// argument is shifted into bit 0 and the bit shifted out of the most
// significant bit is returned.
func (b UBytes) ShiftLeftC(carry bool) bool {
	for i := len(b) - 1; i >= 0; i-- {
		b[i], carry = b[i].ShiftLeftC(carry)
	}
	return carry
}

// ShiftRightC shifts the entire value right by one bit, in place. The carry
// argument is shifted into the most significant bit and the bit shifted out
// of bit 0 is returned.
func (b UBytes) ShiftRightC(carry bool) bool {
	for i := range b {
		b[i], carry = b[i].ShiftRightC(carry)
	}
	return carry
}

// RotateLeftC rotates the entire value left by one bit, in place. The most
// significant bit moves to bit 0 and is also returned.
func (b UBytes) RotateLeftC() bool {
	return b.ShiftLeftC(b.Negative())
}

// RotateRightC rotates the entire value right by one bit, in place. Bit 0
// moves to the most significant bit and is also returned.
func (b UBytes) RotateRightC() bool {
	return b.ShiftRightC(b.Bit(0))
}
