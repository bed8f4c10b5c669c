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

import "fmt"

// UByte is an 8 bit value.
type UByte uint8

func (b UByte) String() string {
	return fmt.Sprintf("%02x", uint8(b))
}

// Bit returns the state of bit p. Bit zero is the least significant bit.
func (b UByte) Bit(p int) bool {
	return b&(0x01<<(p&0x07)) != 0
}

// SetBit returns a copy of the value with bit p set to v.
func (b UByte) SetBit(p int, v bool) UByte {
	if v {
		return b | (0x01 << (p & 0x07))
	}
	return b &^ (0x01 << (p & 0x07))
}

// LowNibble returns the value of bits 0 to 3.
func (b UByte) LowNibble() UByte {
	return b & 0x0f
}

// HighNibble returns the value of bits 4 to 7 shifted into bits 0 to 3.
func (b UByte) HighNibble() UByte {
	return b >> 4
}

// Parity returns true if the number of set bits is even.
func (b UByte) Parity() bool {
	v := b
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&0x01 == 0
}

// ShiftLeftC shifts the value left by one bit. The carry argument is shifted
// into bit 0 and the bit shifted out of bit 7 is returned.
func (b UByte) ShiftLeftC(carry bool) (UByte, bool) {
	out := b&0x80 == 0x80
	b <<= 1
	if carry {
		b |= 0x01
	}
	return b, out
}

// ShiftRightC shifts the value right by one bit. The carry argument is
// shifted into bit 7 and the bit shifted out of bit 0 is returned.
func (b UByte) ShiftRightC(carry bool) (UByte, bool) {
	out := b&0x01 == 0x01
	b >>= 1
	if carry {
		b |= 0x80
	}
	return b, out
}

// RotateLeftC rotates the value left. Bit 7 moves to bit 0 and is also
// returned.
func (b UByte) RotateLeftC() (UByte, bool) {
	return b.ShiftLeftC(b&0x80 == 0x80)
}

// RotateRightC rotates the value right. Bit 0 moves to bit 7 and is also
// returned.
func (b UByte) RotateRightC() (UByte, bool) {
	return b.ShiftRightC(b&0x01 == 0x01)
}
