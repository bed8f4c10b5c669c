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

// Package bits implements the fixed width value types used by the registers
// and memory of the emulated hardware.
//
// UByte is a single byte. UBytes is a sequence of bytes, most significant
// byte first, with bit level access and shift/rotate operations that return
// the bit shifted out (suitable for assigning to a carry flag). The length of
// a UBytes value never changes except through the Resize() function.
//
// UInt is the numeric interpretation of a UBytes value. The interpretation is
// unsigned, two's complement or packed BCD, according to the Format.
//
// Address is a fixed width UBytes with wrap-around arithmetic. Addresses can
// be constructed from big-endian or little-endian byte sequences.
package bits
