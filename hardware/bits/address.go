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

// Address is a fixed width value representing a memory location.
// Arithmetic wraps modulo the size of the address space.
type Address struct {
	bytes UBytes
}

// NewAddressBigEndian creates an address from a sequence of bytes, most
// significant byte first. The width of the address is the length of the
// sequence.
func NewAddressBigEndian(data []uint8) Address {
	return Address{bytes: UBytesFromBytes(data)}
}

// NewAddressLittleEndian creates an address from a sequence of bytes, least
// significant byte first. This is the order in which the 6502 and Z80 store
// addresses in memory.
func NewAddressLittleEndian(data []uint8) Address {
	b := make(UBytes, len(data))
	for i := range data {
		b[len(data)-1-i] = UByte(data[i])
	}
	return Address{bytes: b}
}

// AddressFromValue creates an address of the specified width (in bytes).
func AddressFromValue(v uint64, width int) Address {
	return Address{bytes: UBytesFromValue(v, width)}
}

// Address16 creates a two byte address. The most common address width.
func Address16(v uint16) Address {
	return AddressFromValue(uint64(v), 2)
}

func (a Address) String() string {
	return fmt.Sprintf("$%s", a.bytes.String())
}

// Width returns the width of the address in bytes.
func (a Address) Width() int {
	return a.bytes.Size()
}

// Value returns the numeric value of the address.
func (a Address) Value() uint64 {
	return a.bytes.Value()
}

// Uint16 returns the value of the address as a uint16. Wider addresses are
// truncated.
func (a Address) Uint16() uint16 {
	return uint16(a.bytes.Value())
}

// AsUInt returns the unsigned numeric interpretation of the address.
func (a Address) AsUInt() UInt {
	return NewUInt(a.bytes, Unsigned)
}

// BigEndian returns the address bytes, most significant first.
func (a Address) BigEndian() []uint8 {
	return a.bytes.Bytes()
}

// LittleEndian returns the address bytes, least significant first.
func (a Address) LittleEndian() []uint8 {
	b := a.bytes.Bytes()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// mask for the address space
func (a Address) mask() uint64 {
	if a.bytes.Bits() >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << a.bytes.Bits()) - 1
}

// Add returns a new address offset by n. The result wraps around the address
// space.
func (a Address) Add(n int) Address {
	v := (a.Value() + uint64(int64(n))) & a.mask()
	return AddressFromValue(v, a.Width())
}

// Next returns the address following this one.
func (a Address) Next() Address {
	return a.Add(1)
}

// Previous returns the address preceding this one.
func (a Address) Previous() Address {
	return a.Add(-1)
}

// Equal returns true if the addresses have the same width and value.
func (a Address) Equal(b Address) bool {
	return a.bytes.Equal(b.bytes)
}

// InRange returns true if the address lies in the inclusive range from and to.
func (a Address) InRange(from Address, to Address) bool {
	v := a.Value()
	return v >= from.Value() && v <= to.Value()
}
