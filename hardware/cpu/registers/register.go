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

package registers

import (
	"fmt"

	"github.com/emu8/emu8/hardware/bits"
)

// Register is a named storage cell of the CPU.
type Register struct {
	id    int
	label string
	size  int
	mask  uint16
	value uint16
}

// NewRegister is the preferred method of initialisation for Register. The size
// of the register is in bytes and must be one or two.
func NewRegister(id int, label string, size int) *Register {
	r := &Register{
		id:    id,
		label: label,
		size:  size,
		mask:  0xff,
	}
	if size > 1 {
		r.size = 2
		r.mask = 0xffff
	}
	return r
}

func (r *Register) String() string {
	if r.size == 1 {
		return fmt.Sprintf("%s=%02x", r.label, r.value)
	}
	return fmt.Sprintf("%s=%04x", r.label, r.value)
}

// ID returns the identifier of the register. Identifiers are unique within a
// CPU.
func (r *Register) ID() int {
	return r.id
}

// Label returns the name of the register.
func (r *Register) Label() string {
	return r.label
}

// Size returns the width of the register in bytes.
func (r *Register) Size() int {
	return r.size
}

// Value returns the value of the register.
func (r *Register) Value() uint16 {
	return r.value
}

// Byte returns the low 8 bits of the register.
func (r *Register) Byte() uint8 {
	return uint8(r.value)
}

// High returns the high byte of a 16 bit register.
func (r *Register) High() uint8 {
	return uint8(r.value >> 8)
}

// Low returns the low byte of a 16 bit register. Same as Byte().
func (r *Register) Low() uint8 {
	return uint8(r.value)
}

// UBytes returns the register value as a UBytes value of the register's size.
func (r *Register) UBytes() bits.UBytes {
	return bits.UBytesFromValue(uint64(r.value), r.size)
}

// IsNegative returns true if the most significant bit of the value is set.
func (r *Register) IsNegative() bool {
	if r.size == 1 {
		return r.value&0x80 == 0x80
	}
	return r.value&0x8000 == 0x8000
}

// IsZero returns true if the value is zero.
func (r *Register) IsZero() bool {
	return r.value == 0
}

// IsBitV returns the state of bit 6. Used by the 6502 BIT instruction.
func (r *Register) IsBitV() bool {
	return r.value&0x40 == 0x40
}

// Load a new value into the register. The value is masked to the size of the
// register.
func (r *Register) Load(val uint16) {
	r.value = val & r.mask
}

// LoadHigh sets the high byte of a 16 bit register.
func (r *Register) LoadHigh(val uint8) {
	r.value = (r.value & 0x00ff) | (uint16(val) << 8)
	r.value &= r.mask
}

// LoadLow sets the low byte of the register.
func (r *Register) LoadLow(val uint8) {
	r.value = (r.value & 0xff00) | uint16(val)
}

// LoadUBytes sets the register from a UBytes value. Only the least
// significant bytes that fit the register are used.
func (r *Register) LoadUBytes(b bits.UBytes) {
	r.Load(uint16(b.Value()))
}

// Increment the register by one, wrapping around on overflow.
func (r *Register) Increment() {
	r.value = (r.value + 1) & r.mask
}

// Decrement the register by one, wrapping around on underflow.
func (r *Register) Decrement() {
	r.value = (r.value - 1) & r.mask
}

// Add value to the low 8 bits of the register, with carry. Returns the carry
// out of bit 7 and the signed overflow condition.
func (r *Register) Add(val uint8, carry bool) (rcarry bool, overflow bool) {
	v := uint8(r.value)

	sum := uint16(v) + uint16(val)
	if carry {
		sum++
	}
	res := uint8(sum)
	r.LoadLow(res)

	// overflow detection from Ken Shirriff's blog: "The 6502 overflow flag
	// explained mathematically"
	overflow = ((v ^ res) & (val ^ res) & 0x80) != 0

	return sum > 0xff, overflow
}

// Subtract value from the low 8 bits of the register. The carry argument is
// the 6502 style inverted borrow: a set carry means no borrow. The returned
// carry follows the same convention.
func (r *Register) Subtract(val uint8, carry bool) (rcarry bool, overflow bool) {
	return r.Add(^val, carry)
}

// AND the low 8 bits of the register with val.
func (r *Register) AND(val uint8) {
	r.LoadLow(uint8(r.value) & val)
}

// ORA the low 8 bits of the register with val.
func (r *Register) ORA(val uint8) {
	r.LoadLow(uint8(r.value) | val)
}

// EOR the low 8 bits of the register with val.
func (r *Register) EOR(val uint8) {
	r.LoadLow(uint8(r.value) ^ val)
}

// ASL shifts the low 8 bits left. Bit 0 is cleared and bit 7 is returned.
func (r *Register) ASL() bool {
	v, c := bits.UByte(r.value).ShiftLeftC(false)
	r.LoadLow(uint8(v))
	return c
}

// LSR shifts the low 8 bits right. Bit 7 is cleared and bit 0 is returned.
func (r *Register) LSR() bool {
	v, c := bits.UByte(r.value).ShiftRightC(false)
	r.LoadLow(uint8(v))
	return c
}

// ROL rotates the low 8 bits left through the carry.
func (r *Register) ROL(carry bool) bool {
	v, c := bits.UByte(r.value).ShiftLeftC(carry)
	r.LoadLow(uint8(v))
	return c
}

// ROR rotates the low 8 bits right through the carry.
func (r *Register) ROR(carry bool) bool {
	v, c := bits.UByte(r.value).ShiftRightC(carry)
	r.LoadLow(uint8(v))
	return c
}
