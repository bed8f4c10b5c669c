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

package mos6502

import (
	"fmt"

	"github.com/emu8/emu8/hardware/cpu"
)

// operand is the result of decoding the addressing mode of an instruction.
type operand struct {
	mode AddressingMode

	// the effective address. not used for implied, accumulator, immediate
	// and relative addressing
	address uint16

	// the address before any indexing was applied. the "unstable" store
	// instructions use the high byte of this address
	base uint16

	// the immediate value or the branch displacement
	value uint8

	pageCrossed bool

	// address of the instruction being executed
	instruction uint16
}

// resolve the effective address of the instruction.
func (mc *CPU) resolve(defn Definition, ctx *cpu.Context) (operand, error) {
	op := operand{
		mode:        defn.AddressingMode,
		instruction: ctx.Address,
	}

	switch defn.AddressingMode {
	case Implied, Accumulator:

	case Immediate, Relative:
		op.value = ctx.Operand8()

	case ZeroPage:
		op.address = uint16(ctx.Operand8())

	case ZeroPageIndexedX:
		// indexing wraps around the zero page
		op.base = uint16(ctx.Operand8())
		op.address = uint16(ctx.Operand8() + mc.X.Byte())

	case ZeroPageIndexedY:
		op.base = uint16(ctx.Operand8())
		op.address = uint16(ctx.Operand8() + mc.Y.Byte())

	case Absolute:
		op.address = ctx.Operand16()

	case AbsoluteIndexedX:
		op.base = ctx.Operand16()
		op.address = op.base + uint16(mc.X.Byte())
		op.pageCrossed = op.base&0xff00 != op.address&0xff00

	case AbsoluteIndexedY:
		op.base = ctx.Operand16()
		op.address = op.base + uint16(mc.Y.Byte())
		op.pageCrossed = op.base&0xff00 != op.address&0xff00

	case Indirect:
		// the NMOS 6502 does not carry into the high byte of the pointer when
		// the pointer is at the end of a page
		ptr := ctx.Operand16()
		lo, err := mc.Read8Bit(ptr)
		if err != nil {
			return op, err
		}
		hi, err := mc.Read8Bit(ptr&0xff00 | uint16(uint8(ptr)+1))
		if err != nil {
			return op, err
		}
		op.address = uint16(hi)<<8 | uint16(lo)

	case IndexedIndirect:
		zp := ctx.Operand8() + mc.X.Byte()
		address, err := mc.readZeroPage16(zp)
		if err != nil {
			return op, err
		}
		op.address = address

	case IndirectIndexed:
		base, err := mc.readZeroPage16(ctx.Operand8())
		if err != nil {
			return op, err
		}
		op.base = base
		op.address = base + uint16(mc.Y.Byte())
		op.pageCrossed = op.base&0xff00 != op.address&0xff00
	}

	return op, nil
}

// readZeroPage16 reads a pointer from the zero page. the high byte of the
// pointer wraps around to the start of the zero page.
func (mc *CPU) readZeroPage16(zp uint8) (uint16, error) {
	lo, err := mc.Read8Bit(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := mc.Read8Bit(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// load the value indicated by the operand.
func (mc *CPU) load(op operand) (uint8, error) {
	switch op.mode {
	case Immediate:
		return op.value, nil
	case Accumulator:
		return mc.A.Byte(), nil
	}
	return mc.Read8Bit(op.address)
}

// store the value at the location indicated by the operand.
func (mc *CPU) store(op operand, v uint8) error {
	if op.mode == Accumulator {
		mc.A.Load(uint16(v))
		return nil
	}
	return mc.Write8Bit(op.address, v)
}

// modify performs a read-modify-write. the NMOS 6502 writes the unmodified
// value back to memory before writing the modified value.
func (mc *CPU) modify(op operand, f func(v uint8) uint8) (uint8, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}

	if op.mode != Accumulator {
		if err := mc.store(op, v); err != nil {
			return 0, err
		}
	}

	v = f(v)

	return v, mc.store(op, v)
}

// formatter returns the function used to disassemble the operands of an
// instruction with the addressing mode.
func formatter(mode AddressingMode) cpu.FormatFunc {
	switch mode {
	case Accumulator:
		return func(_ []uint8) string { return "A" }
	case Immediate:
		return func(o []uint8) string { return fmt.Sprintf("#$%02x", o[0]) }
	case Relative, ZeroPage:
		return func(o []uint8) string { return fmt.Sprintf("$%02x", o[0]) }
	case ZeroPageIndexedX:
		return func(o []uint8) string { return fmt.Sprintf("$%02x,X", o[0]) }
	case ZeroPageIndexedY:
		return func(o []uint8) string { return fmt.Sprintf("$%02x,Y", o[0]) }
	case Absolute:
		return func(o []uint8) string { return fmt.Sprintf("$%02x%02x", o[1], o[0]) }
	case AbsoluteIndexedX:
		return func(o []uint8) string { return fmt.Sprintf("$%02x%02x,X", o[1], o[0]) }
	case AbsoluteIndexedY:
		return func(o []uint8) string { return fmt.Sprintf("$%02x%02x,Y", o[1], o[0]) }
	case Indirect:
		return func(o []uint8) string { return fmt.Sprintf("($%02x%02x)", o[1], o[0]) }
	case IndexedIndirect:
		return func(o []uint8) string { return fmt.Sprintf("($%02x,X)", o[0]) }
	case IndirectIndexed:
		return func(o []uint8) string { return fmt.Sprintf("($%02x),Y", o[0]) }
	}
	return nil
}
