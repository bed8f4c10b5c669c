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

package cpu

import (
	"fmt"
	"strings"

	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// Context is the information available to an instruction when it is executed.
type Context struct {
	Mem cpubus.Memory

	// address of the first byte of the instruction
	Address uint16

	// the bytes following the opcode (and any prefixes)
	Operands []uint8
}

// Operand8 returns the first operand byte.
func (ctx *Context) Operand8() uint8 {
	if len(ctx.Operands) == 0 {
		return 0
	}
	return ctx.Operands[0]
}

// Operand16 returns the first two operand bytes as a little-endian value.
func (ctx *Context) Operand16() uint16 {
	if len(ctx.Operands) < 2 {
		return uint16(ctx.Operand8())
	}
	return uint16(ctx.Operands[0]) | uint16(ctx.Operands[1])<<8
}

// Instruction is implemented by every entry in an instruction table.
type Instruction interface {
	// the opcode, including any prefix bytes
	Code() []uint8
	Mnemonic() string

	// the total number of bytes in the instruction, including the opcode
	Length() int

	// the base number of cycles taken by the instruction
	Cycles() int

	Defined() bool

	// Execute returns false if a hard fault has occurred (eg. stack overflow)
	Execute(ctx *Context) (bool, error)

	// the number of cycles, on top of the base number, taken by the most
	// recent call to Execute()
	AdditionalCycles() int

	// a human readable representation of the instruction with the operands
	Disassemble(operands []uint8) string
}

// ExecuteFunc performs the operation of an instruction. It returns false if a
// hard fault has occurred and the number of additional cycles taken.
type ExecuteFunc func(ctx *Context) (ok bool, additional int, err error)

// FormatFunc returns the operand part of the disassembly of an instruction.
type FormatFunc func(operands []uint8) string

// InstructionDefined is the implementation of the Instruction interface for
// instructions in an instruction table.
type InstructionDefined struct {
	code     []uint8
	mnemonic string
	length   int
	cycles   int
	exec     ExecuteFunc
	format   FormatFunc

	additional int
}

// NewInstruction creates a new InstructionDefined. The format argument can be
// nil.
func NewInstruction(code []uint8, mnemonic string, length int, cycles int, exec ExecuteFunc, format FormatFunc) *InstructionDefined {
	return &InstructionDefined{
		code:     code,
		mnemonic: mnemonic,
		length:   length,
		cycles:   cycles,
		exec:     exec,
		format:   format,
	}
}

func (ins *InstructionDefined) String() string {
	return fmt.Sprintf("%s %s", codeString(ins.code), ins.mnemonic)
}

// Code implements the Instruction interface.
func (ins *InstructionDefined) Code() []uint8 {
	return ins.code
}

// Mnemonic implements the Instruction interface.
func (ins *InstructionDefined) Mnemonic() string {
	return ins.mnemonic
}

// Length implements the Instruction interface.
func (ins *InstructionDefined) Length() int {
	return ins.length
}

// Cycles implements the Instruction interface.
func (ins *InstructionDefined) Cycles() int {
	return ins.cycles
}

// Defined implements the Instruction interface.
func (ins *InstructionDefined) Defined() bool {
	return true
}

// Execute implements the Instruction interface.
func (ins *InstructionDefined) Execute(ctx *Context) (bool, error) {
	ok, additional, err := ins.exec(ctx)
	ins.additional = additional
	return ok, err
}

// AdditionalCycles implements the Instruction interface.
func (ins *InstructionDefined) AdditionalCycles() int {
	return ins.additional
}

// Disassemble implements the Instruction interface.
func (ins *InstructionDefined) Disassemble(operands []uint8) string {
	if ins.format == nil {
		return ins.mnemonic
	}
	op := ins.format(operands)
	if op == "" {
		return ins.mnemonic
	}
	return fmt.Sprintf("%s %s", ins.mnemonic, op)
}

// InstructionUndefined is an opcode that has a prefix but no entry in the
// instruction table. It behaves as the instruction that follows the prefix,
// with the cost of the prefix added.
type InstructionUndefined struct {
	code         []uint8
	prefixCycles int

	// the instructions in the table that share the prefix
	family []Instruction

	// the instruction following the prefix
	masked Instruction
}

// NewInstructionUndefined creates an InstructionUndefined from the prefix, the
// instructions in the table that begin with the prefix and the instruction
// that the undefined instruction will execute.
func NewInstructionUndefined(prefix []uint8, prefixCycles int, family []Instruction, masked Instruction) *InstructionUndefined {
	code := make([]uint8, 0, len(prefix)+len(masked.Code()))
	code = append(code, prefix...)
	code = append(code, masked.Code()...)
	return &InstructionUndefined{
		code:         code,
		prefixCycles: prefixCycles,
		family:       family,
		masked:       masked,
	}
}

func (ins *InstructionUndefined) String() string {
	return fmt.Sprintf("%s %s", codeString(ins.code), ins.Mnemonic())
}

// Code implements the Instruction interface.
func (ins *InstructionUndefined) Code() []uint8 {
	return ins.code
}

// Mnemonic implements the Instruction interface. The mnemonic is the mnemonic
// of the executed instruction marked with an asterisk.
func (ins *InstructionUndefined) Mnemonic() string {
	return fmt.Sprintf("%s*", ins.masked.Mnemonic())
}

// Length implements the Instruction interface.
func (ins *InstructionUndefined) Length() int {
	return len(ins.code) - len(ins.masked.Code()) + ins.masked.Length()
}

// Cycles implements the Instruction interface.
func (ins *InstructionUndefined) Cycles() int {
	return ins.prefixCycles + ins.masked.Cycles()
}

// Defined implements the Instruction interface.
func (ins *InstructionUndefined) Defined() bool {
	return false
}

// Execute implements the Instruction interface.
func (ins *InstructionUndefined) Execute(ctx *Context) (bool, error) {
	return ins.masked.Execute(ctx)
}

// AdditionalCycles implements the Instruction interface.
func (ins *InstructionUndefined) AdditionalCycles() int {
	return ins.masked.AdditionalCycles()
}

// Disassemble implements the Instruction interface.
func (ins *InstructionUndefined) Disassemble(operands []uint8) string {
	return fmt.Sprintf("%s*", ins.masked.Disassemble(operands))
}

// Family returns the defined instructions that share the prefix of the
// undefined instruction.
func (ins *InstructionUndefined) Family() []Instruction {
	return ins.family
}

// Masked returns the instruction executed by the undefined instruction.
func (ins *InstructionUndefined) Masked() Instruction {
	return ins.masked
}

func codeString(code []uint8) string {
	s := strings.Builder{}
	for i, c := range code {
		if i > 0 {
			s.WriteRune(' ')
		}
		s.WriteString(fmt.Sprintf("%02x", c))
	}
	return s.String()
}
