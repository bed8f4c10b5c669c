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

// Package bytecode is the boundary between memory and a program listing.
// A ByteCode is a list of Lines, each line being the bytes of one
// instruction (or one run of data) at an address.
//
// Load() writes a ByteCode into memory and Decompile() produces a ByteCode
// from memory, using the instruction table of a CPU to find the instruction
// boundaries.
package bytecode

import (
	"fmt"
	"io"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// Sentinal error patterns.
const (
	LoadError      = "bytecode: load: %v"
	DecompileError = "bytecode: decompile: %v"
)

// Line is a single line of ByteCode.
type Line struct {
	Address uint16
	Bytes   []uint8

	// optional label for the address
	Label string

	// the disassembly of the bytes. empty for data lines
	Instruction string
}

func (l Line) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%04x ", l.Address))
	for i := 0; i < 4; i++ {
		if i < len(l.Bytes) {
			s.WriteString(fmt.Sprintf("%02x ", l.Bytes[i]))
		} else {
			s.WriteString("   ")
		}
	}
	if l.Label != "" {
		s.WriteString(l.Label)
		s.WriteString(": ")
	}
	if l.Instruction != "" {
		s.WriteString(l.Instruction)
	} else {
		s.WriteString("db")
	}
	return strings.TrimRight(s.String(), " ")
}

// ByteCode is a list of Lines in address order.
type ByteCode []Line

// Write the ByteCode as a listing, one line per entry.
func (bc ByteCode) Write(w io.Writer) error {
	for _, l := range bc {
		if _, err := io.WriteString(w, l.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the total number of bytes in the ByteCode.
func (bc ByteCode) Size() int {
	n := 0
	for _, l := range bc {
		n += len(l.Bytes)
	}
	return n
}

// Load the ByteCode into memory. Memory is written with Poke() and so ROM
// areas are written to and no side effects are triggered.
func Load(mem cpubus.DebugMemory, bc ByteCode) error {
	for _, l := range bc {
		for i, b := range l.Bytes {
			if err := mem.Poke(l.Address+uint16(i), b); err != nil {
				return curated.Errorf(LoadError, err)
			}
		}
	}
	return nil
}

// Decompile the memory between the from and to addresses (inclusive) using
// the instruction set. Bytes that do not decode to an instruction are
// placed on a data line of their own.
//
// An instruction that straddles the to address is included in full.
func Decompile(mem cpubus.DebugMemory, set *cpu.InstructionSet, from uint16, to uint16) (ByteCode, error) {
	if to < from {
		return nil, curated.Errorf(DecompileError, fmt.Sprintf("range %#04x to %#04x is reversed", from, to))
	}

	var bc ByteCode

	address := uint32(from)
	for address <= uint32(to) {
		a := uint16(address)

		ins, err := set.Decode(func(offset int) (uint8, error) {
			return mem.Peek(a + uint16(offset))
		})

		if err != nil {
			if curated.Is(err, cpu.UnknownOpcode) {
				b, err := mem.Peek(a)
				if err != nil {
					return nil, curated.Errorf(DecompileError, err)
				}
				bc = append(bc, Line{Address: a, Bytes: []uint8{b}})
				address++
				continue
			}
			return nil, curated.Errorf(DecompileError, err)
		}

		l := Line{
			Address: a,
			Bytes:   make([]uint8, ins.Length()),
		}
		for i := range l.Bytes {
			l.Bytes[i], err = mem.Peek(a + uint16(i))
			if err != nil {
				return nil, curated.Errorf(DecompileError, err)
			}
		}
		l.Instruction = ins.Disassemble(l.Bytes[len(ins.Code()):])

		bc = append(bc, l)
		address += uint32(ins.Length())
	}

	return bc, nil
}
