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

// Package cpubus defines the interface through which the CPU accesses
// memory, along with the addresses of the 6502 family interrupt vectors.
package cpubus

// Memory defines the operations for the memory system when accessed from the
// CPU. All memory areas implement this interface because they are all
// accessible by the CPU.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DebugMemory defines the operations for accessing memory without side
// effects. Used by the disassembler, the command interface and for loading
// programs into memory.
type DebugMemory interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, data uint8) error
}

// AddressError is returned when an address cannot be accessed.
const AddressError = "cpubus: address error (%#04x)"

// Addresses of the 6502 family interrupt vectors. Each vector is two bytes,
// stored little-endian.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
	BRK   = IRQ
)
