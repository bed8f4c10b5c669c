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

// Package z80 emulates the Zilog Z80 microprocessor as used in the ZX
// Spectrum.
//
// The instruction set is built from the opcode fields of the instruction
// byte rather than from a fixed table. The DD and FD prefixed tables only
// contain the instructions that refer to HL, H, L or (HL); any other opcode
// following one of those prefixes is executed as though the prefix was not
// there, with the cost of the prefix added. The holes in the ED table are two
// byte NOPs.
//
// The I/O address space is reached through the cpu.PortBus interface. The
// full 16 bit port address is presented to the bus: IN A,(n) and OUT (n),A
// put the accumulator on the top half of the address bus.
//
// All three interrupt modes are supported. In mode 0 the only instruction
// that can be placed on the data bus is RST. The R register is incremented
// for every opcode fetch, including prefixes, and for every interrupt
// acknowledge.
package z80
