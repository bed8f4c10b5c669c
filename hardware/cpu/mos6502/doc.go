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

// Package mos6502 emulates the NMOS 6502 family of microprocessors. The 6510
// in the Commodore 64 and the 7501/8501 in the Commodore 264 machines share
// the instruction set and the interrupt model; they differ only in the I/O
// port built onto the chip, which is emulated by the machine packages.
//
// The CPU type embeds the cpu.CPU type and adds the A, X, Y and SP registers,
// and the NMI and IRQ interrupt lines. Instructions are built from the
// Definitions table. The table includes the undocumented opcodes of the NMOS
// chips, including the KIL opcodes which stop the CPU until it is reset.
//
// The stack is a memory.Stack over page one of RAM. Unlike the real chip the
// stack pointer does not wrap around the page. A push or pull beyond the
// stack page is a hard fault and the CPU will not execute further
// instructions.
//
// Interrupts are served at the start of a call to Execute(). The IRQ line is
// level triggered and is only served when the interrupt disable flag is
// clear. The NMI line is edge triggered and cannot be disabled.
package mos6502
