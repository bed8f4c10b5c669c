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

// Package cpu contains the parts of the CPU emulation that are common to every
// CPU architecture in the emulation. The concrete CPUs are in the mos6502 and
// z80 sub-packages.
//
// An Instruction is an object in the instruction table of a CPU. Executing an
// instruction performs the operation and reports any additional cycles (for
// example, a branch that is taken) through the AdditionalCycles() function.
// The table entry implementation is InstructionDefined. InstructionUndefined
// represents a prefixed opcode with no entry in the table. It executes the
// instruction obtained by removing the prefix, which is how the undocumented
// opcodes of the Z80 behave.
//
// The CPU type is the fetch-decode-execute loop, with the register file,
// the program counter, the status register, the interrupt table and the
// list of traps. The ClockCycles() function is the clock of the emulation
// and is used by every chip to calculate the number of cycles that have
// elapsed since the chip was last simulated.
//
// Interrupts are polled once per call to Execute(). If an interrupt is served
// then no instruction is executed for that call.
//
// A Trap intercepts execution at a known routine in ROM. If the program
// counter is in the range of the trap and the memory at the program counter
// matches the fingerprint of the trap, the host routine of the trap is run
// instead of the emulated code.
//
// Hard faults are sticky. Once Faulted() returns true the CPU will not execute
// any more instructions until it is initialised again.
package cpu
