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

// Package registers implements the three types of register found in the
// CPUs of the emulated machines: the general purpose Register, the
// StatusRegister and the ProgramCounter.
//
// Register values can be 8 or 16 bits wide. The arithmetic functions of the
// Register type operate on the low 8 bits and return the carry and overflow
// conditions, leaving the caller to decide which status flags are affected.
//
// The StatusRegister gives access to flags by name. The name of each bit is
// configured when the register is created. Flags6502 and FlagsZ80 are the
// configurations for the two CPU families in the emulation.
package registers
