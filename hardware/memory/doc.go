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

// Package memory implements the addressing model of the emulated machines.
//
// A PhysicalStorage is a raw array of bytes, either RAM or ROM. A Subset maps
// a window of one PhysicalStorage into an address range. Subsets can add side
// effects to reads and writes by overriding the ReadValue() and SetValue()
// functions. ChipRegisters and Stack are the two specialisations of Subset in
// this package.
//
// A View is one bus master's perspective of the address space: the CPU sees
// one View, the video chip of a machine may see another. At any time, at most
// one active Subset answers for any address in a View. Addresses with no
// active Subset are answered by the unconnected memory of the View.
//
// Memory owns every PhysicalStorage, Subset and View. Subsets and Views are
// referenced by the small integer handles SubsetID and ViewID. Chips hold the
// handle of their registers rather than a reference to the Subset.
//
// Bank switching chips reconfigure the memory with
// ConfigureMemoryStructure(). This should only ever happen during the
// chip's Simulate() function and never during a register write.
package memory
