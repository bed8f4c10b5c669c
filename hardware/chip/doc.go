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

// Package chip defines the contract between the Computer and the chips it
// simulates.
//
// A chip is polymorphic over a small number of capabilities. Every chip is
// Simulatable. A chip with registers in the address space is MemoryMapped and
// a chip that raises events for other chips is an EventSource. Concrete chips
// compose the capabilities they need:
//
//	type CIA struct {
//		regs     *memory.ChipRegisters
//		notifier notifications.Notifier
//		...
//	}
//
//	func (cia *CIA) ID() int
//	func (cia *CIA) Label() string
//	func (cia *CIA) Initialise() error
//	func (cia *CIA) Simulate(c chip.Clock) error
//	func (cia *CIA) Registers() memory.SubsetID
//	func (cia *CIA) Notifier() *notifications.Notifier
//
// The Simulate() function is called once per tick, after the CPU has
// executed an instruction. The number of cycles that have elapsed since the
// previous call is not fixed and chips must use the Elapsed type (or the
// equivalent) to advance their internal state.
//
// Effects of register writes are not applied inside the write. Instead the
// register write hook marks a Latch and the chip applies the effect in its
// next call to Simulate().
package chip
