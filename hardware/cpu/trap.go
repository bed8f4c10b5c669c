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
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// Trap intercepts execution of a routine in ROM.
//
// The trap is sprung when the program counter is in the range From to To
// (inclusive) and the bytes in memory at the program counter match the
// fingerprint. The host routine is run instead of the instruction at the
// program counter. The routine is responsible for leaving the CPU in the
// correct state, including the value of the program counter.
type Trap struct {
	Name        string
	From        uint16
	To          uint16
	Fingerprint []uint8

	// the routine returns the number of cycles to charge for the trap
	Routine func(c *CPU) (int, error)

	// traps can be disabled without removing them from the CPU
	Disabled bool
}

// matches returns true if the trap should be sprung at the address.
func (t *Trap) matches(mem cpubus.DebugMemory, address uint16) bool {
	if t.Disabled || address < t.From || address > t.To {
		return false
	}
	for i, f := range t.Fingerprint {
		v, err := mem.Peek(address + uint16(i))
		if err != nil || v != f {
			return false
		}
	}
	return true
}
