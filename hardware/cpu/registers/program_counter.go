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

package registers

import (
	"fmt"

	"github.com/emu8/emu8/hardware/bits"
)

// ProgramCounter represents the PC register of the CPU. Arithmetic wraps
// around the 16 bit address space.
type ProgramCounter struct {
	value uint16
}

// NewProgramCounter is the preferred method of initialisation for the
// ProgramCounter type.
func NewProgramCounter(val uint16) *ProgramCounter {
	return &ProgramCounter{value: val}
}

// Label returns the canonical name of the program counter.
func (pc *ProgramCounter) Label() string {
	return "PC"
}

func (pc *ProgramCounter) String() string {
	return fmt.Sprintf("%04x", pc.value)
}

// Value returns the current value of the PC as a uint16.
func (pc *ProgramCounter) Value() uint16 {
	return pc.value
}

// Address returns the current value of the PC as an Address.
func (pc *ProgramCounter) Address() bits.Address {
	return bits.Address16(pc.value)
}

// Load a value into the PC.
func (pc *ProgramCounter) Load(val uint16) {
	pc.value = val
}

// LoadAddress loads an Address into the PC.
func (pc *ProgramCounter) LoadAddress(a bits.Address) {
	pc.value = a.Uint16()
}

// Add a signed value to the PC. Returns true if the result is in a different
// 256 byte page to the original value.
func (pc *ProgramCounter) Add(val int) (pageCrossed bool) {
	v := pc.value
	pc.value = uint16(int(pc.value) + val)
	return v&0xff00 != pc.value&0xff00
}

// Increment the PC by one.
func (pc *ProgramCounter) Increment() {
	pc.value++
}

// Displace the PC by the signed 8 bit displacement of a relative branch
// instruction. Returns true if a page boundary was crossed.
func (pc *ProgramCounter) Displace(operand uint8) (pageCrossed bool) {
	d := bits.NewUInt(bits.UBytes{bits.UByte(operand)}, bits.Signed)
	return pc.Add(int(d.Value()))
}
