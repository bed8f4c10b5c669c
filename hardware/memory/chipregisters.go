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

package memory

// ChipRegisters is a Subset that gives a chip memory mapped registers.
//
// The OnWrite hook is called after the value has been written to the storage.
// The OnRead hook is called when the CPU (or other bus master) reads from the
// registers and can change the value that is returned. Neither hook is called
// by PeekValue() or Poke().
//
// The pos argument of both hooks has been reduced to the window of the
// subset. ie. mirrors of the registers are resolved before the hook is
// called.
type ChipRegisters struct {
	BaseSubset

	OnWrite func(pos int, v uint8)
	OnRead  func(pos int, v uint8) uint8
}

// NewChipRegisters creates a ChipRegisters instance of size bytes over the
// storage at offset. The registers are mapped at origin and mirrored over
// the extent.
func NewChipRegisters(label string, storage *PhysicalStorage, offset int, size int, origin uint16, extent int) (*ChipRegisters, error) {
	r := &ChipRegisters{}
	if err := r.BaseSubset.init(label, storage, offset, size, origin, extent); err != nil {
		return nil, err
	}
	return r, nil
}

// SetValue implements the Subset interface.
func (r *ChipRegisters) SetValue(pos int, v uint8) {
	pos = r.Mirror(pos)
	r.Poke(pos, v)
	if r.OnWrite != nil {
		r.OnWrite(pos, v)
	}
}

// ReadValue implements the Subset interface.
func (r *ChipRegisters) ReadValue(pos int) uint8 {
	pos = r.Mirror(pos)
	v := r.PeekValue(pos)
	if r.OnRead != nil {
		return r.OnRead(pos, v)
	}
	return v
}

// Register returns the value of the register at pos without side effects.
// Intended for use by the owning chip.
func (r *ChipRegisters) Register(pos int) uint8 {
	return r.PeekValue(pos)
}

// SetRegister sets the value of the register at pos without side effects.
// Intended for use by the owning chip.
func (r *ChipRegisters) SetRegister(pos int, v uint8) {
	r.Poke(pos, v)
}
