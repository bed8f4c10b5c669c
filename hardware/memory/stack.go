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

// Stack is a Subset with push and pull operations.
//
// A stack that grows from the back of the subset starts at the highest
// position and moves towards position zero when values are pushed. A stack
// that points to empty has its pointer at the position of the next push;
// otherwise the pointer is at the most recently pushed value.
//
// Accessing a position outside of the subset sets the overflow flag. The flag is
// sticky: while it is set Push() and Pull() do nothing. Only Initialise()
// clears the flag.
type Stack struct {
	BaseSubset

	fromBack     bool
	pointToEmpty bool

	pointer  int
	overflow bool
}

// NewStack is the preferred method of initialisation for the Stack type.
func NewStack(label string, storage *PhysicalStorage, offset int, size int, origin uint16, fromBack bool, pointToEmpty bool) (*Stack, error) {
	s := &Stack{
		fromBack:     fromBack,
		pointToEmpty: pointToEmpty,
	}
	if err := s.BaseSubset.init(label, storage, offset, size, origin, 0); err != nil {
		return nil, err
	}
	s.Initialise()
	return s, nil
}

// Initialise the stack pointer and clear the overflow flag.
func (s *Stack) Initialise() {
	s.overflow = false
	switch {
	case s.fromBack && s.pointToEmpty:
		s.pointer = s.size - 1
	case s.fromBack:
		s.pointer = s.size
	case s.pointToEmpty:
		s.pointer = 0
	default:
		s.pointer = -1
	}
}

// Overflow returns true if the stack has overflowed (or underflowed).
func (s *Stack) Overflow() bool {
	return s.overflow
}

// Pointer returns the current position of the stack pointer.
func (s *Stack) Pointer() int {
	return s.pointer
}

// SetPointer sets the stack pointer. The pointer can be one position beyond
// either end of the subset. Positions further out are ignored.
func (s *Stack) SetPointer(p int) {
	if p < -1 || p > s.size {
		return
	}
	s.pointer = p
}

// direction of a push
func (s *Stack) step() int {
	if s.fromBack {
		return -1
	}
	return 1
}

func (s *Stack) inRange(p int) bool {
	return p >= 0 && p < s.size
}

// Push a value onto the stack.
func (s *Stack) Push(v uint8) {
	if s.overflow {
		return
	}

	access := s.pointer + s.step()
	next := access
	if s.pointToEmpty {
		access = s.pointer
	}

	if !s.inRange(access) {
		s.overflow = true
		return
	}

	s.SetValue(access, v)
	s.pointer = next
}

// Pull a value from the stack. Returns zero if the stack has overflowed.
func (s *Stack) Pull() uint8 {
	if s.overflow {
		return 0
	}

	access := s.pointer
	next := s.pointer - s.step()
	if s.pointToEmpty {
		access = next
	}

	if !s.inRange(access) {
		s.overflow = true
		return 0
	}

	v := s.ReadValue(access)
	s.pointer = next

	return v
}
