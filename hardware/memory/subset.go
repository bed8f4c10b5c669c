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

import (
	"fmt"

	"github.com/emu8/emu8/curated"
)

// SubsetID is the handle of a Subset in the Memory arena.
type SubsetID int

// NoSubset is the SubsetID of a Subset that has not been added to a Memory.
const NoSubset SubsetID = -1

// SubsetOutOfRange is returned when a Subset's window does not fit inside its
// PhysicalStorage.
const SubsetOutOfRange = "memory: subset %s [%d:%d] does not fit storage %s"

// Subset is a window onto a PhysicalStorage mapped into an address range.
//
// The pos argument of SetValue(), ReadValue() and PeekValue() is relative to
// the origin of the subset. ReadValue() and SetValue() are the functions
// called by the CPU and other bus masters and may have side effects.
// PeekValue() and Poke() never have side effects.
//
// Subset implementations must embed BaseSubset.
type Subset interface {
	ID() SubsetID
	Label() string
	Origin() uint16
	Memtop() uint16
	Contains(address uint16) bool
	Storage() *PhysicalStorage

	SetValue(pos int, v uint8)
	ReadValue(pos int) uint8
	PeekValue(pos int) uint8
	Poke(pos int, v uint8)

	base() *BaseSubset
}

// BaseSubset is the pass-through implementation of the Subset interface.
//
// The address range of a subset (its extent) can be larger than its window
// onto the storage. In that case the window is mirrored across the address
// range.
type BaseSubset struct {
	id      SubsetID
	label   string
	storage *PhysicalStorage
	offset  int
	size    int
	origin  uint16
	extent  int

	// writes to ROM storage are passed to the write through subset if it
	// is not nil
	writeThrough Subset
}

// NewBaseSubset creates a subset of size bytes starting at offset in the
// storage, mapped at origin. The extent is the size of the address range and
// must be a multiple of the size. An extent of zero is the same as the size.
//
// The storage argument can be nil for subsets that are not backed by storage.
// In which case only the origin and extent are meaningful.
func NewBaseSubset(label string, storage *PhysicalStorage, offset int, size int, origin uint16, extent int) (*BaseSubset, error) {
	s := &BaseSubset{}
	if err := s.init(label, storage, offset, size, origin, extent); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BaseSubset) init(label string, storage *PhysicalStorage, offset int, size int, origin uint16, extent int) error {
	if extent == 0 {
		extent = size
	}

	if storage != nil {
		if offset < 0 || size <= 0 || offset+size > storage.Size() {
			return curated.Errorf(SubsetOutOfRange, label, offset, offset+size, storage.Label())
		}
	}
	if extent < size || int(origin)+extent > 0x10000 || (size > 0 && extent%size != 0) {
		return curated.Errorf(SubsetOutOfRange, label, offset, offset+size, "address space")
	}

	*s = BaseSubset{
		id:      NoSubset,
		label:   label,
		storage: storage,
		offset:  offset,
		size:    size,
		origin:  origin,
		extent:  extent,
	}

	return nil
}

func (s *BaseSubset) base() *BaseSubset {
	return s
}

func (s *BaseSubset) String() string {
	return fmt.Sprintf("%s %04x-%04x", s.label, s.origin, s.Memtop())
}

// ID returns the handle of the subset. Returns NoSubset if the subset has not
// been added to a Memory.
func (s *BaseSubset) ID() SubsetID {
	return s.id
}

// Label returns the name of the subset.
func (s *BaseSubset) Label() string {
	return s.label
}

// Origin returns the first address of the subset's address range.
func (s *BaseSubset) Origin() uint16 {
	return s.origin
}

// Memtop returns the last address of the subset's address range.
func (s *BaseSubset) Memtop() uint16 {
	return s.origin + uint16(s.extent-1)
}

// Size returns the size of the window onto the storage.
func (s *BaseSubset) Size() int {
	return s.size
}

// Storage returns the storage the subset is a window onto. Can be nil.
func (s *BaseSubset) Storage() *PhysicalStorage {
	return s.storage
}

// Contains returns true if the address is in the subset's address range.
func (s *BaseSubset) Contains(address uint16) bool {
	return int(address) >= int(s.origin) && int(address) < int(s.origin)+s.extent
}

// SetWriteThrough sets the subset to which writes are passed if the storage
// of this subset is ROM. Writes are passed using the same address.
func (s *BaseSubset) SetWriteThrough(through Subset) {
	s.writeThrough = through
}

// Mirror reduces a position in the address range to a position in the
// window.
func (s *BaseSubset) Mirror(pos int) int {
	if s.size == 0 {
		return 0
	}
	return pos % s.size
}

// SetValue writes to the storage. Writes to ROM are ignored unless a write
// through subset has been set.
func (s *BaseSubset) SetValue(pos int, v uint8) {
	if s.storage == nil {
		return
	}
	if s.storage.kind == ROM {
		if s.writeThrough != nil {
			address := int(s.origin) + pos
			s.writeThrough.SetValue(address-int(s.writeThrough.Origin()), v)
		}
		return
	}
	s.storage.write(s.offset+s.Mirror(pos), v)
}

// ReadValue reads from the storage.
func (s *BaseSubset) ReadValue(pos int) uint8 {
	return s.PeekValue(pos)
}

// PeekValue reads from the storage without side effects.
func (s *BaseSubset) PeekValue(pos int) uint8 {
	if s.storage == nil {
		return 0
	}
	return s.storage.read(s.offset + s.Mirror(pos))
}

// Poke writes to the storage without side effects, regardless of whether the
// storage is RAM or ROM.
func (s *BaseSubset) Poke(pos int, v uint8) {
	if s.storage == nil {
		return
	}
	s.storage.write(s.offset+s.Mirror(pos), v)
}
