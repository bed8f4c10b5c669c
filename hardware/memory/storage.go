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

// StorageKind distinguishes between RAM and ROM.
type StorageKind int

// List of valid StorageKind values.
const (
	RAM StorageKind = iota
	ROM
)

func (k StorageKind) String() string {
	switch k {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	}
	return ""
}

// ImageSizeError is returned when a ROM image is not the size of the storage.
const ImageSizeError = "memory: image for %s is %d bytes, expected %d"

// PhysicalStorage is a raw array of bytes.
type PhysicalStorage struct {
	label string
	kind  StorageKind
	data  []uint8
}

// NewPhysicalStorage is the preferred method of initialisation for the
// PhysicalStorage type. Storage is normally created through Memory.AddStorage().
func NewPhysicalStorage(label string, kind StorageKind, size int) *PhysicalStorage {
	return &PhysicalStorage{
		label: label,
		kind:  kind,
		data:  make([]uint8, size),
	}
}

func (s *PhysicalStorage) String() string {
	return fmt.Sprintf("%s [%s %d bytes]", s.label, s.kind, len(s.data))
}

// Label returns the name of the storage.
func (s *PhysicalStorage) Label() string {
	return s.label
}

// Kind returns whether the storage is RAM or ROM.
func (s *PhysicalStorage) Kind() StorageKind {
	return s.kind
}

// Size returns the size of the storage in bytes.
func (s *PhysicalStorage) Size() int {
	return len(s.data)
}

// LoadImage copies an image into the storage. The image must be exactly the
// size of the storage.
func (s *PhysicalStorage) LoadImage(image []uint8) error {
	if len(image) != len(s.data) {
		return curated.Errorf(ImageSizeError, s.label, len(image), len(s.data))
	}
	copy(s.data, image)
	return nil
}

// Fill every byte of the storage with the values returned by f.
func (s *PhysicalStorage) Fill(f func(idx int) uint8) {
	for i := range s.data {
		s.data[i] = f(i)
	}
}

// read and write without regard to storage kind. idx is always in range
// because it is checked when a subset is created
func (s *PhysicalStorage) read(idx int) uint8 {
	return s.data[idx]
}

func (s *PhysicalStorage) write(idx int, v uint8) {
	s.data[idx] = v
}
