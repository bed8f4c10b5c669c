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

package iodevice

import (
	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/filedata"
)

// LoaderError is returned when data cannot be written to memory.
const LoaderError = "loader: %v"

// Loader is the built in peripheral that places FileData into memory.
//
// With AutoLoad set, data is written to memory by the next call to
// Refresh(). Otherwise the data waits until it is taken by a machine
// specific routine, such as a trap on the ROM's load routine.
type Loader struct {
	AutoLoad bool

	pending []filedata.FileData

	// the blocks written by the most recent call to Refresh()
	Loaded []filedata.MemoryBlock
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(autoLoad bool) *Loader {
	return &Loader{AutoLoad: autoLoad}
}

// Label implements the IODevice interface.
func (ld *Loader) Label() string {
	return "loader"
}

// Initialise implements the IODevice interface.
func (ld *Loader) Initialise() error {
	ld.Loaded = ld.Loaded[:0]
	return nil
}

// ConnectData implements the filedata.Connector interface.
func (ld *Loader) ConnectData(data filedata.FileData) error {
	if data == nil {
		return curated.Errorf(LoaderError, "no data")
	}
	ld.pending = append(ld.pending, data)
	return nil
}

// Pending returns the number of FileData instances waiting to be loaded.
func (ld *Loader) Pending() int {
	return len(ld.pending)
}

// Take removes the oldest FileData from the queue.
func (ld *Loader) Take() (filedata.FileData, bool) {
	if len(ld.pending) == 0 {
		return nil, false
	}
	data := ld.pending[0]
	ld.pending = ld.pending[1:]
	return data, true
}

// Refresh implements the IODevice interface.
func (ld *Loader) Refresh(m Machine) error {
	if !ld.AutoLoad || len(ld.pending) == 0 {
		return nil
	}

	ld.Loaded = ld.Loaded[:0]

	for {
		data, ok := ld.Take()
		if !ok {
			break
		}
		for _, b := range data.AsMemoryBlocks() {
			for i, v := range b.Data {
				if err := m.Mem().Write(b.Address+uint16(i), v); err != nil {
					return curated.Errorf(LoaderError, err)
				}
			}
			ld.Loaded = append(ld.Loaded, b)
		}
	}

	return nil
}
