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

// Package iodevice defines the devices that are refreshed by the Computer
// after every tick. IO devices are the connection between the emulated
// machine and the host: screens, sound output, and data loaders.
package iodevice

import (
	"github.com/emu8/emu8/hardware/memory"
)

// Machine is the view of the Computer given to an IODevice.
type Machine interface {
	ClockCycles() uint64
	Mem() *memory.Memory
}

// IODevice is implemented by every device attached to the Computer.
type IODevice interface {
	Label() string

	// Initialise is called when the Computer is initialised
	Initialise() error

	// Refresh is called at the end of every tick, after every chip has been
	// simulated
	Refresh(m Machine) error
}
