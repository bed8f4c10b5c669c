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
	"github.com/emu8/emu8/environment"
)

// NotConnected answers for addresses in a View that have no active Subset.
// Reads return the DefaultValue preference or, if the RandomPins preference
// is set, a random value for every read.
type NotConnected struct {
	BaseSubset
	env *environment.Environment

	// the number of reads. used to vary random values within the same clock
	// cycle
	reads int
}

// NewNotConnected creates a NotConnected subset covering extent addresses
// from origin.
func NewNotConnected(env *environment.Environment, origin uint16, extent int) (*NotConnected, error) {
	n := &NotConnected{env: env}
	if err := n.BaseSubset.init("not connected", nil, 0, 0, origin, extent); err != nil {
		return nil, err
	}
	return n, nil
}

// SetValue implements the Subset interface. Writes to unconnected memory are
// lost.
func (n *NotConnected) SetValue(pos int, v uint8) {
}

// ReadValue implements the Subset interface.
func (n *NotConnected) ReadValue(pos int) uint8 {
	if n.env.Prefs.RandomPins.Get().(bool) {
		n.reads++
		return n.env.Random.Byte(n.reads)
	}
	return n.PeekValue(pos)
}

// PeekValue implements the Subset interface.
func (n *NotConnected) PeekValue(pos int) uint8 {
	return uint8(n.env.Prefs.DefaultValue.Get().(int))
}

// Poke implements the Subset interface.
func (n *NotConnected) Poke(pos int, v uint8) {
}

// NibbleRAM is RAM in which only the low nibble of each byte is connected. The
// colour RAM of the Commodore 64 is an example. Reads by a bus master return
// a random high nibble.
type NibbleRAM struct {
	BaseSubset
	env   *environment.Environment
	reads int
}

// NewNibbleRAM is the preferred method of initialisation for the NibbleRAM
// type.
func NewNibbleRAM(env *environment.Environment, label string, storage *PhysicalStorage, offset int, size int, origin uint16) (*NibbleRAM, error) {
	r := &NibbleRAM{env: env}
	if err := r.BaseSubset.init(label, storage, offset, size, origin, 0); err != nil {
		return nil, err
	}
	return r, nil
}

// SetValue implements the Subset interface. The high nibble is not stored.
func (r *NibbleRAM) SetValue(pos int, v uint8) {
	r.BaseSubset.SetValue(pos, v&0x0f)
}

// ReadValue implements the Subset interface.
func (r *NibbleRAM) ReadValue(pos int) uint8 {
	r.reads++
	return (r.env.Random.Byte(r.reads) & 0xf0) | r.PeekValue(pos)
}

// PeekValue implements the Subset interface.
func (r *NibbleRAM) PeekValue(pos int) uint8 {
	return r.BaseSubset.PeekValue(pos) & 0x0f
}
