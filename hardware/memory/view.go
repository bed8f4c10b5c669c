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
	"sort"
)

// ViewID is the handle of a View in the Memory arena.
type ViewID int

// the decode table value for addresses with no active subset
const unmapped = -1

// View is one bus master's perspective of the address space.
type View struct {
	id    ViewID
	label string
	size  int

	// the subsets that belong to the view and whether they are active
	members map[SubsetID]bool

	// the subset answering for addresses with no active subset
	unconnected Subset

	// the ID of the active subset for every address in the view
	decode []SubsetID
}

func newView(id ViewID, label string, size int, unconnected Subset) *View {
	v := &View{
		id:          id,
		label:       label,
		size:        size,
		members:     make(map[SubsetID]bool),
		unconnected: unconnected,
		decode:      make([]SubsetID, size),
	}
	for i := range v.decode {
		v.decode[i] = unmapped
	}
	return v
}

func (v *View) String() string {
	return fmt.Sprintf("%s [%d bytes]", v.label, v.size)
}

// ID returns the handle of the view.
func (v *View) ID() ViewID {
	return v.id
}

// Label returns the name of the view.
func (v *View) Label() string {
	return v.label
}

// Size returns the size of the view's address space.
func (v *View) Size() int {
	return v.size
}

// Members returns the IDs of all subsets in the view, in ascending order.
func (v *View) Members() []SubsetID {
	ids := make([]SubsetID, 0, len(v.members))
	for id := range v.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Active returns the IDs of the active subsets in the view, in ascending
// order.
func (v *View) Active() []SubsetID {
	ids := make([]SubsetID, 0, len(v.members))
	for _, id := range v.Members() {
		if v.members[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsActive returns true if the subset is a member of the view and is active.
func (v *View) IsActive(id SubsetID) bool {
	return v.members[id]
}

// Decode returns the ID of the active subset answering for the address.
// Returns false if no subset answers for the address.
func (v *View) Decode(address uint16) (SubsetID, bool) {
	if int(address) >= v.size {
		return NoSubset, false
	}
	id := v.decode[address]
	return id, id != unmapped
}

func (v *View) fill(s Subset, id SubsetID) {
	for a := int(s.Origin()); a <= int(s.Memtop()) && a < v.size; a++ {
		v.decode[a] = id
	}
}

// overlaps returns the ID of the first active subset in the address range of
// s, if there is one
func (v *View) overlaps(s Subset) (SubsetID, bool) {
	for a := int(s.Origin()); a <= int(s.Memtop()) && a < v.size; a++ {
		if v.decode[a] != unmapped && v.decode[a] != s.ID() {
			return v.decode[a], true
		}
	}
	return NoSubset, false
}
