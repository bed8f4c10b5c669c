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
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// Sentinal error patterns returned by the Memory type.
const (
	SubsetNotFound = "memory: subset not found (%d)"
	ViewNotFound   = "memory: view not found (%d)"
	SubsetOverlap  = "memory: subset %s overlaps active subset %s in view %s"
	SubsetInUse    = "memory: subset %s has already been added"
	NotMember      = "memory: subset %s is not a member of view %s"
)

// Memory owns every PhysicalStorage, Subset and View of the emulated machine.
type Memory struct {
	env *environment.Environment

	storages []*PhysicalStorage
	subsets  []Subset
	views    []*View

	// the view used by Read(), Write(), Peek() and Poke()
	cpuView *View
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(env *environment.Environment) *Memory {
	return &Memory{
		env: env,
	}
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	for _, v := range mem.views {
		s.WriteString(fmt.Sprintf("%s\n", v))
		for _, id := range v.Members() {
			sub := mem.subsets[id]
			state := "inactive"
			if v.IsActive(id) {
				state = "active"
			}
			s.WriteString(fmt.Sprintf("  %2d %-20s %04x-%04x %s\n", id, sub.Label(), sub.Origin(), sub.Memtop(), state))
		}
	}
	return s.String()
}

// AddStorage creates a new PhysicalStorage owned by the memory.
func (mem *Memory) AddStorage(label string, kind StorageKind, size int) *PhysicalStorage {
	s := NewPhysicalStorage(label, kind, size)
	mem.storages = append(mem.storages, s)
	return s
}

// Storages returns all storage owned by the memory.
func (mem *Memory) Storages() []*PhysicalStorage {
	return mem.storages
}

// AddSubset takes ownership of the subset and returns its handle.
func (mem *Memory) AddSubset(s Subset) (SubsetID, error) {
	b := s.base()
	if b.id != NoSubset {
		return NoSubset, curated.Errorf(SubsetInUse, s.Label())
	}
	b.id = SubsetID(len(mem.subsets))
	mem.subsets = append(mem.subsets, s)
	return b.id, nil
}

// Subset returns the subset with the handle. The boolean result is false if
// there is no such subset.
func (mem *Memory) Subset(id SubsetID) (Subset, bool) {
	if id < 0 || int(id) >= len(mem.subsets) {
		return nil, false
	}
	return mem.subsets[id], true
}

// NumSubsets returns the number of subsets owned by the memory.
func (mem *Memory) NumSubsets() int {
	return len(mem.subsets)
}

// AddView creates a new View of size addresses. Addresses with no active
// subset are answered by a NotConnected subset created for the view. The
// first view added becomes the CPU view.
func (mem *Memory) AddView(label string, size int) (ViewID, error) {
	nc, err := NewNotConnected(mem.env, 0, size)
	if err != nil {
		return 0, err
	}
	if _, err := mem.AddSubset(nc); err != nil {
		return 0, err
	}

	v := newView(ViewID(len(mem.views)), label, size, nc)
	mem.views = append(mem.views, v)

	if mem.cpuView == nil {
		mem.cpuView = v
	}

	return v.id, nil
}

// View returns the view with the handle. The boolean result is false if there
// is no such view.
func (mem *Memory) View(id ViewID) (*View, bool) {
	if id < 0 || int(id) >= len(mem.views) {
		return nil, false
	}
	return mem.views[id], true
}

// Views returns the number of views.
func (mem *Memory) Views() int {
	return len(mem.views)
}

// SetCPUView changes the view used by the CPU.
func (mem *Memory) SetCPUView(id ViewID) error {
	v, ok := mem.View(id)
	if !ok {
		return curated.Errorf(ViewNotFound, id)
	}
	mem.cpuView = v
	return nil
}

// CPUView returns the view used by the CPU.
func (mem *Memory) CPUView() *View {
	return mem.cpuView
}

// AddToView makes the subset a member of the view. If active is true the
// subset is also activated.
func (mem *Memory) AddToView(view ViewID, id SubsetID, active bool) error {
	v, ok := mem.View(view)
	if !ok {
		return curated.Errorf(ViewNotFound, view)
	}
	if _, ok := mem.Subset(id); !ok {
		return curated.Errorf(SubsetNotFound, id)
	}
	if _, ok := v.members[id]; !ok {
		v.members[id] = false
	}
	if active {
		return mem.ConfigureMemoryStructure(view, []SubsetID{id}, nil)
	}
	return nil
}

// ConfigureMemoryStructure deactivates and then activates subsets in the
// view. Activating a subset that overlaps an active subset is an error. In
// which case the view is left in the state it was before the call.
func (mem *Memory) ConfigureMemoryStructure(view ViewID, activate []SubsetID, deactivate []SubsetID) error {
	v, ok := mem.View(view)
	if !ok {
		return curated.Errorf(ViewNotFound, view)
	}

	for _, ids := range [][]SubsetID{activate, deactivate} {
		for _, id := range ids {
			s, ok := mem.Subset(id)
			if !ok {
				return curated.Errorf(SubsetNotFound, id)
			}
			if _, ok := v.members[id]; !ok {
				return curated.Errorf(NotMember, s.Label(), v.label)
			}
		}
	}

	// keep copy of decode table in case the configuration is not possible
	undoDecode := make([]SubsetID, len(v.decode))
	copy(undoDecode, v.decode)
	undoMembers := make(map[SubsetID]bool, len(v.members))
	for k, a := range v.members {
		undoMembers[k] = a
	}

	for _, id := range deactivate {
		if v.members[id] {
			v.fill(mem.subsets[id], unmapped)
			v.members[id] = false
		}
	}

	for _, id := range activate {
		if v.members[id] {
			continue
		}
		s := mem.subsets[id]
		if o, ok := v.overlaps(s); ok {
			v.decode = undoDecode
			v.members = undoMembers
			return curated.Errorf(SubsetOverlap, s.Label(), mem.subsets[o].Label(), v.label)
		}
		v.fill(s, id)
		v.members[id] = true
	}

	return nil
}

// Active returns true if the subset is active in any view.
func (mem *Memory) Active(id SubsetID) bool {
	for _, v := range mem.views {
		if v.IsActive(id) {
			return true
		}
	}
	return false
}

// resolve the subset answering for the address in the view
func (mem *Memory) resolve(v *View, address uint16) (Subset, int, error) {
	if v == nil {
		return nil, 0, curated.Errorf(cpubus.AddressError, address)
	}
	if int(address) >= v.size {
		return nil, 0, curated.Errorf(cpubus.AddressError, address)
	}
	id := v.decode[address]
	if id == unmapped {
		return v.unconnected, int(address), nil
	}
	s := mem.subsets[id]
	return s, int(address) - int(s.Origin()), nil
}

// ReadView reads the address in the specified view.
func (mem *Memory) ReadView(view ViewID, address uint16) (uint8, error) {
	v, ok := mem.View(view)
	if !ok {
		return 0, curated.Errorf(ViewNotFound, view)
	}
	s, pos, err := mem.resolve(v, address)
	if err != nil {
		return 0, err
	}
	return s.ReadValue(pos), nil
}

// Read implements the cpubus.Memory interface.
func (mem *Memory) Read(address uint16) (uint8, error) {
	s, pos, err := mem.resolve(mem.cpuView, address)
	if err != nil {
		return 0, err
	}
	return s.ReadValue(pos), nil
}

// Write implements the cpubus.Memory interface.
func (mem *Memory) Write(address uint16, data uint8) error {
	s, pos, err := mem.resolve(mem.cpuView, address)
	if err != nil {
		return err
	}
	s.SetValue(pos, data)
	return nil
}

// Peek implements the cpubus.DebugMemory interface.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	s, pos, err := mem.resolve(mem.cpuView, address)
	if err != nil {
		return 0, err
	}
	return s.PeekValue(pos), nil
}

// Poke implements the cpubus.DebugMemory interface.
func (mem *Memory) Poke(address uint16, data uint8) error {
	s, pos, err := mem.resolve(mem.cpuView, address)
	if err != nil {
		return err
	}
	s.Poke(pos, data)
	return nil
}

// Reset the contents of all RAM storage. RAM is cleared to zero, or filled
// with random values if the RandomState preference is set.
func (mem *Memory) Reset() {
	random := mem.env.Prefs.RandomState.Get().(bool)
	for _, s := range mem.storages {
		if s.kind != RAM {
			continue
		}
		if random {
			s.Fill(func(idx int) uint8 {
				return mem.env.Random.Byte(idx)
			})
		} else {
			s.Fill(func(_ int) uint8 {
				return 0
			})
		}
	}
}
