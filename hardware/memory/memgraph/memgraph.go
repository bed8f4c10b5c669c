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

// Package memgraph writes the structure of a memory arena as a graphviz
// graph. The graph shows which storage each subset is a window into and
// which subsets are members of each view.
package memgraph

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/emu8/emu8/hardware/memory"
)

// Storage is a node in the graph for a PhysicalStorage.
type Storage struct {
	Label string
	Kind  string
	Size  int
}

// Subset is a node in the graph for a Subset.
type Subset struct {
	ID      int
	Label   string
	Range   string
	Storage *Storage
}

// View is a node in the graph for a View.
type View struct {
	Label    string
	CPU      bool
	Active   []*Subset
	Inactive []*Subset
}

// Graph is the root of the graph.
type Graph struct {
	Storages []*Storage
	Views    []*View
}

// NewGraph creates a Graph from the current state of the memory.
func NewGraph(mem *memory.Memory) *Graph {
	g := &Graph{}

	storages := make(map[*memory.PhysicalStorage]*Storage)
	for _, s := range mem.Storages() {
		n := &Storage{
			Label: s.Label(),
			Kind:  s.Kind().String(),
			Size:  s.Size(),
		}
		storages[s] = n
		g.Storages = append(g.Storages, n)
	}

	subsets := make(map[memory.SubsetID]*Subset)
	for i := 0; i < mem.NumSubsets(); i++ {
		id := memory.SubsetID(i)
		s, ok := mem.Subset(id)
		if !ok {
			continue
		}
		subsets[id] = &Subset{
			ID:      int(id),
			Label:   s.Label(),
			Range:   fmt.Sprintf("%04x-%04x", s.Origin(), s.Memtop()),
			Storage: storages[s.Storage()],
		}
	}

	cpu := mem.CPUView()
	for i := 0; i < mem.Views(); i++ {
		v, ok := mem.View(memory.ViewID(i))
		if !ok {
			continue
		}
		n := &View{
			Label: v.Label(),
			CPU:   v == cpu,
		}
		for _, id := range v.Members() {
			if s, ok := subsets[id]; ok {
				if v.IsActive(id) {
					n.Active = append(n.Active, s)
				} else {
					n.Inactive = append(n.Inactive, s)
				}
			}
		}
		g.Views = append(g.Views, n)
	}

	return g
}

// Write the graph of the memory in the graphviz dot format.
func Write(w io.Writer, mem *memory.Memory) {
	memviz.Map(w, NewGraph(mem))
}
