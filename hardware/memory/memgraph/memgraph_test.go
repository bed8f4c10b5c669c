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

package memgraph_test

import (
	"strings"
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/hardware/memory/memgraph"
	"github.com/emu8/emu8/test"
)

func TestGraph(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	mem := memory.NewMemory(env)
	ram := mem.AddStorage("ram", memory.RAM, 0x10000)
	basic := mem.AddStorage("basic", memory.ROM, 0x2000)

	sub, err := memory.NewBaseSubset("ram", ram, 0, 0x10000, 0x0000, 0)
	test.DemandSuccess(t, err)
	ramID, err := mem.AddSubset(sub)
	test.DemandSuccess(t, err)

	sub, err = memory.NewBaseSubset("basic", basic, 0, 0x2000, 0xa000, 0)
	test.DemandSuccess(t, err)
	basicID, err := mem.AddSubset(sub)
	test.DemandSuccess(t, err)

	view, err := mem.AddView("cpu", 0x10000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mem.AddToView(view, ramID, true))
	test.DemandSuccess(t, mem.AddToView(view, basicID, false))

	g := memgraph.NewGraph(mem)
	test.ExpectEquality(t, len(g.Storages), 2)
	test.DemandEquality(t, len(g.Views), 1)
	test.ExpectSuccess(t, g.Views[0].CPU)
	test.DemandEquality(t, len(g.Views[0].Active), 1)
	test.DemandEquality(t, len(g.Views[0].Inactive), 1)
	test.ExpectEquality(t, g.Views[0].Inactive[0].Range, "a000-bfff")
	test.ExpectEquality(t, g.Views[0].Inactive[0].Storage.Kind, memory.ROM.String())

	w := &strings.Builder{}
	memgraph.Write(w, mem)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "digraph"))
}
