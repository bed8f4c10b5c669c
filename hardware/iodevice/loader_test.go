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

package iodevice_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/filedata"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/test"
)

type machine struct {
	mem *memory.Memory
}

func (m *machine) ClockCycles() uint64 {
	return 0
}

func (m *machine) Mem() *memory.Memory {
	return m.mem
}

func newMachine(t *testing.T) *machine {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	mem := memory.NewMemory(env)
	ram := mem.AddStorage("ram", memory.RAM, 0x10000)
	sub, err := memory.NewBaseSubset("ram", ram, 0, 0x10000, 0x0000, 0)
	test.DemandSuccess(t, err)
	id, err := mem.AddSubset(sub)
	test.DemandSuccess(t, err)
	view, err := mem.AddView("cpu", 0x10000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mem.AddToView(view, id, true))

	return &machine{mem: mem}
}

func TestAutoLoad(t *testing.T) {
	m := newMachine(t)

	ld := iodevice.NewLoader(true)
	test.ExpectFailure(t, ld.ConnectData(nil))
	test.DemandSuccess(t, ld.ConnectData(filedata.NewRaw("a", 0x1000, []uint8{1, 2, 3})))
	test.DemandSuccess(t, ld.ConnectData(filedata.NewRaw("b", 0x2000, []uint8{4})))
	test.ExpectEquality(t, ld.Pending(), 2)

	test.DemandSuccess(t, ld.Refresh(m))
	test.ExpectEquality(t, ld.Pending(), 0)
	test.ExpectEquality(t, len(ld.Loaded), 2)

	v, err := m.mem.Peek(0x1002)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(3))

	v, err = m.mem.Peek(0x2000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(4))
}

func TestManualLoad(t *testing.T) {
	m := newMachine(t)

	ld := iodevice.NewLoader(false)
	test.DemandSuccess(t, ld.ConnectData(filedata.NewRaw("a", 0x1000, []uint8{1})))

	// data is not written by refresh
	test.DemandSuccess(t, ld.Refresh(m))
	test.ExpectEquality(t, ld.Pending(), 1)

	data, ok := ld.Take()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, data.Format(), "raw")

	_, ok = ld.Take()
	test.ExpectFailure(t, ok)
}
