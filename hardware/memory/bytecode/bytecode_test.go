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

package bytecode_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/cpu/z80"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/hardware/memory/bytecode"
	"github.com/emu8/emu8/test"
)

func newMemory(t *testing.T) (*memory.Memory, *z80.CPU) {
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

	mc, err := z80.NewCPU(env, mem, nil)
	test.DemandSuccess(t, err)

	return mem, mc
}

func TestLoadAndDecompile(t *testing.T) {
	mem, mc := newMemory(t)

	bc := bytecode.ByteCode{
		{Address: 0x8000, Bytes: []uint8{0x3e, 0x41}},
		{Address: 0x8002, Bytes: []uint8{0x32, 0x00, 0x40}},
		{Address: 0x8005, Bytes: []uint8{0xdd, 0x7e, 0xfe}},
		{Address: 0x8008, Bytes: []uint8{0x76}},
	}
	test.ExpectEquality(t, bc.Size(), 9)
	test.DemandSuccess(t, bytecode.Load(mem, bc))

	v, err := mem.Peek(0x8003)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x00))

	dc, err := bytecode.Decompile(mem, mc.Instructions, 0x8000, 0x8008)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(dc), 4)

	test.ExpectEquality(t, dc[0].Instruction, "LD A,$41")
	test.ExpectEquality(t, dc[1].Instruction, "LD ($4000),A")
	test.ExpectEquality(t, dc[2].Instruction, "LD A,(IX-2)")
	test.ExpectEquality(t, dc[3].Instruction, "HALT")
	test.ExpectEquality(t, dc[2].Address, uint16(0x8005))
	test.ExpectEquality(t, len(dc[2].Bytes), 3)

	dc[0].Label = "start"
	test.ExpectEquality(t, dc[0].String(), "8000 3e 41       start: LD A,$41")

	w := &test.CompareWriter{}
	test.DemandSuccess(t, dc[3:].Write(w))
	test.ExpectSuccess(t, w.Compare("8008 76          HALT\n"))
}

func TestDecompileStraddle(t *testing.T) {
	mem, mc := newMemory(t)

	// JP $1234 straddles the end of the range and is included in full
	test.DemandSuccess(t, bytecode.Load(mem, bytecode.ByteCode{
		{Address: 0x0010, Bytes: []uint8{0x00, 0xc3, 0x34, 0x12}},
	}))

	dc, err := bytecode.Decompile(mem, mc.Instructions, 0x0010, 0x0011)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(dc), 2)
	test.ExpectEquality(t, dc[1].Instruction, "JP $1234")

	_, err = bytecode.Decompile(mem, mc.Instructions, 0x0011, 0x0010)
	test.ExpectFailure(t, err)
}
