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

package commands_test

import (
	"testing"

	"github.com/emu8/emu8/commands"
	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware"
	"github.com/emu8/emu8/hardware/cpu/z80"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/test"
)

func TestWireFormat(t *testing.T) {
	cmd, err := commands.Decode([]byte("MADDRESS=c000,LENGTH=16"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmd.Type, commands.TypeMemory)
	test.DemandEquality(t, len(cmd.Attributes), 2)

	v, ok := cmd.Get("ADDRESS")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "c000")

	b, err := cmd.Encode()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "MADDRESS=c000,LENGTH=16")

	// no attributes
	cmd, err = commands.Decode([]byte("S"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmd.Type, commands.TypeStatus)
	test.ExpectEquality(t, len(cmd.Attributes), 0)

	// values are restricted to letters and digits
	for _, s := range []string{"", "MADDRESS=$c000", "MADDRESS", "M=c000", "MADDRESS=c0 0", " S"} {
		_, err = commands.Decode([]byte(s))
		test.ExpectSuccess(t, curated.Is(err, commands.WireFormatError), s)
	}

	cmd = commands.NewCommand(commands.TypeResponse)
	cmd.Set("MSG", "hello world")
	_, err = cmd.Encode()
	test.ExpectFailure(t, err)

	cmd.Set("MSG", "hello")
	b, err = cmd.Encode()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "RMSG=hello")
}

func TestParseLine(t *testing.T) {
	a, err := commands.ParseLine("memory ADDRESS=c000, LENGTH=4")
	test.DemandSuccess(t, err)
	b, err := commands.ParseLine("MADDRESS=c000,LENGTH=4")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.String(), b.String())
	test.ExpectEquality(t, a.String(), "MEMORY ADDRESS=c000 LENGTH=4")
}

func newExecuter(t *testing.T) (*commands.Executer, *hardware.Computer) {
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

	c := hardware.NewComputer(env, "Test Machine", mem, mc)
	test.DemandSuccess(t, c.Initialise())

	// LD A,$41; HALT
	test.DemandSuccess(t, mem.Poke(0x0000, 0x3e))
	test.DemandSuccess(t, mem.Poke(0x0001, 0x41))
	test.DemandSuccess(t, mem.Poke(0x0002, 0x76))

	return commands.NewExecuter(c), c
}

func TestExecuter(t *testing.T) {
	ex, c := newExecuter(t)
	test.DemandSuccess(t, c.Step())

	rsp, err := ex.Execute(&commands.Command{Type: commands.TypeCPU})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rsp.Type, commands.TypeResponse)
	v, _ := rsp.Get("PC")
	test.ExpectEquality(t, v, "0002")
	v, _ = rsp.Get("A")
	test.ExpectEquality(t, v, "41")
	_, ok := rsp.Get("AFALT")
	test.ExpectSuccess(t, ok)
	_, err = rsp.Encode()
	test.ExpectSuccess(t, err)

	cmd, err := commands.ParseLine("MEMORY ADDRESS=0,LENGTH=3")
	test.DemandSuccess(t, err)
	rsp, err = ex.Execute(cmd)
	test.DemandSuccess(t, err)
	v, _ = rsp.Get("DATA")
	test.ExpectEquality(t, v, "3e4176")

	cmd, _ = commands.ParseLine("MEMORY ADDRESS=0,LENGTH=1000")
	_, err = ex.Execute(cmd)
	test.ExpectSuccess(t, curated.Is(err, commands.AttributeError))

	cmd, _ = commands.ParseLine("MEMORY LENGTH=10")
	_, err = ex.Execute(cmd)
	test.ExpectFailure(t, err)

	rsp, err = ex.Execute(&commands.Command{Type: commands.TypeStatus})
	test.DemandSuccess(t, err)
	v, _ = rsp.Get("MACHINE")
	test.ExpectEquality(t, v, "TestMachine")
	v, _ = rsp.Get("TICKS")
	test.ExpectEquality(t, v, "1")

	rsp, err = ex.Execute(&commands.Command{Type: commands.TypeChips})
	test.DemandSuccess(t, err)
	v, _ = rsp.Get("COUNT")
	test.ExpectEquality(t, v, "0")

	_, err = ex.Execute(&commands.Command{Type: 'Z'})
	test.ExpectSuccess(t, curated.Is(err, commands.UnknownCommand))

	rsp = commands.ErrorResponse(err)
	_, err = rsp.Encode()
	test.ExpectSuccess(t, err)
}
