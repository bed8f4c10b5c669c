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

package hardware_test

import (
	"errors"
	"testing"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/cpu/mos6502"
	"github.com/emu8/emu8/hardware/filedata"
	"github.com/emu8/emu8/hardware/govern"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/test"
)

// recorder is a chip that records the order in which it was simulated
type recorder struct {
	id      int
	label   string
	order   *[]int
	elapsed chip.Elapsed
	cycles  uint64
	initErr error
}

func (r *recorder) ID() int           { return r.id }
func (r *recorder) Label() string     { return r.label }
func (r *recorder) Initialise() error { return r.initErr }

func (r *recorder) Simulate(c chip.Clock) error {
	*r.order = append(*r.order, r.id)
	r.cycles += r.elapsed.Update(c)
	return nil
}

func newComputer(t *testing.T, program ...uint8) (*hardware.Computer, *memory.Memory) {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	mem := memory.NewMemory(env)
	ram := mem.AddStorage("ram", memory.RAM, 0xc000)
	rom := mem.AddStorage("rom", memory.ROM, 0x4000)

	sub, err := memory.NewBaseSubset("ram", ram, 0, 0xc000, 0x0000, 0)
	test.DemandSuccess(t, err)
	ramID, err := mem.AddSubset(sub)
	test.DemandSuccess(t, err)

	sub, err = memory.NewBaseSubset("rom", rom, 0, 0x4000, 0xc000, 0)
	test.DemandSuccess(t, err)
	romID, err := mem.AddSubset(sub)
	test.DemandSuccess(t, err)

	view, err := mem.AddView("cpu", 0x10000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mem.AddToView(view, ramID, true))
	test.DemandSuccess(t, mem.AddToView(view, romID, true))

	stack, err := memory.NewStack("stack", ram, 0x0100, 0x100, 0x0100, true, true)
	test.DemandSuccess(t, err)
	_, err = mem.AddSubset(stack)
	test.DemandSuccess(t, err)

	mc, err := mos6502.NewCPU(env, mem, stack, mos6502.Model6502)
	test.DemandSuccess(t, err)

	// ROM is not cleared by the computer's initialisation
	for i, b := range program {
		test.DemandSuccess(t, mem.Poke(0xc000+uint16(i), b))
	}
	test.DemandSuccess(t, mem.Poke(0xfffc, 0x00))
	test.DemandSuccess(t, mem.Poke(0xfffd, 0xc0))

	return hardware.NewComputer(env, "test", mem, mc), mem
}

func TestUninitialised(t *testing.T) {
	c, _ := newComputer(t, 0xea)
	err := c.Step()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.InitError))

	_, err = c.Run(nil)
	test.ExpectFailure(t, err)
}

func TestChipOrder(t *testing.T) {
	// NOP; NOP; NOP
	c, _ := newComputer(t, 0xea, 0xea, 0xea)

	var order []int
	a := &recorder{id: 2, label: "a", order: &order}
	b := &recorder{id: 1, label: "b", order: &order}
	test.DemandSuccess(t, c.AddChip(a))
	test.DemandSuccess(t, c.AddChip(b))

	err := c.AddChip(&recorder{id: 1, label: "c", order: &order})
	test.ExpectSuccess(t, curated.Is(err, hardware.DuplicateChip))

	test.DemandSuccess(t, c.Initialise())
	test.ExpectEquality(t, c.State(), govern.Paused)

	test.DemandSuccess(t, c.Step())
	test.DemandSuccess(t, c.Step())
	test.ExpectEquality(t, len(order), 4)
	test.ExpectEquality(t, order[0], 1)
	test.ExpectEquality(t, order[1], 2)
	test.ExpectEquality(t, order[2], 1)
	test.ExpectEquality(t, order[3], 2)

	test.ExpectEquality(t, c.Ticks(), uint64(2))
	test.ExpectEquality(t, a.cycles, c.ClockCycles())

	ch, ok := c.Chip(2)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ch.Label(), "a")
}

func TestInitialisationFailure(t *testing.T) {
	c, _ := newComputer(t, 0xea)

	var order []int
	test.DemandSuccess(t, c.AddChip(&recorder{id: 1, label: "broken", order: &order, initErr: errors.New("no rom")}))

	err := c.Initialise()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.InitError))
	test.ExpectSuccess(t, curated.Has(err, hardware.ChipError))
	test.ExpectSuccess(t, !c.Initialised())

	test.ExpectFailure(t, c.Step())
}

func TestRunUntilKilled(t *testing.T) {
	// LDA #$41; STA $0400; KIL
	c, mem := newComputer(t, 0xa9, 0x41, 0x8d, 0x00, 0x04, 0x02)
	test.DemandSuccess(t, c.Initialise())

	halt, err := c.Run(nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, halt, govern.HaltCPUKilled)

	v, err := mem.Peek(0x0400)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x41))

	// the killed state is sticky
	halt, _ = c.Run(nil)
	test.ExpectEquality(t, halt, govern.HaltCPUKilled)
}

func TestRunForCycles(t *testing.T) {
	// JMP $c000
	c, _ := newComputer(t, 0x4c, 0x00, 0xc0)
	test.DemandSuccess(t, c.Initialise())

	start := c.ClockCycles()
	halt, err := c.RunForCycles(100, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, halt, govern.HaltCycleLimit)
	test.ExpectSuccess(t, c.ClockCycles()-start >= 100)
	test.ExpectSuccess(t, c.ClockCycles()-start < 103)
	test.ExpectEquality(t, c.State(), govern.Paused)

	// the continue check can end the run early
	n := 0
	halt, err = c.Run(func() (govern.State, error) {
		n++
		if n == 10 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, halt, govern.HaltRequested)
	test.ExpectEquality(t, n, 10)
}

func TestDevices(t *testing.T) {
	// NOP
	c, mem := newComputer(t, 0xea)

	ld := iodevice.NewLoader(true)
	c.AddDevice(ld)
	test.DemandSuccess(t, c.Initialise())

	test.DemandSuccess(t, ld.ConnectData(filedata.NewRaw("test", 0x2000, []uint8{1, 2, 3})))
	test.DemandSuccess(t, c.Step())

	v, err := mem.Peek(0x2002)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(3))

	s := c.Snapshot()
	test.ExpectEquality(t, len(s.Devices), 1)
	test.ExpectEquality(t, s.Devices[0], "loader")
}
