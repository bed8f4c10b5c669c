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

package hardware

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/govern"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/memory"
)

// Sentinal error patterns returned by the Computer.
const (
	InitError     = "computer: initialisation: %v"
	CPUError      = "computer: cpu: %v"
	ChipError     = "computer: chip %s: %v"
	DeviceError   = "computer: device %s: %v"
	DuplicateChip = "computer: chip id %d is already used by %s"
)

// Processor is implemented by the CPU types.
type Processor interface {
	Reset() error
	Execute() error

	// the architecture independent part of the CPU
	Base() *cpu.CPU
}

// Computer is the root of an emulated machine.
type Computer struct {
	env *environment.Environment

	Label string
	CPU   Processor

	mem     *memory.Memory
	chips   []chip.Simulatable
	devices []iodevice.IODevice

	initialised bool
	state       govern.State

	// the number of ticks since the computer was initialised
	ticks uint64
}

// NewComputer is the preferred method of initialisation for the Computer
// type. Chips and IO devices are added after creation. The Computer must be
// initialised before it can be run.
func NewComputer(env *environment.Environment, label string, mem *memory.Memory, proc Processor) *Computer {
	return &Computer{
		env:   env,
		Label: label,
		CPU:   proc,
		mem:   mem,
		state: govern.EmulatorStart,
	}
}

func (c *Computer) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s [%s] ticks=%d cycles=%d", c.Label, c.state, c.ticks, c.ClockCycles()))
	base := c.CPU.Base()
	if base.Killed {
		s.WriteString(" killed")
	}
	if base.Faulted() {
		s.WriteString(" faulted")
	}
	return s.String()
}

// Env returns the environment of the computer.
func (c *Computer) Env() *environment.Environment {
	return c.env
}

// Mem returns the memory of the computer. Implements the iodevice.Machine
// interface.
func (c *Computer) Mem() *memory.Memory {
	return c.mem
}

// ClockCycles returns the number of CPU cycles since the computer was
// initialised. Implements the chip.Clock interface.
func (c *Computer) ClockCycles() uint64 {
	return c.CPU.Base().ClockCycles()
}

// Ticks returns the number of ticks since the computer was initialised.
func (c *Computer) Ticks() uint64 {
	return c.ticks
}

// State returns the current emulation state.
func (c *Computer) State() govern.State {
	return c.state
}

// Initialised returns true if Initialise() has completed successfully.
func (c *Computer) Initialised() bool {
	return c.initialised
}

// AddChip adds a chip to the computer. The ID of the chip must not already be
// in use.
func (c *Computer) AddChip(ch chip.Simulatable) error {
	for _, o := range c.chips {
		if o.ID() == ch.ID() {
			return curated.Errorf(DuplicateChip, ch.ID(), o.Label())
		}
	}

	c.chips = append(c.chips, ch)
	sort.SliceStable(c.chips, func(i, j int) bool {
		return c.chips[i].ID() < c.chips[j].ID()
	})

	return nil
}

// Chips returns the chips in the order in which they are simulated.
func (c *Computer) Chips() []chip.Simulatable {
	return c.chips
}

// Chip returns the chip with the ID.
func (c *Computer) Chip(id int) (chip.Simulatable, bool) {
	for _, ch := range c.chips {
		if ch.ID() == id {
			return ch, true
		}
	}
	return nil, false
}

// AddDevice attaches an IO device to the computer.
func (c *Computer) AddDevice(d iodevice.IODevice) {
	c.devices = append(c.devices, d)
}

// Devices returns the attached IO devices.
func (c *Computer) Devices() []iodevice.IODevice {
	return c.devices
}

// Initialise the computer. Memory is reset first, then the chips in ID
// order, then the IO devices and finally the CPU. The CPU is reset last
// because chips that control the memory map must be ready before the CPU
// reads its reset vector.
//
// A computer that fails to initialise will not run.
func (c *Computer) Initialise() error {
	c.initialised = false
	c.state = govern.Initialising
	c.ticks = 0

	c.mem.Reset()

	for _, ch := range c.chips {
		if err := ch.Initialise(); err != nil {
			return curated.Errorf(InitError, curated.Errorf(ChipError, ch.Label(), err))
		}
	}

	for _, d := range c.devices {
		if err := d.Initialise(); err != nil {
			return curated.Errorf(InitError, curated.Errorf(DeviceError, d.Label(), err))
		}
	}

	if err := c.CPU.Reset(); err != nil {
		return curated.Errorf(InitError, curated.Errorf(CPUError, err))
	}

	c.initialised = true
	c.state = govern.Paused

	if c.env != nil {
		c.env.Logf("computer", "%s initialised with %d chips", c.Label, len(c.chips))
	}

	return nil
}

// Snapshot is a summary of the state of the computer.
type Snapshot struct {
	Label       string
	State       govern.State
	Ticks       uint64
	ClockCycles uint64
	CPU         cpu.Snapshot
	Chips       []string
	Devices     []string
}

// Snapshot returns a summary of the current state of the computer.
func (c *Computer) Snapshot() Snapshot {
	s := Snapshot{
		Label:       c.Label,
		State:       c.state,
		Ticks:       c.ticks,
		ClockCycles: c.ClockCycles(),
		CPU:         c.CPU.Base().Snapshot(),
	}
	for _, ch := range c.chips {
		s.Chips = append(s.Chips, ch.Label())
	}
	for _, d := range c.devices {
		s.Devices = append(s.Devices, d.Label())
	}
	return s
}
