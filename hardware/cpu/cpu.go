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

package cpu

import (
	"fmt"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/cpu/registers"
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// Fault is the error returned by Execute() when an instruction reports a hard
// fault. The CPU remains faulted until it is initialised.
const Fault = "cpu: fault at %#04x (%s)"

// Memory is the memory interface required by the CPU.
type Memory interface {
	cpubus.Memory
	cpubus.DebugMemory
}

// PortBus is the interface to the I/O ports of CPUs with a separate I/O
// address space, such as the Z80.
type PortBus interface {
	In(port uint16) (uint8, error)
	Out(port uint16, data uint8) error
}

// Result records the most recent call to Execute().
type Result struct {
	Address     uint16
	Instruction Instruction
	Operands    []uint8
	Cycles      int

	// the name of the interrupt or trap that was served instead of an
	// instruction. empty if an instruction was executed
	Interrupt string
	Trap      string
}

func (r Result) String() string {
	switch {
	case r.Interrupt != "":
		return fmt.Sprintf("%04x interrupt %s (%d)", r.Address, r.Interrupt, r.Cycles)
	case r.Trap != "":
		return fmt.Sprintf("%04x trap %s (%d)", r.Address, r.Trap, r.Cycles)
	case r.Instruction == nil:
		return ""
	}
	return fmt.Sprintf("%04x %s (%d)", r.Address, r.Instruction.Disassemble(r.Operands), r.Cycles)
}

// CPU is the architecture independent part of the CPU emulation. The concrete
// CPUs embed the type and provide the register file, the instruction table
// and the interrupt table.
type CPU struct {
	env *environment.Environment
	mem Memory

	// the name of the CPU. eg. 6510
	Model string

	PC        *registers.ProgramCounter
	Status    *registers.StatusRegister
	Registers []*registers.Register

	Instructions *InstructionSet
	Interrupts   Interrupts
	Traps        []Trap

	// called after an instruction has been decoded and before it is executed
	OnDecode func(ins Instruction)

	// the CPU has executed an instruction that stops it. for example, one of
	// the 6502 KIL opcodes. only a reset will restart the CPU
	Killed bool

	clockCycles uint64
	fault       error

	LastResult Result

	// bytes of the instruction being decoded
	fetched []uint8
}

// NewCPU is the preferred method of initialisation for the CPU type. It is
// called by the concrete CPU implementations.
func NewCPU(env *environment.Environment, mem Memory, model string, status *registers.StatusRegister) *CPU {
	mc := &CPU{
		env:          env,
		mem:          mem,
		Model:        model,
		PC:           registers.NewProgramCounter(0),
		Status:       status,
		Instructions: NewInstructionSet(),
		fetched:      make([]uint8, 0, 4),
	}
	if env != nil {
		env.Random.AttachClock(mc)
	}
	return mc
}

func (mc *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s=%s", mc.PC.Label(), mc.PC))
	for _, r := range mc.Registers {
		s.WriteString(fmt.Sprintf(" %s", r))
	}
	s.WriteString(fmt.Sprintf(" %s=%s", mc.Status.Label(), mc.Status))
	return s.String()
}

// Base returns the architecture independent part of the CPU. Concrete CPUs
// embed the CPU type and so inherit the function.
func (mc *CPU) Base() *CPU {
	return mc
}

// Env returns the environment of the CPU.
func (mc *CPU) Env() *environment.Environment {
	return mc.env
}

// Mem returns the memory connected to the CPU.
func (mc *CPU) Mem() Memory {
	return mc.mem
}

// AddRegister adds a new register to the register file.
func (mc *CPU) AddRegister(label string, size int) *registers.Register {
	r := registers.NewRegister(len(mc.Registers), label, size)
	mc.Registers = append(mc.Registers, r)
	return r
}

// Register returns the register with the label.
func (mc *CPU) Register(label string) (*registers.Register, bool) {
	for _, r := range mc.Registers {
		if r.Label() == label {
			return r, true
		}
	}
	return nil, false
}

// AddInterrupt adds an interrupt to the end of the interrupt table.
func (mc *CPU) AddInterrupt(irq *Interrupt) {
	mc.Interrupts = append(mc.Interrupts, irq)
}

// AddTrap adds a trap to the CPU.
func (mc *CPU) AddTrap(t Trap) {
	mc.Traps = append(mc.Traps, t)
}

// ClockCycles returns the number of cycles executed since the CPU was
// initialised.
func (mc *CPU) ClockCycles() uint64 {
	return mc.clockCycles
}

// Tick advances the clock by the number of cycles.
func (mc *CPU) Tick(cycles int) {
	mc.clockCycles += uint64(cycles)
}

// Faulted returns true if the CPU has suffered a hard fault.
func (mc *CPU) Faulted() bool {
	return mc.fault != nil
}

// FaultError returns the fault that stopped the CPU. Nil if the CPU has not
// faulted.
func (mc *CPU) FaultError() error {
	return mc.fault
}

// SetFault puts the CPU into the faulted state.
func (mc *CPU) SetFault(err error) {
	if mc.fault == nil {
		mc.fault = err
	}
}

// Reset the architecture independent state of the CPU. Registers are zeroed
// or randomised according to the RandomState preference.
func (mc *CPU) Reset() {
	mc.clockCycles = 0
	mc.fault = nil
	mc.Killed = false
	mc.LastResult = Result{}

	random := mc.env != nil && mc.env.Prefs.RandomState.Get().(bool)
	for i, r := range mc.Registers {
		if random {
			r.Load(uint16(mc.env.Random.Byte(i))<<8 | uint16(mc.env.Random.Byte(i+len(mc.Registers))))
		} else {
			r.Load(0)
		}
	}
	mc.Status.Reset()

	for _, irq := range mc.Interrupts {
		irq.Reset()
	}
}

// Read8Bit reads one byte from memory.
func (mc *CPU) Read8Bit(address uint16) (uint8, error) {
	return mc.mem.Read(address)
}

// Read16Bit reads a little-endian 16 bit value from memory.
func (mc *CPU) Read16Bit(address uint16) (uint16, error) {
	lo, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Write8Bit writes one byte to memory.
func (mc *CPU) Write8Bit(address uint16, data uint8) error {
	return mc.mem.Write(address, data)
}

// Execute a single instruction. Interrupts are polled first; if an interrupt
// is served then no instruction is executed. Traps are checked before the
// instruction is fetched.
func (mc *CPU) Execute() error {
	if mc.fault != nil {
		return mc.fault
	}

	// a killed CPU does not respond to interrupts
	if mc.Killed {
		return nil
	}

	address := mc.PC.Value()

	for _, irq := range mc.Interrupts {
		before := mc.clockCycles
		served, err := irq.ExecuteOver(mc)
		if err != nil {
			return err
		}
		if served {
			mc.LastResult = Result{
				Address:   address,
				Interrupt: irq.Name,
				Cycles:    int(mc.clockCycles - before),
			}
			return nil
		}
	}

	for i := range mc.Traps {
		t := &mc.Traps[i]
		if !t.matches(mc.mem, address) {
			continue
		}
		cycles, err := t.Routine(mc)
		if err != nil {
			return err
		}
		mc.Tick(cycles)
		mc.LastResult = Result{
			Address: address,
			Trap:    t.Name,
			Cycles:  cycles,
		}
		return nil
	}

	// fetch and decode. each byte is read from memory only once
	mc.fetched = mc.fetched[:0]
	fetch := func(offset int) (uint8, error) {
		for len(mc.fetched) <= offset {
			v, err := mc.mem.Read(address + uint16(len(mc.fetched)))
			if err != nil {
				return 0, err
			}
			mc.fetched = append(mc.fetched, v)
		}
		return mc.fetched[offset], nil
	}

	ins, err := mc.Instructions.Decode(fetch)
	if err != nil {
		return err
	}

	// operands follow the opcode
	for len(mc.fetched) < ins.Length() {
		if _, err := fetch(len(mc.fetched)); err != nil {
			return err
		}
	}
	operands := make([]uint8, ins.Length()-len(ins.Code()))
	copy(operands, mc.fetched[len(ins.Code()):ins.Length()])

	if mc.OnDecode != nil {
		mc.OnDecode(ins)
	}

	mc.PC.Load(address + uint16(ins.Length()))

	ctx := &Context{
		Mem:      mc.mem,
		Address:  address,
		Operands: operands,
	}

	ok, err := ins.Execute(ctx)
	if err != nil {
		return err
	}

	cycles := ins.Cycles() + ins.AdditionalCycles()
	mc.Tick(cycles)

	mc.LastResult = Result{
		Address:     address,
		Instruction: ins,
		Operands:    operands,
		Cycles:      cycles,
	}

	if !ok {
		mc.SetFault(curated.Errorf(Fault, address, ins.Mnemonic()))
		return mc.fault
	}

	return nil
}

// Snapshot is a copy of the state of the CPU.
type Snapshot struct {
	Model       string
	PC          uint16
	Status      uint8
	Registers   map[string]uint16
	ClockCycles uint64
	Killed      bool
	Faulted     bool
}

// Snapshot returns a copy of the current state of the CPU.
func (mc *CPU) Snapshot() Snapshot {
	s := Snapshot{
		Model:       mc.Model,
		PC:          mc.PC.Value(),
		Status:      mc.Status.Value(),
		Registers:   make(map[string]uint16, len(mc.Registers)),
		ClockCycles: mc.clockCycles,
		Killed:      mc.Killed,
		Faulted:     mc.Faulted(),
	}
	for _, r := range mc.Registers {
		s.Registers[r.Label()] = r.Value()
	}
	return s
}
