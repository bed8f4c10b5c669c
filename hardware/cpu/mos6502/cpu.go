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

package mos6502

import (
	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/cpu/registers"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// List of supported models. The models differ in the peripherals built onto
// the chip, not in the instruction set.
const (
	Model6502 = "6502"
	Model6510 = "6510"
	Model7501 = "7501"
	Model8501 = "8501"
)

// Names of the interrupt lines.
const (
	NMI = "NMI"
	IRQ = "IRQ"
)

// StackError is returned by NewCPU() if the stack is not suitable for the
// 6502.
const StackError = "mos6502: stack must be 256 bytes growing from the back (%s)"

// the number of cycles taken to serve an interrupt
const interruptCycles = 7

// the position of the stack pointer after a reset
const resetStackPointer = 0xfd

// the B flag does not exist as a latch in the status register. it is only
// ever set in the copy of the status register pushed onto the stack
const breakMask = 0x10

// CPU implements the 6502 family of CPUs.
type CPU struct {
	*cpu.CPU

	A  *registers.Register
	X  *registers.Register
	Y  *registers.Register
	SP *registers.Register

	NMI *cpu.Interrupt
	IRQ *cpu.Interrupt

	stack *memory.Stack

	// scratch register used by instructions that work on memory
	acc8 *registers.Register
}

// NewCPU is the preferred method of initialisation for the CPU type.
//
// The stack is a subset of the same RAM that is connected to the CPU
// through the memory argument, normally page one. The stack must have been
// created with the fromBack and pointToEmpty arguments set.
func NewCPU(env *environment.Environment, mem cpu.Memory, stack *memory.Stack, model string) (*CPU, error) {
	if stack == nil || stack.Size() != 0x100 {
		return nil, curated.Errorf(StackError, model)
	}

	mc := &CPU{
		CPU:   cpu.NewCPU(env, mem, model, registers.NewStatusRegister(registers.Flags6502)),
		stack: stack,
		acc8:  registers.NewRegister(-1, "acc8", 1),
	}

	mc.A = mc.AddRegister("A", 1)
	mc.X = mc.AddRegister("X", 1)
	mc.Y = mc.AddRegister("Y", 1)
	mc.SP = mc.AddRegister("SP", 1)

	// NMI has priority over IRQ
	mc.NMI = cpu.NewInterrupt(NMI, true, nil, func(_ *cpu.CPU) (int, error) {
		return mc.interrupt(cpubus.NMI, NMI)
	})
	mc.IRQ = cpu.NewInterrupt(IRQ, false, func(c *cpu.CPU) bool {
		return !c.Status.Get(registers.InterruptDisable)
	}, func(_ *cpu.CPU) (int, error) {
		return mc.interrupt(cpubus.IRQ, IRQ)
	})
	mc.AddInterrupt(mc.NMI)
	mc.AddInterrupt(mc.IRQ)

	for _, defn := range Definitions {
		if err := mc.Instructions.Add(mc.newInstruction(defn)); err != nil {
			return nil, err
		}
	}

	return mc, nil
}

// Stack returns the stack used by the CPU.
func (mc *CPU) Stack() *memory.Stack {
	return mc.stack
}

// Reset the CPU. The program counter is loaded from the reset vector, the
// stack pointer is set to $fd and interrupts are disabled.
func (mc *CPU) Reset() error {
	mc.CPU.Reset()

	mc.stack.Initialise()
	mc.stack.SetPointer(resetStackPointer)
	mc.syncSP()

	mc.Status.Set(registers.InterruptDisable, true)

	pc, err := mc.Read16Bit(cpubus.Reset)
	if err != nil {
		return err
	}
	mc.PC.Load(pc)

	return nil
}

// ReturnFromSubroutine performs the stack operation of an RTS instruction.
// Used by traps that replace a subroutine in ROM.
func (mc *CPU) ReturnFromSubroutine() {
	mc.PC.Load(mc.pull16() + 1)
}

// LoadSP sets the stack pointer. Used by TXS and by the command interface.
func (mc *CPU) LoadSP(v uint8) {
	mc.stack.SetPointer(int(v))
	mc.syncSP()
}

func (mc *CPU) syncSP() {
	mc.SP.Load(uint16(uint8(mc.stack.Pointer())))
}

func (mc *CPU) push(v uint8) {
	mc.stack.Push(v)
	mc.syncSP()
}

func (mc *CPU) pull() uint8 {
	v := mc.stack.Pull()
	mc.syncSP()
	return v
}

func (mc *CPU) push16(v uint16) {
	mc.push(uint8(v >> 8))
	mc.push(uint8(v))
}

func (mc *CPU) pull16() uint16 {
	lo := mc.pull()
	hi := mc.pull()
	return uint16(hi)<<8 | uint16(lo)
}

// interrupt pushes the program counter and the status register, and loads the
// program counter from the vector. Used for NMI and IRQ.
func (mc *CPU) interrupt(vector uint16, name string) (int, error) {
	pc := mc.PC.Value()

	mc.push16(pc)
	mc.push(mc.Status.Value() &^ breakMask)
	if mc.stack.Overflow() {
		err := curated.Errorf(cpu.Fault, pc, name)
		mc.SetFault(err)
		return 0, err
	}

	mc.Status.Set(registers.InterruptDisable, true)

	address, err := mc.Read16Bit(vector)
	if err != nil {
		return 0, err
	}
	mc.PC.Load(address)

	return interruptCycles, nil
}

func (mc *CPU) newInstruction(defn Definition) *cpu.InstructionDefined {
	op := operations[defn.Mnemonic]

	exec := func(ctx *cpu.Context) (bool, int, error) {
		ea, err := mc.resolve(defn, ctx)
		if err != nil {
			return true, 0, err
		}

		additional, err := op(mc, ea)
		if err != nil {
			return true, 0, err
		}

		if defn.PageSensitive && ea.pageCrossed {
			additional++
		}

		return !mc.stack.Overflow(), additional, nil
	}

	return cpu.NewInstruction([]uint8{defn.OpCode}, defn.Mnemonic, defn.AddressingMode.Bytes(), defn.Cycles, exec, formatter(defn.AddressingMode))
}
