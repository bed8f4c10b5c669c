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

package z80

import (
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/cpu/registers"
)

// Model is the name of the CPU.
const Model = "Z80"

// Names of the interrupt lines.
const (
	NMI = "NMI"
	INT = "INT"
)

// Addresses used by the interrupt modes.
const (
	NMIAddress = uint16(0x0066)
	IM1Address = uint16(0x0038)
)

// Bits of the flags register.
const (
	flagC  = 0x01
	flagN  = 0x02
	flagPV = 0x04
	flagX  = 0x08
	flagH  = 0x10
	flagY  = 0x20
	flagZ  = 0x40
	flagS  = 0x80

	flagXY = flagX | flagY
)

// the opcode of the HALT instruction
const opHALT = 0x76

// CPU implements the Zilog Z80.
type CPU struct {
	*cpu.CPU

	ports cpu.PortBus

	A  *registers.Register
	BC *registers.Register
	DE *registers.Register
	HL *registers.Register
	IX *registers.Register
	IY *registers.Register
	SP *registers.Register
	I  *registers.Register
	R  *registers.Register

	// the alternate register set
	AltAF *registers.Register
	AltBC *registers.Register
	AltDE *registers.Register
	AltHL *registers.Register

	// interrupt flip-flops and the interrupt mode
	IFF1 bool
	IFF2 bool
	IM   int

	// the CPU has executed a HALT instruction and is waiting for an interrupt
	Halted bool

	// the value placed on the data bus by the interrupting device during
	// an interrupt acknowledge. used by interrupt modes 0 and 2
	DataBus uint8

	NMI *cpu.Interrupt
	INT *cpu.Interrupt

	// interrupts are not accepted immediately after EI
	eiDelay bool
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// ports argument can be nil, in which case IN instructions read $ff and OUT
// instructions are ignored.
func NewCPU(env *environment.Environment, mem cpu.Memory, ports cpu.PortBus) (*CPU, error) {
	mc := &CPU{
		CPU:     cpu.NewCPU(env, mem, Model, registers.NewStatusRegister(registers.FlagsZ80)),
		ports:   ports,
		DataBus: 0xff,
	}

	mc.A = mc.AddRegister("A", 1)
	mc.BC = mc.AddRegister("BC", 2)
	mc.DE = mc.AddRegister("DE", 2)
	mc.HL = mc.AddRegister("HL", 2)
	mc.IX = mc.AddRegister("IX", 2)
	mc.IY = mc.AddRegister("IY", 2)
	mc.SP = mc.AddRegister("SP", 2)
	mc.I = mc.AddRegister("I", 1)
	mc.R = mc.AddRegister("R", 1)
	mc.AltAF = mc.AddRegister("AF'", 2)
	mc.AltBC = mc.AddRegister("BC'", 2)
	mc.AltDE = mc.AddRegister("DE'", 2)
	mc.AltHL = mc.AddRegister("HL'", 2)

	mc.NMI = cpu.NewInterrupt(NMI, true, nil, func(_ *cpu.CPU) (int, error) {
		return mc.serveNMI()
	})
	mc.INT = cpu.NewInterrupt(INT, false, func(_ *cpu.CPU) bool {
		return mc.IFF1 && !mc.eiDelay
	}, func(_ *cpu.CPU) (int, error) {
		return mc.serveINT()
	})
	mc.AddInterrupt(mc.NMI)
	mc.AddInterrupt(mc.INT)

	mc.OnDecode = mc.refresh

	if err := mc.buildInstructions(); err != nil {
		return nil, err
	}

	return mc, nil
}

// Reset the CPU. Execution starts at address zero with interrupts disabled.
// The AF and SP registers are set to $ffff.
func (mc *CPU) Reset() error {
	mc.CPU.Reset()
	mc.PC.Load(0)
	mc.SetAF(0xffff)
	mc.SP.Load(0xffff)
	mc.I.Load(0)
	mc.R.Load(0)
	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0
	mc.Halted = false
	mc.eiDelay = false
	return nil
}

// refresh is called for every decoded instruction. the R register is
// incremented once for every opcode fetch, including prefixes. bit 7 of R is
// not changed.
func (mc *CPU) refresh(ins cpu.Instruction) {
	mc.incrementR(len(ins.Code()))
	mc.eiDelay = false
}

func (mc *CPU) incrementR(n int) {
	r := mc.R.Byte()
	mc.R.Load(uint16(r&0x80 | (r+uint8(n))&0x7f))
}

func (mc *CPU) f() uint8 {
	return mc.Status.Value()
}

func (mc *CPU) setF(v uint8) {
	mc.Status.Load(v)
}

func (mc *CPU) flag(mask uint8) bool {
	return mc.f()&mask == mask
}

func (mc *CPU) setA(v uint8) {
	mc.A.Load(uint16(v))
}

// AF returns the A and F registers as a register pair.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A.Byte())<<8 | uint16(mc.f())
}

// SetAF sets the A and F registers from a register pair value.
func (mc *CPU) SetAF(v uint16) {
	mc.setA(uint8(v >> 8))
	mc.setF(uint8(v))
}

func (mc *CPU) read16(address uint16) (uint16, error) {
	return mc.Read16Bit(address)
}

func (mc *CPU) write16(address uint16, v uint16) error {
	if err := mc.Write8Bit(address, uint8(v)); err != nil {
		return err
	}
	return mc.Write8Bit(address+1, uint8(v>>8))
}

// the stack is in normal memory and is addressed by the SP register
func (mc *CPU) push16(v uint16) error {
	mc.SP.Decrement()
	if err := mc.Write8Bit(mc.SP.Value(), uint8(v>>8)); err != nil {
		return err
	}
	mc.SP.Decrement()
	return mc.Write8Bit(mc.SP.Value(), uint8(v))
}

func (mc *CPU) pop16() (uint16, error) {
	lo, err := mc.Read8Bit(mc.SP.Value())
	if err != nil {
		return 0, err
	}
	mc.SP.Increment()
	hi, err := mc.Read8Bit(mc.SP.Value())
	if err != nil {
		return 0, err
	}
	mc.SP.Increment()
	return uint16(hi)<<8 | uint16(lo), nil
}

func (mc *CPU) in(port uint16) (uint8, error) {
	if mc.ports == nil {
		return 0xff, nil
	}
	return mc.ports.In(port)
}

func (mc *CPU) out(port uint16, v uint8) error {
	if mc.ports == nil {
		return nil
	}
	return mc.ports.Out(port, v)
}

// unhalt moves the program counter past the HALT instruction before an
// interrupt is served
func (mc *CPU) unhalt() {
	if mc.Halted {
		mc.Halted = false
		mc.PC.Increment()
	}
}

func (mc *CPU) serveNMI() (int, error) {
	mc.unhalt()
	mc.incrementR(1)
	mc.IFF2 = mc.IFF1
	mc.IFF1 = false
	if err := mc.push16(mc.PC.Value()); err != nil {
		return 0, err
	}
	mc.PC.Load(NMIAddress)
	return 11, nil
}

func (mc *CPU) serveINT() (int, error) {
	mc.unhalt()
	mc.incrementR(1)
	mc.IFF1 = false
	mc.IFF2 = false

	if err := mc.push16(mc.PC.Value()); err != nil {
		return 0, err
	}

	switch mc.IM {
	case 2:
		vector := uint16(mc.I.Byte())<<8 | uint16(mc.DataBus&0xfe)
		address, err := mc.read16(vector)
		if err != nil {
			return 0, err
		}
		mc.PC.Load(address)
		return 19, nil

	case 0:
		// only RST instructions are supported on the data bus. anything
		// else is treated as RST $38
		if mc.DataBus&0xc7 == 0xc7 {
			mc.PC.Load(uint16(mc.DataBus & 0x38))
		} else {
			mc.PC.Load(IM1Address)
		}
		return 13, nil
	}

	mc.PC.Load(IM1Address)
	return 13, nil
}
