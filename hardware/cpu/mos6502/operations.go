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
	"github.com/emu8/emu8/hardware/cpu/registers"
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// operation performs the instruction with the resolved operand. returns the
// number of additional cycles taken.
type operation func(mc *CPU, op operand) (int, error)

var operations = map[string]operation{
	// load and store
	"LDA": (*CPU).lda,
	"LDX": (*CPU).ldx,
	"LDY": (*CPU).ldy,
	"STA": (*CPU).sta,
	"STX": (*CPU).stx,
	"STY": (*CPU).sty,

	// transfer
	"TAX": (*CPU).tax,
	"TAY": (*CPU).tay,
	"TXA": (*CPU).txa,
	"TYA": (*CPU).tya,
	"TSX": (*CPU).tsx,
	"TXS": (*CPU).txs,

	// stack
	"PHA": (*CPU).pha,
	"PHP": (*CPU).php,
	"PLA": (*CPU).pla,
	"PLP": (*CPU).plp,

	// arithmetic and logic
	"ADC": (*CPU).adcOp,
	"SBC": (*CPU).sbcOp,
	"AND": (*CPU).and,
	"ORA": (*CPU).ora,
	"EOR": (*CPU).eor,
	"CMP": (*CPU).cmp,
	"CPX": (*CPU).cpx,
	"CPY": (*CPU).cpy,
	"BIT": (*CPU).bit,

	// increment and decrement
	"INC": (*CPU).inc,
	"DEC": (*CPU).dec,
	"INX": (*CPU).inx,
	"INY": (*CPU).iny,
	"DEX": (*CPU).dex,
	"DEY": (*CPU).dey,

	// shifts
	"ASL": (*CPU).asl,
	"LSR": (*CPU).lsr,
	"ROL": (*CPU).rol,
	"ROR": (*CPU).ror,

	// flags
	"CLC": flag(registers.Carry, false),
	"SEC": flag(registers.Carry, true),
	"CLI": flag(registers.InterruptDisable, false),
	"SEI": flag(registers.InterruptDisable, true),
	"CLD": flag(registers.DecimalMode, false),
	"SED": flag(registers.DecimalMode, true),
	"CLV": flag(registers.Overflow, false),

	// flow
	"JMP": (*CPU).jmp,
	"JSR": (*CPU).jsr,
	"RTS": (*CPU).rts,
	"BRK": (*CPU).brk,
	"RTI": (*CPU).rti,
	"BCC": branch(registers.Carry, false),
	"BCS": branch(registers.Carry, true),
	"BNE": branch(registers.Zero, false),
	"BEQ": branch(registers.Zero, true),
	"BPL": branch(registers.Sign, false),
	"BMI": branch(registers.Sign, true),
	"BVC": branch(registers.Overflow, false),
	"BVS": branch(registers.Overflow, true),

	"NOP": (*CPU).nop,

	// undocumented
	"SLO": (*CPU).slo,
	"RLA": (*CPU).rla,
	"SRE": (*CPU).sre,
	"RRA": (*CPU).rra,
	"SAX": (*CPU).sax,
	"LAX": (*CPU).lax,
	"DCP": (*CPU).dcp,
	"ISC": (*CPU).isc,
	"ANC": (*CPU).anc,
	"ASR": (*CPU).asr,
	"ARR": (*CPU).arr,
	"AXS": (*CPU).axs,
	"XAA": (*CPU).xaa,
	"AHX": (*CPU).ahx,
	"SHX": (*CPU).shx,
	"SHY": (*CPU).shy,
	"TAS": (*CPU).tas,
	"LAS": (*CPU).las,
	"KIL": (*CPU).kil,
}

// the "magic" constant of the unstable XAA and immediate LAX instructions.
// the value differs between chips. $ee is the value most commonly seen
const magic = 0xee

func (mc *CPU) setNZ(v uint8) {
	mc.Status.Set(registers.Zero, v == 0)
	mc.Status.Set(registers.Sign, v&0x80 == 0x80)
}

func (mc *CPU) loadRegister(r *registers.Register, op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	r.Load(uint16(v))
	mc.setNZ(v)
	return 0, nil
}

func (mc *CPU) lda(op operand) (int, error) {
	return mc.loadRegister(mc.A, op)
}

func (mc *CPU) ldx(op operand) (int, error) {
	return mc.loadRegister(mc.X, op)
}

func (mc *CPU) ldy(op operand) (int, error) {
	return mc.loadRegister(mc.Y, op)
}

func (mc *CPU) sta(op operand) (int, error) {
	return 0, mc.store(op, mc.A.Byte())
}

func (mc *CPU) stx(op operand) (int, error) {
	return 0, mc.store(op, mc.X.Byte())
}

func (mc *CPU) sty(op operand) (int, error) {
	return 0, mc.store(op, mc.Y.Byte())
}

func (mc *CPU) transfer(from *registers.Register, to *registers.Register) {
	to.Load(uint16(from.Byte()))
	mc.setNZ(to.Byte())
}

func (mc *CPU) tax(_ operand) (int, error) {
	mc.transfer(mc.A, mc.X)
	return 0, nil
}

func (mc *CPU) tay(_ operand) (int, error) {
	mc.transfer(mc.A, mc.Y)
	return 0, nil
}

func (mc *CPU) txa(_ operand) (int, error) {
	mc.transfer(mc.X, mc.A)
	return 0, nil
}

func (mc *CPU) tya(_ operand) (int, error) {
	mc.transfer(mc.Y, mc.A)
	return 0, nil
}

func (mc *CPU) tsx(_ operand) (int, error) {
	mc.transfer(mc.SP, mc.X)
	return 0, nil
}

// TXS does not affect the status register
func (mc *CPU) txs(_ operand) (int, error) {
	mc.LoadSP(mc.X.Byte())
	return 0, nil
}

func (mc *CPU) pha(_ operand) (int, error) {
	mc.push(mc.A.Byte())
	return 0, nil
}

func (mc *CPU) php(_ operand) (int, error) {
	mc.push(mc.Status.Value() | breakMask)
	return 0, nil
}

func (mc *CPU) pla(_ operand) (int, error) {
	v := mc.pull()
	mc.A.Load(uint16(v))
	mc.setNZ(v)
	return 0, nil
}

func (mc *CPU) plp(_ operand) (int, error) {
	mc.Status.Load(mc.pull() &^ breakMask)
	return 0, nil
}

// adc adds the value to the accumulator in binary or decimal mode depending
// on the state of the decimal flag.
func (mc *CPU) adc(v uint8) {
	carry := mc.Status.Get(registers.Carry)
	if mc.Status.Get(registers.DecimalMode) {
		c, z, o, n := mc.A.AddDecimal(v, carry)
		mc.Status.Set(registers.Carry, c)
		mc.Status.Set(registers.Zero, z)
		mc.Status.Set(registers.Overflow, o)
		mc.Status.Set(registers.Sign, n)
		return
	}
	c, o := mc.A.Add(v, carry)
	mc.Status.Set(registers.Carry, c)
	mc.Status.Set(registers.Overflow, o)
	mc.setNZ(mc.A.Byte())
}

func (mc *CPU) sbc(v uint8) {
	carry := mc.Status.Get(registers.Carry)
	if mc.Status.Get(registers.DecimalMode) {
		c, z, o, n := mc.A.SubtractDecimal(v, carry)
		mc.Status.Set(registers.Carry, c)
		mc.Status.Set(registers.Zero, z)
		mc.Status.Set(registers.Overflow, o)
		mc.Status.Set(registers.Sign, n)
		return
	}
	c, o := mc.A.Subtract(v, carry)
	mc.Status.Set(registers.Carry, c)
	mc.Status.Set(registers.Overflow, o)
	mc.setNZ(mc.A.Byte())
}

func (mc *CPU) adcOp(op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	mc.adc(v)
	return 0, nil
}

func (mc *CPU) sbcOp(op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	mc.sbc(v)
	return 0, nil
}

func (mc *CPU) logic(op operand, f func(r *registers.Register, v uint8)) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	f(mc.A, v)
	mc.setNZ(mc.A.Byte())
	return 0, nil
}

func (mc *CPU) and(op operand) (int, error) {
	return mc.logic(op, (*registers.Register).AND)
}

func (mc *CPU) ora(op operand) (int, error) {
	return mc.logic(op, (*registers.Register).ORA)
}

func (mc *CPU) eor(op operand) (int, error) {
	return mc.logic(op, (*registers.Register).EOR)
}

// compare can be implemented with binary subtract even if decimal mode is
// active. the meaning is the same
func (mc *CPU) compare(r *registers.Register, v uint8) {
	mc.acc8.Load(uint16(r.Byte()))
	c, _ := mc.acc8.Subtract(v, true)
	mc.Status.Set(registers.Carry, c)
	mc.setNZ(mc.acc8.Byte())
}

func (mc *CPU) compareOp(r *registers.Register, op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	mc.compare(r, v)
	return 0, nil
}

func (mc *CPU) cmp(op operand) (int, error) {
	return mc.compareOp(mc.A, op)
}

func (mc *CPU) cpx(op operand) (int, error) {
	return mc.compareOp(mc.X, op)
}

func (mc *CPU) cpy(op operand) (int, error) {
	return mc.compareOp(mc.Y, op)
}

func (mc *CPU) bit(op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	mc.Status.Set(registers.Sign, v&0x80 == 0x80)
	mc.Status.Set(registers.Overflow, v&0x40 == 0x40)
	mc.Status.Set(registers.Zero, v&mc.A.Byte() == 0)
	return 0, nil
}

func (mc *CPU) inc(op operand) (int, error) {
	v, err := mc.modify(op, func(v uint8) uint8 { return v + 1 })
	mc.setNZ(v)
	return 0, err
}

func (mc *CPU) dec(op operand) (int, error) {
	v, err := mc.modify(op, func(v uint8) uint8 { return v - 1 })
	mc.setNZ(v)
	return 0, err
}

func (mc *CPU) inx(_ operand) (int, error) {
	mc.X.Increment()
	mc.setNZ(mc.X.Byte())
	return 0, nil
}

func (mc *CPU) iny(_ operand) (int, error) {
	mc.Y.Increment()
	mc.setNZ(mc.Y.Byte())
	return 0, nil
}

func (mc *CPU) dex(_ operand) (int, error) {
	mc.X.Decrement()
	mc.setNZ(mc.X.Byte())
	return 0, nil
}

func (mc *CPU) dey(_ operand) (int, error) {
	mc.Y.Decrement()
	mc.setNZ(mc.Y.Byte())
	return 0, nil
}

// shift performs one of the shift or rotate operations of the scratch
// register on the operand
func (mc *CPU) shift(op operand, f func(r *registers.Register) bool) (uint8, error) {
	return mc.modify(op, func(v uint8) uint8 {
		mc.acc8.Load(uint16(v))
		mc.Status.Set(registers.Carry, f(mc.acc8))
		mc.setNZ(mc.acc8.Byte())
		return mc.acc8.Byte()
	})
}

func (mc *CPU) aslValue(op operand) (uint8, error) {
	return mc.shift(op, (*registers.Register).ASL)
}

func (mc *CPU) lsrValue(op operand) (uint8, error) {
	return mc.shift(op, (*registers.Register).LSR)
}

func (mc *CPU) rolValue(op operand) (uint8, error) {
	carry := mc.Status.Get(registers.Carry)
	return mc.shift(op, func(r *registers.Register) bool { return r.ROL(carry) })
}

func (mc *CPU) rorValue(op operand) (uint8, error) {
	carry := mc.Status.Get(registers.Carry)
	return mc.shift(op, func(r *registers.Register) bool { return r.ROR(carry) })
}

func (mc *CPU) asl(op operand) (int, error) {
	_, err := mc.aslValue(op)
	return 0, err
}

func (mc *CPU) lsr(op operand) (int, error) {
	_, err := mc.lsrValue(op)
	return 0, err
}

func (mc *CPU) rol(op operand) (int, error) {
	_, err := mc.rolValue(op)
	return 0, err
}

func (mc *CPU) ror(op operand) (int, error) {
	_, err := mc.rorValue(op)
	return 0, err
}

func flag(f registers.Flag, v bool) operation {
	return func(mc *CPU, _ operand) (int, error) {
		mc.Status.Set(f, v)
		return 0, nil
	}
}

// branch returns an operation that displaces the program counter if the flag
// is in the required state. a branch that is taken costs one additional cycle
// and a further cycle if the destination is in a different page.
func branch(f registers.Flag, v bool) operation {
	return func(mc *CPU, op operand) (int, error) {
		if mc.Status.Get(f) != v {
			return 0, nil
		}
		if mc.PC.Displace(op.value) {
			return 2, nil
		}
		return 1, nil
	}
}

func (mc *CPU) jmp(op operand) (int, error) {
	mc.PC.Load(op.address)
	return 0, nil
}

// JSR pushes the address of the last byte of the instruction. RTS adds one to
// the pulled address
func (mc *CPU) jsr(op operand) (int, error) {
	mc.push16(mc.PC.Value() - 1)
	mc.PC.Load(op.address)
	return 0, nil
}

func (mc *CPU) rts(_ operand) (int, error) {
	mc.PC.Load(mc.pull16() + 1)
	return 0, nil
}

// BRK is a two byte instruction as far as the return address is concerned.
// the byte following the opcode is skipped by RTI
func (mc *CPU) brk(_ operand) (int, error) {
	mc.push16(mc.PC.Value() + 1)
	mc.push(mc.Status.Value() | breakMask)
	mc.Status.Set(registers.InterruptDisable, true)

	address, err := mc.Read16Bit(cpubus.BRK)
	if err != nil {
		return 0, err
	}
	mc.PC.Load(address)

	return 0, nil
}

func (mc *CPU) rti(_ operand) (int, error) {
	mc.Status.Load(mc.pull() &^ breakMask)
	mc.PC.Load(mc.pull16())
	return 0, nil
}

// the undocumented NOPs with an operand perform the read
func (mc *CPU) nop(op operand) (int, error) {
	switch op.mode {
	case Implied, Immediate:
		return 0, nil
	}
	_, err := mc.load(op)
	return 0, err
}

func (mc *CPU) slo(op operand) (int, error) {
	v, err := mc.aslValue(op)
	if err != nil {
		return 0, err
	}
	mc.A.ORA(v)
	mc.setNZ(mc.A.Byte())
	return 0, nil
}

func (mc *CPU) rla(op operand) (int, error) {
	v, err := mc.rolValue(op)
	if err != nil {
		return 0, err
	}
	mc.A.AND(v)
	mc.setNZ(mc.A.Byte())
	return 0, nil
}

func (mc *CPU) sre(op operand) (int, error) {
	v, err := mc.lsrValue(op)
	if err != nil {
		return 0, err
	}
	mc.A.EOR(v)
	mc.setNZ(mc.A.Byte())
	return 0, nil
}

func (mc *CPU) rra(op operand) (int, error) {
	v, err := mc.rorValue(op)
	if err != nil {
		return 0, err
	}
	mc.adc(v)
	return 0, nil
}

func (mc *CPU) sax(op operand) (int, error) {
	return 0, mc.store(op, mc.A.Byte()&mc.X.Byte())
}

func (mc *CPU) lax(op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	if op.mode == Immediate {
		v &= mc.A.Byte() | magic
	}
	mc.A.Load(uint16(v))
	mc.X.Load(uint16(v))
	mc.setNZ(v)
	return 0, nil
}

func (mc *CPU) dcp(op operand) (int, error) {
	v, err := mc.modify(op, func(v uint8) uint8 { return v - 1 })
	if err != nil {
		return 0, err
	}
	mc.compare(mc.A, v)
	return 0, nil
}

func (mc *CPU) isc(op operand) (int, error) {
	v, err := mc.modify(op, func(v uint8) uint8 { return v + 1 })
	if err != nil {
		return 0, err
	}
	mc.sbc(v)
	return 0, nil
}

func (mc *CPU) anc(op operand) (int, error) {
	mc.A.AND(op.value)
	mc.setNZ(mc.A.Byte())
	mc.Status.Set(registers.Carry, mc.Status.Get(registers.Sign))
	return 0, nil
}

func (mc *CPU) asr(op operand) (int, error) {
	mc.A.AND(op.value)
	mc.Status.Set(registers.Carry, mc.A.LSR())
	mc.setNZ(mc.A.Byte())
	return 0, nil
}

// ARR is emulated in binary mode only
func (mc *CPU) arr(op operand) (int, error) {
	mc.A.AND(op.value)
	mc.A.ROR(mc.Status.Get(registers.Carry))
	v := mc.A.Byte()
	mc.setNZ(v)
	mc.Status.Set(registers.Carry, v&0x40 == 0x40)
	mc.Status.Set(registers.Overflow, (v>>6^v>>5)&0x01 == 0x01)
	return 0, nil
}

func (mc *CPU) axs(op operand) (int, error) {
	t := mc.A.Byte() & mc.X.Byte()
	mc.X.Load(uint16(t - op.value))
	mc.Status.Set(registers.Carry, t >= op.value)
	mc.setNZ(mc.X.Byte())
	return 0, nil
}

func (mc *CPU) xaa(op operand) (int, error) {
	v := (mc.A.Byte() | magic) & mc.X.Byte() & op.value
	mc.A.Load(uint16(v))
	mc.setNZ(v)
	return 0, nil
}

// the unstable store instructions AND the value with the high byte of the
// base address plus one
func (mc *CPU) unstable(op operand, v uint8) error {
	return mc.store(op, v&(uint8(op.base>>8)+1))
}

func (mc *CPU) ahx(op operand) (int, error) {
	return 0, mc.unstable(op, mc.A.Byte()&mc.X.Byte())
}

func (mc *CPU) shx(op operand) (int, error) {
	return 0, mc.unstable(op, mc.X.Byte())
}

func (mc *CPU) shy(op operand) (int, error) {
	return 0, mc.unstable(op, mc.Y.Byte())
}

func (mc *CPU) tas(op operand) (int, error) {
	mc.LoadSP(mc.A.Byte() & mc.X.Byte())
	return 0, mc.unstable(op, mc.SP.Byte())
}

func (mc *CPU) las(op operand) (int, error) {
	v, err := mc.load(op)
	if err != nil {
		return 0, err
	}
	v &= mc.SP.Byte()
	mc.A.Load(uint16(v))
	mc.X.Load(uint16(v))
	mc.LoadSP(v)
	mc.setNZ(v)
	return 0, nil
}

// KIL stops the CPU. the program counter is left at the KIL instruction
func (mc *CPU) kil(op operand) (int, error) {
	mc.Killed = true
	mc.PC.Load(op.instruction)
	if env := mc.Env(); env != nil {
		env.Logf("mos6502", "KIL at %#04x", op.instruction)
	}
	return 0, nil
}
