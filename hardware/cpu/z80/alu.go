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
	"github.com/emu8/emu8/hardware/bits"
)

// names of the eight ALU operations in opcode order
var aluNames = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

// names of the eight rotate and shift operations of the CB table
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

// szp returns the sign, zero, parity and undocumented flags for the value
func szp(v uint8) uint8 {
	f := v & (flagS | flagXY)
	if v == 0 {
		f |= flagZ
	}
	if bits.UByte(v).Parity() {
		f |= flagPV
	}
	return f
}

func (mc *CPU) add8(a uint8, v uint8, carry bool) uint8 {
	c := uint16(0)
	if carry {
		c = 1
	}
	sum := uint16(a) + uint16(v) + c
	res := uint8(sum)

	f := res & (flagS | flagXY)
	if res == 0 {
		f |= flagZ
	}
	if (a^v^res)&0x10 != 0 {
		f |= flagH
	}
	if (^(a ^ v))&(a^res)&0x80 != 0 {
		f |= flagPV
	}
	if sum > 0xff {
		f |= flagC
	}
	mc.setF(f)

	return res
}

func (mc *CPU) sub8(a uint8, v uint8, carry bool) uint8 {
	c := 0
	if carry {
		c = 1
	}
	diff := int(a) - int(v) - c
	res := uint8(diff)

	f := uint8(flagN) | res&(flagS|flagXY)
	if res == 0 {
		f |= flagZ
	}
	if (a^v^res)&0x10 != 0 {
		f |= flagH
	}
	if (a^v)&(a^res)&0x80 != 0 {
		f |= flagPV
	}
	if diff < 0 {
		f |= flagC
	}
	mc.setF(f)

	return res
}

// alu performs one of the eight ALU operations on the accumulator
func (mc *CPU) alu(op int, v uint8) {
	a := mc.A.Byte()
	switch op {
	case 0:
		mc.setA(mc.add8(a, v, false))
	case 1:
		mc.setA(mc.add8(a, v, mc.flag(flagC)))
	case 2:
		mc.setA(mc.sub8(a, v, false))
	case 3:
		mc.setA(mc.sub8(a, v, mc.flag(flagC)))
	case 4:
		mc.setA(a & v)
		mc.setF(szp(a&v) | flagH)
	case 5:
		mc.setA(a ^ v)
		mc.setF(szp(a ^ v))
	case 6:
		mc.setA(a | v)
		mc.setF(szp(a | v))
	case 7:
		// the undocumented flags of CP are taken from the operand
		mc.sub8(a, v, false)
		mc.setF(mc.f()&^flagXY | v&flagXY)
	}
}

func (mc *CPU) inc8(v uint8) uint8 {
	res := v + 1
	f := mc.f()&flagC | res&(flagS|flagXY)
	if res == 0 {
		f |= flagZ
	}
	if v&0x0f == 0x0f {
		f |= flagH
	}
	if v == 0x7f {
		f |= flagPV
	}
	mc.setF(f)
	return res
}

func (mc *CPU) dec8(v uint8) uint8 {
	res := v - 1
	f := mc.f()&flagC | flagN | res&(flagS|flagXY)
	if res == 0 {
		f |= flagZ
	}
	if v&0x0f == 0 {
		f |= flagH
	}
	if v == 0x80 {
		f |= flagPV
	}
	mc.setF(f)
	return res
}

// add16 is ADD HL,rr. the sign, zero and parity flags are not affected
func (mc *CPU) add16(a uint16, v uint16) uint16 {
	sum := uint32(a) + uint32(v)
	res := uint16(sum)

	f := mc.f()&(flagS|flagZ|flagPV) | uint8(res>>8)&flagXY
	if (a&0x0fff)+(v&0x0fff) > 0x0fff {
		f |= flagH
	}
	if sum > 0xffff {
		f |= flagC
	}
	mc.setF(f)

	return res
}

func (mc *CPU) adc16(a uint16, v uint16) uint16 {
	c := uint32(0)
	if mc.flag(flagC) {
		c = 1
	}
	sum := uint32(a) + uint32(v) + c
	res := uint16(sum)

	f := uint8(res>>8) & (flagS | flagXY)
	if res == 0 {
		f |= flagZ
	}
	if (uint32(a&0x0fff) + uint32(v&0x0fff) + c) > 0x0fff {
		f |= flagH
	}
	if (^(a ^ v))&(a^res)&0x8000 != 0 {
		f |= flagPV
	}
	if sum > 0xffff {
		f |= flagC
	}
	mc.setF(f)

	return res
}

func (mc *CPU) sbc16(a uint16, v uint16) uint16 {
	c := 0
	if mc.flag(flagC) {
		c = 1
	}
	diff := int(a) - int(v) - c
	res := uint16(diff)

	f := uint8(flagN) | uint8(res>>8)&(flagS|flagXY)
	if res == 0 {
		f |= flagZ
	}
	if int(a&0x0fff)-int(v&0x0fff)-c < 0 {
		f |= flagH
	}
	if (a^v)&(a^res)&0x8000 != 0 {
		f |= flagPV
	}
	if diff < 0 {
		f |= flagC
	}
	mc.setF(f)

	return res
}

// rotateA performs RLCA, RRCA, RLA and RRA. only the carry, half-carry,
// subtract and undocumented flags are affected
func (mc *CPU) rotateA(op int) {
	v, c := rotate(op, mc.A.Byte(), mc.flag(flagC))
	mc.setA(v)
	f := mc.f()&(flagS|flagZ|flagPV) | v&flagXY
	if c {
		f |= flagC
	}
	mc.setF(f)
}

// rotate performs one of the eight rotate and shift operations. returns the
// result and the carry
func rotate(op int, v uint8, carry bool) (uint8, bool) {
	u := bits.UByte(v)
	var c bool
	switch op {
	case 0: // RLC
		u, c = u.RotateLeftC()
	case 1: // RRC
		u, c = u.RotateRightC()
	case 2: // RL
		u, c = u.ShiftLeftC(carry)
	case 3: // RR
		u, c = u.ShiftRightC(carry)
	case 4: // SLA
		u, c = u.ShiftLeftC(false)
	case 5: // SRA
		u, c = u.ShiftRightC(v&0x80 == 0x80)
	case 6: // SLL
		u, c = u.ShiftLeftC(true)
	case 7: // SRL
		u, c = u.ShiftRightC(false)
	}
	return uint8(u), c
}

// rot performs a CB table rotate or shift and sets all flags
func (mc *CPU) rot(op int, v uint8) uint8 {
	res, c := rotate(op, v, mc.flag(flagC))
	f := szp(res)
	if c {
		f |= flagC
	}
	mc.setF(f)
	return res
}

// bit tests bit n of the value. the undocumented flags are taken from xy
func (mc *CPU) bit(n int, v uint8, xy uint8) {
	f := mc.f()&flagC | flagH | xy&flagXY
	if v&(0x01<<n) == 0 {
		f |= flagZ | flagPV
	} else if n == 7 {
		f |= flagS
	}
	mc.setF(f)
}

func (mc *CPU) daa() {
	a := mc.A.Byte()
	f := mc.f()

	var adj uint8
	carry := f&flagC == flagC
	if f&flagH == flagH || a&0x0f > 0x09 {
		adj |= 0x06
	}
	if carry || a > 0x99 {
		adj |= 0x60
		carry = true
	}

	var res uint8
	if f&flagN == flagN {
		res = a - adj
	} else {
		res = a + adj
	}

	nf := szp(res) | f&flagN
	if (a^res)&0x10 != 0 {
		nf |= flagH
	}
	if carry {
		nf |= flagC
	}

	mc.setA(res)
	mc.setF(nf)
}
