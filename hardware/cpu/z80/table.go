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
	"fmt"
	"strings"

	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/cpu/registers"
)

// prefix bytes
const (
	prefixCB = 0xcb
	prefixDD = 0xdd
	prefixED = 0xed
	prefixFD = 0xfd
)

// entry is an instruction in one of the instruction tables before it is added
// to the instruction set.
type entry struct {
	code []uint8
	name string

	// the operand part of the disassembly. the placeholders {d}, {e}, {n}
	// and {nn} are replaced with the operand bytes
	args string

	// number of operand bytes, not including any displacement
	operands int

	// the instruction takes a displacement byte when it is prefixed
	disp bool

	cycles int

	// the instruction refers to HL (or one of its halves). only indexed
	// entries are added to the DD and FD tables
	indexed bool

	// the number of cycles when prefixed, if it does not follow the normal
	// rule
	prefixedCycles int

	exec cpu.ExecuteFunc
}

// done is the return value of an instruction that can not fault
func done(err error) (bool, int, error) {
	return true, 0, err
}

// formatter returns the FormatFunc for the args template. operand bytes are
// addressed from the end of the operand list with the exception of the
// displacement, which is always first.
func formatter(args string) cpu.FormatFunc {
	if args == "" {
		return nil
	}
	return func(o []uint8) string {
		var pairs []string
		if len(o) > 0 {
			n := o[len(o)-1]
			pairs = append(pairs,
				"{d}", fmt.Sprintf("%+d", int8(o[0])),
				"{e}", fmt.Sprintf("$%+d", int(int8(o[0]))+2),
				"{n}", fmt.Sprintf("$%02x", n),
			)
			if len(o) > 1 {
				pairs = append(pairs, "{nn}", fmt.Sprintf("$%02x%02x", n, o[len(o)-2]))
			}
		}
		return strings.NewReplacer(pairs...).Replace(args)
	}
}

// reg8 is an 8 bit register or a half of a register pair.
type reg8 struct {
	name    string
	get     func() uint8
	set     func(uint8)
	indexed bool
}

// reg8 returns the register for the three bit register code. code 6 is not a
// register and must be handled by the caller. hl is the register pair that
// codes 4 and 5 refer to: HL, IX or IY.
func (mc *CPU) reg8(code int, hl *registers.Register) reg8 {
	half := func(s string) string {
		if hl == mc.HL {
			return s
		}
		return hl.Label() + s
	}

	switch code {
	case 0:
		return reg8{"B", mc.BC.High, mc.BC.LoadHigh, false}
	case 1:
		return reg8{"C", mc.BC.Low, mc.BC.LoadLow, false}
	case 2:
		return reg8{"D", mc.DE.High, mc.DE.LoadHigh, false}
	case 3:
		return reg8{"E", mc.DE.Low, mc.DE.LoadLow, false}
	case 4:
		return reg8{half("H"), hl.High, hl.LoadHigh, hl != mc.HL}
	case 5:
		return reg8{half("L"), hl.Low, hl.LoadLow, hl != mc.HL}
	}
	return reg8{"A", mc.A.Byte, mc.setA, false}
}

// rp returns the register pair for the two bit code. the fourth pair is SP.
func (mc *CPU) rp(code int, hl *registers.Register) *registers.Register {
	switch code {
	case 0:
		return mc.BC
	case 1:
		return mc.DE
	case 2:
		return hl
	}
	return mc.SP
}

var ccNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func (mc *CPU) condition(cc int) bool {
	f := mc.f()
	switch cc {
	case 0:
		return f&flagZ == 0
	case 1:
		return f&flagZ != 0
	case 2:
		return f&flagC == 0
	case 3:
		return f&flagC != 0
	case 4:
		return f&flagPV == 0
	case 5:
		return f&flagPV != 0
	case 6:
		return f&flagS == 0
	}
	return f&flagS != 0
}

func (mc *CPU) buildInstructions() error {
	add := func(e entry) error {
		length := len(e.code) + e.operands
		if e.disp {
			length++
		}
		return mc.Instructions.Add(cpu.NewInstruction(e.code, e.name, length, e.cycles, e.exec, formatter(e.args)))
	}

	for _, e := range mc.mainTable(mc.HL, 0) {
		if err := add(e); err != nil {
			return err
		}
	}
	for _, e := range mc.bitTable() {
		if err := add(e); err != nil {
			return err
		}
	}
	for _, e := range mc.extendedTable() {
		if err := add(e); err != nil {
			return err
		}
	}

	for _, idx := range []struct {
		prefix uint8
		reg    *registers.Register
	}{
		{prefix: prefixDD, reg: mc.IX},
		{prefix: prefixFD, reg: mc.IY},
	} {
		for _, e := range mc.mainTable(idx.reg, idx.prefix) {
			if !e.indexed {
				continue
			}
			switch {
			case e.prefixedCycles > 0:
				e.cycles = e.prefixedCycles
			case e.disp:
				e.cycles += 12
			default:
				e.cycles += 4
			}
			if err := add(e); err != nil {
				return err
			}
		}
		if err := mc.Instructions.Add(mc.indexedBitInstruction(idx.prefix, idx.reg)); err != nil {
			return err
		}
	}

	return nil
}

// mainTable returns the unprefixed instruction table when prefix is zero.
// otherwise it returns the table as seen through the DD or FD prefix, in
// which case hl is the index register.
func (mc *CPU) mainTable(hl *registers.Register, prefix uint8) []entry {
	prefixed := prefix != 0

	hname := hl.Label()
	mname := "(HL)"
	if prefixed {
		mname = fmt.Sprintf("(%s{d})", hname)
	}

	// the address of the (HL) or (IX+d) operand
	memory := func(ctx *cpu.Context) uint16 {
		if prefixed {
			return hl.Value() + uint16(int8(ctx.Operand8()))
		}
		return hl.Value()
	}

	// the last operand byte. the displacement comes before the immediate
	// value in LD (IX+d),n
	immediate := func(ctx *cpu.Context) uint8 {
		return ctx.Operands[len(ctx.Operands)-1]
	}

	t := make([]entry, 0, 256)

	for op := 0; op < 256; op++ {
		x, y, z := op>>6, (op>>3)&0x07, op&0x07
		p, q := y>>1, y&0x01

		e := entry{code: []uint8{uint8(op)}}
		if prefixed {
			e.code = []uint8{prefix, uint8(op)}
		}

		switch x {
		case 0:
			switch z {
			case 0:
				switch y {
				case 0:
					e.name, e.cycles = "NOP", 4
					e.exec = func(_ *cpu.Context) (bool, int, error) { return done(nil) }
				case 1:
					e.name, e.args, e.cycles = "EX", "AF,AF'", 4
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						v := mc.AF()
						mc.SetAF(mc.AltAF.Value())
						mc.AltAF.Load(v)
						return done(nil)
					}
				case 2:
					e.name, e.args, e.operands, e.cycles = "DJNZ", "{e}", 1, 8
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						mc.BC.LoadHigh(mc.BC.High() - 1)
						if mc.BC.High() != 0 {
							mc.PC.Displace(ctx.Operand8())
							return true, 5, nil
						}
						return done(nil)
					}
				case 3:
					e.name, e.args, e.operands, e.cycles = "JR", "{e}", 1, 12
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						mc.PC.Displace(ctx.Operand8())
						return done(nil)
					}
				default:
					cc := y - 4
					e.name, e.args, e.operands, e.cycles = "JR", ccNames[cc]+",{e}", 1, 7
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						if mc.condition(cc) {
							mc.PC.Displace(ctx.Operand8())
							return true, 5, nil
						}
						return done(nil)
					}
				}

			case 1:
				r := mc.rp(p, hl)
				e.indexed = r == hl
				if q == 0 {
					e.name, e.args, e.operands, e.cycles = "LD", r.Label()+",{nn}", 2, 10
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						r.Load(ctx.Operand16())
						return done(nil)
					}
				} else {
					e.name, e.args, e.cycles = "ADD", hname+","+r.Label(), 11
					e.indexed = true
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						hl.Load(mc.add16(hl.Value(), r.Value()))
						return done(nil)
					}
				}

			case 2:
				switch {
				case p < 2:
					r := mc.rp(p, hl)
					ind := "(" + r.Label() + ")"
					e.name, e.cycles = "LD", 7
					if q == 0 {
						e.args = ind + ",A"
						e.exec = func(_ *cpu.Context) (bool, int, error) {
							return done(mc.Write8Bit(r.Value(), mc.A.Byte()))
						}
					} else {
						e.args = "A," + ind
						e.exec = func(_ *cpu.Context) (bool, int, error) {
							v, err := mc.Read8Bit(r.Value())
							mc.setA(v)
							return done(err)
						}
					}
				case p == 2:
					e.name, e.operands, e.cycles, e.indexed = "LD", 2, 16, true
					if q == 0 {
						e.args = "({nn})," + hname
						e.exec = func(ctx *cpu.Context) (bool, int, error) {
							return done(mc.write16(ctx.Operand16(), hl.Value()))
						}
					} else {
						e.args = hname + ",({nn})"
						e.exec = func(ctx *cpu.Context) (bool, int, error) {
							v, err := mc.read16(ctx.Operand16())
							hl.Load(v)
							return done(err)
						}
					}
				default:
					e.name, e.operands, e.cycles = "LD", 2, 13
					if q == 0 {
						e.args = "({nn}),A"
						e.exec = func(ctx *cpu.Context) (bool, int, error) {
							return done(mc.Write8Bit(ctx.Operand16(), mc.A.Byte()))
						}
					} else {
						e.args = "A,({nn})"
						e.exec = func(ctx *cpu.Context) (bool, int, error) {
							v, err := mc.Read8Bit(ctx.Operand16())
							mc.setA(v)
							return done(err)
						}
					}
				}

			case 3:
				r := mc.rp(p, hl)
				e.args, e.cycles, e.indexed = r.Label(), 6, r == hl
				if q == 0 {
					e.name = "INC"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						r.Increment()
						return done(nil)
					}
				} else {
					e.name = "DEC"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						r.Decrement()
						return done(nil)
					}
				}

			case 4, 5:
				f := mc.inc8
				e.name = "INC"
				if z == 5 {
					f = mc.dec8
					e.name = "DEC"
				}
				if y == 6 {
					e.args, e.cycles, e.disp, e.indexed = mname, 11, prefixed, true
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						address := memory(ctx)
						v, err := mc.Read8Bit(address)
						if err != nil {
							return done(err)
						}
						return done(mc.Write8Bit(address, f(v)))
					}
				} else {
					r := mc.reg8(y, hl)
					e.args, e.cycles, e.indexed = r.name, 4, r.indexed
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						r.set(f(r.get()))
						return done(nil)
					}
				}

			case 6:
				e.name, e.operands = "LD", 1
				if y == 6 {
					e.args, e.cycles, e.disp, e.indexed = mname+",{n}", 10, prefixed, true
					e.prefixedCycles = 19
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						return done(mc.Write8Bit(memory(ctx), immediate(ctx)))
					}
				} else {
					r := mc.reg8(y, hl)
					e.args, e.cycles, e.indexed = r.name+",{n}", 7, r.indexed
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						r.set(immediate(ctx))
						return done(nil)
					}
				}

			case 7:
				e.cycles = 4
				switch y {
				case 0, 1, 2, 3:
					e.name = []string{"RLCA", "RRCA", "RLA", "RRA"}[y]
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.rotateA(y)
						return done(nil)
					}
				case 4:
					e.name = "DAA"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.daa()
						return done(nil)
					}
				case 5:
					e.name = "CPL"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						v := ^mc.A.Byte()
						mc.setA(v)
						mc.setF(mc.f()&(flagS|flagZ|flagPV|flagC) | flagH | flagN | v&flagXY)
						return done(nil)
					}
				case 6:
					e.name = "SCF"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.setF(mc.f()&(flagS|flagZ|flagPV) | flagC | mc.A.Byte()&flagXY)
						return done(nil)
					}
				case 7:
					e.name = "CCF"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						f := mc.f()
						nf := f&(flagS|flagZ|flagPV) | mc.A.Byte()&flagXY
						if f&flagC == flagC {
							nf |= flagH
						} else {
							nf |= flagC
						}
						mc.setF(nf)
						return done(nil)
					}
				}
			}

		case 1:
			switch {
			case y == 6 && z == 6:
				e.name, e.cycles = "HALT", 4
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					// the program counter stays on the HALT opcode until an
					// interrupt is served
					mc.Halted = true
					mc.PC.Load(mc.PC.Value() - 1)
					return done(nil)
				}
			case y == 6:
				src := mc.reg8(z, mc.HL)
				e.name, e.args, e.cycles, e.disp, e.indexed = "LD", mname+","+src.name, 7, prefixed, true
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					return done(mc.Write8Bit(memory(ctx), src.get()))
				}
			case z == 6:
				dst := mc.reg8(y, mc.HL)
				e.name, e.args, e.cycles, e.disp, e.indexed = "LD", dst.name+","+mname, 7, prefixed, true
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					v, err := mc.Read8Bit(memory(ctx))
					if err != nil {
						return done(err)
					}
					dst.set(v)
					return done(nil)
				}
			default:
				dst := mc.reg8(y, hl)
				src := mc.reg8(z, hl)
				e.name, e.args, e.cycles = "LD", dst.name+","+src.name, 4
				e.indexed = dst.indexed || src.indexed
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					dst.set(src.get())
					return done(nil)
				}
			}

		case 2:
			e.name = aluNames[y]
			operand := func(s string) string {
				// ADD, ADC and SBC name the accumulator explicitly
				if y == 0 || y == 1 || y == 3 {
					return "A," + s
				}
				return s
			}
			if z == 6 {
				e.args, e.cycles, e.disp, e.indexed = operand(mname), 7, prefixed, true
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					v, err := mc.Read8Bit(memory(ctx))
					if err != nil {
						return done(err)
					}
					mc.alu(y, v)
					return done(nil)
				}
			} else {
				r := mc.reg8(z, hl)
				e.args, e.cycles, e.indexed = operand(r.name), 4, r.indexed
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					mc.alu(y, r.get())
					return done(nil)
				}
			}

		case 3:
			switch z {
			case 0:
				e.name, e.args, e.cycles = "RET", ccNames[y], 5
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					if !mc.condition(y) {
						return done(nil)
					}
					pc, err := mc.pop16()
					mc.PC.Load(pc)
					return true, 6, err
				}

			case 1:
				if q == 0 {
					e.name, e.cycles = "POP", 10
					if p == 3 {
						e.args = "AF"
						e.exec = func(_ *cpu.Context) (bool, int, error) {
							v, err := mc.pop16()
							mc.SetAF(v)
							return done(err)
						}
					} else {
						r := mc.rp(p, hl)
						e.args, e.indexed = r.Label(), r == hl
						e.exec = func(_ *cpu.Context) (bool, int, error) {
							v, err := mc.pop16()
							r.Load(v)
							return done(err)
						}
					}
					break
				}
				switch p {
				case 0:
					e.name, e.cycles = "RET", 10
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						pc, err := mc.pop16()
						mc.PC.Load(pc)
						return done(err)
					}
				case 1:
					e.name, e.cycles = "EXX", 4
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						for _, pair := range [][2]*registers.Register{
							{mc.BC, mc.AltBC},
							{mc.DE, mc.AltDE},
							{mc.HL, mc.AltHL},
						} {
							v := pair[0].Value()
							pair[0].Load(pair[1].Value())
							pair[1].Load(v)
						}
						return done(nil)
					}
				case 2:
					e.name, e.args, e.cycles, e.indexed = "JP", "("+hname+")", 4, true
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.PC.Load(hl.Value())
						return done(nil)
					}
				case 3:
					e.name, e.args, e.cycles, e.indexed = "LD", "SP,"+hname, 6, true
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.SP.Load(hl.Value())
						return done(nil)
					}
				}

			case 2:
				e.name, e.args, e.operands, e.cycles = "JP", ccNames[y]+",{nn}", 2, 10
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					if mc.condition(y) {
						mc.PC.Load(ctx.Operand16())
					}
					return done(nil)
				}

			case 3:
				switch y {
				case 0:
					e.name, e.args, e.operands, e.cycles = "JP", "{nn}", 2, 10
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						mc.PC.Load(ctx.Operand16())
						return done(nil)
					}
				case 1:
					// CB prefix
					continue
				case 2:
					e.name, e.args, e.operands, e.cycles = "OUT", "({n}),A", 1, 11
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						a := mc.A.Byte()
						return done(mc.out(uint16(a)<<8|uint16(ctx.Operand8()), a))
					}
				case 3:
					e.name, e.args, e.operands, e.cycles = "IN", "A,({n})", 1, 11
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						v, err := mc.in(uint16(mc.A.Byte())<<8 | uint16(ctx.Operand8()))
						if err != nil {
							return done(err)
						}
						mc.setA(v)
						return done(nil)
					}
				case 4:
					e.name, e.args, e.cycles, e.indexed = "EX", "(SP),"+hname, 19, true
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						v, err := mc.read16(mc.SP.Value())
						if err != nil {
							return done(err)
						}
						if err := mc.write16(mc.SP.Value(), hl.Value()); err != nil {
							return done(err)
						}
						hl.Load(v)
						return done(nil)
					}
				case 5:
					// never affected by the index prefixes
					e.name, e.args, e.cycles = "EX", "DE,HL", 4
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						v := mc.DE.Value()
						mc.DE.Load(mc.HL.Value())
						mc.HL.Load(v)
						return done(nil)
					}
				case 6:
					e.name, e.cycles = "DI", 4
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.IFF1 = false
						mc.IFF2 = false
						return done(nil)
					}
				case 7:
					e.name, e.cycles = "EI", 4
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.IFF1 = true
						mc.IFF2 = true
						mc.eiDelay = true
						return done(nil)
					}
				}

			case 4:
				e.name, e.args, e.operands, e.cycles = "CALL", ccNames[y]+",{nn}", 2, 10
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					if !mc.condition(y) {
						return done(nil)
					}
					if err := mc.push16(mc.PC.Value()); err != nil {
						return done(err)
					}
					mc.PC.Load(ctx.Operand16())
					return true, 7, nil
				}

			case 5:
				if q == 0 {
					e.name, e.cycles = "PUSH", 11
					if p == 3 {
						e.args = "AF"
						e.exec = func(_ *cpu.Context) (bool, int, error) {
							return done(mc.push16(mc.AF()))
						}
					} else {
						r := mc.rp(p, hl)
						e.args, e.indexed = r.Label(), r == hl
						e.exec = func(_ *cpu.Context) (bool, int, error) {
							return done(mc.push16(r.Value()))
						}
					}
					break
				}
				if p != 0 {
					// DD, ED and FD prefixes
					continue
				}
				e.name, e.args, e.operands, e.cycles = "CALL", "{nn}", 2, 17
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					if err := mc.push16(mc.PC.Value()); err != nil {
						return done(err)
					}
					mc.PC.Load(ctx.Operand16())
					return done(nil)
				}

			case 6:
				e.name = aluNames[y]
				e.args = "{n}"
				if y == 0 || y == 1 || y == 3 {
					e.args = "A,{n}"
				}
				e.operands, e.cycles = 1, 7
				e.exec = func(ctx *cpu.Context) (bool, int, error) {
					mc.alu(y, ctx.Operand8())
					return done(nil)
				}

			case 7:
				address := uint16(y * 8)
				e.name, e.args, e.cycles = "RST", fmt.Sprintf("$%02x", address), 11
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					if err := mc.push16(mc.PC.Value()); err != nil {
						return done(err)
					}
					mc.PC.Load(address)
					return done(nil)
				}
			}
		}

		t = append(t, e)
	}

	return t
}

// bitTable returns the CB prefixed instructions.
func (mc *CPU) bitTable() []entry {
	t := make([]entry, 0, 256)

	for op := 0; op < 256; op++ {
		x, y, z := op>>6, (op>>3)&0x07, op&0x07

		e := entry{code: []uint8{prefixCB, uint8(op)}}

		var get func() (uint8, error)
		var set func(uint8) error
		var name string

		if z == 6 {
			name = "(HL)"
			get = func() (uint8, error) { return mc.Read8Bit(mc.HL.Value()) }
			set = func(v uint8) error { return mc.Write8Bit(mc.HL.Value(), v) }
		} else {
			r := mc.reg8(z, mc.HL)
			name = r.name
			get = func() (uint8, error) { return r.get(), nil }
			set = func(v uint8) error {
				r.set(v)
				return nil
			}
		}

		modify := func(f func(uint8) uint8) cpu.ExecuteFunc {
			return func(_ *cpu.Context) (bool, int, error) {
				v, err := get()
				if err != nil {
					return done(err)
				}
				return done(set(f(v)))
			}
		}

		cycles := 8
		if z == 6 {
			cycles = 15
		}

		switch x {
		case 0:
			e.name, e.args, e.cycles = rotNames[y], name, cycles
			e.exec = modify(func(v uint8) uint8 { return mc.rot(y, v) })
		case 1:
			e.name, e.args, e.cycles = "BIT", fmt.Sprintf("%d,%s", y, name), 8
			if z == 6 {
				e.cycles = 12
			}
			e.exec = func(_ *cpu.Context) (bool, int, error) {
				v, err := get()
				if err != nil {
					return done(err)
				}
				// the undocumented flags come from the operand for registers
				// and from the high byte of the address for (HL)
				xy := v
				if z == 6 {
					xy = mc.HL.High()
				}
				mc.bit(y, v, xy)
				return done(nil)
			}
		case 2:
			e.name, e.args, e.cycles = "RES", fmt.Sprintf("%d,%s", y, name), cycles
			e.exec = modify(func(v uint8) uint8 { return v &^ (0x01 << y) })
		case 3:
			e.name, e.args, e.cycles = "SET", fmt.Sprintf("%d,%s", y, name), cycles
			e.exec = modify(func(v uint8) uint8 { return v | (0x01 << y) })
		}

		t = append(t, e)
	}

	return t
}

// the modes selected by the IM instruction
var interruptModes = [8]int{0, 0, 1, 2, 0, 0, 1, 2}

// names of the block instructions, indexed by y-4 and z
var blockNames = [4][4]string{
	{"LDI", "CPI", "INI", "OUTI"},
	{"LDD", "CPD", "IND", "OUTD"},
	{"LDIR", "CPIR", "INIR", "OTIR"},
	{"LDDR", "CPDR", "INDR", "OTDR"},
}

// extendedTable returns the ED prefixed instructions. every opcode has an
// entry; the opcodes without a documented function are two byte NOPs.
func (mc *CPU) extendedTable() []entry {
	t := make([]entry, 0, 256)

	for op := 0; op < 256; op++ {
		x, y, z := op>>6, (op>>3)&0x07, op&0x07
		p, q := y>>1, y&0x01

		e := entry{
			code:   []uint8{prefixED, uint8(op)},
			name:   "NOP",
			cycles: 8,
			exec:   func(_ *cpu.Context) (bool, int, error) { return done(nil) },
		}

		switch {
		case x == 1:
			switch z {
			case 0:
				e.name, e.cycles = "IN", 12
				var r reg8
				if y == 6 {
					// affects the flags only
					e.args = "(C)"
				} else {
					r = mc.reg8(y, mc.HL)
					e.args = r.name + ",(C)"
				}
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					v, err := mc.in(mc.BC.Value())
					if err != nil {
						return done(err)
					}
					mc.setF(szp(v) | mc.f()&flagC)
					if r.set != nil {
						r.set(v)
					}
					return done(nil)
				}

			case 1:
				e.name, e.cycles = "OUT", 12
				if y == 6 {
					e.args = "(C),0"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						return done(mc.out(mc.BC.Value(), 0))
					}
				} else {
					r := mc.reg8(y, mc.HL)
					e.args = "(C)," + r.name
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						return done(mc.out(mc.BC.Value(), r.get()))
					}
				}

			case 2:
				r := mc.rp(p, mc.HL)
				e.args, e.cycles = "HL,"+r.Label(), 15
				if q == 0 {
					e.name = "SBC"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.HL.Load(mc.sbc16(mc.HL.Value(), r.Value()))
						return done(nil)
					}
				} else {
					e.name = "ADC"
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.HL.Load(mc.adc16(mc.HL.Value(), r.Value()))
						return done(nil)
					}
				}

			case 3:
				r := mc.rp(p, mc.HL)
				e.name, e.operands, e.cycles = "LD", 2, 20
				if q == 0 {
					e.args = "({nn})," + r.Label()
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						return done(mc.write16(ctx.Operand16(), r.Value()))
					}
				} else {
					e.args = r.Label() + ",({nn})"
					e.exec = func(ctx *cpu.Context) (bool, int, error) {
						v, err := mc.read16(ctx.Operand16())
						r.Load(v)
						return done(err)
					}
				}

			case 4:
				e.name = "NEG"
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					mc.setA(mc.sub8(0, mc.A.Byte(), false))
					return done(nil)
				}

			case 5:
				e.name, e.cycles = "RETN", 14
				if y == 1 {
					e.name = "RETI"
				}
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					pc, err := mc.pop16()
					mc.PC.Load(pc)
					mc.IFF1 = mc.IFF2
					return done(err)
				}

			case 6:
				mode := interruptModes[y]
				e.name, e.args = "IM", fmt.Sprintf("%d", mode)
				e.exec = func(_ *cpu.Context) (bool, int, error) {
					mc.IM = mode
					return done(nil)
				}

			case 7:
				switch y {
				case 0:
					e.name, e.args, e.cycles = "LD", "I,A", 9
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.I.Load(uint16(mc.A.Byte()))
						return done(nil)
					}
				case 1:
					e.name, e.args, e.cycles = "LD", "R,A", 9
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						mc.R.Load(uint16(mc.A.Byte()))
						return done(nil)
					}
				case 2, 3:
					src := mc.I
					e.name, e.args, e.cycles = "LD", "A,I", 9
					if y == 3 {
						src = mc.R
						e.args = "A,R"
					}
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						v := src.Byte()
						mc.setA(v)
						f := mc.f()&flagC | v&(flagS|flagXY)
						if v == 0 {
							f |= flagZ
						}
						if mc.IFF2 {
							f |= flagPV
						}
						mc.setF(f)
						return done(nil)
					}
				case 4:
					e.name, e.cycles = "RRD", 18
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						return done(mc.rotateDigit(false))
					}
				case 5:
					e.name, e.cycles = "RLD", 18
					e.exec = func(_ *cpu.Context) (bool, int, error) {
						return done(mc.rotateDigit(true))
					}
				}
			}

		case x == 2 && z <= 3 && y >= 4:
			e.name, e.cycles = blockNames[y-4][z], 16
			e.exec = mc.block(z, y&0x01 == 0x01, y >= 6)
		}

		t = append(t, e)
	}

	return t
}

// rotateDigit implements RLD and RRD.
func (mc *CPU) rotateDigit(left bool) error {
	address := mc.HL.Value()
	v, err := mc.Read8Bit(address)
	if err != nil {
		return err
	}

	a := mc.A.Byte()
	var res uint8
	if left {
		res = v<<4 | a&0x0f
		a = a&0xf0 | v>>4
	} else {
		res = a<<4 | v>>4
		a = a&0xf0 | v&0x0f
	}

	mc.setA(a)
	mc.setF(szp(a) | mc.f()&flagC)

	return mc.Write8Bit(address, res)
}

// block returns the ExecuteFunc for one of the block instructions. kind is
// the z field of the opcode: transfer, compare, input or output. a repeating
// instruction leaves the program counter on itself until it completes.
func (mc *CPU) block(kind int, decrement bool, repeat bool) cpu.ExecuteFunc {
	step := func(r *registers.Register) {
		if decrement {
			r.Decrement()
		} else {
			r.Increment()
		}
	}

	again := func(ctx *cpu.Context, cond bool) (bool, int, error) {
		if repeat && cond {
			mc.PC.Load(ctx.Address)
			return true, 5, nil
		}
		return done(nil)
	}

	switch kind {
	case 0:
		return func(ctx *cpu.Context) (bool, int, error) {
			v, err := mc.Read8Bit(mc.HL.Value())
			if err != nil {
				return done(err)
			}
			if err := mc.Write8Bit(mc.DE.Value(), v); err != nil {
				return done(err)
			}
			step(mc.HL)
			step(mc.DE)
			mc.BC.Decrement()

			n := v + mc.A.Byte()
			f := mc.f()&(flagS|flagZ|flagC) | n&flagX | (n<<4)&flagY
			if mc.BC.Value() != 0 {
				f |= flagPV
			}
			mc.setF(f)

			return again(ctx, mc.BC.Value() != 0)
		}

	case 1:
		return func(ctx *cpu.Context) (bool, int, error) {
			v, err := mc.Read8Bit(mc.HL.Value())
			if err != nil {
				return done(err)
			}
			step(mc.HL)
			mc.BC.Decrement()

			a := mc.A.Byte()
			res := a - v
			h := (a ^ v ^ res) & flagH
			n := res
			if h != 0 {
				n--
			}

			f := flagN | mc.f()&flagC | res&flagS | h | n&flagX | (n<<4)&flagY
			if res == 0 {
				f |= flagZ
			}
			if mc.BC.Value() != 0 {
				f |= flagPV
			}
			mc.setF(f)

			return again(ctx, mc.BC.Value() != 0 && res != 0)
		}

	case 2:
		return func(ctx *cpu.Context) (bool, int, error) {
			v, err := mc.in(mc.BC.Value())
			if err != nil {
				return done(err)
			}
			if err := mc.Write8Bit(mc.HL.Value(), v); err != nil {
				return done(err)
			}
			step(mc.HL)
			mc.BC.LoadHigh(mc.BC.High() - 1)
			mc.blockIOFlags()
			return again(ctx, mc.BC.High() != 0)
		}
	}

	return func(ctx *cpu.Context) (bool, int, error) {
		v, err := mc.Read8Bit(mc.HL.Value())
		if err != nil {
			return done(err)
		}
		mc.BC.LoadHigh(mc.BC.High() - 1)
		if err := mc.out(mc.BC.Value(), v); err != nil {
			return done(err)
		}
		step(mc.HL)
		mc.blockIOFlags()
		return again(ctx, mc.BC.High() != 0)
	}
}

// blockIOFlags sets the flags after one of the block input or output
// instructions. the flags depend on the value of the B register.
func (mc *CPU) blockIOFlags() {
	b := mc.BC.High()
	f := mc.f()&flagC | flagN | b&(flagS|flagXY)
	if b == 0 {
		f |= flagZ
	}
	mc.setF(f)
}

// indexedBit is the DDCB or FDCB instruction. the instruction takes two
// operand bytes: the displacement and the opcode that selects the operation.
type indexedBit struct {
	*cpu.InstructionDefined
	index string
	mc    *CPU
}

// Disassemble implements the cpu.Instruction interface.
func (ins *indexedBit) Disassemble(operands []uint8) string {
	if len(operands) < 2 {
		return ins.Mnemonic()
	}

	op := operands[1]
	x, y, z := int(op>>6), int(op>>3)&0x07, int(op&0x07)
	m := fmt.Sprintf("(%s%+d)", ins.index, int8(operands[0]))

	var s string
	switch x {
	case 0:
		s = fmt.Sprintf("%s %s", rotNames[y], m)
	case 1:
		return fmt.Sprintf("BIT %d,%s", y, m)
	case 2:
		s = fmt.Sprintf("RES %d,%s", y, m)
	case 3:
		s = fmt.Sprintf("SET %d,%s", y, m)
	}

	// the undocumented forms also copy the result to a register
	if z != 6 {
		s = fmt.Sprintf("%s,%s", s, ins.mc.reg8(z, ins.mc.HL).name)
	}

	return s
}

func (mc *CPU) indexedBitInstruction(prefix uint8, idx *registers.Register) *indexedBit {
	exec := func(ctx *cpu.Context) (bool, int, error) {
		address := idx.Value() + uint16(int8(ctx.Operands[0]))
		op := ctx.Operands[1]
		x, y, z := int(op>>6), int(op>>3)&0x07, int(op&0x07)

		v, err := mc.Read8Bit(address)
		if err != nil {
			return done(err)
		}

		switch x {
		case 0:
			v = mc.rot(y, v)
		case 1:
			mc.bit(y, v, uint8(address>>8))
			return done(nil)
		case 2:
			v &^= 0x01 << y
		case 3:
			v |= 0x01 << y
		}

		if z != 6 {
			mc.reg8(z, mc.HL).set(v)
		}

		return true, 3, mc.Write8Bit(address, v)
	}

	return &indexedBit{
		InstructionDefined: cpu.NewInstruction([]uint8{prefix, prefixCB}, "BIT", 4, 20, exec, nil),
		index:              idx.Label(),
		mc:                 mc,
	}
}
