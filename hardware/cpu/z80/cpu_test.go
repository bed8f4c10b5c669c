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

package z80_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/cpu/z80"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/test"
)

type mockPorts struct {
	in  map[uint16]uint8
	out map[uint16]uint8
}

func (p *mockPorts) In(port uint16) (uint8, error) {
	if v, ok := p.in[port]; ok {
		return v, nil
	}
	return 0xff, nil
}

func (p *mockPorts) Out(port uint16, data uint8) error {
	p.out[port] = data
	return nil
}

func newCPU(t *testing.T, program ...uint8) (*z80.CPU, *memory.Memory, *mockPorts) {
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

	ports := &mockPorts{
		in:  make(map[uint16]uint8),
		out: make(map[uint16]uint8),
	}

	mc, err := z80.NewCPU(env, mem, ports)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mc.Reset())

	put(t, mem, 0x0000, program...)

	return mc, mem, ports
}

func put(t *testing.T, mem *memory.Memory, address uint16, bytes ...uint8) {
	t.Helper()
	for i, b := range bytes {
		test.DemandSuccess(t, mem.Poke(address+uint16(i), b))
	}
}

func peek(t *testing.T, mem *memory.Memory, address uint16) uint8 {
	t.Helper()
	v, err := mem.Peek(address)
	test.DemandSuccess(t, err)
	return v
}

func step(t *testing.T, mc *z80.CPU) cpu.Result {
	t.Helper()
	test.DemandSuccess(t, mc.Execute())
	return mc.LastResult
}

func disassemble(t *testing.T, mc *z80.CPU, code []uint8, operands ...uint8) string {
	t.Helper()
	ins, ok := mc.Instructions.Lookup(code)
	test.DemandSuccess(t, ok)
	return ins.Disassemble(operands)
}

func TestTables(t *testing.T) {
	mc, _, _ := newCPU(t)

	test.ExpectEquality(t, disassemble(t, mc, []uint8{0x3e}, 0x05), "LD A,$05")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0x00}), "NOP")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xc3}, 0x34, 0x12), "JP $1234")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0x20}, 0xfe), "JR NZ,$+0")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xcb, 0x7e}), "BIT 7,(HL)")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xed, 0xb0}), "LDIR")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xdd, 0x7e}, 0xfe), "LD A,(IX-2)")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xfd, 0x36}, 0x05, 0x20), "LD (IY+5),$20")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xdd, 0x24}), "INC IXH")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xdd, 0x66}, 0x01), "LD H,(IX+1)")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xdd, 0xcb}, 0x03, 0xc6), "SET 0,(IX+3)")
	test.ExpectEquality(t, disassemble(t, mc, []uint8{0xfd, 0xcb}, 0x03, 0x00), "RLC (IY+3),B")

	ins, ok := mc.Instructions.Lookup([]uint8{0xfd, 0x36})
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ins.Length(), 4)
	test.ExpectEquality(t, ins.Cycles(), 19)

	// EX DE,HL is not affected by the index prefixes
	_, ok = mc.Instructions.Lookup([]uint8{0xdd, 0xeb})
	test.ExpectFailure(t, ok)

	// HALT has no indexed form
	_, ok = mc.Instructions.Lookup([]uint8{0xdd, 0x76})
	test.ExpectFailure(t, ok)

	// every ED opcode has an entry
	for op := 0; op < 256; op++ {
		_, ok := mc.Instructions.Lookup([]uint8{0xed, uint8(op)})
		test.ExpectSuccess(t, ok)
	}
}

func TestArithmetic(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x3e, 0x05, // LD A,$05
		0xc6, 0x03, // ADD A,$03
		0xd6, 0x08, // SUB $08
		0x3e, 0x7f, // LD A,$7f
		0xc6, 0x01, // ADD A,$01
	)

	test.ExpectEquality(t, step(t, mc).Cycles, 7)
	test.ExpectEquality(t, step(t, mc).Cycles, 7)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x08))
	test.ExpectEquality(t, mc.Status.Value(), uint8(0x08))

	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x00))
	test.ExpectEquality(t, mc.Status.Value(), uint8(0x42))

	// signed overflow
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x80))
	test.ExpectEquality(t, mc.Status.Value(), uint8(0x94))
}

func TestRegisterOperands(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x3e, 0x10, // LD A,$10
		0x3c,       // INC A
		0x3c,       // INC A
		0x47,       // LD B,A
		0x04,       // INC B
		0x80,       // ADD A,B
		0x4f,       // LD C,A
		0x0d,       // DEC C
	)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x11))
	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x12))

	step(t, mc)
	test.ExpectEquality(t, mc.BC.High(), uint8(0x12))
	step(t, mc)
	test.ExpectEquality(t, mc.BC.High(), uint8(0x13))

	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x25))

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.BC.Low(), uint8(0x24))
	test.ExpectEquality(t, mc.BC.High(), uint8(0x13))
}

func TestCompare(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x3e, 0x10, // LD A,$10
		0xfe, 0x28, // CP $28
	)

	step(t, mc)
	step(t, mc)

	// the accumulator is unchanged and the undocumented flags come from the
	// operand
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x10))
	f := mc.Status.Value()
	test.ExpectEquality(t, f&0x28, uint8(0x28))
	test.ExpectEquality(t, f&0x01, uint8(0x01))
	test.ExpectEquality(t, f&0x02, uint8(0x02))
	test.ExpectEquality(t, f&0x80, uint8(0x80))
}

func TestDAA(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x3e, 0x15, // LD A,$15
		0xc6, 0x27, // ADD A,$27
		0x27,       // DAA
		0xd6, 0x05, // SUB $05
		0x27, // DAA
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x42))

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x37))
}

func TestWordArithmetic(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x21, 0x34, 0x12, // LD HL,$1234
		0x01, 0x11, 0x11, // LD BC,$1111
		0x09,       // ADD HL,BC
		0x37,       // SCF
		0xed, 0x42, // SBC HL,BC
	)

	test.ExpectEquality(t, step(t, mc).Cycles, 10)
	step(t, mc)
	test.ExpectEquality(t, step(t, mc).Cycles, 11)
	test.ExpectEquality(t, mc.HL.Value(), uint16(0x2345))

	step(t, mc)
	test.ExpectEquality(t, step(t, mc).Cycles, 15)
	test.ExpectEquality(t, mc.HL.Value(), uint16(0x1233))
	test.ExpectEquality(t, mc.Status.Value()&0x01, uint8(0x00))
}

func TestIndexed(t *testing.T) {
	mc, mem, _ := newCPU(t,
		0xdd, 0x21, 0x00, 0x20, // LD IX,$2000
		0xdd, 0x36, 0x05, 0x42, // LD (IX+5),$42
		0xdd, 0x7e, 0x05, // LD A,(IX+5)
		0xdd, 0xcb, 0x05, 0xc6, // SET 0,(IX+5)
		0xdd, 0xcb, 0x05, 0x4e, // BIT 1,(IX+5)
		0xdd, 0x35, 0xff, // DEC (IX-1)
	)

	test.ExpectEquality(t, step(t, mc).Cycles, 14)
	test.ExpectEquality(t, mc.IX.Value(), uint16(0x2000))

	test.ExpectEquality(t, step(t, mc).Cycles, 19)
	test.ExpectEquality(t, peek(t, mem, 0x2005), uint8(0x42))

	test.ExpectEquality(t, step(t, mc).Cycles, 19)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x42))

	test.ExpectEquality(t, step(t, mc).Cycles, 23)
	test.ExpectEquality(t, peek(t, mem, 0x2005), uint8(0x43))

	test.ExpectEquality(t, step(t, mc).Cycles, 20)
	test.ExpectEquality(t, mc.Status.Value()&0x40, uint8(0x00))

	test.ExpectEquality(t, step(t, mc).Cycles, 23)
	test.ExpectEquality(t, peek(t, mem, 0x1fff), uint8(0xff))
	test.ExpectEquality(t, mc.PC.Value(), uint16(22))
}

func TestUndefinedPrefix(t *testing.T) {
	mc, _, _ := newCPU(t,
		0xdd, 0x3c, // INC A with a redundant prefix
		0xed, 0x00, // hole in the ED table
	)

	r := step(t, mc)
	test.ExpectFailure(t, r.Instruction.Defined())
	test.ExpectEquality(t, r.Instruction.Mnemonic(), "INC*")
	test.ExpectEquality(t, r.Cycles, 8)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x00))
	test.ExpectEquality(t, mc.PC.Value(), uint16(2))

	r = step(t, mc)
	test.ExpectSuccess(t, r.Instruction.Defined())
	test.ExpectEquality(t, r.Instruction.Mnemonic(), "NOP")
	test.ExpectEquality(t, r.Cycles, 8)
	test.ExpectEquality(t, mc.PC.Value(), uint16(4))
}

func TestRelativeJumps(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x06, 0x02, // LD B,2
		0x10, 0xfe, // DJNZ to self
		0x18, 0x02, // JR +2
	)

	step(t, mc)

	r := step(t, mc)
	test.ExpectEquality(t, r.Cycles, 13)
	test.ExpectEquality(t, mc.PC.Value(), uint16(2))

	r = step(t, mc)
	test.ExpectEquality(t, r.Cycles, 8)
	test.ExpectEquality(t, mc.PC.Value(), uint16(4))

	r = step(t, mc)
	test.ExpectEquality(t, r.Cycles, 12)
	test.ExpectEquality(t, mc.PC.Value(), uint16(8))
}

func TestStack(t *testing.T) {
	mc, mem, _ := newCPU(t,
		0x31, 0x00, 0x80, // LD SP,$8000
		0x01, 0xef, 0xbe, // LD BC,$beef
		0xc5,             // PUSH BC
		0xd1,             // POP DE
		0xcd, 0x00, 0x01, // CALL $0100
	)
	put(t, mem, 0x0100, 0xc9) // RET

	step(t, mc)
	step(t, mc)

	test.ExpectEquality(t, step(t, mc).Cycles, 11)
	test.ExpectEquality(t, mc.SP.Value(), uint16(0x7ffe))
	test.ExpectEquality(t, peek(t, mem, 0x7fff), uint8(0xbe))
	test.ExpectEquality(t, peek(t, mem, 0x7ffe), uint8(0xef))

	test.ExpectEquality(t, step(t, mc).Cycles, 10)
	test.ExpectEquality(t, mc.DE.Value(), uint16(0xbeef))
	test.ExpectEquality(t, mc.SP.Value(), uint16(0x8000))

	test.ExpectEquality(t, step(t, mc).Cycles, 17)
	test.ExpectEquality(t, mc.PC.Value(), uint16(0x0100))

	test.ExpectEquality(t, step(t, mc).Cycles, 10)
	test.ExpectEquality(t, mc.PC.Value(), uint16(11))
	test.ExpectEquality(t, mc.SP.Value(), uint16(0x8000))
}

func TestInterruptMode1(t *testing.T) {
	mc, mem, _ := newCPU(t,
		0x31, 0x00, 0x80, // LD SP,$8000
		0xed, 0x56, // IM 1
		0xfb, // EI
		0x00, // NOP
		0x00, // NOP
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.IM, 1)
	test.ExpectSuccess(t, mc.IFF1)

	mc.INT.Assert(0)

	// not accepted in the instruction following EI
	r := step(t, mc)
	test.ExpectEquality(t, r.Interrupt, "")
	test.ExpectEquality(t, mc.PC.Value(), uint16(7))

	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, z80.INT)
	test.ExpectEquality(t, r.Cycles, 13)
	test.ExpectEquality(t, mc.PC.Value(), z80.IM1Address)
	test.ExpectFailure(t, mc.IFF1)
	test.ExpectEquality(t, peek(t, mem, 0x7ffe), uint8(0x07))
	test.ExpectEquality(t, peek(t, mem, 0x7fff), uint8(0x00))
}

func TestInterruptMode2(t *testing.T) {
	mc, mem, _ := newCPU(t,
		0x31, 0x00, 0x80, // LD SP,$8000
		0x3e, 0x40, // LD A,$40
		0xed, 0x47, // LD I,A
		0xed, 0x5e, // IM 2
		0xfb, // EI
		0x00, // NOP
	)
	put(t, mem, 0x4010, 0x34, 0x12)

	for i := 0; i < 6; i++ {
		step(t, mc)
	}

	mc.DataBus = 0x10
	mc.INT.Assert(0)

	r := step(t, mc)
	test.ExpectEquality(t, r.Interrupt, z80.INT)
	test.ExpectEquality(t, r.Cycles, 19)
	test.ExpectEquality(t, mc.PC.Value(), uint16(0x1234))
}

func TestNMI(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x31, 0x00, 0x80, // LD SP,$8000
		0xfb, // EI
		0x00, // NOP
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	mc.NMI.Assert(0)
	r := step(t, mc)
	test.ExpectEquality(t, r.Interrupt, z80.NMI)
	test.ExpectEquality(t, r.Cycles, 11)
	test.ExpectEquality(t, mc.PC.Value(), z80.NMIAddress)
	test.ExpectFailure(t, mc.IFF1)
	test.ExpectSuccess(t, mc.IFF2)

	// the line is edge triggered
	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, "")
}

func TestHalt(t *testing.T) {
	mc, mem, _ := newCPU(t,
		0x31, 0x00, 0x80, // LD SP,$8000
		0xed, 0x56, // IM 1
		0xfb, // EI
		0x76, // HALT
		0x00, // NOP
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	step(t, mc)
	test.ExpectSuccess(t, mc.Halted)
	test.ExpectEquality(t, mc.PC.Value(), uint16(6))

	// HALT executes repeatedly until an interrupt
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Value(), uint16(6))

	mc.INT.Assert(0)
	r := step(t, mc)
	test.ExpectEquality(t, r.Interrupt, z80.INT)
	test.ExpectFailure(t, mc.Halted)

	// the return address is the instruction after HALT
	test.ExpectEquality(t, peek(t, mem, 0x7ffe), uint8(0x07))
}

func TestRefresh(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x00,       // NOP
		0xdd, 0x00, // NOP with a redundant prefix
		0xed, 0x00, // ED hole
		0x3e, 0x7f, // LD A,$7f
		0xed, 0x4f, // LD R,A
		0x00,       // NOP
		0xed, 0x5f, // LD A,R
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.R.Byte(), uint8(5))

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.R.Byte(), uint8(0x7f))

	// bit 7 is not changed by the increment
	step(t, mc)
	test.ExpectEquality(t, mc.R.Byte(), uint8(0x00))

	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x02))
}

func TestPorts(t *testing.T) {
	mc, _, ports := newCPU(t,
		0x3e, 0x12, // LD A,$12
		0xd3, 0xfe, // OUT ($fe),A
		0x01, 0xfe, 0x7f, // LD BC,$7ffe
		0xed, 0x50, // IN D,(C)
		0xdb, 0xfe, // IN A,($fe)
	)
	ports.in[0x7ffe] = 0xbf
	ports.in[0x12fe] = 0x1f

	step(t, mc)
	test.ExpectEquality(t, step(t, mc).Cycles, 11)
	test.ExpectEquality(t, ports.out[0x12fe], uint8(0x12))

	step(t, mc)
	test.ExpectEquality(t, step(t, mc).Cycles, 12)
	test.ExpectEquality(t, mc.DE.High(), uint8(0xbf))
	test.ExpectEquality(t, mc.Status.Value()&0x80, uint8(0x80))

	step(t, mc)
	test.ExpectEquality(t, mc.A.Byte(), uint8(0x1f))
}

func TestBlockTransfer(t *testing.T) {
	mc, mem, _ := newCPU(t,
		0x21, 0x00, 0x10, // LD HL,$1000
		0x11, 0x00, 0x20, // LD DE,$2000
		0x01, 0x03, 0x00, // LD BC,3
		0xed, 0xb0, // LDIR
	)
	put(t, mem, 0x1000, 0xaa, 0xbb, 0xcc)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	test.ExpectEquality(t, step(t, mc).Cycles, 21)
	test.ExpectEquality(t, mc.PC.Value(), uint16(9))
	test.ExpectEquality(t, step(t, mc).Cycles, 21)
	test.ExpectEquality(t, step(t, mc).Cycles, 16)
	test.ExpectEquality(t, mc.PC.Value(), uint16(11))

	test.ExpectEquality(t, mc.BC.Value(), uint16(0))
	test.ExpectEquality(t, mc.HL.Value(), uint16(0x1003))
	test.ExpectEquality(t, mc.DE.Value(), uint16(0x2003))
	test.ExpectEquality(t, mc.Status.Value()&0x04, uint8(0x00))
	test.ExpectEquality(t, peek(t, mem, 0x2000), uint8(0xaa))
	test.ExpectEquality(t, peek(t, mem, 0x2002), uint8(0xcc))
}

func TestExchange(t *testing.T) {
	mc, _, _ := newCPU(t,
		0x01, 0x11, 0x11, // LD BC,$1111
		0xd9,             // EXX
		0x01, 0x22, 0x22, // LD BC,$2222
		0xd9, // EXX
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.BC.Value(), uint16(0x2222))
	test.ExpectEquality(t, mc.AltBC.Value(), uint16(0x1111))

	step(t, mc)
	test.ExpectEquality(t, mc.BC.Value(), uint16(0x1111))
	test.ExpectEquality(t, mc.AltBC.Value(), uint16(0x2222))
}
