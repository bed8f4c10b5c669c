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

package c64_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/chip/vicii"
	"github.com/emu8/emu8/hardware/cpu/registers"
	"github.com/emu8/emu8/hardware/filedata"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/machines/c64"
	"github.com/emu8/emu8/notifications"
	"github.com/emu8/emu8/test"
)

// the IRQ/BRK vector of the synthetic kernal
const brkTarget = 0xe100

func fill(size int, v uint8) []uint8 {
	b := make([]uint8, size)
	for i := range b {
		b[i] = v
	}
	return b
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	return env
}

// a C64 with synthetic ROMs. the program is placed in RAM at $c000, which is
// also the reset address
func newC64(t *testing.T, env *environment.Environment, program ...uint8) *c64.C64 {
	t.Helper()

	m, err := c64.NewC64(env, vicii.PAL)
	test.DemandSuccess(t, err)

	kernal := fill(0x2000, 0xea)
	kernal[0x1ffc] = 0x00
	kernal[0x1ffd] = 0xc0
	kernal[0x1ffe] = uint8(brkTarget & 0xff)
	kernal[0x1fff] = uint8(brkTarget >> 8)

	test.DemandSuccess(t, m.LoadROM("kernal", kernal))
	test.DemandSuccess(t, m.LoadROM("basic", fill(0x2000, 0xbb)))
	test.DemandSuccess(t, m.LoadROM("char", fill(0x1000, 0xcc)))
	test.ExpectFailure(t, m.LoadROM("basic", fill(0x1000, 0xbb)))
	test.ExpectFailure(t, m.LoadROM("monitor", fill(0x1000, 0xbb)))

	test.DemandSuccess(t, m.Initialise())

	for i, b := range program {
		test.DemandSuccess(t, m.Mem().Poke(0xc000+uint16(i), b))
	}

	return m
}

func peek(t *testing.T, m *c64.C64, address uint16) uint8 {
	t.Helper()
	v, err := m.Mem().Peek(address)
	test.DemandSuccess(t, err)
	return v
}

func TestEndToEnd(t *testing.T) {
	// LDA #$41; STA $D020; BRK
	m := newC64(t, newEnv(t), 0xa9, 0x41, 0x8d, 0x20, 0xd0, 0x00)

	test.ExpectEquality(t, m.CPU.PC.Value(), uint16(0xc000))

	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, m.Step())
	}

	test.ExpectEquality(t, m.CPU.A.Value(), uint16(0x41))
	test.ExpectEquality(t, peek(t, m, 0xd020), uint8(0x41))
	test.ExpectEquality(t, m.VIC.BorderColour(), uint8(0x01))
	test.ExpectEquality(t, m.CPU.PC.Value(), uint16(brkTarget))
	test.ExpectSuccess(t, m.CPU.Status.Get(registers.InterruptDisable))
}

func TestBankSwitching(t *testing.T) {
	// NOP; NOP; NOP
	m := newC64(t, newEnv(t), 0xea, 0xea, 0xea)
	mem := m.Mem()

	test.ExpectEquality(t, peek(t, m, 0xa000), uint8(0xbb))
	test.ExpectEquality(t, peek(t, m, 0xe000), uint8(0xea))

	// writes to ROM land in the RAM underneath
	test.DemandSuccess(t, mem.Write(0xa000, 0x99))
	test.ExpectEquality(t, peek(t, m, 0xa000), uint8(0xbb))

	// switch out BASIC. the change is seen after the next tick
	test.DemandSuccess(t, mem.Write(0x0000, 0x07))
	test.DemandSuccess(t, mem.Write(0x0001, 0x06))
	test.ExpectEquality(t, peek(t, m, 0xa000), uint8(0xbb))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, peek(t, m, 0xa000), uint8(0x99))
	test.ExpectEquality(t, m.PLA.Configuration()[c64.RegionA000], c64.RAM)

	// the port reads back the output with the input bits pulled up
	v, err := mem.Read(0x0001)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x16))

	// character ROM instead of I/O
	test.DemandSuccess(t, mem.Write(0x0001, 0x03))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.PLA.Configuration()[c64.RegionD000], c64.CHAR)
	test.ExpectEquality(t, peek(t, m, 0xd000), uint8(0xcc))

	// all RAM
	test.DemandSuccess(t, mem.Write(0x0001, 0x00))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, peek(t, m, 0xd000), uint8(0x00))
	test.ExpectEquality(t, peek(t, m, 0xe000), uint8(0x00))
}

func TestCartridge(t *testing.T) {
	m := newC64(t, newEnv(t), 0xea, 0xea)

	test.DemandSuccess(t, m.AttachCartridge(fill(0x2000, 0x11), nil, true, false))
	test.ExpectEquality(t, peek(t, m, 0x8000), uint8(0x00))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, peek(t, m, 0x8000), uint8(0x11))
	test.ExpectEquality(t, peek(t, m, 0xa000), uint8(0xbb))

	test.ExpectFailure(t, m.AttachCartridge(fill(0x10, 0x11), nil, true, false))
}

// drive the PLA inputs the way the I/O port and the cartridge port do
func setLines(m *c64.C64, l c64.Lines) {
	var port uint8
	if l.LORAM {
		port |= c64.LORAM
	}
	if l.HIRAM {
		port |= c64.HIRAM
	}
	if l.CHAREN {
		port |= c64.CHAREN
	}
	m.PLA.ProcessEvent(notifications.Event{
		Source: notifications.SourceIOPort,
		ID:     notifications.EventPortChanged,
		Data:   port,
	})
	m.PLA.ProcessEvent(notifications.Event{
		Source: notifications.SourceCartridge,
		ID:     notifications.EventCartridgeChanged,
		Data:   c64.CartridgeLines{GAME: l.GAME, EXROM: l.EXROM},
	})
}

func expectActive(t *testing.T, got []memory.SubsetID, want []memory.SubsetID, tag interface{}) {
	t.Helper()
	if !test.ExpectEquality(t, len(got), len(want), tag) {
		return
	}
	for i := range want {
		test.ExpectEquality(t, got[i], want[i], tag)
	}
}

func TestPLASimulateDeterminism(t *testing.T) {
	m := newC64(t, newEnv(t))
	view := m.Mem().CPUView()

	active := make(map[int][]memory.SubsetID)

	for n := 0; n < 32; n++ {
		l := lines(n)

		setLines(m, l)
		test.DemandSuccess(t, m.PLA.Simulate(m))
		first := view.Active()
		test.ExpectEquality(t, m.PLA.Lines(), l, l)
		test.ExpectEquality(t, m.PLA.Configuration(), c64.Configure(l), l)

		// the same lines again, then no change at all
		setLines(m, l)
		test.DemandSuccess(t, m.PLA.Simulate(m))
		expectActive(t, view.Active(), first, l)
		test.DemandSuccess(t, m.PLA.Simulate(m))
		expectActive(t, view.Active(), first, l)

		active[n] = first
	}

	// the view depends only on the lines and not on the previous configuration
	for n := 31; n >= 0; n-- {
		l := lines(n)
		setLines(m, l)
		test.DemandSuccess(t, m.PLA.Simulate(m))
		expectActive(t, view.Active(), active[n], l)
	}
}

func TestVICBank(t *testing.T) {
	m := newC64(t, newEnv(t), 0xea, 0xea)
	mem := m.Mem()

	test.ExpectEquality(t, m.VIC.Bank(), 0)

	// CIA2 port A bits 0 and 1 are inverted to select the bank
	test.DemandSuccess(t, mem.Write(0xdd02, 0x03))
	test.DemandSuccess(t, mem.Write(0xdd00, 0x01))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.VIC.Bank(), 2)

	// the character ROM is visible to the VIC-II in bank 2
	v, err := mem.ReadView(m.VICView(), 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xcc))

	test.DemandSuccess(t, mem.Write(0xdd00, 0x02))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.VIC.Bank(), 1)

	v, err = mem.ReadView(m.VICView(), 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x00))
}

func TestKeyboard(t *testing.T) {
	m := newC64(t, newEnv(t), 0xea)
	mem := m.Mem()

	test.DemandSuccess(t, m.Keyboard.Press(0, 1))

	// drive column zero low and read the rows
	test.DemandSuccess(t, mem.Write(0xdc02, 0xff))
	test.DemandSuccess(t, mem.Write(0xdc00, 0xfe))
	v, err := mem.Read(0xdc01)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xfd))

	// nothing pressed in column one
	test.DemandSuccess(t, mem.Write(0xdc00, 0xfd))
	v, err = mem.Read(0xdc01)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xff))
}

func TestFastLoad(t *testing.T) {
	// JSR $F4A5; KIL
	m := newC64(t, newEnv(t), 0x20, 0xa5, 0xf4, 0x02)
	mem := m.Mem()

	// STA $93 at the start of the load routine
	test.DemandSuccess(t, mem.Poke(0xf4a5, 0x85))
	test.DemandSuccess(t, mem.Poke(0xf4a6, 0x93))

	test.DemandSuccess(t, m.Loader.ConnectData(filedata.NewRaw("test", 0x0801, []uint8{1, 2, 3})))

	// use the address in the file
	test.DemandSuccess(t, mem.Write(0xb9, 0x01))

	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.CPU.PC.Value(), uint16(0xf4a5))
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.CPU.PC.Value(), uint16(0xc003))
	test.ExpectEquality(t, m.Loader.Pending(), 0)

	test.ExpectEquality(t, peek(t, m, 0x0801), uint8(1))
	test.ExpectEquality(t, peek(t, m, 0x0803), uint8(3))
	test.ExpectEquality(t, m.CPU.X.Value(), uint16(0x04))
	test.ExpectEquality(t, m.CPU.Y.Value(), uint16(0x08))
	test.ExpectFailure(t, m.CPU.Status.Get(registers.Carry))
	test.ExpectEquality(t, peek(t, m, 0xae), uint8(0x04))
	test.ExpectEquality(t, peek(t, m, 0xaf), uint8(0x08))
}

func TestFastLoadRelocate(t *testing.T) {
	m := newC64(t, newEnv(t), 0x20, 0xa5, 0xf4, 0x02)
	mem := m.Mem()
	test.DemandSuccess(t, mem.Poke(0xf4a5, 0x85))
	test.DemandSuccess(t, mem.Poke(0xf4a6, 0x93))

	test.DemandSuccess(t, m.Loader.ConnectData(filedata.NewRaw("test", 0x0801, []uint8{1, 2, 3})))

	// secondary address zero loads to the address in $c3/$c4
	test.DemandSuccess(t, mem.Write(0xb9, 0x00))
	test.DemandSuccess(t, mem.Write(0xc3, 0x00))
	test.DemandSuccess(t, mem.Write(0xc4, 0x10))

	test.DemandSuccess(t, m.Step())
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, peek(t, m, 0x1000), uint8(1))
	test.ExpectEquality(t, peek(t, m, 0x1002), uint8(3))
	test.ExpectEquality(t, peek(t, m, 0x0801), uint8(0))
	test.ExpectEquality(t, m.CPU.Y.Value(), uint16(0x10))
}

func TestFastLoadMissing(t *testing.T) {
	m := newC64(t, newEnv(t), 0x20, 0xa5, 0xf4, 0x02)
	test.DemandSuccess(t, m.Mem().Poke(0xf4a5, 0x85))
	test.DemandSuccess(t, m.Mem().Poke(0xf4a6, 0x93))

	test.DemandSuccess(t, m.Step())
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.CPU.PC.Value(), uint16(0xc003))
	test.ExpectSuccess(t, m.CPU.Status.Get(registers.Carry))
	test.ExpectEquality(t, m.CPU.A.Value(), uint16(0x04))
}

func TestFastLoadDisabled(t *testing.T) {
	env := newEnv(t)
	test.DemandSuccess(t, env.Prefs.FastLoad.Set(false))

	m := newC64(t, env, 0x20, 0xa5, 0xf4, 0x02)
	test.DemandSuccess(t, m.Mem().Poke(0xf4a5, 0x85))
	test.DemandSuccess(t, m.Mem().Poke(0xf4a6, 0x93))
	test.DemandSuccess(t, m.Loader.ConnectData(filedata.NewRaw("test", 0x0801, []uint8{1, 2, 3})))

	// the STA $93 instruction is executed
	test.DemandSuccess(t, m.Step())
	test.DemandSuccess(t, m.Step())
	test.ExpectEquality(t, m.CPU.PC.Value(), uint16(0xf4a7))
	test.ExpectEquality(t, m.Loader.Pending(), 1)
}
