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

package cia_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/chip/cia"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
	"github.com/emu8/emu8/test"
)

const origin = 0xdc00

type clock struct {
	cycles uint64
}

func (c *clock) ClockCycles() uint64 {
	return c.cycles
}

func newCIA(t *testing.T) (*cia.CIA, *memory.Memory, *clock) {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	mem := memory.NewMemory(env)
	view, err := mem.AddView("cpu", 0x10000)
	test.DemandSuccess(t, err)

	c, err := cia.NewCIA(mem, 1, "cia1", 1, origin, 0x100, 1.0)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mem.AddToView(view, c.Registers(), true))
	test.DemandSuccess(t, c.Initialise())

	return c, mem, &clock{}
}

func write(t *testing.T, mem *memory.Memory, reg int, v uint8) {
	t.Helper()
	test.DemandSuccess(t, mem.Write(origin+uint16(reg), v))
}

func read(t *testing.T, mem *memory.Memory, reg int) uint8 {
	t.Helper()
	v, err := mem.Read(origin + uint16(reg))
	test.DemandSuccess(t, err)
	return v
}

func TestPorts(t *testing.T) {
	c, mem, _ := newCIA(t)

	// all inputs with nothing connected
	test.ExpectEquality(t, read(t, mem, cia.PRA), uint8(0xff))

	write(t, mem, cia.DDRA, 0xff)
	write(t, mem, cia.PRA, 0x12)
	test.ExpectEquality(t, read(t, mem, cia.PRA), uint8(0x12))

	// registers are mirrored every 16 bytes
	v, err := mem.Read(origin + 0x10 + cia.PRA)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x12))

	// a device pulling bits low
	c.PortB = func(output uint8) uint8 {
		return 0xfe
	}
	write(t, mem, cia.DDRB, 0x0f)
	write(t, mem, cia.PRB, 0x00)
	test.ExpectEquality(t, read(t, mem, cia.PRB), uint8(0xf0))
}

func TestPortNotification(t *testing.T) {
	c, mem, clk := newCIA(t)

	var events []notifications.Event
	c.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventPortChanged {
			events = append(events, ev)
		}
	}))

	write(t, mem, cia.DDRA, 0x03)
	write(t, mem, cia.PRA, 0x01)

	// the notification is deferred until the chip is simulated
	test.ExpectEquality(t, len(events), 0)
	test.DemandSuccess(t, c.Simulate(clk))
	test.DemandEquality(t, len(events), 1)
	test.ExpectEquality(t, events[0].Instance, 1)
	test.ExpectEquality(t, events[0].Data.(cia.PortValue).Value, uint8(0xfd))

	// no change no notification
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, len(events), 1)
}

func TestTimerInterrupt(t *testing.T) {
	c, mem, clk := newCIA(t)

	var irq []bool
	c.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventIRQ {
			irq = append(irq, ev.Data.(bool))
		}
	}))

	write(t, mem, cia.TALO, 0x10)
	write(t, mem, cia.TAHI, 0x00)
	test.ExpectEquality(t, read(t, mem, cia.TALO), uint8(0x10))

	// enable timer A interrupt and start the timer
	write(t, mem, cia.ICR, cia.IntSet|cia.IntTimerA)
	write(t, mem, cia.CRA, 0x01)

	clk.cycles = 10
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, read(t, mem, cia.TALO), uint8(0x06))
	test.ExpectEquality(t, len(irq), 0)

	clk.cycles = 20
	test.DemandSuccess(t, c.Simulate(clk))
	test.DemandEquality(t, len(irq), 1)
	test.ExpectSuccess(t, irq[0])
	test.ExpectSuccess(t, c.InterruptLine())

	// reading the ICR acknowledges the interrupt
	test.ExpectEquality(t, read(t, mem, cia.ICR), uint8(cia.IntSet|cia.IntTimerA))
	test.ExpectEquality(t, read(t, mem, cia.ICR), uint8(0x80))
	test.DemandSuccess(t, c.Simulate(clk))
	test.DemandEquality(t, len(irq), 2)
	test.ExpectFailure(t, irq[1])
}

func TestOneShot(t *testing.T) {
	c, mem, clk := newCIA(t)

	write(t, mem, cia.TBLO, 0x05)
	write(t, mem, cia.TBHI, 0x00)
	write(t, mem, cia.CRB, 0x09)

	clk.cycles = 100
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, read(t, mem, cia.CRB)&0x01, uint8(0x00))

	// the flag is set even though the interrupt is not enabled
	test.ExpectEquality(t, read(t, mem, cia.ICR), uint8(cia.IntTimerB))
	test.ExpectFailure(t, c.InterruptLine())
}

func TestCascade(t *testing.T) {
	c, mem, clk := newCIA(t)

	write(t, mem, cia.TALO, 0x01)
	write(t, mem, cia.TAHI, 0x00)
	write(t, mem, cia.TBLO, 0x02)
	write(t, mem, cia.TBHI, 0x00)

	// timer B counts timer A underflows
	write(t, mem, cia.CRB, 0x41)
	write(t, mem, cia.CRA, 0x01)

	// timer A underflows every two cycles
	clk.cycles = 2
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, c.TimerB.Counter, uint16(0x01))

	clk.cycles = 6
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, read(t, mem, cia.ICR)&cia.IntTimerB, uint8(cia.IntTimerB))
}

func TestCNT(t *testing.T) {
	c, mem, clk := newCIA(t)

	write(t, mem, cia.TALO, 0x03)
	write(t, mem, cia.TAHI, 0x00)
	write(t, mem, cia.CRA, 0x21)

	for i := 0; i < 2; i++ {
		c.CNT.Set(false)
		c.CNT.Set(true)
	}

	clk.cycles = 1000
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, c.TimerA.Counter, uint16(0x01))

	// FLAG is negative edge triggered
	c.FLAG.Set(false)
	test.ExpectEquality(t, read(t, mem, cia.ICR), uint8(cia.IntFlag))
}

func TestTimeOfDay(t *testing.T) {
	c, mem, clk := newCIA(t)

	// writing the hours stops the clock until the tenths are written
	write(t, mem, cia.TODHR, 0x11)
	write(t, mem, cia.TODMIN, 0x59)
	write(t, mem, cia.TODSEC, 0x59)
	write(t, mem, cia.TOD10TH, 0x09)

	// alarm at 12:00:00.0 PM
	write(t, mem, cia.CRB, 0x80)
	write(t, mem, cia.TODHR, 0x92)
	write(t, mem, cia.TODMIN, 0x00)
	write(t, mem, cia.TODSEC, 0x00)
	write(t, mem, cia.TOD10TH, 0x00)
	write(t, mem, cia.CRB, 0x00)

	// one tenth of a second at 1MHz
	clk.cycles = 100000
	test.DemandSuccess(t, c.Simulate(clk))

	// reading the hours latches the time
	test.ExpectEquality(t, read(t, mem, cia.TODHR), uint8(0x92))
	clk.cycles = 200000
	test.DemandSuccess(t, c.Simulate(clk))
	test.ExpectEquality(t, read(t, mem, cia.TODMIN), uint8(0x00))
	test.ExpectEquality(t, read(t, mem, cia.TOD10TH), uint8(0x00))

	// the latch is released
	test.ExpectEquality(t, read(t, mem, cia.TOD10TH), uint8(0x01))

	test.ExpectEquality(t, read(t, mem, cia.ICR)&cia.IntAlarm, uint8(cia.IntAlarm))
}
