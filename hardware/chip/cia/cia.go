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

// Package cia implements the MOS 6526 Complex Interface Adapter. The CIA
// has two 8 bit ports, two interval timers, a time of day clock, a serial
// shift register and an interrupt control register.
//
// The registers of the CIA are memory mapped through a ChipRegisters subset.
// Register reads and writes take effect immediately. The timers and the time
// of day clock are advanced by Simulate() and so the counters visible to the
// CPU are correct at the end of every tick.
//
// The interrupt output of the CIA is not connected to anything directly.
// Changes to the state of the line are raised as notifications.EventIRQ
// events with a boolean Data field. The machine decides which CPU line the
// CIA drives. Changes to the output of either port are raised as
// notifications.EventPortChanged events once per tick.
package cia

import (
	"fmt"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/chip/timer"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/hardware/signal"
	"github.com/emu8/emu8/notifications"
)

// List of CIA registers.
const (
	PRA = iota
	PRB
	DDRA
	DDRB
	TALO
	TAHI
	TBLO
	TBHI
	TOD10TH
	TODSEC
	TODMIN
	TODHR
	SDR
	ICR
	CRA
	CRB

	NumRegisters
)

// Bits of the interrupt control register.
const (
	IntTimerA = 0x01
	IntTimerB = 0x02
	IntAlarm  = 0x04
	IntSerial = 0x08
	IntFlag   = 0x10

	// on read, set if any enabled source is requesting an interrupt. on
	// write, selects whether the other bits set or clear the mask
	IntSet = 0x80

	intSources = 0x1f
)

// Bits of the control registers.
const (
	crStart     = 0x01
	crPBOn      = 0x02
	crToggle    = 0x04
	crOneShot   = 0x08
	crForceLoad = 0x10

	// CRA only
	craCNT = 0x20

	// CRB only
	crbInMode = 0x60
	crbAlarm  = 0x80
)

// Port is implemented by the devices connected to a port of the CIA. The
// output argument is the value being driven by the CIA, with the input bits
// pulled high. The return value is the state of the pins.
type Port func(output uint8) uint8

// CIA is the 6526 chip.
type CIA struct {
	id       int
	label    string
	instance int

	regs   *memory.ChipRegisters
	regsID memory.SubsetID

	notifier notifications.Notifier
	elapsed  chip.Elapsed

	TimerA *timer.Timer
	TimerB *timer.Timer

	// CNT is the count input of the timers. FLAG is the negative edge
	// sensitive interrupt input
	CNT  *signal.Wire
	FLAG *signal.Wire

	// the devices connected to the ports. a nil value means nothing is
	// connected and the pins are pulled high
	PortA Port
	PortB Port

	pra  uint8
	prb  uint8
	ddra uint8
	ddrb uint8
	cra  uint8
	crb  uint8
	sdr  uint8

	icrData uint8
	icrMask uint8
	irq     bool

	cntPulses   int
	portChanged chip.Latch
	lastA       uint8
	lastB       uint8

	tod tod
}

// NewCIA is the preferred method of initialisation for the CIA type. The
// registers are created in the memory and mirrored over the extent from
// origin. The caller adds the registers to a view.
//
// The clock argument is the frequency of the CPU in MHz and is used by the
// time of day clock.
func NewCIA(mem *memory.Memory, id int, label string, instance int, origin uint16, extent int, clock float64) (*CIA, error) {
	cia := &CIA{
		id:       id,
		label:    label,
		instance: instance,
		TimerA:   timer.NewTimer(fmt.Sprintf("%s timer A", label)),
		TimerB:   timer.NewTimer(fmt.Sprintf("%s timer B", label)),
		CNT:      signal.NewWire("cnt", true),
		FLAG:     signal.NewWire("flag", true),
	}
	cia.tod.period = uint64(clock * 100000)

	storage := mem.AddStorage(label, memory.RAM, NumRegisters)

	var err error
	cia.regs, err = memory.NewChipRegisters(label, storage, 0, NumRegisters, origin, extent)
	if err != nil {
		return nil, err
	}
	cia.regs.OnWrite = cia.write
	cia.regs.OnRead = cia.read

	cia.regsID, err = mem.AddSubset(cia.regs)
	if err != nil {
		return nil, err
	}

	cia.CNT.Connect(func(level bool) {
		if level {
			cia.cntPulses++
		}
	})
	cia.FLAG.Connect(func(level bool) {
		if !level {
			cia.icrData |= IntFlag
		}
	})

	return cia, nil
}

func (cia *CIA) String() string {
	return fmt.Sprintf("%s: pra=%02x prb=%02x ddra=%02x ddrb=%02x icr=%02x/%02x cra=%02x crb=%02x",
		cia.label, cia.pra, cia.prb, cia.ddra, cia.ddrb, cia.icrData, cia.icrMask, cia.cra, cia.crb)
}

// ID implements the chip.Simulatable interface.
func (cia *CIA) ID() int {
	return cia.id
}

// Label implements the chip.Simulatable interface.
func (cia *CIA) Label() string {
	return cia.label
}

// Registers implements the chip.MemoryMapped interface.
func (cia *CIA) Registers() memory.SubsetID {
	return cia.regsID
}

// Notifier implements the chip.EventSource interface.
func (cia *CIA) Notifier() *notifications.Notifier {
	return &cia.notifier
}

// Initialise implements the chip.Simulatable interface.
func (cia *CIA) Initialise() error {
	cia.TimerA.Reset()
	cia.TimerB.Reset()
	cia.pra, cia.prb = 0, 0
	cia.ddra, cia.ddrb = 0, 0
	cia.cra, cia.crb = 0, 0
	cia.sdr = 0
	cia.icrData, cia.icrMask = 0, 0
	cia.cntPulses = 0
	cia.tod.reset()
	cia.elapsed = chip.Elapsed{}
	cia.lastA = cia.OutputA()
	cia.lastB = cia.OutputB()
	cia.portChanged.Clear()

	if cia.irq {
		cia.irq = false
		cia.notify(notifications.EventIRQ, false)
	}

	for i := 0; i < NumRegisters; i++ {
		cia.regs.SetRegister(i, 0)
	}

	return nil
}

func (cia *CIA) notify(id notifications.EventID, data any) {
	cia.notifier.Notify(notifications.Event{
		Source:   notifications.SourceCIA,
		ID:       id,
		Instance: cia.instance,
		Data:     data,
	})
}

// OutputA returns the value driven by port A. Bits that are configured as
// inputs are pulled high.
func (cia *CIA) OutputA() uint8 {
	return cia.pra | ^cia.ddra
}

// OutputB returns the value driven by port B. Bits that are configured as
// inputs are pulled high. Bits 6 and 7 are the outputs of the timers if the
// control registers say so.
func (cia *CIA) OutputB() uint8 {
	v := cia.prb | ^cia.ddrb
	if cia.cra&crPBOn == crPBOn {
		v = v&^0x40 | timerBit(cia.TimerA.Output, 0x40)
	}
	if cia.crb&crPBOn == crPBOn {
		v = v&^0x80 | timerBit(cia.TimerB.Output, 0x80)
	}
	return v
}

func timerBit(output bool, bit uint8) uint8 {
	if output {
		return bit
	}
	return 0
}

// the state of the pins of a port
func (cia *CIA) pins(output uint8, p Port) uint8 {
	if p == nil {
		return output
	}
	return output & p(output)
}

// InterruptLine returns true if the CIA is requesting an interrupt.
func (cia *CIA) InterruptLine() bool {
	return cia.irq
}

func (cia *CIA) read(pos int, v uint8) uint8 {
	switch pos {
	case PRA:
		return cia.pins(cia.OutputA(), cia.PortA)
	case PRB:
		return cia.pins(cia.OutputB(), cia.PortB)
	case DDRA:
		return cia.ddra
	case DDRB:
		return cia.ddrb
	case TALO:
		return uint8(cia.TimerA.Counter)
	case TAHI:
		return uint8(cia.TimerA.Counter >> 8)
	case TBLO:
		return uint8(cia.TimerB.Counter)
	case TBHI:
		return uint8(cia.TimerB.Counter >> 8)
	case TOD10TH, TODSEC, TODMIN, TODHR:
		return cia.tod.read(pos - TOD10TH)
	case SDR:
		return cia.sdr
	case ICR:
		v := cia.icrData
		if cia.irq {
			v |= IntSet
		}
		// reading the ICR acknowledges all interrupts. the line is released
		// by the next call to Simulate()
		cia.icrData = 0
		return v
	case CRA:
		return cia.cra &^ crForceLoad
	case CRB:
		return cia.crb &^ crForceLoad
	}
	return v
}

func (cia *CIA) write(pos int, v uint8) {
	switch pos {
	case PRA:
		cia.pra = v
		cia.portChanged.Mark()
	case PRB:
		cia.prb = v
		cia.portChanged.Mark()
	case DDRA:
		cia.ddra = v
		cia.portChanged.Mark()
	case DDRB:
		cia.ddrb = v
		cia.portChanged.Mark()
	case TALO:
		cia.TimerA.SetLatchLo(v)
	case TAHI:
		cia.TimerA.SetLatchHi(v)
	case TBLO:
		cia.TimerB.SetLatchLo(v)
	case TBHI:
		cia.TimerB.SetLatchHi(v)
	case TOD10TH, TODSEC, TODMIN, TODHR:
		cia.tod.write(pos-TOD10TH, v, cia.crb&crbAlarm == crbAlarm)
	case SDR:
		cia.sdr = v
		// serial output is not connected to anything. the byte is shifted
		// out immediately
		if cia.cra&0x40 == 0x40 {
			cia.icrData |= IntSerial
		}
	case ICR:
		if v&IntSet == IntSet {
			cia.icrMask |= v & intSources
		} else {
			cia.icrMask &^= v & intSources
		}
	case CRA:
		cia.cra = v
		cia.control(cia.TimerA, v)
		if v&craCNT == craCNT {
			cia.TimerA.CountMode = timer.External
		} else {
			cia.TimerA.CountMode = timer.ProcessorCycles
		}
		cia.portChanged.Mark()
	case CRB:
		cia.crb = v
		cia.control(cia.TimerB, v)
		switch v & crbInMode {
		case 0x00:
			cia.TimerB.CountMode = timer.ProcessorCycles
		case 0x20:
			cia.TimerB.CountMode = timer.External
		default:
			cia.TimerB.CountMode = timer.Cascade
		}
		cia.portChanged.Mark()
	}
}

// the bits common to both control registers
func (cia *CIA) control(tmr *timer.Timer, v uint8) {
	tmr.Running = v&crStart == crStart
	if v&crOneShot == crOneShot {
		tmr.RunMode = timer.OneShot
	} else {
		tmr.RunMode = timer.Continuous
	}
	if v&crToggle == crToggle {
		tmr.OutputMode = timer.Toggle
	} else {
		tmr.OutputMode = timer.Pulse
	}
	if v&crForceLoad == crForceLoad {
		tmr.Load()
	}
}

// Simulate implements the chip.Simulatable interface.
func (cia *CIA) Simulate(c chip.Clock) error {
	cycles := cia.elapsed.Update(c)

	pulses := cia.cntPulses
	cia.cntPulses = 0

	underA := cia.TimerA.Advance(cycles, 0, pulses)

	// in the "timer A underflows while CNT is high" mode the cascade is gated
	// by the CNT line
	cascade := underA
	if cia.crb&crbInMode == 0x60 && !cia.CNT.Level() {
		cascade = 0
	}
	underB := cia.TimerB.Advance(cycles, cascade, pulses)

	// the running bit of the control register reflects a one-shot timer
	// stopping
	if !cia.TimerA.Running {
		cia.cra &^= crStart
	}
	if !cia.TimerB.Running {
		cia.crb &^= crStart
	}

	if underA > 0 {
		cia.icrData |= IntTimerA
		cia.notify(notifications.EventTimerUnderflow, underA)
	}
	if underB > 0 {
		cia.icrData |= IntTimerB
		cia.notify(notifications.EventTimerUnderflow, underB)
	}

	if cia.tod.advance(cycles) {
		cia.icrData |= IntAlarm
	}

	irq := cia.icrData&cia.icrMask != 0
	if irq != cia.irq {
		cia.irq = irq
		cia.notify(notifications.EventIRQ, irq)
	}

	// timer outputs on port B count as a change to the port
	if cia.portChanged.Consume() || cia.crb&crPBOn == crPBOn || cia.cra&crPBOn == crPBOn {
		a := cia.OutputA()
		b := cia.OutputB()
		if a != cia.lastA {
			cia.lastA = a
			cia.notify(notifications.EventPortChanged, PortValue{Port: 'A', Value: a})
		}
		if b != cia.lastB {
			cia.lastB = b
			cia.notify(notifications.EventPortChanged, PortValue{Port: 'B', Value: b})
		}
	}

	return nil
}

// PortValue is the Data field of an EventPortChanged event.
type PortValue struct {
	Port  rune
	Value uint8
}

func (p PortValue) String() string {
	return fmt.Sprintf("port %c=%02x", p.Port, p.Value)
}
