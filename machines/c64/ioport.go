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

package c64

import (
	"fmt"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// Positions of the I/O port registers.
const (
	portDDR  = 0x00
	portData = 0x01
)

// Bits of the I/O port connected to the PLA.
const (
	LORAM  = 0x01
	HIRAM  = 0x02
	CHAREN = 0x04
)

// bits 0 to 2 are pulled up. bit 4 is the cassette switch sense, which reads
// high when no button is pressed
const portPullUp = 0x17

// IOPort is the I/O port built into the 6510. It is mapped at $0000 and
// $0001. Changes to the value of the port are raised as EventPortChanged
// events, with the Data field set to the output value of the port.
type IOPort struct {
	id int

	regs   *memory.ChipRegisters
	regsID memory.SubsetID

	notifier notifications.Notifier

	ddr  uint8
	data uint8

	changed chip.Latch
	last    uint8
}

// NewIOPort is the preferred method of initialisation for the IOPort type.
func NewIOPort(mem *memory.Memory, id int) (*IOPort, error) {
	p := &IOPort{id: id}

	storage := mem.AddStorage("6510 port", memory.RAM, 2)

	var err error
	p.regs, err = memory.NewChipRegisters("6510 port", storage, 0, 2, 0x0000, 0)
	if err != nil {
		return nil, err
	}
	p.regs.OnWrite = p.write
	p.regs.OnRead = p.read

	p.regsID, err = mem.AddSubset(p.regs)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *IOPort) String() string {
	return fmt.Sprintf("6510 port: ddr=%02x data=%02x out=%02x", p.ddr, p.data, p.Output())
}

// ID implements the chip.Simulatable interface.
func (p *IOPort) ID() int {
	return p.id
}

// Label implements the chip.Simulatable interface.
func (p *IOPort) Label() string {
	return "6510 port"
}

// Registers implements the chip.MemoryMapped interface.
func (p *IOPort) Registers() memory.SubsetID {
	return p.regsID
}

// Notifier implements the chip.EventSource interface.
func (p *IOPort) Notifier() *notifications.Notifier {
	return &p.notifier
}

// Initialise implements the chip.Simulatable interface. All bits are inputs
// after a reset.
func (p *IOPort) Initialise() error {
	p.ddr = 0
	p.data = 0
	p.regs.SetRegister(portDDR, 0)
	p.regs.SetRegister(portData, 0)
	p.changed.Clear()
	p.last = p.Output()
	return nil
}

// Output returns the value of the port pins. Bits configured as inputs read
// the pull-up resistors.
func (p *IOPort) Output() uint8 {
	return p.data&p.ddr | portPullUp&^p.ddr
}

func (p *IOPort) read(pos int, _ uint8) uint8 {
	if pos == portDDR {
		return p.ddr
	}
	return p.Output()
}

func (p *IOPort) write(pos int, v uint8) {
	if pos == portDDR {
		p.ddr = v
	} else {
		p.data = v
	}
	p.changed.Mark()
}

// Simulate implements the chip.Simulatable interface.
func (p *IOPort) Simulate(_ chip.Clock) error {
	if !p.changed.Consume() {
		return nil
	}
	out := p.Output()
	if out == p.last {
		return nil
	}
	p.last = out
	p.notifier.Notify(notifications.Event{
		Source: notifications.SourceIOPort,
		ID:     notifications.EventPortChanged,
		Data:   out,
	})
	return nil
}
