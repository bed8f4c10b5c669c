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

package cpu

import "fmt"

// ServeFunc performs the architecture specific part of serving an interrupt.
// It returns the number of cycles taken.
type ServeFunc func(c *CPU) (int, error)

// GateFunc decides whether an active interrupt line can be served. For
// example, a maskable interrupt will check the interrupt mask of the status
// register.
type GateFunc func(c *CPU) bool

// Interrupt is the state of one interrupt line of the CPU.
//
// The line is active if any source is asserting it. A level triggered line
// will be served repeatedly for as long as it is active and the gate allows.
// An edge triggered line is served once for every transition from inactive to
// active.
type Interrupt struct {
	Name string

	edgeTriggered bool
	gate          GateFunc
	serve         ServeFunc

	// bit field of the sources currently asserting the line
	sources uint32

	// an edge triggered line has seen a transition and not yet been served
	pending bool

	lastTriggered uint64
	served        int
}

// NewInterrupt is the preferred method of initialisation for the Interrupt
// type. The gate argument can be nil, in which case the interrupt can always
// be served.
func NewInterrupt(name string, edgeTriggered bool, gate GateFunc, serve ServeFunc) *Interrupt {
	return &Interrupt{
		Name:          name,
		edgeTriggered: edgeTriggered,
		gate:          gate,
		serve:         serve,
	}
}

func (irq *Interrupt) String() string {
	return fmt.Sprintf("%s: active=%v last=%d", irq.Name, irq.Active(), irq.lastTriggered)
}

// Assert the line on behalf of the source. Sources are numbered 0 to 31.
func (irq *Interrupt) Assert(source int) {
	if irq.sources == 0 && irq.edgeTriggered {
		irq.pending = true
	}
	irq.sources |= 0x01 << (source & 0x1f)
}

// Release the line on behalf of the source.
func (irq *Interrupt) Release(source int) {
	irq.sources &^= 0x01 << (source & 0x1f)
}

// Set asserts or releases the line on behalf of the source.
func (irq *Interrupt) Set(source int, active bool) {
	if active {
		irq.Assert(source)
	} else {
		irq.Release(source)
	}
}

// Active returns true if any source is asserting the line.
func (irq *Interrupt) Active() bool {
	return irq.sources != 0
}

// LastTriggered returns the clock cycle at which the interrupt was last
// served.
func (irq *Interrupt) LastTriggered() uint64 {
	return irq.lastTriggered
}

// Served returns the number of times the interrupt has been served.
func (irq *Interrupt) Served() int {
	return irq.served
}

// Reset releases the line for every source.
func (irq *Interrupt) Reset() {
	irq.sources = 0
	irq.pending = false
	irq.lastTriggered = 0
	irq.served = 0
}

// IsTime returns true if the interrupt should be served now.
func (irq *Interrupt) IsTime(c *CPU) bool {
	if irq.edgeTriggered {
		if !irq.pending {
			return false
		}
	} else if !irq.Active() {
		return false
	}
	return irq.gate == nil || irq.gate(c)
}

// ExecuteOver serves the interrupt if IsTime() is true. Returns true if the
// interrupt was served.
func (irq *Interrupt) ExecuteOver(c *CPU) (bool, error) {
	if !irq.IsTime(c) {
		return false, nil
	}

	cycles, err := irq.serve(c)
	if err != nil {
		return false, err
	}

	irq.pending = false
	irq.lastTriggered = c.ClockCycles()
	irq.served++
	c.Tick(cycles)

	return true, nil
}

// Interrupts is the interrupt table of a CPU. Interrupts earlier in the table
// have priority.
type Interrupts []*Interrupt

// Find the interrupt with the name.
func (t Interrupts) Find(name string) (*Interrupt, bool) {
	for _, irq := range t {
		if irq.Name == name {
			return irq, true
		}
	}
	return nil, false
}
