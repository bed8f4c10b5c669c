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

package chip

import (
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// Clock is the source of the cycle count used by chips. Implemented by the
// CPU.
type Clock interface {
	ClockCycles() uint64
}

// Simulatable is implemented by every chip.
type Simulatable interface {
	// chips are simulated in ascending ID order. the ID must be unique in
	// the Computer
	ID() int
	Label() string

	// Initialise puts the chip into its power-on state
	Initialise() error

	// Simulate advances the state of the chip to the clock
	Simulate(c Clock) error
}

// MemoryMapped is implemented by chips that have registers in the address
// space of the CPU.
type MemoryMapped interface {
	Registers() memory.SubsetID
}

// EventSource is implemented by chips that raise events.
type EventSource interface {
	Notifier() *notifications.Notifier
}

// Elapsed measures the number of cycles between calls to Simulate(). The
// zero value is ready to use.
type Elapsed struct {
	last uint64
}

// Update returns the number of cycles since the previous call to Update() or
// Reset().
func (e *Elapsed) Update(c Clock) uint64 {
	now := c.ClockCycles()
	d := now - e.last
	e.last = now
	return d
}

// Reset the measurement to the clock.
func (e *Elapsed) Reset(c Clock) {
	e.last = c.ClockCycles()
}

// Latch is a boolean that is reset when it is consumed. Used to defer the
// effect of a register write until the next call to Simulate().
//
// The zero value is ready to use.
type Latch struct {
	v bool
}

// Mark sets the latch.
func (l *Latch) Mark() {
	l.v = true
}

// Consume returns the state of the latch and resets it.
func (l *Latch) Consume() bool {
	v := l.v
	l.v = false
	return v
}

// Peek returns the state of the latch without resetting it.
func (l *Latch) Peek() bool {
	return l.v
}

// Clear resets the latch without consuming it.
func (l *Latch) Clear() {
	l.v = false
}
