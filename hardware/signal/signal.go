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

package signal

import "fmt"

// Wire is a single line.
type Wire struct {
	Label string

	level    bool
	previous bool

	listeners []func(level bool)
}

// NewWire is the preferred method of initialisation for the Wire type.
func NewWire(label string, level bool) *Wire {
	return &Wire{
		Label:    label,
		level:    level,
		previous: level,
	}
}

func (w *Wire) String() string {
	if w.level {
		return fmt.Sprintf("%s=high", w.Label)
	}
	return fmt.Sprintf("%s=low", w.Label)
}

// Connect a listener to the wire.
func (w *Wire) Connect(f func(level bool)) {
	w.listeners = append(w.listeners, f)
}

// Set the level of the wire. Listeners are called if the level has changed.
func (w *Wire) Set(level bool) {
	w.previous = w.level
	w.level = level
	if w.previous != w.level {
		for _, f := range w.listeners {
			f(level)
		}
	}
}

// Level returns the current level of the wire.
func (w *Wire) Level() bool {
	return w.level
}

// PositiveEdge returns true if the most recent call to Set() took the wire
// from low to high.
func (w *Wire) PositiveEdge() bool {
	return !w.previous && w.level
}

// NegativeEdge returns true if the most recent call to Set() took the wire
// from high to low.
func (w *Wire) NegativeEdge() bool {
	return w.previous && !w.level
}

// Lines is the type constraint for the value of a Bus.
type Lines interface {
	~uint8 | ~uint16
}

// Bus is a set of parallel lines.
type Bus[T Lines] struct {
	Label string

	value    T
	previous T

	listeners []func(value T)
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus[T Lines](label string, value T) *Bus[T] {
	return &Bus[T]{
		Label:    label,
		value:    value,
		previous: value,
	}
}

func (b *Bus[T]) String() string {
	return fmt.Sprintf("%s=%#x", b.Label, b.value)
}

// Connect a listener to the bus.
func (b *Bus[T]) Connect(f func(value T)) {
	b.listeners = append(b.listeners, f)
}

// Set the value of the bus. Listeners are called if the value has changed.
func (b *Bus[T]) Set(value T) {
	b.previous = b.value
	b.value = value
	if b.previous != b.value {
		for _, f := range b.listeners {
			f(value)
		}
	}
}

// SetMasked changes only the lines selected by the mask.
func (b *Bus[T]) SetMasked(value T, mask T) {
	b.Set(b.value&^mask | value&mask)
}

// Value returns the current value of the bus.
func (b *Bus[T]) Value() T {
	return b.value
}

// Changed returns the lines that changed in the most recent call to Set().
func (b *Bus[T]) Changed() T {
	return b.previous ^ b.value
}

// PositiveEdges returns the lines that went from low to high in the most
// recent call to Set().
func (b *Bus[T]) PositiveEdges() T {
	return ^b.previous & b.value
}

// NegativeEdges returns the lines that went from high to low in the most
// recent call to Set().
func (b *Bus[T]) NegativeEdges() T {
	return b.previous &^ b.value
}

// MicroprocessorBus is the set of lines presented by a microprocessor. The
// interrupt and reset lines are active low, as they are on the chips.
type MicroprocessorBus struct {
	Address *Bus[uint16]
	Data    *Bus[uint8]

	// high for read and low for write
	RW *Wire

	IRQ   *Wire
	NMI   *Wire
	Reset *Wire
}

// NewMicroprocessorBus is the preferred method of initialisation for the
// MicroprocessorBus type.
func NewMicroprocessorBus() *MicroprocessorBus {
	return &MicroprocessorBus{
		Address: NewBus[uint16]("address", 0),
		Data:    NewBus[uint8]("data", 0),
		RW:      NewWire("rw", true),
		IRQ:     NewWire("irq", true),
		NMI:     NewWire("nmi", true),
		Reset:   NewWire("reset", true),
	}
}

func (mb *MicroprocessorBus) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s", mb.Address, mb.Data, mb.RW, mb.IRQ, mb.NMI, mb.Reset)
}
