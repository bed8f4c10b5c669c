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

// Package timer implements the interval timers found in the CIA, VIA and TED
// chips.
//
// A timer counts down from a value loaded from its latch. When the counter
// passes zero the timer underflows: it is reloaded from the latch and, in
// one-shot mode, stops. The owning chip decides what to do with an
// underflow. Usually that is raising an interrupt and changing the output
// line of the timer.
package timer

import (
	"fmt"
)

// RunMode specifies what happens when the timer underflows.
type RunMode int

// List of valid RunMode values.
const (
	Continuous RunMode = iota
	OneShot
)

func (m RunMode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case OneShot:
		return "one-shot"
	}
	return "unknown run mode"
}

// CountMode specifies what the timer counts.
type CountMode int

// List of valid CountMode values.
const (
	// processor clock cycles
	ProcessorCycles CountMode = iota

	// underflows of another timer
	Cascade

	// pulses on an external line. for example, the CNT pin of the CIA
	External
)

func (m CountMode) String() string {
	switch m {
	case ProcessorCycles:
		return "cycles"
	case Cascade:
		return "cascade"
	case External:
		return "external"
	}
	return "unknown count mode"
}

// OutputMode specifies the shape of the output line on underflow.
type OutputMode int

// List of valid OutputMode values.
const (
	// the output is high for the tick in which the underflow occurred
	Pulse OutputMode = iota

	// the output changes state on every underflow
	Toggle
)

func (m OutputMode) String() string {
	switch m {
	case Pulse:
		return "pulse"
	case Toggle:
		return "toggle"
	}
	return "unknown output mode"
}

// Timer is a 16 bit interval timer.
type Timer struct {
	Label string

	Counter uint16
	Latch   uint16
	Running bool

	RunMode    RunMode
	CountMode  CountMode
	OutputMode OutputMode

	// the state of the output line
	Output bool

	// total number of underflows since the timer was reset
	Underflows int
}

// NewTimer is the preferred method of initialisation for the Timer type.
// The counter and the latch start at $ffff, as they do in the CIA.
func NewTimer(label string) *Timer {
	tmr := &Timer{Label: label}
	tmr.Reset()
	return tmr
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("%s: %04x/%04x %s %s %s run=%v out=%v",
		tmr.Label, tmr.Counter, tmr.Latch,
		tmr.RunMode, tmr.CountMode, tmr.OutputMode,
		tmr.Running, tmr.Output)
}

// Reset the timer to its power-on state.
func (tmr *Timer) Reset() {
	tmr.Counter = 0xffff
	tmr.Latch = 0xffff
	tmr.Running = false
	tmr.RunMode = Continuous
	tmr.CountMode = ProcessorCycles
	tmr.OutputMode = Pulse
	tmr.Output = false
	tmr.Underflows = 0
}

// SetLatchLo sets the low byte of the latch.
func (tmr *Timer) SetLatchLo(v uint8) {
	tmr.Latch = tmr.Latch&0xff00 | uint16(v)
}

// SetLatchHi sets the high byte of the latch. As with the CIA, the counter is
// loaded from the latch if the timer is stopped.
func (tmr *Timer) SetLatchHi(v uint8) {
	tmr.Latch = tmr.Latch&0x00ff | uint16(v)<<8
	if !tmr.Running {
		tmr.Load()
	}
}

// Load the counter from the latch.
func (tmr *Timer) Load() {
	tmr.Counter = tmr.Latch
}

// Advance the timer by the input appropriate to the count mode. The cycles
// value is used in ProcessorCycles mode, the cascade value in Cascade mode
// and the pulses value in External mode. Returns the number of underflows.
func (tmr *Timer) Advance(cycles uint64, cascade int, pulses int) int {
	switch tmr.CountMode {
	case Cascade:
		return tmr.CountDown(uint64(cascade))
	case External:
		return tmr.CountDown(uint64(pulses))
	}
	return tmr.CountDown(cycles)
}

// CountDown decreases the counter by n. Returns the number of times the
// timer underflowed.
func (tmr *Timer) CountDown(n uint64) int {
	if tmr.OutputMode == Pulse {
		tmr.Output = false
	}

	if !tmr.Running || n == 0 {
		return 0
	}

	if n <= uint64(tmr.Counter) {
		tmr.Counter -= uint16(n)
		return 0
	}

	// the first underflow
	n -= uint64(tmr.Counter) + 1
	underflows := 1
	tmr.Load()

	if tmr.RunMode == OneShot {
		tmr.Running = false
	} else {
		period := uint64(tmr.Latch) + 1
		underflows += int(n / period)
		tmr.Counter = tmr.Latch - uint16(n%period)
	}

	tmr.Underflows += underflows

	switch tmr.OutputMode {
	case Pulse:
		tmr.Output = true
	case Toggle:
		if underflows%2 == 1 {
			tmr.Output = !tmr.Output
		}
	}

	return underflows
}
