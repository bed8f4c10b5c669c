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

package hardware

import (
	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/govern"
)

// UnsupportedState is returned by Run() when the continue check returns a
// state that the run loop does not support.
const UnsupportedState = "computer: unsupported emulation state (%s) in Run() function"

// While the continueCheck() function only runs at the end of a tick, it can
// still be expensive to do a full continue check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run the computer until the continue check returns Ending, the CPU stops or
// an error occurs. The continue check is called after every tick and can be
// nil.
//
// A killed or faulted CPU is sticky and the computer will not run again until
// it is initialised.
func (c *Computer) Run(continueCheck func() (govern.State, error)) (govern.Halt, error) {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	if !c.initialised {
		return govern.HaltFault, curated.Errorf(InitError, "computer has not been initialised")
	}

	base := c.CPU.Base()

	c.state = govern.Running
	defer func() {
		c.state = govern.Paused
	}()

	for {
		switch c.state {
		case govern.Running:
			if base.Faulted() {
				return govern.HaltFault, curated.Errorf(CPUError, base.FaultError())
			}
			if base.Killed {
				return govern.HaltCPUKilled, nil
			}
			if err := c.Step(); err != nil {
				return govern.HaltFault, err
			}
		case govern.Paused:
		default:
			return govern.HaltFault, curated.Errorf(UnsupportedState, c.state)
		}

		state, err := continueCheck()
		if err != nil {
			return govern.HaltRequested, err
		}

		if state == govern.Ending || state == govern.Initialising {
			return govern.HaltRequested, nil
		}

		c.state = state
	}
}

// RunForCycles runs the computer for at least the number of CPU cycles. The
// run may end early for the same reasons as Run().
func (c *Computer) RunForCycles(cycles uint64, continueCheck func() (govern.State, error)) (govern.Halt, error) {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	target := c.ClockCycles() + cycles
	limit := false

	halt, err := c.Run(func() (govern.State, error) {
		if c.ClockCycles() >= target {
			limit = true
			return govern.Ending, nil
		}
		return continueCheck()
	})

	if limit {
		return govern.HaltCycleLimit, err
	}

	return halt, err
}
