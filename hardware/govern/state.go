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

package govern

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// EmulatorStart is the default state and should never be entered once the
// emulator has begun.
//
// Initialising is used when the computer is being prepared for running.
//
// Ending is used when the emulation is about to shutdown.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Stepping
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "EmulatorStart"
	case Initialising:
		return "Initialising"
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Running:
		return "Running"
	case Ending:
		return "Ending"
	}

	return ""
}

// Halt describes why the run loop of the emulation stopped.
type Halt int

// List of reasons for the run loop stopping.
const (
	// the continue check function returned Ending
	HaltRequested Halt = iota

	// the cycle limit of the run has been reached
	HaltCycleLimit

	// the CPU has halted. for example, a 6502 KIL opcode
	HaltCPUKilled

	// the CPU or a chip is in a faulted state
	HaltFault
)

func (h Halt) String() string {
	switch h {
	case HaltRequested:
		return "requested"
	case HaltCycleLimit:
		return "cycle limit"
	case HaltCPUKilled:
		return "cpu killed"
	case HaltFault:
		return "fault"
	}
	return ""
}
