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

// Step the computer by one tick. The CPU executes one instruction (or serves
// an interrupt), then every chip is simulated in ID order, then every IO
// device is refreshed.
//
// Errors from the CPU, the chips and the devices are wrapped with CPUError,
// ChipError and DeviceError respectively.
func (c *Computer) Step() error {
	if !c.initialised {
		return curated.Errorf(InitError, "computer has not been initialised")
	}

	if c.state != govern.Running {
		c.state = govern.Stepping
	}

	if err := c.CPU.Execute(); err != nil {
		return curated.Errorf(CPUError, err)
	}

	for _, ch := range c.chips {
		if err := ch.Simulate(c); err != nil {
			return curated.Errorf(ChipError, ch.Label(), err)
		}
	}

	for _, d := range c.devices {
		if err := d.Refresh(c); err != nil {
			return curated.Errorf(DeviceError, d.Label(), err)
		}
	}

	c.ticks++

	return nil
}
