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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is the source of time within the emulation.
type Clock interface {
	ClockCycles() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised emulations where random numbers must be
	// predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type. The
// clock argument can be nil, in which case the clock is assumed to be stopped
// at zero until AttachClock() is called.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// AttachClock changes the time source of the generator. Used when the clock
// (normally the CPU) is created after the random number generator.
func (rnd *Random) AttachClock(clock Clock) {
	rnd.clock = clock
}

func (rnd *Random) cycles() int64 {
	if rnd.clock == nil {
		return 0
	}
	return int64(rnd.clock.ClockCycles())
}

func (rnd *Random) rand(salt int64) *rand.Rand {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(rnd.cycles() + salt))
	}
	return rand.New(rand.NewSource(baseSeed + rnd.cycles() + salt))
}

// Intn returns a number in the range 0 to n-1. The number is the same for
// every call made at the same emulated clock cycle.
func (rnd *Random) Intn(n int) int {
	return rnd.rand(0).Intn(n)
}

// Byte returns a random 8 bit value. The salt value distinguishes between
// several values required at the same clock cycle, for example when filling
// a block of memory.
func (rnd *Random) Byte(salt int) uint8 {
	return uint8(rnd.rand(int64(salt)).Intn(256))
}
