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

package sid

import "fmt"

// the number of milliseconds taken by the attack phase for each attack
// value. the decay and release phases take three times as long
var attackTimes = [16]float64{2, 8, 16, 24, 38, 56, 68, 80, 100, 250, 500, 800, 1000, 3000, 5000, 8000}

type phase int

const (
	phaseRelease phase = iota
	phaseAttack
	phaseDecay
)

type envelope struct {
	attack  int
	decay   int
	sustain int
	release int

	phase phase

	// the level is in the range 0 to 255. the fraction accumulates the
	// partial steps between calls to clock()
	level    int
	fraction float64
}

// the number of level steps for every cycle at a 1MHz clock
func rate(ms float64) float64 {
	return 255.0 / (ms * 1000.0)
}

func (e *envelope) clock(cycles float64) {
	switch e.phase {
	case phaseAttack:
		e.fraction += cycles * rate(attackTimes[e.attack])
	case phaseDecay:
		if e.level > e.sustain {
			e.fraction -= cycles * rate(attackTimes[e.decay]*3)
		}
	case phaseRelease:
		e.fraction -= cycles * rate(attackTimes[e.release]*3)
	}

	steps := int(e.fraction)
	e.fraction -= float64(steps)
	e.level += steps

	switch e.phase {
	case phaseAttack:
		if e.level >= 255 {
			e.level = 255
			e.phase = phaseDecay
		}
	case phaseDecay:
		if e.level < e.sustain {
			e.level = e.sustain
		}
	}

	if e.level < 0 {
		e.level = 0
		e.fraction = 0
	}
}

type voice struct {
	ctrl uint8
	freq uint32
	pw   uint32

	// 24 bit phase accumulator
	acc uint32

	// 23 bit noise shift register
	noise uint32

	env envelope
}

func (vc *voice) String() string {
	return fmt.Sprintf("freq=%04x pw=%03x ctrl=%02x env=%d", vc.freq, vc.pw, vc.ctrl, vc.env.level)
}

func (vc *voice) reset() {
	vc.noise = 0x7ffff8
}

func (vc *voice) control(v uint8) {
	gate := v&ctrlGate == ctrlGate
	if gate && vc.ctrl&ctrlGate == 0 {
		vc.env.phase = phaseAttack
	} else if !gate && vc.ctrl&ctrlGate == ctrlGate {
		vc.env.phase = phaseRelease
	}
	if v&ctrlTest == ctrlTest {
		vc.acc = 0
	}
	vc.ctrl = v
}

func (vc *voice) clock(cycles float64) {
	vc.env.clock(cycles)

	if vc.ctrl&ctrlTest == ctrlTest {
		return
	}

	prev := vc.acc
	vc.acc = (vc.acc + uint32(float64(vc.freq)*cycles)) & 0xffffff

	// the noise register is clocked by bit 19 of the accumulator
	if prev&0x080000 == 0 && vc.acc&0x080000 != 0 || vc.acc < prev {
		bit := (vc.noise>>22 ^ vc.noise>>17) & 0x01
		vc.noise = (vc.noise<<1 | bit) & 0x7fffff
	}
}

// the 12 bit output of the waveform generator
func (vc *voice) output() uint32 {
	var out uint32 = 0xfff
	selected := false

	if vc.ctrl&ctrlTriangle == ctrlTriangle {
		t := vc.acc >> 11
		if vc.acc&0x800000 != 0 {
			t = ^t
		}
		out &= t & 0xfff
		selected = true
	}
	if vc.ctrl&ctrlSawtooth == ctrlSawtooth {
		out &= vc.acc >> 12
		selected = true
	}
	if vc.ctrl&ctrlPulse == ctrlPulse {
		if vc.acc>>12 < vc.pw {
			out = 0
		}
		selected = true
	}
	if vc.ctrl&ctrlNoise == ctrlNoise {
		n := (vc.noise>>9)&0x800 | (vc.noise>>8)&0x400 | (vc.noise>>5)&0x200 |
			(vc.noise>>3)&0x100 | (vc.noise>>2)&0x080 | (vc.noise<<1)&0x040 |
			(vc.noise<<3)&0x020 | (vc.noise<<4)&0x010
		out &= n
		selected = true
	}

	if !selected {
		return 0
	}
	return out
}

// the signed output of the voice scaled by the envelope
func (vc *voice) amplitude() int {
	return (int(vc.output()) - 0x800) * vc.env.level
}
