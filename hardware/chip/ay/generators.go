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

package ay

// a square wave that changes state every period steps
type tone struct {
	count float64
	out   bool
}

func (t *tone) clock(steps float64, period int) {
	// a period of zero behaves as a period of one
	p := float64(max(period, 1))
	t.count += steps
	for t.count >= p {
		t.count -= p
		t.out = !t.out
	}
}

// a 17 bit LFSR clocked every period steps
type noise struct {
	count float64
	lfsr  uint32
}

func (n *noise) clock(steps float64, period int) {
	p := float64(max(period, 1))
	n.count += steps
	for n.count >= p {
		n.count -= p
		bit := (n.lfsr ^ n.lfsr>>3) & 0x01
		n.lfsr = n.lfsr>>1 | bit<<16
	}
}

func (n *noise) out() bool {
	return n.lfsr&0x01 == 0x01
}

// bits of the envelope shape register
const (
	shapeHold      = 0x01
	shapeAlternate = 0x02
	shapeAttack    = 0x04
	shapeContinue  = 0x08
)

// the envelope has sixteen steps. it steps once every period steps of the
// tone counter
type envelope struct {
	count   float64
	step    int
	attack  bool
	holding bool
}

func (e *envelope) restart(shape uint8) {
	e.count = 0
	e.step = 0
	e.attack = shape&shapeAttack == shapeAttack
	e.holding = false
}

func (e *envelope) level() int {
	if e.attack {
		return e.step
	}
	return 15 - e.step
}

func (e *envelope) clock(steps float64, period int, shape uint8) {
	if e.holding {
		return
	}

	p := float64(max(period, 1))
	e.count += steps
	for e.count >= p && !e.holding {
		e.count -= p
		e.step++
		if e.step < 16 {
			continue
		}

		switch {
		case shape&shapeContinue == 0:
			// one cycle then silence
			e.step = 15
			e.attack = false
			e.holding = true
		case shape&shapeHold == shapeHold:
			e.step = 15
			if shape&shapeAlternate == shapeAlternate {
				e.attack = !e.attack
			}
			e.holding = true
		default:
			e.step = 0
			if shape&shapeAlternate == shapeAlternate {
				e.attack = !e.attack
			}
		}
	}
}
