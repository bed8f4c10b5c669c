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

package cia

// masks for the four time of day registers
var todMask = [4]uint8{0x0f, 0x7f, 0x7f, 0x9f}

// tod is the time of day clock. all values are BCD. the hours register has
// the PM flag in bit 7
type tod struct {
	time  [4]uint8
	alarm [4]uint8

	// reading the hours register latches the time until the tenths register
	// is read
	latch   [4]uint8
	latched bool

	// writing the hours register stops the clock until the tenths register
	// is written
	stopped bool

	// the number of cycles in a tenth of a second and the cycles accumulated
	// towards the next tenth
	period uint64
	acc    uint64
}

func (t *tod) reset() {
	t.time = [4]uint8{0x00, 0x00, 0x00, 0x01}
	t.alarm = [4]uint8{}
	t.latched = false
	t.stopped = false
	t.acc = 0
}

func (t *tod) read(reg int) uint8 {
	if reg == 3 && !t.latched {
		t.latch = t.time
		t.latched = true
	}
	if !t.latched {
		return t.time[reg]
	}
	v := t.latch[reg]
	if reg == 0 {
		t.latched = false
	}
	return v
}

func (t *tod) write(reg int, v uint8, alarm bool) {
	v &= todMask[reg]
	if alarm {
		t.alarm[reg] = v
		return
	}
	t.time[reg] = v
	switch reg {
	case 3:
		t.stopped = true
	case 0:
		t.stopped = false
	}
}

func bcdIncrement(v uint8) uint8 {
	v++
	if v&0x0f > 0x09 {
		v += 0x06
	}
	return v
}

// tick the clock forward by one tenth of a second
func (t *tod) tick() {
	t.time[0] = bcdIncrement(t.time[0])
	if t.time[0] <= 0x09 {
		return
	}
	t.time[0] = 0

	t.time[1] = bcdIncrement(t.time[1])
	if t.time[1] <= 0x59 {
		return
	}
	t.time[1] = 0

	t.time[2] = bcdIncrement(t.time[2])
	if t.time[2] <= 0x59 {
		return
	}
	t.time[2] = 0

	pm := t.time[3] & 0x80
	hr := bcdIncrement(t.time[3] & 0x1f)
	switch hr {
	case 0x12:
		pm ^= 0x80
	case 0x13:
		hr = 0x01
	}
	t.time[3] = pm | hr
}

// advance the clock by the number of cycles. returns true if the alarm time
// was reached
func (t *tod) advance(cycles uint64) bool {
	if t.stopped || t.period == 0 {
		return false
	}

	alarm := false
	t.acc += cycles
	for t.acc >= t.period {
		t.acc -= t.period
		t.tick()
		if t.time == t.alarm {
			alarm = true
		}
	}
	return alarm
}
