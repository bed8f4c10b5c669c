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

// Package keyboard implements the key matrix found in most home computers.
// The keys of the matrix are arranged in lines and sense lines. The
// computer drives one or more lines low and reads the sense lines. A sense
// line reads low if a pressed key connects it to a line that is being
// driven low.
//
// The mapping of host keys to matrix positions is the business of the
// machine that owns the matrix.
package keyboard

import (
	"fmt"
	"strings"

	"github.com/emu8/emu8/curated"
)

// PositionError is returned when a key is outside the matrix.
const PositionError = "keyboard: key %d,%d is outside the %dx%d matrix"

// Matrix is a keyboard matrix of up to eight lines and eight sense lines.
type Matrix struct {
	label string
	lines int
	sense int

	// one entry per line. a set bit is a pressed key on that sense line
	keys [8]uint8
}

// NewMatrix is the preferred method of initialisation for the Matrix type.
func NewMatrix(label string, lines int, sense int) *Matrix {
	return &Matrix{
		label: label,
		lines: min(max(lines, 1), 8),
		sense: min(max(sense, 1), 8),
	}
}

func (m *Matrix) String() string {
	s := strings.Builder{}
	s.WriteString(m.label)
	s.WriteString(":")
	for l := 0; l < m.lines; l++ {
		s.WriteString(fmt.Sprintf(" %02x", m.keys[l]))
	}
	return s.String()
}

// Press the key at the intersection of the line and the sense line.
func (m *Matrix) Press(line int, sense int) error {
	if line < 0 || line >= m.lines || sense < 0 || sense >= m.sense {
		return curated.Errorf(PositionError, line, sense, m.lines, m.sense)
	}
	m.keys[line] |= 0x01 << sense
	return nil
}

// Release the key at the intersection of the line and the sense line.
func (m *Matrix) Release(line int, sense int) error {
	if line < 0 || line >= m.lines || sense < 0 || sense >= m.sense {
		return curated.Errorf(PositionError, line, sense, m.lines, m.sense)
	}
	m.keys[line] &^= 0x01 << sense
	return nil
}

// ReleaseAll keys.
func (m *Matrix) ReleaseAll() {
	m.keys = [8]uint8{}
}

// Pressed returns true if the key is pressed.
func (m *Matrix) Pressed(line int, sense int) bool {
	if line < 0 || line >= m.lines || sense < 0 || sense >= m.sense {
		return false
	}
	return m.keys[line]&(0x01<<sense) != 0
}

// Scan the matrix. The drive argument has a zero bit for every line that is
// driven low. The result has a zero bit for every sense line that reads low.
// Unused bits of the result are high.
func (m *Matrix) Scan(drive uint8) uint8 {
	var low uint8
	for l := 0; l < m.lines; l++ {
		if drive&(0x01<<l) == 0 {
			low |= m.keys[l]
		}
	}
	return ^low
}

// ReverseScan drives the sense lines and reads the lines. Some programs scan
// the C64 keyboard in this direction.
func (m *Matrix) ReverseScan(drive uint8) uint8 {
	var low uint8
	for l := 0; l < m.lines; l++ {
		if m.keys[l]&^drive != 0 {
			low |= 0x01 << l
		}
	}
	return ^low
}
