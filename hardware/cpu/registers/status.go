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

package registers

import (
	"strings"
	"unicode"
)

// Flag is the symbolic name of a bit in the StatusRegister.
type Flag string

// Flags of the 6502 family.
const (
	Carry            Flag = "C"
	Zero             Flag = "Z"
	InterruptDisable Flag = "I"
	DecimalMode      Flag = "D"
	Break            Flag = "B"
	Overflow         Flag = "V"
	Sign             Flag = "N"
)

// Flags of the Z80. The Z80 shares the Carry and Zero names with the 6502.
// The X and Y flags are the undocumented copies of bits 3 and 5 of the
// result.
const (
	Subtract  Flag = "N"
	Parity    Flag = "P"
	HalfCarry Flag = "H"
	SignZ80   Flag = "S"
	FlagX     Flag = "X"
	FlagY     Flag = "Y"
)

// unused indicates a bit in the status register that has no name
const unused Flag = "-"

// Layout describes the names of the bits in a status register. Names are in
// bit order, starting with bit zero.
type Layout struct {
	Names [8]Flag

	// bits that always read as one
	AlwaysSet uint8
}

// Flags6502 is the status register layout of the 6502 family. Bit 5 is unused
// and always reads as one.
var Flags6502 = Layout{
	Names:     [8]Flag{Carry, Zero, InterruptDisable, DecimalMode, Break, unused, Overflow, Sign},
	AlwaysSet: 0x20,
}

// FlagsZ80 is the status register layout of the Z80.
var FlagsZ80 = Layout{
	Names: [8]Flag{Carry, Subtract, Parity, FlagX, HalfCarry, FlagY, Zero, SignZ80},
}

// StatusRegister gives access to the individual bits of the CPU's flag
// register by name.
type StatusRegister struct {
	layout Layout
	masks  map[Flag]uint8
	value  uint8
}

// NewStatusRegister is the preferred method of initialisation for
// StatusRegister.
func NewStatusRegister(layout Layout) *StatusRegister {
	sr := &StatusRegister{
		layout: layout,
		masks:  make(map[Flag]uint8),
	}
	for i, n := range layout.Names {
		if n != unused {
			sr.masks[n] = 0x01 << i
		}
	}
	sr.value = layout.AlwaysSet
	return sr
}

// Label returns the canonical name of the status register.
func (sr *StatusRegister) Label() string {
	return "SR"
}

// String returns the status register with set flags in upper case and clear
// flags in lower case. The most significant bit is first.
func (sr *StatusRegister) String() string {
	s := strings.Builder{}
	for i := 7; i >= 0; i-- {
		n := sr.layout.Names[i]
		if n == unused {
			s.WriteRune('-')
			continue
		}
		r := rune(n[0])
		if sr.value&(0x01<<i) == 0 {
			r = unicode.ToLower(r)
		}
		s.WriteRune(r)
	}
	return s.String()
}

// Has returns true if the layout of the status register includes the flag.
func (sr *StatusRegister) Has(f Flag) bool {
	_, ok := sr.masks[f]
	return ok
}

// Get the state of the named flag. Unknown flags are always false.
func (sr *StatusRegister) Get(f Flag) bool {
	return sr.value&sr.masks[f] != 0
}

// Set the state of the named flag. Unknown flags are ignored.
func (sr *StatusRegister) Set(f Flag, v bool) {
	if v {
		sr.value |= sr.masks[f]
	} else {
		sr.value &^= sr.masks[f]
	}
	sr.value |= sr.layout.AlwaysSet
}

// Reset clears all flags.
func (sr *StatusRegister) Reset() {
	sr.Load(0)
}

// Value returns the status register as an 8 bit value.
func (sr *StatusRegister) Value() uint8 {
	return sr.value | sr.layout.AlwaysSet
}

// Load sets all flags from an 8 bit value.
func (sr *StatusRegister) Load(v uint8) {
	sr.value = v | sr.layout.AlwaysSet
}
