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

// decimal mode arithmetic follows the description of the 6502 decimal mode
// in "6502 Decimal Mode" by Bruce Clark and the NMOS notes by Jorge Cwik

func addDecimal(a, b uint8, carry bool) (r uint8, rcarry bool) {
	r = a + b
	if carry {
		r++
	}
	return r, r > 9
}

// AddDecimal adds val to the low 8 bits of the register in binary coded
// decimal. Returns the carry, zero, overflow and sign conditions as the NMOS
// 6502 computes them.
func (r *Register) AddDecimal(val uint8, carry bool) (rcarry, zero, overflow, sign bool) {
	var ucarry, tcarry bool

	v := uint8(r.value)

	// binary addition of units and tens
	runits := v & 0x0f
	vunits := val & 0x0f
	runits, ucarry = addDecimal(runits, vunits, carry)

	rtens := (v & 0xf0) >> 4
	vtens := (val & 0xf0) >> 4

	// the Z flag is computed before performing any decimal adjust. the binary
	// result of the whole addition decides it
	bsum := v + val
	if carry {
		bsum++
	}
	zero = bsum == 0x00

	// decimal correction for units
	if ucarry {
		runits = (runits - 10) & 0x0f
	}

	rtens, tcarry = addDecimal(rtens, vtens, ucarry)

	// the N and V flags are computed after a decimal adjust of the low nibble
	// but before adjusting the high nibble. the tens value has not been
	// shifted into the upper nibble yet
	sign = rtens&0x08 == 0x08
	overflow = ((v ^ (rtens << 4)) & ^(v ^ val) & 0x80) != 0

	// decimal correction for tens
	if tcarry {
		rtens -= 10
	}

	r.LoadLow(((rtens << 4) & 0xf0) | runits)

	return tcarry, zero, overflow, sign
}

func subtractDecimal(a, b uint8, carry bool) (r uint8, rcarry bool) {
	r = a - b
	if carry {
		r--
	}
	return r, b > a || carry && b == a
}

// SubtractDecimal subtracts val from the low 8 bits of the register in binary
// coded decimal. The carry is the 6502 style inverted borrow. On the NMOS 6502
// the zero, overflow and sign conditions are the same as for binary
// subtraction and are returned as such.
func (r *Register) SubtractDecimal(val uint8, carry bool) (rcarry, zero, overflow, sign bool) {
	var ucarry, tcarry bool

	v := uint8(r.value)

	// flags from the binary result
	bin := NewRegister(0, "", 1)
	bin.Load(uint16(v))
	_, overflow = bin.Subtract(val, carry)
	zero = bin.IsZero()
	sign = bin.IsNegative()

	// invert carry flag. the 6502 uses the carry flag opposite to what you
	// might expect when subtracting
	borrow := !carry

	runits := v & 0x0f
	vunits := val & 0x0f
	runits, ucarry = subtractDecimal(runits, vunits, borrow)

	rtens := (v & 0xf0) >> 4
	vtens := (val & 0xf0) >> 4
	rtens, tcarry = subtractDecimal(rtens, vtens, ucarry)

	if ucarry {
		runits += 10
	}
	if tcarry {
		rtens += 10
	}

	r.LoadLow(((rtens << 4) & 0xf0) | (runits & 0x0f))

	return !tcarry, zero, overflow, sign
}
