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

package bits

import "fmt"

// Format is the interpretation of the bytes in a UInt.
type Format int

// List of valid Format values.
const (
	Unsigned Format = iota

	// two's complement
	Signed

	// packed binary coded decimal. each nibble is one decimal digit
	PackedBCD
)

func (f Format) String() string {
	switch f {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	case PackedBCD:
		return "bcd"
	}
	return "unknown format"
}

// UInt is the numeric interpretation of a UBytes value.
type UInt struct {
	bytes  UBytes
	format Format
}

// NewUInt interprets the bytes according to the format. The bytes are copied.
func NewUInt(b UBytes, format Format) UInt {
	return UInt{bytes: b.Copy(), format: format}
}

// UIntFromValue creates a UInt of the specified size from the numeric value v.
// The value is truncated to fit the size. For the PackedBCD format, negative
// values are treated as zero.
func UIntFromValue(v int64, size int, format Format) UInt {
	u := UInt{bytes: NewUBytes(size), format: format}

	switch format {
	case PackedBCD:
		if v < 0 {
			v = 0
		}
		var packed uint64
		for shift := 0; v > 0 && shift < size*8; shift += 4 {
			packed |= uint64(v%10) << shift
			v /= 10
		}
		u.bytes.SetValue(packed)
	default:
		// two's complement is the natural representation of a negative int64
		u.bytes.SetValue(uint64(v))
	}

	return u
}

func (u UInt) String() string {
	return fmt.Sprintf("%d", u.Value())
}

// Format returns the interpretation of the value.
func (u UInt) Format() Format {
	return u.format
}

// UBytes returns a copy of the underlying bytes.
func (u UInt) UBytes() UBytes {
	return u.bytes.Copy()
}

// Unsigned returns the bytes interpreted as an unsigned binary value,
// regardless of the format.
func (u UInt) Unsigned() uint64 {
	return u.bytes.Value()
}

// Value returns the numeric value of the bytes according to the format.
//
// Nibbles in a PackedBCD value that are not valid decimal digits are
// interpreted as their binary value. This mirrors how the 6502 family treat
// invalid BCD values.
func (u UInt) Value() int64 {
	switch u.format {
	case Signed:
		v := u.bytes.Value()
		if u.bytes.Negative() && u.bytes.Bits() < 64 {
			v |= ^uint64(0) << u.bytes.Bits()
		}
		return int64(v)
	case PackedBCD:
		var v int64
		for _, b := range u.bytes {
			v = v*100 + int64(b.HighNibble())*10 + int64(b.LowNibble())
		}
		return v
	}
	return int64(u.bytes.Value())
}

// Convert the value to a different format. The numeric value is preserved
// where it can be represented in the new format.
func (u UInt) Convert(format Format) UInt {
	if format == u.format {
		return NewUInt(u.bytes, format)
	}
	return UIntFromValue(u.Value(), u.bytes.Size(), format)
}
