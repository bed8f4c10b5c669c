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

// Package clocks defines the constant values that define the speed of the CPU
// clock of the emulated machines. Values are in MHz.
//
// The values are used by the timer chips to convert real time to cycles (eg.
// the time of day clock in the CIA) and by the sound chips to calculate the
// number of clock cycles per output sample.
package clocks

// CPU clock speeds of the Commodore 64.
const (
	C64_PAL  = 0.985248
	C64_NTSC = 1.022727
)

// CPU clock speeds of the Commodore 264 family in single clock mode. The TED
// runs the CPU at double speed when the screen is blanked.
const (
	C264_PAL  = 0.886724
	C264_NTSC = 0.894886
)

// CPU clock speeds of the ZX Spectrum.
const (
	Spectrum48  = 3.500000
	Spectrum128 = 3.546900
)

// CyclesPerSample returns the number of clock cycles between samples at the
// given sample rate (in Hz).
func CyclesPerSample(clock float64, sampleRate int) float64 {
	return clock * 1000000 / float64(sampleRate)
}
