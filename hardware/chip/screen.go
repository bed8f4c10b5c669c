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

package chip

import (
	"github.com/emu8/emu8/curated"
)

// ScreenError is returned by NewScreenMemory() if the dimensions are not
// usable.
const ScreenError = "chip: screen memory: %v"

// ScreenMemory is the frame buffer of a graphical chip. Each pixel is an
// index into the palette of the chip. The chip notifies
// notifications.EventGraphicsReady when a frame is complete.
type ScreenMemory struct {
	Width  int
	Height int

	// the palette index of every pixel, row by row
	Pixels []uint8

	// the number of frames completed
	Frame int
}

// NewScreenMemory is the preferred method of initialisation for the
// ScreenMemory type.
func NewScreenMemory(width int, height int) (*ScreenMemory, error) {
	if width <= 0 || height <= 0 {
		return nil, curated.Errorf(ScreenError, "dimensions must be positive")
	}
	return &ScreenMemory{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height),
	}, nil
}

// SetPixel sets the palette index of the pixel. Pixels outside the screen
// are ignored.
func (scr *ScreenMemory) SetPixel(x int, y int, colour uint8) {
	if x < 0 || y < 0 || x >= scr.Width || y >= scr.Height {
		return
	}
	scr.Pixels[y*scr.Width+x] = colour
}

// Pixel returns the palette index of the pixel. Pixels outside the screen
// are colour zero.
func (scr *ScreenMemory) Pixel(x int, y int) uint8 {
	if x < 0 || y < 0 || x >= scr.Width || y >= scr.Height {
		return 0
	}
	return scr.Pixels[y*scr.Width+x]
}

// Fill every pixel with the colour.
func (scr *ScreenMemory) Fill(colour uint8) {
	for i := range scr.Pixels {
		scr.Pixels[i] = colour
	}
}

// FillRect fills the rectangle with the colour. The rectangle is clipped to
// the screen.
func (scr *ScreenMemory) FillRect(x int, y int, w int, h int, colour uint8) {
	for j := max(y, 0); j < min(y+h, scr.Height); j++ {
		for i := max(x, 0); i < min(x+w, scr.Width); i++ {
			scr.Pixels[j*scr.Width+i] = colour
		}
	}
}
