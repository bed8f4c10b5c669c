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

package vicii

import (
	"github.com/emu8/emu8/notifications"
)

// render the frame into the screen memory
func (vic *VICII) render() error {
	border := vic.regs.Register(BORDER) & 0x0f
	vic.Screen.Fill(border)

	cr1 := vic.regs.Register(CR1)

	// display enable
	if cr1&0x10 == 0x10 {
		memptr := vic.regs.Register(MEMPTR)
		matrix := uint16(memptr&0xf0) << 6
		background := vic.regs.Register(BGCOLOR0) & 0x0f

		var err error
		if cr1&0x20 == 0x20 {
			err = vic.renderBitmap(matrix, uint16(memptr&0x08)<<10)
		} else {
			err = vic.renderText(matrix, uint16(memptr&0x0e)<<10, background)
		}
		if err != nil {
			return err
		}
	}

	vic.Screen.Frame++
	vic.notify(notifications.EventGraphicsReady, vic.Screen.Frame)

	return nil
}

func (vic *VICII) glyph(x int, y int, bits uint8, fg uint8, bg uint8) {
	for i := 0; i < 8; i++ {
		c := bg
		if bits&(0x80>>i) != 0 {
			c = fg
		}
		vic.Screen.SetPixel(displayLeft+x+i, displayTop+y, c)
	}
}

func (vic *VICII) renderText(matrix uint16, charBase uint16, background uint8) error {
	for row := 0; row < 25; row++ {
		for col := 0; col < 40; col++ {
			idx := uint16(row*40 + col)
			code, err := vic.mem.ReadView(vic.vmem.View, matrix+idx)
			if err != nil {
				return err
			}
			fg := vic.colour(int(idx))
			for line := 0; line < 8; line++ {
				bits, err := vic.mem.ReadView(vic.vmem.View, charBase+uint16(code)*8+uint16(line))
				if err != nil {
					return err
				}
				vic.glyph(col*8, row*8+line, bits, fg, background)
			}
		}
	}
	return nil
}

func (vic *VICII) renderBitmap(matrix uint16, bitmap uint16) error {
	for row := 0; row < 25; row++ {
		for col := 0; col < 40; col++ {
			idx := uint16(row*40 + col)
			c, err := vic.mem.ReadView(vic.vmem.View, matrix+idx)
			if err != nil {
				return err
			}
			for line := 0; line < 8; line++ {
				bits, err := vic.mem.ReadView(vic.vmem.View, bitmap+idx*8+uint16(line))
				if err != nil {
					return err
				}
				vic.glyph(col*8, row*8+line, bits, c>>4, c&0x0f)
			}
		}
	}
	return nil
}

func (vic *VICII) colour(idx int) uint8 {
	if vic.vmem.Colour == nil {
		return 0x0e
	}
	return vic.vmem.Colour.PeekValue(idx) & 0x0f
}
