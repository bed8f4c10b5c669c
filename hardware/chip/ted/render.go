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

package ted

import (
	"github.com/emu8/emu8/notifications"
)

// bits of CR1
const (
	cr1Display = 0x10
	cr1Bitmap  = 0x20
)

func (ted *TED) render() error {
	ted.Screen.Fill(ted.regs.Register(BORDER) & 0x7f)

	cr1 := ted.regs.Register(CR1)
	if cr1&cr1Display == cr1Display && cr1&cr1Bitmap == 0 {
		if err := ted.renderText(); err != nil {
			return err
		}
	}

	ted.Screen.Frame++
	ted.notify(notifications.EventGraphicsReady, ted.Screen.Frame)

	return nil
}

// characters are fetched from the character ROM or from RAM
func (ted *TED) charData(address uint16) (uint8, error) {
	rom := ted.vmem.CharROM
	if ted.regs.Register(BITMAP)&bitmapROM == bitmapROM && rom != nil && rom.Contains(address) {
		return rom.PeekValue(int(address) - int(rom.Origin())), nil
	}
	return ted.mem.ReadView(ted.vmem.View, address)
}

// the attributes are in the 1K before the video matrix. the colour of each
// character is the low seven bits of its attribute
func (ted *TED) renderText() error {
	attributes := uint16(ted.regs.Register(VIDEOBASE)&0xf8) << 8
	matrix := attributes + 0x400
	charBase := uint16(ted.regs.Register(CHARBASE)&0xfc) << 8
	background := ted.regs.Register(BGCOLOR0) & 0x7f

	for row := 0; row < 25; row++ {
		for col := 0; col < 40; col++ {
			idx := uint16(row*40 + col)

			code, err := ted.mem.ReadView(ted.vmem.View, matrix+idx)
			if err != nil {
				return err
			}
			attr, err := ted.mem.ReadView(ted.vmem.View, attributes+idx)
			if err != nil {
				return err
			}

			for line := 0; line < 8; line++ {
				bits, err := ted.charData(charBase + uint16(code)*8 + uint16(line))
				if err != nil {
					return err
				}
				for i := 0; i < 8; i++ {
					c := background
					if bits&(0x80>>i) != 0 {
						c = attr & 0x7f
					}
					ted.Screen.SetPixel(displayLeft+col*8+i, displayTop+row*8+line, c)
				}
			}
		}
	}

	return nil
}
