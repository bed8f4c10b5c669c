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

package zxspectrum_test

import (
	"testing"

	"github.com/emu8/emu8/machines/zxspectrum"
	"github.com/emu8/emu8/test"
)

func TestConfigure(t *testing.T) {
	for v := 0; v < 256; v++ {
		cfg := zxspectrum.Configure(uint8(v))
		test.ExpectEquality(t, cfg, zxspectrum.Configure(uint8(v)), v)
		test.ExpectEquality(t, cfg.Top, v&0x07, v)
		test.ExpectEquality(t, cfg.ROM, (v>>4)&0x01, v)
		if v&0x08 == 0x08 {
			test.ExpectEquality(t, cfg.Screen, 7, v)
		} else {
			test.ExpectEquality(t, cfg.Screen, 5, v)
		}
	}
}
