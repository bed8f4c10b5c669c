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

package c264_test

import (
	"testing"

	"github.com/emu8/emu8/machines/c264"
	"github.com/emu8/emu8/test"
)

func TestConfigureDeterminism(t *testing.T) {
	for _, rom := range []bool{false, true} {
		for low := 0; low < c264.NumROMBanks; low++ {
			for high := 0; high < c264.NumROMBanks; high++ {
				l := c264.Lines{ROM: rom, Low: low, High: high}
				a := c264.Configure(l)
				test.ExpectEquality(t, a, c264.Configure(l), l)

				if !rom {
					test.ExpectEquality(t, a, c264.Configuration{c264.RAM, c264.RAM, c264.RAM, c264.RAM}, l)
					continue
				}

				test.ExpectEquality(t, a[c264.Region8000], c264.ROMBank(low), l)
				test.ExpectEquality(t, a[c264.RegionC000], c264.ROMBank(high), l)
				test.ExpectEquality(t, a[c264.RegionFF40], c264.ROMBank(high), l)

				// page $fc is always the kernal
				test.ExpectEquality(t, a[c264.RegionFC00], c264.ROMBank(0), l)
			}
		}
	}
}

func TestBankNames(t *testing.T) {
	test.ExpectEquality(t, c264.RAM.String(), "ram")
	test.ExpectEquality(t, c264.ROMBank(2).String(), "rom2")
	test.ExpectEquality(t, c264.ROMBank(4), c264.ROMBank(0))
}
