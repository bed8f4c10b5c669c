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

package machines_test

import (
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/machines"
	"github.com/emu8/emu8/test"
)

func TestCreate(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	_, err = machines.Create(env, "vic20")
	test.ExpectFailure(t, err)

	names := machines.Names()
	test.ExpectEquality(t, len(names), 7)
	test.ExpectEquality(t, names[0], "c16")

	for _, name := range names {
		m, err := machines.Create(env, name)
		test.DemandSuccess(t, err, name)
		test.ExpectEquality(t, m.Name, name)
		test.ExpectSuccess(t, len(m.ROMs) > 0, name)
		test.ExpectSuccess(t, m.Screen != nil, name)
		test.ExpectSuccess(t, len(m.Sounds) > 0, name)

		for _, r := range m.ROMs {
			test.ExpectSuccess(t, m.LoadROM(r.Name, make([]uint8, r.Size)), name, r.Name)
			test.ExpectFailure(t, m.LoadROM(r.Name, make([]uint8, r.Size+1)), name, r.Name)
		}
		test.ExpectFailure(t, m.LoadROM("unknown", nil), name)

		test.ExpectSuccess(t, m.Initialise(), name)
	}

	m, err := machines.Create(env, "Spectrum128")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Name, "spectrum128")
	test.ExpectEquality(t, len(m.Sounds), 2)
}
