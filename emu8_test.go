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

package main

import (
	"strings"
	"testing"

	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/machines"
	"github.com/emu8/emu8/test"
)

func TestParseROM(t *testing.T) {
	name, path, err := parseROM("Kernal=roms/kernal.bin")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, name, "kernal")
	test.ExpectEquality(t, path, "roms/kernal.bin")

	_, _, err = parseROM("kernal")
	test.ExpectFailure(t, err)
	_, _, err = parseROM("=roms/kernal.bin")
	test.ExpectFailure(t, err)
}

func TestParseLoad(t *testing.T) {
	path, address, err := parseLoad("game.prg")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, path, "game.prg")
	test.ExpectEquality(t, address, -1)

	path, address, err = parseLoad("data.bin@c000")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, path, "data.bin")
	test.ExpectEquality(t, address, 0xc000)

	_, address, err = parseLoad("data.bin@$0801")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, address, 0x0801)

	_, _, err = parseLoad("data.bin@10000")
	test.ExpectFailure(t, err)
}

func TestConsole(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	// the ROM is empty so the CPU executes NOP instructions
	m, err := machines.Create(env, "spectrum48")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.Initialise())

	input := strings.NewReader("step 3\n\ncpu\nrun 0\nbogus\nquit\ncpu\n")
	output := &test.CompareWriter{}

	err = consoleLoop(m, input, output, false)
	test.ExpectSuccess(t, err)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	test.DemandEquality(t, len(lines), 8)
	test.ExpectEquality(t, lines[0], "> step 3")
	test.ExpectEquality(t, lines[1], "> cpu")
	test.ExpectSuccess(t, strings.HasPrefix(lines[2], "RESPONSE MODEL=Z80 PC=0003 "))
	test.ExpectEquality(t, lines[3], "> run 0")
	test.ExpectSuccess(t, strings.HasPrefix(lines[4], "ERROR MSG="))
	test.ExpectEquality(t, lines[5], "> bogus")
	test.ExpectSuccess(t, strings.HasPrefix(lines[6], "ERROR MSG="))
	test.ExpectEquality(t, lines[7], "> quit")
}
