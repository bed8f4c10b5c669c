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

// Package modalflag wraps the flag package of the standard library. It adds
// program modes, each with its own set of flags, in the manner of the go
// command (go build, go test, etc.).
//
// The arguments are given with NewArgs() and parsed with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "console")
//	p, err := md.Parse()
//
// After Parse() the Mode() function returns the selected mode. The first
// sub-mode is the default and is selected when the next argument is not the
// name of a mode. Mode names are case insensitive and are always returned in
// upper case.
//
// Flags for the selected mode are added after calling NewMode() and the
// arguments are parsed again:
//
//	md.NewMode()
//	machine := md.AddString("machine", "c64", "machine to emulate")
//	roms := md.AddStringList("rom", "rom image (name=path). can be repeated")
//	p, err = md.Parse()
//
// Arguments that are not flags or modes are available through
// RemainingArgs().
package modalflag
