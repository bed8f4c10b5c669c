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

package preferences

import (
	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/prefs"
)

// Preferences for the emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// initialise hardware to an unknown state after reset. affects the
	// contents of RAM and the initial value of the CPU registers
	RandomState prefs.Bool

	// reading from memory that is not connected to anything returns a
	// random value rather than DefaultValue. the equivalent of a floating
	// data bus
	RandomPins prefs.Bool

	// enable the machine traps that replace slow ROM routines (eg. loading
	// from tape) with a native implementation
	FastLoad prefs.Bool

	// the value returned when reading from memory that is not connected and
	// RandomPins is false
	DefaultValue prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The path can be empty, in which case the preferences are
// not loaded from or saved to disk. The command line stack can be nil.
func NewPreferences(path string, commandLine *prefs.CommandLineStack) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(path, commandLine)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.randstate", &p.RandomState)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.randpins", &p.RandomPins)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.fastload", &p.FastLoad)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.defaultvalue", &p.DefaultValue)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.RandomState.Set(false)
	p.RandomPins.Set(false)
	p.FastLoad.Set(true)
	p.DefaultValue.Set(0)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
