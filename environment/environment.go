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

package environment

import (
	"github.com/emu8/emu8/hardware/preferences"
	"github.com/emu8/emu8/logger"
	"github.com/emu8/emu8/random"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation in the system.
const MainEmulation Label = ""

// the maximum number of entries kept by the log of a new environment
const maxLogEntries = 256

// Environment is used to provide context for an emulation. Particularly useful
// when using multiple emulations.
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retreived through
	// this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences

	// the log for this emulation
	Log *logger.Logger

	// logging can be suppressed for an emulation. useful for emulations
	// running in the background
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The prefs argument can be nil, in which case a new Preferences instance
// will be created that is not backed by a file. Providing a non-nil value
// allows the preferences of more than one emulation to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Random: random.NewRandom(nil),
		Log:    logger.NewLogger(maxLogEntries),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences("", nil)
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// regression testing where the initial state must be the same for every run of
// the test.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env != nil && !env.Quiet
}

// Logf is a convenience function that adds an entry to the environment's log.
func (env *Environment) Logf(tag string, detail string, args ...any) {
	env.Log.Logf(env, tag, detail, args...)
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}
