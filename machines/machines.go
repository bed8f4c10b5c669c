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

// Package machines creates the emulated machines by name and presents them
// to the rest of the program through a common type.
package machines

import (
	"sort"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/chip/ted"
	"github.com/emu8/emu8/hardware/chip/vicii"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/keyboard"
	"github.com/emu8/emu8/machines/c264"
	"github.com/emu8/emu8/machines/c64"
	"github.com/emu8/emu8/machines/zxspectrum"
)

// UnknownMachine is returned by Create() when the name is not recognised.
const UnknownMachine = "machines: unknown machine (%s)"

// ROM describes a ROM expected by a machine.
type ROM struct {
	Name string
	Size int
}

// ROMLoader is implemented by every machine.
type ROMLoader interface {
	LoadROM(name string, image []uint8) error
}

// Machine is an emulated machine and the parts of it that are interesting to
// the host.
type Machine struct {
	*hardware.Computer
	ROMLoader

	Name string

	// the ROMs the machine expects
	ROMs []ROM

	Loader   *iodevice.Loader
	Keyboard *keyboard.Matrix
	Screen   *chip.ScreenMemory
	Sounds   []*chip.SoundMemory
}

type creator func(env *environment.Environment) (*Machine, error)

func newC64(spec vicii.Spec) creator {
	return func(env *environment.Environment) (*Machine, error) {
		m, err := c64.NewC64(env, spec)
		if err != nil {
			return nil, err
		}
		return &Machine{
			Computer:  m.Computer,
			ROMLoader: m,
			ROMs: []ROM{
				{Name: "basic", Size: 0x2000},
				{Name: "kernal", Size: 0x2000},
				{Name: "char", Size: 0x1000},
			},
			Loader:   m.Loader,
			Keyboard: m.Keyboard,
			Screen:   m.VIC.Screen,
			Sounds:   []*chip.SoundMemory{m.SID.Sound},
		}, nil
	}
}

func newC264(model c264.Model, spec ted.Spec) creator {
	return func(env *environment.Environment) (*Machine, error) {
		m, err := c264.NewC264(env, model, spec)
		if err != nil {
			return nil, err
		}

		roms := []ROM{
			{Name: "basic", Size: 0x4000},
			{Name: "kernal", Size: 0x4000},
		}
		if model.Name == c264.Plus4.Name {
			roms = append(roms,
				ROM{Name: "function lo", Size: 0x4000},
				ROM{Name: "function hi", Size: 0x4000},
			)
		}

		return &Machine{
			Computer:  m.Computer,
			ROMLoader: m,
			ROMs:      roms,
			Loader:    m.Loader,
			Keyboard:  m.Keyboard,
			Screen:    m.TED.Screen,
			Sounds:    []*chip.SoundMemory{m.TED.Sound},
		}, nil
	}
}

func newSpectrum(model zxspectrum.Model) creator {
	return func(env *environment.Environment) (*Machine, error) {
		m, err := zxspectrum.NewSpectrum(env, model)
		if err != nil {
			return nil, err
		}

		var roms []ROM
		for _, name := range model.ROMs {
			roms = append(roms, ROM{Name: name, Size: 0x4000})
		}

		return &Machine{
			Computer:  m.Computer,
			ROMLoader: m,
			ROMs:      roms,
			Loader:    m.Loader,
			Keyboard:  m.Keyboard,
			Screen:    m.ULA.Screen,
			Sounds:    m.Sounds(),
		}, nil
	}
}

var creators = map[string]creator{
	"c64":         newC64(vicii.PAL),
	"c64ntsc":     newC64(vicii.NTSC),
	"c16":         newC264(c264.C16, ted.PAL),
	"plus4":       newC264(c264.Plus4, ted.PAL),
	"plus4ntsc":   newC264(c264.Plus4, ted.NTSC),
	"spectrum48":  newSpectrum(zxspectrum.Spectrum48),
	"spectrum128": newSpectrum(zxspectrum.Spectrum128),
}

// Names returns the names of every machine in alphabetical order.
func Names() []string {
	n := make([]string, 0, len(creators))
	for k := range creators {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Create the named machine. The name is not case sensitive. The machine has
// not been initialised.
func Create(env *environment.Environment, name string) (*Machine, error) {
	name = strings.ToLower(name)
	c, ok := creators[name]
	if !ok {
		return nil, curated.Errorf(UnknownMachine, name)
	}

	m, err := c(env)
	if err != nil {
		return nil, err
	}
	m.Name = name

	return m, nil
}
