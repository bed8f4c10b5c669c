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

package c64

import (
	"fmt"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// ConfigurationError is returned when the memory configuration selected by
// the PLA cannot be applied to the memory.
const ConfigurationError = "pla: %v"

// Region is an area of the address space switched by the PLA.
type Region int

// List of regions.
const (
	Region1000 Region = iota // $1000-$7fff
	Region8000               // $8000-$9fff
	RegionA000               // $a000-$bfff
	RegionC000               // $c000-$cfff
	RegionD000               // $d000-$dfff
	RegionE000               // $e000-$ffff
	NumRegions
)

func (r Region) String() string {
	switch r {
	case Region1000:
		return "$1000"
	case Region8000:
		return "$8000"
	case RegionA000:
		return "$a000"
	case RegionC000:
		return "$c000"
	case RegionD000:
		return "$d000"
	case RegionE000:
		return "$e000"
	}
	return "unknown region"
}

// Bank is the memory seen by the CPU in a Region.
type Bank int

// List of banks.
const (
	Unmapped Bank = iota
	RAM
	BASIC
	KERNAL
	CHAR
	IO
	ROML
	ROMH
	NumBanks
)

func (b Bank) String() string {
	switch b {
	case Unmapped:
		return "-"
	case RAM:
		return "ram"
	case BASIC:
		return "basic"
	case KERNAL:
		return "kernal"
	case CHAR:
		return "char"
	case IO:
		return "io"
	case ROML:
		return "roml"
	case ROMH:
		return "romh"
	}
	return "unknown bank"
}

// Lines are the inputs of the PLA that select the memory configuration. The
// first three are the low bits of the 6510 I/O port. GAME and EXROM are
// driven by the cartridge port. All lines are high when nothing is driving
// them.
type Lines struct {
	LORAM  bool
	HIRAM  bool
	CHAREN bool
	GAME   bool
	EXROM  bool
}

func (l Lines) String() string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("loram=%d hiram=%d charen=%d game=%d exrom=%d",
		b(l.LORAM), b(l.HIRAM), b(l.CHAREN), b(l.GAME), b(l.EXROM))
}

// Configuration is the Bank selected for every Region.
type Configuration [NumRegions]Bank

func (c Configuration) String() string {
	s := strings.Builder{}
	for r, b := range c {
		if r > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%s=%s", Region(r), b))
	}
	return s.String()
}

// Configure returns the memory configuration for the input lines.
func Configure(l Lines) Configuration {
	var cfg Configuration

	// ultimax mode. most of the address space is open and the cartridge
	// replaces the kernal
	if !l.GAME && l.EXROM {
		cfg[Region1000] = Unmapped
		cfg[Region8000] = ROML
		cfg[RegionA000] = Unmapped
		cfg[RegionC000] = Unmapped
		cfg[RegionD000] = IO
		cfg[RegionE000] = ROMH
		return cfg
	}

	for r := range cfg {
		cfg[r] = RAM
	}

	if !l.EXROM && l.LORAM && l.HIRAM {
		cfg[Region8000] = ROML
	}

	if !l.GAME && l.HIRAM {
		cfg[RegionA000] = ROMH
	} else if l.LORAM && l.HIRAM {
		cfg[RegionA000] = BASIC
	}

	// with a 16K cartridge the character ROM also needs HIRAM. I/O does not
	if l.LORAM || l.HIRAM {
		if l.CHAREN {
			cfg[RegionD000] = IO
		} else if l.GAME || l.HIRAM {
			cfg[RegionD000] = CHAR
		}
	}

	if l.HIRAM {
		cfg[RegionE000] = KERNAL
	}

	return cfg
}

// Layout is the list of subsets that make up each Bank in each Region. A
// subset must appear only once in the Layout. Unmapped banks have no
// subsets.
type Layout [NumRegions][NumBanks][]memory.SubsetID

// CartridgeLines is the Data field of an EventCartridgeChanged event.
type CartridgeLines struct {
	GAME  bool
	EXROM bool
}

// PLA is the 906114 programmable logic array. It listens to the events of
// the 6510 I/O port and the cartridge port, and rearranges the memory of the
// CPU view the next time it is simulated.
type PLA struct {
	id     int
	mem    *memory.Memory
	view   memory.ViewID
	layout Layout

	notifier notifications.Notifier

	lines   Lines
	config  Configuration
	changed chip.Latch
}

// NewPLA is the preferred method of initialisation for the PLA type.
func NewPLA(mem *memory.Memory, id int, view memory.ViewID, layout Layout) *PLA {
	return &PLA{
		id:     id,
		mem:    mem,
		view:   view,
		layout: layout,
		lines: Lines{
			LORAM: true, HIRAM: true, CHAREN: true,
			GAME: true, EXROM: true,
		},
	}
}

func (pla *PLA) String() string {
	return fmt.Sprintf("PLA: %s: %s", pla.lines, pla.config)
}

// ID implements the chip.Simulatable interface.
func (pla *PLA) ID() int {
	return pla.id
}

// Label implements the chip.Simulatable interface.
func (pla *PLA) Label() string {
	return "PLA"
}

// Notifier implements the chip.EventSource interface.
func (pla *PLA) Notifier() *notifications.Notifier {
	return &pla.notifier
}

// Lines returns the current state of the input lines.
func (pla *PLA) Lines() Lines {
	return pla.lines
}

// Configuration returns the memory configuration currently applied.
func (pla *PLA) Configuration() Configuration {
	return pla.config
}

// Initialise implements the chip.Simulatable interface. The lines from the
// I/O port are all high after a reset. The cartridge lines are unchanged.
func (pla *PLA) Initialise() error {
	pla.lines.LORAM = true
	pla.lines.HIRAM = true
	pla.lines.CHAREN = true
	pla.changed.Clear()
	return pla.apply()
}

// ProcessEvent implements the notifications.Observer interface.
func (pla *PLA) ProcessEvent(ev notifications.Event) {
	switch ev.Source {
	case notifications.SourceIOPort:
		if v, ok := ev.Data.(uint8); ok && ev.ID == notifications.EventPortChanged {
			pla.lines.LORAM = v&LORAM == LORAM
			pla.lines.HIRAM = v&HIRAM == HIRAM
			pla.lines.CHAREN = v&CHAREN == CHAREN
			pla.changed.Mark()
		}
	case notifications.SourceCartridge:
		if l, ok := ev.Data.(CartridgeLines); ok && ev.ID == notifications.EventCartridgeChanged {
			pla.lines.GAME = l.GAME
			pla.lines.EXROM = l.EXROM
			pla.changed.Mark()
		}
	}
}

// Simulate implements the chip.Simulatable interface.
func (pla *PLA) Simulate(_ chip.Clock) error {
	if !pla.changed.Consume() {
		return nil
	}
	cfg := Configure(pla.lines)
	if cfg == pla.config {
		return nil
	}
	return pla.apply()
}

func (pla *PLA) apply() error {
	cfg := Configure(pla.lines)

	var activate, deactivate []memory.SubsetID
	for r := range pla.layout {
		for b, ids := range pla.layout[r] {
			if Bank(b) == cfg[r] {
				activate = append(activate, ids...)
			} else {
				deactivate = append(deactivate, ids...)
			}
		}
	}

	if err := pla.mem.ConfigureMemoryStructure(pla.view, activate, deactivate); err != nil {
		return curated.Errorf(ConfigurationError, err)
	}
	pla.config = cfg

	pla.notifier.Notify(notifications.Event{
		Source: notifications.SourcePLA,
		ID:     notifications.EventMemoryConfigured,
		Data:   cfg,
	})

	return nil
}
