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

package c264

import (
	"fmt"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// ConfigurationError is returned when the memory configuration cannot be
// applied to the memory.
const ConfigurationError = "banking: %v"

// Region is an area of the address space that can be switched.
type Region int

// List of regions.
const (
	Region8000 Region = iota // $8000-$bfff
	RegionC000               // $c000-$fbff
	RegionFC00               // $fc00-$fcff
	RegionFF40               // $ff40-$ffff
	NumRegions
)

// Bank is the memory seen by the CPU in a Region. Values other than RAM are
// ROM banks.
type Bank int

// RAM is the only Bank that isn't ROM.
const RAM Bank = 0

// NumROMBanks is the number of banks of ROM for each half of the ROM area.
const NumROMBanks = 4

// NumBanks is the number of banks including RAM.
const NumBanks = NumROMBanks + 1

// ROMBank returns the Bank value for the numbered ROM bank.
func ROMBank(n int) Bank {
	return Bank(1 + n%NumROMBanks)
}

func (b Bank) String() string {
	if b == RAM {
		return "ram"
	}
	return fmt.Sprintf("rom%d", b-1)
}

// Lines is the state of the banking registers.
type Lines struct {
	// ROM is selected by writing to $FF3E and deselected by writing to
	// $FF3F
	ROM bool

	// the ROM banks for $8000 and $c000
	Low  int
	High int
}

func (l Lines) String() string {
	return fmt.Sprintf("rom=%v low=%d high=%d", l.ROM, l.Low, l.High)
}

// Configuration is the Bank selected for every Region.
type Configuration [NumRegions]Bank

// Configure returns the memory configuration for the lines.
func Configure(l Lines) Configuration {
	if !l.ROM {
		return Configuration{RAM, RAM, RAM, RAM}
	}
	return Configuration{
		ROMBank(l.Low),
		ROMBank(l.High),
		ROMBank(0),
		ROMBank(l.High),
	}
}

// Layout is the list of subsets that make up each Bank in each Region.
type Layout [NumRegions][NumBanks][]memory.SubsetID

// Banking is the part of the TED and the PLA that switches the memory of the
// CPU view. It owns two sets of registers: the ROM selector at $FDD0 and the
// ROM/RAM switch at $FF3E. Changes are applied the next time the chip is
// simulated.
type Banking struct {
	id     int
	mem    *memory.Memory
	view   memory.ViewID
	layout Layout

	selector   *memory.ChipRegisters
	selectorID memory.SubsetID
	switcher   *memory.ChipRegisters
	switcherID memory.SubsetID

	notifier notifications.Notifier

	lines   Lines
	config  Configuration
	changed chip.Latch
}

// NewBanking is the preferred method of initialisation for the Banking type.
// The caller adds the registers returned by Registers() and Switch() to the
// CPU view.
func NewBanking(mem *memory.Memory, id int, view memory.ViewID, layout Layout) (*Banking, error) {
	bnk := &Banking{
		id:     id,
		mem:    mem,
		view:   view,
		layout: layout,
	}

	storage := mem.AddStorage("rom selector", memory.RAM, 0x10)

	var err error
	bnk.selector, err = memory.NewChipRegisters("rom selector", storage, 0, 0x10, 0xfdd0, 0)
	if err != nil {
		return nil, err
	}
	bnk.selector.OnWrite = func(pos int, _ uint8) {
		bnk.lines.Low = pos & 0x03
		bnk.lines.High = (pos >> 2) & 0x03
		bnk.changed.Mark()
	}
	bnk.selectorID, err = mem.AddSubset(bnk.selector)
	if err != nil {
		return nil, err
	}

	storage = mem.AddStorage("rom switch", memory.RAM, 2)
	bnk.switcher, err = memory.NewChipRegisters("rom switch", storage, 0, 2, 0xff3e, 0)
	if err != nil {
		return nil, err
	}
	bnk.switcher.OnWrite = func(pos int, _ uint8) {
		bnk.lines.ROM = pos == 0
		bnk.changed.Mark()
	}
	bnk.switcherID, err = mem.AddSubset(bnk.switcher)
	if err != nil {
		return nil, err
	}

	return bnk, nil
}

func (bnk *Banking) String() string {
	return fmt.Sprintf("banking: %s", bnk.lines)
}

// ID implements the chip.Simulatable interface.
func (bnk *Banking) ID() int {
	return bnk.id
}

// Label implements the chip.Simulatable interface.
func (bnk *Banking) Label() string {
	return "banking"
}

// Registers implements the chip.MemoryMapped interface. It returns the ROM
// selector registers.
func (bnk *Banking) Registers() memory.SubsetID {
	return bnk.selectorID
}

// Switch returns the ROM/RAM switch registers.
func (bnk *Banking) Switch() memory.SubsetID {
	return bnk.switcherID
}

// Notifier implements the chip.EventSource interface.
func (bnk *Banking) Notifier() *notifications.Notifier {
	return &bnk.notifier
}

// Lines returns the state of the banking registers.
func (bnk *Banking) Lines() Lines {
	return bnk.lines
}

// Configuration returns the memory configuration currently applied.
func (bnk *Banking) Configuration() Configuration {
	return bnk.config
}

// Initialise implements the chip.Simulatable interface. ROM bank zero is
// selected after a reset.
func (bnk *Banking) Initialise() error {
	bnk.lines = Lines{ROM: true}
	bnk.changed.Clear()
	return bnk.apply()
}

// Simulate implements the chip.Simulatable interface.
func (bnk *Banking) Simulate(_ chip.Clock) error {
	if !bnk.changed.Consume() {
		return nil
	}
	if Configure(bnk.lines) == bnk.config {
		return nil
	}
	return bnk.apply()
}

func (bnk *Banking) apply() error {
	cfg := Configure(bnk.lines)

	var activate, deactivate []memory.SubsetID
	for r := range bnk.layout {
		for b, ids := range bnk.layout[r] {
			if Bank(b) == cfg[r] {
				activate = append(activate, ids...)
			} else {
				deactivate = append(deactivate, ids...)
			}
		}
	}

	if err := bnk.mem.ConfigureMemoryStructure(bnk.view, activate, deactivate); err != nil {
		return curated.Errorf(ConfigurationError, err)
	}
	bnk.config = cfg

	bnk.notifier.Notify(notifications.Event{
		Source: notifications.SourceBankSwitch,
		ID:     notifications.EventMemoryConfigured,
		Data:   cfg,
	})

	return nil
}
