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

package zxspectrum

import (
	"fmt"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// PagingError is returned when a memory configuration cannot be applied.
const PagingError = "zxspectrum: paging: %v"

// Bits of the paging register.
const (
	pageMask   = 0x07
	screenBit  = 0x08
	romBit     = 0x10
	pagingLock = 0x20
)

// NumPages is the number of 16K pages of RAM in the 128K.
const NumPages = 8

// the RAM pages the ULA can display
const (
	normalScreen = 5
	shadowScreen = 7
)

// Configuration is the memory arrangement selected by a value of the paging
// register.
type Configuration struct {
	// the ROM at $0000. ROM 0 is the 128 editor and ROM 1 is the 48 BASIC
	ROM int

	// the RAM page at $c000
	Top int

	// the RAM page displayed by the ULA
	Screen int
}

func (c Configuration) String() string {
	return fmt.Sprintf("rom=%d top=%d screen=%d", c.ROM, c.Top, c.Screen)
}

// Configure returns the memory configuration for the value of the paging
// register.
func Configure(v uint8) Configuration {
	cfg := Configuration{
		Top:    int(v & pageMask),
		Screen: normalScreen,
	}
	if v&romBit == romBit {
		cfg.ROM = 1
	}
	if v&screenBit == screenBit {
		cfg.Screen = shadowScreen
	}
	return cfg
}

// PagingLayout is the list of subsets switched by the paging register.
type PagingLayout struct {
	CPUView memory.ViewID
	ULAView memory.ViewID

	// the two ROMs at $0000 and the eight RAM pages at $c000 in the CPU
	// view
	ROM [2]memory.SubsetID
	Top [NumPages]memory.SubsetID

	// pages 5 and 7 in the ULA view
	Normal memory.SubsetID
	Shadow memory.SubsetID
}

// Paging is the memory paging register of the 128K, at port $7FFD. The
// register is write only. Setting bit 5 locks the register until the next
// reset. The new configuration is applied the next time the chip is
// simulated.
type Paging struct {
	id     int
	mem    *memory.Memory
	layout PagingLayout

	notifier notifications.Notifier

	value   uint8
	locked  bool
	config  Configuration
	changed chip.Latch
}

// NewPaging is the preferred method of initialisation for the Paging type.
func NewPaging(mem *memory.Memory, id int, layout PagingLayout) *Paging {
	return &Paging{
		id:     id,
		mem:    mem,
		layout: layout,
	}
}

func (pg *Paging) String() string {
	return fmt.Sprintf("paging: %02x locked=%v: %s", pg.value, pg.locked, pg.config)
}

// ID implements the chip.Simulatable interface.
func (pg *Paging) ID() int {
	return pg.id
}

// Label implements the chip.Simulatable interface.
func (pg *Paging) Label() string {
	return "paging"
}

// Notifier implements the chip.EventSource interface.
func (pg *Paging) Notifier() *notifications.Notifier {
	return &pg.notifier
}

// Value returns the last value written to the register.
func (pg *Paging) Value() uint8 {
	return pg.value
}

// Locked returns true if the register has been locked.
func (pg *Paging) Locked() bool {
	return pg.locked
}

// Configuration returns the memory configuration currently applied.
func (pg *Paging) Configuration() Configuration {
	return pg.config
}

// Port returns the paging register's device on the I/O bus. Only address
// lines 15 and 1 are decoded.
func (pg *Paging) Port() Port {
	return Port{
		Label: "paging",
		Mask:  0x8002,
		Match: 0x0000,
		Out:   pg.write,
	}
}

func (pg *Paging) write(_ uint16, data uint8) {
	if pg.locked {
		return
	}
	pg.value = data
	pg.locked = data&pagingLock == pagingLock
	pg.changed.Mark()
}

// Initialise implements the chip.Simulatable interface.
func (pg *Paging) Initialise() error {
	pg.value = 0
	pg.locked = false
	pg.changed.Clear()
	return pg.apply()
}

// Simulate implements the chip.Simulatable interface.
func (pg *Paging) Simulate(_ chip.Clock) error {
	if !pg.changed.Consume() {
		return nil
	}
	if Configure(pg.value) == pg.config {
		return nil
	}
	return pg.apply()
}

// split the subsets into those that are selected and those that are not
func selectSubset(ids []memory.SubsetID, selected int, activate []memory.SubsetID, deactivate []memory.SubsetID) ([]memory.SubsetID, []memory.SubsetID) {
	for i, id := range ids {
		if i == selected {
			activate = append(activate, id)
		} else {
			deactivate = append(deactivate, id)
		}
	}
	return activate, deactivate
}

func (pg *Paging) apply() error {
	cfg := Configure(pg.value)

	var activate, deactivate []memory.SubsetID
	activate, deactivate = selectSubset(pg.layout.ROM[:], cfg.ROM, activate, deactivate)
	activate, deactivate = selectSubset(pg.layout.Top[:], cfg.Top, activate, deactivate)
	if err := pg.mem.ConfigureMemoryStructure(pg.layout.CPUView, activate, deactivate); err != nil {
		return curated.Errorf(PagingError, err)
	}

	screen := 0
	if cfg.Screen == shadowScreen {
		screen = 1
	}
	activate, deactivate = selectSubset([]memory.SubsetID{pg.layout.Normal, pg.layout.Shadow}, screen, nil, nil)
	if err := pg.mem.ConfigureMemoryStructure(pg.layout.ULAView, activate, deactivate); err != nil {
		return curated.Errorf(PagingError, err)
	}

	pg.config = cfg

	pg.notifier.Notify(notifications.Event{
		Source: notifications.SourceBankSwitch,
		ID:     notifications.EventMemoryConfigured,
		Data:   cfg,
	})

	return nil
}
