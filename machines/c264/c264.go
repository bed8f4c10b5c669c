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
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/chip/ted"
	"github.com/emu8/emu8/hardware/cpu/mos6502"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/keyboard"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// Sentinal error patterns.
const (
	UnknownROM = "c264: unknown rom (%s)"
	ROMError   = "c264: rom %s: %v"
)

// IDs of the chips.
const (
	IDBanking = iota + 1
	IDTED
)

// Model is a member of the 264 family.
type Model struct {
	Name string
	RAM  int
	CPU  string
}

// List of models.
var (
	C16   = Model{Name: "C16", RAM: 0x4000, CPU: mos6502.Model7501}
	Plus4 = Model{Name: "Plus/4", RAM: 0x10000, CPU: mos6502.Model8501}
)

// the names of the ROMs in each bank
var (
	lowROMs  = [NumROMBanks]string{"basic", "function lo", "cartridge1 lo", "cartridge2 lo"}
	highROMs = [NumROMBanks]string{"kernal", "function hi", "cartridge1 hi", "cartridge2 hi"}
)

// C264 is a machine of the Commodore 264 family.
type C264 struct {
	*hardware.Computer

	Model    Model
	CPU      *mos6502.CPU
	TED      *ted.TED
	Banking  *Banking
	Keyboard *keyboard.Matrix
	Loader   *iodevice.Loader

	roms    map[string]*memory.PhysicalStorage
	ram     *memory.PhysicalStorage
	cpuView memory.ViewID
	tedView memory.ViewID

	// the latch at $fd30 selects the keyboard lines to scan
	keyLatch *memory.BaseSubset

	// the kernal as seen at $c000. the TED fetches the character set from
	// it
	kernal memory.Subset

	layout Layout
}

// NewC264 is the preferred method of initialisation for the C264 type. The
// machine is built without ROMs. Use LoadROM() to supply them before
// calling Initialise().
func NewC264(env *environment.Environment, model Model, spec ted.Spec) (*C264, error) {
	m := &C264{
		Model:    model,
		Keyboard: keyboard.NewMatrix("c264 keyboard", 8, 8),
		Loader:   iodevice.NewLoader(true),
		roms:     make(map[string]*memory.PhysicalStorage),
	}

	mem := memory.NewMemory(env)

	var err error
	m.cpuView, err = mem.AddView("cpu", 0x10000)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}
	m.tedView, err = mem.AddView("ted", 0x10000)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.ram = mem.AddStorage("ram", memory.RAM, model.RAM)
	for i := 0; i < NumROMBanks; i++ {
		m.roms[lowROMs[i]] = mem.AddStorage(lowROMs[i], memory.ROM, 0x4000)
		m.roms[highROMs[i]] = mem.AddStorage(highROMs[i], memory.ROM, 0x4000)
	}

	if err := m.buildCPUView(mem); err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	stack, err := memory.NewStack("stack", m.ram, 0x0100, 0x100, 0x0100, true, true)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}
	if _, err := mem.AddSubset(stack); err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.CPU, err = mos6502.NewCPU(env, mem, stack, model.CPU)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.Computer = hardware.NewComputer(env, fmt.Sprintf("%s (%s)", model.Name, spec.ID), mem, m.CPU)

	if err := m.buildChips(mem, spec); err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.AddDevice(m.Loader)

	return m, nil
}

// add a subset to the CPU view. the subset is inactive unless active is true
func (m *C264) subset(mem *memory.Memory, view memory.ViewID, label string, storage *memory.PhysicalStorage, offset int, size int, origin uint16, extent int, active bool) (*memory.BaseSubset, memory.SubsetID, error) {
	sub, err := memory.NewBaseSubset(label, storage, offset, size, origin, extent)
	if err != nil {
		return nil, memory.NoSubset, err
	}
	id, err := mem.AddSubset(sub)
	if err != nil {
		return nil, memory.NoSubset, err
	}
	if err := mem.AddToView(view, id, active); err != nil {
		return nil, memory.NoSubset, err
	}
	return sub, id, nil
}

// a subset of RAM for the address range. RAM smaller than the range is
// mirrored
func (m *C264) ramSubset(mem *memory.Memory, origin uint16, extent int, active bool) (*memory.BaseSubset, memory.SubsetID, error) {
	size := min(extent, m.ram.Size())
	offset := int(origin) % m.ram.Size()
	return m.subset(mem, m.cpuView, fmt.Sprintf("ram $%04x", origin), m.ram, offset, size, origin, extent, active)
}

func (m *C264) buildCPUView(mem *memory.Memory) error {
	if _, _, err := m.ramSubset(mem, 0x0000, 0x8000, true); err != nil {
		return err
	}

	regions := []struct {
		region Region
		origin uint16
		extent int
		roms   [NumROMBanks]string

		// the offset into the ROM of the start of the region
		romOffset int
	}{
		{Region8000, 0x8000, 0x4000, lowROMs, 0x0000},
		{RegionC000, 0xc000, 0x3c00, highROMs, 0x0000},
		{RegionFC00, 0xfc00, 0x0100, [NumROMBanks]string{highROMs[0]}, 0x3c00},
		{RegionFF40, 0xff40, 0x00c0, highROMs, 0x3f40},
	}

	for _, r := range regions {
		ram, id, err := m.ramSubset(mem, r.origin, r.extent, false)
		if err != nil {
			return err
		}
		m.layout[r.region][RAM] = []memory.SubsetID{id}

		for b, name := range r.roms {
			if name == "" {
				continue
			}
			sub, id, err := m.subset(mem, m.cpuView, name, m.roms[name], r.romOffset, r.extent, r.origin, 0, false)
			if err != nil {
				return err
			}

			// writes to ROM land in the RAM underneath
			sub.SetWriteThrough(ram)

			m.layout[r.region][ROMBank(b)] = []memory.SubsetID{id}

			if r.region == RegionC000 && b == 0 {
				m.kernal = sub
			}
		}
	}

	// the keyboard latch
	latch := mem.AddStorage("keyboard latch", memory.RAM, 1)
	var err error
	m.keyLatch, _, err = m.subset(mem, m.cpuView, "keyboard latch", latch, 0, 1, 0xfd30, 0x10, true)
	if err != nil {
		return err
	}

	// the TED sees all of RAM
	_, _, err = m.subset(mem, m.tedView, "ram (ted)", m.ram, 0, m.ram.Size(), 0x0000, 0x10000, true)
	return err
}

func (m *C264) buildChips(mem *memory.Memory, spec ted.Spec) error {
	var err error

	m.Banking, err = NewBanking(mem, IDBanking, m.cpuView, m.layout)
	if err != nil {
		return err
	}

	m.TED, err = ted.NewTED(mem, IDTED, spec, 0xff00, ted.Memory{View: m.tedView, CharROM: m.kernal})
	if err != nil {
		return err
	}

	for _, id := range []memory.SubsetID{m.Banking.Registers(), m.Banking.Switch(), m.TED.Registers()} {
		if err := mem.AddToView(m.cpuView, id, true); err != nil {
			return err
		}
	}

	m.TED.KeyboardPort = func(_ uint8) uint8 {
		return m.Keyboard.Scan(m.keyLatch.PeekValue(0))
	}

	m.TED.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventIRQ {
			m.CPU.IRQ.Set(0, ev.Data.(bool))
		}
	}))

	for _, c := range []chip.Simulatable{m.Banking, m.TED} {
		if err := m.AddChip(c); err != nil {
			return err
		}
	}

	return nil
}

// LoadROM copies the image into the named ROM. The low ROMs are basic,
// function lo, cartridge1 lo and cartridge2 lo. The high ROMs are kernal,
// function hi, cartridge1 hi and cartridge2 hi. All ROMs are 16K.
func (m *C264) LoadROM(name string, image []uint8) error {
	storage, ok := m.roms[name]
	if !ok {
		return curated.Errorf(UnknownROM, name)
	}
	if err := storage.LoadImage(image); err != nil {
		return curated.Errorf(ROMError, name, err)
	}
	return nil
}

// TEDView returns the view of memory seen by the TED.
func (m *C264) TEDView() memory.ViewID {
	return m.tedView
}
