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

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/chip/cia"
	"github.com/emu8/emu8/hardware/chip/sid"
	"github.com/emu8/emu8/hardware/chip/vicii"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/hardware/cpu/mos6502"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/keyboard"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// Sentinal error patterns.
const (
	UnknownROM = "c64: unknown rom (%s)"
	ROMError   = "c64: rom %s: %v"
)

// IDs of the chips. Chips are simulated in this order.
const (
	IDIOPort = iota + 1
	IDCIA1
	IDCIA2
	IDPLA
	IDVICII
	IDSID
)

// sources of the IRQ line
const (
	irqCIA1 = iota
	irqVICII
)

// SampleRate of the SID output.
const SampleRate = 44100

// C64 is the Commodore 64.
type C64 struct {
	*hardware.Computer

	CPU      *mos6502.CPU
	IOPort   *IOPort
	PLA      *PLA
	CIA1     *cia.CIA
	CIA2     *cia.CIA
	VIC      *vicii.VICII
	SID      *sid.SID
	Keyboard *keyboard.Matrix
	Loader   *iodevice.Loader

	// events from the cartridge port
	cartridge notifications.Notifier

	roms    map[string]*memory.PhysicalStorage
	ram     *memory.PhysicalStorage
	cpuView memory.ViewID
	vicView memory.ViewID

	layout Layout
}

// NewC64 is the preferred method of initialisation for the C64 type. The
// machine is built without ROMs. Use LoadROM() to supply them before
// calling Initialise().
func NewC64(env *environment.Environment, spec vicii.Spec) (*C64, error) {
	m := &C64{
		Keyboard: keyboard.NewMatrix("c64 keyboard", 8, 8),
		Loader:   iodevice.NewLoader(false),
		roms:     make(map[string]*memory.PhysicalStorage),
	}

	clock := clocks.C64_PAL
	if spec.ID == vicii.NTSC.ID {
		clock = clocks.C64_NTSC
	}

	mem := memory.NewMemory(env)

	var err error
	m.cpuView, err = mem.AddView("cpu", 0x10000)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}
	m.vicView, err = mem.AddView("vic-ii", 0x4000)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.ram = mem.AddStorage("ram", memory.RAM, 0x10000)
	m.roms["basic"] = mem.AddStorage("basic", memory.ROM, 0x2000)
	m.roms["kernal"] = mem.AddStorage("kernal", memory.ROM, 0x2000)
	m.roms["char"] = mem.AddStorage("char", memory.ROM, 0x1000)
	m.roms["roml"] = mem.AddStorage("roml", memory.ROM, 0x2000)
	m.roms["romh"] = mem.AddStorage("romh", memory.ROM, 0x2000)

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

	m.CPU, err = mos6502.NewCPU(env, mem, stack, mos6502.Model6510)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.Computer = hardware.NewComputer(env, fmt.Sprintf("C64 (%s)", spec.ID), mem, m.CPU)

	if err := m.buildChips(env, mem, spec, clock); err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.connect()
	m.addLoadTrap(env)

	m.AddDevice(m.Loader)

	return m, nil
}

// add a subset over the storage to the view. the subset is inactive
func (m *C64) subset(mem *memory.Memory, view memory.ViewID, label string, storage *memory.PhysicalStorage, offset int, size int, origin uint16) (*memory.BaseSubset, memory.SubsetID, error) {
	sub, err := memory.NewBaseSubset(label, storage, offset, size, origin, 0)
	if err != nil {
		return nil, memory.NoSubset, err
	}
	id, err := mem.AddSubset(sub)
	if err != nil {
		return nil, memory.NoSubset, err
	}
	if err := mem.AddToView(view, id, false); err != nil {
		return nil, memory.NoSubset, err
	}
	return sub, id, nil
}

// the RAM subsets of each region and the ROMs that can replace them. the I/O
// area is added to the layout when the chips are created
func (m *C64) buildCPUView(mem *memory.Memory) error {
	regions := []struct {
		region Region
		origin uint16
		size   int
	}{
		{Region1000, 0x1000, 0x7000},
		{Region8000, 0x8000, 0x2000},
		{RegionA000, 0xa000, 0x2000},
		{RegionC000, 0xc000, 0x1000},
		{RegionD000, 0xd000, 0x1000},
		{RegionE000, 0xe000, 0x2000},
	}

	ram := make(map[Region]*memory.BaseSubset)
	for _, r := range regions {
		sub, id, err := m.subset(mem, m.cpuView, fmt.Sprintf("ram %s", r.region), m.ram, int(r.origin), r.size, r.origin)
		if err != nil {
			return err
		}
		ram[r.region] = sub
		m.layout[r.region][RAM] = []memory.SubsetID{id}
	}

	roms := []struct {
		label  string
		region Region
		bank   Bank
		origin uint16
	}{
		{"roml", Region8000, ROML, 0x8000},
		{"basic", RegionA000, BASIC, 0xa000},
		{"romh", RegionA000, ROMH, 0xa000},
		{"char", RegionD000, CHAR, 0xd000},
		{"kernal", RegionE000, KERNAL, 0xe000},
		{"romh", RegionE000, ROMH, 0xe000},
	}

	for _, r := range roms {
		storage := m.roms[r.label]
		sub, id, err := m.subset(mem, m.cpuView, r.label, storage, 0, storage.Size(), r.origin)
		if err != nil {
			return err
		}

		// writes to ROM land in the RAM underneath
		sub.SetWriteThrough(ram[r.region])

		m.layout[r.region][r.bank] = []memory.SubsetID{id}
	}

	// the bottom of memory is never switched out. the first two bytes are
	// the I/O port of the CPU
	sub, err := memory.NewBaseSubset("ram $0002", m.ram, 0x0002, 0x0ffe, 0x0002, 0)
	if err != nil {
		return err
	}
	id, err := mem.AddSubset(sub)
	if err != nil {
		return err
	}
	return mem.AddToView(m.cpuView, id, true)
}

func (m *C64) buildChips(env *environment.Environment, mem *memory.Memory, spec vicii.Spec, clock float64) error {
	var err error

	m.IOPort, err = NewIOPort(mem, IDIOPort)
	if err != nil {
		return err
	}
	if err := mem.AddToView(m.cpuView, m.IOPort.Registers(), true); err != nil {
		return err
	}

	m.CIA1, err = cia.NewCIA(mem, IDCIA1, "CIA1", 1, 0xdc00, 0x100, clock)
	if err != nil {
		return err
	}
	m.CIA2, err = cia.NewCIA(mem, IDCIA2, "CIA2", 2, 0xdd00, 0x100, clock)
	if err != nil {
		return err
	}

	colourStorage := mem.AddStorage("colour", memory.RAM, 0x400)
	colour, err := memory.NewNibbleRAM(env, "colour", colourStorage, 0, 0x400, 0xd800)
	if err != nil {
		return err
	}
	colourID, err := mem.AddSubset(colour)
	if err != nil {
		return err
	}

	vmem, err := m.buildVICView(mem)
	if err != nil {
		return err
	}
	vmem.Colour = colour

	m.VIC, err = vicii.NewVICII(mem, IDVICII, spec, 0xd000, 0x400, vmem)
	if err != nil {
		return err
	}

	m.SID, err = sid.NewSID(mem, IDSID, 0xd400, 0x400, clock, SampleRate)
	if err != nil {
		return err
	}

	io := []memory.SubsetID{
		m.VIC.Registers(),
		m.SID.Registers(),
		colourID,
		m.CIA1.Registers(),
		m.CIA2.Registers(),
	}
	for _, id := range io {
		if err := mem.AddToView(m.cpuView, id, false); err != nil {
			return err
		}
	}
	m.layout[RegionD000][IO] = io

	m.PLA = NewPLA(mem, IDPLA, m.cpuView, m.layout)

	for _, c := range []chip.Simulatable{m.IOPort, m.CIA1, m.CIA2, m.PLA, m.VIC, m.SID} {
		if err := m.AddChip(c); err != nil {
			return err
		}
	}

	return nil
}

// the VIC-II sees 16K of memory. the character ROM appears at $1000 in banks
// zero and two
func (m *C64) buildVICView(mem *memory.Memory) (vicii.Memory, error) {
	vmem := vicii.Memory{View: m.vicView}

	_, charID, err := m.subset(mem, m.vicView, "char (vic-ii)", m.roms["char"], 0, 0x1000, 0x1000)
	if err != nil {
		return vmem, err
	}

	for b := range vmem.Banks {
		base := b * 0x4000
		label := fmt.Sprintf("ram (vic-ii bank %d)", b)

		if b == 0 || b == 2 {
			_, lo, err := m.subset(mem, m.vicView, label, m.ram, base, 0x1000, 0x0000)
			if err != nil {
				return vmem, err
			}
			_, hi, err := m.subset(mem, m.vicView, label, m.ram, base+0x2000, 0x2000, 0x2000)
			if err != nil {
				return vmem, err
			}
			vmem.Banks[b] = []memory.SubsetID{lo, charID, hi}
			continue
		}

		_, id, err := m.subset(mem, m.vicView, label, m.ram, base, 0x4000, 0x0000)
		if err != nil {
			return vmem, err
		}
		vmem.Banks[b] = []memory.SubsetID{id}
	}

	return vmem, nil
}

// connect the chips to each other and to the CPU
func (m *C64) connect() {
	m.IOPort.Notifier().Attach(m.PLA)
	m.cartridge.Attach(m.PLA)

	m.CIA1.PortA = func(output uint8) uint8 {
		return m.Keyboard.ReverseScan(m.CIA1.OutputB())
	}
	m.CIA1.PortB = func(output uint8) uint8 {
		return m.Keyboard.Scan(m.CIA1.OutputA())
	}

	m.CIA1.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventIRQ {
			m.CPU.IRQ.Set(irqCIA1, ev.Data.(bool))
		}
	}))

	m.VIC.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventIRQ {
			m.CPU.IRQ.Set(irqVICII, ev.Data.(bool))
		}
	}))

	m.CIA2.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		switch ev.ID {
		case notifications.EventIRQ:
			m.CPU.NMI.Set(0, ev.Data.(bool))
		case notifications.EventPortChanged:
			// the bank of the VIC-II is selected by the inverted value of the
			// two low bits of port A
			if p, ok := ev.Data.(cia.PortValue); ok && p.Port == 'A' {
				m.VIC.SelectBank(3 - int(p.Value&0x03))
			}
		}
	}))
}

// LoadROM copies the image into the named ROM. Valid names are basic,
// kernal, char, roml and romh.
func (m *C64) LoadROM(name string, image []uint8) error {
	storage, ok := m.roms[name]
	if !ok {
		return curated.Errorf(UnknownROM, name)
	}
	if err := storage.LoadImage(image); err != nil {
		return curated.Errorf(ROMError, name, err)
	}
	return nil
}

// AttachCartridge loads the cartridge ROMs and sets the GAME and EXROM lines
// of the cartridge port. Either image can be nil. The memory configuration
// changes the next time the PLA is simulated.
func (m *C64) AttachCartridge(roml []uint8, romh []uint8, game bool, exrom bool) error {
	if roml != nil {
		if err := m.LoadROM("roml", roml); err != nil {
			return err
		}
	}
	if romh != nil {
		if err := m.LoadROM("romh", romh); err != nil {
			return err
		}
	}
	m.cartridge.Notify(notifications.Event{
		Source: notifications.SourceCartridge,
		ID:     notifications.EventCartridgeChanged,
		Data:   CartridgeLines{GAME: game, EXROM: exrom},
	})
	return nil
}

// VICView returns the view of memory seen by the VIC-II.
func (m *C64) VICView() memory.ViewID {
	return m.vicView
}
