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
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/chip/ay"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/hardware/cpu/z80"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/emu8/emu8/hardware/keyboard"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// Sentinal error patterns.
const (
	UnknownROM = "zxspectrum: unknown rom (%s)"
	ROMError   = "zxspectrum: rom %s: %v"
)

// IDs of the chips. The paging register is simulated before the ULA so that
// a change of screen is seen by the next frame.
const (
	IDPaging = iota + 1
	IDULA
	IDAY
)

// SampleRate of the sound chips.
const SampleRate = 44100

// Model is a member of the Spectrum family.
type Model struct {
	Name string

	// CPU speed in MHz and the number of T-states in a frame
	Clock       float64
	FrameCycles int

	// the names of the ROMs. the 128K has two ROMs at $0000 selected by
	// the paging register
	ROMs []string

	// the 128K has eight pages of RAM, the paging register and the AY
	Paged bool
}

// List of models.
var (
	Spectrum48 = Model{
		Name:        "ZX Spectrum 48K",
		Clock:       clocks.Spectrum48,
		FrameCycles: 69888,
		ROMs:        []string{"48"},
	}
	Spectrum128 = Model{
		Name:        "ZX Spectrum 128K",
		Clock:       clocks.Spectrum128,
		FrameCycles: 70908,
		ROMs:        []string{"128", "48"},
		Paged:       true,
	}
)

// Spectrum is a Sinclair ZX Spectrum.
type Spectrum struct {
	*hardware.Computer

	Model    Model
	CPU      *z80.CPU
	ULA      *ULA
	Ports    *Ports
	Keyboard *keyboard.Matrix
	Loader   *iodevice.Loader

	// only on the 128K
	Paging *Paging
	AY     *ay.AY

	roms    map[string]*memory.PhysicalStorage
	ram     *memory.PhysicalStorage
	cpuView memory.ViewID
	ulaView memory.ViewID

	paging PagingLayout
}

// NewSpectrum is the preferred method of initialisation for the Spectrum
// type. The machine is built without ROMs. Use LoadROM() to supply them
// before calling Initialise().
func NewSpectrum(env *environment.Environment, model Model) (*Spectrum, error) {
	m := &Spectrum{
		Model:  model,
		Ports:  &Ports{},
		Loader: iodevice.NewLoader(true),
		roms:   make(map[string]*memory.PhysicalStorage),
	}

	mem := memory.NewMemory(env)

	var err error
	m.cpuView, err = mem.AddView("cpu", 0x10000)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}
	m.ulaView, err = mem.AddView("ula", 0x4000)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	for _, name := range model.ROMs {
		m.roms[name] = mem.AddStorage(name, memory.ROM, 0x4000)
	}

	if model.Paged {
		m.ram = mem.AddStorage("ram", memory.RAM, NumPages*0x4000)
		err = m.buildPaged(mem)
	} else {
		m.ram = mem.AddStorage("ram", memory.RAM, 0xc000)
		err = m.build48(mem)
	}
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.CPU, err = z80.NewCPU(env, mem, m.Ports)
	if err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.Computer = hardware.NewComputer(env, model.Name, mem, m.CPU)

	if err := m.buildChips(mem); err != nil {
		return nil, curated.Errorf(hardware.InitError, err)
	}

	m.AddDevice(m.Loader)

	return m, nil
}

func (m *Spectrum) subset(mem *memory.Memory, view memory.ViewID, label string, storage *memory.PhysicalStorage, offset int, size int, origin uint16, active bool) (memory.SubsetID, error) {
	sub, err := memory.NewBaseSubset(label, storage, offset, size, origin, 0)
	if err != nil {
		return memory.NoSubset, err
	}
	id, err := mem.AddSubset(sub)
	if err != nil {
		return memory.NoSubset, err
	}
	if err := mem.AddToView(view, id, active); err != nil {
		return memory.NoSubset, err
	}
	return id, nil
}

func (m *Spectrum) build48(mem *memory.Memory) error {
	if _, err := m.subset(mem, m.cpuView, "rom", m.roms["48"], 0, 0x4000, 0x0000, true); err != nil {
		return err
	}
	if _, err := m.subset(mem, m.cpuView, "ram", m.ram, 0, 0xc000, 0x4000, true); err != nil {
		return err
	}
	_, err := m.subset(mem, m.ulaView, "display", m.ram, 0, 0x4000, 0x0000, true)
	return err
}

func (m *Spectrum) buildPaged(mem *memory.Memory) error {
	m.paging.CPUView = m.cpuView
	m.paging.ULAView = m.ulaView

	var err error
	for i, name := range m.Model.ROMs {
		m.paging.ROM[i], err = m.subset(mem, m.cpuView, name, m.roms[name], 0, 0x4000, 0x0000, i == 0)
		if err != nil {
			return err
		}
	}

	page := func(n int) int {
		return n * 0x4000
	}

	// pages 5 and 2 are always present at $4000 and $8000
	if _, err := m.subset(mem, m.cpuView, "page 5", m.ram, page(5), 0x4000, 0x4000, true); err != nil {
		return err
	}
	if _, err := m.subset(mem, m.cpuView, "page 2", m.ram, page(2), 0x4000, 0x8000, true); err != nil {
		return err
	}

	for n := 0; n < NumPages; n++ {
		m.paging.Top[n], err = m.subset(mem, m.cpuView, fmt.Sprintf("page %d", n), m.ram, page(n), 0x4000, 0xc000, n == 0)
		if err != nil {
			return err
		}
	}

	m.paging.Normal, err = m.subset(mem, m.ulaView, "page 5 (ula)", m.ram, page(normalScreen), 0x4000, 0x0000, true)
	if err != nil {
		return err
	}
	m.paging.Shadow, err = m.subset(mem, m.ulaView, "page 7 (ula)", m.ram, page(shadowScreen), 0x4000, 0x0000, false)
	return err
}

func (m *Spectrum) buildChips(mem *memory.Memory) error {
	var err error

	m.ULA, err = NewULA(mem, IDULA, m.ulaView, m.Model.FrameCycles, m.Model.Clock, SampleRate)
	if err != nil {
		return err
	}
	m.Keyboard = m.ULA.Keyboard
	m.Ports.Attach(m.ULA.Port())

	m.ULA.Notifier().Attach(notifications.ObserverFunc(func(ev notifications.Event) {
		if ev.ID == notifications.EventIRQ {
			m.CPU.INT.Set(0, ev.Data.(bool))
		}
	}))

	chips := []chip.Simulatable{m.ULA}

	if m.Model.Paged {
		m.Paging = NewPaging(mem, IDPaging, m.paging)
		m.Ports.Attach(m.Paging.Port())

		// the AY is clocked at half the speed of the CPU
		m.AY = ay.NewAY(IDAY, m.Model.Clock, 2, SampleRate)
		m.Ports.Attach(Port{
			Label: "ay register",
			Mask:  0xc002,
			Match: 0xc000,
			In: func(_ uint16) uint8 {
				return m.AY.ReadRegister()
			},
			Out: func(_ uint16, data uint8) {
				m.AY.SelectRegister(data)
			},
		})
		m.Ports.Attach(Port{
			Label: "ay data",
			Mask:  0xc002,
			Match: 0x8000,
			Out: func(_ uint16, data uint8) {
				m.AY.WriteRegister(data)
			},
		})

		chips = append(chips, m.Paging, m.AY)
	}

	for _, c := range chips {
		if err := m.AddChip(c); err != nil {
			return err
		}
	}

	return nil
}

// LoadROM copies the image into the named ROM. The 48K has one ROM called
// 48. The 128K has two, called 128 and 48. All ROMs are 16K.
func (m *Spectrum) LoadROM(name string, image []uint8) error {
	storage, ok := m.roms[name]
	if !ok {
		return curated.Errorf(UnknownROM, name)
	}
	if err := storage.LoadImage(image); err != nil {
		return curated.Errorf(ROMError, name, err)
	}
	return nil
}

// ULAView returns the view of memory seen by the ULA.
func (m *Spectrum) ULAView() memory.ViewID {
	return m.ulaView
}

// Sounds returns the sound memories of the machine.
func (m *Spectrum) Sounds() []*chip.SoundMemory {
	if m.AY != nil {
		return []*chip.SoundMemory{m.ULA.Sound, m.AY.Sound}
	}
	return []*chip.SoundMemory{m.ULA.Sound}
}
