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

// Package vicii implements the register contract of the MOS 6569/6567
// VIC-II video chip: the raster counter, the raster interrupt, the
// interrupt latch and enable registers, the colour registers and the memory
// pointers. Sprites and the fine detail of the video timing are not
// emulated.
//
// At the end of every frame the character (or hires bitmap) screen is drawn
// into the ScreenMemory and a notifications.EventGraphicsReady event is
// raised. Changes to the interrupt output are raised as
// notifications.EventIRQ events with a boolean Data field.
//
// The VIC-II sees memory through a view of its own. The view is 16K in size
// and the machine supplies the subsets that make up each of the four banks.
// SelectBank() changes the bank the next time the chip is simulated.
package vicii

import (
	"fmt"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// BankError is returned when the bank configuration cannot be applied.
const BankError = "vicii: bank %d: %v"

// List of VIC-II registers that have behaviour beyond storing a value.
const (
	CR1      = 0x11
	RASTER   = 0x12
	CR2      = 0x16
	MEMPTR   = 0x18
	IRR      = 0x19
	IMR      = 0x1a
	SSCOLL   = 0x1e
	SBCOLL   = 0x1f
	BORDER   = 0x20
	BGCOLOR0 = 0x21

	// the last register. registers above this, up to the size of the
	// register window, read $ff
	lastRegister = 0x2e

	// the size of the register window
	NumRegisters = 0x40
)

// Bits of the interrupt registers.
const (
	IntRaster = 0x01
	IntSBColl = 0x02
	IntSSColl = 0x04
	IntPen    = 0x08
	IntAny    = 0x80
)

// Spec is the geometry of a video standard.
type Spec struct {
	ID            string
	Lines         int
	CyclesPerLine int
}

// List of video standards.
var (
	PAL  = Spec{ID: "PAL", Lines: 312, CyclesPerLine: 63}
	NTSC = Spec{ID: "NTSC", Lines: 263, CyclesPerLine: 65}
)

// Dimensions of the ScreenMemory.
const (
	ScreenWidth  = 384
	ScreenHeight = 272

	// the position of the display window in the ScreenMemory
	displayLeft   = 32
	displayTop    = 36
	displayWidth  = 320
	displayHeight = 200
)

// Memory describes how the VIC-II sees memory.
type Memory struct {
	// the view of the VIC-II. addresses are 14 bits
	View memory.ViewID

	// the subsets that make up each bank
	Banks [4][]memory.SubsetID

	// the colour RAM is on a bus of its own
	Colour memory.Subset
}

// VICII is the video chip.
type VICII struct {
	id    int
	label string
	spec  Spec

	mem    *memory.Memory
	vmem   Memory
	regs   *memory.ChipRegisters
	regsID memory.SubsetID

	notifier notifications.Notifier
	elapsed  chip.Elapsed

	Screen *chip.ScreenMemory

	raster  int
	cycle   int
	compare int

	irr uint8
	irq bool

	bank        int
	pendingBank int
	bankChanged chip.Latch
}

// NewVICII is the preferred method of initialisation for the VICII type. The
// registers are created in the memory and mirrored over the extent from
// origin. The caller adds the registers to the CPU view.
func NewVICII(mem *memory.Memory, id int, spec Spec, origin uint16, extent int, vmem Memory) (*VICII, error) {
	vic := &VICII{
		id:    id,
		label: "VIC-II",
		spec:  spec,
		mem:   mem,
		vmem:  vmem,
	}

	var err error
	vic.Screen, err = chip.NewScreenMemory(ScreenWidth, ScreenHeight)
	if err != nil {
		return nil, err
	}

	storage := mem.AddStorage("vicii", memory.RAM, NumRegisters)
	vic.regs, err = memory.NewChipRegisters("vicii", storage, 0, NumRegisters, origin, extent)
	if err != nil {
		return nil, err
	}
	vic.regs.OnWrite = vic.write
	vic.regs.OnRead = vic.read

	vic.regsID, err = mem.AddSubset(vic.regs)
	if err != nil {
		return nil, err
	}

	return vic, nil
}

func (vic *VICII) String() string {
	return fmt.Sprintf("%s: %s raster=%d/%d irr=%02x imr=%02x bank=%d",
		vic.label, vic.spec.ID, vic.raster, vic.compare, vic.irr, vic.regs.Register(IMR), vic.bank)
}

// ID implements the chip.Simulatable interface.
func (vic *VICII) ID() int {
	return vic.id
}

// Label implements the chip.Simulatable interface.
func (vic *VICII) Label() string {
	return vic.label
}

// Registers implements the chip.MemoryMapped interface.
func (vic *VICII) Registers() memory.SubsetID {
	return vic.regsID
}

// Notifier implements the chip.EventSource interface.
func (vic *VICII) Notifier() *notifications.Notifier {
	return &vic.notifier
}

// Initialise implements the chip.Simulatable interface.
func (vic *VICII) Initialise() error {
	for i := 0; i < NumRegisters; i++ {
		vic.regs.SetRegister(i, 0)
	}
	vic.raster = 0
	vic.cycle = 0
	vic.compare = 0
	vic.irr = 0
	vic.elapsed = chip.Elapsed{}
	vic.Screen.Frame = 0
	vic.Screen.Fill(0)

	if vic.irq {
		vic.irq = false
		vic.notify(notifications.EventIRQ, false)
	}

	vic.bankChanged.Clear()
	return vic.applyBank(0)
}

func (vic *VICII) notify(id notifications.EventID, data any) {
	vic.notifier.Notify(notifications.Event{
		Source: notifications.SourceVideo,
		ID:     id,
		Data:   data,
	})
}

// Raster returns the current raster line.
func (vic *VICII) Raster() int {
	return vic.raster
}

// Bank returns the current bank.
func (vic *VICII) Bank() int {
	return vic.bank
}

// BorderColour returns the palette index of the border.
func (vic *VICII) BorderColour() uint8 {
	return vic.regs.Register(BORDER) & 0x0f
}

// InterruptLine returns true if the VIC-II is requesting an interrupt.
func (vic *VICII) InterruptLine() bool {
	return vic.irq
}

// SelectBank selects the bank of memory seen by the VIC-II. The change takes
// effect the next time the chip is simulated.
func (vic *VICII) SelectBank(bank int) {
	vic.pendingBank = bank & 0x03
	vic.bankChanged.Mark()
}

func (vic *VICII) applyBank(bank int) error {
	var activate, deactivate []memory.SubsetID
	for b, ids := range vic.vmem.Banks {
		if b == bank {
			activate = append(activate, ids...)
		} else {
			deactivate = append(deactivate, ids...)
		}
	}
	if err := vic.mem.ConfigureMemoryStructure(vic.vmem.View, activate, deactivate); err != nil {
		return curated.Errorf(BankError, bank, err)
	}
	vic.bank = bank
	return nil
}

func (vic *VICII) read(pos int, v uint8) uint8 {
	switch {
	case pos == CR1:
		return v&0x7f | uint8((vic.raster>>1)&0x80)
	case pos == RASTER:
		return uint8(vic.raster)
	case pos == CR2:
		return v | 0xc0
	case pos == MEMPTR:
		return v | 0x01
	case pos == IRR:
		r := vic.irr | 0x70
		if vic.irq {
			r |= IntAny
		}
		return r
	case pos == IMR:
		return v | 0xf0
	case pos == SSCOLL || pos == SBCOLL:
		// collisions are not emulated. the registers clear on read
		vic.regs.SetRegister(pos, 0)
		return v
	case pos >= BORDER && pos <= lastRegister:
		return v | 0xf0
	case pos > lastRegister:
		return 0xff
	}
	return v
}

func (vic *VICII) write(pos int, v uint8) {
	switch pos {
	case CR1:
		vic.compare = vic.compare&0xff | int(v&0x80)<<1
		vic.compareNow()
	case RASTER:
		vic.compare = vic.compare&0x100 | int(v)
		vic.compareNow()
	case IRR:
		// writing a one bit acknowledges the interrupt
		vic.irr &^= v & 0x0f
	}
}

// the raster interrupt is also triggered by setting the compare value to the
// current line
func (vic *VICII) compareNow() {
	if vic.compare == vic.raster {
		vic.irr |= IntRaster
	}
}

// Simulate implements the chip.Simulatable interface.
func (vic *VICII) Simulate(c chip.Clock) error {
	if vic.bankChanged.Consume() && vic.pendingBank != vic.bank {
		if err := vic.applyBank(vic.pendingBank); err != nil {
			return err
		}
	}

	vic.cycle += int(vic.elapsed.Update(c))
	for vic.cycle >= vic.spec.CyclesPerLine {
		vic.cycle -= vic.spec.CyclesPerLine
		vic.raster++
		if vic.raster >= vic.spec.Lines {
			vic.raster = 0
			if err := vic.render(); err != nil {
				return err
			}
		}
		if vic.raster == vic.compare {
			vic.irr |= IntRaster
		}
	}

	irq := vic.irr&vic.regs.Register(IMR)&0x0f != 0
	if irq != vic.irq {
		vic.irq = irq
		vic.notify(notifications.EventIRQ, irq)
	}

	return nil
}
