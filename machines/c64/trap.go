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
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/cpu"
	"github.com/emu8/emu8/hardware/cpu/registers"
	"github.com/emu8/emu8/hardware/filedata"
	"github.com/emu8/emu8/hardware/memory/cpubus"
)

// the entry point of the KERNAL load routine after the vector at $0330. the
// instruction at this address is STA $93
const (
	loadRoutine = 0xf4a5
	loadCycles  = 6
)

var loadFingerprint = []uint8{0x85, 0x93}

// KERNAL variables used by the load routine
const (
	zpStatus  = 0x90
	zpEnd     = 0xae
	zpSA      = 0xb9
	zpAddress = 0xc3
)

// KERNAL error code for a missing file
const fileNotFound = 0x04

// the trap replaces the KERNAL load routine with the data waiting in the
// Loader. the trap is not sprung if the FastLoad preference was false when
// the machine was created
func (m *C64) addLoadTrap(env *environment.Environment) {
	disabled := env != nil && !env.Prefs.FastLoad.Get().(bool)

	m.CPU.AddTrap(cpu.Trap{
		Name:        "kernal load",
		From:        loadRoutine,
		To:          loadRoutine,
		Fingerprint: loadFingerprint,
		Routine:     m.fastLoad,
		Disabled:    disabled,
	})
}

func (m *C64) fastLoad(_ *cpu.CPU) (int, error) {
	mem := m.Mem()

	data, ok := m.Loader.Take()
	if !ok {
		m.CPU.A.Load(fileNotFound)
		m.CPU.Status.Set(registers.Carry, true)
		m.CPU.ReturnFromSubroutine()
		return loadCycles, nil
	}

	blocks := data.AsMemoryBlocks()

	// a secondary address of zero loads the data at the address in $c3/$c4
	// rather than the address in the file
	var offset uint16
	sa, err := mem.Read(zpSA)
	if err != nil {
		return 0, err
	}
	if sa == 0 && len(blocks) > 0 {
		lo, err := mem.Read(zpAddress)
		if err != nil {
			return 0, err
		}
		hi, err := mem.Read(zpAddress + 1)
		if err != nil {
			return 0, err
		}
		offset = (uint16(hi)<<8 | uint16(lo)) - blocks[0].Address
	}

	var end uint16
	loaded := make([]filedata.MemoryBlock, 0, len(blocks))
	for _, b := range blocks {
		b.Address += offset
		for i, v := range b.Data {
			if err := mem.Write(b.Address+uint16(i), v); err != nil {
				return 0, err
			}
		}
		end = max(end, b.End())
		loaded = append(loaded, b)
	}
	m.Loader.Loaded = loaded

	if err := writeWord(mem, zpEnd, end); err != nil {
		return 0, err
	}
	if err := mem.Write(zpStatus, 0x00); err != nil {
		return 0, err
	}

	m.CPU.X.Load(end & 0xff)
	m.CPU.Y.Load(end >> 8)
	m.CPU.Status.Set(registers.Carry, false)
	m.CPU.ReturnFromSubroutine()

	if env := m.Env(); env != nil {
		env.Logf("c64", "fast load: %s (%d bytes) ending at %04x", data.Format(), totalSize(loaded), end)
	}

	return loadCycles, nil
}

func totalSize(blocks []filedata.MemoryBlock) int {
	var n int
	for _, b := range blocks {
		n += len(b.Data)
	}
	return n
}

func writeWord(mem cpubus.Memory, address uint16, v uint16) error {
	if err := mem.Write(address, uint8(v)); err != nil {
		return err
	}
	return mem.Write(address+1, uint8(v>>8))
}
