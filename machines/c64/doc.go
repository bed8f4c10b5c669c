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

// Package c64 assembles a Commodore 64 from the chips in the hardware
// package.
//
// The CPU view of memory is switched by the PLA, which listens to the I/O
// port of the 6510 and to the cartridge port. The VIC-II has a 16K view of
// its own, selected by port A of CIA2. CIA1 and the VIC-II share the IRQ
// line of the CPU and CIA2 drives the NMI line.
//
// The machine is created without ROMs. The ROMs are not distributed with the
// emulator and must be supplied with LoadROM().
//
// When the FastLoad preference is set, the KERNAL load routine is replaced
// by a trap that loads data from the Loader io-device.
package c64
