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

// Package zxspectrum assembles a Sinclair ZX Spectrum 48K or 128K around the
// Z80 CPU.
//
// The Z80 has an I/O address space separate from memory. The Ports type
// dispatches IN and OUT instructions to the devices that decode the port
// address: the ULA on every even port, the 128K paging register on $7FFD
// and the AY sound chip on $FFFD and $BFFD.
//
// The ULA raises the maskable interrupt at the start of every frame and
// draws the display from a 16K view of its own. On the 128K the view holds
// RAM page 5 or RAM page 7, as selected by the paging register.
//
// Memory contention and the floating bus are not emulated.
package zxspectrum
