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

// Package c264 assembles the machines of the Commodore 264 family, the C16
// and the Plus/4, from the chips in the hardware package.
//
// Everything from $8000 upwards can be ROM or RAM. The choice is made by
// writing to $FF3E (ROM) or $FF3F (RAM). Which ROMs are seen is chosen by
// the ROM selector: the address written in the range $FDD0 to $FDDF selects
// the bank for $8000 with bits 0 and 1, and the bank for $C000 with bits 2
// and 3. The value written is ignored. Page $FC is always taken from the
// kernal when ROM is selected.
//
// The C16 has 16K of RAM, which is mirrored over the whole address space.
package c264
