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

// Package hardware is the base package of the emulation. The Computer type
// is the root of an emulated machine and owns the CPU, the Memory, the chips
// and the IO devices.
//
// A machine package builds the components and attaches them to a Computer.
// The Computer is then initialised and either stepped one tick at a time
// with Step() or run continuously with Run(). One tick is one CPU
// instruction (or the serving of an interrupt), followed by a call to
// Simulate() for every chip in ascending ID order, followed by a call to
// Refresh() for every IO device.
package hardware
