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

// Package signal models the lines that connect chips to one another: single
// control lines (Wire), parallel lines (Bus) and the collection of lines
// presented by a microprocessor (MicroprocessorBus).
//
// Lines are point-to-multipoint. A line has one driver and any number of
// listeners, which are called whenever the value of the line changes. The
// edge of the most recent change can be inspected with PositiveEdge() and
// NegativeEdge().
package signal
