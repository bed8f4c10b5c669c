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

// Package commands defines the command interface to a running computer.
//
// A Command is a type byte followed by zero or more attributes. On the wire
// a command is written as the type byte followed immediately by the
// attributes, separated by commas. Each attribute is written as KEY=VALUE.
// Keys and values are restricted to ASCII letters and digits. For example,
// a request for sixteen bytes of memory starting at $c000:
//
//	MADDRESS=c000,LENGTH=16
//
// Numeric values are hexadecimal except for lengths and counts, which are
// decimal.
//
// The Executer type runs commands against a hardware.Computer and returns a
// response Command (type R) or an error Command (type E).
package commands
