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

// Package logger is the logging package for the emulation. Log entries are
// tagged and held in a bounded history. Adjacent duplicate entries are
// compacted into a single entry with a repeat count.
//
// There is no global log. A Logger instance is created with NewLogger() and
// is normally reached through the environment.Environment of the emulation,
// meaning that more than one emulation can run in the same process without
// the logs interfering with one another.
//
// Every log request carries a Permission. This allows the calling context to
// decide whether logging should happen at all. The environment.Environment
// type implements the Permission interface, as does the Allow value in this
// package.
package logger
