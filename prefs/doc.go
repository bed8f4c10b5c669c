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

// Package prefs facilitates the storage of preferential values in the
// emulation. It handles the conversion of string representations of values
// (from a preferences file or from the command line) to the underlying
// type.
//
// Values are typed with Bool, Int, Float and String. A value is registered
// against a key in a Disk instance. The Disk can be saved to and loaded from
// a file. Keys in the file are matched with the registered values; keys in
// the file with no registered value are preserved when the file is saved.
//
// Values can also be set from the command line through a CommandLineStack.
// Values in the top group of the stack are applied when a Disk is loaded and
// override the values in the file.
//
// Each type has a pre and post hook, set with SetHookPre() and SetHookPost().
// The pre hook can be used to veto a new value.
package prefs
