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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a formatting pattern and placeholder values
// in the same way as fmt.Errorf().
//
// The pattern doubles as the identity of the error. Packages in the emulation
// define their patterns as exported constants so that callers can test for
// them:
//
//	const SubsetNotFound = "memory: subset not found (%d)"
//
//	err := curated.Errorf(SubsetNotFound, id)
//	if curated.Is(err, SubsetNotFound) {
//		...
//	}
//
// The Has() function is similar to Is() but searches the entire chain of
// wrapped errors. A curated error wraps another error simply by including it
// as a placeholder value:
//
//	f := curated.Errorf("computer: %v", err)
//	curated.Has(f, SubsetNotFound) // true
//	curated.Is(f, SubsetNotFound)  // false
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts. This alleviates the problem of deciding when to wrap an
// error with a package prefix: "memory: memory: subset not found" is
// presented as "memory: subset not found".
//
// IsAny() answers whether an error was created by Errorf(). In other words,
// it distinguishes expected errors from unexpected errors.
package curated
