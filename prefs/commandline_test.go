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

package prefs_test

import (
	"testing"

	"github.com/emu8/emu8/prefs"
	"github.com/emu8/emu8/test"
)

func TestCommandLineStackValues(t *testing.T) {
	cl := prefs.NewCommandLineStack()

	// empty on start
	test.ExpectEquality(t, cl.Pop(), "")

	// single value
	cl.Push("foo::bar")
	test.ExpectEquality(t, cl.Pop(), "foo::bar")

	// single value but with additional space
	cl.Push("   foo:: bar ")
	test.ExpectEquality(t, cl.Pop(), "foo::bar")

	// more than one key/value in the prefs string. remaining string will
	// will be sorted
	cl.Push("foo::bar; baz::qux")
	test.ExpectEquality(t, cl.Pop(), "baz::qux; foo::bar")

	// check invalid prefs string
	cl.Push("foo_bar")
	test.ExpectEquality(t, cl.Pop(), "")

	// check (partically) invalid prefs string
	cl.Push("foo_bar;baz::qux")
	test.ExpectEquality(t, cl.Pop(), "baz::qux")

	// get prefs value that doesn't exist after pushing a parially invalid prefs string
	cl.Push("foo::bar;baz_qux")
	ok, _ := cl.Get("baz")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, cl.Pop(), "foo::bar")
}

func TestCommandLineStack(t *testing.T) {
	cl := prefs.NewCommandLineStack()

	cl.Push("foo::bar")

	// add another command line group
	cl.Push("baz::qux")
	test.ExpectEquality(t, cl.Size(), 2)
	test.ExpectEquality(t, cl.Pop(), "baz::qux")

	// first group still exists
	test.ExpectEquality(t, cl.Pop(), "foo::bar")
	test.ExpectEquality(t, cl.Size(), 0)
}

func TestCommandLineGet(t *testing.T) {
	cl := prefs.NewCommandLineStack()
	cl.Push("foo::bar")

	ok, v := cl.Get("foo")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "bar")

	// values are consumed by Get()
	ok, _ = cl.Get("foo")
	test.ExpectFailure(t, ok)
}
