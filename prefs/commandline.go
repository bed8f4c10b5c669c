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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// CommandLineStack holds groups of preference values specified on the
// command line. The format of a group is:
//
//	key::value; key::value
//
// Each call to Push() adds a new group. Only the top group is consulted by
// Get() and by the Disk type when loading values.
type CommandLineStack struct {
	stack []map[string]Value
}

// NewCommandLineStack is the preferred method of initialisation for the
// CommandLineStack type.
func NewCommandLineStack() *CommandLineStack {
	return &CommandLineStack{
		stack: make([]map[string]Value, 0),
	}
}

// Size returns the number of groups in the stack.
func (cl *CommandLineStack) Size() int {
	return len(cl.stack)
}

// Push a new group of preferences onto the stack. Key/value pairs that
// can't be parsed are ignored.
func (cl *CommandLineStack) Push(prefs string) {
	cl.stack = append(cl.stack, make(map[string]Value))
	top := cl.stack[len(cl.stack)-1]

	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			top[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
}

// Pop the top group from the stack. The entries that were not consumed by a
// call to Get() are returned as a prefs string, sorted by key.
func (cl *CommandLineStack) Pop() string {
	if len(cl.stack) == 0 {
		return ""
	}

	popped := cl.stack[len(cl.stack)-1]
	cl.stack = cl.stack[:len(cl.stack)-1]

	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%v; ", key, popped[key]))
	}

	return strings.TrimSuffix(s.String(), "; ")
}

// Get the value for the key from the top group. The entry is removed from
// the group if it is found.
func (cl *CommandLineStack) Get(key string) (bool, Value) {
	if cl == nil || len(cl.stack) == 0 {
		return false, nil
	}

	top := cl.stack[len(cl.stack)-1]
	if v, ok := top[key]; ok {
		delete(top, key)
		return true, v
	}

	return false, nil
}
