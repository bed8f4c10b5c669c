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

package cpu

import (
	"github.com/emu8/emu8/curated"
)

// Sentinal error patterns for the instruction set.
const (
	UnknownOpcode        = "cpu: unknown opcode (%s)"
	DuplicateInstruction = "cpu: duplicate instruction (%s)"
)

// the number of cycles for a prefix byte if no other value has been specified
const defaultPrefixCycles = 4

// FetchFunc returns the byte at the offset from the start of the instruction.
// Offsets are requested in ascending order but the same offset may be
// requested more than once.
type FetchFunc func(offset int) (uint8, error)

// InstructionSet is the instruction table of a CPU.
type InstructionSet struct {
	instructions map[string]Instruction
	prefixes     map[string]int
	undefined    map[string]*InstructionUndefined

	// instructions in the order they were added
	ordered []Instruction
}

// NewInstructionSet is the preferred method of initialisation for the
// InstructionSet type.
func NewInstructionSet() *InstructionSet {
	return &InstructionSet{
		instructions: make(map[string]Instruction),
		prefixes:     make(map[string]int),
		undefined:    make(map[string]*InstructionUndefined),
	}
}

// Add an instruction to the table. Every leading part of the instruction's
// code becomes a prefix.
func (set *InstructionSet) Add(ins Instruction) error {
	key := string(ins.Code())
	if _, ok := set.instructions[key]; ok {
		return curated.Errorf(DuplicateInstruction, codeString(ins.Code()))
	}
	set.instructions[key] = ins
	set.ordered = append(set.ordered, ins)

	code := ins.Code()
	for i := 1; i < len(code); i++ {
		p := string(code[:i])
		if _, ok := set.prefixes[p]; !ok {
			set.prefixes[p] = defaultPrefixCycles
		}
	}

	return nil
}

// SetPrefixCycles changes the number of cycles charged for a prefix when it
// precedes an opcode that has no entry in the table.
func (set *InstructionSet) SetPrefixCycles(prefix []uint8, cycles int) {
	set.prefixes[string(prefix)] = cycles
}

// Lookup the instruction with the code.
func (set *InstructionSet) Lookup(code []uint8) (Instruction, bool) {
	ins, ok := set.instructions[string(code)]
	return ins, ok
}

// Instructions returns every defined instruction in the order in which they
// were added.
func (set *InstructionSet) Instructions() []Instruction {
	return set.ordered
}

// Family returns the defined instructions that are one byte longer than the
// prefix and begin with the prefix.
func (set *InstructionSet) Family(prefix []uint8) []Instruction {
	var f []Instruction
	for _, ins := range set.ordered {
		c := ins.Code()
		if len(c) == len(prefix)+1 && string(c[:len(prefix)]) == string(prefix) {
			f = append(f, ins)
		}
	}
	return f
}

// Decode the instruction. The bytes of the instruction are retrieved with the
// fetch function.
func (set *InstructionSet) Decode(fetch FetchFunc) (Instruction, error) {
	return set.decode(fetch, 0)
}

func (set *InstructionSet) decode(fetch FetchFunc, offset int) (Instruction, error) {
	code := make([]uint8, 0, 4)

	for {
		b, err := fetch(offset + len(code))
		if err != nil {
			return nil, err
		}
		code = append(code, b)
		key := string(code)

		if ins, ok := set.instructions[key]; ok {
			return ins, nil
		}

		if _, ok := set.prefixes[key]; ok {
			continue
		}

		if len(code) == 1 {
			return nil, curated.Errorf(UnknownOpcode, codeString(code))
		}

		break
	}

	// the opcode following the prefix is not in the table. the instruction
	// behaves as though the prefix was not there
	prefix := code[:len(code)-1]

	masked, err := set.decode(fetch, offset+len(prefix))
	if err != nil {
		return nil, err
	}

	key := string(prefix) + string(masked.Code())
	if u, ok := set.undefined[key]; ok {
		return u, nil
	}

	u := NewInstructionUndefined(prefix, set.prefixes[string(prefix)], set.Family(prefix), masked)
	set.undefined[key] = u

	return u, nil
}
