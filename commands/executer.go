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

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/hardware"
)

// the most bytes that can be requested by a single MEMORY command
const maxMemoryLength = 256

// CommandExecuter is implemented by types that can execute a Command.
type CommandExecuter interface {
	Execute(cmd *Command) (*Command, error)
}

// Executer runs commands against a Computer.
type Executer struct {
	computer *hardware.Computer
}

// NewExecuter is the preferred method of initialisation for the Executer type.
func NewExecuter(c *hardware.Computer) *Executer {
	return &Executer{computer: c}
}

// Execute implements the CommandExecuter interface.
func (ex *Executer) Execute(cmd *Command) (*Command, error) {
	switch cmd.Type {
	case TypeCPU:
		return ex.cpu(), nil
	case TypeMemory:
		return ex.memory(cmd)
	case TypeStatus:
		return ex.status(), nil
	case TypeChips:
		return ex.chips(), nil
	}
	return nil, curated.Errorf(UnknownCommand, cmd.Type)
}

// ErrorResponse converts an error to an error Command.
func ErrorResponse(err error) *Command {
	rsp := NewCommand(TypeError)
	rsp.Set("MSG", wireName(err.Error()))
	return rsp
}

// wireName removes the characters of a string that are not allowed in the
// wire format. The prime symbol of the Z80 alternate registers becomes
// the word ALT.
func wireName(s string) string {
	s = strings.ReplaceAll(s, "'", "ALT")
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (ex *Executer) cpu() *Command {
	base := ex.computer.CPU.Base()

	rsp := NewCommand(TypeResponse)
	rsp.Set("MODEL", wireName(base.Model))
	rsp.Set("PC", fmt.Sprintf("%04x", base.PC.Value()))
	for _, r := range base.Registers {
		if r.Size() == 1 {
			rsp.Set(wireName(r.Label()), fmt.Sprintf("%02x", r.Value()))
		} else {
			rsp.Set(wireName(r.Label()), fmt.Sprintf("%04x", r.Value()))
		}
	}
	rsp.Set("SR", fmt.Sprintf("%02x", base.Status.Value()))
	rsp.Set("CYCLES", strconv.FormatUint(base.ClockCycles(), 10))
	return rsp
}

func (ex *Executer) memory(cmd *Command) (*Command, error) {
	v, ok := cmd.Get("ADDRESS")
	if !ok {
		return nil, curated.Errorf(AttributeError, "ADDRESS", "missing")
	}
	address, err := strconv.ParseUint(v, 16, 16)
	if err != nil {
		return nil, curated.Errorf(AttributeError, "ADDRESS", err)
	}

	length := uint64(16)
	if v, ok := cmd.Get("LENGTH"); ok {
		length, err = strconv.ParseUint(v, 10, 16)
		if err != nil {
			return nil, curated.Errorf(AttributeError, "LENGTH", err)
		}
		if length == 0 || length > maxMemoryLength {
			return nil, curated.Errorf(AttributeError, "LENGTH", fmt.Sprintf("must be between 1 and %d", maxMemoryLength))
		}
	}

	mem := ex.computer.Mem()

	data := strings.Builder{}
	for i := uint64(0); i < length; i++ {
		b, err := mem.Peek(uint16(address + i))
		if err != nil {
			return nil, err
		}
		data.WriteString(fmt.Sprintf("%02x", b))
	}

	rsp := NewCommand(TypeResponse)
	rsp.Set("ADDRESS", fmt.Sprintf("%04x", address))
	rsp.Set("LENGTH", strconv.FormatUint(length, 10))
	rsp.Set("DATA", data.String())
	return rsp, nil
}

func (ex *Executer) status() *Command {
	s := ex.computer.Snapshot()

	rsp := NewCommand(TypeResponse)
	rsp.Set("MACHINE", wireName(s.Label))
	rsp.Set("STATE", wireName(s.State.String()))
	rsp.Set("TICKS", strconv.FormatUint(s.Ticks, 10))
	rsp.Set("CYCLES", strconv.FormatUint(s.ClockCycles, 10))
	rsp.Set("KILLED", boolValue(s.CPU.Killed))
	rsp.Set("FAULTED", boolValue(s.CPU.Faulted))
	return rsp
}

func (ex *Executer) chips() *Command {
	rsp := NewCommand(TypeResponse)
	chips := ex.computer.Chips()
	rsp.Set("COUNT", strconv.Itoa(len(chips)))
	for i, ch := range chips {
		rsp.Set(fmt.Sprintf("CHIP%d", i), wireName(ch.Label()))
	}
	return rsp
}
