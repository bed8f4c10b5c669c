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
	"strings"

	"github.com/emu8/emu8/curated"
)

// Sentinal error patterns.
const (
	WireFormatError = "commands: wire format: %v"
	UnknownCommand  = "commands: unknown command (%s)"
	AttributeError  = "commands: attribute %s: %v"
)

// Type identifies a command.
type Type byte

// List of valid command types.
const (
	TypeCPU      Type = 'C'
	TypeMemory   Type = 'M'
	TypeStatus   Type = 'S'
	TypeChips    Type = 'H'
	TypeResponse Type = 'R'
	TypeError    Type = 'E'
)

// Keywords are the names by which commands can be entered on the console.
var Keywords = map[string]Type{
	"CPU":    TypeCPU,
	"MEMORY": TypeMemory,
	"STATUS": TypeStatus,
	"CHIPS":  TypeChips,
}

// Help contains a short description of each command.
var Help = map[Type]string{
	TypeCPU:    "Display the registers of the CPU",
	TypeMemory: "Dump memory. ADDRESS (hex) and LENGTH (decimal, default 16)",
	TypeStatus: "Display the state of the computer",
	TypeChips:  "List the chips of the computer in simulation order",
}

func (t Type) String() string {
	for k, v := range Keywords {
		if v == t {
			return k
		}
	}
	switch t {
	case TypeResponse:
		return "RESPONSE"
	case TypeError:
		return "ERROR"
	}
	return string(rune(t))
}

// Attribute is a single KEY=VALUE pair.
type Attribute struct {
	Key   string
	Value string
}

// Command is a command or a response to a command.
type Command struct {
	Type       Type
	Attributes []Attribute
}

// NewCommand is the preferred method of initialisation for the Command type.
func NewCommand(t Type) *Command {
	return &Command{Type: t}
}

// Set adds an attribute to the command, or replaces the value of an existing
// attribute with the same key.
func (cmd *Command) Set(key string, value string) {
	for i := range cmd.Attributes {
		if cmd.Attributes[i].Key == key {
			cmd.Attributes[i].Value = value
			return
		}
	}
	cmd.Attributes = append(cmd.Attributes, Attribute{Key: key, Value: value})
}

// Get returns the value of the attribute with the key.
func (cmd *Command) Get(key string) (string, bool) {
	for _, a := range cmd.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (cmd *Command) String() string {
	s := strings.Builder{}
	s.WriteString(cmd.Type.String())
	for _, a := range cmd.Attributes {
		s.WriteString(" ")
		s.WriteString(a.Key)
		s.WriteString("=")
		s.WriteString(a.Value)
	}
	return s.String()
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// Encode the command in the wire format. Fails if a key or value contains a
// character that is not a letter or a digit.
func (cmd *Command) Encode() ([]byte, error) {
	if cmd.Type < 0x21 || cmd.Type > 0x7e {
		return nil, curated.Errorf(WireFormatError, "type byte is not printable")
	}

	b := []byte{byte(cmd.Type)}
	for i, a := range cmd.Attributes {
		if a.Key == "" || !alphanumeric(a.Key) {
			return nil, curated.Errorf(WireFormatError, curated.Errorf(AttributeError, a.Key, "invalid key"))
		}
		if !alphanumeric(a.Value) {
			return nil, curated.Errorf(WireFormatError, curated.Errorf(AttributeError, a.Key, "invalid value"))
		}
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, a.Key...)
		b = append(b, '=')
		b = append(b, a.Value...)
	}

	return b, nil
}

// Decode a command from the wire format.
func Decode(b []byte) (*Command, error) {
	if len(b) == 0 {
		return nil, curated.Errorf(WireFormatError, "empty command")
	}

	cmd := NewCommand(Type(b[0]))
	if cmd.Type < 0x21 || cmd.Type > 0x7e {
		return nil, curated.Errorf(WireFormatError, "type byte is not printable")
	}

	body := string(b[1:])
	if body == "" {
		return cmd, nil
	}

	for _, p := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, curated.Errorf(WireFormatError, curated.Errorf(AttributeError, p, "missing value"))
		}
		if key == "" || !alphanumeric(key) {
			return nil, curated.Errorf(WireFormatError, curated.Errorf(AttributeError, key, "invalid key"))
		}
		if !alphanumeric(value) {
			return nil, curated.Errorf(WireFormatError, curated.Errorf(AttributeError, key, "invalid value"))
		}
		cmd.Set(key, value)
	}

	return cmd, nil
}

// ParseLine parses a line entered on the console. The line can begin with a
// keyword, in which case the remainder of the line is the attribute list.
// Otherwise the line is decoded as a wire format command. For example, the
// following two lines are equivalent:
//
//	MEMORY ADDRESS=c000,LENGTH=4
//	MADDRESS=c000,LENGTH=4
func ParseLine(line string) (*Command, error) {
	line = strings.TrimSpace(line)

	word, rest, _ := strings.Cut(line, " ")
	if t, ok := Keywords[strings.ToUpper(word)]; ok {
		rest = strings.ReplaceAll(rest, " ", "")
		return Decode(append([]byte{byte(t)}, rest...))
	}

	return Decode([]byte(line))
}
