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

// Package filedata defines the data handed from file readers to the
// peripherals of a machine. A file reader produces a FileData; a peripheral
// that accepts it implements the Connector interface.
package filedata

import (
	"fmt"
	"os"

	"github.com/emu8/emu8/curated"
)

// Sentinal error patterns.
const (
	FileError  = "filedata: %v"
	EmptyError = "filedata: %s contains no data"
)

// MemoryBlock is a contiguous block of bytes and the address at which it is
// to be placed.
type MemoryBlock struct {
	Address uint16
	Data    []uint8
}

func (b MemoryBlock) String() string {
	if len(b.Data) == 0 {
		return fmt.Sprintf("%04x (empty)", b.Address)
	}
	return fmt.Sprintf("%04x-%04x", b.Address, int(b.Address)+len(b.Data)-1)
}

// End returns the address after the last byte of the block.
func (b MemoryBlock) End() uint16 {
	return b.Address + uint16(len(b.Data))
}

// FileData is implemented by the result of every file reader.
type FileData interface {
	// a short name for the format. eg. "raw" or "prg"
	Format() string

	// the blocks of memory described by the file
	AsMemoryBlocks() []MemoryBlock
}

// Connector is implemented by peripherals that accept FileData.
type Connector interface {
	ConnectData(data FileData) error
}

// Raw is data placed at a fixed address.
type Raw struct {
	Name  string
	Block MemoryBlock
}

// NewRaw is the preferred method of initialisation for the Raw type.
func NewRaw(name string, address uint16, data []uint8) *Raw {
	return &Raw{
		Name: name,
		Block: MemoryBlock{
			Address: address,
			Data:    data,
		},
	}
}

// Format implements the FileData interface.
func (r *Raw) Format() string {
	return "raw"
}

// AsMemoryBlocks implements the FileData interface.
func (r *Raw) AsMemoryBlocks() []MemoryBlock {
	return []MemoryBlock{r.Block}
}

// PRG is data preceded by a two byte, little-endian load address. The
// format used by Commodore machines for program files.
type PRG struct {
	Raw
}

// NewPRG creates a PRG from the contents of a file.
func NewPRG(name string, data []uint8) (*PRG, error) {
	if len(data) < 2 {
		return nil, curated.Errorf(EmptyError, name)
	}
	address := uint16(data[0]) | uint16(data[1])<<8
	return &PRG{Raw: *NewRaw(name, address, data[2:])}, nil
}

// Format implements the FileData interface.
func (p *PRG) Format() string {
	return "prg"
}

// Load a file. If address is negative then the file is treated as a PRG and
// the address is taken from the file. Otherwise the file is Raw data placed
// at the address.
func Load(path string, address int) (FileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	if address < 0 {
		return NewPRG(path, data)
	}
	if len(data) == 0 {
		return nil, curated.Errorf(EmptyError, path)
	}
	return NewRaw(path, uint16(address), data), nil
}
