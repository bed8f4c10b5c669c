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

package zxspectrum

import (
	"fmt"
	"strings"
)

// Port is a device on the I/O bus. The device responds to every port address
// that equals Match after being masked with Mask. Either of the In and Out
// functions can be nil.
type Port struct {
	Label string
	Mask  uint16
	Match uint16
	In    func(port uint16) uint8
	Out   func(port uint16, data uint8)
}

func (p Port) decodes(port uint16) bool {
	return port&p.Mask == p.Match
}

// Ports implements the cpu.PortBus interface for the Z80.
type Ports struct {
	ports []Port
}

func (p *Ports) String() string {
	s := strings.Builder{}
	for i, d := range p.ports {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("%s: mask=%04x match=%04x", d.Label, d.Mask, d.Match))
	}
	return s.String()
}

// Attach a device to the I/O bus.
func (p *Ports) Attach(port Port) {
	p.ports = append(p.ports, port)
}

// In implements the cpu.PortBus interface. When more than one device decodes
// the port the values are ANDed together. A port that no device decodes
// reads $ff.
func (p *Ports) In(port uint16) (uint8, error) {
	v := uint8(0xff)
	for _, d := range p.ports {
		if d.In != nil && d.decodes(port) {
			v &= d.In(port)
		}
	}
	return v, nil
}

// Out implements the cpu.PortBus interface. The value is sent to every
// device that decodes the port.
func (p *Ports) Out(port uint16, data uint8) error {
	for _, d := range p.ports {
		if d.Out != nil && d.decodes(port) {
			d.Out(port, data)
		}
	}
	return nil
}
