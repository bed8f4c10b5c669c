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

// Package sid implements the register contract of the MOS 6581 SID sound
// chip and a simple synthesis of its three voices. The synthesis is not
// accurate. There are no filters and the envelope generators are linear.
//
// Samples are written to the SoundMemory at the sample rate and a
// notifications.EventSoundReady event is raised when the SoundMemory holds
// more than a frame's worth of samples.
package sid

import (
	"fmt"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/hardware/memory"
	"github.com/emu8/emu8/notifications"
)

// List of SID registers with behaviour beyond storing a value. The voice
// registers are at offsets of 7 bytes for each voice.
const (
	FRELO  = 0x00
	FREHI  = 0x01
	PWLO   = 0x02
	PWHI   = 0x03
	CR     = 0x04
	AD     = 0x05
	SR     = 0x06
	VOLUME = 0x18
	POTX   = 0x19
	POTY   = 0x1a
	OSC3   = 0x1b
	ENV3   = 0x1c

	voiceSize = 7

	// the size of the register window
	NumRegisters = 0x20
)

// Bits of the voice control register.
const (
	ctrlGate     = 0x01
	ctrlSync     = 0x02
	ctrlRing     = 0x04
	ctrlTest     = 0x08
	ctrlTriangle = 0x10
	ctrlSawtooth = 0x20
	ctrlPulse    = 0x40
	ctrlNoise    = 0x80
)

// the number of samples in the SoundMemory
const bufferSize = 8192

// SID is the sound chip.
type SID struct {
	id    int
	label string

	regs   *memory.ChipRegisters
	regsID memory.SubsetID

	notifier notifications.Notifier
	elapsed  chip.Elapsed

	Sound *chip.SoundMemory

	voices [3]voice

	// the value of the last write to any register. write-only registers
	// read back this value
	bus uint8

	// the number of CPU cycles in one sample and the cycles accumulated
	// towards the next sample
	cyclesPerSample float64
	acc             float64

	// samples written since the last EventSoundReady
	pending int
}

// NewSID is the preferred method of initialisation for the SID type. The
// registers are created in the memory and mirrored over the extent from
// origin. The caller adds the registers to the CPU view.
func NewSID(mem *memory.Memory, id int, origin uint16, extent int, clock float64, sampleRate int) (*SID, error) {
	sid := &SID{
		id:              id,
		label:           "SID",
		Sound:           chip.NewSoundMemory(bufferSize, sampleRate),
		cyclesPerSample: clocks.CyclesPerSample(clock, sampleRate),
	}

	storage := mem.AddStorage("sid", memory.RAM, NumRegisters)

	var err error
	sid.regs, err = memory.NewChipRegisters("sid", storage, 0, NumRegisters, origin, extent)
	if err != nil {
		return nil, err
	}
	sid.regs.OnWrite = sid.write
	sid.regs.OnRead = sid.read

	sid.regsID, err = mem.AddSubset(sid.regs)
	if err != nil {
		return nil, err
	}

	return sid, nil
}

func (sid *SID) String() string {
	return fmt.Sprintf("%s: vol=%d %s | %s | %s", sid.label, sid.volume(),
		&sid.voices[0], &sid.voices[1], &sid.voices[2])
}

// ID implements the chip.Simulatable interface.
func (sid *SID) ID() int {
	return sid.id
}

// Label implements the chip.Simulatable interface.
func (sid *SID) Label() string {
	return sid.label
}

// Registers implements the chip.MemoryMapped interface.
func (sid *SID) Registers() memory.SubsetID {
	return sid.regsID
}

// Notifier implements the chip.EventSource interface.
func (sid *SID) Notifier() *notifications.Notifier {
	return &sid.notifier
}

// Initialise implements the chip.Simulatable interface.
func (sid *SID) Initialise() error {
	for i := 0; i < NumRegisters; i++ {
		sid.regs.SetRegister(i, 0)
	}
	for i := range sid.voices {
		sid.voices[i] = voice{}
		sid.voices[i].reset()
	}
	sid.bus = 0
	sid.acc = 0
	sid.pending = 0
	sid.elapsed = chip.Elapsed{}
	sid.Sound.Reset()
	return nil
}

// Voice returns the register values of the voice as a string.
func (sid *SID) Voice(n int) string {
	return sid.voices[n%3].String()
}

func (sid *SID) volume() int {
	return int(sid.regs.Register(VOLUME) & 0x0f)
}

func (sid *SID) read(pos int, _ uint8) uint8 {
	switch pos {
	case POTX, POTY:
		// no paddles connected
		return 0xff
	case OSC3:
		return uint8(sid.voices[2].output() >> 4)
	case ENV3:
		return uint8(sid.voices[2].env.level)
	}
	return sid.bus
}

func (sid *SID) write(pos int, v uint8) {
	sid.bus = v

	if pos < 3*voiceSize {
		vc := &sid.voices[pos/voiceSize]
		switch pos % voiceSize {
		case FRELO:
			vc.freq = vc.freq&0xff00 | uint32(v)
		case FREHI:
			vc.freq = vc.freq&0x00ff | uint32(v)<<8
		case PWLO:
			vc.pw = vc.pw&0x0f00 | uint32(v)
		case PWHI:
			vc.pw = vc.pw&0x00ff | uint32(v&0x0f)<<8
		case CR:
			vc.control(v)
		case AD:
			vc.env.attack = int(v >> 4)
			vc.env.decay = int(v & 0x0f)
		case SR:
			vc.env.sustain = int(v>>4) * 0x11
			vc.env.release = int(v & 0x0f)
		}
	}
}

// Simulate implements the chip.Simulatable interface.
func (sid *SID) Simulate(c chip.Clock) error {
	sid.acc += float64(sid.elapsed.Update(c))

	for sid.acc >= sid.cyclesPerSample {
		sid.acc -= sid.cyclesPerSample
		sid.Sound.Write(sid.sample(sid.cyclesPerSample))
		sid.pending++
	}

	// one notification for every 50th of a second of sound
	if sid.pending >= sid.Sound.SampleRate/50 {
		sid.pending = 0
		sid.notifier.Notify(notifications.Event{
			Source: notifications.SourceSound,
			ID:     notifications.EventSoundReady,
			Data:   sid.Sound.Len(),
		})
	}

	return nil
}

// advance the voices by the number of cycles and mix their output
func (sid *SID) sample(cycles float64) int16 {
	for i := range sid.voices {
		sid.voices[i].clock(cycles)
	}

	// voice 3 can be disconnected from the output
	voices := 3
	if sid.regs.Register(VOLUME)&0x80 == 0x80 {
		voices = 2
	}

	var mix int
	for i := 0; i < voices; i++ {
		mix += sid.voices[i].amplitude()
	}

	// each voice is a signed 12 bit value scaled by an 8 bit envelope
	mix = mix * sid.volume() >> 10

	return int16(max(min(mix, 32767), -32768))
}
