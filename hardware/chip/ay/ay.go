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

// Package ay implements the General Instrument AY-3-8912 programmable sound
// generator: three square wave tone channels, a noise generator, the
// envelope generator and the mixer. The chip is not memory mapped. It is
// accessed through an address latch and a data port, which the machine
// connects to its I/O ports.
//
// Samples are written to the SoundMemory at the sample rate and a
// notifications.EventSoundReady event is raised when the SoundMemory holds
// more than a frame's worth of samples.
package ay

import (
	"fmt"

	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/notifications"
)

// List of AY registers.
const (
	TONEALO  = 0x00
	TONEAHI  = 0x01
	TONEBLO  = 0x02
	TONEBHI  = 0x03
	TONECLO  = 0x04
	TONECHI  = 0x05
	NOISE    = 0x06
	MIXER    = 0x07
	AMPA     = 0x08
	AMPB     = 0x09
	AMPC     = 0x0a
	ENVLO    = 0x0b
	ENVHI    = 0x0c
	ENVSHAPE = 0x0d
	PORTA    = 0x0e
	PORTB    = 0x0f

	NumRegisters = 0x10
)

// the bits of each register that are implemented. unimplemented bits read
// as zero
var masks = [NumRegisters]uint8{
	0xff, 0x0f, 0xff, 0x0f, 0xff, 0x0f, 0x1f, 0xff,
	0x1f, 0x1f, 0x1f, 0xff, 0xff, 0x0f, 0xff, 0xff,
}

// output levels of the logarithmic DAC
var levels = [16]int{0, 85, 120, 178, 256, 373, 532, 831, 990, 1589, 2242, 2774, 3774, 4759, 6294, 8000}

// the amplitude register selects the envelope with bit 4
const ampEnvelope = 0x10

// the number of samples in the SoundMemory
const bufferSize = 8192

// AY is the sound chip.
type AY struct {
	id    int
	label string

	regs     [NumRegisters]uint8
	selected int

	notifier notifications.Notifier
	elapsed  chip.Elapsed

	Sound *chip.SoundMemory

	tones    [3]tone
	noise    noise
	envelope envelope

	// the number of tone counter steps in one sample
	stepsPerSample float64

	// the number of CPU cycles in one sample and the cycles accumulated
	// towards the next sample
	cyclesPerSample float64
	acc             float64

	// samples written since the last EventSoundReady
	pending int
}

// NewAY is the preferred method of initialisation for the AY type. The clock
// is the speed of the CPU in MHz and prescale is the number of CPU cycles in
// one cycle of the AY clock.
func NewAY(id int, clock float64, prescale int, sampleRate int) *AY {
	cps := clocks.CyclesPerSample(clock, sampleRate)
	return &AY{
		id:              id,
		label:           "AY-3-8912",
		Sound:           chip.NewSoundMemory(bufferSize, sampleRate),
		cyclesPerSample: cps,

		// the tone counters are clocked every 16 cycles of the AY clock
		stepsPerSample: cps / float64(prescale*16),
	}
}

func (ay *AY) String() string {
	return fmt.Sprintf("%s: sel=%d mixer=%02x amp=%02x,%02x,%02x env=%d",
		ay.label, ay.selected, ay.regs[MIXER], ay.regs[AMPA], ay.regs[AMPB], ay.regs[AMPC], ay.envelope.level())
}

// ID implements the chip.Simulatable interface.
func (ay *AY) ID() int {
	return ay.id
}

// Label implements the chip.Simulatable interface.
func (ay *AY) Label() string {
	return ay.label
}

// Notifier implements the chip.EventSource interface.
func (ay *AY) Notifier() *notifications.Notifier {
	return &ay.notifier
}

// Initialise implements the chip.Simulatable interface.
func (ay *AY) Initialise() error {
	ay.regs = [NumRegisters]uint8{}
	ay.selected = 0
	ay.tones = [3]tone{}
	ay.noise = noise{lfsr: 1}
	ay.envelope = envelope{}
	ay.elapsed = chip.Elapsed{}
	ay.acc = 0
	ay.pending = 0
	ay.Sound.Reset()
	return nil
}

// SelectRegister latches the register used by subsequent reads and writes.
// Values with any of the upper four bits set deselect the chip.
func (ay *AY) SelectRegister(v uint8) {
	if v&0xf0 != 0 {
		ay.selected = -1
		return
	}
	ay.selected = int(v)
}

// Selected returns the selected register or -1 if the chip is deselected.
func (ay *AY) Selected() int {
	return ay.selected
}

// ReadRegister returns the value of the selected register.
func (ay *AY) ReadRegister() uint8 {
	if ay.selected < 0 {
		return 0xff
	}

	// the I/O ports read $ff when they are set to input
	switch ay.selected {
	case PORTA:
		if ay.regs[MIXER]&0x40 == 0 {
			return 0xff
		}
	case PORTB:
		if ay.regs[MIXER]&0x80 == 0 {
			return 0xff
		}
	}

	return ay.regs[ay.selected]
}

// WriteRegister writes the value to the selected register.
func (ay *AY) WriteRegister(v uint8) {
	if ay.selected < 0 {
		return
	}
	ay.regs[ay.selected] = v & masks[ay.selected]

	// writing the shape restarts the envelope
	if ay.selected == ENVSHAPE {
		ay.envelope.restart(ay.regs[ENVSHAPE])
	}
}

// Register returns the value of the register without side effects.
func (ay *AY) Register(n int) uint8 {
	return ay.regs[n%NumRegisters]
}

// Simulate implements the chip.Simulatable interface.
func (ay *AY) Simulate(c chip.Clock) error {
	ay.acc += float64(ay.elapsed.Update(c))

	for ay.acc >= ay.cyclesPerSample {
		ay.acc -= ay.cyclesPerSample
		ay.Sound.Write(ay.sample())
		ay.pending++
	}

	if ay.pending >= ay.Sound.SampleRate/50 {
		ay.pending = 0
		ay.notifier.Notify(notifications.Event{
			Source: notifications.SourceSound,
			ID:     notifications.EventSoundReady,
			Data:   ay.Sound.Len(),
		})
	}

	return nil
}

func (ay *AY) period(ch int) int {
	return int(ay.regs[ch*2+1])<<8 | int(ay.regs[ch*2])
}

// advance the generators by one sample and mix the channels
func (ay *AY) sample() int16 {
	for ch := range ay.tones {
		ay.tones[ch].clock(ay.stepsPerSample, ay.period(ch))
	}
	ay.noise.clock(ay.stepsPerSample, int(ay.regs[NOISE]))
	ay.envelope.clock(ay.stepsPerSample, int(ay.regs[ENVHI])<<8|int(ay.regs[ENVLO]), ay.regs[ENVSHAPE])

	mixer := ay.regs[MIXER]

	var mix int
	for ch := range ay.tones {
		// a disabled generator holds its input to the channel high
		on := (ay.tones[ch].out || mixer&(0x01<<ch) != 0) &&
			(ay.noise.out() || mixer&(0x08<<ch) != 0)
		if !on {
			continue
		}

		amp := ay.regs[AMPA+ch]
		if amp&ampEnvelope == ampEnvelope {
			mix += levels[ay.envelope.level()]
		} else {
			mix += levels[amp&0x0f]
		}
	}

	return int16(mix)
}
