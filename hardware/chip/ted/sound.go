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

package ted

import (
	"github.com/emu8/emu8/hardware/clocks"
	"github.com/emu8/emu8/notifications"
)

// bits of the SOUND register
const (
	soundVolume = 0x0f
	soundVoice1 = 0x10
	soundVoice2 = 0x20
	soundNoise  = 0x40
	soundDA     = 0x80
)

// the amplitude of one voice at volume one
const amplitude = 1024

type voice struct {
	// the 10 bit frequency register
	reg int

	phase float64
}

// the frequency of the voice in Hz
func (v *voice) frequency(soundClock float64) float64 {
	return soundClock / float64(1024-v.reg)
}

// advance the phase of the voice by a period of time in seconds. returns the
// number of completed cycles
func (v *voice) advance(soundClock float64, t float64) int {
	v.phase += v.frequency(soundClock) * t
	n := int(v.phase)
	v.phase -= float64(n)
	return n
}

func (v *voice) high() bool {
	return v.phase < 0.5
}

func (ted *TED) sound(cycles float64) {
	cyclesPerSample := clocks.CyclesPerSample(ted.spec.Clock, SampleRate)
	ted.soundAcc += cycles

	for ted.soundAcc >= cyclesPerSample {
		ted.soundAcc -= cyclesPerSample
		ted.Sound.Write(ted.sample())
		ted.soundPending++
	}

	if ted.soundPending >= SampleRate/50 {
		ted.soundPending = 0
		ted.notifier.Notify(notifications.Event{
			Source: notifications.SourceSound,
			ID:     notifications.EventSoundReady,
			Data:   ted.Sound.Len(),
		})
	}
}

func (ted *TED) sample() int16 {
	ctrl := ted.regs.Register(SOUND)
	t := 1.0 / float64(SampleRate)

	ted.voices[0].advance(ted.soundClock, t)
	for n := ted.voices[1].advance(ted.soundClock, t); n > 0; n-- {
		// 8 bit noise register clocked by voice 2
		bit := (ted.noise>>7 ^ ted.noise>>5 ^ ted.noise>>4 ^ ted.noise>>3) & 0x01
		ted.noise = ted.noise<<1 | bit
	}

	vol := min(int(ctrl&soundVolume), 8)

	level := func(high bool) int {
		if high || ctrl&soundDA == soundDA {
			return vol * amplitude
		}
		return -vol * amplitude
	}

	var mix int
	if ctrl&soundVoice1 == soundVoice1 {
		mix += level(ted.voices[0].high())
	}
	if ctrl&soundVoice2 == soundVoice2 {
		mix += level(ted.voices[1].high())
	} else if ctrl&soundNoise == soundNoise {
		mix += level(ted.noise&0x01 == 0x01)
	}

	return int16(mix)
}
