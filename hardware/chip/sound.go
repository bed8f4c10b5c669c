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

package chip

// SoundMemory is the sample buffer of a sound chip. It is a ring buffer of
// mono samples. When the buffer is full the oldest sample is overwritten.
// The chip notifies notifications.EventSoundReady when samples have been
// written.
type SoundMemory struct {
	SampleRate int

	buffer []int16
	read   int
	count  int

	// the number of samples lost because the buffer was full
	Overwritten int
}

// NewSoundMemory is the preferred method of initialisation for the
// SoundMemory type. The size is the number of samples the buffer can hold.
func NewSoundMemory(size int, sampleRate int) *SoundMemory {
	if size <= 0 {
		size = 1
	}
	return &SoundMemory{
		SampleRate: sampleRate,
		buffer:     make([]int16, size),
	}
}

// Len returns the number of samples waiting to be read.
func (snd *SoundMemory) Len() int {
	return snd.count
}

// Cap returns the size of the buffer.
func (snd *SoundMemory) Cap() int {
	return len(snd.buffer)
}

// Write a sample to the buffer.
func (snd *SoundMemory) Write(s int16) {
	idx := (snd.read + snd.count) % len(snd.buffer)
	snd.buffer[idx] = s
	if snd.count == len(snd.buffer) {
		snd.read = (snd.read + 1) % len(snd.buffer)
		snd.Overwritten++
	} else {
		snd.count++
	}
}

// Read samples into p. Returns the number of samples read.
func (snd *SoundMemory) Read(p []int16) int {
	n := min(len(p), snd.count)
	for i := 0; i < n; i++ {
		p[i] = snd.buffer[snd.read]
		snd.read = (snd.read + 1) % len(snd.buffer)
	}
	snd.count -= n
	return n
}

// Reset empties the buffer.
func (snd *SoundMemory) Reset() {
	snd.read = 0
	snd.count = 0
	snd.Overwritten = 0
}
