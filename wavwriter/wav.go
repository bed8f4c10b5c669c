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

// Package wavwriter records the output of one or more sound chips to a WAV
// file. Audio data is buffered in memory in its entirety and written to disk
// when the WavWriter is closed. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/chip"
	"github.com/emu8/emu8/hardware/iodevice"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sentinal error patterns.
const (
	NoSources      = "wavwriter: no sound sources"
	MismatchedRate = "wavwriter: sample rates do not match (%d and %d)"
	WriteError     = "wavwriter: %v"
)

// the bit depth of the samples written to the file
const bitDepth = 16

// WavWriter implements the iodevice.IODevice interface. Every refresh it
// drains the samples that are available from all sources, mixes them and
// adds them to the buffer.
type WavWriter struct {
	env      *environment.Environment
	filename string

	sources    []*chip.SoundMemory
	sampleRate int

	buffer  []int
	scratch []int16
}

// New is the preferred method of initialisation for the WavWriter type. All
// sources must have the same sample rate.
func New(env *environment.Environment, filename string, sources ...*chip.SoundMemory) (*WavWriter, error) {
	if len(sources) == 0 {
		return nil, curated.Errorf(NoSources)
	}

	rate := sources[0].SampleRate
	for _, s := range sources[1:] {
		if s.SampleRate != rate {
			return nil, curated.Errorf(MismatchedRate, rate, s.SampleRate)
		}
	}

	return &WavWriter{
		env:        env,
		filename:   filename,
		sources:    sources,
		sampleRate: rate,
	}, nil
}

// Label implements the iodevice.IODevice interface.
func (aw *WavWriter) Label() string {
	return "wavwriter"
}

// Initialise implements the iodevice.IODevice interface. Any audio recorded
// so far is discarded.
func (aw *WavWriter) Initialise() error {
	aw.buffer = aw.buffer[:0]
	for _, s := range aw.sources {
		s.Reset()
	}
	return nil
}

// Refresh implements the iodevice.IODevice interface.
func (aw *WavWriter) Refresh(_ iodevice.Machine) error {
	n := aw.sources[0].Len()
	for _, s := range aw.sources[1:] {
		n = min(n, s.Len())
	}
	if n == 0 {
		return nil
	}

	if cap(aw.scratch) < n {
		aw.scratch = make([]int16, n)
	}
	scratch := aw.scratch[:n]

	start := len(aw.buffer)
	aw.buffer = append(aw.buffer, make([]int, n)...)
	mix := aw.buffer[start:]

	for _, s := range aw.sources {
		s.Read(scratch)
		for i, v := range scratch {
			mix[i] += int(v)
		}
	}

	for i := range mix {
		mix[i] = max(min(mix[i], 32767), -32768)
	}

	return nil
}

// Samples returns the number of samples recorded.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// Close writes the recorded audio to the file.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WriteError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WriteError, err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	aw.env.Logf("wavwriter", "writing %d samples to %s", len(aw.buffer), aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WriteError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(WriteError, err)
	}

	return nil
}
