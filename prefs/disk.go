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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/emu8/emu8/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is inserted at the beginning of a preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// NoPrefsFile is returned by Disk.Load() when the preferences file does not
// exist.
const NoPrefsFile = "prefs: no prefs file (%s)"

// separator between key and value in the preferences file.
const separator = " :: "

// Disk represents preference values as stored on disk. A Disk with an empty
// path is never saved or loaded from a file but is still subject to values
// from the command line.
type Disk struct {
	path    string
	entries map[string]pref

	commandLine *CommandLineStack
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// command line stack can be nil.
func NewDisk(path string, commandLine *CommandLineStack) (*Disk, error) {
	return &Disk{
		path:        path,
		entries:     make(map[string]pref),
		commandLine: commandLine,
	}, nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add preference value to list of values to store/load.
func (dsk *Disk) Add(key string, p pref) error {
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already added (%s)", key)
	}
	if strings.Contains(key, "::") || strings.Contains(key, ";") {
		return fmt.Errorf("prefs: illegal characters in key (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// Set the value of the preference registered with key.
func (dsk *Disk) Set(key string, v Value) error {
	p, ok := dsk.entries[key]
	if !ok {
		return fmt.Errorf("prefs: unknown key (%s)", key)
	}
	return p.Set(v)
}

// Get the value of the preference registered with key.
func (dsk *Disk) Get(key string) (Value, bool) {
	p, ok := dsk.entries[key]
	if !ok {
		return nil, false
	}
	return p.Get(), true
}

// Reset all preference values to their defaults.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Save current preference values to disk. Entries in the existing file that
// are not registered with this Disk instance are preserved.
func (dsk *Disk) Save() error {
	if dsk.path == "" {
		return nil
	}

	existing := make(map[string]string)
	err := dsk.read(func(k string, v string) error {
		existing[k] = v
		return nil
	})
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for k, p := range dsk.entries {
		existing[k] = p.String()
	}

	keys := make([]string, 0, len(existing))
	for k := range existing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, existing[k])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. Values in the top group of the command
// line stack are applied afterwards, regardless of whether the file exists.
//
// The function returns a NoPrefsFile error if the file does not exist. Other
// values will still have been set from the command line.
func (dsk *Disk) Load() error {
	var loadErr error

	if dsk.path != "" {
		loadErr = dsk.read(func(k string, v string) error {
			if p, ok := dsk.entries[k]; ok {
				return p.Set(v)
			}
			return nil
		})
		if loadErr != nil && !curated.Is(loadErr, NoPrefsFile) {
			return loadErr
		}
	}

	for _, k := range dsk.keys() {
		if ok, v := dsk.commandLine.Get(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return err
			}
		}
	}

	return loadErr
}

func (dsk *Disk) read(f func(k string, v string) error) error {
	fd, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return curated.Errorf(NoPrefsFile, dsk.path)
		}
		return fmt.Errorf("prefs: %w", err)
	}
	defer fd.Close()

	return parse(fd, f)
}

func parse(r io.Reader, f func(k string, v string) error) error {
	scanner := bufio.NewScanner(r)

	// the first line of a valid prefs file is the boiler plate
	if !scanner.Scan() {
		return scanner.Err()
	}
	if scanner.Text() != WarningBoilerPlate {
		return fmt.Errorf("prefs: not a valid prefs file")
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) != 2 {
			continue
		}
		if err := f(strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])); err != nil {
			return err
		}
	}

	return scanner.Err()
}
