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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/emu8/emu8/curated"
	"github.com/emu8/emu8/environment"
	"github.com/emu8/emu8/hardware/filedata"
	"github.com/emu8/emu8/hardware/govern"
	"github.com/emu8/emu8/hardware/memory/memgraph"
	"github.com/emu8/emu8/hardware/preferences"
	"github.com/emu8/emu8/machines"
	"github.com/emu8/emu8/modalflag"
	"github.com/emu8/emu8/prefs"
	"github.com/emu8/emu8/statsview"
	"github.com/emu8/emu8/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative handler is
	// more appropriate. for example, the run mode stops the emulation
	// cleanly so that the wav file can be completed.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function
type mainSync struct {
	state chan stateRequest
}

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// ctrl-c default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "CONSOLE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "CONSOLE":
		err = console(md, sync)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to the RUN and CONSOLE modes
type machineFlags struct {
	machine *string
	roms    *modalflag.StringList
	load    *string
	prefs   *string
	log     *bool
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	return &machineFlags{
		machine: md.AddString("machine", "c64", fmt.Sprintf("machine to emulate: %s", strings.Join(machines.Names(), ", "))),
		roms:    md.AddStringList("rom", "ROM image to load as name=path. can be repeated"),
		load:    md.AddString("load", "", "file to load as path@address. the address is hex. without an address the file is a PRG"),
		prefs:   md.AddString("prefs", "", "preferences as \"key::value; key::value\""),
		log:     md.AddBool("log", false, "echo the emulation log to stdout"),
	}
}

// create the machine described by the flags. the machine has been initialised
// and any file to load has been connected to the loader
func (f *machineFlags) create() (*machines.Machine, error) {
	cl := prefs.NewCommandLineStack()
	if *f.prefs != "" {
		cl.Push(*f.prefs)
	}

	p, err := preferences.NewPreferences("", cl)
	if err != nil {
		return nil, err
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	if err != nil {
		return nil, err
	}

	if *f.log {
		env.Log.SetEcho(os.Stdout, false)
	} else {
		env.Log.SetEcho(nil, false)
	}

	m, err := machines.Create(env, *f.machine)
	if err != nil {
		return nil, err
	}

	for _, r := range *f.roms {
		name, path, err := parseROM(r)
		if err != nil {
			return nil, err
		}
		image, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("rom %s: %w", name, err)
		}
		if err := m.LoadROM(name, image); err != nil {
			return nil, err
		}
	}

	if len(*f.roms) == 0 {
		var names []string
		for _, r := range m.ROMs {
			names = append(names, r.Name)
		}
		env.Logf("emu8", "no ROMs loaded. %s expects %s", m.Name, strings.Join(names, ", "))
	}

	if err := m.Initialise(); err != nil {
		return nil, err
	}

	if *f.load != "" {
		path, address, err := parseLoad(*f.load)
		if err != nil {
			return nil, err
		}
		data, err := filedata.Load(path, address)
		if err != nil {
			return nil, err
		}
		if err := m.Loader.ConnectData(data); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// parseROM splits a rom flag of the form name=path
func parseROM(s string) (string, string, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok || name == "" || path == "" {
		return "", "", curated.Errorf("rom flag: %s is not of the form name=path", s)
	}
	return strings.ToLower(name), path, nil
}

// parseLoad splits a load flag of the form path@address. the address is -1 if
// it is not present
func parseLoad(s string) (string, int, error) {
	i := strings.LastIndex(s, "@")
	if i == -1 {
		return s, -1, nil
	}

	a := strings.TrimPrefix(strings.ToLower(s[i+1:]), "$")
	a = strings.TrimPrefix(a, "0x")
	address, err := strconv.ParseUint(a, 16, 16)
	if err != nil {
		return "", 0, curated.Errorf("load flag: %s has an invalid address", s)
	}

	return s[:i], int(address), nil
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	mf := addMachineFlags(md)
	cycles := md.AddUint64("cycles", 0, "number of CPU cycles to run for. zero runs until interrupted")
	wav := md.AddString("wav", "", "record audio to wav file")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.DefaultAddress))
	graph := md.AddString("memgraph", "", "write graph of the memory arena to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	m, err := mf.create()
	if err != nil {
		return err
	}

	if *graph != "" {
		f, err := os.Create(*graph)
		if err != nil {
			return err
		}
		memgraph.Write(f, m.Mem())
		if err := f.Close(); err != nil {
			return err
		}
	}

	if *stats {
		statsview.Launch(os.Stdout, statsview.DefaultAddress)
	}

	var aw *wavwriter.WavWriter
	if *wav != "" {
		aw, err = wavwriter.New(m.Env(), *wav, m.Sounds...)
		if err != nil {
			return err
		}
		m.AddDevice(aw)
		if err := aw.Initialise(); err != nil {
			return err
		}
	}

	// the run loop is ended cleanly on ctrl-c
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	continueCheck := func() (govern.State, error) {
		select {
		case <-intChan:
			return govern.Ending, nil
		default:
		}
		return govern.Running, nil
	}

	var halt govern.Halt
	if *cycles > 0 {
		halt, err = m.RunForCycles(*cycles, continueCheck)
	} else {
		halt, err = m.Run(continueCheck)
	}

	fmt.Printf("%s: %s after %d cycles\n", m.Name, halt, m.ClockCycles())

	if aw != nil {
		if cerr := aw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}
