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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/emu8/emu8/commands"
	"github.com/emu8/emu8/hardware/govern"
	"github.com/emu8/emu8/machines"
	"github.com/emu8/emu8/modalflag"
	"golang.org/x/term"
)

const consolePrompt = "> "

// console keywords handled locally rather than by the command executer
const (
	consoleQuit = "QUIT"
	consoleHelp = "HELP"
	consoleStep = "STEP"
	consoleRun  = "RUN"
)

func console(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	mf := addMachineFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := mf.create()
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return consoleLoop(m, os.Stdin, os.Stdout, interactive)
}

// consoleLoop reads commands line by line until input is exhausted or the
// quit command is received. when the input is interactive a prompt is printed
// before every line. otherwise the line is echoed so that the output reads
// as a transcript.
func consoleLoop(m *machines.Machine, input io.Reader, output io.Writer, interactive bool) error {
	ex := commands.NewExecuter(m.Computer)
	scanner := bufio.NewScanner(input)

	for {
		if interactive {
			fmt.Fprint(output, consolePrompt)
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !interactive {
			fmt.Fprintf(output, "%s%s\n", consolePrompt, line)
		}

		word, arg, _ := strings.Cut(line, " ")
		switch strings.ToUpper(word) {
		case consoleQuit:
			return nil

		case consoleHelp:
			consoleUsage(output)

		case consoleStep:
			n, err := consoleCount(arg, 1)
			if err != nil {
				fmt.Fprintln(output, commands.ErrorResponse(err))
				continue
			}
			for i := 0; i < n; i++ {
				if err := m.Step(); err != nil {
					fmt.Fprintln(output, commands.ErrorResponse(err))
					break
				}
			}

		case consoleRun:
			n, err := consoleCount(arg, 0)
			if err != nil {
				fmt.Fprintln(output, commands.ErrorResponse(err))
				continue
			}
			if n == 0 {
				fmt.Fprintln(output, commands.ErrorResponse(fmt.Errorf("RUN requires a number of cycles")))
				continue
			}
			halt, err := m.RunForCycles(uint64(n), func() (govern.State, error) {
				return govern.Running, nil
			})
			if err != nil {
				fmt.Fprintln(output, commands.ErrorResponse(err))
				continue
			}
			fmt.Fprintf(output, "%s at cycle %d\n", halt, m.ClockCycles())

		default:
			cmd, err := commands.ParseLine(line)
			if err != nil {
				fmt.Fprintln(output, commands.ErrorResponse(err))
				continue
			}
			resp, err := ex.Execute(cmd)
			if err != nil {
				fmt.Fprintln(output, commands.ErrorResponse(err))
				continue
			}
			fmt.Fprintln(output, resp)
		}
	}
}

func consoleCount(arg string, def int) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return def, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s is not a valid count", arg)
	}
	return n, nil
}

func consoleUsage(output io.Writer) {
	var kw []string
	for k := range commands.Keywords {
		kw = append(kw, k)
	}
	sort.Strings(kw)

	for _, k := range kw {
		fmt.Fprintf(output, "%-8s %s\n", k, commands.Help[commands.Keywords[k]])
	}
	fmt.Fprintf(output, "%-8s %s\n", consoleStep, "Step the computer. COUNT (decimal, default 1)")
	fmt.Fprintf(output, "%-8s %s\n", consoleRun, "Run the computer for CYCLES (decimal)")
	fmt.Fprintf(output, "%-8s %s\n", consoleQuit, "End the console")
}
