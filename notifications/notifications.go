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

package notifications

import (
	"fmt"
	"reflect"
)

// Source identifies the kind of hardware that raised an event.
type Source int

// List of event sources.
const (
	SourceUnknown Source = iota
	SourceCPU
	SourceIOPort
	SourcePLA
	SourceBankSwitch
	SourceCIA
	SourceVIA
	SourceVideo
	SourceSound
	SourceKeyboard
	SourceTimer
	SourceCartridge
	SourceIODevice
)

func (s Source) String() string {
	switch s {
	case SourceCPU:
		return "cpu"
	case SourceIOPort:
		return "ioport"
	case SourcePLA:
		return "pla"
	case SourceBankSwitch:
		return "bankswitch"
	case SourceCIA:
		return "cia"
	case SourceVIA:
		return "via"
	case SourceVideo:
		return "video"
	case SourceSound:
		return "sound"
	case SourceKeyboard:
		return "keyboard"
	case SourceTimer:
		return "timer"
	case SourceCartridge:
		return "cartridge"
	case SourceIODevice:
		return "iodevice"
	}
	return "unknown"
}

// EventID identifies the event. The meaning of an EventID depends on the
// Source of the event.
type EventID int

// List of event IDs. Not every source raises every event.
const (
	// a port value has changed. the Data field is the new port value as a
	// uint8
	EventPortChanged EventID = iota

	// the input lines of a bank switching chip have changed. the Data field
	// is specific to the source
	EventLinesChanged

	// the memory configuration has been changed by a bank switching chip
	EventMemoryConfigured

	// an interrupt line has been asserted or released. the Data field is a
	// bool with the new state of the line
	EventIRQ
	EventNMI

	// a timer has reached zero. the Data field is the number of times the
	// timer reached zero during the tick
	EventTimerUnderflow

	// a graphical chip has completed a frame in its ScreenMemory
	EventGraphicsReady

	// a sound chip has samples ready in its SoundMemory
	EventSoundReady

	// the state of the cartridge port has changed
	EventCartridgeChanged
)

func (id EventID) String() string {
	switch id {
	case EventPortChanged:
		return "port changed"
	case EventLinesChanged:
		return "lines changed"
	case EventMemoryConfigured:
		return "memory configured"
	case EventIRQ:
		return "irq"
	case EventNMI:
		return "nmi"
	case EventTimerUnderflow:
		return "timer underflow"
	case EventGraphicsReady:
		return "graphics ready"
	case EventSoundReady:
		return "sound ready"
	case EventCartridgeChanged:
		return "cartridge changed"
	}
	return "unknown event"
}

// Event is an immutable value sent from a Notifier to its Observers.
type Event struct {
	Source Source
	ID     EventID

	// identifies the particular instance of the source when there is more
	// than one of the same kind. for example, the two CIAs in the C64
	Instance int

	// optional payload. the type depends on the Source and ID
	Data any
}

func (ev Event) String() string {
	if ev.Data == nil {
		return fmt.Sprintf("%s%d: %s", ev.Source, ev.Instance, ev.ID)
	}
	return fmt.Sprintf("%s%d: %s (%v)", ev.Source, ev.Instance, ev.ID, ev.Data)
}

// Observer is implemented by anything that wants to receive events.
type Observer interface {
	ProcessEvent(ev Event)
}

// ObserverFunc allows an ordinary function to be used as an Observer.
type ObserverFunc func(ev Event)

// ProcessEvent implements the Observer interface.
func (f ObserverFunc) ProcessEvent(ev Event) {
	f(ev)
}

// Attachment identifies one attachment of an observer to a Notifier. It can be
// used to detach observers that cannot be compared, such as ObserverFunc.
type Attachment int

type attached struct {
	id Attachment
	o  Observer
}

// Notifier keeps a list of non-owning references to observers. The zero value
// is ready to use.
type Notifier struct {
	observers []attached
	nextID    Attachment
}

// Attach an observer. An observer attached more than once will receive each
// event once for every time it has been attached.
func (n *Notifier) Attach(o Observer) Attachment {
	n.nextID++
	n.observers = append(n.observers, attached{id: n.nextID, o: o})
	return n.nextID
}

// Detach the first instance of the observer. Returns false if the observer
// was not attached. Observers with an uncomparable type are never found by
// Detach() and must be detached with Release().
func (n *Notifier) Detach(o Observer) bool {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return false
	}
	for i := range n.observers {
		if !reflect.TypeOf(n.observers[i].o).Comparable() {
			continue
		}
		if n.observers[i].o == o {
			n.remove(i)
			return true
		}
	}
	return false
}

// Release the attachment returned by Attach(). Returns false if the attachment
// is not current.
func (n *Notifier) Release(a Attachment) bool {
	for i := range n.observers {
		if n.observers[i].id == a {
			n.remove(i)
			return true
		}
	}
	return false
}

func (n *Notifier) remove(i int) {
	n.observers = append(n.observers[:i], n.observers[i+1:]...)
}

// Observers returns the number of attached observers.
func (n *Notifier) Observers() int {
	return len(n.observers)
}

// Notify every attached observer of the event, in attachment order.
func (n *Notifier) Notify(ev Event) {
	for _, a := range n.observers {
		a.o.ProcessEvent(ev)
	}
}
