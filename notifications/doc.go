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

// Package notifications is the publish-subscribe mechanism used by the
// emulated hardware. Chips communicate state changes to one another without
// holding references to one another.
//
// A chip that changes externally visible state calls Notify() on its
// Notifier. Every Observer attached to the Notifier has its ProcessEvent()
// function called synchronously, in the order in which the observers were
// attached.
//
// Events carry an explicit Source. An observer decides whether an event is of
// interest by looking at the Source and ID fields of the event and never by
// inspecting the type of the notifier. Observers must not call back into the
// mutating functions of the notifying chip from inside ProcessEvent().
package notifications
