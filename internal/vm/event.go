package vm

import "fmt"

// event.go implements the plugin/event bus: a typed event stream to
// observers, delivered under a single re-entrancy guard.

// EventKind tags which observable operation an Event describes.
type EventKind uint8

// Event kinds, emitted at the surface points named in the package doc:
// instruction fetch, every memory read/write, every register read/write,
// every read/write of the running flag, and every I/O primitive.
const (
	EventCommand EventKind = iota
	EventCharGet
	EventCharPut
	EventKeyDownGet
	EventMemGet
	EventMemSet
	EventRegGet
	EventRegSet
	EventRunningGet
	EventRunningSet
)

func (k EventKind) String() string {
	names := [...]string{
		"Command", "CharGet", "CharPut", "KeyDownGet",
		"MemGet", "MemSet", "RegGet", "RegSet", "RunningGet", "RunningSet",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a tagged record of one observable operation. Only the fields
// relevant to Kind are meaningful.
type Event struct {
	Kind EventKind

	Bytes Word // Command

	Char rune // CharGet, CharPut

	Bool bool // KeyDownGet, RunningGet, RunningSet

	Addr Word // MemGet, MemSet
	Val  Word // MemGet, MemSet

	Index GPR     // RegGet, RegSet
	Reg   Register // RegGet, RegSet
}

func (e Event) String() string {
	switch e.Kind {
	case EventCommand:
		return fmt.Sprintf("Command: { bytes: %016b, op: %s }", uint16(e.Bytes), Instruction(e.Bytes).Opcode())
	case EventCharGet, EventCharPut:
		return fmt.Sprintf("%s: { char: %q }", e.Kind, e.Char)
	case EventKeyDownGet, EventRunningGet, EventRunningSet:
		return fmt.Sprintf("%s: { value: %t }", e.Kind, e.Bool)
	case EventMemGet, EventMemSet:
		return fmt.Sprintf("%s: { location: %s, value: %s }", e.Kind, e.Addr, e.Val)
	case EventRegGet, EventRegSet:
		return fmt.Sprintf("%s: { index: %s, value: %s }", e.Kind, e.Index, e.Reg)
	default:
		return e.Kind.String()
	}
}

// Plugin observes VM events. A Plugin may call back into the VM during
// HandleEvent; it must not retain the VM pointer past the call, since doing
// so would create an ownership cycle between the VM and its plugins.
type Plugin interface {
	HandleEvent(vm *LC3, ev Event) error
}

// bus holds the ordered list of plugins and the single re-entrancy guard
// described in the package doc: while delivering is true, a newly
// published event is dropped rather than queued, so a plugin's own VM
// access during event handling cannot recursively re-enter delivery.
type bus struct {
	plugins    []Plugin
	delivering bool
}

func (b *bus) add(p Plugin) {
	b.plugins = append(b.plugins, p)
}

// publish delivers ev to every installed plugin, in registration order,
// unless a delivery is already in progress. A plugin failure aborts
// delivery and is reported as a Plugin error.
func (b *bus) publish(vm *LC3, ev Event) error {
	if b.delivering {
		return nil
	}

	b.delivering = true
	defer func() { b.delivering = false }()

	for _, p := range b.plugins {
		if err := p.HandleEvent(vm, ev); err != nil {
			return pluginErrorf(err, "handling %s", ev.Kind)
		}
	}

	return nil
}
