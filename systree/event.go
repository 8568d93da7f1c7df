package systree

import (
	"sync"
	"weak"

	"github.com/sirupsen/logrus"
)

// Action identifies what kind of change an Event describes.
type Action int

const (
	// ActionAdd reports a new node added to the tree.
	ActionAdd Action = iota
	// ActionRemove reports a node removed from the tree.
	ActionRemove
	// ActionChange reports a node's state changing in place.
	ActionChange
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionChange:
		return "change"
	default:
		return "unknown"
	}
}

// KV is a single key/value detail attached to an Event.
type KV struct {
	Key   string
	Value string
}

// Event describes a single change observed in a SysTree.
type Event struct {
	Action  Action
	Path    string
	Details []KV
}

// Selector filters which events an observer receives.
type Selector interface {
	Admits(Event) bool
}

type allSelector struct{}

func (allSelector) Admits(Event) bool { return true }

// SelectorAll admits every event.
var SelectorAll Selector = allSelector{}

type actionSelector struct{ action Action }

func (s actionSelector) Admits(e Event) bool { return e.Action == s.action }

// SelectorAction admits only events whose Action equals a.
func SelectorAction(a Action) Selector { return actionSelector{action: a} }

// Observer receives events from an EventHub it has registered with.
type Observer interface {
	OnSysEvent(Event)
}

type observerEntry struct {
	resolve func() Observer
	sel     Selector
}

// EventHub is a publish/subscribe dispatcher for SysEvents, scoped to
// a Tree. Observers are held weakly: an EventHub never keeps an
// observer alive on its own. It is the Go analogue of the Rust
// source's `SysEventHub`.
type EventHub struct {
	log logrus.FieldLogger

	mu        sync.Mutex
	observers []observerEntry
}

// NewEventHub constructs an empty hub. log may be nil to disable
// logging.
func NewEventHub(log logrus.FieldLogger) *EventHub {
	return &EventHub{log: log}
}

// Register adds an observer, held weakly, that will receive events
// admitted by sel. Registering the same observer identity twice is a
// no-op (whichever selector was registered first wins), matching the
// Rust source's idempotent register_observer.
//
// U is the concrete type behind the observer; callers normally don't
// name it explicitly; Go infers it from obs.
func Register[U any, PU interface {
	*U
	Observer
}](hub *EventHub, obs PU, sel Selector) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	target := Observer(obs)
	for _, e := range hub.observers {
		if o := e.resolve(); o != nil && o == target {
			return
		}
	}

	wp := weak.Make(obs)
	hub.observers = append(hub.observers, observerEntry{
		resolve: func() Observer {
			p := wp.Value()
			if p == nil {
				return nil
			}
			return Observer(p)
		},
		sel: sel,
	})
}

// Unregister removes the given observer identity, if present, and
// returns it. It returns (nil, false) if the observer was never
// registered (or has already decayed), matching the Rust source's
// adopted semantics noted in spec.md §9's open questions.
func Unregister[U any, PU interface {
	*U
	Observer
}](hub *EventHub, obs PU) (Observer, bool) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	target := Observer(obs)
	for i, e := range hub.observers {
		if o := e.resolve(); o != nil && o == target {
			hub.observers = append(hub.observers[:i], hub.observers[i+1:]...)
			return o, true
		}
	}
	return nil, false
}

// Publish broadcasts an event to every live, admitting observer. If
// obj has no path (not yet attached to a tree), the event is silently
// dropped, per spec.md §4.3's best-effort contract. Decayed observers
// encountered along the way are pruned from the registry.
func (hub *EventHub) Publish(obj Object, action Action, details []KV) {
	path, ok := obj.Path()
	if !ok {
		return
	}
	ev := Event{Action: action, Path: path, Details: details}

	hub.mu.Lock()
	live := hub.observers[:0:0]
	var targets []Observer
	for _, e := range hub.observers {
		o := e.resolve()
		if o == nil {
			continue
		}
		live = append(live, e)
		if e.sel.Admits(ev) {
			targets = append(targets, o)
		}
	}
	pruned := len(hub.observers) - len(live)
	hub.observers = live
	hub.mu.Unlock()

	if hub.log != nil {
		entry := hub.log.WithFields(logrus.Fields{
			"action":    action.String(),
			"path":      ev.Path,
			"observers": len(targets),
		})
		if pruned > 0 {
			entry = entry.WithField("pruned", pruned)
			entry.Debug("systree: event published, pruned decayed observers")
		} else {
			entry.Debug("systree: event published")
		}
	}

	for _, o := range targets {
		o.OnSysEvent(ev)
	}
}
