package stage

import (
	"errors"
	"fmt"
)

// ErrUnknownEvent is returned for an event the stage cannot route.
var ErrUnknownEvent = errors.New("stage: unknown event")

// Target names the component receiving an event.
type Target string

const (
	TargetLetter Target = "letter"
	TargetPage   Target = "page"
)

// Kind is the interaction that happened.
type Kind string

const (
	KindClick   Kind = "click"
	KindEnter   Kind = "enter"
	KindLeave   Kind = "leave"
	KindUnmount Kind = "unmount"
	KindMount   Kind = "mount"
	KindReset   Kind = "reset"
)

// Event is one discrete user or lifecycle input.
type Event struct {
	Target Target
	Kind   Kind
}

func (e Event) String() string {
	return string(e.Target) + ":" + string(e.Kind)
}

var accepted = map[Target]map[Kind]bool{
	TargetLetter: {KindClick: true},
	TargetPage: {
		KindClick: true, KindEnter: true, KindLeave: true,
		KindUnmount: true, KindMount: true, KindReset: true,
	},
}

// Validate reports whether the target accepts the kind.
func (e Event) Validate() error {
	kinds, ok := accepted[e.Target]
	if !ok {
		return fmt.Errorf("%w: target %q", ErrUnknownEvent, e.Target)
	}
	if !kinds[e.Kind] {
		return fmt.Errorf("%w: %s does not accept %q", ErrUnknownEvent, e.Target, e.Kind)
	}
	return nil
}

// ParseEvent builds a validated event from its names.
func ParseEvent(target, kind string) (Event, error) {
	ev := Event{Target: Target(target), Kind: Kind(kind)}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}
