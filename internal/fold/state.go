package fold

import "fmt"

// State is the fold position of the letter.
type State int

const (
	Open State = iota
	Folded
	Closed

	stateCount = 3
)

var stateNames = [stateCount]string{"open", "folded", "closed"}

// States lists every state in cycle order.
func States() []State {
	return []State{Open, Folded, Closed}
}

func (s State) String() string {
	if s < 0 || s >= stateCount {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Next returns the state a click advances to: open → folded → closed → open.
func (s State) Next() State {
	return (s + 1) % stateCount
}

// ParseState is the inverse of String.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Open, fmt.Errorf("fold: unknown state %q", name)
}

// Segment is one third of the letter, stacked top to bottom.
type Segment int

const (
	Top Segment = iota
	Middle
	Bottom

	segmentCount = 3
)

var segmentNames = [segmentCount]string{"top", "middle", "bottom"}

// Segments lists every segment, top first.
func Segments() []Segment {
	return []Segment{Top, Middle, Bottom}
}

func (s Segment) String() string {
	if s < 0 || s >= segmentCount {
		return fmt.Sprintf("Segment(%d)", int(s))
	}
	return segmentNames[s]
}

// Key is the animation element key of the segment.
func (s Segment) Key() string {
	return "letter/" + s.String()
}
