package aedificium

import (
	"errors"
	"fmt"
)

// ErrRoomCount is returned when a graph is constructed with a non-positive
// room count.
var ErrRoomCount = errors.New("aedificium: room count must be positive")

// ErrInvalidLabel is returned when a label falls outside [0, Labels).
var ErrInvalidLabel = errors.New("aedificium: label out of range")

// Aedificium is the hidden labelled-door-regular graph: N rooms, each
// carrying a 2-bit label, wired together by Doors*N/2 connections. The
// derived step table gives the involution (room,port) -> (room,port)
// used by the simulator.
type Aedificium struct {
	Labels      []int       `json:"rooms"`
	Start       int         `json:"startingRoom"`
	Connections []Connection `json:"connections"`

	// step[room*Doors+port] = encoded destination door; built by Build.
	step []int
}

// encodeDoor/decodeDoor pack a Door into/out of a flat step-table index.
func encodeDoor(d Door) int { return d.Room*Doors + d.Port }
func decodeDoor(i int) Door { return Door{Room: i / Doors, Port: i % Doors} }

// New constructs an Aedificium from labels, a starting room, and a
// connection list, building and validating the step table.
func New(labels []int, start int, connections []Connection) (*Aedificium, error) {
	a := &Aedificium{
		Labels:      append([]int(nil), labels...),
		Start:       start,
		Connections: append([]Connection(nil), connections...),
	}
	if err := a.Build(); err != nil {
		return nil, err
	}
	return a, nil
}

// Build (re)computes the step table from Connections and validates every
// invariant: room count positive, labels in range, start room in range,
// every door used exactly once (the table is a total involution), and
// the induced multigraph is connected.
func (a *Aedificium) Build() error {
	n := len(a.Labels)
	if n <= 0 {
		return ErrRoomCount
	}
	for r, l := range a.Labels {
		if l < 0 || l >= Labels {
			return fmt.Errorf("%w: room %d has label %d", ErrInvalidLabel, r, l)
		}
	}
	if a.Start < 0 || a.Start >= n {
		return fmt.Errorf("aedificium: starting room %d out of range [0,%d)", a.Start, n)
	}

	step := make([]int, n*Doors)
	for i := range step {
		step[i] = -1
	}

	for _, c := range a.Connections {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("aedificium: %w", err)
		}
		if c.From.Room < 0 || c.From.Room >= n || c.To.Room < 0 || c.To.Room >= n {
			return fmt.Errorf("aedificium: connection %s references a room outside [0,%d)", c, n)
		}
		fi, ti := encodeDoor(c.From), encodeDoor(c.To)
		if step[fi] != -1 {
			return fmt.Errorf("aedificium: door %s used more than once", c.From)
		}
		if step[ti] != -1 && ti != fi {
			return fmt.Errorf("aedificium: door %s used more than once", c.To)
		}
		step[fi] = ti
		step[ti] = fi
	}

	for i, dst := range step {
		if dst == -1 {
			return fmt.Errorf("aedificium: door %s has no connection", decodeDoor(i))
		}
	}

	if !connected(step, n) {
		return fmt.Errorf("aedificium: induced multigraph is not connected")
	}

	a.step = step
	return nil
}

// N returns the room count.
func (a *Aedificium) N() int { return len(a.Labels) }

// Step returns the door reached by following d, i.e. the involution's
// image of d. Panics if Build has not been called successfully; callers
// that hold an Aedificium returned by New or a successful Build are safe.
func (a *Aedificium) Step(d Door) Door {
	return decodeDoor(a.step[encodeDoor(d)])
}

// Label returns the observable label of room r.
func (a *Aedificium) Label(r int) int { return a.Labels[r] }

// connected reports whether the undirected multigraph induced by the
// step table (treating each connection as an edge between its two rooms)
// touches every room, starting a BFS from room 0.
func connected(step []int, n int) bool {
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	visited[0] = true
	queue = append(queue, 0)
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for p := 0; p < Doors; p++ {
			dst := decodeDoor(step[r*Doors+p])
			if !visited[dst.Room] {
				visited[dst.Room] = true
				queue = append(queue, dst.Room)
			}
		}
	}
	for _, v := range visited {
		if !v {
			return false
		}
	}
	return true
}

// Clone returns a deep, independently-mutable copy of a.
func (a *Aedificium) Clone() *Aedificium {
	c := &Aedificium{
		Labels:      append([]int(nil), a.Labels...),
		Start:       a.Start,
		Connections: append([]Connection(nil), a.Connections...),
		step:        append([]int(nil), a.step...),
	}
	return c
}
