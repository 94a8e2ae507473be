package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Endpoint is one side of a physical link: a device and the interface on it
type Endpoint struct {
	Device    string `json:"device" yaml:"device"`
	Interface string `json:"interface" yaml:"interface"`
}

// Less orders endpoints by device, then interface
func (e Endpoint) Less(other Endpoint) bool {
	if e.Device != other.Device {
		return e.Device < other.Device
	}
	return e.Interface < other.Interface
}

// String renders the endpoint as device::interface
func (e Endpoint) String() string {
	return e.Device + "::" + e.Interface
}

// Link represents a single physical connection between two devices.
// Two links with swapped endpoints describe the same connection.
type Link struct {
	Node1 string `json:"node1" yaml:"node1"`
	Intf1 string `json:"intf1" yaml:"intf1"`
	Node2 string `json:"node2" yaml:"node2"`
	Intf2 string `json:"intf2" yaml:"intf2"`
}

// NewLink creates a link from its four identifiers
func NewLink(node1, intf1, node2, intf2 string) Link {
	return Link{Node1: node1, Intf1: intf1, Node2: node2, Intf2: intf2}
}

// A returns the first endpoint as submitted
func (l Link) A() Endpoint {
	return Endpoint{Device: l.Node1, Interface: l.Intf1}
}

// B returns the second endpoint as submitted
func (l Link) B() Endpoint {
	return Endpoint{Device: l.Node2, Interface: l.Intf2}
}

// Reversed returns the same link described from the other side
func (l Link) Reversed() Link {
	return Link{Node1: l.Node2, Intf1: l.Intf2, Node2: l.Node1, Intf2: l.Intf1}
}

// IsSelfLoop reports whether both ends sit on the same device
func (l Link) IsSelfLoop() bool {
	return l.Node1 == l.Node2
}

// DedupKey is the raw concatenation of the four fields, used as the
// pre-filter key. It is direction sensitive and may collide for
// different links; both only cost pre-filter precision.
func (l Link) DedupKey() string {
	return l.Node1 + l.Intf1 + l.Node2 + l.Intf2
}

// CanonicalKey returns a key identical for both orientations of the link.
// Endpoints are sorted, and every field is length-prefixed so identifiers
// containing separator characters cannot alias another link.
func (l Link) CanonicalKey() string {
	first, second := l.A(), l.B()
	if second.Less(first) {
		first, second = second, first
	}

	var b strings.Builder
	writeField(&b, first.Device)
	writeField(&b, first.Interface)
	b.WriteString("--")
	writeField(&b, second.Device)
	writeField(&b, second.Interface)
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// String renders the link for humans
func (l Link) String() string {
	return fmt.Sprintf("%s (%s) ⟷ %s (%s)", l.Node1, l.Intf1, l.Node2, l.Intf2)
}

// MarshalZerologObject formats this link for logging purposes
func (l Link) MarshalZerologObject(e *zerolog.Event) {
	e.Str("node1", l.Node1)
	e.Str("intf1", l.Intf1)
	e.Str("node2", l.Node2)
	e.Str("intf2", l.Intf2)
}
