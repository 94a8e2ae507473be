// Package topology builds an undirected adjacency model from physical links
// with exact duplicate detection.
//
// A link is accepted at most once no matter how many times it, or its
// reverse, is submitted. Accepted links update both devices' neighbor lists.
// Neighbor lists keep discovery order and may repeat a device when two devices
// share parallel links.
//
// A Graph is not safe for concurrent use.
package topology

import (
	"sort"

	"topobloom/internal/domain"

	"github.com/rs/zerolog"
)

// Outcome is the result of submitting a link to the graph
type Outcome int

const (
	// Added means the link was new and the adjacency lists were updated
	Added Outcome = iota
	// Duplicate means the link, in either orientation, was already recorded
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Graph is the deduplicated topology
type Graph struct {
	adjacency   map[string][]string
	seen        map[string]struct{}
	uniqueLinks int
	submissions int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		seen:      make(map[string]struct{}),
	}
}

// ProcessLink records link unless its canonical form has been seen
func (g *Graph) ProcessLink(link domain.Link) Outcome {
	g.submissions++

	key := link.CanonicalKey()
	if _, ok := g.seen[key]; ok {
		return Duplicate
	}

	g.seen[key] = struct{}{}
	g.adjacency[link.Node1] = append(g.adjacency[link.Node1], link.Node2)
	g.adjacency[link.Node2] = append(g.adjacency[link.Node2], link.Node1)
	g.uniqueLinks++

	return Added
}

// Contains reports whether link, in either orientation, has been recorded
func (g *Graph) Contains(link domain.Link) bool {
	_, ok := g.seen[link.CanonicalKey()]
	return ok
}

// Neighbors returns a copy of device's neighbor list in discovery order
func (g *Graph) Neighbors(device string) []string {
	neighbors, ok := g.adjacency[device]
	if !ok {
		return nil
	}
	out := make([]string, len(neighbors))
	copy(out, neighbors)
	return out
}

// Adjacency returns a copy of the device to neighbors mapping
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adjacency))
	for device, neighbors := range g.adjacency {
		list := make([]string, len(neighbors))
		copy(list, neighbors)
		out[device] = list
	}
	return out
}

// Devices returns every device with at least one accepted link, sorted
func (g *Graph) Devices() []string {
	devices := make([]string, 0, len(g.adjacency))
	for device := range g.adjacency {
		devices = append(devices, device)
	}
	sort.Strings(devices)
	return devices
}

// Stats returns the link counters
func (g *Graph) Stats() Stats {
	return Stats{
		TotalSubmissions:  g.submissions,
		TotalUniqueLinks:  g.uniqueLinks,
		DuplicatesSkipped: g.submissions - g.uniqueLinks,
	}
}

// Stats is a read-only snapshot of a Graph's counters
type Stats struct {
	TotalSubmissions  int `json:"total_submissions" yaml:"total_submissions"`
	TotalUniqueLinks  int `json:"total_unique_links" yaml:"total_unique_links"`
	DuplicatesSkipped int `json:"duplicates_skipped" yaml:"duplicates_skipped"`
}

// MarshalZerologObject formats these stats for logging purposes
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("submissions", s.TotalSubmissions)
	e.Int("unique_links", s.TotalUniqueLinks)
	e.Int("duplicates_skipped", s.DuplicatesSkipped)
}
