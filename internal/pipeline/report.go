package pipeline

import (
	"topobloom/internal/bloom"
	"topobloom/internal/domain"
	"topobloom/internal/topology"
)

// Counts tallies verdicts across a run
type Counts struct {
	Submitted        int `json:"submitted" yaml:"submitted"`
	Added            int `json:"added" yaml:"added"`
	GraphDuplicates  int `json:"graph_duplicates" yaml:"graph_duplicates"`
	FilterDuplicates int `json:"filter_duplicates" yaml:"filter_duplicates"`
	FalsePositives   int `json:"false_positives" yaml:"false_positives"`
}

func (c *Counts) add(v Verdict) {
	switch v {
	case VerdictAdded:
		c.Added++
	case VerdictGraphDuplicate:
		c.GraphDuplicates++
	case VerdictFilterDuplicate:
		c.FilterDuplicates++
	case VerdictFalsePositive:
		c.FalsePositives++
	}
}

// Duplicates is the number of submissions that did not add a link
func (c Counts) Duplicates() int {
	return c.GraphDuplicates + c.FilterDuplicates
}

// Report is everything a run produces for rendering and summaries
type Report struct {
	// Links is every submitted link in submission order, duplicates included
	Links     []domain.Link       `json:"links" yaml:"links"`
	Adjacency map[string][]string `json:"adjacency" yaml:"adjacency"`
	// Devices lists Adjacency keys in sorted order
	Devices  []string       `json:"devices" yaml:"devices"`
	Topology topology.Stats `json:"topology" yaml:"topology"`
	Filter   bloom.Stats    `json:"filter" yaml:"filter"`
	Counts   Counts         `json:"counts" yaml:"counts"`
}
