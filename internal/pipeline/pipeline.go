// Package pipeline feeds links through the bloom pre-filter into the topology
// graph.
//
// Each link's dedup key is inserted into the filter. Links the filter reports
// as new are forwarded to the graph for the exact duplicate check. Links the
// filter reports as already present are dropped without reaching the graph,
// so a filter false positive discards a genuinely new link. WithExactFallback
// changes this: rejected links are still checked exactly and the filter only
// saves work on the common path.
//
// A Pipeline is single threaded and processes links in submission order.
package pipeline

import (
	"topobloom/internal/bloom"
	"topobloom/internal/domain"
	"topobloom/internal/topology"

	"github.com/rs/zerolog"
)

// Verdict is what happened to a submitted link
type Verdict int

const (
	// VerdictAdded means the link reached the graph and was recorded
	VerdictAdded Verdict = iota
	// VerdictGraphDuplicate means the filter passed the link but the exact
	// check found it already recorded, usually in the other orientation
	VerdictGraphDuplicate
	// VerdictFilterDuplicate means the filter reported the key as present
	VerdictFilterDuplicate
	// VerdictFalsePositive means the filter rejected the link but the exact
	// fallback found it new and recorded it
	VerdictFalsePositive
)

func (v Verdict) String() string {
	switch v {
	case VerdictAdded:
		return "added"
	case VerdictGraphDuplicate:
		return "graph_duplicate"
	case VerdictFilterDuplicate:
		return "filter_duplicate"
	case VerdictFalsePositive:
		return "false_positive"
	default:
		return "unknown"
	}
}

// Recorded reports whether the verdict left the link in the graph as new
func (v Verdict) Recorded() bool {
	return v == VerdictAdded || v == VerdictFalsePositive
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used for per-link events
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithExactFallback forwards filter-rejected links to the exact check
func WithExactFallback(enabled bool) Option {
	return func(p *Pipeline) {
		p.exactFallback = enabled
	}
}

// Pipeline owns a filter and a graph for the duration of one run
type Pipeline struct {
	filter        *bloom.Filter
	graph         *topology.Graph
	logger        zerolog.Logger
	exactFallback bool

	links  []domain.Link
	counts Counts
}

// New creates a pipeline over the given filter and graph
func New(filter *bloom.Filter, graph *topology.Graph, opts ...Option) *Pipeline {
	p := &Pipeline{
		filter: filter,
		graph:  graph,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs one link through the filter and, when forwarded, the graph
func (p *Pipeline) Submit(link domain.Link) Verdict {
	p.links = append(p.links, link)
	p.counts.Submitted++

	verdict := p.classify(link)
	p.counts.add(verdict)

	event := p.logger.Info()
	if verdict == VerdictFalsePositive {
		event = p.logger.Warn()
	}
	if verdict.Recorded() && link.IsSelfLoop() {
		event = event.Bool("self_loop", true)
	}
	event.Object("link", link).Str("verdict", verdict.String()).Msg(verdictMessages[verdict])

	return verdict
}

var verdictMessages = map[Verdict]string{
	VerdictAdded:           "link added",
	VerdictFalsePositive:   "link recovered from filter false positive",
	VerdictGraphDuplicate:  "duplicate link skipped",
	VerdictFilterDuplicate: "duplicate detected by bloom filter",
}

func (p *Pipeline) classify(link domain.Link) Verdict {
	if p.filter.Insert(link.DedupKey()) {
		if p.graph.ProcessLink(link) == topology.Added {
			return VerdictAdded
		}
		return VerdictGraphDuplicate
	}

	// only links the exact set has never seen are handed to the graph
	if !p.exactFallback || p.graph.Contains(link) {
		return VerdictFilterDuplicate
	}
	p.graph.ProcessLink(link)
	return VerdictFalsePositive
}

// Ingest submits links in order and returns the resulting report
func (p *Pipeline) Ingest(links []domain.Link) *Report {
	for _, link := range links {
		p.Submit(link)
	}

	report := p.Report()
	p.logger.Debug().
		Object("topology", report.Topology).
		Object("filter", report.Filter).
		Int("submitted", report.Counts.Submitted).
		Msg("ingestion complete")
	return report
}

// Report returns a snapshot of the run so far
func (p *Pipeline) Report() *Report {
	links := make([]domain.Link, len(p.links))
	copy(links, p.links)

	return &Report{
		Links:     links,
		Adjacency: p.graph.Adjacency(),
		Devices:   p.graph.Devices(),
		Topology:  p.graph.Stats(),
		Filter:    p.filter.Stats(),
		Counts:    p.counts,
	}
}
