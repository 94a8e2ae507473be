// Package loader provides the link sources the ingestion pipeline reads from.
//
// A source yields an ordered slice of links. Sources do no validation and no
// deduplication; order is preserved exactly as stored.
package loader

import (
	"context"
	"errors"

	"topobloom/internal/domain"
)

// ErrUnsupportedFormat is returned for link files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported links file format")

// Source yields links in submission order
type Source interface {
	Links(ctx context.Context) ([]domain.Link, error)
	Name() string
}

// StaticSource serves a fixed slice of links
type StaticSource struct {
	name  string
	links []domain.Link
}

// NewStaticSource wraps links as a source
func NewStaticSource(name string, links []domain.Link) *StaticSource {
	return &StaticSource{name: name, links: links}
}

// Name identifies the source in logs
func (s *StaticSource) Name() string {
	return s.name
}

// Links returns a copy of the wrapped links
func (s *StaticSource) Links(_ context.Context) ([]domain.Link, error) {
	out := make([]domain.Link, len(s.links))
	copy(out, s.links)
	return out, nil
}

// Sample returns a small spine/leaf topology with repeated submissions of
// one access link
func Sample() []domain.Link {
	links := []domain.Link{
		domain.NewLink("R1", "xe-0/0/0", "R3", "xe-0/0/1"),
		domain.NewLink("R1", "xe-0/0/1", "R4", "xe-0/0/0"),
		domain.NewLink("R1", "xe-0/0/2", "R5", "xe-0/0/0"),
		domain.NewLink("R1", "xe-0/0/3", "R6", "xe-0/0/0"),
		domain.NewLink("R2", "xe-0/0/0", "R3", "xe-0/0/1"),
		domain.NewLink("R2", "xe-0/0/1", "R4", "xe-0/0/1"),
		domain.NewLink("R2", "xe-0/0/2", "R5", "xe-0/0/1"),
		domain.NewLink("R2", "xe-0/0/3", "R6", "xe-0/0/1"),
	}
	for i := 0; i < 6; i++ {
		links = append(links, domain.NewLink("R4", "xe-0/0/3", "SW1", "ge-0/0/0"))
	}
	return append(links, domain.NewLink("R6", "xe-0/0/3", "SW2", "ge-0/0/0"))
}

// SampleSource serves Sample
func SampleSource() *StaticSource {
	return NewStaticSource("sample", Sample())
}
