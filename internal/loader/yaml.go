package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"topobloom/internal/domain"

	"gopkg.in/yaml.v3"
)

// LinksFile represents the link file structure shared by YAML and JSON
type LinksFile struct {
	Version     string     `yaml:"version,omitempty" json:"version,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Links       []LinkYAML `yaml:"links" json:"links"`
}

// LinkYAML represents one link entry
type LinkYAML struct {
	Node1 string `yaml:"node1" json:"node1"`
	Intf1 string `yaml:"intf1" json:"intf1"`
	Node2 string `yaml:"node2" json:"node2"`
	Intf2 string `yaml:"intf2" json:"intf2"`
}

// FileSource reads links from a YAML or JSON file on every call
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name identifies the source in logs
func (s *FileSource) Name() string {
	return "file:" + s.Path
}

// Links loads the file
func (s *FileSource) Links(_ context.Context) ([]domain.Link, error) {
	return LoadFile(s.Path)
}

// LoadFile loads links from path, choosing the parser by extension
func LoadFile(path string) ([]domain.Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read links file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseYAML parses links from YAML bytes
func ParseYAML(data []byte) ([]domain.Link, error) {
	var lf LinksFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return lf.toDomain(), nil
}

// ParseJSON parses links from JSON bytes
func ParseJSON(data []byte) ([]domain.Link, error) {
	var lf LinksFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return lf.toDomain(), nil
}

func (lf *LinksFile) toDomain() []domain.Link {
	links := make([]domain.Link, 0, len(lf.Links))
	for _, l := range lf.Links {
		links = append(links, domain.NewLink(l.Node1, l.Intf1, l.Node2, l.Intf2))
	}
	return links
}

// MarshalYAML encodes links in the link file format
func MarshalYAML(links []domain.Link) ([]byte, error) {
	lf := LinksFile{
		Version: "1",
		Links:   make([]LinkYAML, 0, len(links)),
	}
	for _, l := range links {
		lf.Links = append(lf.Links, LinkYAML{Node1: l.Node1, Intf1: l.Intf1, Node2: l.Node2, Intf2: l.Intf2})
	}

	data, err := yaml.Marshal(&lf)
	if err != nil {
		return nil, fmt.Errorf("marshal links: %w", err)
	}
	return data, nil
}
