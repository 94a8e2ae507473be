package codec

import (
	"fmt"
	"io"

	"topobloom/internal/pipeline"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlAdjacency keeps device order stable in the output
type yamlAdjacency struct {
	Device    string   `yaml:"device"`
	Neighbors []string `yaml:"neighbors"`
}

type yamlLink struct {
	Node1 string `yaml:"node1"`
	Intf1 string `yaml:"intf1"`
	Node2 string `yaml:"node2"`
	Intf2 string `yaml:"intf2"`
}

type yamlReport struct {
	Topology  any             `yaml:"topology"`
	Filter    any             `yaml:"filter"`
	Counts    any             `yaml:"counts"`
	Adjacency []yamlAdjacency `yaml:"adjacency"`
	Links     []yamlLink      `yaml:"links"`
}

// Export exports the report to YAML
func (c *YAMLCodec) Export(report *pipeline.Report, w io.Writer) error {
	yr := yamlReport{
		Topology:  report.Topology,
		Filter:    report.Filter,
		Counts:    report.Counts,
		Adjacency: make([]yamlAdjacency, 0, len(report.Devices)),
		Links:     make([]yamlLink, 0, len(report.Links)),
	}

	for _, device := range report.Devices {
		yr.Adjacency = append(yr.Adjacency, yamlAdjacency{
			Device:    device,
			Neighbors: report.Adjacency[device],
		})
	}

	for _, l := range report.Links {
		yr.Links = append(yr.Links, yamlLink{Node1: l.Node1, Intf1: l.Intf1, Node2: l.Node2, Intf2: l.Intf2})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yr); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
