package codec

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"topobloom/internal/pipeline"
)

// DefaultCanvasWidth is the drawing width in pixels when none is configured
const DefaultCanvasWidth = 2048

// Tier is the vertical layer a device is drawn in
type Tier string

const (
	TierSpine  Tier = "spine"
	TierLeaf   Tier = "leaf"
	TierSwitch Tier = "switch"
)

// tierOrder is the top to bottom drawing order
var tierOrder = []Tier{TierSpine, TierLeaf, TierSwitch}

// Classify places a device in a tier by name
func Classify(device string) Tier {
	switch device {
	case "R1", "R2":
		return TierSpine
	case "R3", "R4", "R5", "R6":
		return TierLeaf
	default:
		return TierSwitch
	}
}

// FillColor picks a node color by name
func FillColor(device string) string {
	switch {
	case Classify(device) == TierSpine:
		return "khaki"
	case strings.Contains(device, "SW"):
		return "white"
	default:
		return "gray"
	}
}

// DOTCodec renders the submitted links as a Graphviz digraph with
// undirected-looking edges
type DOTCodec struct {
	canvasWidth int
}

// NewDOTCodec creates a DOT codec for the given canvas width in pixels
func NewDOTCodec(canvasWidth int) *DOTCodec {
	if canvasWidth <= 0 {
		canvasWidth = DefaultCanvasWidth
	}
	return &DOTCodec{canvasWidth: canvasWidth}
}

// Format returns the codec format identifier
func (c *DOTCodec) Format() string {
	return "dot"
}

// Export writes one edge per submitted link, repeats included, followed by
// node styles and rank groups in sorted order
func (c *DOTCodec) Export(report *pipeline.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "  layout=dot;")
	fmt.Fprintln(bw, "  rankdir=TB;")
	fmt.Fprintln(bw, "  dpi=150;")
	fmt.Fprintln(bw, "  splines=polyline;")
	fmt.Fprintln(bw, "  pad=0.5;")
	fmt.Fprintln(bw, "  nodesep=1.2;")
	fmt.Fprintln(bw, "  ranksep=1.2;")
	fmt.Fprintf(bw, "  size=\"%d,10\";\n", c.canvasWidth/100)
	fmt.Fprintln(bw, "  node [shape=box style=filled fontname=Helvetica fontsize=14];")

	nodes := make(map[string]struct{})
	for _, link := range report.Links {
		nodes[link.Node1] = struct{}{}
		nodes[link.Node2] = struct{}{}

		fmt.Fprintf(bw, "  %s -> %s [dir=none label=%s];\n",
			quote(link.Node1), quote(link.Node2), quote(link.Intf1+" ⟷ "+link.Intf2))
	}

	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make(map[Tier][]string)
	for _, name := range names {
		fmt.Fprintf(bw, "  %s [fillcolor=%s];\n", quote(name), FillColor(name))
		tier := Classify(name)
		groups[tier] = append(groups[tier], name)
	}

	for _, tier := range tierOrder {
		members := groups[tier]
		if len(members) == 0 {
			continue
		}
		fmt.Fprint(bw, "  { rank=same;")
		for _, name := range members {
			fmt.Fprintf(bw, " %s", quote(name))
		}
		fmt.Fprintln(bw, " }")
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// quote produces a DOT double-quoted ID
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
