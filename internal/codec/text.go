package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"topobloom/internal/pipeline"
)

// TextCodec renders the human-readable run summary
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Export writes the adjacency list, topology stats and filter stats
func (c *TextCodec) Export(report *pipeline.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Adjacency List:")
	for _, device := range report.Devices {
		fmt.Fprintf(bw, "- %s: %s\n", device, strings.Join(report.Adjacency[device], " "))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Topology Stats:")
	fmt.Fprintf(bw, "- Links submitted: %d\n", report.Counts.Submitted)
	fmt.Fprintf(bw, "- Total unique links processed: %d\n", report.Topology.TotalUniqueLinks)
	fmt.Fprintf(bw, "- Duplicate links skipped: %d\n", report.Counts.Duplicates())
	fmt.Fprintf(bw, "  - rejected by bloom filter: %d\n", report.Counts.FilterDuplicates)
	fmt.Fprintf(bw, "  - rejected by exact check: %d\n", report.Counts.GraphDuplicates)
	if report.Counts.FalsePositives > 0 {
		fmt.Fprintf(bw, "- Filter false positives recovered: %d\n", report.Counts.FalsePositives)
	}

	f := report.Filter
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Bloom Filter Stats:")
	fmt.Fprintf(bw, "- Bit array size: %d\n", f.Capacity)
	fmt.Fprintf(bw, "- Hash functions used: %d\n", f.HashCount)
	fmt.Fprintf(bw, "- Unique elements inserted: %d\n", f.UniqueInserts)
	fmt.Fprintf(bw, "- Bits set: %d (%.1f%% full)\n", f.BitsSet, f.LoadFactor*100)
	fmt.Fprintf(bw, "- Estimated false positive rate: ~%.4f%%\n", f.EstimatedFalsePositiveRate*100)

	return bw.Flush()
}
