// Package codec renders ingestion reports in the supported output formats.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"topobloom/internal/pipeline"
)

// ErrUnknownFormat is returned by ForFormat for an unregistered format
var ErrUnknownFormat = errors.New("unknown output format")

// Exporter writes a report in one format
type Exporter interface {
	Export(report *pipeline.Report, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter registered under format
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "text", "":
		return NewTextCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	case "dot":
		return NewDOTCodec(DefaultCanvasWidth), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Formats lists every format ForFormat accepts
func Formats() []string {
	formats := []string{"text", "json", "yaml", "dot"}
	sort.Strings(formats)
	return formats
}

// ExportFile writes report to path. Failures are returned to the caller and
// leave the report untouched.
func ExportFile(e Exporter, report *pipeline.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := e.Export(report, f); err != nil {
		return fmt.Errorf("failed to export %s: %w", e.Format(), err)
	}
	return nil
}
