package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridshift-org/gridshift/engine"
	"github.com/gridshift-org/gridshift/helpers"
)

// CSVSink writes one CSV artifact per metric output name into a directory.
type CSVSink struct {
	Dir string
}

// NewCSVSink creates the output directory if needed.
func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &CSVSink{Dir: dir}, nil
}

// WriteTable writes the table as <output_name>.csv, replacing any previous
// artifact atomically via a rename.
func (s *CSVSink) WriteTable(t *engine.Table) error {
	final := filepath.Join(s.Dir, t.OutputName+".csv")
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write %s: %w", t.OutputName, err)
	}
	if err := helpers.WriteCSV(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", t.OutputName, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", t.OutputName, err)
	}
	return os.Rename(tmp, final)
}
