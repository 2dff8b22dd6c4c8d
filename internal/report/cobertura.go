package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zjy-dev/cobertura/internal/cobertura"
	"github.com/zjy-dev/cobertura/internal/coverage"
	"github.com/zjy-dev/cobertura/internal/logger"
)

// Options configures where a report is written.
type Options struct {
	// ProjectRoot is the absolute directory all reported files live under.
	ProjectRoot string

	// OutputDir receives coverage.xml. It is created when missing.
	OutputDir string
}

// CoberturaReporter writes Cobertura XML reports.
type CoberturaReporter struct {
	opts   Options
	stdout io.Writer
	log    *logger.Logger
	now    func() time.Time
}

var _ Formatter = (*CoberturaReporter)(nil)

// NewCoberturaReporter creates a reporter printing its confirmation line to
// stdout. A nil log falls back to the default logger.
func NewCoberturaReporter(opts Options, stdout io.Writer, log *logger.Logger) *CoberturaReporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if log == nil {
		log = logger.Default()
	}
	return &CoberturaReporter{
		opts:   opts,
		stdout: stdout,
		log:    log,
		now:    time.Now,
	}
}

// ResultPath returns the path the report is written to.
func (r *CoberturaReporter) ResultPath() string {
	return filepath.Join(r.opts.OutputDir, cobertura.ResultFileName)
}

// Format builds the Cobertura document for result, writes it atomically to
// ResultPath and prints a confirmation line naming the command.
func (r *CoberturaReporter) Format(result *coverage.Result) ([]byte, error) {
	if r.opts.ProjectRoot == "" || r.opts.OutputDir == "" {
		return nil, fmt.Errorf("project root and output directory must be set")
	}

	doc, err := cobertura.NewBuilder(r.opts.ProjectRoot).WithClock(r.now).Build(result)
	if err != nil {
		return nil, fmt.Errorf("failed to build cobertura report: %w", err)
	}
	r.log.Debugf("built %d packages for %s", len(doc.Packages.Package), result.CommandName)

	data, err := cobertura.Marshal(doc)
	if err != nil {
		return nil, err
	}

	path := r.ResultPath()
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	r.log.Debugf("wrote %d bytes to %s", len(data), path)

	fmt.Fprintf(r.stdout, "Coverage report generated for %s to %s\n", result.CommandName, path)
	return data, nil
}
