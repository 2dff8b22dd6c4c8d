package report

import "github.com/zjy-dev/cobertura/internal/coverage"

// Formatter turns a coverage result into a persisted report.
type Formatter interface {
	// Format writes the report for result and returns its contents.
	Format(result *coverage.Result) ([]byte, error)
}
