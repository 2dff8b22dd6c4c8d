package coverage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjy-dev/cobertura/internal/logger"
)

var (
	// ErrUnsupportedFormat is returned for an unknown input format name.
	ErrUnsupportedFormat = errors.New("unsupported coverage format")

	// ErrNoCoverage is returned when an input holds no usable coverage.
	ErrNoCoverage = errors.New("no coverage data")
)

// Format names a coverage input format.
type Format string

const (
	// FormatSimpleCov is SimpleCov's .resultset.json.
	FormatSimpleCov Format = "simplecov"
	// FormatGcovr is the JSON report written by gcovr --json.
	FormatGcovr Format = "gcovr"
)

// ParseFormat validates a format name from config or flags.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatSimpleCov, FormatGcovr:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Load reads the report at path and converts it into a Result. Files outside
// root are skipped. command selects a command in SimpleCov result sets and
// names the run for gcovr reports.
func Load(format Format, path, root, command string) (*Result, error) {
	data, err := readReport(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSimpleCov:
		return ParseResultSet(data, root, command)
	case FormatGcovr:
		return ParseGcovr(data, root, command)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readReport(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("coverage report path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage report: %w", err)
	}
	return data, nil
}

// underRoot reports whether filename lies inside root.
func underRoot(root, filename string) bool {
	root = strings.TrimSuffix(filepath.Clean(root), string(filepath.Separator))
	return strings.HasPrefix(filename, root+string(filepath.Separator))
}

// keepFiles drops files outside root, logging each one.
func keepFiles(root string, files FileList) FileList {
	kept := make(FileList, 0, len(files))
	for _, f := range files {
		if !underRoot(root, f.Filename) {
			logger.Warn("skipping %s: outside project root %s", f.Filename, root)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
