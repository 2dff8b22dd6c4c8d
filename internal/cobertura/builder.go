package cobertura

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjy-dev/cobertura/internal/coverage"
)

var (
	// ErrOutsideRoot is returned when a file does not live under the project root.
	ErrOutsideRoot = errors.New("file outside project root")

	// ErrMalformedResult is returned for results that break the input
	// contract: nil results, negative hit counts or invalid line numbers.
	ErrMalformedResult = errors.New("malformed coverage result")
)

const fixedZero = "0"

// Builder turns a coverage result into a Cobertura document tree.
type Builder struct {
	root string
	now  func() time.Time
}

// NewBuilder creates a builder for files under the project root.
func NewBuilder(root string) *Builder {
	return &Builder{
		root: filepath.Clean(root),
		now:  time.Now,
	}
}

// WithClock replaces the clock used for the timestamp attribute.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build creates the full document for result. It fails without a partial
// document when the result breaks the input contract.
func (b *Builder) Build(result *coverage.Result) (*Coverage, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: nil result", ErrMalformedResult)
	}
	if err := validate(result); err != nil {
		return nil, err
	}

	doc := &Coverage{
		LineRate:        percentRate(result.CoveredPercent()),
		LinesCovered:    result.CoveredLines(),
		LinesValid:      result.CoveredLines() + result.MissedLines(),
		BranchRate:      countRate(result.CoveredBranches(), result.TotalBranches()),
		BranchesCovered: result.CoveredBranches(),
		BranchesValid:   result.CoveredBranches() + result.MissedBranches(),
		Complexity:      fixedZero,
		Version:         fixedZero,
		Timestamp:       b.now().Unix(),
		Sources:         Sources{Source: []Source{{Path: b.root}}},
	}

	for _, group := range b.groups(result) {
		pkg, err := b.buildPackage(group, result.BranchCoverage)
		if err != nil {
			return nil, err
		}
		doc.Packages.Package = append(doc.Packages.Package, pkg)
	}

	return doc, nil
}

// groups returns the result's groups, or a single group named after the
// project root holding every file when the result defines none.
func (b *Builder) groups(result *coverage.Result) []coverage.Group {
	if len(result.Groups) > 0 {
		return result.Groups
	}
	return []coverage.Group{{Name: filepath.Base(b.root), Files: result.Files}}
}

func (b *Builder) buildPackage(group coverage.Group, branches bool) (Package, error) {
	pkg := Package{
		Name:       group.Name,
		LineRate:   percentRate(group.Files.CoveredPercent()),
		BranchRate: percentRate(0),
		Complexity: fixedZero,
	}
	if branches {
		pkg.BranchRate = percentRate(group.Files.BranchCoveredPercent())
	}

	pkg.Classes.Class = make([]Class, 0, len(group.Files))
	for _, file := range group.Files {
		class, err := b.buildClass(file, branches)
		if err != nil {
			return Package{}, fmt.Errorf("package %q: %w", group.Name, err)
		}
		pkg.Classes.Class = append(pkg.Classes.Class, class)
	}
	return pkg, nil
}

func (b *Builder) buildClass(file *coverage.FileCoverage, branches bool) (Class, error) {
	rel, err := b.relativePath(file.Filename)
	if err != nil {
		return Class{}, err
	}

	class := Class{
		Name:       className(file.Filename),
		Filename:   rel,
		LineRate:   percentRate(file.CoveredPercent()),
		BranchRate: percentRate(0),
		Complexity: fixedZero,
	}
	if pct, ok := file.BranchesCoveragePercent(); ok && branches {
		class.BranchRate = percentRate(pct)
	}

	for _, l := range file.Lines {
		if !l.Covered() && !l.Missed() {
			continue
		}
		class.Lines.Line = append(class.Lines.Line, Line{Number: l.Number, Branch: "false", Hits: l.Hits})
	}

	var list *Branches
	for _, br := range file.Branches {
		if !br.Covered() && !br.Missed() {
			continue
		}
		if list == nil {
			list = &Branches{}
		}
		list.Branch = append(list.Branch, Branch{Number: br.StartLine, Branch: "true", Hits: br.Hits})
	}
	class.Branches = list

	return class, nil
}

// validate checks every file reachable from result before any aggregate
// is computed.
func validate(result *coverage.Result) error {
	check := func(files coverage.FileList) error {
		for _, f := range files {
			if f == nil {
				return fmt.Errorf("%w: nil file", ErrMalformedResult)
			}
			for _, l := range f.Lines {
				if l.Hits < 0 || l.Number < 1 {
					return fmt.Errorf("%w: %s line %d has %d hits", ErrMalformedResult, f.Filename, l.Number, l.Hits)
				}
			}
			for _, br := range f.Branches {
				if br.Hits < 0 || br.StartLine < 1 {
					return fmt.Errorf("%w: %s branch at line %d has %d hits", ErrMalformedResult, f.Filename, br.StartLine, br.Hits)
				}
			}
		}
		return nil
	}

	if err := check(result.Files); err != nil {
		return err
	}
	for _, g := range result.Groups {
		if err := check(g.Files); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// relativePath strips "<root>/" from filename.
func (b *Builder) relativePath(filename string) (string, error) {
	prefix := b.root + string(filepath.Separator)
	if b.root == string(filepath.Separator) {
		prefix = b.root
	}
	if !strings.HasPrefix(filename, prefix) || len(filename) == len(prefix) {
		return "", fmt.Errorf("%w: %s is not under %s", ErrOutsideRoot, filename, b.root)
	}
	return filename[len(prefix):], nil
}

// className is the file's base name without its extension.
func className(filename string) string {
	base := filepath.Base(filename)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}
