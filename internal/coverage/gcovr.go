package coverage

import (
	"fmt"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// DefaultGcovrCommand names runs loaded from gcovr reports when no command
// name is configured.
const DefaultGcovrCommand = "gcovr"

// branchKey identifies a branch by its line and its position on that line.
type branchKey struct {
	line, index int
}

// ParseGcovr converts a gcovr JSON report (gcovr --json).
//
// File paths in the report are relative to the gcovr root, which is
// expected to be the project root; absolute paths are kept as they are.
// Repeated entries for the same file or line are merged by summing hits;
// branches of a repeated line are matched by their position on the line.
func ParseGcovr(data []byte, root, command string) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse gcovr report: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	files := doc.Get("files")
	if !files.IsArray() {
		return nil, fmt.Errorf("%w: gcovr report has no files array", ErrNoCoverage)
	}
	if command == "" {
		command = DefaultGcovrCommand
	}

	var (
		all      FileList
		byName   = make(map[string]*FileCoverage)
		lineIdx  = make(map[string]map[int]int)
		brIdx    = make(map[string]map[branchKey]int)
		branches bool
	)

	for _, f := range files.Array() {
		filename := f.Get("file").String()
		if filename == "" {
			continue
		}
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(root, filename)
		}

		fc, ok := byName[filename]
		if !ok {
			fc = &FileCoverage{Filename: filename}
			byName[filename] = fc
			lineIdx[filename] = make(map[int]int)
			brIdx[filename] = make(map[branchKey]int)
			all = append(all, fc)
		}
		seen := lineIdx[filename]
		seenBranches := brIdx[filename]

		for _, l := range f.Get("lines").Array() {
			number := int(l.Get("line_number").Int())
			hits := int(l.Get("count").Int())
			excluded := l.Get("gcovr/noncode").Bool() || l.Get("gcovr/excluded").Bool()

			if idx, ok := seen[number]; ok {
				fc.Lines[idx].Hits += hits
				fc.Lines[idx].Excluded = fc.Lines[idx].Excluded && excluded
			} else {
				seen[number] = len(fc.Lines)
				fc.Lines = append(fc.Lines, LineCoverage{Number: number, Hits: hits, Excluded: excluded})
			}

			for i, b := range l.Get("branches").Array() {
				branches = true
				bHits := int(b.Get("count").Int())
				bExcluded := excluded || b.Get("gcovr/excluded").Bool()

				key := branchKey{line: number, index: i}
				if idx, ok := seenBranches[key]; ok {
					fc.Branches[idx].Hits += bHits
					fc.Branches[idx].Excluded = fc.Branches[idx].Excluded && bExcluded
					continue
				}
				seenBranches[key] = len(fc.Branches)
				fc.Branches = append(fc.Branches, BranchCoverage{StartLine: number, Hits: bHits, Excluded: bExcluded})
			}
		}
	}

	if len(all) == 0 {
		return nil, ErrNoCoverage
	}

	return &Result{
		CommandName:    command,
		Files:          keepFiles(root, all),
		BranchCoverage: branches,
	}, nil
}
