package coverage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// rawFile accumulates one file's data across merged commands.
type rawFile struct {
	name      string
	lines     []rawLine
	branches  []BranchCoverage
	branchIdx map[string]int
}

type rawLine struct {
	hits     int
	relevant bool
	ignored  bool
}

// ParseResultSet converts a SimpleCov .resultset.json document.
//
// The document maps command names to {"coverage": {file: data}}, where data
// is either a bare line array or {"lines": [...], "branches": {...}}. Line
// entries are null (not executable), "ignored" (nocov) or a hit count.
// When command is empty and several commands are present they are merged
// and their names joined with ", ".
func ParseResultSet(data []byte, root, command string) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse result set: invalid JSON")
	}

	var (
		names    []string
		files    []*rawFile
		byName   = make(map[string]*rawFile)
		branches bool
		parseErr error
	)

	gjson.ParseBytes(data).ForEach(func(key, run gjson.Result) bool {
		name := key.String()
		if command != "" && name != command {
			return true
		}
		names = append(names, name)

		run.Get("coverage").ForEach(func(fileKey, fileData gjson.Result) bool {
			filename := fileKey.String()
			rf, ok := byName[filename]
			if !ok {
				rf = &rawFile{name: filename, branchIdx: make(map[string]int)}
				byName[filename] = rf
				files = append(files, rf)
			}

			lines := fileData
			if fileData.IsObject() {
				lines = fileData.Get("lines")
				if b := fileData.Get("branches"); b.Exists() {
					branches = true
					if err := rf.mergeBranches(b); err != nil {
						parseErr = fmt.Errorf("%s: %w", filename, err)
						return false
					}
				}
			}
			rf.mergeLines(lines)
			return true
		})
		return parseErr == nil
	})

	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse result set: %w", parseErr)
	}
	if len(names) == 0 {
		if command != "" {
			return nil, fmt.Errorf("%w: command %q not found", ErrNoCoverage, command)
		}
		return nil, ErrNoCoverage
	}

	all := make(FileList, 0, len(files))
	for _, rf := range files {
		all = append(all, rf.toFileCoverage())
	}

	return &Result{
		CommandName:    strings.Join(names, ", "),
		Files:          keepFiles(root, all),
		BranchCoverage: branches,
	}, nil
}

func (rf *rawFile) mergeLines(lines gjson.Result) {
	for i, v := range lines.Array() {
		if i >= len(rf.lines) {
			rf.lines = append(rf.lines, rawLine{})
		}
		l := &rf.lines[i]
		switch v.Type {
		case gjson.Number:
			l.relevant = true
			l.hits += int(v.Int())
		case gjson.String:
			l.ignored = true
		}
	}
}

// mergeBranches reads {condition: {branch: hits}}. Branch keys are Ruby
// inspect strings like "[:then, 1, 4, 6, 4, 15]" whose third element is the
// start line.
func (rf *rawFile) mergeBranches(conditions gjson.Result) error {
	var err error
	conditions.ForEach(func(_, branches gjson.Result) bool {
		branches.ForEach(func(key, hits gjson.Result) bool {
			k := key.String()
			if idx, ok := rf.branchIdx[k]; ok {
				rf.branches[idx].Hits += int(hits.Int())
				return true
			}
			var start int
			start, err = branchStartLine(k)
			if err != nil {
				return false
			}
			rf.branchIdx[k] = len(rf.branches)
			rf.branches = append(rf.branches, BranchCoverage{StartLine: start, Hits: int(hits.Int())})
			return true
		})
		return err == nil
	})
	return err
}

func branchStartLine(key string) (int, error) {
	parts := strings.Split(strings.Trim(key, "[] "), ",")
	if len(parts) < 3 {
		return 0, fmt.Errorf("malformed branch key %q", key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0, fmt.Errorf("malformed branch key %q: %w", key, err)
	}
	return n, nil
}

func (rf *rawFile) toFileCoverage() *FileCoverage {
	fc := &FileCoverage{
		Filename: rf.name,
		Lines:    make([]LineCoverage, 0, len(rf.lines)),
		Branches: rf.branches,
	}
	for i, l := range rf.lines {
		fc.Lines = append(fc.Lines, LineCoverage{
			Number:   i + 1,
			Hits:     l.hits,
			Excluded: l.ignored || !l.relevant,
		})
	}
	return fc
}
