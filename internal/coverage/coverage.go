package coverage

// LineCoverage holds the hit count for a single source line.
type LineCoverage struct {
	// Number is the 1-indexed line number.
	Number int

	// Hits is how many times the line was executed.
	Hits int

	// Excluded marks lines that carry no executable code or were skipped
	// by the collector (nocov blocks, gcovr exclusions).
	Excluded bool
}

// Covered reports whether the line is executable and was hit.
func (l LineCoverage) Covered() bool {
	return !l.Excluded && l.Hits > 0
}

// Missed reports whether the line is executable and was never hit.
func (l LineCoverage) Missed() bool {
	return !l.Excluded && l.Hits == 0
}

// BranchCoverage holds the hit count for one conditional branch.
type BranchCoverage struct {
	// StartLine is the line the branch starts on.
	StartLine int

	Hits     int
	Excluded bool
}

// Covered reports whether the branch is relevant and was taken.
func (b BranchCoverage) Covered() bool {
	return !b.Excluded && b.Hits > 0
}

// Missed reports whether the branch is relevant and was never taken.
func (b BranchCoverage) Missed() bool {
	return !b.Excluded && b.Hits == 0
}

// FileCoverage is the coverage of a single source file.
type FileCoverage struct {
	// Filename is the absolute path of the source file.
	Filename string

	Lines    []LineCoverage
	Branches []BranchCoverage
}

// CoveredLines returns the number of executed lines.
func (f *FileCoverage) CoveredLines() int {
	n := 0
	for _, l := range f.Lines {
		if l.Covered() {
			n++
		}
	}
	return n
}

// MissedLines returns the number of executable lines never hit.
func (f *FileCoverage) MissedLines() int {
	n := 0
	for _, l := range f.Lines {
		if l.Missed() {
			n++
		}
	}
	return n
}

// CoveredPercent returns the line coverage in the range 0-100.
func (f *FileCoverage) CoveredPercent() float64 {
	return percent(f.CoveredLines(), f.MissedLines())
}

// CoveredBranches returns the number of taken branches.
func (f *FileCoverage) CoveredBranches() int {
	n := 0
	for _, b := range f.Branches {
		if b.Covered() {
			n++
		}
	}
	return n
}

// MissedBranches returns the number of relevant branches never taken.
func (f *FileCoverage) MissedBranches() int {
	n := 0
	for _, b := range f.Branches {
		if b.Missed() {
			n++
		}
	}
	return n
}

// HasBranches reports whether the file has at least one covered or missed branch.
func (f *FileCoverage) HasBranches() bool {
	return f.CoveredBranches()+f.MissedBranches() > 0
}

// BranchesCoveragePercent returns the branch coverage in the range 0-100.
// ok is false when the file has no relevant branches.
func (f *FileCoverage) BranchesCoveragePercent() (pct float64, ok bool) {
	if !f.HasBranches() {
		return 0, false
	}
	return percent(f.CoveredBranches(), f.MissedBranches()), true
}

// FileList is an ordered list of files with aggregate statistics.
type FileList []*FileCoverage

// CoveredLines sums covered lines over all files.
func (fl FileList) CoveredLines() int {
	n := 0
	for _, f := range fl {
		n += f.CoveredLines()
	}
	return n
}

// MissedLines sums missed lines over all files.
func (fl FileList) MissedLines() int {
	n := 0
	for _, f := range fl {
		n += f.MissedLines()
	}
	return n
}

// CoveredPercent returns the aggregate line coverage in the range 0-100.
func (fl FileList) CoveredPercent() float64 {
	return percent(fl.CoveredLines(), fl.MissedLines())
}

// CoveredBranches sums covered branches over all files.
func (fl FileList) CoveredBranches() int {
	n := 0
	for _, f := range fl {
		n += f.CoveredBranches()
	}
	return n
}

// MissedBranches sums missed branches over all files.
func (fl FileList) MissedBranches() int {
	n := 0
	for _, f := range fl {
		n += f.MissedBranches()
	}
	return n
}

// BranchCoveredPercent returns the aggregate branch coverage in the range 0-100.
func (fl FileList) BranchCoveredPercent() float64 {
	return percent(fl.CoveredBranches(), fl.MissedBranches())
}

// Group is a named subset of a result's files.
type Group struct {
	Name  string
	Files FileList
}

// Result is the fully collected coverage of one run. It is read-only once
// handed to a formatter.
type Result struct {
	// CommandName identifies the test command that produced the result.
	CommandName string

	// Files holds every file of the run in collection order.
	Files FileList

	// Groups is the optional grouping of Files. When empty, formatters fall
	// back to a single group containing every file.
	Groups []Group

	// BranchCoverage is false when the collector recorded no branch data.
	BranchCoverage bool
}

// CoveredLines returns the number of covered lines across the run.
func (r *Result) CoveredLines() int { return r.Files.CoveredLines() }

// MissedLines returns the number of missed lines across the run.
func (r *Result) MissedLines() int { return r.Files.MissedLines() }

// CoveredPercent returns the run's line coverage in the range 0-100.
func (r *Result) CoveredPercent() float64 { return r.Files.CoveredPercent() }

// CoveredBranches returns the number of covered branches, 0 when branch
// data is absent.
func (r *Result) CoveredBranches() int {
	if !r.BranchCoverage {
		return 0
	}
	return r.Files.CoveredBranches()
}

// MissedBranches returns the number of missed branches, 0 when branch data
// is absent.
func (r *Result) MissedBranches() int {
	if !r.BranchCoverage {
		return 0
	}
	return r.Files.MissedBranches()
}

// TotalBranches returns covered plus missed branches.
func (r *Result) TotalBranches() int {
	return r.CoveredBranches() + r.MissedBranches()
}

// BranchCoveredPercent returns the run's branch coverage in the range 0-100.
func (r *Result) BranchCoveredPercent() float64 {
	return percent(r.CoveredBranches(), r.MissedBranches())
}

func percent(covered, missed int) float64 {
	total := covered + missed
	if total == 0 {
		return 0
	}
	return float64(covered) * 100 / float64(total)
}
