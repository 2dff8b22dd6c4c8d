package cobertura

import "encoding/xml"

// Coverage is the root element of a Cobertura report. Field order is the
// attribute and child order of the serialized document.
type Coverage struct {
	XMLName         xml.Name `xml:"coverage"`
	LineRate        string   `xml:"line-rate,attr"`
	LinesCovered    int      `xml:"lines-covered,attr"`
	LinesValid      int      `xml:"lines-valid,attr"`
	BranchRate      string   `xml:"branch-rate,attr"`
	BranchesCovered int      `xml:"branches-covered,attr"`
	BranchesValid   int      `xml:"branches-valid,attr"`
	Complexity      string   `xml:"complexity,attr"`
	Version         string   `xml:"version,attr"`
	Timestamp       int64    `xml:"timestamp,attr"`

	Sources  Sources  `xml:"sources"`
	Packages Packages `xml:"packages"`
}

// Sources lists the source roots; reports carry a single project root.
type Sources struct {
	Source []Source `xml:"source"`
}

// Source is one source root path.
type Source struct {
	Path string `xml:",chardata"`
}

// Packages wraps the package list.
type Packages struct {
	Package []Package `xml:"package"`
}

// Package is one file group.
type Package struct {
	Name       string  `xml:"name,attr"`
	LineRate   string  `xml:"line-rate,attr"`
	BranchRate string  `xml:"branch-rate,attr"`
	Complexity string  `xml:"complexity,attr"`
	Classes    Classes `xml:"classes"`
}

// Classes wraps the classes of a package.
type Classes struct {
	Class []Class `xml:"class"`
}

// Class describes one source file.
type Class struct {
	Name       string  `xml:"name,attr"`
	Filename   string  `xml:"filename,attr"`
	LineRate   string  `xml:"line-rate,attr"`
	BranchRate string  `xml:"branch-rate,attr"`
	Complexity string  `xml:"complexity,attr"`
	Methods    Methods `xml:"methods"`
	Lines      Lines   `xml:"lines"`

	// Branches is nil for files without any covered or missed branch, in
	// which case the element is left out entirely.
	Branches *Branches `xml:"branches,omitempty"`
}

// Methods is always empty; per-method coverage is not reported.
type Methods struct{}

// Lines wraps the relevant lines of a class in ascending order.
type Lines struct {
	Line []Line `xml:"line"`
}

// Line is one relevant source line.
type Line struct {
	Number int    `xml:"number,attr"`
	Branch string `xml:"branch,attr"`
	Hits   int    `xml:"hits,attr"`
}

// Branches wraps the branches of a class.
type Branches struct {
	Branch []Branch `xml:"branch"`
}

// Branch is one covered or missed branch, keyed by its start line.
type Branch struct {
	Number int    `xml:"number,attr"`
	Branch string `xml:"branch,attr"`
	Hits   int    `xml:"hits,attr"`
}
