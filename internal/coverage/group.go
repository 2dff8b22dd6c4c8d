package coverage

import (
	"path/filepath"
	"strings"
)

// UngroupedName is the group that collects files matching no rule.
const UngroupedName = "Ungrouped"

// GroupRule assigns files under a path prefix to a named group.
type GroupRule struct {
	Name string `mapstructure:"name"`

	// Prefix is a path relative to the project root, e.g. "app/models".
	Prefix string `mapstructure:"prefix"`
}

// GroupFiles partitions files by rules. The first matching rule wins, so
// every file lands in exactly one group. Files matching no rule are
// collected in an Ungrouped group appended last. Empty groups are dropped.
// With no rules it returns nil, leaving the fallback to the formatter.
func GroupFiles(root string, files FileList, rules []GroupRule) []Group {
	if len(rules) == 0 {
		return nil
	}

	groups := make([]Group, len(rules))
	for i, rule := range rules {
		groups[i].Name = rule.Name
	}
	var ungrouped FileList

	for _, f := range files {
		idx := matchRule(root, f.Filename, rules)
		if idx < 0 {
			ungrouped = append(ungrouped, f)
			continue
		}
		groups[idx].Files = append(groups[idx].Files, f)
	}

	out := make([]Group, 0, len(groups)+1)
	for _, g := range groups {
		if len(g.Files) > 0 {
			out = append(out, g)
		}
	}
	if len(ungrouped) > 0 {
		out = append(out, Group{Name: UngroupedName, Files: ungrouped})
	}
	return out
}

func matchRule(root, filename string, rules []GroupRule) int {
	rel, err := filepath.Rel(root, filename)
	if err != nil {
		return -1
	}
	rel = filepath.ToSlash(rel)
	for i, rule := range rules {
		prefix := strings.Trim(filepath.ToSlash(rule.Prefix), "/")
		if prefix == "" {
			continue
		}
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return i
		}
	}
	return -1
}
