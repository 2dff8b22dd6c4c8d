package coverage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gcovrReport = `{
  "gcovr/format_version": "0.5",
  "files": [
    {
      "file": "src/main.c",
      "functions": [],
      "lines": [
        {"line_number": 1, "count": 0, "branches": [], "gcovr/noncode": true},
        {"line_number": 3, "count": 5, "branches": [
          {"count": 5, "fallthrough": true, "throw": false},
          {"count": 0, "fallthrough": false, "throw": false}
        ], "gcovr/noncode": false},
        {"line_number": 4, "count": 0, "branches": [], "gcovr/noncode": false},
        {"line_number": 3, "count": 2, "branches": [], "gcovr/noncode": false},
        {"line_number": 7, "count": 1, "branches": [], "gcovr/excluded": true}
      ]
    },
    {
      "file": "/proj/include/util.h",
      "lines": [
        {"line_number": 2, "count": 1, "branches": []}
      ]
    },
    {
      "file": "/usr/include/stdio.h",
      "lines": [
        {"line_number": 9, "count": 1, "branches": []}
      ]
    }
  ]
}`

func TestParseGcovr(t *testing.T) {
	r, err := ParseGcovr([]byte(gcovrReport), "/proj", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultGcovrCommand, r.CommandName)
	assert.True(t, r.BranchCoverage)
	require.Len(t, r.Files, 2)

	mainC := r.Files[0]
	assert.Equal(t, "/proj/src/main.c", mainC.Filename)
	assert.Equal(t, []LineCoverage{
		{Number: 1, Hits: 0, Excluded: true},
		{Number: 3, Hits: 7},
		{Number: 4, Hits: 0},
		{Number: 7, Hits: 1, Excluded: true},
	}, mainC.Lines)
	assert.Equal(t, []BranchCoverage{
		{StartLine: 3, Hits: 5},
		{StartLine: 3, Hits: 0},
	}, mainC.Branches)

	assert.Equal(t, "/proj/include/util.h", r.Files[1].Filename)
}

func TestParseGcovr_RepeatedLineMergesBranches(t *testing.T) {
	data := `{"files": [{"file": "tmpl.h", "lines": [
	  {"line_number": 3, "count": 1, "branches": [{"count": 1}, {"count": 0}]},
	  {"line_number": 3, "count": 2, "branches": [{"count": 1}, {"count": 0}]},
	  {"line_number": 5, "count": 0, "branches": [{"count": 0}, {"count": 3}]}
	]}]}`
	r, err := ParseGcovr([]byte(data), "/proj", "")
	require.NoError(t, err)
	require.Len(t, r.Files, 1)

	f := r.Files[0]
	assert.Equal(t, []LineCoverage{{Number: 3, Hits: 3}, {Number: 5, Hits: 0}}, f.Lines)
	assert.Equal(t, []BranchCoverage{
		{StartLine: 3, Hits: 2},
		{StartLine: 3, Hits: 0},
		{StartLine: 5, Hits: 0},
		{StartLine: 5, Hits: 3},
	}, f.Branches)
	assert.Equal(t, 2, f.CoveredBranches())
	assert.Equal(t, 2, f.MissedBranches())
}

func TestParseGcovr_CommandName(t *testing.T) {
	r, err := ParseGcovr([]byte(gcovrReport), "/proj", "ctest")
	require.NoError(t, err)
	assert.Equal(t, "ctest", r.CommandName)
}

func TestParseGcovr_NoBranches(t *testing.T) {
	data := `{"files": [{"file": "a.c", "lines": [{"line_number": 1, "count": 1}]}]}`
	r, err := ParseGcovr([]byte(data), "/proj", "")
	require.NoError(t, err)
	assert.False(t, r.BranchCoverage)
}

func TestParseGcovr_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		noCov bool
	}{
		{name: "invalid json", data: `[`},
		{name: "missing files", data: `{"gcovr/format_version": "0.5"}`, noCov: true},
		{name: "empty files", data: `{"files": []}`, noCov: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGcovr([]byte(tt.data), "/proj", "")
			require.Error(t, err)
			assert.Equal(t, tt.noCov, errors.Is(err, ErrNoCoverage), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	gcovrPath := filepath.Join(dir, "coverage.json")
	require.NoError(t, os.WriteFile(gcovrPath, []byte(gcovrReport), 0644))
	resultSetPath := filepath.Join(dir, ".resultset.json")
	require.NoError(t, os.WriteFile(resultSetPath, []byte(resultSet), 0644))

	tests := []struct {
		name    string
		format  Format
		path    string
		wantErr bool
		files   int
	}{
		{name: "gcovr", format: FormatGcovr, path: gcovrPath, files: 2},
		{name: "simplecov", format: FormatSimpleCov, path: resultSetPath, files: 2},
		{name: "empty path", format: FormatGcovr, path: "", wantErr: true},
		{name: "missing file", format: FormatGcovr, path: filepath.Join(dir, "nope.json"), wantErr: true},
		{name: "unknown format", format: Format("lcov"), path: gcovrPath, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Load(tt.format, tt.path, "/proj", "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, r.Files, tt.files)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SimpleCov ")
	require.NoError(t, err)
	assert.Equal(t, FormatSimpleCov, f)

	f, err = ParseFormat("gcovr")
	require.NoError(t, err)
	assert.Equal(t, FormatGcovr, f)

	_, err = ParseFormat("lcov")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
