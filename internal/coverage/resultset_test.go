package coverage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultSet = `{
  "RSpec": {
    "coverage": {
      "/proj/lib/a.rb": {
        "lines": [null, 1, 0, "ignored", 4],
        "branches": {
          "[:if, 0, 2, 4, 2, 20]": {
            "[:then, 1, 2, 4, 2, 10]": 1,
            "[:else, 2, 2, 4, 2, 20]": 0
          }
        }
      },
      "/proj/lib/b.rb": {
        "lines": [1, null],
        "branches": {}
      },
      "/elsewhere/c.rb": {
        "lines": [1]
      }
    },
    "timestamp": 1700000000
  },
  "Minitest": {
    "coverage": {
      "/proj/lib/a.rb": {
        "lines": [null, 2, 3, null, 0],
        "branches": {
          "[:if, 0, 2, 4, 2, 20]": {
            "[:then, 1, 2, 4, 2, 10]": 0,
            "[:else, 2, 2, 4, 2, 20]": 5
          }
        }
      }
    },
    "timestamp": 1700000001
  }
}`

func TestParseResultSet_SingleCommand(t *testing.T) {
	r, err := ParseResultSet([]byte(resultSet), "/proj", "RSpec")
	require.NoError(t, err)

	assert.Equal(t, "RSpec", r.CommandName)
	assert.True(t, r.BranchCoverage)
	require.Len(t, r.Files, 2, "file outside root must be dropped")

	a := r.Files[0]
	assert.Equal(t, "/proj/lib/a.rb", a.Filename)
	assert.Equal(t, []LineCoverage{
		{Number: 1, Excluded: true},
		{Number: 2, Hits: 1},
		{Number: 3, Hits: 0},
		{Number: 4, Excluded: true},
		{Number: 5, Hits: 4},
	}, a.Lines)
	assert.Equal(t, []BranchCoverage{
		{StartLine: 2, Hits: 1},
		{StartLine: 2, Hits: 0},
	}, a.Branches)

	assert.Equal(t, "/proj/lib/b.rb", r.Files[1].Filename)
	assert.Empty(t, r.Files[1].Branches)
}

func TestParseResultSet_MergesCommands(t *testing.T) {
	r, err := ParseResultSet([]byte(resultSet), "/proj", "")
	require.NoError(t, err)

	assert.Equal(t, "RSpec, Minitest", r.CommandName)
	a := r.Files[0]
	assert.Equal(t, []LineCoverage{
		{Number: 1, Excluded: true},
		{Number: 2, Hits: 3},
		{Number: 3, Hits: 3},
		{Number: 4, Excluded: true},
		{Number: 5, Hits: 4},
	}, a.Lines)
	assert.Equal(t, []BranchCoverage{
		{StartLine: 2, Hits: 1},
		{StartLine: 2, Hits: 5},
	}, a.Branches)
}

func TestParseResultSet_LegacyLineArrays(t *testing.T) {
	data := `{"Unit Tests": {"coverage": {"/proj/x.rb": [1, null, 0]}, "timestamp": 1}}`
	r, err := ParseResultSet([]byte(data), "/proj", "")
	require.NoError(t, err)

	assert.Equal(t, "Unit Tests", r.CommandName)
	assert.False(t, r.BranchCoverage)
	require.Len(t, r.Files, 1)
	assert.Equal(t, 1, r.Files[0].CoveredLines())
	assert.Equal(t, 1, r.Files[0].MissedLines())
}

func TestParseResultSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		command string
		noCov   bool
	}{
		{name: "invalid json", data: `{"RSpec": `},
		{name: "empty object", data: `{}`, noCov: true},
		{name: "unknown command", data: resultSet, command: "Cucumber", noCov: true},
		{
			name: "malformed branch key",
			data: `{"RSpec": {"coverage": {"/proj/a.rb": {"lines": [1], "branches": {"c": {"[:then]": 1}}}}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResultSet([]byte(tt.data), "/proj", tt.command)
			require.Error(t, err)
			assert.Equal(t, tt.noCov, errors.Is(err, ErrNoCoverage), "got %v", err)
		})
	}
}

func TestBranchStartLine(t *testing.T) {
	n, err := branchStartLine("[:then, 1, 12, 4, 12, 10]")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = branchStartLine("[:then, 1, x]")
	assert.Error(t, err)
}
