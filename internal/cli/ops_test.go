package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		equal     bool
		sameID    bool
		wantOrder *int
	}{
		{"same text", []string{"abc", "abc"}, true, true, intPtr(0)},
		{"different capacity", []string{"--capacity", "64", "abc", "abc"}, true, true, intPtr(0)},
		{"ordered", []string{"abc", "abd"}, false, false, intPtr(-1)},
		{"prefix", []string{"abcd", "abc"}, false, false, intPtr(1)},
		{"values", []string{"--type", "int", "5", "5"}, true, true, nil},
		{"undefined", []string{"--undefined", "", ""}, true, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CompareResult
			resp := executeJSON(t, &got, append([]string{"compare"}, tt.args...)...)
			require.Equal(t, "ok", resp.Status, resp.Error)
			assert.Equal(t, tt.equal, got.Equal)
			assert.Equal(t, tt.equal, got.HashEqual)
			assert.Equal(t, tt.sameID, got.SameID)
			assert.Equal(t, tt.wantOrder, got.Order)
		})
	}
}

func TestCompare_Text(t *testing.T) {
	stdout, _, err := execute(t, "compare", "abc", "abd")
	require.NoError(t, err)
	assert.Contains(t, stdout, "equal:      false")
	assert.Contains(t, stdout, "order:      -1")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want any
	}{
		{"find", []string{"Hello, World", "o"}, float64(4)},
		{"find from pos", []string{"--pos", "5", "Hello, World", "o"}, float64(8)},
		{"rfind", []string{"--op", "rfind", "Hello, World", "o"}, float64(8)},
		{"not found", []string{"Hello, World", "xyz"}, "npos"},
		{"first not of", []string{"--op", "find_first_not_of", "  padded", " "}, float64(2)},
		{"last of", []string{"--op", "find_last_of", "Hello, World", "lo"}, float64(10)},
		{"starts with", []string{"--op", "starts_with", "--char", "char16", "Hello", "He"}, true},
		{"ends with", []string{"--op", "ends_with", "Hello", "He"}, false},
		{"contains", []string{"--op", "contains", "--char", "rune", "héllo", "él"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FindResult
			resp := executeJSON(t, &got, append([]string{"find"}, tt.args...)...)
			require.Equal(t, "ok", resp.Status, resp.Error)
			assert.Equal(t, tt.want, got.Result)
		})
	}
}

func TestFind_Errors(t *testing.T) {
	_, _, err := execute(t, "find", "--op", "explode", "abc", "a")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "find", "--type", "int", "5", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConcat(t *testing.T) {
	var got InspectResult
	resp := executeJSON(t, &got, "concat", "abc", "def")
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, "abcdef", got.Text)
	assert.Equal(t, 8, got.Capacity)
}

func TestConcat_AppendTruncates(t *testing.T) {
	var got InspectResult
	resp := executeJSON(t, &got, "concat", "--append", "--capacity", "4", "abc", "def")
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, "abcd", got.Text)
	assert.Equal(t, 4, got.Capacity)
}

func TestConcat_Errors(t *testing.T) {
	_, _, err := execute(t, "concat", "--undefined", "a", "b")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "concat", "abc")
	require.Error(t, err)
}

func intPtr(n int) *int { return &n }
