package linediff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute_ReplaceMiddle(t *testing.T) {
	old := []string{"a", "b", "c"}
	new := []string{"a", "X", "c"}
	got := Compute(old, new)
	want := []Entry{
		{Kind: Same, Text: "a", OldLine: 1, NewLine: 1},
		{Kind: Remove, Text: "b", OldLine: 2},
		{Kind: Add, Text: "X", NewLine: 2},
		{Kind: Same, Text: "c", OldLine: 3, NewLine: 3},
	}
	require.Equal(t, want, got)
}

func TestCompute_Insert(t *testing.T) {
	old := []string{"a", "b"}
	new := []string{"a", "m", "b"}
	got := Compute(old, new)
	want := []Entry{
		{Kind: Same, Text: "a", OldLine: 1, NewLine: 1},
		{Kind: Add, Text: "m", NewLine: 2},
		{Kind: Same, Text: "b", OldLine: 2, NewLine: 3},
	}
	require.Equal(t, want, got)
}

func TestCompute_Delete(t *testing.T) {
	old := []string{"a", "b", "c"}
	new := []string{"a", "c"}
	got := Compute(old, new)
	want := []Entry{
		{Kind: Same, Text: "a", OldLine: 1, NewLine: 1},
		{Kind: Remove, Text: "b", OldLine: 2},
		{Kind: Same, Text: "c", OldLine: 2, NewLine: 2},
	}
	require.Equal(t, want, got)
}

func TestCompute_NoResyncFallsBackToBlocks(t *testing.T) {
	old := []string{"a", "b"}
	new := []string{"x", "y"}
	got := Compute(old, new)
	want := []Entry{
		{Kind: Remove, Text: "a", OldLine: 1},
		{Kind: Remove, Text: "b", OldLine: 2},
		{Kind: Add, Text: "x", NewLine: 1},
		{Kind: Add, Text: "y", NewLine: 2},
	}
	require.Equal(t, want, got)
}

func TestCompute_EmptySides(t *testing.T) {
	require.Empty(t, Compute(nil, nil))

	adds := Compute(nil, []string{"a"})
	require.Equal(t, []Entry{{Kind: Add, Text: "a", NewLine: 1}}, adds)

	dels := Compute([]string{"a"}, nil)
	require.Equal(t, []Entry{{Kind: Remove, Text: "a", OldLine: 1}}, dels)
}

func TestCompute_Reconstructs(t *testing.T) {
	// The entry stream must reconstruct both inputs exactly.
	old := []string{"a", "b", "c", "d", "e", "f"}
	new := []string{"a", "z", "c", "d", "q", "e", "f", "g"}
	entries := Compute(old, new)

	var gotOld, gotNew []string
	for _, e := range entries {
		if e.Kind != Add {
			gotOld = append(gotOld, e.Text)
		}
		if e.Kind != Remove {
			gotNew = append(gotNew, e.Text)
		}
	}
	require.Equal(t, old, gotOld)
	require.Equal(t, new, gotNew)
}

func TestChangedLines(t *testing.T) {
	entries := Compute([]string{"a", "b", "c"}, []string{"a", "X", "c"})
	require.Equal(t, 2, ChangedLines(entries))
	require.Equal(t, 0, ChangedLines(Compute([]string{"a"}, []string{"a"})))
}

func TestRender_NoChanges(t *testing.T) {
	entries := Compute([]string{"a", "b"}, []string{"a", "b"})
	require.Equal(t, "", Render(entries, DefaultContext))
}

func TestRender_ReplaceWithContext(t *testing.T) {
	entries := Compute([]string{"a", "b", "c"}, []string{"a", "X", "c"})
	want := strings.Join([]string{
		"  1 a",
		"- 2 b",
		"+ 2 X",
		"  3 c",
	}, "\n")
	require.Equal(t, want, Render(entries, DefaultContext))
}

func TestRender_ElidesDistantRegions(t *testing.T) {
	var old, new []string
	for i := 1; i <= 20; i++ {
		old = append(old, fmt.Sprintf("line %d", i))
		new = append(new, fmt.Sprintf("line %d", i))
	}
	new[2] = "changed three"
	new[16] = "changed seventeen"

	got := Render(Compute(old, new), 1)
	want := strings.Join([]string{
		"  2 line 2",
		"- 3 line 3",
		"+ 3 changed three",
		"  4 line 4",
		"...",
		"  16 line 16",
		"- 17 line 17",
		"+ 17 changed seventeen",
		"  18 line 18",
	}, "\n")
	require.Equal(t, want, got)
}
