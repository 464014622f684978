package filegrep

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchoredit/anchoredit/internal/hashline"
)

func TestSearch(t *testing.T) {
	content := "func a() {\n\treturn 1\n}\nfunc b() {\n\treturn 2\n}\n"

	matches, err := Search(content, `^func `, 0)
	require.NoError(t, err)
	require.Equal(t, []Match{
		{Line: 1, Text: "func a() {"},
		{Line: 4, Text: "func b() {"},
	}, matches)
}

func TestSearch_MaxMatches(t *testing.T) {
	content := "x\nx\nx\n"
	matches, err := Search(content, "x", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestSearch_BadPattern(t *testing.T) {
	_, err := Search("a\n", "(", 0)
	require.Error(t, err)
}

func TestSearch_NoMatches(t *testing.T) {
	matches, err := Search("a\nb\n", "zzz", 0)
	require.NoError(t, err)
	require.Empty(t, matches)
	require.Equal(t, "", Render("a\nb\n", matches, 2))
}

func TestRender_AnchorsAndMarkers(t *testing.T) {
	content := "one\ntwo\nthree\n"
	matches, err := Search(content, "two", 0)
	require.NoError(t, err)

	got := Render(content, matches, 1)
	want := strings.Join([]string{
		"    1:" + hashline.Hash("one") + "|one",
		">>> 2:" + hashline.Hash("two") + "|two",
		"    3:" + hashline.Hash("three") + "|three",
	}, "\n")
	require.Equal(t, want, got)
}

func TestRender_MergesOverlappingWindows(t *testing.T) {
	content := "a\nhit\nb\nhit\nc\n"
	matches, err := Search(content, "hit", 0)
	require.NoError(t, err)

	got := Render(content, matches, 1)
	require.NotContains(t, got, "...")
	// Every line 1-5 appears exactly once.
	require.Len(t, strings.Split(got, "\n"), 5)
}

func TestRender_SeparatesDistantGroups(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	content := strings.Replace(sb.String(), "line 3", "hit 3", 1)
	content = strings.Replace(content, "line 17", "hit 17", 1)

	matches, err := Search(content, "hit", 0)
	require.NoError(t, err)
	got := Render(content, matches, 1)
	require.Contains(t, got, "...")
	require.Contains(t, got, ">>> 3:")
	require.Contains(t, got, ">>> 17:")
}
