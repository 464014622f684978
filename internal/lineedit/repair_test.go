package lineedit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply_Repair_MergeDetection(t *testing.T) {
	// The caller sends the merged form of a continuation pair as a
	// single-line edit; the span widens to consume both lines.
	content := "total = a +\n    b\nrest()\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "total = a + b"},
	})
	require.NoError(t, err)
	require.Equal(t, "total = a + b\nrest()\n", res.NewContent)
	require.Equal(t, 1, res.FirstChangedLine)
}

func TestApply_Repair_MergeAnchoredOnLeadingLine(t *testing.T) {
	content := "total = a +\n    b\nrest()\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 1), NewText: "total = a + b"},
	})
	require.NoError(t, err)
	require.Equal(t, "total = a + b\nrest()\n", res.NewContent)
}

func TestApply_Repair_MergeSuppressedWhenNeighborTargeted(t *testing.T) {
	// Another edit claims the continuation line, so the merge heuristic must
	// leave it alone and the single-line edit applies literally.
	content := "total = a +\n    b\nrest()\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "total = a + b"},
		SetLine{Anchor: anchor(content, 1), NewText: "subtotal = a +"},
	})
	require.NoError(t, err)
	// Without the merge, indentation recovery still restores the target
	// line's leading whitespace.
	require.Equal(t, "subtotal = a +\n    total = a + b\nrest()\n", res.NewContent)
}

func TestApply_Repair_MergeNeedsContinuationToken(t *testing.T) {
	// The would-be leading line does not run on, so no merge happens even
	// though the replacement contains both lines' text.
	content := "total = a\n    b\nrest()\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "total = a b"},
	})
	require.NoError(t, err)
	require.Equal(t, "total = a\n    total = a b\nrest()\n", res.NewContent)
}

func TestApply_Repair_MergeRejectsOversizedReplacement(t *testing.T) {
	content := "total = a +\n    b\nrest()\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "total = a + b // recompute the subtotal here"},
	})
	require.NoError(t, err)
	require.Equal(t, "total = a +\n    total = a + b // recompute the subtotal here\nrest()\n", res.NewContent)
}

func TestApply_Repair_BoundaryEchoStripping(t *testing.T) {
	// Replacement for line B arrives bracketed by echoes of its neighbors.
	content := "alpha();\nbravo();\ncharlie();\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "alpha();\nBRAVO();\ncharlie();"},
	})
	require.NoError(t, err)
	require.Equal(t, "alpha();\nBRAVO();\ncharlie();\n", res.NewContent)
	require.Equal(t, 2, res.FirstChangedLine)
}

func TestApply_Repair_EchoStrippingIsWhitespaceInsensitive(t *testing.T) {
	content := "\talpha();\nbravo();\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "alpha();\nBRAVO();"},
	})
	require.NoError(t, err)
	require.Equal(t, "\talpha();\nBRAVO();\n", res.NewContent)
}

func TestApply_Repair_BlankLinesNeverEcho(t *testing.T) {
	// A blank boundary must not swallow an intentionally inserted blank line.
	content := "alpha();\n\ncharlie();\n"

	res, err := Apply(t.Context(), content, []Edit{
		InsertAfter{Anchor: anchor(content, 2), Text: "\nbravo();"},
	})
	require.NoError(t, err)
	require.Equal(t, "alpha();\n\n\nbravo();\ncharlie();\n", res.NewContent)
}

func TestApply_Repair_EchoOnInsert(t *testing.T) {
	content := "open()\nclose()\n"

	res, err := Apply(t.Context(), content, []Edit{
		InsertAfter{Anchor: anchor(content, 1), Text: "open()\nwork()"},
	})
	require.NoError(t, err)
	require.Equal(t, "open()\nwork()\nclose()\n", res.NewContent)
}

func TestApply_Repair_WrappedLineRestoration(t *testing.T) {
	// A long single line comes back split in two; the stripped concatenation
	// matches the unique original, so the original survives untouched and the
	// batch degenerates to a no-op plus one real edit.
	content := "result := compute(alphaValue, betaValue, gammaValue)\nfinish()\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 1), NewText: "result := compute(alphaValue,\n    betaValue, gammaValue)"},
		SetLine{Anchor: anchor(content, 2), NewText: "finish(now)"},
	})
	require.NoError(t, err)
	require.Equal(t, "result := compute(alphaValue, betaValue, gammaValue)\nfinish(now)\n", res.NewContent)
	require.Len(t, res.Noops, 1)
	require.Equal(t, 0, res.Noops[0].EditIndex)
}

func TestApply_Repair_WrappedRestorationRequiresUniqueOriginal(t *testing.T) {
	// The stripped form appears twice in the file, so the split replacement
	// stands as written.
	content := "alpha + beta\nalpha+beta\nend\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 1), NewText: "alpha +\nbeta"},
	})
	require.NoError(t, err)
	require.Equal(t, "alpha +\nbeta\nalpha+beta\nend\n", res.NewContent)
}

func TestApply_Repair_SingleLineWhitespaceCanonicalization(t *testing.T) {
	// A range replacement supplies the merged line without the original's
	// leading tab; the unique stripped match restores the original exactly,
	// indentation included.
	content := "\tresult := compute(alpha, beta, gamma)\nfoo()\n\tresult := compute(alpha,\n\t\tbeta, gamma)\n"

	res, err := Apply(t.Context(), content, []Edit{
		ReplaceLines{
			StartAnchor: anchor(content, 3),
			EndAnchor:   anchor(content, 4),
			NewText:     "result := compute(alpha, beta, gamma)",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "\tresult := compute(alpha, beta, gamma)\nfoo()\n\tresult := compute(alpha, beta, gamma)\n", res.NewContent)
}

func TestApply_Repair_IndentationRecovery(t *testing.T) {
	// Same-length replacement lost its leading whitespace; the original
	// line's indentation is carried over.
	content := "func f() {\n\treturn 1\n}\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "return 2"},
	})
	require.NoError(t, err)
	require.Equal(t, "func f() {\n\treturn 2\n}\n", res.NewContent)
}

func TestApply_Repair_IndentationKeptWhenReplacementHasIts(t *testing.T) {
	content := "func f() {\n\treturn 1\n}\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 2), NewText: "  return 2"},
	})
	require.NoError(t, err)
	require.Equal(t, "func f() {\n  return 2\n}\n", res.NewContent)
}

func TestApply_Repair_ConfusableHyphenIsNoop(t *testing.T) {
	// The replacement differs from the target only by an en dash standing in
	// for the ASCII hyphen. Folding makes it identical, so nothing changes
	// and the batch fails as producing no change.
	content := "x := a - b\ny := 2\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 1), NewText: "x := a – b"},
	})
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrNoChangeProduced)
}

func TestApply_Repair_ConfusableHyphenWithRealChange(t *testing.T) {
	// Dash folding applies alongside a real edit elsewhere in the batch.
	content := "x := a - b\ny := 2\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 1), NewText: "x := a – b"},
		SetLine{Anchor: anchor(content, 2), NewText: "y := 3"},
	})
	require.NoError(t, err)
	require.Equal(t, "x := a - b\ny := 3\n", res.NewContent)
	require.Len(t, res.Noops, 1)
}

func TestApply_Repair_GenuineDashChangeIsApplied(t *testing.T) {
	// The replacement changes more than dashes, so no folding happens and the
	// unicode dash lands in the file as written.
	content := "x := a - b\n"

	res, err := Apply(t.Context(), content, []Edit{
		SetLine{Anchor: anchor(content, 1), NewText: "z := a – b"},
	})
	require.NoError(t, err)
	require.Equal(t, "z := a – b\n", res.NewContent)
}

func TestStripContinuation(t *testing.T) {
	require.Equal(t, "total=a", stripContinuation("total=a+"))
	require.Equal(t, "f(a", stripContinuation("f(a,"))
	require.Equal(t, "done()", stripContinuation("done()"))
	require.Equal(t, "", stripContinuation("+,("))
}

func TestRestoreWrapped_PrefersLongerRuns(t *testing.T) {
	// Both the 2-line and the 3-line interpretation exist in the file; the
	// longer run wins.
	lines := []string{"aaabbbccc", "aaabbb"}
	stripped := buildStrippedIndex(lines)

	out := restoreWrapped([]string{"aaa", "bbb", "ccc"}, stripped)
	require.Equal(t, []string{"aaabbbccc"}, out)
}

func TestRestoreWrapped_ShortConcatenationIgnored(t *testing.T) {
	stripped := buildStrippedIndex([]string{"abc"})
	out := restoreWrapped([]string{"a", "bc"}, stripped)
	require.Equal(t, []string{"a", "bc"}, out)
}

func TestBuildStrippedIndex_CountsDuplicates(t *testing.T) {
	idx := buildStrippedIndex([]string{"a b", "ab", "c"})
	require.Equal(t, 2, idx["ab"].count)
	require.Equal(t, 1, idx["c"].count)
	require.Equal(t, "c", idx["c"].text)
}

func TestFoldDashes(t *testing.T) {
	require.Equal(t, "a-b-c", foldDashes("a–b—c"))
	require.Equal(t, "plain", foldDashes("plain"))
	require.False(t, strings.Contains(foldDashes("x−y"), "−"))
}
