package hashline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash_WhitespaceInsensitive(t *testing.T) {
	// Leading, trailing, and internal whitespace must not affect the hash.
	variants := []string{
		"foo := bar(1, 2)",
		"  foo := bar(1, 2)",
		"\tfoo\t:=\tbar(1,\t2)",
		"foo:=bar(1,2)   ",
		"foo := bar( 1 , 2 )\r",
	}
	want := Hash(variants[0])
	for _, v := range variants[1:] {
		require.Equal(t, want, Hash(v), "variant %q", v)
	}
}

func TestHash_OrderSensitive(t *testing.T) {
	require.NotEqual(t, Hash("ab"), Hash("ba"))
}

func TestHash_Format(t *testing.T) {
	h := Hash("anything at all")
	require.Len(t, h, 2)
	require.Regexp(t, "^[0-9a-f]{2}$", h)
	require.Equal(t, "00", Hash(""))
	require.Equal(t, "00", Hash("   \t "))
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Ref
		wantErr bool
	}{
		{name: "canonical", in: "12:ab", want: Ref{Line: 12, Hash: "ab"}},
		{name: "echoed payload", in: "12:ab|function hello() {", want: Ref{Line: 12, Hash: "ab"}},
		{name: "space padded colon", in: "12 : ab", want: Ref{Line: 12, Hash: "ab"}},
		{name: "surrounding space", in: "  3:0f ", want: Ref{Line: 3, Hash: "0f"}},
		{name: "uppercase hash", in: "12:AB", wantErr: true},
		{name: "missing hash", in: "12:", wantErr: true},
		{name: "one hex digit", in: "12:a", wantErr: true},
		{name: "three hex digits", in: "12:abc", wantErr: true},
		{name: "line zero", in: "0:ab", wantErr: true},
		{name: "negative line", in: "-1:ab", wantErr: true},
		{name: "no colon", in: "12ab", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRef(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	line := "function hello() {"
	require.Equal(t, "12:"+Hash(line)+"|"+line, Format(12, line))
}

func TestFormatLines(t *testing.T) {
	lines := []string{"a", "b"}
	got := FormatLines(lines, 4)
	want := "5:" + Hash("a") + "|a\n6:" + Hash("b") + "|b\n"
	require.Equal(t, want, got)
}

func TestIndex(t *testing.T) {
	lines := []string{"foo();", "bar();", "foo();", "baz();"}
	idx := NewIndex(lines)
	require.Equal(t, 4, idx.Len())

	fooHash := Hash("foo();")
	require.Equal(t, fooHash, idx.HashAt(1))
	require.Equal(t, fooHash, idx.HashAt(3))
	require.Equal(t, "", idx.HashAt(0))
	require.Equal(t, "", idx.HashAt(5))

	require.Equal(t, []int{1, 3}, idx.LinesWithHash(fooHash))
	require.Equal(t, []int{1}, idx.LinesWithHashNear(fooHash, 1, 1))
	require.Equal(t, []int{1, 3}, idx.LinesWithHashNear(fooHash, 2, 1))
	require.Empty(t, idx.LinesWithHashNear("zz", 2, 20))
}
