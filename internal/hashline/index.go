package hashline

// Index holds the per-line hashes of one snapshot of file content, plus a
// reverse hash→lines lookup. Build it once per edit call and treat it as
// read-only afterwards; it is never shared across calls.
type Index struct {
	hashes []string
	byHash map[string][]int // hash -> ascending 1-based line numbers
}

// NewIndex hashes every line and builds the reverse lookup.
func NewIndex(lines []string) *Index {
	idx := &Index{
		hashes: make([]string, len(lines)),
		byHash: make(map[string][]int, len(lines)),
	}
	for i, line := range lines {
		h := Hash(line)
		idx.hashes[i] = h
		idx.byHash[h] = append(idx.byHash[h], i+1)
	}
	return idx
}

// Len returns the number of indexed lines.
func (idx *Index) Len() int { return len(idx.hashes) }

// HashAt returns the hash of the 1-based line lineNum, or "" if out of range.
func (idx *Index) HashAt(lineNum int) string {
	if lineNum < 1 || lineNum > len(idx.hashes) {
		return ""
	}
	return idx.hashes[lineNum-1]
}

// LinesWithHash returns the ascending 1-based line numbers whose hash is h.
// The returned slice is owned by the index; callers must not mutate it.
func (idx *Index) LinesWithHash(h string) []int {
	return idx.byHash[h]
}

// LinesWithHashNear returns the subset of LinesWithHash(h) within dist lines
// of center (inclusive).
func (idx *Index) LinesWithHashNear(h string, center, dist int) []int {
	var out []int
	for _, ln := range idx.byHash[h] {
		if ln >= center-dist && ln <= center+dist {
			out = append(out, ln)
		}
	}
	return out
}
