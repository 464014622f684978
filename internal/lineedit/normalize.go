package lineedit

import (
	"regexp"
	"strings"
)

// hashPrefixPattern matches an echoed LINE:HASH| display prefix at the start
// of a replacement line.
var hashPrefixPattern = regexp.MustCompile(`^\s*\d+\s*:\s*[0-9a-f]{2}\|`)

// normalizeReplacement strips artifacts a caller may have echoed back from
// prior engine output: LINE:HASH| display prefixes, or diff-style leading '+'
// markers. A prefix is only stripped when at least half of the non-empty
// lines carry it, and only one of the two modes ever applies; hash prefixes
// take priority.
func normalizeReplacement(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")

	nonEmpty := 0
	hashPrefixed := 0
	plusPrefixed := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if hashPrefixPattern.MatchString(line) {
			hashPrefixed++
		}
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "++") {
			plusPrefixed++
		}
	}
	if nonEmpty == 0 {
		return text
	}

	switch {
	case hashPrefixed*2 >= nonEmpty:
		for i, line := range lines {
			if m := hashPrefixPattern.FindString(line); m != "" {
				lines[i] = line[len(m):]
			}
		}
	case plusPrefixed*2 >= nonEmpty:
		for i, line := range lines {
			if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "++") {
				lines[i] = line[1:]
			}
		}
	default:
		return text
	}
	return strings.Join(lines, "\n")
}
