package consolidate

import (
	"regexp"
	"strings"
)

// regexSpecials are the metacharacters escaped before wildcard translation.
const regexSpecials = `\.+()|^$[]{}`

// wildcardMatch reports whether text matches pattern in full. The pattern
// alphabet is literal characters plus '*' (any sequence) and '?' (exactly one
// character); matching is anchored and case-sensitive.
//
// If the translated expression fails to compile, matching degrades to a
// substring test of the pattern with its wildcards stripped. The fallback is
// lossy on purpose: a pattern we cannot compile should still catch the common
// case rather than silently match nothing.
func wildcardMatch(pattern, text string) bool {
	var translated strings.Builder
	translated.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			translated.WriteString(".*")
		case '?':
			translated.WriteString(".")
		default:
			if strings.ContainsRune(regexSpecials, r) {
				translated.WriteString(`\`)
			}
			translated.WriteRune(r)
		}
	}
	translated.WriteString("$")

	compiled, err := regexp.Compile(translated.String())
	if err != nil {
		stripped := strings.NewReplacer("*", "", "?", "").Replace(pattern)
		return strings.Contains(text, stripped)
	}
	return compiled.MatchString(text)
}
