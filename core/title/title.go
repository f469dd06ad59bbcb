// Package title rewrites free-form page titles into the capitalization
// Wikipedia expects. A trailing parenthetical qualifier such as "(planet)"
// is kept exactly as typed.
package title

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// qualifierRegex matches a title ending in a single, non-nested parenthetical group.
var qualifierRegex = regexp.MustCompile(`^(.*?)(\s*\([^()]*\))$`)

// SplitQualifier separates a title into its base and trailing parenthetical
// qualifier. The qualifier is returned verbatim, including the whitespace
// that precedes it; the base has its whitespace collapsed. When there is no
// qualifier, base is the whole input.
func SplitQualifier(raw string) (base, qualifier string) {
	s := strings.TrimSpace(raw)
	m := qualifierRegex.FindStringSubmatch(s)
	if m == nil {
		return collapseSpaces(s), ""
	}
	return collapseSpaces(m[1]), m[2]
}

// Normalize title-cases raw, leaving any trailing parenthetical untouched.
//
//	"mercury (planet)" → "Mercury (planet)"
//	"the matrix"       → "The Matrix"
func Normalize(raw string) string {
	base, qualifier := SplitQualifier(raw)
	// cases.Caser keeps state between calls, so build one per use.
	caser := cases.Title(language.English)
	return caser.String(base) + qualifier
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
