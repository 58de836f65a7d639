package tweet

import "regexp"

// mentionRe matches an @-mention: the marker followed by 1-15 handle
// characters. Twitter caps handles at 15 characters; longer runs are
// truncated to the first 15 by the bounded quantifier, matching the API's
// own handle rules. A bare @ at the end of the text, or one followed by an
// illegal rune, simply fails to match.
var mentionRe = regexp.MustCompile(`@([A-Za-z0-9_]{1,15})`)

// Mention is a single @-reference found in tweet text. Handle is the
// canonical lowercase form used for node identity; Display preserves the
// spelling as written for labels.
type Mention struct {
	Handle  string
	Display string
}

// Mentions extracts all @-mentions from text in order of appearance.
// Duplicates are preserved; deduplication and weighting happen in the
// graph build. Returns nil when text contains no mentions.
func Mentions(text string) []Mention {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Mention, len(matches))
	for i, m := range matches {
		out[i] = Mention{Handle: Canonical(m[1]), Display: m[1]}
	}
	return out
}
