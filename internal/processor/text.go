package processor

import "strings"

// entityReplacements covers the entities Reddit leaves in selftext
var entityReplacements = map[string]string{
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   "\"",
	"&#39;":    "'",
	"&apos;":   "'",
	"&nbsp;":   " ",
	"&#x200B;": "",
}

// zeroWidth characters show up in copy-pasted Reddit text
var zeroWidth = []string{"\u200B", "\u200C", "\u200D", "\uFEFF"}

// CleanText decodes common entities, strips zero-width and control
// characters, and collapses runs of whitespace to single spaces (newlines
// inside paragraphs included).
func CleanText(s string) string {
	for entity, replacement := range entityReplacements {
		s = strings.ReplaceAll(s, entity, replacement)
	}
	for _, z := range zeroWidth {
		s = strings.ReplaceAll(s, z, "")
	}

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			space = true
		case r < 0x20 || r == 0x7f:
			// drop other control characters
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
