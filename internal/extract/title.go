package extract

import "strings"

// DeriveTitle removes the date phrase at span from text and tidies the
// remainder. When nothing is left, the whole text is used instead so a title
// is never empty for non-blank input.
func DeriveTitle(text string, span Span) string {
	start := clamp(span.Start, 0, len(text))
	end := clamp(span.End, 0, len(text))
	if end <= start {
		return collapse(text)
	}

	if cleaned := collapse(text[:start] + " " + text[end:]); cleaned != "" {
		return cleaned
	}
	return collapse(text)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
