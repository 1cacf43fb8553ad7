package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	// isoDateRe matches 2025-06-20 and 2025/06/20. when reads the tail of
	// such a date as a clock time, so these are resolved here instead.
	isoDateRe = regexp.MustCompile(`\b(\d{4})([-/])(\d{1,2})([-/])(\d{1,2})\b`)

	// clauseBreakRe separates alternatives; when clusters phrases across it.
	clauseBreakRe = regexp.MustCompile(`(?i)\s(?:or|and|then|but)\s|;`)

	// clockJoinRe is the gap allowed between a date and the clock that
	// completes it ("2025-06-20 5pm", "2025-06-20 at 5pm").
	clockJoinRe = regexp.MustCompile(`(?i)^\s*(?:at\s+)?$`)
)

var whenOptions = rules.Options{
	Afternoon:    15,
	Evening:      18,
	Morning:      8,
	Noon:         12,
	Distance:     5,
	MatchByOrder: true,
}

// WhenMatcher finds English date/time phrases with olebedev/when, plus
// numeric YYYY-MM-DD dates. It reports at most two matches: the numeric
// date and the first phrase the parser resolves elsewhere in the text.
type WhenMatcher struct {
	parser *when.Parser
}

func NewWhenMatcher() *WhenMatcher {
	opts := whenOptions
	w := when.New(&opts)
	w.Add(en.All...)
	w.Add(common.All...)
	return &WhenMatcher{parser: w}
}

func (m *WhenMatcher) Match(text string, base time.Time) ([]Match, error) {
	iso, masked, ok := findISODate(text, base.Location())

	r, err := m.leftmostPhrase(masked, base)
	if err != nil {
		return nil, err
	}

	var out []Match
	if ok {
		if r != nil && r.Index >= iso.Span.End && clockJoinRe.MatchString(text[iso.Span.End:r.Index]) &&
			strings.ContainsAny(r.Text, "0123456789") {
			// the phrase only supplies a clock for the date before it
			if !iso.Time.IsZero() {
				y, mo, d := iso.Time.Date()
				iso.Time = time.Date(y, mo, d, r.Time.Hour(), r.Time.Minute(), 0, 0, iso.Time.Location())
			}
			iso.Span.End = r.Index + len(r.Text)
			iso.Text = text[iso.Span.Start:iso.Span.End]
			r = nil
		}
		out = append(out, iso)
	}
	if r != nil {
		out = append(out, Match{
			Span: Span{Start: r.Index, End: r.Index + len(r.Text)},
			Text: r.Text,
			Time: r.Time,
		})
	}
	return out, nil
}

// leftmostPhrase parses text and, when the parser glued alternatives such as
// "today 7am or friday" into one cluster, reparses the part before the break
// so only the first alternative is resolved.
func (m *WhenMatcher) leftmostPhrase(text string, base time.Time) (*when.Result, error) {
	r, err := m.parser.Parse(text, base)
	for err == nil && r != nil {
		loc := clauseBreakRe.FindStringIndex(r.Text)
		if loc == nil {
			break
		}
		r, err = m.parser.Parse(text[:r.Index+loc[0]], base)
	}
	return r, err
}

// findISODate returns the first numeric date in text and a copy of text with
// that date blanked out. Byte offsets are unchanged by the blanking. An
// impossible date such as 2025-02-30 is reported with a zero Time.
func findISODate(text string, loc *time.Location) (Match, string, bool) {
	idx := isoDateRe.FindStringSubmatchIndex(text)
	if idx == nil {
		return Match{}, text, false
	}
	// mixed separators like 2025-06/20 are not dates
	if text[idx[4]:idx[5]] != text[idx[8]:idx[9]] {
		return Match{}, text, false
	}

	year, _ := strconv.Atoi(text[idx[2]:idx[3]])
	month, _ := strconv.Atoi(text[idx[6]:idx[7]])
	day, _ := strconv.Atoi(text[idx[10]:idx[11]])

	match := Match{
		Span: Span{Start: idx[0], End: idx[1]},
		Text: text[idx[0]:idx[1]],
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if y, mo, d := t.Date(); y == year && int(mo) == month && d == day {
		match.Time = t
	}

	masked := text[:idx[0]] + strings.Repeat(" ", idx[1]-idx[0]) + text[idx[1]:]
	return match, masked, true
}

var _ Matcher = (*WhenMatcher)(nil)
