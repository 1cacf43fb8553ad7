package extract_test

import (
	"errors"
	"testing"

	"github.com/jaekwang-park/reminder-api/internal/extract"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		span extract.Span
		want string
	}{
		{"suffix phrase", "Doctor tomorrow 5pm", extract.Span{Start: 7, End: 19}, "Doctor"},
		{"prefix phrase", "tomorrow buy milk", extract.Span{Start: 0, End: 8}, "buy milk"},
		{"middle phrase joins sides", "Call mom friday about dinner", extract.Span{Start: 9, End: 15}, "Call mom about dinner"},
		{"no gap around phrase", "Lunch(tomorrow)ok", extract.Span{Start: 6, End: 14}, "Lunch( )ok"},
		{"whitespace collapsed", "  Pick \t up\n kids   monday  ", extract.Span{Start: 20, End: 26}, "Pick up kids"},
		{"whole text falls back", "tomorrow 5pm", extract.Span{Start: 0, End: 12}, "tomorrow 5pm"},
		{"fallback is normalised", "  tomorrow   5pm ", extract.Span{Start: 2, End: 16}, "tomorrow 5pm"},
		{"span past end is clamped", "Doctor tomorrow", extract.Span{Start: 7, End: 99}, "Doctor"},
		{"inverted span removes nothing", "Doctor  tomorrow", extract.Span{Start: 10, End: 2}, "Doctor tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.DeriveTitle(tt.text, tt.span); got != tt.want {
				t.Errorf("DeriveTitle(%q, %+v) = %q, want %q", tt.text, tt.span, got, tt.want)
			}
		})
	}
}

func TestDeriveTitle_FixedPoint(t *testing.T) {
	tests := []struct {
		name    string
		matcher extract.Matcher
		inputs  []string
	}{
		{
			name:    "phrases",
			matcher: phraseMatcher{},
			inputs: []string{
				"Doctor tomorrow 5pm",
				"tomorrow 9am standup",
				"Submit   report friday",
				"Water plants today",
				"Renew passport on monday 10am please",
			},
		},
		{
			name:    "when",
			matcher: extract.NewWhenMatcher(),
			inputs: []string{
				"Doctor tomorrow 5pm",
				"Meeting next monday at 10am",
				"Team sync June 12",
				"Report due 2025-06-20",
				"Submit   report friday",
			},
		},
	}

	for _, tt := range tests {
		ex := extract.NewExtractor(tt.matcher)
		for _, text := range tt.inputs {
			t.Run(tt.name+"/"+text, func(t *testing.T) {
				first, err := ex.Extract(text, now)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				title := extract.DeriveTitle(text, first.Span)

				again, err := ex.Extract(title, now)
				if errors.Is(err, extract.ErrNoDateFound) {
					return
				}
				if err != nil {
					t.Fatalf("unexpected error on re-extraction: %v", err)
				}
				if rederived := extract.DeriveTitle(title, again.Span); rederived != title {
					t.Errorf("title changed on reapplication: %q -> %q", title, rederived)
				}
			})
		}
	}
}
