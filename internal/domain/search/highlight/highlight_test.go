package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want []Segment
	}{
		{
			name: "case insensitive",
			text: "Alice Johnson",
			term: "ALICE",
			want: []Segment{{Text: "Alice", Match: true}, {Text: " Johnson"}},
		},
		{
			name: "literal dot",
			text: "a.b.c",
			term: ".",
			want: []Segment{{Text: "a"}, {Text: ".", Match: true}, {Text: "b"}, {Text: ".", Match: true}, {Text: "c"}},
		},
		{
			name: "greedy non-overlapping",
			text: "aaa",
			term: "aa",
			want: []Segment{{Text: "aa", Match: true}, {Text: "a"}},
		},
		{
			name: "adjacent matches",
			text: "abab",
			term: "ab",
			want: []Segment{{Text: "ab", Match: true}, {Text: "ab", Match: true}},
		},
		{
			name: "match in the middle",
			text: "ana@x.com",
			term: "@X",
			want: []Segment{{Text: "ana"}, {Text: "@x", Match: true}, {Text: ".com"}},
		},
		{
			name: "no match",
			text: "Mathematics",
			term: "cs",
			want: []Segment{{Text: "Mathematics"}},
		},
		{
			name: "empty term",
			text: "Ana",
			term: "",
			want: []Segment{{Text: "Ana"}},
		},
		{
			name: "whitespace term",
			text: "Ana Cruz",
			term: "  ",
			want: []Segment{{Text: "Ana Cruz"}},
		},
		{
			name: "empty text",
			text: "",
			term: "ana",
			want: []Segment{{Text: ""}},
		},
		{
			name: "star is literal",
			text: "a*b**",
			term: "*",
			want: []Segment{{Text: "a"}, {Text: "*", Match: true}, {Text: "b"}, {Text: "*", Match: true}, {Text: "*", Match: true}},
		},
		{
			name: "brackets and pipes",
			text: "x[a|b]y",
			term: "[A|B]",
			want: []Segment{{Text: "x"}, {Text: "[a|b]", Match: true}, {Text: "y"}},
		},
		{
			name: "whole text",
			text: "CS",
			term: "cs",
			want: []Segment{{Text: "CS", Match: true}},
		},
		{
			name: "multibyte",
			text: "José Ñúñez",
			term: "ñú",
			want: []Segment{{Text: "José "}, {Text: "Ñú", Match: true}, {Text: "ñez"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.text, tc.term)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Split(%q, %q) mismatch (-want +got):\n%s", tc.text, tc.term, diff)
			}
		})
	}
}

func TestSplit_LiteralDotCountsMatches(t *testing.T) {
	segs := Split("a.b.c", ".")
	matches := 0
	for _, s := range segs {
		if s.Match {
			matches++
			if len(s.Text) != 1 || s.Text != "." {
				t.Errorf("unexpected match segment %q", s.Text)
			}
		}
	}
	if matches != 2 {
		t.Errorf("expected 2 match segments, got %d", matches)
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	texts := []string{
		"", "Alice Johnson", "a.b.c", "aaaa", "(((", `\\\`, "ß and SS", "日本語テキスト", "ana@x.com", "bad\xffutf8",
	}
	terms := []string{"", " ", "a", "A", ".", "aa", "(", `\`, "s", "語", "@", "\xff", "x.c", "a.b.c.d"}

	for _, text := range texts {
		for _, term := range terms {
			if got := Join(Split(text, term)); got != text {
				t.Errorf("Join(Split(%q, %q)) = %q", text, term, got)
			}
		}
	}
}

func TestSplit_NoEmptyMatchSegments(t *testing.T) {
	for _, seg := range Split("banana", "an") {
		if seg.Text == "" {
			t.Fatal("split produced an empty segment")
		}
	}
}

func TestHasMatch(t *testing.T) {
	if HasMatch(Split("Ben Ortiz", "an")) {
		t.Error("expected no match")
	}
	if !HasMatch(Split("Ana Cruz", "an")) {
		t.Error("expected a match")
	}
}
