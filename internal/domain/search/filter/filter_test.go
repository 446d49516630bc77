package filter

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/studentdir/internal/domain/record"
)

func scenarioRecords() []record.Record {
	return []record.Record{
		record.Reconstruct("1", record.Fields{Name: "Ana Cruz", Email: "ana@x.com", Major: "CS"}),
		record.Reconstruct("2", record.Fields{Name: "Ben Ortiz", Email: "ben@y.com", Major: "Math"}),
	}
}

func ids(rs []record.Record) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].ID()
	}
	return out
}

func TestApply_Scenarios(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"an", []string{"1"}},
		{"cs", []string{"1"}},
		{"CS", []string{"1"}},
		{"math", []string{"2"}},
		{".com", []string{"1", "2"}},
		{"@", []string{"1", "2"}},
		{"zzz", []string{}},
		{"a.x", []string{}},
		{"ortiz", []string{"2"}},
	}

	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			got := ids(Apply(scenarioRecords(), tc.term))
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("Apply(%q) = %v, want %v", tc.term, got, tc.want)
			}
		})
	}
}

func TestApply_BlankTermIsIdentity(t *testing.T) {
	in := scenarioRecords()
	for _, term := range []string{"", "   ", "\t"} {
		out := Apply(in, term)
		if len(out) != len(in) {
			t.Fatalf("Apply(%q) changed length", term)
		}
		if &out[0] != &in[0] {
			t.Errorf("Apply(%q) should return the input slice itself", term)
		}
	}
}

func TestApply_EmptySet(t *testing.T) {
	out := Apply(nil, "an")
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", out)
	}
}

func TestApply_IsOrderedSubsequence(t *testing.T) {
	var in []record.Record
	names := []string{"Zoe Anders", "Adam", "Nina", "Bob", "Hannah", "Anabel", "Carl"}
	for i, n := range names {
		in = append(in, record.Reconstruct(string(rune('a'+i)), record.Fields{Name: n}))
	}

	for _, term := range []string{"an", "a", "n", "b", "x", "AN"} {
		out := Apply(in, term)
		j := 0
		for i := range out {
			for j < len(in) && in[j].ID() != out[i].ID() {
				j++
			}
			if j == len(in) {
				t.Fatalf("Apply(%q) is not a subsequence of the input: %v", term, ids(out))
			}
			j++
			if !Matches(&out[i], term) {
				t.Errorf("Apply(%q) returned non-matching record %q", term, out[i].Name())
			}
		}
	}
}

func TestMatches_EmptyFieldsOnlyMatchBlankTerm(t *testing.T) {
	r := record.Reconstruct("9", record.Fields{Stage: "2", Level: "Junior"})
	if !Matches(&r, "") {
		t.Error("empty term should match every record")
	}
	if Matches(&r, "junior") {
		t.Error("stage and level are not searchable")
	}
	if Matches(&r, "a") {
		t.Error("record with empty searchable fields should not match")
	}
}

func TestMatches_LiteralMetacharacters(t *testing.T) {
	r := record.Reconstruct("1", record.Fields{Name: "Ana", Email: "ana+tag@x.com"})
	if !Matches(&r, "+tag") {
		t.Error("expected literal plus match")
	}
	if Matches(&r, "a.a") {
		t.Error("dot must not act as a wildcard")
	}
	if Matches(&r, ".*") {
		t.Error("'.*' must not match everything")
	}
}
