package record

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_RequiresID(t *testing.T) {
	if _, err := New("", Fields{Name: "Ana"}); err == nil {
		t.Fatal("expected error for empty ID")
	}

	r, err := New("7", Fields{Name: "Ana", Major: "CS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != "7" || r.Name() != "Ana" || r.Major() != "CS" {
		t.Errorf("unexpected record: %+v", r.Fields())
	}
	if r.Email() != "" {
		t.Errorf("absent email should be empty, got %q", r.Email())
	}
}

func TestDecode_MockAPIShape(t *testing.T) {
	body := `[
		{"createdAt":"2025-08-15T20:10:51.640Z","name":"Ana Cruz","avatar":"https://img/1.png",
		 "email":"ana@x.com","major":"CS","stage":"3","level":"Senior","id":"1"},
		{"name":"Ben Ortiz","email":"ben@y.com","major":"Math","id":2}
	]`

	got, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	want := Fields{
		Name:      "Ana Cruz",
		Email:     "ana@x.com",
		Major:     "CS",
		Stage:     "3",
		Level:     "Senior",
		AvatarURL: "https://img/1.png",
		CreatedAt: "2025-08-15T20:10:51.640Z",
	}
	if diff := cmp.Diff(want, got[0].Fields()); diff != "" {
		t.Errorf("first record mismatch (-want +got):\n%s", diff)
	}
	if got[0].ID() != "1" {
		t.Errorf("expected string id 1, got %q", got[0].ID())
	}
	if got[1].ID() != "2" {
		t.Errorf("expected numeric id rendered as 2, got %q", got[1].ID())
	}
	if got[1].Stage() != "" || got[1].CreatedAt() != "" {
		t.Error("missing optional fields should decode as empty")
	}
}

func TestDecode_AvatarURLFallback(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"1","avatarUrl":"https://img/a.png"}]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].AvatarURL() != "https://img/a.png" {
		t.Errorf("expected avatarUrl fallback, got %q", got[0].AvatarURL())
	}
}

func TestDecode_NullFieldsAreAbsent(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"1","name":null,"email":null,"major":null}]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Name() != "" || got[0].Email() != "" || got[0].Major() != "" {
		t.Errorf("null fields should be empty: %+v", got[0].Fields())
	}
}

func TestDecode_MalformedOptionalFieldsAreEmpty(t *testing.T) {
	body := `[
		{"id":"1","name":"Ana Cruz","createdAt":1700000000},
		{"id":"2","name":"Ben Ortiz","level":3,"stage":true},
		{"id":"3","name":"Cy Lee","avatar":{"url":"https://img/3.png"},"major":["CS"]},
		{"id":"4","name":"Di Park","avatar":7,"avatarUrl":"https://img/4.png"}
	]`

	got, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []Fields{
		{Name: "Ana Cruz"},
		{Name: "Ben Ortiz"},
		{Name: "Cy Lee"},
		{Name: "Di Park", AvatarURL: "https://img/4.png"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if diff := cmp.Diff(want[i], got[i].Fields()); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	got, err := Decode([]byte(" [] "))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "not a JSON array"},
		{"object", `{"id":"1"}`, "not a JSON array"},
		{"null", "null", "not a JSON array"},
		{"truncated", `[{"id":"1"`, "unmarshal records"},
		{"missing id", `[{"name":"Ana"}]`, "record ID is required"},
		{"null id", `[{"id":null}]`, "record ID is required"},
		{"empty id", `[{"id":""}]`, "record ID is required"},
		{"bool id", `[{"id":true}]`, "string or a number"},
		{"array of numbers", `[1,2]`, "unmarshal records"},
		{"duplicate id", `[{"id":"1"},{"id":1}]`, "duplicate record ID"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestEncode_DecodeIsLossless(t *testing.T) {
	in := []Record{
		Reconstruct("1", Fields{Name: "Ana Cruz", Email: "ana@x.com", Major: "CS", AvatarURL: "a.png"}),
		Reconstruct("abc-2", Fields{Name: "Ben", CreatedAt: "not a date"}),
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID() != in[i].ID() {
			t.Errorf("record %d: id %q != %q", i, out[i].ID(), in[i].ID())
		}
		if diff := cmp.Diff(in[i].Fields(), out[i].Fields()); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
