package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kailas-cloud/studentdir/internal/domain/record"
	searchuc "github.com/kailas-cloud/studentdir/internal/usecase/search"
)

const studentsJSON = `[
	{"id":"1","name":"Ana Cruz","email":"ana@x.com","major":"CS"},
	{"id":"2","name":"Ben Ortiz","email":"ben@y.com","major":"Math"}
]`

func newSource(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSearchCmd_PrintsHighlightedMatches(t *testing.T) {
	src := newSource(t, http.StatusOK, studentsJSON)

	out, _, err := execute(t, "search", "an", "--plain", "--env", "local", "--source", src.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "[An]a Cruz <[an]a@x.com> · CS") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Ben") {
		t.Errorf("non-matching record printed:\n%s", out)
	}
	if !strings.Contains(out, "1 student(s)") {
		t.Errorf("missing count line:\n%s", out)
	}
}

func TestSearchCmd_NoMatches(t *testing.T) {
	src := newSource(t, http.StatusOK, studentsJSON)

	out, _, err := execute(t, "search", "zzz", "--plain", "--env", "local", "--source", src.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "No students found." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSearchCmd_LoadFailure(t *testing.T) {
	src := newSource(t, http.StatusInternalServerError, `{"error":"boom"}`)

	_, stderr, err := execute(t, "search", "an", "--plain", "--env", "local", "--source", src.URL)
	if !errors.Is(err, errLoadFailed) {
		t.Fatalf("expected errLoadFailed, got %v", err)
	}
	if !strings.Contains(stderr, "Failed to fetch students: server responded with status 500") {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}

func TestSearchCmd_InvalidSource(t *testing.T) {
	if _, _, err := execute(t, "search", "--env", "local", "--source", "ftp://nope"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "studentdir dev") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPrinter_PlainRender(t *testing.T) {
	recs := []record.Record{
		record.Reconstruct("1", record.Fields{Name: "Dot.Com", Email: "", Major: ""}),
	}
	var buf bytes.Buffer
	newPrinter(true).render(&buf, searchuc.Derive(recs, "."))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "Dot[.]Com" {
		t.Errorf("line = %q, want %q", lines[0], "Dot[.]Com")
	}
}
