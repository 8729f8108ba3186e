package search

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"hostmerge/pkg/hosts"
)

func indexOf(domains ...string) *Index {
	set := hosts.NewSet()
	for _, d := range domains {
		set.Add(hosts.Entry{Addr: hosts.BlockAddress, Domain: d})
	}
	return NewIndex(set)
}

func TestExactLookup(t *testing.T) {
	index := indexOf("foo.com")
	if !index.Exact("foo.com") {
		t.Error("expected foo.com to be blocked")
	}
	if index.Exact("bar.com") {
		t.Error("did not expect bar.com to be blocked")
	}
	if !index.Exact("  FOO.com ") {
		t.Error("exact lookup should normalize case and whitespace")
	}
}

func TestPartialLookup(t *testing.T) {
	index := indexOf("ads.example.com", "tracker.example.net", "clean.org")

	got := index.Partial("example")
	want := []string{"ads.example.com", "tracker.example.net"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Partial(example) = %v, want %v", got, want)
	}
	if got := index.Partial("nosuch"); got != nil {
		t.Errorf("Partial(nosuch) = %v, want none", got)
	}
	if got := index.Partial(""); got != nil {
		t.Errorf("Partial(\"\") = %v, want none", got)
	}
}

func TestLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined_hosts")
	content := "0.0.0.0\tads.net\n0.0.0.0\ttracker.net"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	index, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex returned error: %v", err)
	}
	if index.Size() != 2 {
		t.Errorf("Size() = %d, want 2", index.Size())
	}
	if !index.Exact("ads.net") {
		t.Error("expected ads.net to be indexed")
	}
}

func TestLoadIndexMissing(t *testing.T) {
	if _, err := LoadIndex(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing index file")
	}
}

func TestRunBatch(t *testing.T) {
	index := indexOf("foo.com")
	queryPath := filepath.Join(t.TempDir(), "queries")
	if err := os.WriteFile(queryPath, []byte("foo.com\n\nbar.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := RunBatch(index, queryPath, &out); err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}
	want := "foo.com: blocked\nbar.com: not blocked\n"
	if out.String() != want {
		t.Errorf("batch output = %q, want %q", out.String(), want)
	}
}

func TestRunBatchMissingInput(t *testing.T) {
	index := indexOf("foo.com")
	err := RunBatch(index, filepath.Join(t.TempDir(), "missing"), &strings.Builder{})
	if err == nil {
		t.Error("expected error for missing search input")
	}
}
