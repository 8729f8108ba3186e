package backup

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	log := discardLogger()
	return NewRunner(NewFetcher(5*time.Second, "", log), log)
}

func writeSourceList(t *testing.T, urls ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.txt")
	if err := os.WriteFile(path, []byte(strings.Join(urls, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunnerBacksUpSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.txt":
			io.WriteString(w, "127.0.0.1 ads.example.com\n0.0.0.0 tracker.example.net\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	goodURL := server.URL + "/good.txt"
	badURL := server.URL + "/gone.txt"
	listPath := writeSourceList(t, goodURL, badURL)
	destDir := t.TempDir()

	runner := testRunner(t)
	if err := runner.Run(context.Background(), listPath, destDir, Options{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// The failing source is skipped, not fatal.
	if _, err := os.Stat(filepath.Join(destDir, Source{URL: badURL}.SnapshotName())); !os.IsNotExist(err) {
		t.Error("snapshot written for failed source")
	}

	set, err := LoadSnapshot(filepath.Join(destDir, Source{URL: goodURL}.SnapshotName()))
	if err != nil {
		t.Fatal(err)
	}
	if !set.Equal(entrySet("ads.example.com", "tracker.example.net")) {
		t.Errorf("snapshot entries = %v", set.Sorted())
	}
}

func TestRunnerSkipsUnchangedSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "0.0.0.0 ads.example.com\n")
	}))
	defer server.Close()

	listPath := writeSourceList(t, server.URL+"/hosts.txt")
	destDir := t.TempDir()

	runner := testRunner(t)
	day1 := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	runner.now = func() time.Time { return day1 }
	if err := runner.Run(context.Background(), listPath, destDir, Options{}); err != nil {
		t.Fatal(err)
	}
	runner.now = func() time.Time { return day2 }
	if err := runner.Run(context.Background(), listPath, destDir, Options{}); err != nil {
		t.Fatal(err)
	}

	snap := filepath.Join(destDir, Source{URL: server.URL + "/hosts.txt"}.SnapshotName())
	data, err := os.ReadFile(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2026-08-22") {
		t.Error("unchanged source was rewritten with a new date")
	}
}

func TestRunnerKeepOldUnions(t *testing.T) {
	var generation atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if generation.Load() == 0 {
			io.WriteString(w, "0.0.0.0 a.example.com\n0.0.0.0 b.example.com\n")
		} else {
			io.WriteString(w, "0.0.0.0 b.example.com\n0.0.0.0 c.example.com\n")
		}
	}))
	defer server.Close()

	url := server.URL + "/hosts.txt"
	listPath := writeSourceList(t, url)
	destDir := t.TempDir()
	runner := testRunner(t)

	if err := runner.Run(context.Background(), listPath, destDir, Options{KeepOld: true}); err != nil {
		t.Fatal(err)
	}
	generation.Store(1)
	if err := runner.Run(context.Background(), listPath, destDir, Options{KeepOld: true}); err != nil {
		t.Fatal(err)
	}

	set, err := LoadSnapshot(filepath.Join(destDir, Source{URL: url}.SnapshotName()))
	if err != nil {
		t.Fatal(err)
	}
	if !set.Equal(entrySet("a.example.com", "b.example.com", "c.example.com")) {
		t.Errorf("keep-old snapshot = %v, want union of both fetches", set.Sorted())
	}
}

func TestRunnerRejectsBadSelectors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	listPath := writeSourceList(t, server.URL+"/hosts.txt")
	runner := testRunner(t)

	for _, only := range [][]string{
		{"nothex!!"},     // not hex
		{"abc"},          // too short
		{"0123456789ab"}, // too long
		{"00000000"},     // well-formed but unknown
	} {
		err := runner.Run(context.Background(), listPath, t.TempDir(), Options{Only: only})
		if err == nil {
			t.Errorf("Only=%v: expected error", only)
		}
	}
	if requests.Load() != 0 {
		t.Errorf("selector validation must abort before any fetch, saw %d requests", requests.Load())
	}
}

func TestRunnerOnlyAndSkip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "0.0.0.0 ads.example.com\n")
	}))
	defer server.Close()

	urlA := server.URL + "/a.txt"
	urlB := server.URL + "/b.txt"
	listPath := writeSourceList(t, urlA, urlB)
	runner := testRunner(t)

	destDir := t.TempDir()
	opts := Options{Only: []string{Source{URL: urlA}.ID()}}
	if err := runner.Run(context.Background(), listPath, destDir, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(destDir, Source{URL: urlA}.SnapshotName())); err != nil {
		t.Error("selected source missing snapshot")
	}
	if _, err := os.Stat(filepath.Join(destDir, Source{URL: urlB}.SnapshotName())); !os.IsNotExist(err) {
		t.Error("unselected source has a snapshot")
	}

	destDir = t.TempDir()
	opts = Options{Skip: []string{Source{URL: urlA}.ID()}}
	if err := runner.Run(context.Background(), listPath, destDir, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(destDir, Source{URL: urlA}.SnapshotName())); !os.IsNotExist(err) {
		t.Error("skipped source has a snapshot")
	}
	if _, err := os.Stat(filepath.Join(destDir, Source{URL: urlB}.SnapshotName())); err != nil {
		t.Error("unskipped source missing snapshot")
	}
}

func TestRunnerCleanupReformats(t *testing.T) {
	url := "https://example.com/hosts.txt"
	src := Source{URL: url}
	listPath := writeSourceList(t, url)
	destDir := t.TempDir()

	// A messy snapshot in mixed legacy syntax.
	messy := "127.0.0.1 z.example.com\nA.Example.Com # note\n"
	if err := os.WriteFile(filepath.Join(destDir, src.SnapshotName()), []byte(messy), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := testRunner(t)
	if err := runner.Run(context.Background(), listPath, destDir, Options{Cleanup: true}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(destDir, src.SnapshotName()))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "# "+url+"\n") {
		t.Errorf("reformatted snapshot missing header:\n%s", text)
	}
	if !strings.Contains(text, "0.0.0.0\ta.example.com\n0.0.0.0\tz.example.com") {
		t.Errorf("reformatted snapshot body not normalized and sorted:\n%s", text)
	}
}

func TestRunnerMissingSourceList(t *testing.T) {
	runner := testRunner(t)
	err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), Options{})
	if err == nil {
		t.Error("expected error for missing source list")
	}
}
