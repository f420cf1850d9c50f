package watcher

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jasperwreed/sidebar/internal/storage"
)

func newTestWatcher(t *testing.T) *UpdateWatcher {
	t.Helper()
	w, err := NewUpdateWatcher(
		WithLogger(log.New(io.Discard)),
		WithPollInterval(20*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewUpdateWatcher() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w
}

func collect(w *UpdateWatcher) <-chan Batch {
	ch := make(chan Batch, 16)
	w.AddHandler(func(b Batch) error {
		ch <- b
		return nil
	})
	return ch
}

func waitForUpdates(t *testing.T, ch <-chan Batch, want int) []storage.Update {
	t.Helper()
	var got []storage.Update
	deadline := time.After(5 * time.Second)
	for len(got) < want {
		select {
		case b := <-ch:
			got = append(got, b.Updates...)
		case <-deadline:
			t.Fatalf("timed out with %d of %d updates", len(got), want)
		}
	}
	return got
}

func TestUpdateWatcher_ReplaysExistingFeed(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "feed.jsonl")
	content := `{"op":"set","collection":"policy","key":"p1","value":{"name":"One"}}` + "\n" +
		"not json\n" +
		`{"op":"set","collection":"bogus","key":"1","value":{}}` + "\n" +
		`{"op":"remove","collection":"policy","key":"p2"}` + "\n"
	if err := os.WriteFile(feed, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t)
	ch := collect(w)
	if err := w.WatchDirectory(dir, "*.jsonl"); err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}

	got := waitForUpdates(t, ch, 2)
	if len(got) != 2 || got[0].Key != "p1" || got[1].Op != storage.OpRemove {
		t.Errorf("updates = %+v", got)
	}

	feeds := w.GetActiveFeeds()
	if len(feeds) != 1 {
		t.Fatalf("GetActiveFeeds() = %d feeds, want 1", len(feeds))
	}
	if feeds[0].Offset != int64(len(content)) {
		t.Errorf("Offset = %d, want %d", feeds[0].Offset, len(content))
	}
}

func TestUpdateWatcher_TailsAppendedLines(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "feed.jsonl")
	if err := os.WriteFile(feed, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t)
	ch := collect(w)
	if err := w.WatchDirectory(dir, "*.jsonl"); err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	f, err := os.OpenFile(feed, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// A partial line is held back until its newline arrives.
	if _, err := f.WriteString(`{"op":"set","collection":"policy",`); err != nil {
		t.Fatal(err)
	}
	select {
	case b := <-ch:
		t.Fatalf("unexpected batch for partial line: %+v", b)
	case <-time.After(100 * time.Millisecond):
	}

	if _, err := f.WriteString(`"key":"p1","value":{}}` + "\n"); err != nil {
		t.Fatal(err)
	}

	got := waitForUpdates(t, ch, 1)
	if got[0].Collection != "policy" || got[0].Key != "p1" {
		t.Errorf("update = %+v", got[0])
	}
}

func TestUpdateWatcher_MissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	if err := w.WatchDirectory(filepath.Join(t.TempDir(), "nope"), "*.jsonl"); err == nil {
		t.Error("WatchDirectory() expected error for missing directory")
	}
}

func TestUpdateWatcher_StopTwice(t *testing.T) {
	w, err := NewUpdateWatcher(WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}
