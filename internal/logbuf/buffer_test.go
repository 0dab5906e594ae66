package logbuf

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFilteredBuffer_TagAndTermFilters(t *testing.T) {
	byTag := NewFilteredBuffer("net", "network", "")
	byTerm := NewFilteredBuffer("errors", "", "ERROR")
	both := NewFilteredBuffer("net-errors", "network", "error")

	set := NewSet()
	set.Attach(byTag)
	set.Attach(byTerm)
	set.Attach(both)

	set.Dispatch("[network] request sent", "request sent", "network")
	set.Dispatch("[network] request error", "request error", "network")
	set.Dispatch("[ui] layout error", "layout error", "ui")

	if got := byTag.Lines(); len(got) != 2 {
		t.Fatalf("tag buffer: expected 2 lines; got %v", got)
	}
	// Term matching is case-insensitive containment.
	if got := byTerm.Lines(); len(got) != 2 {
		t.Fatalf("term buffer: expected 2 lines; got %v", got)
	}
	if got := both.Lines(); len(got) != 1 || got[0] != "[network] request error" {
		t.Fatalf("tag+term buffer: got %v", got)
	}
}

func TestFilteredBuffer_DropsOldestPastCapacity(t *testing.T) {
	b := NewFilteredBuffer("all", "", "")
	b.cap = 3
	for _, ln := range []string{"1", "2", "3", "4"} {
		b.Offer(ln, ln, "")
	}
	got := b.Lines()
	if len(got) != 3 || got[0] != "2" || got[2] != "4" {
		t.Fatalf("expected oldest line dropped; got %v", got)
	}
}

func TestFilterLines_PureContainment(t *testing.T) {
	content := "alpha one\nBeta Two\ngamma three"
	got := FilterLines(content, "TWO")
	if len(got) != 1 || got[0] != "Beta Two" {
		t.Fatalf("expected case-insensitive match; got %v", got)
	}
	if all := FilterLines(content, ""); len(all) != 3 {
		t.Fatalf("empty term should return all lines; got %v", all)
	}
}

func TestFileSources_ListsLogFilesSorted(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.log":     "bee",
		"a.log":     "ay",
		"notes.txt": "skip me",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, err := FileSources(dir)
	if err != nil {
		t.Fatalf("FileSources error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "a.log" || got[1].Name != "b.log" {
		t.Fatalf("expected sorted .log files; got %+v", got)
	}
	if got[0].SizeBytes != 2 {
		t.Fatalf("expected size 2 for a.log; got %d", got[0].SizeBytes)
	}
	content, err := got[1].Read()
	if err != nil || content != "bee" {
		t.Fatalf("expected content bee; got %q err=%v", content, err)
	}
}

func TestFileSources_MissingDirIsEmpty(t *testing.T) {
	got, err := FileSources(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error; got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty listing; got %v", got)
	}
}

func TestCaptureCore_FeedsBuffers(t *testing.T) {
	set := NewSet()
	all := NewFilteredBuffer("all", "", "")
	tagged := NewFilteredBuffer("sync", "sync", "")
	set.Attach(all)
	set.Attach(tagged)

	logger := zap.New(NewCaptureCore(set, zapcore.InfoLevel))
	logger.Info("hello world")
	logger.Named("sync").Warn("retrying upload")
	logger.Debug("below the level gate")

	if got := all.Lines(); len(got) != 2 {
		t.Fatalf("expected 2 captured lines; got %v", got)
	}
	got := tagged.Lines()
	if len(got) != 1 {
		t.Fatalf("expected 1 tagged line; got %v", got)
	}
	src := tagged.Source()
	if src.Name != "sync" || src.SizeBytes == 0 {
		t.Fatalf("unexpected source: %+v", src)
	}
}
