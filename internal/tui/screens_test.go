package tui

import (
	"strings"
	"testing"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/credstore"
	"inspect-cli/internal/kvstore"
)

func TestSettingsScreen_SnapshotIsFixedUntilRefresh(t *testing.T) {
	kv := kvstore.NewMemoryStore("app")
	if err := kv.Set("featureFlag", anyval.Bool(true)); err != nil {
		t.Fatal(err)
	}

	s := newSettingsScreen(kv, anyval.Classifier{}, 40)
	if got := s.visibleKeys(); len(got) != 1 || got[0] != "featureFlag" {
		t.Fatalf("unexpected keys: %v", got)
	}

	// A key written after opening stays invisible until refresh.
	if err := kv.Set("lateKey", anyval.Text("x")); err != nil {
		t.Fatal(err)
	}
	if got := s.visibleKeys(); len(got) != 1 {
		t.Fatalf("snapshot should be fixed; got %v", got)
	}
	s.takeSnapshot()
	if got := s.visibleKeys(); len(got) != 2 {
		t.Fatalf("refresh should pick up new keys; got %v", got)
	}
}

func TestSettingsScreen_FilterNarrowsKeys(t *testing.T) {
	kv := kvstore.NewMemoryStore("app")
	_ = kv.Set("serverURL", anyval.Text("https://example.com"))
	_ = kv.Set("retryCount", anyval.Number(3))

	s := newSettingsScreen(kv, anyval.Classifier{}, 40)
	s.filter.SetValue("url")
	got := s.visibleKeys()
	if len(got) != 1 || got[0] != "serverURL" {
		t.Fatalf("filter should match case-insensitively: %v", got)
	}
}

func TestSettingsScreen_ViewShowsSummaries(t *testing.T) {
	kv := kvstore.NewMemoryStore("app")
	_ = kv.Set("retryCount", anyval.Number(3))

	s := newSettingsScreen(kv, anyval.Classifier{}, 40)
	out := s.view(&App{opts: Options{TruncateAt: 40}}, 60, 20)
	if !strings.Contains(out, "retryCount") || !strings.Contains(out, "3") {
		t.Fatalf("expected key and summary in view:\n%s", out)
	}
	if !strings.Contains(out, "Scope: app") {
		t.Fatalf("expected scope header:\n%s", out)
	}
}

func TestSettingsScreen_AllDomainsScope(t *testing.T) {
	kv := kvstore.NewMemoryStore("app")
	_ = kv.Set("appKey", anyval.Text("a"))
	kv.SetIn("sync", "syncKey", anyval.Text("b"))

	s := newSettingsScreen(kv, anyval.Classifier{}, 40)
	// Cycle past each single domain into the all-domains scope.
	s.scope = len(s.domains)
	s.takeSnapshot()

	if got := s.visibleKeys(); len(got) != 2 {
		t.Fatalf("all-domains scope should list every key: %v", got)
	}
	if lbl := s.rowLabel(s.entries[0]); !strings.Contains(lbl, "/") {
		t.Fatalf("all-domains rows should be domain-qualified: %q", lbl)
	}
}

func TestCredClassScreen_CountsItems(t *testing.T) {
	st := credstore.NewMemoryStore()
	st.Add(credstore.ClassGenericPassword, map[string]anyval.Value{
		"acct": anyval.Text("alice"),
	})

	s := newCredClassScreen(st)
	out := s.view(&App{}, 60, 20)
	if !strings.Contains(out, "GenericPassword") {
		t.Fatalf("expected class label:\n%s", out)
	}
	if s.counts[credstore.ClassGenericPassword] != 1 {
		t.Fatalf("expected one generic password item; got %d", s.counts[credstore.ClassGenericPassword])
	}
}

func TestCredItemsScreen_TranslatesForLabels(t *testing.T) {
	raw := []map[string]anyval.Value{{
		"svce": anyval.Text("api.example.com"),
		"acct": anyval.Text("alice"),
	}}
	s := newCredItemsScreen(credstore.ClassGenericPassword, raw)
	if got := itemLabel(s.items[0]); got != "api.example.com" {
		t.Fatalf("expected service label, got %q", got)
	}
}

func TestRenderAttrs_PromotedKeysFirst(t *testing.T) {
	attrs := map[string]anyval.Value{
		"zebra":   anyval.Text("last"),
		"account": anyval.Text("alice"),
		"service": anyval.Text("svc"),
	}
	out := renderAttrs(attrs, anyval.Classifier{})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected one line per attribute:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "service") || !strings.HasPrefix(lines[1], "account") {
		t.Fatalf("expected scan targets first:\n%s", out)
	}
	if !strings.HasPrefix(lines[2], "zebra") {
		t.Fatalf("expected remaining keys after promoted ones:\n%s", out)
	}
}
