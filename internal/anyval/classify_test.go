package anyval

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeCodec struct {
	obj any
	err error
}

func (f fakeCodec) Decode(b []byte) (any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.obj, nil
}

func TestClassify_NonEmptyString(t *testing.T) {
	c := Classifier{}
	got := c.Classify(Text("hello"))
	if got.Kind != KindString {
		t.Fatalf("expected String kind; got %v", got.Kind)
	}
	if got.Full != "hello" || got.Summary != "hello" {
		t.Fatalf("expected full==summary==hello; got full=%q summary=%q", got.Full, got.Summary)
	}
}

func TestClassify_EmptyString(t *testing.T) {
	c := Classifier{}
	got := c.Classify(Text(""))
	if got.Summary != "Empty String" {
		t.Fatalf("expected Empty String summary; got %q", got.Summary)
	}
	if got.Full != got.Summary {
		t.Fatalf("expected no distinct full form; got %q", got.Full)
	}
}

func TestClassify_BoolAndNumber_FullEqualsSummary(t *testing.T) {
	c := Classifier{}

	b := c.Classify(Bool(true))
	if b.Kind != KindBool || b.Full != "true" || b.Summary != "true" {
		t.Fatalf("bool: got %+v", b)
	}

	n := c.Classify(Number(3.25))
	if n.Kind != KindNumber || n.Full != "3.25" || n.Full != n.Summary {
		t.Fatalf("number: got %+v", n)
	}

	whole := c.Classify(Number(42))
	if whole.Full != "42" {
		t.Fatalf("expected canonical decimal 42; got %q", whole.Full)
	}
}

func TestClassify_Date(t *testing.T) {
	c := Classifier{}
	ts := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	got := c.Classify(Timestamp(ts))
	if got.Kind != KindDate {
		t.Fatalf("expected Date kind; got %v", got.Kind)
	}
	if got.Summary != "08/30/2026 14:05" {
		t.Fatalf("unexpected short form: %q", got.Summary)
	}
	if !strings.HasPrefix(got.Full, "2026-08-30 14:05:00") {
		t.Fatalf("unexpected long form: %q", got.Full)
	}
}

func TestClassify_ArchivedStringReclassifies(t *testing.T) {
	c := NewClassifier(fakeCodec{obj: "hello"})
	got := c.Classify(Bytes("whatever"))
	if got.Kind != KindString {
		t.Fatalf("expected decoded string to reclassify as String; got %v", got.Kind)
	}
	if got.Full != "hello" {
		t.Fatalf("expected full==hello; got %q", got.Full)
	}
}

type widget struct{ N int }

func TestClassify_ArchivedObjectTagged(t *testing.T) {
	c := NewClassifier(fakeCodec{obj: widget{N: 7}})
	got := c.Classify(Bytes{0x01})
	if got.Kind != KindArchivedObject {
		t.Fatalf("expected ArchivedObject; got %v", got.Kind)
	}
	if !strings.HasSuffix(got.Summary, "(archived)") {
		t.Fatalf("expected archived tag in summary; got %q", got.Summary)
	}
	if !strings.Contains(got.Summary, "widget") {
		t.Fatalf("expected runtime type name in summary; got %q", got.Summary)
	}
}

func TestClassify_BlobFallsBackToUTF8(t *testing.T) {
	c := NewClassifier(fakeCodec{err: errors.New("bad archive")})
	got := c.Classify(Bytes("plain text"))
	if got.Kind != KindString || got.Full != "plain text" {
		t.Fatalf("expected UTF-8 fallback to String; got %+v", got)
	}
}

func TestClassify_BlobFallsBackToData(t *testing.T) {
	c := NewClassifier(fakeCodec{err: errors.New("bad archive")})
	raw := Bytes{0xff, 0xfe, 0x01}
	got := c.Classify(raw)
	if got.Kind != KindData {
		t.Fatalf("expected Data; got %v", got.Kind)
	}
	if got.Summary != "Data: 3 bytes" {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
}

func TestClassify_EmptyBlobSkipsDecode(t *testing.T) {
	// An empty blob must not reach the codec at all.
	c := NewClassifier(fakeCodec{obj: "should not be used"})
	got := c.Classify(Bytes{})
	if got.Kind != KindData || got.Summary != "Data: 0 bytes" {
		t.Fatalf("expected empty Data; got %+v", got)
	}
}

func TestClassify_CollectionsKeepStableSummaries(t *testing.T) {
	c := Classifier{}

	arr := c.Classify(List{Text("a"), Number(1)})
	if arr.Kind != KindArray || arr.Summary != "Array" {
		t.Fatalf("array: got %+v", arr)
	}
	if !strings.Contains(arr.Full, "a") || !strings.Contains(arr.Full, "1") {
		t.Fatalf("expected recursive element dump; got %q", arr.Full)
	}

	dict := c.Classify(Map{"k2": Text("v2"), "k1": Text("v1")})
	if dict.Kind != KindDictionary || dict.Summary != "Dictionary" {
		t.Fatalf("dict: got %+v", dict)
	}
	// Keys are dumped in sorted order for deterministic output.
	if strings.Index(dict.Full, "k1") > strings.Index(dict.Full, "k2") {
		t.Fatalf("expected sorted key dump; got %q", dict.Full)
	}
}

func TestClassify_URLAndUnknown(t *testing.T) {
	c := Classifier{}

	u := c.Classify(URI("https://example.com/x"))
	if u.Kind != KindURL || u.Full != "https://example.com/x" || u.Full != u.Summary {
		t.Fatalf("url: got %+v", u)
	}

	o := c.Classify(Opaque{Val: widget{N: 1}})
	if o.Kind != KindUnknown {
		t.Fatalf("expected Unknown; got %v", o.Kind)
	}
	if !strings.Contains(o.Summary, "widget") {
		t.Fatalf("expected type name summary; got %q", o.Summary)
	}
	if !strings.HasPrefix(o.Full, o.Summary+": ") {
		t.Fatalf("expected \"<type>: <value>\" full form; got %q", o.Full)
	}
}

func TestFromAny_MapsPrimitives(t *testing.T) {
	if _, ok := FromAny("s").(Text); !ok {
		t.Fatalf("string should map to Text")
	}
	if _, ok := FromAny(7).(Number); !ok {
		t.Fatalf("int should map to Number")
	}
	if _, ok := FromAny([]any{1, "two"}).(List); !ok {
		t.Fatalf("[]any should map to List")
	}
	if _, ok := FromAny(map[string]any{"a": 1}).(Map); !ok {
		t.Fatalf("map[string]any should map to Map")
	}
	if _, ok := FromAny(struct{}{}).(Opaque); !ok {
		t.Fatalf("unrecognized type should map to Opaque")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd"+Ellipsis {
		t.Fatalf("expected cut+ellipsis; got %q", got)
	}
	if got := Truncate("abcd", 4); got != "abcd" {
		t.Fatalf("expected untouched string at limit; got %q", got)
	}
	if got := Truncate("ab", 4); got != "ab" {
		t.Fatalf("expected untouched short string; got %q", got)
	}
	// Rune-aware: multibyte characters count as one.
	if got := Truncate("äöüß", 2); got != "äö"+Ellipsis {
		t.Fatalf("expected rune-indexed cut; got %q", got)
	}
	long := Truncate("abcdef", 5)
	if len([]rune(long)) != 6 {
		t.Fatalf("expected limit+1 runes after truncation; got %d", len([]rune(long)))
	}
}
