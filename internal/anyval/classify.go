package anyval

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind is the display classification of a raw value.
type Kind string

const (
	KindData           Kind = "Data"
	KindString         Kind = "String"
	KindDate           Kind = "Date"
	KindBool           Kind = "Bool"
	KindNumber         Kind = "Number"
	KindArray          Kind = "Array"
	KindDictionary     Kind = "Dictionary"
	KindURL            Kind = "URL"
	KindArchivedObject Kind = "ArchivedObject"
	KindUnknown        Kind = "Unknown"
)

// Classified is the displayable form of a raw value: a short summary for
// list rows and a full representation for detail views. Neither string is
// truncated here; consumers apply Truncate where width is constrained.
type Classified struct {
	Kind    Kind
	Summary string
	Full    string
}

// ArchiveCodec decodes a structured-object archive payload. A failed decode
// is a data condition, not an error: classification falls through to the
// next rule with no retry.
type ArchiveCodec interface {
	Decode(b []byte) (any, error)
}

// Classifier turns raw values of unknown provenance into Classified display
// forms. The zero value works but never recognizes archived payloads.
type Classifier struct {
	codec ArchiveCodec
}

func NewClassifier(codec ArchiveCodec) Classifier {
	return Classifier{codec: codec}
}

// Classify is total: any Value yields a Classified, never an error.
//
// Non-empty byte blobs are first run through the archive codec; a decoded
// primitive is reclassified as itself, a decoded object that matches no
// other rule is tagged as archived. Blobs that fail decoding but hold valid
// UTF-8 classify as strings; everything else stays Data.
func (c Classifier) Classify(v Value) Classified {
	decoded := v
	archived := false

	if b, ok := v.(Bytes); ok && len(b) > 0 {
		if c.codec != nil {
			if obj, err := c.codec.Decode([]byte(b)); err == nil {
				decoded = FromAny(obj)
				archived = true
			} else if utf8.Valid(b) {
				decoded = Text(b)
			}
		} else if utf8.Valid(b) {
			decoded = Text(b)
		}
	}

	switch x := decoded.(type) {
	case Bytes:
		return Classified{
			Kind:    KindData,
			Summary: fmt.Sprintf("Data: %d bytes", len(x)),
			Full:    hexDescription(x),
		}
	case Text:
		if x == "" {
			return Classified{Kind: KindString, Summary: "Empty String", Full: "Empty String"}
		}
		return Classified{Kind: KindString, Summary: string(x), Full: string(x)}
	case Timestamp:
		t := time.Time(x)
		return Classified{
			Kind:    KindDate,
			Summary: t.Format("01/02/2006 15:04"),
			Full:    t.Format("2006-01-02 15:04:05 -0700 MST"),
		}
	case Bool:
		s := strconv.FormatBool(bool(x))
		return Classified{Kind: KindBool, Summary: s, Full: s}
	case Number:
		s := strconv.FormatFloat(float64(x), 'f', -1, 64)
		return Classified{Kind: KindNumber, Summary: s, Full: s}
	case List:
		return Classified{Kind: KindArray, Summary: "Array", Full: c.dumpList(x)}
	case Map:
		return Classified{Kind: KindDictionary, Summary: "Dictionary", Full: c.dumpMap(x)}
	case URI:
		return Classified{Kind: KindURL, Summary: string(x), Full: string(x)}
	case Opaque:
		name := typeName(x.Val)
		if archived {
			return Classified{
				Kind:    KindArchivedObject,
				Summary: name + " (archived)",
				Full:    fmt.Sprintf("%+v", x.Val),
			}
		}
		return Classified{
			Kind:    KindUnknown,
			Summary: name,
			Full:    fmt.Sprintf("%s: %v", name, x.Val),
		}
	default:
		// Value is a closed set; a new variant must be handled above.
		panic(fmt.Sprintf("anyval: unhandled value variant %T", decoded))
	}
}

func (c Classifier) dumpList(l List) string {
	if len(l) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, el := range l {
		b.WriteString("  ")
		b.WriteString(c.Classify(el).Full)
		b.WriteString("\n")
	}
	b.WriteString("]")
	return b.String()
}

func (c Classifier) dumpMap(m Map) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{\n")
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(c.Classify(m[k]).Full)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// hexDescription renders a byte blob in grouped hex, e.g. <48656c6c 6f>.
func hexDescription(b Bytes) string {
	var sb strings.Builder
	sb.WriteString("<")
	for i, by := range b {
		if i > 0 && i%4 == 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%02x", by)
	}
	sb.WriteString(">")
	return sb.String()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
