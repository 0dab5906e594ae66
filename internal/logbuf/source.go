package logbuf

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is one inspectable log: a name, a size, and a content provider.
// Contents are plain text.
type Source struct {
	Name      string
	SizeBytes int64
	Open      func() (io.ReadCloser, error)
}

func memorySource(name, content string) Source {
	return Source{
		Name:      name,
		SizeBytes: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// FileSources lists the *.log files directly under dir, sorted by name.
// A missing directory is an empty listing, not an error.
func FileSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Source
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		out = append(out, Source{
			Name:      e.Name(),
			SizeBytes: info.Size(),
			Open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Read slurps the source's full contents.
func (s Source) Read() (string, error) {
	rc, err := s.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FilterLines returns the lines of content containing term,
// case-insensitively. Pure substring containment, no regex. An empty term
// returns all lines.
func FilterLines(content, term string) []string {
	lines := strings.Split(content, "\n")
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lines
	}
	var out []string
	for _, ln := range lines {
		if strings.Contains(strings.ToLower(ln), term) {
			out = append(out, ln)
		}
	}
	return out
}
