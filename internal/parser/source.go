package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Source provides script text split into lines. The parser works on one
// line at a time; the source maps line indexes and byte offsets back to
// locations for error reporting.
type Source interface {
	// Name identifies the source in error messages.
	Name() string
	// Text returns the full text.
	Text() string
	// Line returns the text of the line at the index, without its
	// terminator.
	Line(index int) (string, bool)
	// LineLen returns the number of lines.
	LineLen() int
	// LineStart returns the byte offset of the line's first character.
	LineStart(index int) int
	// Locate converts a byte offset into a 1-based (line, column) pair.
	Locate(cursor int) (int, int)
}

type lineRange struct {
	start int
	end   int
}

func splitLines(text string) []lineRange {
	var ranges []lineRange
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			ranges = append(ranges, lineRange{start: start, end: i})
			start = i + 1
		case '\r':
			ranges = append(ranges, lineRange{start: start, end: i})
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		ranges = append(ranges, lineRange{start: start, end: len(text)})
	}
	return ranges
}

// StringSource is a source backed by an in-memory string.
type StringSource struct {
	name  string
	text  string
	lines []lineRange
}

// NewStringSource creates an anonymous string source. It receives a
// generated unique name so separate inputs stay distinguishable in
// error messages.
func NewStringSource(text string) *StringSource {
	name := "<string-" + strings.SplitN(uuid.NewString(), "-", 2)[0] + ">"
	return NewNamedStringSource(name, text)
}

// NewNamedStringSource creates a string source with an explicit name.
func NewNamedStringSource(name, text string) *StringSource {
	return &StringSource{name: name, text: text, lines: splitLines(text)}
}

func (s *StringSource) Name() string {
	return s.name
}

func (s *StringSource) Text() string {
	return s.text
}

func (s *StringSource) Line(index int) (string, bool) {
	if index < 0 || index >= len(s.lines) {
		return "", false
	}
	r := s.lines[index]
	return s.text[r.start:r.end], true
}

func (s *StringSource) LineLen() int {
	return len(s.lines)
}

func (s *StringSource) LineStart(index int) int {
	if index < 0 || index >= len(s.lines) {
		return 0
	}
	return s.lines[index].start
}

func (s *StringSource) Locate(cursor int) (int, int) {
	for i, r := range s.lines {
		if cursor <= r.end {
			return i + 1, cursor - r.start + 1
		}
	}
	if n := len(s.lines); n > 0 {
		return n, cursor - s.lines[n-1].start + 1
	}
	return 1, cursor + 1
}

// FileSource is a source read from a script file.
type FileSource struct {
	StringSource
	path string
}

// OpenFileSource reads the file at the path.
func OpenFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read script %s", path)
	}
	return &FileSource{
		StringSource: *NewNamedStringSource(filepath.Base(path), string(data)),
		path:         path,
	}, nil
}

// Path returns the path the source was read from.
func (s *FileSource) Path() string {
	return s.path
}
