// ABOUTME: Recursive character text splitter producing overlapping chunks
// ABOUTME: Tries paragraph, line, space, then character boundaries in priority order
package splitter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default splitting parameters: 1000-character chunks with a 200-character
// overlap carried from the previous chunk.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Separator priority order. The empty separator is the character-boundary
// fallback and always terminates.
var separators = []string{"\n\n", "\n", " ", ""}

// Splitter segments text deterministically into overlapping chunks
type Splitter struct {
	chunkSize int
	overlap   int
}

// New creates a Splitter with the default chunk size and overlap
func New() *Splitter {
	s, _ := NewWithSize(DefaultChunkSize, DefaultOverlap)
	return s
}

// NewWithSize creates a Splitter with a custom chunk size and overlap
func NewWithSize(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, chunk size), got %d", overlap)
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split segments text into chunks in reading order. Each chunk after the
// first starts with the trailing overlap of the previous chunk. Empty or
// whitespace-only input produces no chunks; no produced chunk is empty.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.merge(s.splitRecursive(text, separators))
}

// Overlap returns the configured overlap length in characters
func (s *Splitter) Overlap() int {
	return s.overlap
}

// splitRecursive cuts text into ordered pieces no longer than chunkSize.
// Separators are kept attached to the piece they terminate, so
// concatenating the pieces reproduces the input exactly.
func (s *Splitter) splitRecursive(text string, seps []string) []string {
	if runeLen(text) <= s.chunkSize {
		return []string{text}
	}

	sep := seps[0]
	if sep == "" {
		return s.splitEvery(text)
	}

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		// Separator absent, fall through to the next one
		return s.splitRecursive(text, seps[1:])
	}

	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if runeLen(part) <= s.chunkSize {
			pieces = append(pieces, part)
		} else {
			pieces = append(pieces, s.splitRecursive(part, seps[1:])...)
		}
	}
	return pieces
}

// splitEvery is the character-boundary fallback: fixed-size windows
func (s *Splitter) splitEvery(text string) []string {
	runes := []rune(text)
	var pieces []string
	for start := 0; start < len(runes); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// merge greedily packs pieces into chunks of at most chunkSize characters,
// seeding each new chunk with the trailing overlap of the one just emitted.
// A seed plus a maximal piece can exceed chunkSize, so the hard ceiling on
// any chunk is chunkSize+overlap.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	cur := ""
	for _, piece := range pieces {
		switch {
		case cur == "":
			cur = piece
		case runeLen(cur)+runeLen(piece) <= s.chunkSize:
			cur += piece
		default:
			chunks = append(chunks, cur)
			cur = tail(cur, s.overlap) + piece
		}
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// tail returns the last n characters of text
func tail(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}

func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}
