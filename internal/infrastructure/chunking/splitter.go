// Package chunking splits extracted legal text into ingestible chunks,
// preferring มาตรา boundaries so each chunk carries one section.
package chunking

import (
	"regexp"
	"strings"
)

var sectionStartRe = regexp.MustCompile(`มาตรา\s*[\d๐-๙]+`)

type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 900
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

// Split cuts the text at each มาตรา heading; segments that still exceed the
// chunk size, and texts without headings, fall back to an overlapping rune
// window.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	for _, segment := range s.splitAtSections(text) {
		if len([]rune(segment)) <= s.ChunkSize {
			out = append(out, segment)
			continue
		}
		out = append(out, s.window(segment)...)
	}
	return out
}

func (s *Splitter) splitAtSections(text string) []string {
	marks := sectionStartRe.FindAllStringIndex(text, -1)
	if len(marks) == 0 {
		return []string{text}
	}

	var segments []string
	if head := strings.TrimSpace(text[:marks[0][0]]); head != "" {
		segments = append(segments, head)
	}
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		if seg := strings.TrimSpace(text[m[0]:end]); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func (s *Splitter) window(text string) []string {
	runes := []rune(text)
	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
