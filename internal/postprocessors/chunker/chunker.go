// Package chunker splits document text into bounded-size overlapping
// segments, the unit of embedding and retrieval.
package chunker

import (
	"fmt"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// DefaultChunkSize is the default number of runes per segment.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping runes between
// consecutive segments.
const DefaultOverlap = 200

// Segment is a contiguous span of the source text.
// Offsets are measured in runes.
type Segment struct {
	Text  string
	Start int
	End   int
}

// Split divides text into segments of at most maxSize runes, each
// overlapping the previous segment by overlap runes. Boundaries prefer a
// paragraph break, then a sentence end, within a bounded window before
// the hard cut; a text with no breakpoints is cut at exactly maxSize.
// The final segment may be shorter than maxSize.
//
// maxSize must be positive and overlap must be in [0, maxSize);
// otherwise Split fails with domain.ErrInvalidParameter.
func Split(text string, maxSize, overlap int) ([]Segment, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidParameter, maxSize)
	}
	if overlap < 0 || overlap >= maxSize {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidParameter, overlap, maxSize)
	}

	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil, nil
	}

	segments := make([]Segment, 0, total/(maxSize-overlap)+1)

	start := 0
	for {
		end := start + maxSize
		if end >= total {
			segments = append(segments, Segment{
				Text:  string(runes[start:total]),
				Start: start,
				End:   total,
			})
			return segments, nil
		}

		end = preferBreakpoint(runes, start, end, maxSize)

		segments = append(segments, Segment{
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
		})

		next := end - overlap
		// A breakpoint very close to start could otherwise stall the scan.
		if next <= start {
			next = start + 1
		}
		start = next
	}
}

// breakpointWindow bounds how far back from the hard cut a natural
// boundary may move the segment end.
func breakpointWindow(maxSize int) int {
	w := maxSize / 5
	if w < 1 {
		w = 1
	}
	return w
}

// preferBreakpoint scans backwards from the hard cut for a paragraph
// break, then a sentence end. Falls back to the hard cut when the window
// contains neither, so that uniform text splits at exactly maxSize.
func preferBreakpoint(runes []rune, start, cut, maxSize int) int {
	limit := cut - breakpointWindow(maxSize)
	if limit < start+1 {
		limit = start + 1
	}

	// Paragraph break: cut just after the newline.
	for i := cut - 1; i >= limit; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}

	// Sentence end: a terminator followed by whitespace. The cut lands
	// after that whitespace, so it never exceeds the hard cut.
	for i := cut - 2; i >= limit; i-- {
		if isSentenceEnd(runes[i]) && isSpace(runes[i+1]) {
			return i + 2
		}
	}

	return cut
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
