// ABOUTME: Deterministic sliding-window text chunker with overlap
// ABOUTME: Splits normalized text into fixed-size windows for embedding
package chunker

import (
	"strings"

	"github.com/chairaharder/askchaira/internal/textutil"
)

const (
	// DefaultSize is tuned for the embedding model's input limit, not a
	// hard contract; callers may vary it.
	DefaultSize = 4000
	// DefaultOverlap is 10% of the default size.
	DefaultOverlap = DefaultSize / 10
)

// Split divides text into ordered windows of at most size characters, with
// consecutive windows overlapping by overlap characters (except when the
// final window is truncated by the end of the text). Text is normalized
// first; empty input yields no chunks and no produced chunk is empty.
//
// The step between windows is max(1, size-overlap), which guarantees
// termination even when overlap >= size.
func Split(text string, size, overlap int) []string {
	cleaned := textutil.Normalize(text)
	if cleaned == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(cleaned)
	step := size - overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk == "" {
			break
		}
		chunks = append(chunks, chunk)
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// SplitDefault applies the default window size and overlap.
func SplitDefault(text string) []string {
	return Split(text, DefaultSize, DefaultOverlap)
}
