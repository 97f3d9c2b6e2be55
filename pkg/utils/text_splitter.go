package utils

import (
	"fmt"
	"strings"
)

// Chunk is a bounded slice of document text tagged with its 1-indexed
// source page.
type Chunk struct {
	Page int
	Text string
}

// SplitPages turns page-ordered document text into overlapping
// fixed-size chunks. Each page is normalized (whitespace runs collapsed,
// trimmed) before a sliding window of chunkSize runes advances by
// chunkSize-overlap. Pages that normalize to empty contribute nothing.
// This is a simple character-based splitter; ideally a tokenizer-aware
// one would be used.
func SplitPages(pages []string, chunkSize, overlap int) ([]Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap >= chunkSize {
		// A non-positive step would loop forever
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}

	step := chunkSize - overlap

	var chunks []Chunk
	for pageIdx, pageText := range pages {
		normalized := strings.Join(strings.Fields(pageText), " ")
		if normalized == "" {
			continue
		}

		runes := []rune(normalized)
		totalLen := len(runes)

		for start := 0; start < totalLen; start += step {
			end := start + chunkSize
			if end > totalLen {
				end = totalLen
			}
			chunks = append(chunks, Chunk{
				Page: pageIdx + 1,
				Text: string(runes[start:end]),
			})
		}
	}

	return chunks, nil
}
