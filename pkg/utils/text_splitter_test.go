package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPages_ShortPages(t *testing.T) {
	pages := []string{"first page text", "second page text"}

	chunks, err := SplitPages(pages, 800, 150)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, "first page text", chunks[0].Text)
	assert.Equal(t, 2, chunks[1].Page)
	assert.Equal(t, "second page text", chunks[1].Text)
}

func TestSplitPages_WindowStride(t *testing.T) {
	// 2000 chars of distinct filler so window starts are checkable
	text := strings.Repeat("abcdefghij", 200)

	chunks, err := SplitPages([]string{text}, 800, 150)
	require.NoError(t, err)

	// Starts at 0, 650, 1300, 1950
	require.Len(t, chunks, 4)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), 800)
		assert.Equal(t, 1, c.Page)

		start := i * 650
		end := start + 800
		if end > len(text) {
			end = len(text)
		}
		assert.Equal(t, text[start:end], c.Text, "chunk %d", i)
	}

	// Consecutive chunks on the same page overlap by 150 chars
	assert.Equal(t, chunks[0].Text[650:], chunks[1].Text[:150])
}

func TestSplitPages_NormalizesWhitespace(t *testing.T) {
	chunks, err := SplitPages([]string{"  hello\n\n\tworld  \r\n again "}, 800, 150)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world again", chunks[0].Text)
}

func TestSplitPages_SkipsEmptyPages(t *testing.T) {
	pages := []string{"page one", "   \n\t ", "page three"}

	chunks, err := SplitPages(pages, 800, 150)
	require.NoError(t, err)

	// Blank page contributes nothing but page numbering is preserved
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, 3, chunks[1].Page)
}

func TestSplitPages_OrderedByPageAndPosition(t *testing.T) {
	long := strings.Repeat("x", 1500)
	chunks, err := SplitPages([]string{long, long}, 800, 150)
	require.NoError(t, err)

	lastPage := 0
	for _, c := range chunks {
		assert.GreaterOrEqual(t, c.Page, lastPage)
		lastPage = c.Page
	}
	// 1500 chars -> windows at 0, 650, 1300 per page
	assert.Len(t, chunks, 6)
}

func TestSplitPages_OverlapGuard(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{name: "overlap equals chunk size", chunkSize: 800, overlap: 800},
		{name: "overlap exceeds chunk size", chunkSize: 100, overlap: 150},
		{name: "zero chunk size", chunkSize: 0, overlap: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitPages([]string{"some text"}, tt.chunkSize, tt.overlap)
			assert.Error(t, err)
		})
	}
}

func TestSplitPages_NoPages(t *testing.T) {
	chunks, err := SplitPages(nil, 800, 150)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
