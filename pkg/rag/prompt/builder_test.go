package prompt

import (
	"strings"
	"testing"

	"lucy-rag-be/internal/constant"
	"lucy-rag-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LabelsContextsWithPages(t *testing.T) {
	contexts := []vectorstore.Match{
		{Page: 3, Text: "third page finding", Score: 0.9},
		{Page: 1, Text: "first page finding", Score: 0.7},
	}

	built := NewGroundedBuilder(contexts).Build()

	assert.Contains(t, built, "[Page 3] third page finding")
	assert.Contains(t, built, "[Page 1] first page finding")

	// Retrieval ranking order is preserved, no re-ranking by page
	require.Less(t,
		strings.Index(built, "[Page 3]"),
		strings.Index(built, "[Page 1]"),
	)
}

func TestBuild_InstructionFrame(t *testing.T) {
	built := NewGroundedBuilder(nil).Build()

	assert.Contains(t, built, "'Lucy'")
	assert.Contains(t, built, "ONLY the provided context")
	assert.Contains(t, built, "[Page X]")
	assert.Contains(t, built, constant.FallbackPhrase)
	assert.Contains(t, built, "professional, concise, and academic")
}

func TestBuild_EmptyContexts(t *testing.T) {
	built := NewGroundedBuilder(nil).Build()

	// The context block exists but is empty, so the fallback rule
	// applies to every factual question
	assert.Contains(t, built, "Context from the document:")
	assert.NotContains(t, built, "[Page 0]")
}
