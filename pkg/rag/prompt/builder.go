package prompt

import (
	"fmt"
	"strings"

	"lucy-rag-be/internal/constant"
	"lucy-rag-be/pkg/vectorstore"
)

// GroundedBuilder assembles the system prompt that pins the model's
// answers to the retrieved document context.
type GroundedBuilder struct {
	contexts []vectorstore.Match
}

func NewGroundedBuilder(contexts []vectorstore.Match) *GroundedBuilder {
	return &GroundedBuilder{contexts: contexts}
}

// Build renders the instruction frame. Contexts keep the retrieval
// ranking order; no re-ranking happens here.
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeContext(&prompt)
	b.writeInstructions(&prompt)

	return prompt.String()
}

func (b *GroundedBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("You are 'Lucy', an advanced AI research assistant. Your goal is to help users understand the provided research paper.\n\n")
}

func (b *GroundedBuilder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("Context from the document:\n")
	for i, c := range b.contexts {
		if i > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(fmt.Sprintf("[Page %d] %s", c.Page, c.Text))
	}
	prompt.WriteString("\n\n")
}

func (b *GroundedBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("Instructions:\n")
	prompt.WriteString("1. Greetings & Casual Chat: If the user says \"Hello\", \"Hi\", \"Who are you?\", or similar conversational inputs, reply politely and ask them what they would like to know about the document. Do NOT try to use the context for these.\n")
	prompt.WriteString("2. Factual Questions: For all other questions, answer using ONLY the provided context above.\n")
	prompt.WriteString("3. Citations: When answering from the context, you MUST cite your sources by appending [Page X] at the end of the sentence.\n")
	prompt.WriteString(fmt.Sprintf("4. Unknown Information: If the answer to a factual question is not in the context, say exactly: %q and briefly summarize the available topics. Do NOT make up information.\n", constant.FallbackPhrase))
	prompt.WriteString("5. Tone: Be professional, concise, and academic.\n")
}
