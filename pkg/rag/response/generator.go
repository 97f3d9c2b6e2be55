package response

import (
	"context"
	"fmt"

	"lucy-rag-be/internal/constant"
	"lucy-rag-be/internal/entity"
	"lucy-rag-be/pkg/llm"
	"lucy-rag-be/pkg/rag/prompt"
	"lucy-rag-be/pkg/vectorstore"
)

const (
	answerTemperature = 0.2
	answerMaxTokens   = 1024
)

// Generator produces grounded answers: system prompt with retrieved
// context, a trimmed history window, then the current query. Citation
// formatting and fallback wording stay the model's responsibility
// under the instruction frame; nothing is post-processed here.
type Generator struct {
	llmProvider llm.LLMProvider
}

func NewGenerator(llmProvider llm.LLMProvider) *Generator {
	return &Generator{llmProvider: llmProvider}
}

// GenerateAnswer invokes the LLM with low-temperature decoding and a
// bounded output cap.
func (g *Generator) GenerateAnswer(
	ctx context.Context,
	query string,
	contexts []vectorstore.Match,
	history []entity.ChatMessage,
) (string, error) {
	systemPrompt := prompt.NewGroundedBuilder(contexts).Build()

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	// Last N entries only, oldest of that window first
	start := len(history) - constant.HistoryWindow
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: query,
	})

	answer, err := g.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(answerTemperature),
		llm.WithMaxTokens(answerMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}
