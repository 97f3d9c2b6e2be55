package factory

import (
	"fmt"

	"lucy-rag-be/pkg/llm"
	"lucy-rag-be/pkg/llm/groq"
)

func NewLLMProvider(providerType, apiKey, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq", "":
		return groq.NewGroqProvider(apiKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
