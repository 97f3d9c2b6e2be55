package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// HistoryWindow is how many trailing history entries are replayed
	// to the model on each chat turn.
	HistoryWindow = 4

	// FallbackPhrase must open any answer whose factual content is not
	// present in the retrieved context. The prompt instructs the model
	// to use it verbatim.
	FallbackPhrase = "I don't see evidence for that in the provided paper. Here is what the paper does cover..."
)
