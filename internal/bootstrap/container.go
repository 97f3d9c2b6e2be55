package bootstrap

import (
	"log"
	"os"

	"lucy-rag-be/internal/config"
	"lucy-rag-be/internal/controller"
	"lucy-rag-be/internal/pkg/logger"
	"lucy-rag-be/internal/repository/file"
	"lucy-rag-be/internal/service"
	"lucy-rag-be/pkg/embedding/cohere"
	"lucy-rag-be/pkg/llm/factory"
	"lucy-rag-be/pkg/pdf"
	"lucy-rag-be/pkg/rag/response"
	"lucy-rag-be/pkg/rag/retrieval"
	"lucy-rag-be/pkg/vectorstore/pinecone"
)

type Container struct {
	SessionController  controller.ISessionController
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		log.Fatalf("[FATAL] Failed to create upload dir: %v", err)
	}

	historyRepo, err := file.NewHistoryRepository(cfg.Storage.SessionDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize session store: %v", err)
	}

	embeddingProvider := cohere.NewCohereProvider(cfg.Keys.Cohere, cfg.Ai.EmbeddingModel)

	vectorStore := pinecone.NewStore(pinecone.Config{
		APIKey:    cfg.Keys.Pinecone,
		IndexName: cfg.Ai.IndexName,
		Host:      cfg.Ai.IndexHost,
	})

	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Keys.Groq, cfg.Ai.LLMModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	retriever := retrieval.NewGateway(embeddingProvider, vectorStore, log.New(os.Stdout, "[RAG] ", log.LstdFlags))
	generator := response.NewGenerator(llmProvider)
	extractor := pdf.NewFileExtractor()

	sessionService := service.NewSessionService(historyRepo, retriever, sysLogger)
	chatService := service.NewChatService(historyRepo, retriever, generator, cfg.Ai.TopK, sysLogger)
	documentService := service.NewDocumentService(extractor, retriever, cfg.Ai.ChunkSize, cfg.Ai.ChunkOverlap, sysLogger)

	return &Container{
		SessionController:  controller.NewSessionController(sessionService),
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService, cfg.Storage.UploadDir),
		Logger:             sysLogger,
	}
}
