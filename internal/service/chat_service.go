package service

import (
	"context"

	"lucy-rag-be/internal/constant"
	"lucy-rag-be/internal/dto"
	"lucy-rag-be/internal/pkg/logger"
	"lucy-rag-be/internal/pkg/serverutils"
	"lucy-rag-be/internal/repository/contract"
	"lucy-rag-be/pkg/rag/response"
	"lucy-rag-be/pkg/rag/retrieval"
)

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	historyRepo contract.HistoryRepository
	retriever   *retrieval.Gateway
	generator   *response.Generator
	topK        int
	logger      logger.ILogger
}

func NewChatService(
	historyRepo contract.HistoryRepository,
	retriever *retrieval.Gateway,
	generator *response.Generator,
	topK int,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		historyRepo: historyRepo,
		retriever:   retriever,
		generator:   generator,
		topK:        topK,
		logger:      sysLogger,
	}
}

// SendChat retrieves session-scoped context, composes a grounded
// answer, and appends both turns to the history. The user message is
// appended only after generation succeeds, so a failed request leaves
// the history untouched.
func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	contexts, err := s.retriever.Search(ctx, request.Message, request.SessionId, s.topK)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.Read(ctx, request.SessionId)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.GenerateAnswer(ctx, request.Message, contexts, history)
	if err != nil {
		return nil, err
	}

	if err := s.historyRepo.Append(ctx, request.SessionId, constant.ChatMessageRoleUser, request.Message); err != nil {
		return nil, err
	}
	if err := s.historyRepo.Append(ctx, request.SessionId, constant.ChatMessageRoleAssistant, answer); err != nil {
		return nil, err
	}

	sources := make([]dto.ChatSource, 0, len(contexts))
	for _, c := range contexts {
		sources = append(sources, dto.ChatSource{Page: c.Page})
	}

	s.logger.Info("chat", "Answer generated", map[string]interface{}{
		"session_id": request.SessionId,
		"contexts":   len(contexts),
	})

	return &dto.SendChatResponse{
		Status:  serverutils.StatusSuccess,
		Answer:  answer,
		Sources: sources,
	}, nil
}
