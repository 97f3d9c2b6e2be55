package service

import (
	"context"

	"lucy-rag-be/internal/dto"
	"lucy-rag-be/internal/pkg/logger"
	"lucy-rag-be/internal/pkg/serverutils"
	"lucy-rag-be/internal/repository/contract"
	"lucy-rag-be/pkg/rag/retrieval"
)

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Clear(ctx context.Context, sessionId string) (*dto.ClearSessionResponse, error)
}

type sessionService struct {
	historyRepo contract.HistoryRepository
	retriever   *retrieval.Gateway
	logger      logger.ILogger
}

func NewSessionService(
	historyRepo contract.HistoryRepository,
	retriever *retrieval.Gateway,
	sysLogger logger.ILogger,
) ISessionService {
	return &sessionService{
		historyRepo: historyRepo,
		retriever:   retriever,
		logger:      sysLogger,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId, err := s.historyRepo.Create(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session", "Session created", map[string]interface{}{
		"session_id": sessionId,
	})

	return &dto.CreateSessionResponse{
		Status:    serverutils.StatusSuccess,
		SessionId: sessionId,
	}, nil
}

// Clear wipes the conversation history and purges the session's
// vectors. A purge failure is logged but does not block the history
// clear; vector cleanup and history cleanup are deliberately decoupled.
func (s *sessionService) Clear(ctx context.Context, sessionId string) (*dto.ClearSessionResponse, error) {
	purged := s.retriever.Purge(ctx, sessionId)
	if !purged {
		s.logger.Warn("session", "Vector purge failed, clearing history anyway", map[string]interface{}{
			"session_id": sessionId,
		})
	}

	if err := s.historyRepo.Clear(ctx, sessionId); err != nil {
		return nil, err
	}

	s.logger.Info("session", "Session cleared", map[string]interface{}{
		"session_id": sessionId,
		"purged":     purged,
	})

	return &dto.ClearSessionResponse{
		Status:  serverutils.StatusSuccess,
		Message: "Session cleared",
	}, nil
}
