package service

import (
	"context"
	"fmt"

	"lucy-rag-be/internal/dto"
	"lucy-rag-be/internal/pkg/logger"
	"lucy-rag-be/internal/pkg/serverutils"
	"lucy-rag-be/pkg/pdf"
	"lucy-rag-be/pkg/rag/retrieval"
	"lucy-rag-be/pkg/utils"
)

type IDocumentService interface {
	Ingest(ctx context.Context, sessionId, filePath, filename string) (*dto.UploadDocumentResponse, error)
}

type documentService struct {
	extractor    pdf.Extractor
	retriever    *retrieval.Gateway
	chunkSize    int
	chunkOverlap int
	logger       logger.ILogger
}

func NewDocumentService(
	extractor pdf.Extractor,
	retriever *retrieval.Gateway,
	chunkSize, chunkOverlap int,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		extractor:    extractor,
		retriever:    retriever,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       sysLogger,
	}
}

// Ingest extracts the document's text page by page, chunks it, and
// indexes the chunks under the session. The caller owns the temp file.
func (s *documentService) Ingest(ctx context.Context, sessionId, filePath, filename string) (*dto.UploadDocumentResponse, error) {
	pages, err := s.extractor.ExtractPages(filePath)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	chunks, err := utils.SplitPages(pages, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return nil, err
	}

	count, err := s.retriever.Index(ctx, chunks, sessionId)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document", "Document indexed", map[string]interface{}{
		"session_id": sessionId,
		"filename":   filename,
		"pages":      len(pages),
		"vectors":    count,
	})

	return &dto.UploadDocumentResponse{
		Status:   serverutils.StatusSuccess,
		Message:  fmt.Sprintf("Indexed %d chunks from %d pages", count, len(pages)),
		Filename: filename,
	}, nil
}
