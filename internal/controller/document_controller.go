package controller

import (
	"os"
	"path/filepath"
	"regexp"

	"lucy-rag-be/internal/pkg/apperr"
	"lucy-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	sessionId := ctx.FormValue("session_id")
	if sessionId == "" {
		return apperr.Validation("session_id is required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperr.Validation("file is required")
	}

	filename := sanitizeFilename(fileHeader.Filename)

	// Unique prefix so parallel uploads of the same name don't clash
	tempPath := filepath.Join(c.uploadDir, uuid.NewString()+"_"+filename)
	if err := ctx.SaveFile(fileHeader, tempPath); err != nil {
		return err
	}
	defer os.Remove(tempPath)

	res, err := c.documentService.Ingest(ctx.Context(), sessionId, tempPath, filename)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeFilenameChars.ReplaceAllString(base, "_")
	if safe == "" || safe == "." || safe == ".." {
		safe = "upload.pdf"
	}
	return safe
}
