package pdf

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls page-ordered plain text out of a document on disk.
type Extractor interface {
	ExtractPages(path string) ([]string, error)
}

// FileExtractor reads PDFs with the ledongthuc/pdf reader.
type FileExtractor struct{}

func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

var _ Extractor = (*FileExtractor)(nil)

// ExtractPages returns one string per page, in document order.
// Pages whose text cannot be decoded are returned empty rather than
// aborting the whole document.
func (e *FileExtractor) ExtractPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
