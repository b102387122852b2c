package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/storage"
)

var allowedDocumentExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

type documentService struct {
	store        storage.Store
	maxFileBytes int64
}

func NewDocumentService(store storage.Store, maxFileSizeMB int64) DocumentService {
	return &documentService{
		store:        store,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}
}

func (s *documentService) Upload(ctx context.Context, files []DocumentFile) ([]string, error) {
	if len(files) == 0 {
		return nil, apperr.Validation("no document images provided")
	}
	if len(files) > domain.MaxDocumentImages {
		return nil, apperr.Validationf("maximum %d document images allowed", domain.MaxDocumentImages)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !allowedDocumentExts[ext] {
			s.cleanup(ctx, urls)
			return nil, apperr.Validationf("unsupported document type %q", ext)
		}
		if int64(len(f.Data)) > s.maxFileBytes {
			s.cleanup(ctx, urls)
			return nil, apperr.Validationf("document %s exceeds the size limit", f.Name)
		}

		url, err := s.store.Save(ctx, f.Name, bytes.NewReader(f.Data))
		if err != nil {
			s.cleanup(ctx, urls)
			return nil, apperr.Internal(err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// cleanup removes already-stored files after a mid-batch failure so a
// rejected upload leaves nothing behind.
func (s *documentService) cleanup(ctx context.Context, urls []string) {
	for _, url := range urls {
		_ = s.store.Delete(ctx, url)
	}
}
