// internal/services/upload_service.go
package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/isonexus/iso-nexus-backend/internal/models"
)

// Upload is a session-local resource handle. The bytes live in process memory
// only and vanish on restart; the URL is servable for the current process.
type Upload struct {
	ID          string          `json:"id"`
	URL         string          `json:"url"`
	Filename    string          `json:"filename"`
	Size        int64           `json:"size"`
	ContentType string          `json:"content_type"`
	FileType    models.FileType `json:"file_type"`
	Data        []byte          `json:"-"`
}

// UploadService holds uploaded files in memory and infers the catalog
// file-type tag from the filename extension.
type UploadService struct {
	logger  *logrus.Logger
	maxSize int64

	mu    sync.RWMutex
	files map[string]*Upload
}

func NewUploadService(maxSize int64, logger *logrus.Logger) *UploadService {
	return &UploadService{
		logger:  logger,
		maxSize: maxSize,
		files:   make(map[string]*Upload),
	}
}

func (s *UploadService) UploadFile(file multipart.File, header *multipart.FileHeader) (*Upload, error) {
	if s.maxSize > 0 && header.Size > s.maxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, s.maxSize)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return s.Store(header.Filename, header.Header.Get("Content-Type"), fileBytes)
}

func (s *UploadService) Store(filename, contentType string, data []byte) (*Upload, error) {
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", len(data), s.maxSize)
	}

	upload := &Upload{
		ID:          uuid.NewString(),
		Filename:    filename,
		Size:        int64(len(data)),
		ContentType: contentType,
		FileType:    models.FileTypeFromFilename(filename),
		Data:        data,
	}
	upload.URL = "/uploads/" + upload.ID

	s.mu.Lock()
	s.files[upload.ID] = upload
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"upload_id": upload.ID,
		"filename":  filename,
		"size":      upload.Size,
		"file_type": upload.FileType,
	}).Info("File uploaded")

	return upload, nil
}

func (s *UploadService) Get(id string) (*Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upload, ok := s.files[id]
	return upload, ok
}
