// internal/store/catalog.go
package store

import (
	"errors"
	"sync"

	"github.com/isonexus/iso-nexus-backend/internal/models"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicateID = errors.New("document identifier already exists")
)

// CatalogStore owns the mutable document collection and the SiteConfig
// singleton. All state is process-local and resets on restart. The collection
// is kept newest-first: inserts prepend, replacements keep position.
type CatalogStore struct {
	mu         sync.RWMutex
	documents  []models.Document
	siteConfig models.SiteConfig
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		documents:  models.DefaultCatalog(),
		siteConfig: models.DefaultSiteConfig(),
	}
}

// ListDocuments returns a snapshot of the collection in display order.
func (s *CatalogStore) ListDocuments() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]models.Document, len(s.documents))
	copy(docs, s.documents)
	return docs
}

// ListDocumentsByCategory is a read-side filter; it never mutates the
// underlying collection.
func (s *CatalogStore) ListDocumentsByCategory(category models.Category) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]models.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if doc.Category == category {
			docs = append(docs, doc)
		}
	}
	return docs
}

func (s *CatalogStore) GetDocument(id string) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.ID == id {
			return doc, nil
		}
	}
	return models.Document{}, ErrNotFound
}

func (s *CatalogStore) HasDocument(id string) bool {
	_, err := s.GetDocument(id)
	return err == nil
}

// InsertDocument prepends a new document so newest-first ordering is
// preserved for display.
func (s *CatalogStore) InsertDocument(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.documents {
		if existing.ID == doc.ID {
			return ErrDuplicateID
		}
	}

	s.documents = append([]models.Document{doc}, s.documents...)
	return nil
}

// ReplaceDocument swaps the stored document with the same identifier in
// place; collection order is unchanged.
func (s *CatalogStore) ReplaceDocument(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.documents {
		if existing.ID == doc.ID {
			s.documents[i] = doc
			return nil
		}
	}
	return ErrNotFound
}

func (s *CatalogStore) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.documents {
		if existing.ID == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *CatalogStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func (s *CatalogStore) SiteConfig() models.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteConfig
}

// SetSiteConfig commits a full replacement; partial-field commits do not
// exist at this layer.
func (s *CatalogStore) SetSiteConfig(cfg models.SiteConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.siteConfig = cfg
}
