// internal/services/admin_service.go
package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/models"
	"github.com/isonexus/iso-nexus-backend/internal/store"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("incorrect password")

// SecretVerifier abstracts the admin credential check so a real
// authentication backend can be substituted without touching the workflow.
type SecretVerifier interface {
	Verify(secret string) bool
}

type PlainSecretVerifier struct {
	secret string
}

func NewPlainSecretVerifier(secret string) *PlainSecretVerifier {
	return &PlainSecretVerifier{secret: secret}
}

func (v *PlainSecretVerifier) Verify(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(v.secret), []byte(secret)) == 1
}

type BcryptSecretVerifier struct {
	hash string
}

func NewBcryptSecretVerifier(hash string) *BcryptSecretVerifier {
	return &BcryptSecretVerifier{hash: hash}
}

func (v *BcryptSecretVerifier) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(secret)) == nil
}

// VerifierFromConfig prefers the bcrypt hash when one is configured.
func VerifierFromConfig(cfg config.AdminConfig) SecretVerifier {
	if cfg.SecretHash != "" {
		return NewBcryptSecretVerifier(cfg.SecretHash)
	}
	return NewPlainSecretVerifier(cfg.Secret)
}

// DocumentDraft is the staged, uncommitted form of a document. It is
// converted to a full Document only at commit time; identifier and title are
// required then.
type DocumentDraft struct {
	ID          string  `json:"id" validate:"required,doc_id"`
	Title       string  `json:"title" validate:"required,max=255"`
	Code        string  `json:"code" validate:"max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Category    string  `json:"category" validate:"omitempty,oneof=Quality Security Environment Safety"`
	FileType    string  `json:"file_type" validate:"omitempty,oneof=PDF DOCX XLSX"`
	DownloadURL string  `json:"download_url"`
	PaymentLink string  `json:"payment_link"`
}

func (d *DocumentDraft) toDocument() models.Document {
	doc := models.Document{
		ID:          d.ID,
		Title:       d.Title,
		Code:        d.Code,
		Description: d.Description,
		Price:       d.Price,
		Category:    models.Category(d.Category),
		FileType:    models.FileType(d.FileType),
		DownloadURL: d.DownloadURL,
		PaymentLink: d.PaymentLink,
	}
	if doc.Category == "" {
		doc.Category = models.CategoryQuality
	}
	if doc.FileType == "" {
		doc.FileType = models.FileTypePDF
	}
	if doc.DownloadURL == "" {
		doc.DownloadURL = "#"
	}
	return doc
}

type AdminService struct {
	catalog    *store.CatalogStore
	verifier   SecretVerifier
	logger     *logrus.Logger
	sessionTTL int
}

func NewAdminService(catalog *store.CatalogStore, verifier SecretVerifier, sessionTTL int, logger *logrus.Logger) *AdminService {
	return &AdminService{
		catalog:    catalog,
		verifier:   verifier,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Login checks the shared secret and issues the admin token. There is no
// lockout and no attempt tracking.
func (s *AdminService) Login(secret string) (string, error) {
	if !s.verifier.Verify(secret) {
		s.logger.Warn("Admin login failed")
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminJWT(s.sessionTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue admin token: %w", err)
	}

	s.logger.Info("Admin login succeeded")
	return token, nil
}

// NewDraft pre-seeds the edit form for a fresh document.
func (s *AdminService) NewDraft() DocumentDraft {
	return DocumentDraft{
		ID:          models.NewDocumentID(),
		Price:       0,
		Category:    string(models.CategoryQuality),
		FileType:    string(models.FileTypePDF),
		DownloadURL: "#",
	}
}

// SaveDocument commits a draft. An identifier already in the catalog replaces
// that document in place; a new identifier prepends. The boolean reports
// whether a new document was created.
func (s *AdminService) SaveDocument(draft DocumentDraft) (models.Document, bool, error) {
	if err := utils.ValidateStruct(&draft); err != nil {
		return models.Document{}, false, err
	}

	doc := draft.toDocument()
	if s.catalog.HasDocument(doc.ID) {
		if err := s.catalog.ReplaceDocument(doc); err != nil {
			return models.Document{}, false, err
		}
		s.logger.WithField("document_id", doc.ID).Info("Document updated")
		return doc, false, nil
	}

	if err := s.catalog.InsertDocument(doc); err != nil {
		return models.Document{}, false, err
	}
	s.logger.WithField("document_id", doc.ID).Info("Document created")
	return doc, true, nil
}

// DeleteDocument removes by identifier. Purchased-ID sets are left alone, so
// entitlements to deleted documents dangle by design of the data model.
func (s *AdminService) DeleteDocument(id string) error {
	if err := s.catalog.DeleteDocument(id); err != nil {
		return err
	}
	s.logger.WithField("document_id", id).Info("Document deleted")
	return nil
}

func (s *AdminService) ListDocuments(category string) []models.Document {
	if category == "" || category == "ALL" {
		return s.catalog.ListDocuments()
	}
	return s.catalog.ListDocumentsByCategory(models.Category(category))
}

// UpdateSiteConfig commits the staged copy wholesale. Opacity is clamped to
// the 0-100 range the input control enforces client-side.
func (s *AdminService) UpdateSiteConfig(draft models.SiteConfig) models.SiteConfig {
	if draft.HeroImageOpacity < 0 {
		draft.HeroImageOpacity = 0
	}
	if draft.HeroImageOpacity > 100 {
		draft.HeroImageOpacity = 100
	}

	s.catalog.SetSiteConfig(draft)
	s.logger.Info("Site content updated")
	return draft
}
