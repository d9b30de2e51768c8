// internal/store/catalog_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isonexus/iso-nexus-backend/internal/models"
)

func TestCatalogStoreSeedsDefaultCatalog(t *testing.T) {
	s := NewCatalogStore()

	docs := s.ListDocuments()
	require.Len(t, docs, 6)
	assert.Equal(t, "doc_1", docs[0].ID)
	assert.Equal(t, "doc_6", docs[5].ID)
	assert.Equal(t, "ISO Nexus", s.SiteConfig().HeroHeadlineHighlight)
}

func TestInsertDocumentPrepends(t *testing.T) {
	s := NewCatalogStore()

	err := s.InsertDocument(models.Document{ID: "doc_new", Title: "X"})
	require.NoError(t, err)

	docs := s.ListDocuments()
	require.Len(t, docs, 7)
	assert.Equal(t, "doc_new", docs[0].ID)
}

func TestInsertDocumentRejectsDuplicateID(t *testing.T) {
	s := NewCatalogStore()

	err := s.InsertDocument(models.Document{ID: "doc_1", Title: "dupe"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 6, s.Count())
}

func TestReplaceDocumentKeepsOrder(t *testing.T) {
	s := NewCatalogStore()
	before := s.ListDocuments()

	updated := before[2]
	updated.Title = "renamed"
	updated.Price = 99.99
	require.NoError(t, s.ReplaceDocument(updated))

	after := s.ListDocuments()
	require.Len(t, after, len(before))
	for i := range after {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
	got, err := s.GetDocument(updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, 99.99, got.Price)
}

func TestReplaceDocumentMissing(t *testing.T) {
	s := NewCatalogStore()
	err := s.ReplaceDocument(models.Document{ID: "doc_missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDocument(t *testing.T) {
	s := NewCatalogStore()

	require.NoError(t, s.DeleteDocument("doc_1"))
	assert.Equal(t, 5, s.Count())
	_, err := s.GetDocument("doc_1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteDocument("doc_1"), ErrNotFound)
}

func TestListDocumentsByCategory(t *testing.T) {
	s := NewCatalogStore()

	security := s.ListDocumentsByCategory(models.CategorySecurity)
	require.Len(t, security, 2)
	for _, doc := range security {
		assert.Equal(t, models.CategorySecurity, doc.Category)
	}
	// The filter is read-only.
	assert.Equal(t, 6, s.Count())
}

func TestSetSiteConfigReplacesWholesale(t *testing.T) {
	s := NewCatalogStore()

	next := models.SiteConfig{HeroHeadline: "New headline", HeroImageOpacity: 30}
	s.SetSiteConfig(next)
	assert.Equal(t, next, s.SiteConfig())
}

func TestEntitlementStoreGrantIsSetLike(t *testing.T) {
	e := NewEntitlementStore()

	e.Grant("sess", "doc_2")
	e.Grant("sess", "doc_2")

	assert.True(t, e.Has("sess", "doc_2"))
	assert.False(t, e.Has("sess", "doc_1"))
	assert.False(t, e.Has("other", "doc_2"))
	assert.Len(t, e.Purchased("sess"), 1)
}
