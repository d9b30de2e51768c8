// internal/services/access_policy_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isonexus/iso-nexus-backend/internal/models"
)

func TestIsDownloadable(t *testing.T) {
	free := models.Document{ID: "doc_1", Price: 0}
	paid := models.Document{ID: "doc_2", Price: 49.99}

	tests := []struct {
		name      string
		doc       models.Document
		purchased map[string]struct{}
		want      bool
	}{
		{"free document, empty set", free, nil, true},
		{"free document, unrelated purchases", free, map[string]struct{}{"doc_9": {}}, true},
		{"paid document, empty set", paid, nil, false},
		{"paid document, not purchased", paid, map[string]struct{}{"doc_9": {}}, false},
		{"paid document, purchased", paid, map[string]struct{}{"doc_2": {}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDownloadable(tt.doc, tt.purchased))
		})
	}
}
