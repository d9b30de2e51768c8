// internal/services/access_policy.go
package services

import "github.com/isonexus/iso-nexus-backend/internal/models"

// IsDownloadable is the single gating rule for the storefront: a document is
// downloadable iff it is free or its identifier is in the purchased set.
func IsDownloadable(doc models.Document, purchasedIDs map[string]struct{}) bool {
	if doc.IsFree() {
		return true
	}
	_, purchased := purchasedIDs[doc.ID]
	return purchased
}
