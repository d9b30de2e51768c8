// internal/models/document.go
package models

import (
	"fmt"
	"time"
)

// Document is a sellable ISO-template asset. A price of exactly 0 marks the
// document as free; paid documents carry the external payment-link URL.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	FileType    FileType `json:"file_type"`
	DownloadURL string   `json:"download_url"`
	PaymentLink string   `json:"payment_link,omitempty"`
}

func (d Document) IsFree() bool {
	return d.Price == 0
}

// NewDocumentID returns a fresh identifier for a document created through the
// admin workflow.
func NewDocumentID() string {
	return fmt.Sprintf("doc_%d", time.Now().UnixMilli())
}

// DefaultCatalog returns the six-document catalog the store is seeded with.
func DefaultCatalog() []Document {
	return []Document{
		{
			ID:          "doc_1",
			Title:       "ISO 9001:2015 Implementation Checklist",
			Code:        "ISO 9001",
			Description: "A comprehensive step-by-step checklist to prepare for your Quality Management System audit.",
			Price:       0,
			Category:    CategoryQuality,
			FileType:    FileTypePDF,
			DownloadURL: "#",
		},
		{
			ID:          "doc_2",
			Title:       "ISO 27001:2022 ISMS Policy Template",
			Code:        "ISO 27001",
			Description: "Complete Information Security Management System policy templates compliant with the latest 2022 standards.",
			Price:       49.99,
			Category:    CategorySecurity,
			FileType:    FileTypeDOCX,
			DownloadURL: "#",
			PaymentLink: "https://stripe.com/docs/payment-links",
		},
		{
			ID:          "doc_3",
			Title:       "Internal Audit Plan - ISO 14001",
			Code:        "ISO 14001",
			Description: "Templates and scheduling tools for Environmental Management System internal audits.",
			Price:       29.99,
			Category:    CategoryEnvironment,
			FileType:    FileTypeXLSX,
			DownloadURL: "#",
			PaymentLink: "https://stripe.com/docs/payment-links",
		},
		{
			ID:          "doc_4",
			Title:       "Risk Assessment Matrix (ISO 31000 aligned)",
			Code:        "ISO 31000",
			Description: "A free tool to categorize and visualize enterprise risks.",
			Price:       0,
			Category:    CategorySafety,
			FileType:    FileTypeXLSX,
			DownloadURL: "#",
		},
		{
			ID:          "doc_5",
			Title:       "GDPR & ISO 27701 Mapping Guide",
			Code:        "ISO 27701",
			Description: "Cross-reference guide between General Data Protection Regulation and Privacy Information Management.",
			Price:       15.00,
			Category:    CategorySecurity,
			FileType:    FileTypePDF,
			DownloadURL: "#",
			PaymentLink: "https://stripe.com/docs/payment-links",
		},
		{
			ID:          "doc_6",
			Title:       "OH&S Manual - ISO 45001",
			Code:        "ISO 45001",
			Description: "Full operational manual for Occupational Health and Safety.",
			Price:       89.99,
			Category:    CategorySafety,
			FileType:    FileTypeDOCX,
			DownloadURL: "#",
			PaymentLink: "https://stripe.com/docs/payment-links",
		},
	}
}
