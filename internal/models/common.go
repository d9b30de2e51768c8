// internal/models/common.go
package models

import (
	"path/filepath"
	"strings"
)

// Enums
type Category string

const (
	CategoryQuality     Category = "Quality"
	CategorySecurity    Category = "Security"
	CategoryEnvironment Category = "Environment"
	CategorySafety      Category = "Safety"
)

func Categories() []Category {
	return []Category{CategoryQuality, CategorySecurity, CategoryEnvironment, CategorySafety}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryQuality, CategorySecurity, CategoryEnvironment, CategorySafety:
		return true
	}
	return false
}

type FileType string

const (
	FileTypePDF  FileType = "PDF"
	FileTypeDOCX FileType = "DOCX"
	FileTypeXLSX FileType = "XLSX"
)

func (f FileType) IsValid() bool {
	switch f {
	case FileTypePDF, FileTypeDOCX, FileTypeXLSX:
		return true
	}
	return false
}

// FileTypeFromFilename infers the file-type tag from a filename extension.
// Unrecognized extensions fall back to PDF.
func FileTypeFromFilename(name string) FileType {
	ext := FileType(strings.ToUpper(strings.TrimPrefix(filepath.Ext(name), ".")))
	if ext.IsValid() {
		return ext
	}
	return FileTypePDF
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type FlowStep string

const (
	FlowStepIdle                 FlowStep = "idle"
	FlowStepDetails              FlowStep = "details"
	FlowStepRedirecting          FlowStep = "redirecting"
	FlowStepAwaitingConfirmation FlowStep = "awaiting_confirmation"
	FlowStepSuccess              FlowStep = "success"
)
