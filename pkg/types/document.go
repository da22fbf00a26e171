package types

import (
	"strings"
	"time"
)

type DocumentType string

const (
	DocTypeTranscript     DocumentType = "transcript"
	DocTypeEssay          DocumentType = "essay"
	DocTypeRecommendation DocumentType = "recommendation"
	DocTypeResume         DocumentType = "resume"
	DocTypePortfolio      DocumentType = "portfolio"
	DocTypeOther          DocumentType = "other"
)

var DocumentTypes = []DocumentType{
	DocTypeTranscript,
	DocTypeEssay,
	DocTypeRecommendation,
	DocTypeResume,
	DocTypePortfolio,
	DocTypeOther,
}

func (t DocumentType) Valid() bool {
	for _, v := range DocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Document is a file reference attached to exactly one application
type Document struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	UploadedAt time.Time    `json:"uploadedAt"`
	Size       int64        `json:"size"`
	URL        string       `json:"url"`
}

type DocumentInput struct {
	Name string       `json:"name"`
	Type DocumentType `json:"type"`
	Size int64        `json:"size"`
	URL  string       `json:"url"`
}

func (in *DocumentInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	if in.Type == "" {
		in.Type = DocTypeOther
	}
}

func (in DocumentInput) Validate() error {
	if in.Name == "" {
		return invalid("name", "is required")
	}
	if !in.Type.Valid() {
		return invalid("type", "is not a document type")
	}
	if in.Size < 0 {
		return invalid("size", "must not be negative")
	}
	return nil
}
