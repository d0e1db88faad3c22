package models

import "time"

// UploadedDocument describes a file stored under the uploads directory.
// Documents are never mutated after upload; deletion is manual.
type UploadedDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AnalysisResult is the AI-generated summary of an uploaded document.
// Analysis is advisory: a failed analysis never fails the upload.
type AnalysisResult struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Summary    string    `json:"summary,omitempty"`
	Insights   []string  `json:"insights,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}
