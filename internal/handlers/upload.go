package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"knowledgehub-backend/internal/llm"
	"knowledgehub-backend/internal/models"
	"knowledgehub-backend/internal/services"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
	".py":   true,
	".ts":   true,
	".js":   true,
	".docx": true,
}

type UploadHandler struct {
	storage       *services.StorageService
	extract       *services.FileExtractService
	chain         *llm.Chain
	maxUploadSize int64
}

func NewUploadHandler(storage *services.StorageService, extract *services.FileExtractService, chain *llm.Chain, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		storage:       storage,
		extract:       extract,
		chain:         chain,
		maxUploadSize: maxUploadSize,
	}
}

// Upload handles POST /upload. The file is stored first; AI analysis is
// advisory and its failure never fails the upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadSize {
		writeJSON(w, http.StatusBadRequest, errorResp("FILE_TOO_LARGE", "File too large (max 10MB)", r))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeJSON(w, http.StatusBadRequest, errorResp("UNSUPPORTED_FORMAT", "File type not supported", r))
		return
	}

	storedName, storedPath, err := h.storage.Save(header.Filename, file)
	if err != nil {
		log.Printf("upload: failed to store %s: %v", header.Filename, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store file", r))
		return
	}

	resp := models.UploadResponse{
		ID:         storedName,
		Name:       header.Filename,
		Size:       header.Size,
		Type:       header.Header.Get("Content-Type"),
		URL:        "/uploads/" + storedName,
		UploadedAt: time.Now().UTC(),
	}

	if r.FormValue("analyze") == "true" {
		analysis := h.analyze(r, storedPath, header.Filename, header.Size)
		resp.Summary = analysis.Summary
		resp.Insights = analysis.Insights
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UploadHandler) analyze(r *http.Request, storedPath, filename string, size int64) models.AnalysisResult {
	if !h.extract.CanExtract(filename) {
		return models.AnalysisResult{
			Summary: filename + " uploaded successfully (" +
				formatKB(size) + " KB). Text extraction not available for this file type.",
			Insights: []string{"File stored successfully", "Binary file — text extraction requires additional processing"},
		}
	}

	text, err := h.extract.ExtractTextFromPath(storedPath)
	if err != nil {
		log.Printf("upload: text extraction failed for %s: %v", filename, err)
		return models.AnalysisResult{
			Summary:  "Document uploaded successfully. Text extraction failed, AI analysis skipped.",
			Insights: []string{"Upload successful", "AI analysis unavailable"},
		}
	}

	return h.chain.Analyze(r.Context(), filename, text)
}

// List handles GET /upload.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.storage.List()
	if err != nil {
		log.Printf("upload: failed to list files: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list files", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"files": docs})
}

func formatKB(size int64) string {
	return fmt.Sprintf("%.1f", float64(size)/1024)
}
