package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"knowledgehub-backend/internal/llm"
	"knowledgehub-backend/internal/models"
	"knowledgehub-backend/internal/services"
)

func newUploadHandler(t *testing.T, providers ...llm.Provider) *UploadHandler {
	t.Helper()
	storage, err := services.NewStorageService(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return NewUploadHandler(storage, services.NewFileExtractService(), llm.NewChain(providers...), 10*1024*1024)
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	io.Copy(fw, strings.NewReader(content))
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler_StoresFile(t *testing.T) {
	h := newUploadHandler(t)

	body, contentType := multipartBody(t, "notes.md", "# heading\nsome notes", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.UploadResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Name != "notes.md" {
		t.Errorf("Expected original name preserved, got %q", resp.Name)
	}
	if !strings.HasSuffix(resp.ID, "_notes.md") {
		t.Errorf("Expected timestamped stored name, got %q", resp.ID)
	}
	if resp.URL != "/uploads/"+resp.ID {
		t.Errorf("Expected url to reference stored name, got %q", resp.URL)
	}
	if resp.Summary != "" {
		t.Errorf("No analysis requested, summary should be empty, got %q", resp.Summary)
	}
}

func TestUploadHandler_SanitizesFilename(t *testing.T) {
	h := newUploadHandler(t)

	body, contentType := multipartBody(t, "my notes (v2).txt", "content", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	var resp models.UploadResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if strings.ContainsAny(resp.ID, " ()") {
		t.Errorf("Stored name must be sanitized, got %q", resp.ID)
	}
}

func TestUploadHandler_RejectsDisallowedExtension(t *testing.T) {
	h := newUploadHandler(t)

	body, contentType := multipartBody(t, "payload.exe", "MZ", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for disallowed extension, got %d", rr.Code)
	}
}

func TestUploadHandler_RejectsOversizedUpload(t *testing.T) {
	h := newUploadHandler(t)

	body, contentType := multipartBody(t, "big.txt", "x", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = 11 * 1024 * 1024
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for oversized upload, got %d", rr.Code)
	}
}

func TestUploadHandler_RejectsMissingFile(t *testing.T) {
	h := newUploadHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("analyze", "true")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing file field, got %d", rr.Code)
	}
}

func TestUploadHandler_AnalyzeWithProvider(t *testing.T) {
	p := &stubProvider{
		name: "anthropic", model: "claude-3-5-haiku", configured: true,
		reply: "```json\n{\"summary\": \"Meeting notes.\", \"insights\": [\"one\"]}\n```",
	}
	h := newUploadHandler(t, p)

	body, contentType := multipartBody(t, "notes.txt", "we met and discussed things", map[string]string{"analyze": "true"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	var resp models.UploadResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Summary != "Meeting notes." {
		t.Errorf("Expected analysis summary, got %q", resp.Summary)
	}
	if len(resp.Insights) != 1 || resp.Insights[0] != "one" {
		t.Errorf("Expected analysis insights, got %+v", resp.Insights)
	}
}

func TestUploadHandler_AnalyzeWithoutProvidersStillSucceeds(t *testing.T) {
	h := newUploadHandler(t)

	body, contentType := multipartBody(t, "notes.txt", "content", map[string]string{"analyze": "true"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Analysis failure must not fail the upload, got %d", rr.Code)
	}

	var resp models.UploadResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Summary == "" {
		t.Error("Expected a static unavailability summary")
	}
}

func TestUploadHandler_List(t *testing.T) {
	h := newUploadHandler(t)

	body, contentType := multipartBody(t, "first.txt", "one", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	h.Upload(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/upload", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Files []models.UploadedDocument `json:"files"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Files) != 1 {
		t.Fatalf("Expected 1 stored file, got %d", len(resp.Files))
	}
	if resp.Files[0].Name != "first.txt" {
		t.Errorf("Expected prefix-stripped name, got %q", resp.Files[0].Name)
	}
}
