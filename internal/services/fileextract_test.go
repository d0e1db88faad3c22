package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCanExtract(t *testing.T) {
	s := NewFileExtractService()

	tests := []struct {
		filename string
		expected bool
	}{
		{"notes.txt", true},
		{"readme.md", true},
		{"data.csv", true},
		{"script.py", true},
		{"module.ts", true},
		{"doc.pdf", true},
		{"report.docx", true},
		{"image.png", false},
		{"archive.zip", false},
	}

	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			if got := s.CanExtract(tc.filename); got != tc.expected {
				t.Errorf("CanExtract(%q) = %v, expected %v", tc.filename, got, tc.expected)
			}
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	s := NewFileExtractService()

	path := filepath.Join(t.TempDir(), "notes.txt")
	os.WriteFile(path, []byte("line one\r\n\r\n\r\nline two  \n"), 0o644)

	text, err := s.ExtractTextFromPath(path)
	if err != nil {
		t.Fatalf("Extraction failed: %v", err)
	}
	if text != "line one\n\nline two" {
		t.Errorf("Expected normalized text, got %q", text)
	}
}

func TestExtractPlainText_Empty(t *testing.T) {
	s := NewFileExtractService()

	path := filepath.Join(t.TempDir(), "empty.txt")
	os.WriteFile(path, []byte("   \n  \n"), 0o644)

	if _, err := s.ExtractTextFromPath(path); err == nil {
		t.Error("Expected an error for an empty file")
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	s := NewFileExtractService()

	if _, err := s.ExtractTextFromPath("image.png"); err == nil {
		t.Error("Expected an error for unsupported type")
	}
}

func TestStripDOCXML(t *testing.T) {
	xml := `<w:document><w:p><w:r><w:t>First paragraph</w:t></w:r></w:p><w:p><w:r><w:t>Second &amp; third</w:t></w:r></w:p></w:document>`

	text := stripDOCXML([]byte(xml))
	if !strings.Contains(text, "First paragraph") {
		t.Errorf("Expected paragraph text, got %q", text)
	}
	if !strings.Contains(text, "Second & third") {
		t.Errorf("Expected entities decoded, got %q", text)
	}
	if strings.Contains(text, "<w:") {
		t.Errorf("Expected tags stripped, got %q", text)
	}
}

func TestNormalizeExtractedText_CollapsesBlankRuns(t *testing.T) {
	got := normalizeExtractedText("a\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("Expected collapsed blank lines, got %q", got)
	}
}
