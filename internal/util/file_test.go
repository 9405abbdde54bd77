package util

import (
	"bytes"
	"strings"
	"testing"
)

var (
	pdfBytes = []byte("%PDF-1.7 fake document body")
	pngBytes = []byte("\x89PNG\r\n\x1a\n rest of image")
	exeBytes = []byte("MZ\x90\x00 binary payload")
)

func TestValidateLessonFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		content  []byte
		wantErr  bool
		wantType string
	}{
		{"pdf accepted", "notes.pdf", 1024, pdfBytes, false, "application/pdf"},
		{"over size limit", "notes.pdf", MaxLessonFileSize + 1, pdfBytes, true, ""},
		{"executable extension", "malware.exe", 1024, exeBytes, true, ""},
		{"no extension", "notes", 1024, pdfBytes, true, ""},
		{"png disguised as pdf", "notes.pdf", 1024, pngBytes, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mimeType, err := ValidateLessonFile(tt.filename, tt.size, bytes.NewReader(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("accepted %q (%d bytes) as %q", tt.filename, tt.size, mimeType)
				}
				return
			}
			if err != nil {
				t.Fatalf("rejected %q: %v", tt.filename, err)
			}
			if mimeType != tt.wantType {
				t.Errorf("mimeType = %q, want %q", mimeType, tt.wantType)
			}
		})
	}
}

func TestValidateProfileImage(t *testing.T) {
	mimeType, err := ValidateProfileImage(1024, bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("rejected png: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mimeType = %q, want image/png", mimeType)
	}

	if _, err := ValidateProfileImage(MaxProfileImageSize+1, bytes.NewReader(pngBytes)); err == nil {
		t.Error("accepted an image over the size limit")
	}
	if _, err := ValidateProfileImage(1024, bytes.NewReader(pdfBytes)); err == nil {
		t.Error("accepted a pdf as a profile image")
	}
}

func TestValidateMimeTypePrefixMatch(t *testing.T) {
	mimeType, err := ValidateMimeType(strings.NewReader("plain text"), []string{"image/"})
	if err == nil {
		t.Errorf("text accepted as image (%q)", mimeType)
	}
	if !IsImage("image/jpeg") || IsImage("application/pdf") {
		t.Error("IsImage misclassifies")
	}
}
