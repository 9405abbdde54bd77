package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	MaxProfileImageSize = 5 << 20  // 5MB
	MaxLessonFileSize   = 10 << 20 // 10MB
)

// lessonFileTypes maps the accepted lesson attachment extensions to the
// content types their bytes may sniff as. doc and docx are container formats,
// so their sniffed types are generic.
var lessonFileTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/octet-stream"},
	".docx": {"application/zip", "application/octet-stream"},
}

// ValidateMimeType sniffs the real content type from the first bytes of the
// reader and checks it against the allowed prefixes or exact types, e.g.
// "image/" or "application/pdf". The reader is partially consumed.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// ValidateProfileImage enforces the size cap and sniffs the content type of a
// profile image upload. The reader is partially consumed.
func ValidateProfileImage(size int64, reader io.Reader) (string, error) {
	if size > MaxProfileImageSize {
		return "", fmt.Errorf("image exceeds the %dMB limit", MaxProfileImageSize>>20)
	}
	return ValidateMimeType(reader, []string{"image/"})
}

// ValidateLessonFile enforces the size cap, the pdf/doc/docx extension
// whitelist and the sniffed content type of a lesson attachment. The reader
// is partially consumed.
func ValidateLessonFile(filename string, size int64, reader io.Reader) (string, error) {
	if size > MaxLessonFileSize {
		return "", fmt.Errorf("file exceeds the %dMB limit", MaxLessonFileSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	allowed, ok := lessonFileTypes[ext]
	if !ok {
		return "", errors.New("only pdf, doc and docx files are accepted")
	}
	return ValidateMimeType(reader, allowed)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
