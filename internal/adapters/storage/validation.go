package storage

import (
	"fmt"
	"strings"
)

// AllowedContentTypes defines the allowed MIME types for product image uploads.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// AllowedImageExtensions defines the allowed file extensions for product images.
var AllowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateContentType checks if the content type is allowed.
func (s *MinIOService) ValidateContentType(contentType string) error {
	// Normalize content type (remove parameters like charset)
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !AllowedContentTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}

// ValidateFileSize checks if the file size is within limits.
func (s *MinIOService) ValidateFileSize(sizeBytes int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("file size must be greater than 0")
	}
	if sizeBytes > s.maxFileSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, s.maxFileSize)
	}
	return nil
}

// IsSafeObjectPath reports whether a client-supplied object path is safe to
// hand to storage. Rejects traversal segments and absolute URLs.
func IsSafeObjectPath(p string) bool {
	if p == "" {
		return false
	}
	if strings.Contains(p, "..") || strings.Contains(p, "\\") || strings.Contains(p, "://") {
		return false
	}
	return true
}
