package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// SupportedExtensions lists the spreadsheet extensions accepted as input.
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// ValidateFilename validates an input spreadsheet filename.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 255 characters for the base name
//   - Extension must be one of SupportedExtensions (case-insensitive)
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPath, "no file selected")
	}

	base := filepath.Base(name)
	if len(base) > 255 {
		return New(ErrCodeInvalidPath, "file name too long (max 255 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(base))
	for _, allowed := range SupportedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return New(ErrCodeUnsupportedFile, "invalid file format %q: please use .xlsx, .xls, or .csv", ext)
}

// ValidateSessionID validates a session identifier before it is joined onto a
// filesystem path. Identifiers are generated UUIDs, so anything with path
// separators or traversal sequences is rejected outright.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "session id too long")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") ||
		id == "." || filepath.Base(id) != id {
		return New(ErrCodeInvalidInput, "session id contains invalid characters")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "session id contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if !strings.EqualFold(u.Scheme, "http") && !strings.EqualFold(u.Scheme, "https") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}
	return nil
}
