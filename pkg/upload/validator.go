package upload

import (
	"bytes"
	"path/filepath"
	"strings"
)

// MaxFileSize caps every upload (CVs, avatars, company logos).
const MaxFileSize = 5 * 1024 * 1024 // 5MB

// ValidationResult contains the result of file validation
type ValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed file types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                                   // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},                           // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                                   // ZIP (PK..)
	".txt":  {},                                                                           // Text files have no magic bytes - rely on MIME detection
}

// cvExtensions is the whitelist for CV/resume uploads
var cvExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// imageExtensions is the whitelist for avatar and company logo uploads
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Strict MIME types - DO NOT include application/octet-stream
var strictMIMETypes = map[string]bool{
	// Images
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// Text
	"text/plain": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

// ValidateCV validates a CV/resume upload.
func ValidateCV(filename string, data []byte, detectedMIME string) ValidationResult {
	return validate(filename, data, detectedMIME, cvExtensions)
}

// ValidateImage validates an avatar or company logo upload.
func ValidateImage(filename string, data []byte, detectedMIME string) ValidationResult {
	return validate(filename, data, detectedMIME, imageExtensions)
}

// validate performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist (application/octet-stream REJECTED)
func validate(filename string, data []byte, detectedMIME string, allowed map[string]bool) ValidationResult {
	result := ValidationResult{
		DetectedMIME: detectedMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowed[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	// Layer 2: Magic byte validation (skip for text files)
	if ext != ".txt" {
		if !validateMagicBytes(ext, data) {
			result.Error = "file content does not match extension (potential file spoofing detected)"
			return result
		}
	}

	// Layer 3: MIME type whitelist
	// application/octet-stream would allow arbitrary binary uploads
	if detectedMIME == "application/octet-stream" {
		// DOCX/DOC files are sometimes detected as octet-stream; magic bytes
		// already vouched for them above
		if ext != ".docx" && ext != ".doc" {
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !strictMIMETypes[detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}

	signatures, ok := magicBytes[ext]
	if !ok || len(signatures) == 0 {
		return false
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// SanitizeFilename replaces spaces and strips non-ASCII characters so object
// keys stay portable across storage providers.
func SanitizeFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))

	baseName = strings.ReplaceAll(baseName, " ", "_")

	var result strings.Builder
	for _, r := range baseName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.' {
			result.WriteRune(r)
		}
	}

	cleaned := result.String()
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned + ext
}
