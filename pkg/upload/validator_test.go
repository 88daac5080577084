package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pdfBytes = append([]byte("%PDF-1.7"), make([]byte, 64)...)

func TestValidateCV(t *testing.T) {
	t.Run("accepts a real PDF", func(t *testing.T) {
		result := ValidateCV("resume.pdf", pdfBytes, "application/pdf")
		assert.True(t, result.Valid)
		assert.Equal(t, ".pdf", result.Extension)
	})

	t.Run("rejects extension spoofing", func(t *testing.T) {
		// PNG bytes wearing a .pdf name
		png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
		result := ValidateCV("resume.pdf", png, "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "does not match extension")
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		result := ValidateCV("payload.exe", pdfBytes, "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "not allowed")
	})

	t.Run("rejects files without an extension", func(t *testing.T) {
		result := ValidateCV("resume", pdfBytes, "application/pdf")
		assert.False(t, result.Valid)
	})

	t.Run("rejects octet-stream except for Word documents", func(t *testing.T) {
		result := ValidateCV("resume.pdf", pdfBytes, "application/octet-stream")
		assert.False(t, result.Valid)

		docx := append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 32)...)
		result = ValidateCV("resume.docx", docx, "application/octet-stream")
		assert.True(t, result.Valid)
	})
}

func TestValidateImage(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 32)...)

	t.Run("accepts a real JPEG", func(t *testing.T) {
		result := ValidateImage("avatar.jpg", jpeg, "image/jpeg")
		assert.True(t, result.Valid)
	})

	t.Run("rejects documents on the image path", func(t *testing.T) {
		result := ValidateImage("avatar.pdf", pdfBytes, "application/pdf")
		assert.False(t, result.Valid)
	})
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_resume_final.pdf", SanitizeFilename("my resume final.pdf"))
	assert.Equal(t, "cv.pdf", SanitizeFilename("cv.pdf"))
	assert.Equal(t, "file.pdf", SanitizeFilename("履歴書.pdf"))
}
