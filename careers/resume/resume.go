package resume

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/internal/textract"
)

// MaxUploadSize is the largest résumé file accepted
const MaxUploadSize = 10 << 20

// Upload is a résumé file received from a client
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate checks size and extension and resolves ContentType from the
// file name when the client did not send a usable one
func (u *Upload) Validate() error {
	if len(u.Data) == 0 {
		return ErrEmptyFile()
	}
	if len(u.Data) > MaxUploadSize {
		return ErrFileTooLarge().
			WithDetail("size", len(u.Data)).
			WithDetail("max", MaxUploadSize)
	}
	mime, ok := textract.MimeType(u.Filename)
	if !ok {
		return ErrInvalidFileFormat().
			WithDetail("filename", u.Filename).
			WithDetail("allowed", AllowedExtensions)
	}
	u.ContentType = mime
	return nil
}

func (u Upload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

func (u Upload) IsImage() bool {
	return u.ContentType == textract.MimeJPEG || u.ContentType == textract.MimePNG
}

var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png"}

// Document is a parsed résumé: the profile-shaped fields plus the raw text
// the parser saw
type Document struct {
	Profile profile.Profile `json:"profile"`
	RawText string          `json:"rawText"`
}

// Parser turns an uploaded file into a Document
type Parser interface {
	Parse(ctx context.Context, upload Upload) (*Document, error)
}
