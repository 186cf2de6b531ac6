package resumeapi

import (
	"io"

	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/gofiber/fiber/v2"
)

// FileField is the multipart field résumé uploads arrive in
const FileField = "file"

// ReadUpload reads a multipart file into a validated Upload
func ReadUpload(c *fiber.Ctx, field string) (resume.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return resume.Upload{}, resume.ErrMissingFile().WithDetail("field", field)
	}
	if header.Size > resume.MaxUploadSize {
		return resume.Upload{}, resume.ErrFileTooLarge().
			WithDetail("size", header.Size).
			WithDetail("max", resume.MaxUploadSize)
	}

	f, err := header.Open()
	if err != nil {
		return resume.Upload{}, resume.ErrMissingFile().WithCause(err)
	}
	defer f.Close()

	// one extra byte so an oversized body still trips Validate
	data, err := io.ReadAll(io.LimitReader(f, resume.MaxUploadSize+1))
	if err != nil {
		return resume.Upload{}, resume.ErrMissingFile().WithCause(err)
	}

	upload := resume.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}
	if err := upload.Validate(); err != nil {
		return resume.Upload{}, err
	}
	return upload, nil
}
