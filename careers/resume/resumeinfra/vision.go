package resumeinfra

import (
	"context"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/careers/skill"
	"github.com/Abraxas-365/careerlens/internal/ai/resumeparser"
	"github.com/Abraxas-365/careerlens/internal/pdf"
	"github.com/Abraxas-365/careerlens/internal/textract"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

// PageParser is the model-backed extraction used by VisionParser
type PageParser interface {
	ParsePages(ctx context.Context, pages [][]byte) (*resumeparser.ResumeData, error)
	ParseText(ctx context.Context, text string) (*resumeparser.ResumeData, error)
}

// VisionParser parses résumés with a vision model. PDFs and images are sent
// as page images, DOCX and TXT as extracted text.
type VisionParser struct {
	model    PageParser
	maxPages int
}

func NewVisionParser(model PageParser, maxPages int) *VisionParser {
	return &VisionParser{model: model, maxPages: maxPages}
}

func (p *VisionParser) Parse(ctx context.Context, upload resume.Upload) (*resume.Document, error) {
	var (
		data *resumeparser.ResumeData
		err  error
	)

	switch {
	case upload.ContentType == textract.MimePDF:
		data, err = p.parsePDF(ctx, upload.Data)
	case upload.IsImage():
		var page []byte
		page, err = pdf.ToJPEG(upload.Data)
		if err != nil {
			return nil, resume.ErrInvalidFileFormat().WithCause(err)
		}
		data, err = p.model.ParsePages(ctx, [][]byte{page})
	default:
		var text string
		text, err = textract.Extract(upload.ContentType, upload.Data)
		if err != nil {
			return nil, resume.ErrInvalidFileFormat().WithCause(err).WithDetail("filename", upload.Filename)
		}
		if strings.TrimSpace(text) == "" {
			return nil, resume.ErrNoText()
		}
		data, err = p.model.ParseText(ctx, text)
	}
	if err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, resume.ErrParseFailed(err)
	}

	return &resume.Document{
		Profile: toProfile(data),
		RawText: data.RawText,
	}, nil
}

func (p *VisionParser) parsePDF(ctx context.Context, data []byte) (*resumeparser.ResumeData, error) {
	pages, err := pdf.RenderPages(data, p.maxPages)
	if err != nil {
		return nil, resume.ErrInvalidFileFormat().WithCause(err)
	}

	parsed, err := p.model.ParsePages(ctx, pages)
	if err != nil {
		return nil, err
	}

	// the text layer is more faithful than the model's transcription when present
	if text, err := textract.Extract(textract.MimePDF, data); err == nil && text != "" {
		parsed.RawText = text
	} else if err != nil {
		logx.Debugf("pdf text layer unavailable, keeping model transcription: %v", err)
	}
	return parsed, nil
}

func toProfile(d *resumeparser.ResumeData) profile.Profile {
	p := profile.Profile{
		FullName:      d.FullName,
		JobTitle:      d.JobTitle,
		Phone:         d.Phone,
		Location:      d.Location,
		Summary:       d.Summary,
		Objective:     d.Objective,
		DesiredRole:   d.DesiredRole,
		DesiredSalary: d.DesiredSalary,
		WorkType:      d.WorkType,
		Availability:  d.Availability,
	}
	for _, s := range d.Skills {
		level, err := skill.ParseLevel(s.Level)
		if err != nil {
			level = skill.DefaultLevel
		}
		p.Skills = append(p.Skills, profile.Skill{Name: s.Name, Level: level})
	}
	for _, e := range d.Experiences {
		p.Experiences = append(p.Experiences, profile.Experience(e))
	}
	for _, e := range d.Educations {
		p.Educations = append(p.Educations, profile.Education(e))
	}
	return p.Normalize()
}
