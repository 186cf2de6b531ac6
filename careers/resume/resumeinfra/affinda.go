package resumeinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/careers/skill"
)

const DefaultAffindaURL = "https://api.affinda.com/v2/resumes"

// AffindaParser uploads résumés to the Affinda resume parser
type AffindaParser struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

func NewAffindaParser(apiKey string, url string, httpClient *http.Client) *AffindaParser {
	if url == "" {
		url = DefaultAffindaURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AffindaParser{apiKey: apiKey, url: url, httpClient: httpClient}
}

func (p *AffindaParser) Parse(ctx context.Context, upload resume.Upload) (*resume.Document, error) {
	body, contentType, err := multipartFile(upload)
	if err != nil {
		return nil, resume.ErrParseFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, body)
	if err != nil {
		return nil, resume.ErrParseFailed(err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, resume.ErrParseFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, resume.ErrParseFailed(fmt.Errorf("affinda status %d", resp.StatusCode)).
			WithDetail("status", resp.StatusCode).
			WithDetail("body", strings.TrimSpace(string(msg)))
	}

	var envelope struct {
		Data affindaResume `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, resume.ErrParseFailed(fmt.Errorf("decode affinda response: %w", err))
	}

	return &resume.Document{
		Profile: envelope.Data.toProfile(),
		RawText: envelope.Data.RawText,
	}, nil
}

func multipartFile(upload resume.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Filename))
	h.Set("Content-Type", upload.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type affindaResume struct {
	Name struct {
		First  string `json:"first"`
		Middle string `json:"middle"`
		Last   string `json:"last"`
	} `json:"name"`
	Profession    string           `json:"profession"`
	PhoneNumbers  []string         `json:"phoneNumbers"`
	Location      *affindaLocation `json:"location"`
	Summary       string           `json:"summary"`
	Objective     string           `json:"objective"`
	JobTitle      string           `json:"jobTitle"`
	DesiredSalary string           `json:"desiredSalary"`
	WorkType      string           `json:"workType"`
	Availability  string           `json:"availability"`
	RawText       string           `json:"rawText"`
	Skills        []struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	} `json:"skills"`
	WorkExperience []struct {
		Organization   string           `json:"organization"`
		JobTitle       string           `json:"jobTitle"`
		Location       *affindaLocation `json:"location"`
		JobDescription string           `json:"jobDescription"`
		Dates          *struct {
			StartDate *string `json:"startDate"`
			EndDate   *string `json:"endDate"`
		} `json:"dates"`
	} `json:"workExperience"`
	Education []struct {
		Organization  string `json:"organization"`
		Accreditation *struct {
			Education string `json:"education"`
			InputStr  string `json:"inputStr"`
		} `json:"accreditation"`
		Location *affindaLocation `json:"location"`
		Dates    *struct {
			StartDate      *string `json:"startDate"`
			CompletionDate *string `json:"completionDate"`
			IsCurrent      bool    `json:"isCurrent"`
		} `json:"dates"`
	} `json:"education"`
}

type affindaLocation struct {
	Formatted string `json:"formatted"`
}

func (l *affindaLocation) formatted() string {
	if l == nil {
		return ""
	}
	return l.Formatted
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (a affindaResume) toProfile() profile.Profile {
	var names []string
	for _, n := range []string{a.Name.First, a.Name.Middle, a.Name.Last} {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	p := profile.Profile{
		FullName:      strings.Join(names, " "),
		JobTitle:      a.Profession,
		Location:      a.Location.formatted(),
		Summary:       a.Summary,
		Objective:     a.Objective,
		DesiredRole:   a.JobTitle,
		DesiredSalary: a.DesiredSalary,
		WorkType:      a.WorkType,
		Availability:  a.Availability,
	}
	if len(a.PhoneNumbers) > 0 {
		p.Phone = a.PhoneNumbers[0]
	}

	for _, s := range a.Skills {
		level, err := skill.ParseLevel(s.Level)
		if err != nil {
			level = skill.DefaultLevel
		}
		p.Skills = append(p.Skills, profile.Skill{Name: s.Name, Level: level})
	}

	for _, w := range a.WorkExperience {
		exp := profile.Experience{
			Company:     w.Organization,
			Position:    w.JobTitle,
			Location:    w.Location.formatted(),
			Description: w.JobDescription,
		}
		if w.Dates != nil {
			exp.StartDate = deref(w.Dates.StartDate)
			exp.EndDate = deref(w.Dates.EndDate)
			exp.Current = w.Dates.EndDate == nil
		}
		p.Experiences = append(p.Experiences, exp)
	}

	for _, e := range a.Education {
		edu := profile.Education{
			School:   e.Organization,
			Location: e.Location.formatted(),
		}
		if e.Accreditation != nil {
			edu.Degree = e.Accreditation.Education
			edu.Field = e.Accreditation.InputStr
		}
		if e.Dates != nil {
			edu.StartDate = deref(e.Dates.StartDate)
			if edu.StartDate == "" {
				edu.StartDate = deref(e.Dates.CompletionDate)
			}
			edu.EndDate = deref(e.Dates.CompletionDate)
			edu.Current = e.Dates.IsCurrent
		}
		p.Educations = append(p.Educations, edu)
	}

	return p.Normalize()
}
