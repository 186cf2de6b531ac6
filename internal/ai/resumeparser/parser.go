package resumeparser

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/internal/jsonfix"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// ResumeParser extracts profile fields from résumé page images or text
// using an OpenAI vision model
type ResumeParser struct {
	client *openai.Client
	model  string
}

func NewResumeParser(apiKey string, model string, opts ...option.RequestOption) *ResumeParser {
	client := openai.NewClient(
		append([]option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}, opts...)...,
	)
	if model == "" {
		model = "gpt-4o"
	}
	return &ResumeParser{client: &client, model: model}
}

// ResumeData mirrors the profile shape so callers can map it field by field
type ResumeData struct {
	FullName      string       `json:"fullName"`
	JobTitle      string       `json:"jobTitle"`
	Phone         string       `json:"phone"`
	Location      string       `json:"location"`
	Summary       string       `json:"summary"`
	Objective     string       `json:"objective"`
	DesiredRole   string       `json:"desiredRole"`
	DesiredSalary string       `json:"desiredSalary"`
	WorkType      string       `json:"workType"`
	Availability  string       `json:"availability"`
	Skills        []Skill      `json:"skills"`
	Experiences   []Experience `json:"experiences"`
	Educations    []Education  `json:"educations"`
	RawText       string       `json:"rawText"`
}

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Current   bool   `json:"current"`
}

const systemPrompt = `You are a professional resume parser. Extract ALL information from the resume and return ONLY valid JSON.`

const schemaPrompt = `Extract the resume into this JSON structure:

{
  "fullName": string,
  "jobTitle": string (current profession),
  "phone": string,
  "location": string,
  "summary": string,
  "objective": string,
  "desiredRole": string,
  "desiredSalary": string,
  "workType": string,
  "availability": string,
  "skills": [{ "name": string, "level": "Beginner" | "Intermediate" | "Advanced" | "Expert" }],
  "experiences": [{
    "company": string,
    "position": string,
    "location": string,
    "startDate": string (YYYY-MM),
    "endDate": string (YYYY-MM, empty when current),
    "current": boolean,
    "description": string
  }],
  "educations": [{
    "school": string,
    "degree": string,
    "field": string,
    "location": string,
    "startDate": string (YYYY-MM),
    "endDate": string (YYYY-MM),
    "current": boolean
  }],
  "rawText": string (all visible text of the resume, in reading order)
}

Rules:
- If a field is not present, use an empty string or an empty array.
- When a skill level is not stated, use "Intermediate".
- Keep chronological order, newest first.
- Return ONLY the JSON object.`

// ParsePages parses one or more JPEG page images of a résumé
func (p *ResumeParser) ParsePages(ctx context.Context, pages [][]byte) (*ResumeData, error) {
	if len(pages) == 0 {
		return nil, ai.ErrEmptyInput().WithDetail("field", "pages")
	}

	intro := schemaPrompt
	if len(pages) > 1 {
		intro = fmt.Sprintf("This resume has %d pages. Combine information from all pages.\n\n%s", len(pages), schemaPrompt)
	}

	parts := []openai.ChatCompletionContentPartUnionParam{textPart(intro)}
	for i, page := range pages {
		parts = append(parts, imagePart(page))
		if i < len(pages)-1 {
			parts = append(parts, textPart(fmt.Sprintf("--- Page %d ends, Page %d begins ---", i+1, i+2)))
		}
	}

	return p.extract(ctx, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	}, 1500+2500*len(pages))
}

// ParseText parses a résumé that is already available as text
func (p *ResumeParser) ParseText(ctx context.Context, text string) (*ResumeData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyInput().WithDetail("field", "text")
	}
	data, err := p.extract(ctx, openai.UserMessage(schemaPrompt+"\n\nResume:\n"+text), 4000)
	if err != nil {
		return nil, err
	}
	data.RawText = text
	return data, nil
}

func (p *ResumeParser) extract(ctx context.Context, user openai.ChatCompletionMessageParamUnion, maxTokens int) (*ResumeData, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			user,
		},
		Model: p.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return nil, ai.ErrCompletionProvider(err).WithDetail("model", p.model)
	}
	if len(completion.Choices) == 0 {
		return nil, ai.ErrCompletionProvider(errors.New("no choices returned")).WithDetail("model", p.model)
	}

	var data ResumeData
	if _, err := jsonfix.Decode(completion.Choices[0].Message.Content, &data); err != nil {
		return nil, ai.ErrMalformedModelOutput(err)
	}
	return &data, nil
}

func textPart(text string) openai.ChatCompletionContentPartUnionParam {
	return openai.ChatCompletionContentPartUnionParam{
		OfText: &openai.ChatCompletionContentPartTextParam{
			Type: constant.Text("text"),
			Text: text,
		},
	}
}

func imagePart(jpeg []byte) openai.ChatCompletionContentPartUnionParam {
	return openai.ChatCompletionContentPartUnionParam{
		OfImageURL: &openai.ChatCompletionContentPartImageParam{
			Type: constant.ImageURL("image_url"),
			ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
				URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg),
				Detail: "high",
			},
		},
	}
}
