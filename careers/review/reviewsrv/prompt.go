package reviewsrv

import (
	"strings"
	"unicode/utf8"
)

const systemPrompt = "You are a resume evaluation assistant. You only answer with a single valid JSON object."

const analysisShape = `{
  "overallScore": number (0-100),
  "formatScore": number (0-100),
  "contentScore": number (0-100),
  "skillsScore": number (0-100),
  "atsScore": number (0-100),
  "grammarScore": number (0-100),
  "keyFindings": {
    "strengths": [string],
    "areasToImprove": [string],
    "criticalIssues": [string]
  },
  "improvementSuggestions": {
    "content": [string],
    "format": [string],
    "atsOptimization": [string]
  },
  "atsCompatibilityDetails": {
    "score": number (0-100),
    "issues": [{"title": string, "description": string, "fix": string}]
  }`

const keywordShape = `,
  "keywordMatches": [{"keyword": string, "count": number, "recommended": 3}],
  "suggestedKeywords": [string]`

// maxJobDescription caps the posting text sent to the model, in bytes
const maxJobDescription = 8000

func buildPrompt(resumeText, jobDescription string, withKeywords bool) string {
	var b strings.Builder

	b.WriteString("Given the following parsed resume")
	if jobDescription != "" {
		b.WriteString(" and the job description provided below")
	}
	b.WriteString(", return a JSON object with all of the following:\n\n")
	b.WriteString(analysisShape)
	if withKeywords {
		b.WriteString(keywordShape)
	}
	b.WriteString("\n}\n\n")

	b.WriteString("IMPORTANT:\n")
	b.WriteString("- Only return a valid JSON object.\n")
	b.WriteString("- Do not include any explanation or markdown.\n")
	if withKeywords {
		b.WriteString("- Always return suggested keywords that are missing or should be improved in the resume.\n")
	}

	if jobDescription != "" {
		b.WriteString("\nJob Description:\n")
		b.WriteString(truncate(jobDescription, maxJobDescription))
		b.WriteString("\n")
	}

	b.WriteString("\nResume:\n")
	b.WriteString(resumeText)
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
