package careersrv

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/careers/profile"
)

const systemPrompt = "You are a career assistant AI specialized in resume analysis and career matching."

const suggestionSchema = `{
  "title": string,
  "description": string,
  "matchScore": number (1-100),
  "salaryRange": string,
  "growthRate": string,
  "requiredSkills": string[],
  "recommendedSkills": string[],
  "userSkills": string[],
  "certifications": [ { "name": string, "provider": string, "difficulty": string, "duration": string, "url": string } ],
  "category": string,
  "fitReasons": [ { "title": string, "description": string, "icon": string } ],
  "careerPath": [ { "title": string, "yearsExperience": string, "salary": string, "responsibilities": string[] } ],
  "detailedFitAnalysis": string
}`

// buildPrompt renders the matching prompt for a profile, its skill query
// and the matched dataset records
func buildPrompt(p profile.Profile, query string, hits []career.Hit, max int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your task is to analyze a user's resume and matched job data, then suggest career paths.\n\n")
	fmt.Fprintf(&b, "Return a list of up to %d career suggestions in valid JSON format.\n", max)
	fmt.Fprintf(&b, "Each object must strictly follow this structure:\n\n%s\n\n", suggestionSchema)

	b.WriteString("Guidelines:\n")
	b.WriteString("- Provide exactly 3 \"fitReasons\" and choose an appropriate Lucide icon name for each.\n")
	b.WriteString("- Populate all fields meaningfully.\n")
	b.WriteString("- \"userSkills\" must be a subset of \"requiredSkills\" that appear in the user's resume.\n")
	b.WriteString("- \"careerPath\" lists the ladder from entry level upward.\n")
	b.WriteString("- Use \"#\" as placeholder for URLs if unknown.\n")
	b.WriteString("- Use concise, professional wording.\n")
	b.WriteString("- Return a pure JSON array without any wrapping, formatting, or explanations.\n")
	b.WriteString("- No markdown, no headings, no commentary.\n\n")

	b.WriteString("Input:\n\nUser:\n\"\"\"\n")
	fmt.Fprintf(&b, "Summary: %s\n", p.Summary)
	fmt.Fprintf(&b, "Skills: %s\n", query)
	fmt.Fprintf(&b, "Education: %s\n", educationLine(p.Educations))
	fmt.Fprintf(&b, "Experience: %s\n", experienceLine(p.Experiences))
	b.WriteString("\"\"\"\n\nMatched Jobs:\n\"\"\"\n")

	blocks := make([]string, 0, len(hits))
	for _, h := range hits {
		r := h.Record
		blocks = append(blocks, fmt.Sprintf(
			"Title: %s\nSkills: %s\nSkill Text: %s\nEducation: %s\nResponsibilities: %s\nSalary: %s\nGrowth: %s\nCategory: %s",
			r.JobPositionName, r.SkillsRequired, r.SkillsText, r.EducationalRequirements,
			r.Responsibilities, r.SalaryRange, r.GrowthProjection, r.JobCategory,
		))
	}
	b.WriteString(strings.Join(blocks, "\n---\n"))
	b.WriteString("\n\"\"\"\n")

	return b.String()
}

func educationLine(edus []profile.Education) string {
	parts := make([]string, 0, len(edus))
	for _, e := range edus {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.School, e.Degree))
	}
	return strings.Join(parts, ", ")
}

func experienceLine(exps []profile.Experience) string {
	parts := make([]string, 0, len(exps))
	for _, e := range exps {
		parts = append(parts, fmt.Sprintf("%s at %s", e.Position, e.Company))
	}
	return strings.Join(parts, ", ")
}
