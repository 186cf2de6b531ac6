package profile

import (
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/skill"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
)

// User is an authenticated account together with its career profile
type User struct {
	UID       kernel.UserID `json:"uid"`
	Email     kernel.Email  `json:"email"`
	Name      string        `json:"name"`
	Role      iam.Role      `json:"role"`
	Provider  string        `json:"provider"`
	Profile   Profile       `json:"profile"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Profile struct {
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
}

type Skill struct {
	Name  string      `json:"name"`
	Level skill.Level `json:"level"`
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

// Normalize drops blank and duplicate skills, fills missing levels and
// clears the end date of anything marked current.
func (p Profile) Normalize() Profile {
	skills := make([]Skill, 0, len(p.Skills))
	seen := skill.NewSet()
	for _, s := range p.Skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" || seen.Has(s.Name) {
			continue
		}
		seen.Add(s.Name)
		if s.Level == "" {
			s.Level = skill.DefaultLevel
		}
		skills = append(skills, s)
	}
	p.Skills = skills

	exps := make([]Experience, len(p.Experiences))
	for i, e := range p.Experiences {
		if e.Current {
			e.EndDate = ""
		}
		exps[i] = e
	}
	p.Experiences = exps

	edus := make([]Education, len(p.Educations))
	for i, e := range p.Educations {
		if e.Current {
			e.EndDate = ""
		}
		edus[i] = e
	}
	p.Educations = edus

	return p
}

// SkillNames returns the declared skill names in order
func (p Profile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if strings.TrimSpace(s.Name) != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

// Validate checks the invariants Normalize cannot repair
func (p Profile) Validate() error {
	for _, s := range p.Skills {
		if !s.Level.IsValid() {
			return skill.ErrInvalidLevel().WithDetail("skill", s.Name).WithDetail("level", s.Level)
		}
	}
	return nil
}
