// Package types provides type definitions for structured data used throughout the job-autofill system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Profile represents the applicant's locally stored data used to populate
// application forms. Absent values are empty strings or omitted keys; a
// consumer must treat a missing value as "no value, skip field".
type Profile struct {
	ProfileID      string            `json:"profileId,omitempty"`
	CreatedAt      string            `json:"createdAt,omitempty"`
	UpdatedAt      string            `json:"updatedAt,omitempty"`
	PersonalInfo   map[string]string `json:"personalInfo"`
	WorkExperience []WorkExperience  `json:"workExperience"`
	Education      []Education       `json:"education"`
	Skills         Skills            `json:"skills"`
}

// WorkExperience represents one work-history entry. Dates use YYYY-MM text form.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Education represents one education entry.
type Education struct {
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa"`
}

// Skills holds the applicant's technical skill list and free-text summary.
type Skills struct {
	Technical []string `json:"technical"`
	Summary   string   `json:"summary"`
}

// NewProfile returns an empty profile with the default ID and creation
// timestamps set, matching the structure initialized on first install.
func NewProfile() *Profile {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Profile{
		ProfileID:      "default",
		CreatedAt:      now,
		UpdatedAt:      now,
		PersonalInfo:   map[string]string{},
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Skills:         Skills{Technical: []string{}},
	}
}

// Touch updates the profile's UpdatedAt timestamp.
func (p *Profile) Touch() {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// IsEmpty reports whether the profile carries no applicant data at all.
func (p *Profile) IsEmpty() bool {
	return len(p.PersonalInfo) == 0 &&
		len(p.WorkExperience) == 0 &&
		len(p.Education) == 0 &&
		len(p.Skills.Technical) == 0 &&
		p.Skills.Summary == ""
}
