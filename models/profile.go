package models

// SkillLevel is the closed set of proficiency values accepted by the
// sanitization gate. Unrecognized values are coerced to Intermediate.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelExpert       SkillLevel = "Expert"
)

// ValidSkillLevel reports whether s is one of the allowed levels.
func ValidSkillLevel(s string) bool {
	switch SkillLevel(s) {
	case LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

// PersonalInfo holds the contact block of a profile. All fields are
// optional; URLs are either well-formed or empty after sanitization.
type PersonalInfo struct {
	Name      string `json:"name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Location    string `json:"location,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies"`
}

type Skill struct {
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Level             SkillLevel `json:"level"`
	YearsOfExperience float64    `json:"yearsOfExperience"`
}

type Certification struct {
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	Description   string `json:"description,omitempty"`
	IssueDate     string `json:"issueDate"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty"`
}

// StructuredProfile is the canonical shape exchanged between the parser,
// the optimizer and the store. Dates are YYYY-MM-DD strings; every slice
// is non-nil so JSON output always carries empty arrays instead of null.
type StructuredProfile struct {
	Personal       PersonalInfo    `json:"personal"`
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
}

// NewStructuredProfile returns a profile with all collections initialized.
func NewStructuredProfile() StructuredProfile {
	return StructuredProfile{
		Experiences:    []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Skills:         []Skill{},
		Certifications: []Certification{},
	}
}

// EnsureDefaults replaces nil collections with empty ones in place.
func (p *StructuredProfile) EnsureDefaults() {
	if p.Experiences == nil {
		p.Experiences = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
}

// HasTailorableContent reports whether the profile contains at least one
// experience or project entry, the minimum needed for optimization.
func (p *StructuredProfile) HasTailorableContent() bool {
	return len(p.Experiences) > 0 || len(p.Projects) > 0
}
