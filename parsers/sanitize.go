package parsers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"resumeforge/models"
)

// categoryCaser normalizes skill category headings ("backend tools" ->
// "Backend Tools") so consolidated entries group consistently.
var categoryCaser = cases.Title(language.English)

// SanitizeProfile normalizes untyped profile data into a valid
// StructuredProfile. It is tolerant on input and strict on output:
// individual entries missing required fields are dropped and reported,
// never failing the whole batch. The returned profile always satisfies
// the canonical invariants (non-nil arrays, valid dates, URLs well
// formed or empty, skill levels from the closed set).
func SanitizeProfile(raw map[string]any) (models.StructuredProfile, []string) {
	profile := models.NewStructuredProfile()
	var dropped []string

	if user, ok := raw["personal"].(map[string]any); ok {
		profile.Personal = sanitizePersonal(user)
	} else if user, ok := raw["user"].(map[string]any); ok {
		// The parser prompt labels this block "user"; accept both.
		profile.Personal = sanitizePersonal(user)
	}

	for i, item := range asSlice(raw["experiences"]) {
		exp, ok := sanitizeExperience(item)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("experiences[%d]: missing title, company, description or a valid start date", i))
			continue
		}
		profile.Experiences = append(profile.Experiences, exp)
	}

	for i, item := range asSlice(raw["education"]) {
		edu, ok := sanitizeEducation(item)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("education[%d]: missing institution, degree or a valid start date", i))
			continue
		}
		profile.Education = append(profile.Education, edu)
	}

	for i, item := range asSlice(raw["projects"]) {
		proj, ok := sanitizeProject(item)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("projects[%d]: missing title, description or a valid start date", i))
			continue
		}
		profile.Projects = append(profile.Projects, proj)
	}

	for i, item := range asSlice(raw["skills"]) {
		skill, ok := sanitizeSkill(item)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("skills[%d]: missing name or category", i))
			continue
		}
		profile.Skills = append(profile.Skills, skill)
	}

	for i, item := range asSlice(raw["certifications"]) {
		cert, ok := sanitizeCertification(item)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("certifications[%d]: missing title, issuer or a valid issue date", i))
			continue
		}
		profile.Certifications = append(profile.Certifications, cert)
	}

	return profile, dropped
}

func sanitizePersonal(m map[string]any) models.PersonalInfo {
	return models.PersonalInfo{
		Name:      trimmed(m["name"]),
		Bio:       trimmed(m["bio"]),
		Portfolio: SanitizeURL(trimmed(m["portfolio"])),
		LinkedIn:  SanitizeURL(trimmed(m["linkedin"])),
		GitHub:    SanitizeURL(trimmed(m["github"])),
	}
}

func sanitizeExperience(item any) (models.Experience, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Experience{}, false
	}
	exp := models.Experience{
		Title:       trimmed(m["title"]),
		Company:     trimmed(m["company"]),
		Description: trimmed(m["description"]),
		StartDate:   trimmed(m["startDate"]),
		EndDate:     trimmed(m["endDate"]),
		Current:     asBool(m["current"]),
		Location:    trimmed(m["location"]),
	}
	if exp.Title == "" || exp.Company == "" || exp.Description == "" {
		return models.Experience{}, false
	}
	if !validDate(exp.StartDate) {
		return models.Experience{}, false
	}
	if !validDate(exp.EndDate) {
		exp.EndDate = ""
	}
	return exp, true
}

func sanitizeEducation(item any) (models.Education, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Education{}, false
	}
	edu := models.Education{
		Institution: trimmed(m["institution"]),
		Degree:      trimmed(m["degree"]),
		Field:       trimmed(m["field"]),
		StartDate:   trimmed(m["startDate"]),
		EndDate:     trimmed(m["endDate"]),
		Current:     asBool(m["current"]),
	}
	if edu.Institution == "" || edu.Degree == "" {
		return models.Education{}, false
	}
	if edu.Field == "" {
		edu.Field = edu.Degree
	}
	if !validDate(edu.StartDate) {
		return models.Education{}, false
	}
	if !validDate(edu.EndDate) {
		edu.EndDate = ""
	}
	return edu, true
}

func sanitizeProject(item any) (models.Project, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Project{}, false
	}
	proj := models.Project{
		Title:        trimmed(m["title"]),
		Description:  trimmed(m["description"]),
		StartDate:    trimmed(m["startDate"]),
		EndDate:      trimmed(m["endDate"]),
		URL:          SanitizeURL(trimmed(m["url"])),
		Technologies: []string{},
	}
	if proj.Title == "" || proj.Description == "" {
		return models.Project{}, false
	}
	if !validDate(proj.StartDate) {
		return models.Project{}, false
	}
	if !validDate(proj.EndDate) {
		proj.EndDate = ""
	}
	for _, tech := range asSlice(m["technologies"]) {
		if t := trimmed(tech); t != "" {
			proj.Technologies = append(proj.Technologies, t)
		}
	}
	return proj, true
}

func sanitizeSkill(item any) (models.Skill, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Skill{}, false
	}
	skill := models.Skill{
		Name:     trimmed(m["name"]),
		Category: trimmed(m["category"]),
	}
	if skill.Name == "" || skill.Category == "" {
		return models.Skill{}, false
	}
	skill.Category = categoryCaser.String(skill.Category)

	level := trimmed(m["level"])
	if models.ValidSkillLevel(level) {
		skill.Level = models.SkillLevel(level)
	} else {
		skill.Level = models.LevelIntermediate
	}

	if years, ok := m["yearsOfExperience"].(float64); ok && years > 0 {
		skill.YearsOfExperience = years
	}
	return skill, true
}

func sanitizeCertification(item any) (models.Certification, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Certification{}, false
	}
	cert := models.Certification{
		Title:         trimmed(m["title"]),
		Issuer:        trimmed(m["issuer"]),
		Description:   trimmed(m["description"]),
		IssueDate:     trimmed(m["issueDate"]),
		ExpiryDate:    trimmed(m["expiryDate"]),
		CredentialURL: SanitizeURL(trimmed(m["credentialUrl"])),
	}
	if cert.Title == "" || cert.Issuer == "" {
		return models.Certification{}, false
	}
	if !validDate(cert.IssueDate) {
		return models.Certification{}, false
	}
	if !validDate(cert.ExpiryDate) {
		cert.ExpiryDate = ""
	}
	return cert, true
}

// SanitizeURL returns a well-formed absolute URL or an empty string.
// Bare hostnames are retried with an https:// prefix.
func SanitizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if u, err := url.ParseRequestURI(trimmed); err == nil && u.Scheme != "" && u.Host != "" {
		return trimmed
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		candidate := "https://" + trimmed
		if u, err := url.ParseRequestURI(candidate); err == nil && u.Host != "" && validHostname(u.Host) {
			return candidate
		}
	}
	return ""
}

// validHostname rejects hosts with spaces or other junk that
// url.ParseRequestURI tolerates.
func validHostname(host string) bool {
	if host == "" {
		return false
	}
	for _, r := range host {
		if r == ' ' || r == '!' || r == ',' {
			return false
		}
	}
	return strings.Contains(host, ".")
}

// validDate reports whether s is empty or a real YYYY-MM-DD calendar
// date. An empty optional date is acceptable; the caller decides whether
// the field is required.
func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func trimmed(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
