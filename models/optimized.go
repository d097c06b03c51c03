package models

// OptimizedEducation is an education entry rewritten for display.
type OptimizedEducation struct {
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Degree      string `json:"degree"`
	DateRange   string `json:"date_range"`
}

// OptimizedExperience is a rewritten experience entry. Responsibilities
// holds exactly three bullet points in a well-formed result.
type OptimizedExperience struct {
	Title            string   `json:"title"`
	Dates            string   `json:"dates"`
	Organization     string   `json:"organization"`
	Location         string   `json:"location"`
	Responsibilities []string `json:"responsibilities"`
}

// OptimizedProject is a rewritten project entry with three detail bullets.
type OptimizedProject struct {
	Name         string   `json:"name"`
	Technologies string   `json:"technologies"`
	DateRange    string   `json:"date_range"`
	Details      []string `json:"details"`
}

// SkillCategory groups related skills under one display heading. The
// optimizer produces at most four categories.
type SkillCategory struct {
	CategoryName string   `json:"category_name"`
	Skills       []string `json:"skills"`
}

// OptimizedResume is the rewritten resume content. Social and portfolio
// URLs carry no scheme prefix, matching resume display conventions.
type OptimizedResume struct {
	FullName          string                `json:"full_name"`
	Email             string                `json:"email"`
	LinkedInURL       string                `json:"linkedin_url"`
	GitHubURL         string                `json:"github_url"`
	PortfolioURL      string                `json:"portfolio_url"`
	EducationEntries  []OptimizedEducation  `json:"education_entries"`
	ExperienceEntries []OptimizedExperience `json:"experience_entries"`
	ProjectEntries    []OptimizedProject    `json:"project_entries"`
	SkillCategories   []SkillCategory       `json:"skill_categories"`
}

// MatchedKeyword is a job-description keyword found in the resume.
type MatchedKeyword struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// MissingKeyword is a job-description keyword absent from the resume.
type MissingKeyword struct {
	Keyword    string `json:"keyword"`
	Importance string `json:"importance"`
}

// Recommendations groups improvement advice by resume section.
type Recommendations struct {
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary"`
	Format     []string `json:"format"`
}

// ContentAlignment holds per-section alignment percentages in [0, 100].
type ContentAlignment struct {
	ExperienceAlignment float64 `json:"experience_alignment"`
	SkillsAlignment     float64 `json:"skills_alignment"`
	ProjectRelevance    float64 `json:"project_relevance"`
	EducationRelevance  float64 `json:"education_relevance"`
}

// AnalysisReport is the ATS gap analysis accompanying an optimized resume.
type AnalysisReport struct {
	ATSScore        float64          `json:"ats_score"`
	MatchedKeywords []MatchedKeyword `json:"matched_keywords"`
	MissingKeywords []MissingKeyword `json:"missing_keywords"`
	Recommendations Recommendations  `json:"recommendations"`
	ContentAnalysis ContentAlignment `json:"content_analysis"`
}

// OptimizationResult is the full optimizer output.
type OptimizationResult struct {
	OptimizedResume OptimizedResume `json:"optimized_resume"`
	Analysis        AnalysisReport  `json:"analysis"`
}
