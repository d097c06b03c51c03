package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/models"
	"resumeforge/parsers"
)

// Job description bounds enforced before any model call.
const (
	MinJobDescriptionLength = 10
	MaxJobDescriptionLength = 5000
)

// MaxResumeEntries is the combined ceiling on experience and project
// entries in an optimized resume. When exceeded, experience entries are
// never dropped; only projects are trimmed, most recent kept first.
const MaxResumeEntries = 5

const optimizationPromptTemplate = `You are Resume-AI, an expert resume writer and ATS optimization specialist. Optimize the provided resume data to match the job description while maintaining truthfulness and accuracy.

Job Description:
%s

User Data:
%s

Analyze and optimize the resume data following these rules:
1. Rephrase experience and project descriptions to align with the job requirements
2. Maintain factual accuracy. Do not invent or alter employers, titles or dates
3. Highlight relevant skills and achievements with quantifiable impact
4. Calculate an ATS score out of 100 and provide the analysis
5. Identify matched and missing keywords from the job description
6. Provide specific recommendations for improvement grouped by section
7. Do not include https:// or http:// in the linkedin, github and portfolio URLs of the output
8. Do not include any other text or comments in the response
9. There must be exactly 3 bullet points in every experience and project entry
10. Arrange experience and project entries in reverse chronological order, most recent first
11. Format all displayed dates as "Month, Year" (for example "June, 2023")
12. Group skills into at most 4 categories; if the user supplied no skills, derive the categories from the job description alone
13. If the total number of experience and project entries exceeds 5, keep every experience entry and drop only the least relevant project entries
14. Make sure every content alignment percentage is between 0 and 100

CRITICAL INSTRUCTION: Return ONLY a raw JSON object. No markdown formatting, no code blocks, no additional text. The response must be a single JSON object that can be parsed directly.

The response must follow this exact structure:
{
  "optimized_resume": {
    "full_name": "string",
    "email": "string",
    "linkedin_url": "string",
    "github_url": "string",
    "portfolio_url": "string",
    "education_entries": [{"institution": "string", "location": "string", "degree": "string", "date_range": "string"}],
    "experience_entries": [{"title": "string", "dates": "string", "organization": "string", "location": "string", "responsibilities": ["string", "string", "string"]}],
    "project_entries": [{"name": "string", "technologies": "string", "date_range": "string", "details": ["string", "string", "string"]}],
    "skill_categories": [{"category_name": "string", "skills": ["string"]}]
  },
  "analysis": {
    "ats_score": 0,
    "matched_keywords": [{"keyword": "string", "count": 0}],
    "missing_keywords": [{"keyword": "string", "importance": "string"}],
    "recommendations": {"experience": ["string"], "skills": ["string"], "education": ["string"], "summary": "string", "format": ["string"]},
    "content_analysis": {"experience_alignment": 0, "skills_alignment": 0, "project_relevance": 0, "education_relevance": 0}
  }
}`

// OptimizerService rewrites a structured profile against a job
// description and produces an ATS analysis. Single model call, no retry.
type OptimizerService struct {
	client      CompletionClient
	temperature float64
	maxTokens   int
}

// NewOptimizerService wires the optimizer to an injected completion client.
func NewOptimizerService(client CompletionClient) *OptimizerService {
	return &OptimizerService{
		client:      client,
		temperature: 0.7,
		maxTokens:   2048,
	}
}

// Optimize tailors the profile to the job description. Fails with
// InvalidProfile when there is nothing to tailor, InvalidInput on a bad
// job description, ModelUnavailable on call failure and
// MalformedResponse when the completion cannot be repaired. The entry
// retention policy is enforced here after the model responds; the
// prompt states it too, but a single completion is never trusted.
func (s *OptimizerService) Optimize(ctx context.Context, profile models.StructuredProfile, jobDescription string) (models.OptimizationResult, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if len(jobDescription) < MinJobDescriptionLength || len(jobDescription) > MaxJobDescriptionLength {
		return models.OptimizationResult{}, models.NewPipelineError(models.KindInvalidInput,
			fmt.Sprintf("job description has %d characters, expected %d-%d",
				len(jobDescription), MinJobDescriptionLength, MaxJobDescriptionLength))
	}
	if !profile.HasTailorableContent() {
		return models.OptimizationResult{}, models.NewPipelineError(models.KindInvalidProfile,
			"profile has no experience and no project entries")
	}

	serialized, err := json.Marshal(profile)
	if err != nil {
		return models.OptimizationResult{}, fmt.Errorf("serialize profile: %w", err)
	}

	prompt := fmt.Sprintf(optimizationPromptTemplate, jobDescription, serialized)
	completion, err := s.client.Complete(ctx, prompt, CompletionOptions{
		Temperature:     s.temperature,
		MaxOutputTokens: s.maxTokens,
	})
	if err != nil {
		return models.OptimizationResult{}, models.WrapPipelineError(models.KindModelUnavailable,
			"optimization model call failed", err)
	}

	repaired, err := parsers.RepairJSON(completion)
	if err != nil {
		return models.OptimizationResult{}, err
	}

	var result models.OptimizationResult
	if err := json.Unmarshal(repaired, &result); err != nil {
		return models.OptimizationResult{}, models.WrapPipelineError(models.KindMalformedResponse,
			"repaired completion does not match the optimization schema", err)
	}
	if err := validateResult(&result); err != nil {
		return models.OptimizationResult{}, err
	}

	enforceRetention(&result.OptimizedResume, len(profile.Experiences))
	clampAnalysis(&result.Analysis)
	return result, nil
}

// validateResult checks the completion exposes both required objects.
func validateResult(result *models.OptimizationResult) error {
	if result.OptimizedResume.ExperienceEntries == nil && result.OptimizedResume.ProjectEntries == nil {
		return models.NewPipelineError(models.KindMalformedResponse,
			"completion is missing the optimized_resume content")
	}
	if result.OptimizedResume.EducationEntries == nil {
		result.OptimizedResume.EducationEntries = []models.OptimizedEducation{}
	}
	if result.OptimizedResume.ExperienceEntries == nil {
		result.OptimizedResume.ExperienceEntries = []models.OptimizedExperience{}
	}
	if result.OptimizedResume.ProjectEntries == nil {
		result.OptimizedResume.ProjectEntries = []models.OptimizedProject{}
	}
	if result.OptimizedResume.SkillCategories == nil {
		result.OptimizedResume.SkillCategories = []models.SkillCategory{}
	}
	if result.Analysis.MatchedKeywords == nil && result.Analysis.MissingKeywords == nil && result.Analysis.ATSScore == 0 {
		return models.NewPipelineError(models.KindMalformedResponse,
			"completion is missing the analysis section")
	}
	return nil
}

// enforceRetention applies the entry-count policy programmatically:
// with experienceCount source experiences, every surviving experience
// entry is kept and project entries are trimmed so the combined total
// does not exceed MaxResumeEntries. Entries arrive most recent first,
// so trimming from the tail prefers recency.
func enforceRetention(resume *models.OptimizedResume, experienceCount int) {
	kept := len(resume.ExperienceEntries)
	if kept+len(resume.ProjectEntries) <= MaxResumeEntries {
		return
	}
	budget := MaxResumeEntries - kept
	if budget < 0 {
		budget = 0
	}
	if len(resume.ProjectEntries) > budget {
		resume.ProjectEntries = resume.ProjectEntries[:budget]
	}
}

// clampAnalysis forces score and percentages into [0, 100] and fills
// nil keyword slices so the report is always well formed.
func clampAnalysis(a *models.AnalysisReport) {
	a.ATSScore = clampPercent(a.ATSScore)
	a.ContentAnalysis.ExperienceAlignment = clampPercent(a.ContentAnalysis.ExperienceAlignment)
	a.ContentAnalysis.SkillsAlignment = clampPercent(a.ContentAnalysis.SkillsAlignment)
	a.ContentAnalysis.ProjectRelevance = clampPercent(a.ContentAnalysis.ProjectRelevance)
	a.ContentAnalysis.EducationRelevance = clampPercent(a.ContentAnalysis.EducationRelevance)
	if a.MatchedKeywords == nil {
		a.MatchedKeywords = []models.MatchedKeyword{}
	}
	if a.MissingKeywords == nil {
		a.MissingKeywords = []models.MissingKeyword{}
	}
	if a.Recommendations.Experience == nil {
		a.Recommendations.Experience = []string{}
	}
	if a.Recommendations.Skills == nil {
		a.Recommendations.Skills = []string{}
	}
	if a.Recommendations.Education == nil {
		a.Recommendations.Education = []string{}
	}
	if a.Recommendations.Format == nil {
		a.Recommendations.Format = []string{}
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
