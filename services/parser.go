package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/models"
	"resumeforge/parsers"
)

// MinResumeTextLength is the shortest text the parser will send to the
// model. Anything below it fails fast without a model call.
const MinResumeTextLength = 50

const extractionPromptTemplate = `You are Resume-AI, an expert at parsing resume documents and extracting structured data. Analyze the resume text and extract information into the specified JSON format.

Resume Text:
%s

Please carefully analyze the resume text and extract the following information:

1. Personal Information: full name, bio/summary if present, portfolio website URL, LinkedIn profile URL, GitHub profile URL
2. Work Experience: job title, company name, cleaned-up description of responsibilities, start and end dates, whether it is the current position, location
3. Education: institution name, degree, field of study, start and end dates, whether currently studying
4. Projects: project name, description, technologies used as an array, start and end dates, project URL if mentioned
5. Skills: consolidate similar technologies into single entries by category. Determine the 4-5 most appropriate categories from the technologies found. Instead of separate "PostgreSQL", "MongoDB", "Redis" entries produce one entry "PostgreSQL, MongoDB, Redis" under an appropriate category, using the highest observed skill level and the maximum years of experience.
6. Certifications: title, issuing organization, description if available, issue date, expiry date if mentioned, credential URL if mentioned

Guidelines:
- Extract only explicitly mentioned information
- Convert all dates to YYYY-MM-DD, estimating day and month as 01 when not specified
- Skill level must be one of Beginner, Intermediate or Expert
- Return ONLY a valid JSON object, no markdown, no code blocks, no commentary

JSON structure:
{
  "personal": {"name": "string", "bio": "string", "portfolio": "string", "linkedin": "string", "github": "string"},
  "experiences": [{"title": "string", "company": "string", "description": "string", "startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "current": false, "location": "string"}],
  "education": [{"institution": "string", "degree": "string", "field": "string", "startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "current": false}],
  "projects": [{"title": "string", "description": "string", "startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "url": "string", "technologies": ["string"]}],
  "skills": [{"name": "string", "category": "string", "level": "Beginner|Intermediate|Expert", "yearsOfExperience": 0}],
  "certifications": [{"title": "string", "issuer": "string", "description": "string", "issueDate": "YYYY-MM-DD", "expiryDate": "YYYY-MM-DD", "credentialUrl": "string"}]
}`

// ParserService turns extracted resume text into a StructuredProfile via
// one model call. It performs no retries; resubmission is the caller's
// decision.
type ParserService struct {
	client      CompletionClient
	temperature float64
	maxTokens   int
}

// NewParserService wires the parser to an injected completion client.
func NewParserService(client CompletionClient) *ParserService {
	return &ParserService{
		client:      client,
		temperature: 0.3,
		maxTokens:   3000,
	}
}

// Parse extracts a structured profile from resume text. Fails with
// EmptyInput below the minimum length, ModelUnavailable on call failure
// and MalformedResponse when repair cannot recover the completion.
func (s *ParserService) Parse(ctx context.Context, text string) (models.StructuredProfile, error) {
	text = strings.TrimSpace(text)
	if len(text) < MinResumeTextLength {
		return models.StructuredProfile{}, models.NewPipelineError(models.KindEmptyInput,
			fmt.Sprintf("resume text has %d characters, minimum is %d", len(text), MinResumeTextLength))
	}

	prompt := fmt.Sprintf(extractionPromptTemplate, text)
	completion, err := s.client.Complete(ctx, prompt, CompletionOptions{
		Temperature:     s.temperature,
		MaxOutputTokens: s.maxTokens,
	})
	if err != nil {
		return models.StructuredProfile{}, models.WrapPipelineError(models.KindModelUnavailable,
			"extraction model call failed", err)
	}

	repaired, err := parsers.RepairJSON(completion)
	if err != nil {
		return models.StructuredProfile{}, err
	}

	var profile models.StructuredProfile
	if err := json.Unmarshal(repaired, &profile); err != nil {
		return models.StructuredProfile{}, models.WrapPipelineError(models.KindMalformedResponse,
			"repaired completion does not match the profile schema", err)
	}

	// Missing sections default to empty rather than failing the parse.
	profile.EnsureDefaults()
	return profile, nil
}
