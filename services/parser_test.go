package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/models"
)

// fakeClient records calls so tests can assert on prompts and options
// without any network traffic.
type fakeClient struct {
	completion string
	err        error
	calls      int
	lastPrompt string
	lastOpts   CompletionOptions
}

func (f *fakeClient) Complete(_ context.Context, prompt string, opts CompletionOptions) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

const sampleResumeText = `Ada Lovelace
Senior Software Engineer at Babbage & Co, London
Built analytical engines and wrote the first published algorithm.
Skills: Go, SQL, Mathematics`

func TestParse_RejectsShortText(t *testing.T) {
	client := &fakeClient{}
	svc := NewParserService(client)

	_, err := svc.Parse(context.Background(), "too short")

	require.Error(t, err)
	assert.Equal(t, models.KindEmptyInput, models.KindOf(err))
	assert.Zero(t, client.calls, "short input must not reach the model")
}

func TestParse_StructuredExtraction(t *testing.T) {
	client := &fakeClient{completion: "```json\n" + `{
		"personal": {"name": "Ada Lovelace", "github": "https://github.com/ada"},
		"experiences": [{"title": "Senior Software Engineer", "company": "Babbage & Co", "description": "Built analytical engines", "startDate": "1840-01-01", "current": false}],
		"skills": [
			{"name": "Go", "category": "Languages", "level": "Expert", "yearsOfExperience": 5},
			{"name": "SQL", "category": "Databases", "level": "Intermediate"},
			{"name": "Mathematics", "category": "Theory", "level": "Expert"}
		]
	}` + "\n```"}
	svc := NewParserService(client)

	profile, err := svc.Parse(context.Background(), sampleResumeText)

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, client.lastPrompt, "Ada Lovelace", "prompt must embed the resume text")
	assert.Equal(t, 0.3, client.lastOpts.Temperature)
	assert.Equal(t, 3000, client.lastOpts.MaxOutputTokens)

	assert.Equal(t, "Ada Lovelace", profile.Personal.Name)
	assert.Len(t, profile.Experiences, 1)
	assert.Len(t, profile.Skills, 3)
	// Sections absent from the completion default to empty, never nil.
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.Projects)
	assert.NotNil(t, profile.Certifications)
}

func TestParse_TruncatedCompletionRecovered(t *testing.T) {
	// Token ceiling hit mid-response: no closing braces at all.
	client := &fakeClient{completion: `{"personal": {"name": "Ada"}, "skills": [{"name": "Go", "category": "Languages"}`}
	svc := NewParserService(client)

	profile, err := svc.Parse(context.Background(), sampleResumeText)

	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Personal.Name)
	assert.Len(t, profile.Skills, 1)
}

func TestParse_ModelFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream 500")}
	svc := NewParserService(client)

	_, err := svc.Parse(context.Background(), sampleResumeText)

	require.Error(t, err)
	assert.Equal(t, models.KindModelUnavailable, models.KindOf(err))
}

func TestParse_UnrepairableCompletion(t *testing.T) {
	client := &fakeClient{completion: "I'm sorry, I cannot parse this resume."}
	svc := NewParserService(client)

	_, err := svc.Parse(context.Background(), sampleResumeText)

	require.Error(t, err)
	assert.Equal(t, models.KindMalformedResponse, models.KindOf(err))
}

func TestParse_SchemaMismatch(t *testing.T) {
	client := &fakeClient{completion: `{"experiences": {"title": "not an array"}}`}
	svc := NewParserService(client)

	_, err := svc.Parse(context.Background(), sampleResumeText)

	require.Error(t, err)
	assert.Equal(t, models.KindMalformedResponse, models.KindOf(err))
}

func TestParse_TrimsBeforeLengthCheck(t *testing.T) {
	client := &fakeClient{}
	svc := NewParserService(client)

	padded := "   \n" + strings.Repeat(" ", MinResumeTextLength) + "\n   "
	_, err := svc.Parse(context.Background(), padded)

	require.Error(t, err)
	assert.Equal(t, models.KindEmptyInput, models.KindOf(err))
	assert.Zero(t, client.calls)
}
