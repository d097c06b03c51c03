package services

import (
	"bytes"
	"strings"
	"testing"

	"baliance.com/gooxml/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/models"
)

func docxText(t *testing.T, data []byte) string {
	t.Helper()
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err, "rendered bytes must be a readable docx")
	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestRenderDocx(t *testing.T) {
	resume := models.OptimizedResume{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		LinkedInURL: "linkedin.com/in/ada",
		ExperienceEntries: []models.OptimizedExperience{
			{
				Title:            "Senior Engineer",
				Organization:     "Babbage & Co",
				Location:         "London",
				Dates:            "January, 2020 - Present",
				Responsibilities: []string{"Designed pipelines", "Led the team", "Cut latency 40%"},
			},
		},
		ProjectEntries: []models.OptimizedProject{
			{Name: "Analytical Engine", Technologies: "Brass, Steam", Details: []string{"a", "b", "c"}},
		},
		EducationEntries: []models.OptimizedEducation{
			{Institution: "University of London", Degree: "Mathematics", DateRange: "1833 - 1835"},
		},
		SkillCategories: []models.SkillCategory{
			{CategoryName: "Languages", Skills: []string{"Go", "SQL"}},
		},
	}

	data, err := NewDocumentService().RenderDocx(resume)
	require.NoError(t, err)

	text := docxText(t, data)
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "ada@example.com | linkedin.com/in/ada")
	assert.Contains(t, text, "EXPERIENCE")
	assert.Contains(t, text, "Senior Engineer, Babbage & Co")
	assert.Contains(t, text, "London | January, 2020 - Present")
	assert.Contains(t, text, "• Designed pipelines")
	assert.Contains(t, text, "PROJECTS")
	assert.Contains(t, text, "EDUCATION")
	assert.Contains(t, text, "University of London")
	assert.Contains(t, text, "SKILLS")
	assert.Contains(t, text, "Languages: Go, SQL")
}

func TestRenderDocx_SkipsEmptySections(t *testing.T) {
	resume := models.OptimizedResume{
		FullName: "Ada Lovelace",
		ExperienceEntries: []models.OptimizedExperience{
			{Title: "Engineer", Organization: "Acme", Responsibilities: []string{"a", "b", "c"}},
		},
	}

	data, err := NewDocumentService().RenderDocx(resume)
	require.NoError(t, err)

	text := docxText(t, data)
	assert.Contains(t, text, "EXPERIENCE")
	assert.NotContains(t, text, "PROJECTS")
	assert.NotContains(t, text, "EDUCATION")
	assert.NotContains(t, text, "SKILLS")
}
