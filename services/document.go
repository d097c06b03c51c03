package services

import (
	"bytes"
	"fmt"
	"strings"

	"baliance.com/gooxml/document"

	"resumeforge/models"
)

// DocumentService renders an optimized resume into a Word document.
// Rendering is deterministic and local; the layout is a plain
// single-column ATS-friendly format.
type DocumentService struct{}

func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

// RenderDocx produces the .docx bytes for an optimized resume.
func (s *DocumentService) RenderDocx(resume models.OptimizedResume) ([]byte, error) {
	doc := document.New()

	title := doc.AddParagraph().AddRun()
	title.Properties().SetBold(true)
	title.AddText(resume.FullName)

	contact := contactLine(resume)
	if contact != "" {
		doc.AddParagraph().AddRun().AddText(contact)
	}

	if len(resume.ExperienceEntries) > 0 {
		addHeading(doc, "Experience")
		for _, exp := range resume.ExperienceEntries {
			header := doc.AddParagraph().AddRun()
			header.Properties().SetBold(true)
			header.AddText(fmt.Sprintf("%s, %s", exp.Title, exp.Organization))
			meta := strings.TrimSpace(strings.Join(nonEmpty(exp.Location, exp.Dates), " | "))
			if meta != "" {
				doc.AddParagraph().AddRun().AddText(meta)
			}
			for _, bullet := range exp.Responsibilities {
				doc.AddParagraph().AddRun().AddText("• " + bullet)
			}
		}
	}

	if len(resume.ProjectEntries) > 0 {
		addHeading(doc, "Projects")
		for _, proj := range resume.ProjectEntries {
			header := doc.AddParagraph().AddRun()
			header.Properties().SetBold(true)
			header.AddText(proj.Name)
			meta := strings.TrimSpace(strings.Join(nonEmpty(proj.Technologies, proj.DateRange), " | "))
			if meta != "" {
				doc.AddParagraph().AddRun().AddText(meta)
			}
			for _, detail := range proj.Details {
				doc.AddParagraph().AddRun().AddText("• " + detail)
			}
		}
	}

	if len(resume.EducationEntries) > 0 {
		addHeading(doc, "Education")
		for _, edu := range resume.EducationEntries {
			header := doc.AddParagraph().AddRun()
			header.Properties().SetBold(true)
			header.AddText(edu.Institution)
			meta := strings.TrimSpace(strings.Join(nonEmpty(edu.Degree, edu.Location, edu.DateRange), " | "))
			if meta != "" {
				doc.AddParagraph().AddRun().AddText(meta)
			}
		}
	}

	if len(resume.SkillCategories) > 0 {
		addHeading(doc, "Skills")
		for _, cat := range resume.SkillCategories {
			doc.AddParagraph().AddRun().AddText(fmt.Sprintf("%s: %s", cat.CategoryName, strings.Join(cat.Skills, ", ")))
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeading(doc *document.Document, text string) {
	run := doc.AddParagraph().AddRun()
	run.Properties().SetBold(true)
	run.AddText(strings.ToUpper(text))
}

func contactLine(resume models.OptimizedResume) string {
	return strings.Join(nonEmpty(resume.Email, resume.LinkedInURL, resume.GitHubURL, resume.PortfolioURL), " | ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
