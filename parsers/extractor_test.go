package parsers

import (
	"bytes"
	"strings"
	"testing"

	"baliance.com/gooxml/document"

	"resumeforge/models"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	doc := document.New()
	for _, p := range paragraphs {
		doc.AddParagraph().AddRun().AddText(p)
	}
	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		t.Fatalf("building docx fixture: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_RejectsInvalidUploads(t *testing.T) {
	cases := []struct {
		name string
		doc  ExtractedDocument
		kind models.ErrorKind
	}{
		{
			"empty data",
			ExtractedDocument{Filename: "a.pdf", MimeType: MimePDF},
			models.KindInvalidInput,
		},
		{
			"oversized",
			ExtractedDocument{Filename: "a.pdf", MimeType: MimePDF, Size: MaxDocumentSize + 1, Data: []byte("%PDF")},
			models.KindInvalidInput,
		},
		{
			"unsupported mime",
			ExtractedDocument{Filename: "a.txt", MimeType: "text/plain", Size: 5, Data: []byte("hello")},
			models.KindInvalidInput,
		},
		{
			"pdf without magic",
			ExtractedDocument{Filename: "a.pdf", MimeType: MimePDF, Size: 9, Data: []byte("PK\x03\x04junk")},
			models.KindUnsupportedFormat,
		},
		{
			"docx that is not a zip",
			ExtractedDocument{Filename: "a.docx", MimeType: MimeDOCX, Size: 9, Data: []byte("plaintext")},
			models.KindUnsupportedFormat,
		},
		{
			"pdf magic with corrupt body",
			ExtractedDocument{Filename: "a.pdf", MimeType: MimePDF, Size: 12, Data: []byte("%PDF-garbage")},
			models.KindUnsupportedFormat,
		},
	}

	e := NewExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Extract(tc.doc)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if got := models.KindOf(err); got != tc.kind {
				t.Errorf("expected kind %q, got %q (%v)", tc.kind, got, err)
			}
		})
	}
}

func TestExtract_DocxText(t *testing.T) {
	data := buildDocx(t,
		"Ada Lovelace",
		"Senior   Engineer at Babbage & Co",
		"",
		"Skills: Go, SQL",
	)

	e := NewExtractor()
	text, err := e.Extract(ExtractedDocument{
		Filename: "resume.docx",
		MimeType: MimeDOCX,
		Size:     int64(len(data)),
		Data:     data,
	})
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	if !strings.Contains(text, "Ada Lovelace") || !strings.Contains(text, "Skills: Go, SQL") {
		t.Errorf("extracted text missing content:\n%s", text)
	}
	if strings.Contains(text, "  ") {
		t.Errorf("whitespace runs not collapsed:\n%q", text)
	}
	if strings.Contains(text, "\n\n") {
		t.Errorf("blank lines not collapsed:\n%q", text)
	}
}

func TestExtract_DocxWithoutText(t *testing.T) {
	data := buildDocx(t, "   ", "")

	e := NewExtractor()
	_, err := e.Extract(ExtractedDocument{
		Filename: "blank.docx",
		MimeType: MimeDOCX,
		Size:     int64(len(data)),
		Data:     data,
	})
	if err == nil {
		t.Fatal("expected empty content rejection")
	}
	if got := models.KindOf(err); got != models.KindEmptyContent {
		t.Errorf("expected empty_content kind, got %q", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "Name Surname\t \tRole\n\n\nNext  line\r\n"
	got := normalizeWhitespace(in)
	want := "Name Surname Role\nNext line"
	if got != want {
		t.Errorf("normalizeWhitespace = %q, want %q", got, want)
	}
}
