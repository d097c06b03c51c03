package parsers

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"baliance.com/gooxml/document"
	pdf "github.com/ledongthuc/pdf"

	"resumeforge/models"
)

const (
	// MaxDocumentSize is the upload ceiling for resume documents.
	MaxDocumentSize = 5 * 1024 * 1024

	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var pdfMagic = []byte("%PDF")

// ExtractedDocument is the transient upload handed to the extractor. It
// lives only for the duration of one request.
type ExtractedDocument struct {
	Filename string
	MimeType string
	Size     int64
	Data     []byte
}

// Extractor converts uploaded PDF and DOCX documents into plain text.
// It performs no network calls and holds no state.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract validates the document and returns its trimmed plain text.
// Minimum-length policy on the text is enforced by the caller, not here.
func (e *Extractor) Extract(doc ExtractedDocument) (string, error) {
	if err := e.validate(doc); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch doc.MimeType {
	case MimePDF:
		if !bytes.HasPrefix(doc.Data, pdfMagic) {
			return "", models.NewPipelineError(models.KindUnsupportedFormat,
				fmt.Sprintf("missing PDF header in %q (declared %s, %d bytes)", doc.Filename, doc.MimeType, doc.Size))
		}
		text, err = extractPDFText(doc.Data)
	case MimeDOCX:
		text, err = extractDocxText(doc.Data)
	default:
		return "", models.NewPipelineError(models.KindInvalidInput,
			fmt.Sprintf("unsupported mime type %q for %q", doc.MimeType, doc.Filename))
	}
	if err != nil {
		return "", models.WrapPipelineError(models.KindUnsupportedFormat,
			fmt.Sprintf("extraction failed for %q (declared %s, %d bytes)", doc.Filename, doc.MimeType, doc.Size), err)
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", models.NewPipelineError(models.KindEmptyContent,
			fmt.Sprintf("no extractable text in %q (declared %s, %d bytes)", doc.Filename, doc.MimeType, doc.Size))
	}
	return text, nil
}

func (e *Extractor) validate(doc ExtractedDocument) error {
	if len(doc.Data) == 0 || doc.Size == 0 {
		return models.NewPipelineError(models.KindInvalidInput,
			fmt.Sprintf("empty upload %q", doc.Filename))
	}
	if doc.Size > MaxDocumentSize || int64(len(doc.Data)) > MaxDocumentSize {
		return models.NewPipelineError(models.KindInvalidInput,
			fmt.Sprintf("upload %q is %d bytes, limit is %d", doc.Filename, len(doc.Data), MaxDocumentSize))
	}
	if doc.MimeType != MimePDF && doc.MimeType != MimeDOCX {
		return models.NewPipelineError(models.KindInvalidInput,
			fmt.Sprintf("unsupported mime type %q for %q", doc.MimeType, doc.Filename))
	}
	return nil
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// normalizeWhitespace collapses whitespace runs while preserving line
// structure, which section-based prompts rely on.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
