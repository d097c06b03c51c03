package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/parsers"
	"resumeforge/utils"
)

// ParseResume accepts a multipart "resume" upload, extracts its text and
// returns the structured profile for the user to review before saving.
// The document and its text are transient; nothing is persisted here.
func (h *Handler) ParseResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		utils.BadRequestError(c, "A resume file is required in the \"resume\" field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, parsers.MaxDocumentSize+1))
	if err != nil {
		h.log.Error("reading upload failed", err, gin.H{"filename": header.Filename})
		utils.BadRequestError(c, "Could not read the uploaded file")
		return
	}

	doc := parsers.ExtractedDocument{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Data:     data,
	}

	text, err := h.Extractor.Extract(doc)
	if err != nil {
		h.log.Warn("extraction rejected upload", gin.H{
			"filename": header.Filename,
			"mime":     doc.MimeType,
			"size":     header.Size,
			"cause":    err.Error(),
		})
		utils.PipelineErrorResponse(c, err)
		return
	}

	profile, err := h.Parser.Parse(c.Request.Context(), text)
	if err != nil {
		h.log.Error("resume parsing failed", err, gin.H{"filename": header.Filename, "text_length": len(text)})
		utils.PipelineErrorResponse(c, err)
		return
	}

	// The model output goes through the same gate as user form input so
	// the response always satisfies the profile invariants.
	sanitized, dropped := parsers.SanitizeProfile(toMap(profile))
	if len(dropped) > 0 {
		h.log.Warn("parser produced incomplete entries", gin.H{"dropped": dropped})
	}

	utils.SuccessResponse(c, http.StatusOK, "Resume parsed", gin.H{
		"profile": sanitized,
		"dropped": dropped,
	})
}
