package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resumeforge/models"
	"resumeforge/utils"
)

type OptimizeRequest struct {
	JobDescription string `json:"job_description" binding:"required,min=10,max=5000"`
	// Profile optionally overrides the stored one, letting clients
	// optimize unsaved edits.
	Profile *models.StructuredProfile `json:"profile,omitempty"`
}

// OptimizeResume tailors the user's profile to a job description and
// returns the rewritten resume with its ATS analysis.
func (h *Handler) OptimizeResume(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.UnauthorizedError(c, "Authentication required")
		return
	}

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "A job description between 10 and 5000 characters is required")
		return
	}

	profile, err := h.resolveProfile(c, id, req.Profile)
	if err != nil {
		return // response already written
	}

	result, err := h.Optimizer.Optimize(c.Request.Context(), profile, req.JobDescription)
	if err != nil {
		h.log.Error("optimization failed", err, gin.H{"user_id": id})
		utils.PipelineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Resume optimized", result)
}

// GenerateResume optimizes and then renders a DOCX artifact. When S3 is
// configured the document is archived and a download URL returned;
// otherwise only the history row is written and the document metadata
// returned for an inline follow-up download.
func (h *Handler) GenerateResume(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.UnauthorizedError(c, "Authentication required")
		return
	}

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "A job description between 10 and 5000 characters is required")
		return
	}

	profile, err := h.resolveProfile(c, id, req.Profile)
	if err != nil {
		return
	}

	result, err := h.Optimizer.Optimize(c.Request.Context(), profile, req.JobDescription)
	if err != nil {
		h.log.Error("optimization failed", err, gin.H{"user_id": id})
		utils.PipelineErrorResponse(c, err)
		return
	}

	docBytes, err := h.Documents.RenderDocx(result.OptimizedResume)
	if err != nil {
		h.log.Error("document rendering failed", err, gin.H{"user_id": id})
		utils.InternalServerError(c, "Could not render the resume document. Please try again.")
		return
	}

	filename := artifactFilename(result.OptimizedResume.FullName)
	storageKey := ""
	downloadURL := ""
	if h.Storage != nil {
		storageKey = fmt.Sprintf("resumes/%d/%s-%s", id, uuid.NewString(), filename)
		if _, err := h.Storage.UploadDocument(storageKey, docBytes); err != nil {
			h.log.Error("artifact upload failed", err, gin.H{"user_id": id, "key": storageKey})
			storageKey = ""
		} else if url, err := h.Storage.PresignDownload(storageKey); err == nil {
			downloadURL = url
		}
	}

	record, err := h.History.Record(id, req.JobDescription, result.Analysis.ATSScore, filename, storageKey)
	if err != nil {
		h.log.Error("history record failed", err, gin.H{"user_id": id})
		// Generation succeeded; history is best effort.
	}

	utils.SuccessResponse(c, http.StatusOK, "Resume generated", gin.H{
		"result":       result,
		"filename":     filename,
		"download_url": downloadURL,
		"history":      record,
	})
}

// GetHistory lists past generations, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.UnauthorizedError(c, "Authentication required")
		return
	}

	records, err := h.History.ListByUser(id, 20)
	if err != nil {
		h.log.Error("history load failed", err, gin.H{"user_id": id})
		utils.InternalServerError(c, "Could not load the history. Please try again.")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History loaded", gin.H{"history": records})
}

// DeleteHistory removes one generation record and its archived artifact.
func (h *Handler) DeleteHistory(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.UnauthorizedError(c, "Authentication required")
		return
	}

	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil || recordID <= 0 {
		utils.BadRequestError(c, "A numeric history id is required")
		return
	}

	storageKey, err := h.History.Delete(id, recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.NotFoundError(c, "No such history record")
			return
		}
		h.log.Error("history delete failed", err, gin.H{"user_id": id, "record_id": recordID})
		utils.InternalServerError(c, "Could not delete the record. Please try again.")
		return
	}

	if storageKey != "" && h.Storage != nil {
		if err := h.Storage.DeleteDocument(storageKey); err != nil {
			// The row is gone; a leaked artifact only costs storage.
			h.log.Warn("artifact cleanup failed", gin.H{"key": storageKey, "cause": err.Error()})
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "History record deleted", gin.H{"id": recordID})
}

// resolveProfile picks the inline profile when provided, otherwise the
// stored one. Writes the error response itself on failure.
func (h *Handler) resolveProfile(c *gin.Context, id int, inline *models.StructuredProfile) (models.StructuredProfile, error) {
	if inline != nil {
		inline.EnsureDefaults()
		return *inline, nil
	}
	profile, err := h.Profiles.Get(id)
	if err != nil {
		h.log.Error("profile load failed", err, gin.H{"user_id": id})
		utils.InternalServerError(c, "Could not load the profile. Please try again.")
		return models.StructuredProfile{}, err
	}
	return profile, nil
}

func artifactFilename(fullName string) string {
	name := strings.ToLower(strings.TrimSpace(fullName))
	if name == "" {
		name = "resume"
	}
	name = strings.Join(strings.Fields(name), "-")
	return name + "-resume.docx"
}
