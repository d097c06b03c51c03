package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/parsers"
	"resumeforge/utils"
)

// SaveProfile sanitizes untyped profile JSON and replaces the stored
// profile atomically. Invalid entries are dropped and reported, never
// failing the whole save.
func (h *Handler) SaveProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.UnauthorizedError(c, "Authentication required")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.BadRequestError(c, "Request body must be a JSON object")
		return
	}

	profile, dropped := parsers.SanitizeProfile(raw)
	if err := h.Profiles.Replace(id, profile); err != nil {
		h.log.Error("profile replace failed", err, gin.H{"user_id": id})
		utils.InternalServerError(c, "Could not save the profile. Please try again.")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile saved", gin.H{
		"profile": profile,
		"dropped": dropped,
	})
}

// GetProfile returns the stored profile; a user without one gets an
// empty profile rather than a 404.
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.UnauthorizedError(c, "Authentication required")
		return
	}

	profile, err := h.Profiles.Get(id)
	if err != nil {
		h.log.Error("profile load failed", err, gin.H{"user_id": id})
		utils.InternalServerError(c, "Could not load the profile. Please try again.")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile loaded", gin.H{"profile": profile})
}

// toMap re-shapes any JSON-serializable value into the untyped form the
// sanitization gate accepts.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}
