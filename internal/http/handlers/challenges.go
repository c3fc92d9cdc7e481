package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/challenge"
)

// ChallengeHandler issues human-check questions for capture surfaces.
type ChallengeHandler struct {
	Store *challenge.Store
}

func NewChallengeHandler(store *challenge.Store) *ChallengeHandler {
	return &ChallengeHandler{Store: store}
}

type challengeRequest struct {
	Variant string `json:"variant"`
}

type challengeResponse struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// Create issues a fresh one-shot challenge. The answer never leaves the
// server; the prompt is all the client gets.
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req challengeRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	issued := h.Store.Issue(challenge.Variant(req.Variant))
	c.JSON(http.StatusCreated, challengeResponse{ID: issued.ID, Prompt: issued.Prompt})
}
