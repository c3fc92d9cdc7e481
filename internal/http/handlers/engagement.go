package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/engagement"
	"backend/internal/modal"
)

// EngagementHandler exposes popup scheduling and the notification ticker
// to the storefront.
type EngagementHandler struct {
	Manager     *engagement.Manager
	Coordinator *modal.Coordinator
}

func NewEngagementHandler(manager *engagement.Manager, coordinator *modal.Coordinator) *EngagementHandler {
	return &EngagementHandler{Manager: manager, Coordinator: coordinator}
}

// Config tells the frontend which interruptions this site runs.
func (h *EngagementHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"popups": h.Manager.TriggerConfig(),
		"ticker": h.Manager.TickerConfig(),
	})
}

// NextNotification serves stateless polling clients from the shared
// rotation cursor.
func (h *EngagementHandler) NextNotification(c *gin.Context) {
	item, ok := h.Manager.NextNotification()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"notification": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notification": item,
		"position":     h.Manager.TickerConfig().Position,
	})
}

type openSessionRequest struct {
	ViewportWidth int `json:"viewport_width"`
}

// OpenSession starts engagement scheduling for one page view.
func (h *EngagementHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	s := h.Manager.Open(req.ViewportWidth)
	c.JSON(http.StatusCreated, gin.H{"session_id": s.ID})
}

type promptView struct {
	engagement.Prompt
	Surface *surfaceView `json:"surface,omitempty"`
}

// surfaceView is what the frontend needs to open a capture form for a
// fired popup: the seed plus a ready-to-answer challenge.
type surfaceView struct {
	Name        string            `json:"name"`
	Intent      string            `json:"intent"`
	Destination string            `json:"destination,omitempty"`
	Challenge   challengeResponse `json:"challenge"`
}

// ReportEvent applies one browser observation and returns any prompts
// the session's timers queued since the last report. Popup prompts are
// enriched with their capture-surface seed.
func (h *EngagementHandler) ReportEvent(c *gin.Context) {
	var ev engagement.Event
	if !BindJSONOrError(c, &ev) {
		return
	}

	prompts, err := h.Manager.Report(c.Param("id"), ev)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	views := make([]promptView, 0, len(prompts))
	for _, p := range prompts {
		view := promptView{Prompt: p}
		if p.Kind == engagement.PromptPopup {
			opened := h.Coordinator.Open(h.Coordinator.ForTrigger(p.Trigger))
			view.Surface = &surfaceView{
				Name:        opened.Surface.Name,
				Intent:      string(opened.Surface.Intent),
				Destination: opened.Surface.Destination,
				Challenge:   challengeResponse{ID: opened.Challenge.ID, Prompt: opened.Challenge.Prompt},
			}
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"prompts": views})
}

// CloseSession tears a page view's session down.
func (h *EngagementHandler) CloseSession(c *gin.Context) {
	if err := h.Manager.Close(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}
