package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"neuroscreen/internal/engine"
	"neuroscreen/internal/models"
	"neuroscreen/internal/utils"
)

// sessionIDKey is where the cookie session stores the active assessment ID.
const sessionIDKey = "assessmentSessionID"

type AssessmentHandler struct {
	log        *zap.Logger
	manager    *engine.Manager
	aggregator *engine.ResultAggregator
}

func NewAssessmentHandler(log *zap.Logger, manager *engine.Manager, aggregator *engine.ResultAggregator) *AssessmentHandler {
	return &AssessmentHandler{log: log, manager: manager, aggregator: aggregator}
}

type startRequest struct {
	Domain   models.Domain `json:"domain" binding:"required"`
	Adaptive bool          `json:"adaptive"`
}

// Start creates a new assessment session and binds it to the caller's
// cookie session.
func (h *AssessmentHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.manager.Start(req.Domain, req.Adaptive)
	if err != nil {
		h.log.Warn("Failed to start session", zap.String("domain", string(req.Domain)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := session.Sequencer.State()
	cookie := sessions.Default(c)
	cookie.Set(sessionIDKey, state.SessionID)
	if err := cookie.Save(); err != nil {
		h.log.Warn("Failed to save cookie session", zap.Error(err))
	}

	item, _ := session.Sequencer.Current()
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": state.SessionID,
		"domain":    state.Domain,
		"item":      item,
		"progress":  session.Controller.Progress(),
	})
}

// CurrentItem returns the item awaiting a response.
func (h *AssessmentHandler) CurrentItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	item, err := session.Sequencer.Current()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is complete"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item":                 item,
		"remainingItemSeconds": session.Controller.RemainingItemSeconds(),
	})
}

type submitRequest struct {
	Capture models.RawCapture `json:"capture"`
}

// SubmitResponse records a capture for the current item and advances the
// sequencer. On the terminal transition it finalizes the session and
// returns the assessment result.
func (h *AssessmentHandler) SubmitResponse(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind capture data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid capture data"})
		return
	}

	item, err := session.Sequencer.Current()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is complete"})
		return
	}

	if messages := utils.ValidateResponse(item, req.Capture); len(messages) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": messages})
		return
	}

	err = session.Sequencer.Advance(&models.Response{ItemID: item.ID, Capture: req.Capture})
	if err != nil {
		h.advanceError(c, err)
		return
	}

	h.respondAfterAdvance(c, session)
}

// Previous steps back to the prior item without discarding its response.
func (h *AssessmentHandler) Previous(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	if err := session.Sequencer.Previous(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	item, _ := session.Sequencer.Current()
	c.JSON(http.StatusOK, gin.H{"item": item, "progress": session.Controller.Progress()})
}

// Skip advances past a skippable item without a response.
func (h *AssessmentHandler) Skip(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	item, err := session.Sequencer.Current()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is complete"})
		return
	}
	if !item.Skippable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This item cannot be skipped"})
		return
	}
	if err := session.Sequencer.Skip(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.respondAfterAdvance(c, session)
}

// Progress returns the read-only session snapshot.
func (h *AssessmentHandler) Progress(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"progress":   session.Controller.Progress(),
		"difficulty": session.Sequencer.Difficulty(),
	})
}

// Tick drives the cooperative per-item countdown. Hosts call it once per
// second while an item with a time limit is displayed.
func (h *AssessmentHandler) Tick(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	expired := session.Controller.Tick()
	if expired && session.Sequencer.IsTerminal() {
		h.finalize(c, session)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expired":              expired,
		"remainingItemSeconds": session.Controller.RemainingItemSeconds(),
		"progress":             session.Controller.Progress(),
	})
}

// respondAfterAdvance emits either the next item or, at the terminal
// transition, the finalized result.
func (h *AssessmentHandler) respondAfterAdvance(c *gin.Context, session *engine.Session) {
	if session.Sequencer.IsTerminal() {
		h.finalize(c, session)
		return
	}

	item, _ := session.Sequencer.Current()
	c.JSON(http.StatusOK, gin.H{"item": item, "progress": session.Controller.Progress()})
}

func (h *AssessmentHandler) finalize(c *gin.Context, session *engine.Session) {
	result, err := h.aggregator.Finalize(c.Request.Context(), session.Sequencer)
	if err != nil {
		h.log.Error("Failed to finalize session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not finalize session"})
		return
	}

	h.manager.End(session.Sequencer.State().SessionID)
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *AssessmentHandler) advanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrResponseRequired),
		errors.Is(err, engine.ErrAlreadyAnswered),
		errors.Is(err, engine.ErrItemMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "Session is complete"})
	default:
		h.log.Error("Failed to advance session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record response"})
	}
}

// session resolves the caller's active session from the URL parameter,
// falling back to the cookie-bound session ID.
func (h *AssessmentHandler) session(c *gin.Context) (*engine.Session, bool) {
	id := c.Param("id")
	if id == "" {
		if v, ok := sessions.Default(c).Get(sessionIDKey).(string); ok {
			id = v
		}
	}

	session, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown or expired session"})
		return nil, false
	}
	return session, true
}
