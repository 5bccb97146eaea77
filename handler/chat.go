package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/fill"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/pkg/logger"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/service"
	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// Chat treats the user's message as the answer to the current field,
// validates it, advances the conversation and phrases the reply.
func (h *DocumentHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	session := h.loadSession(c, req.SessionID)
	if session == nil {
		return
	}
	ctx := c.Request.Context()

	session.AppendTurn(model.RoleUser, req.Message)

	if session.CurrentIndex < 0 || session.CurrentIndex >= len(session.Placeholders) {
		reply := h.assistant.CompletionMessage(ctx, session.DocumentType)
		session.AppendTurn(model.RoleAssistant, reply)
		if err := h.store.Save(ctx, session); err != nil {
			logger.Warn(ctx, "failed to save transcript", "session_id", session.ID, "error", err)
		}
		c.JSON(http.StatusOK, gin.H{
			"reply":    reply,
			"progress": fill.ComputeProgress(session.Placeholders, session.FilledValues),
			"done":     true,
		})
		return
	}

	current := &session.Placeholders[session.CurrentIndex]
	values, result, err := fill.Apply(session.Placeholders, session.FilledValues, current.ID, req.Message)
	if err != nil {
		var vErr *fill.ValidationError
		if errors.As(err, &vErr) {
			reply := service.ErrorFeedback(vErr)
			session.AppendTurn(model.RoleAssistant, reply)
			if err := h.store.Save(ctx, session); err != nil {
				logger.Warn(ctx, "failed to save transcript", "session_id", session.ID, "error", err)
			}
			c.JSON(http.StatusOK, gin.H{
				"reply":    reply,
				"error":    vErr,
				"progress": fill.ComputeProgress(session.Placeholders, session.FilledValues),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record answer"})
		return
	}

	session.FilledValues = values
	session.CurrentIndex = result.NextIndex
	if result.NextIndex == -1 {
		session.Status = model.StatusCompleted
	} else {
		session.Status = model.StatusActive
	}

	reply := h.buildReply(c, session, current, result)
	session.AppendTurn(model.RoleAssistant, reply)

	if err := h.store.Save(ctx, session); err != nil {
		logger.Error(ctx, "failed to save session", "session_id", session.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	logger.Info(ctx, "answer recorded", "field", current.ID, "auto_fills", len(result.AutoFills))

	c.JSON(http.StatusOK, gin.H{
		"reply":      reply,
		"value":      result.Value,
		"auto_fills": result.AutoFills,
		"progress":   fill.ComputeProgress(session.Placeholders, session.FilledValues),
		"done":       result.NextIndex == -1,
	})
}

type FillRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Field     string `json:"field" binding:"required"`
	Value     string `json:"value" binding:"required"`
}

// Fill records an answer for an explicitly addressed field, by occurrence ID
// or legacy key.
func (h *DocumentHandler) Fill(c *gin.Context) {
	var req FillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	session := h.loadSession(c, req.SessionID)
	if session == nil {
		return
	}

	values, result, err := fill.Apply(session.Placeholders, session.FilledValues, req.Field, req.Value)
	if err != nil {
		h.writeFillError(c, err)
		return
	}

	h.advanceSession(c, session, values, result)
	if c.IsAborted() {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"value":      result.Value,
		"auto_fills": result.AutoFills,
		"progress":   fill.ComputeProgress(session.Placeholders, session.FilledValues),
	})
}

type EditRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Field     string `json:"field" binding:"required"`
	Value     string `json:"value" binding:"required"`
	Reask     bool   `json:"reask"`
}

// Edit replaces a previously given answer. With reask set, the conversation
// pointer moves back to the edited field.
func (h *DocumentHandler) Edit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	session := h.loadSession(c, req.SessionID)
	if session == nil {
		return
	}

	values, result, err := fill.Edit(session.Placeholders, session.FilledValues, req.Field, req.Value, req.Reask)
	if err != nil {
		h.writeFillError(c, err)
		return
	}

	h.advanceSession(c, session, values, result)
	if c.IsAborted() {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"value":      result.Value,
		"auto_fills": result.AutoFills,
		"progress":   fill.ComputeProgress(session.Placeholders, session.FilledValues),
	})
}

// advanceSession commits a transition result onto the session and saves it.
func (h *DocumentHandler) advanceSession(c *gin.Context, session *model.Session, values model.Values, result *fill.Result) {
	session.FilledValues = values
	session.CurrentIndex = result.NextIndex
	if result.NextIndex == -1 {
		session.Status = model.StatusCompleted
	} else {
		session.Status = model.StatusActive
	}

	if err := h.store.Save(c.Request.Context(), session); err != nil {
		logger.Error(c.Request.Context(), "failed to save session", "session_id", session.ID, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
	}
}

func (h *DocumentHandler) writeFillError(c *gin.Context, err error) {
	if errors.Is(err, fill.ErrUnknownField) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No such field in this document"})
		return
	}
	var vErr *fill.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "details": vErr})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record answer"})
}

// buildReply phrases the chat response after a successful answer:
// confirmation, auto-fill note, then either the next question or the
// completion message.
func (h *DocumentHandler) buildReply(c *gin.Context, session *model.Session, answered *model.Placeholder, result *fill.Result) string {
	ctx := c.Request.Context()

	parts := []string{fmt.Sprintf("Got it. %s: %s", answered.Name, result.Value)}

	if n := len(result.AutoFills); n == 1 {
		parts = append(parts, "I also filled in another occurrence of the same field.")
	} else if n > 1 {
		parts = append(parts, fmt.Sprintf("I also filled in %d other occurrences of the same field.", n))
	}

	if result.NextIndex == -1 {
		parts = append(parts, h.assistant.CompletionMessage(ctx, session.DocumentType))
	} else {
		next := &session.Placeholders[result.NextIndex]
		progress := fill.ComputeProgress(session.Placeholders, session.FilledValues)
		parts = append(parts, h.assistant.Question(ctx, session.DocumentType, next, progress))
	}

	return strings.Join(parts, "\n\n")
}
