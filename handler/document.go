package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/fill"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/middleware"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/pkg/logger"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/placeholder"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/render"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	store          *service.SessionStore
	minioService   *service.MinioService
	assistant      *service.AssistantService
	detector       *placeholder.Detector
	maxUploadBytes int64
}

func NewDocumentHandler(store *service.SessionStore, minioSvc *service.MinioService,
	assistant *service.AssistantService, detector *placeholder.Detector, maxUploadMB int) *DocumentHandler {
	return &DocumentHandler{
		store:          store,
		minioService:   minioSvc,
		assistant:      assistant,
		detector:       detector,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// loadSession resolves a session and enforces ownership. Writes the error
// response itself and returns nil when the caller should stop.
func (h *DocumentHandler) loadSession(c *gin.Context, sessionID string) *model.Session {
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return nil
	}
	session, err := h.store.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil
	}
	if session == nil || session.Username != middleware.GetUsername(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
		return nil
	}

	// Tag the request context so log lines carry the session id.
	ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, session.ID)
	c.Request = c.Request.WithContext(ctx)

	return session
}

// Upload receives a .docx template, detects its fillable fields and opens a
// new session positioned at the first field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	username := middleware.GetUsername(c)
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".docx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only DOCX files are allowed"})
		return
	}
	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	doc, err := service.ParseDocx(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the document. Is it a valid .docx file?"})
		return
	}

	sessionID := uuid.New().String()
	objectName := service.TemplateObjectName(username, sessionID, header.Filename)
	if err := h.minioService.UploadDocx(ctx, objectName, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store template: " + err.Error()})
		return
	}

	index := h.detector.Detect(ctx, doc)
	docType := service.DetectDocumentType(doc.RawText)

	currentIndex := -1
	if len(index) > 0 {
		currentIndex = 0
	}

	session := &model.Session{
		ID:             sessionID,
		Username:       username,
		Filename:       header.Filename,
		TemplateObject: objectName,
		DocumentType:   docType,
		Document:       *doc,
		Placeholders:   index,
		FilledValues:   model.Values{},
		CurrentIndex:   currentIndex,
		Status:         model.StatusActive,
		CreatedAt:      time.Now(),
	}
	progress := fill.ComputeProgress(index, session.FilledValues)
	message := h.assistant.Greeting(ctx, docType, len(index))
	if currentIndex >= 0 {
		message += "\n\n" + h.assistant.Question(ctx, docType, &index[currentIndex], progress)
	}
	session.AppendTurn(model.RoleAssistant, message)

	if err := h.store.Save(ctx, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	logger.Info(ctx, "template uploaded",
		"session_id", sessionID,
		"filename", header.Filename,
		"document_type", docType,
		"placeholders", len(index),
	)

	c.JSON(http.StatusOK, gin.H{
		"session_id":    sessionID,
		"filename":      header.Filename,
		"document_type": docType,
		"placeholders":  index,
		"progress":      progress,
		"message":       message,
	})
}

// Preview returns the highlighted HTML rendering of the session's document.
func (h *DocumentHandler) Preview(c *gin.Context) {
	session := h.loadSession(c, c.Query("session_id"))
	if session == nil {
		return
	}

	html := render.Preview(&session.Document, session.Placeholders, session.FilledValues, session.CurrentIndex)
	progress := fill.ComputeProgress(session.Placeholders, session.FilledValues)

	c.JSON(http.StatusOK, gin.H{
		"html":     html,
		"progress": progress,
	})
}

type CompleteRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Complete composes the final document, stores it and returns a time-limited
// download link. Refused while any field is unfilled.
func (h *DocumentHandler) Complete(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	session := h.loadSession(c, req.SessionID)
	if session == nil {
		return
	}
	ctx := c.Request.Context()

	if _, err := render.Compose(&session.Document, session.Placeholders, session.FilledValues); err != nil {
		var incomplete *render.IncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Some fields are still unfilled",
				"missing_fields": incomplete.Missing,
				"missing_total":  incomplete.Total,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compose document"})
		return
	}

	template, err := h.minioService.GetObject(ctx, session.TemplateObject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load template: " + err.Error()})
		return
	}

	finalDoc, err := service.RenderDocx(template, session.Placeholders, session.FilledValues)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document: " + err.Error()})
		return
	}

	completedName := "completed_" + session.Filename
	objectName := service.CompletedObjectName(session.Username, session.ID, completedName)
	if err := h.minioService.UploadDocx(ctx, objectName, finalDoc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document: " + err.Error()})
		return
	}

	downloadURL, err := h.minioService.GetPresignedURL(ctx, objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download link: " + err.Error()})
		return
	}

	session.Status = model.StatusCompleted
	if err := h.store.Save(ctx, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	logger.Info(ctx, "document composed",
		"session_id", session.ID,
		"object", objectName,
	)

	c.JSON(http.StatusOK, gin.H{
		"download_url": downloadURL,
		"filename":     completedName,
		"message":      h.assistant.CompletionMessage(ctx, session.DocumentType),
	})
}

// History returns the session's conversation transcript, oldest first, so a
// reconnecting client can restore the chat view.
func (h *DocumentHandler) History(c *gin.Context) {
	session := h.loadSession(c, c.Query("session_id"))
	if session == nil {
		return
	}

	turns := session.History
	if turns == nil {
		turns = []model.ChatTurn{}
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"history":    turns,
		"progress":   fill.ComputeProgress(session.Placeholders, session.FilledValues),
	})
}

// List returns the current user's sessions, newest first.
func (h *DocumentHandler) List(c *gin.Context) {
	username := middleware.GetUsername(c)

	summaries, err := h.store.ListByUser(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}
	if summaries == nil {
		summaries = []model.SessionSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"sessions": summaries})
}

type ResetRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Reset clears every answer and restarts the conversation at the first
// field. The uploaded template and detected fields are kept.
func (h *DocumentHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	session := h.loadSession(c, req.SessionID)
	if session == nil {
		return
	}
	ctx := c.Request.Context()

	session.FilledValues = model.Values{}
	session.Status = model.StatusActive
	session.CurrentIndex = -1
	if len(session.Placeholders) > 0 {
		session.CurrentIndex = 0
	}
	session.History = nil

	progress := fill.ComputeProgress(session.Placeholders, session.FilledValues)
	message := "Starting over. All answers have been cleared."
	if session.CurrentIndex >= 0 {
		message += "\n\n" + h.assistant.Question(ctx, session.DocumentType,
			&session.Placeholders[session.CurrentIndex], progress)
	}
	session.AppendTurn(model.RoleAssistant, message)

	if err := h.store.Save(ctx, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"progress":   progress,
		"message":    message,
	})
}
