package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/middleware"
)

// noteHandler handles HTTP requests related to notes. Every route requires an authenticated user.
type noteHandler struct {
	noteService portssvc.NoteSvcFacade
}

// newNoteHandler creates a new noteHandler.
func newNoteHandler(ns portssvc.NoteSvcFacade) *noteHandler {
	return &noteHandler{
		noteService: ns,
	}
}

// registerNoteRoutes registers routes related to notes.
func registerNoteRoutes(rg *gin.RouterGroup, noteService portssvc.NoteSvcFacade) {
	h := newNoteHandler(noteService)

	notes := rg.Group("/notes")
	{
		notes.POST("/create", h.createNote)
		notes.GET("/allNotes", h.listNotes)
		notes.GET("/:noteId", h.getNote)
		notes.PUT("/:noteId", h.updateNote)
		notes.DELETE("/:noteId", h.deleteNote)
	}
}

// owner builds the embedded user of note responses from the access token claims.
func owner(c *gin.Context) (dto.UserResponse, bool) {
	p, ok := middleware.GetPayloadFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Access token payload not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return dto.UserResponse{}, false
	}
	return dto.UserResponse{UserID: p.UserID, Username: p.Username, Email: p.Email}, true
}

// noteIDParam returns the :noteId path parameter; malformed IDs are reported as missing notes.
func noteIDParam(c *gin.Context) (string, bool) {
	id := c.Param("noteId")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, apperrors.ErrNoteNotFound, "find note")
		return "", false
	}
	return id, true
}

// createNote godoc
// @Summary Create a note
// @Tags notes
// @Accept  json
// @Produce  json
// @Param   note body dto.CreateNoteRequest true "Note"
// @Success 200 {object} dto.DataResponse[dto.NoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/create [post]
func (h *noteHandler) createNote(c *gin.Context) {
	user, ok := owner(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), user.UserID, req)
	if err != nil {
		respondError(c, err, "create note")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.NoteResponse]{Data: dto.ToNoteResponse(note, user)})
}

// listNotes godoc
// @Summary List the caller's notes
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags notes
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(100) default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.DataResponse[dto.ListNotesResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/allNotes [get]
func (h *noteHandler) listNotes(c *gin.Context) {
	user, ok := owner(c)
	if !ok {
		return
	}
	var params dto.ListNotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.noteService.ListNotes(c.Request.Context(), user.UserID, params)
	if err != nil {
		respondError(c, err, "list notes")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Listed notes", slog.Int("count", len(page.Notes)))
	c.JSON(http.StatusOK, dto.DataResponse[dto.ListNotesResponse]{Data: dto.ToListNotesResponse(page, user)})
}

// getNote godoc
// @Summary Get a note
// @Tags notes
// @Produce  json
// @Param   noteId path string true "Note ID"
// @Success 200 {object} dto.DataResponse[dto.NoteResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/{noteId} [get]
func (h *noteHandler) getNote(c *gin.Context) {
	user, ok := owner(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), user.UserID, noteID)
	if err != nil {
		respondError(c, err, "get note")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.NoteResponse]{Data: dto.ToNoteResponse(note, user)})
}

// updateNote godoc
// @Summary Replace a note's fields
// @Tags notes
// @Accept  json
// @Produce  json
// @Param   noteId path string true "Note ID"
// @Param   note body dto.UpdateNoteRequest true "Note"
// @Success 200 {object} dto.DataResponse[dto.NoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/{noteId} [put]
func (h *noteHandler) updateNote(c *gin.Context) {
	user, ok := owner(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), user.UserID, noteID, req)
	if err != nil {
		respondError(c, err, "update note")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.NoteResponse]{Data: dto.ToNoteResponse(note, user)})
}

// deleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Param   noteId path string true "Note ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/{noteId} [delete]
func (h *noteHandler) deleteNote(c *gin.Context) {
	user, ok := owner(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), user.UserID, noteID); err != nil {
		respondError(c, err, "delete note")
		return
	}

	c.Status(http.StatusNoContent)
}
