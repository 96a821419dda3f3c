package handler

import (
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notes, err := notesService.GetNotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load notes")
		return
	}

	utils.Success(c, notes)
}

func AddNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var request dto.NoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	request.NormalizeDates()

	note := noteFromRequest("", &request)
	added, err := notesService.AddNote(c.Request.Context(), userID, note)
	if err != nil {
		respondError(c, err, "Failed to add note")
		return
	}

	utils.Created(c, added)
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	noteID := c.Param("id")
	var request dto.NoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	request.NormalizeDates()

	note := noteFromRequest(noteID, &request)
	if err := notesService.UpdateNote(c.Request.Context(), userID, note); err != nil {
		respondError(c, err, "Failed to update note")
		return
	}

	utils.Success(c, note)
}

func ToggleNoteStatusHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	noteID := c.Param("id")
	if noteID == "" {
		utils.BadRequest(c, "Invalid request", "ID is required")
		return
	}

	updated, err := notesService.ToggleNoteStatus(c.Request.Context(), userID, noteID)
	if err != nil {
		respondError(c, err, "Failed to toggle note status")
		return
	}

	utils.Success(c, updated)
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	noteID := c.Param("id")
	if noteID == "" {
		utils.BadRequest(c, "Invalid request", "ID is required")
		return
	}

	if err := notesService.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
		respondError(c, err, "Failed to delete note")
		return
	}

	utils.NoContent(c)
}

func noteFromRequest(id string, request *dto.NoteRequest) *model.Note {
	return &model.Note{
		ID:          id,
		Title:       request.Title,
		Description: request.Description,
		IsCompleted: request.IsCompleted,
		DueDate:     request.DueDate,
		Priority:    request.Priority,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
		AudioURL:    request.AudioURL,
	}
}
