package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"main/model"
	"main/store"
	"main/utils"
)

// NotesRepo persists notes at users/{accountId}/notes/{noteId}.
type NotesRepo struct {
	store     store.Gateway
	audioRoot string
}

// NewNotesRepo returns a notes repository. audioRoot is the local directory
// holding uploaded audio attachments, used for best-effort cleanup on
// delete.
func NewNotesRepo(gateway store.Gateway, audioRoot string) *NotesRepo {
	return &NotesRepo{store: gateway, audioRoot: audioRoot}
}

// List returns all notes for a user. Missing fields in partially-written
// documents fall back to safe defaults.
func (r *NotesRepo) List(ctx context.Context, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}

	docs, err := r.store.Query(ctx, store.Notes(userID))
	if err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, utils.StorageError("failed to load notes", err)
	}

	notes := make([]*model.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, docToNote(doc))
	}
	return notes, nil
}

// Add creates a note and returns it as re-read from the store, so the caller
// sees the assigned id and any store-side defaulting.
func (r *NotesRepo) Add(ctx context.Context, userID string, note *model.Note) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}
	if note == nil || note.Title == "" {
		utils.TrackError("database", "invalid_note_data")
		return nil, utils.InvalidArgument("note title is required")
	}

	fields := map[string]interface{}{
		"title":        note.Title,
		"description":  note.Description,
		"is_completed": note.IsCompleted,
		"priority":     note.Priority,
		"created_at":   note.CreatedAt.UTC(),
		"updated_at":   note.UpdatedAt.UTC(),
	}
	if note.DueDate != nil {
		fields["due_date"] = note.DueDate.UTC()
	}
	if note.AudioURL != "" {
		fields["audio_url"] = note.AudioURL
	}

	id, err := r.store.Add(ctx, store.Notes(userID), fields)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, utils.StorageError("failed to add note", err)
	}

	doc, err := r.store.Get(ctx, store.Notes(userID), id)
	if err != nil {
		utils.TrackError("database", "note_readback_failed")
		return nil, utils.StorageError("failed to read back added note", err)
	}
	return docToNote(doc), nil
}

// Update performs a full overwrite of the addressed note. Fields absent from
// note are cleared, not preserved.
func (r *NotesRepo) Update(ctx context.Context, userID string, note *model.Note) error {
	timer := utils.TrackDBOperation("replace", "notes")
	defer timer.ObserveDuration()

	if userID == "" {
		return utils.InvalidArgument("user ID is required")
	}
	if note == nil || note.ID == "" {
		return utils.InvalidArgument("note ID is required")
	}
	if note.Title == "" {
		return utils.InvalidArgument("note title is required")
	}

	fields := map[string]interface{}{
		"title":        note.Title,
		"description":  note.Description,
		"is_completed": note.IsCompleted,
		"priority":     note.Priority,
		"created_at":   note.CreatedAt.UTC(),
		"updated_at":   note.UpdatedAt.UTC(),
	}
	if note.DueDate != nil {
		fields["due_date"] = note.DueDate.UTC()
	}
	if note.AudioURL != "" {
		fields["audio_url"] = note.AudioURL
	}

	if err := r.store.SetOverwrite(ctx, store.Notes(userID), note.ID, fields); err != nil {
		utils.TrackError("database", "note_update_failed")
		return utils.StorageError("failed to update note", err)
	}
	return nil
}

// ToggleStatus flips the note's completion flag based on a fresh read taken
// immediately before the write. Concurrent togglers may race; the final
// state equals either a single- or a double-toggle outcome.
func (r *NotesRepo) ToggleStatus(ctx context.Context, userID, noteID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}
	if noteID == "" {
		return nil, utils.InvalidArgument("note ID is required")
	}

	doc, err := r.store.Get(ctx, store.Notes(userID), noteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.TrackError("database", "note_not_found")
			return nil, utils.InvalidArgument("note not found")
		}
		return nil, utils.StorageError("failed to load note", err)
	}

	fields := map[string]interface{}{
		"is_completed": !boolField(doc, "is_completed"),
		"updated_at":   time.Now().UTC(),
	}
	if err := r.store.Update(ctx, store.Notes(userID), noteID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.TrackError("database", "note_not_found")
			return nil, utils.InvalidArgument("note not found")
		}
		utils.TrackError("database", "note_toggle_failed")
		return nil, utils.StorageError("failed to toggle note status", err)
	}

	doc, err = r.store.Get(ctx, store.Notes(userID), noteID)
	if err != nil {
		return nil, utils.StorageError("failed to read back toggled note", err)
	}
	return docToNote(doc), nil
}

// Delete removes the note document. If the note references an audio
// attachment, the local file is removed first, best-effort: a missing file
// is not an error, and the document is deleted regardless.
func (r *NotesRepo) Delete(ctx context.Context, userID, noteID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	if userID == "" {
		return utils.InvalidArgument("user ID is required")
	}
	if noteID == "" {
		return utils.InvalidArgument("note ID is required")
	}

	if doc, err := r.store.Get(ctx, store.Notes(userID), noteID); err == nil {
		if audioURL := stringField(doc, "audio_url"); audioURL != "" {
			r.removeAudioFile(audioURL)
		}
	}

	if err := r.store.Delete(ctx, store.Notes(userID), noteID); err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return utils.StorageError("failed to delete note", err)
	}
	return nil
}

// RangeQuery returns the notes whose dueDate falls within [start, end]
// inclusive, in UTC. Notes without a due date never match.
func (r *NotesRepo) RangeQuery(ctx context.Context, userID string, start, end time.Time) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}

	docs, err := r.store.QueryTimeRange(ctx, store.Notes(userID), "due_date", start.UTC(), end.UTC())
	if err != nil {
		utils.TrackError("database", "note_range_query_failed")
		return nil, utils.StorageError("failed to load notes in range", err)
	}

	notes := make([]*model.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, docToNote(doc))
	}
	return notes, nil
}

func (r *NotesRepo) removeAudioFile(audioURL string) {
	name := strings.TrimPrefix(audioURL, "/audio/")
	path := filepath.Join(r.audioRoot, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove audio file %s: %v", path, err)
	}
}

func docToNote(doc store.Document) *model.Note {
	note := &model.Note{
		ID:          doc.ID,
		Title:       stringField(doc, "title"),
		Description: stringField(doc, "description"),
		IsCompleted: boolField(doc, "is_completed"),
		DueDate:     timePtrField(doc, "due_date"),
		Priority:    stringField(doc, "priority"),
		CreatedAt:   timeField(doc, "created_at"),
		UpdatedAt:   timeField(doc, "updated_at"),
		AudioURL:    stringField(doc, "audio_url"),
	}
	if note.Priority == "" {
		note.Priority = model.PriorityMedium
	}
	return note
}
