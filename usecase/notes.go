package usecase

import (
	"context"
	"time"

	"main/model"
	"main/repository"
)

// NotesService fronts the notes repository for the HTTP layer.
type NotesService struct {
	NotesRepo *repository.NotesRepo
}

func (s *NotesService) GetNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return s.NotesRepo.List(ctx, userID)
}

func (s *NotesService) AddNote(ctx context.Context, userID string, note *model.Note) (*model.Note, error) {
	return s.NotesRepo.Add(ctx, userID, note)
}

func (s *NotesService) UpdateNote(ctx context.Context, userID string, note *model.Note) error {
	return s.NotesRepo.Update(ctx, userID, note)
}

func (s *NotesService) ToggleNoteStatus(ctx context.Context, userID, noteID string) (*model.Note, error) {
	return s.NotesRepo.ToggleStatus(ctx, userID, noteID)
}

func (s *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	return s.NotesRepo.Delete(ctx, userID, noteID)
}

func (s *NotesService) GetNotesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*model.Note, error) {
	return s.NotesRepo.RangeQuery(ctx, userID, start, end)
}
