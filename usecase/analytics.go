package usecase

import (
	"context"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

// AnalyticsService derives priority-bucketed task summaries from the notes
// repository's due-date range query. It adds a pure aggregation step with no
// additional I/O.
type AnalyticsService struct {
	NotesRepo *repository.NotesRepo
}

// GetAnalyticsForMonth returns the priority counts and full note list for
// the month containing the given date. The window spans the first day at
// 00:00 UTC up to the last tick of the month, so boundary notes are neither
// double-counted nor missed.
func (s *AnalyticsService) GetAnalyticsForMonth(ctx context.Context, userID string, month time.Time) (*model.Analytics, error) {
	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}

	startOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	notes, err := s.NotesRepo.RangeQuery(ctx, userID, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	analytics := &model.Analytics{
		UserID: userID,
		Date:   startOfMonth,
		Tasks:  notes,
	}
	for _, note := range notes {
		switch {
		case note.HasPriority(model.PriorityHigh):
			analytics.HighPriorityCount++
		case note.HasPriority(model.PriorityMedium):
			analytics.MediumPriorityCount++
		case note.HasPriority(model.PriorityLow):
			analytics.LowPriorityCount++
		}
	}
	return analytics, nil
}

// GetTasksForDate returns the notes due on the given day, from 00:00 UTC up
// to one tick before the next day.
func (s *AnalyticsService) GetTasksForDate(ctx context.Context, userID string, date time.Time) ([]*model.Note, error) {
	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return s.NotesRepo.RangeQuery(ctx, userID, startOfDay, endOfDay)
}
