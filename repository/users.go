package repository

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/store"
	"main/utils"
)

// UserRepo persists local account records at users/{accountId}.
type UserRepo struct {
	store store.Gateway
}

func NewUserRepo(gateway store.Gateway) *UserRepo {
	return &UserRepo{store: gateway}
}

// Get returns the account stored under userID.
func (r *UserRepo) Get(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, utils.InvalidArgument("user ID is required")
	}

	doc, err := r.store.Get(ctx, store.Users(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.TrackError("database", "user_not_found")
			return nil, utils.NotFoundError("user not found")
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, utils.StorageError("failed to load user", err)
	}

	return docToUser(doc), nil
}

// Save merge-upserts the account's profile fields. The stored updatedAt is
// always stamped with the current time; the caller's value is not trusted.
// createdAt is written once, on first save.
func (r *UserRepo) Save(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("merge", "users")
	defer timer.ObserveDuration()

	if user == nil || user.ID == "" {
		return utils.InvalidArgument("user ID is required")
	}

	createdAt := user.CreatedAt.UTC()
	if existing, err := r.store.Get(ctx, store.Users(), user.ID); err == nil {
		if stored := timeField(existing, "created_at"); !stored.IsZero() {
			createdAt = stored
		}
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	fields := map[string]interface{}{
		"email":        user.Email,
		"created_at":   createdAt,
		"updated_at":   time.Now().UTC(),
		"display_name": user.DisplayName,
		"photo_url":    user.PhotoURL,
	}

	if err := r.store.SetMerge(ctx, store.Users(), user.ID, fields); err != nil {
		utils.TrackError("database", "user_save_failed")
		return utils.StorageError("failed to save user", err)
	}
	return nil
}

// UpdateMetadata partial-updates the account's timestamps. A nil
// lastPasswordChange clears the stored field rather than leaving it
// untouched.
func (r *UserRepo) UpdateMetadata(ctx context.Context, userID string, updatedAt time.Time, lastPasswordChange *time.Time) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	if userID == "" {
		return utils.InvalidArgument("user ID is required")
	}

	fields := map[string]interface{}{
		"updated_at": updatedAt.UTC(),
	}
	if lastPasswordChange != nil {
		fields["last_password_change"] = lastPasswordChange.UTC()
	} else {
		fields["last_password_change"] = nil
	}

	if err := r.store.Update(ctx, store.Users(), userID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.TrackError("database", "user_not_found")
			return utils.NotFoundError("user not found")
		}
		utils.TrackError("database", "user_metadata_update_failed")
		return utils.StorageError("failed to update user metadata", err)
	}
	return nil
}

func docToUser(doc store.Document) *model.User {
	return &model.User{
		ID:                 doc.ID,
		Email:              stringField(doc, "email"),
		DisplayName:        stringField(doc, "display_name"),
		PhotoURL:           stringField(doc, "photo_url"),
		CreatedAt:          timeField(doc, "created_at"),
		UpdatedAt:          timeField(doc, "updated_at"),
		LastPasswordChange: timePtrField(doc, "last_password_change"),
	}
}
