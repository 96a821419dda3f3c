package repository

import (
	"context"
	"testing"
	"time"

	"main/model"
	"main/store"
	"main/utils"
)

func TestUserRepo(t *testing.T) {
	gateway := store.NewMemoryGateway()
	userRepo := NewUserRepo(gateway)
	ctx := context.Background()

	t.Run("SaveAndGet", func(t *testing.T) {
		user := &model.User{
			ID:          "user-1",
			Email:       "alice@example.com",
			DisplayName: "Alice",
			PhotoURL:    "https://example.com/alice.png",
		}
		if err := userRepo.Save(ctx, user); err != nil {
			t.Fatal("save user failed", err)
		}

		got, err := userRepo.Get(ctx, "user-1")
		if err != nil {
			t.Fatal("get user failed", err)
		}
		if got.Email != "alice@example.com" {
			t.Errorf("email = %q, want %q", got.Email, "alice@example.com")
		}
		if got.DisplayName != "Alice" {
			t.Errorf("displayName = %q, want %q", got.DisplayName, "Alice")
		}
		if got.CreatedAt.IsZero() {
			t.Error("createdAt was not stamped on first save")
		}
		if got.UpdatedAt.IsZero() {
			t.Error("updatedAt was not stamped")
		}
		if got.LastPasswordChange != nil {
			t.Errorf("lastPasswordChange = %v, want nil", got.LastPasswordChange)
		}
	})

	t.Run("SavePreservesCreatedAt", func(t *testing.T) {
		first, err := userRepo.Get(ctx, "user-1")
		if err != nil {
			t.Fatal("get user failed", err)
		}

		update := &model.User{
			ID:          "user-1",
			Email:       "alice@example.com",
			DisplayName: "Alice B.",
			CreatedAt:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := userRepo.Save(ctx, update); err != nil {
			t.Fatal("re-save user failed", err)
		}

		got, err := userRepo.Get(ctx, "user-1")
		if err != nil {
			t.Fatal("get user failed", err)
		}
		if !got.CreatedAt.Equal(first.CreatedAt) {
			t.Errorf("createdAt changed on re-save: %v -> %v", first.CreatedAt, got.CreatedAt)
		}
		if got.DisplayName != "Alice B." {
			t.Errorf("displayName = %q, want %q", got.DisplayName, "Alice B.")
		}
	})

	t.Run("SaveStampsUpdatedAt", func(t *testing.T) {
		before := time.Now().UTC().Add(-time.Second)
		if err := userRepo.Save(ctx, &model.User{ID: "user-1", Email: "alice@example.com"}); err != nil {
			t.Fatal("save user failed", err)
		}
		got, err := userRepo.Get(ctx, "user-1")
		if err != nil {
			t.Fatal("get user failed", err)
		}
		if got.UpdatedAt.Before(before) {
			t.Errorf("updatedAt = %v, want after %v", got.UpdatedAt, before)
		}
	})

	t.Run("UpdateMetadataSetsLastPasswordChange", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		if err := userRepo.UpdateMetadata(ctx, "user-1", now, &now); err != nil {
			t.Fatal("update metadata failed", err)
		}

		got, err := userRepo.Get(ctx, "user-1")
		if err != nil {
			t.Fatal("get user failed", err)
		}
		if got.LastPasswordChange == nil {
			t.Fatal("lastPasswordChange is nil after update")
		}
		if !got.LastPasswordChange.Equal(now) {
			t.Errorf("lastPasswordChange = %v, want %v", got.LastPasswordChange, now)
		}
	})

	t.Run("UpdateMetadataClearsLastPasswordChange", func(t *testing.T) {
		if err := userRepo.UpdateMetadata(ctx, "user-1", time.Now().UTC(), nil); err != nil {
			t.Fatal("update metadata failed", err)
		}

		got, err := userRepo.Get(ctx, "user-1")
		if err != nil {
			t.Fatal("get user failed", err)
		}
		if got.LastPasswordChange != nil {
			t.Errorf("lastPasswordChange = %v, want cleared", got.LastPasswordChange)
		}
	})

	t.Run("GetMissingUser", func(t *testing.T) {
		_, err := userRepo.Get(ctx, "no-such-user")
		if !utils.IsKind(err, utils.KindNotFound) {
			t.Errorf("err = %v, want not_found kind", err)
		}
	})

	t.Run("UpdateMetadataMissingUser", func(t *testing.T) {
		err := userRepo.UpdateMetadata(ctx, "no-such-user", time.Now().UTC(), nil)
		if !utils.IsKind(err, utils.KindNotFound) {
			t.Errorf("err = %v, want not_found kind", err)
		}
	})

	t.Run("EmptyUserID", func(t *testing.T) {
		if _, err := userRepo.Get(ctx, ""); !utils.IsKind(err, utils.KindInvalidArgument) {
			t.Errorf("get err = %v, want invalid_argument kind", err)
		}
		if err := userRepo.Save(ctx, &model.User{}); !utils.IsKind(err, utils.KindInvalidArgument) {
			t.Errorf("save err = %v, want invalid_argument kind", err)
		}
	})
}
