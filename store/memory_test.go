package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("AddAssignsID", func(t *testing.T) {
		g := NewMemoryGateway()
		id, err := g.Add(ctx, Notes("user-1"), map[string]interface{}{"title": "a"})
		if err != nil {
			t.Fatal("add failed", err)
		}
		if id == "" {
			t.Fatal("no id assigned")
		}
		doc, err := g.Get(ctx, Notes("user-1"), id)
		if err != nil {
			t.Fatal("get failed", err)
		}
		if doc.Fields["title"] != "a" {
			t.Errorf("title = %v, want a", doc.Fields["title"])
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		g := NewMemoryGateway()
		if _, err := g.Get(ctx, Users(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("OwnersAreIsolated", func(t *testing.T) {
		g := NewMemoryGateway()
		if _, err := g.Add(ctx, Notes("user-1"), map[string]interface{}{"title": "mine"}); err != nil {
			t.Fatal("add failed", err)
		}
		docs, err := g.Query(ctx, Notes("user-2"))
		if err != nil {
			t.Fatal("query failed", err)
		}
		if len(docs) != 0 {
			t.Errorf("docs = %d, want 0 for another owner", len(docs))
		}
	})

	t.Run("MergeKeepsOtherFields", func(t *testing.T) {
		g := NewMemoryGateway()
		if err := g.SetOverwrite(ctx, Users(), "u1", map[string]interface{}{"email": "a@b.c", "display_name": "A"}); err != nil {
			t.Fatal("set failed", err)
		}
		if err := g.SetMerge(ctx, Users(), "u1", map[string]interface{}{"display_name": "B"}); err != nil {
			t.Fatal("merge failed", err)
		}
		doc, err := g.Get(ctx, Users(), "u1")
		if err != nil {
			t.Fatal("get failed", err)
		}
		if doc.Fields["email"] != "a@b.c" {
			t.Errorf("email = %v, want preserved", doc.Fields["email"])
		}
		if doc.Fields["display_name"] != "B" {
			t.Errorf("display_name = %v, want B", doc.Fields["display_name"])
		}
	})

	t.Run("OverwriteDropsOtherFields", func(t *testing.T) {
		g := NewMemoryGateway()
		if err := g.SetOverwrite(ctx, Users(), "u1", map[string]interface{}{"email": "a@b.c", "display_name": "A"}); err != nil {
			t.Fatal("set failed", err)
		}
		if err := g.SetOverwrite(ctx, Users(), "u1", map[string]interface{}{"email": "a@b.c"}); err != nil {
			t.Fatal("overwrite failed", err)
		}
		doc, err := g.Get(ctx, Users(), "u1")
		if err != nil {
			t.Fatal("get failed", err)
		}
		if _, ok := doc.Fields["display_name"]; ok {
			t.Error("display_name survived an overwrite")
		}
	})

	t.Run("UpdateUnsetsNilFields", func(t *testing.T) {
		g := NewMemoryGateway()
		if err := g.SetOverwrite(ctx, Users(), "u1", map[string]interface{}{"email": "a@b.c", "flag": true}); err != nil {
			t.Fatal("set failed", err)
		}
		if err := g.Update(ctx, Users(), "u1", map[string]interface{}{"flag": nil, "email": "b@b.c"}); err != nil {
			t.Fatal("update failed", err)
		}
		doc, err := g.Get(ctx, Users(), "u1")
		if err != nil {
			t.Fatal("get failed", err)
		}
		if _, ok := doc.Fields["flag"]; ok {
			t.Error("nil-valued field was not unset")
		}
		if doc.Fields["email"] != "b@b.c" {
			t.Errorf("email = %v, want b@b.c", doc.Fields["email"])
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		g := NewMemoryGateway()
		err := g.Update(ctx, Users(), "nope", map[string]interface{}{"x": 1})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteMissingIsNoError", func(t *testing.T) {
		g := NewMemoryGateway()
		if err := g.Delete(ctx, Users(), "nope"); err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	})

	t.Run("QueryFieldMatchesEquality", func(t *testing.T) {
		g := NewMemoryGateway()
		if err := g.SetOverwrite(ctx, Credentials(), "c1", map[string]interface{}{"email": "a@b.c"}); err != nil {
			t.Fatal("set failed", err)
		}
		if err := g.SetOverwrite(ctx, Credentials(), "c2", map[string]interface{}{"email": "x@y.z"}); err != nil {
			t.Fatal("set failed", err)
		}
		docs, err := g.QueryField(ctx, Credentials(), "email", "a@b.c")
		if err != nil {
			t.Fatal("query failed", err)
		}
		if len(docs) != 1 || docs[0].ID != "c1" {
			t.Errorf("docs = %v, want only c1", docs)
		}
	})

	t.Run("QueryTimeRangeSkipsMissingField", func(t *testing.T) {
		g := NewMemoryGateway()
		in := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		out := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		if err := g.SetOverwrite(ctx, Notes("u1"), "n1", map[string]interface{}{"due_date": in}); err != nil {
			t.Fatal("set failed", err)
		}
		if err := g.SetOverwrite(ctx, Notes("u1"), "n2", map[string]interface{}{"due_date": out}); err != nil {
			t.Fatal("set failed", err)
		}
		if err := g.SetOverwrite(ctx, Notes("u1"), "n3", map[string]interface{}{"title": "undated"}); err != nil {
			t.Fatal("set failed", err)
		}

		docs, err := g.QueryTimeRange(ctx, Notes("u1"), "due_date",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC))
		if err != nil {
			t.Fatal("range query failed", err)
		}
		if len(docs) != 1 || docs[0].ID != "n1" {
			t.Errorf("docs = %v, want only n1", docs)
		}
	})

	t.Run("DocumentsAreCopies", func(t *testing.T) {
		g := NewMemoryGateway()
		if err := g.SetOverwrite(ctx, Users(), "u1", map[string]interface{}{"email": "a@b.c"}); err != nil {
			t.Fatal("set failed", err)
		}
		doc, err := g.Get(ctx, Users(), "u1")
		if err != nil {
			t.Fatal("get failed", err)
		}
		doc.Fields["email"] = "mutated"

		fresh, err := g.Get(ctx, Users(), "u1")
		if err != nil {
			t.Fatal("get failed", err)
		}
		if fresh.Fields["email"] != "a@b.c" {
			t.Error("mutating a returned document leaked into the store")
		}
	})
}
