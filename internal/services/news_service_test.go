package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
)

func newNewsService(env *testEnv) NewsService {
	return NewNewsService(env.store, env.resolver, env.publisher, env.logger, env.validator)
}

func TestNewsService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := newNewsService(env)

	now := time.Now()
	seeded := []models.NewsArticle{
		{ID: "n1", Title: "Oldest", Content: "c", Author: "A", Date: now.Add(-2 * time.Hour), Category: models.NewsGeneral},
		{ID: "n2", Title: "Newest", Content: "c", Author: "A", Date: now, Category: models.NewsEvents},
		{ID: "n3", Title: "Middle", Content: "c", Author: "A", Date: now.Add(-time.Hour), Category: models.NewsEvents},
	}
	if err := store.WriteAll(ctx, env.store, store.KeyNewsArticles, seeded); err != nil {
		t.Fatalf("Failed to seed articles: %v", err)
	}

	t.Run("Sorted_Newest_First", func(t *testing.T) {
		articles, err := service.List(ctx, "")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(articles) != 3 {
			t.Fatalf("Expected 3 articles, got %d", len(articles))
		}
		if articles[0].ID != "n2" || articles[2].ID != "n1" {
			t.Errorf("Unexpected order: %s %s %s", articles[0].ID, articles[1].ID, articles[2].ID)
		}
	})

	t.Run("Filtered_By_Category", func(t *testing.T) {
		articles, err := service.List(ctx, models.NewsEvents)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(articles) != 2 {
			t.Fatalf("Expected 2 event articles, got %d", len(articles))
		}
		for _, a := range articles {
			if a.Category != models.NewsEvents {
				t.Errorf("Unexpected category %s", a.Category)
			}
		}
	})

	t.Run("Invalid_Category_Is_Rejected", func(t *testing.T) {
		if _, err := service.List(ctx, models.NewsCategory("gossip")); err == nil {
			t.Fatal("Expected validation error")
		}
	})
}

func TestNewsService_CRUD(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := newNewsService(env)
	teacher := env.seedUser(t, "t1", "teacher@example.com", models.RoleTeacher)
	env.seedUser(t, "s1", "student@example.com", models.RoleStudent)

	t.Run("Student_Cannot_Publish", func(t *testing.T) {
		_, err := service.Create(ctx, "s1", &CreateNewsRequest{
			Title:    "Nope",
			Content:  "Body",
			Category: models.NewsGeneral,
		})
		if !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})

	article, err := service.Create(ctx, "t1", &CreateNewsRequest{
		Title:    "Sports day",
		Summary:  "Annual sports day",
		Content:  "Details inside",
		Category: models.NewsEvents,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.Author != teacher.FullName() {
		t.Errorf("Author = %s, want %s", article.Author, teacher.FullName())
	}

	t.Run("Update_Patches_Set_Fields", func(t *testing.T) {
		title := "Sports day moved"
		updated, err := service.Update(ctx, "t1", article.ID, &UpdateNewsRequest{Title: &title})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Title != title {
			t.Errorf("Title = %s", updated.Title)
		}
		if updated.Content != "Details inside" {
			t.Errorf("Content changed: %s", updated.Content)
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		got, err := service.GetByID(ctx, article.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.ID != article.ID {
			t.Errorf("ID = %s", got.ID)
		}

		if _, err := service.GetByID(ctx, "missing"); !errors.Is(err, ErrArticleNotFound) {
			t.Fatalf("Expected ErrArticleNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := service.Delete(ctx, "t1", article.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := service.Delete(ctx, "t1", article.ID); !errors.Is(err, ErrArticleNotFound) {
			t.Fatalf("Expected ErrArticleNotFound, got %v", err)
		}
	})
}
