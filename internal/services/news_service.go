package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

type newsService struct {
	store          store.Store
	resolver       *auth.Resolver
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNewsService(s store.Store, resolver *auth.Resolver, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) NewsService {
	return &newsService{
		store:          s,
		resolver:       resolver,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

// List returns articles newest first, optionally narrowed to one category.
func (s *newsService) List(ctx context.Context, category models.NewsCategory) ([]models.NewsArticle, error) {
	if category != "" && !category.Valid() {
		return nil, NewValidationError("category", "must be a valid news category", category)
	}

	articles := store.ReadAll[models.NewsArticle](ctx, s.store, store.KeyNewsArticles)

	out := make([]models.NewsArticle, 0, len(articles))
	for i := range articles {
		if category != "" && articles[i].Category != category {
			continue
		}
		out = append(out, articles[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *newsService) GetByID(ctx context.Context, id string) (*models.NewsArticle, error) {
	articles := store.ReadAll[models.NewsArticle](ctx, s.store, store.KeyNewsArticles)
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, ErrArticleNotFound
}

func (s *newsService) Create(ctx context.Context, actorID string, req *CreateNewsRequest) (*models.NewsArticle, error) {
	s.logger.Info("Publishing article", "actor_id", actorID, "category", req.Category)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, "", "article", "create", "insufficient role permissions")
	}

	author, err := findUser(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}

	article := models.NewsArticle{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Author:   author.FullName(),
		Date:     time.Now(),
		ImageURL: req.ImageURL,
		Category: req.Category,
	}

	articles := store.ReadAll[models.NewsArticle](ctx, s.store, store.KeyNewsArticles)
	articles = append(articles, article)
	if err := store.WriteAll(ctx, s.store, store.KeyNewsArticles, articles); err != nil {
		return nil, fmt.Errorf("failed to save articles: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.EventNewsPublished, map[string]interface{}{
		"article_id": article.ID,
		"title":      article.Title,
		"category":   article.Category,
	})); err != nil {
		s.logger.Error("Failed to publish article event", "error", err, "article_id", article.ID)
	}

	s.logger.Info("Article published", "article_id", article.ID, "title", article.Title)
	return &article, nil
}

func (s *newsService) Update(ctx context.Context, actorID, id string, req *UpdateNewsRequest) (*models.NewsArticle, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, id, "article", "update", "insufficient role permissions")
	}

	articles := store.ReadAll[models.NewsArticle](ctx, s.store, store.KeyNewsArticles)
	for i := range articles {
		if articles[i].ID != id {
			continue
		}

		if req.Title != nil {
			articles[i].Title = *req.Title
		}
		if req.Summary != nil {
			articles[i].Summary = *req.Summary
		}
		if req.Content != nil {
			articles[i].Content = *req.Content
		}
		if req.ImageURL != nil {
			articles[i].ImageURL = req.ImageURL
		}
		if req.Category != nil {
			articles[i].Category = *req.Category
		}

		if err := store.WriteAll(ctx, s.store, store.KeyNewsArticles, articles); err != nil {
			return nil, fmt.Errorf("failed to save articles: %w", err)
		}

		s.logger.Info("Article updated", "article_id", id)
		return &articles[i], nil
	}

	return nil, ErrArticleNotFound
}

func (s *newsService) Delete(ctx context.Context, actorID, id string) error {
	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return NewPermissionError(actorID, id, "article", "delete", "insufficient role permissions")
	}

	articles := store.ReadAll[models.NewsArticle](ctx, s.store, store.KeyNewsArticles)
	filtered := articles[:0]
	found := false
	for i := range articles {
		if articles[i].ID == id {
			found = true
			continue
		}
		filtered = append(filtered, articles[i])
	}
	if !found {
		return ErrArticleNotFound
	}

	if err := store.WriteAll(ctx, s.store, store.KeyNewsArticles, filtered); err != nil {
		return fmt.Errorf("failed to save articles: %w", err)
	}

	s.logger.Info("Article deleted", "article_id", id, "actor_id", actorID)
	return nil
}
