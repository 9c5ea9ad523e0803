package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

type resourceService struct {
	store          store.Store
	resolver       *auth.Resolver
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewResourceService(s store.Store, resolver *auth.Resolver, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ResourceService {
	return &resourceService{
		store:          s,
		resolver:       resolver,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

func (s *resourceService) List(ctx context.Context) ([]models.Resource, error) {
	return store.ReadAll[models.Resource](ctx, s.store, store.KeyResources), nil
}

func (s *resourceService) Create(ctx context.Context, actorID string, req *CreateResourceRequest) (*models.Resource, error) {
	s.logger.Info("Adding resource", "actor_id", actorID, "type", req.Type)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, "", "resource", "create", "insufficient role permissions")
	}

	author, err := findUser(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}

	resource := models.Resource{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		Subject:     req.Subject,
		GradeLevel:  req.GradeLevel,
		AuthorName:  author.FullName(),
		AuthorEmail: author.Email,
		DateAdded:   time.Now(),
		Responses:   []models.ResourceResponse{},
	}

	resources := store.ReadAll[models.Resource](ctx, s.store, store.KeyResources)
	resources = append(resources, resource)
	if err := store.WriteAll(ctx, s.store, store.KeyResources, resources); err != nil {
		return nil, fmt.Errorf("failed to save resources: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.EventResourceAdded, map[string]interface{}{
		"resource_id": resource.ID,
		"title":       resource.Title,
		"type":        resource.Type,
	})); err != nil {
		s.logger.Error("Failed to publish resource event", "error", err, "resource_id", resource.ID)
	}

	s.logger.Info("Resource added", "resource_id", resource.ID, "title", resource.Title)
	return &resource, nil
}

func (s *resourceService) Delete(ctx context.Context, actorID, resourceID string) error {
	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return NewPermissionError(actorID, resourceID, "resource", "delete", "insufficient role permissions")
	}

	resources := store.ReadAll[models.Resource](ctx, s.store, store.KeyResources)
	filtered := resources[:0]
	found := false
	for i := range resources {
		if resources[i].ID == resourceID {
			found = true
			continue
		}
		filtered = append(filtered, resources[i])
	}
	if !found {
		return ErrResourceNotFound
	}

	if err := store.WriteAll(ctx, s.store, store.KeyResources, filtered); err != nil {
		return fmt.Errorf("failed to save resources: %w", err)
	}

	s.logger.Info("Resource deleted", "resource_id", resourceID, "actor_id", actorID)
	return nil
}

// AddResponse appends a student response under a resource
func (s *resourceService) AddResponse(ctx context.Context, studentID, resourceID string, req *ResourceResponseRequest) (*models.Resource, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student, err := findUser(ctx, s.store, studentID)
	if err != nil {
		return nil, err
	}

	resources := store.ReadAll[models.Resource](ctx, s.store, store.KeyResources)
	for i := range resources {
		if resources[i].ID != resourceID {
			continue
		}

		resources[i].Responses = append(resources[i].Responses, models.ResourceResponse{
			StudentName: student.FullName(),
			Response:    req.Response,
			Timestamp:   time.Now(),
		})

		if err := store.WriteAll(ctx, s.store, store.KeyResources, resources); err != nil {
			return nil, fmt.Errorf("failed to save resources: %w", err)
		}

		s.logger.Info("Resource response added", "resource_id", resourceID, "student_id", studentID)
		return &resources[i], nil
	}

	return nil, ErrResourceNotFound
}

// IncrementDownloads bumps the download counter. The counter is read-modify-
// write on the whole collection, so concurrent downloads may undercount.
func (s *resourceService) IncrementDownloads(ctx context.Context, resourceID string) (*models.Resource, error) {
	resources := store.ReadAll[models.Resource](ctx, s.store, store.KeyResources)
	for i := range resources {
		if resources[i].ID != resourceID {
			continue
		}

		resources[i].Downloads++
		if err := store.WriteAll(ctx, s.store, store.KeyResources, resources); err != nil {
			return nil, fmt.Errorf("failed to save resources: %w", err)
		}
		return &resources[i], nil
	}

	return nil, ErrResourceNotFound
}
