package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupercentage/platform-service/internal/models"
)

func newResourceService(env *testEnv) ResourceService {
	return NewResourceService(env.store, env.resolver, env.publisher, env.logger, env.validator)
}

func TestResourceService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := newResourceService(env)
	teacher := env.seedUser(t, "t1", "teacher@example.com", models.RoleTeacher)
	student := env.seedUser(t, "s1", "student@example.com", models.RoleStudent)

	createReq := &CreateResourceRequest{
		Title:   "Algebra workbook",
		Type:    models.ResourcePDF,
		URL:     "https://example.com/algebra.pdf",
		Subject: "math",
	}

	t.Run("Student_Cannot_Create", func(t *testing.T) {
		if _, err := service.Create(ctx, "s1", createReq); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})

	resource, err := service.Create(ctx, "t1", createReq)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resource.AuthorName != teacher.FullName() || resource.AuthorEmail != teacher.Email {
		t.Errorf("Unexpected author fields: %+v", resource)
	}
	if resource.Responses == nil {
		t.Error("Expected responses initialized to empty slice")
	}

	t.Run("AddResponse_Records_Student_Name", func(t *testing.T) {
		updated, err := service.AddResponse(ctx, "s1", resource.ID, &ResourceResponseRequest{Response: "Very helpful"})
		if err != nil {
			t.Fatalf("AddResponse failed: %v", err)
		}
		if len(updated.Responses) != 1 || updated.Responses[0].StudentName != student.FullName() {
			t.Fatalf("Unexpected responses: %+v", updated.Responses)
		}
	})

	t.Run("IncrementDownloads", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if _, err := service.IncrementDownloads(ctx, resource.ID); err != nil {
				t.Fatalf("IncrementDownloads failed: %v", err)
			}
		}

		resources, _ := service.List(ctx)
		if resources[0].Downloads != 3 {
			t.Errorf("Downloads = %d, want 3", resources[0].Downloads)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := service.Delete(ctx, "s1", resource.ID); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
		if err := service.Delete(ctx, "t1", resource.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := service.IncrementDownloads(ctx, resource.ID); !errors.Is(err, ErrResourceNotFound) {
			t.Fatalf("Expected ErrResourceNotFound, got %v", err)
		}
	})
}
