package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/store"
)

func newEnrollmentService(env *testEnv) EnrollmentService {
	return NewEnrollmentService(env.store, env.publisher, env.logger, env.validator)
}

func TestEnrollmentService(t *testing.T) {
	ctx := context.Background()

	t.Run("Enroll_And_List", func(t *testing.T) {
		env := newTestEnv(t)
		service := newEnrollmentService(env)

		course, err := service.Enroll(ctx, "u1", &EnrollRequest{SubjectID: "math", Title: "Mathematics"})
		if err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}
		if course.SubjectID != "math" {
			t.Errorf("SubjectID = %s", course.SubjectID)
		}

		courses, err := service.List(ctx, "u1")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(courses) != 1 {
			t.Fatalf("Expected 1 enrollment, got %d", len(courses))
		}

		published := env.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventStudentEnrolled {
			t.Fatalf("Expected enrollment event, got %+v", published)
		}
	})

	t.Run("Duplicate_Subject_Is_Rejected", func(t *testing.T) {
		env := newTestEnv(t)
		service := newEnrollmentService(env)

		if _, err := service.Enroll(ctx, "u1", &EnrollRequest{SubjectID: "math", Title: "Mathematics"}); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}
		if _, err := service.Enroll(ctx, "u1", &EnrollRequest{SubjectID: "math", Title: "Mathematics again"}); !errors.Is(err, ErrAlreadyEnrolled) {
			t.Fatalf("Expected ErrAlreadyEnrolled, got %v", err)
		}
	})

	t.Run("Lists_Are_Per_User", func(t *testing.T) {
		env := newTestEnv(t)
		service := newEnrollmentService(env)

		if _, err := service.Enroll(ctx, "u1", &EnrollRequest{SubjectID: "math", Title: "Mathematics"}); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}

		other, err := service.List(ctx, "u2")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(other) != 0 {
			t.Fatalf("Expected empty list for other user, got %d", len(other))
		}
	})

	t.Run("Guest_Falls_Back_To_Shared_Bucket", func(t *testing.T) {
		env := newTestEnv(t)
		service := newEnrollmentService(env)

		if _, err := service.Enroll(ctx, "", &EnrollRequest{SubjectID: "history", Title: "History"}); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}

		courses, err := service.List(ctx, "")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(courses) != 1 {
			t.Fatalf("Expected 1 guest enrollment, got %d", len(courses))
		}

		// The guest bucket is keyed explicitly too
		courses, _ = service.List(ctx, store.GuestUserID)
		if len(courses) != 1 {
			t.Fatalf("Expected guest bucket match, got %d", len(courses))
		}
	})

	t.Run("Unenroll", func(t *testing.T) {
		env := newTestEnv(t)
		service := newEnrollmentService(env)

		if _, err := service.Enroll(ctx, "u1", &EnrollRequest{SubjectID: "math", Title: "Mathematics"}); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}
		if err := service.Unenroll(ctx, "u1", "math"); err != nil {
			t.Fatalf("Unenroll failed: %v", err)
		}
		if err := service.Unenroll(ctx, "u1", "math"); !errors.Is(err, ErrEnrollmentNotFound) {
			t.Fatalf("Expected ErrEnrollmentNotFound, got %v", err)
		}
	})
}
