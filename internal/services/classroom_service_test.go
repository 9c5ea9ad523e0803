package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
)

func newClassroomService(env *testEnv) ClassroomService {
	return NewClassroomService(env.store, env.resolver, env.logger, env.validator)
}

func TestClassroomService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Teacher_Creates_Classroom", func(t *testing.T) {
		env := newTestEnv(t)
		service := newClassroomService(env)
		teacher := env.seedUser(t, "t1", "teacher@example.com", models.RoleTeacher)

		classroom, err := service.Create(ctx, "t1", &CreateClassroomRequest{Name: "B2 Mathematics", Grade: "B"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if classroom.TeacherID != "t1" || classroom.TeacherName != teacher.FullName() {
			t.Errorf("Unexpected owner fields: %+v", classroom)
		}
		if classroom.StudentsCount != 0 {
			t.Errorf("Expected zero student count, got %d", classroom.StudentsCount)
		}
	})

	t.Run("Student_Is_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		service := newClassroomService(env)
		env.seedUser(t, "s1", "student@example.com", models.RoleStudent)

		if _, err := service.Create(ctx, "s1", &CreateClassroomRequest{Name: "X", Grade: "A"}); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})
}

func TestClassroomService_ListForTeacher(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := newClassroomService(env)
	env.seedUser(t, "t1", "one@example.com", models.RoleTeacher)
	env.seedUser(t, "t2", "two@example.com", models.RoleTeacher)

	if _, err := service.Create(ctx, "t1", &CreateClassroomRequest{Name: "A1", Grade: "A"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.Create(ctx, "t2", &CreateClassroomRequest{Name: "B1", Grade: "B"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	own, err := service.ListForTeacher(ctx, "t1")
	if err != nil {
		t.Fatalf("ListForTeacher failed: %v", err)
	}
	if len(own) != 1 || own[0].Name != "A1" {
		t.Fatalf("Expected only t1's classroom, got %+v", own)
	}
}

func TestClassroomService_Roster(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := newClassroomService(env)
	env.seedUser(t, "t1", "owner@example.com", models.RoleTeacher)
	env.seedUser(t, "t2", "other@example.com", models.RoleTeacher)
	env.seedUser(t, "a1", "admin@example.com", models.RoleAdmin)

	classroom, err := service.Create(ctx, "t1", &CreateClassroomRequest{Name: "C3", Grade: "C"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	addReq := &AddStudentRequest{FirstName: "Nikos", LastName: "Georgiou", Email: "nikos@example.com"}

	t.Run("Non_Owner_Teacher_Cannot_Modify", func(t *testing.T) {
		if _, err := service.AddStudent(ctx, "t2", classroom.ID, addReq); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})

	t.Run("Owner_Adds_Student_And_Count_Syncs", func(t *testing.T) {
		student, err := service.AddStudent(ctx, "t1", classroom.ID, addReq)
		if err != nil {
			t.Fatalf("AddStudent failed: %v", err)
		}

		roster, err := service.ListStudents(ctx, classroom.ID)
		if err != nil {
			t.Fatalf("ListStudents failed: %v", err)
		}
		if len(roster) != 1 || roster[0].ID != student.ID {
			t.Fatalf("Unexpected roster: %+v", roster)
		}

		classrooms := store.ReadAll[models.Classroom](ctx, env.store, store.KeyClassrooms)
		if classrooms[0].StudentsCount != 1 {
			t.Errorf("StudentsCount = %d, want 1", classrooms[0].StudentsCount)
		}
	})

	t.Run("Admin_Removes_Student_And_Count_Syncs", func(t *testing.T) {
		roster, _ := service.ListStudents(ctx, classroom.ID)
		if err := service.RemoveStudent(ctx, "a1", classroom.ID, roster[0].ID); err != nil {
			t.Fatalf("RemoveStudent failed: %v", err)
		}

		classrooms := store.ReadAll[models.Classroom](ctx, env.store, store.KeyClassrooms)
		if classrooms[0].StudentsCount != 0 {
			t.Errorf("StudentsCount = %d, want 0", classrooms[0].StudentsCount)
		}
	})

	t.Run("Removing_Missing_Student", func(t *testing.T) {
		if err := service.RemoveStudent(ctx, "t1", classroom.ID, "ghost"); !errors.Is(err, ErrStudentNotFound) {
			t.Fatalf("Expected ErrStudentNotFound, got %v", err)
		}
	})
}

func TestClassroomService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := newClassroomService(env)
	env.seedUser(t, "t1", "owner@example.com", models.RoleTeacher)
	env.seedUser(t, "t2", "other@example.com", models.RoleTeacher)

	classroom, err := service.Create(ctx, "t1", &CreateClassroomRequest{Name: "D4", Grade: "D"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.AddStudent(ctx, "t1", classroom.ID, &AddStudentRequest{
		FirstName: "Eleni", LastName: "Kosta", Email: "eleni@example.com",
	}); err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}

	t.Run("Non_Owner_Cannot_Delete", func(t *testing.T) {
		if err := service.Delete(ctx, "t2", classroom.ID); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})

	t.Run("Owner_Delete_Removes_Roster_Too", func(t *testing.T) {
		if err := service.Delete(ctx, "t1", classroom.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		classrooms, _ := service.List(ctx)
		if len(classrooms) != 0 {
			t.Fatalf("Expected no classrooms, got %d", len(classrooms))
		}

		if _, err := env.store.Read(ctx, store.ClassroomStudentsKey(classroom.ID)); !errors.Is(err, store.ErrCollectionNotFound) {
			t.Errorf("Expected roster collection to be deleted, got %v", err)
		}
	})

	t.Run("Missing_Classroom", func(t *testing.T) {
		if err := service.Delete(ctx, "t1", "ghost"); !errors.Is(err, ErrClassroomNotFound) {
			t.Fatalf("Expected ErrClassroomNotFound, got %v", err)
		}
	})
}
