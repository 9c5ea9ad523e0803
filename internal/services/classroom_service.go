package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

type classroomService struct {
	store     store.Store
	resolver  *auth.Resolver
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassroomService(s store.Store, resolver *auth.Resolver, logger *slog.Logger, v *validator.Validator) ClassroomService {
	return &classroomService{
		store:     s,
		resolver:  resolver,
		logger:    logger,
		validator: v,
	}
}

// ===== CLASSROOMS =====

func (s *classroomService) List(ctx context.Context) ([]models.Classroom, error) {
	return store.ReadAll[models.Classroom](ctx, s.store, store.KeyClassrooms), nil
}

func (s *classroomService) ListForTeacher(ctx context.Context, teacherID string) ([]models.Classroom, error) {
	classrooms := store.ReadAll[models.Classroom](ctx, s.store, store.KeyClassrooms)
	own := make([]models.Classroom, 0)
	for i := range classrooms {
		if classrooms[i].TeacherID == teacherID {
			own = append(own, classrooms[i])
		}
	}
	return own, nil
}

func (s *classroomService) Create(ctx context.Context, actorID string, req *CreateClassroomRequest) (*models.Classroom, error) {
	s.logger.Info("Creating classroom", "actor_id", actorID, "name", req.Name)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, "", "classroom", "create", "insufficient role permissions")
	}

	teacher, err := findUser(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}

	classroom := models.Classroom{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Grade:       req.Grade,
		TeacherID:   teacher.ID,
		TeacherName: teacher.FullName(),
		CreatedAt:   time.Now(),
	}

	classrooms := store.ReadAll[models.Classroom](ctx, s.store, store.KeyClassrooms)
	classrooms = append(classrooms, classroom)
	if err := store.WriteAll(ctx, s.store, store.KeyClassrooms, classrooms); err != nil {
		return nil, fmt.Errorf("failed to save classrooms: %w", err)
	}

	s.logger.Info("Classroom created", "classroom_id", classroom.ID, "teacher_id", teacher.ID)
	return &classroom, nil
}

func (s *classroomService) Delete(ctx context.Context, actorID, classroomID string) error {
	classrooms := store.ReadAll[models.Classroom](ctx, s.store, store.KeyClassrooms)

	filtered := classrooms[:0]
	found := false
	for i := range classrooms {
		if classrooms[i].ID == classroomID {
			found = true
			if err := s.canModifyClassroom(ctx, actorID, &classrooms[i], "delete"); err != nil {
				return err
			}
			continue
		}
		filtered = append(filtered, classrooms[i])
	}
	if !found {
		return ErrClassroomNotFound
	}

	if err := store.WriteAll(ctx, s.store, store.KeyClassrooms, filtered); err != nil {
		return fmt.Errorf("failed to save classrooms: %w", err)
	}

	// Drop the orphaned roster as well
	if err := s.store.Delete(ctx, store.ClassroomStudentsKey(classroomID)); err != nil {
		s.logger.Error("Failed to delete classroom roster", "error", err, "classroom_id", classroomID)
	}

	s.logger.Info("Classroom deleted", "classroom_id", classroomID, "actor_id", actorID)
	return nil
}

// ===== ROSTERS =====

func (s *classroomService) ListStudents(ctx context.Context, classroomID string) ([]models.ClassroomStudent, error) {
	return store.ReadAll[models.ClassroomStudent](ctx, s.store, store.ClassroomStudentsKey(classroomID)), nil
}

func (s *classroomService) AddStudent(ctx context.Context, actorID, classroomID string, req *AddStudentRequest) (*models.ClassroomStudent, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	classroom, err := s.findClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.canModifyClassroom(ctx, actorID, classroom, "add_student"); err != nil {
		return nil, err
	}

	student := models.ClassroomStudent{
		ID:         uuid.NewString(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		EnrolledAt: time.Now(),
	}

	key := store.ClassroomStudentsKey(classroomID)
	roster := store.ReadAll[models.ClassroomStudent](ctx, s.store, key)
	roster = append(roster, student)
	if err := store.WriteAll(ctx, s.store, key, roster); err != nil {
		return nil, fmt.Errorf("failed to save roster: %w", err)
	}

	s.syncStudentsCount(ctx, classroomID, len(roster))

	s.logger.Info("Student added to classroom", "classroom_id", classroomID, "student_id", student.ID)
	return &student, nil
}

func (s *classroomService) RemoveStudent(ctx context.Context, actorID, classroomID, studentID string) error {
	classroom, err := s.findClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if err := s.canModifyClassroom(ctx, actorID, classroom, "remove_student"); err != nil {
		return err
	}

	key := store.ClassroomStudentsKey(classroomID)
	roster := store.ReadAll[models.ClassroomStudent](ctx, s.store, key)

	filtered := roster[:0]
	found := false
	for i := range roster {
		if roster[i].ID == studentID {
			found = true
			continue
		}
		filtered = append(filtered, roster[i])
	}
	if !found {
		return ErrStudentNotFound
	}

	if err := store.WriteAll(ctx, s.store, key, filtered); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	s.syncStudentsCount(ctx, classroomID, len(filtered))

	s.logger.Info("Student removed from classroom", "classroom_id", classroomID, "student_id", studentID)
	return nil
}

// ===== HELPERS =====

func (s *classroomService) findClassroom(ctx context.Context, classroomID string) (*models.Classroom, error) {
	classrooms := store.ReadAll[models.Classroom](ctx, s.store, store.KeyClassrooms)
	for i := range classrooms {
		if classrooms[i].ID == classroomID {
			return &classrooms[i], nil
		}
	}
	return nil, ErrClassroomNotFound
}

// canModifyClassroom allows the owning teacher and admins
func (s *classroomService) canModifyClassroom(ctx context.Context, actorID string, classroom *models.Classroom, action string) error {
	if classroom.TeacherID == actorID {
		return nil
	}
	isAdmin, err := isAdminActor(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !isAdmin {
		return NewPermissionError(actorID, classroom.ID, "classroom", action, "not owner or insufficient permissions")
	}
	return nil
}

// syncStudentsCount refreshes the denormalized counter on the classroom
// record. The counter is advisory and can drift if the roster write and this
// update interleave with another writer.
func (s *classroomService) syncStudentsCount(ctx context.Context, classroomID string, count int) {
	classrooms := store.ReadAll[models.Classroom](ctx, s.store, store.KeyClassrooms)
	for i := range classrooms {
		if classrooms[i].ID != classroomID {
			continue
		}
		classrooms[i].StudentsCount = count
		if err := store.WriteAll(ctx, s.store, store.KeyClassrooms, classrooms); err != nil {
			s.logger.Error("Failed to update students count", "error", err, "classroom_id", classroomID)
		}
		return
	}
}
