package models

import "time"

// Classroom is a teacher-defined grouping of students, persisted in the
// "teacher_classrooms" collection. StudentsCount is a denormalized counter
// maintained on enrollment changes; it is not reconciled against the roster.
type Classroom struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Grade         string    `json:"grade"`
	TeacherID     string    `json:"teacher_id"`
	TeacherName   string    `json:"teacher_name"`
	StudentsCount int       `json:"students_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ClassroomStudent is a roster entry in classroom_students_{classroomId}.
type ClassroomStudent struct {
	ID         string    `json:"id"` // user id
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
