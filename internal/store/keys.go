package store

import (
	"fmt"

	"github.com/edupercentage/platform-service/internal/models"
)

// Collection keys. Composite keys partition by entity id through string
// concatenation (a two-level namespace emulated in the key).
const (
	KeyUsers         = "users"
	KeyLoginRecords  = "loginRecords"
	KeyQuizResults   = "quiz_results"
	KeyResources     = "educational_resources"
	KeyNewsArticles  = "school_news_articles"
	KeyClassrooms    = "teacher_classrooms"
	KeyNotifications = "notifications"

	quizKeyPrefix              = "quiz_"
	classroomStudentsKeyPrefix = "classroom_students_"
	enrolledCoursesKeyPrefix   = "enrolled_courses_"

	// GuestUserID is the bucket segment used for anonymous enrollments.
	GuestUserID = "guest"
)

// QuizKey returns the bucket key for one (subject, quiz type) pair.
func QuizKey(subjectID string, quizType models.QuizType) string {
	return fmt.Sprintf("%s%s_%s", quizKeyPrefix, subjectID, quizType)
}

// ClassroomStudentsKey returns the roster key for a classroom.
func ClassroomStudentsKey(classroomID string) string {
	return classroomStudentsKeyPrefix + classroomID
}

// EnrolledCoursesKey returns the enrollment key for a user, falling back to
// the guest bucket when userID is empty.
func EnrolledCoursesKey(userID string) string {
	if userID == "" {
		userID = GuestUserID
	}
	return enrolledCoursesKeyPrefix + userID
}
