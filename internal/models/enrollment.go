package models

import "time"

// EnrolledCourse is an entry in enrolled_courses_{userId}; anonymous users
// share the "guest" bucket.
type EnrolledCourse struct {
	SubjectID  string    `json:"subject_id"`
	Title      string    `json:"title"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
