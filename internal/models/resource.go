package models

import "time"

type ResourceKind string

const (
	ResourceDocument    ResourceKind = "document"
	ResourcePDF         ResourceKind = "pdf"
	ResourceLink        ResourceKind = "link"
	ResourceDevelopment ResourceKind = "development"
	ResourceBook        ResourceKind = "book"
	ResourceVideo       ResourceKind = "video"
)

func (rk ResourceKind) Valid() bool {
	switch rk {
	case ResourceDocument, ResourcePDF, ResourceLink, ResourceDevelopment, ResourceBook, ResourceVideo:
		return true
	}
	return false
}

// Resource is a teacher-uploaded educational artifact, persisted in the
// "educational_resources" collection.
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ResourceKind `json:"type"`
	URL         string       `json:"url"`
	Subject     string       `json:"subject"`
	GradeLevel  string       `json:"grade_level"`
	AuthorName  string       `json:"author_name"`
	AuthorEmail string       `json:"author_email"`
	DateAdded   time.Time    `json:"date_added"`
	Downloads   int          `json:"downloads"`

	Responses []ResourceResponse `json:"responses"`
}

// ResourceResponse is a student reply threaded under a resource.
type ResourceResponse struct {
	StudentName string    `json:"student_name"`
	Response    string    `json:"response"`
	Timestamp   time.Time `json:"timestamp"`
}
