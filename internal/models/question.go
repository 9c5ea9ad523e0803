package models

import "time"

type QuizType string

const (
	QuizBasic        QuizType = "basic"
	QuizIntermediate QuizType = "intermediate"
	QuizAdvanced     QuizType = "advanced"
	QuizQuick        QuizType = "quick"
	QuizMedium       QuizType = "medium"
	QuizFull         QuizType = "full"
)

// QuizTypes lists every quiz tier, in difficulty/duration order.
var QuizTypes = []QuizType{QuizBasic, QuizIntermediate, QuizAdvanced, QuizQuick, QuizMedium, QuizFull}

func (qt QuizType) Valid() bool {
	for _, t := range QuizTypes {
		if qt == t {
			return true
		}
	}
	return false
}

// QuestionOptionCount is the fixed option arity of a quiz question.
const QuestionOptionCount = 4

// QuizQuestion lives in a per-(subject, quiz type) bucket collection keyed
// quiz_{subjectId}_{quizType}. IDs are millisecond timestamps assigned at
// creation.
type QuizQuestion struct {
	ID            int64    `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"` // index 0-3
}

// QuizResult is an append-only entry in the "quiz_results" collection.
// Answers holds the selected option index per question, in question order.
type QuizResult struct {
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	SubjectID      string    `json:"subject_id"`
	QuizType       QuizType  `json:"quiz_type"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Date           time.Time `json:"date"`
	Answers        []int     `json:"answers"`
}
