package services

import (
	"errors"

	"github.com/soaringjerry/Quiz/internal/models"
)

type ErrorCode string

const (
	ErrorInvalid  ErrorCode = "invalid"
	ErrorInternal ErrorCode = "internal"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewInternalError(msg string) error { return &ServiceError{Code: ErrorInternal, Message: msg} }

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// QuestionLookup resolves a question by id. A nil question with a nil
// error means the id is unknown.
type QuestionLookup interface {
	GetQuestion(id int64) (*models.Question, error)
}

// QuizStore abstracts persistence operations required by QuizService.
type QuizStore interface {
	QuestionLookup
	ListQuestions() ([]*models.Question, error)
	SaveScore(userID string, rec models.ScoreRecord) error
	GetScore(userID string) (*models.ScoreRecord, error)
}

// PublicQuestion is a question as listed to clients, without its answer.
type PublicQuestion struct {
	ID         int64    `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty *string  `json:"difficulty"`
}

// Submission is a validated submit payload.
type Submission struct {
	UserID  string
	Answers []models.Answer
}

// AnswerResult reports whether a single answer was correct.
type AnswerResult struct {
	QuestionID int64 `json:"questionId"`
	Correct    bool  `json:"correct"`
}

// SubmitResult is the outcome of scoring one submission.
type SubmitResult struct {
	Results []AnswerResult `json:"results"`
	Score   int            `json:"score"`
	Total   int            `json:"total"`
}

// ScoreLookup is the answer to a score query. Found is false when the
// user has never submitted with a userId.
type ScoreLookup struct {
	UserID string
	Found  bool
	Score  int
	Total  int
}
