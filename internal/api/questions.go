package api

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soaringjerry/Quiz/internal/models"
)

var ErrInvalidQuestionBank = errors.New("invalid question bank")

// DefaultQuestions returns the built-in question set.
func DefaultQuestions() []*models.Question {
	return []*models.Question{
		{
			ID:          1,
			Text:        "What is the capital of France?",
			Options:     []string{"Berlin", "Madrid", "Paris", "Rome"},
			AnswerIndex: 2,
			Difficulty:  "easy",
		},
		{
			ID:          2,
			Text:        "Which planet is known as the Red Planet?",
			Options:     []string{"Earth", "Mars", "Jupiter", "Venus"},
			AnswerIndex: 1,
			Difficulty:  "easy",
		},
		{
			ID:          3,
			Text:        "What is 9 x 9?",
			Options:     []string{"72", "81", "99", "108"},
			AnswerIndex: 1,
			Difficulty:  "medium",
		},
	}
}

// LoadQuestions reads a question bank from a YAML or JSON file of the
// form {questions: [...]}. An empty path yields DefaultQuestions.
func LoadQuestions(path string) ([]*models.Question, error) {
	if path == "" {
		return DefaultQuestions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseQuestions(data)
}

// ParseQuestions decodes and validates a question bank document.
func ParseQuestions(data []byte) ([]*models.Question, error) {
	var wrapper struct {
		Questions []*models.Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuestionBank, err)
	}
	if err := ValidateQuestions(wrapper.Questions); err != nil {
		return nil, err
	}
	return wrapper.Questions, nil
}

// ValidateQuestions enforces the question invariants: positive unique
// ids, at least two options, answer index within the options.
func ValidateQuestions(qs []*models.Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestionBank)
	}
	seen := make(map[int64]struct{}, len(qs))
	for i, q := range qs {
		if q == nil {
			return fmt.Errorf("%w: questions[%d] is empty", ErrInvalidQuestionBank, i)
		}
		if q.ID <= 0 {
			return fmt.Errorf("%w: questions[%d] has non-positive id %d", ErrInvalidQuestionBank, i, q.ID)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidQuestionBank, q.ID)
		}
		seen[q.ID] = struct{}{}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least 2 options", ErrInvalidQuestionBank, q.ID)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d answer_index %d out of range", ErrInvalidQuestionBank, q.ID, q.AnswerIndex)
		}
	}
	return nil
}
