package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/soaringjerry/Quiz/internal/models"
)

type stubQuizStore struct {
	questions []*models.Question
	scores    map[string]models.ScoreRecord
	saves     int
	failGet   bool
	failSave  bool
}

func newStubQuizStore() *stubQuizStore {
	return &stubQuizStore{
		questions: []*models.Question{
			{ID: 1, Text: "What is the capital of France?", Options: []string{"Berlin", "Madrid", "Paris", "Rome"}, AnswerIndex: 2, Difficulty: "easy"},
			{ID: 2, Text: "Which planet is known as the Red Planet?", Options: []string{"Earth", "Mars", "Jupiter", "Venus"}, AnswerIndex: 1, Difficulty: "easy"},
			{ID: 3, Text: "What is 9 x 9?", Options: []string{"72", "81", "99", "108"}, AnswerIndex: 1},
		},
		scores: map[string]models.ScoreRecord{},
	}
}

func (s *stubQuizStore) GetQuestion(id int64) (*models.Question, error) {
	if s.failGet {
		return nil, errors.New("boom")
	}
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (s *stubQuizStore) ListQuestions() ([]*models.Question, error) {
	return s.questions, nil
}

func (s *stubQuizStore) SaveScore(userID string, rec models.ScoreRecord) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.saves++
	s.scores[userID] = rec
	return nil
}

func (s *stubQuizStore) GetScore(userID string) (*models.ScoreRecord, error) {
	rec, ok := s.scores[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// decodeJSON decodes the way the HTTP layer does, keeping numbers textual.
func decodeJSON(s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		panic(err)
	}
	return v
}
