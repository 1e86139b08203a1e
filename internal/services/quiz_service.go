package services

import (
	"errors"
	"fmt"
)

// QuizService hosts the quiz workflows without HTTP concerns.
type QuizService struct {
	store QuizStore
}

// NewQuizService constructs a service bound to the provided persistence interface.
func NewQuizService(store QuizStore) *QuizService {
	return &QuizService{store: store}
}

// ListQuestions returns every question in store order with answers stripped.
func (s *QuizService) ListQuestions() ([]PublicQuestion, error) {
	if s.store == nil {
		return nil, errors.New("quiz service store is nil")
	}
	qs, err := s.store.ListQuestions()
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]PublicQuestion, 0, len(qs))
	for _, q := range qs {
		pq := PublicQuestion{ID: q.ID, Text: q.Text, Options: append([]string(nil), q.Options...)}
		if q.Difficulty != "" {
			d := q.Difficulty
			pq.Difficulty = &d
		}
		out = append(out, pq)
	}
	return out, nil
}

// Submit validates a decoded payload, scores it and, when a userId is
// given, replaces that user's stored score.
func (s *QuizService) Submit(payload any) (*SubmitResult, error) {
	if s.store == nil {
		return nil, errors.New("quiz service store is nil")
	}
	sub, err := ValidateSubmission(payload, s.store)
	if err != nil {
		return nil, err
	}
	res, err := ScoreAnswers(sub.Answers, s.store)
	if err != nil {
		return nil, err
	}
	if sub.UserID != "" {
		if err := s.store.SaveScore(sub.UserID, scoreRecord(res)); err != nil {
			return nil, fmt.Errorf("save score for %q: %w", sub.UserID, err)
		}
	}
	return res, nil
}

// LookupScore returns the last score recorded for userID. An unknown
// user is not an error.
func (s *QuizService) LookupScore(userID string) (*ScoreLookup, error) {
	if userID == "" {
		return nil, NewInvalidError(msgMissingUserID)
	}
	if s.store == nil {
		return nil, errors.New("quiz service store is nil")
	}
	rec, err := s.store.GetScore(userID)
	if err != nil {
		return nil, fmt.Errorf("get score for %q: %w", userID, err)
	}
	if rec == nil {
		return &ScoreLookup{UserID: userID}, nil
	}
	return &ScoreLookup{UserID: userID, Found: true, Score: rec.Score, Total: rec.Total}, nil
}
