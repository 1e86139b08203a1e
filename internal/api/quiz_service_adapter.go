package api

import (
	"github.com/soaringjerry/Quiz/internal/models"
	"github.com/soaringjerry/Quiz/internal/services"
)

type quizStoreAdapter struct {
	store Store
}

func newQuizStoreAdapter(store Store) services.QuizStore {
	return &quizStoreAdapter{store: store}
}

func (a *quizStoreAdapter) GetQuestion(id int64) (*models.Question, error) {
	return a.store.GetQuestion(id), nil
}

func (a *quizStoreAdapter) ListQuestions() ([]*models.Question, error) {
	return a.store.ListQuestions(), nil
}

func (a *quizStoreAdapter) SaveScore(userID string, rec models.ScoreRecord) error {
	return a.store.UpsertScore(userID, rec)
}

func (a *quizStoreAdapter) GetScore(userID string) (*models.ScoreRecord, error) {
	return a.store.GetScore(userID)
}
