package api

import "github.com/soaringjerry/Quiz/internal/models"

// Store is the storage surface the HTTP layer depends on. Questions are
// fixed at construction; scores are upserted last-write-wins.
type Store interface {
	ListQuestions() []*models.Question
	GetQuestion(id int64) *models.Question

	UpsertScore(userID string, rec models.ScoreRecord) error
	GetScore(userID string) (*models.ScoreRecord, error)
}

var _ Store = (*memoryStore)(nil)
