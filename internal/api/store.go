package api

import (
	"sync"

	"github.com/soaringjerry/Quiz/internal/models"
)

type memoryStore struct {
	questions     []*models.Question
	questionsByID map[int64]*models.Question

	mu     sync.RWMutex
	scores map[string]models.ScoreRecord
}

// NewMemoryStore keeps questions and scores in process memory. The
// question slice is copied and never mutated afterwards.
func NewMemoryStore(questions []*models.Question) Store {
	return newMemoryStore(questions)
}

func newMemoryStore(questions []*models.Question) *memoryStore {
	s := &memoryStore{
		questions:     append([]*models.Question(nil), questions...),
		questionsByID: make(map[int64]*models.Question, len(questions)),
		scores:        map[string]models.ScoreRecord{},
	}
	for _, q := range s.questions {
		s.questionsByID[q.ID] = q
	}
	return s
}

func (s *memoryStore) ListQuestions() []*models.Question {
	return append([]*models.Question(nil), s.questions...)
}

func (s *memoryStore) GetQuestion(id int64) *models.Question {
	return s.questionsByID[id]
}

func (s *memoryStore) UpsertScore(userID string, rec models.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[userID] = rec
	return nil
}

func (s *memoryStore) GetScore(userID string) (*models.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.scores[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
