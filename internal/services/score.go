package services

import (
	"fmt"

	"github.com/soaringjerry/Quiz/internal/models"
)

// ScoreAnswers compares each answer with its question's answer index.
// Duplicate question ids are scored once per occurrence. Answers must
// already be validated; an unknown question here is an internal error.
func ScoreAnswers(answers []models.Answer, questions QuestionLookup) (*SubmitResult, error) {
	res := &SubmitResult{
		Results: make([]AnswerResult, 0, len(answers)),
		Total:   len(answers),
	}
	for _, ans := range answers {
		q, err := questions.GetQuestion(ans.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("lookup question %d: %w", ans.QuestionID, err)
		}
		if q == nil {
			return nil, NewInternalError(fmt.Sprintf("question %d vanished during scoring", ans.QuestionID))
		}
		correct := ans.OptionIndex == q.AnswerIndex
		if correct {
			res.Score++
		}
		res.Results = append(res.Results, AnswerResult{QuestionID: q.ID, Correct: correct})
	}
	return res, nil
}

func scoreRecord(res *SubmitResult) models.ScoreRecord {
	return models.ScoreRecord{Score: res.Score, Total: res.Total}
}
