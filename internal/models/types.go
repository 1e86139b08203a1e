package models

// Question is a single quiz item. AnswerIndex must never reach clients.
type Question struct {
	ID          int64    `json:"id" yaml:"id"`
	Text        string   `json:"text" yaml:"text"`
	Options     []string `json:"options" yaml:"options"`
	AnswerIndex int      `json:"answer_index" yaml:"answer_index"`
	Difficulty  string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Answer is one submitted choice for a question.
type Answer struct {
	QuestionID  int64
	OptionIndex int
}

// ScoreRecord is the last score a user obtained. Total is the number of
// answers in the submission that produced it.
type ScoreRecord struct {
	Score int
	Total int
}
