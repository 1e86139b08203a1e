package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/soaringjerry/Quiz/internal/models"
)

const (
	msgInvalidPayload = "Invalid JSON payload."
	msgUserIDType     = "userId must be a string if provided."
	msgAnswersEmpty   = "answers must be a non-empty array."
	msgMissingUserID  = "Missing required query parameter: userId"
)

// jsonInt is an integer literal taken from a payload decoded with
// UseNumber. fits is false when the literal overflows int64.
type jsonInt struct {
	text  string
	value int64
	fits  bool
}

func (n jsonInt) String() string {
	if n.fits {
		return strconv.FormatInt(n.value, 10)
	}
	return n.text
}

// asJSONInt accepts only JSON integer literals. Floats such as 1.0 or
// 1e2, strings, booleans and null are rejected.
func asJSONInt(v any) (jsonInt, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return jsonInt{}, false
	}
	s := num.String()
	if s == "" || strings.ContainsAny(s, ".eE") {
		return jsonInt{}, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	return jsonInt{text: s, value: i, fits: err == nil}, true
}

// ValidateSubmission checks a decoded submit payload and returns the
// parsed submission or an invalid ServiceError. Checks run in a fixed
// order and stop at the first failure.
func ValidateSubmission(payload any, questions QuestionLookup) (*Submission, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, NewInvalidError(msgInvalidPayload)
	}

	var userID string
	if raw, present := obj["userId"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, NewInvalidError(msgUserIDType)
		}
		userID = s
	}

	rawAnswers, ok := obj["answers"].([]any)
	if !ok || len(rawAnswers) == 0 {
		return nil, NewInvalidError(msgAnswersEmpty)
	}

	answers := make([]models.Answer, 0, len(rawAnswers))
	for idx, rawAns := range rawAnswers {
		ans, err := validateAnswer(idx, rawAns, questions)
		if err != nil {
			return nil, err
		}
		answers = append(answers, ans)
	}

	return &Submission{UserID: userID, Answers: answers}, nil
}

func validateAnswer(idx int, raw any, questions QuestionLookup) (models.Answer, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return models.Answer{}, NewInvalidError(fmt.Sprintf("answers[%d] must be an object.", idx))
	}
	rawQID, hasQID := obj["questionId"]
	rawOpt, hasOpt := obj["optionIndex"]
	if !hasQID || !hasOpt {
		return models.Answer{}, NewInvalidError(fmt.Sprintf("answers[%d] must include questionId and optionIndex.", idx))
	}
	qid, ok := asJSONInt(rawQID)
	if !ok {
		return models.Answer{}, NewInvalidError(fmt.Sprintf("answers[%d].questionId must be an integer.", idx))
	}
	opt, ok := asJSONInt(rawOpt)
	if !ok {
		return models.Answer{}, NewInvalidError(fmt.Sprintf("answers[%d].optionIndex must be an integer.", idx))
	}

	var q *models.Question
	if qid.fits {
		found, err := questions.GetQuestion(qid.value)
		if err != nil {
			return models.Answer{}, fmt.Errorf("lookup question %d: %w", qid.value, err)
		}
		q = found
	}
	if q == nil {
		return models.Answer{}, NewInvalidError(fmt.Sprintf("Question with id %s not found.", qid))
	}
	if !opt.fits || opt.value < 0 || opt.value >= int64(len(q.Options)) {
		return models.Answer{}, NewInvalidError(fmt.Sprintf("answers[%d].optionIndex out of range for question %d.", idx, q.ID))
	}

	return models.Answer{QuestionID: q.ID, OptionIndex: int(opt.value)}, nil
}
