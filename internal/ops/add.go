package ops

import (
	"github.com/hpungsan/leitner/internal/fact"
	"github.com/hpungsan/leitner/internal/store"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Question string // required
	Answer   string // required
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Total int    `json:"total"`
}

// Add appends a new fact at level 1.
func Add(repo *store.Repository, input AddInput) (*AddOutput, error) {
	question, err := requireText("question", input.Question)
	if err != nil {
		return nil, err
	}
	answer, err := requireText("answer", input.Answer)
	if err != nil {
		return nil, err
	}

	f := repo.Add(fact.New(question, answer))

	return &AddOutput{
		ID:    f.ID,
		Level: f.Level(),
		Total: repo.Count(),
	}, nil
}
