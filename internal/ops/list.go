package ops

import (
	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Level  *int // optional: only facts at this level
	Limit  int  // default: 20, max: 100
	Offset int  // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []FactItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// List returns facts in insertion order with pagination.
func List(repo *store.Repository, input ListInput) (*ListOutput, error) {
	if input.Level != nil && *input.Level < 1 {
		return nil, errors.NewInvalidRequest("level must be at least 1")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := max(input.Offset, 0)

	matched := make([]FactItem, 0, repo.Count())
	for _, f := range repo.All() {
		if input.Level != nil && f.Level() != *input.Level {
			continue
		}
		matched = append(matched, toItem(f))
	}

	total := len(matched)
	start := min(offset, total)
	end := min(start+limit, total)

	return &ListOutput{
		Items: matched[start:end],
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: end < total,
			Total:   total,
		},
	}, nil
}
