package fact

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Fact is a single flashcard: a question, its answer, and the Leitner box it sits in.
type Fact struct {
	// ID is a ULID that uniquely identifies this fact within a repository
	ID string

	// Question is shown during review
	Question string

	// Answer is revealed after the question
	Answer string

	// CreatedAt is when the fact was added
	CreatedAt time.Time

	// ReviewedAt is when the fact was last reviewed (nil if never)
	ReviewedAt *time.Time

	level int
}

// New creates a fact at level 1 with a fresh ID.
func New(question, answer string) Fact {
	return Fact{
		ID:        NewID(),
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
		level:     MinLevel,
	}
}

// WithLevel returns a copy of f at the given level.
func (f Fact) WithLevel(level int) Fact {
	f.SetLevel(level)
	return f
}

// Level returns the fact's current box.
func (f Fact) Level() int {
	return f.level
}

// SetLevel moves the fact to the given box. Levels below MinLevel are raised to MinLevel.
func (f *Fact) SetLevel(level int) {
	f.level = max(level, MinLevel)
}

// NewID generates a new ULID string.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// wireFact is the serialized form of a Fact.
type wireFact struct {
	ID         string     `json:"id,omitempty"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Level      int        `json:"level"`
	CreatedAt  time.Time  `json:"created_at,omitzero"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (f Fact) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireFact{
		ID:         f.ID,
		Question:   f.Question,
		Answer:     f.Answer,
		Level:      f.level,
		CreatedAt:  f.CreatedAt,
		ReviewedAt: f.ReviewedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Levels below 1 are rejected.
func (f *Fact) UnmarshalJSON(data []byte) error {
	var w wireFact
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Level < MinLevel {
		return fmt.Errorf("fact %q: invalid level %d", w.ID, w.Level)
	}
	*f = Fact{
		ID:         w.ID,
		Question:   w.Question,
		Answer:     w.Answer,
		CreatedAt:  w.CreatedAt,
		ReviewedAt: w.ReviewedAt,
		level:      w.Level,
	}
	return nil
}
