package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/fact"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Repository holds all facts plus the date the review schedule is anchored to.
// It is not safe for concurrent use.
type Repository struct {
	createdAt time.Time
	facts     []fact.Fact
}

// New returns an empty repository whose schedule starts at now.
func New(now time.Time) *Repository {
	return &Repository{createdAt: now.UTC()}
}

// CreatedAt returns the schedule start date.
func (r *Repository) CreatedAt() time.Time {
	return r.createdAt
}

// Reanchor moves the schedule start date.
func (r *Repository) Reanchor(t time.Time) {
	r.createdAt = t.UTC()
}

// Add appends a fact. Facts without an ID get one.
func (r *Repository) Add(f fact.Fact) fact.Fact {
	if f.ID == "" {
		f.ID = fact.NewID()
	}
	r.facts = append(r.facts, f)
	return f
}

// Count returns the number of facts.
func (r *Repository) Count() int {
	return len(r.facts)
}

// All returns a copy of every fact in insertion order.
func (r *Repository) All() []fact.Fact {
	out := make([]fact.Fact, len(r.facts))
	copy(out, r.facts)
	return out
}

// Get returns a copy of the fact with the given ID.
func (r *Repository) Get(id string) (fact.Fact, error) {
	i := r.indexOf(id)
	if i < 0 {
		return fact.Fact{}, errors.NewNotFound(id)
	}
	return r.facts[i], nil
}

// SetLevel replaces the level of the fact with the given ID.
func (r *Repository) SetLevel(id string, level int) error {
	i := r.indexOf(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}
	r.facts[i].SetLevel(level)
	return nil
}

// Replace overwrites the stored fact that has f's ID.
func (r *Repository) Replace(f fact.Fact) error {
	i := r.indexOf(f.ID)
	if i < 0 {
		return errors.NewNotFound(f.ID)
	}
	r.facts[i] = f
	return nil
}

func (r *Repository) indexOf(id string) int {
	for i := range r.facts {
		if r.facts[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot is the serialized form of a Repository.
type snapshot struct {
	Version   int         `json:"version,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Facts     []fact.Fact `json:"facts"`
}

// MarshalJSON implements json.Marshaler.
func (r *Repository) MarshalJSON() ([]byte, error) {
	facts := r.facts
	if facts == nil {
		facts = []fact.Fact{}
	}
	return json.Marshal(snapshot{
		Version:   SnapshotVersion,
		CreatedAt: r.createdAt,
		Facts:     facts,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Snapshots written before facts carried IDs are accepted; missing IDs are assigned.
func (r *Repository) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s.Version > SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("snapshot is missing created_at")
	}

	seen := make(map[string]bool, len(s.Facts))
	for i := range s.Facts {
		if s.Facts[i].ID == "" || seen[s.Facts[i].ID] {
			s.Facts[i].ID = fact.NewID()
		}
		seen[s.Facts[i].ID] = true
	}

	r.createdAt = s.CreatedAt.UTC()
	r.facts = s.Facts
	return nil
}
