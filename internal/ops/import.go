package ops

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/leitner/internal/config"
	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/fact"
	"github.com/hpungsan/leitner/internal/store"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string // required
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
	Total    int      `json:"total"`
}

// deckEntry is one card in a YAML deck file.
type deckEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Level    int    `yaml:"level,omitempty"`
}

// Import appends every card in a YAML deck file as a new fact.
// The deck is either a top-level list of {question, answer} or a mapping with a "facts" list.
// Validation is all-or-nothing: one bad card rejects the whole deck.
// A card level is optional and must lie within the cycle's levels; 0 means level 1.
func Import(repo *store.Repository, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	data, err := readDeck(input.Path, cfg.ImportMaxBytes)
	if err != nil {
		return nil, err
	}

	entries, err := parseDeck(data)
	if err != nil {
		return nil, err
	}

	maxLevel := ScheduleFor(repo).NumLevels()
	facts := make([]fact.Fact, 0, len(entries))
	for i, e := range entries {
		question, err := requireText(fmt.Sprintf("facts[%d].question", i), e.Question)
		if err != nil {
			return nil, err
		}
		answer, err := requireText(fmt.Sprintf("facts[%d].answer", i), e.Answer)
		if err != nil {
			return nil, err
		}
		if e.Level < 0 || e.Level > maxLevel {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("facts[%d].level must be between 1 and %d", i, maxLevel))
		}
		facts = append(facts, fact.New(question, answer).WithLevel(e.Level))
	}

	ids := make([]string, 0, len(facts))
	for _, f := range facts {
		ids = append(ids, repo.Add(f).ID)
	}

	return &ImportOutput{
		Imported: len(ids),
		IDs:      ids,
		Total:    repo.Count(),
	}, nil
}

func readDeck(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.NewFileNotFound(path)
	}
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to stat deck file: %w", err))
	}
	if info.IsDir() {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("%s is a directory", path))
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, errors.NewFileTooLarge(maxBytes, info.Size())
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to open deck file: %w", err))
	}
	defer file.Close()

	var r io.Reader = file
	if maxBytes > 0 {
		// the file may have grown since Stat
		r = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read deck file: %w", err))
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errors.NewFileTooLarge(maxBytes, int64(len(data)))
	}
	return data, nil
}

func parseDeck(data []byte) ([]deckEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid deck: %v", err))
	}
	if len(root.Content) == 0 {
		return nil, errors.NewInvalidRequest("deck is empty")
	}

	var entries []deckEntry
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&entries); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid deck: %v", err))
		}
	case yaml.MappingNode:
		var doc struct {
			Facts []deckEntry `yaml:"facts"`
		}
		if err := node.Decode(&doc); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid deck: %v", err))
		}
		entries = doc.Facts
	default:
		return nil, errors.NewInvalidRequest("deck must be a list of facts or a mapping with a facts list")
	}

	if len(entries) == 0 {
		return nil, errors.NewInvalidRequest("deck is empty")
	}
	return entries, nil
}
