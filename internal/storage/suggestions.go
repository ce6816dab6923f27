package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/introware/nurture/pkg/models"
	"gopkg.in/yaml.v3"
)

// SuggestionFile represents the top-level structure of suggestions.yaml.
type SuggestionFile struct {
	Version     string                                 `yaml:"version"`
	Suggestions map[string]models.ConnectionSuggestion `yaml:"suggestions"`
}

// SuggestionManager defines the interface for the active suggestion list.
// Unlike ledger records, suggestions are physically removed when applied
// or skipped.
type SuggestionManager interface {
	Add(suggestion models.ConnectionSuggestion) error
	Remove(id string) error
	Get(id string) (*models.ConnectionSuggestion, error)
	GetAll() ([]models.ConnectionSuggestion, error)
	Load() error
	Save() error
}

type fileSuggestionManager struct {
	basePath string
	data     SuggestionFile
}

// NewSuggestionManager creates a SuggestionManager backed by a
// suggestions.yaml file in the given base directory.
func NewSuggestionManager(basePath string) SuggestionManager {
	return &fileSuggestionManager{
		basePath: basePath,
		data: SuggestionFile{
			Version:     "1.0",
			Suggestions: make(map[string]models.ConnectionSuggestion),
		},
	}
}

func (m *fileSuggestionManager) filePath() string {
	return filepath.Join(m.basePath, "suggestions.yaml")
}

func (m *fileSuggestionManager) Add(suggestion models.ConnectionSuggestion) error {
	if suggestion.ID == "" {
		return fmt.Errorf("adding suggestion: ID must not be empty")
	}
	if _, exists := m.data.Suggestions[suggestion.ID]; exists {
		return fmt.Errorf("adding suggestion: %s already exists", suggestion.ID)
	}
	m.data.Suggestions[suggestion.ID] = suggestion
	return nil
}

func (m *fileSuggestionManager) Remove(id string) error {
	if _, exists := m.data.Suggestions[id]; !exists {
		return fmt.Errorf("removing suggestion %s: %w", id, ErrNotFound)
	}
	delete(m.data.Suggestions, id)
	return nil
}

func (m *fileSuggestionManager) Get(id string) (*models.ConnectionSuggestion, error) {
	suggestion, exists := m.data.Suggestions[id]
	if !exists {
		return nil, fmt.Errorf("suggestion %s: %w", id, ErrNotFound)
	}
	return &suggestion, nil
}

func (m *fileSuggestionManager) GetAll() ([]models.ConnectionSuggestion, error) {
	suggestions := make([]models.ConnectionSuggestion, 0, len(m.data.Suggestions))
	for _, suggestion := range m.data.Suggestions {
		suggestions = append(suggestions, suggestion)
	}
	// Highest priority first, stable by ID within a priority.
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority < suggestions[j].Priority
		}
		return suggestions[i].ID < suggestions[j].ID
	})
	return suggestions, nil
}

func (m *fileSuggestionManager) Load() error {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			m.data = SuggestionFile{
				Version:     "1.0",
				Suggestions: make(map[string]models.ConnectionSuggestion),
			}
			return nil
		}
		return fmt.Errorf("loading suggestions: %w", err)
	}

	var sf SuggestionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("loading suggestions: parsing YAML: %w", err)
	}
	if sf.Suggestions == nil {
		sf.Suggestions = make(map[string]models.ConnectionSuggestion)
	}
	m.data = sf
	return nil
}

func (m *fileSuggestionManager) Save() error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving suggestions: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&m.data)
	if err != nil {
		return fmt.Errorf("saving suggestions: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving suggestions: writing file: %w", err)
	}
	return nil
}
