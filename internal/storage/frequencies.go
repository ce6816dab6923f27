package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/introware/nurture/pkg/models"
	"gopkg.in/yaml.v3"
)

// FrequencyFile represents the top-level structure of frequencies.yaml,
// keyed by relationship ID.
type FrequencyFile struct {
	Version     string                                  `yaml:"version"`
	Frequencies map[string]models.RelationshipFrequency `yaml:"frequencies"`
}

// FrequencyManager defines the interface for per-relationship cadence state.
type FrequencyManager interface {
	Put(freq models.RelationshipFrequency) error
	Get(relationshipID string) (*models.RelationshipFrequency, error)
	GetAll() ([]models.RelationshipFrequency, error)
	Remove(relationshipID string) error
	Load() error
	Save() error
}

type fileFrequencyManager struct {
	basePath string
	data     FrequencyFile
}

// NewFrequencyManager creates a FrequencyManager backed by a
// frequencies.yaml file in the given base directory.
func NewFrequencyManager(basePath string) FrequencyManager {
	return &fileFrequencyManager{
		basePath: basePath,
		data: FrequencyFile{
			Version:     "1.0",
			Frequencies: make(map[string]models.RelationshipFrequency),
		},
	}
}

func (m *fileFrequencyManager) filePath() string {
	return filepath.Join(m.basePath, "frequencies.yaml")
}

// Put inserts or replaces the frequency record for its relationship.
func (m *fileFrequencyManager) Put(freq models.RelationshipFrequency) error {
	if freq.RelationshipID == "" {
		return fmt.Errorf("putting frequency: relationship ID must not be empty")
	}
	m.data.Frequencies[freq.RelationshipID] = freq
	return nil
}

func (m *fileFrequencyManager) Get(relationshipID string) (*models.RelationshipFrequency, error) {
	freq, exists := m.data.Frequencies[relationshipID]
	if !exists {
		return nil, fmt.Errorf("frequency for %s: %w", relationshipID, ErrNotFound)
	}
	return &freq, nil
}

func (m *fileFrequencyManager) GetAll() ([]models.RelationshipFrequency, error) {
	freqs := make([]models.RelationshipFrequency, 0, len(m.data.Frequencies))
	for _, freq := range m.data.Frequencies {
		freqs = append(freqs, freq)
	}
	sort.Slice(freqs, func(i, j int) bool {
		return freqs[i].RelationshipID < freqs[j].RelationshipID
	})
	return freqs, nil
}

func (m *fileFrequencyManager) Remove(relationshipID string) error {
	if _, exists := m.data.Frequencies[relationshipID]; !exists {
		return fmt.Errorf("removing frequency for %s: %w", relationshipID, ErrNotFound)
	}
	delete(m.data.Frequencies, relationshipID)
	return nil
}

func (m *fileFrequencyManager) Load() error {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			m.data = FrequencyFile{
				Version:     "1.0",
				Frequencies: make(map[string]models.RelationshipFrequency),
			}
			return nil
		}
		return fmt.Errorf("loading frequencies: %w", err)
	}

	var ff FrequencyFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return fmt.Errorf("loading frequencies: parsing YAML: %w", err)
	}
	if ff.Frequencies == nil {
		ff.Frequencies = make(map[string]models.RelationshipFrequency)
	}
	m.data = ff
	return nil
}

func (m *fileFrequencyManager) Save() error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving frequencies: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&m.data)
	if err != nil {
		return fmt.Errorf("saving frequencies: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving frequencies: writing file: %w", err)
	}
	return nil
}
