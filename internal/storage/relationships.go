// Package storage provides YAML-file-backed stores for relationships,
// cadence records, the interaction ledger, and connection suggestions.
// Each store keeps its working set in memory; callers Load before reading
// and Save after mutating. There is exactly one logical writer (the current
// session), so no file locking is needed.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/introware/nurture/pkg/models"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a store lookup references an unknown ID.
// Core services translate it into a silent no-op at advisory boundaries.
var ErrNotFound = errors.New("not found")

// RelationshipFile represents the top-level structure of relationships.yaml.
type RelationshipFile struct {
	Version       string                         `yaml:"version"`
	Relationships map[string]models.Relationship `yaml:"relationships"`
}

// RelationshipManager defines the interface for the contact registry.
type RelationshipManager interface {
	Add(rel models.Relationship) error
	Update(id string, updates models.Relationship) error
	Remove(id string) error
	Get(id string) (*models.Relationship, error)
	GetAll() ([]models.Relationship, error)
	AddLifeEvent(relationshipID string, event models.LifeEvent) error
	Load() error
	Save() error
}

type fileRelationshipManager struct {
	basePath string
	data     RelationshipFile
}

// NewRelationshipManager creates a RelationshipManager backed by a
// relationships.yaml file in the given base directory.
func NewRelationshipManager(basePath string) RelationshipManager {
	return &fileRelationshipManager{
		basePath: basePath,
		data: RelationshipFile{
			Version:       "1.0",
			Relationships: make(map[string]models.Relationship),
		},
	}
}

func (m *fileRelationshipManager) filePath() string {
	return filepath.Join(m.basePath, "relationships.yaml")
}

func (m *fileRelationshipManager) Add(rel models.Relationship) error {
	if rel.ID == "" {
		return fmt.Errorf("adding relationship: ID must not be empty")
	}
	if _, exists := m.data.Relationships[rel.ID]; exists {
		return fmt.Errorf("adding relationship: %s already exists", rel.ID)
	}
	m.data.Relationships[rel.ID] = rel
	return nil
}

func (m *fileRelationshipManager) Update(id string, updates models.Relationship) error {
	existing, exists := m.data.Relationships[id]
	if !exists {
		return fmt.Errorf("updating relationship %s: %w", id, ErrNotFound)
	}

	if updates.Name != "" {
		existing.Name = updates.Name
	}
	if updates.Category != "" {
		existing.Category = updates.Category
	}
	if updates.Importance != 0 {
		existing.Importance = updates.Importance
	}
	if updates.Notes != "" {
		existing.Notes = updates.Notes
	}
	if updates.Interests != nil {
		existing.Interests = updates.Interests
	}
	if updates.LifeEvents != nil {
		existing.LifeEvents = updates.LifeEvents
	}
	if updates.ConversationTopics != nil {
		existing.ConversationTopics = updates.ConversationTopics
	}
	if updates.InteractionHistory != nil {
		existing.InteractionHistory = updates.InteractionHistory
	}

	m.data.Relationships[id] = existing
	return nil
}

func (m *fileRelationshipManager) Remove(id string) error {
	if _, exists := m.data.Relationships[id]; !exists {
		return fmt.Errorf("removing relationship %s: %w", id, ErrNotFound)
	}
	delete(m.data.Relationships, id)
	return nil
}

func (m *fileRelationshipManager) Get(id string) (*models.Relationship, error) {
	rel, exists := m.data.Relationships[id]
	if !exists {
		return nil, fmt.Errorf("relationship %s: %w", id, ErrNotFound)
	}
	return &rel, nil
}

func (m *fileRelationshipManager) GetAll() ([]models.Relationship, error) {
	rels := make([]models.Relationship, 0, len(m.data.Relationships))
	for _, rel := range m.data.Relationships {
		rels = append(rels, rel)
	}
	sort.Slice(rels, func(i, j int) bool {
		return rels[i].ID < rels[j].ID
	})
	return rels, nil
}

// AddLifeEvent appends a life event to the relationship's event list.
func (m *fileRelationshipManager) AddLifeEvent(relationshipID string, event models.LifeEvent) error {
	existing, exists := m.data.Relationships[relationshipID]
	if !exists {
		return fmt.Errorf("adding life event to %s: %w", relationshipID, ErrNotFound)
	}
	event.RelationshipID = relationshipID
	existing.LifeEvents = append(existing.LifeEvents, event)
	m.data.Relationships[relationshipID] = existing
	return nil
}

func (m *fileRelationshipManager) Load() error {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			m.data = RelationshipFile{
				Version:       "1.0",
				Relationships: make(map[string]models.Relationship),
			}
			return nil
		}
		return fmt.Errorf("loading relationships: %w", err)
	}

	var rf RelationshipFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("loading relationships: parsing YAML: %w", err)
	}
	if rf.Relationships == nil {
		rf.Relationships = make(map[string]models.Relationship)
	}
	m.data = rf
	return nil
}

func (m *fileRelationshipManager) Save() error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving relationships: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&m.data)
	if err != nil {
		return fmt.Errorf("saving relationships: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving relationships: writing file: %w", err)
	}
	return nil
}
