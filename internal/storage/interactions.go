package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/introware/nurture/pkg/models"
	"gopkg.in/yaml.v3"
)

// LedgerFile represents the top-level structure of interactions.yaml.
type LedgerFile struct {
	Version      string                                 `yaml:"version"`
	Interactions map[string]models.ScheduledInteraction `yaml:"interactions"`
}

// InteractionFilter specifies criteria for filtering ledger entries.
// All specified fields use AND logic.
type InteractionFilter struct {
	Status         []models.InteractionStatus
	RelationshipID string
	ScheduledDate  string
}

// InteractionManager defines the interface for the interaction ledger store.
// Records are never physically deleted once scheduled; lifecycle operations
// only transition their status.
type InteractionManager interface {
	Add(interaction models.ScheduledInteraction) error
	Merge(id string, updates models.ScheduledInteraction) error
	Get(id string) (*models.ScheduledInteraction, error)
	GetAll() ([]models.ScheduledInteraction, error)
	Filter(filter InteractionFilter) ([]models.ScheduledInteraction, error)
	Load() error
	Save() error
}

type fileInteractionManager struct {
	basePath string
	data     LedgerFile
}

// NewInteractionManager creates an InteractionManager backed by an
// interactions.yaml file in the given base directory.
func NewInteractionManager(basePath string) InteractionManager {
	return &fileInteractionManager{
		basePath: basePath,
		data: LedgerFile{
			Version:      "1.0",
			Interactions: make(map[string]models.ScheduledInteraction),
		},
	}
}

func (m *fileInteractionManager) filePath() string {
	return filepath.Join(m.basePath, "interactions.yaml")
}

func (m *fileInteractionManager) Add(interaction models.ScheduledInteraction) error {
	if interaction.ID == "" {
		return fmt.Errorf("adding interaction: ID must not be empty")
	}
	if _, exists := m.data.Interactions[interaction.ID]; exists {
		return fmt.Errorf("adding interaction: %s already exists", interaction.ID)
	}
	m.data.Interactions[interaction.ID] = interaction
	return nil
}

// Merge overlays the non-zero fields of updates onto the stored record.
// Boolean fields cannot be distinguished from their zero value and are
// handled by dedicated lifecycle operations in core instead.
func (m *fileInteractionManager) Merge(id string, updates models.ScheduledInteraction) error {
	existing, exists := m.data.Interactions[id]
	if !exists {
		return fmt.Errorf("updating interaction %s: %w", id, ErrNotFound)
	}

	if updates.RelationshipName != "" {
		existing.RelationshipName = updates.RelationshipName
	}
	if updates.ScheduledDate != "" {
		existing.ScheduledDate = updates.ScheduledDate
	}
	if updates.SuggestedTimeSlots != nil {
		existing.SuggestedTimeSlots = updates.SuggestedTimeSlots
	}
	if updates.InteractionType != "" {
		existing.InteractionType = updates.InteractionType
	}
	if updates.Duration != 0 {
		existing.Duration = updates.Duration
	}
	if updates.Purpose != "" {
		existing.Purpose = updates.Purpose
	}
	if updates.PreparationNotes != "" {
		existing.PreparationNotes = updates.PreparationNotes
	}
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	if updates.CompletedDate != "" {
		existing.CompletedDate = updates.CompletedDate
	}
	if updates.FollowUpDate != "" {
		existing.FollowUpDate = updates.FollowUpDate
	}
	if updates.EnergyCost != 0 {
		existing.EnergyCost = updates.EnergyCost
	}

	m.data.Interactions[id] = existing
	return nil
}

func (m *fileInteractionManager) Get(id string) (*models.ScheduledInteraction, error) {
	interaction, exists := m.data.Interactions[id]
	if !exists {
		return nil, fmt.Errorf("interaction %s: %w", id, ErrNotFound)
	}
	return &interaction, nil
}

func (m *fileInteractionManager) GetAll() ([]models.ScheduledInteraction, error) {
	interactions := make([]models.ScheduledInteraction, 0, len(m.data.Interactions))
	for _, interaction := range m.data.Interactions {
		interactions = append(interactions, interaction)
	}
	sort.Slice(interactions, func(i, j int) bool {
		if interactions[i].ScheduledDate != interactions[j].ScheduledDate {
			return interactions[i].ScheduledDate < interactions[j].ScheduledDate
		}
		return interactions[i].ID < interactions[j].ID
	})
	return interactions, nil
}

func (m *fileInteractionManager) Filter(filter InteractionFilter) ([]models.ScheduledInteraction, error) {
	all, err := m.GetAll()
	if err != nil {
		return nil, err
	}

	var result []models.ScheduledInteraction
	for _, interaction := range all {
		if matchesInteractionFilter(interaction, filter) {
			result = append(result, interaction)
		}
	}
	return result, nil
}

func matchesInteractionFilter(interaction models.ScheduledInteraction, filter InteractionFilter) bool {
	if len(filter.Status) > 0 && !containsStatus(filter.Status, interaction.Status) {
		return false
	}
	if filter.RelationshipID != "" && interaction.RelationshipID != filter.RelationshipID {
		return false
	}
	if filter.ScheduledDate != "" && interaction.ScheduledDate != filter.ScheduledDate {
		return false
	}
	return true
}

func containsStatus(haystack []models.InteractionStatus, needle models.InteractionStatus) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func (m *fileInteractionManager) Load() error {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			m.data = LedgerFile{
				Version:      "1.0",
				Interactions: make(map[string]models.ScheduledInteraction),
			}
			return nil
		}
		return fmt.Errorf("loading interactions: %w", err)
	}

	var lf LedgerFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("loading interactions: parsing YAML: %w", err)
	}
	if lf.Interactions == nil {
		lf.Interactions = make(map[string]models.ScheduledInteraction)
	}
	m.data = lf
	return nil
}

func (m *fileInteractionManager) Save() error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving interactions: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&m.data)
	if err != nil {
		return fmt.Errorf("saving interactions: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving interactions: writing file: %w", err)
	}
	return nil
}
