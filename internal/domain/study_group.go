package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudyGroup
var (
	ErrEmptyGroupOwnerID = errors.New("study group owner ID cannot be empty")
	ErrEmptyGroupName    = errors.New("study group name cannot be empty")
)

// StudyGroup is a collection of study material belonging to a user. Spaced
// repetition is explicit opt-in per group: due-item queries against a group
// with the flag off return nothing rather than an error.
type StudyGroup struct {
	ID                      uuid.UUID `json:"id"`
	OwnerID                 uuid.UUID `json:"owner_id"`
	Name                    string    `json:"name"`
	SpacedRepetitionEnabled bool      `json:"spaced_repetition_enabled"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NewStudyGroup creates a study group owned by the given user.
// Returns an error if validation fails.
func NewStudyGroup(ownerID uuid.UUID, name string, spacedRepetitionEnabled bool) (*StudyGroup, error) {
	now := time.Now().UTC()
	group := &StudyGroup{
		ID:                      uuid.New(),
		OwnerID:                 ownerID,
		Name:                    name,
		SpacedRepetitionEnabled: spacedRepetitionEnabled,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the StudyGroup has valid data.
func (g *StudyGroup) Validate() error {
	if g.OwnerID == uuid.Nil {
		return ErrEmptyGroupOwnerID
	}

	if g.Name == "" {
		return ErrEmptyGroupName
	}

	return nil
}
